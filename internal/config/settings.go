package config

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for settings writes. Wrapped errors carry the offending
// key/value; match with errors.Is.
var (
	ErrUnknownSetting = errors.New("unknown setting")
	ErrInvalidValue   = errors.New("invalid value")
)

// SettingView is one entry of the listing produced by ListSettings.
type SettingView struct {
	Key         string   `json:"key"`
	Value       any      `json:"value"`
	Default     any      `json:"default"`
	Type        string   `json:"type"`
	Options     []string `json:"options,omitempty"`
	Description string   `json:"description"`
	Help        string   `json:"help"`
}

// GetSetting returns the effective value for key: the user override when
// present and non-nil, else the manifest default. Unknown keys read as nil
// rather than erroring.
func (s *Store) GetSetting(key string) (any, error) {
	entry := manifestEntry(key)
	if entry == nil {
		return nil, nil
	}

	doc, err := s.Load()
	if err != nil {
		return nil, err
	}
	if v, ok := doc.Settings[key]; ok && v != nil {
		return v, nil
	}
	return entry.Default, nil
}

// SetSetting validates raw against the manifest entry for key and persists
// the full settings document. A nil raw value removes the override so the
// manifest default applies again.
func (s *Store) SetSetting(key string, raw any) error {
	entry := manifestEntry(key)
	if entry == nil {
		return fmt.Errorf("%w: %q", ErrUnknownSetting, key)
	}

	value := raw
	if raw != nil {
		var err error
		value, err = coerceValue(entry, raw)
		if err != nil {
			return err
		}
	}

	doc, err := s.Load()
	if err != nil {
		return err
	}
	if doc.Settings == nil {
		doc.Settings = make(map[string]any)
	}
	if value == nil {
		delete(doc.Settings, key)
	} else {
		doc.Settings[key] = value
	}
	return s.Save(doc)
}

// ListSettings returns a view of every manifest entry with its effective
// value, in manifest order.
func (s *Store) ListSettings() ([]SettingView, error) {
	doc, err := s.Load()
	if err != nil {
		return nil, err
	}

	views := make([]SettingView, 0, len(Manifest))
	for _, entry := range Manifest {
		value := entry.Default
		if v, ok := doc.Settings[entry.Key]; ok && v != nil {
			value = v
		}
		views = append(views, SettingView{
			Key:         entry.Key,
			Value:       value,
			Default:     entry.Default,
			Type:        string(entry.Type),
			Options:     entry.Options,
			Description: entry.Description,
			Help:        entry.Help,
		})
	}
	return views, nil
}

// coerceValue converts raw into the declared type for the entry. Only the
// documented textual boolean forms are coerced; everything else must already
// match the declared type.
func coerceValue(entry *Setting, raw any) (any, error) {
	switch entry.Type {
	case TypeBoolean:
		switch v := raw.(type) {
		case bool:
			return v, nil
		case string:
			return parseBoolText(entry.Key, v)
		default:
			return nil, fmt.Errorf("%w for %s: %v", ErrInvalidValue, entry.Key, raw)
		}

	case TypeChoice:
		text, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("%w for %s: %v", ErrInvalidValue, entry.Key, raw)
		}
		for _, opt := range entry.Options {
			if text == opt {
				return text, nil
			}
		}
		return nil, fmt.Errorf("%w for %s: %q (options: %s)",
			ErrInvalidValue, entry.Key, text, strings.Join(entry.Options, ", "))

	default:
		text, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("%w for %s: %v", ErrInvalidValue, entry.Key, raw)
		}
		return text, nil
	}
}

func parseBoolText(key, text string) (any, error) {
	switch strings.ToLower(text) {
	case "true", "yes", "1", "on":
		return true, nil
	case "false", "no", "0", "off":
		return false, nil
	}
	return nil, fmt.Errorf("%w for %s: %q is not a boolean", ErrInvalidValue, key, text)
}
