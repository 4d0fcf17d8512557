package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"
)

const (
	// EnvConfigDir overrides the config directory location.
	EnvConfigDir = "TICKTICK_CONFIG_DIR"

	// EnvAccessToken supplies the bearer token directly, bypassing the
	// token file. Intended for Docker/container usage.
	EnvAccessToken = "TICKTICK_ACCESS_TOKEN"

	configFileName = "config.yaml"
	tokenFileName  = "token"
)

// Document is the on-disk shape of config.yaml. Credentials and settings
// overrides share the file but live in separate namespaces.
type Document struct {
	ClientID     string         `yaml:"client_id,omitempty"`
	ClientSecret string         `yaml:"client_secret,omitempty"`
	Settings     map[string]any `yaml:"settings,omitempty"`
}

// Store provides access to the config directory and its files.
type Store struct {
	dir string
}

// NewStore returns a Store rooted at the default config directory:
// $TICKTICK_CONFIG_DIR if set, else ~/.ticktick-access.
func NewStore() *Store {
	return &Store{dir: defaultConfigDir()}
}

// NewStoreAt returns a Store rooted at an explicit directory. Used by tests.
func NewStoreAt(dir string) *Store {
	return &Store{dir: dir}
}

func defaultConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fall back to the working directory; surfaced on first write.
		return ".ticktick-access"
	}
	return filepath.Join(home, ".ticktick-access")
}

// Dir returns the config directory path.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) ensureDir() error {
	return os.MkdirAll(s.dir, 0o700)
}

func (s *Store) configPath() string {
	return filepath.Join(s.dir, configFileName)
}

func (s *Store) tokenPath() string {
	return filepath.Join(s.dir, tokenFileName)
}

// Load reads config.yaml. A missing file yields an empty document.
func (s *Store) Load() (*Document, error) {
	data, err := os.ReadFile(s.configPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Document{}, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", configFileName, err)
	}
	return &doc, nil
}

// Save writes the full config document atomically with owner-only
// permissions. The whole file is rewritten on every save.
func (s *Store) Save(doc *Document) error {
	if err := s.ensureDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := atomic.WriteFile(s.configPath(), bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return os.Chmod(s.configPath(), 0o600)
}

// ClientCredentials returns the stored OAuth client ID and secret. Either
// may be empty if not configured.
func (s *Store) ClientCredentials() (clientID, clientSecret string, err error) {
	doc, err := s.Load()
	if err != nil {
		return "", "", err
	}
	return doc.ClientID, doc.ClientSecret, nil
}

// SaveClientCredentials persists the OAuth client credentials, preserving
// any existing settings overrides in the document.
func (s *Store) SaveClientCredentials(clientID, clientSecret string) error {
	doc, err := s.Load()
	if err != nil {
		return err
	}
	doc.ClientID = clientID
	doc.ClientSecret = clientSecret
	return s.Save(doc)
}

// LoadToken reads the access token from the token file. Returns an empty
// string if no token has been saved.
func (s *Store) LoadToken() (string, error) {
	data, err := os.ReadFile(s.tokenPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read token file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// SaveToken writes the access token to the token file with owner-only
// permissions.
func (s *Store) SaveToken(token string) error {
	if err := s.ensureDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := atomic.WriteFile(s.tokenPath(), strings.NewReader(token)); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return os.Chmod(s.tokenPath(), 0o600)
}

// Token resolves the access token: the TICKTICK_ACCESS_TOKEN environment
// variable wins, then the token file. An error is returned when neither is
// available.
func (s *Store) Token() (string, error) {
	if token := os.Getenv(EnvAccessToken); token != "" {
		return token, nil
	}

	token, err := s.LoadToken()
	if err != nil {
		return "", err
	}
	if token == "" {
		return "", fmt.Errorf("no access token found: run 'ticktick auth' to authenticate, or set %s", EnvAccessToken)
	}
	return token, nil
}
