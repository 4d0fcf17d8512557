package config

// SettingType enumerates the value types a setting may declare.
type SettingType string

const (
	TypeString  SettingType = "string"
	TypeBoolean SettingType = "boolean"
	TypeChoice  SettingType = "choice"
)

// Recognized setting keys.
const (
	// KeyDeletionAccess controls whether task deletion is allowed at all:
	// "enabled" (no OTP needed), "elevated" (OTP required for elevated
	// callers), or "disabled" (deletion refused outright).
	KeyDeletionAccess = "deletion.access"

	// KeyDeletionDisableAutoArchive turns off the pre-delete snapshot
	// unless the caller names an explicit destination.
	KeyDeletionDisableAutoArchive = "deletion.disable_auto_archive"

	// KeyDeletionArchive sets a custom directory for pre-delete snapshots.
	// When unset, the archiver picks its default cache location.
	KeyDeletionArchive = "deletion.archive"
)

// Setting describes one entry in the settings manifest.
type Setting struct {
	Key         string
	Type        SettingType
	Default     any
	Options     []string // choice type only
	Description string
	Help        string
}

// Manifest is the static catalog of every recognized setting. Iteration
// order here is the order settings are listed and the order per-setting
// CLI commands are registered.
var Manifest = []Setting{
	{
		Key:         KeyDeletionAccess,
		Type:        TypeChoice,
		Default:     "enabled",
		Options:     []string{"enabled", "elevated", "disabled"},
		Description: "Access policy for deleting tasks",
		Help: "enabled: deletion allowed without OTP. elevated: elevated callers " +
			"(such as MCP tools) must present a one-time password generated with " +
			"'ticktick otp'. disabled: deletion is refused.",
	},
	{
		Key:         KeyDeletionDisableAutoArchive,
		Type:        TypeBoolean,
		Default:     false,
		Description: "Skip the automatic pre-delete snapshot",
		Help: "When true, deleted tasks are not archived unless an explicit " +
			"archive destination is passed with the delete request.",
	},
	{
		Key:         KeyDeletionArchive,
		Type:        TypeString,
		Default:     nil,
		Description: "Directory for pre-delete task snapshots",
		Help: "Absolute path where task snapshots are written before deletion. " +
			"Unset means the default cache location is used.",
	},
}

// manifestEntry returns the manifest entry for key, or nil if the key is
// not recognized.
func manifestEntry(key string) *Setting {
	for i := range Manifest {
		if Manifest[i].Key == key {
			return &Manifest[i]
		}
	}
	return nil
}
