package config

import (
	"os"
	"path/filepath"
)

// EnvCacheHome selects the base cache directory for OTP and archive
// storage, following the XDG convention.
const EnvCacheHome = "XDG_CACHE_HOME"

// CacheDir returns the cache root for ticktick-access:
// $XDG_CACHE_HOME/ticktick-access if the variable is set, else
// ~/.cache/ticktick-access.
func CacheDir() string {
	base := os.Getenv(EnvCacheHome)
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			base = ".cache"
		} else {
			base = filepath.Join(home, ".cache")
		}
	}
	return filepath.Join(base, "ticktick-access")
}
