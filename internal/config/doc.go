// Package config manages local persistent state for ticktick-access.
//
// Two stores live here:
//
//   - The credential/token store: OAuth client credentials in config.yaml and
//     the bearer token in a separate token file, both under the config
//     directory (~/.ticktick-access by default).
//
//   - The settings store: a declarative manifest of recognized settings
//     (key, type, default, allowed values) merged with user overrides kept
//     in the settings section of config.yaml. Overrides shadow defaults only
//     when present; writing a nil value removes the override.
//
// The process is assumed to be the sole writer of these files; there is no
// cross-process locking.
package config
