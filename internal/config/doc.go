// Package config loads, validates, and normalizes reelid configuration.
//
// Configuration is a single TOML file (default ~/.config/reelid/config.toml,
// with ./reelid.toml as a project-local fallback). Secrets can be overlaid
// from the environment so the file never has to contain them. Load returns a
// fully normalized config: paths expanded to absolute form, URL fields
// trimmed, and defaults applied for every omitted field.
package config
