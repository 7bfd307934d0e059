// Package config loads, normalizes, and validates prettycue configuration.
//
// Settings come from a TOML file (explicit path, the per-user default, or a
// prettycue.toml in the working directory) layered over repository defaults,
// with PRETTYCUE_* environment variables taking precedence over the file.
// Always obtain settings through Load so callers receive canonical log
// formats, expanded paths, and clear validation errors.
package config
