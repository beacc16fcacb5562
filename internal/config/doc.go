// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from config.cue in the platform config directory
// ($XDG_CONFIG_HOME/polyrun on Linux, ~/Library/Application Support/polyrun on
// macOS, %APPDATA%\polyrun on Windows) or the working directory. Values are
// validated against an embedded CUE schema (config_schema.cue) and can be
// overridden with POLYRUN_* environment variables.
package config
