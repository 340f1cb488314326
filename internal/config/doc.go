// Package config loads snazy's optional configuration file and the SNAZY_*
// environment variables into a snazy.Config.
//
// # Resolution
//
// Load layers, later sources winning:
//
//  1. snazy.DefaultConfig()
//  2. the config file (explicit path, or $XDG_CONFIG_HOME/snazy/config.toml)
//  3. SNAZY_TIME_FORMAT, SNAZY_TIMEZONE, SNAZY_KAIL_PREFIX_FORMAT,
//     SNAZY_COLOR, SNAZY_LEVEL_SYMBOLS, SNAZY_HIDE_STACKTRACE and NO_COLOR
//
// Command-line flags are applied on top by the caller. A missing file is not
// an error. Files ending in .yaml or .yml are read as YAML, anything else as
// TOML.
//
// # Example
//
//	time_format = "%Y-%m-%d %H:%M:%S"
//	timezone = "Europe/Stockholm"
//	regexp = ["red:ERROR", "fg=black,bg=yellow:deadline"]
//	skip_line_regexp = ["healthz"]
//	filter_levels = ["warning", "error", "fatal"]
//
//	[json_keys]
//	msg = "/message"
//	level = "/severity"
//	ts = "/time"
package config
