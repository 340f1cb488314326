package config

import (
	"os"
	"path/filepath"
	"testing"

	"pkt.systems/snazy"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"SNAZY_TIME_FORMAT", "SNAZY_TIMEZONE", "SNAZY_KAIL_PREFIX_FORMAT",
		"SNAZY_COLOR", "SNAZY_LEVEL_SYMBOLS", "SNAZY_HIDE_STACKTRACE", "NO_COLOR",
	} {
		t.Setenv(name, "")
	}
}

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	want := snazy.DefaultConfig()
	if cfg.TimeFormat != want.TimeFormat || cfg.KailPrefixFormat != want.KailPrefixFormat ||
		cfg.Color != want.Color || cfg.RuleWidth != want.RuleWidth {
		t.Fatalf("Load = %+v, want defaults %+v", cfg, want)
	}
}

func TestLoad_DefaultPathUsesXDG(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	path, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath: %v", err)
	}
	if path != filepath.Join(dir, "snazy", "config.toml") {
		t.Fatalf("DefaultPath = %q", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, []byte(`timezone = "UTC"`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Timezone != "UTC" {
		t.Fatalf("Timezone = %q, want UTC", cfg.Timezone)
	}
}

func TestLoad_ParsesTOML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "config.toml", `
time_format = "  %Y-%m-%d  "
timezone = "Europe/Stockholm"
kail_no_prefix = true
level_symbols = true
color = "always"
hide_stacktrace = true
filter_levels = ["warning", "error,fatal"]
regexp = ["red:ERROR", "deadline"]
skip_line_regexp = ["healthz"]
action_regexp = "ID-[0-9]+"
action_command = "echo {}"

[json_keys]
msg = "/message"
level = "/severity"
ts = "/time"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.TimeFormat != "%Y-%m-%d" || cfg.Timezone != "Europe/Stockholm" {
		t.Fatalf("unexpected time settings %q %q", cfg.TimeFormat, cfg.Timezone)
	}
	if !cfg.KailNoPrefix || cfg.LevelMode != snazy.LevelEmoji || !cfg.HideStacktrace || cfg.Color != snazy.ColorAlways {
		t.Fatalf("unexpected switches %+v", cfg)
	}
	if len(cfg.FilterLevels) != 3 || cfg.FilterLevels[2] != snazy.LevelFatal {
		t.Fatalf("FilterLevels = %v", cfg.FilterLevels)
	}
	if len(cfg.Highlights) != 2 || cfg.Highlights[0].Pattern != "ERROR" || cfg.Highlights[1].Pattern != "deadline" {
		t.Fatalf("Highlights = %+v", cfg.Highlights)
	}
	if cfg.Highlights[1] != snazy.ParseHighlight("deadline", 1) {
		t.Fatalf("second highlight should take the second cycle colour")
	}
	if len(cfg.SkipPatterns) != 1 || cfg.JSONKeys["ts"] != "/time" {
		t.Fatalf("unexpected skip/json keys %+v %+v", cfg.SkipPatterns, cfg.JSONKeys)
	}
	if cfg.ActionRegexp != "ID-[0-9]+" || cfg.ActionCommand != "echo {}" {
		t.Fatalf("unexpected action %q %q", cfg.ActionRegexp, cfg.ActionCommand)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestLoad_ParsesYAML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "config.yaml", `
time_format: "%H:%M"
regexp:
  - fg=black,bg=yellow:warn
json_keys:
  msg: message
  level: severity
  ts: time
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.TimeFormat != "%H:%M" || len(cfg.Highlights) != 1 || cfg.JSONKeys["msg"] != "message" {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)
	cases := map[string]string{
		"broken.toml": `time_format = `,
		"color.toml":  `color = "sometimes"`,
		"levels.toml": `filter_levels = ["loud"]`,
		"broken.yml":  "regexp: [unclosed",
	}
	for name, body := range cases {
		if _, err := Load(writeConfig(t, name, body)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "config.toml", `
time_format = "%H"
timezone = "Asia/Tokyo"
color = "always"
`)
	t.Setenv("SNAZY_TIME_FORMAT", "%M")
	t.Setenv("SNAZY_TIMEZONE", "UTC")
	t.Setenv("SNAZY_KAIL_PREFIX_FORMAT", "{pod}")
	t.Setenv("SNAZY_LEVEL_SYMBOLS", "true")
	t.Setenv("SNAZY_HIDE_STACKTRACE", "1")
	t.Setenv("NO_COLOR", "1")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.TimeFormat != "%M" || cfg.Timezone != "UTC" || cfg.KailPrefixFormat != "{pod}" {
		t.Fatalf("environment not applied: %+v", cfg)
	}
	if cfg.LevelMode != snazy.LevelEmoji || !cfg.HideStacktrace || cfg.Color != snazy.ColorNever {
		t.Fatalf("environment switches not applied: %+v", cfg)
	}
}

func TestLoad_InvalidEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("SNAZY_LEVEL_SYMBOLS", "maybe")
	if _, err := Load(filepath.Join(t.TempDir(), "none.toml")); err == nil {
		t.Fatalf("expected error for invalid boolean")
	}
	clearEnv(t)
	t.Setenv("SNAZY_COLOR", "rainbow")
	if _, err := Load(filepath.Join(t.TempDir(), "none.toml")); err == nil {
		t.Fatalf("expected error for invalid colour mode")
	}
}

func TestExpandPathHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	got, err := expandPath("~/snazy.toml")
	if err != nil {
		t.Fatalf("expandPath: %v", err)
	}
	if got != filepath.Join(home, "snazy.toml") {
		t.Fatalf("expandPath = %q", got)
	}
}
