package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"pkt.systems/snazy"
)

// File is the on-disk layout of the snazy config file. Every field is
// optional.
type File struct {
	TimeFormat       string            `toml:"time_format" yaml:"time_format"`
	Timezone         string            `toml:"timezone" yaml:"timezone"`
	KailPrefixFormat string            `toml:"kail_prefix_format" yaml:"kail_prefix_format"`
	KailNoPrefix     bool              `toml:"kail_no_prefix" yaml:"kail_no_prefix"`
	LevelSymbols     bool              `toml:"level_symbols" yaml:"level_symbols"`
	Color            string            `toml:"color" yaml:"color"`
	HideStacktrace   bool              `toml:"hide_stacktrace" yaml:"hide_stacktrace"`
	FilterLevels     []string          `toml:"filter_levels" yaml:"filter_levels"`
	Regexp           []string          `toml:"regexp" yaml:"regexp"`
	SkipLineRegexp   []string          `toml:"skip_line_regexp" yaml:"skip_line_regexp"`
	JSONKeys         map[string]string `toml:"json_keys" yaml:"json_keys"`
	ActionRegexp     string            `toml:"action_regexp" yaml:"action_regexp"`
	ActionCommand    string            `toml:"action_command" yaml:"action_command"`
}

const (
	appDir         = "snazy"
	configFileName = "config.toml"
)

// DefaultPath returns $XDG_CONFIG_HOME/snazy/config.toml or the platform
// equivalent.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, appDir, configFileName), nil
}

// Load builds the run configuration from defaults, the config file at path
// and the environment, in that order. An empty path means DefaultPath. A
// missing file is not an error.
func Load(path string) (snazy.Config, error) {
	cfg := snazy.DefaultConfig()

	resolved, err := resolvePath(path)
	if err != nil {
		return snazy.Config{}, err
	}
	f, err := readFile(resolved)
	if err != nil {
		return snazy.Config{}, err
	}
	if err := f.apply(&cfg); err != nil {
		return snazy.Config{}, fmt.Errorf("%s: %w", resolved, err)
	}
	if err := applyEnv(&cfg); err != nil {
		return snazy.Config{}, err
	}
	return cfg, nil
}

func readFile(path string) (File, error) {
	var f File
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return f, nil
		}
		return f, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return f, fmt.Errorf("read config: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &f)
	default:
		err = toml.Unmarshal(data, &f)
	}
	if err != nil {
		return File{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return f, nil
}

func (f File) apply(cfg *snazy.Config) error {
	if v := strings.TrimSpace(f.TimeFormat); v != "" {
		cfg.TimeFormat = v
	}
	if v := strings.TrimSpace(f.Timezone); v != "" {
		cfg.Timezone = v
	}
	if f.KailPrefixFormat != "" {
		cfg.KailPrefixFormat = f.KailPrefixFormat
	}
	cfg.KailNoPrefix = cfg.KailNoPrefix || f.KailNoPrefix
	if f.LevelSymbols {
		cfg.LevelMode = snazy.LevelEmoji
	}
	cfg.HideStacktrace = cfg.HideStacktrace || f.HideStacktrace
	if f.Color != "" {
		mode, err := snazy.ParseColorMode(f.Color)
		if err != nil {
			return err
		}
		cfg.Color = mode
	}
	if len(f.FilterLevels) > 0 {
		levels, err := snazy.ParseLevels(f.FilterLevels...)
		if err != nil {
			return err
		}
		cfg.FilterLevels = levels
	}
	for _, arg := range f.Regexp {
		cfg.Highlights = append(cfg.Highlights, snazy.ParseHighlight(arg, len(cfg.Highlights)))
	}
	cfg.SkipPatterns = append(cfg.SkipPatterns, f.SkipLineRegexp...)
	if len(f.JSONKeys) > 0 {
		cfg.JSONKeys = make(map[string]string, len(f.JSONKeys))
		for k, v := range f.JSONKeys {
			cfg.JSONKeys[k] = v
		}
	}
	if f.ActionRegexp != "" {
		cfg.ActionRegexp = f.ActionRegexp
	}
	if f.ActionCommand != "" {
		cfg.ActionCommand = f.ActionCommand
	}
	return nil
}

func applyEnv(cfg *snazy.Config) error {
	if v, ok := os.LookupEnv("SNAZY_TIME_FORMAT"); ok && v != "" {
		cfg.TimeFormat = v
	}
	if v, ok := os.LookupEnv("SNAZY_TIMEZONE"); ok && v != "" {
		cfg.Timezone = v
	}
	if v, ok := os.LookupEnv("SNAZY_KAIL_PREFIX_FORMAT"); ok && v != "" {
		cfg.KailPrefixFormat = v
	}
	if v, ok := os.LookupEnv("SNAZY_COLOR"); ok && v != "" {
		mode, err := snazy.ParseColorMode(v)
		if err != nil {
			return fmt.Errorf("SNAZY_COLOR: %w", err)
		}
		cfg.Color = mode
	}
	symbols, err := envBool("SNAZY_LEVEL_SYMBOLS")
	if err != nil {
		return err
	}
	if symbols {
		cfg.LevelMode = snazy.LevelEmoji
	}
	hide, err := envBool("SNAZY_HIDE_STACKTRACE")
	if err != nil {
		return err
	}
	cfg.HideStacktrace = cfg.HideStacktrace || hide
	if v, ok := os.LookupEnv("NO_COLOR"); ok && v != "" {
		cfg.Color = snazy.ColorNever
	}
	return nil
}

func envBool(name string) (bool, error) {
	v, ok := os.LookupEnv(name)
	if !ok || strings.TrimSpace(v) == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return false, fmt.Errorf("%s: invalid boolean %q", name, v)
	}
	return b, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultPath()
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
