package snazy

import (
	"fmt"
	"strings"

	"pkt.systems/snazy/internal/ansi"
)

// Level is the canonical severity of a record.
type Level int

// Canonical levels. Unknown or missing severities normalise to LevelInfo.
const (
	LevelInfo Level = iota
	LevelDebug
	LevelWarning
	LevelError
	LevelFatal
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	case LevelFatal:
		return "fatal"
	default:
		return "info"
	}
}

// ParseLevel resolves a raw level case-insensitively. ok is false when raw is
// not a known spelling, in which case LevelInfo is returned.
func ParseLevel(raw string) (lvl Level, ok bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return LevelDebug, true
	case "info":
		return LevelInfo, true
	case "warn", "warning":
		return LevelWarning, true
	case "err", "error":
		return LevelError, true
	case "fatal":
		return LevelFatal, true
	}
	return LevelInfo, false
}

// NormalizeLevel is ParseLevel without the recognition flag.
func NormalizeLevel(raw string) Level {
	lvl, _ := ParseLevel(raw)
	return lvl
}

// ParseLevels parses comma separated level lists, as given to --filter-levels.
func ParseLevels(values ...string) ([]Level, error) {
	var out []Level
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			lvl, ok := ParseLevel(part)
			if !ok {
				return nil, fmt.Errorf("unknown level %q (use one of: debug, info, warning, error, fatal)", part)
			}
			out = append(out, lvl)
		}
	}
	return out, nil
}

type levelLook struct {
	label string
	pad   int
	style func(ansi.Palette) ansi.Style
}

// The pads count escape bytes too, so coloured labels line up on the terminal
// while plain ERROR ends up one column short.
var levelLooks = map[Level]levelLook{
	LevelDebug:   {"DEBUG", 19, func(p ansi.Palette) ansi.Style { return p.Debug }},
	LevelInfo:    {"INFO", 19, func(p ansi.Palette) ansi.Style { return p.Info }},
	LevelWarning: {"WARN", 19, func(p ansi.Palette) ansi.Style { return p.Warn }},
	LevelError:   {"ERROR", 18, func(p ansi.Palette) ansi.Style { return p.Error }},
	LevelFatal:   {"FATAL", 19, func(p ansi.Palette) ansi.Style { return p.Fatal }},
}

// LevelSymbol returns the emoji for a raw level, or a neutral dot when the
// level is not recognised.
func LevelSymbol(raw string) string {
	lvl, ok := ParseLevel(raw)
	if !ok {
		return "∙"
	}
	switch lvl {
	case LevelDebug:
		return "🐛"
	case LevelWarning:
		return "⚠️"
	case LevelError:
		return "🚨"
	case LevelFatal:
		return "💀"
	default:
		return "💡"
	}
}

// RenderLevel renders the level column for a raw level string.
func RenderLevel(raw string, mode LevelMode, color bool) string {
	if mode == LevelEmoji {
		return LevelSymbol(raw)
	}
	look := levelLooks[NormalizeLevel(raw)]
	label := look.label
	if color {
		label = look.style(ansi.PaletteDefault).Paint(label)
	}
	return fmt.Sprintf("%-*s", look.pad, label)
}
