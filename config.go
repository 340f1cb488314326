package snazy

import (
	"fmt"
	"strings"

	"pkt.systems/snazy/internal/ansi"
)

// Style is a foreground/background colour pair with text attributes.
type Style = ansi.Style

// ColorMode selects when output is colourised.
type ColorMode int

const (
	// ColorAuto colours output when the writer is an interactive terminal.
	ColorAuto ColorMode = iota
	// ColorAlways colours output unconditionally.
	ColorAlways
	// ColorNever disables all styling.
	ColorNever
)

func (m ColorMode) String() string {
	switch m {
	case ColorAlways:
		return "always"
	case ColorNever:
		return "never"
	default:
		return "auto"
	}
}

// ParseColorMode accepts "auto", "always" or "never".
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	default:
		return ColorAuto, fmt.Errorf("unknown color mode %q (use one of: never, auto, always)", s)
	}
}

// LevelMode selects how the level column is rendered.
type LevelMode int

const (
	// LevelText renders a padded, coloured label.
	LevelText LevelMode = iota
	// LevelEmoji renders one symbol per level.
	LevelEmoji
)

// HighlightRule pairs a regular expression with the style its matches are
// painted with. Rules apply in slice order.
type HighlightRule struct {
	Pattern string
	Style   Style
}

const (
	// DefaultTimeFormat is the strftime layout used when none is configured.
	DefaultTimeFormat = "%H:%M:%S"
	// DefaultKailPrefixFormat rebuilds the envelope kail puts in front of lines.
	DefaultKailPrefixFormat = "{namespace}/{pod}[{container}]"
	// DefaultRuleWidth is the stacktrace rule width when the terminal size is
	// unknown.
	DefaultRuleWidth = 80
)

// Config is the immutable configuration for one run.
type Config struct {
	// TimeFormat is a strftime-style layout for rendered timestamps.
	TimeFormat string
	// Timezone is an IANA zone name; empty or unknown means UTC.
	Timezone string
	// KailPrefixFormat is the template for the kail envelope prefix. It
	// understands {namespace}, {pod}, {container} and a literal `\n`.
	KailPrefixFormat string
	// KailNoPrefix hides the kail prefix in front of messages.
	KailNoPrefix bool
	// JSONKeys maps output field names (msg, level, ts, stacktrace, others)
	// to JSON pointers. A value without a leading slash names a top-level key.
	JSONKeys map[string]string
	// Highlights are applied to messages and passthrough lines in order.
	Highlights []HighlightRule
	// SkipPatterns drop a line when any of them matches its message.
	SkipPatterns []string
	// FilterLevels, when non-empty, is the set of levels allowed through.
	FilterLevels []Level
	// LevelMode picks text labels or emoji symbols.
	LevelMode LevelMode
	// Color decides whether styling is emitted.
	Color ColorMode
	// HideStacktrace drops the stacktrace block from rendered records.
	HideStacktrace bool
	// ActionRegexp triggers ActionCommand when it matches a raw line.
	ActionRegexp string
	// ActionCommand is run with `sh -c`; "{}" is replaced by the match.
	ActionCommand string
	// RuleWidth is the width of the horizontal rules around stacktraces.
	RuleWidth int
}

// DefaultConfig returns the configuration snazy runs with when nothing is
// overridden.
func DefaultConfig() Config {
	return Config{
		TimeFormat:       DefaultTimeFormat,
		KailPrefixFormat: DefaultKailPrefixFormat,
		Color:            ColorAuto,
		LevelMode:        LevelText,
		RuleWidth:        DefaultRuleWidth,
	}
}

// Validate checks the parts of c that cannot degrade gracefully. A JSON-keys
// mapping, when given, must name at least level, msg and ts.
func (c Config) Validate() error {
	if len(c.JSONKeys) == 0 {
		return nil
	}
	var have Field
	for name := range c.JSONKeys {
		field, ok := fieldByName(strings.ToLower(strings.TrimSpace(name)))
		if !ok {
			return fmt.Errorf("unknown json key target %q (use msg, level, ts, others or stacktrace)", name)
		}
		have |= field
	}
	if need := FieldMsg | FieldLevel | FieldTimestamp; have&need != need {
		return fmt.Errorf("json keys must map at least level, msg and ts")
	}
	return nil
}
