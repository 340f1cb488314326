// Package ansi provides SGR escape sequences, colour values and the fixed
// palette snazy renders log lines with.
package ansi

import (
	"strconv"
	"strings"
)

// Base ANSI escape codes.
const (
	Reset = "\x1b[0m"
	Bold  = "\x1b[1m"
)

// Basic colour indexes in the 16-colour table.
const (
	Black uint8 = iota
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White
	BrightBlack
	BrightRed
	BrightGreen
	BrightYellow
	BrightBlue
	BrightMagenta
	BrightCyan
	BrightWhite
)

type colorKind uint8

const (
	kindNone colorKind = iota
	kindBasic
	kindIndexed
	kindRGB
)

// Color is a terminal colour: one of the 16 basic colours, an entry of the
// 256-colour table, or a 24-bit RGB triple. The zero value means "no colour".
type Color struct {
	kind    colorKind
	n       uint8
	r, g, b uint8
}

// Basic returns one of the 16 basic colours (0-7 normal, 8-15 bright).
func Basic(n uint8) Color {
	return Color{kind: kindBasic, n: n & 0x0f}
}

// Indexed returns an entry of the 256-colour table.
func Indexed(n uint8) Color {
	return Color{kind: kindIndexed, n: n}
}

// RGB returns a 24-bit colour.
func RGB(r, g, b uint8) Color {
	return Color{kind: kindRGB, r: r, g: g, b: b}
}

// IsZero reports whether c carries no colour.
func (c Color) IsZero() bool { return c.kind == kindNone }

func (c Color) appendParams(dst []string, background bool) []string {
	switch c.kind {
	case kindBasic:
		base := 30
		if c.n >= 8 {
			base = 90 - 8
		}
		if background {
			base += 10
		}
		return append(dst, strconv.Itoa(base+int(c.n)))
	case kindIndexed:
		if background {
			return append(dst, "48", "5", strconv.Itoa(int(c.n)))
		}
		return append(dst, "38", "5", strconv.Itoa(int(c.n)))
	case kindRGB:
		lead := "38"
		if background {
			lead = "48"
		}
		return append(dst, lead, "2", strconv.Itoa(int(c.r)), strconv.Itoa(int(c.g)), strconv.Itoa(int(c.b)))
	default:
		return dst
	}
}

// Style is a foreground/background pair plus text attributes.
type Style struct {
	Fg     Color
	Bg     Color
	Bold   bool
	Italic bool
	Faint  bool
}

// Fg is shorthand for a style with only a foreground colour.
func Fg(c Color) Style { return Style{Fg: c} }

// IsZero reports whether the style would emit no escape sequence.
func (s Style) IsZero() bool {
	return s.Fg.IsZero() && s.Bg.IsZero() && !s.Bold && !s.Italic && !s.Faint
}

// Sequence returns the SGR escape that switches the style on, or "" for a
// zero style.
func (s Style) Sequence() string {
	if s.IsZero() {
		return ""
	}
	params := make([]string, 0, 8)
	if s.Bold {
		params = append(params, "1")
	}
	if s.Faint {
		params = append(params, "2")
	}
	if s.Italic {
		params = append(params, "3")
	}
	params = s.Fg.appendParams(params, false)
	params = s.Bg.appendParams(params, true)
	return "\x1b[" + strings.Join(params, ";") + "m"
}

// Paint wraps text in the style's sequence and a reset. A zero style returns
// text untouched.
func (s Style) Paint(text string) string {
	seq := s.Sequence()
	if seq == "" {
		return text
	}
	return seq + text + Reset
}

// Palette holds the semantic styles used for a rendered log line.
type Palette struct {
	Debug      Style
	Info       Style
	Warn       Style
	Error      Style
	Fatal      Style
	Timestamp  Style
	Others     Style
	KailPrefix Style
}

// PaletteDefault mirrors the 256-colour scheme snazy has always shipped.
var PaletteDefault = Palette{
	Debug:      Fg(Indexed(14)),
	Info:       Fg(Indexed(10)),
	Warn:       Fg(Indexed(11)),
	Error:      Fg(Indexed(9)),
	Fatal:      Style{Fg: Indexed(9), Bold: true},
	Timestamp:  Fg(Indexed(13)),
	Others:     Style{Fg: Basic(Cyan), Italic: true},
	KailPrefix: Fg(Basic(Blue)),
}

// HighlightCycle is the colour sequence handed to highlight patterns that do
// not name a style of their own.
var HighlightCycle = []Color{
	Basic(Yellow),
	Basic(Magenta),
	Basic(Cyan),
	Basic(Red),
	Basic(Blue),
}
