package snazy

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"pkt.systems/snazy/internal/ansi"
)

var colorRegistry = map[string]ansi.Color{
	"black":          ansi.Basic(ansi.Black),
	"red":            ansi.Basic(ansi.Red),
	"green":          ansi.Basic(ansi.Green),
	"yellow":         ansi.Basic(ansi.Yellow),
	"blue":           ansi.Basic(ansi.Blue),
	"magenta":        ansi.Basic(ansi.Magenta),
	"purple":         ansi.Basic(ansi.Magenta),
	"cyan":           ansi.Basic(ansi.Cyan),
	"white":          ansi.Basic(ansi.White),
	"gray":           ansi.Basic(ansi.BrightBlack),
	"grey":           ansi.Basic(ansi.BrightBlack),
	"bright-black":   ansi.Basic(ansi.BrightBlack),
	"bright-red":     ansi.Basic(ansi.BrightRed),
	"bright-green":   ansi.Basic(ansi.BrightGreen),
	"bright-yellow":  ansi.Basic(ansi.BrightYellow),
	"bright-blue":    ansi.Basic(ansi.BrightBlue),
	"bright-magenta": ansi.Basic(ansi.BrightMagenta),
	"bright-cyan":    ansi.Basic(ansi.BrightCyan),
	"bright-white":   ansi.Basic(ansi.BrightWhite),
}

// ColorNames returns the sorted list of colour names accepted in highlight
// styles.
func ColorNames() []string {
	names := make([]string, 0, len(colorRegistry))
	for name := range colorRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// resolveColor turns a colour spec into a Color. Accepted forms are a
// registered name, a 256-colour index, or an "R,G,B" triple.
func resolveColor(spec string) (ansi.Color, error) {
	name := strings.ToLower(strings.TrimSpace(spec))
	if name == "" {
		return ansi.Color{}, fmt.Errorf("empty colour")
	}
	if c, ok := colorRegistry[name]; ok {
		return c, nil
	}
	if parts := strings.Split(name, ","); len(parts) == 3 {
		var rgb [3]uint8
		for i, part := range parts {
			v, err := strconv.ParseUint(strings.TrimSpace(part), 10, 8)
			if err != nil {
				return ansi.Color{}, fmt.Errorf("invalid rgb component %q in %q", part, spec)
			}
			rgb[i] = uint8(v)
		}
		return ansi.RGB(rgb[0], rgb[1], rgb[2]), nil
	}
	if v, err := strconv.ParseUint(name, 10, 8); err == nil {
		return ansi.Indexed(uint8(v)), nil
	}
	return ansi.Color{}, fmt.Errorf("unknown colour %q (use a 0-255 index, R,G,B or one of: %s)", spec, strings.Join(ColorNames(), ", "))
}

// resolveStyle parses "COLOR" or "fg=COLOR[,bg=COLOR]". RGB triples carry
// commas of their own, so the background is located by its "bg=" marker.
func resolveStyle(spec string) (Style, error) {
	spec = strings.TrimSpace(spec)
	lower := strings.ToLower(spec)
	if !strings.HasPrefix(lower, "fg=") && !strings.HasPrefix(lower, "bg=") {
		fg, err := resolveColor(spec)
		if err != nil {
			return Style{}, err
		}
		return ansi.Fg(fg), nil
	}

	var fgSpec, bgSpec string
	if strings.HasPrefix(lower, "bg=") {
		bgSpec = spec[len("bg="):]
	} else if i := strings.Index(lower, ",bg="); i >= 0 {
		fgSpec = spec[len("fg="):i]
		bgSpec = spec[i+len(",bg="):]
	} else {
		fgSpec = spec[len("fg="):]
	}

	var style Style
	if fgSpec != "" {
		fg, err := resolveColor(fgSpec)
		if err != nil {
			return Style{}, err
		}
		style.Fg = fg
	}
	if bgSpec != "" {
		bg, err := resolveColor(bgSpec)
		if err != nil {
			return Style{}, err
		}
		style.Bg = bg
	}
	if style.IsZero() {
		return Style{}, fmt.Errorf("empty style %q", spec)
	}
	return style, nil
}
