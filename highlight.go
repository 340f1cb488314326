package snazy

import (
	"regexp"
	"strings"

	"github.com/go-logr/logr"

	"pkt.systems/snazy/internal/ansi"
)

// ParseHighlight turns a command-line highlight argument into a rule. The
// argument is PATTERN, COLOR:PATTERN or fg=COLOR[,bg=COLOR]:PATTERN. In the
// short form COLOR must be a name from ColorNames; indexes and R,G,B triples
// need the fg=/bg= form, so patterns like 12:30 stay whole. When the prefix is
// not a valid style the whole argument is taken as the pattern. index picks
// the colour for unstyled patterns from the default cycle.
func ParseHighlight(arg string, index int) HighlightRule {
	if i := strings.Index(arg, ":"); i > 0 {
		if style, ok := highlightPrefix(arg[:i]); ok {
			return HighlightRule{Pattern: arg[i+1:], Style: style}
		}
	}
	cycle := ansi.HighlightCycle
	if index < 0 {
		index = -index
	}
	return HighlightRule{Pattern: arg, Style: ansi.Fg(cycle[index%len(cycle)])}
}

func highlightPrefix(spec string) (Style, bool) {
	name := strings.ToLower(strings.TrimSpace(spec))
	if strings.HasPrefix(name, "fg=") || strings.HasPrefix(name, "bg=") {
		style, err := resolveStyle(spec)
		return style, err == nil
	}
	c, ok := colorRegistry[name]
	if !ok {
		return Style{}, false
	}
	return ansi.Fg(c), true
}

type compiledRule struct {
	re    *regexp.Regexp
	style Style
}

// Highlighter applies an ordered list of highlight rules.
type Highlighter struct {
	rules []compiledRule
}

// NewHighlighter compiles rules in order. Patterns that fail to compile are
// skipped and reported to log.
func NewHighlighter(rules []HighlightRule, log logr.Logger) *Highlighter {
	h := &Highlighter{rules: make([]compiledRule, 0, len(rules))}
	for _, rule := range rules {
		if rule.Pattern == "" {
			continue
		}
		re, err := regexp.Compile(rule.Pattern)
		if err != nil {
			log.Info("ignoring highlight pattern", "pattern", rule.Pattern, "error", err.Error())
			continue
		}
		h.rules = append(h.rules, compiledRule{re: re, style: rule.Style})
	}
	return h
}

// Len returns the number of usable rules.
func (h *Highlighter) Len() int {
	if h == nil {
		return 0
	}
	return len(h.rules)
}

// Apply paints every match of every rule. Rules run one after another, each
// on the output of the previous one. Without colour the text is returned as
// is.
func (h *Highlighter) Apply(text string, color bool) string {
	if !color || h.Len() == 0 {
		return text
	}
	for _, rule := range h.rules {
		style := rule.style
		text = rule.re.ReplaceAllStringFunc(text, func(m string) string {
			if m == "" {
				return m
			}
			return style.Paint(m)
		})
	}
	return text
}

// Highlight is a one-shot helper around NewHighlighter and Apply.
func Highlight(text string, rules []HighlightRule, color bool) string {
	return NewHighlighter(rules, logr.Discard()).Apply(text, color)
}
