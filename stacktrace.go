package snazy

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	sourceFileRe = regexp.MustCompile(`\.(?:go|py|rs|java|js|ts|rb|kt|scala|c|cc|cpp|h)\b`)
	symbolRe     = regexp.MustCompile(`[A-Za-z_][\w/.-]*\.(?:\(\*?[A-Za-z_]\w*\)\.)?[A-Za-z_]\w*`)
)

type stackStyles struct {
	label    lipgloss.Style
	rule     lipgloss.Style
	path     lipgloss.Style
	file     lipgloss.Style
	lineNo   lipgloss.Style
	pkg      lipgloss.Style
	function lipgloss.Style
	dim      lipgloss.Style
}

func newStackStyles(r *lipgloss.Renderer) stackStyles {
	return stackStyles{
		label:    r.NewStyle().Bold(true),
		rule:     r.NewStyle().Foreground(lipgloss.Color("8")),
		path:     r.NewStyle().Foreground(lipgloss.Color("8")),
		file:     r.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		lineNo:   r.NewStyle().Foreground(lipgloss.Color("11")),
		pkg:      r.NewStyle().Foreground(lipgloss.Color("6")),
		function: r.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		dim:      r.NewStyle().Faint(true),
	}
}

// render styles s unless it is empty. Segments never contain newlines or tabs.
func render(st lipgloss.Style, s string) string {
	if s == "" {
		return ""
	}
	return st.Render(s)
}

func (s stackStyles) line(l string) string {
	body := strings.TrimLeft(l, " \t")
	indent := l[:len(l)-len(body)]
	if body == "" {
		return l
	}
	// Tabs inside the body would be expanded by lipgloss.
	if strings.ContainsRune(body, '\t') {
		return indent + render(s.dim, strings.ReplaceAll(body, "\t", " "))
	}
	switch {
	case sourceFileRe.MatchString(body):
		dir, file := "", body
		if i := strings.LastIndex(body, "/"); i >= 0 {
			dir, file = body[:i+1], body[i+1:]
		}
		name, lineNo, found := strings.Cut(file, ":")
		out := indent + render(s.path, dir) + render(s.file, name)
		if found {
			out += ":" + render(s.lineNo, lineNo)
		}
		return out
	case symbolRe.MatchString(body):
		if i := symbolSplit(body); i >= 0 {
			return indent + render(s.pkg, body[:i+1]) + render(s.function, body[i+1:])
		}
	}
	return indent + render(s.dim, body)
}

// symbolSplit returns the index of the dot between package and function in a
// frame such as pkg/path.Type.method(0x1, ...), or -1. Dots inside the
// argument list do not count.
func symbolSplit(frame string) int {
	name := frame
	if i := strings.IndexByte(frame, '('); i >= 0 {
		name = frame[:i]
	}
	return strings.LastIndex(name, ".")
}

// FormatStacktrace renders trace as a block framed by horizontal rules. It
// returns "" when the trace is empty or stacktraces are hidden.
func (p *Processor) FormatStacktrace(trace string) string {
	if p.cfg.HideStacktrace || strings.TrimSpace(trace) == "" {
		return ""
	}
	width := p.cfg.RuleWidth
	if width <= 0 {
		width = DefaultRuleWidth
	}
	rule := render(p.stack.rule, strings.Repeat("─", width))

	var b strings.Builder
	b.WriteString(rule)
	b.WriteByte('\n')
	b.WriteString(render(p.stack.label, "Stacktrace:"))
	b.WriteByte('\n')
	for _, l := range strings.Split(strings.TrimRight(trace, "\n"), "\n") {
		b.WriteString(p.stack.line(strings.TrimSuffix(l, "\r")))
		b.WriteByte('\n')
	}
	b.WriteString(rule)
	b.WriteByte('\n')
	return b.String()
}
