package snazy

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

const goTrace = "main.main()\n\t/app/cmd/main.go:12 +0x1d\ngoroutine 1 [running]:"

func TestFormatStacktracePlain(t *testing.T) {
	cfg := plainConfig()
	cfg.RuleWidth = 10
	p, _ := newTestProcessor(t, cfg)
	rule := strings.Repeat("─", 10)
	want := rule + "\nStacktrace:\n" + goTrace + "\n" + rule + "\n"
	if got := p.FormatStacktrace(goTrace); got != want {
		t.Fatalf("unexpected block\nexpected:\n%q\nactual:\n%q", want, got)
	}
}

func TestFormatStacktraceHidden(t *testing.T) {
	cfg := plainConfig()
	cfg.HideStacktrace = true
	p, _ := newTestProcessor(t, cfg)
	if got := p.FormatStacktrace(goTrace); got != "" {
		t.Fatalf("hidden stacktrace rendered %q", got)
	}
	p, _ = newTestProcessor(t, plainConfig())
	if got := p.FormatStacktrace("  \n"); got != "" {
		t.Fatalf("empty stacktrace rendered %q", got)
	}
}

func TestFormatStacktraceDefaultWidth(t *testing.T) {
	cfg := plainConfig()
	cfg.RuleWidth = 0
	p, _ := newTestProcessor(t, cfg)
	got := p.FormatStacktrace("x")
	if !strings.HasPrefix(got, strings.Repeat("─", DefaultRuleWidth)+"\n") {
		t.Fatalf("expected default rule width, got %q", got)
	}
}

func TestFormatStacktraceColor(t *testing.T) {
	cfg := plainConfig()
	cfg.Color = ColorAlways
	p, _ := newTestProcessor(t, cfg)
	got := p.FormatStacktrace(goTrace)
	if !strings.Contains(got, "\x1b[") {
		t.Fatalf("expected styling, got %q", got)
	}
	lines := strings.Split(got, "\n")
	if !strings.HasPrefix(lines[3], "\t") {
		t.Fatalf("indentation must be kept outside styling, got %q", lines[3])
	}
	for _, want := range []string{"main.go", "12 +0x1d", "goroutine 1 [running]:", "Stacktrace:"} {
		if !strings.Contains(got, want) {
			t.Fatalf("missing %q in %q", want, got)
		}
	}
}

func TestSymbolSplit(t *testing.T) {
	for frame, want := range map[string]int{
		"main.foo(...)":                    4,
		"main.main()":                      4,
		"github.com/x/y.(*T).Run(0xc0, 2)": 14,
		"pkg.fn":                           3,
		"call(a.b)":                        -1,
	} {
		if got := symbolSplit(frame); got != want {
			t.Fatalf("symbolSplit(%q) = %d, want %d", frame, got, want)
		}
	}
}

func TestStackLineSymbolSegments(t *testing.T) {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)
	mark := func(pre, post string) lipgloss.Style {
		return r.NewStyle().Transform(func(s string) string { return pre + s + post })
	}
	s := stackStyles{pkg: mark("<", ">"), function: mark("[", "]"), dim: mark("~", "~")}
	cases := map[string]string{
		"main.foo(...)":        "<main.>[foo(...)]",
		"\tpkg/sub.(*T).Run()": "\t<pkg/sub.>[(*T).Run()]",
		"call(a.b)":            "~call(a.b)~",
	}
	for in, want := range cases {
		if got := s.line(in); got != want {
			t.Fatalf("line(%q) = %q, want %q", in, got, want)
		}
	}
}
