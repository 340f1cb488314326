package snazy

import (
	"fmt"
	"strings"
	"testing"
)

var (
	eventsHeader = fmt.Sprintf("%-12s%-10s%-10s%-14s%s", "LAST SEEN", "TYPE", "REASON", "OBJECT", "MESSAGE")
	eventsRow    = fmt.Sprintf("%-12s%-10s%-10s%-14s%s", "5m", "Warning", "BackOff", "pod/api-1", "Back-off restarting failed container")
)

func TestDetectEventsHeader(t *testing.T) {
	cols, ok := DetectEventsHeader(eventsHeader)
	if !ok {
		t.Fatalf("expected header to be detected")
	}
	want := EventColumns{LastSeen: 0, Type: 12, Reason: 22, Object: 32, Message: 46}
	if cols != want {
		t.Fatalf("columns = %+v, want %+v", cols, want)
	}

	indented := "  " + eventsHeader
	cols, ok = DetectEventsHeader(indented)
	if !ok || cols.LastSeen != 2 || cols.Message != 48 {
		t.Fatalf("indented header: %+v %v", cols, ok)
	}
}

func TestDetectEventsHeaderRejects(t *testing.T) {
	for _, line := range []string{
		"LAST SEEN   TYPE      OBJECT     MESSAGE",
		"TYPE  LAST SEEN  REASON  OBJECT  MESSAGE",
		"LAST SEEN   TYPE      REASON    MESSAGE",
		"LAST SEEN   MESSAGE   REASON    OBJECT   TYPE",
		`{"level":"info","msg":"LAST SEEN TYPE REASON"}`,
	} {
		if _, ok := DetectEventsHeader(line); ok {
			t.Fatalf("%q should not be a header", line)
		}
	}
}

func TestParseEventsRow(t *testing.T) {
	cols, _ := DetectEventsHeader(eventsHeader)
	row, ok := ParseEventsRow(eventsRow, cols)
	if !ok {
		t.Fatalf("expected row to parse")
	}
	want := EventRow{
		LastSeen: "5m",
		Type:     "Warning",
		Reason:   "BackOff",
		Object:   "pod/api-1",
		Message:  "Back-off restarting failed container",
	}
	if row != want {
		t.Fatalf("row = %+v, want %+v", row, want)
	}
	if _, ok := ParseEventsRow("5m   Normal", cols); ok {
		t.Fatalf("short row should not parse")
	}
}

func TestEventsTableRendering(t *testing.T) {
	p, buf := newTestProcessor(t, plainConfig())
	var st StreamState
	for _, line := range []string{eventsHeader, eventsRow} {
		if _, ok, err := p.Process(&st, line); ok || err != nil {
			t.Fatalf("table lines return no record: ok=%v err=%v", ok, err)
		}
	}
	want := fmt.Sprintf("%-10s %-9s %-24s %-48s %s\n", "LAST SEEN", "TYPE", "REASON", "OBJECT", "MESSAGE") +
		fmt.Sprintf("%-10s %-9s %-24s %-48s %s\n", "5m", "Warning", "BackOff", "pod/api-1", "Back-off restarting failed container")
	if got := buf.String(); got != want {
		t.Fatalf("unexpected table\nexpected:\n%q\nactual:\n%q", want, got)
	}
}

func TestEventsTableModeIsSticky(t *testing.T) {
	p, buf := newTestProcessor(t, plainConfig())
	var st StreamState
	if _, _, err := p.Process(&st, eventsHeader); err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if !st.TableMode() {
		t.Fatalf("expected table mode after header")
	}
	buf.Reset()

	if _, ok, _ := p.Process(&st, `{"level":"info","msg":"foo"}`); ok {
		t.Fatalf("JSON must not be interpreted in table mode")
	}
	if buf.Len() != 0 {
		t.Fatalf("short line should be dropped, got %q", buf.String())
	}

	long := `{"level":"info","msg":"this JSON line is long enough to be sliced"}`
	if _, ok, _ := p.Process(&st, long); ok {
		t.Fatalf("JSON must not be interpreted in table mode")
	}
	if got := buf.String(); strings.Contains(got, "INFO") || !strings.HasSuffix(got, "\n") {
		t.Fatalf("long line should render as a table row, got %q", got)
	}

	other := StreamState{}
	if other.TableMode() {
		t.Fatalf("a fresh stream starts outside table mode")
	}
}

func TestEventsTableColors(t *testing.T) {
	cfg := plainConfig()
	cfg.Color = ColorAlways
	cfg.Highlights = []HighlightRule{ParseHighlight("restarting", 0)}
	p, buf := newTestProcessor(t, cfg)
	var st StreamState
	_, _, _ = p.Process(&st, eventsHeader)
	buf.Reset()
	_, _, _ = p.Process(&st, eventsRow)
	got := buf.String()
	if !strings.Contains(got, "\x1b[33mrestarting\x1b[0m") {
		t.Fatalf("message should be highlighted, got %q", got)
	}
	if !strings.Contains(got, "/api-1") || !strings.Contains(got, "\x1b[") {
		t.Fatalf("expected styled row, got %q", got)
	}
}
