package snazy

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// EventColumns are the byte offsets where each column of a
// `kubectl get events` table starts.
type EventColumns struct {
	LastSeen int
	Type     int
	Reason   int
	Object   int
	Message  int
}

// EventRow is one parsed line of the events table.
type EventRow struct {
	LastSeen string
	Type     string
	Reason   string
	Object   string
	Message  string
}

// Visible widths of the rendered columns. MESSAGE is left unpadded.
const (
	eventLastSeenWidth = 10
	eventTypeWidth     = 9
	eventReasonWidth   = 24
	eventObjectWidth   = 48
)

// DetectEventsHeader recognises the header of `kubectl get events` output
// and records where each column starts. The line must start with LAST SEEN
// and contain TYPE and REASON. OBJECT and MESSAGE must be present as well,
// and all five columns must appear in that order, since rows are sliced at
// these offsets.
func DetectEventsHeader(line string) (EventColumns, bool) {
	trimmed := strings.TrimLeft(line, " \t")
	if !strings.HasPrefix(trimmed, "LAST SEEN") ||
		!strings.Contains(line, "TYPE") ||
		!strings.Contains(line, "REASON") {
		return EventColumns{}, false
	}
	cols := EventColumns{
		LastSeen: strings.Index(line, "LAST SEEN"),
		Type:     strings.Index(line, "TYPE"),
		Reason:   strings.Index(line, "REASON"),
		Object:   strings.Index(line, "OBJECT"),
		Message:  strings.Index(line, "MESSAGE"),
	}
	if cols.LastSeen > cols.Type || cols.Type > cols.Reason ||
		cols.Reason > cols.Object || cols.Object > cols.Message {
		return EventColumns{}, false
	}
	return cols, true
}

// ParseEventsRow slices line at the recorded offsets. It fails when the line
// is shorter than the MESSAGE offset.
func ParseEventsRow(line string, cols EventColumns) (EventRow, bool) {
	if cols.Message > len(line) || cols.LastSeen < 0 {
		return EventRow{}, false
	}
	field := func(from, to int) string {
		return strings.TrimSpace(line[from:to])
	}
	return EventRow{
		LastSeen: field(cols.LastSeen, cols.Type),
		Type:     field(cols.Type, cols.Reason),
		Reason:   field(cols.Reason, cols.Object),
		Object:   field(cols.Object, cols.Message),
		Message:  strings.TrimSpace(line[cols.Message:]),
	}, true
}

type eventStyles struct {
	header  lipgloss.Style
	warning lipgloss.Style
	normal  lipgloss.Style
	other   lipgloss.Style
	reason  lipgloss.Style
	kinds   map[string]lipgloss.Style
	kind    lipgloss.Style
}

func newEventStyles(r *lipgloss.Renderer) eventStyles {
	fg := func(c string) lipgloss.Style { return r.NewStyle().Foreground(lipgloss.Color(c)) }
	return eventStyles{
		header:  r.NewStyle().Bold(true).Underline(true),
		warning: fg("1"),
		normal:  fg("2"),
		other:   r.NewStyle().Bold(true),
		reason:  fg("3"),
		kinds: map[string]lipgloss.Style{
			"pod":         fg("4"),
			"deployment":  fg("5"),
			"replicaset":  fg("6"),
			"statefulset": fg("12"),
			"daemonset":   fg("13"),
			"job":         fg("10"),
			"cronjob":     fg("14"),
			"service":     fg("11"),
			"node":        fg("9"),
		},
		kind: fg("8"),
	}
}

func pad(s string, width int) string {
	return fmt.Sprintf("%-*s", width, s)
}

func (s eventStyles) renderHeader() string {
	return s.header.Render(pad("LAST SEEN", eventLastSeenWidth)) + " " +
		s.header.Render(pad("TYPE", eventTypeWidth)) + " " +
		s.header.Render(pad("REASON", eventReasonWidth)) + " " +
		s.header.Render(pad("OBJECT", eventObjectWidth)) + " " +
		s.header.Render("MESSAGE")
}

func (s eventStyles) renderType(t string) string {
	padded := pad(t, eventTypeWidth)
	switch t {
	case "Warning":
		return s.warning.Render(padded)
	case "Normal":
		return s.normal.Render(padded)
	default:
		return s.other.Render(padded)
	}
}

// renderObject colours the resource kind in front of the first slash.
func (s eventStyles) renderObject(obj string) string {
	padding := ""
	if n := eventObjectWidth - len(obj); n > 0 {
		padding = strings.Repeat(" ", n)
	}
	kind, name, ok := strings.Cut(obj, "/")
	if !ok {
		return obj + padding
	}
	style, known := s.kinds[strings.ToLower(kind)]
	if !known {
		style = s.kind
	}
	return style.Render(kind) + "/" + name + padding
}

func (s eventStyles) renderRow(row EventRow, message string) string {
	return pad(row.LastSeen, eventLastSeenWidth) + " " +
		s.renderType(row.Type) + " " +
		s.reason.Render(pad(row.Reason, eventReasonWidth)) + " " +
		s.renderObject(row.Object) + " " +
		message
}
