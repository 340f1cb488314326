package snazy

import (
	"encoding/json"
	"math"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/lestrrat-go/strftime"
)

// timestampLayout is the only string layout recognised: RFC 3339 in UTC with
// optional fractional seconds, as zap and knative emit it.
const timestampLayout = "2006-01-02T15:04:05.999999999Z"

// loadLocation resolves an IANA zone name. Empty or unknown names yield UTC
// and ok=false for the unknown case.
func loadLocation(name string) (loc *time.Location, ok bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return time.UTC, true
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC, false
	}
	return loc, true
}

// timeFormatter renders instants with a strftime layout in a fixed zone.
type timeFormatter struct {
	layout *strftime.Strftime
	loc    *time.Location
}

func newTimeFormatter(format, timezone string) (timeFormatter, error) {
	loc, _ := loadLocation(timezone)
	layout, err := strftime.New(format)
	if err != nil {
		return timeFormatter{loc: loc}, err
	}
	return timeFormatter{layout: layout, loc: loc}, nil
}

func (f timeFormatter) format(t time.Time) string {
	t = t.In(f.loc)
	if f.layout == nil {
		return t.Format(time.TimeOnly)
	}
	return f.layout.FormatString(t)
}

// fromString parses s with timestampLayout; s comes back unchanged when it
// does not parse.
func (f timeFormatter) fromString(s string) string {
	t, err := time.Parse(timestampLayout, s)
	if err != nil {
		return s
	}
	return f.format(t)
}

// fromNumber treats sec as Unix epoch seconds, dropping the fraction.
func (f timeFormatter) fromNumber(sec float64) string {
	if math.IsNaN(sec) || math.IsInf(sec, 0) {
		return ""
	}
	return f.format(time.Unix(int64(sec), 0).UTC())
}

func (f timeFormatter) fromJSON(v any) string {
	switch x := v.(type) {
	case string:
		return f.fromString(x)
	case json.Number:
		n, err := x.Float64()
		if err != nil {
			return ""
		}
		return f.fromNumber(n)
	case float64:
		return f.fromNumber(x)
	case int64:
		return f.format(time.Unix(x, 0).UTC())
	case int:
		return f.format(time.Unix(int64(x), 0).UTC())
	default:
		return ""
	}
}

// FormatTimestamp renders an RFC 3339 UTC timestamp with a strftime format,
// shifted into timezone when it names a known zone. Unparseable input is
// returned unchanged.
func FormatTimestamp(s, format, timezone string) string {
	f, _ := newTimeFormatter(format, timezone)
	return f.fromString(s)
}

// FormatUnix renders Unix epoch seconds; the fractional part is truncated.
func FormatUnix(sec float64, format, timezone string) string {
	f, _ := newTimeFormatter(format, timezone)
	return f.fromNumber(sec)
}

// FormatJSONTimestamp dispatches on the decoded JSON kind: strings go through
// FormatTimestamp, numbers through FormatUnix, anything else renders empty.
func FormatJSONTimestamp(v any, format, timezone string) string {
	f, _ := newTimeFormatter(format, timezone)
	return f.fromJSON(v)
}
