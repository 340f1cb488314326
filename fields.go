package snazy

// Field identifies one member of a Fields record.
type Field uint8

// Field bits, usable as a mask.
const (
	FieldMsg        Field = 1 << iota // the message text
	FieldLevel                        // the raw severity as logged
	FieldTimestamp                    // the already formatted time
	FieldOthers                       // extra annotation printed before the message
	FieldStacktrace                   // a multi-line stacktrace
)

// Fields is what the format detector pulled out of one line. Members are
// optional; Has reports which ones were found.
type Fields struct {
	Msg        string
	Level      string
	Timestamp  string
	Others     string
	Stacktrace string

	present Field
}

// Has reports whether f was set.
func (f Fields) Has(k Field) bool { return f.present&k != 0 }

// Empty reports whether nothing was recognised.
func (f Fields) Empty() bool { return f.present == 0 }

// Set stores v under k unless k already holds a value. The first writer wins.
func (f *Fields) Set(k Field, v string) {
	if f.present&k != 0 {
		return
	}
	switch k {
	case FieldMsg:
		f.Msg = v
	case FieldLevel:
		f.Level = v
	case FieldTimestamp:
		f.Timestamp = v
	case FieldOthers:
		f.Others = v
	case FieldStacktrace:
		f.Stacktrace = v
	default:
		return
	}
	f.present |= k
}

// Merge copies every member of src that f does not hold yet.
func (f *Fields) Merge(src Fields) {
	for _, k := range []Field{FieldMsg, FieldLevel, FieldTimestamp, FieldOthers, FieldStacktrace} {
		if src.Has(k) && !f.Has(k) {
			f.Set(k, src.get(k))
		}
	}
}

func (f Fields) get(k Field) string {
	switch k {
	case FieldMsg:
		return f.Msg
	case FieldLevel:
		return f.Level
	case FieldTimestamp:
		return f.Timestamp
	case FieldOthers:
		return f.Others
	case FieldStacktrace:
		return f.Stacktrace
	}
	return ""
}

// fieldByName maps a JSON-keys target to its field. "timestamp" and "date"
// are aliases for ts.
func fieldByName(name string) (Field, bool) {
	switch name {
	case "msg", "message":
		return FieldMsg, true
	case "level", "severity":
		return FieldLevel, true
	case "ts", "timestamp", "date":
		return FieldTimestamp, true
	case "others":
		return FieldOthers, true
	case "stacktrace":
		return FieldStacktrace, true
	}
	return 0, false
}
