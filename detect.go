package snazy

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-openapi/jsonpointer"
)

// extractor is one candidate of the format detector. It returns the fields
// it could read from the decoded document.
type extractor interface {
	extract(doc document) Fields
}

type extractorFunc func(doc document) Fields

func (f extractorFunc) extract(doc document) Fields { return f(doc) }

// keyPointer is one JSON-keys entry resolved at construction time.
type keyPointer struct {
	field Field
	ptr   jsonpointer.Pointer
}

// pointerExtractor resolves user supplied JSON pointers.
type pointerExtractor struct {
	keys []keyPointer
	tf   timeFormatter
}

func newPointerExtractor(keys map[string]string, tf timeFormatter) (*pointerExtractor, error) {
	names := make([]string, 0, len(keys))
	for name := range keys {
		names = append(names, name)
	}
	sort.Strings(names)

	pe := &pointerExtractor{tf: tf}
	for _, name := range names {
		field, ok := fieldByName(strings.ToLower(strings.TrimSpace(name)))
		if !ok {
			return nil, fmt.Errorf("unknown json key target %q (use msg, level, ts, others or stacktrace)", name)
		}
		path := strings.TrimSpace(keys[name])
		if path != "" && !strings.HasPrefix(path, "/") {
			path = "/" + jsonpointer.Escape(path)
		}
		ptr, err := jsonpointer.New(path)
		if err != nil {
			return nil, fmt.Errorf("json key %s: %w", name, err)
		}
		pe.keys = append(pe.keys, keyPointer{field: field, ptr: ptr})
	}
	return pe, nil
}

func (pe *pointerExtractor) extract(doc document) Fields {
	var out Fields
	for _, k := range pe.keys {
		v, _, err := k.ptr.Get(doc.values)
		if err != nil {
			continue
		}
		if k.field == FieldTimestamp {
			out.Set(k.field, pe.tf.fromJSON(v))
			continue
		}
		out.Set(k.field, doc.text(v, k.ptr.DecodedTokens()))
	}
	return out
}

var providerIcons = map[string]string{
	"github":           "\uf09b",
	"gitlab":           "\uf296",
	"bitbucket-cloud":  "\uf171",
	"bitbucket-server": "\uf171S",
	"incoming":         "\uf08b",
}

// ProviderIcon maps a pipelines-as-code provider to its glyph. Unknown
// providers are returned verbatim.
func ProviderIcon(provider string) string {
	if icon, ok := providerIcons[provider]; ok {
		return icon
	}
	return provider
}

func stringField(doc document, key string) (string, bool) {
	v, ok := doc.values[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// severityExtractor reads {severity, timestamp, caller, message} records as
// logged by pipelines-as-code. All four must be strings.
func severityExtractor(tf timeFormatter) extractor {
	return extractorFunc(func(doc document) Fields {
		var out Fields
		severity, ok1 := stringField(doc, "severity")
		timestamp, ok2 := stringField(doc, "timestamp")
		_, ok3 := stringField(doc, "caller")
		message, ok4 := stringField(doc, "message")
		if !ok1 || !ok2 || !ok3 || !ok4 {
			return out
		}
		out.Set(FieldMsg, strings.TrimSpace(message))
		out.Set(FieldLevel, strings.ToUpper(severity))
		out.Set(FieldTimestamp, tf.fromString(timestamp))
		if provider, ok := doc.values["provider"]; ok {
			out.Set(FieldOthers, ProviderIcon(doc.text(provider, []string{"provider"}))+" ")
		}
		return out
	})
}

// levelMsgExtractor reads {level, msg} records with an optional ts that may
// be a string or epoch seconds, as zap and knative log them.
func levelMsgExtractor(tf timeFormatter) extractor {
	return extractorFunc(func(doc document) Fields {
		var out Fields
		level, ok1 := stringField(doc, "level")
		msg, ok2 := stringField(doc, "msg")
		if !ok1 || !ok2 {
			return out
		}
		out.Set(FieldMsg, strings.TrimSpace(msg))
		out.Set(FieldLevel, strings.ToUpper(level))
		if ts, ok := doc.values["ts"]; ok {
			out.Set(FieldTimestamp, tf.fromJSON(ts))
		}
		return out
	})
}

var stacktraceExtractor = extractorFunc(func(doc document) Fields {
	var out Fields
	if st, ok := stringField(doc, "stacktrace"); ok {
		out.Set(FieldStacktrace, st)
	}
	return out
})

// detect runs every candidate against line and merges their fields; earlier
// candidates win. An empty result means the line is unstructured.
func detect(line string, candidates []extractor) Fields {
	var fields Fields
	doc, ok := decodeObject(line)
	if !ok {
		return fields
	}
	for _, c := range candidates {
		fields.Merge(c.extract(doc))
	}
	return fields
}
