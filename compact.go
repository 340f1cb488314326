package snazy

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strconv"
	"strings"

	"pkt.systems/jpact"
)

// document is a decoded JSON object line. raw keeps the source text so nested
// values can be shown the way they were logged.
type document struct {
	values map[string]any
	raw    []byte
}

// decodeObject decodes line as a single JSON object. Numbers stay
// json.Number.
func decodeObject(line string) (document, bool) {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) < 2 || trimmed[0] != '{' || trimmed[len(trimmed)-1] != '}' {
		return document{}, false
	}
	dec := json.NewDecoder(strings.NewReader(trimmed))
	dec.UseNumber()
	var values map[string]any
	if err := dec.Decode(&values); err != nil || values == nil {
		return document{}, false
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return document{}, false
	}
	return document{values: values, raw: []byte(trimmed)}, true
}

// rawAt walks tokens through the source text and returns the bytes of the
// value they address.
func (d document) rawAt(tokens []string) (json.RawMessage, bool) {
	cur := json.RawMessage(d.raw)
	for _, tok := range tokens {
		cur = bytes.TrimSpace(cur)
		if len(cur) == 0 {
			return nil, false
		}
		switch cur[0] {
		case '{':
			var obj map[string]json.RawMessage
			if err := json.Unmarshal(cur, &obj); err != nil {
				return nil, false
			}
			next, ok := obj[tok]
			if !ok {
				return nil, false
			}
			cur = next
		case '[':
			var arr []json.RawMessage
			if err := json.Unmarshal(cur, &arr); err != nil {
				return nil, false
			}
			i, err := strconv.Atoi(tok)
			if err != nil || i < 0 || i >= len(arr) {
				return nil, false
			}
			cur = arr[i]
		default:
			return nil, false
		}
	}
	return cur, true
}

// text renders v, found at tokens. Objects and arrays are compacted from the
// source so key order and number spelling survive; everything else goes
// through compactValue.
func (d document) text(v any, tokens []string) string {
	switch v.(type) {
	case map[string]any, []any:
		raw, ok := d.rawAt(tokens)
		if !ok {
			break
		}
		buf := acquireBuffer()
		defer releaseBuffer(buf)
		if err := jpact.CompactWriter(buf, bytes.NewReader(raw), 0); err != nil {
			break
		}
		return buf.String()
	}
	return compactValue(v)
}

// compactValue renders a decoded JSON value as text. Strings come back bare,
// everything else as compact JSON.
func compactValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case json.Number:
		return x.String()
	case nil:
		return "null"
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(raw)
}
