package webflow

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Field is one submitted form field. Value holds the raw JSON value so
// nested structures survive untouched.
type Field struct {
	Key   string
	Value json.RawMessage
}

// Text renders the value for a plain-text notification: strings unquoted,
// null as an empty string, anything else as compact JSON.
func (f Field) Text() string {
	raw := bytes.TrimSpace(f.Value)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

// Fields is a JSON object decoded with its key order preserved.
type Fields []Field

// Get returns the rendered value of the first field with the given key.
func (fs Fields) Get(key string) (string, bool) {
	for _, f := range fs {
		if f.Key == key {
			return f.Text(), true
		}
	}
	return "", false
}

// UnmarshalJSON decodes a JSON object keeping document order. A repeated key
// keeps its first position and takes the last value. null decodes to an
// empty list.
func (fs *Fields) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*fs = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("fields: expected JSON object, got %v", tok)
	}

	out := make(Fields, 0, 8)
	index := make(map[string]int, 8)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("fields: unexpected token %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		if i, seen := index[key]; seen {
			out[i].Value = raw
			continue
		}
		index[key] = len(out)
		out = append(out, Field{Key: key, Value: raw})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*fs = out
	return nil
}

// MarshalJSON encodes the fields back into a JSON object in the same order.
func (fs Fields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range fs {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		if len(f.Value) == 0 {
			buf.WriteString("null")
			continue
		}
		buf.Write(f.Value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
