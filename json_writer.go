package lpfolio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
)

// jsonObjectWriter writes the fields of a JSON object in call order, so that
// ledger lines keep a stable key order. The zero value is an empty object.
type jsonObjectWriter struct {
	fields [][]byte
	err    error
}

// Append writes key with the JSON encoding of value.
func (w *jsonObjectWriter) Append(key string, value any) {
	if w.err != nil {
		return
	}
	k, _ := json.Marshal(key)
	v, err := json.Marshal(value)
	if err != nil {
		w.err = fmt.Errorf("cannot encode %q: %w", key, err)
		return
	}
	w.fields = append(w.fields, append(append(k, ':'), v...))
}

// Optional writes key only when value is set: a non empty string or list, or
// a declared pool.
func (w *jsonObjectWriter) Optional(key string, value any) {
	switch v := value.(type) {
	case string:
		if v == "" {
			return
		}
	case []string:
		if len(v) == 0 {
			return
		}
	case *Pool:
		if v == nil {
			return
		}
	}
	w.Append(key, value)
}

// EmbedFrom writes the fields of the JSON object m encodes.
func (w *jsonObjectWriter) EmbedFrom(m json.Marshaler) {
	if w.err != nil {
		return
	}
	raw, err := m.MarshalJSON()
	if err != nil {
		w.err = err
		return
	}
	inner := bytes.TrimSpace(raw)
	inner = bytes.TrimSuffix(bytes.TrimPrefix(inner, []byte("{")), []byte("}"))
	if len(bytes.TrimSpace(inner)) > 0 {
		w.fields = append(w.fields, inner)
	}
}

// MarshalJSON implements the json.Marshaler interface.
func (w *jsonObjectWriter) MarshalJSON() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	return slices.Concat([]byte("{"), bytes.Join(w.fields, []byte(",")), []byte("}")), nil
}
