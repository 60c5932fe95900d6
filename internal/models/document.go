package models

import (
	"bytes"
	"encoding/json"
	"reflect"
)

// Collection names used by the API.
const (
	ProductCollection = "product"
	OrderCollection   = "order"
)

// Document is a schema-flexible record as stored in a collection.
type Document map[string]any

// DecodeDocument parses a JSON object. Integers that fit in an int64 stay
// int64; other numbers become float64. JSON null yields a nil Document.
func DecodeDocument(data []byte) (Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}

	switch obj := v.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return Document(normalizeNumbers(obj).(map[string]any)), nil
	default:
		return nil, &json.UnmarshalTypeError{
			Value: jsonKind(v),
			Type:  reflect.TypeOf(Document{}),
		}
	}
}

func normalizeNumbers(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case map[string]any:
		for k, e := range t {
			t[k] = normalizeNumbers(e)
		}
		return t
	case []any:
		for i, e := range t {
			t[i] = normalizeNumbers(e)
		}
		return t
	default:
		return v
	}
}

func jsonKind(v any) string {
	switch v.(type) {
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "bool"
	case json.Number:
		return "number"
	default:
		return "value"
	}
}
