// Package dogen holds the runtime types that generated converters depend on.
package dogen

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// JsonObject is the in-memory form of a JSON object
type JsonObject map[string]any

// JsonArray is the in-memory form of a JSON array
type JsonArray []any

// ParseObject decodes a JSON document into a JsonObject. Numbers are kept as
// json.Number so integer precision survives until AsNumber converts them.
func ParseObject(data []byte) (JsonObject, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var obj JsonObject
	if err := dec.Decode(&obj); err != nil {
		return nil, fmt.Errorf("decode json object: %w", err)
	}
	return obj, nil
}

// Encode serializes the object
func (o JsonObject) Encode() ([]byte, error) {
	return json.Marshal(map[string]any(o))
}

// Copy returns a deep copy of the object
func (o JsonObject) Copy() JsonObject {
	if o == nil {
		return nil
	}
	out, _ := AsObject(Clone(o))
	return out
}

// Copy returns a deep copy of the array
func (a JsonArray) Copy() JsonArray {
	if a == nil {
		return nil
	}
	out, _ := AsArray(Clone(a))
	return out
}

// Clone deep copies JSON values. Objects and arrays are copied recursively,
// scalars are returned as is.
func Clone(v any) any {
	switch t := v.(type) {
	case JsonObject:
		return cloneMap(t)
	case map[string]any:
		return cloneMap(t)
	case JsonArray:
		return cloneSlice(t)
	case []any:
		return cloneSlice(t)
	default:
		return v
	}
}

func cloneMap(m map[string]any) JsonObject {
	out := make(JsonObject, len(m))
	for k, v := range m {
		out[k] = Clone(v)
	}
	return out
}

func cloneSlice(s []any) JsonArray {
	out := make(JsonArray, len(s))
	for i, v := range s {
		out[i] = Clone(v)
	}
	return out
}
