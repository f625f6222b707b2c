package dogen

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Number is the set of Go types a JSON number can be coerced into
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// ConversionError reports a JSON value that does not fit the property it is assigned to
type ConversionError struct {
	Property string
	Expected string
	Value    any
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("property %q: expected %s, got %T", e.Property, e.Expected, e.Value)
}

// AsString returns v as a string
func AsString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// AsBool returns v as a bool
func AsBool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

// AsObject returns v as a JsonObject. Plain map[string]any values are accepted.
func AsObject(v any) (JsonObject, bool) {
	switch t := v.(type) {
	case JsonObject:
		return t, true
	case map[string]any:
		return JsonObject(t), true
	default:
		return nil, false
	}
}

// AsArray returns v as a JsonArray. Plain []any values are accepted.
func AsArray(v any) (JsonArray, bool) {
	switch t := v.(type) {
	case JsonArray:
		return t, true
	case []any:
		return JsonArray(t), true
	default:
		return nil, false
	}
}

// AsNumber converts any JSON number representation to T. Integer targets
// reject fractional values and values out of range.
func AsNumber[T Number](v any) (T, bool) {
	var zero T
	switch t := v.(type) {
	case json.Number:
		if i, err := strconv.ParseInt(string(t), 10, 64); err == nil {
			return fromInt[T](i)
		}
		f, err := t.Float64()
		if err != nil {
			return zero, false
		}
		return fromFloat[T](f)
	case float64:
		return fromFloat[T](t)
	case float32:
		return fromFloat[T](float64(t))
	case int:
		return fromInt[T](int64(t))
	case int8:
		return fromInt[T](int64(t))
	case int16:
		return fromInt[T](int64(t))
	case int32:
		return fromInt[T](int64(t))
	case int64:
		return fromInt[T](t)
	case uint:
		return fromUint[T](uint64(t))
	case uint8:
		return fromUint[T](uint64(t))
	case uint16:
		return fromUint[T](uint64(t))
	case uint32:
		return fromUint[T](uint64(t))
	case uint64:
		return fromUint[T](t)
	default:
		return zero, false
	}
}

func fromInt[T Number](i int64) (T, bool) {
	out := T(i)
	if isFloat[T]() {
		return out, true
	}
	if int64(out) != i || (i < 0) != (out < 0) {
		return 0, false
	}
	return out, true
}

func fromUint[T Number](u uint64) (T, bool) {
	out := T(u)
	if isFloat[T]() {
		return out, true
	}
	if uint64(out) != u || out < 0 {
		return 0, false
	}
	return out, true
}

func fromFloat[T Number](f float64) (T, bool) {
	if isFloat[T]() {
		return T(f), true
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	if f < 0 {
		if f < math.MinInt64 {
			return 0, false
		}
		return fromInt[T](int64(f))
	}
	if f >= math.MaxUint64 {
		return 0, false
	}
	return fromUint[T](uint64(f))
}

func isFloat[T Number]() bool {
	half := 0.5
	return T(half) != 0
}
