package models

import (
	"encoding/json"
	"fmt"
)

type ValueKind string

const (
	ValueKindString ValueKind = "string"
	ValueKindNumber ValueKind = "number"
	ValueKindBool   ValueKind = "bool"
	ValueKindMap    ValueKind = "map"
)

// Value is the tagged representation of a schema-less state or metadata
// entry. Numeric coercion happens only through Float64, at the rollup
// boundary, never implicitly.
type Value struct {
	Kind ValueKind
	Str  string
	Num  float64
	Bool bool
	Map  map[string]Value
}

func StringValue(s string) Value  { return Value{Kind: ValueKindString, Str: s} }
func NumberValue(n float64) Value { return Value{Kind: ValueKindNumber, Num: n} }
func BoolValue(b bool) Value      { return Value{Kind: ValueKindBool, Bool: b} }

// ValueOf converts a decoded-JSON value into a tagged Value.
func ValueOf(v any) (Value, error) {
	switch x := v.(type) {
	case string:
		return StringValue(x), nil
	case bool:
		return BoolValue(x), nil
	case float64:
		return NumberValue(x), nil
	case float32:
		return NumberValue(float64(x)), nil
	case int:
		return NumberValue(float64(x)), nil
	case int32:
		return NumberValue(float64(x)), nil
	case int64:
		return NumberValue(float64(x)), nil
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("invalid number %q", x.String())
		}
		return NumberValue(f), nil
	case Value:
		return x, nil
	case map[string]any:
		m := make(map[string]Value, len(x))
		for k, nested := range x {
			nv, err := ValueOf(nested)
			if err != nil {
				return Value{}, err
			}
			m[k] = nv
		}
		return Value{Kind: ValueKindMap, Map: m}, nil
	default:
		return Value{}, fmt.Errorf("unsupported value type %T", v)
	}
}

// ValuesOf converts a whole decoded-JSON object.
func ValuesOf(in map[string]any) (map[string]Value, error) {
	out := make(map[string]Value, len(in))
	for k, v := range in {
		value, err := ValueOf(v)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", k, err)
		}
		out[k] = value
	}
	return out, nil
}

// Float64 returns the numeric content, reporting false for any other kind.
func (v Value) Float64() (float64, bool) {
	if v.Kind == ValueKindNumber {
		return v.Num, true
	}
	return 0, false
}

// Any returns the plain-JSON representation used for JSONMap storage.
func (v Value) Any() any {
	switch v.Kind {
	case ValueKindString:
		return v.Str
	case ValueKindNumber:
		return v.Num
	case ValueKindBool:
		return v.Bool
	case ValueKindMap:
		m := make(map[string]any, len(v.Map))
		for k, nested := range v.Map {
			m[k] = nested.Any()
		}
		return m
	default:
		return nil
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Any())
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ValueOf(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
