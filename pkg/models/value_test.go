package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueOf(t *testing.T) {
	v, err := ValueOf("auto")
	require.NoError(t, err)
	assert.Equal(t, ValueKindString, v.Kind)
	assert.Equal(t, "auto", v.Str)

	v, err = ValueOf(21.5)
	require.NoError(t, err)
	assert.Equal(t, ValueKindNumber, v.Kind)
	assert.Equal(t, 21.5, v.Num)

	v, err = ValueOf(7)
	require.NoError(t, err)
	assert.Equal(t, ValueKindNumber, v.Kind)
	assert.Equal(t, 7.0, v.Num)

	v, err = ValueOf(true)
	require.NoError(t, err)
	assert.Equal(t, ValueKindBool, v.Kind)
	assert.True(t, v.Bool)

	v, err = ValueOf(json.Number("3.14"))
	require.NoError(t, err)
	assert.Equal(t, 3.14, v.Num)

	v, err = ValueOf(map[string]any{"nested": 1.0})
	require.NoError(t, err)
	assert.Equal(t, ValueKindMap, v.Kind)
	assert.Equal(t, 1.0, v.Map["nested"].Num)

	_, err = ValueOf([]any{1, 2})
	assert.Error(t, err)

	_, err = ValueOf(json.Number("not-a-number"))
	assert.Error(t, err)
}

func TestValuesOf(t *testing.T) {
	values, err := ValuesOf(map[string]any{
		"temp": 20.0,
		"mode": "auto",
	})
	require.NoError(t, err)
	assert.Len(t, values, 2)
	assert.Equal(t, 20.0, values["temp"].Num)

	_, err = ValuesOf(map[string]any{"bad": []any{}})
	assert.Error(t, err)
}

func TestValueFloat64(t *testing.T) {
	num, ok := NumberValue(4.2).Float64()
	assert.True(t, ok)
	assert.Equal(t, 4.2, num)

	// no implicit coercion of other kinds
	_, ok = StringValue("4.2").Float64()
	assert.False(t, ok)
	_, ok = BoolValue(true).Float64()
	assert.False(t, ok)
}

func TestValueAny(t *testing.T) {
	assert.Equal(t, "auto", StringValue("auto").Any())
	assert.Equal(t, 1.5, NumberValue(1.5).Any())
	assert.Equal(t, true, BoolValue(true).Any())

	nested, err := ValueOf(map[string]any{"a": 1.0})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": 1.0}, nested.Any())
}

func TestValueJSONRoundTrip(t *testing.T) {
	original, err := ValueOf(map[string]any{
		"temp": 20.5,
		"tags": map[string]any{"zone": "north"},
		"on":   true,
	})
	require.NoError(t, err)

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded Value
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, original.Any(), decoded.Any())
}
