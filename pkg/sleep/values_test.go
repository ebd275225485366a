package sleep

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeValue(t *testing.T) {
	v, err := normalizeValue(map[string]any{
		"a": 1.5,
		"b": []any{int64(2), "x", true},
		"c": nil,
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"a": json.Number("1.5"),
		"b": []any{json.Number("2"), "x", true},
		"c": nil,
	}, v)

	_, err = normalizeValue(math.NaN())
	assert.Error(t, err)
	_, err = normalizeValue([]any{math.Inf(1)})
	assert.Error(t, err)
	_, err = normalizeValue(json.Number("abc"))
	assert.Error(t, err)
}

func TestCoerceInt(t *testing.T) {
	cases := []struct {
		in   any
		want int64
	}{
		{json.Number("12"), 12},
		{json.Number("12.9"), 12},
		{json.Number("-3.5"), -3},
		{float64(7.2), 7},
		{" 42 ", 42},
		{int(5), 5},
	}
	for _, c := range cases {
		got, err := coerceInt(c.in)
		require.NoError(t, err, "%v", c.in)
		assert.Equal(t, c.want, got)
	}

	// the largest float64 below 2^63 still fits, -2^63 is exact
	got, err := coerceInt(float64(0x1p63 - 1024))
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64-1023), got)
	got, err = coerceInt(float64(-0x1p63))
	require.NoError(t, err)
	assert.Equal(t, int64(math.MinInt64), got)

	for _, bad := range []any{
		"4.5", "x", nil, true, map[string]any{}, math.Inf(-1),
		float64(math.MaxInt64), json.Number("9223372036854775808.5"), float64(-0x1p63 - 2048),
	} {
		_, err := coerceInt(bad)
		assert.Error(t, err, "%v", bad)
	}
}

func TestIsTruthy(t *testing.T) {
	for _, v := range []any{true, "yes", json.Number("1"), 0.5, map[string]any{"a": 1}} {
		assert.True(t, isTruthy(v), "%v", v)
	}
	for _, v := range []any{nil, false, "", json.Number("0"), 0.0, []any{}} {
		assert.False(t, isTruthy(v), "%v", v)
	}
}
