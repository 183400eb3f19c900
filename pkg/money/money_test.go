package money

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want string
	}{
		{"zero", 0, "0.00"},
		{"small", 8.888888, "8.89"},
		{"thousands", 1234.5, "1,234.50"},
		{"millions", 1234567.891, "1,234,567.89"},
		{"exact group", 100000, "100,000.00"},
		{"negative", -1234.5, "-1,234.50"},
		{"negative rounds to zero", -0.001, "0.00"},
		{"rounds half up", 2.345, "2.35"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.in))
		})
	}
}

func TestFormatPlaces(t *testing.T) {
	assert.Equal(t, "1,235", FormatPlaces(1234.5, 0))
	assert.Equal(t, "8.8889", FormatPlaces(8.888888, 4))
	assert.Equal(t, "12", FormatPlaces(12, -1))
	assert.Equal(t, "-", FormatPlaces(math.NaN(), 2))
	assert.Equal(t, "-", FormatPlaces(math.Inf(1), 2))
}

func TestFormatCode(t *testing.T) {
	assert.Equal(t, "80.00 VES", FormatCode(80, VES))
	assert.Equal(t, "8.89 USDT", FormatCode(8.888, USDT))
}

func TestParse(t *testing.T) {
	v, err := Parse(" 1,234.5 ")
	require.NoError(t, err)
	assert.InDelta(t, 1234.5, v, 1e-9)

	v, err = Parse("10")
	require.NoError(t, err)
	assert.InDelta(t, 10.0, v, 0)

	_, err = Parse("ten")
	require.Error(t, err)

	_, err = Parse("")
	require.Error(t, err)
}
