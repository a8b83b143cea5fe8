package chain

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wei(s string) *big.Int {
	n, _ := new(big.Int).SetString(s, 10)
	return n
}

func TestFormatUnits(t *testing.T) {
	tests := []struct {
		name     string
		raw      *big.Int
		decimals uint8
		expected string
	}{
		{"ten tokens", wei("10000000000000000000"), 18, "10.0"},
		{"zero", big.NewInt(0), 18, "0.0"},
		{"fraction", wei("1500000000000000000"), 18, "1.5"},
		{"one wei", big.NewInt(1), 18, "0.000000000000000001"},
		{"six decimals", big.NewInt(1_234_567), 6, "1.234567"},
		{"no decimals", big.NewInt(42), 0, "42"},
		{"negative", big.NewInt(-250), 2, "-2.5"},
		{"nil", nil, 18, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatUnits(tt.raw, tt.decimals))
		})
	}
}

func TestParseUnits(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		decimals uint8
		expected string
	}{
		{"integer", "10", 18, "10000000000000000000"},
		{"fraction", "1.5", 18, "1500000000000000000"},
		{"leading dot", ".25", 2, "25"},
		{"trailing dot", "3.", 2, "300"},
		{"smallest unit", "0.000001", 6, "1"},
		{"whitespace", " 7 ", 0, "7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseUnits(tt.in, tt.decimals)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got.String())
		})
	}
}

func TestParseUnitsRejects(t *testing.T) {
	for _, in := range []string{"", "-1", "abc", "1.2.3", "1e18", "0.123", "."} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseUnits(in, 2)
			assert.ErrorIs(t, err, ErrInvalidAmount)
		})
	}
}

func TestParseFormatAgree(t *testing.T) {
	raw, err := ParseUnits("123.456", 18)
	require.NoError(t, err)
	assert.Equal(t, "123.456", FormatUnits(raw, 18))
}
