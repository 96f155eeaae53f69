package pricing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatCurrency(t *testing.T) {
	tests := map[float64]string{
		0:          "$0",
		12.4:       "$12",
		1234.5:     "$1,235",
		24000:      "$24,000",
		1250000.75: "$1,250,001",
		-1234.4:    "-$1,234",
	}
	for in, want := range tests {
		require.Equal(t, want, FormatCurrency(in), "input %v", in)
	}
}

func TestFormatCompact(t *testing.T) {
	tests := map[float64]string{
		0:         "0",
		999:       "999",
		1000:      "1K",
		12345:     "12K",
		999999:    "1000K",
		1_000_000: "1.0M",
		1_500_000: "1.5M",
		7_654_321: "7.7M",
	}
	for in, want := range tests {
		require.Equal(t, want, FormatCompact(in), "input %v", in)
	}
}
