package tx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateVSize(t *testing.T) {
	tests := []struct {
		name      string
		hasChange bool
		dataLen   int
		want      int
	}{
		{"with change, 14 byte payload", true, 14, 133},
		{"no change, 10 byte payload", false, 10, 98},
		{"with change, 1 byte payload", true, 1, 120},
		{"no change, 80 byte payload", false, 80, 168},
		{"with change, 80 byte payload", true, 80, 199},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EstimateVSize(tt.hasChange, tt.dataLen))
		})
	}
}

func TestEstimateFee_WholeRate(t *testing.T) {
	quote := EstimateFee(true, 14, 2.0)
	assert.Equal(t, 133, quote.VSize)
	assert.Equal(t, int64(266), quote.Fee)

	quote = EstimateFee(false, 10, 2.0)
	assert.Equal(t, 98, quote.VSize)
	assert.Equal(t, int64(196), quote.Fee)
}

func TestEstimateFee_FractionalRateRoundsUp(t *testing.T) {
	// 98 vB * 1.1 sat/vB = 107.8 sat, rounded up to 108.
	quote := EstimateFee(false, 10, 1.1)
	require.Equal(t, 98, quote.VSize)
	assert.Equal(t, int64(108), quote.Fee)

	// Exact products are not rounded up further: 98 * 0.5 = 49.
	quote = EstimateFee(false, 10, 0.5)
	assert.Equal(t, int64(49), quote.Fee)
}

func TestEstimateFee_PayloadLengthScalesLinearly(t *testing.T) {
	base := EstimateFee(true, 10, 1.0)
	bigger := EstimateFee(true, 50, 1.0)
	assert.Equal(t, int64(40), bigger.Fee-base.Fee)
}

func TestFeeQuoteString(t *testing.T) {
	quote := FeeQuote{VSize: 133, Rate: 2.0, Fee: 266}
	assert.Equal(t, "266 sat (133 vB @ 2 sat/vB)", quote.String())
}
