package tx

import (
	"fmt"
	"math"
)

// Fixed virtual-size model for the one-input OP_RETURN transaction shape.
// These are documented approximations, not byte-exact serializer
// measurements: DER signature length variance of ±1 byte is not modeled.
const (
	// vsizeBase covers version, input/output counts, and locktime.
	vsizeBase = 10

	// vsizeInput is one P2WPKH input under segwit weight accounting.
	vsizeInput = 68

	// vsizeDataOutputOverhead covers the 8-byte value, the script length
	// prefix, and the OP_RETURN push opcode; the payload length is added
	// on top.
	vsizeDataOutputOverhead = 10

	// vsizeChangeOutput is one P2WPKH output (8-byte value + script).
	vsizeChangeOutput = 31
)

// FeeQuote is the result of a fee estimate: the modeled virtual size, the
// fee rate used, and the absolute fee in satoshis.
type FeeQuote struct {
	VSize int     // virtual bytes
	Rate  float64 // sat/vB, may be fractional
	Fee   int64   // satoshis, ceil(VSize * Rate)
}

// EstimateVSize returns the modeled virtual size in vbytes for a transaction
// with one P2WPKH input, one data-carrier output of dataLen payload bytes,
// and an optional change output.
func EstimateVSize(hasChange bool, dataLen int) int {
	vsize := vsizeBase + vsizeInput + vsizeDataOutputOverhead + dataLen
	if hasChange {
		vsize += vsizeChangeOutput
	}
	return vsize
}

// EstimateFee computes a FeeQuote for the given transaction shape and fee
// rate. The fee is rounded up to the nearest whole satoshi so a fractional
// rate never undershoots the quoted rate. Pure function of its inputs; the
// caller validates rate > 0 before invoking.
func EstimateFee(hasChange bool, dataLen int, rate float64) FeeQuote {
	vsize := EstimateVSize(hasChange, dataLen)
	return FeeQuote{
		VSize: vsize,
		Rate:  rate,
		Fee:   int64(math.Ceil(float64(vsize) * rate)),
	}
}

// String renders the quote the way diagnostics print it.
func (q FeeQuote) String() string {
	return fmt.Sprintf("%d sat (%d vB @ %g sat/vB)", q.Fee, q.VSize, q.Rate)
}
