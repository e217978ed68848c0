package customfee

import (
	"math"
	"math/bits"

	"github.com/LeJamon/goHederad/internal/core/tx"
)

var errOutOfRange = tx.Failf(tx.StatusCUSTOM_FEE_OUTSIDE_NUMERIC_RANGE, "custom fee arithmetic overflow")

// addExact adds two amounts, failing on int64 overflow.
func addExact(a, b int64) (int64, error) {
	sum := a + b
	if (a > 0 && b > 0 && sum < 0) || (a < 0 && b < 0 && sum >= 0) {
		return 0, errOutOfRange
	}
	return sum, nil
}

// mulDiv computes amount*numerator/denominator with a 128-bit intermediate.
// All operands must be non-negative and denominator positive.
func mulDiv(amount, numerator, denominator int64) (int64, error) {
	if amount < 0 || numerator < 0 || denominator <= 0 {
		return 0, errOutOfRange
	}
	hi, lo := bits.Mul64(uint64(amount), uint64(numerator))
	if hi >= uint64(denominator) {
		return 0, errOutOfRange
	}
	q, _ := bits.Div64(hi, lo, uint64(denominator))
	if q > math.MaxInt64 {
		return 0, errOutOfRange
	}
	return int64(q), nil
}

func abs(v int64) (int64, error) {
	if v == math.MinInt64 {
		return 0, errOutOfRange
	}
	if v < 0 {
		return -v, nil
	}
	return v, nil
}
