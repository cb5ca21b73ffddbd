package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testFees() FeeParams {
	return FeeParams{
		ClobFeeRate:    0.00075,
		GasMergeUSD:    0.50,
		SwapSpreadRate: 0.0002,
		BufferBPS:      10,
	}
}

func TestTotalFeeFraction(t *testing.T) {
	f := testFees()

	// 2*0.00075 + 0.5/1000 + 2*0.0002 + 10/10000 = 0.00245
	assert.InDelta(t, 0.00245, f.TotalFeeFraction(1000), 1e-9)
}

func TestTotalFeeFraction_ZeroSizeSkipsGas(t *testing.T) {
	f := testFees()

	// No division by zero: gas term drops out entirely.
	assert.InDelta(t, 0.0029, f.TotalFeeFraction(0), 1e-9)
	assert.InDelta(t, 0.0029, f.TotalFeeFraction(-10), 1e-9)
}

func TestTotalFeeFraction_GasShrinksWithSize(t *testing.T) {
	f := testFees()

	small := f.TotalFeeFraction(100)
	large := f.TotalFeeFraction(2000)
	assert.Greater(t, small, large)
}

func TestSingleLegFeeFraction(t *testing.T) {
	f := testFees()

	assert.InDelta(t, 0.00075+0.0005+0.0002+0.001, f.SingleLegFeeFraction(1000), 1e-9)
	assert.Less(t, f.SingleLegFeeFraction(1000), f.TotalFeeFraction(1000))
}
