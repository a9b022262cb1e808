package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPercent_Basic(t *testing.T) {
	// 8/10 * 100 = 80
	got := Percent(FromInt(8), FromInt(10))
	assert.Equal(t, "80", got.String())

	// 2/3 * 100 = 66.666... -> 66.67
	got = Percent(FromInt(2), FromInt(3))
	assert.Equal(t, "66.67", got.String())
}

func TestPercent_ZeroBase(t *testing.T) {
	// Zero base resolves to exactly 0, never NaN or Inf.
	got := Percent(FromInt(5), decimal.Zero)
	assert.True(t, got.IsZero())
}

func TestPercent_NegativeBase(t *testing.T) {
	got := Percent(FromInt(5), FromInt(-10))
	assert.True(t, got.IsZero())
}

func TestPercentOfCounts(t *testing.T) {
	// 1/8 * 100 = 12.5
	got := PercentOfCounts(1, 8)
	assert.Equal(t, "12.5", got.String())
}

func TestWhole_RoundsHalfUp(t *testing.T) {
	assert.Equal(t, "9677", Whole(FromFloat(9677.419)).String())
	assert.Equal(t, "9678", Whole(FromFloat(9677.5)).String())
}

func TestRound2(t *testing.T) {
	assert.Equal(t, "103.33", Round2(FromFloat(103.3333)).String())
}
