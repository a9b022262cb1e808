package motivation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/pipeline-cli/internal/config"
	"github.com/sells-group/pipeline-cli/internal/money"
)

func TestResolveRate_PresetBrackets(t *testing.T) {
	grades := config.DefaultGrades()

	cases := []struct {
		turnover float64
		rate     string
	}{
		{0, "0.03"},
		{499_999, "0.03"},
		{500_000, "0.05"}, // half-open: min is inclusive
		{999_999, "0.05"},
		{1_000_000, "0.07"}, // open-ended top bracket
		{5_000_000, "0.07"},
	}
	for _, tc := range cases {
		got := ResolveRate(money.FromFloat(tc.turnover), grades)
		assert.Equal(t, tc.rate, got.String(), "turnover %v", tc.turnover)
	}
}

func TestResolveRate_WholeAmountNotMarginal(t *testing.T) {
	// Bracket membership: the resolved rate applies to the entire amount.
	// 700k sits in [500k, 1M) and gets 5% on all of it, not 3% on the
	// first 500k plus 5% on the remainder.
	rate := ResolveRate(money.FromFloat(700_000), config.DefaultGrades())
	assert.Equal(t, "0.05", rate.String())
}

func TestResolveRate_UnsortedTable(t *testing.T) {
	half := 500_000.0
	million := 1_000_000.0
	grades := []config.Grade{
		{MinTurnover: million, MaxTurnover: nil, Rate: 0.07},
		{MinTurnover: 0, MaxTurnover: &half, Rate: 0.03},
		{MinTurnover: half, MaxTurnover: &million, Rate: 0.05},
	}

	assert.Equal(t, "0.05", ResolveRate(money.FromFloat(700_000), grades).String())
	assert.Equal(t, "0.03", ResolveRate(money.FromFloat(100_000), grades).String())
}

func TestResolveRate_EmptyTableUsesPreset(t *testing.T) {
	assert.Equal(t, "0.05", ResolveRate(money.FromFloat(700_000), nil).String())
}

func TestResolveRate_GapFallsBackToLastGrade(t *testing.T) {
	low := 100_000.0
	grades := []config.Grade{
		{MinTurnover: 0, MaxTurnover: &low, Rate: 0.02},
		{MinTurnover: 200_000, MaxTurnover: nil, Rate: 0.1},
	}

	// 150k falls into the gap between the brackets.
	assert.Equal(t, "0.1", ResolveRate(money.FromFloat(150_000), grades).String())
}

func TestResolveRate_AboveAllBoundsFallsBackToLastGrade(t *testing.T) {
	low := 100_000.0
	high := 200_000.0
	grades := []config.Grade{
		{MinTurnover: 0, MaxTurnover: &low, Rate: 0.02},
		{MinTurnover: low, MaxTurnover: &high, Rate: 0.04},
	}

	assert.Equal(t, "0.04", ResolveRate(money.FromFloat(500_000), grades).String())
}

func TestResolveRate_NonDecreasing(t *testing.T) {
	grades := config.DefaultGrades()

	prev := ResolveRate(money.FromFloat(0), grades)
	for turnover := 50_000.0; turnover <= 2_000_000; turnover += 50_000 {
		rate := ResolveRate(money.FromFloat(turnover), grades)
		assert.True(t, rate.GreaterThanOrEqual(prev),
			"rate decreased at turnover %v: %s < %s", turnover, rate, prev)
		prev = rate
	}
}
