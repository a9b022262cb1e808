// Package forecast extrapolates month-end sales from the current run-rate.
// The reference time is always an explicit parameter so tests and callers in
// different timezones get reproducible, independent results.
package forecast

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sells-group/pipeline-cli/internal/money"
)

// pacingTolerance is the allowed shortfall, in percentage points, before
// pacing is flagged as bad.
var pacingTolerance = decimal.NewFromInt(-5)

// Metrics is the month-to-date forecast for one sales figure against a goal.
// Computed fresh on every call; never persisted.
type Metrics struct {
	Current       decimal.Decimal `json:"current"`
	Goal          decimal.Decimal `json:"goal"`
	Projected     decimal.Decimal `json:"projected"`
	Completion    decimal.Decimal `json:"completion"` // percent of goal, whole number
	Pacing        decimal.Decimal `json:"pacing"`     // percent deviation from linear target, 2dp
	IsPacingGood  bool            `json:"is_pacing_good"`
	DaysInMonth   int             `json:"days_in_month"`
	DaysPassed    int             `json:"days_passed"`
	DaysRemaining int             `json:"days_remaining"`
	DailyAverage  decimal.Decimal `json:"daily_average"`
	DailyRequired decimal.Decimal `json:"daily_required"`
	ExpectedByNow decimal.Decimal `json:"expected_by_now"`
}

// Calculate produces the linear run-rate forecast for the calendar month of
// now. Every division is guarded: a zero divisor resolves to zero, so the
// first and last days of the month are ordinary inputs rather than edge
// failures.
func Calculate(sales, goal decimal.Decimal, now time.Time) Metrics {
	daysInMonth := DaysInMonth(now)
	daysPassed := now.Day()
	daysRemaining := daysInMonth - daysPassed

	days := decimal.NewFromInt(int64(daysInMonth))

	dailyAverage := decimal.Zero
	if daysPassed > 0 {
		dailyAverage = sales.Div(decimal.NewFromInt(int64(daysPassed)))
	}

	projected := dailyAverage.Mul(days)

	completion := decimal.Zero
	if goal.Sign() > 0 {
		completion = money.Whole(money.Percent(projected, goal))
	}

	expectedByNow := decimal.Zero
	if daysInMonth > 0 {
		expectedByNow = goal.Div(days).Mul(decimal.NewFromInt(int64(daysPassed)))
	}

	pacing := decimal.Zero
	if expectedByNow.Sign() > 0 {
		pacing = money.Round2(sales.Sub(expectedByNow).Div(expectedByNow).Mul(decimal.NewFromInt(100)))
	}

	dailyRequired := decimal.Zero
	if daysRemaining > 0 {
		dailyRequired = goal.Sub(sales).Div(decimal.NewFromInt(int64(daysRemaining)))
	}

	return Metrics{
		Current:       sales,
		Goal:          goal,
		Projected:     money.Whole(projected),
		Completion:    completion,
		Pacing:        pacing,
		IsPacingGood:  pacing.GreaterThanOrEqual(pacingTolerance),
		DaysInMonth:   daysInMonth,
		DaysPassed:    daysPassed,
		DaysRemaining: daysRemaining,
		DailyAverage:  money.Whole(dailyAverage),
		DailyRequired: money.Whole(dailyRequired),
		ExpectedByNow: money.Whole(expectedByNow),
	}
}

// DaysInMonth returns the number of calendar days in the month of t.
func DaysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}
