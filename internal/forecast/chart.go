package forecast

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sells-group/pipeline-cli/internal/money"
)

// Observation is one day's observed sales total, as handed over by the
// aggregation layer. The amount is converted to decimal on entry.
type Observation struct {
	Day   int     `json:"day" yaml:"day"`
	Sales float64 `json:"sales" yaml:"sales"`
}

// ChartPoint is one day of the cumulative month chart. Plan is always set.
// Exactly one of Actual (day <= current day) and Forecast (day > current day)
// is set.
type ChartPoint struct {
	Day      int              `json:"day"`
	Plan     decimal.Decimal  `json:"plan"`
	Actual   *decimal.Decimal `json:"actual,omitempty"`
	Forecast *decimal.Decimal `json:"forecast,omitempty"`
}

// ChartSeries builds the day-by-day cumulative series for the month of now:
// a linear plan line, the actual cumulative sales up to today, and the
// run-rate continuation for the remaining days. It always returns exactly
// DaysInMonth(now) points.
//
// When daily observations are supplied, the actual segment is their running
// sum; otherwise it falls back to a uniform dailyAverage*day line.
func ChartSeries(sales, goal decimal.Decimal, now time.Time, observations []Observation) []ChartPoint {
	daysInMonth := DaysInMonth(now)
	currentDay := now.Day()

	days := decimal.NewFromInt(int64(daysInMonth))
	dailyPlan := decimal.Zero
	if daysInMonth > 0 {
		dailyPlan = goal.Div(days)
	}

	dailyAverage := decimal.Zero
	if currentDay > 0 {
		dailyAverage = sales.Div(decimal.NewFromInt(int64(currentDay)))
	}

	observed := make(map[int]decimal.Decimal, len(observations))
	for _, o := range observations {
		observed[o.Day] = observed[o.Day].Add(money.FromFloat(o.Sales))
	}

	points := make([]ChartPoint, 0, daysInMonth)
	cumulative := decimal.Zero
	for day := 1; day <= daysInMonth; day++ {
		p := ChartPoint{
			Day:  day,
			Plan: money.Whole(dailyPlan.Mul(decimal.NewFromInt(int64(day)))),
		}

		if day <= currentDay {
			var actual decimal.Decimal
			if len(observations) > 0 {
				cumulative = cumulative.Add(observed[day])
				actual = money.Whole(cumulative)
			} else {
				actual = money.Whole(dailyAverage.Mul(decimal.NewFromInt(int64(day))))
			}
			p.Actual = &actual
		} else {
			ahead := decimal.NewFromInt(int64(day - currentDay))
			fc := money.Whole(sales.Add(dailyAverage.Mul(ahead)))
			p.Forecast = &fc
		}

		points = append(points, p)
	}

	return points
}
