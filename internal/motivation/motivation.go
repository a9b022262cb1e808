package motivation

import (
	"github.com/shopspring/decimal"

	"github.com/sells-group/pipeline-cli/internal/config"
	"github.com/sells-group/pipeline-cli/internal/money"
)

// Input holds the turnover figures and configuration for one calculation.
type Input struct {
	// FactTurnover is closed, paid turnover.
	FactTurnover decimal.Decimal
	// HotTurnover is open turnover from high-confidence deals. It counts
	// toward the forecast only, never toward closed revenue.
	HotTurnover decimal.Decimal
	// Grades is the commission table; empty falls back to the preset.
	Grades []config.Grade
	// HotWeight damps hot turnover (default 0.5). Zero means "unset".
	HotWeight decimal.Decimal
}

// Result holds the fact and forecast commission figures. Turnover and salary
// fields are whole currency units; rates are fractional (0-1).
type Result struct {
	FactTurnover           decimal.Decimal `json:"fact_turnover"`
	HotTurnover            decimal.Decimal `json:"hot_turnover"`
	ForecastTurnover       decimal.Decimal `json:"forecast_turnover"`
	TotalPotentialTurnover decimal.Decimal `json:"total_potential_turnover"`
	FactRate               decimal.Decimal `json:"fact_rate"`
	ForecastRate           decimal.Decimal `json:"forecast_rate"`
	SalaryFact             decimal.Decimal `json:"salary_fact"`
	SalaryForecast         decimal.Decimal `json:"salary_forecast"`
	PotentialGain          decimal.Decimal `json:"potential_gain"`
}

// Calculate combines closed ("fact") and weighted in-pipeline ("hot")
// turnover into fact and forecast commission figures.
//
// The forecast rate is resolved independently at the combined total, not
// reused from the fact resolution, so a salesperson sees the bracket their
// potential turnover would land in. As a consequence PotentialGain compares
// two scenarios at two different rates; it is not a marginal delta, and that
// behavior is intentional.
func Calculate(in Input) Result {
	weight := in.HotWeight
	if weight.Sign() == 0 {
		weight = money.FromFloat(config.DefaultHotWeight)
	}

	forecastTurnover := in.HotTurnover.Mul(weight)
	totalPotential := in.FactTurnover.Add(forecastTurnover)

	factRate := ResolveRate(in.FactTurnover, in.Grades)
	forecastRate := ResolveRate(totalPotential, in.Grades)

	salaryFact := money.Whole(in.FactTurnover.Mul(factRate))
	salaryForecast := money.Whole(totalPotential.Mul(forecastRate))

	return Result{
		FactTurnover:           money.Whole(in.FactTurnover),
		HotTurnover:            money.Whole(in.HotTurnover),
		ForecastTurnover:       money.Whole(forecastTurnover),
		TotalPotentialTurnover: money.Whole(totalPotential),
		FactRate:               factRate,
		ForecastRate:           forecastRate,
		SalaryFact:             salaryFact,
		SalaryForecast:         salaryForecast,
		PotentialGain:          salaryForecast.Sub(salaryFact),
	}
}
