// Package motivation resolves commission rates from a grade table and
// computes fact/forecast salary figures over closed and in-pipeline turnover.
package motivation

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/sells-group/pipeline-cli/internal/config"
	"github.com/sells-group/pipeline-cli/internal/money"
)

// ResolveRate returns the commission rate for a turnover amount.
//
// This is bracket membership, not marginal taxation: the resolved rate
// applies to the entire turnover amount. Ranges are half-open
// [min_turnover, max_turnover); a nil max marks the open-ended top bracket.
//
// The table may arrive unsorted; a working copy is sorted ascending by
// min_turnover before lookup. If no grade matches (gaps in the table, or
// turnover above every explicit upper bound) the last grade's rate is used.
// An empty table falls back to the built-in preset.
func ResolveRate(turnover decimal.Decimal, grades []config.Grade) decimal.Decimal {
	if len(grades) == 0 {
		grades = config.DefaultGrades()
	}

	sorted := make([]config.Grade, len(grades))
	copy(sorted, grades)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MinTurnover < sorted[j].MinTurnover
	})

	for _, g := range sorted {
		if turnover.LessThan(money.FromFloat(g.MinTurnover)) {
			continue
		}
		if g.MaxTurnover == nil || turnover.LessThan(money.FromFloat(*g.MaxTurnover)) {
			return money.FromFloat(g.Rate)
		}
	}

	return money.FromFloat(sorted[len(sorted)-1].Rate)
}
