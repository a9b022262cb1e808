// Package funnel computes per-stage conversion rates, red-zone flags, and the
// North-Star KPI for the six-stage sales pipeline. All functions are pure:
// identical inputs always yield identical outputs, and zero counts yield zero
// conversions rather than errors.
package funnel

import (
	"github.com/shopspring/decimal"

	"github.com/sells-group/pipeline-cli/internal/config"
	"github.com/sells-group/pipeline-cli/internal/money"
)

// StageID identifies one of the six ordered pipeline stages.
type StageID string

const (
	StageBooked         StageID = "booked"
	StageMeeting1       StageID = "meeting1"
	StageMeeting2       StageID = "meeting2"
	StageContractReview StageID = "contract_review"
	StagePush           StageID = "push"
	StageDeal           StageID = "deal"
)

// StageOrder is the fixed pipeline order from entry to paid deal.
var StageOrder = []StageID{
	StageBooked,
	StageMeeting1,
	StageMeeting2,
	StageContractReview,
	StagePush,
	StageDeal,
}

// stageLabels maps stage IDs to human-readable labels.
var stageLabels = map[StageID]string{
	StageBooked:         "Booked",
	StageMeeting1:       "First Meeting",
	StageMeeting2:       "Second Meeting",
	StageContractReview: "Contract Review",
	StagePush:           "Final Push",
	StageDeal:           "Paid Deal",
}

// Label returns the human-readable label for a stage.
func (s StageID) Label() string {
	if l, ok := stageLabels[s]; ok {
		return l
	}
	return string(s)
}

// Totals holds raw aggregated counts for one window (a user, team, or period).
// Counts are assumed sanitized and non-negative by the aggregation layer.
type Totals struct {
	Booked         int64 `json:"booked" yaml:"booked"`
	Meeting1       int64 `json:"meeting1" yaml:"meeting1"`
	Meeting2       int64 `json:"meeting2" yaml:"meeting2"`
	ContractReview int64 `json:"contract_review" yaml:"contract_review"`
	Push           int64 `json:"push" yaml:"push"`
	Deal           int64 `json:"deal" yaml:"deal"`

	// Sales is the optional decimal sales sum for the window, carried as a
	// boundary float and converted to decimal where consumed.
	Sales    float64 `json:"sales" yaml:"sales"`
	Refusals int64   `json:"refusals" yaml:"refusals"`
	Warming  int64   `json:"warming" yaml:"warming"`

	// RefusalBreakdown holds explicit per-stage refusal counts when the
	// aggregation layer tracks them. Optional.
	RefusalBreakdown map[StageID]int64 `json:"refusal_breakdown,omitempty" yaml:"refusal_breakdown"`
}

// Counts returns the six stage counts in pipeline order.
func (t Totals) Counts() []int64 {
	return []int64{t.Booked, t.Meeting1, t.Meeting2, t.ContractReview, t.Push, t.Deal}
}

// Stage is the derived view of one pipeline stage.
type Stage struct {
	ID         StageID         `json:"id"`
	Label      string          `json:"label"`
	Value      int64           `json:"value"`
	Conversion decimal.Decimal `json:"conversion"` // percent, 2 decimal places
	Benchmark  decimal.Decimal `json:"benchmark"`  // percent
	IsRedZone  bool            `json:"is_red_zone"`
}

// Report is the full funnel analysis for one aggregation window.
type Report struct {
	Stages          []Stage         `json:"stages"`
	NorthStar       decimal.Decimal `json:"north_star"`       // deals / first meetings, percent
	TotalConversion decimal.Decimal `json:"total_conversion"` // deals / booked, percent
	SideFlow        SideFlow        `json:"side_flow"`
}

// Calculate derives the funnel report from raw stage counts and benchmark
// thresholds. All six stages are always returned in pipeline order, even when
// every count is zero.
func Calculate(totals Totals, benchmarks config.Benchmarks) Report {
	counts := totals.Counts()
	marks := benchmarkValues(benchmarks)

	stages := make([]Stage, 0, len(StageOrder))
	for i, id := range StageOrder {
		s := Stage{
			ID:    id,
			Label: id.Label(),
			Value: counts[i],
		}
		if i == 0 {
			// The entry stage converts from itself: always 100%, never red.
			s.Conversion = decimal.NewFromInt(100)
			s.Benchmark = decimal.Zero
		} else {
			s.Conversion = money.PercentOfCounts(counts[i], counts[i-1])
			s.Benchmark = money.FromFloat(marks[i-1])
			s.IsRedZone = s.Conversion.LessThan(s.Benchmark)
		}
		stages = append(stages, s)
	}

	// North-Star falls back to the entry count when no first meetings were
	// held, to avoid a misleading 0/0.
	northStarBase := totals.Meeting1
	if northStarBase == 0 {
		northStarBase = totals.Booked
	}

	return Report{
		Stages:          stages,
		NorthStar:       money.PercentOfCounts(totals.Deal, northStarBase),
		TotalConversion: money.PercentOfCounts(totals.Deal, totals.Booked),
		SideFlow:        AnalyzeSideFlow(totals),
	}
}

// benchmarkValues returns the five transition thresholds in pipeline order,
// starting with the booked -> meeting1 transition.
func benchmarkValues(b config.Benchmarks) []float64 {
	return []float64{b.Meeting1, b.Meeting2, b.ContractReview, b.Push, b.Deal}
}
