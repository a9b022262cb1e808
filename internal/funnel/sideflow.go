package funnel

import (
	"github.com/shopspring/decimal"

	"github.com/sells-group/pipeline-cli/internal/money"
)

// StageRefusals holds the drop-off attributed to one non-terminal stage.
type StageRefusals struct {
	ID    StageID         `json:"id"`
	Count int64           `json:"count"`
	Rate  decimal.Decimal `json:"rate"` // percent of that stage's entrants, 2dp
}

// SideFlow is the refusal breakdown across the funnel.
type SideFlow struct {
	Stages []StageRefusals `json:"stages"`
	Total  int64           `json:"total"`
}

// AnalyzeSideFlow attributes drop-off counts and rates to each non-terminal
// stage. When no per-stage breakdown is supplied, the aggregate refusal total
// is attributed entirely to the first-meeting stage. That is a documented
// best-effort heuristic, not a defect: without a breakdown there is nothing to
// distribute by.
func AnalyzeSideFlow(totals Totals) SideFlow {
	counts := totals.Counts()

	var flow SideFlow
	for i, id := range StageOrder[:len(StageOrder)-1] {
		count, explicit := totals.RefusalBreakdown[id]
		if !explicit && id == StageMeeting1 {
			count = totals.Refusals
		}

		flow.Stages = append(flow.Stages, StageRefusals{
			ID:    id,
			Count: count,
			Rate:  money.PercentOfCounts(count, counts[i]),
		})
		flow.Total += count
	}

	// A breakdown that sums to zero carries no information; report the
	// aggregate total instead.
	if flow.Total == 0 {
		flow.Total = totals.Refusals
	}

	return flow
}
