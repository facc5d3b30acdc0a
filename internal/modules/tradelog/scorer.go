package tradelog

import (
	"strings"

	"github.com/tradecraft/journal/internal/utils"
)

// Phase weights. Phase 1 covers the fields filled when a trade is opened
// or planned, phase 2 the fields filled at close and review.
const (
	weightOpen  = 60.0
	weightClose = 40.0

	openFields  = 11
	closeFields = 5
)

// ScoreEntry computes the two-phase completeness score for a trade.
// Call ApplyDerived first so the derived loss/profit fields participate.
// Total function: missing fields count as absent, nothing is rejected.
func ScoreEntry(e Entry) float64 {
	openSet := 0
	for _, present := range [openFields]bool{
		!blank(e.TradeDate),
		!blank(e.TradeTime),
		!blank(e.Asset),
		!blank(e.Strategy),
		!blank(strings.Join(e.Confluences, ",")),
		e.EntryPrice != nil,
		e.RiskReward != nil,
		e.StopLossPrice != nil,
		e.TakeProfitPrice != nil,
		e.EstimatedLoss != nil,
		e.EstimatedProfit != nil,
	} {
		if present {
			openSet++
		}
	}

	closeSet := 0
	for _, present := range [closeFields]bool{
		e.ExitPrice != nil,
		e.TotalProfit != nil,
		!blank(e.Feelings),
		!blank(e.Comments),
		!blank(e.ChartLink),
	} {
		if present {
			closeSet++
		}
	}

	score := weightOpen*float64(openSet)/float64(openFields) +
		weightClose*float64(closeSet)/float64(closeFields)

	return utils.Round1(score)
}

// blank reports whether a field is empty or whitespace-only.
func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
