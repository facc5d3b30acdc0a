package tradelog

import (
	"math"

	"github.com/tradecraft/journal/internal/utils"
)

// ApplyDerived computes the derived risk and profit values on a trade
// before it is scored. Each value is derived only when its inputs are
// present; otherwise any caller-supplied value passes through untouched.
func ApplyDerived(e Entry) Entry {
	if e.EntryPrice != nil && e.StopLossPrice != nil {
		loss := utils.Round2(math.Abs(*e.EntryPrice - *e.StopLossPrice))
		e.EstimatedLoss = &loss
	}

	if e.EntryPrice != nil && e.TakeProfitPrice != nil {
		profit := utils.Round2(math.Abs(*e.TakeProfitPrice - *e.EntryPrice))
		e.EstimatedProfit = &profit
	}

	if e.EntryPrice != nil && e.ExitPrice != nil {
		var profit float64
		if isLong(e) {
			profit = utils.Round2(*e.ExitPrice - *e.EntryPrice)
		} else {
			profit = utils.Round2(*e.EntryPrice - *e.ExitPrice)
		}
		e.TotalProfit = &profit
	}

	return e
}

// isLong infers position direction from the take-profit placement: long
// when the target sits at or above the entry. With either price absent
// the trade defaults to long.
func isLong(e Entry) bool {
	if e.TakeProfitPrice == nil || e.EntryPrice == nil {
		return true
	}
	return *e.TakeProfitPrice >= *e.EntryPrice
}
