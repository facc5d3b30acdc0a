// Package tradelog implements the trade journal: one record per executed
// or planned trade, with derived risk/profit values computed before a
// two-phase completeness score, and windowed trend rollups at read time.
package tradelog

import "time"

// Entry is one trade journal record. Optional numeric fields are pointers
// so absent and zero stay distinguishable; derived fields are computed at
// write time when their inputs are present, falling back to any supplied
// value otherwise.
type Entry struct {
	ID string `json:"id,omitempty"`

	TradeDate string `json:"tradeDate"` // YYYY-MM-DD
	TradeTime string `json:"tradeTime,omitempty"`
	Asset     string `json:"asset"`
	Strategy  string `json:"strategy"`
	Session   string `json:"session,omitempty"`

	EntryPrice      *float64 `json:"entryPrice,omitempty"`
	StopLossPrice   *float64 `json:"stopLossPrice,omitempty"`
	TakeProfitPrice *float64 `json:"takeProfitPrice,omitempty"`
	ExitPrice       *float64 `json:"exitPrice,omitempty"`
	RiskReward      *float64 `json:"riskReward,omitempty"`

	Confluences []string `json:"confluences,omitempty"`
	Comments    string   `json:"comments,omitempty"`
	ChartLink   string   `json:"chartLink,omitempty"`
	Feelings    string   `json:"feelings,omitempty"`

	// Derived fields, see ApplyDerived.
	EstimatedLoss   *float64 `json:"estimatedLoss,omitempty"`
	EstimatedProfit *float64 `json:"estimatedProfit,omitempty"`
	TotalProfit     *float64 `json:"totalProfit,omitempty"`

	// JournalScore is computed at creation and always present afterwards,
	// in [0,100].
	JournalScore float64 `json:"journalScore"`

	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// Closed reports whether the trade has an outcome on record: an exit
// price or a total profit.
func (e *Entry) Closed() bool {
	return e.ExitPrice != nil || e.TotalProfit != nil
}

// Win reports whether the trade is closed with strictly positive profit.
// Breakeven trades are closed but not wins.
func (e *Entry) Win() bool {
	return e.Closed() && e.TotalProfit != nil && *e.TotalProfit > 0
}
