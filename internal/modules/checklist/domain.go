// Package checklist implements pre-session readiness captures: an eight-flag
// self-report the trader fills in before a session, scored for completeness
// at write time and rolled up into windowed trends at read time.
package checklist

import "time"

// Entry is one pre-session readiness capture.
// Four self-evaluation questions, four commitment affirmations.
type Entry struct {
	ID string `json:"id,omitempty"`

	// Self-evaluation
	SleptWell       bool `json:"sleptWell"`
	CalmMind        bool `json:"calmMind"`
	PlanReviewed    bool `json:"planReviewed"`
	DistractionFree bool `json:"distractionFree"`

	// Commitments
	FollowPlan       bool `json:"followPlan"`
	RespectStops     bool `json:"respectStops"`
	AvoidOvertrading bool `json:"avoidOvertrading"`
	AcceptLosses     bool `json:"acceptLosses"`

	Signature   string `json:"signature"`
	Notes       string `json:"notes,omitempty"`
	TradingDate string `json:"tradingDate"` // YYYY-MM-DD
	Session     string `json:"session,omitempty"`

	// Score is computed at creation and always present afterwards, in [0,100].
	Score float64 `json:"score"`

	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// flagCount is the number of boolean readiness flags on an entry.
const flagCount = 8

// flags returns the boolean fields in their fixed scoring order.
func (e *Entry) flags() [flagCount]bool {
	return [flagCount]bool{
		e.SleptWell,
		e.CalmMind,
		e.PlanReviewed,
		e.DistractionFree,
		e.FollowPlan,
		e.RespectStops,
		e.AvoidOvertrading,
		e.AcceptLosses,
	}
}
