package checklist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func allTrueEntry() Entry {
	return Entry{
		SleptWell:        true,
		CalmMind:         true,
		PlanReviewed:     true,
		DistractionFree:  true,
		FollowPlan:       true,
		RespectStops:     true,
		AvoidOvertrading: true,
		AcceptLosses:     true,
	}
}

func TestScoreEntryAllFlagsTrue(t *testing.T) {
	assert.Equal(t, 100.0, ScoreEntry(allTrueEntry()))
}

func TestScoreEntryAllFlagsFalse(t *testing.T) {
	assert.Equal(t, 0.0, ScoreEntry(Entry{Signature: "trader", TradingDate: "2024-06-10"}))
}

func TestScoreEntryPartial(t *testing.T) {
	tests := []struct {
		name  string
		entry Entry
		want  float64
	}{
		{"one flag", Entry{SleptWell: true}, 12.5},
		{"three flags", Entry{SleptWell: true, FollowPlan: true, AcceptLosses: true}, 37.5},
		{"six flags", Entry{
			SleptWell: true, CalmMind: true, PlanReviewed: true,
			FollowPlan: true, RespectStops: true, AcceptLosses: true,
		}, 75.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScoreEntry(tt.entry))
		})
	}
}

func TestScoreEntryIgnoresTextFields(t *testing.T) {
	// Only the eight flags matter; text fields do not change the score.
	bare := Entry{CalmMind: true, RespectStops: true}
	annotated := bare
	annotated.Signature = "trader"
	annotated.Notes = "feeling sharp"
	annotated.Session = "london"
	annotated.TradingDate = "2024-06-10"

	assert.Equal(t, ScoreEntry(bare), ScoreEntry(annotated))
}

func TestScoreEntryBounds(t *testing.T) {
	for i := 0; i < flagCount; i++ {
		e := Entry{}
		flags := []*bool{
			&e.SleptWell, &e.CalmMind, &e.PlanReviewed, &e.DistractionFree,
			&e.FollowPlan, &e.RespectStops, &e.AvoidOvertrading, &e.AcceptLosses,
		}
		for j := 0; j <= i; j++ {
			*flags[j] = true
		}

		score := ScoreEntry(e)
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 100.0)
	}
}
