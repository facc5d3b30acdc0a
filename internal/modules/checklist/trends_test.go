package checklist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTrendEmptyInput(t *testing.T) {
	trend := BuildTrend(nil, 30)

	assert.Equal(t, 30, trend.Days)
	assert.Equal(t, 0, trend.TotalCaptures)
	assert.Equal(t, 0.0, trend.AverageScore)
	assert.Equal(t, ReadinessRates{}, trend.ReadinessRates)
	assert.NotNil(t, trend.DailyScores)
	assert.Empty(t, trend.DailyScores)
}

func TestBuildTrendDailyBucketing(t *testing.T) {
	entries := []Entry{
		{TradingDate: "2024-06-10", Score: 100.0},
		{TradingDate: "2024-06-10", Score: 50.0},
	}

	trend := BuildTrend(entries, 7)

	assert.Equal(t, 2, trend.TotalCaptures)
	require.Len(t, trend.DailyScores, 1)
	assert.Equal(t, "2024-06-10", trend.DailyScores[0].Date)
	assert.Equal(t, 75.0, trend.DailyScores[0].AverageScore)
	assert.Equal(t, 2, trend.DailyScores[0].Captures)
}

func TestBuildTrendDailySortAscending(t *testing.T) {
	entries := []Entry{
		{TradingDate: "2024-06-12", Score: 80.0},
		{TradingDate: "2024-06-10", Score: 60.0},
		{TradingDate: "2024-06-11", Score: 70.0},
	}

	trend := BuildTrend(entries, 7)

	require.Len(t, trend.DailyScores, 3)
	assert.Equal(t, "2024-06-10", trend.DailyScores[0].Date)
	assert.Equal(t, "2024-06-11", trend.DailyScores[1].Date)
	assert.Equal(t, "2024-06-12", trend.DailyScores[2].Date)
}

func TestBuildTrendReadinessRates(t *testing.T) {
	entries := []Entry{
		{SleptWell: true, FollowPlan: true, TradingDate: "2024-06-10"},
		{SleptWell: true, TradingDate: "2024-06-10"},
		{FollowPlan: true, TradingDate: "2024-06-11"},
		{TradingDate: "2024-06-11"},
	}
	for i := range entries {
		entries[i].Score = ScoreEntry(entries[i])
	}

	trend := BuildTrend(entries, 14)

	assert.Equal(t, 50.0, trend.ReadinessRates.SleptWell)
	assert.Equal(t, 50.0, trend.ReadinessRates.FollowPlan)
	assert.Equal(t, 0.0, trend.ReadinessRates.CalmMind)
	assert.Equal(t, 0.0, trend.ReadinessRates.AcceptLosses)
}

func TestBuildTrendAverageScore(t *testing.T) {
	entries := []Entry{
		{TradingDate: "2024-06-10", Score: 100.0},
		{TradingDate: "2024-06-11", Score: 62.5},
		{TradingDate: "2024-06-12", Score: 25.0},
	}

	trend := BuildTrend(entries, 30)

	assert.Equal(t, 62.5, trend.AverageScore)
}

func TestBuildTrendIdempotentOverScoredInput(t *testing.T) {
	// Aggregation must never mutate the scores computed at write time.
	entries := []Entry{
		{TradingDate: "2024-06-10", Score: 87.5},
		{TradingDate: "2024-06-11", Score: 12.5},
	}

	first := BuildTrend(entries, 30)
	second := BuildTrend(entries, 30)

	assert.Equal(t, first, second)
	assert.Equal(t, 87.5, entries[0].Score)
	assert.Equal(t, 12.5, entries[1].Score)
}
