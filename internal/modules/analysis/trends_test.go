package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTrend_Empty(t *testing.T) {
	trend := BuildTrend(nil, 30)

	assert.Equal(t, 30, trend.Days)
	assert.Equal(t, 0, trend.TotalAnalyses)
	assert.Equal(t, 0.0, trend.AverageCompletionScore)
	assert.NotNil(t, trend.ConclusionMix)
	assert.Empty(t, trend.ConclusionMix)
	assert.NotNil(t, trend.DirectionalBiasMix)
	assert.Empty(t, trend.DirectionalBiasMix)
	assert.NotNil(t, trend.DailyCompletion)
	assert.Empty(t, trend.DailyCompletion)
}

func TestBuildTrend_AverageAndMixes(t *testing.T) {
	entries := []Entry{
		{TradingDate: "2024-03-11", Conclusion: "bullish", CurrentTrend: DirectionBullish, AnalysisScore: 80.0},
		{TradingDate: "2024-03-11", Conclusion: "bullish", CurrentTrend: DirectionBearish, AnalysisScore: 60.0},
		{TradingDate: "2024-03-12", Conclusion: "bearish", CurrentTrend: DirectionBullish, AnalysisScore: 40.0},
		{TradingDate: "2024-03-10", Conclusion: "  ", AnalysisScore: 20.0},
	}

	trend := BuildTrend(entries, 7)

	assert.Equal(t, 4, trend.TotalAnalyses)
	assert.Equal(t, 50.0, trend.AverageCompletionScore)

	assert.Equal(t, 50.0, trend.ConclusionMix["bullish"])
	assert.Equal(t, 25.0, trend.ConclusionMix["bearish"])
	assert.Equal(t, 25.0, trend.ConclusionMix["unknown"])

	assert.Equal(t, 50.0, trend.DirectionalBiasMix["bullish"])
	assert.Equal(t, 25.0, trend.DirectionalBiasMix["bearish"])
	assert.Equal(t, 25.0, trend.DirectionalBiasMix["unknown"])
}

func TestBuildTrend_NoneBiasIsNotUnknown(t *testing.T) {
	entries := []Entry{
		{TradingDate: "2024-03-11", CurrentTrend: DirectionNone, AnalysisScore: 50.0},
		{TradingDate: "2024-03-11", AnalysisScore: 50.0},
	}

	trend := BuildTrend(entries, 7)

	// An explicit "none" judgment and a missing value are distinct buckets.
	assert.Equal(t, 50.0, trend.DirectionalBiasMix["none"])
	assert.Equal(t, 50.0, trend.DirectionalBiasMix["unknown"])
}

func TestBuildTrend_DailyCompletionSortedAscending(t *testing.T) {
	entries := []Entry{
		{TradingDate: "2024-03-12", AnalysisScore: 90.0},
		{TradingDate: "2024-03-10", AnalysisScore: 30.0},
		{TradingDate: "2024-03-11", AnalysisScore: 100.0},
		{TradingDate: "2024-03-11", AnalysisScore: 50.0},
	}

	trend := BuildTrend(entries, 7)

	require.Len(t, trend.DailyCompletion, 3)
	assert.Equal(t, DailyScore{Date: "2024-03-10", AverageScore: 30.0, Captures: 1}, trend.DailyCompletion[0])
	assert.Equal(t, DailyScore{Date: "2024-03-11", AverageScore: 75.0, Captures: 2}, trend.DailyCompletion[1])
	assert.Equal(t, DailyScore{Date: "2024-03-12", AverageScore: 90.0, Captures: 1}, trend.DailyCompletion[2])
}

func TestBuildTrend_Idempotent(t *testing.T) {
	entries := []Entry{
		{TradingDate: "2024-03-11", Conclusion: "bullish", CurrentTrend: DirectionBullish, AnalysisScore: 77.5},
		{TradingDate: "2024-03-12", Conclusion: "bearish", CurrentTrend: DirectionBearish, AnalysisScore: 42.5},
	}

	first := BuildTrend(entries, 14)
	second := BuildTrend(entries, 14)

	assert.Equal(t, first, second)
	assert.Equal(t, 77.5, entries[0].AnalysisScore)
	assert.Equal(t, 42.5, entries[1].AnalysisScore)
}
