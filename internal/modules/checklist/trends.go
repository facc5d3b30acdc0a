package checklist

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/tradecraft/journal/internal/utils"
)

// ReadinessRates holds, per flag, the percentage of entries in the window
// where that flag was true.
type ReadinessRates struct {
	SleptWell        float64 `json:"sleptWell"`
	CalmMind         float64 `json:"calmMind"`
	PlanReviewed     float64 `json:"planReviewed"`
	DistractionFree  float64 `json:"distractionFree"`
	FollowPlan       float64 `json:"followPlan"`
	RespectStops     float64 `json:"respectStops"`
	AvoidOvertrading float64 `json:"avoidOvertrading"`
	AcceptLosses     float64 `json:"acceptLosses"`
}

// DailyScore is one trading-date bucket inside a trend report.
type DailyScore struct {
	Date         string  `json:"date"`
	AverageScore float64 `json:"averageScore"`
	Captures     int     `json:"captures"`
}

// Trend is the windowed rollup over checklist entries. It is recomputed on
// every query and never persisted.
type Trend struct {
	Days           int            `json:"days"`
	TotalCaptures  int            `json:"totalCaptures"`
	AverageScore   float64        `json:"averageScore"`
	ReadinessRates ReadinessRates `json:"readinessRates"`
	DailyScores    []DailyScore   `json:"dailyScores"`
}

// BuildTrend aggregates already-scored entries into a trend report. The
// entries are assumed to be window-filtered by the caller; days is carried
// through for display only. Empty input yields a zero-valued report.
func BuildTrend(entries []Entry, days int) Trend {
	trend := Trend{
		Days:        days,
		DailyScores: []DailyScore{},
	}

	total := len(entries)
	trend.TotalCaptures = total
	if total == 0 {
		return trend
	}

	scores := make([]float64, total)
	var flagTrue [flagCount]int

	type dailyAcc struct {
		sum float64
		n   int
	}
	byDate := make(map[string]*dailyAcc)
	var dates []string

	for i := range entries {
		e := &entries[i]
		scores[i] = e.Score

		for f, set := range e.flags() {
			if set {
				flagTrue[f]++
			}
		}

		acc, ok := byDate[e.TradingDate]
		if !ok {
			acc = &dailyAcc{}
			byDate[e.TradingDate] = acc
			dates = append(dates, e.TradingDate)
		}
		acc.sum += e.Score
		acc.n++
	}

	trend.AverageScore = utils.Round1(stat.Mean(scores, nil))

	rate := func(f int) float64 {
		return utils.Round1(100 * float64(flagTrue[f]) / float64(total))
	}
	trend.ReadinessRates = ReadinessRates{
		SleptWell:        rate(0),
		CalmMind:         rate(1),
		PlanReviewed:     rate(2),
		DistractionFree:  rate(3),
		FollowPlan:       rate(4),
		RespectStops:     rate(5),
		AvoidOvertrading: rate(6),
		AcceptLosses:     rate(7),
	}

	// Lexicographic sort is chronological because dates are ISO YYYY-MM-DD.
	sort.Strings(dates)
	for _, date := range dates {
		acc := byDate[date]
		trend.DailyScores = append(trend.DailyScores, DailyScore{
			Date:         date,
			AverageScore: utils.Round1(acc.sum / float64(acc.n)),
			Captures:     acc.n,
		})
	}

	return trend
}
