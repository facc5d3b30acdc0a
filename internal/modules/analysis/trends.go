package analysis

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/tradecraft/journal/internal/utils"
)

// unknownCategory is the bucket for entries missing a categorical value.
const unknownCategory = "unknown"

// DailyScore is one trading-date bucket inside a trend report.
type DailyScore struct {
	Date         string  `json:"date"`
	AverageScore float64 `json:"averageScore"`
	Captures     int     `json:"captures"`
}

// Trend is the windowed rollup over analysis entries.
type Trend struct {
	Days                   int                `json:"days"`
	TotalAnalyses          int                `json:"totalAnalyses"`
	AverageCompletionScore float64            `json:"averageCompletionScore"`
	ConclusionMix          map[string]float64 `json:"conclusionMix"`
	DirectionalBiasMix     map[string]float64 `json:"directionalBiasMix"`
	DailyCompletion        []DailyScore       `json:"dailyCompletion"`
}

// BuildTrend aggregates already-scored analyses into a trend report. The
// entries are assumed to be window-filtered by the caller; days is carried
// through for display only. Empty input yields a zero-valued report.
func BuildTrend(entries []Entry, days int) Trend {
	trend := Trend{
		Days:               days,
		ConclusionMix:      map[string]float64{},
		DirectionalBiasMix: map[string]float64{},
		DailyCompletion:    []DailyScore{},
	}

	total := len(entries)
	trend.TotalAnalyses = total
	if total == 0 {
		return trend
	}

	scores := make([]float64, total)
	conclusionCounts := make(map[string]int)
	biasCounts := make(map[string]int)

	type dailyAcc struct {
		sum float64
		n   int
	}
	byDate := make(map[string]*dailyAcc)
	var dates []string

	for i := range entries {
		e := &entries[i]
		scores[i] = e.AnalysisScore

		conclusion := e.Conclusion
		if blank(conclusion) {
			conclusion = unknownCategory
		}
		conclusionCounts[conclusion]++

		// "none" is an observed judgment; only a missing value is unknown.
		bias := string(e.CurrentTrend)
		if blank(bias) {
			bias = unknownCategory
		}
		biasCounts[bias]++

		acc, ok := byDate[e.TradingDate]
		if !ok {
			acc = &dailyAcc{}
			byDate[e.TradingDate] = acc
			dates = append(dates, e.TradingDate)
		}
		acc.sum += e.AnalysisScore
		acc.n++
	}

	trend.AverageCompletionScore = utils.Round1(stat.Mean(scores, nil))

	for category, count := range conclusionCounts {
		trend.ConclusionMix[category] = utils.Round1(100 * float64(count) / float64(total))
	}
	for category, count := range biasCounts {
		trend.DirectionalBiasMix[category] = utils.Round1(100 * float64(count) / float64(total))
	}

	sort.Strings(dates)
	for _, date := range dates {
		acc := byDate[date]
		trend.DailyCompletion = append(trend.DailyCompletion, DailyScore{
			Date:         date,
			AverageScore: utils.Round1(acc.sum / float64(acc.n)),
			Captures:     acc.n,
		})
	}

	return trend
}
