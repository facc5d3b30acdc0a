package tradelog

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/tradecraft/journal/internal/utils"
	"github.com/tradecraft/journal/internal/window"
)

// unknownGroup is the bucket for trades missing a strategy or asset.
const unknownGroup = "Unknown"

// WeeklyStat is one ISO-week bucket, keyed by its Monday.
type WeeklyStat struct {
	WeekStart         string  `json:"weekStart"`
	Trades            int     `json:"trades"`
	NetProfit         float64 `json:"netProfit"`
	WinRate           float64 `json:"winRate"`
	AverageRiskReward float64 `json:"averageRiskReward"`
}

// GroupStat is one strategy or asset bucket.
type GroupStat struct {
	Name              string  `json:"name"`
	Trades            int     `json:"trades"`
	NetProfit         float64 `json:"netProfit"`
	WinRate           float64 `json:"winRate"`
	AverageRiskReward float64 `json:"averageRiskReward"`
}

// Trend is the windowed rollup over trade entries.
type Trend struct {
	Days                   int          `json:"days"`
	TotalTrades            int          `json:"totalTrades"`
	NetProfit              float64      `json:"netProfit"`
	WinRate                float64      `json:"winRate"`
	AverageRiskRewardRatio float64      `json:"averageRiskRewardRatio"`
	AverageJournalScore    float64      `json:"averageJournalScore"`
	WeeklyStats            []WeeklyStat `json:"weeklyStats"`
	ByStrategy             []GroupStat  `json:"byStrategy"`
	ByAsset                []GroupStat  `json:"byAsset"`
}

// bucket accumulates the shared per-group metrics during the fold.
type bucket struct {
	trades  int
	profit  float64
	closed  int
	wins    int
	rrSum   float64
	rrCount int
}

func (b *bucket) add(e *Entry) {
	b.trades++
	if e.TotalProfit != nil {
		b.profit += *e.TotalProfit
	}
	if e.Closed() {
		b.closed++
	}
	if e.Win() {
		b.wins++
	}
	if e.RiskReward != nil {
		b.rrSum += *e.RiskReward
		b.rrCount++
	}
}

func (b *bucket) netProfit() float64 { return utils.Round2(b.profit) }

func (b *bucket) winRate() float64 {
	closed := b.closed
	if closed < 1 {
		closed = 1
	}
	return utils.Round1(100 * float64(b.wins) / float64(closed))
}

func (b *bucket) averageRR() float64 {
	n := b.rrCount
	if n < 1 {
		n = 1
	}
	return utils.Round2(b.rrSum / float64(n))
}

// orderedBuckets folds entries into named buckets while remembering
// first-seen key order, so the final sort alone decides the output order.
type orderedBuckets struct {
	byKey map[string]*bucket
	keys  []string
}

func newOrderedBuckets() *orderedBuckets {
	return &orderedBuckets{byKey: make(map[string]*bucket)}
}

func (o *orderedBuckets) add(key string, e *Entry) {
	b, ok := o.byKey[key]
	if !ok {
		b = &bucket{}
		o.byKey[key] = b
		o.keys = append(o.keys, key)
	}
	b.add(e)
}

// BuildTrend aggregates already-scored trades into a trend report. The
// entries are assumed to be window-filtered by the caller; days is carried
// through for display only. Empty input yields a zero-valued report.
func BuildTrend(entries []Entry, days int) Trend {
	trend := Trend{
		Days:        days,
		WeeklyStats: []WeeklyStat{},
		ByStrategy:  []GroupStat{},
		ByAsset:     []GroupStat{},
	}

	total := len(entries)
	trend.TotalTrades = total
	if total == 0 {
		return trend
	}

	overall := &bucket{}
	weekly := newOrderedBuckets()
	byStrategy := newOrderedBuckets()
	byAsset := newOrderedBuckets()
	scores := make([]float64, total)

	for i := range entries {
		e := &entries[i]
		scores[i] = e.JournalScore
		overall.add(e)

		// Trades with an unparsable date still count in the totals, they
		// just have no week to land in.
		if weekStart, ok := window.WeekStart(e.TradeDate); ok {
			weekly.add(weekStart, e)
		}

		strategy := e.Strategy
		if blank(strategy) {
			strategy = unknownGroup
		}
		byStrategy.add(strategy, e)

		asset := e.Asset
		if blank(asset) {
			asset = unknownGroup
		}
		byAsset.add(asset, e)
	}

	trend.NetProfit = overall.netProfit()
	trend.WinRate = overall.winRate()
	trend.AverageRiskRewardRatio = overall.averageRR()
	trend.AverageJournalScore = utils.Round1(stat.Mean(scores, nil))

	sort.Strings(weekly.keys)
	for _, weekStart := range weekly.keys {
		b := weekly.byKey[weekStart]
		trend.WeeklyStats = append(trend.WeeklyStats, WeeklyStat{
			WeekStart:         weekStart,
			Trades:            b.trades,
			NetProfit:         b.netProfit(),
			WinRate:           b.winRate(),
			AverageRiskReward: b.averageRR(),
		})
	}

	trend.ByStrategy = groupStats(byStrategy)
	trend.ByAsset = groupStats(byAsset)

	return trend
}

// groupStats renders buckets sorted by descending trade count. The stable
// sort keeps first-seen order between groups with equal counts.
func groupStats(o *orderedBuckets) []GroupStat {
	stats := make([]GroupStat, 0, len(o.keys))
	for _, key := range o.keys {
		b := o.byKey[key]
		stats = append(stats, GroupStat{
			Name:              key,
			Trades:            b.trades,
			NetProfit:         b.netProfit(),
			WinRate:           b.winRate(),
			AverageRiskReward: b.averageRR(),
		})
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Trades > stats[j].Trades
	})
	return stats
}
