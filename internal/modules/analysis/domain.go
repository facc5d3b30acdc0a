// Package analysis implements market-structure analyses: a per-day/pair
// capture of directional judgments, key levels and a structure table,
// scored for completeness at write time and rolled up into windowed
// trends at read time.
package analysis

import "time"

// Direction is a directional judgment over a timeframe or indicator.
type Direction string

const (
	DirectionBullish       Direction = "bullish"
	DirectionBearish       Direction = "bearish"
	DirectionConsolidation Direction = "consolidation"
	DirectionNone          Direction = "none"
)

// Normalize maps unknown or missing values to DirectionNone. Malformed
// optional fields degrade to absent rather than being rejected.
func (d Direction) Normalize() Direction {
	switch d {
	case DirectionBullish, DirectionBearish, DirectionConsolidation:
		return d
	default:
		return DirectionNone
	}
}

// Set reports whether the judgment carries a direction.
func (d Direction) Set() bool {
	return d.Normalize() != DirectionNone
}

// Bias values for market-structure rows.
const (
	BiasBuy  = "buy"
	BiasSell = "sell"
	BiasNone = "none"
)

// StructureRow is one row of the market-structure table.
type StructureRow struct {
	Label string `json:"label,omitempty"` // e.g. a timeframe or swing label
	Bias  string `json:"bias"`            // buy, sell, none
	Level string `json:"level,omitempty"` // optional price level
}

// set reports whether the row carries information: a non-none bias or a
// non-blank level.
func (r StructureRow) set() bool {
	if r.Bias == BiasBuy || r.Bias == BiasSell {
		return true
	}
	return !blank(r.Level)
}

// StructureRows is the expected row count of a fully populated table.
const StructureRows = 13

// Entry is one market-structure analysis.
type Entry struct {
	ID string `json:"id,omitempty"`

	// Core identity
	Pair        string `json:"pair"`
	TradingDate string `json:"tradingDate"` // YYYY-MM-DD
	Session     string `json:"session,omitempty"`
	Conclusion  string `json:"conclusion,omitempty"`
	NewsTime    string `json:"newsTime,omitempty"`
	SellRSI     string `json:"sellRsi,omitempty"`
	BuyRSI      string `json:"buyRsi,omitempty"`

	// Timeframe judgments
	Monthly Direction `json:"monthly,omitempty"`
	Weekly  Direction `json:"weekly,omitempty"`
	Daily   Direction `json:"daily,omitempty"`
	H4      Direction `json:"h4,omitempty"`
	H1      Direction `json:"h1,omitempty"`
	M30     Direction `json:"m30,omitempty"`
	M15     Direction `json:"m15,omitempty"`
	M5      Direction `json:"m5,omitempty"`

	// Indicator judgments
	EMABias    Direction `json:"emaBias,omitempty"`
	MACDBias   Direction `json:"macdBias,omitempty"`
	RSIBias    Direction `json:"rsiBias,omitempty"`
	VolumeBias Direction `json:"volumeBias,omitempty"`

	CurrentTrend Direction `json:"currentTrend,omitempty"`

	// Optional zone price levels
	WeeklyResistance string `json:"weeklyResistance,omitempty"`
	WeeklySupport    string `json:"weeklySupport,omitempty"`
	DailyResistance  string `json:"dailyResistance,omitempty"`
	DailySupport     string `json:"dailySupport,omitempty"`
	H4Resistance     string `json:"h4Resistance,omitempty"`
	H4Support        string `json:"h4Support,omitempty"`
	H1Resistance     string `json:"h1Resistance,omitempty"`
	H1Support        string `json:"h1Support,omitempty"`
	SupplyZone       string `json:"supplyZone,omitempty"`
	DemandZone       string `json:"demandZone,omitempty"`

	Structure []StructureRow `json:"structure,omitempty"`

	// AnalysisScore is computed at creation and always present afterwards,
	// in [0,100].
	AnalysisScore float64 `json:"analysisScore"`

	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// directionals returns the 13 directional-judgment fields in fixed order:
// 8 timeframes, 4 indicator biases, current trend.
func (e *Entry) directionals() [13]Direction {
	return [13]Direction{
		e.Monthly, e.Weekly, e.Daily, e.H4, e.H1, e.M30, e.M15, e.M5,
		e.EMABias, e.MACDBias, e.RSIBias, e.VolumeBias,
		e.CurrentTrend,
	}
}

// coreFields returns the 7 identifying/core text fields.
func (e *Entry) coreFields() [7]string {
	return [7]string{
		e.Pair, e.TradingDate, e.Session, e.Conclusion,
		e.NewsTime, e.SellRSI, e.BuyRSI,
	}
}

// zoneFields returns the 10 optional price-level fields.
func (e *Entry) zoneFields() [10]string {
	return [10]string{
		e.WeeklyResistance, e.WeeklySupport,
		e.DailyResistance, e.DailySupport,
		e.H4Resistance, e.H4Support,
		e.H1Resistance, e.H1Support,
		e.SupplyZone, e.DemandZone,
	}
}
