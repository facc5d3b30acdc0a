package analysis

import (
	"strings"

	"github.com/tradecraft/journal/internal/utils"
)

// Group weights. They sum to 100 so a fully populated entry scores exactly 100.
const (
	weightDirectional = 40.0
	weightCore        = 20.0
	weightZones       = 20.0
	weightStructure   = 20.0
)

// ScoreEntry computes the weighted completeness score for an analysis.
// Four groups contribute a fraction of their weight:
//   - directional judgments (13 fields), counted when not "none"
//   - core identity fields (7), counted when non-blank
//   - zone levels (10), counted when non-blank
//   - structure rows, counted when the bias is set or a level is given
//
// Total function: no inputs are rejected, missing fields count as absent.
func ScoreEntry(e Entry) float64 {
	directionals := e.directionals()
	dirSet := 0
	for _, d := range directionals {
		if d.Set() {
			dirSet++
		}
	}

	core := e.coreFields()
	coreSet := 0
	for _, f := range core {
		if !blank(f) {
			coreSet++
		}
	}

	zones := e.zoneFields()
	zoneSet := 0
	for _, z := range zones {
		if !blank(z) {
			zoneSet++
		}
	}

	rowsSet := 0
	for _, row := range e.Structure {
		if row.set() {
			rowsSet++
		}
	}
	rowCount := len(e.Structure)
	if rowCount < 1 {
		rowCount = 1
	}

	score := weightDirectional*float64(dirSet)/float64(len(directionals)) +
		weightCore*float64(coreSet)/float64(len(core)) +
		weightZones*float64(zoneSet)/float64(len(zones)) +
		weightStructure*float64(rowsSet)/float64(rowCount)

	return utils.Round1(score)
}

// blank reports whether a field is empty or whitespace-only.
func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
