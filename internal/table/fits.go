package table

import (
	"fmt"
	"strings"

	"github.com/meur/fitforge/internal/fit"
	"github.com/meur/fitforge/internal/models"
)

// UnknownCost is shown for fits without a fitted value.
const UnknownCost = "unknown value"

// FitColumns are the columns of the fit listing. Cost and slot columns
// default to highest first.
func FitColumns() []Column[models.FitSummary] {
	cost := Field("Cost", "fit",
		func(s models.FitSummary) int64 { return s.Cost }, Ordered[int64], FormatISK)
	cost.Desc = true
	cost.RightAlign = true

	cols := []Column[models.FitSummary]{
		Field("Name", "ship",
			func(s models.FitSummary) string { return s.Name }, Text(),
			func(v string) string { return v }),
		cost,
	}
	for _, sc := range []struct {
		name, header string
		get          func(models.FitSummary) []models.SlotEntry
	}{
		{"Hi", "high slots", func(s models.FitSummary) []models.SlotEntry { return s.Hi }},
		{"Med", "med slots", func(s models.FitSummary) []models.SlotEntry { return s.Med }},
		{"Lo", "low slots", func(s models.FitSummary) []models.SlotEntry { return s.Lo }},
	} {
		c := Field(sc.name, sc.header, sc.get, SlotCount, SlotCell)
		c.Desc = true
		cols = append(cols, c)
	}
	return cols
}

// NewFitTable returns a fit listing sorted by cost.
func NewFitTable() *Table[models.FitSummary] {
	return &Table[models.FitSummary]{Columns: FitColumns(), SortBy: "Cost"}
}

// SlotCell renders grouped modules as "2x Name, 1x Other".
func SlotCell(entries []models.SlotEntry) string {
	groups := fit.GroupSlot(entries)
	parts := make([]string, 0, len(groups))
	for _, g := range groups {
		parts = append(parts, fmt.Sprintf("%dx %s", g.Count, g.Name))
	}
	return strings.Join(parts, ", ")
}

// FormatISK renders a cost with thousands separators, or UnknownCost for
// zero.
func FormatISK(isk int64) string {
	if isk <= 0 {
		return UnknownCost
	}
	s := fmt.Sprintf("%d", isk)
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String() + " ISK"
}
