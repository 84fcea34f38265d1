// Package fit turns raw killmail items into slot layouts and derives the
// summary and text views of a fit.
package fit

import "github.com/meur/fitforge/internal/models"

// flagRange is a contiguous run of killmail flags belonging to one category.
type flagRange struct {
	First int
	Last  int
	Slot  models.Slot
}

// flagRanges is fixed by the killmail encoding.
var flagRanges = []flagRange{
	{First: 11, Last: 18, Slot: models.SlotLo},
	{First: 19, Last: 26, Slot: models.SlotMed},
	{First: 27, Last: 34, Slot: models.SlotHi},
	{First: 92, Last: 99, Slot: models.SlotRig},
	{First: 125, Last: 132, Slot: models.SlotSub},
}

// MapFlag returns the slot category and position for a killmail flag. ok is
// false for flags outside the fitting ranges (cargo, drone bay, ...).
func MapFlag(flag int) (slot models.Slot, idx int, ok bool) {
	for _, r := range flagRanges {
		if flag >= r.First && flag <= r.Last {
			return r.Slot, flag - r.First, true
		}
	}
	return "", 0, false
}

// Flag is the inverse of MapFlag.
func Flag(slot models.Slot, idx int) (int, bool) {
	if idx < 0 || idx >= models.SlotCapacity {
		return 0, false
	}
	for _, r := range flagRanges {
		if r.Slot == slot {
			return r.First + idx, true
		}
	}
	return 0, false
}
