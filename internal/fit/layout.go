package fit

import "github.com/meur/fitforge/internal/models"

// BuildLayout places each item into its slot. Items with unknown types, no
// slot, or a non-fitting flag are skipped. A charge and its module share a
// flag and may arrive in either order; each only fills its own half of the
// entry.
func BuildLayout(items []models.RawItem, names models.Names) models.SlotLayout {
	var layout models.SlotLayout
	for _, item := range items {
		info, ok := names.Lookup(item.ItemTypeID)
		if !ok || info.Slot == "" {
			continue
		}
		slot, idx, ok := MapFlag(item.Flag)
		if !ok {
			continue
		}
		row := layout.Row(slot)
		if row[idx] == nil {
			row[idx] = &models.SlotEntry{}
		}
		entry := row[idx]
		if info.IsCharge() {
			entry.Charge = &models.NamedItem{ID: item.ItemTypeID, Name: info.Name}
			continue
		}
		// Two modules on one flag is bad data; the later one wins.
		entry.ID = item.ItemTypeID
		entry.Name = info.Name
		entry.Group = info.Group
	}
	dropOrphanCharges(&layout)
	return layout
}

// dropOrphanCharges clears positions that only received a charge.
func dropOrphanCharges(layout *models.SlotLayout) {
	for _, slot := range models.DisplaySlots {
		row := layout.Row(slot)
		for i, e := range row {
			if e != nil && !e.Occupied() {
				row[i] = nil
			}
		}
	}
}
