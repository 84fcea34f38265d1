package fit

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/meur/fitforge/internal/models"
)

// SlotGroup is a run of identical modules within one slot category
type SlotGroup struct {
	ID    int
	Name  string
	Count int
}

// GroupSlot counts occupied entries by module name. Groups are ordered by
// count, highest first, then by name.
func GroupSlot(entries []models.SlotEntry) []SlotGroup {
	idx := map[string]int{}
	var groups []SlotGroup
	for _, e := range entries {
		if !e.Occupied() {
			continue
		}
		i, ok := idx[e.Name]
		if !ok {
			i = len(groups)
			idx[e.Name] = i
			groups = append(groups, SlotGroup{ID: e.ID, Name: e.Name})
		}
		groups[i].Count++
	}
	col := collate.New(language.English)
	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].Count != groups[j].Count {
			return groups[i].Count > groups[j].Count
		}
		return col.CompareString(groups[i].Name, groups[j].Name) < 0
	})
	return groups
}
