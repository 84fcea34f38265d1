package fit

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/meur/fitforge/internal/models"
)

// UnknownShipName is used when the hull type is not in the names table.
// Brackets keep it from colliding with a real type name.
const UnknownShipName = "[unknown ship]"

// Normalize builds a FitDocument from a fetched payload. The payload is
// not modified.
func Normalize(p models.FitPayload) models.FitDocument {
	doc := models.FitDocument{
		Killmail: p.Killmail,
		Ship:     p.Ship,
		ShipName: UnknownShipName,
		Cost:     p.Cost,
	}
	if ship, ok := p.Names.Lookup(p.Ship); ok && p.Items != nil {
		doc.ShipName = ship.Name
	}
	doc.Slots = BuildLayout(p.Items, p.Names)
	doc.Charges = charges(&doc.Slots)
	return doc
}

// NormalizeAll normalizes every fit of a listing in order.
func NormalizeAll(fits []models.FitPayload) []models.FitDocument {
	out := make([]models.FitDocument, 0, len(fits))
	for _, p := range fits {
		out = append(out, Normalize(p))
	}
	return out
}

// charges lists the distinct charges loaded anywhere in the fit, by name.
func charges(layout *models.SlotLayout) []models.NamedItem {
	seen := map[int]bool{}
	var out []models.NamedItem
	for _, slot := range models.DisplaySlots {
		for _, e := range layout.Row(slot) {
			if e == nil || e.Charge == nil || seen[e.Charge.ID] {
				continue
			}
			seen[e.Charge.ID] = true
			out = append(out, *e.Charge)
		}
	}
	col := collate.New(language.English)
	sort.Slice(out, func(i, j int) bool {
		if c := col.CompareString(out[i].Name, out[j].Name); c != 0 {
			return c < 0
		}
		return out[i].ID < out[j].ID
	})
	return out
}
