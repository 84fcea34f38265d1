package fit

import "github.com/meur/fitforge/internal/models"

// SavedPrefix prefixes the key a saved fit summary is stored under.
const SavedPrefix = "saved-"

// Summarize reduces a fit to its ship, cost and occupied hi/med/lo modules.
// Charges, rigs and subsystems are left out.
func Summarize(doc models.FitDocument) models.FitSummary {
	return models.FitSummary{
		Killmail: doc.Killmail,
		Ship:     doc.Ship,
		Name:     doc.ShipName,
		Cost:     doc.Cost,
		Hi:       modulesOnly(doc.Slots.Hi),
		Med:      modulesOnly(doc.Slots.Med),
		Lo:       modulesOnly(doc.Slots.Lo),
	}
}

// SummarizeAll summarizes each fit in order.
func SummarizeAll(docs []models.FitDocument) []models.FitSummary {
	out := make([]models.FitSummary, 0, len(docs))
	for _, d := range docs {
		out = append(out, Summarize(d))
	}
	return out
}

func modulesOnly(row models.SlotRow) []models.SlotEntry {
	entries := row.Occupied()
	for i := range entries {
		entries[i].Charge = nil
	}
	return entries
}
