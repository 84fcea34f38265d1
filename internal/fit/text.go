package fit

import (
	"strings"

	"github.com/meur/fitforge/internal/models"
)

// exportSlots is the category order of the EFT text format.
var exportSlots = []models.Slot{models.SlotLo, models.SlotMed, models.SlotHi, models.SlotRig, models.SlotSub}

// RenderText writes the fit in EFT form: a "[Ship]" header, then one line
// per module ("Module" or "Module, Charge"), with a blank line before every
// category after the first whether or not it has modules.
func RenderText(doc models.FitDocument) string {
	lines := []string{"[" + doc.ShipName + "]"}
	for i, slot := range exportSlots {
		if i > 0 {
			lines = append(lines, "")
		}
		for _, e := range doc.Slots.Row(slot) {
			if e == nil || !e.Occupied() {
				continue
			}
			line := e.Name
			if e.Charge != nil {
				line += ", " + e.Charge.Name
			}
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
