package models

// NamedItem identifies a type by id and display name
type NamedItem struct {
	ID   int    `json:",omitempty"`
	Name string `json:",omitempty"`
}

// SlotEntry is the content of one physical slot
type SlotEntry struct {
	ID     int        `json:",omitempty"`
	Name   string     `json:",omitempty"`
	Group  int        `json:",omitempty"`
	Charge *NamedItem `json:",omitempty"`
}

// Occupied reports whether a module sits in the slot.
func (e SlotEntry) Occupied() bool {
	return e.Name != ""
}

// SlotRow holds one category of slots indexed by physical position.
// A nil element is an empty slot.
type SlotRow [SlotCapacity]*SlotEntry

// Occupied returns copies of the entries holding a module, in position order.
func (r SlotRow) Occupied() []SlotEntry {
	var out []SlotEntry
	for _, e := range r {
		if e != nil && e.Occupied() {
			out = append(out, *e)
		}
	}
	return out
}

// SlotLayout is a fit's modules and charges by slot category
type SlotLayout struct {
	Hi  SlotRow `json:"hi"`
	Med SlotRow `json:"med"`
	Lo  SlotRow `json:"lo"`
	Rig SlotRow `json:"rig"`
	Sub SlotRow `json:"sub"`
}

// Row returns the row for a category, or nil for an unknown one.
func (l *SlotLayout) Row(s Slot) *SlotRow {
	switch s {
	case SlotHi:
		return &l.Hi
	case SlotMed:
		return &l.Med
	case SlotLo:
		return &l.Lo
	case SlotRig:
		return &l.Rig
	case SlotSub:
		return &l.Sub
	}
	return nil
}

// FitDocument is a normalized fit ready for display
type FitDocument struct {
	Killmail int64
	Ship     int
	ShipName string
	// Cost is the fitted value in ISK; zero means unknown.
	Cost    int64
	Slots   SlotLayout
	Charges []NamedItem
}

// FitSummary is the compact form of a fit used by listings and saved fits
type FitSummary struct {
	Killmail int64
	Ship     int
	Name     string
	Cost     int64
	Hi       []SlotEntry
	Med      []SlotEntry
	Lo       []SlotEntry
}
