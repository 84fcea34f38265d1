package models

import "encoding/json"

// SlotCapacity is the most slots a hull can have in any one category.
const SlotCapacity = 8

// Slot is a fitting slot category
type Slot string

const (
	SlotHi  Slot = "hi"
	SlotMed Slot = "med"
	SlotLo  Slot = "lo"
	SlotRig Slot = "rig"
	SlotSub Slot = "sub"
)

// DisplaySlots is the order slot categories are shown in
var DisplaySlots = []Slot{SlotHi, SlotMed, SlotLo, SlotRig, SlotSub}

// MarshalJSON encodes an empty slot as null.
func (s Slot) MarshalJSON() ([]byte, error) {
	if s == "" {
		return []byte("null"), nil
	}
	return json.Marshal(string(s))
}

// Type categories as exposed in NameInfo.Category
const (
	CategoryShip      = "ship"
	CategoryModule    = "module"
	CategoryCharge    = "charge"
	CategorySubsystem = "subsystem"
)

// NameInfo is the metadata joined into a fit payload for one type id
type NameInfo struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Group     int    `json:"group"`
	GroupName string `json:"group_name"`
	Slot      Slot   `json:"slot"` // empty = not fittable
}

// IsCharge reports whether the type loads into a module instead of a slot.
func (n NameInfo) IsCharge() bool {
	return n.Category == CategoryCharge
}

// Names maps type ids to their metadata
type Names map[int]NameInfo

// Lookup returns the metadata for id, if known.
func (n Names) Lookup(id int) (NameInfo, bool) {
	info, ok := n[id]
	return info, ok
}

// RawItem is one fitted item as recorded on a killmail
type RawItem struct {
	ItemTypeID int `json:"item_type_id"`
	Flag       int `json:"flag"`
}

// FitPayload is the wire form of a single fit
type FitPayload struct {
	Killmail int64
	Ship     int
	Cost     int64
	Names    Names
	Items    []RawItem
}

// FilterSet echoes the types a fit listing was filtered by
type FilterSet struct {
	Item []NameInfo `json:"item,omitempty"`
	Ship []NameInfo `json:"ship,omitempty"`
}

// Empty reports whether no filter was applied.
func (f FilterSet) Empty() bool {
	return len(f.Item) == 0 && len(f.Ship) == 0
}

// FitsPayload is the wire form of a filtered fit listing
type FitsPayload struct {
	Filter FilterSet
	Fits   []FitPayload
}
