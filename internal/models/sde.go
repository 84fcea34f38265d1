package models

import "strings"

// SDE group category ids
const (
	GroupCategoryShip      = 6
	GroupCategoryModule    = 7
	GroupCategoryCharge    = 8
	GroupCategorySubsystem = 32
)

// Group is an SDE inventory group
type Group struct {
	ID       int
	Name     string
	Lower    string
	Category int
}

// IsCharge reports whether types in the group are charges.
func (g Group) IsCharge() bool {
	return g.Category == GroupCategoryCharge
}

// CategoryName returns the NameInfo category for the group, or "" when the
// group is not one a fit can contain.
func (g Group) CategoryName() string {
	switch g.Category {
	case GroupCategoryShip:
		return CategoryShip
	case GroupCategoryModule:
		return CategoryModule
	case GroupCategoryCharge:
		return CategoryCharge
	case GroupCategorySubsystem:
		return CategorySubsystem
	}
	return ""
}

// Type is an SDE item type
type Type struct {
	ID    int
	Name  string
	Lower string
	Group int
}

// Catalog is an in-memory copy of the type and group tables
type Catalog struct {
	Types  map[int]Type
	Groups map[int]Group
}

// Type returns a type whose group is known.
func (c *Catalog) Type(id int) (Type, Group, bool) {
	t, ok := c.Types[id]
	if !ok {
		return Type{}, Group{}, false
	}
	g, ok := c.Groups[t.Group]
	if !ok {
		return Type{}, Group{}, false
	}
	return t, g, true
}

// Lowered fills Lower from Name when it is missing.
func Lowered(name, lower string) string {
	if lower != "" {
		return lower
	}
	return strings.ToLower(name)
}

// SearchResult is one hit of a name search
type SearchResult struct {
	Type string
	Name string
	ID   int
}
