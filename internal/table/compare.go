// Package table sorts and formats rows of fits for list views.
package table

import (
	"cmp"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/meur/fitforge/internal/models"
)

// Comparator orders two column values: negative, zero or positive.
type Comparator[V any] func(a, b V) int

// Ordered is the default comparator for numbers and plain strings.
func Ordered[V cmp.Ordered](a, b V) int {
	return cmp.Compare(a, b)
}

// Text compares strings in English collation order.
func Text() Comparator[string] {
	col := collate.New(language.English)
	return func(a, b string) int {
		return col.CompareString(a, b)
	}
}

// SlotCount ranks slot lists by how many entries they hold. A nil list
// counts as empty.
func SlotCount(a, b []models.SlotEntry) int {
	return len(a) - len(b)
}

// Reverse flips a comparator.
func Reverse[V any](c Comparator[V]) Comparator[V] {
	return func(a, b V) int {
		return c(b, a)
	}
}
