package textutil

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortNatural orders items by key using English collation with numeric
// ordering, so "IMG_2" sorts before "IMG_10". The sort is stable.
func SortNatural[T any](items []T, key func(T) string) {
	c := collate.New(language.English, collate.Numeric)
	sort.SliceStable(items, func(i, j int) bool {
		return c.CompareString(key(items[i]), key(items[j])) < 0
	})
}
