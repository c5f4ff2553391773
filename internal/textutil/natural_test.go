package textutil

import "testing"

func TestSortNatural(t *testing.T) {
	items := []string{"IMG_10.jpg", "IMG_2.jpg", "IMG_1.jpg"}
	SortNatural(items, func(s string) string { return s })
	want := []string{"IMG_1.jpg", "IMG_2.jpg", "IMG_10.jpg"}
	for i := range want {
		if items[i] != want[i] {
			t.Fatalf("SortNatural = %v, want %v", items, want)
		}
	}
}
