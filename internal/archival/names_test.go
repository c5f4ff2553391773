package archival

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apmeta/internal/reference"
)

func TestNameTokens(t *testing.T) {
	got := NameTokens(`/Volumes/Show (2019)/Jane Doe_PhotoCredit-x\y.jpg`)
	assert.Equal(t, []string{"Volumes", "Show", "2019", "Jane Doe", "x", "y.jpg"}, got)
}

func TestMatchNames(t *testing.T) {
	auth := reference.NewAuthority([]reference.Artist{
		{AuthorizedFormOfName: "John Smith"},
		{AuthorizedFormOfName: "Jane Doe"},
	})
	f := identified(t, "/Archive/Jon Smith/jane doe/Jon Smith_01.jpg", day(2020, 1, 1))
	got := MatchNames(f, auth, 0.8)
	assert.Equal(t, []string{"John Smith", "Jane Doe"}, got.Names)

	none := MatchNames(identified(t, "/Archive/unrelated/x.jpg", day(2020, 1, 1)), auth, 0.8)
	assert.NotNil(t, none.Names)
	assert.Empty(t, none.Names)
}

func TestMatchNamesMonotonicInThreshold(t *testing.T) {
	auth := reference.NewAuthority([]reference.Artist{
		{AuthorizedFormOfName: "John Smith"},
		{AuthorizedFormOfName: "Joan Smyth"},
		{AuthorizedFormOfName: "Jon Smithson"},
		{AuthorizedFormOfName: "Maria Lopez"},
	})
	for _, token := range []string{"Jon Smith", "smith", "Marie Lopes", "zzz"} {
		var previous []string
		for step := 0; step <= 20; step++ {
			threshold := float64(step) / 20
			current := auth.Match(token, threshold)
			if step > 0 {
				for _, name := range current {
					require.Contains(t, previous, name, "token %q gained %q at threshold %.2f", token, name, threshold)
				}
			}
			previous = current
		}
	}
}
