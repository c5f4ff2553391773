package archival

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"apmeta/internal/reference"
)

var testRules = CycleRules{
	Abbreviations: []string{"IAIR", "WW", "HS"},
	Noise:         []string{"Volumes", "Archive"},
}

func identified(t *testing.T, path string, modified time.Time) IdentifiedFile {
	t.Helper()
	f, err := NewIdentifiedFile(path,
		FormatMatch{ID: "fmt/43", MIME: "image/jpeg", Format: "JPEG File Interchange Format"},
		Technical{Report: "General\nFormat: JPEG", Modified: modified, IsImage: true},
		"abc123")
	require.NoError(t, err)
	return f
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func testRefs(artists ...reference.Artist) *reference.Data {
	return &reference.Data{
		Authority: reference.NewAuthority(artists),
		Cycles: []reference.Cycle{
			{PrefLabel: []string{"Ways of Working Spring 2019"}, AltLabel: []string{"WW 19.2"}},
		},
	}
}
