package archival

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apmeta/internal/reference"
)

func TestCycleCode(t *testing.T) {
	tests := []struct {
		dir    string
		want   string
		wantOK bool
	}{
		{"/Archive/IAIR_22.1/ArtistName", "IAIR 22.1", true},
		{"/Volumes/Archive/WW 19.2/Maria", "WW 19.2", true},
		{"/Archive/ww/2019/19.2", "WW 19.2", true},
		{"/Archive/22.1/IAIR", "", false},
		{"/Archive/IAIR/2022.1", "", false},
		{"/Archive/Show", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.dir, func(t *testing.T) {
			got, ok := CycleCode(tt.dir, testRules)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveSubjectsCycleCollapsesMatchingArtistSubject(t *testing.T) {
	refs := testRefs(reference.Artist{
		AuthorizedFormOfName: "Maria Lopez",
		SubjectAccessPoints:  []string{"ways of working spring 2019", "Exhibition"},
	})
	f := identified(t, "/Volumes/Archive/WW 19.2/Maria Lopez/photo.jpg", day(2019, 5, 1))
	matched := MatchNames(f, refs.Authority, 0.8)
	require.Equal(t, []string{"Maria Lopez"}, matched.Names)

	got, err := ResolveSubjects(matched, refs.Authority, refs.Cycles, testRules)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ways of Working Spring 2019"}, got.Subjects)

	again, err := ResolveSubjects(got, refs.Authority, refs.Cycles, testRules)
	require.NoError(t, err)
	assert.Equal(t, got.Subjects, again.Subjects)
}

func TestResolveSubjectsCycleAppendsWhenDistinct(t *testing.T) {
	refs := testRefs(reference.Artist{
		AuthorizedFormOfName: "Maria Lopez",
		SubjectAccessPoints:  []string{"Exhibition", "Exhibition"},
	})
	matched := MatchNames(identified(t, "/Archive/WW_19.2/Maria Lopez/a.jpg", day(2019, 5, 1)), refs.Authority, 0.8)
	got, err := ResolveSubjects(matched, refs.Authority, refs.Cycles, testRules)
	require.NoError(t, err)
	assert.Equal(t, []string{"Exhibition", "Ways of Working Spring 2019"}, got.Subjects)
}

func TestResolveSubjectsWithoutSignals(t *testing.T) {
	refs := testRefs()
	matched := MatchNames(identified(t, "/Archive/Misc/a.jpg", day(2019, 5, 1)), refs.Authority, 0.8)
	got, err := ResolveSubjects(matched, refs.Authority, refs.Cycles, testRules)
	require.NoError(t, err)
	assert.Empty(t, got.Subjects)
}

type brokenSource struct{}

func (brokenSource) Subjects(name string) ([]string, error) {
	return nil, errors.New("missing")
}

func TestResolveSubjectsMissingAuthorityEntryIsError(t *testing.T) {
	f := MatchedFile{IdentifiedFile: identified(t, "/Archive/a.jpg", day(2019, 5, 1))}
	f.Names = []string{"Ghost"}
	_, err := ResolveSubjects(f, brokenSource{}, nil, testRules)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Ghost")
}
