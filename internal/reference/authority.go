package reference

import (
	"fmt"

	"apmeta/internal/textutil"
)

// Authority is the immutable artist index used by name matching and subject
// resolution. Safe for concurrent use after construction.
type Authority struct {
	artists []Artist
	byName  map[string]Artist
	fuzzy   *textutil.FuzzySet
}

// NewAuthority indexes artists by exact authorized name and builds the fuzzy
// name set. Later duplicates of a name are ignored.
func NewAuthority(artists []Artist) *Authority {
	byName := make(map[string]Artist, len(artists))
	names := make([]string, 0, len(artists))
	kept := make([]Artist, 0, len(artists))
	for _, artist := range artists {
		if _, exists := byName[artist.AuthorizedFormOfName]; exists {
			continue
		}
		artist.SubjectAccessPoints = append([]string(nil), artist.SubjectAccessPoints...)
		byName[artist.AuthorizedFormOfName] = artist
		names = append(names, artist.AuthorizedFormOfName)
		kept = append(kept, artist)
	}
	return &Authority{
		artists: kept,
		byName:  byName,
		fuzzy:   textutil.NewFuzzySet(names),
	}
}

// Len returns the number of indexed artists.
func (a *Authority) Len() int {
	if a == nil {
		return 0
	}
	return len(a.artists)
}

// Match returns the authorized names similar to token at or above threshold.
func (a *Authority) Match(token string, threshold float64) []string {
	if a == nil {
		return nil
	}
	matches := a.fuzzy.Get(token, threshold)
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m.Value)
	}
	return names
}

// Subjects returns a copy of the subject access points for an authorized
// name. Names produced by Match always resolve; any other miss is an error.
func (a *Authority) Subjects(name string) ([]string, error) {
	if a != nil {
		if artist, ok := a.byName[name]; ok {
			return append([]string(nil), artist.SubjectAccessPoints...), nil
		}
	}
	return nil, fmt.Errorf("no authority record for %q", name)
}
