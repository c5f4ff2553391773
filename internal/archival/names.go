package archival

import (
	"regexp"
	"strings"
)

// NameMatcher is the read-only artist index consulted by MatchNames.
type NameMatcher interface {
	Match(token string, threshold float64) []string
}

var nameSeparators = regexp.MustCompile(`[/\\()_-]`)

// NameTokens splits a path into candidate artist-name tokens. Tokens that
// mention a credit are skipped; they name photographers, not subjects.
func NameTokens(path string) []string {
	var tokens []string
	for _, token := range nameSeparators.Split(path, -1) {
		if token == "" || creditPattern.MatchString(token) {
			continue
		}
		if token = strings.TrimSpace(token); token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// MatchNames fuzzy-matches every path token against the artist index and
// records the distinct authorized names found.
func MatchNames(f IdentifiedFile, matcher NameMatcher, threshold float64) MatchedFile {
	out := MatchedFile{IdentifiedFile: IdentifiedFile{FileRecord: f.clone()}}
	if out.Names == nil {
		out.Names = []string{}
	}
	if matcher == nil {
		return out
	}
	for _, token := range NameTokens(out.Path) {
		out.Names = appendUnique(out.Names, matcher.Match(token, threshold)...)
	}
	return out
}
