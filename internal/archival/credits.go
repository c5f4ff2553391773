package archival

import (
	"regexp"
	"strings"

	"apmeta/internal/textutil"
)

var (
	creditPattern        = regexp.MustCompile(`(?i)credit`)
	creditPathSeparators = regexp.MustCompile(`[/\\_-]`)
)

// DetectCredits collects credit mentions from tag values and path segments
// and keeps the single most descriptive one.
func DetectCredits(f IdentifiedFile) IdentifiedFile {
	out := IdentifiedFile{FileRecord: f.clone()}

	candidates := append([]string(nil), out.Credits...)
	for _, value := range sortedTagValues(out.Tags) {
		if value = strings.TrimSpace(value); creditPattern.MatchString(value) {
			candidates = append(candidates, value)
		}
	}
	for _, segment := range creditPathSeparators.Split(out.Path, -1) {
		if segment = strings.TrimSpace(segment); creditPattern.MatchString(segment) {
			candidates = append(candidates, segment)
		}
	}

	out.Credits = PickCredit(candidates)
	return out
}

// PickCredit deduplicates candidates, splits camel case, and returns the one
// with the most space-separated words. On a tie the earliest candidate wins.
// The result has at most one element and is empty for empty input.
func PickCredit(candidates []string) []string {
	var unique []string
	for _, c := range appendUnique(nil, candidates...) {
		unique = appendUnique(unique, textutil.BreakCamelCase(c))
	}
	if len(unique) == 0 {
		return []string{}
	}
	pick := unique[0]
	for _, c := range unique[1:] {
		if wordCount(c) > wordCount(pick) {
			pick = c
		}
	}
	return []string{pick}
}

func wordCount(s string) int {
	return len(strings.Split(s, " "))
}
