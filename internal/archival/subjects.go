package archival

import (
	"fmt"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"apmeta/internal/reference"
)

// SubjectSource resolves an authorized artist name to its subjects.
type SubjectSource interface {
	Subjects(name string) ([]string, error)
}

// CycleRules configures recognition of program cycle codes in paths.
type CycleRules struct {
	Abbreviations []string
	Noise         []string
}

var cycleCodePattern = regexp.MustCompile(`^\d{2}\.\d$`)

// ResolveSubjects derives subject access points from the matched artist
// names and from a program cycle code in the file's directory. The result is
// recomputed from names and path on every call, which keeps the pass
// idempotent.
//
// A cycle label that case-insensitively equals an artist subject replaces
// all artist subjects; the folder is the stronger signal. Otherwise the
// label is appended for manual review.
func ResolveSubjects(f MatchedFile, source SubjectSource, cycles []reference.Cycle, rules CycleRules) (MatchedFile, error) {
	out := MatchedFile{IdentifiedFile: IdentifiedFile{FileRecord: f.clone()}}

	subjects := []string{}
	for _, name := range out.Names {
		if source == nil {
			break
		}
		found, err := source.Subjects(name)
		if err != nil {
			return MatchedFile{}, fmt.Errorf("resolve subjects for matched name %q: %w", name, err)
		}
		subjects = appendUnique(subjects, found...)
	}

	if label, ok := CycleSubject(filepath.Dir(out.Path), cycles, rules); ok {
		idx := slices.IndexFunc(subjects, func(s string) bool { return strings.EqualFold(s, label) })
		if idx >= 0 {
			subjects = []string{label}
		} else {
			subjects = appendUnique(subjects, label)
		}
	}

	out.Subjects = subjects
	return out, nil
}

// CycleSubject finds "<ABBR> <DD.D>" in dir and returns the preferred label
// of the first cycle whose alternate labels contain it.
func CycleSubject(dir string, cycles []reference.Cycle, rules CycleRules) (string, bool) {
	code, ok := CycleCode(dir, rules)
	if !ok {
		return "", false
	}
	for _, cycle := range cycles {
		if len(cycle.PrefLabel) == 0 {
			continue
		}
		for _, alt := range cycle.AltLabel {
			if strings.Contains(alt, code) {
				return cycle.PrefLabel[0], true
			}
		}
	}
	return "", false
}

// CycleCode looks for a program abbreviation followed, anywhere later in the
// path, by a DD.D cycle number. Directory tokens are further split on
// whitespace so "WW 19.2" and "WW_19.2" read the same.
func CycleCode(dir string, rules CycleRules) (string, bool) {
	var words []string
	for _, token := range DirTokens(dir, rules.Noise) {
		words = append(words, strings.Fields(token)...)
	}
	for i, word := range words {
		abbr, ok := matchAbbreviation(word, rules.Abbreviations)
		if !ok {
			continue
		}
		for _, next := range words[i+1:] {
			if cycleCodePattern.MatchString(next) {
				return abbr + " " + next, true
			}
		}
	}
	return "", false
}

func matchAbbreviation(word string, abbreviations []string) (string, bool) {
	for _, abbr := range abbreviations {
		if strings.EqualFold(word, abbr) {
			return abbr, true
		}
	}
	return "", false
}
