package archival

import (
	"apmeta/internal/reference"
)

// EnrichOptions carries the per-batch settings of the enrichment passes.
type EnrichOptions struct {
	// SourceDir is tokenized into path tags; empty uses each file's directory.
	SourceDir string
	Threshold float64
	Cycles    CycleRules
}

// Enrich runs the pure passes in order: dates, credits, names, subjects, path
// tags. refs must be fully loaded and is only read.
func Enrich(f IdentifiedFile, refs *reference.Data, opts EnrichOptions) (MatchedFile, error) {
	f = InferDates(f)
	f = DetectCredits(f)

	var (
		authority *reference.Authority
		cycles    []reference.Cycle
	)
	if refs != nil {
		authority, cycles = refs.Authority, refs.Cycles
	}

	var matcher NameMatcher
	var source SubjectSource
	if authority != nil {
		matcher, source = authority, authority
	}
	matched := MatchNames(f, matcher, opts.Threshold)
	matched, err := ResolveSubjects(matched, source, cycles, opts.Cycles)
	if err != nil {
		return MatchedFile{}, err
	}
	matched.IdentifiedFile = TagPath(matched.IdentifiedFile, opts.SourceDir, opts.Cycles.Noise)
	return matched, nil
}
