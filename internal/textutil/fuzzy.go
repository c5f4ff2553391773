package textutil

import (
	"sort"
	"strings"
)

const (
	defaultGramSizeLower = 2
	defaultGramSizeUpper = 3
)

// Match is a single FuzzySet lookup result.
type Match struct {
	Score float64
	Value string
}

type posting struct {
	index int
	count float64
}

// FuzzySet is an immutable index of canonical values supporting approximate
// lookups. Candidates are any indexed values sharing at least one character
// gram with the query; candidates are then scored by edit similarity. Equal
// scores are ordered by gram cosine similarity, then by insertion order.
//
// A FuzzySet is safe for concurrent readers once constructed.
type FuzzySet struct {
	gramSizes []int
	values    []string
	lowered   []string
	prints    []*Fingerprint
	exact     map[string]int
	postings  map[int]map[string][]posting
}

// NewFuzzySet builds an index over values. Duplicate values (compared
// case-insensitively) keep their first spelling.
func NewFuzzySet(values []string) *FuzzySet {
	set := &FuzzySet{
		gramSizes: []int{defaultGramSizeUpper, defaultGramSizeLower},
		exact:     make(map[string]int, len(values)),
		postings:  make(map[int]map[string][]posting, 2),
	}
	for _, size := range set.gramSizes {
		set.postings[size] = make(map[string][]posting)
	}
	for _, value := range values {
		set.add(value)
	}
	return set
}

func (s *FuzzySet) add(value string) {
	lowered := strings.ToLower(value)
	if _, ok := s.exact[lowered]; ok {
		return
	}
	index := len(s.values)
	s.values = append(s.values, value)
	s.lowered = append(s.lowered, lowered)
	s.exact[lowered] = index
	s.prints = append(s.prints, NewFingerprint(lowered, s.gramSizes[0]))
	for _, size := range s.gramSizes {
		fp := NewFingerprint(lowered, size)
		if fp == nil {
			continue
		}
		for gram, count := range fp.grams {
			s.postings[size][gram] = append(s.postings[size][gram], posting{index: index, count: count})
		}
	}
}

// Len returns the number of distinct indexed values.
func (s *FuzzySet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.values)
}

// Get returns every indexed value whose similarity to query is at least
// minScore, best first. An exact (case-insensitive) hit short-circuits to
// that single value with score 1. A query with no match returns nil.
func (s *FuzzySet) Get(query string, minScore float64) []Match {
	if s == nil || len(s.values) == 0 {
		return nil
	}
	lowered := strings.ToLower(query)
	if idx, ok := s.exact[lowered]; ok {
		if minScore > 1 {
			return nil
		}
		return []Match{{Score: 1, Value: s.values[idx]}}
	}

	candidates := make(map[int]struct{})
	for _, size := range s.gramSizes {
		fp := NewFingerprint(lowered, size)
		if fp == nil {
			continue
		}
		for gram := range fp.grams {
			for _, p := range s.postings[size][gram] {
				candidates[p.index] = struct{}{}
			}
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	type scored struct {
		index  int
		score  float64
		cosine float64
	}
	queryPrint := NewFingerprint(lowered, s.gramSizes[0])
	results := make([]scored, 0, len(candidates))
	for idx := range candidates {
		score := EditSimilarity(s.lowered[idx], lowered)
		if score < minScore {
			continue
		}
		results = append(results, scored{index: idx, score: score, cosine: CosineSimilarity(queryPrint, s.prints[idx])})
	}
	if len(results) == 0 {
		return nil
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].score != results[j].score {
			return results[i].score > results[j].score
		}
		if results[i].cosine != results[j].cosine {
			return results[i].cosine > results[j].cosine
		}
		return results[i].index < results[j].index
	})
	matches := make([]Match, len(results))
	for i, r := range results {
		matches[i] = Match{Score: r.score, Value: s.values[r.index]}
	}
	return matches
}
