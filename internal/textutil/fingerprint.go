package textutil

import (
	"math"
	"regexp"
	"strings"
)

// gramStripPattern matches characters that never contribute to a gram.
var gramStripPattern = regexp.MustCompile(`[^a-z0-9\x{00C0}-\x{00FF}, ]+`)

// Fingerprint represents a gram-frequency vector for similarity comparison.
type Fingerprint struct {
	grams map[string]float64
	norm  float64
}

// NewFingerprint creates a fingerprint of the given gram size from value.
// Returns nil if gramSize is not positive.
func NewFingerprint(value string, gramSize int) *Fingerprint {
	grams := Grams(value, gramSize)
	if len(grams) == 0 {
		return nil
	}
	counts := make(map[string]float64, len(grams))
	for _, gram := range grams {
		counts[gram]++
	}
	var norm float64
	for _, count := range counts {
		norm += count * count
	}
	return &Fingerprint{
		grams: counts,
		norm:  math.Sqrt(norm),
	}
}

// Grams splits value into overlapping character grams of length gramSize.
// The simplified value is wrapped in dashes and padded to at least gramSize.
func Grams(value string, gramSize int) []string {
	if gramSize <= 0 {
		return nil
	}
	simplified := "-" + gramStripPattern.ReplaceAllString(strings.ToLower(value), "") + "-"
	runes := []rune(simplified)
	for len(runes) < gramSize {
		runes = append(runes, '-')
	}
	grams := make([]string, 0, len(runes)-gramSize+1)
	for i := 0; i+gramSize <= len(runes); i++ {
		grams = append(grams, string(runes[i:i+gramSize]))
	}
	return grams
}
