// Package textutil provides text processing utilities for fuzzy matching,
// camel-case decomposition, and natural ordering.
//
// The primary use cases are:
//   - Creating character-gram fingerprints and comparing them with cosine similarity
//   - Looking up approximate matches in a read-only FuzzySet of canonical names
//   - Splitting camelCase identifiers found in file names into words
//   - Sorting file names the way a person reads numbers ("2" before "10")
//
// Fingerprints use gram frequency vectors. The gram process lowercases text,
// strips everything but letters, digits, commas, and spaces, and pads the
// value with dashes so word boundaries contribute grams of their own.
package textutil
