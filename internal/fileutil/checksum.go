package fileutil

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Supported checksum algorithm names.
const (
	AlgorithmSHA256 = "sha256"
	AlgorithmXXHash = "xxhash"
)

func newHasher(algorithm string) (hash.Hash, error) {
	switch strings.ToLower(strings.TrimSpace(algorithm)) {
	case "", AlgorithmSHA256:
		return sha256.New(), nil
	case AlgorithmXXHash:
		return xxhash.New(), nil
	default:
		return nil, fmt.Errorf("unsupported checksum algorithm %q", algorithm)
	}
}

// Checksum streams the file at path through the named algorithm and returns
// the lowercase hex digest.
func Checksum(path, algorithm string) (string, error) {
	hasher, err := newHasher(algorithm)
	if err != nil {
		return "", err
	}
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	if _, err := io.Copy(hasher, file); err != nil {
		return "", fmt.Errorf("failed to hash file %s: %w", path, err)
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// DetectAlgorithm infers the algorithm that produced digest from its length.
// sha256 digests are 64 hex characters and xxhash digests are 16.
func DetectAlgorithm(digest string) (string, bool) {
	switch len(strings.TrimSpace(digest)) {
	case sha256.Size * 2:
		return AlgorithmSHA256, true
	case 16:
		return AlgorithmXXHash, true
	default:
		return "", false
	}
}

// VerifyChecksum recomputes the digest of path using the algorithm implied by
// expected and reports whether it matches.
func VerifyChecksum(path, expected string) (bool, error) {
	expected = strings.ToLower(strings.TrimSpace(expected))
	algorithm, ok := DetectAlgorithm(expected)
	if !ok {
		return false, fmt.Errorf("unrecognized checksum %q", expected)
	}
	actual, err := Checksum(path, algorithm)
	if err != nil {
		return false, err
	}
	return actual == expected, nil
}
