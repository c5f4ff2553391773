package archival

import (
	"fmt"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
)

var dirSeparators = regexp.MustCompile(`[/\\_-]`)

// DirTokens splits a directory path on separators and underscores, dropping
// empty tokens and noise segments such as "Volumes".
func DirTokens(dir string, noise []string) []string {
	var tokens []string
	for _, token := range dirSeparators.Split(dir, -1) {
		if token == "" || slices.Contains(noise, token) {
			continue
		}
		if token = strings.TrimSpace(token); token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// PathTagKey returns the tag key for the token at position i.
func PathTagKey(i int) string {
	return fmt.Sprintf("path[%d]", i)
}

// TagPath records the tokens of dir as positional path[n] tags. An empty dir
// means the file's own directory.
func TagPath(f IdentifiedFile, dir string, noise []string) IdentifiedFile {
	out := IdentifiedFile{FileRecord: f.clone()}
	if dir == "" {
		dir = filepath.Dir(out.Path)
	}
	if out.Tags == nil {
		out.Tags = map[string]string{}
	}
	for i, token := range DirTokens(dir, noise) {
		out.Tags[PathTagKey(i)] = token
	}
	return out
}
