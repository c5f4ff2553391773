package textutil

import (
	"regexp"
	"strings"
)

var repeatedSpacePattern = regexp.MustCompile(`\s\s+`)

// BreakCamelCase inserts a space before every capitalized word and every
// acronym run, then collapses repeated whitespace and trims the result.
//
//	"PhotoCreditJohnDoe" -> "Photo Credit John Doe"
//	"NASAImages"         -> "NASA Images"
//	"IMG 0001"           -> "IMG 0001"
func BreakCamelCase(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s) + len(s)/4)
	for i := 0; i < len(s); {
		if !isUpperASCII(s[i]) {
			b.WriteByte(s[i])
			i++
			continue
		}
		end := i + 1
		if !(end < len(s) && isLowerASCII(s[end])) {
			for end < len(s) && isUpperASCII(s[end]) {
				end++
			}
			// The last capital of a run belongs to the following word.
			if end < len(s) && isLowerASCII(s[end]) {
				end--
			}
		}
		b.WriteByte(' ')
		b.WriteString(s[i:end])
		i = end
	}
	return strings.TrimSpace(repeatedSpacePattern.ReplaceAllString(b.String(), " "))
}

func isUpperASCII(c byte) bool { return c >= 'A' && c <= 'Z' }

func isLowerASCII(c byte) bool { return c >= 'a' && c <= 'z' }
