package listing

import (
	"fmt"
	"strings"
	"unicode"
)

// Slugify normalizes a title into a lowercase hyphen-separated handle.
// Runs of non-alphanumeric characters collapse into a single hyphen.
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// SlugWithSuffix returns base for n == 0 and base-n otherwise.
func SlugWithSuffix(base string, n int) string {
	if n == 0 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, n)
}
