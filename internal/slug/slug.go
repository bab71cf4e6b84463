// Package slug derives URL-safe identifiers from article titles.
package slug

import "strings"

// Derive lowercases the title, collapses every run of characters outside
// [a-z0-9] into a single hyphen, and trims leading/trailing hyphens.
// Derive is idempotent: Derive(Derive(x)) == Derive(x).
func Derive(title string) string {
	lower := strings.ToLower(title)

	var sb strings.Builder
	sb.Grow(len(lower))

	pendingHyphen := false
	for _, r := range lower {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && sb.Len() > 0 {
				sb.WriteByte('-')
			}
			pendingHyphen = false
			sb.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}

	return sb.String()
}
