package domain

import (
	"strings"
	"unicode"
)

// StatusSlug turns a status into a class-safe slug: lowercase, whitespace runs
// become a single hyphen, anything outside [a-z0-9-] is dropped.
//
//	"Did Not Finish" -> "did-not-finish"
//	"On  Hold!"      -> "on-hold"
func StatusSlug(status string) string {
	var b strings.Builder
	pendingHyphen := false

	for _, r := range strings.ToLower(strings.TrimSpace(status)) {
		switch {
		case unicode.IsSpace(r) || r == '-' || r == '_':
			pendingHyphen = b.Len() > 0
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			if pendingHyphen {
				b.WriteByte('-')
				pendingHyphen = false
			}
			b.WriteRune(r)
		}
	}

	return b.String()
}
