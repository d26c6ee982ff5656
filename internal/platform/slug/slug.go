// Package slug derives URL-safe identifiers from free text. The same rule
// is used for tags, photo slugs and session slugs so every grouping key in
// the catalog agrees on what a given title maps to.
package slug

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// Make lowercases the input, collapses whitespace runs into single hyphens
// and strips everything that is not [a-z0-9-]. The result may be empty.
func Make(s string) string {
	lowered := strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	inSpace := false
	for _, r := range lowered {
		switch {
		case unicode.IsSpace(r):
			inSpace = true
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-':
			if inSpace && b.Len() > 0 {
				b.WriteByte('-')
			}
			inSpace = false
			b.WriteRune(r)
		default:
			// stripped
		}
	}
	return b.String()
}

// Photo derives a photo slug from a title or filename. Titles that slugify
// to nothing (emoji-only, non-latin) get a time-based placeholder so the
// column is never empty.
func Photo(base string) string {
	if s := Make(base); s != "" {
		return s
	}
	return fmt.Sprintf("photo-%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}

// Tag derives a tag slug. The placeholder keeps the tags.slug not-null
// constraint satisfied for names with no slugifiable characters.
func Tag(name string) string {
	if s := Make(name); s != "" {
		return s
	}
	return fmt.Sprintf("tag-%d", time.Now().UnixNano())
}
