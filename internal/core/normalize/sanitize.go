package normalize

import (
	"strings"
	"unicode/utf8"
)

// dropRune reports whether r never belongs in a form value: NUL and the other
// C0 controls except tab and line breaks, DEL, and the C1 block
func dropRune(r rune) bool {
	switch {
	case r == '\t' || r == '\n' || r == '\r':
		return false
	case r < 0x20, r == 0x7F:
		return true
	case r >= 0x80 && r <= 0x9F:
		return true
	}
	return false
}

// Sanitize removes control characters and invalid UTF-8 bytes.
// Input that is already clean is returned as is without allocating
func Sanitize(s string) string {
	var b *strings.Builder
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		bad := (r == utf8.RuneError && size == 1) || dropRune(r)
		switch {
		case bad && b == nil:
			b = &strings.Builder{}
			b.Grow(len(s))
			b.WriteString(s[:i])
		case !bad && b != nil:
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	if b == nil {
		return s
	}
	return b.String()
}
