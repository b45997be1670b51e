// Package normalize canonicalizes raw contact form text before any analysis.
//
// Every value goes through the same steps: Sanitize, removal of Unicode format
// characters (zero width joiners, BOM), NFKC, then each whitespace run (line breaks
// included) becomes one ASCII space and the ends are trimmed. The result is a fixed
// point, so normalizing twice changes nothing.
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// chains holds reusable transformers; format characters are removed before NFKC
// so composition sees the runes that will actually end up adjacent
var chains = sync.Pool{
	New: func() any {
		return transform.Chain(runes.Remove(runes.In(unicode.Cf)), norm.NFKC)
	},
}

// Field normalizes a single line value such as a name or an email address
func Field(s string) string { return canonical(s) }

// Message normalizes a free text body. Paragraph breaks do not survive, the
// classifier only reads words and runs.
func Message(s string) string { return canonical(s) }

// maxPasses bounds the fold loop in canonical. norm can compose a supplementary
// rune plus a mark into a BMP rune that decomposes again on the next pass, so
// one pass is not always a fixed point.
const maxPasses = 4

func canonical(s string) string {
	if s = Sanitize(s); s == "" {
		return ""
	}
	tr := chains.Get().(transform.Transformer)
	defer chains.Put(tr)
	for range maxPasses {
		next := fold(tr, s)
		if next == s {
			break
		}
		s = next
	}
	return s
}

// fold is one NFKC and whitespace collapse pass
func fold(tr transform.Transformer, s string) string {
	tr.Reset()
	if out, _, err := transform.String(tr, s); err == nil {
		s = out
	}
	return strings.Join(strings.Fields(s), " ")
}
