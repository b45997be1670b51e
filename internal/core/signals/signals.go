// Package signals holds the pure text-feature functions shared by the name and
// message scorers. Every function is stateless and safe for concurrent use
package signals

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// vowels used by every vowel/consonant signal, y counts as a vowel
const vowels = "aeiouy"

// urlPattern matches explicit schemes and bare www hosts, non-overlapping
var urlPattern = regexp.MustCompile(`(?i)https?://[^\s]+|www\.[^\s]+`)

// isVowel reports whether r is an ASCII vowel in either case
func isVowel(r rune) bool {
	return r < utf8.RuneSelf && strings.ContainsRune(vowels, unicode.ToLower(r))
}

// isASCIILetter reports whether r is in A-Z or a-z
func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// isConsonant reports whether r is an ASCII letter outside the vowel set
func isConsonant(r rune) bool { return isASCIILetter(r) && !isVowel(r) }

// ASCIILetters returns the lowercased ASCII-letters-only subset of s
func ASCIILetters(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isASCIILetter(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// RuneLen is the length of s in runes
func RuneLen(s string) int { return utf8.RuneCountInString(s) }

// LetterCount counts Unicode letters
func LetterCount(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			n++
		}
	}
	return n
}

// DigitCount counts Unicode decimal digits
func DigitCount(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}

// HasDigit reports whether s holds any Unicode decimal digit
func HasDigit(s string) bool {
	return strings.IndexFunc(s, unicode.IsDigit) >= 0
}

// HasWhitespace reports whether s holds any Unicode whitespace
func HasWhitespace(s string) bool {
	return strings.IndexFunc(s, unicode.IsSpace) >= 0
}

// DigitRatio returns digits over non-whitespace runes and that denominator
func DigitRatio(s string) (ratio float64, nonSpace int) {
	digits := 0
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		nonSpace++
		if unicode.IsDigit(r) {
			digits++
		}
	}
	if nonSpace == 0 {
		return 0, 0
	}
	return float64(digits) / float64(nonSpace), nonSpace
}

// LetterTokens counts whitespace-delimited tokens holding at least one letter
func LetterTokens(s string) int {
	n := 0
	for _, tok := range strings.Fields(s) {
		if strings.IndexFunc(tok, unicode.IsLetter) >= 0 {
			n++
		}
	}
	return n
}

// VowelRatio is vowels over ASCII letters, 0 when s has no ASCII letters
func VowelRatio(s string) float64 {
	letters, v := 0, 0
	for _, r := range s {
		if !isASCIILetter(r) {
			continue
		}
		letters++
		if isVowel(r) {
			v++
		}
	}
	if letters == 0 {
		return 0
	}
	return float64(v) / float64(letters)
}

// LongestConsonantRun is the longest consonant run over the ASCII-letters-only
// subset of s, so non-letters neither extend nor break a run
func LongestConsonantRun(s string) int {
	best, cur := 0, 0
	for _, r := range s {
		if !isASCIILetter(r) {
			continue
		}
		if isVowel(r) {
			cur = 0
			continue
		}
		cur++
		if cur > best {
			best = cur
		}
	}
	return best
}

// CaseTransitions counts upper/lower flips between consecutive cased letters
// Anything uncased is skipped without resetting the previous letter
func CaseTransitions(s string) int {
	n := 0
	prev := 0 // 0 none, 1 upper, 2 lower
	for _, r := range s {
		var cur int
		switch {
		case unicode.IsUpper(r):
			cur = 1
		case unicode.IsLower(r):
			cur = 2
		default:
			continue
		}
		if prev != 0 && cur != prev {
			n++
		}
		prev = cur
	}
	return n
}

// UniqueCharRatio is distinct runes over rune length of the trimmed string
func UniqueCharRatio(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	seen := make(map[rune]struct{}, 32)
	total := 0
	for _, r := range s {
		total++
		seen[r] = struct{}{}
	}
	return float64(len(seen)) / float64(total)
}

// LongestSameCharRun returns the longest case-insensitive run of one rune and
// the total rune count, both over s with whitespace removed
func LongestSameCharRun(s string) (run, total int) {
	var prev rune
	cur := 0
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		r = unicode.ToLower(r)
		if cur > 0 && r == prev {
			cur++
		} else {
			cur = 1
			prev = r
		}
		if cur > run {
			run = cur
		}
	}
	return run, total
}

// Random-token bounds
const (
	RandomTokenMinLen        = 12
	RandomTokenMaxLen        = 32
	RandomTokenMaxVowelRatio = 0.2
	RandomTokenConsonantRun  = 8
	RandomTokenCaseFlips     = 8
)

// LooksLikeRandomToken separates human-typed words (vowel rich, case stable)
// from generated tokens
func LooksLikeRandomToken(tok string) bool {
	n := len(tok)
	if n < RandomTokenMinLen || n > RandomTokenMaxLen {
		return false
	}
	for i := 0; i < n; i++ {
		if !isASCIILetter(rune(tok[i])) {
			return false
		}
	}
	return VowelRatio(tok) < RandomTokenMaxVowelRatio ||
		LongestConsonantRun(tok) >= RandomTokenConsonantRun ||
		CaseTransitions(tok) >= RandomTokenCaseFlips
}

// CountURLs counts https?:// and www. occurrences
func CountURLs(s string) int {
	return len(urlPattern.FindAllStringIndex(s, -1))
}

// HasMixedCaseWord reports whether any whitespace-delimited token carries at
// least two uppercase and two lowercase letters
func HasMixedCaseWord(s string) bool {
	for _, tok := range strings.Fields(s) {
		upper, lower := 0, 0
		for _, r := range tok {
			switch {
			case unicode.IsUpper(r):
				upper++
			case unicode.IsLower(r):
				lower++
			}
		}
		if upper >= 2 && lower >= 2 {
			return true
		}
	}
	return false
}

// HasConsonantOrDigitRun scans left to right for minRun consecutive runes that
// are digits or ASCII consonants. Vowels and any other rune reset the run.
// A non-positive minRun disables the check
func HasConsonantOrDigitRun(s string, minRun int) bool {
	if minRun <= 0 {
		return false
	}
	cur := 0
	for _, r := range s {
		if unicode.IsDigit(r) || isConsonant(r) {
			cur++
			if cur >= minRun {
				return true
			}
			continue
		}
		cur = 0
	}
	return false
}
