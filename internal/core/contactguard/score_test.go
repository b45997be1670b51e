package contactguard

import (
	"reflect"
	"testing"
)

// weightOf maps each flag to its default delta so tests can assert additivity
func weightOf(w Weights) map[string]int {
	return map[string]int{
		FlagNameNoLetters:           w.NameNoLetters,
		FlagNameMostlyDigits:        w.MostlyDigits,
		FlagNameRepeatedCharRun:     w.RepeatedCharRun,
		FlagNameLowVowelRatio:       w.LowVowelRatio,
		FlagNameLongConsonantRun:    w.LongConsonantRun,
		FlagNameManyCaseFlips:       w.ManyCaseFlips,
		FlagNameRandomToken:         w.RandomToken,
		FlagMsgNoLetters:            w.MessageNoLetters,
		FlagMsgMostlyDigits:         w.MostlyDigits,
		FlagMsgManyURLs:             w.ManyURLs,
		FlagMsgShortURL:             w.ShortURL,
		FlagMsgRepeatedCharRun:      w.RepeatedCharRun,
		FlagMsgLowUniqueRatio:       w.LowUniqueRatio,
		FlagMsgLowVowelRatio:        w.LowVowelRatio,
		FlagMsgLongConsonantRun:     w.LongConsonantRun,
		FlagMsgManyCaseFlips:        w.ManyCaseFlips,
		FlagMsgRandomToken:          w.RandomToken,
		FlagMsgSingleTokenLowVowels: w.MsgSingleTokenLowV,
	}
}

func TestScoreMessage_Table(t *testing.T) {
	w := DefaultWeights()
	tests := []struct {
		name  string
		in    string
		score int
		flags []string
	}{
		{
			name:  "plain prose",
			in:    "I love your underwater prints!",
			score: 0,
			flags: []string{},
		},
		{
			name:  "single low vowel token",
			in:    "xkqzvbjpqzxkqzvb",
			score: 14,
			flags: []string{
				FlagMsgLongConsonantRun,
				FlagMsgLowVowelRatio,
				FlagMsgRandomToken,
				FlagMsgSingleTokenLowVowels,
			},
		},
		{
			name:  "short consonant token",
			in:    "xkqzvbjpqz",
			score: 3,
			flags: []string{FlagMsgLongConsonantRun, FlagMsgNoWhitespace},
		},
		{
			name:  "numbers only",
			in:    "12345 67890",
			score: 14,
			flags: []string{FlagMsgMostlyDigits, FlagMsgNoLetters},
		},
		{
			name:  "one char repeated",
			in:    "aaaaaaaaaaaa",
			score: 11,
			flags: []string{FlagMsgLowUniqueRatio, FlagMsgNoWhitespace, FlagMsgRepeatedCharRun},
		},
		{
			name:  "one short link",
			in:    "see www.x.com",
			score: 2,
			flags: []string{FlagMsgShortURL},
		},
		{
			name:  "two links",
			in:    "please look at www.a.com and also www.b.com for more",
			score: 5,
			flags: []string{FlagMsgManyURLs},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ScoreMessage(tc.in, w)
			if got.Score != tc.score {
				t.Fatalf("score = %d, want %d (flags %v)", got.Score, tc.score, got.Flags.Sorted())
			}
			if fl := got.Flags.Sorted(); !reflect.DeepEqual(fl, tc.flags) {
				t.Fatalf("flags = %v, want %v", fl, tc.flags)
			}
		})
	}
}

func TestScoreName_Table(t *testing.T) {
	w := DefaultWeights()
	tests := []struct {
		name  string
		in    string
		score int
		flags []string
	}{
		{name: "ordinary", in: "Jane Doe", score: 0, flags: []string{}},
		{name: "punctuation only", in: "!!!", score: 10, flags: []string{FlagNameNoLetters}},
		{
			name:  "generated handle",
			in:    "Xkqzvbjpqzxk",
			score: 9,
			flags: []string{FlagNameLongConsonantRun, FlagNameLowVowelRatio, FlagNameNoWhitespace, FlagNameRandomToken},
		},
		{
			name:  "long single token",
			in:    "Aaronalexanderjohnson",
			score: 3,
			flags: []string{FlagNameNoWhitespace},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ScoreName(tc.in, w)
			if got.Score != tc.score {
				t.Fatalf("score = %d, want %d (flags %v)", got.Score, tc.score, got.Flags.Sorted())
			}
			if fl := got.Flags.Sorted(); !reflect.DeepEqual(fl, tc.flags) {
				t.Fatalf("flags = %v, want %v", fl, tc.flags)
			}
		})
	}
}

// every flag that has a fixed weight contributes exactly that weight
func TestScore_Additive(t *testing.T) {
	w := DefaultWeights()
	weights := weightOf(w)
	for _, in := range []string{"xkqzvbjpqzxkqzvb", "12345 67890", "aaaaaaaaaaaa", "see www.a.com www.b.com"} {
		res := ScoreMessage(in, w)
		sum := 0
		graded := false
		for _, f := range res.Flags.Sorted() {
			d, ok := weights[f]
			if !ok {
				graded = true
				continue
			}
			sum += d
		}
		if !graded && sum != res.Score {
			t.Fatalf("%q: score %d != sum of weights %d", in, res.Score, sum)
		}
		if res.Score < 0 {
			t.Fatalf("%q: negative score", in)
		}
	}
}

// appending a substring that fires one more rule never lowers the score
func TestScore_Monotonic(t *testing.T) {
	w := DefaultWeights()
	base := "Hello, I would love to buy a print of your reef photo"
	tests := []struct {
		extra string
		flag  string
	}{
		{" see www.a.com and www.b.com", FlagMsgManyURLs},
		{" code xkqzvbjpqzxk", FlagMsgRandomToken},
		{" AbCdEfGhIj", FlagMsgManyCaseFlips},
	}
	before := ScoreMessage(base, w)
	for _, tc := range tests {
		after := ScoreMessage(base+tc.extra, w)
		if !after.Flags.Has(tc.flag) {
			t.Fatalf("%q did not fire %s (flags %v)", tc.extra, tc.flag, after.Flags.Sorted())
		}
		if after.Score < before.Score {
			t.Fatalf("%q lowered the score: %d -> %d", tc.extra, before.Score, after.Score)
		}
	}
}

func TestScoreTiming(t *testing.T) {
	w := DefaultWeights()
	now := int64(1_000_000)
	tests := []struct {
		name     string
		honeypot string
		bot      bool
		start    string
		score    int
		flags    []string
	}{
		{name: "nothing", score: 0, flags: []string{}},
		{name: "honeypot", honeypot: "x", score: 10, flags: []string{FlagHoneypotFilled}},
		{name: "blank honeypot", honeypot: "   ", score: 0, flags: []string{}},
		{name: "bot", bot: true, score: 4, flags: []string{FlagUserAgentBot}},
		{name: "too fast", start: "999800", score: 4, flags: []string{FlagSubmittedTooFast}},
		{name: "fast", start: "999000", score: 2, flags: []string{FlagSubmittedFast}},
		{name: "boundary 500 is only fast", start: "999500", score: 2, flags: []string{FlagSubmittedFast}},
		{name: "boundary 1500 is fine", start: "998500", score: 0, flags: []string{}},
		{name: "human pace", start: "900000", score: 0, flags: []string{}},
		{name: "future start fails open", start: "1000100", score: 0, flags: []string{}},
		{name: "garbage fails open", start: "soon", score: 0, flags: []string{}},
		{name: "zero fails open", start: "0", score: 0, flags: []string{}},
		{name: "negative fails open", start: "-5", score: 0, flags: []string{}},
		{name: "fractional ms", start: "999999.5", score: 4, flags: []string{FlagSubmittedTooFast}},
		{
			name: "everything", honeypot: "x", bot: true, start: "999999",
			score: 18, flags: []string{FlagHoneypotFilled, FlagSubmittedTooFast, FlagUserAgentBot},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ScoreTiming(tc.honeypot, tc.bot, tc.start, now, w)
			if got.Score != tc.score {
				t.Fatalf("score = %d, want %d", got.Score, tc.score)
			}
			if fl := got.Flags.Sorted(); !reflect.DeepEqual(fl, tc.flags) {
				t.Fatalf("flags = %v, want %v", fl, tc.flags)
			}
		})
	}
}
