package contactguard

import (
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"
	"unicode/utf8"
)

const fixedNow int64 = 1_760_000_000_000

func pin(ms int64) *int64 { return &ms }

// clean returns a legitimate submission pinned to fixedNow
func clean() Submission {
	return Submission{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Message: "I love your underwater prints!",
		NowMs:   pin(fixedNow),
	}
}

func TestValidate_Scenarios(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Submission)
		verdict   Verdict
		code      Code
		message   string
		score     int
		wantFlags []string
	}{
		{
			name:    "clean submission accepted",
			mutate:  func(*Submission) {},
			verdict: VerdictAccepted,
		},
		{
			name:    "digits in name",
			mutate:  func(s *Submission) { s.Name = "John123" },
			verdict: VerdictRejected,
			code:    CodeInvalidInput,
			message: MsgNameDigits,
		},
		{
			name:      "honeypot filled",
			mutate:    func(s *Submission) { s.Website = "http://spam.example" },
			verdict:   VerdictRejected,
			code:      CodeSpamDetected,
			message:   MsgSpam,
			score:     10,
			wantFlags: []string{FlagHoneypotFilled},
		},
		{
			name:    "single random token fails the word floor first",
			mutate:  func(s *Submission) { s.Message = "xkqzvbjpqz" },
			verdict: VerdictRejected,
			code:    CodeInvalidInput,
			message: "Please write a message of at least 3 words.",
		},
		{
			name:      "mixed case name is a hard block",
			mutate:    func(s *Submission) { s.Name = "JaMeS MiLLeR" },
			verdict:   VerdictRejected,
			code:      CodeSpamDetected,
			message:   MsgSpam,
			score:     999,
			wantFlags: []string{FlagNameMixedCaseWord},
		},
		{
			name: "too fast alone stays under threshold",
			mutate: func(s *Submission) {
				s.FormStartMs = "1759999999800" // now - 200ms
			},
			verdict: VerdictAccepted,
		},
		{
			name: "too fast plus bot user agent reaches threshold",
			mutate: func(s *Submission) {
				s.FormStartMs = "1759999999800"
				s.UserAgentIsBot = true
			},
			verdict:   VerdictRejected,
			code:      CodeSpamDetected,
			message:   MsgSpam,
			score:     8,
			wantFlags: []string{FlagSubmittedTooFast, FlagUserAgentBot},
		},
		{
			name: "many urls plus bot user agent",
			mutate: func(s *Submission) {
				s.Message = "see www.reefshots.com and www.reefshots.org today"
				s.UserAgentIsBot = true
			},
			verdict:   VerdictRejected,
			code:      CodeSpamDetected,
			message:   MsgSpam,
			score:     9,
			wantFlags: []string{FlagMsgManyURLs, FlagUserAgentBot},
		},
		{
			name:      "consonant run in message is a hard block",
			mutate:    func(s *Submission) { s.Message = "Thanks for the lengths you go to" },
			verdict:   VerdictRejected,
			code:      CodeSpamDetected,
			message:   MsgSpam,
			score:     999,
			wantFlags: []string{FlagMsgConsonantRun},
		},
		{
			name:      "digit run in message is a hard block",
			mutate:    func(s *Submission) { s.Message = "Call me on 5551234 please" },
			verdict:   VerdictRejected,
			code:      CodeSpamDetected,
			message:   MsgSpam,
			score:     999,
			wantFlags: []string{FlagMsgConsonantRun},
		},
		{
			name: "mixed case wins over consonant runs",
			mutate: func(s *Submission) {
				s.Name = "JaMeS Smith"
				s.Message = "Thanks for the lengths you go to"
			},
			verdict:   VerdictRejected,
			code:      CodeSpamDetected,
			message:   MsgSpam,
			score:     999,
			wantFlags: []string{FlagNameMixedCaseWord},
		},
		{
			name:      "mixed case in both fields",
			mutate: func(s *Submission) {
				s.Name = "JoHNny Doe"
				s.Message = "Buy CheapPills today friend"
			},
			verdict:   VerdictRejected,
			code:      CodeSpamDetected,
			message:   MsgSpam,
			score:     999,
			wantFlags: []string{FlagMsgMixedCaseWord, FlagNameMixedCaseWord},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := clean()
			tc.mutate(&in)
			got := Validate(in)

			if got.Verdict != tc.verdict {
				t.Fatalf("verdict = %q, want %q (outcome %+v)", got.Verdict, tc.verdict, got)
			}
			if got.Code != tc.code {
				t.Fatalf("code = %q, want %q", got.Code, tc.code)
			}
			if got.Message != tc.message {
				t.Fatalf("message = %q, want %q", got.Message, tc.message)
			}
			if got.Score != tc.score {
				t.Fatalf("score = %d, want %d (flags %v)", got.Score, tc.score, got.Flags)
			}
			if len(tc.wantFlags) > 0 && !reflect.DeepEqual(got.Flags, tc.wantFlags) {
				t.Fatalf("flags = %v, want %v", got.Flags, tc.wantFlags)
			}
		})
	}
}

func TestValidate_AcceptedCarriesNormalizedFields(t *testing.T) {
	in := Submission{
		Name:    "  Ｊａｎｅ   Doe ",
		Email:   " jane@example.com\t",
		Message: "I love\r\n\r\nyour   underwater prints!",
		NowMs:   pin(fixedNow),
	}
	got := Validate(in)
	if !got.Accepted() {
		t.Fatalf("expected accepted, got %+v", got)
	}
	want := Fields{Name: "Jane Doe", Email: "jane@example.com", Message: "I love your underwater prints!"}
	if got.Fields != want {
		t.Fatalf("fields = %+v, want %+v", got.Fields, want)
	}
	if got.Score != 0 || got.Flags != nil || got.Code != "" {
		t.Fatalf("accepted outcome leaked diagnostics: %+v", got)
	}
}

func TestValidate_StructuralOrder(t *testing.T) {
	tests := []struct {
		name  string
		in    Submission
		field string
		msg   string
	}{
		{"empty name", Submission{Name: " ", Email: "x", Message: ""}, FieldName, MsgNameRequired},
		{"long name", Submission{Name: strings.Repeat("a", 81)}, FieldName, "Please keep your name to 80 characters or fewer."},
		{"digit name beats bad email", Submission{Name: "R2D2", Email: "nope"}, FieldName, MsgNameDigits},
		{"arabic digit in name", Submission{Name: "Jane ٣"}, FieldName, MsgNameDigits},
		{"empty email", Submission{Name: "Jane Doe"}, FieldEmail, MsgEmailRequired},
		{"long email", Submission{Name: "Jane Doe", Email: strings.Repeat("a", 250) + "@b.cd"}, FieldEmail, "Please keep your email address to 254 characters or fewer."},
		{"email without dot", Submission{Name: "Jane Doe", Email: "jane@example"}, FieldEmail, MsgEmailInvalid},
		{"email with space", Submission{Name: "Jane Doe", Email: "ja ne@example.com"}, FieldEmail, MsgEmailInvalid},
		{"email double at", Submission{Name: "Jane Doe", Email: "a@b@c.com"}, FieldEmail, MsgEmailInvalid},
		{"empty message", Submission{Name: "Jane Doe", Email: "jane@example.com", Message: "\n\n"}, FieldMessage, MsgMessageRequired},
		{"long message", Submission{Name: "Jane Doe", Email: "jane@example.com", Message: strings.Repeat("ab ", 1700)}, FieldMessage, "Please keep your message to 5000 characters or fewer."},
		{"two words", Submission{Name: "Jane Doe", Email: "jane@example.com", Message: "Hello there"}, FieldMessage, "Please write a message of at least 3 words."},
		{"numbers only", Submission{Name: "Jane Doe", Email: "jane@example.com", Message: "123 456 789 hi"}, FieldMessage, "Please write a message of at least 3 words."},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.in.Website = "filled honeypot never matters here"
			tc.in.NowMs = pin(fixedNow)
			got := Validate(tc.in)
			if got.Code != CodeInvalidInput {
				t.Fatalf("code = %q, want INVALID_INPUT (%+v)", got.Code, got)
			}
			if got.Field != tc.field || got.Message != tc.msg {
				t.Fatalf("got (%q,%q), want (%q,%q)", got.Field, got.Message, tc.field, tc.msg)
			}
			if got.Score != 0 || got.Flags != nil {
				t.Fatalf("invalid input carried diagnostics: %+v", got)
			}
		})
	}
}

// lengths equal to the limits are accepted; the over-limit side is in StructuralOrder
func TestValidate_LimitsAreInclusive(t *testing.T) {
	atName := strings.TrimSpace(strings.Repeat("anna lee ", 9))
	atEmail := strings.Repeat("a", 242) + "@example.com"
	atMessage := strings.Repeat("love ", 999) + "love!"

	tests := []struct {
		name  string
		mut   func(*Submission)
		runes int
		got   func(Fields) string
	}{
		{"name at 80", func(s *Submission) { s.Name = atName }, 80, func(f Fields) string { return f.Name }},
		{"email at 254", func(s *Submission) { s.Email = atEmail }, 254, func(f Fields) string { return f.Email }},
		{"message at 5000", func(s *Submission) { s.Message = atMessage }, 5000, func(f Fields) string { return f.Message }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := clean()
			tc.mut(&in)
			got := Validate(in)
			if !got.Accepted() {
				t.Fatalf("expected accepted, got %+v", got)
			}
			if n := utf8.RuneCountInString(tc.got(got.Fields)); n != tc.runes {
				t.Fatalf("normalized length = %d, want %d", n, tc.runes)
			}
		})
	}
}

func TestValidate_HTTPSURLTripsConsonantRun(t *testing.T) {
	// "https" is five consonants in a row
	in := clean()
	in.Message = "Please see https://example.com for the brief"
	got := Validate(in)
	if !got.IsSpam() || got.Score != 999 {
		t.Fatalf("expected hard block, got %+v", got)
	}
}

func TestValidate_Total(t *testing.T) {
	inputs := []Submission{
		{},
		{Name: string([]byte{0xff, 0xfe}), Email: string([]byte{0xc0}), Message: string([]byte{0x80})},
		{Name: strings.Repeat("é", 10000), Email: strings.Repeat("@", 300), Message: strings.Repeat("a ", 100000)},
		{Name: "Jane Doe", Email: "jane@example.com", Message: "fine words here", FormStartMs: "NaN"},
		{Name: "Jane Doe", Email: "jane@example.com", Message: "fine words here", FormStartMs: "-Inf"},
		{Name: "Jane Doe", Email: "jane@example.com", Message: "fine words here", FormStartMs: "99999999999999999999999"},
		{Name: "\u200B\u200B", Email: "a@b.c", Message: "\u202E reversed text here"},
	}
	for i, in := range inputs {
		if in.NowMs == nil {
			in.NowMs = pin(fixedNow)
		}
		got := Validate(in)
		switch got.Verdict {
		case VerdictAccepted:
			if got.Code != "" || got.Score != 0 || got.Flags != nil {
				t.Fatalf("#%d accepted with diagnostics: %+v", i, got)
			}
		case VerdictRejected:
			if got.Code != CodeInvalidInput && got.Code != CodeSpamDetected {
				t.Fatalf("#%d unknown code %q", i, got.Code)
			}
			if got.Code == CodeInvalidInput && (got.Score != 0 || got.Flags != nil) {
				t.Fatalf("#%d invalid input with diagnostics: %+v", i, got)
			}
			if got.Fields != (Fields{}) {
				t.Fatalf("#%d rejection leaked fields: %+v", i, got)
			}
		default:
			t.Fatalf("#%d unknown verdict %q", i, got.Verdict)
		}
	}
}

func TestValidate_Deterministic(t *testing.T) {
	in := clean()
	in.FormStartMs = "1759999999000"
	first := Validate(in)
	for i := 0; i < 20; i++ {
		if got := Validate(in); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differs: %+v vs %+v", i, got, first)
		}
	}
}

func TestValidate_Concurrent(t *testing.T) {
	c := New()
	subs := []Submission{clean(), clean(), clean()}
	subs[1].Website = "x"
	subs[2].Name = "John123"
	want := make([]Outcome, len(subs))
	for i, s := range subs {
		want[i] = c.Validate(s)
	}

	var wg sync.WaitGroup
	errs := make(chan string, 64)
	for g := 0; g < 16; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i, s := range subs {
				if got := c.Validate(s); !reflect.DeepEqual(got, want[i]) {
					errs <- s.Name
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for name := range errs {
		t.Fatalf("concurrent result mismatch for %q", name)
	}
}

func TestClassifier_ClockAndOptions(t *testing.T) {
	now := time.UnixMilli(fixedNow)
	c := New(WithClock(func() time.Time { return now }))

	in := clean()
	in.NowMs = nil
	in.FormStartMs = "1759999999900" // 100ms before the injected clock
	in.UserAgentIsBot = true
	if got := c.Validate(in); !got.IsSpam() || got.Score != 8 {
		t.Fatalf("expected clock-driven spam score 8, got %+v", got)
	}

	w := DefaultWeights()
	w.Threshold = 9
	relaxed := New(WithClock(func() time.Time { return now }), WithWeights(w))
	if got := relaxed.Validate(in); !got.Accepted() {
		t.Fatalf("expected accepted under threshold 9, got %+v", got)
	}
	if relaxed.Weights().Threshold != 9 {
		t.Fatalf("Weights() not exposed")
	}

	l := DefaultLimits()
	l.MinWords = 6
	strict := New(WithLimits(l))
	if got := strict.Validate(clean()); got.Code != CodeInvalidInput {
		t.Fatalf("expected word floor of 6 to reject, got %+v", got)
	}
}

func TestClassifier_Explain(t *testing.T) {
	in := clean()
	in.Name = "John123"
	in.Website = "x"
	res := New().Explain(in)
	if res.Score != 10 || !res.Flags.Has(FlagHoneypotFilled) {
		t.Fatalf("Explain = %+v", res)
	}
}
