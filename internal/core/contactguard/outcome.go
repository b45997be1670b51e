package contactguard

import "sort"

// Flags is a set of stable heuristic identifiers such as name_low_vowel_ratio
// They are for operator telemetry only and never reach the submitter
type Flags map[string]struct{}

// Add inserts f
func (fs Flags) Add(f string) { fs[f] = struct{}{} }

// Has reports whether f is present
func (fs Flags) Has(f string) bool {
	_, ok := fs[f]
	return ok
}

// Merge copies every flag of other into fs
func (fs Flags) Merge(other Flags) {
	for f := range other {
		fs[f] = struct{}{}
	}
}

// Sorted returns the flags in lexical order for stable logs and output
func (fs Flags) Sorted() []string {
	out := make([]string, 0, len(fs))
	for f := range fs {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// SignalResult is what every scorer returns
type SignalResult struct {
	Score int
	Flags Flags
}

func newResult() SignalResult { return SignalResult{Flags: Flags{}} }

// add bumps the score by delta and records flag
func (r *SignalResult) add(delta int, flag string) {
	r.Score += delta
	r.Flags.Add(flag)
}

// merge folds other into r
func (r *SignalResult) merge(other SignalResult) {
	r.Score += other.Score
	r.Flags.Merge(other.Flags)
}

// Verdict is the top-level decision
type Verdict string

const (
	// VerdictAccepted means the normalized triple may go downstream
	VerdictAccepted Verdict = "accepted"
	// VerdictRejected means the submission must not go downstream
	VerdictRejected Verdict = "rejected"
)

// Code classifies a rejection
type Code string

const (
	// CodeInvalidInput is a user-correctable structural problem
	CodeInvalidInput Code = "INVALID_INPUT"
	// CodeSpamDetected is a hard-block match or a score at or above threshold
	CodeSpamDetected Code = "SPAM_DETECTED"
)

// Fields is the normalized triple
type Fields struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Outcome is the single result of a classification. Exactly one shape is
// populated: Fields when accepted, Code/Message (and Score/Flags for spam)
// when rejected
type Outcome struct {
	Verdict Verdict
	Fields  Fields

	Code    Code
	Message string
	Field   string // offending field for INVALID_INPUT

	Score int
	Flags []string
}

// Accepted reports whether the outcome lets the submission through
func (o Outcome) Accepted() bool { return o.Verdict == VerdictAccepted }

// IsSpam reports whether the outcome is a SPAM_DETECTED rejection
func (o Outcome) IsSpam() bool { return o.Code == CodeSpamDetected }

// User-facing rejection messages
const (
	MsgNameRequired    = "Please enter your name."
	MsgNameTooLong     = "Please keep your name to %d characters or fewer."
	MsgNameDigits      = "Please enter your name without numbers."
	MsgEmailRequired   = "Please enter your email address."
	MsgEmailTooLong    = "Please keep your email address to %d characters or fewer."
	MsgEmailInvalid    = "Please enter a valid email address."
	MsgMessageRequired = "Please enter a message."
	MsgMessageTooLong  = "Please keep your message to %d characters or fewer."
	MsgMessageWords    = "Please write a message of at least %d words."
	MsgSpam            = "Your message looks like automated spam. Please write a short message and try again."
)

func accepted(f Fields) Outcome {
	return Outcome{Verdict: VerdictAccepted, Fields: f}
}

func invalid(field, msg string) Outcome {
	return Outcome{Verdict: VerdictRejected, Code: CodeInvalidInput, Field: field, Message: msg}
}

func spam(score int, flags Flags) Outcome {
	return Outcome{
		Verdict: VerdictRejected,
		Code:    CodeSpamDetected,
		Message: MsgSpam,
		Score:   score,
		Flags:   flags.Sorted(),
	}
}
