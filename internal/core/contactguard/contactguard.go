// Package contactguard decides whether a contact form submission is legitimate,
// structurally invalid or automated spam.
// Stages, strictly in order
// 1 Normalize every field
// 2 Structural validation, first failure is terminal INVALID_INPUT
// 3 Hard blocks (mixed-case words, consonant/digit runs), terminal SPAM_DETECTED
// 4 Word-count re-check on the normalized message
// 5 Aggregate score: timing/honeypot + name + message
// 6 Threshold decision
//
// A Classifier is immutable and safe for concurrent use. It performs no I/O and
// reads the clock only when the submission carries no explicit NowMs
package contactguard

import (
	"time"

	"contactguard/internal/core/normalize"
	"contactguard/internal/core/signals"
)

// Submission is the raw caller-supplied record, never mutated
type Submission struct {
	Name    string
	Email   string
	Message string

	// Website is the honeypot field, invisible to humans
	Website string
	// FormStartMs is the client-reported epoch ms when the form became visible
	FormStartMs string
	// UserAgentIsBot is the caller's own user-agent classification
	UserAgentIsBot bool
	// NowMs pins the clock for this call; nil uses the classifier clock
	NowMs *int64
}

// Classifier holds an immutable rule table
type Classifier struct {
	weights Weights
	limits  Limits
	now     func() time.Time
}

// Option customizes a Classifier
type Option func(*Classifier)

// WithWeights replaces the rule table
func WithWeights(w Weights) Option { return func(c *Classifier) { c.weights = w } }

// WithLimits replaces the structural bounds
func WithLimits(l Limits) Option { return func(c *Classifier) { c.limits = l } }

// WithClock replaces the wall clock used when a submission has no NowMs
func WithClock(now func() time.Time) Option {
	return func(c *Classifier) {
		if now != nil {
			c.now = now
		}
	}
}

// New builds a Classifier with production defaults overridden by opts
func New(opts ...Option) *Classifier {
	c := &Classifier{
		weights: DefaultWeights(),
		limits:  DefaultLimits(),
		now:     time.Now,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Weights returns the active rule table
func (c *Classifier) Weights() Weights { return c.weights }

// Limits returns the active structural bounds
func (c *Classifier) Limits() Limits { return c.limits }

var std = New()

// Validate classifies in with the default rule table
func Validate(in Submission) Outcome { return std.Validate(in) }

// Validate classifies in. It always returns exactly one Outcome
func (c *Classifier) Validate(in Submission) Outcome {
	f := Fields{
		Name:    normalize.Field(in.Name),
		Email:   normalize.Field(in.Email),
		Message: normalize.Message(in.Message),
	}

	if o, ok := checkStructure(f, c.limits); !ok {
		return o
	}

	if flags, blocked := c.hardBlock(f); blocked {
		return spam(c.weights.HardBlockScore, flags)
	}

	// normalization already ran, this guards against it ever eating words
	if o, ok := checkWords(f.Message, c.limits); !ok {
		return o
	}

	total := ScoreTiming(normalize.Field(in.Website), in.UserAgentIsBot, in.FormStartMs, c.nowMs(in), c.weights)
	total.merge(ScoreName(f.Name, c.weights))
	total.merge(ScoreMessage(f.Message, c.weights))

	if total.Score >= c.weights.Threshold {
		return spam(total.Score, total.Flags)
	}
	return accepted(f)
}

// Explain returns the aggregate score detail for in, skipping structural rules
// and hard blocks. Operator tooling only
func (c *Classifier) Explain(in Submission) SignalResult {
	total := ScoreTiming(normalize.Field(in.Website), in.UserAgentIsBot, in.FormStartMs, c.nowMs(in), c.weights)
	total.merge(ScoreName(normalize.Field(in.Name), c.weights))
	total.merge(ScoreMessage(normalize.Message(in.Message), c.weights))
	return total
}

// hardBlock checks the unambiguous automation signatures on name and message
func (c *Classifier) hardBlock(f Fields) (Flags, bool) {
	flags := Flags{}
	if signals.HasMixedCaseWord(f.Name) {
		flags.Add(FlagNameMixedCaseWord)
	}
	if signals.HasMixedCaseWord(f.Message) {
		flags.Add(FlagMsgMixedCaseWord)
	}
	if len(flags) > 0 {
		return flags, true
	}

	run := c.weights.HardBlockMinRun
	if signals.HasConsonantOrDigitRun(f.Name, run) {
		flags.Add(FlagNameConsonantRun)
	}
	if signals.HasConsonantOrDigitRun(f.Message, run) {
		flags.Add(FlagMsgConsonantRun)
	}
	return flags, len(flags) > 0
}

func (c *Classifier) nowMs(in Submission) int64 {
	if in.NowMs != nil {
		return *in.NowMs
	}
	return c.now().UnixMilli()
}
