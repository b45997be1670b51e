package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"contactguard/internal/core/contactguard"
	"contactguard/internal/platform/logger"
	pnet "contactguard/internal/platform/net"
	"contactguard/internal/services/contact/domain"

	"github.com/google/uuid"
)

// maxLine bounds one JSON line; the HTTP raw bounds total well under this
const maxLine = 1 << 20

var newLineID = uuid.NewString

// line is one input record
type line struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Email        string         `json:"email"`
	Message      string         `json:"message"`
	Website      string         `json:"website"`
	FormStartMs  domain.EpochMs `json:"form_start_ms"`
	UserAgentBot bool           `json:"user_agent_bot"`
	NowMs        *int64         `json:"now_ms"`
}

// decision is one output record
type decision struct {
	ID      string               `json:"id"`
	Line    int                  `json:"line"`
	Verdict string               `json:"verdict"`
	Code    string               `json:"code,omitempty"`
	Message string               `json:"message,omitempty"`
	Field   string               `json:"field,omitempty"`
	Score   int                  `json:"score"`
	Flags   []string             `json:"flags"`
	Fields  *contactguard.Fields `json:"fields,omitempty"`
	Error   string               `json:"error,omitempty"`
}

const verdictError = "error"

// filters accepted by -only
var onlyFilters = map[string]func(decision) bool{
	"all":      func(decision) bool { return true },
	"accepted": func(d decision) bool { return d.Verdict == string(contactguard.VerdictAccepted) },
	"rejected": func(d decision) bool { return d.Verdict == string(contactguard.VerdictRejected) },
	"spam":     func(d decision) bool { return d.Code == string(contactguard.CodeSpamDetected) },
	"invalid":  func(d decision) bool { return d.Code == string(contactguard.CodeInvalidInput) },
	"error":    func(d decision) bool { return d.Verdict == verdictError },
}

type summary struct {
	total, accepted, invalid, spam, errors, written int
}

func (s *summary) count(d decision) {
	s.total++
	switch {
	case d.Verdict == verdictError:
		s.errors++
	case d.Code == string(contactguard.CodeSpamDetected):
		s.spam++
	case d.Code == string(contactguard.CodeInvalidInput):
		s.invalid++
	default:
		s.accepted++
	}
}

// run is main without the process globals; it returns the exit code
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("contactguard-check", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		in        = fs.String("in", "-", "input JSONL path or '-' for stdin")
		rulesPath = fs.String("rules", "", "YAML rules file overriding weights and limits")
		only      = fs.String("only", "all", "emit only: all, accepted, rejected, spam, invalid, error")
		threshold = fs.Int("threshold", 0, "override weights.threshold when positive")
		explain   = fs.Bool("explain", false, "score every line, including accepted and invalid ones")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	keep, ok := onlyFilters[strings.ToLower(*only)]
	if !ok {
		_, _ = fmt.Fprintf(stderr, "error: unknown -only %q\n", *only)
		return 2
	}

	rules, err := contactguard.LoadRules(*rulesPath)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	if *threshold > 0 {
		rules.Weights.Threshold = *threshold
		if err := rules.Weights.Validate(); err != nil {
			_, _ = fmt.Fprintf(stderr, "error: -threshold: %v\n", err)
			return 1
		}
	}
	cls := contactguard.New(rules.Options()...)

	src := stdin
	if *in != "-" {
		f, err := os.Open(*in)
		if err != nil {
			_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}
		defer func() { _ = f.Close() }()
		src = f
	}

	sc := bufio.NewScanner(src)
	sc.Buffer(make([]byte, 0, 64<<10), maxLine)
	out := bufio.NewWriter(stdout)
	enc := json.NewEncoder(out)

	var sum summary
	n := 0
	for sc.Scan() {
		if ctx.Err() != nil {
			break
		}
		n++
		raw := strings.TrimSpace(sc.Text())
		if raw == "" {
			continue
		}
		d := classify(ctx, cls, n, raw, *explain)
		sum.count(d)
		if !keep(d) {
			continue
		}
		if err := enc.Encode(d); err != nil {
			_, _ = fmt.Fprintf(stderr, "error: write: %v\n", err)
			return 1
		}
		sum.written++
	}
	if err := out.Flush(); err != nil {
		_, _ = fmt.Fprintf(stderr, "error: write: %v\n", err)
		return 1
	}
	if err := sc.Err(); err != nil {
		_, _ = fmt.Fprintf(stderr, "error: read line %d: %v\n", n+1, err)
		return 1
	}

	_, _ = fmt.Fprintf(stderr, "total=%d accepted=%d invalid=%d spam=%d errors=%d written=%d threshold=%d\n",
		sum.total, sum.accepted, sum.invalid, sum.spam, sum.errors, sum.written, rules.Weights.Threshold)
	return 0
}

// classify decodes and classifies one line; decode failures become error decisions
func classify(ctx context.Context, cls *contactguard.Classifier, n int, raw string, explain bool) decision {
	var in line
	if err := json.Unmarshal([]byte(raw), &in); err != nil {
		return decision{ID: newLineID(), Line: n, Verdict: verdictError, Flags: []string{}, Error: err.Error()}
	}
	if in.ID == "" {
		in.ID = newLineID()
	}
	lctx := pnet.WithRequest(ctx, in.ID)

	sub := contactguard.Submission{
		Name:           in.Name,
		Email:          in.Email,
		Message:        in.Message,
		Website:        in.Website,
		FormStartMs:    string(in.FormStartMs),
		UserAgentIsBot: in.UserAgentBot,
		NowMs:          in.NowMs,
	}
	o := cls.Validate(sub)

	d := decision{
		ID:      in.ID,
		Line:    n,
		Verdict: string(o.Verdict),
		Code:    string(o.Code),
		Message: o.Message,
		Field:   o.Field,
		Score:   o.Score,
		Flags:   o.Flags,
	}
	if o.Accepted() {
		f := o.Fields
		d.Fields = &f
	}
	if explain && !o.IsSpam() {
		sig := cls.Explain(sub)
		d.Score, d.Flags = sig.Score, sig.Flags.Sorted()
	}
	if d.Flags == nil {
		d.Flags = []string{}
	}

	logger.C(lctx).Debug().Int("line", n).Str("verdict", d.Verdict).Int("score", d.Score).Msg("classified")
	return d
}
