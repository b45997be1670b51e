package contactguard

import (
	"math"
	"strconv"
	"strings"
)

// Timing windows in milliseconds
const (
	tooFastMs = 500
	fastMs    = 1500
)

// Behaviour flags
const (
	FlagHoneypotFilled   = "honeypot_filled"
	FlagUserAgentBot     = "user_agent_bot"
	FlagSubmittedTooFast = "submitted_too_fast"
	FlagSubmittedFast    = "submitted_fast"
)

// ScoreTiming scores the text-independent signals: honeypot, caller UA
// classification and form fill time. A missing or unparsable start time
// contributes nothing so clients that omit it are not penalized
func ScoreTiming(honeypot string, uaIsBot bool, formStartMs string, nowMs int64, w Weights) SignalResult {
	res := newResult()

	if strings.TrimSpace(honeypot) != "" {
		res.add(w.HoneypotFilled, FlagHoneypotFilled)
	}
	if uaIsBot {
		res.add(w.UserAgentBot, FlagUserAgentBot)
	}

	start, ok := parseStartMs(formStartMs)
	if !ok {
		return res
	}
	elapsed := float64(nowMs) - start
	switch {
	case elapsed < 0:
		// clock skew or forged future timestamp, fail open
	case elapsed < tooFastMs:
		res.add(w.SubmittedTooFast, FlagSubmittedTooFast)
	case elapsed < fastMs:
		res.add(w.SubmittedFast, FlagSubmittedFast)
	}
	return res
}

// parseStartMs accepts a finite positive epoch-millisecond number
func parseStartMs(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, false
	}
	return v, true
}
