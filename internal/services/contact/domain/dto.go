// Package domain holds contact DTOs and ports independent of transport
package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
	"unicode/utf8"
)

// SubmitInput is the raw form payload. The bounds only stop absurd payloads,
// the classifier applies the real limits after normalization
type SubmitInput struct {
	Name        string  `json:"name"          validate:"max=1000"  example:"Jane Doe"`
	Email       string  `json:"email"         validate:"max=1000"  example:"jane@example.com"`
	Message     string  `json:"message"       validate:"max=20000" example:"Do you ship to Canada?"`
	Website     string  `json:"website"       validate:"max=2000"  example:""`
	FormStartMs EpochMs `json:"form_start_ms" validate:"max=32"    example:"1760000000000"`
}

// EpochMs carries the client form-start timestamp verbatim. Browsers send it as a
// JSON number or string; either way it stays text and the classifier parses it
type EpochMs string

// UnmarshalJSON accepts a JSON string, number or null
func (e *EpochMs) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*e = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*e = EpochMs(s)
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("form_start_ms must be a number or string")
		}
		*e = EpochMs(n.String())
	}
	return nil
}

// Status is the public submission status
type Status string

// StatusAccepted is the only success status, rejections travel as errors
const StatusAccepted Status = "accepted"

// SubmitResult is returned for accepted submissions
type SubmitResult struct {
	SubmissionID string `json:"submission_id" example:"6f1c1e0e-3a8e-4a53-9c43-2f3b7c1d9a10"`
	Status       Status `json:"status"        example:"accepted"`
	Name         string `json:"name"          example:"Jane Doe"`
	Email        string `json:"email"         example:"jane@example.com"`
	Message      string `json:"message"       example:"Do you ship to Canada?"`
}

// RequestMeta is what the transport knows about the caller
type RequestMeta struct {
	RequestID      string
	ClientIP       string
	UserAgentIsBot bool
}

// Submission is an accepted, normalized contact message handed downstream
type Submission struct {
	ID         string
	Name       string
	Email      string
	Message    string
	ReceivedAt time.Time
	RequestID  string
	ClientIP   string
}

// String renders a log-safe summary without any user text
func (s Submission) String() string {
	return "submission " + s.ID + " (" + strconv.Itoa(utf8.RuneCountInString(s.Message)) + " runes)"
}
