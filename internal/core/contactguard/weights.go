package contactguard

import (
	"fmt"
	"reflect"
)

// Weights is the auditable rule table: every score delta, the spam threshold
// and the hard-block parameters. Deltas are never negative so scoring stays
// additive
type Weights struct {
	Threshold          int `yaml:"threshold" json:"threshold"`
	HardBlockScore     int `yaml:"hard_block_score" json:"hard_block_score"`
	HardBlockMinRun    int `yaml:"hard_block_min_run" json:"hard_block_min_run"`
	HoneypotFilled     int `yaml:"honeypot_filled" json:"honeypot_filled"`
	UserAgentBot       int `yaml:"user_agent_bot" json:"user_agent_bot"`
	SubmittedTooFast   int `yaml:"submitted_too_fast" json:"submitted_too_fast"`
	SubmittedFast      int `yaml:"submitted_fast" json:"submitted_fast"`
	NameNoLetters      int `yaml:"name_no_letters" json:"name_no_letters"`
	MessageNoLetters   int `yaml:"message_no_letters" json:"message_no_letters"`
	MostlyDigits       int `yaml:"mostly_digits" json:"mostly_digits"`
	ManyURLs           int `yaml:"many_urls" json:"many_urls"`
	ShortURL           int `yaml:"short_url" json:"short_url"`
	RepeatedCharRun    int `yaml:"repeated_char_run" json:"repeated_char_run"`
	LowUniqueRatio     int `yaml:"low_unique_ratio" json:"low_unique_ratio"`
	LowVowelRatio      int `yaml:"low_vowel_ratio" json:"low_vowel_ratio"`
	LongConsonantRun   int `yaml:"long_consonant_run" json:"long_consonant_run"`
	ManyCaseFlips      int `yaml:"many_case_transitions" json:"many_case_transitions"`
	RandomToken        int `yaml:"random_token" json:"random_token"`
	NameNoSpaceShort   int `yaml:"name_no_whitespace_short" json:"name_no_whitespace_short"`
	NameNoSpaceLong    int `yaml:"name_no_whitespace_long" json:"name_no_whitespace_long"`
	MsgSingleTokenLowV int `yaml:"message_single_token_low_vowel_ratio" json:"message_single_token_low_vowel_ratio"`
	MsgNoSpaceShort    int `yaml:"message_no_whitespace_short" json:"message_no_whitespace_short"`
	MsgNoSpaceLong     int `yaml:"message_no_whitespace_long" json:"message_no_whitespace_long"`
}

// DefaultWeights returns the tuned production rule table
func DefaultWeights() Weights {
	return Weights{
		Threshold:          8,
		HardBlockScore:     999,
		HardBlockMinRun:    5,
		HoneypotFilled:     10,
		UserAgentBot:       4,
		SubmittedTooFast:   4,
		SubmittedFast:      2,
		NameNoLetters:      10,
		MessageNoLetters:   8,
		MostlyDigits:       6,
		ManyURLs:           5,
		ShortURL:           2,
		RepeatedCharRun:    6,
		LowUniqueRatio:     4,
		LowVowelRatio:      3,
		LongConsonantRun:   2,
		ManyCaseFlips:      2,
		RandomToken:        3,
		NameNoSpaceShort:   1,
		NameNoSpaceLong:    3,
		MsgSingleTokenLowV: 6,
		MsgNoSpaceShort:    1,
		MsgNoSpaceLong:     3,
	}
}

// Validate rejects tables that would break additivity or never trip
func (w Weights) Validate() error {
	if w.Threshold <= 0 {
		return fmt.Errorf("threshold must be positive, got %d", w.Threshold)
	}
	if w.HardBlockScore < w.Threshold {
		return fmt.Errorf("hard_block_score %d is below threshold %d", w.HardBlockScore, w.Threshold)
	}
	if w.HardBlockMinRun < 0 {
		return fmt.Errorf("hard_block_min_run must not be negative, got %d", w.HardBlockMinRun)
	}
	v := reflect.ValueOf(w)
	typ := v.Type()
	for i := 0; i < v.NumField(); i++ {
		if v.Field(i).Int() < 0 {
			return fmt.Errorf("%s must not be negative", typ.Field(i).Tag.Get("yaml"))
		}
	}
	return nil
}

// Limits are the structural bounds, lengths count runes
type Limits struct {
	MaxName    int `yaml:"max_name" json:"max_name"`
	MaxEmail   int `yaml:"max_email" json:"max_email"`
	MaxMessage int `yaml:"max_message" json:"max_message"`
	MinWords   int `yaml:"min_words" json:"min_words"`
}

// DefaultLimits returns the production structural bounds
func DefaultLimits() Limits {
	return Limits{
		MaxName:    80,
		MaxEmail:   254,
		MaxMessage: 5000,
		MinWords:   3,
	}
}

// Validate rejects non-positive bounds
func (l Limits) Validate() error {
	switch {
	case l.MaxName <= 0:
		return fmt.Errorf("max_name must be positive, got %d", l.MaxName)
	case l.MaxEmail <= 0:
		return fmt.Errorf("max_email must be positive, got %d", l.MaxEmail)
	case l.MaxMessage <= 0:
		return fmt.Errorf("max_message must be positive, got %d", l.MaxMessage)
	case l.MinWords < 0:
		return fmt.Errorf("min_words must not be negative, got %d", l.MinWords)
	}
	return nil
}
