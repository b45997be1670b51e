package contactguard

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Rules is the on-disk shape of a rule override file
//
//	weights:
//	  threshold: 9
//	  honeypot_filled: 12
//	limits:
//	  max_message: 4000
//
// Omitted keys keep their defaults
type Rules struct {
	Weights Weights `yaml:"weights" json:"weights"`
	Limits  Limits  `yaml:"limits" json:"limits"`
}

// DefaultRules returns the production table
func DefaultRules() Rules {
	return Rules{Weights: DefaultWeights(), Limits: DefaultLimits()}
}

// ParseRules decodes YAML over the defaults and validates the result
func ParseRules(r io.Reader) (Rules, error) {
	rules := DefaultRules()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&rules); err != nil && err != io.EOF {
		return Rules{}, fmt.Errorf("decode rules: %w", err)
	}
	if err := rules.Weights.Validate(); err != nil {
		return Rules{}, fmt.Errorf("weights: %w", err)
	}
	if err := rules.Limits.Validate(); err != nil {
		return Rules{}, fmt.Errorf("limits: %w", err)
	}
	return rules, nil
}

// LoadRules reads a rule file, an empty path yields the defaults
func LoadRules(path string) (Rules, error) {
	if path == "" {
		return DefaultRules(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("read rules %s: %w", path, err)
	}
	return ParseRules(bytes.NewReader(raw))
}

// Options turns the rules into classifier options
func (r Rules) Options() []Option {
	return []Option{WithWeights(r.Weights), WithLimits(r.Limits)}
}
