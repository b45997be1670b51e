package module

import (
	"fmt"

	"contactguard/internal/core/contactguard"
	"contactguard/internal/platform/config"
)

// Forward modes
const (
	ForwardLog  = "log"
	ForwardNone = "none"
)

// Options controls the contact module
type Options struct {
	// RulesFile is an optional YAML override of weights and limits
	RulesFile string
	// Threshold overrides weights.threshold when positive
	Threshold int
	// MaxBody caps the request body in bytes
	MaxBody int64
	// Forward selects the downstream hand-off for accepted submissions
	Forward string
}

// FromConfig reads with CONTACT_ prefix
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("CONTACT_")
	return Options{
		RulesFile: c.MayString("RULES_FILE", ""),
		Threshold: c.MayInt("THRESHOLD", 0),
		MaxBody:   c.MayBytes("MAX_BODY", 64<<10),
		Forward:   c.MayEnum("FORWARD", ForwardLog, ForwardLog, ForwardNone),
	}
}

// Rules loads the rule file and applies the threshold override
func (o Options) Rules() (contactguard.Rules, error) {
	rules, err := contactguard.LoadRules(o.RulesFile)
	if err != nil {
		return contactguard.Rules{}, err
	}
	if o.Threshold > 0 {
		rules.Weights.Threshold = o.Threshold
		if err := rules.Weights.Validate(); err != nil {
			return contactguard.Rules{}, fmt.Errorf("CONTACT_THRESHOLD: %w", err)
		}
	}
	return rules, nil
}
