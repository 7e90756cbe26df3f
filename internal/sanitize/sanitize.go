// Package sanitize strips unsafe markup from user supplied deck names.
package sanitize

import (
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

const (
	// PolicyUGC keeps harmless inline formatting and drops scripts,
	// handlers and unknown elements.
	PolicyUGC = "ugc"
	// PolicyStrict removes every tag.
	PolicyStrict = "strict"
)

// Policy is a named bluemonday policy. It satisfies deckcode.Sanitizer.
type Policy struct {
	name   string
	policy *bluemonday.Policy
}

// New returns the policy with the given name. An empty name selects
// PolicyUGC.
func New(name string) (*Policy, error) {
	switch name {
	case "", PolicyUGC:
		return &Policy{name: PolicyUGC, policy: bluemonday.UGCPolicy()}, nil
	case PolicyStrict:
		return &Policy{name: PolicyStrict, policy: bluemonday.StrictPolicy()}, nil
	default:
		return nil, fmt.Errorf("unknown sanitize policy %q", name)
	}
}

func (p *Policy) Name() string { return p.name }

// Sanitize returns name with disallowed markup removed and surrounding
// whitespace trimmed.
func (p *Policy) Sanitize(name string) string {
	return strings.TrimSpace(p.policy.Sanitize(name))
}
