package mask

import (
	"log/slog"

	"github.com/csc-dqm/cscdqm-go/pkg/address"
)

// LoadResult reports how many rules of a Load call were accepted.
type LoadResult struct {
	// Accepted is the number of rules added to the registry.
	Accepted int

	// Total is the number of rules offered.
	Total int

	// Rejected holds one error per rule that failed to parse.
	Rejected []*RuleError
}

// Registry holds dead hardware element rules.
// Registry is not safe for concurrent modification; the monitor loads it once
// at configuration time and only reads it afterwards.
type Registry struct {
	rules  []address.Address
	logger *slog.Logger
}

// NewRegistry creates an empty registry. An empty registry excludes nothing.
func NewRegistry() *Registry {
	return &Registry{}
}

// SetLogger sets the logger used to report rejected rules. Nil disables logging.
func (r *Registry) SetLogger(logger *slog.Logger) {
	r.logger = logger
}

// Load parses each rule independently and adds the accepted ones. A rule that
// fails to parse is skipped. Load never fails as a whole.
func (r *Registry) Load(rules []string) LoadResult {
	res := LoadResult{Total: len(rules)}

	for i, raw := range rules {
		a, err := ParseRule(raw)
		if err != nil {
			re := &RuleError{Index: i, Rule: raw, Err: err}
			res.Rejected = append(res.Rejected, re)
			if r.logger != nil {
				r.logger.Warn("mask rule rejected", "index", i, "rule", raw, "error", err)
			}
			continue
		}
		r.rules = append(r.rules, a)
		res.Accepted++
	}

	return res
}

// Add appends an already parsed rule. Empty addresses are ignored, since they
// would match every element.
func (r *Registry) Add(rule address.Address) bool {
	if rule.IsEmpty() {
		return false
	}
	r.rules = append(r.rules, rule)
	return true
}

// IsExcluded reports whether a matches at least one rule.
func (r *Registry) IsExcluded(a address.Address) bool {
	for _, rule := range r.rules {
		if rule.Matches(a) {
			return true
		}
	}
	return false
}

// Rules returns a copy of the loaded rules.
func (r *Registry) Rules() []address.Address {
	out := make([]address.Address, len(r.rules))
	copy(out, r.rules)
	return out
}

// Len returns the number of loaded rules.
func (r *Registry) Len() int {
	return len(r.rules)
}
