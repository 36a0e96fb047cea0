// Package mask holds the registry of dead or excluded hardware elements.
//
// Each rule is a partial address: the coordinates it names must match, the
// coordinates it leaves out (or marks "*") are wildcards. A fully specified
// address is excluded from aggregation when at least one rule matches it.
//
// # Rule Format
//
// Named tokens, comma separated, in any order:
//
//	side=1,station=2,ring=*
//	side=2,station=1,ring=1,chamber=17
//
// Keys: side (alias endcap), station, ring, chamber, layer, element
// (aliases cfeb, hv). Keys are case-insensitive.
//
// Positional tokens in side, station, ring, chamber, layer, element order:
//
//	1,2,*,5
//
// A rule that leaves every coordinate wildcarded would exclude the whole
// detector and is rejected.
package mask

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/csc-dqm/cscdqm-go/pkg/address"
)

// Rule parse errors.
var (
	ErrEmptyRule      = errors.New("empty rule")
	ErrFieldCount     = errors.New("bad field count")
	ErrUnknownField   = errors.New("unknown field")
	ErrDuplicateField = errors.New("duplicate field")
	ErrInvalidValue   = errors.New("invalid value")
	ErrWildcardRule   = errors.New("rule masks nothing specific")
)

// Wildcard marks a coordinate as "any value".
const Wildcard = "*"

// fieldNames maps rule keys to coordinates.
var fieldNames = map[string]address.Field{
	"side":    address.FieldSide,
	"endcap":  address.FieldSide,
	"station": address.FieldStation,
	"ring":    address.FieldRing,
	"chamber": address.FieldChamber,
	"layer":   address.FieldLayer,
	"element": address.FieldElement,
	"cfeb":    address.FieldElement,
	"hv":      address.FieldElement,
}

// RuleError describes why a rule was rejected.
type RuleError struct {
	// Index is the position of the rule in the input list.
	Index int

	// Rule is the raw rule text.
	Rule string

	// Err is the underlying parse error.
	Err error
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("mask rule %d %q: %v", e.Index, e.Rule, e.Err)
}

func (e *RuleError) Unwrap() error {
	return e.Err
}

// ParseRule parses a single rule into a partial address.
func ParseRule(rule string) (address.Address, error) {
	rule = strings.TrimSpace(rule)
	if rule == "" {
		return address.Address{}, ErrEmptyRule
	}

	tokens := strings.Split(rule, ",")
	for i := range tokens {
		tokens[i] = strings.TrimSpace(tokens[i])
	}

	var (
		a   address.Address
		err error
	)
	if strings.Contains(rule, "=") {
		a, err = parseNamed(tokens)
	} else {
		a, err = parsePositional(tokens)
	}
	if err != nil {
		return address.Address{}, err
	}

	if a.IsEmpty() {
		return address.Address{}, ErrWildcardRule
	}
	if err := a.Validate(); err != nil {
		return address.Address{}, fmt.Errorf("%w: %w", ErrInvalidValue, err)
	}
	return a, nil
}

func parseNamed(tokens []string) (address.Address, error) {
	a := address.New()
	var seen address.Fields

	for _, tok := range tokens {
		key, value, ok := strings.Cut(tok, "=")
		if !ok {
			return address.Address{}, fmt.Errorf("%w: token %q is not key=value", ErrFieldCount, tok)
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)

		field, known := fieldNames[key]
		if !known {
			return address.Address{}, fmt.Errorf("%w: %s", ErrUnknownField, key)
		}
		if seen.Has(field) {
			return address.Address{}, fmt.Errorf("%w: %s", ErrDuplicateField, field)
		}
		seen |= address.FieldSet(field)

		a, ok = withValue(a, field, value)
		if !ok {
			return address.Address{}, fmt.Errorf("%w: %s=%q", ErrInvalidValue, field, value)
		}
	}
	return a, nil
}

func parsePositional(tokens []string) (address.Address, error) {
	if len(tokens) > address.NumFields {
		return address.Address{}, fmt.Errorf("%w: %d fields, at most %d", ErrFieldCount, len(tokens), address.NumFields)
	}

	a := address.New()
	for i, tok := range tokens {
		field := address.Field(i)
		var ok bool
		a, ok = withValue(a, field, tok)
		if !ok {
			return address.Address{}, fmt.Errorf("%w: %s=%q", ErrInvalidValue, field, tok)
		}
	}
	return a, nil
}

// withValue sets field to value unless value is the wildcard.
func withValue(a address.Address, field address.Field, value string) (address.Address, bool) {
	if value == Wildcard {
		return a, true
	}
	v, err := strconv.Atoi(value)
	if err != nil {
		return a, false
	}
	return a.With(field, v), true
}
