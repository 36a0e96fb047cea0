// Package booking loads the declarative definitions of the bins a monitor
// books.
//
// A collection has two tiers. EMU definitions are booked once under
// <monitor>/Summary/; DDU definitions are booked per DDU under
// <monitor>/DDU/DDU_<id>/ the first time that DDU is seen. Each definition
// names a bin, its kind and the quantity it is filled with:
//
//	emu:
//	  - name: CSC_Hits
//	    kind: counter
//	    fill: hits
//	  - name: DMB_Occupancy
//	    kind: hist2d
//	    fill: readouts
//	    axes:
//	      x: {bins: 10, low: 1, high: 11}
//	      y: {bins: 60, low: 1, high: 61}
//
// An empty collection is an error: a monitor without definitions has
// nothing to fill.
package booking

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/csc-dqm/cscdqm-go/pkg/store"
)

var (
	// ErrNoDefinitions is returned when a collection has no definitions.
	ErrNoDefinitions = errors.New("no booking definitions")

	// ErrInvalidDefinition is returned for a malformed definition.
	ErrInvalidDefinition = errors.New("invalid booking definition")
)

// Kind is the bin type.
type Kind string

const (
	// KindCounter books a store.Counter.
	KindCounter Kind = "counter"
	// KindHist2D books a store.Hist2D.
	KindHist2D Kind = "hist2d"
)

// Source selects the quantity a bin is filled with.
type Source string

const (
	// SourceEvents adds 1 per processed event. Counters only.
	SourceEvents Source = "events"
	// SourceReadouts adds 1 per chamber readout. Histograms fill at
	// (slot, crate).
	SourceReadouts Source = "readouts"
	// SourceHits adds the count of every unmasked hit. Histograms fill at
	// (element, layer).
	SourceHits Source = "hits"
	// SourceNone books the bin without filling it.
	SourceNone Source = ""
)

// Definition describes one bin.
type Definition struct {
	Name  string     `yaml:"name"`
	Kind  Kind       `yaml:"kind"`
	Title string     `yaml:"title,omitempty"`
	Fill  Source     `yaml:"fill,omitempty"`
	Axes  store.Axes `yaml:"axes,omitempty"`
}

// Validate checks the definition.
func (d Definition) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidDefinition)
	}
	if strings.Contains(d.Name, "/") {
		return fmt.Errorf("%w: %s: name contains '/'", ErrInvalidDefinition, d.Name)
	}

	switch d.Kind {
	case KindCounter:
	case KindHist2D:
		for _, a := range []store.Axis{d.Axes.X, d.Axes.Y} {
			if a.Bins <= 0 || a.High <= a.Low {
				return fmt.Errorf("%w: %s: bad axis %+v", ErrInvalidDefinition, d.Name, a)
			}
		}
	default:
		return fmt.Errorf("%w: %s: unknown kind %q", ErrInvalidDefinition, d.Name, d.Kind)
	}

	switch d.Fill {
	case SourceNone, SourceReadouts, SourceHits:
	case SourceEvents:
		if d.Kind != KindCounter {
			return fmt.Errorf("%w: %s: %q needs a counter", ErrInvalidDefinition, d.Name, d.Fill)
		}
	default:
		return fmt.Errorf("%w: %s: unknown fill %q", ErrInvalidDefinition, d.Name, d.Fill)
	}
	return nil
}

// Collection is a full set of definitions.
type Collection struct {
	EMU []Definition `yaml:"emu"`
	DDU []Definition `yaml:"ddu"`
}

// Len returns the number of definitions across both tiers.
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.EMU) + len(c.DDU)
}

// Validate checks every definition and name uniqueness within each tier.
func (c *Collection) Validate() error {
	if c.Len() == 0 {
		return ErrNoDefinitions
	}
	for tier, defs := range map[string][]Definition{"emu": c.EMU, "ddu": c.DDU} {
		seen := make(map[string]bool, len(defs))
		for _, d := range defs {
			if err := d.Validate(); err != nil {
				return fmt.Errorf("%s: %w", tier, err)
			}
			if seen[d.Name] {
				return fmt.Errorf("%s: %w: duplicate name %s", tier, ErrInvalidDefinition, d.Name)
			}
			seen[d.Name] = true
		}
	}
	return nil
}

// LoadError describes a failure to load a collection from a file.
type LoadError struct {
	// File is the path that failed to load.
	File string

	// Message describes the error.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

func (e *LoadError) Error() string {
	msg := e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	if e.File == "" {
		return msg
	}
	return e.File + ": " + msg
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Parse decodes and validates a YAML collection.
func Parse(data []byte) (*Collection, error) {
	var c Collection
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, &LoadError{Message: "failed to parse YAML", Cause: err}
	}
	if err := c.Validate(); err != nil {
		return nil, &LoadError{Message: "invalid collection", Cause: err}
	}
	return &c, nil
}

// Load reads and validates a YAML collection from path.
func Load(path string) (*Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{File: path, Message: "failed to read file", Cause: err}
	}
	c, err := Parse(data)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.File = path
			return nil, le
		}
		return nil, &LoadError{File: path, Message: err.Error()}
	}
	return c, nil
}

//go:embed default.yaml
var defaultYAML []byte

// Default returns the built-in collection.
func Default() *Collection {
	c, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("booking: embedded default: %v", err))
	}
	return c
}
