// Package store defines the bin store the monitor fills, and an in-memory
// reference implementation.
//
// The store is an opaque accumulator keyed by name. The monitor asks for a
// named float counter or 2D histogram (creating it on first request) and
// fills it; reading values back is used only for derived metrics. Bin names
// are slash-separated paths rooted at the monitor name, e.g.
//
//	CSC/EventInfo/reportSummaryContents/CSC_SidePlus_Station02
package store

import "path"

// Counter is a named float accumulator.
type Counter interface {
	// Name returns the full bin name.
	Name() string
	// Fill adds v to the value.
	Fill(v float64)
	// Set replaces the value.
	Set(v float64)
	// Value returns the current value.
	Value() float64
}

// Axis describes one histogram axis: Bins equal-width bins spanning [Low, High).
type Axis struct {
	Bins int     `yaml:"bins"`
	Low  float64 `yaml:"low"`
	High float64 `yaml:"high"`
}

// Find returns the 1-based bin index of x, 0 for underflow and Bins+1 for overflow.
func (a Axis) Find(x float64) int {
	if a.Bins <= 0 || a.High <= a.Low {
		return 0
	}
	if x < a.Low {
		return 0
	}
	if x >= a.High {
		return a.Bins + 1
	}
	return 1 + int(float64(a.Bins)*(x-a.Low)/(a.High-a.Low))
}

// Axes describes a 2D histogram.
type Axes struct {
	X Axis `yaml:"x"`
	Y Axis `yaml:"y"`
}

// Hist2D is a named two-dimensional counter.
type Hist2D interface {
	// Name returns the full bin name.
	Name() string
	// Axes returns the binning.
	Axes() Axes
	// Fill adds w to the bin containing (x, y).
	Fill(x, y, w float64)
	// SetBin replaces the content of bin (ix, iy), 1-based.
	SetBin(ix, iy int, v float64)
	// Bin returns the content of bin (ix, iy), 1-based.
	Bin(ix, iy int) float64
	// Entries returns the number of Fill calls.
	Entries() uint64
}

// Store creates and looks up bins by name.
type Store interface {
	// Counter returns the counter called name, creating it if needed.
	Counter(name string) Counter
	// Hist2D returns the histogram called name, creating it with axes if
	// needed. Axes of an existing histogram are not changed.
	Hist2D(name string, axes Axes) Hist2D
	// Names returns the names of all bins, sorted.
	Names() []string
}

// Join builds a bin name from path elements.
func Join(elem ...string) string {
	return path.Join(elem...)
}
