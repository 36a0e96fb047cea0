// Package resolve maps raw readout positions to logical chambers and chamber types.
//
// The event source supplies a CrateMap per run. The Resolver looks up a
// (crate, slot) pair, derives the chamber type label ("ME+1/2") from endcap,
// station and ring, and maps that label to an integer type code through a
// TypeTable. Type code 0 means unknown: the slot is unmapped, or the label has
// no code. Unknown is a normal steady-state answer for spare or auxiliary
// slots, not an error.
package resolve

import (
	"fmt"
)

// UnknownType is the type code returned when a slot cannot be resolved.
const UnknownType = 0

// UnknownLabel is the type label for coordinates outside the detector.
const UnknownLabel = "Unknown"

// TypeLabel returns the chamber type label for endcap, station and ring,
// e.g. "ME+1/2" or "ME-4/1".
func TypeLabel(endcap, station, ring int) string {
	if endcap <= 0 || station <= 0 || ring <= 0 {
		return UnknownLabel
	}
	switch endcap {
	case 1:
		return fmt.Sprintf("ME+%d/%d", station, ring)
	case 2:
		return fmt.Sprintf("ME-%d/%d", station, ring)
	default:
		return UnknownLabel
	}
}

// TypeTable maps chamber type labels to type codes.
type TypeTable map[string]int

// typeOrder lists chamber types from ME-4/2 to ME+4/2, the order of the type
// axis in the reporting histograms.
var typeOrder = []string{
	"ME-4/2", "ME-4/1", "ME-3/2", "ME-3/1", "ME-2/2", "ME-2/1",
	"ME-1/3", "ME-1/2", "ME-1/1",
	"ME+1/1", "ME+1/2", "ME+1/3",
	"ME+2/1", "ME+2/2", "ME+3/1", "ME+3/2", "ME+4/1", "ME+4/2",
}

// TypeCount is the number of chamber types in the default table.
const TypeCount = 18

// DefaultTypeTable returns the standard table with codes 1..18.
func DefaultTypeTable() TypeTable {
	t := make(TypeTable, len(typeOrder))
	for i, label := range typeOrder {
		t[label] = i + 1
	}
	return t
}

// Code returns the code for label, or UnknownType.
func (t TypeTable) Code(label string) int {
	if code, ok := t[label]; ok {
		return code
	}
	return UnknownType
}

// Label returns the label for a code, or UnknownLabel.
func (t TypeTable) Label(code int) string {
	for label, c := range t {
		if c == code {
			return label
		}
	}
	return UnknownLabel
}

// Resolver resolves readout positions using a type table.
// It holds no reference to any crate map; the map is passed per call.
type Resolver struct {
	types TypeTable
}

// NewResolver creates a resolver. A nil table selects DefaultTypeTable.
func NewResolver(types TypeTable) *Resolver {
	if types == nil {
		types = DefaultTypeTable()
	}
	return &Resolver{types: types}
}

// Types returns the resolver's type table.
func (r *Resolver) Types() TypeTable {
	return r.types
}

// Resolve returns the chamber type code and position (chamber number) of the
// chamber at (crate, slot). When the slot is unmapped or the type label has no
// code, typ is UnknownType and position is whatever the crate map returned.
// A nil crate map resolves nothing.
func (r *Resolver) Resolve(crate, slot int, crates CrateMap) (typ, position int) {
	if crates == nil {
		return UnknownType, 0
	}
	id, _ := crates.Lookup(crate, slot)
	label := TypeLabel(id.Endcap, id.Station, id.Ring)
	return r.types.Code(label), id.Chamber
}

// Chamber returns the full chamber identity at (crate, slot).
func (r *Resolver) Chamber(crate, slot int, crates CrateMap) (ChamberID, bool) {
	if crates == nil {
		return ChamberID{}, false
	}
	return crates.Lookup(crate, slot)
}
