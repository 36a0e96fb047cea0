package address

import (
	"fmt"
	"strconv"
	"strings"
)

// Field identifies one coordinate of an Address.
type Field uint8

const (
	// FieldSide is the endcap side (1 = plus, 2 = minus).
	FieldSide Field = iota
	// FieldStation is the station within a side (1-4).
	FieldStation
	// FieldRing is the ring within a station.
	FieldRing
	// FieldChamber is the chamber within a ring.
	FieldChamber
	// FieldLayer is the layer within a chamber (1-6).
	FieldLayer
	// FieldElement is a sub-chamber element (front-end board or HV segment).
	FieldElement
)

// NumFields is the number of coordinates in an Address.
const NumFields = 6

// String returns the field name.
func (f Field) String() string {
	switch f {
	case FieldSide:
		return "side"
	case FieldStation:
		return "station"
	case FieldRing:
		return "ring"
	case FieldChamber:
		return "chamber"
	case FieldLayer:
		return "layer"
	case FieldElement:
		return "element"
	default:
		return "unknown"
	}
}

// Fields is a set of coordinates.
type Fields uint8

// FieldSet builds a Fields set from individual fields.
func FieldSet(fields ...Field) Fields {
	var s Fields
	for _, f := range fields {
		s |= 1 << f
	}
	return s
}

// Has reports whether f is in the set.
func (s Fields) Has(f Field) bool {
	return f < NumFields && s&(1<<f) != 0
}

// Len returns the number of fields in the set.
func (s Fields) Len() int {
	n := 0
	for f := Field(0); f < NumFields; f++ {
		if s.Has(f) {
			n++
		}
	}
	return n
}

// String returns the set as "side|station|...".
func (s Fields) String() string {
	var names []string
	for f := Field(0); f < NumFields; f++ {
		if s.Has(f) {
			names = append(names, f.String())
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// Address is a CSC coordinate in which each field is optionally set.
// The zero value has no fields set. Address is a value type.
type Address struct {
	values [NumFields]int
	set    Fields
}

// New returns an Address with no fields set.
func New() Address {
	return Address{}
}

// Chamber returns an address with side, station, ring and chamber set.
func Chamber(side, station, ring, chamber int) Address {
	return New().WithSide(side).WithStation(station).WithRing(ring).WithChamber(chamber)
}

// With returns a copy of a with field f set to v.
func (a Address) With(f Field, v int) Address {
	if f >= NumFields {
		return a
	}
	a.values[f] = v
	a.set |= 1 << f
	return a
}

// Without returns a copy of a with field f cleared.
func (a Address) Without(f Field) Address {
	if f >= NumFields {
		return a
	}
	a.values[f] = 0
	a.set &^= 1 << f
	return a
}

// WithSide returns a copy with the side set.
func (a Address) WithSide(v int) Address { return a.With(FieldSide, v) }

// WithStation returns a copy with the station set.
func (a Address) WithStation(v int) Address { return a.With(FieldStation, v) }

// WithRing returns a copy with the ring set.
func (a Address) WithRing(v int) Address { return a.With(FieldRing, v) }

// WithChamber returns a copy with the chamber set.
func (a Address) WithChamber(v int) Address { return a.With(FieldChamber, v) }

// WithLayer returns a copy with the layer set.
func (a Address) WithLayer(v int) Address { return a.With(FieldLayer, v) }

// WithElement returns a copy with the element set.
func (a Address) WithElement(v int) Address { return a.With(FieldElement, v) }

// Get returns the value of field f and whether it is set.
func (a Address) Get(f Field) (int, bool) {
	if !a.set.Has(f) {
		return 0, false
	}
	return a.values[f], true
}

// Side returns the side and whether it is set.
func (a Address) Side() (int, bool) { return a.Get(FieldSide) }

// Station returns the station and whether it is set.
func (a Address) Station() (int, bool) { return a.Get(FieldStation) }

// Ring returns the ring and whether it is set.
func (a Address) Ring() (int, bool) { return a.Get(FieldRing) }

// ChamberNumber returns the chamber and whether it is set.
func (a Address) ChamberNumber() (int, bool) { return a.Get(FieldChamber) }

// Layer returns the layer and whether it is set.
func (a Address) Layer() (int, bool) { return a.Get(FieldLayer) }

// Element returns the element and whether it is set.
func (a Address) Element() (int, bool) { return a.Get(FieldElement) }

// Fields returns the set of coordinates present in a.
func (a Address) Fields() Fields {
	return a.set
}

// IsEmpty reports whether no field is set.
func (a Address) IsEmpty() bool {
	return a.set == 0
}

// Equal reports whether a and b have the same fields set with the same values.
func (a Address) Equal(b Address) bool {
	return a.set == b.set && a.values == b.values
}

// Matches reports whether candidate matches a used as a pattern: every field
// set in a must be set in candidate with the same value. Fields unset in a
// are wildcards; extra fields in candidate are ignored.
func (a Address) Matches(candidate Address) bool {
	for f := Field(0); f < NumFields; f++ {
		if !a.set.Has(f) {
			continue
		}
		v, ok := candidate.Get(f)
		if !ok || v != a.values[f] {
			return false
		}
	}
	return true
}

// Label returns the deterministic bin name of a. Only set fields contribute.
func (a Address) Label() string {
	var sb strings.Builder
	sb.WriteString("CSC")

	if v, ok := a.Side(); ok {
		sb.WriteString("_Side")
		sb.WriteString(sideName(v))
	}
	writeField(&sb, a, FieldStation, "_Station")
	writeField(&sb, a, FieldRing, "_Ring")
	writeField(&sb, a, FieldChamber, "_Chamber")
	writeField(&sb, a, FieldLayer, "_Layer")
	writeField(&sb, a, FieldElement, "_Element")

	return sb.String()
}

// String returns a compact form like "side=1,station=2,ring=*", listing every
// field up to the deepest one set.
func (a Address) String() string {
	deepest := -1
	for f := Field(0); f < NumFields; f++ {
		if a.set.Has(f) {
			deepest = int(f)
		}
	}
	if deepest < 0 {
		return "*"
	}

	parts := make([]string, 0, deepest+1)
	for f := Field(0); int(f) <= deepest; f++ {
		if v, ok := a.Get(f); ok {
			parts = append(parts, f.String()+"="+strconv.Itoa(v))
		} else {
			parts = append(parts, f.String()+"=*")
		}
	}
	return strings.Join(parts, ",")
}

func writeField(sb *strings.Builder, a Address, f Field, prefix string) {
	v, ok := a.Get(f)
	if !ok {
		return
	}
	sb.WriteString(prefix)
	fmt.Fprintf(sb, "%02d", v)
}

// sideName falls back to the decimal value for out-of-range sides.
func sideName(side int) string {
	switch side {
	case SidePlus:
		return "Plus"
	case SideMinus:
		return "Minus"
	default:
		return strconv.Itoa(side)
	}
}
