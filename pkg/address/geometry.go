package address

import (
	"errors"
	"fmt"
)

// Geometry errors.
var (
	ErrInvalidSide    = errors.New("invalid side")
	ErrInvalidStation = errors.New("invalid station")
	ErrInvalidRing    = errors.New("invalid ring")
	ErrInvalidChamber = errors.New("invalid chamber")
	ErrInvalidLayer   = errors.New("invalid layer")
	ErrInvalidElement = errors.New("invalid element")
)

// Detector geometry constants.
const (
	// SidePlus is the +z endcap.
	SidePlus = 1
	// SideMinus is the -z endcap.
	SideMinus = 2

	// SideCount is the number of endcaps.
	SideCount = 2

	// StationCount is the number of stations per endcap.
	StationCount = 4

	// LayerCount is the number of layers per chamber.
	LayerCount = 6

	// MaxRings is the largest ring count of any station.
	MaxRings = 3

	// MaxChambers is the largest chamber count of any ring.
	MaxChambers = 36

	// MaxElements is the largest element count of any chamber.
	MaxElements = 5
)

// ringsPerStation is indexed by station-1.
var ringsPerStation = [StationCount]int{3, 2, 2, 2}

// RingCount returns the number of rings in a station.
func RingCount(station int) (int, error) {
	if station < 1 || station > StationCount {
		return 0, fmt.Errorf("%w: %d", ErrInvalidStation, station)
	}
	return ringsPerStation[station-1], nil
}

// ChamberCount returns the number of chambers in a ring.
// The inner rings of stations 2-4 hold 20-degree chambers, all others 10-degree.
func ChamberCount(station, ring int) (int, error) {
	if err := checkRing(station, ring); err != nil {
		return 0, err
	}
	if station > 1 && ring == 1 {
		return 18, nil
	}
	return 36, nil
}

// ElementCount returns the number of front-end boards per chamber in a ring.
func ElementCount(station, ring int) (int, error) {
	if err := checkRing(station, ring); err != nil {
		return 0, err
	}
	if station == 1 && (ring == 1 || ring == 3) {
		return 4, nil
	}
	return 5, nil
}

func checkRing(station, ring int) error {
	rings, err := RingCount(station)
	if err != nil {
		return err
	}
	if ring < 1 || ring > rings {
		return fmt.Errorf("%w: %d in station %d", ErrInvalidRing, ring, station)
	}
	return nil
}

// Validate checks every set coordinate of a against the detector geometry.
// Ring, chamber and element limits depend on the enclosing coordinates when
// those are set; otherwise the largest limit over the detector applies.
func (a Address) Validate() error {
	if v, ok := a.Side(); ok && (v < 1 || v > SideCount) {
		return fmt.Errorf("%w: %d", ErrInvalidSide, v)
	}

	station, hasStation := a.Station()
	if hasStation {
		if _, err := RingCount(station); err != nil {
			return err
		}
	}

	ring, hasRing := a.Ring()
	if hasRing {
		maxRing := MaxRings
		if hasStation {
			maxRing, _ = RingCount(station)
		}
		if ring < 1 || ring > maxRing {
			return fmt.Errorf("%w: %d", ErrInvalidRing, ring)
		}
	}

	located := hasStation && hasRing

	if v, ok := a.ChamberNumber(); ok {
		maxChamber := MaxChambers
		if located {
			maxChamber, _ = ChamberCount(station, ring)
		}
		if v < 1 || v > maxChamber {
			return fmt.Errorf("%w: %d", ErrInvalidChamber, v)
		}
	}

	if v, ok := a.Layer(); ok && (v < 1 || v > LayerCount) {
		return fmt.Errorf("%w: %d", ErrInvalidLayer, v)
	}

	if v, ok := a.Element(); ok {
		maxElement := MaxElements
		if located {
			maxElement, _ = ElementCount(station, ring)
		}
		if v < 1 || v > maxElement {
			return fmt.Errorf("%w: %d", ErrInvalidElement, v)
		}
	}

	return nil
}

// Enumerate returns every address from side level down to depth, top-down:
// each side, then each station under it, then each ring, then each chamber.
// Every prefix level appears before the addresses beneath it. Depth beyond
// FieldChamber is clamped to FieldChamber.
func Enumerate(depth Field) []Address {
	if depth > FieldChamber {
		depth = FieldChamber
	}

	var out []Address
	for side := 1; side <= SideCount; side++ {
		sa := New().WithSide(side)
		out = append(out, sa)
		if depth < FieldStation {
			continue
		}
		for station := 1; station <= StationCount; station++ {
			sta := sa.WithStation(station)
			out = append(out, sta)
			if depth < FieldRing {
				continue
			}
			rings, _ := RingCount(station)
			for ring := 1; ring <= rings; ring++ {
				ra := sta.WithRing(ring)
				out = append(out, ra)
				if depth < FieldChamber {
					continue
				}
				chambers, _ := ChamberCount(station, ring)
				for chamber := 1; chamber <= chambers; chamber++ {
					out = append(out, ra.WithChamber(chamber))
				}
			}
		}
	}
	return out
}

// Chambers returns every chamber address in the detector, in enumeration order.
func Chambers() []Address {
	var out []Address
	for _, a := range Enumerate(FieldChamber) {
		if a.Fields().Has(FieldChamber) {
			out = append(out, a)
		}
	}
	return out
}
