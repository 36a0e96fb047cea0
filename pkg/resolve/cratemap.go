package resolve

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/csc-dqm/cscdqm-go/pkg/address"
)

// ChamberID is the logical identity of a chamber read out through a crate slot.
type ChamberID struct {
	Endcap  int `yaml:"endcap"`
	Station int `yaml:"station"`
	Ring    int `yaml:"ring"`
	Chamber int `yaml:"chamber"`
}

// Address returns the chamber as a side/station/ring/chamber address.
func (c ChamberID) Address() address.Address {
	return address.Chamber(c.Endcap, c.Station, c.Ring, c.Chamber)
}

// CrateMap relates a raw (crate, slot) pair to a chamber.
// Implementations are supplied by the event source and must not be mutated
// by the monitor.
type CrateMap interface {
	// Lookup returns the chamber read out at (crate, slot), if any.
	Lookup(crate, slot int) (ChamberID, bool)
}

// CrateSlot is a raw hardware readout position.
type CrateSlot struct {
	Crate int
	Slot  int
}

// StaticCrateMap is a map-backed CrateMap.
type StaticCrateMap map[CrateSlot]ChamberID

// Lookup implements CrateMap.
func (m StaticCrateMap) Lookup(crate, slot int) (ChamberID, bool) {
	id, ok := m[CrateSlot{Crate: crate, Slot: slot}]
	return id, ok
}

// Compile-time interface satisfaction check.
var _ CrateMap = StaticCrateMap(nil)

// crateMapFile is the YAML layout of a crate map file.
type crateMapFile struct {
	Entries []crateMapEntry `yaml:"entries"`
}

type crateMapEntry struct {
	Crate     int `yaml:"crate"`
	Slot      int `yaml:"slot"`
	ChamberID `yaml:",inline"`
}

// ParseCrateMap parses a crate map from YAML:
//
//	entries:
//	  - {crate: 1, slot: 3, endcap: 1, station: 1, ring: 1, chamber: 1}
func ParseCrateMap(data []byte) (StaticCrateMap, error) {
	var f crateMapFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse crate map: %w", err)
	}

	m := make(StaticCrateMap, len(f.Entries))
	for i, e := range f.Entries {
		key := CrateSlot{Crate: e.Crate, Slot: e.Slot}
		if _, dup := m[key]; dup {
			return nil, fmt.Errorf("entry %d: duplicate crate %d slot %d", i, e.Crate, e.Slot)
		}
		m[key] = e.ChamberID
	}
	return m, nil
}

// LoadCrateMap reads a crate map YAML file.
func LoadCrateMap(path string) (StaticCrateMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read crate map: %w", err)
	}
	m, err := ParseCrateMap(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// FullCrateMap assigns every chamber of the detector to consecutive slots,
// slotsPerCrate per crate, crates and slots numbered from 1.
func FullCrateMap(slotsPerCrate int) StaticCrateMap {
	if slotsPerCrate <= 0 {
		return StaticCrateMap{}
	}

	chambers := address.Chambers()
	m := make(StaticCrateMap, len(chambers))
	for i, a := range chambers {
		side, _ := a.Side()
		station, _ := a.Station()
		ring, _ := a.Ring()
		chamber, _ := a.ChamberNumber()
		key := CrateSlot{Crate: 1 + i/slotsPerCrate, Slot: 1 + i%slotsPerCrate}
		m[key] = ChamberID{Endcap: side, Station: station, Ring: ring, Chamber: chamber}
	}
	return m
}
