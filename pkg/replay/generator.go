package replay

import (
	"io"
	"math/rand/v2"
	"sort"

	"github.com/csc-dqm/cscdqm-go/pkg/address"
	"github.com/csc-dqm/cscdqm-go/pkg/monitor"
	"github.com/csc-dqm/cscdqm-go/pkg/resolve"
)

// GeneratorConfig configures a synthetic event source.
type GeneratorConfig struct {
	// Run is the run number of every event.
	Run uint64
	// Events is the number of events to produce.
	Events int
	// EventsPerLumi is the lumi-block length. Zero puts every event in
	// lumi block 1.
	EventsPerLumi int
	// Occupancy is the probability that a mapped slot is read out in an
	// event.
	Occupancy float64
	// DDUBase is added to the crate number to form the DDU id.
	DDUBase int
	// Seed makes the sequence reproducible.
	Seed uint64
}

// Generator produces synthetic events over the slots of a crate map.
type Generator struct {
	cfg   GeneratorConfig
	slots []resolve.CrateSlot
	rng   *rand.Rand
	n     int
}

// NewGenerator returns a Generator over the slots of crates, visited in
// crate/slot order.
func NewGenerator(cfg GeneratorConfig, crates resolve.StaticCrateMap) *Generator {
	slots := make([]resolve.CrateSlot, 0, len(crates))
	for cs := range crates {
		slots = append(slots, cs)
	}
	sort.Slice(slots, func(i, j int) bool {
		if slots[i].Crate != slots[j].Crate {
			return slots[i].Crate < slots[j].Crate
		}
		return slots[i].Slot < slots[j].Slot
	})
	return &Generator{
		cfg:   cfg,
		slots: slots,
		rng:   rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
	}
}

// Next implements Source.
func (g *Generator) Next() (monitor.Event, error) {
	if g.n >= g.cfg.Events {
		return monitor.Event{}, io.EOF
	}
	g.n++

	lumi := uint64(1)
	if g.cfg.EventsPerLumi > 0 {
		lumi = uint64((g.n-1)/g.cfg.EventsPerLumi + 1)
	}
	ev := monitor.Event{Run: g.cfg.Run, LumiBlock: lumi, Number: uint64(g.n)}

	for _, cs := range g.slots {
		if g.rng.Float64() >= g.cfg.Occupancy {
			continue
		}
		r := monitor.Readout{DDU: g.cfg.DDUBase + cs.Crate, Crate: cs.Crate, Slot: cs.Slot}
		r.Hits = append(r.Hits, monitor.Hit{
			Layer:   1 + g.rng.IntN(address.LayerCount),
			Element: 1 + g.rng.IntN(4),
			Count:   float64(1 + g.rng.IntN(3)),
		})
		ev.Readouts = append(ev.Readouts, r)
	}
	return ev, nil
}
