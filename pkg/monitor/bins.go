package monitor

import (
	"fmt"

	"github.com/csc-dqm/cscdqm-go/pkg/address"
	"github.com/csc-dqm/cscdqm-go/pkg/booking"
	"github.com/csc-dqm/cscdqm-go/pkg/log"
	"github.com/csc-dqm/cscdqm-go/pkg/mask"
	"github.com/csc-dqm/cscdqm-go/pkg/resolve"
	"github.com/csc-dqm/cscdqm-go/pkg/store"
)

// Bin folders below the monitor root.
const (
	FolderSummary   = "Summary"
	FolderEventInfo = "EventInfo"
	FolderContents  = "EventInfo/reportSummaryContents"
	FolderChambers  = "Chambers"
	FolderDDU       = "DDU"
)

var (
	// reportingAxes bins chamber position (x) against chamber type (y).
	reportingAxes = store.Axes{
		X: store.Axis{Bins: address.MaxChambers, Low: 1, High: address.MaxChambers + 1},
		Y: store.Axis{Bins: resolve.TypeCount, Low: 1, High: resolve.TypeCount + 1},
	}

	// stationAxes bins chamber (x) against side and ring (y) for one station.
	stationAxes = store.Axes{
		X: store.Axis{Bins: address.MaxChambers, Low: 1, High: address.MaxChambers + 1},
		Y: store.Axis{Bins: address.SideCount * address.MaxRings, Low: 1, High: address.SideCount*address.MaxRings + 1},
	}
)

type chamberKey struct {
	side, station, ring, chamber int
}

type chamberBin struct {
	addr    address.Address
	hits    store.Counter
	station int
	chamber int
	typ     int
	row     int // y bin in the station summary
	x, y    int // bins in CSC_Reporting
	masked  bool

	reporting bool
}

type group struct {
	value    store.Counter
	chambers []*chamberBin
}

type filler struct {
	def     booking.Definition
	counter store.Counter
	hist    store.Hist2D
}

// Bins is the booked state of a Module. It exists only once booking has
// completed; aggregation and refresh are defined on it.
type Bins struct {
	root     string
	store    store.Store
	masks    *mask.Registry
	resolver *resolve.Resolver
	stats    *Stats
	created  int

	emu     []filler
	dduDefs []booking.Definition
	ddus    map[int][]filler
	onDDU   func(ddu, bins int)

	processed   store.Counter
	unmapped    store.Counter
	reporting   store.Hist2D
	report      store.Counter
	reportMap   store.Hist2D
	stationMaps [address.StationCount]store.Hist2D

	chambers map[chamberKey]*chamberBin
	all      []*chamberBin
	groups   []group
}

// Created returns the number of store entries booked so far.
func (b *Bins) Created() int {
	return b.created
}

// Chambers returns the number of chamber bins.
func (b *Bins) Chambers() int {
	return len(b.all)
}

// DDUs returns the DDU ids booked so far.
func (b *Bins) DDUs() []int {
	ids := make([]int, 0, len(b.ddus))
	for id := range b.ddus {
		ids = append(ids, id)
	}
	return ids
}

func (m *Module) book() *Bins {
	b := &Bins{
		root:     m.root,
		store:    m.store,
		masks:    m.masks,
		resolver: m.resolver,
		stats:    &m.stats,
		ddus:     make(map[int][]filler),
		chambers: make(map[chamberKey]*chamberBin),
	}
	if m.cfg.HitBookDDU {
		b.dduDefs = m.defs.DDU
		b.onDDU = func(ddu, bins int) {
			m.debugLog("booked DDU", "ddu", ddu, "bins", bins)
			m.emit(log.Event{
				Category: log.CategoryBooking,
				Booking:  &log.BookingEvent{Tier: log.TierDDU, DDU: ddu, Bins: bins},
			})
		}
	}

	summary := store.Join(b.root, FolderSummary)
	for _, d := range m.defs.EMU {
		b.emu = append(b.emu, b.bookDefinition(summary, d))
	}

	b.processed = b.counter(FolderEventInfo, "processedEvents")
	b.unmapped = b.counter(FolderSummary, "CSC_Unmapped")
	b.reporting = b.hist(reportingAxes, FolderSummary, "CSC_Reporting")
	for i := range b.stationMaps {
		b.stationMaps[i] = b.hist(stationAxes, FolderSummary, fmt.Sprintf("Summary_ME%d", i+1))
	}
	b.report = b.counter(FolderEventInfo, "reportSummary")
	b.report.Set(-1)
	b.reportMap = b.hist(reportingAxes, FolderEventInfo, "reportSummaryMap")

	types := m.resolver.Types()
	for _, a := range address.Chambers() {
		side, _ := a.Side()
		station, _ := a.Station()
		ring, _ := a.Ring()
		chamber, _ := a.ChamberNumber()
		typ := types.Code(resolve.TypeLabel(side, station, ring))

		cb := &chamberBin{
			addr:    a,
			hits:    b.counter(FolderChambers, a.Label()),
			station: station,
			chamber: chamber,
			typ:     typ,
			row:     (side-1)*address.MaxRings + ring,
			x:       reportingAxes.X.Find(float64(chamber)),
			y:       reportingAxes.Y.Find(float64(typ)),
			masked:  m.masks.IsExcluded(a),
		}
		b.chambers[chamberKey{side, station, ring, chamber}] = cb
		b.all = append(b.all, cb)
	}

	for _, a := range address.Enumerate(address.FieldRing) {
		g := group{value: b.counter(FolderContents, a.Label())}
		g.value.Set(0)
		for _, cb := range b.all {
			if a.Matches(cb.addr) {
				g.chambers = append(g.chambers, cb)
			}
		}
		b.groups = append(b.groups, g)
	}

	m.debugLog("booked", "bins", b.created, "chambers", len(b.all))
	m.emit(log.Event{
		Category: log.CategoryBooking,
		Booking:  &log.BookingEvent{Tier: log.TierEMU, Bins: b.created, Chambers: len(b.all)},
	})
	return b
}

func (b *Bins) counter(elem ...string) store.Counter {
	b.created++
	return b.store.Counter(store.Join(append([]string{b.root}, elem...)...))
}

func (b *Bins) hist(axes store.Axes, elem ...string) store.Hist2D {
	b.created++
	return b.store.Hist2D(store.Join(append([]string{b.root}, elem...)...), axes)
}

func (b *Bins) bookDefinition(dir string, d booking.Definition) filler {
	b.created++
	f := filler{def: d}
	name := store.Join(dir, d.Name)
	if d.Kind == booking.KindHist2D {
		f.hist = b.store.Hist2D(name, d.Axes)
	} else {
		f.counter = b.store.Counter(name)
	}
	return f
}

// dduFillers returns the per-DDU bins of id, booking them on first sight.
// It returns nil when the DDU tier is disabled.
func (b *Bins) dduFillers(id int) []filler {
	if len(b.dduDefs) == 0 {
		return nil
	}
	if f, ok := b.ddus[id]; ok {
		return f
	}

	before := b.created
	dir := store.Join(b.root, FolderDDU, fmt.Sprintf("DDU_%03d", id))
	fillers := make([]filler, 0, len(b.dduDefs))
	for _, d := range b.dduDefs {
		fillers = append(fillers, b.bookDefinition(dir, d))
	}
	b.ddus[id] = fillers
	if b.onDDU != nil {
		b.onDDU(id, b.created-before)
	}
	return fillers
}

func (b *Bins) aggregate(ev Event, crates resolve.CrateMap) {
	b.processed.Fill(1)
	fillEvent(b.emu)

	var seen map[int]bool
	for _, r := range ev.Readouts {
		b.stats.Readouts++

		// Masked chambers contribute nothing, not even to readout counts.
		cb := b.lookup(r, crates)
		if cb != nil && cb.masked {
			b.stats.MaskedReadouts++
			continue
		}

		ddu := b.dduFillers(r.DDU)
		if ddu != nil {
			if seen == nil {
				seen = make(map[int]bool)
			}
			if !seen[r.DDU] {
				seen[r.DDU] = true
				fillEvent(ddu)
			}
		}
		fillReadout(b.emu, r)
		fillReadout(ddu, r)

		if cb == nil {
			b.stats.Unmapped++
			b.unmapped.Fill(1)
			continue
		}
		b.reporting.Fill(float64(cb.chamber), float64(cb.typ), 1)

		for _, h := range r.Hits {
			ha := cb.addr
			if h.Layer > 0 {
				ha = ha.WithLayer(h.Layer)
			}
			if h.Element > 0 {
				ha = ha.WithElement(h.Element)
			}
			if b.masks.IsExcluded(ha) {
				b.stats.MaskedHits++
				continue
			}
			cb.hits.Fill(h.Count)
			fillHit(b.emu, h)
			fillHit(ddu, h)
		}
	}
}

// lookup returns the chamber bin of a readout, or nil when the crate map
// does not resolve it to a known chamber type inside the geometry.
func (b *Bins) lookup(r Readout, crates resolve.CrateMap) *chamberBin {
	typ, _ := b.resolver.Resolve(r.Crate, r.Slot, crates)
	if typ == resolve.UnknownType {
		return nil
	}
	id, ok := b.resolver.Chamber(r.Crate, r.Slot, crates)
	if !ok {
		return nil
	}
	return b.chambers[chamberKey{id.Endcap, id.Station, id.Ring, id.Chamber}]
}

func fillEvent(fillers []filler) {
	for _, f := range fillers {
		if f.def.Fill == booking.SourceEvents && f.counter != nil {
			f.counter.Fill(1)
		}
	}
}

func fillReadout(fillers []filler, r Readout) {
	for _, f := range fillers {
		if f.def.Fill != booking.SourceReadouts {
			continue
		}
		if f.hist != nil {
			f.hist.Fill(float64(r.Slot), float64(r.Crate), 1)
		} else {
			f.counter.Fill(1)
		}
	}
}

func fillHit(fillers []filler, h Hit) {
	for _, f := range fillers {
		if f.def.Fill != booking.SourceHits {
			continue
		}
		if f.hist != nil {
			f.hist.Fill(float64(h.Element), float64(h.Layer), h.Count)
		} else {
			f.counter.Fill(h.Count)
		}
	}
}
