package monitor

// Event is one detector event as delivered by the event source, already
// unpacked into per-chamber readouts.
type Event struct {
	Run       uint64
	LumiBlock uint64
	Number    uint64
	Readouts  []Readout
}

// Readout is the data of one chamber readout board.
type Readout struct {
	// DDU is the id of the DDU that delivered the readout.
	DDU int
	// Crate and Slot locate the board; the crate map turns them into a
	// chamber.
	Crate int
	Slot  int
	Hits  []Hit
}

// Hit is an occupancy count within a chamber. Layer or Element of 0 means
// the hit is not attributed to a layer or element.
type Hit struct {
	Layer   int
	Element int
	Count   float64
}
