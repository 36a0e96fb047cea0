// Package replay feeds recorded or synthetic events through a monitor.
//
// Event streams are files of concatenated CBOR records, one per event, using
// integer map keys like the trace log. Run drives a Sink from any Source and
// derives the run and lumi-block callbacks from changes in the event
// numbering.
package replay

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fxamacker/cbor/v2"

	"github.com/csc-dqm/cscdqm-go/pkg/monitor"
)

type eventRecord struct {
	Run       uint64          `cbor:"1,keyasint"`
	LumiBlock uint64          `cbor:"2,keyasint"`
	Number    uint64          `cbor:"3,keyasint"`
	Readouts  []readoutRecord `cbor:"4,keyasint,omitempty"`
}

type readoutRecord struct {
	DDU   int         `cbor:"1,keyasint"`
	Crate int         `cbor:"2,keyasint"`
	Slot  int         `cbor:"3,keyasint"`
	Hits  []hitRecord `cbor:"4,keyasint,omitempty"`
}

type hitRecord struct {
	Layer   int     `cbor:"1,keyasint,omitempty"`
	Element int     `cbor:"2,keyasint,omitempty"`
	Count   float64 `cbor:"3,keyasint"`
}

func toRecord(ev monitor.Event) eventRecord {
	rec := eventRecord{Run: ev.Run, LumiBlock: ev.LumiBlock, Number: ev.Number}
	for _, r := range ev.Readouts {
		rr := readoutRecord{DDU: r.DDU, Crate: r.Crate, Slot: r.Slot}
		for _, h := range r.Hits {
			rr.Hits = append(rr.Hits, hitRecord(h))
		}
		rec.Readouts = append(rec.Readouts, rr)
	}
	return rec
}

func (rec eventRecord) event() monitor.Event {
	ev := monitor.Event{Run: rec.Run, LumiBlock: rec.LumiBlock, Number: rec.Number}
	for _, rr := range rec.Readouts {
		r := monitor.Readout{DDU: rr.DDU, Crate: rr.Crate, Slot: rr.Slot}
		for _, h := range rr.Hits {
			r.Hits = append(r.Hits, monitor.Hit(h))
		}
		ev.Readouts = append(ev.Readouts, r)
	}
	return ev
}

// Writer encodes events to a stream.
type Writer struct {
	enc *cbor.Encoder
}

// NewWriter returns a Writer on w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{enc: cbor.NewEncoder(w)}
}

// Write encodes one event.
func (w *Writer) Write(ev monitor.Event) error {
	if err := w.enc.Encode(toRecord(ev)); err != nil {
		return fmt.Errorf("encode event %d: %w", ev.Number, err)
	}
	return nil
}

// Reader decodes events from a stream.
type Reader struct {
	dec    *cbor.Decoder
	closer io.Closer
}

// NewReader returns a Reader on r.
func NewReader(r io.Reader) *Reader {
	return &Reader{dec: cbor.NewDecoder(r)}
}

// Open opens an event stream file.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	r := NewReader(f)
	r.closer = f
	return r, nil
}

// Next returns the next event, or io.EOF at the end of the stream.
func (r *Reader) Next() (monitor.Event, error) {
	var rec eventRecord
	if err := r.dec.Decode(&rec); err != nil {
		if errors.Is(err, io.EOF) {
			return monitor.Event{}, io.EOF
		}
		return monitor.Event{}, fmt.Errorf("decode event: %w", err)
	}
	return rec.event(), nil
}

// Close closes the file opened by Open. It is a no-op for readers created
// with NewReader.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}
