package log

import "time"

// Event is one trace record. Exactly one of the payload pointers is set,
// matching Category. CBOR encoding uses integer keys.
type Event struct {
	// Timestamp when the event was recorded.
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID identifies the Module instance (UUID).
	SessionID string `cbor:"2,keyasint"`

	// Monitor is the configured monitor name, e.g. "CSC".
	Monitor string `cbor:"3,keyasint,omitempty"`

	// Category classifies the payload.
	Category Category `cbor:"4,keyasint"`

	// Run and LumiBlock are the current run and lumi block, 0 if not yet known.
	Run       uint64 `cbor:"5,keyasint,omitempty"`
	LumiBlock uint64 `cbor:"6,keyasint,omitempty"`

	// EventCount is the number of events processed so far.
	EventCount uint64 `cbor:"7,keyasint,omitempty"`

	Booking  *BookingEvent   `cbor:"10,keyasint,omitempty"`
	Refresh  *RefreshEvent   `cbor:"11,keyasint,omitempty"`
	Boundary *BoundaryEvent  `cbor:"12,keyasint,omitempty"`
	Config   *ConfigEvent    `cbor:"13,keyasint,omitempty"`
	Error    *ErrorEventData `cbor:"14,keyasint,omitempty"`
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryBooking records bin creation.
	CategoryBooking Category = 0
	// CategoryRefresh records a derived-metric refresh.
	CategoryRefresh Category = 1
	// CategoryBoundary records a run or lumi-block transition.
	CategoryBoundary Category = 2
	// CategoryConfig records the effective configuration.
	CategoryConfig Category = 3
	// CategoryError records a non-fatal problem.
	CategoryError Category = 4
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryBooking:
		return "BOOKING"
	case CategoryRefresh:
		return "REFRESH"
	case CategoryBoundary:
		return "BOUNDARY"
	case CategoryConfig:
		return "CONFIG"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseCategory returns the category with the given name (case-sensitive,
// as printed by String).
func ParseCategory(s string) (Category, bool) {
	for c := CategoryBooking; c <= CategoryError; c++ {
		if c.String() == s {
			return c, true
		}
	}
	return 0, false
}

// Tier identifies a booking level.
type Tier uint8

const (
	// TierEMU is the detector-wide level.
	TierEMU Tier = 0
	// TierDDU is the per-DDU level.
	TierDDU Tier = 1
)

// String returns the tier name.
func (t Tier) String() string {
	switch t {
	case TierEMU:
		return "EMU"
	case TierDDU:
		return "DDU"
	default:
		return "UNKNOWN"
	}
}

// BookingEvent records a completed booking pass.
type BookingEvent struct {
	// Tier that was booked.
	Tier Tier `cbor:"1,keyasint"`

	// DDU is the DDU id for TierDDU.
	DDU int `cbor:"2,keyasint,omitempty"`

	// Bins is the number of store entries created.
	Bins int `cbor:"3,keyasint"`

	// Chambers is the number of chamber bins (TierEMU only).
	Chambers int `cbor:"4,keyasint,omitempty"`
}

// RefreshEvent records the outcome of one refresh.
type RefreshEvent struct {
	// Trigger names the scope that fired, e.g. "PERIODIC".
	Trigger string `cbor:"1,keyasint"`

	// ReportSummary is the detector-wide reporting fraction, -1 if every
	// chamber is masked.
	ReportSummary float64 `cbor:"2,keyasint"`

	// Reporting and Unmasked are the chamber counts behind ReportSummary.
	Reporting int `cbor:"3,keyasint"`
	Unmasked  int `cbor:"4,keyasint"`

	// Duration is the time spent recomputing.
	Duration time.Duration `cbor:"5,keyasint,omitempty"`
}

// BoundaryKind identifies a transition.
type BoundaryKind uint8

const (
	// BoundaryRunBegin marks the start of a run.
	BoundaryRunBegin BoundaryKind = 0
	// BoundaryRunEnd marks the end of a run.
	BoundaryRunEnd BoundaryKind = 1
	// BoundaryLumiBlockBegin marks the start of a lumi block.
	BoundaryLumiBlockBegin BoundaryKind = 2
)

// String returns the boundary name.
func (b BoundaryKind) String() string {
	switch b {
	case BoundaryRunBegin:
		return "RUN_BEGIN"
	case BoundaryRunEnd:
		return "RUN_END"
	case BoundaryLumiBlockBegin:
		return "LUMI_BEGIN"
	default:
		return "UNKNOWN"
	}
}

// BoundaryEvent records a run or lumi-block transition.
type BoundaryEvent struct {
	Kind BoundaryKind `cbor:"1,keyasint"`

	// Refreshed reports whether the transition fired a refresh.
	Refreshed bool `cbor:"2,keyasint,omitempty"`
}

// ConfigEvent records the effective configuration of a Module.
type ConfigEvent struct {
	// Triggers is the enabled refresh trigger set, e.g. "RUN_END|PERIODIC".
	Triggers string `cbor:"1,keyasint"`

	// Frequency is the periodic refresh frequency in events.
	Frequency int `cbor:"2,keyasint"`

	// MasksAccepted and MasksTotal summarize the mask rules.
	MasksAccepted int `cbor:"3,keyasint"`
	MasksTotal    int `cbor:"4,keyasint"`

	// Definitions is the number of booking definitions.
	Definitions int `cbor:"5,keyasint"`

	// Problems lists non-fatal configuration problems.
	Problems []string `cbor:"6,keyasint,omitempty"`
}

// ErrorEventData records a non-fatal problem.
type ErrorEventData struct {
	// Source names the component, e.g. "mask" or "config".
	Source string `cbor:"1,keyasint"`

	// Message is the error text.
	Message string `cbor:"2,keyasint"`

	// Context is the offending input, if any.
	Context string `cbor:"3,keyasint,omitempty"`
}
