package schedule

import "strings"

// Trigger is a scope at which derived metrics may be refreshed.
type Trigger uint8

const (
	// TriggerRunEnd refreshes at the end of each run.
	TriggerRunEnd Trigger = iota
	// TriggerLumiBlockBegin refreshes at the start of each lumi block.
	TriggerLumiBlockBegin
	// TriggerPeriodic refreshes every N processed events.
	TriggerPeriodic
)

// String returns the trigger name.
func (t Trigger) String() string {
	switch t {
	case TriggerRunEnd:
		return "RUN_END"
	case TriggerLumiBlockBegin:
		return "LUMI_BEGIN"
	case TriggerPeriodic:
		return "PERIODIC"
	default:
		return "UNKNOWN"
	}
}

// allTriggers lists triggers in key-bit order.
var allTriggers = []Trigger{TriggerRunEnd, TriggerLumiBlockBegin, TriggerPeriodic}

// Triggers is a set of enabled triggers.
type Triggers uint8

// NewTriggers builds a set from individual triggers.
func NewTriggers(triggers ...Trigger) Triggers {
	var s Triggers
	for _, t := range triggers {
		if t <= TriggerPeriodic {
			s |= 1 << t
		}
	}
	return s
}

// TriggersFromKey decodes an update key: bit 0 enables run-end, bit 1
// lumi-block-begin and bit 2 periodic refresh. Higher bits are ignored.
func TriggersFromKey(key uint) Triggers {
	return Triggers(key & 0x7)
}

// Key returns the update key encoding of the set.
func (s Triggers) Key() uint {
	return uint(s)
}

// Has reports whether t is enabled.
func (s Triggers) Has(t Trigger) bool {
	return t <= TriggerPeriodic && s&(1<<t) != 0
}

// List returns the enabled triggers in key-bit order.
func (s Triggers) List() []Trigger {
	var out []Trigger
	for _, t := range allTriggers {
		if s.Has(t) {
			out = append(out, t)
		}
	}
	return out
}

// String returns e.g. "RUN_END|PERIODIC", or "NONE".
func (s Triggers) String() string {
	list := s.List()
	if len(list) == 0 {
		return "NONE"
	}
	names := make([]string, len(list))
	for i, t := range list {
		names[i] = t.String()
	}
	return strings.Join(names, "|")
}
