// Package schedule decides when derived monitor metrics are refreshed.
//
// Refresh can be tied to three scopes, each enabled independently:
//
//   - run end: once per OnRunEnd call
//   - lumi-block begin: once per OnLumiBlockBegin call
//   - periodic: every N processed events, counted by OnEvent
//
// Each callback consults exactly one trigger, so a single callback never
// refreshes twice. The scheduler does not track whether a refresh changed
// anything.
//
// The scheduler is driven by a single-threaded event source and is not safe
// for concurrent use.
package schedule

import (
	"errors"
	"fmt"
	"log/slog"
)

// ErrInvalidFrequency is reported when the periodic frequency is not positive.
var ErrInvalidFrequency = errors.New("invalid periodic refresh frequency")

// Refresher recomputes derived metrics.
type Refresher interface {
	Refresh(trigger Trigger)
}

// RefresherFunc adapts a function to the Refresher interface.
type RefresherFunc func(trigger Trigger)

// Refresh calls f(trigger).
func (f RefresherFunc) Refresh(trigger Trigger) {
	f(trigger)
}

// Scheduler tracks the processed-event count and fires refreshes.
type Scheduler struct {
	triggers  Triggers
	frequency int
	refresher Refresher
	logger    *slog.Logger

	events    uint64
	refreshes [TriggerPeriodic + 1]uint64
}

// New creates a scheduler. A frequency of zero or less disables the periodic
// trigger regardless of triggers; FrequencyError reports it.
func New(triggers Triggers, frequency int, refresher Refresher) *Scheduler {
	return &Scheduler{
		triggers:  triggers,
		frequency: frequency,
		refresher: refresher,
	}
}

// SetLogger sets the logger for refresh decisions. Nil disables logging.
func (s *Scheduler) SetLogger(logger *slog.Logger) {
	s.logger = logger
}

// Triggers returns the configured trigger set.
func (s *Scheduler) Triggers() Triggers {
	return s.triggers
}

// Frequency returns the configured periodic frequency.
func (s *Scheduler) Frequency() int {
	return s.frequency
}

// FrequencyError returns ErrInvalidFrequency (wrapped) if the configured
// frequency cannot drive the periodic trigger, nil otherwise.
func (s *Scheduler) FrequencyError() error {
	if s.frequency <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidFrequency, s.frequency)
	}
	return nil
}

// PeriodicEnabled reports whether the periodic trigger can fire.
func (s *Scheduler) PeriodicEnabled() bool {
	return s.triggers.Has(TriggerPeriodic) && s.frequency > 0
}

// Events returns the number of events counted so far.
func (s *Scheduler) Events() uint64 {
	return s.events
}

// Refreshes returns how many times trigger t has fired.
func (s *Scheduler) Refreshes(t Trigger) uint64 {
	if t > TriggerPeriodic {
		return 0
	}
	return s.refreshes[t]
}

// OnEvent counts one processed event and refreshes when the periodic trigger
// is enabled and the new count is a multiple of the frequency. It reports
// whether a refresh fired.
func (s *Scheduler) OnEvent() bool {
	s.events++
	if !s.PeriodicEnabled() {
		return false
	}
	if s.events%uint64(s.frequency) != 0 {
		return false
	}
	s.fire(TriggerPeriodic)
	return true
}

// OnLumiBlockBegin refreshes when the lumi-block trigger is enabled,
// independent of the event count.
func (s *Scheduler) OnLumiBlockBegin() bool {
	if !s.triggers.Has(TriggerLumiBlockBegin) {
		return false
	}
	s.fire(TriggerLumiBlockBegin)
	return true
}

// OnRunEnd refreshes when the run-end trigger is enabled.
func (s *Scheduler) OnRunEnd() bool {
	if !s.triggers.Has(TriggerRunEnd) {
		return false
	}
	s.fire(TriggerRunEnd)
	return true
}

func (s *Scheduler) fire(t Trigger) {
	s.refreshes[t]++
	if s.logger != nil {
		s.logger.Debug("refresh", "trigger", t.String(), "events", s.events)
	}
	if s.refresher != nil {
		s.refresher.Refresh(t)
	}
}
