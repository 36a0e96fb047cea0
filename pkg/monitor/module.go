// Package monitor turns per-event chamber readouts into the summary bins of
// a CSC data-quality monitor.
//
// A Module starts uninitialized. The first OnEvent books every bin into the
// store and returns a *Bins handle; from then on events are aggregated into
// the handle and derived fractions are refreshed on the schedule given by
// the configuration. Run and lumi-block callbacks before the first event
// still advance the schedule but have no bins to refresh.
//
// A Module is driven by a single event source and is not safe for
// concurrent use. The callbacks must be invoked sequentially.
package monitor

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/csc-dqm/cscdqm-go/pkg/booking"
	"github.com/csc-dqm/cscdqm-go/pkg/config"
	"github.com/csc-dqm/cscdqm-go/pkg/log"
	"github.com/csc-dqm/cscdqm-go/pkg/mask"
	"github.com/csc-dqm/cscdqm-go/pkg/resolve"
	"github.com/csc-dqm/cscdqm-go/pkg/schedule"
	"github.com/csc-dqm/cscdqm-go/pkg/store"
)

// ErrNoStore is returned by New when Options.Store is nil.
var ErrNoStore = errors.New("no bin store")

// Options are the collaborators of a Module.
type Options struct {
	// Store receives every bin. Required.
	Store store.Store

	// Booking overrides the collection named by the configuration.
	Booking *booking.Collection

	// Types overrides the chamber type table.
	Types resolve.TypeTable

	// Trace receives trace events. Nil disables tracing.
	Trace log.Logger

	// Logger is the optional logger for debug output.
	Logger *slog.Logger

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// Stats are internal counters that do not appear in the store.
type Stats struct {
	Events         uint64
	Readouts       uint64
	Unmapped       uint64
	MaskedReadouts uint64
	MaskedHits     uint64
	DDUs           int
}

// Module is one monitor instance.
type Module struct {
	cfg      config.Config
	root     string
	store    store.Store
	defs     *booking.Collection
	masks    *mask.Registry
	resolver *resolve.Resolver
	sched    *schedule.Scheduler
	trace    log.Logger
	logger   *slog.Logger
	now      func() time.Time
	session  string

	bins  *Bins
	run   uint64
	lumi  uint64
	stats Stats
}

// New creates a Module. It loads the booking collection and mask rules and
// reports configuration problems, but books nothing. It fails only when the
// store is missing or the booking collection cannot be loaded or is empty.
func New(cfg config.Config, opts Options) (*Module, error) {
	if opts.Store == nil {
		return nil, ErrNoStore
	}

	defs := opts.Booking
	if defs == nil {
		if cfg.BookingFile != "" {
			var err error
			if defs, err = booking.Load(cfg.BookingFile); err != nil {
				return nil, fmt.Errorf("load booking: %w", err)
			}
		} else {
			defs = booking.Default()
		}
	}
	if err := defs.Validate(); err != nil {
		return nil, fmt.Errorf("booking: %w", err)
	}

	m := &Module{
		cfg:      cfg,
		root:     cfg.Root(),
		store:    opts.Store,
		defs:     defs,
		masks:    mask.NewRegistry(),
		resolver: resolve.NewResolver(opts.Types),
		trace:    opts.Trace,
		logger:   opts.Logger,
		now:      opts.Now,
		session:  uuid.NewString(),
	}
	if m.trace == nil {
		m.trace = log.NoopLogger{}
	}
	if m.now == nil {
		m.now = time.Now
	}

	m.sched = schedule.New(cfg.Triggers(), cfg.FractUpdateEventFreq, schedule.RefresherFunc(m.refresh))
	m.sched.SetLogger(opts.Logger)
	m.masks.SetLogger(opts.Logger)

	loaded := m.masks.Load(cfg.AddressMask)
	for _, re := range loaded.Rejected {
		m.emit(log.Event{
			Category: log.CategoryError,
			Error:    &log.ErrorEventData{Source: "mask", Message: re.Err.Error(), Context: re.Rule},
		})
	}

	var problems []string
	for _, err := range cfg.Validate() {
		if m.logger != nil {
			m.logger.Warn("configuration problem", "error", err)
		}
		problems = append(problems, err.Error())
		m.emit(log.Event{
			Category: log.CategoryError,
			Error:    &log.ErrorEventData{Source: "config", Message: err.Error()},
		})
	}

	m.emit(log.Event{
		Category: log.CategoryConfig,
		Config: &log.ConfigEvent{
			Triggers:      cfg.Triggers().String(),
			Frequency:     cfg.FractUpdateEventFreq,
			MasksAccepted: loaded.Accepted,
			MasksTotal:    loaded.Total,
			Definitions:   defs.Len(),
			Problems:      problems,
		},
	})
	if m.logger != nil {
		m.logger.Info("monitor configured",
			"monitor", m.root,
			"session", m.session,
			"masks", fmt.Sprintf("%d/%d", loaded.Accepted, loaded.Total),
			"triggers", cfg.Triggers().String(),
			"frequency", cfg.FractUpdateEventFreq)
	}

	return m, nil
}

// Config returns the configuration the Module was created with.
func (m *Module) Config() config.Config {
	return m.cfg
}

// Examiner returns the options for the external data-format examiner.
func (m *Module) Examiner() config.ExaminerOptions {
	return m.cfg.Examiner
}

// SessionID returns the identifier stamped on every trace event.
func (m *Module) SessionID() string {
	return m.session
}

// Masks returns the mask registry.
func (m *Module) Masks() *mask.Registry {
	return m.masks
}

// Ready reports whether bins have been booked.
func (m *Module) Ready() bool {
	return m.bins != nil
}

// Bins returns the booked bins, nil before the first event.
func (m *Module) Bins() *Bins {
	return m.bins
}

// Stats returns a snapshot of the internal counters.
func (m *Module) Stats() Stats {
	s := m.stats
	if m.bins != nil {
		s.DDUs = len(m.bins.ddus)
	}
	return s
}

// Events returns the number of processed events.
func (m *Module) Events() uint64 {
	return m.sched.Events()
}

// Refreshes returns how often trigger t has fired, including firings that
// found no bins yet.
func (m *Module) Refreshes(t schedule.Trigger) uint64 {
	return m.sched.Refreshes(t)
}

// Resolver returns the type resolver the module classifies chambers with.
func (m *Module) Resolver() *resolve.Resolver {
	return m.resolver
}

// OnRunBegin records the start of a run.
func (m *Module) OnRunBegin(run uint64) {
	m.run = run
	m.lumi = 0
	m.debugLog("run begin", "run", run)
	m.emit(log.Event{
		Category: log.CategoryBoundary,
		Boundary: &log.BoundaryEvent{Kind: log.BoundaryRunBegin},
	})
}

// OnEvent aggregates one event. The first call books all bins.
func (m *Module) OnEvent(ev Event, crates resolve.CrateMap) {
	if m.bins == nil {
		m.bins = m.book()
	}
	if ev.Run != 0 {
		m.run = ev.Run
	}
	if ev.LumiBlock != 0 {
		m.lumi = ev.LumiBlock
	}

	m.stats.Events++
	m.bins.aggregate(ev, crates)
	m.sched.OnEvent()
}

// OnLumiBlockBegin records the start of a lumi block and fires the
// lumi-block trigger if it is enabled. Bins are refreshed only once booked.
func (m *Module) OnLumiBlockBegin(run, lumi uint64) {
	m.run = run
	m.lumi = lumi
	booked := m.bins != nil
	refreshed := m.sched.OnLumiBlockBegin() && booked
	m.debugLog("lumi block begin", "run", run, "lumi", lumi, "refreshed", refreshed)
	m.emit(log.Event{
		Category: log.CategoryBoundary,
		Boundary: &log.BoundaryEvent{Kind: log.BoundaryLumiBlockBegin, Refreshed: refreshed},
	})
}

// OnRunEnd fires the run-end trigger if it is enabled. Bins are refreshed
// only once booked.
func (m *Module) OnRunEnd(run uint64) {
	m.run = run
	booked := m.bins != nil
	refreshed := m.sched.OnRunEnd() && booked
	m.debugLog("run end", "run", run, "refreshed", refreshed)
	m.emit(log.Event{
		Category: log.CategoryBoundary,
		Boundary: &log.BoundaryEvent{Kind: log.BoundaryRunEnd, Refreshed: refreshed},
	})
}

func (m *Module) refresh(trigger schedule.Trigger) {
	if m.bins == nil {
		return
	}
	start := m.now()
	sum := m.bins.refresh()
	took := m.now().Sub(start)

	m.debugLog("refresh", "trigger", trigger.String(), "report_summary", sum.fraction, "took", took)
	m.emit(log.Event{
		Category: log.CategoryRefresh,
		Refresh: &log.RefreshEvent{
			Trigger:       trigger.String(),
			ReportSummary: sum.fraction,
			Reporting:     sum.reporting,
			Unmasked:      sum.unmasked,
			Duration:      took,
		},
	})
}

func (m *Module) emit(e log.Event) {
	e.Timestamp = m.now()
	e.SessionID = m.session
	e.Monitor = m.root
	e.Run = m.run
	e.LumiBlock = m.lumi
	if m.sched != nil {
		e.EventCount = m.sched.Events()
	}
	m.trace.Log(e)
}

func (m *Module) debugLog(msg string, args ...any) {
	if m.logger != nil {
		m.logger.Debug(msg, args...)
	}
}
