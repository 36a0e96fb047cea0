package commands

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/csc-dqm/cscdqm-go/pkg/log"
)

var traceStart = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func createTestLogFile(t *testing.T, events []log.Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.clog")

	logger, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	for _, e := range events {
		logger.Log(e)
	}
	logger.Close()

	return path
}

// sampleTrace is a short session: configuration, booking, a run with one
// periodic refresh and a run-end refresh, plus a mask error.
func sampleTrace() []log.Event {
	const session = "5d0c7e3a-1b2f-4c61-9a0e-2f4b8d6c1a77"
	at := func(s int) time.Time { return traceStart.Add(time.Duration(s) * time.Second) }
	return []log.Event{
		{
			Timestamp: at(0), SessionID: session, Monitor: "CSC", Category: log.CategoryError,
			Error: &log.ErrorEventData{Source: "mask", Message: "invalid rule", Context: "CSC_ME_+5"},
		},
		{
			Timestamp: at(0), SessionID: session, Monitor: "CSC", Category: log.CategoryConfig,
			Config: &log.ConfigEvent{Triggers: "RUN_END|PERIODIC", Frequency: 100, MasksAccepted: 2, MasksTotal: 3, Definitions: 8},
		},
		{
			Timestamp: at(1), SessionID: session, Monitor: "CSC", Category: log.CategoryBoundary, Run: 42,
			Boundary: &log.BoundaryEvent{Kind: log.BoundaryRunBegin},
		},
		{
			Timestamp: at(2), SessionID: session, Monitor: "CSC", Category: log.CategoryBooking, Run: 42, EventCount: 1,
			Booking: &log.BookingEvent{Tier: log.TierEMU, Bins: 582, Chambers: 540},
		},
		{
			Timestamp: at(2), SessionID: session, Monitor: "CSC", Category: log.CategoryBooking, Run: 42, EventCount: 1,
			Booking: &log.BookingEvent{Tier: log.TierDDU, DDU: 750, Bins: 3},
		},
		{
			Timestamp: at(5), SessionID: session, Monitor: "CSC", Category: log.CategoryRefresh, Run: 42, LumiBlock: 1, EventCount: 100,
			Refresh: &log.RefreshEvent{Trigger: "PERIODIC", ReportSummary: 0.25, Reporting: 135, Unmasked: 540},
		},
		{
			Timestamp: at(9), SessionID: session, Monitor: "CSC", Category: log.CategoryRefresh, Run: 42, LumiBlock: 2, EventCount: 180,
			Refresh: &log.RefreshEvent{Trigger: "RUN_END", ReportSummary: 0.5, Reporting: 270, Unmasked: 540},
		},
		{
			Timestamp: at(9), SessionID: session, Monitor: "CSC", Category: log.CategoryBoundary, Run: 42, LumiBlock: 2, EventCount: 180,
			Boundary: &log.BoundaryEvent{Kind: log.BoundaryRunEnd, Refreshed: true},
		},
	}
}
