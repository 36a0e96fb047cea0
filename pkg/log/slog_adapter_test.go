package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
	"time"
)

func newJSONAdapter(buf *bytes.Buffer) *SlogAdapter {
	handler := slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return NewSlogAdapter(slog.New(handler))
}

func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%s)", err, buf.String())
	}
	return entry
}

func TestSlogAdapterRefreshEvent(t *testing.T) {
	var buf bytes.Buffer
	newJSONAdapter(&buf).Log(Event{
		Timestamp:  time.Now(),
		SessionID:  "sess-9",
		Monitor:    "CSC",
		Category:   CategoryRefresh,
		Run:        7,
		EventCount: 100,
		Refresh:    &RefreshEvent{Trigger: "PERIODIC", ReportSummary: 0.5, Reporting: 1, Unmasked: 2},
	})

	entry := decodeEntry(t, &buf)
	checks := map[string]any{
		"msg":            "trace",
		"level":          "DEBUG",
		"session":        "sess-9",
		"category":       "REFRESH",
		"monitor":        "CSC",
		"trigger":        "PERIODIC",
		"report_summary": 0.5,
		"run":            float64(7),
		"events":         float64(100),
	}
	for k, want := range checks {
		if entry[k] != want {
			t.Errorf("%s = %v, want %v", k, entry[k], want)
		}
	}
	if _, ok := entry["lumi"]; ok {
		t.Error("zero lumi block should be omitted")
	}
}

func TestSlogAdapterBookingEvent(t *testing.T) {
	var buf bytes.Buffer
	newJSONAdapter(&buf).Log(Event{
		Category: CategoryBooking,
		Booking:  &BookingEvent{Tier: TierDDU, DDU: 750, Bins: 4},
	})

	entry := decodeEntry(t, &buf)
	if entry["tier"] != "DDU" || entry["ddu"] != float64(750) || entry["bins"] != float64(4) {
		t.Errorf("unexpected entry: %v", entry)
	}
}

func TestSlogAdapterErrorEvent(t *testing.T) {
	var buf bytes.Buffer
	newJSONAdapter(&buf).Log(Event{
		Category: CategoryError,
		Error:    &ErrorEventData{Source: "mask", Message: "bad rule", Context: "x=1"},
	})

	entry := decodeEntry(t, &buf)
	if entry["source"] != "mask" || entry["error"] != "bad rule" || entry["context"] != "x=1" {
		t.Errorf("unexpected entry: %v", entry)
	}
}

func TestSlogAdapterRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})
	NewSlogAdapter(slog.New(handler)).Log(Event{Category: CategoryConfig, Config: &ConfigEvent{}})

	if buf.Len() != 0 {
		t.Errorf("debug trace written at info level: %s", buf.String())
	}
}
