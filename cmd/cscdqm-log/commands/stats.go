package commands

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/csc-dqm/cscdqm-go/pkg/log"
)

// Stats aggregates a trace file.
type Stats struct {
	TotalEvents      int
	EventsByCategory map[log.Category]int
	RefreshByTrigger map[string]int
	Sessions         map[string]*SessionStats
	Errors           int
	TimeRange        struct {
		Start time.Time
		End   time.Time
	}
}

// SessionStats summarizes one Module session.
type SessionStats struct {
	Monitor       string
	FirstSeen     time.Time
	Events        int
	Runs          map[uint64]bool
	Processed     uint64
	DDUs          int
	LastSummary   float64
	HasSummary    bool
	MasksAccepted int
	MasksTotal    int
}

// Collect reads every event of path.
func Collect(path string) (*Stats, error) {
	reader, err := log.NewReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsByCategory: make(map[log.Category]int),
		RefreshByTrigger: make(map[string]int),
		Sessions:         make(map[string]*SessionStats),
	}

	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return stats, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read event: %w", err)
		}
		stats.add(event)
	}
}

func (s *Stats) add(event log.Event) {
	s.TotalEvents++
	s.EventsByCategory[event.Category]++

	if s.TimeRange.Start.IsZero() || event.Timestamp.Before(s.TimeRange.Start) {
		s.TimeRange.Start = event.Timestamp
	}
	if event.Timestamp.After(s.TimeRange.End) {
		s.TimeRange.End = event.Timestamp
	}

	sess, ok := s.Sessions[event.SessionID]
	if !ok {
		sess = &SessionStats{
			Monitor:   event.Monitor,
			FirstSeen: event.Timestamp,
			Runs:      make(map[uint64]bool),
		}
		s.Sessions[event.SessionID] = sess
	}
	sess.Events++
	if event.Run != 0 {
		sess.Runs[event.Run] = true
	}
	if event.EventCount > sess.Processed {
		sess.Processed = event.EventCount
	}

	switch {
	case event.Refresh != nil:
		s.RefreshByTrigger[event.Refresh.Trigger]++
		sess.LastSummary = event.Refresh.ReportSummary
		sess.HasSummary = true
	case event.Booking != nil:
		if event.Booking.Tier == log.TierDDU {
			sess.DDUs++
		}
	case event.Config != nil:
		sess.MasksAccepted = event.Config.MasksAccepted
		sess.MasksTotal = event.Config.MasksTotal
	case event.Error != nil:
		s.Errors++
	}
}

// RunStats prints statistics about path.
func RunStats(path string, w io.Writer) error {
	stats, err := Collect(path)
	if err != nil {
		return err
	}
	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== CSC Monitor Trace Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Second))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Category:")
	for c := log.CategoryBooking; c <= log.CategoryError; c++ {
		if count := stats.EventsByCategory[c]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", c.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	if len(stats.RefreshByTrigger) > 0 {
		fmt.Fprintln(w, "Refreshes by Trigger:")
		for _, tr := range []string{"RUN_END", "LUMI_BEGIN", "PERIODIC"} {
			if count := stats.RefreshByTrigger[tr]; count > 0 {
				fmt.Fprintf(w, "  %-12s %d\n", tr+":", count)
			}
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Sessions: %d\n", len(stats.Sessions))
	ids := make([]string, 0, len(stats.Sessions))
	for id := range stats.Sessions {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return stats.Sessions[ids[i]].FirstSeen.Before(stats.Sessions[ids[j]].FirstSeen)
	})
	for _, id := range ids {
		s := stats.Sessions[id]
		fmt.Fprintf(w, "  [%s] %s: %d trace events, %d processed, %d runs, %d DDUs\n",
			shortenSessionID(id), s.Monitor, s.Events, s.Processed, len(s.Runs), s.DDUs)
		fmt.Fprintf(w, "           Masks: %d/%d\n", s.MasksAccepted, s.MasksTotal)
		if s.HasSummary {
			fmt.Fprintf(w, "           Last reportSummary: %s\n", formatFraction(s.LastSummary))
		}
	}

	if stats.Errors > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Errors: %d\n", stats.Errors)
	}
}
