// Package commands implements the cscdqm-log CLI commands.
package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/csc-dqm/cscdqm-go/pkg/log"
)

const timeLayout = "2006-01-02T15:04:05.000000Z"

// RunView prints the events of path matching filter in human-readable form.
func RunView(path string, filter log.Filter, w io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(w, event)
	}
}

// formatEvent writes one event: a header line, indented details and a
// blank line.
func formatEvent(w io.Writer, event log.Event) {
	ts := event.Timestamp.UTC().Format(timeLayout)
	fmt.Fprintf(w, "%s [%s] %-8s %s\n", ts, shortenSessionID(event.SessionID), event.Category.String(), position(event))

	switch {
	case event.Booking != nil:
		b := event.Booking
		fmt.Fprintf(w, "  Tier: %s", b.Tier.String())
		if b.Tier == log.TierDDU {
			fmt.Fprintf(w, "  DDU: %d", b.DDU)
		}
		fmt.Fprintln(w)
		fmt.Fprintf(w, "  Bins: %d\n", b.Bins)
		if b.Chambers > 0 {
			fmt.Fprintf(w, "  Chambers: %d\n", b.Chambers)
		}
	case event.Refresh != nil:
		r := event.Refresh
		fmt.Fprintf(w, "  Trigger: %s\n", r.Trigger)
		fmt.Fprintf(w, "  reportSummary: %s (%d/%d chambers)\n", formatFraction(r.ReportSummary), r.Reporting, r.Unmasked)
		if r.Duration > 0 {
			fmt.Fprintf(w, "  Took: %s\n", r.Duration)
		}
	case event.Boundary != nil:
		fmt.Fprintf(w, "  %s", event.Boundary.Kind.String())
		if event.Boundary.Refreshed {
			fmt.Fprint(w, " (refreshed)")
		}
		fmt.Fprintln(w)
	case event.Config != nil:
		c := event.Config
		fmt.Fprintf(w, "  Triggers: %s  Frequency: %d\n", c.Triggers, c.Frequency)
		fmt.Fprintf(w, "  Masks: %d/%d accepted  Definitions: %d\n", c.MasksAccepted, c.MasksTotal, c.Definitions)
		for _, p := range c.Problems {
			fmt.Fprintf(w, "  Problem: %s\n", p)
		}
	case event.Error != nil:
		fmt.Fprintf(w, "  %s: %s\n", event.Error.Source, event.Error.Message)
		if event.Error.Context != "" {
			fmt.Fprintf(w, "  Input: %q\n", event.Error.Context)
		}
	}

	fmt.Fprintln(w)
}

// shortenSessionID returns the first 8 characters of a session ID.
func shortenSessionID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

// position renders run, lumi block and event count, omitting unknown parts.
func position(event log.Event) string {
	var parts []string
	if event.Monitor != "" {
		parts = append(parts, event.Monitor)
	}
	if event.Run != 0 {
		parts = append(parts, fmt.Sprintf("run %d", event.Run))
	}
	if event.LumiBlock != 0 {
		parts = append(parts, fmt.Sprintf("lumi %d", event.LumiBlock))
	}
	parts = append(parts, fmt.Sprintf("events %d", event.EventCount))
	return strings.Join(parts, " ")
}

func formatFraction(v float64) string {
	if v < 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.4f", v)
}
