package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes trace events to an slog.Logger at Debug level.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter returns an adapter writing to logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("session", event.SessionID),
		slog.String("category", event.Category.String()),
	}
	if event.Monitor != "" {
		attrs = append(attrs, slog.String("monitor", event.Monitor))
	}
	if event.Run != 0 {
		attrs = append(attrs, slog.Uint64("run", event.Run))
	}
	if event.LumiBlock != 0 {
		attrs = append(attrs, slog.Uint64("lumi", event.LumiBlock))
	}
	attrs = append(attrs, slog.Uint64("events", event.EventCount))

	switch {
	case event.Booking != nil:
		attrs = append(attrs,
			slog.String("tier", event.Booking.Tier.String()),
			slog.Int("bins", event.Booking.Bins),
		)
		if event.Booking.Tier == TierDDU {
			attrs = append(attrs, slog.Int("ddu", event.Booking.DDU))
		}
	case event.Refresh != nil:
		attrs = append(attrs,
			slog.String("trigger", event.Refresh.Trigger),
			slog.Float64("report_summary", event.Refresh.ReportSummary),
			slog.Int("reporting", event.Refresh.Reporting),
			slog.Int("unmasked", event.Refresh.Unmasked),
		)
		if event.Refresh.Duration > 0 {
			attrs = append(attrs, slog.Duration("took", event.Refresh.Duration))
		}
	case event.Boundary != nil:
		attrs = append(attrs,
			slog.String("boundary", event.Boundary.Kind.String()),
			slog.Bool("refreshed", event.Boundary.Refreshed),
		)
	case event.Config != nil:
		attrs = append(attrs,
			slog.String("triggers", event.Config.Triggers),
			slog.Int("frequency", event.Config.Frequency),
			slog.Int("masks_accepted", event.Config.MasksAccepted),
			slog.Int("masks_total", event.Config.MasksTotal),
			slog.Int("definitions", event.Config.Definitions),
		)
		if len(event.Config.Problems) > 0 {
			attrs = append(attrs, slog.Any("problems", event.Config.Problems))
		}
	case event.Error != nil:
		attrs = append(attrs,
			slog.String("source", event.Error.Source),
			slog.String("error", event.Error.Message),
		)
		if event.Error.Context != "" {
			attrs = append(attrs, slog.String("context", event.Error.Context))
		}
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "trace", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
