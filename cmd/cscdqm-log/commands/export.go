package commands

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/sugawarayuuta/sonnet"

	"github.com/csc-dqm/cscdqm-go/pkg/log"
)

// exportRecord is the flat JSON form of an event.
type exportRecord struct {
	Timestamp     string   `json:"timestamp"`
	Session       string   `json:"session"`
	Monitor       string   `json:"monitor,omitempty"`
	Category      string   `json:"category"`
	Run           uint64   `json:"run,omitempty"`
	LumiBlock     uint64   `json:"lumi,omitempty"`
	Events        uint64   `json:"events"`
	Tier          string   `json:"tier,omitempty"`
	DDU           int      `json:"ddu,omitempty"`
	Bins          int      `json:"bins,omitempty"`
	Trigger       string   `json:"trigger,omitempty"`
	ReportSummary *float64 `json:"report_summary,omitempty"`
	Reporting     int      `json:"reporting,omitempty"`
	Unmasked      int      `json:"unmasked,omitempty"`
	Boundary      string   `json:"boundary,omitempty"`
	Problems      []string `json:"problems,omitempty"`
	Error         string   `json:"error,omitempty"`
}

func toExportRecord(e log.Event) exportRecord {
	rec := exportRecord{
		Timestamp: e.Timestamp.UTC().Format(timeLayout),
		Session:   e.SessionID,
		Monitor:   e.Monitor,
		Category:  e.Category.String(),
		Run:       e.Run,
		LumiBlock: e.LumiBlock,
		Events:    e.EventCount,
	}
	switch {
	case e.Booking != nil:
		rec.Tier = e.Booking.Tier.String()
		rec.DDU = e.Booking.DDU
		rec.Bins = e.Booking.Bins
	case e.Refresh != nil:
		v := e.Refresh.ReportSummary
		rec.Trigger = e.Refresh.Trigger
		rec.ReportSummary = &v
		rec.Reporting = e.Refresh.Reporting
		rec.Unmasked = e.Refresh.Unmasked
	case e.Boundary != nil:
		rec.Boundary = e.Boundary.Kind.String()
	case e.Config != nil:
		rec.Problems = e.Config.Problems
	case e.Error != nil:
		rec.Error = e.Error.Source + ": " + e.Error.Message
	}
	return rec
}

// RunExport writes the events of path matching filter to output ("" for
// stdout) in format jsonl or csv.
func RunExport(path string, filter log.Filter, format, output string) error {
	var write func(*log.Reader, io.Writer) error
	switch format {
	case "jsonl":
		write = exportJSONL
	case "csv":
		write = exportCSV
	default:
		return fmt.Errorf("unknown format: %s (supported: jsonl, csv)", format)
	}

	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}
	return write(reader, w)
}

func exportJSONL(reader *log.Reader, w io.Writer) error {
	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		line, err := sonnet.Marshal(toExportRecord(event))
		if err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
		if _, err := w.Write(append(line, '\n')); err != nil {
			return err
		}
	}
}

func exportCSV(reader *log.Reader, w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"timestamp", "session", "category", "run", "lumi", "events", "trigger", "report_summary"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		var trigger, summary string
		if event.Refresh != nil {
			trigger = event.Refresh.Trigger
			summary = strconv.FormatFloat(event.Refresh.ReportSummary, 'g', -1, 64)
		}
		row := []string{
			event.Timestamp.UTC().Format(timeLayout),
			event.SessionID,
			event.Category.String(),
			strconv.FormatUint(event.Run, 10),
			strconv.FormatUint(event.LumiBlock, 10),
			strconv.FormatUint(event.EventCount, 10),
			trigger,
			summary,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
