package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/csc-dqm/cscdqm-go/pkg/log"
)

// FilterOptions are the command-line filter criteria shared by view, export
// and filter.
type FilterOptions struct {
	Session   string
	Category  string
	Trigger   string
	Run       string
	TimeStart string
	TimeEnd   string
}

// ParseCategoryFlag parses a category name such as "refresh".
func ParseCategoryFlag(s string) (log.Category, error) {
	c, ok := log.ParseCategory(strings.ToUpper(s))
	if !ok {
		return 0, fmt.Errorf("invalid category: %s (use booking, refresh, boundary, config, error)", s)
	}
	return c, nil
}

// ParseTriggerFlag normalizes a trigger name such as "run-end".
func ParseTriggerFlag(s string) (string, error) {
	switch strings.ToLower(strings.ReplaceAll(s, "_", "-")) {
	case "run-end", "runend":
		return "RUN_END", nil
	case "lumi-begin", "lumi", "lumiblock":
		return "LUMI_BEGIN", nil
	case "periodic":
		return "PERIODIC", nil
	default:
		return "", fmt.Errorf("invalid trigger: %s (use run-end, lumi-begin, periodic)", s)
	}
}

// Build converts the options into a log.Filter.
func (o FilterOptions) Build() (log.Filter, error) {
	f := log.Filter{SessionID: o.Session}

	if o.Category != "" {
		c, err := ParseCategoryFlag(o.Category)
		if err != nil {
			return log.Filter{}, err
		}
		f.Category = &c
	}
	if o.Trigger != "" {
		tr, err := ParseTriggerFlag(o.Trigger)
		if err != nil {
			return log.Filter{}, err
		}
		f.Trigger = tr
	}
	if o.Run != "" {
		run, err := strconv.ParseUint(o.Run, 10, 64)
		if err != nil {
			return log.Filter{}, fmt.Errorf("invalid run: %w", err)
		}
		f.Run = &run
	}
	if o.TimeStart != "" {
		t, err := time.Parse(time.RFC3339, o.TimeStart)
		if err != nil {
			return log.Filter{}, fmt.Errorf("invalid time-start format: %w", err)
		}
		f.TimeStart = &t
	}
	if o.TimeEnd != "" {
		t, err := time.Parse(time.RFC3339, o.TimeEnd)
		if err != nil {
			return log.Filter{}, fmt.Errorf("invalid time-end format: %w", err)
		}
		f.TimeEnd = &t
	}
	return f, nil
}
