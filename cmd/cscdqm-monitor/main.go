// Command cscdqm-monitor runs the CSC data-quality monitor over recorded or
// synthetic events and reports the summary fractions.
//
// Usage:
//
//	cscdqm-monitor [flags]
//
// Flags:
//
//	-config string      Configuration file (YAML)
//	-crate-map string   Crate map file (YAML); default maps every chamber
//	-events string      Event stream to replay; default generates events
//	-generate int       Number of synthetic events (default 1000)
//	-run uint           Run number of synthetic events (default 1)
//	-lumi-length int    Synthetic events per lumi block (default 100)
//	-occupancy float    Synthetic readout probability per slot (default 0.2)
//	-seed uint          Seed for synthetic events
//	-record string      Write the replayed events to a stream file
//	-trace string       Write trace events to a .clog file
//	-log-level string   Log level: debug, info, warn, error (default "info")
//	-interactive        Open the inspection shell after the replay
//
// Examples:
//
//	# Synthetic run with periodic refresh every 100 events
//	cscdqm-monitor -config monitor.yaml -generate 5000 -trace monitor.clog
//
//	# Replay a recorded stream and inspect the result
//	cscdqm-monitor -events run42.cev -crate-map crates.yaml -interactive
package main

import (
	"context"
	"flag"
	"fmt"
	stdlog "log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/csc-dqm/cscdqm-go/cmd/cscdqm-monitor/interactive"
	"github.com/csc-dqm/cscdqm-go/pkg/config"
	"github.com/csc-dqm/cscdqm-go/pkg/log"
	"github.com/csc-dqm/cscdqm-go/pkg/monitor"
	"github.com/csc-dqm/cscdqm-go/pkg/replay"
	"github.com/csc-dqm/cscdqm-go/pkg/resolve"
	"github.com/csc-dqm/cscdqm-go/pkg/store"
)

// slotsPerCrate is the slot count of the default crate map.
const slotsPerCrate = 9

// Flags holds the command-line settings.
type Flags struct {
	ConfigFile  string
	CrateMap    string
	Events      string
	Generate    int
	Run         uint64
	LumiLength  int
	Occupancy   float64
	Seed        uint64
	Record      string
	Trace       string
	LogLevel    string
	Interactive bool
}

var flags Flags

func init() {
	flag.StringVar(&flags.ConfigFile, "config", "", "Configuration file (YAML)")
	flag.StringVar(&flags.CrateMap, "crate-map", "", "Crate map file (YAML); default maps every chamber")
	flag.StringVar(&flags.Events, "events", "", "Event stream to replay; default generates events")
	flag.IntVar(&flags.Generate, "generate", 1000, "Number of synthetic events")
	flag.Uint64Var(&flags.Run, "run", 1, "Run number of synthetic events")
	flag.IntVar(&flags.LumiLength, "lumi-length", 100, "Synthetic events per lumi block")
	flag.Float64Var(&flags.Occupancy, "occupancy", 0.2, "Synthetic readout probability per slot")
	flag.Uint64Var(&flags.Seed, "seed", 0, "Seed for synthetic events")
	flag.StringVar(&flags.Record, "record", "", "Write the replayed events to a stream file")
	flag.StringVar(&flags.Trace, "trace", "", "Write trace events to a .clog file")
	flag.StringVar(&flags.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flag.BoolVar(&flags.Interactive, "interactive", false, "Open the inspection shell after the replay")
}

func main() {
	flag.Parse()
	stdlog.SetFlags(stdlog.Ltime | stdlog.Lmicroseconds)

	if err := run(); err != nil {
		stdlog.Fatal(err)
	}
}

// run executes one monitor session. Errors are returned rather than fatal
// so deferred closers flush the trace and event files.
func run() error {
	logger, err := newLogger(flags.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	cfg := config.Default()
	if flags.ConfigFile != "" {
		if cfg, err = config.Load(flags.ConfigFile); err != nil {
			return fmt.Errorf("load configuration: %w", err)
		}
	}

	crates := resolve.FullCrateMap(slotsPerCrate)
	if flags.CrateMap != "" {
		if crates, err = resolve.LoadCrateMap(flags.CrateMap); err != nil {
			return fmt.Errorf("load crate map: %w", err)
		}
	}

	trace, closeTrace, err := newTrace(flags.Trace, logger)
	if err != nil {
		return fmt.Errorf("open trace: %w", err)
	}
	defer closeTrace()

	mem := store.NewMemory()
	mod, err := monitor.New(cfg, monitor.Options{
		Store:  mem,
		Trace:  trace,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("create monitor: %w", err)
	}

	stdlog.Println("CSC Data Quality Monitor")
	stdlog.Println("========================")
	stdlog.Printf("Monitor: %s  Session: %s", cfg.Root(), mod.SessionID())
	stdlog.Printf("Triggers: %s  Frequency: %d", cfg.Triggers(), cfg.FractUpdateEventFreq)
	stdlog.Printf("Mask rules: %d/%d  Crate slots: %d", mod.Masks().Len(), len(cfg.AddressMask), len(crates))

	src, closeSrc, err := openSource(crates)
	if err != nil {
		return fmt.Errorf("open events: %w", err)
	}
	defer closeSrc()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	res, err := replay.Run(ctx, src, mod, crates)
	if err != nil {
		stdlog.Printf("Replay stopped: %v", err)
	}
	printSummary(mod, mem, res)

	if flags.Interactive {
		if err := interactive.New(mod, mem, crates).Run(ctx); err != nil {
			stdlog.Printf("Shell error: %v", err)
		}
	}
	return nil
}

func newLogger(level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})), nil
}

// newTrace combines the optional trace file with debug-level slog output.
func newTrace(path string, logger *slog.Logger) (log.Logger, func(), error) {
	var file *log.FileLogger
	if path != "" {
		var err error
		if file, err = log.NewFileLogger(path); err != nil {
			return nil, nil, err
		}
	}

	var loggers []log.Logger
	if file != nil {
		loggers = append(loggers, file)
	}
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		loggers = append(loggers, log.NewSlogAdapter(logger))
	}

	closeFn := func() {
		if file == nil {
			return
		}
		if err := file.Close(); err != nil {
			stdlog.Printf("Error closing trace: %v", err)
			return
		}
		stdlog.Printf("Wrote %d trace events to %s", file.Written(), file.Path())
	}
	return log.NewMultiLogger(loggers...), closeFn, nil
}

// openSource returns the replay source selected by the flags, optionally
// recording every event it yields.
func openSource(crates resolve.StaticCrateMap) (replay.Source, func(), error) {
	var (
		src     replay.Source
		closers []func() error
	)

	if flags.Events != "" {
		r, err := replay.Open(flags.Events)
		if err != nil {
			return nil, nil, err
		}
		src = r
		closers = append(closers, r.Close)
	} else {
		src = replay.NewGenerator(replay.GeneratorConfig{
			Run:           flags.Run,
			Events:        flags.Generate,
			EventsPerLumi: flags.LumiLength,
			Occupancy:     flags.Occupancy,
			DDUBase:       750,
			Seed:          flags.Seed,
		}, crates)
	}

	if flags.Record != "" {
		f, err := os.Create(flags.Record)
		if err != nil {
			for _, c := range closers {
				_ = c()
			}
			return nil, nil, err
		}
		src = replay.Tee(src, replay.NewWriter(f))
		closers = append(closers, f.Close)
	}

	return src, func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				stdlog.Printf("Error closing events: %v", err)
			}
		}
	}, nil
}

func printSummary(mod *monitor.Module, mem *store.Memory, res replay.Result) {
	st := mod.Stats()
	stdlog.Printf("Processed %d events in %d runs, %d lumi blocks", res.Events, res.Runs, res.LumiBlocks)
	stdlog.Printf("Readouts: %d  Unmapped: %d  Masked: %d readouts, %d hits  DDUs: %d",
		st.Readouts, st.Unmapped, st.MaskedReadouts, st.MaskedHits, st.DDUs)

	if !mod.Ready() {
		stdlog.Println("No bins booked")
		return
	}
	name := store.Join(mod.Config().Root(), monitor.FolderEventInfo, "reportSummary")
	if c, ok := mem.LookupCounter(name); ok {
		stdlog.Printf("reportSummary: %.4f  (%d bins)", c.Value(), mod.Bins().Created())
	}
}
