// Package interactive provides the inspection shell of cscdqm-monitor.
package interactive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/csc-dqm/cscdqm-go/pkg/address"
	"github.com/csc-dqm/cscdqm-go/pkg/mask"
	"github.com/csc-dqm/cscdqm-go/pkg/monitor"
	"github.com/csc-dqm/cscdqm-go/pkg/resolve"
	"github.com/csc-dqm/cscdqm-go/pkg/store"
)

// Shell inspects a monitor after (or between) replays.
type Shell struct {
	mod      *monitor.Module
	bins     *store.Memory
	crates   resolve.CrateMap
	resolver *resolve.Resolver
}

// New creates a shell over mod, whose bins live in mem.
func New(mod *monitor.Module, mem *store.Memory, crates resolve.CrateMap) *Shell {
	return &Shell{
		mod:      mod,
		bins:     mem,
		crates:   crates,
		resolver: mod.Resolver(),
	}
}

// Run reads commands until exit, EOF or ctx is done.
func (s *Shell) Run(ctx context.Context) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "cscdqm> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	out := rl.Stdout()
	s.printHelp(out)

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			return nil
		}
		if s.Execute(line, out) {
			return nil
		}
	}
}

// Execute runs one command line, writing its output to w. It reports
// whether the shell should exit.
func (s *Shell) Execute(line string, w io.Writer) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return false
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		s.printHelp(w)
	case "label", "l":
		s.cmdLabel(w, args)
	case "mask", "m":
		s.cmdMask(w, args)
	case "excluded", "x":
		s.cmdExcluded(w, args)
	case "resolve", "r":
		s.cmdResolve(w, args)
	case "geometry", "g":
		s.cmdGeometry(w, args)
	case "stats", "s":
		s.cmdStats(w)
	case "summary":
		s.cmdSummary(w)
	case "bins", "b":
		s.cmdBins(w, args)
	case "quit", "exit", "q":
		return true
	default:
		fmt.Fprintf(w, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return false
}

func (s *Shell) printHelp(w io.Writer) {
	fmt.Fprint(w, `
Commands:
  label <address>        Print the bin label of an address
  mask <rule>            Add a mask rule
  excluded <address>     Check whether an address is masked
  resolve <crate> <slot> Resolve a readout position
  geometry [station]     Show ring, chamber and element counts
  stats                  Show monitor counters
  summary                Show reportSummary and per-station fractions
  bins [prefix]          List booked bins
  help                   Show this help
  exit                   Leave the shell

Addresses use the mask rule syntax, e.g. "1,2,1,17" or "side=2,station=1".
`)
}

func (s *Shell) cmdLabel(w io.Writer, args []string) {
	a, ok := parseAddress(w, args)
	if !ok {
		return
	}
	fmt.Fprintf(w, "%s  (%s)\n", a.Label(), a.String())
}

func (s *Shell) cmdMask(w io.Writer, args []string) {
	a, ok := parseAddress(w, args)
	if !ok {
		return
	}
	s.mod.Masks().Add(a)
	fmt.Fprintf(w, "Masked %s (%d rules)\n", a.String(), s.mod.Masks().Len())
	if s.mod.Ready() {
		fmt.Fprintln(w, "Note: bins already booked, the rule applies to hits from now on")
	}
}

func (s *Shell) cmdExcluded(w io.Writer, args []string) {
	a, ok := parseAddress(w, args)
	if !ok {
		return
	}
	if s.mod.Masks().IsExcluded(a) {
		fmt.Fprintf(w, "%s is masked\n", a.Label())
	} else {
		fmt.Fprintf(w, "%s is not masked\n", a.Label())
	}
}

func (s *Shell) cmdResolve(w io.Writer, args []string) {
	if len(args) != 2 {
		fmt.Fprintln(w, "Usage: resolve <crate> <slot>")
		return
	}
	crate, err1 := strconv.Atoi(args[0])
	slot, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil {
		fmt.Fprintln(w, "Error: crate and slot must be integers")
		return
	}

	typ, pos := s.resolver.Resolve(crate, slot, s.crates)
	if typ == resolve.UnknownType {
		fmt.Fprintf(w, "crate %d slot %d: unmapped\n", crate, slot)
		return
	}
	id, _ := s.resolver.Chamber(crate, slot, s.crates)
	fmt.Fprintf(w, "crate %d slot %d: %s type %d chamber %d  %s\n",
		crate, slot, s.resolver.Types().Label(typ), typ, pos, id.Address().Label())
}

func (s *Shell) cmdGeometry(w io.Writer, args []string) {
	stations := []int{1, 2, 3, 4}
	if len(args) > 0 {
		st, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Fprintf(w, "Error: invalid station %q\n", args[0])
			return
		}
		stations = []int{st}
	}

	for _, st := range stations {
		rings, err := address.RingCount(st)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return
		}
		for ring := 1; ring <= rings; ring++ {
			chambers, _ := address.ChamberCount(st, ring)
			elements, _ := address.ElementCount(st, ring)
			fmt.Fprintf(w, "ME%d/%d: %2d chambers, %d layers, %d elements\n",
				st, ring, chambers, address.LayerCount, elements)
		}
	}
	fmt.Fprintf(w, "Total: %d chambers\n", len(address.Chambers()))
}

func (s *Shell) cmdStats(w io.Writer) {
	st := s.mod.Stats()
	fmt.Fprintf(w, "Session:         %s\n", s.mod.SessionID())
	fmt.Fprintf(w, "Events:          %d\n", st.Events)
	fmt.Fprintf(w, "Readouts:        %d\n", st.Readouts)
	fmt.Fprintf(w, "Unmapped:        %d\n", st.Unmapped)
	fmt.Fprintf(w, "Masked readouts: %d\n", st.MaskedReadouts)
	fmt.Fprintf(w, "Masked hits:     %d\n", st.MaskedHits)
	fmt.Fprintf(w, "DDUs:            %d\n", st.DDUs)
	fmt.Fprintf(w, "Mask rules:      %d\n", s.mod.Masks().Len())
	if b := s.mod.Bins(); b != nil {
		fmt.Fprintf(w, "Bins:            %d\n", b.Created())
	}
}

func (s *Shell) cmdSummary(w io.Writer) {
	if !s.mod.Ready() {
		fmt.Fprintln(w, "No bins booked yet")
		return
	}
	root := s.mod.Config().Root()
	c, ok := s.bins.LookupCounter(store.Join(root, monitor.FolderEventInfo, "reportSummary"))
	if !ok {
		fmt.Fprintln(w, "reportSummary not booked")
		return
	}
	fmt.Fprintf(w, "reportSummary: %s\n", formatFraction(c.Value()))

	for _, side := range []int{address.SidePlus, address.SideMinus} {
		for st := 1; st <= address.StationCount; st++ {
			label := address.New().WithSide(side).WithStation(st).Label()
			if c, ok := s.bins.LookupCounter(store.Join(root, monitor.FolderContents, label)); ok {
				fmt.Fprintf(w, "  %-28s %s\n", label, formatFraction(c.Value()))
			}
		}
	}
}

func (s *Shell) cmdBins(w io.Writer, args []string) {
	prefix := ""
	if len(args) > 0 {
		prefix = args[0]
	}
	n := 0
	for _, name := range s.bins.Names() {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		fmt.Fprintln(w, name)
		n++
	}
	fmt.Fprintf(w, "%d bins\n", n)
}

// parseAddress parses the command arguments as a mask-rule style address.
func parseAddress(w io.Writer, args []string) (address.Address, bool) {
	if len(args) == 0 {
		fmt.Fprintln(w, "Error: address required")
		return address.Address{}, false
	}
	a, err := mask.ParseRule(strings.Join(args, ""))
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return address.Address{}, false
	}
	return a, true
}

func formatFraction(v float64) string {
	if v < 0 {
		return "n/a (all masked)"
	}
	return fmt.Sprintf("%.4f", v)
}
