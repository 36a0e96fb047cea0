// Command cscdqm-log views and analyzes CSC monitor trace files.
//
// Trace files are written by cscdqm-monitor with the -trace flag.
//
// Usage:
//
//	cscdqm-log <command> [flags] <file.clog>
//
// Commands:
//
//	view     View trace in human-readable format
//	export   Export trace to JSONL or CSV format
//	filter   Filter trace and write to new file
//	stats    Show statistics about the trace
//
// Examples:
//
//	# View all refreshes
//	cscdqm-log view -category refresh monitor.clog
//
//	# Export periodic refreshes of run 42 to JSONL
//	cscdqm-log export -trigger periodic -run 42 monitor.clog
//
//	# Keep one session
//	cscdqm-log filter -session 3f2a9c10-... -o session.clog monitor.clog
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/csc-dqm/cscdqm-go/cmd/cscdqm-log/commands"
	"github.com/csc-dqm/cscdqm-go/pkg/log"
)

const usage = `cscdqm-log - CSC Monitor Trace Analyzer

Usage:
  cscdqm-log <command> [flags] <file.clog>

Commands:
  view     View trace in human-readable format
  export   Export trace to JSONL or CSV format
  filter   Filter trace and write to new file
  stats    Show statistics about the trace

Use "cscdqm-log <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "view":
		runView(args)
	case "export":
		runExport(args)
	case "filter":
		runFilter(args)
	case "stats":
		runStats(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

// filterFlags registers the shared filter flags on fs.
func filterFlags(fs *flag.FlagSet) *commands.FilterOptions {
	opts := &commands.FilterOptions{}
	fs.StringVar(&opts.Session, "session", "", "Filter by session ID")
	fs.StringVar(&opts.Category, "category", "", "Filter by category (booking, refresh, boundary, config, error)")
	fs.StringVar(&opts.Trigger, "trigger", "", "Filter refreshes by trigger (run-end, lumi-begin, periodic)")
	fs.StringVar(&opts.Run, "run", "", "Filter by run number")
	fs.StringVar(&opts.TimeStart, "time-start", "", "Filter events after time (RFC3339)")
	fs.StringVar(&opts.TimeEnd, "time-end", "", "Filter events before time (RFC3339)")
	return opts
}

// parseArgs parses args, requires the trace path and builds the filter.
func parseArgs(fs *flag.FlagSet, opts *commands.FilterOptions, args []string) (string, log.Filter) {
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: trace file path required")
		fs.Usage()
		os.Exit(1)
	}

	var filter log.Filter
	if opts != nil {
		var err error
		filter, err = opts.Build()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	return fs.Arg(0), filter
}

func setUsage(fs *flag.FlagSet, header string) {
	fs.Usage = func() {
		fmt.Fprint(os.Stderr, header)
		fmt.Fprintln(os.Stderr, "\nFlags:")
		fs.PrintDefaults()
	}
}

func runView(args []string) {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	setUsage(fs, `cscdqm-log view - View trace in human-readable format

Usage:
  cscdqm-log view [flags] <file.clog>
`)
	opts := filterFlags(fs)
	path, filter := parseArgs(fs, opts, args)

	if err := commands.RunView(path, filter, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	setUsage(fs, `cscdqm-log export - Export trace to JSONL or CSV format

Usage:
  cscdqm-log export [flags] <file.clog>
`)
	format := fs.String("format", "jsonl", "Output format (jsonl, csv)")
	output := fs.String("o", "", "Output file (default: stdout)")
	opts := filterFlags(fs)
	path, filter := parseArgs(fs, opts, args)

	if err := commands.RunExport(path, filter, *format, *output); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runFilter(args []string) {
	fs := flag.NewFlagSet("filter", flag.ExitOnError)
	setUsage(fs, `cscdqm-log filter - Filter trace and write to new file

Usage:
  cscdqm-log filter [flags] -o <output.clog> <file.clog>
`)
	output := fs.String("o", "", "Output file (required)")
	opts := filterFlags(fs)
	path, filter := parseArgs(fs, opts, args)

	if *output == "" {
		fmt.Fprintln(os.Stderr, "Error: output file (-o) required")
		fs.Usage()
		os.Exit(1)
	}

	n, err := commands.RunFilter(path, filter, *output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Filtered %d events to %s\n", n, *output)
}

func runStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	setUsage(fs, `cscdqm-log stats - Show statistics about the trace

Usage:
  cscdqm-log stats <file.clog>
`)
	path, _ := parseArgs(fs, nil, args)

	if err := commands.RunStats(path, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
