// Package main is the entry point for the treewalk document explorer.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tpoulsen/rose-tree/internal/explorer"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	app, err := explorer.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	// Restore the terminal on SIGINT/SIGTERM; tcell owns the tty while the
	// explorer runs.
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		os.Exit(1)
	}()

	if err := app.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() explorer.Options {
	var opts explorer.Options
	var debounceMS int
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.LogFile, "log-file", "", "Write logs to this file")
	flag.StringVar(&opts.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.BoolVar(&opts.ReadOnly, "readonly", false, "Disable editing operations")
	flag.BoolVar(&opts.ReadOnly, "R", false, "Disable editing operations (shorthand)")
	flag.BoolVar(&opts.NoWatch, "no-watch", false, "Disable live reload on document changes")
	flag.IntVar(&debounceMS, "debounce", 0, "Reload debounce in milliseconds (0 = default)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Treewalk - interactive rose tree explorer for structured documents\n\n")
		fmt.Fprintf(os.Stderr, "Usage: treewalk [options] <document>\n\n")
		fmt.Fprintf(os.Stderr, "Supported formats: TOML, YAML, JSON, Lua\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nKeys:\n")
		fmt.Fprintf(os.Stderr, "  h/l or arrows  ascend / first child\n")
		fmt.Fprintf(os.Stderr, "  j/k            next / previous sibling\n")
		fmt.Fprintf(os.Stderr, "  g/G            root / deepest first leaf\n")
		fmt.Fprintf(os.Stderr, "  x              prune focused subtree\n")
		fmt.Fprintf(os.Stderr, "  e              edit focused value\n")
		fmt.Fprintf(os.Stderr, "  i/a o/O        insert sibling / child\n")
		fmt.Fprintf(os.Stderr, "  /              find child by prefix\n")
		fmt.Fprintf(os.Stderr, "  u / Ctrl-R     undo / redo\n")
		fmt.Fprintf(os.Stderr, "  q              quit\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("Treewalk %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	switch opts.LogLevel {
	case "debug", "info", "warn", "error":
		// Valid
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
		os.Exit(1)
	}

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	opts.Path = flag.Arg(0)
	opts.Debounce = time.Duration(debounceMS) * time.Millisecond

	return opts
}
