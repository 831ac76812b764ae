// Package main is the entry point for keyedit.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/keyedit/internal/app"
	"github.com/dshills/keyedit/internal/config"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, code, done := parseFlags(args, stdout, stderr)
	if done {
		return code
	}

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	// Ensure cleanup on all exit paths
	defer application.Shutdown()

	// Handle signals for graceful shutdown
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	go func() {
		if _, ok := <-signals; ok {
			application.Shutdown()
		}
	}()

	if err := application.Run(); err != nil {
		if errors.Is(err, app.ErrQuit) {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// parseFlags returns the options, or done with an exit code when the
// program should stop (help, version, bad flags).
func parseFlags(args []string, stdout, stderr io.Writer) (opts app.Options, code int, done bool) {
	fs := flag.NewFlagSet("keyedit", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var showVersion, showHelp, printConfig bool

	fs.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file (.toml, .yaml)")
	fs.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	fs.BoolVar(&opts.Debug, "debug", false, "Enable debug logging")
	fs.BoolVar(&opts.Debug, "d", false, "Enable debug logging (shorthand)")
	fs.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error); overrides the configuration")
	fs.BoolVar(&printConfig, "print-config", false, "Print the effective configuration and exit")
	fs.BoolVar(&showVersion, "version", false, "Show version information")
	fs.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	fs.BoolVar(&showHelp, "help", false, "Show help message")
	fs.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "keyedit - line-oriented text editor\n\n")
		fmt.Fprintf(stderr, "Usage: keyedit [options] [files...]\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nEnvironment:\n")
		for _, name := range config.EnvNames() {
			fmt.Fprintf(stderr, "  %s\n", name)
		}
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  keyedit                     Start with an empty document\n")
		fmt.Fprintf(stderr, "  keyedit notes.txt           Start with notes.txt loaded\n")
		fmt.Fprintf(stderr, "  keyedit -c keyedit.toml     Use a configuration file\n")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return opts, 0, true
		}
		return opts, 2, true
	}

	if showHelp {
		fs.Usage()
		return opts, 0, true
	}

	if showVersion {
		fmt.Fprintf(stdout, "keyedit %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return opts, 0, true
	}

	if opts.LogLevel != "" && !config.ValidLogLevel(opts.LogLevel) {
		fmt.Fprintf(stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
		return opts, 1, true
	}

	if printConfig {
		return opts, printEffectiveConfig(opts, stdout, stderr), true
	}

	// Remaining arguments are files to load
	opts.Files = fs.Args()

	return opts, 0, false
}

// printEffectiveConfig writes the configuration after the file, environment
// and log flags are applied. It uses the config file's format, TOML when
// there is none.
func printEffectiveConfig(opts app.Options, stdout, stderr io.Writer) int {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if opts.LogLevel != "" {
		cfg.Logging.Level = opts.LogLevel
	}
	if opts.Debug {
		cfg.Logging.Level = "debug"
	}

	format := config.FormatTOML
	if opts.ConfigPath != "" {
		// Load has already rejected unknown extensions.
		format, _ = config.FormatForPath(opts.ConfigPath)
	}
	if err := config.Encode(stdout, cfg, format); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
