// Package main is the entry point for the kestrel editor.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/kestrel-editor/kestrel/internal/app"
	"github.com/kestrel-editor/kestrel/internal/term"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts, logFile := parseFlags()
	if logFile != nil {
		defer logFile.Close()
	}

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Close()

	terminal, err := term.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open terminal: %v\n", err)
		return 1
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		application.Quit()
	}()

	if err := application.Run(terminal); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() (app.Options, *os.File) {
	var opts app.Options
	var logPath string
	var showVersion bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.WorkspacePath, "workspace", "", "Workspace/project directory")
	flag.StringVar(&opts.WorkspacePath, "w", "", "Workspace/project directory (shorthand)")
	flag.StringVar(&opts.MenuScript, "menu-script", "", "Lua script that builds the context menu")
	flag.StringVar(&opts.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.StringVar(&logPath, "log-file", "", "Write logs to this file instead of stderr")
	flag.BoolVar(&opts.WatchConfig, "watch-config", false, "Reload the config file when it changes")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "kestrel - terminal text editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: kestrel [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  kestrel                       Open with empty buffer\n")
		fmt.Fprintf(os.Stderr, "  kestrel file.go               Open a file\n")
		fmt.Fprintf(os.Stderr, "  kestrel -w ./project file.go  Open a file in a workspace\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("kestrel %s (%s)\n", version, commit)
		os.Exit(0)
	}

	switch opts.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
		os.Exit(1)
	}

	var logFile *os.File
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: opening log file: %v\n", err)
			os.Exit(1)
		}
		opts.LogOutput = f
		logFile = f
	}

	if args := flag.Args(); len(args) > 0 {
		opts.File = args[0]
	}

	// Default the workspace to the opened file's directory.
	if opts.WorkspacePath == "" && opts.File != "" {
		if abs, err := filepath.Abs(opts.File); err == nil {
			opts.WorkspacePath = filepath.Dir(abs)
		}
	}

	return opts, logFile
}
