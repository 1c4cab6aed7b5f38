// LoreLock is a data-driven interactive fiction runtime.
// Usage: lorelock [--version] [--plain] [--script <file>] [--oracle-config <file>] <story_path>
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/nathoo/lorelock/cli"
	"github.com/nathoo/lorelock/engine"
	"github.com/nathoo/lorelock/engine/oracle"
	"github.com/nathoo/lorelock/loader"
	"github.com/nathoo/lorelock/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	plain := false
	var storyPath string
	var scriptFile string
	var oracleConfig string

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("lorelock %s (commit %s, built %s)\n", version, commit, date)
			return
		case "--plain":
			plain = true
		case "--script":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "--script requires a file path\n")
				os.Exit(1)
			}
			i++
			scriptFile = args[i]
		case "--oracle-config":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "--oracle-config requires a file path\n")
				os.Exit(1)
			}
			i++
			oracleConfig = args[i]
		default:
			if storyPath == "" {
				storyPath = args[i]
			}
		}
	}

	if storyPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: lorelock [--version] [--plain] [--script <file>] [--oracle-config <file>] <story_path>\n")
		os.Exit(1)
	}

	log := newLogger()

	story, err := loader.Load(storyPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading story: %v\n", err)
		os.Exit(1)
	}

	cfg := oracle.ConfigFromEnv()
	if oracleConfig != "" {
		cfg, err = oracle.LoadConfig(oracleConfig)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading oracle config: %v\n", err)
			os.Exit(1)
		}
	}

	home, _ := os.UserHomeDir()
	eng := engine.New(story,
		engine.WithOracle(oracle.New(cfg, log)),
		engine.WithSaveDir(filepath.Join(home, ".lorelock", "saves")),
		engine.WithLogger(log),
	)

	// Script mode: open file, force plain, echo commands.
	if scriptFile != "" {
		f, err := os.Open(scriptFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening script: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		c := cli.New(eng)
		c.In = f
		c.EchoInput = true
		c.Run()
		return
	}

	// Use the plain CLI if --plain, or if stdout is not a terminal.
	if plain || !isTerminal() {
		cli.New(eng).Run()
		return
	}

	if err := tui.Run(eng); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger builds a stderr slog logger honoring LOG_LEVEL.
func newLogger() *slog.Logger {
	level := slog.LevelWarn
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
