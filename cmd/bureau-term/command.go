// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/termcodec/lib/config"
)

// command is one bureau-term subcommand.
type command struct {
	name    string
	summary string
	usage   string

	// bind registers the command's own flags on flagSet and returns
	// the handler that reads them once parsing is done.
	bind func(flagSet *pflag.FlagSet) handler
}

type handler func(env *environment, args []string) error

// environment is what every handler runs against: streams, loaded
// configuration, and a logger scoped to the command.
type environment struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	config *config.Config
	logger *slog.Logger

	// hexInput is the shared --hex flag.
	hexInput bool
}

func commands() []*command {
	return []*command{
		encodeCommand(),
		decodeCommand(),
		diagCommand(),
		validateCommand(),
		hashCommand(),
		keygenCommand(),
		signCommand(),
		verifyCommand(),
		packCommand(),
		unpackCommand(),
		versionCommand(),
	}
}

// runCommand parses the shared and command-specific flags, loads the
// configuration, and calls the handler.
func runCommand(cmd *command, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var (
		configPath string
		verbose    bool
		hexInput   bool
	)

	flagSet := pflag.NewFlagSet("bureau-term "+cmd.name, pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&configPath, "config", "", "path to config file (default: $"+config.EnvironmentVariable+")")
	flagSet.BoolVarP(&verbose, "verbose", "v", false, "log at debug level")
	flagSet.BoolVarP(&hexInput, "hex", "x", false, "treat binary input as hex")
	run := cmd.bind(flagSet)
	flagSet.Usage = func() {
		fmt.Fprintf(stderr, "Usage:\n  %s\n\n%s\n\nFlags:\n%s", cmd.usage, cmd.summary, flagSet.FlagUsages())
	}

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return Validation("%s: %w", cmd.name, err)
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	level, err := parseLevel(cfg.LogLevel)
	if err != nil {
		return Validation("%w", err)
	}
	if verbose {
		level = slog.LevelDebug
	}

	env := &environment{
		stdin:    stdin,
		stdout:   stdout,
		stderr:   stderr,
		config:   cfg,
		logger:   newCommandLogger(stderr, level).With("command", cmd.name),
		hexInput: hexInput,
	}
	return run(env, flagSet.Args())
}

// loadConfig resolves the single configuration source: the --config
// flag, then BUREAU_TERM_CONFIG, then the built-in defaults.
func loadConfig(path string) (*config.Config, error) {
	var cfg *config.Config
	var err error

	switch {
	case path != "":
		cfg, err = config.LoadFile(path)
	case os.Getenv(config.EnvironmentVariable) != "":
		cfg, err = config.Load()
	default:
		cfg = config.Default()
	}
	if err != nil {
		return nil, Validation("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, Validation("invalid config: %w", err)
	}
	return cfg, nil
}

// noExtraArgs checks that nothing but the optional input file remains.
func noExtraArgs(name string, remaining []string) error {
	if len(remaining) > 0 {
		return Validation("%s takes no positional arguments besides an optional file path, got %q", name, remaining[0])
	}
	return nil
}
