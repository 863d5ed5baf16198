// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// bureau-term reads, writes, and checks canonical term encodings.
//
// Every subcommand reads its input from a trailing file argument or
// stdin. Binary input may be given as hex with --hex; whitespace in hex
// input is ignored. Commands that produce binary output accept
// --output-hex to print lowercase hex instead.
//
// Configuration comes from --config or BUREAU_TERM_CONFIG. Without
// either, built-in defaults apply (sha256 digests, automatic frame
// compression, keys under ~/.cache/bureau/keys).
package main

import (
	"fmt"
	"io"
	"os"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// run dispatches args to a subcommand. It is main without the process
// exit, so tests can drive it with in-memory streams.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		printUsage(stderr)
		return Validation("no command given")
	}

	switch args[0] {
	case "-h", "--help", "help":
		printUsage(stdout)
		return nil
	case "--version":
		return runCommand(versionCommand(), nil, stdin, stdout, stderr)
	}

	for _, command := range commands() {
		if command.name == args[0] {
			return runCommand(command, args[1:], stdin, stdout, stderr)
		}
	}

	printUsage(stderr)
	return Validation("unknown command %q", args[0])
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, `bureau-term: canonical term encoding tool.

Usage:
  bureau-term <command> [flags] [file]

Commands:
`)
	for _, command := range commands() {
		fmt.Fprintf(w, "  %-10s %s\n", command.name, command.summary)
	}
	fmt.Fprintf(w, `
Run "bureau-term <command> --help" for command flags.
`)
}
