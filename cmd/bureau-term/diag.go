// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/termcodec/lib/term"
)

func diagCommand() *command {
	return &command{
		name:    "diag",
		summary: "Print a term in diagnostic notation",
		usage:   "bureau-term diag [-x] [file]",
		bind: func(*pflag.FlagSet) handler {
			return func(env *environment, args []string) error {
				data, remaining, err := env.input(args)
				if err != nil {
					return err
				}
				if err := noExtraArgs("diag", remaining); err != nil {
					return err
				}

				notation, err := term.Diagnose(data)
				if err != nil {
					return Validation("%w", err)
				}
				if _, err := fmt.Fprintln(env.stdout, notation); err != nil {
					return Internal("write output: %w", err)
				}
				return nil
			}
		},
	}
}
