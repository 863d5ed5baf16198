// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/termcodec/lib/digest"
	"github.com/bureau-foundation/termcodec/lib/version"
)

func versionCommand() *command {
	return &command{
		name:    "version",
		summary: "Print version information",
		usage:   "bureau-term version [--full]",
		bind: func(flagSet *pflag.FlagSet) handler {
			full := flagSet.Bool("full", false, "include Go version, platform, and binary digest")

			return func(env *environment, args []string) error {
				if !*full {
					version.Fprint(env.stdout, "bureau-term")
					return nil
				}

				fmt.Fprintf(env.stdout, "bureau-term %s\n", version.Full())
				algorithm, err := digest.ParseAlgorithm(env.config.Digest.Algorithm)
				if err != nil {
					return Validation("%w", err)
				}
				sum, path, err := version.SelfDigest(algorithm)
				if err != nil {
					return Internal("%w", err)
				}
				fmt.Fprintf(env.stdout, "  Binary: %s\n  Digest: %s (%s)\n", path, sum, algorithm)
				return nil
			}
		},
	}
}
