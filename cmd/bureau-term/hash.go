// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/termcodec/lib/digest"
)

func hashCommand() *command {
	return &command{
		name:    "hash",
		summary: "Print the digest of a canonical term",
		usage:   "bureau-term hash [--algorithm sha256|blake3|blake2b] [--from term|json|cbor] [-x] [file]",
		bind: func(flagSet *pflag.FlagSet) handler {
			algorithmName := flagSet.StringP("algorithm", "a", "", "digest algorithm (default from config)")
			from := flagSet.String("from", formatTerm, "input format: term, json, or cbor")

			return func(env *environment, args []string) error {
				name := env.config.Digest.Algorithm
				if *algorithmName != "" {
					name = *algorithmName
				}
				algorithm, err := digest.ParseAlgorithm(name)
				if err != nil {
					return Validation("%w", err)
				}

				data, remaining, err := env.input(args)
				if err != nil {
					return err
				}
				if err := noExtraArgs("hash", remaining); err != nil {
					return err
				}

				// Non-canonical bytes are rejected rather than hashed:
				// a digest always names a value.
				value, err := parseValue(*from, data)
				if err != nil {
					return err
				}
				sum, err := digest.SumValue(algorithm, value)
				if err != nil {
					return Validation("%w", err)
				}

				if _, err := fmt.Fprintf(env.stdout, "%s  %s\n", digest.Format(sum), algorithm); err != nil {
					return Internal("write output: %w", err)
				}
				return nil
			}
		},
	}
}
