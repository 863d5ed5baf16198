// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/termcodec/lib/term"
)

func validateCommand() *command {
	return &command{
		name:    "validate",
		summary: "Check that input is exactly one canonical term",
		usage:   "bureau-term validate [-s] [-x] [file]",
		bind: func(flagSet *pflag.FlagSet) handler {
			sequence := flagSet.BoolP("sequence", "s", false, "validate a concatenation of terms")

			return func(env *environment, args []string) error {
				data, remaining, err := env.input(args)
				if err != nil {
					return err
				}
				if err := noExtraArgs("validate", remaining); err != nil {
					return err
				}

				count, err := validateTerms(data, *sequence)
				if err != nil {
					fmt.Fprintf(env.stdout, "invalid: %v\n", err)
					env.logger.Debug("validation failed", "error", err)
					return &ExitError{Code: 1}
				}

				if *sequence {
					fmt.Fprintf(env.stdout, "valid (%d terms)\n", count)
				} else {
					fmt.Fprintln(env.stdout, "valid")
				}
				return nil
			}
		},
	}
}

// validateTerms decodes data as one term, or as a sequence of terms
// when sequence is set. Offsets in a returned *term.DecodeError are
// relative to the start of data. Returns the number of terms decoded.
func validateTerms(data []byte, sequence bool) (int, error) {
	if !sequence {
		if _, err := term.Decode(data); err != nil {
			return 0, err
		}
		return 1, nil
	}

	count := 0
	consumed := 0
	for consumed < len(data) {
		_, rest, err := term.DecodePrefix(data[consumed:])
		if err != nil {
			var decodeError *term.DecodeError
			if errors.As(err, &decodeError) {
				err = &term.DecodeError{Offset: consumed + decodeError.Offset, Err: decodeError.Err}
			}
			return count, fmt.Errorf("term %d: %w", count, err)
		}
		consumed = len(data) - len(rest)
		count++
	}
	return count, nil
}
