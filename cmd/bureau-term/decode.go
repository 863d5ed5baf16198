// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/termcodec/lib/codec"
	"github.com/bureau-foundation/termcodec/lib/term"
	"github.com/bureau-foundation/termcodec/lib/termjson"
)

func decodeCommand() *command {
	return &command{
		name:    "decode",
		summary: "Convert a canonical term to JSON (or CBOR)",
		usage:   "bureau-term decode [--to json|cbor] [--bytes text|hex] [--compact] [-x] [file]",
		bind: func(flagSet *pflag.FlagSet) handler {
			to := flagSet.String("to", formatJSON, "output format: json or cbor")
			bytesMode := flagSet.String("bytes", "", "JSON rendering of byte strings: text or hex (default from config)")
			compact := flagSet.BoolP("compact", "c", false, "compact JSON output (default from config)")
			outputHex := flagSet.Bool("output-hex", false, "print CBOR output as hex")

			return func(env *environment, args []string) error {
				data, remaining, err := env.input(args)
				if err != nil {
					return err
				}
				if err := noExtraArgs("decode", remaining); err != nil {
					return err
				}

				value, err := term.Decode(data)
				if err != nil {
					return Validation("decode term: %w", err)
				}

				switch *to {
				case formatJSON:
					modeName := env.config.Output.Bytes
					if *bytesMode != "" {
						modeName = *bytesMode
					}
					mode, err := termjson.ParseBytesMode(modeName)
					if err != nil {
						return Validation("%w", err)
					}
					if err := termjson.Write(env.stdout, value, mode, *compact || env.config.Output.Compact); err != nil {
						return Validation("%w", err)
					}
					return nil

				case formatCBOR:
					encoded, err := codec.FromTerm(value)
					if err != nil {
						return Validation("%w", err)
					}
					return env.writeBinary(encoded, *outputHex)

				default:
					return Validation("unknown output format %q (want json or cbor)", *to)
				}
			}
		},
	}
}
