// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/termcodec/lib/codec"
	"github.com/bureau-foundation/termcodec/lib/term"
	"github.com/bureau-foundation/termcodec/lib/termjson"
)

// Input formats accepted by encode, hash, and sign.
const (
	formatJSON = "json"
	formatCBOR = "cbor"
	formatTerm = "term"
)

// parseValue converts input in the named format to a term value. Term
// input must already be canonical.
func parseValue(format string, data []byte) (term.Value, error) {
	switch format {
	case formatJSON:
		value, err := termjson.Parse(data)
		if err != nil {
			return term.Value{}, Validation("%w", err)
		}
		return value, nil
	case formatCBOR:
		value, err := codec.ToTerm(data)
		if err != nil {
			return term.Value{}, Validation("%w", err)
		}
		return value, nil
	case formatTerm:
		value, err := term.Decode(data)
		if err != nil {
			return term.Value{}, Validation("decode term: %w", err)
		}
		return value, nil
	default:
		return term.Value{}, Validation("unknown input format %q (want json, cbor, or term)", format)
	}
}

func encodeCommand() *command {
	return &command{
		name:    "encode",
		summary: "Convert JSON (or CBOR) to a canonical term",
		usage:   "bureau-term encode [--from json|cbor] [--output-hex] [file]",
		bind: func(flagSet *pflag.FlagSet) handler {
			from := flagSet.String("from", formatJSON, "input format: json (JSONC accepted) or cbor")
			outputHex := flagSet.Bool("output-hex", false, "print the encoding as hex")

			return func(env *environment, args []string) error {
				if *from == formatTerm {
					return Validation("encode reads json or cbor; use validate for term input")
				}
				data, remaining, err := env.input(args)
				if err != nil {
					return err
				}
				if err := noExtraArgs("encode", remaining); err != nil {
					return err
				}

				value, err := parseValue(*from, data)
				if err != nil {
					return err
				}
				encoded, err := term.Encode(value)
				if err != nil {
					return Validation("encode term: %w", err)
				}

				env.logger.Debug("encoded term",
					"from", *from,
					"input_bytes", len(data),
					"output_bytes", len(encoded),
				)
				return env.writeBinary(encoded, *outputHex)
			}
		},
	}
}
