// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/termcodec/lib/frame"
	"github.com/bureau-foundation/termcodec/lib/term"
)

func packCommand() *command {
	return &command{
		name:    "pack",
		summary: "Wrap a canonical term in a (compressed) frame",
		usage:   "bureau-term pack [--compression none|lz4|zstd|auto] [--output-hex] [-x] [file]",
		bind: func(flagSet *pflag.FlagSet) handler {
			compressionName := flagSet.String("compression", "", "frame compression (default from config)")
			outputHex := flagSet.Bool("output-hex", false, "print the frame as hex")

			return func(env *environment, args []string) error {
				data, remaining, err := env.input(args)
				if err != nil {
					return err
				}
				if err := noExtraArgs("pack", remaining); err != nil {
					return err
				}
				if _, err := term.Decode(data); err != nil {
					return Validation("decode term: %w", err)
				}

				name := env.config.Frame.Compression
				if *compressionName != "" {
					name = *compressionName
				}

				var packed []byte
				if name == "auto" {
					packed, err = frame.PackAuto(data)
				} else {
					compression, parseErr := frame.ParseCompression(name)
					if parseErr != nil {
						return Validation("%w", parseErr)
					}
					packed, err = frame.Pack(data, compression)
				}
				if err != nil {
					return Internal("%w", err)
				}

				env.logger.Debug("packed frame",
					"requested", name,
					"compression", frame.Compression(packed[0]).String(),
					"payload_bytes", len(data),
					"frame_bytes", len(packed),
				)
				return env.writeBinary(packed, *outputHex)
			}
		},
	}
}

func unpackCommand() *command {
	return &command{
		name:    "unpack",
		summary: "Unwrap a frame, printing the canonical term it carries",
		usage:   "bureau-term unpack [--output-hex] [-x] [file]",
		bind: func(flagSet *pflag.FlagSet) handler {
			outputHex := flagSet.Bool("output-hex", false, "print the term as hex")

			return func(env *environment, args []string) error {
				data, remaining, err := env.input(args)
				if err != nil {
					return err
				}
				if err := noExtraArgs("unpack", remaining); err != nil {
					return err
				}

				payload, err := frame.Unpack(data)
				if err != nil {
					return Validation("%w", err)
				}
				if _, err := term.Decode(payload); err != nil {
					return Validation("frame payload: %w", err)
				}
				return env.writeBinary(payload, *outputHex)
			}
		},
	}
}
