// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"crypto/ed25519"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/termcodec/lib/signing"
	"github.com/bureau-foundation/termcodec/lib/termjson"
)

// keyDirectory returns the --dir flag value, or keys.directory from the
// configuration.
func keyDirectory(env *environment, flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return env.config.Keys.Directory
}

func keygenCommand() *command {
	return &command{
		name:    "keygen",
		summary: "Create the signing keypair if it does not exist",
		usage:   "bureau-term keygen [--dir directory]",
		bind: func(flagSet *pflag.FlagSet) handler {
			directory := flagSet.String("dir", "", "key directory (default from config)")

			return func(env *environment, args []string) error {
				if len(args) > 0 {
					return Validation("keygen takes no positional arguments, got %q", args[0])
				}
				keyDir := keyDirectory(env, *directory)

				public, _, generated, err := signing.LoadOrGenerate(keyDir, env.logger)
				if err != nil {
					return Internal("%w", err)
				}
				if !generated {
					env.logger.Info("signing keypair already exists", "directory", keyDir)
				}

				if _, err := fmt.Fprintln(env.stdout, hex.EncodeToString(public)); err != nil {
					return Internal("write output: %w", err)
				}
				return nil
			}
		},
	}
}

func signCommand() *command {
	return &command{
		name:    "sign",
		summary: "Sign a canonical term, producing an envelope",
		usage:   "bureau-term sign [--dir directory] [--from term|json|cbor] [--output-hex] [-x] [file]",
		bind: func(flagSet *pflag.FlagSet) handler {
			directory := flagSet.String("dir", "", "key directory (default from config)")
			from := flagSet.String("from", formatTerm, "input format: term, json, or cbor")
			outputHex := flagSet.Bool("output-hex", false, "print the envelope as hex")

			return func(env *environment, args []string) error {
				data, remaining, err := env.input(args)
				if err != nil {
					return err
				}
				if err := noExtraArgs("sign", remaining); err != nil {
					return err
				}

				keyDir := keyDirectory(env, *directory)
				_, private, err := signing.Load(keyDir)
				if err != nil {
					return Validation("loading signing key (run \"bureau-term keygen\" first): %w", err)
				}

				var envelope []byte
				if *from == formatTerm {
					envelope, err = signing.SignBytes(private, data)
				} else {
					value, parseErr := parseValue(*from, data)
					if parseErr != nil {
						return parseErr
					}
					envelope, err = signing.Sign(private, value)
				}
				if err != nil {
					return Validation("%w", err)
				}

				env.logger.Debug("signed term", "payload_bytes", len(envelope)-signing.SignatureSize)
				return env.writeBinary(envelope, *outputHex)
			}
		},
	}
}

func verifyCommand() *command {
	return &command{
		name:    "verify",
		summary: "Verify an envelope and print its payload as JSON",
		usage:   "bureau-term verify [--dir directory | --public-key hex] [-x] [file]",
		bind: func(flagSet *pflag.FlagSet) handler {
			directory := flagSet.String("dir", "", "key directory holding term-signing-key.pub (default from config)")
			publicKeyHex := flagSet.String("public-key", "", "hex-encoded Ed25519 public key (overrides --dir)")
			quiet := flagSet.BoolP("quiet", "q", false, "print nothing; report only through the exit code")

			return func(env *environment, args []string) error {
				public, err := verificationKey(env, *publicKeyHex, *directory)
				if err != nil {
					return err
				}

				data, remaining, err := env.input(args)
				if err != nil {
					return err
				}
				if err := noExtraArgs("verify", remaining); err != nil {
					return err
				}

				value, err := signing.Verify(public, data)
				if err != nil {
					if !*quiet {
						fmt.Fprintf(env.stderr, "verification failed: %v\n", err)
					}
					if errors.Is(err, signing.ErrInvalidSignature) {
						env.logger.Warn("signature rejected")
					}
					return &ExitError{Code: 1}
				}

				env.logger.Debug("signature verified")
				if *quiet {
					return nil
				}
				mode, err := termjson.ParseBytesMode(env.config.Output.Bytes)
				if err != nil {
					return Validation("%w", err)
				}
				if err := termjson.Write(env.stdout, value, mode, env.config.Output.Compact); err != nil {
					return Validation("%w", err)
				}
				return nil
			}
		},
	}
}

// verificationKey resolves the public key from --public-key, or from
// the key directory.
func verificationKey(env *environment, publicKeyHex, directory string) (ed25519.PublicKey, error) {
	if publicKeyHex != "" {
		raw, err := hex.DecodeString(publicKeyHex)
		if err != nil {
			return nil, Validation("--public-key: %w", err)
		}
		if len(raw) != ed25519.PublicKeySize {
			return nil, Validation("--public-key is %d bytes, want %d", len(raw), ed25519.PublicKeySize)
		}
		return ed25519.PublicKey(raw), nil
	}

	public, err := signing.LoadPublic(keyDirectory(env, directory))
	if err != nil {
		return nil, Validation("%w", err)
	}
	return public, nil
}
