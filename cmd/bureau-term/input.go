// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
)

// errEmptyHex reports --hex input that held only whitespace.
var errEmptyHex = errors.New("hex input holds no digits")

// inputPath splits a trailing file argument off args. The last argument
// is the input file only when it names an existing regular file.
func inputPath(args []string) (string, []string) {
	if len(args) == 0 {
		return "", args
	}
	last := args[len(args)-1]
	if info, err := os.Stat(last); err != nil || !info.Mode().IsRegular() {
		return "", args
	}
	return last, args[:len(args)-1]
}

// readInput returns the bytes a command operates on: the contents of a
// trailing file argument, or all of stdin. With hexMode the bytes are
// hex text (as printed by --output-hex) and are decoded first. An empty
// term stream is never valid input, so zero bytes is a validation
// error. The returned args have the file path removed.
func readInput(stdin io.Reader, args []string, hexMode bool) ([]byte, []string, error) {
	path, remaining := inputPath(args)

	var data []byte
	var err error
	if path != "" {
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, nil, Internal("read %s: %w", path, err)
		}
	} else {
		data, err = io.ReadAll(stdin)
		if err != nil {
			return nil, nil, Internal("read stdin: %w", err)
		}
	}

	if hexMode {
		if data, err = decodeHexInput(data); err != nil {
			return nil, nil, Validation("%w", err)
		}
	}
	if len(data) == 0 {
		return nil, nil, Validation("empty input")
	}
	return data, remaining, nil
}

// input reads the command's input using the shared --hex flag.
func (env *environment) input(args []string) ([]byte, []string, error) {
	return readInput(env.stdin, args, env.hexInput)
}

// decodeHexInput decodes hex text into term bytes. Whitespace anywhere
// is ignored, so a term can be written grouped by field, such as
// {"a": 1} as:
//
//	07 0101 05010161 030101
func decodeHexInput(text []byte) ([]byte, error) {
	digits := bytes.Join(bytes.Fields(text), nil)
	if len(digits) == 0 {
		return nil, errEmptyHex
	}
	decoded := make([]byte, hex.DecodedLen(len(digits)))
	if _, err := hex.Decode(decoded, digits); err != nil {
		return nil, fmt.Errorf("hex input: %w", err)
	}
	return decoded, nil
}

// writeBinary writes data raw, or as one line of lowercase hex.
func (env *environment) writeBinary(data []byte, hexOutput bool) error {
	var err error
	if hexOutput {
		_, err = fmt.Fprintln(env.stdout, hex.EncodeToString(data))
	} else {
		_, err = env.stdout.Write(data)
	}
	if err != nil {
		return Internal("write output: %w", err)
	}
	return nil
}
