// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package termjson converts between JSON documents and term values.
//
// JSON is how humans and scripts write values that bureau-term then
// encodes canonically. [Parse] accepts JSONC (comments and trailing
// commas are stripped), preserves integers of any size exactly, and
// rejects numbers with a fraction or exponent: the term model has no
// floating point, so "1.0" is an error rather than a silent 1.
//
// [Render] goes the other way for decoded values. Because decoding
// loses the text/binary distinction, byte strings are rendered as JSON
// strings when they are printable UTF-8 (see [term.Printable]) and as
// hex otherwise, or always as hex with [BytesHex]. JSON object keys
// must be strings, so map keys that are not byte strings are rendered
// in diagnostic notation (an integer key 7 becomes "7", a null key
// becomes "null").
//
// [BytesText] output is ambiguous: the byte string ff renders as "ff",
// exactly like the two-character text "ff". It is meant for reading.
// Use [BytesHex] when the JSON must map back to the exact bytes.
package termjson

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/tidwall/jsonc"

	"github.com/bureau-foundation/termcodec/lib/term"
)

// Parse decodes a single JSON (or JSONC) document into a term value.
func Parse(data []byte) (term.Value, error) {
	stripped := jsonc.ToJSON(data)

	decoder := json.NewDecoder(bytes.NewReader(stripped))
	decoder.UseNumber()

	var native any
	if err := decoder.Decode(&native); err != nil {
		return term.Value{}, fmt.Errorf("termjson: parsing JSON: %w", err)
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return term.Value{}, fmt.Errorf("termjson: unexpected data after the JSON document")
	}

	value, err := convert(native)
	if err != nil {
		return term.Value{}, fmt.Errorf("termjson: %w", err)
	}
	return value, nil
}

// convert walks a JSON-decoded tree and builds the term value. Numbers
// arrive as json.Number so that integers wider than float64's 53-bit
// mantissa are not rounded.
func convert(native any) (term.Value, error) {
	switch value := native.(type) {
	case json.Number:
		integer, ok := new(big.Int).SetString(value.String(), 10)
		if !ok {
			return term.Value{}, fmt.Errorf("%w: number %s is not an integer", term.ErrUnsupportedType, value)
		}
		return term.BigInt(integer), nil

	case []any:
		elements := make([]term.Value, len(value))
		for index, element := range value {
			converted, err := convert(element)
			if err != nil {
				return term.Value{}, fmt.Errorf("array element %d: %w", index, err)
			}
			elements[index] = converted
		}
		return term.List(elements...), nil

	case map[string]any:
		fields := make(map[string]term.Value, len(value))
		for name, element := range value {
			converted, err := convert(element)
			if err != nil {
				return term.Value{}, fmt.Errorf("field %q: %w", name, err)
			}
			fields[name] = converted
		}
		return term.Object(fields), nil

	default:
		// nil, bool, string
		return term.FromAny(native)
	}
}

// BytesMode selects how Render shows byte strings.
type BytesMode int

const (
	// BytesText renders printable UTF-8 byte strings as JSON strings
	// and all others as hex. Hex and text are not distinguishable in
	// the output.
	BytesText BytesMode = iota

	// BytesHex renders every byte string as lowercase hex.
	BytesHex
)

// ParseBytesMode parses "text" or "hex".
func ParseBytesMode(name string) (BytesMode, error) {
	switch name {
	case "text":
		return BytesText, nil
	case "hex":
		return BytesHex, nil
	default:
		return 0, fmt.Errorf("unknown bytes mode %q (want text or hex)", name)
	}
}

// Render converts a term value into a tree that encoding/json can
// marshal: nil, bool, json.Number, string, []any, map[string]any.
func Render(value term.Value, mode BytesMode) (any, error) {
	switch value.Kind() {
	case term.KindNull:
		return nil, nil

	case term.KindBool:
		b, _ := value.Boolean()
		return b, nil

	case term.KindInteger:
		integer, _ := value.Integer()
		return json.Number(integer.String()), nil

	case term.KindBytes:
		raw, _ := value.ByteString()
		return renderBytes(raw, mode), nil

	case term.KindList:
		elements, _ := value.Elements()
		result := make([]any, len(elements))
		for index, element := range elements {
			rendered, err := Render(element, mode)
			if err != nil {
				return nil, err
			}
			result[index] = rendered
		}
		return result, nil

	case term.KindMap:
		entries, _ := value.Entries()
		result := make(map[string]any, len(entries))
		for _, entry := range entries {
			key := entry.Key.String()
			if raw, ok := entry.Key.ByteString(); ok {
				key = renderBytes(raw, mode)
			}
			if _, exists := result[key]; exists {
				return nil, fmt.Errorf("termjson: map keys collide as JSON key %q", key)
			}
			rendered, err := Render(entry.Value, mode)
			if err != nil {
				return nil, err
			}
			result[key] = rendered
		}
		return result, nil

	default:
		return nil, fmt.Errorf("termjson: %w: %s value", term.ErrUnsupportedType, value.Kind())
	}
}

func renderBytes(raw []byte, mode BytesMode) string {
	if mode == BytesText && term.Printable(raw) {
		return string(raw)
	}
	return hex.EncodeToString(raw)
}

// Write renders value as JSON to w with a trailing newline. When
// compact is false, output is indented with two spaces.
func Write(w io.Writer, value term.Value, mode BytesMode, compact bool) error {
	rendered, err := Render(value, mode)
	if err != nil {
		return err
	}

	var output []byte
	if compact {
		output, err = json.Marshal(rendered)
	} else {
		output, err = json.MarshalIndent(rendered, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("termjson: encoding JSON: %w", err)
	}

	_, err = fmt.Fprintln(w, string(output))
	return err
}
