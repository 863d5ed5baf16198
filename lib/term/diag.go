// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package term

import (
	"encoding/hex"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Diagnose decodes data and returns its diagnostic notation. The
// notation is for humans: it is not parsed back and is not part of the
// wire contract.
func Diagnose(data []byte) (string, error) {
	v, err := Decode(data)
	if err != nil {
		return "", err
	}
	return v.String(), nil
}

// String returns diagnostic notation for v, modeled on CBOR's (RFC 8949
// §8): null, true, 42, "text", h'00ff', [1, 2], {"a": 1}. Byte strings
// that are printable UTF-8 are shown quoted, everything else in hex.
// Map entries are shown in canonical order when the map can be encoded.
func (v Value) String() string {
	var builder strings.Builder
	writeDiagnostic(&builder, v)
	return builder.String()
}

func writeDiagnostic(builder *strings.Builder, v Value) {
	switch v.kind {
	case KindNull:
		builder.WriteString("null")
	case KindBool:
		builder.WriteString(strconv.FormatBool(v.boolean))
	case KindInteger:
		builder.WriteString(v.integer.String())
	case KindBytes:
		if Printable(v.bytes) {
			builder.WriteString(strconv.Quote(string(v.bytes)))
		} else {
			builder.WriteString("h'")
			builder.WriteString(hex.EncodeToString(v.bytes))
			builder.WriteString("'")
		}
	case KindList:
		builder.WriteByte('[')
		for index, element := range v.list {
			if index > 0 {
				builder.WriteString(", ")
			}
			writeDiagnostic(builder, element)
		}
		builder.WriteByte(']')
	case KindMap:
		entries := v.entries
		if sorted, err := sortEntries(v.entries, 1); err == nil {
			entries = make([]Entry, len(sorted))
			for index, entry := range sorted {
				entries[index] = entry.entry
			}
		}
		builder.WriteByte('{')
		for index, entry := range entries {
			if index > 0 {
				builder.WriteString(", ")
			}
			writeDiagnostic(builder, entry.Key)
			builder.WriteString(": ")
			writeDiagnostic(builder, entry.Value)
		}
		builder.WriteByte('}')
	default:
		builder.WriteString("<" + v.kind.String() + ">")
	}
}

// Printable reports whether b is valid UTF-8 made only of printable
// runes, newlines, and tabs. Byte strings that fail it are shown as hex.
func Printable(b []byte) bool {
	if !utf8.Valid(b) {
		return false
	}
	for _, r := range string(b) {
		if !unicode.IsPrint(r) && r != '\n' && r != '\t' {
			return false
		}
	}
	return true
}
