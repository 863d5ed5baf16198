// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package frame wraps encoded terms for storage and transport with
// optional compression.
//
// A frame is a one-byte compression tag, the uncompressed payload
// length as a canonical non-negative varint, and the (possibly
// compressed) body:
//
//	[tag] [varint uncompressed length] [body]
//
// The length uses the same varint as term lengths, so a frame header is
// itself canonical: one payload has exactly one frame per compression
// choice. [Pack] falls back to [None] when compression would not shrink
// the payload, so decoders must accept every tag regardless of what the
// packer asked for.
package frame

import (
	"errors"
	"fmt"

	"github.com/bureau-foundation/termcodec/lib/term"
)

// Compression identifies the algorithm used for a frame body. Values
// are wire constants.
type Compression uint8

const (
	// None stores the payload as-is.
	None Compression = 0

	// LZ4 is LZ4 block compression. Fast, modest ratio.
	LZ4 Compression = 1

	// Zstd is zstd at the default level. Better ratio for text-heavy
	// terms such as maps with many string keys.
	Zstd Compression = 2
)

// MaxPayload bounds the uncompressed length Unpack will allocate for.
const MaxPayload = 256 << 20

// Errors returned by Unpack.
var (
	ErrTruncated          = errors.New("frame: truncated frame")
	ErrUnknownCompression = errors.New("frame: unknown compression tag")
	ErrSizeMismatch       = errors.New("frame: payload size does not match header")
	ErrTooLarge           = errors.New("frame: declared payload size exceeds limit")
)

// String returns the configuration name of the compression.
func (c Compression) String() string {
	switch c {
	case None:
		return "none"
	case LZ4:
		return "lz4"
	case Zstd:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
}

// ParseCompression parses a compression name.
func ParseCompression(name string) (Compression, error) {
	switch name {
	case "none":
		return None, nil
	case "lz4":
		return LZ4, nil
	case "zstd":
		return Zstd, nil
	default:
		return 0, fmt.Errorf("unknown compression %q (want none, lz4, or zstd)", name)
	}
}

// Pack builds a frame around payload. If the requested compression
// does not make the body smaller, the frame is written with None.
func Pack(payload []byte, compression Compression) ([]byte, error) {
	body, err := compress(payload, compression)
	if errors.Is(err, errIncompressible) {
		body, compression = payload, None
	} else if err != nil {
		return nil, err
	}

	frame := make([]byte, 0, 1+10+len(body))
	frame = append(frame, byte(compression))
	frame = term.AppendLength(frame, len(payload))
	return append(frame, body...), nil
}

// PackAuto probes payload with Select and packs it with the result.
func PackAuto(payload []byte) ([]byte, error) {
	return Pack(payload, Select(payload))
}

// PackValue encodes value canonically and packs the encoding.
func PackValue(value term.Value, compression Compression) ([]byte, error) {
	encoded, err := term.Encode(value)
	if err != nil {
		return nil, fmt.Errorf("frame: encoding value: %w", err)
	}
	return Pack(encoded, compression)
}

// Header parses the tag and declared payload length, returning them
// with the offset at which the body starts.
func Header(frame []byte) (Compression, int, int, error) {
	if len(frame) == 0 {
		return 0, 0, 0, ErrTruncated
	}
	compression := Compression(frame[0])
	if compression > Zstd {
		return 0, 0, 0, fmt.Errorf("%w: %d", ErrUnknownCompression, frame[0])
	}

	size, consumed, err := term.ReadLength(frame[1:])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("frame: reading payload length: %w", err)
	}
	if size > MaxPayload {
		return 0, 0, 0, fmt.Errorf("%w: %d bytes, limit is %d", ErrTooLarge, size, MaxPayload)
	}
	return compression, size, 1 + consumed, nil
}

// Unpack verifies a frame and returns its uncompressed payload. The
// returned slice may alias frame when the body is uncompressed.
func Unpack(frame []byte) ([]byte, error) {
	compression, size, bodyStart, err := Header(frame)
	if err != nil {
		return nil, err
	}
	return decompress(frame[bodyStart:], compression, size)
}

// UnpackValue unpacks a frame and decodes its payload as exactly one
// canonical term.
func UnpackValue(frame []byte) (term.Value, error) {
	payload, err := Unpack(frame)
	if err != nil {
		return term.Value{}, err
	}
	return term.Decode(payload)
}

// Select picks a compression for payload by probing it with zstd: a
// ratio of at least 1.5 selects Zstd, at least 1.1 selects LZ4, and
// anything less selects None.
func Select(payload []byte) Compression {
	if len(payload) == 0 {
		return None
	}
	compressed := zstdEncoder.EncodeAll(payload, nil)
	ratio := float64(len(payload)) / float64(len(compressed))
	switch {
	case ratio >= 1.5:
		return Zstd
	case ratio >= 1.1:
		return LZ4
	default:
		return None
	}
}
