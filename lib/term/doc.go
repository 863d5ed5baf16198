// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package term implements the canonical term encoding: a compact,
// deterministic binary format whose output is hashed and signed.
//
// Determinism is the point. Two logically equal values always produce
// identical bytes, regardless of the order in which map entries were
// inserted, and every value has exactly one valid encoding. The decoder
// enforces this from the other side: input that is well-formed but not
// canonical (a negative zero, a magnitude with a leading zero byte, map
// keys out of order) is rejected rather than normalized, so two
// different byte strings can never authenticate the same value.
//
//	data, err := term.Encode(term.Object(map[string]term.Value{
//	    "amount": term.Int(42),
//	    "memo":   term.String("rent"),
//	}))
//	value, err := term.Decode(data)
//
// # Wire format
//
// Every term starts with a one-byte tag:
//
//	0x00  null
//	0x01  true
//	0x02  false
//	0x03  integer      varint
//	0x05  byte string  varint length, then raw bytes
//	0x06  list         varint count, then count terms
//	0x07  map          varint count, then count (key term, value term) pairs
//
// Tag 0x04 is reserved. It is never produced and always rejected.
//
// A varint is a header byte followed by a big-endian magnitude. The
// header's high bit is the sign; its low seven bits are the number of
// magnitude bytes (at most 16). Zero is the single byte 0x00. The
// magnitude never has a leading zero byte.
//
// Map entries are written in ascending order of their encoded key bytes
// (unsigned byte-wise comparison, shorter prefix first). Keys may be
// any term, not only strings.
//
// # Encoded and decoded values
//
// [Value] is an explicit tagged variant. The encoder accepts a richer
// set of constructors than the decoder produces: [String] and [Bytes]
// both build byte strings, [Object] and [Map] both build maps, and
// [Int], [Uint], and [BigInt] all build integers. Decoding always yields
// raw byte strings, big-integer backed integers, and maps whose entries
// are in canonical order. [FromAny] is the only place native Go values
// are coerced into the variant; floating point is never accepted.
//
// Decoded integers are bounded by [MaxSafeInteger] (2^53 - 1). The
// encoder accepts magnitudes up to 128 bits, but only values inside the
// safe bound round-trip.
//
// # Errors
//
// Every failure is a sentinel error. Decode failures are wrapped in a
// [*DecodeError] that records the byte offset, so callers can tell
// malformed (possibly hostile) input apart from encode-side programming
// errors with errors.As.
//
// The package is stateless. Encode and Decode may be called
// concurrently on independent inputs.
package term
