// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the CBOR interchange profile for canonical
// terms.
//
// The canonical term encoding (lib/term) is what gets hashed and
// signed. Peers that already speak CBOR hand data to bureau-term in
// CBOR and expect CBOR back, so this package converts between the two
// data models:
//
//	value, err := codec.ToTerm(cborData)   // CBOR → term.Value
//	cborData, err := codec.FromTerm(value) // term.Value → CBOR
//
// Encoding uses Core Deterministic Encoding (RFC 8949 §4.2): sorted map
// keys, smallest integer encoding, no indefinite-length items. The same
// term always produces identical CBOR bytes. Note that CBOR's
// deterministic key order (bytewise over CBOR-encoded keys) differs
// from the term order, so a CBOR document and its term encoding list
// map entries in different sequences. The conversion preserves entries,
// not sequence.
//
// # Data model mapping
//
// The CBOR data model is richer than the term model, so conversion
// into terms is lossy in a controlled way:
//
//   - CBOR text strings and byte strings both become term byte strings.
//     On the way out, term byte strings that are valid UTF-8 become
//     text strings; all others become byte strings.
//   - CBOR integers (major types 0 and 1) and bignums (tags 2 and 3)
//     become term integers.
//   - CBOR floats, simple values other than false/true/null, and all
//     other tags are rejected with term.ErrUnsupportedType.
//   - Duplicate CBOR map keys are rejected.
//   - Term maps whose keys are lists or maps cannot be written as CBOR
//     here (Go map keys must be comparable) and fail FromTerm with
//     term.ErrUnsupportedType.
package codec
