// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package digest computes content digests of canonical terms.
//
// Because every value has exactly one canonical encoding, hashing the
// encoding gives a stable identity for the value itself: two programs
// that build the same map in different insertion orders produce the
// same digest. [SumValue] encodes and hashes in one step; [Sum] hashes
// bytes that are already encoded.
//
// Three algorithms are available, all with 32-byte output:
//
//   - [SHA256] -- the default, for interop with tooling that only
//     speaks SHA-256
//   - [BLAKE3] -- keyed BLAKE3 with the fixed domain key
//     "bureau.term.digest", so a term digest never collides with a
//     BLAKE3 hash of the same bytes computed for another purpose
//   - [BLAKE2b] -- unkeyed BLAKE2b-256
//
// Digests are formatted as lowercase hex by [Format] and parsed back by
// [Parse].
package digest
