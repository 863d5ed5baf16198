// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package signing implements Ed25519-signed envelopes over canonical
// terms.
//
// Signatures are only meaningful when signer and verifier agree on the
// exact bytes. The canonical term encoding gives every value a single
// byte form, so an envelope signs the encoding directly with no
// separate canonicalization step.
//
// # Wire format
//
// An envelope is the canonical encoding of a term followed by a 64-byte
// Ed25519 signature over those bytes:
//
//	[canonical term bytes] [64-byte Ed25519 signature]
//
// The split point is always len(envelope) - 64. The payload must decode
// as exactly one canonical term: [Verify] rejects an envelope whose
// payload has a valid signature but is not canonical, so a verifier
// never accepts two distinct byte strings for the same value.
//
// # Keys
//
// Keypairs are stored as raw key bytes in a directory: the private key
// in "term-signing-key" (mode 0600) and the public key in
// "term-signing-key.pub" (mode 0644). [LoadOrGenerate] creates them on
// first use.
package signing
