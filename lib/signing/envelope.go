// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package signing

import (
	"crypto/ed25519"
	"errors"
	"fmt"

	"github.com/bureau-foundation/termcodec/lib/term"
)

// SignatureSize is the fixed size of the trailing Ed25519 signature.
const SignatureSize = ed25519.SignatureSize

// Errors returned by Sign, SignBytes, and Verify.
var (
	ErrEnvelopeTooShort    = errors.New("signing: envelope too short for signature")
	ErrInvalidSignature    = errors.New("signing: invalid Ed25519 signature")
	ErrPayloadNotCanonical = errors.New("signing: payload is not a canonical term")
)

// Sign encodes value canonically and returns the envelope: the encoding
// followed by its Ed25519 signature.
func Sign(privateKey ed25519.PrivateKey, value term.Value) ([]byte, error) {
	payload, err := term.Encode(value)
	if err != nil {
		return nil, fmt.Errorf("signing: encoding payload: %w", err)
	}
	return seal(privateKey, payload), nil
}

// SignBytes signs an already-encoded term. The payload must decode as a
// single canonical term; anything else fails with
// ErrPayloadNotCanonical and is not signed.
func SignBytes(privateKey ed25519.PrivateKey, payload []byte) ([]byte, error) {
	if _, err := term.Decode(payload); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPayloadNotCanonical, err)
	}
	return seal(privateKey, payload), nil
}

func seal(privateKey ed25519.PrivateKey, payload []byte) []byte {
	signature := ed25519.Sign(privateKey, payload)

	result := make([]byte, len(payload)+SignatureSize)
	copy(result, payload)
	copy(result[len(payload):], signature)
	return result
}

// Split separates an envelope into payload and signature without
// verifying anything. Both slices alias envelope.
func Split(envelope []byte) (payload, signature []byte, err error) {
	// A term is at least one byte, so a bare signature is too short.
	if len(envelope) <= SignatureSize {
		return nil, nil, ErrEnvelopeTooShort
	}
	splitPoint := len(envelope) - SignatureSize
	return envelope[:splitPoint], envelope[splitPoint:], nil
}

// Verify checks the envelope's signature and decodes its payload. The
// signature is checked first, so an attacker-supplied payload is never
// parsed unless it was signed by publicKey.
func Verify(publicKey ed25519.PublicKey, envelope []byte) (term.Value, error) {
	payload, signature, err := Split(envelope)
	if err != nil {
		return term.Value{}, err
	}

	if !ed25519.Verify(publicKey, payload, signature) {
		return term.Value{}, ErrInvalidSignature
	}

	value, err := term.Decode(payload)
	if err != nil {
		return term.Value{}, fmt.Errorf("%w: %w", ErrPayloadNotCanonical, err)
	}
	return value, nil
}
