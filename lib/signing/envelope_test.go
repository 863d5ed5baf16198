// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package signing

import (
	"bytes"
	"crypto/ed25519"
	"errors"
	"testing"

	"github.com/bureau-foundation/termcodec/lib/term"
)

func testKeypair(t *testing.T) (ed25519.PublicKey, ed25519.PrivateKey) {
	t.Helper()
	public, private, err := Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return public, private
}

func TestSignAndVerify(t *testing.T) {
	public, private := testKeypair(t)

	value := term.Object(map[string]term.Value{
		"subject":  term.String("iree/amdgpu/pm"),
		"audience": term.String("ticket"),
		"expires":  term.Int(1767225600),
	})

	envelope, err := Sign(private, value)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	encoded, err := term.Encode(value)
	if err != nil {
		t.Fatal(err)
	}
	if len(envelope) != len(encoded)+SignatureSize {
		t.Fatalf("envelope is %d bytes, want %d", len(envelope), len(encoded)+SignatureSize)
	}
	if !bytes.HasPrefix(envelope, encoded) {
		t.Error("envelope does not start with the canonical encoding")
	}

	verified, err := Verify(public, envelope)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !term.Equal(verified, value) {
		t.Errorf("Verify = %s, want %s", verified, value)
	}
}

func TestSignBytesMatchesSign(t *testing.T) {
	_, private := testKeypair(t)
	value := term.List(term.Int(1), term.Null())
	encoded, err := term.Encode(value)
	if err != nil {
		t.Fatal(err)
	}

	fromValue, err := Sign(private, value)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	fromBytes, err := SignBytes(private, encoded)
	if err != nil {
		t.Fatalf("SignBytes: %v", err)
	}
	// Ed25519 is deterministic.
	if !bytes.Equal(fromValue, fromBytes) {
		t.Error("Sign and SignBytes produced different envelopes for the same term")
	}
}

func TestSignBytesRejectsNonCanonical(t *testing.T) {
	_, private := testKeypair(t)
	payloads := [][]byte{
		{},
		// Negative zero.
		{0x03, 0x80},
		// Trailing byte.
		{0x00, 0x00},
		// Keys out of order.
		{0x07, 0x01, 0x02, 0x05, 0x01, 0x01, 'b', 0x00, 0x05, 0x01, 0x01, 'a', 0x00},
	}
	for _, payload := range payloads {
		if _, err := SignBytes(private, payload); !errors.Is(err, ErrPayloadNotCanonical) {
			t.Errorf("SignBytes(%x) error = %v, want ErrPayloadNotCanonical", payload, err)
		}
	}
}

func TestVerifyRejectsTampering(t *testing.T) {
	public, private := testKeypair(t)
	envelope, err := Sign(private, term.String("status"))
	if err != nil {
		t.Fatal(err)
	}

	for index := range envelope {
		tampered := bytes.Clone(envelope)
		tampered[index] ^= 0x01
		if _, err := Verify(public, tampered); !errors.Is(err, ErrInvalidSignature) {
			t.Errorf("flipping byte %d: error = %v, want ErrInvalidSignature", index, err)
		}
	}
}

func TestVerifyWrongKey(t *testing.T) {
	_, private := testKeypair(t)
	otherPublic, _ := testKeypair(t)

	envelope, err := Sign(private, term.Null())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Verify(otherPublic, envelope); !errors.Is(err, ErrInvalidSignature) {
		t.Errorf("Verify with wrong key: error = %v, want ErrInvalidSignature", err)
	}
}

func TestVerifyTooShort(t *testing.T) {
	public, _ := testKeypair(t)
	for _, size := range []int{0, 1, SignatureSize} {
		if _, err := Verify(public, make([]byte, size)); !errors.Is(err, ErrEnvelopeTooShort) {
			t.Errorf("Verify(%d bytes) error = %v, want ErrEnvelopeTooShort", size, err)
		}
	}
}

func TestVerifyRejectsSignedNonCanonicalPayload(t *testing.T) {
	public, private := testKeypair(t)

	// A validly signed payload that is not canonical: integer 1 with a
	// padded magnitude.
	payload := []byte{0x03, 0x02, 0x00, 0x01}
	envelope := append(bytes.Clone(payload), ed25519.Sign(private, payload)...)

	_, err := Verify(public, envelope)
	if !errors.Is(err, ErrPayloadNotCanonical) {
		t.Fatalf("Verify error = %v, want ErrPayloadNotCanonical", err)
	}
	if !errors.Is(err, term.ErrVarintNotMinimal) {
		t.Errorf("Verify error = %v, want wrapped term.ErrVarintNotMinimal", err)
	}
}

func TestSignRejectsInvalidValue(t *testing.T) {
	_, private := testKeypair(t)
	if _, err := Sign(private, term.Value{}); err == nil {
		t.Error("Sign accepted an invalid value")
	}
}

func TestSplit(t *testing.T) {
	encoded := []byte{0x05, 0x01, 0x01, 'x'}
	envelope := append(bytes.Clone(encoded), make([]byte, SignatureSize)...)
	payload, signature, err := Split(envelope)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if !bytes.Equal(payload, encoded) {
		t.Errorf("payload = %x", payload)
	}
	if len(signature) != SignatureSize {
		t.Errorf("signature is %d bytes, want %d", len(signature), SignatureSize)
	}
}

func BenchmarkVerify(b *testing.B) {
	public, private, err := Generate()
	if err != nil {
		b.Fatal(err)
	}
	envelope, err := Sign(private, term.Object(map[string]term.Value{
		"action":    term.String("create-sandbox"),
		"principal": term.String("iree/amdgpu/pm"),
	}))
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	for b.Loop() {
		Verify(public, envelope)
	}
}
