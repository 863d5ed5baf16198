// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package digest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2b"

	"github.com/bureau-foundation/termcodec/lib/term"
)

// Size is the length in bytes of every digest this package produces.
const Size = 32

// Digest is a 32-byte content digest.
type Digest [Size]byte

// Algorithm identifies a hash function.
type Algorithm uint8

const (
	SHA256 Algorithm = iota
	BLAKE3
	BLAKE2b
)

// String returns the configuration name of the algorithm.
func (a Algorithm) String() string {
	switch a {
	case SHA256:
		return "sha256"
	case BLAKE3:
		return "blake3"
	case BLAKE2b:
		return "blake2b"
	default:
		return fmt.Sprintf("algorithm(%d)", uint8(a))
	}
}

// ParseAlgorithm converts a configuration name back to an Algorithm.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch name {
	case "sha256":
		return SHA256, nil
	case "blake3":
		return BLAKE3, nil
	case "blake2b":
		return BLAKE2b, nil
	default:
		return 0, fmt.Errorf("unknown digest algorithm %q (want sha256, blake3, or blake2b)", name)
	}
}

// domainKey is the BLAKE3 key for term digests: the ASCII bytes of
// "bureau.term.digest", zero-padded to 32 bytes. Changing it changes
// every BLAKE3 term digest.
var domainKey = [32]byte{
	'b', 'u', 'r', 'e', 'a', 'u', '.', 't', 'e', 'r', 'm', '.',
	'd', 'i', 'g', 'e', 's', 't', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// New returns a streaming hasher for the algorithm.
func New(algorithm Algorithm) (hash.Hash, error) {
	switch algorithm {
	case SHA256:
		return sha256.New(), nil
	case BLAKE3:
		// NewKeyed only fails for a key that is not 32 bytes.
		hasher, err := blake3.NewKeyed(domainKey[:])
		if err != nil {
			panic("digest: BLAKE3 keyed hash initialization failed: " + err.Error())
		}
		return hasher, nil
	case BLAKE2b:
		hasher, err := blake2b.New256(nil)
		if err != nil {
			panic("digest: BLAKE2b initialization failed: " + err.Error())
		}
		return hasher, nil
	default:
		return nil, fmt.Errorf("unknown digest algorithm %d", uint8(algorithm))
	}
}

// Sum hashes data with the algorithm.
func Sum(algorithm Algorithm, data []byte) (Digest, error) {
	hasher, err := New(algorithm)
	if err != nil {
		return Digest{}, err
	}
	hasher.Write(data)
	var result Digest
	copy(result[:], hasher.Sum(nil))
	return result, nil
}

// SumReader streams r through the algorithm with constant memory.
func SumReader(algorithm Algorithm, r io.Reader) (Digest, error) {
	hasher, err := New(algorithm)
	if err != nil {
		return Digest{}, err
	}
	if _, err := io.Copy(hasher, r); err != nil {
		return Digest{}, fmt.Errorf("hashing: %w", err)
	}
	var result Digest
	copy(result[:], hasher.Sum(nil))
	return result, nil
}

// SumFile streams the file at path through the algorithm.
func SumFile(algorithm Algorithm, path string) (Digest, error) {
	file, err := os.Open(path)
	if err != nil {
		return Digest{}, fmt.Errorf("opening %s for hashing: %w", path, err)
	}
	defer file.Close()

	result, err := SumReader(algorithm, file)
	if err != nil {
		return Digest{}, fmt.Errorf("%s: %w", path, err)
	}
	return result, nil
}

// SumValue encodes value canonically and hashes the encoding.
func SumValue(algorithm Algorithm, value term.Value) (Digest, error) {
	encoded, err := term.Encode(value)
	if err != nil {
		return Digest{}, fmt.Errorf("digest: encoding value: %w", err)
	}
	return Sum(algorithm, encoded)
}

// Format returns the lowercase hex encoding of a digest.
func Format(digest Digest) string {
	return hex.EncodeToString(digest[:])
}

// String implements fmt.Stringer using Format.
func (d Digest) String() string {
	return Format(d)
}

// Parse parses a 64-character hex string into a Digest.
func Parse(hexString string) (Digest, error) {
	var result Digest
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return result, fmt.Errorf("parsing digest: %w", err)
	}
	if len(decoded) != Size {
		return result, fmt.Errorf("digest is %d bytes, want %d", len(decoded), Size)
	}
	copy(result[:], decoded)
	return result, nil
}
