// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package signing

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

const (
	privateKeyFile = "term-signing-key"
	publicKeyFile  = "term-signing-key.pub"
)

// Generate creates a new Ed25519 keypair.
func Generate() (ed25519.PublicKey, ed25519.PrivateKey, error) {
	public, private, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, nil, fmt.Errorf("generating Ed25519 keypair: %w", err)
	}
	return public, private, nil
}

// Save writes a keypair to directory, creating it if needed. The
// private key file has 0600 permissions; the public key file has 0644.
func Save(directory string, public ed25519.PublicKey, private ed25519.PrivateKey) error {
	if err := os.MkdirAll(directory, 0700); err != nil {
		return fmt.Errorf("creating key directory: %w", err)
	}

	privatePath := filepath.Join(directory, privateKeyFile)
	if err := os.WriteFile(privatePath, private, 0600); err != nil {
		return fmt.Errorf("writing private key: %w", err)
	}

	publicPath := filepath.Join(directory, publicKeyFile)
	if err := os.WriteFile(publicPath, public, 0644); err != nil {
		return fmt.Errorf("writing public key: %w", err)
	}

	return nil
}

// Load reads a keypair from directory. Returns an error if either file
// is missing, has an unexpected size, or the halves do not belong
// together.
func Load(directory string) (ed25519.PublicKey, ed25519.PrivateKey, error) {
	privateBytes, err := os.ReadFile(filepath.Join(directory, privateKeyFile))
	if err != nil {
		return nil, nil, fmt.Errorf("reading private key: %w", err)
	}
	if len(privateBytes) != ed25519.PrivateKeySize {
		return nil, nil, fmt.Errorf("private key has %d bytes, want %d", len(privateBytes), ed25519.PrivateKeySize)
	}

	public, err := LoadPublic(directory)
	if err != nil {
		return nil, nil, err
	}

	private := ed25519.PrivateKey(privateBytes)
	if !public.Equal(private.Public()) {
		return nil, nil, fmt.Errorf("public key in %s does not match private key", directory)
	}
	return public, private, nil
}

// LoadPublic reads only the public key from directory, for verifiers
// that never hold the private key.
func LoadPublic(directory string) (ed25519.PublicKey, error) {
	publicBytes, err := os.ReadFile(filepath.Join(directory, publicKeyFile))
	if err != nil {
		return nil, fmt.Errorf("reading public key: %w", err)
	}
	if len(publicBytes) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("public key has %d bytes, want %d", len(publicBytes), ed25519.PublicKeySize)
	}
	return ed25519.PublicKey(publicBytes), nil
}

// LoadOrGenerate loads the keypair from directory, or generates and
// saves a new one if no private key exists yet. Returns the keypair and
// whether it was newly generated. A nil logger discards log output.
func LoadOrGenerate(directory string, logger *slog.Logger) (ed25519.PublicKey, ed25519.PrivateKey, bool, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	public, private, err := Load(directory)
	if err == nil {
		return public, private, false, nil
	}

	// A private key that exists but failed to load is corruption or a
	// permissions problem, not a first run.
	privatePath := filepath.Join(directory, privateKeyFile)
	if _, statErr := os.Stat(privatePath); statErr == nil {
		return nil, nil, false, err
	}

	public, private, err = Generate()
	if err != nil {
		return nil, nil, false, err
	}
	if err := Save(directory, public, private); err != nil {
		return nil, nil, false, err
	}

	logger.Info("generated signing keypair",
		"directory", directory,
		"public_key", hex.EncodeToString(public),
	)
	return public, private, true, nil
}
