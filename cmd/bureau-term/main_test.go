// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bureau-foundation/termcodec/lib/config"
	"github.com/bureau-foundation/termcodec/lib/term"
)

// runCLI runs bureau-term in-process with the given stdin and returns
// what it wrote. BUREAU_TERM_CONFIG is cleared so the host
// configuration never leaks into a test.
func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv(config.EnvironmentVariable, "")
	var stdout, stderr bytes.Buffer
	err := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func exitCode(err error) int {
	var exitError *ExitError
	if errors.As(err, &exitError) {
		return exitError.Code
	}
	return -1
}

func isValidation(err error) bool {
	var toolError *ToolError
	return errors.As(err, &toolError) && toolError.Category == CategoryValidation
}

func TestEncodeJSON(t *testing.T) {
	stdout, _, err := runCLI(t, `{"b": 1, "a": true}`, "encode", "--output-hex")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	// Map of 2; "a" sorts before "b" by encoded key bytes.
	want := "07" + "0102" + "05010161" + "01" + "05010162" + "030101" + "\n"
	if stdout != want {
		t.Errorf("encode = %q, want %q", stdout, want)
	}
}

func TestEncodeJSONC(t *testing.T) {
	stdout, _, err := runCLI(t, "[1, /* two */ 2,]", "encode", "--output-hex")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if want := "060102030101030102\n"; stdout != want {
		t.Errorf("encode = %q, want %q", stdout, want)
	}
}

func TestEncodeDecodeRoundtrip(t *testing.T) {
	encoded, _, err := runCLI(t, `{"zeta": [1, null], "alpha": "text"}`, "encode")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, _, err := runCLI(t, encoded, "decode", "--compact")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if want := `{"alpha":"text","zeta":[1,null]}` + "\n"; decoded != want {
		t.Errorf("decode = %q, want %q", decoded, want)
	}
}

func TestEncodeFromCBOR(t *testing.T) {
	// CBOR {"a": 1}
	stdout, _, err := runCLI(t, "a1 61 61 01", "encode", "--from", "cbor", "-x", "--output-hex")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if want := "07010105010161030101\n"; stdout != want {
		t.Errorf("encode = %q, want %q", stdout, want)
	}
}

func TestEncodeRejectsFloat(t *testing.T) {
	_, _, err := runCLI(t, `{"ratio": 1.5}`, "encode")
	if !isValidation(err) {
		t.Fatalf("encode error = %v, want a validation error", err)
	}
	if !errors.Is(err, term.ErrUnsupportedType) {
		t.Errorf("encode error = %v, want term.ErrUnsupportedType", err)
	}
}

func TestDecodeToCBOR(t *testing.T) {
	// Term {"a": 1} back to CBOR {"a": 1}.
	stdout, _, err := runCLI(t, "07 0101 05010161 030101", "decode", "-x", "--to", "cbor", "--output-hex")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if want := "a1616101\n"; stdout != want {
		t.Errorf("decode = %q, want %q", stdout, want)
	}
}

func TestDecodeBytesMode(t *testing.T) {
	// The byte string "hi".
	stdout, _, err := runCLI(t, "05 0102 6869", "decode", "-x", "--bytes", "hex")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if stdout != "\"6869\"\n" {
		t.Errorf("decode = %q, want hex string", stdout)
	}
}

func TestDecodeRejectsNonCanonical(t *testing.T) {
	_, _, err := runCLI(t, "03 80", "decode", "-x")
	if !errors.Is(err, term.ErrNonCanonicalZero) {
		t.Errorf("decode error = %v, want term.ErrNonCanonicalZero", err)
	}
}

func TestDiag(t *testing.T) {
	stdout, _, err := runCLI(t, "06 0102 00 01", "diag", "--hex")
	if err != nil {
		t.Fatalf("diag: %v", err)
	}
	if stdout != "[null, true]\n" {
		t.Errorf("diag = %q, want %q", stdout, "[null, true]\n")
	}
}

func TestValidate(t *testing.T) {
	stdout, _, err := runCLI(t, "030101", "validate", "-x")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if stdout != "valid\n" {
		t.Errorf("validate = %q, want valid", stdout)
	}

	stdout, _, err = runCLI(t, "03 80", "validate", "-x")
	if code := exitCode(err); code != 1 {
		t.Fatalf("validate of negative zero: err = %v, want exit code 1", err)
	}
	if !strings.HasPrefix(stdout, "invalid: ") {
		t.Errorf("validate = %q, want invalid diagnostic", stdout)
	}

	_, _, err = runCLI(t, "00 00", "validate", "-x")
	if code := exitCode(err); code != 1 {
		t.Errorf("validate with trailing bytes: err = %v, want exit code 1", err)
	}
}

func TestValidateSequence(t *testing.T) {
	stdout, _, err := runCLI(t, "00 01 02", "validate", "-x", "-s")
	if err != nil {
		t.Fatalf("validate -s: %v", err)
	}
	if stdout != "valid (3 terms)\n" {
		t.Errorf("validate -s = %q", stdout)
	}

	stdout, _, err = runCLI(t, "00 03 80", "validate", "-x", "--sequence")
	if exitCode(err) != 1 {
		t.Fatalf("validate -s: err = %v, want exit code 1", err)
	}
	if !strings.Contains(stdout, "term 1") || !strings.Contains(stdout, "at offset 2") {
		t.Errorf("validate -s diagnostic = %q, want term 1 at offset 2", stdout)
	}
}

func TestValidateTerms(t *testing.T) {
	count, err := validateTerms([]byte{0x00, 0x01}, true)
	if err != nil || count != 2 {
		t.Errorf("validateTerms = %d, %v; want 2, nil", count, err)
	}

	_, err = validateTerms([]byte{0x00, 0x01, 0x04}, true)
	var decodeError *term.DecodeError
	if !errors.As(err, &decodeError) {
		t.Fatalf("validateTerms error = %v, want *term.DecodeError", err)
	}
	if decodeError.Offset != 2 {
		t.Errorf("offset = %d, want 2", decodeError.Offset)
	}
	if !errors.Is(err, term.ErrUnknownType) {
		t.Errorf("validateTerms error = %v, want term.ErrUnknownType", err)
	}
}

func TestHash(t *testing.T) {
	stdout, _, err := runCLI(t, "00", "hash", "-x")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	sum := sha256.Sum256([]byte{0x00})
	if want := hex.EncodeToString(sum[:]) + "  sha256\n"; stdout != want {
		t.Errorf("hash = %q, want %q", stdout, want)
	}

	fromJSON, _, err := runCLI(t, `{"a": 1}`, "hash", "--from", "json", "-a", "blake3")
	if err != nil {
		t.Fatalf("hash --from json: %v", err)
	}
	fromTerm, _, err := runCLI(t, "07 0101 05010161 030101", "hash", "-x", "--algorithm", "blake3")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if fromJSON != fromTerm {
		t.Errorf("JSON and term input hash differently: %q vs %q", fromJSON, fromTerm)
	}
	if !strings.HasSuffix(fromTerm, "  blake3\n") {
		t.Errorf("hash output %q does not name blake3", fromTerm)
	}
}

func TestHashRejectsNonCanonical(t *testing.T) {
	_, _, err := runCLI(t, "03 02 00 01", "hash", "-x")
	if !errors.Is(err, term.ErrVarintNotMinimal) {
		t.Errorf("hash error = %v, want term.ErrVarintNotMinimal", err)
	}
}

func TestSignVerify(t *testing.T) {
	keyDir := filepath.Join(t.TempDir(), "keys")

	publicHex, stderr, err := runCLI(t, "", "keygen", "--dir", keyDir)
	if err != nil {
		t.Fatalf("keygen: %v", err)
	}
	publicHex = strings.TrimSpace(publicHex)
	if len(publicHex) != 64 {
		t.Fatalf("keygen printed %q, want a 32-byte hex key", publicHex)
	}
	if !strings.Contains(stderr, "generated signing keypair") {
		t.Errorf("keygen log = %q, want generation message", stderr)
	}

	again, _, err := runCLI(t, "", "keygen", "--dir", keyDir)
	if err != nil {
		t.Fatalf("second keygen: %v", err)
	}
	if strings.TrimSpace(again) != publicHex {
		t.Error("second keygen replaced the existing keypair")
	}

	envelope, _, err := runCLI(t, `{"action": "status"}`, "sign", "--dir", keyDir, "--from", "json")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	stdout, _, err := runCLI(t, envelope, "verify", "--dir", keyDir)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !strings.Contains(stdout, `"action": "status"`) {
		t.Errorf("verify = %q, want the payload", stdout)
	}

	stdout, _, err = runCLI(t, envelope, "verify", "--public-key", publicHex, "-q")
	if err != nil {
		t.Fatalf("verify --public-key: %v", err)
	}
	if stdout != "" {
		t.Errorf("verify -q printed %q", stdout)
	}

	tampered := []byte(envelope)
	tampered[len(tampered)-1] ^= 0xff
	_, stderr, err = runCLI(t, string(tampered), "verify", "--dir", keyDir)
	if exitCode(err) != 1 {
		t.Fatalf("verify of tampered envelope: err = %v, want exit code 1", err)
	}
	if !strings.Contains(stderr, "verification failed") {
		t.Errorf("verify stderr = %q", stderr)
	}
}

func TestSignRequiresCanonicalTerm(t *testing.T) {
	keyDir := t.TempDir()
	if _, _, err := runCLI(t, "", "keygen", "--dir", keyDir); err != nil {
		t.Fatalf("keygen: %v", err)
	}
	_, _, err := runCLI(t, "03 80", "sign", "--dir", keyDir, "-x")
	if !isValidation(err) {
		t.Errorf("sign error = %v, want a validation error", err)
	}
}

func TestSignWithoutKey(t *testing.T) {
	_, _, err := runCLI(t, "00", "sign", "-x", "--dir", filepath.Join(t.TempDir(), "none"))
	if err == nil || !strings.Contains(err.Error(), "keygen") {
		t.Errorf("sign error = %v, want a hint to run keygen", err)
	}
}

func TestPackUnpack(t *testing.T) {
	directory := t.TempDir()

	var document strings.Builder
	document.WriteString("[")
	for index := range 100 {
		if index > 0 {
			document.WriteString(",")
		}
		document.WriteString(`{"principal": "iree/amdgpu/pm", "action": "create-sandbox"}`)
	}
	document.WriteString("]")

	encoded, _, err := runCLI(t, document.String(), "encode")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	termPath := filepath.Join(directory, "value.term")
	if err := os.WriteFile(termPath, []byte(encoded), 0644); err != nil {
		t.Fatal(err)
	}

	for _, compression := range []string{"none", "lz4", "zstd", "auto"} {
		t.Run(compression, func(t *testing.T) {
			packed, _, err := runCLI(t, "", "pack", "--compression", compression, termPath)
			if err != nil {
				t.Fatalf("pack: %v", err)
			}
			if compression != "none" && len(packed) >= len(encoded) {
				t.Errorf("%s frame is %d bytes for a %d byte term", compression, len(packed), len(encoded))
			}

			framePath := filepath.Join(directory, compression+".frame")
			if err := os.WriteFile(framePath, []byte(packed), 0644); err != nil {
				t.Fatal(err)
			}
			unpacked, _, err := runCLI(t, "", "unpack", framePath)
			if err != nil {
				t.Fatalf("unpack: %v", err)
			}
			if unpacked != encoded {
				t.Error("unpack did not return the packed term")
			}
		})
	}
}

func TestPackRejectsNonCanonical(t *testing.T) {
	_, _, err := runCLI(t, "00 00", "pack", "-x")
	if !errors.Is(err, term.ErrTrailingBytes) {
		t.Errorf("pack error = %v, want term.ErrTrailingBytes", err)
	}
}

func TestConfigFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "bureau-term.yaml")
	content := "output:\n  bytes: hex\n  compact: true\ndigest:\n  algorithm: blake2b\n"
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := runCLI(t, "06 0101 05 0102 6869", "decode", "-x", "--config", configPath)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if stdout != "[\"6869\"]\n" {
		t.Errorf("decode with config = %q", stdout)
	}

	stdout, _, err = runCLI(t, "00", "hash", "-x", "--config", configPath)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !strings.HasSuffix(stdout, "  blake2b\n") {
		t.Errorf("hash with config = %q, want blake2b", stdout)
	}
}

func TestInvalidConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "bureau-term.yaml")
	if err := os.WriteFile(configPath, []byte("digest:\n  algorithm: md5\n"), 0644); err != nil {
		t.Fatal(err)
	}
	_, _, err := runCLI(t, "00", "diag", "-x", "--config", configPath)
	if !isValidation(err) || !strings.Contains(err.Error(), "digest.algorithm") {
		t.Errorf("error = %v, want a digest.algorithm validation error", err)
	}
}

func TestVersion(t *testing.T) {
	for _, args := range [][]string{{"version"}, {"--version"}} {
		stdout, _, err := runCLI(t, "", args...)
		if err != nil {
			t.Fatalf("%v: %v", args, err)
		}
		if !strings.HasPrefix(stdout, "bureau-term ") {
			t.Errorf("%v = %q", args, stdout)
		}
	}

	stdout, _, err := runCLI(t, "", "version", "--full")
	if err != nil {
		t.Fatalf("version --full: %v", err)
	}
	if !strings.Contains(stdout, "Digest: ") {
		t.Errorf("version --full = %q, want binary digest", stdout)
	}
}

func TestUsageErrors(t *testing.T) {
	if _, _, err := runCLI(t, ""); !isValidation(err) {
		t.Errorf("no command: err = %v, want validation error", err)
	}
	if _, _, err := runCLI(t, "", "frobnicate"); !isValidation(err) {
		t.Errorf("unknown command: err = %v, want validation error", err)
	}
	if _, _, err := runCLI(t, "00", "diag", "-x", "extra", "args"); !isValidation(err) {
		t.Errorf("extra args: err = %v, want validation error", err)
	}
	if _, _, err := runCLI(t, "", "diag"); !isValidation(err) {
		t.Errorf("empty input: err = %v, want validation error", err)
	}

	stdout, _, err := runCLI(t, "", "help")
	if err != nil {
		t.Fatalf("help: %v", err)
	}
	for _, command := range commands() {
		if !strings.Contains(stdout, command.name) {
			t.Errorf("usage does not list %s", command.name)
		}
	}

	_, stderr, err := runCLI(t, "", "encode", "--help")
	if err != nil {
		t.Fatalf("encode --help: %v", err)
	}
	if !strings.Contains(stderr, "--from") {
		t.Errorf("encode --help = %q, want flag list", stderr)
	}
}
