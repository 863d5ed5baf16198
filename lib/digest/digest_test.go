// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package digest

import (
	"bytes"
	"crypto/sha256"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2b"

	"github.com/bureau-foundation/termcodec/lib/term"
)

func TestSumMatchesReferenceHashes(t *testing.T) {
	data := []byte("hello, bureau")

	sha, err := Sum(SHA256, data)
	if err != nil {
		t.Fatalf("Sum(SHA256): %v", err)
	}
	if want := sha256.Sum256(data); sha != Digest(want) {
		t.Errorf("Sum(SHA256) = %s, want %x", sha, want)
	}

	b2, err := Sum(BLAKE2b, data)
	if err != nil {
		t.Fatalf("Sum(BLAKE2b): %v", err)
	}
	if want := blake2b.Sum256(data); b2 != Digest(want) {
		t.Errorf("Sum(BLAKE2b) = %s, want %x", b2, want)
	}
}

func TestBLAKE3IsKeyed(t *testing.T) {
	data := []byte("hello, bureau")
	keyed, err := Sum(BLAKE3, data)
	if err != nil {
		t.Fatalf("Sum(BLAKE3): %v", err)
	}
	if unkeyed := blake3.Sum256(data); keyed == Digest(unkeyed) {
		t.Error("BLAKE3 term digest equals the unkeyed BLAKE3 hash")
	}

	again, _ := Sum(BLAKE3, data)
	if keyed != again {
		t.Error("BLAKE3 digest is not deterministic")
	}
}

func TestDomainKeyPadding(t *testing.T) {
	name := "bureau.term.digest"
	if string(domainKey[:len(name)]) != name {
		t.Errorf("domain key prefix = %q, want %q", domainKey[:len(name)], name)
	}
	for index, b := range domainKey[len(name):] {
		if b != 0 {
			t.Errorf("domain key byte %d = %#x, want 0", len(name)+index, b)
		}
	}
}

func TestAlgorithmsDiffer(t *testing.T) {
	data := []byte{0x07, 0x00}
	seen := make(map[Digest]Algorithm)
	for _, algorithm := range []Algorithm{SHA256, BLAKE3, BLAKE2b} {
		sum, err := Sum(algorithm, data)
		if err != nil {
			t.Fatalf("Sum(%s): %v", algorithm, err)
		}
		if previous, exists := seen[sum]; exists {
			t.Errorf("%s and %s produced the same digest", previous, algorithm)
		}
		seen[sum] = algorithm
	}
}

func TestSumValueIgnoresKeyOrder(t *testing.T) {
	first := term.Map(
		term.Entry{Key: term.String("zeta"), Value: term.Int(1)},
		term.Entry{Key: term.String("alpha"), Value: term.Int(2)},
	)
	second := term.Map(
		term.Entry{Key: term.String("alpha"), Value: term.Int(2)},
		term.Entry{Key: term.String("zeta"), Value: term.Int(1)},
	)
	for _, algorithm := range []Algorithm{SHA256, BLAKE3, BLAKE2b} {
		a, err := SumValue(algorithm, first)
		if err != nil {
			t.Fatalf("SumValue(%s): %v", algorithm, err)
		}
		b, err := SumValue(algorithm, second)
		if err != nil {
			t.Fatalf("SumValue(%s): %v", algorithm, err)
		}
		if a != b {
			t.Errorf("%s: digests differ for the same map: %s != %s", algorithm, a, b)
		}
	}
}

func TestSumValueHashesEncoding(t *testing.T) {
	value := term.List(term.Int(1), term.String("a"))
	encoded, err := term.Encode(value)
	if err != nil {
		t.Fatal(err)
	}
	got, err := SumValue(SHA256, value)
	if err != nil {
		t.Fatal(err)
	}
	if want := sha256.Sum256(encoded); got != Digest(want) {
		t.Errorf("SumValue = %s, want sha256 of %x", got, encoded)
	}
}

func TestSumValueRejectsUnencodable(t *testing.T) {
	if _, err := SumValue(SHA256, term.Value{}); err == nil {
		t.Error("SumValue accepted an invalid value")
	}
}

func TestSumReader(t *testing.T) {
	content := bytes.Repeat([]byte{0x06, 0x01, 0x00}, 100000)
	want, err := Sum(BLAKE3, content)
	if err != nil {
		t.Fatal(err)
	}
	got, err := SumReader(BLAKE3, bytes.NewReader(content))
	if err != nil {
		t.Fatalf("SumReader: %v", err)
	}
	if got != want {
		t.Errorf("SumReader = %s, want %s", got, want)
	}
}

func TestUnknownAlgorithm(t *testing.T) {
	if _, err := Sum(Algorithm(9), nil); err == nil {
		t.Error("Sum accepted an unknown algorithm")
	}
	if got := Algorithm(9).String(); got != "algorithm(9)" {
		t.Errorf("String = %q", got)
	}
}

func TestParseAlgorithm(t *testing.T) {
	for _, algorithm := range []Algorithm{SHA256, BLAKE3, BLAKE2b} {
		parsed, err := ParseAlgorithm(algorithm.String())
		if err != nil {
			t.Fatalf("ParseAlgorithm(%q): %v", algorithm, err)
		}
		if parsed != algorithm {
			t.Errorf("ParseAlgorithm(%q) = %s", algorithm, parsed)
		}
	}
	if _, err := ParseAlgorithm("md5"); err == nil {
		t.Error("ParseAlgorithm accepted md5")
	}
}

func TestFormatParse(t *testing.T) {
	sum, err := Sum(SHA256, []byte("x"))
	if err != nil {
		t.Fatal(err)
	}
	formatted := Format(sum)
	if len(formatted) != 64 || strings.ToLower(formatted) != formatted {
		t.Errorf("Format = %q, want 64 lowercase hex characters", formatted)
	}
	parsed, err := Parse(formatted)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if parsed != sum {
		t.Errorf("Parse(Format(d)) = %s, want %s", parsed, sum)
	}

	for _, bad := range []string{"", "abc", "zz" + formatted[2:], formatted + "00"} {
		if _, err := Parse(bad); err == nil {
			t.Errorf("Parse(%q) succeeded", bad)
		}
	}
}

func BenchmarkSumValue(b *testing.B) {
	value := term.Object(map[string]term.Value{
		"action":    term.String("create-sandbox"),
		"principal": term.String("iree/amdgpu/pm"),
		"count":     term.Int(42),
	})
	b.ReportAllocs()
	for b.Loop() {
		SumValue(BLAKE3, value)
	}
}

func TestSumFile(t *testing.T) {
	content := []byte("hello, bureau")
	path := filepath.Join(t.TempDir(), "payload")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := SumFile(SHA256, path)
	if err != nil {
		t.Fatalf("SumFile: %v", err)
	}
	if want := sha256.Sum256(content); got != Digest(want) {
		t.Errorf("SumFile = %s, want %x", got, want)
	}

	if _, err := SumFile(SHA256, filepath.Join(t.TempDir(), "does-not-exist")); err == nil {
		t.Error("SumFile should fail for a nonexistent file")
	}
}
