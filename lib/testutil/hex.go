// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"encoding/hex"
	"strings"
)

// Hex decodes a hex string written with optional whitespace between
// bytes, or fails the test. Test vectors read better grouped by field:
//
//	testutil.Hex(t, "07 0101 05010161 030101")
func Hex(t interface {
	Helper()
	Fatalf(format string, args ...any)
}, s string) []byte {
	t.Helper()
	decoded, err := hex.DecodeString(strings.Join(strings.Fields(s), ""))
	if err != nil {
		t.Fatalf("invalid hex test vector %q: %v", s, err)
	}
	return decoded
}
