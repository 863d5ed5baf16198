// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"os"

	"github.com/bureau-foundation/termcodec/lib/digest"
)

// SelfDigest returns the digest and absolute path of the running
// binary. os.Executable resolves /proc/self/exe on Linux, so the result
// describes the binary that was started even if it has since been
// replaced on disk.
func SelfDigest(algorithm digest.Algorithm) (digest.Digest, string, error) {
	executable, err := os.Executable()
	if err != nil {
		return digest.Digest{}, "", fmt.Errorf("resolving own executable path: %w", err)
	}
	sum, err := digest.SumFile(algorithm, executable)
	if err != nil {
		return digest.Digest{}, "", fmt.Errorf("hashing own binary: %w", err)
	}
	return sum, executable, nil
}
