// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for Bureau packages.
//
// [RequireReceive] encapsulates the timeout safety valve pattern
// (select with time.After fallback) so that concurrency tests do not
// need direct time.After calls and a deadlock fails the test instead of
// hanging it.
//
// [Hex] turns a whitespace-grouped hex string into bytes, for writing
// wire-format test vectors field by field.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no Bureau-internal dependencies.
package testutil
