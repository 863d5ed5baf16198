// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package term

import (
	"errors"
	"fmt"
)

// Errors returned by Encode.
var (
	ErrUnsupportedType = errors.New("term: unsupported type")
	ErrDuplicateKey    = errors.New("term: duplicate map key")
)

// Errors returned by Decode, always wrapped in a *DecodeError.
var (
	ErrOutOfBounds      = errors.New("term: out of bounds")
	ErrUnknownType      = errors.New("term: unknown type")
	ErrNonCanonicalZero = errors.New("term: noncanonical zero")
	ErrVarintNotMinimal = errors.New("term: varint magnitude has a leading zero byte")
	ErrLengthOverflow   = errors.New("term: length overflow")
	ErrLengthIsNegative = errors.New("term: length is negative")
	ErrMapNotCanonical  = errors.New("term: map not canonical")
	ErrTrailingBytes    = errors.New("term: trailing bytes")
)

// Errors returned by both Encode and Decode.
var (
	ErrVarintTooLong = errors.New("term: varint too long")
	ErrDepthExceeded = errors.New("term: nesting depth exceeded")
)

// DecodeError reports malformed input. Every error returned by Decode,
// DecodePrefix, ReadInt, and ReadLength is a *DecodeError; no error
// returned by Encode is.
type DecodeError struct {
	// Offset is the position in the input where the offending item
	// starts.
	Offset int

	// Err is the sentinel describing the failure, possibly wrapped
	// with detail.
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%v (at offset %d)", e.Err, e.Offset)
}

// Unwrap returns the underlying error so errors.Is matches sentinels.
func (e *DecodeError) Unwrap() error { return e.Err }
