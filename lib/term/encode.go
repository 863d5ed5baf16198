// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package term

import "fmt"

// Type tags. These are protocol constants shared with every other
// implementation of the format; 0x04 is reserved and never assigned.
const (
	tagNull    = 0x00
	tagTrue    = 0x01
	tagFalse   = 0x02
	tagInteger = 0x03
	tagBytes   = 0x05
	tagList    = 0x06
	tagMap     = 0x07
)

// MaxDepth is the deepest nesting of lists and maps that Encode writes
// and Decode accepts. The top-level container is at depth 1.
const MaxDepth = 512

// Encode returns the canonical encoding of v. On failure it returns nil
// and one of ErrUnsupportedType, ErrVarintTooLong, ErrDuplicateKey, or
// ErrDepthExceeded.
func Encode(v Value) ([]byte, error) {
	encoded, err := appendTerm(nil, v, 0)
	if err != nil {
		return nil, err
	}
	return encoded, nil
}

// Append appends the canonical encoding of v to dst. On failure dst is
// returned unchanged.
func Append(dst []byte, v Value) ([]byte, error) {
	extended, err := appendTerm(dst, v, 0)
	if err != nil {
		return dst, err
	}
	return extended, nil
}

// Marshal converts x with FromAny and encodes the result.
func Marshal(x any) ([]byte, error) {
	v, err := FromAny(x)
	if err != nil {
		return nil, err
	}
	return Encode(v)
}

// appendTerm writes v at the given container depth. The returned slice
// is only meaningful when err is nil.
func appendTerm(dst []byte, v Value, depth int) ([]byte, error) {
	switch v.kind {
	case KindNull:
		return append(dst, tagNull), nil

	case KindBool:
		if v.boolean {
			return append(dst, tagTrue), nil
		}
		return append(dst, tagFalse), nil

	case KindInteger:
		return AppendInt(append(dst, tagInteger), v.integer)

	case KindBytes:
		dst = AppendLength(append(dst, tagBytes), len(v.bytes))
		return append(dst, v.bytes...), nil

	case KindList:
		if depth+1 > MaxDepth {
			return dst, fmt.Errorf("%w: more than %d nested containers", ErrDepthExceeded, MaxDepth)
		}
		dst = AppendLength(append(dst, tagList), len(v.list))
		for index, element := range v.list {
			var err error
			dst, err = appendTerm(dst, element, depth+1)
			if err != nil {
				return dst, fmt.Errorf("list element %d: %w", index, err)
			}
		}
		return dst, nil

	case KindMap:
		if depth+1 > MaxDepth {
			return dst, fmt.Errorf("%w: more than %d nested containers", ErrDepthExceeded, MaxDepth)
		}
		sorted, err := sortEntries(v.entries, depth+1)
		if err != nil {
			return dst, err
		}
		dst = AppendLength(append(dst, tagMap), len(sorted))
		for _, entry := range sorted {
			dst = append(dst, entry.key...)
			dst, err = appendTerm(dst, entry.entry.Value, depth+1)
			if err != nil {
				return dst, fmt.Errorf("map value for key %x: %w", entry.key, err)
			}
		}
		return dst, nil

	default:
		return dst, fmt.Errorf("%w: %s value", ErrUnsupportedType, v.kind)
	}
}
