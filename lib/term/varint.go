// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package term

import (
	"fmt"
	"math/big"
)

// MaxSafeInteger is the largest magnitude the decoder accepts for an
// integer, length, or count: 2^53 - 1, the largest integer that every
// peer implementation can represent exactly.
const MaxSafeInteger = 1<<53 - 1

const (
	// maxMagnitudeBytes caps a varint magnitude at 128 bits.
	maxMagnitudeBytes = 16

	signBit    = 0x80
	lengthMask = 0x7f

	// maxSafeBytes is the number of bytes needed for MaxSafeInteger.
	// Any minimal magnitude longer than this is out of range.
	maxSafeBytes = 7
)

// AppendInt appends the varint encoding of n to dst. It fails with
// ErrVarintTooLong when the magnitude of n needs more than 16 bytes; dst
// is returned unchanged in that case.
func AppendInt(dst []byte, n *big.Int) ([]byte, error) {
	if n.Sign() == 0 {
		return append(dst, 0x00), nil
	}

	// Bytes is the absolute value, big-endian, without leading zeros.
	magnitude := n.Bytes()
	if len(magnitude) > maxMagnitudeBytes {
		return dst, fmt.Errorf("%w: magnitude needs %d bytes, limit is %d",
			ErrVarintTooLong, len(magnitude), maxMagnitudeBytes)
	}

	header := byte(len(magnitude))
	if n.Sign() < 0 {
		header |= signBit
	}
	dst = append(dst, header)
	return append(dst, magnitude...), nil
}

// AppendLength appends the varint encoding of a non-negative length or
// count. Lengths come from len(), so a negative argument is a caller
// bug and panics.
func AppendLength(dst []byte, n int) []byte {
	if n < 0 {
		panic(fmt.Sprintf("term: AppendLength called with negative length %d", n))
	}
	return appendUint(dst, uint64(n))
}

// appendUint is the allocation-free path for non-negative values that
// fit in 64 bits.
func appendUint(dst []byte, n uint64) []byte {
	if n == 0 {
		return append(dst, 0x00)
	}
	length := 0
	for shifted := n; shifted != 0; shifted >>= 8 {
		length++
	}
	dst = append(dst, byte(length))
	for shift := (length - 1) * 8; shift >= 0; shift -= 8 {
		dst = append(dst, byte(n>>uint(shift)))
	}
	return dst
}

// ReadInt decodes one varint from the start of data. It returns the
// value and the number of bytes consumed.
func ReadInt(data []byte) (*big.Int, int, error) {
	reader := decoder{data: data}
	negative, magnitude, err := reader.readVarint()
	if err != nil {
		return nil, 0, err
	}
	return signedInt(negative, magnitude), reader.offset, nil
}

// ReadLength decodes one non-negative varint (a length or count) from
// the start of data. It returns the value and the number of bytes
// consumed.
func ReadLength(data []byte) (int, int, error) {
	reader := decoder{data: data}
	length, err := reader.readLength()
	if err != nil {
		return 0, 0, err
	}
	return length, reader.offset, nil
}

// readVarint reads a sign and magnitude at the cursor. Every
// non-canonical form is rejected here: negative zero, a leading zero
// byte, and anything beyond MaxSafeInteger.
func (d *decoder) readVarint() (negative bool, magnitude uint64, err error) {
	start := d.offset
	if start >= len(d.data) {
		return false, 0, d.fail(start, ErrOutOfBounds)
	}
	header := d.data[start]
	d.offset++

	if header == 0x00 {
		return false, 0, nil
	}
	if header == signBit {
		return false, 0, d.fail(start, ErrNonCanonicalZero)
	}

	length := int(header & lengthMask)
	if length > maxMagnitudeBytes {
		return false, 0, d.fail(start, fmt.Errorf("%w: header declares %d magnitude bytes, limit is %d",
			ErrVarintTooLong, length, maxMagnitudeBytes))
	}
	if length > len(d.data)-d.offset {
		return false, 0, d.fail(start, fmt.Errorf("%w: varint needs %d magnitude bytes, %d remain",
			ErrOutOfBounds, length, len(d.data)-d.offset))
	}

	raw := d.data[d.offset : d.offset+length]
	if raw[0] == 0x00 {
		return false, 0, d.fail(start, ErrVarintNotMinimal)
	}
	if length > maxSafeBytes {
		return false, 0, d.fail(start, fmt.Errorf("%w: %d byte magnitude exceeds %d",
			ErrLengthOverflow, length, uint64(MaxSafeInteger)))
	}
	for _, b := range raw {
		magnitude = magnitude<<8 | uint64(b)
	}
	if magnitude > MaxSafeInteger {
		return false, 0, d.fail(start, fmt.Errorf("%w: %d exceeds %d",
			ErrLengthOverflow, magnitude, uint64(MaxSafeInteger)))
	}

	d.offset += length
	return header&signBit != 0, magnitude, nil
}

// readLength reads a varint that must not be negative.
func (d *decoder) readLength() (int, error) {
	start := d.offset
	negative, magnitude, err := d.readVarint()
	if err != nil {
		return 0, err
	}
	if negative {
		return 0, d.fail(start, fmt.Errorf("%w: -%d", ErrLengthIsNegative, magnitude))
	}
	return int(magnitude), nil
}

func signedInt(negative bool, magnitude uint64) *big.Int {
	n := new(big.Int).SetUint64(magnitude)
	if negative {
		n.Neg(n)
	}
	return n
}
