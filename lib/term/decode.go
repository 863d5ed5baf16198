// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package term

import (
	"bytes"
	"fmt"
)

// Decode parses exactly one term from data. It rejects any input that
// is not the canonical encoding of its value, and any input with bytes
// left over after the term. Every error is a *DecodeError.
func Decode(data []byte) (Value, error) {
	reader := decoder{data: data}
	v, err := reader.readTerm(0)
	if err != nil {
		return Value{}, err
	}
	if reader.offset != len(data) {
		return Value{}, reader.fail(reader.offset, fmt.Errorf("%w: %d bytes after the term",
			ErrTrailingBytes, len(data)-reader.offset))
	}
	return v, nil
}

// DecodePrefix parses one term from the start of data and returns it
// with the unconsumed remainder. Use it to walk a sequence of
// concatenated terms.
func DecodePrefix(data []byte) (Value, []byte, error) {
	reader := decoder{data: data}
	v, err := reader.readTerm(0)
	if err != nil {
		return Value{}, nil, err
	}
	return v, data[reader.offset:], nil
}

// decoder holds the state of a single decode call: the input and a
// cursor that only moves forward.
type decoder struct {
	data   []byte
	offset int
}

func (d *decoder) fail(offset int, err error) error {
	return &DecodeError{Offset: offset, Err: err}
}

func (d *decoder) remaining() int {
	return len(d.data) - d.offset
}

func (d *decoder) readTerm(depth int) (Value, error) {
	start := d.offset
	if start >= len(d.data) {
		return Value{}, d.fail(start, fmt.Errorf("%w: expected a type tag", ErrOutOfBounds))
	}
	tag := d.data[start]
	d.offset++

	switch tag {
	case tagNull:
		return Null(), nil

	case tagTrue:
		return Bool(true), nil

	case tagFalse:
		return Bool(false), nil

	case tagInteger:
		negative, magnitude, err := d.readVarint()
		if err != nil {
			return Value{}, err
		}
		return Value{kind: KindInteger, integer: signedInt(negative, magnitude)}, nil

	case tagBytes:
		lengthStart := d.offset
		length, err := d.readLength()
		if err != nil {
			return Value{}, err
		}
		if length > d.remaining() {
			return Value{}, d.fail(lengthStart, fmt.Errorf("%w: byte string of %d bytes, %d remain",
				ErrOutOfBounds, length, d.remaining()))
		}
		raw := bytes.Clone(d.data[d.offset : d.offset+length])
		if raw == nil {
			raw = []byte{}
		}
		d.offset += length
		return Value{kind: KindBytes, bytes: raw}, nil

	case tagList:
		if depth+1 > MaxDepth {
			return Value{}, d.fail(start, fmt.Errorf("%w: more than %d nested containers", ErrDepthExceeded, MaxDepth))
		}
		count, err := d.readLength()
		if err != nil {
			return Value{}, err
		}
		// Every element takes at least one byte, so the remaining input
		// bounds the allocation regardless of the declared count.
		elements := make([]Value, 0, min(count, d.remaining()))
		for range count {
			element, err := d.readTerm(depth + 1)
			if err != nil {
				return Value{}, err
			}
			elements = append(elements, element)
		}
		return Value{kind: KindList, list: elements}, nil

	case tagMap:
		if depth+1 > MaxDepth {
			return Value{}, d.fail(start, fmt.Errorf("%w: more than %d nested containers", ErrDepthExceeded, MaxDepth))
		}
		count, err := d.readLength()
		if err != nil {
			return Value{}, err
		}
		entries := make([]Entry, 0, min(count, d.remaining()/2))
		var previousKey []byte
		for range count {
			keyStart := d.offset
			key, err := d.readTerm(depth + 1)
			if err != nil {
				return Value{}, err
			}
			keyBytes := d.data[keyStart:d.offset]
			if !inCanonicalOrder(previousKey, keyBytes) {
				return Value{}, d.fail(keyStart, fmt.Errorf("%w: key %x does not sort after %x",
					ErrMapNotCanonical, keyBytes, previousKey))
			}
			previousKey = keyBytes

			value, err := d.readTerm(depth + 1)
			if err != nil {
				return Value{}, err
			}
			entries = append(entries, Entry{Key: key, Value: value})
		}
		return Value{kind: KindMap, entries: entries}, nil

	default:
		return Value{}, d.fail(start, fmt.Errorf("%w: tag 0x%02x", ErrUnknownType, tag))
	}
}
