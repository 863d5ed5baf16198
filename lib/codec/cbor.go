// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"fmt"
	"unicode/utf8"

	"github.com/fxamacker/cbor/v2"

	"github.com/bureau-foundation/termcodec/lib/term"
)

// encMode is the CBOR encoder configured with Core Deterministic
// Encoding (RFC 8949 §4.2): sorted map keys, smallest integer
// encoding, no indefinite-length items. Same logical data always
// produces identical bytes.
var encMode cbor.EncMode

// decMode is the CBOR decoder used for term conversion. It keeps the
// default map type (map[any]any) because term maps allow non-string
// keys, and it rejects duplicate keys since a term map cannot hold
// them.
var decMode cbor.DecMode

func init() {
	var err error

	encOptions := cbor.CoreDetEncOptions()
	// Bignums that fit in 64 bits are written as plain integers, so a
	// term integer has one CBOR form regardless of its Go backing type.
	encOptions.BigIntConvert = cbor.BigIntConvertShortest
	encMode, err = encOptions.EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		DupMapKey: cbor.DupMapKeyEnforcedAPF,
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

// ToTerm decodes a single CBOR data item and converts it to a term
// value. Trailing bytes after the item are an error.
func ToTerm(data []byte) (term.Value, error) {
	var native any
	if err := decMode.Unmarshal(data, &native); err != nil {
		return term.Value{}, fmt.Errorf("codec: decoding CBOR: %w", err)
	}
	value, err := fromNative(native)
	if err != nil {
		return term.Value{}, fmt.Errorf("codec: converting CBOR to term: %w", err)
	}
	return value, nil
}

// FromTerm converts a term value to CBOR using Core Deterministic
// Encoding.
func FromTerm(value term.Value) ([]byte, error) {
	native, err := toNative(value)
	if err != nil {
		return nil, fmt.Errorf("codec: converting term to CBOR: %w", err)
	}
	data, err := encMode.Marshal(native)
	if err != nil {
		return nil, fmt.Errorf("codec: encoding CBOR: %w", err)
	}
	return data, nil
}

// fromNative converts decoder output to a term value. Containers are
// walked here rather than in term.FromAny because byte-string map keys
// arrive as cbor.ByteString, and a text key and a byte key with the
// same bytes must stay two entries (term.Encode then reports the
// duplicate) instead of silently merging in a Go map.
func fromNative(native any) (term.Value, error) {
	switch value := native.(type) {
	case cbor.ByteString:
		return term.Bytes([]byte(value)), nil

	case []any:
		elements := make([]term.Value, len(value))
		for index, element := range value {
			converted, err := fromNative(element)
			if err != nil {
				return term.Value{}, fmt.Errorf("array element %d: %w", index, err)
			}
			elements[index] = converted
		}
		return term.List(elements...), nil

	case map[any]any:
		entries := make([]term.Entry, 0, len(value))
		for key, element := range value {
			convertedKey, err := fromNative(key)
			if err != nil {
				return term.Value{}, fmt.Errorf("map key %v: %w", key, err)
			}
			convertedValue, err := fromNative(element)
			if err != nil {
				return term.Value{}, fmt.Errorf("map value for key %v: %w", key, err)
			}
			entries = append(entries, term.Entry{Key: convertedKey, Value: convertedValue})
		}
		return term.Map(entries...), nil

	default:
		return term.FromAny(native)
	}
}

// toNative converts a term value into Go values that encMode writes
// as the corresponding CBOR items.
func toNative(value term.Value) (any, error) {
	switch value.Kind() {
	case term.KindNull:
		return nil, nil

	case term.KindBool:
		b, _ := value.Boolean()
		return b, nil

	case term.KindInteger:
		integer, _ := value.Integer()
		if integer.IsInt64() {
			return integer.Int64(), nil
		}
		if integer.IsUint64() {
			return integer.Uint64(), nil
		}
		return *integer, nil

	case term.KindBytes:
		raw, _ := value.ByteString()
		if utf8.Valid(raw) {
			return string(raw), nil
		}
		return raw, nil

	case term.KindList:
		elements, _ := value.Elements()
		result := make([]any, len(elements))
		for index, element := range elements {
			converted, err := toNative(element)
			if err != nil {
				return nil, fmt.Errorf("list element %d: %w", index, err)
			}
			result[index] = converted
		}
		return result, nil

	case term.KindMap:
		entries, _ := value.Entries()
		result := make(map[any]any, len(entries))
		for _, entry := range entries {
			key, err := toNativeKey(entry.Key)
			if err != nil {
				return nil, err
			}
			converted, err := toNative(entry.Value)
			if err != nil {
				return nil, fmt.Errorf("map value for key %s: %w", entry.Key, err)
			}
			result[key] = converted
		}
		return result, nil

	default:
		return nil, fmt.Errorf("%w: %s value", term.ErrUnsupportedType, value.Kind())
	}
}

// toNativeKey converts a map key to a comparable Go value. Byte keys
// that are not UTF-8 use cbor.ByteString, which encodes as a CBOR byte
// string but, unlike []byte, can be a Go map key.
func toNativeKey(key term.Value) (any, error) {
	switch key.Kind() {
	case term.KindBytes:
		raw, _ := key.ByteString()
		if utf8.Valid(raw) {
			return string(raw), nil
		}
		return cbor.ByteString(raw), nil
	case term.KindInteger:
		integer, _ := key.Integer()
		if integer.IsInt64() {
			return integer.Int64(), nil
		}
		if integer.IsUint64() {
			return integer.Uint64(), nil
		}
		return nil, fmt.Errorf("%w: map key %s does not fit in 64 bits", term.ErrUnsupportedType, key)
	case term.KindBool, term.KindNull:
		return toNative(key)
	default:
		return nil, fmt.Errorf("%w: %s map key", term.ErrUnsupportedType, key.Kind())
	}
}
