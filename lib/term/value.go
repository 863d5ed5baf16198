// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package term

import (
	"bytes"
	"fmt"
	"math/big"
)

// Kind identifies which member of the term union a Value holds.
type Kind uint8

const (
	// KindInvalid is the zero Kind. It models an absent value and is
	// rejected by Encode with ErrUnsupportedType.
	KindInvalid Kind = iota
	KindNull
	KindBool
	KindInteger
	KindBytes
	KindList
	KindMap
)

// String returns the lowercase name of the kind.
func (kind Kind) String() string {
	switch kind {
	case KindInvalid:
		return "invalid"
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInteger:
		return "integer"
	case KindBytes:
		return "bytes"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return fmt.Sprintf("kind(%d)", uint8(kind))
	}
}

// Value is one node of a term tree. Values are immutable: constructors
// copy their arguments and accessors return copies, so a Value can be
// shared between goroutines.
//
// The zero Value is invalid. Build values with Null, Bool, Int, Uint,
// BigInt, String, Bytes, List, Map, Object, or FromAny.
type Value struct {
	kind    Kind
	boolean bool
	integer *big.Int
	bytes   []byte
	list    []Value
	entries []Entry
}

// Entry is one key/value pair of a map.
type Entry struct {
	Key   Value
	Value Value
}

// Null returns the null value.
func Null() Value {
	return Value{kind: KindNull}
}

// Bool returns a boolean value.
func Bool(b bool) Value {
	return Value{kind: KindBool, boolean: b}
}

// Int returns an integer value.
func Int(n int64) Value {
	return Value{kind: KindInteger, integer: big.NewInt(n)}
}

// Uint returns an integer value.
func Uint(n uint64) Value {
	return Value{kind: KindInteger, integer: new(big.Int).SetUint64(n)}
}

// BigInt returns an integer value holding a copy of n. A nil n yields
// the invalid Value.
func BigInt(n *big.Int) Value {
	if n == nil {
		return Value{}
	}
	return Value{kind: KindInteger, integer: new(big.Int).Set(n)}
}

// String returns a byte string holding the UTF-8 bytes of s. It encodes
// exactly like Bytes([]byte(s)).
func String(s string) Value {
	return Value{kind: KindBytes, bytes: []byte(s)}
}

// Bytes returns a byte string holding a copy of b.
func Bytes(b []byte) Value {
	return Value{kind: KindBytes, bytes: bytes.Clone(b)}
}

// List returns a list of the given elements.
func List(elements ...Value) Value {
	return Value{kind: KindList, list: append([]Value{}, elements...)}
}

// Map returns a map with the given entries. Entry order does not affect
// the encoding. Entries whose keys encode identically make Encode fail
// with ErrDuplicateKey.
func Map(entries ...Entry) Value {
	return Value{kind: KindMap, entries: append([]Entry{}, entries...)}
}

// Object returns a map with string keys. It encodes exactly like the
// equivalent Map with String keys.
func Object(fields map[string]Value) Value {
	entries := make([]Entry, 0, len(fields))
	for name, field := range fields {
		entries = append(entries, Entry{Key: String(name), Value: field})
	}
	return Value{kind: KindMap, entries: entries}
}

// Kind returns which member of the union v holds.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the null value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Boolean returns the boolean held by v. The second result is false if
// v is not a bool.
func (v Value) Boolean() (bool, bool) {
	return v.boolean, v.kind == KindBool
}

// Integer returns a copy of the integer held by v. The second result is
// false if v is not an integer.
func (v Value) Integer() (*big.Int, bool) {
	if v.kind != KindInteger {
		return nil, false
	}
	return new(big.Int).Set(v.integer), true
}

// Int64 returns the integer held by v if it is an integer that fits in
// an int64.
func (v Value) Int64() (int64, bool) {
	if v.kind != KindInteger || !v.integer.IsInt64() {
		return 0, false
	}
	return v.integer.Int64(), true
}

// ByteString returns a copy of the bytes held by v. The second result
// is false if v is not a byte string.
func (v Value) ByteString() ([]byte, bool) {
	if v.kind != KindBytes {
		return nil, false
	}
	return bytes.Clone(v.bytes), true
}

// Elements returns the elements of a list. The second result is false
// if v is not a list.
func (v Value) Elements() ([]Value, bool) {
	if v.kind != KindList {
		return nil, false
	}
	return append([]Value{}, v.list...), true
}

// Entries returns the entries of a map. Decoded maps return entries in
// canonical order; constructed maps return them as given.
func (v Value) Entries() ([]Entry, bool) {
	if v.kind != KindMap {
		return nil, false
	}
	return append([]Entry{}, v.entries...), true
}

// Len returns the number of bytes, elements, or entries in v, and 0 for
// scalar kinds.
func (v Value) Len() int {
	switch v.kind {
	case KindBytes:
		return len(v.bytes)
	case KindList:
		return len(v.list)
	case KindMap:
		return len(v.entries)
	default:
		return 0
	}
}

// Lookup returns the value stored under key in a map. Keys match when
// their encodings are identical, so String("a") finds an entry stored
// under Bytes([]byte("a")).
func (v Value) Lookup(key Value) (Value, bool) {
	if v.kind != KindMap {
		return Value{}, false
	}
	want, err := Encode(key)
	if err != nil {
		return Value{}, false
	}
	for _, entry := range v.entries {
		candidate, err := Encode(entry.Key)
		if err != nil {
			continue
		}
		if CompareKeys(candidate, want) == 0 {
			return entry.Value, true
		}
	}
	return Value{}, false
}

// Equal reports whether a and b have identical canonical encodings.
// This is equality under the decoded model: a String equals the Bytes
// of its UTF-8 form, and map entry order is irrelevant. Values that
// cannot be encoded are not equal to anything.
func Equal(a, b Value) bool {
	encodedA, err := Encode(a)
	if err != nil {
		return false
	}
	encodedB, err := Encode(b)
	if err != nil {
		return false
	}
	return bytes.Equal(encodedA, encodedB)
}

// FromAny converts a native Go value into a Value. Supported inputs:
//
//   - nil → Null
//   - bool → Bool
//   - int, int8, int16, int32, int64, uint, uint8, uint16, uint32,
//     uint64, *big.Int, big.Int → integer
//   - string, []byte → byte string
//   - []any, []Value → List (elements converted recursively)
//   - map[string]any, map[any]any, map[string]Value → Map
//   - Value → itself
//
// Anything else, floats included, fails with ErrUnsupportedType.
func FromAny(x any) (Value, error) {
	switch native := x.(type) {
	case nil:
		return Null(), nil
	case Value:
		return native, nil
	case bool:
		return Bool(native), nil
	case int:
		return Int(int64(native)), nil
	case int8:
		return Int(int64(native)), nil
	case int16:
		return Int(int64(native)), nil
	case int32:
		return Int(int64(native)), nil
	case int64:
		return Int(native), nil
	case uint:
		return Uint(uint64(native)), nil
	case uint8:
		return Uint(uint64(native)), nil
	case uint16:
		return Uint(uint64(native)), nil
	case uint32:
		return Uint(uint64(native)), nil
	case uint64:
		return Uint(native), nil
	case *big.Int:
		if native == nil {
			return Value{}, fmt.Errorf("%w: nil *big.Int", ErrUnsupportedType)
		}
		return BigInt(native), nil
	case big.Int:
		return BigInt(&native), nil
	case string:
		return String(native), nil
	case []byte:
		return Bytes(native), nil
	case []Value:
		return List(native...), nil
	case []any:
		elements := make([]Value, len(native))
		for index, element := range native {
			converted, err := FromAny(element)
			if err != nil {
				return Value{}, fmt.Errorf("list element %d: %w", index, err)
			}
			elements[index] = converted
		}
		return Value{kind: KindList, list: elements}, nil
	case map[string]Value:
		return Object(native), nil
	case map[string]any:
		entries := make([]Entry, 0, len(native))
		for name, field := range native {
			converted, err := FromAny(field)
			if err != nil {
				return Value{}, fmt.Errorf("field %q: %w", name, err)
			}
			entries = append(entries, Entry{Key: String(name), Value: converted})
		}
		return Value{kind: KindMap, entries: entries}, nil
	case map[any]any:
		entries := make([]Entry, 0, len(native))
		for key, element := range native {
			convertedKey, err := FromAny(key)
			if err != nil {
				return Value{}, fmt.Errorf("map key %v: %w", key, err)
			}
			convertedValue, err := FromAny(element)
			if err != nil {
				return Value{}, fmt.Errorf("map value for key %v: %w", key, err)
			}
			entries = append(entries, Entry{Key: convertedKey, Value: convertedValue})
		}
		return Value{kind: KindMap, entries: entries}, nil
	default:
		return Value{}, fmt.Errorf("%w: %T", ErrUnsupportedType, x)
	}
}
