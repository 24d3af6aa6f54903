// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package xdr

import (
	"fmt"
)

// Codec is implemented by every concrete XDR type. Struct types encode their
// fields in declaration order; union types encode a 4-byte discriminant
// followed by the active arm's payload. Field order is part of the wire
// format and must never change independent of a protocol version bump.
type Codec interface {
	EncodeXDR(enc *Encoder) error
	DecodeXDR(dec *Decoder) error
}

// Marshal encodes a value to its XDR byte representation
func Marshal(v Codec) ([]byte, error) {
	enc := NewEncoder()
	if err := v.EncodeXDR(enc); err != nil {
		return nil, fmt.Errorf("XDR encode failed: %w", err)
	}
	return enc.Bytes(), nil
}

// Unmarshal decodes a value from its XDR byte representation. The input must
// be consumed exactly: trailing bytes are an error, since they indicate the
// caller decoded against the wrong type.
func Unmarshal(data []byte, v Codec) error {
	dec := NewDecoder(data)
	if err := v.DecodeXDR(dec); err != nil {
		return fmt.Errorf("XDR decode failed: %w", err)
	}
	if dec.Remaining() > 0 {
		return fmt.Errorf("%w: %d bytes", ErrTrailingBytes, dec.Remaining())
	}
	return nil
}

// codecPtr constrains a pointer type *T that implements Codec, letting the
// generic helpers below allocate and decode values without reflection
type codecPtr[T any] interface {
	*T
	Codec
}

// EncodeOptional writes a 4-byte presence flag followed by the value when
// present. A nil pointer encodes as absent.
func EncodeOptional[T any, PT codecPtr[T]](enc *Encoder, v *T) error {
	if v == nil {
		return enc.EncodeUint32(0)
	}
	if err := enc.EncodeUint32(1); err != nil {
		return err
	}
	return PT(v).EncodeXDR(enc)
}

// DecodeOptional reads a 4-byte presence flag and, when set, the value.
// Any flag other than 0 or 1 is malformed input.
func DecodeOptional[T any, PT codecPtr[T]](dec *Decoder) (*T, error) {
	flag, err := dec.DecodeUint32()
	if err != nil {
		return nil, err
	}
	switch flag {
	case 0:
		return nil, nil
	case 1:
		v := new(T)
		if err := PT(v).DecodeXDR(dec); err != nil {
			return nil, err
		}
		return v, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidOptionalFlag, flag)
	}
}

// EncodeVector writes a 4-byte element count followed by each element in
// order
func EncodeVector[T any, PT codecPtr[T]](enc *Encoder, items []T) error {
	if err := enc.EncodeUint32(uint32(len(items))); err != nil { // #nosec G115
		return err
	}
	for i := range items {
		if err := PT(&items[i]).EncodeXDR(enc); err != nil {
			return err
		}
	}
	return nil
}

// DecodeVector reads a 4-byte element count followed by that many elements.
// Every XDR type occupies at least 4 bytes on the wire, so a count larger
// than a quarter of the remaining input is rejected up front rather than
// letting a corrupt count drive a huge allocation.
func DecodeVector[T any, PT codecPtr[T]](dec *Decoder) ([]T, error) {
	count, err := dec.DecodeUint32()
	if err != nil {
		return nil, err
	}
	if uint64(count) > uint64(dec.Remaining())/4 {
		return nil, fmt.Errorf(
			"%w: %d elements declared, %d bytes remaining",
			ErrLengthExceedsData,
			count,
			dec.Remaining(),
		)
	}
	items := make([]T, count)
	for i := range items {
		if err := PT(&items[i]).DecodeXDR(dec); err != nil {
			return nil, err
		}
	}
	return items, nil
}

// EncodeFixedArray writes exactly len(items) elements with no count prefix.
// The length is part of the schema and must be agreed on by the decoder.
func EncodeFixedArray[T any, PT codecPtr[T]](enc *Encoder, items []T) error {
	for i := range items {
		if err := PT(&items[i]).EncodeXDR(enc); err != nil {
			return err
		}
	}
	return nil
}

// DecodeFixedArray reads exactly n elements with no count prefix
func DecodeFixedArray[T any, PT codecPtr[T]](dec *Decoder, n int) ([]T, error) {
	if n < 0 {
		return nil, fmt.Errorf("negative array length %d", n)
	}
	items := make([]T, n)
	for i := range items {
		if err := PT(&items[i]).DecodeXDR(dec); err != nil {
			return nil, err
		}
	}
	return items, nil
}
