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

// Package xdr implements the XDR (RFC 4506) binary encoding used for all
// wire-format values in the Stellar protocol family: big-endian fixed-width
// integers, 4-byte-aligned length-prefixed variable data, and discriminated
// unions. Encoding is deterministic: equal values always produce identical
// bytes, which the protocol relies on for hashing and signing.
package xdr

import (
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf8"
)

// Encoder is a growable output buffer for XDR encoding. The zero value is
// ready to use.
type Encoder struct {
	buf []byte
}

// NewEncoder returns an empty Encoder
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Bytes returns a snapshot of all bytes written so far. The returned slice
// is a copy and remains valid across further writes.
func (e *Encoder) Bytes() []byte {
	ret := make([]byte, len(e.buf))
	copy(ret, e.buf)
	return ret
}

// Len returns the number of bytes written so far
func (e *Encoder) Len() int {
	return len(e.buf)
}

// WriteBytes appends raw bytes with no length prefix or padding
func (e *Encoder) WriteBytes(data []byte) {
	e.buf = append(e.buf, data...)
}

// EncodeUint32 encodes a 32-bit unsigned integer as 4 big-endian bytes
func (e *Encoder) EncodeUint32(v uint32) error {
	e.buf = binary.BigEndian.AppendUint32(e.buf, v)
	return nil
}

// EncodeInt32 encodes a 32-bit signed integer as 4 big-endian bytes
func (e *Encoder) EncodeInt32(v int32) error {
	return e.EncodeUint32(uint32(v))
}

// EncodeUint64 encodes a 64-bit unsigned integer as 8 big-endian bytes
func (e *Encoder) EncodeUint64(v uint64) error {
	e.buf = binary.BigEndian.AppendUint64(e.buf, v)
	return nil
}

// EncodeInt64 encodes a 64-bit signed integer as 8 big-endian bytes
func (e *Encoder) EncodeInt64(v int64) error {
	return e.EncodeUint64(uint64(v))
}

// EncodeBool encodes a boolean as a 4-byte unsigned integer, 0 or 1
func (e *Encoder) EncodeBool(v bool) error {
	if v {
		return e.EncodeUint32(1)
	}
	return e.EncodeUint32(0)
}

// EncodeFixedOpaque encodes bytes with no length prefix, zero-padded to the
// next 4-byte boundary. The length is part of the schema and must be agreed
// on by the decoder.
func (e *Encoder) EncodeFixedOpaque(data []byte) error {
	e.buf = append(e.buf, data...)
	for i := 0; i < padLength(len(data)); i++ {
		e.buf = append(e.buf, 0)
	}
	return nil
}

// EncodeOpaque encodes bytes with a 4-byte unsigned length prefix, zero-padded
// to the next 4-byte boundary
func (e *Encoder) EncodeOpaque(data []byte) error {
	if uint64(len(data)) > math.MaxUint32 {
		return fmt.Errorf("opaque length %d exceeds uint32", len(data))
	}
	if err := e.EncodeUint32(uint32(len(data))); err != nil {
		return err
	}
	return e.EncodeFixedOpaque(data)
}

// EncodeString encodes a UTF-8 string with the same wire shape as variable
// opaque data. Strings that are not valid UTF-8 are rejected rather than
// emitted as invalid wire bytes.
func (e *Encoder) EncodeString(v string) error {
	if !utf8.ValidString(v) {
		return ErrInvalidUtf8
	}
	return e.EncodeOpaque([]byte(v))
}

// Decoder is a bounds-checked read cursor over XDR input data. The cursor
// only moves forward; any read past the end of the data fails without
// consuming input.
type Decoder struct {
	buf []byte
	pos int
}

// NewDecoder returns a Decoder positioned at the start of the given data
func NewDecoder(data []byte) *Decoder {
	return &Decoder{buf: data}
}

// Remaining returns the number of unread bytes
func (d *Decoder) Remaining() int {
	return len(d.buf) - d.pos
}

// Consumed returns the number of bytes read so far
func (d *Decoder) Consumed() int {
	return d.pos
}

// ReadBytes returns exactly n raw bytes and advances the cursor. The read is
// all-or-nothing: on failure the cursor does not move. The returned slice
// aliases the input data.
func (d *Decoder) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("negative read length %d", n)
	}
	if n > d.Remaining() {
		return nil, ErrUnexpectedEOF
	}
	ret := d.buf[d.pos : d.pos+n]
	d.pos += n
	return ret, nil
}

// DecodeUint32 decodes 4 big-endian bytes as a 32-bit unsigned integer
func (d *Decoder) DecodeUint32() (uint32, error) {
	data, err := d.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(data), nil
}

// DecodeInt32 decodes 4 big-endian bytes as a 32-bit signed integer
func (d *Decoder) DecodeInt32() (int32, error) {
	v, err := d.DecodeUint32()
	return int32(v), err
}

// DecodeUint64 decodes 8 big-endian bytes as a 64-bit unsigned integer
func (d *Decoder) DecodeUint64() (uint64, error) {
	data, err := d.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(data), nil
}

// DecodeInt64 decodes 8 big-endian bytes as a 64-bit signed integer
func (d *Decoder) DecodeInt64() (int64, error) {
	v, err := d.DecodeUint64()
	return int64(v), err
}

// DecodeBool decodes a 4-byte boolean, rejecting any value other than 0 or 1
func (d *Decoder) DecodeBool() (bool, error) {
	v, err := d.DecodeUint32()
	if err != nil {
		return false, err
	}
	switch v {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("%w: %d", ErrInvalidBool, v)
	}
}

// DecodeFixedOpaque decodes exactly n bytes plus their alignment padding.
// The pad bytes are consumed and discarded so the next field stays aligned.
// The returned slice is a copy.
func (d *Decoder) DecodeFixedOpaque(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("negative opaque length %d", n)
	}
	padded := n + padLength(n)
	if padded > d.Remaining() {
		return nil, ErrUnexpectedEOF
	}
	data, err := d.ReadBytes(padded)
	if err != nil {
		return nil, err
	}
	ret := make([]byte, n)
	copy(ret, data[:n])
	return ret, nil
}

// DecodeOpaque decodes a 4-byte unsigned length prefix followed by that many
// bytes plus alignment padding. The declared length is validated against the
// remaining input before any allocation, so a corrupt or hostile length
// prefix fails fast instead of triggering a huge allocation or a partial
// read deeper in the call stack.
func (d *Decoder) DecodeOpaque() ([]byte, error) {
	length, err := d.DecodeUint32()
	if err != nil {
		return nil, err
	}
	if uint64(length) > uint64(d.Remaining()) {
		return nil, fmt.Errorf(
			"%w: declared %d, remaining %d",
			ErrLengthExceedsData,
			length,
			d.Remaining(),
		)
	}
	return d.DecodeFixedOpaque(int(length))
}

// DecodeString decodes a length-prefixed string, rejecting payloads that are
// not valid UTF-8
func (d *Decoder) DecodeString() (string, error) {
	data, err := d.DecodeOpaque()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", ErrInvalidUtf8
	}
	return string(data), nil
}

// padLength returns the number of zero bytes needed to align a payload of
// the given length to a 4-byte boundary
func padLength(dataLen int) int {
	return (4 - (dataLen % 4)) % 4
}
