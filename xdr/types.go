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
	"encoding/hex"
)

// Named wrappers for the XDR primitive types. They exist so primitives can
// participate in the generic optional/vector/array helpers, which operate on
// any Codec implementation.

type Uint32 uint32

func (v Uint32) EncodeXDR(enc *Encoder) error {
	return enc.EncodeUint32(uint32(v))
}

func (v *Uint32) DecodeXDR(dec *Decoder) error {
	tmp, err := dec.DecodeUint32()
	if err != nil {
		return err
	}
	*v = Uint32(tmp)
	return nil
}

type Int32 int32

func (v Int32) EncodeXDR(enc *Encoder) error {
	return enc.EncodeInt32(int32(v))
}

func (v *Int32) DecodeXDR(dec *Decoder) error {
	tmp, err := dec.DecodeInt32()
	if err != nil {
		return err
	}
	*v = Int32(tmp)
	return nil
}

type Uint64 uint64

func (v Uint64) EncodeXDR(enc *Encoder) error {
	return enc.EncodeUint64(uint64(v))
}

func (v *Uint64) DecodeXDR(dec *Decoder) error {
	tmp, err := dec.DecodeUint64()
	if err != nil {
		return err
	}
	*v = Uint64(tmp)
	return nil
}

type Int64 int64

func (v Int64) EncodeXDR(enc *Encoder) error {
	return enc.EncodeInt64(int64(v))
}

func (v *Int64) DecodeXDR(dec *Decoder) error {
	tmp, err := dec.DecodeInt64()
	if err != nil {
		return err
	}
	*v = Int64(tmp)
	return nil
}

// TimePoint is a 64-bit count of seconds since the Unix epoch
type TimePoint uint64

func (v TimePoint) EncodeXDR(enc *Encoder) error {
	return enc.EncodeUint64(uint64(v))
}

func (v *TimePoint) DecodeXDR(dec *Decoder) error {
	tmp, err := dec.DecodeUint64()
	if err != nil {
		return err
	}
	*v = TimePoint(tmp)
	return nil
}

// Duration is a 64-bit span of seconds
type Duration uint64

func (v Duration) EncodeXDR(enc *Encoder) error {
	return enc.EncodeUint64(uint64(v))
}

func (v *Duration) DecodeXDR(dec *Decoder) error {
	tmp, err := dec.DecodeUint64()
	if err != nil {
		return err
	}
	*v = Duration(tmp)
	return nil
}

// Uint256 is a 32-byte fixed opaque value, used for raw Ed25519 keys and
// 32-byte hashes embedded in larger structures
type Uint256 [32]byte

// NewUint256 copies up to 32 bytes from data into a Uint256
func NewUint256(data []byte) Uint256 {
	u := Uint256{}
	copy(u[:], data)
	return u
}

func (v Uint256) String() string {
	return hex.EncodeToString(v[:])
}

func (v Uint256) Bytes() []byte {
	return v[:]
}

func (v Uint256) EncodeXDR(enc *Encoder) error {
	return enc.EncodeFixedOpaque(v[:])
}

func (v *Uint256) DecodeXDR(dec *Decoder) error {
	data, err := dec.DecodeFixedOpaque(len(v))
	if err != nil {
		return err
	}
	copy(v[:], data)
	return nil
}

// Hash is a 32-byte SHA-256 output. It shares its wire shape with Uint256
// but names a different role (transaction hashes, contract identifiers).
type Hash = Uint256
