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
	"math/big"
)

// 128-bit and 256-bit integers are encoded as two or four 64-bit big-endian
// words, most significant word first. The parts structs mirror the wire
// layout; BigInt()/ FromBigInt convert to and from a single math/big value.

var (
	wordMask = new(big.Int).SetUint64(^uint64(0))

	int128Min  = new(big.Int).Lsh(big.NewInt(-1), 127)
	int128Max  = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
	uint128Max = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
	int256Min  = new(big.Int).Lsh(big.NewInt(-1), 255)
	int256Max  = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 255), big.NewInt(1))
	uint256Max = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
)

// word extracts 64-bit word n (0 = least significant) from v using its
// two's complement representation
func word(v *big.Int, n uint) uint64 {
	tmp := new(big.Int).Rsh(v, n*64)
	tmp.And(tmp, wordMask)
	return tmp.Uint64()
}

// Int128Parts is a signed 128-bit integer split into wire-order words
type Int128Parts struct {
	Hi int64
	Lo uint64
}

// NewInt128Parts converts a big integer into parts, rejecting values outside
// the signed 128-bit range
func NewInt128Parts(v *big.Int) (Int128Parts, error) {
	if v.Cmp(int128Min) < 0 || v.Cmp(int128Max) > 0 {
		return Int128Parts{}, fmt.Errorf(
			"value %s out of range for int128",
			v.String(),
		)
	}
	return Int128Parts{
		Hi: int64(word(v, 1)),
		Lo: word(v, 0),
	}, nil
}

// BigInt reconstructs the signed 128-bit value
func (p Int128Parts) BigInt() *big.Int {
	ret := big.NewInt(p.Hi)
	ret.Lsh(ret, 64)
	ret.Add(ret, new(big.Int).SetUint64(p.Lo))
	return ret
}

func (p Int128Parts) EncodeXDR(enc *Encoder) error {
	if err := enc.EncodeInt64(p.Hi); err != nil {
		return err
	}
	return enc.EncodeUint64(p.Lo)
}

func (p *Int128Parts) DecodeXDR(dec *Decoder) error {
	hi, err := dec.DecodeInt64()
	if err != nil {
		return err
	}
	lo, err := dec.DecodeUint64()
	if err != nil {
		return err
	}
	p.Hi, p.Lo = hi, lo
	return nil
}

// UInt128Parts is an unsigned 128-bit integer split into wire-order words
type UInt128Parts struct {
	Hi uint64
	Lo uint64
}

// NewUInt128Parts converts a big integer into parts, rejecting negative
// values and values outside the unsigned 128-bit range
func NewUInt128Parts(v *big.Int) (UInt128Parts, error) {
	if v.Sign() < 0 || v.Cmp(uint128Max) > 0 {
		return UInt128Parts{}, fmt.Errorf(
			"value %s out of range for uint128",
			v.String(),
		)
	}
	return UInt128Parts{
		Hi: word(v, 1),
		Lo: word(v, 0),
	}, nil
}

// BigInt reconstructs the unsigned 128-bit value
func (p UInt128Parts) BigInt() *big.Int {
	ret := new(big.Int).SetUint64(p.Hi)
	ret.Lsh(ret, 64)
	ret.Add(ret, new(big.Int).SetUint64(p.Lo))
	return ret
}

func (p UInt128Parts) EncodeXDR(enc *Encoder) error {
	if err := enc.EncodeUint64(p.Hi); err != nil {
		return err
	}
	return enc.EncodeUint64(p.Lo)
}

func (p *UInt128Parts) DecodeXDR(dec *Decoder) error {
	hi, err := dec.DecodeUint64()
	if err != nil {
		return err
	}
	lo, err := dec.DecodeUint64()
	if err != nil {
		return err
	}
	p.Hi, p.Lo = hi, lo
	return nil
}

// Int256Parts is a signed 256-bit integer split into wire-order words
type Int256Parts struct {
	HiHi int64
	HiLo uint64
	LoHi uint64
	LoLo uint64
}

// NewInt256Parts converts a big integer into parts, rejecting values outside
// the signed 256-bit range
func NewInt256Parts(v *big.Int) (Int256Parts, error) {
	if v.Cmp(int256Min) < 0 || v.Cmp(int256Max) > 0 {
		return Int256Parts{}, fmt.Errorf(
			"value %s out of range for int256",
			v.String(),
		)
	}
	return Int256Parts{
		HiHi: int64(word(v, 3)),
		HiLo: word(v, 2),
		LoHi: word(v, 1),
		LoLo: word(v, 0),
	}, nil
}

// BigInt reconstructs the signed 256-bit value
func (p Int256Parts) BigInt() *big.Int {
	ret := big.NewInt(p.HiHi)
	for _, w := range []uint64{p.HiLo, p.LoHi, p.LoLo} {
		ret.Lsh(ret, 64)
		ret.Add(ret, new(big.Int).SetUint64(w))
	}
	return ret
}

func (p Int256Parts) EncodeXDR(enc *Encoder) error {
	if err := enc.EncodeInt64(p.HiHi); err != nil {
		return err
	}
	for _, w := range []uint64{p.HiLo, p.LoHi, p.LoLo} {
		if err := enc.EncodeUint64(w); err != nil {
			return err
		}
	}
	return nil
}

func (p *Int256Parts) DecodeXDR(dec *Decoder) error {
	hihi, err := dec.DecodeInt64()
	if err != nil {
		return err
	}
	p.HiHi = hihi
	for _, w := range []*uint64{&p.HiLo, &p.LoHi, &p.LoLo} {
		tmp, err := dec.DecodeUint64()
		if err != nil {
			return err
		}
		*w = tmp
	}
	return nil
}

// UInt256Parts is an unsigned 256-bit integer split into wire-order words
type UInt256Parts struct {
	HiHi uint64
	HiLo uint64
	LoHi uint64
	LoLo uint64
}

// NewUInt256Parts converts a big integer into parts, rejecting negative
// values and values outside the unsigned 256-bit range
func NewUInt256Parts(v *big.Int) (UInt256Parts, error) {
	if v.Sign() < 0 || v.Cmp(uint256Max) > 0 {
		return UInt256Parts{}, fmt.Errorf(
			"value %s out of range for uint256",
			v.String(),
		)
	}
	return UInt256Parts{
		HiHi: word(v, 3),
		HiLo: word(v, 2),
		LoHi: word(v, 1),
		LoLo: word(v, 0),
	}, nil
}

// BigInt reconstructs the unsigned 256-bit value
func (p UInt256Parts) BigInt() *big.Int {
	ret := new(big.Int).SetUint64(p.HiHi)
	for _, w := range []uint64{p.HiLo, p.LoHi, p.LoLo} {
		ret.Lsh(ret, 64)
		ret.Add(ret, new(big.Int).SetUint64(w))
	}
	return ret
}

func (p UInt256Parts) EncodeXDR(enc *Encoder) error {
	for _, w := range []uint64{p.HiHi, p.HiLo, p.LoHi, p.LoLo} {
		if err := enc.EncodeUint64(w); err != nil {
			return err
		}
	}
	return nil
}

func (p *UInt256Parts) DecodeXDR(dec *Decoder) error {
	for _, w := range []*uint64{&p.HiHi, &p.HiLo, &p.LoHi, &p.LoLo} {
		tmp, err := dec.DecodeUint64()
		if err != nil {
			return err
		}
		*w = tmp
	}
	return nil
}
