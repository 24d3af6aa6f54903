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
	"bytes"
	"fmt"
	"sort"

	"github.com/lux2983/gostellar/strkey"
)

// SCValType is the discriminant for the contract value union
type SCValType int32

const (
	SCValTypeBool      SCValType = 0
	SCValTypeVoid      SCValType = 1
	SCValTypeU32       SCValType = 3
	SCValTypeI32       SCValType = 4
	SCValTypeU64       SCValType = 5
	SCValTypeI64       SCValType = 6
	SCValTypeTimepoint SCValType = 7
	SCValTypeDuration  SCValType = 8
	SCValTypeU128      SCValType = 9
	SCValTypeI128      SCValType = 10
	SCValTypeU256      SCValType = 11
	SCValTypeI256      SCValType = 12
	SCValTypeBytes     SCValType = 13
	SCValTypeString    SCValType = 14
	SCValTypeSymbol    SCValType = 15
	SCValTypeVec       SCValType = 16
	SCValTypeMap       SCValType = 17
	SCValTypeAddress   SCValType = 18
)

// SymbolMaxLength bounds a symbol's character count
const SymbolMaxLength = 32

// SCSymbol is a short identifier restricted to [a-zA-Z0-9_]
type SCSymbol string

// NewSCSymbol validates and wraps a symbol string
func NewSCSymbol(s string) (SCSymbol, error) {
	sym := SCSymbol(s)
	if err := sym.Validate(); err != nil {
		return "", err
	}
	return sym, nil
}

// Validate checks the symbol length and alphabet. Encoding validates too,
// so an invalid symbol can never reach the wire.
func (s SCSymbol) Validate() error {
	if len(s) > SymbolMaxLength {
		return fmt.Errorf(
			"symbol length %d exceeds %d",
			len(s),
			SymbolMaxLength,
		)
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'a' && c <= 'z' ||
			c >= 'A' && c <= 'Z' ||
			c >= '0' && c <= '9' ||
			c == '_' {
			continue
		}
		return fmt.Errorf("symbol contains invalid character %q", c)
	}
	return nil
}

func (s SCSymbol) EncodeXDR(enc *Encoder) error {
	if err := s.Validate(); err != nil {
		return err
	}
	return enc.EncodeString(string(s))
}

func (s *SCSymbol) DecodeXDR(dec *Decoder) error {
	tmp, err := dec.DecodeString()
	if err != nil {
		return err
	}
	sym := SCSymbol(tmp)
	if err := sym.Validate(); err != nil {
		return err
	}
	*s = sym
	return nil
}

// SCAddressType is the discriminant for the contract address union
type SCAddressType int32

const (
	SCAddressTypeAccount  SCAddressType = 0
	SCAddressTypeContract SCAddressType = 1
)

// SCAddress is either an account key or a contract identifier
type SCAddress struct {
	Type       SCAddressType
	AccountId  *AccountID
	ContractId *Hash
}

// NewSCAddressAccount wraps an account ID in a contract address
func NewSCAddressAccount(accountId AccountID) SCAddress {
	return SCAddress{
		Type:      SCAddressTypeAccount,
		AccountId: &accountId,
	}
}

// NewSCAddressContract wraps a contract identifier in a contract address
func NewSCAddressContract(contractId Hash) SCAddress {
	return SCAddress{
		Type:       SCAddressTypeContract,
		ContractId: &contractId,
	}
}

// ParseSCAddress parses either a G account address or a C contract address
func ParseSCAddress(address string) (SCAddress, error) {
	version, payload, err := strkey.DecodeAny(address)
	if err != nil {
		return SCAddress{}, err
	}
	switch version {
	case strkey.VersionByteAccountID:
		return NewSCAddressAccount(NewAccountID(NewUint256(payload))), nil
	case strkey.VersionByteContract:
		return NewSCAddressContract(NewUint256(payload)), nil
	default:
		return SCAddress{}, fmt.Errorf(
			"%w: %#02x is not an address kind",
			strkey.ErrInvalidVersionByte,
			byte(version),
		)
	}
}

// Address returns the strkey G or C form depending on the address kind
func (a SCAddress) Address() (string, error) {
	switch a.Type {
	case SCAddressTypeAccount:
		if a.AccountId == nil || a.AccountId.Ed25519 == nil {
			return "", fmt.Errorf("SCAddress: missing account arm")
		}
		return strkey.Encode(
			strkey.VersionByteAccountID,
			a.AccountId.Ed25519[:],
		)
	case SCAddressTypeContract:
		if a.ContractId == nil {
			return "", fmt.Errorf("SCAddress: missing contract arm")
		}
		return strkey.Encode(strkey.VersionByteContract, a.ContractId[:])
	default:
		return "", unknownDiscriminant("SCAddress", int32(a.Type))
	}
}

func (a SCAddress) EncodeXDR(enc *Encoder) error {
	if err := enc.EncodeInt32(int32(a.Type)); err != nil {
		return err
	}
	switch a.Type {
	case SCAddressTypeAccount:
		if a.AccountId == nil {
			return fmt.Errorf("SCAddress: missing account arm")
		}
		return a.AccountId.EncodeXDR(enc)
	case SCAddressTypeContract:
		if a.ContractId == nil {
			return fmt.Errorf("SCAddress: missing contract arm")
		}
		return a.ContractId.EncodeXDR(enc)
	default:
		return unknownDiscriminant("SCAddress", int32(a.Type))
	}
}

func (a *SCAddress) DecodeXDR(dec *Decoder) error {
	discriminant, err := dec.DecodeInt32()
	if err != nil {
		return err
	}
	switch SCAddressType(discriminant) {
	case SCAddressTypeAccount:
		var tmp AccountID
		if err := tmp.DecodeXDR(dec); err != nil {
			return err
		}
		*a = SCAddress{Type: SCAddressTypeAccount, AccountId: &tmp}
		return nil
	case SCAddressTypeContract:
		var tmp Hash
		if err := tmp.DecodeXDR(dec); err != nil {
			return err
		}
		*a = SCAddress{Type: SCAddressTypeContract, ContractId: &tmp}
		return nil
	default:
		return unknownDiscriminant("SCAddress", discriminant)
	}
}

// SCVec is a vector of contract values
type SCVec []SCVal

func (v SCVec) EncodeXDR(enc *Encoder) error {
	return EncodeVector(enc, []SCVal(v))
}

func (v *SCVec) DecodeXDR(dec *Decoder) error {
	items, err := DecodeVector[SCVal](dec)
	if err != nil {
		return err
	}
	*v = items
	return nil
}

// SCMapEntry is one key/value pair of a contract map
type SCMapEntry struct {
	Key SCVal
	Val SCVal
}

func (e SCMapEntry) EncodeXDR(enc *Encoder) error {
	if err := e.Key.EncodeXDR(enc); err != nil {
		return err
	}
	return e.Val.EncodeXDR(enc)
}

func (e *SCMapEntry) DecodeXDR(dec *Decoder) error {
	if err := e.Key.DecodeXDR(dec); err != nil {
		return err
	}
	return e.Val.DecodeXDR(dec)
}

// SCMap is an ordered list of key/value pairs. Entries are encoded sorted
// ascending by encoded-key bytes, so two maps holding the same entries
// serialize identically no matter the insertion order. Keys must be unique;
// encoding fails when two entries encode to the same key bytes. Decoding
// preserves the wire order.
type SCMap []SCMapEntry

func (m SCMap) EncodeXDR(enc *Encoder) error {
	type sortEntry struct {
		keyBytes []byte
		entry    *SCMapEntry
	}
	entries := make([]sortEntry, len(m))
	for i := range m {
		keyBytes, err := Marshal(&m[i].Key)
		if err != nil {
			return err
		}
		entries[i] = sortEntry{keyBytes: keyBytes, entry: &m[i]}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return bytes.Compare(entries[i].keyBytes, entries[j].keyBytes) < 0
	})
	for i := 1; i < len(entries); i++ {
		if bytes.Equal(entries[i-1].keyBytes, entries[i].keyBytes) {
			return fmt.Errorf("SCMap: duplicate key")
		}
	}
	if err := enc.EncodeUint32(uint32(len(entries))); err != nil { // #nosec G115
		return err
	}
	for i := range entries {
		if err := entries[i].entry.EncodeXDR(enc); err != nil {
			return err
		}
	}
	return nil
}

func (m *SCMap) DecodeXDR(dec *Decoder) error {
	entries, err := DecodeVector[SCMapEntry](dec)
	if err != nil {
		return err
	}
	*m = entries
	return nil
}

// SCVal is the recursive tagged union used for smart contract parameters
// and results. Exactly one arm matching Type is set; value constructors
// keep the pairing correct.
type SCVal struct {
	Type      SCValType
	B         *bool
	U32       *Uint32
	I32       *Int32
	U64       *Uint64
	I64       *Int64
	Timepoint *TimePoint
	Duration  *Duration
	U128      *UInt128Parts
	I128      *Int128Parts
	U256      *UInt256Parts
	I256      *Int256Parts
	Bytes     *[]byte
	Str       *string
	Sym       *SCSymbol
	Vec       *SCVec
	Map       *SCMap
	Address   *SCAddress
}

func ScVoid() SCVal {
	return SCVal{Type: SCValTypeVoid}
}

func ScBool(v bool) SCVal {
	return SCVal{Type: SCValTypeBool, B: &v}
}

func ScU32(v uint32) SCVal {
	tmp := Uint32(v)
	return SCVal{Type: SCValTypeU32, U32: &tmp}
}

func ScI32(v int32) SCVal {
	tmp := Int32(v)
	return SCVal{Type: SCValTypeI32, I32: &tmp}
}

func ScU64(v uint64) SCVal {
	tmp := Uint64(v)
	return SCVal{Type: SCValTypeU64, U64: &tmp}
}

func ScI64(v int64) SCVal {
	tmp := Int64(v)
	return SCVal{Type: SCValTypeI64, I64: &tmp}
}

func ScTimepoint(v uint64) SCVal {
	tmp := TimePoint(v)
	return SCVal{Type: SCValTypeTimepoint, Timepoint: &tmp}
}

func ScDuration(v uint64) SCVal {
	tmp := Duration(v)
	return SCVal{Type: SCValTypeDuration, Duration: &tmp}
}

func ScU128(v UInt128Parts) SCVal {
	return SCVal{Type: SCValTypeU128, U128: &v}
}

func ScI128(v Int128Parts) SCVal {
	return SCVal{Type: SCValTypeI128, I128: &v}
}

func ScU256(v UInt256Parts) SCVal {
	return SCVal{Type: SCValTypeU256, U256: &v}
}

func ScI256(v Int256Parts) SCVal {
	return SCVal{Type: SCValTypeI256, I256: &v}
}

func ScBytes(v []byte) SCVal {
	tmp := make([]byte, len(v))
	copy(tmp, v)
	return SCVal{Type: SCValTypeBytes, Bytes: &tmp}
}

func ScString(v string) SCVal {
	return SCVal{Type: SCValTypeString, Str: &v}
}

func ScSymbol(v string) (SCVal, error) {
	sym, err := NewSCSymbol(v)
	if err != nil {
		return SCVal{}, err
	}
	return SCVal{Type: SCValTypeSymbol, Sym: &sym}, nil
}

func ScVec(items ...SCVal) SCVal {
	vec := SCVec(items)
	return SCVal{Type: SCValTypeVec, Vec: &vec}
}

func ScMap(entries ...SCMapEntry) SCVal {
	m := SCMap(entries)
	return SCVal{Type: SCValTypeMap, Map: &m}
}

func ScAddress(addr SCAddress) SCVal {
	return SCVal{Type: SCValTypeAddress, Address: &addr}
}

func (v SCVal) EncodeXDR(enc *Encoder) error {
	if err := enc.EncodeInt32(int32(v.Type)); err != nil {
		return err
	}
	switch v.Type {
	case SCValTypeVoid:
		return nil
	case SCValTypeBool:
		if v.B == nil {
			return fmt.Errorf("SCVal: missing bool arm")
		}
		return enc.EncodeBool(*v.B)
	case SCValTypeU32:
		if v.U32 == nil {
			return fmt.Errorf("SCVal: missing u32 arm")
		}
		return v.U32.EncodeXDR(enc)
	case SCValTypeI32:
		if v.I32 == nil {
			return fmt.Errorf("SCVal: missing i32 arm")
		}
		return v.I32.EncodeXDR(enc)
	case SCValTypeU64:
		if v.U64 == nil {
			return fmt.Errorf("SCVal: missing u64 arm")
		}
		return v.U64.EncodeXDR(enc)
	case SCValTypeI64:
		if v.I64 == nil {
			return fmt.Errorf("SCVal: missing i64 arm")
		}
		return v.I64.EncodeXDR(enc)
	case SCValTypeTimepoint:
		if v.Timepoint == nil {
			return fmt.Errorf("SCVal: missing timepoint arm")
		}
		return v.Timepoint.EncodeXDR(enc)
	case SCValTypeDuration:
		if v.Duration == nil {
			return fmt.Errorf("SCVal: missing duration arm")
		}
		return v.Duration.EncodeXDR(enc)
	case SCValTypeU128:
		if v.U128 == nil {
			return fmt.Errorf("SCVal: missing u128 arm")
		}
		return v.U128.EncodeXDR(enc)
	case SCValTypeI128:
		if v.I128 == nil {
			return fmt.Errorf("SCVal: missing i128 arm")
		}
		return v.I128.EncodeXDR(enc)
	case SCValTypeU256:
		if v.U256 == nil {
			return fmt.Errorf("SCVal: missing u256 arm")
		}
		return v.U256.EncodeXDR(enc)
	case SCValTypeI256:
		if v.I256 == nil {
			return fmt.Errorf("SCVal: missing i256 arm")
		}
		return v.I256.EncodeXDR(enc)
	case SCValTypeBytes:
		if v.Bytes == nil {
			return fmt.Errorf("SCVal: missing bytes arm")
		}
		return enc.EncodeOpaque(*v.Bytes)
	case SCValTypeString:
		if v.Str == nil {
			return fmt.Errorf("SCVal: missing string arm")
		}
		return enc.EncodeString(*v.Str)
	case SCValTypeSymbol:
		if v.Sym == nil {
			return fmt.Errorf("SCVal: missing symbol arm")
		}
		return v.Sym.EncodeXDR(enc)
	case SCValTypeVec:
		if v.Vec == nil {
			return fmt.Errorf("SCVal: missing vec arm")
		}
		return v.Vec.EncodeXDR(enc)
	case SCValTypeMap:
		if v.Map == nil {
			return fmt.Errorf("SCVal: missing map arm")
		}
		return v.Map.EncodeXDR(enc)
	case SCValTypeAddress:
		if v.Address == nil {
			return fmt.Errorf("SCVal: missing address arm")
		}
		return v.Address.EncodeXDR(enc)
	default:
		return unknownDiscriminant("SCVal", int32(v.Type))
	}
}

func (v *SCVal) DecodeXDR(dec *Decoder) error {
	discriminant, err := dec.DecodeInt32()
	if err != nil {
		return err
	}
	switch SCValType(discriminant) {
	case SCValTypeVoid:
		*v = ScVoid()
		return nil
	case SCValTypeBool:
		tmp, err := dec.DecodeBool()
		if err != nil {
			return err
		}
		*v = ScBool(tmp)
		return nil
	case SCValTypeU32:
		var tmp Uint32
		if err := tmp.DecodeXDR(dec); err != nil {
			return err
		}
		*v = ScU32(uint32(tmp))
		return nil
	case SCValTypeI32:
		var tmp Int32
		if err := tmp.DecodeXDR(dec); err != nil {
			return err
		}
		*v = ScI32(int32(tmp))
		return nil
	case SCValTypeU64:
		var tmp Uint64
		if err := tmp.DecodeXDR(dec); err != nil {
			return err
		}
		*v = ScU64(uint64(tmp))
		return nil
	case SCValTypeI64:
		var tmp Int64
		if err := tmp.DecodeXDR(dec); err != nil {
			return err
		}
		*v = ScI64(int64(tmp))
		return nil
	case SCValTypeTimepoint:
		var tmp TimePoint
		if err := tmp.DecodeXDR(dec); err != nil {
			return err
		}
		*v = ScTimepoint(uint64(tmp))
		return nil
	case SCValTypeDuration:
		var tmp Duration
		if err := tmp.DecodeXDR(dec); err != nil {
			return err
		}
		*v = ScDuration(uint64(tmp))
		return nil
	case SCValTypeU128:
		var tmp UInt128Parts
		if err := tmp.DecodeXDR(dec); err != nil {
			return err
		}
		*v = ScU128(tmp)
		return nil
	case SCValTypeI128:
		var tmp Int128Parts
		if err := tmp.DecodeXDR(dec); err != nil {
			return err
		}
		*v = ScI128(tmp)
		return nil
	case SCValTypeU256:
		var tmp UInt256Parts
		if err := tmp.DecodeXDR(dec); err != nil {
			return err
		}
		*v = ScU256(tmp)
		return nil
	case SCValTypeI256:
		var tmp Int256Parts
		if err := tmp.DecodeXDR(dec); err != nil {
			return err
		}
		*v = ScI256(tmp)
		return nil
	case SCValTypeBytes:
		tmp, err := dec.DecodeOpaque()
		if err != nil {
			return err
		}
		*v = ScBytes(tmp)
		return nil
	case SCValTypeString:
		tmp, err := dec.DecodeString()
		if err != nil {
			return err
		}
		*v = ScString(tmp)
		return nil
	case SCValTypeSymbol:
		var tmp SCSymbol
		if err := tmp.DecodeXDR(dec); err != nil {
			return err
		}
		*v = SCVal{Type: SCValTypeSymbol, Sym: &tmp}
		return nil
	case SCValTypeVec:
		var tmp SCVec
		if err := tmp.DecodeXDR(dec); err != nil {
			return err
		}
		*v = SCVal{Type: SCValTypeVec, Vec: &tmp}
		return nil
	case SCValTypeMap:
		var tmp SCMap
		if err := tmp.DecodeXDR(dec); err != nil {
			return err
		}
		*v = SCVal{Type: SCValTypeMap, Map: &tmp}
		return nil
	case SCValTypeAddress:
		var tmp SCAddress
		if err := tmp.DecodeXDR(dec); err != nil {
			return err
		}
		*v = SCVal{Type: SCValTypeAddress, Address: &tmp}
		return nil
	default:
		return unknownDiscriminant("SCVal", discriminant)
	}
}
