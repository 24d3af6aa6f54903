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
	"encoding/binary"
	"fmt"

	"github.com/lux2983/gostellar/strkey"
)

// CryptoKeyType is the discriminant for the MuxedAccount union
type CryptoKeyType int32

const (
	CryptoKeyTypeEd25519      CryptoKeyType = 0
	CryptoKeyTypeMuxedEd25519 CryptoKeyType = 0x100
)

// MuxedAccountMed25519 is an Ed25519 key multiplexed with a 64-bit ID,
// letting many logical accounts share one on-ledger key. On the wire the ID
// comes first; in the strkey M form the key bytes come first with the ID
// appended big-endian.
type MuxedAccountMed25519 struct {
	Id      uint64
	Ed25519 Uint256
}

func (m MuxedAccountMed25519) EncodeXDR(enc *Encoder) error {
	if err := enc.EncodeUint64(m.Id); err != nil {
		return err
	}
	return m.Ed25519.EncodeXDR(enc)
}

func (m *MuxedAccountMed25519) DecodeXDR(dec *Decoder) error {
	id, err := dec.DecodeUint64()
	if err != nil {
		return err
	}
	m.Id = id
	return m.Ed25519.DecodeXDR(dec)
}

// MuxedAccount is a transaction source or destination: either a plain
// Ed25519 account or a multiplexed account
type MuxedAccount struct {
	Type     CryptoKeyType
	Ed25519  *Uint256
	Med25519 *MuxedAccountMed25519
}

// NewMuxedAccountEd25519 wraps a plain Ed25519 key in a MuxedAccount
func NewMuxedAccountEd25519(ed25519 Uint256) MuxedAccount {
	return MuxedAccount{
		Type:    CryptoKeyTypeEd25519,
		Ed25519: &ed25519,
	}
}

// NewMuxedAccountMed25519 wraps an Ed25519 key and a multiplexing ID in a
// MuxedAccount
func NewMuxedAccountMed25519(ed25519 Uint256, id uint64) MuxedAccount {
	return MuxedAccount{
		Type: CryptoKeyTypeMuxedEd25519,
		Med25519: &MuxedAccountMed25519{
			Id:      id,
			Ed25519: ed25519,
		},
	}
}

// ParseMuxedAccount parses either a G address or an M address
func ParseMuxedAccount(address string) (MuxedAccount, error) {
	version, payload, err := strkey.DecodeAny(address)
	if err != nil {
		return MuxedAccount{}, err
	}
	switch version {
	case strkey.VersionByteAccountID:
		return NewMuxedAccountEd25519(NewUint256(payload)), nil
	case strkey.VersionByteMuxedAccount:
		id := binary.BigEndian.Uint64(payload[32:])
		return NewMuxedAccountMed25519(NewUint256(payload[:32]), id), nil
	default:
		return MuxedAccount{}, fmt.Errorf(
			"%w: %#02x is not an account kind",
			strkey.ErrInvalidVersionByte,
			byte(version),
		)
	}
}

// Address returns the strkey G or M form depending on the account kind
func (m MuxedAccount) Address() (string, error) {
	switch m.Type {
	case CryptoKeyTypeEd25519:
		if m.Ed25519 == nil {
			return "", fmt.Errorf("MuxedAccount: missing ed25519 arm")
		}
		return strkey.Encode(strkey.VersionByteAccountID, m.Ed25519[:])
	case CryptoKeyTypeMuxedEd25519:
		if m.Med25519 == nil {
			return "", fmt.Errorf("MuxedAccount: missing med25519 arm")
		}
		payload := make([]byte, 0, 40)
		payload = append(payload, m.Med25519.Ed25519[:]...)
		payload = binary.BigEndian.AppendUint64(payload, m.Med25519.Id)
		return strkey.Encode(strkey.VersionByteMuxedAccount, payload)
	default:
		return "", unknownDiscriminant("MuxedAccount", int32(m.Type))
	}
}

// ToAccountID returns the underlying account, discarding any multiplexing ID
func (m MuxedAccount) ToAccountID() (AccountID, error) {
	switch m.Type {
	case CryptoKeyTypeEd25519:
		if m.Ed25519 == nil {
			return AccountID{}, fmt.Errorf("MuxedAccount: missing ed25519 arm")
		}
		return NewAccountID(*m.Ed25519), nil
	case CryptoKeyTypeMuxedEd25519:
		if m.Med25519 == nil {
			return AccountID{}, fmt.Errorf("MuxedAccount: missing med25519 arm")
		}
		return NewAccountID(m.Med25519.Ed25519), nil
	default:
		return AccountID{}, unknownDiscriminant("MuxedAccount", int32(m.Type))
	}
}

func (m MuxedAccount) EncodeXDR(enc *Encoder) error {
	if err := enc.EncodeInt32(int32(m.Type)); err != nil {
		return err
	}
	switch m.Type {
	case CryptoKeyTypeEd25519:
		if m.Ed25519 == nil {
			return fmt.Errorf("MuxedAccount: missing ed25519 arm")
		}
		return m.Ed25519.EncodeXDR(enc)
	case CryptoKeyTypeMuxedEd25519:
		if m.Med25519 == nil {
			return fmt.Errorf("MuxedAccount: missing med25519 arm")
		}
		return m.Med25519.EncodeXDR(enc)
	default:
		return unknownDiscriminant("MuxedAccount", int32(m.Type))
	}
}

func (m *MuxedAccount) DecodeXDR(dec *Decoder) error {
	discriminant, err := dec.DecodeInt32()
	if err != nil {
		return err
	}
	switch CryptoKeyType(discriminant) {
	case CryptoKeyTypeEd25519:
		var tmp Uint256
		if err := tmp.DecodeXDR(dec); err != nil {
			return err
		}
		*m = NewMuxedAccountEd25519(tmp)
		return nil
	case CryptoKeyTypeMuxedEd25519:
		var tmp MuxedAccountMed25519
		if err := tmp.DecodeXDR(dec); err != nil {
			return err
		}
		*m = MuxedAccount{
			Type:     CryptoKeyTypeMuxedEd25519,
			Med25519: &tmp,
		}
		return nil
	default:
		return unknownDiscriminant("MuxedAccount", discriminant)
	}
}
