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

	"github.com/lux2983/gostellar/strkey"
)

// PublicKeyType is the discriminant for the PublicKey union. Ed25519 is the
// only kind the protocol defines.
type PublicKeyType int32

const (
	PublicKeyTypeEd25519 PublicKeyType = 0
)

// PublicKey is the union wrapping raw signing-key bytes inside larger
// structures. The same 32 bytes, textually, are strkey-encoded as a G
// address for user display.
type PublicKey struct {
	Type    PublicKeyType
	Ed25519 *Uint256
}

// AccountID identifies an account by its public key
type AccountID = PublicKey

// NewAccountID wraps raw Ed25519 public key bytes in an AccountID
func NewAccountID(ed25519 Uint256) AccountID {
	return AccountID{
		Type:    PublicKeyTypeEd25519,
		Ed25519: &ed25519,
	}
}

// AccountIDFromAddress parses a G address into an AccountID
func AccountIDFromAddress(address string) (AccountID, error) {
	payload, err := strkey.Decode(strkey.VersionByteAccountID, address)
	if err != nil {
		return AccountID{}, err
	}
	return NewAccountID(NewUint256(payload)), nil
}

// Address returns the strkey G form of the public key
func (k PublicKey) Address() string {
	if k.Ed25519 == nil {
		return ""
	}
	return strkey.MustEncode(strkey.VersionByteAccountID, k.Ed25519[:])
}

// Equals reports whether two public keys have the same kind and bytes
func (k PublicKey) Equals(other PublicKey) bool {
	if k.Type != other.Type {
		return false
	}
	if k.Ed25519 == nil || other.Ed25519 == nil {
		return k.Ed25519 == other.Ed25519
	}
	return *k.Ed25519 == *other.Ed25519
}

func (k PublicKey) EncodeXDR(enc *Encoder) error {
	if err := enc.EncodeInt32(int32(k.Type)); err != nil {
		return err
	}
	switch k.Type {
	case PublicKeyTypeEd25519:
		if k.Ed25519 == nil {
			return fmt.Errorf("PublicKey: missing ed25519 arm")
		}
		return k.Ed25519.EncodeXDR(enc)
	default:
		return unknownDiscriminant("PublicKey", int32(k.Type))
	}
}

func (k *PublicKey) DecodeXDR(dec *Decoder) error {
	discriminant, err := dec.DecodeInt32()
	if err != nil {
		return err
	}
	switch PublicKeyType(discriminant) {
	case PublicKeyTypeEd25519:
		var tmp Uint256
		if err := tmp.DecodeXDR(dec); err != nil {
			return err
		}
		*k = NewAccountID(tmp)
		return nil
	default:
		return unknownDiscriminant("PublicKey", discriminant)
	}
}
