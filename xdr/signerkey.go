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
	"encoding/binary"
	"fmt"

	"github.com/lux2983/gostellar/strkey"
)

// SignerKeyType is the discriminant for the SignerKey union
type SignerKeyType int32

const (
	SignerKeyTypeEd25519              SignerKeyType = 0
	SignerKeyTypePreAuthTx            SignerKeyType = 1
	SignerKeyTypeHashX                SignerKeyType = 2
	SignerKeyTypeEd25519SignedPayload SignerKeyType = 3
)

// SignedPayloadMaxLength bounds the payload of a signed-payload signer
const SignedPayloadMaxLength = 64

// SignerKeyEd25519SignedPayload pairs an Ed25519 key with the exact payload
// the key must have signed for the signer to count
type SignerKeyEd25519SignedPayload struct {
	Ed25519 Uint256
	Payload []byte
}

func (p SignerKeyEd25519SignedPayload) EncodeXDR(enc *Encoder) error {
	if err := validateSignedPayloadLength(len(p.Payload)); err != nil {
		return err
	}
	if err := p.Ed25519.EncodeXDR(enc); err != nil {
		return err
	}
	return enc.EncodeOpaque(p.Payload)
}

func (p *SignerKeyEd25519SignedPayload) DecodeXDR(dec *Decoder) error {
	if err := p.Ed25519.DecodeXDR(dec); err != nil {
		return err
	}
	payload, err := dec.DecodeOpaque()
	if err != nil {
		return err
	}
	if err := validateSignedPayloadLength(len(payload)); err != nil {
		return err
	}
	p.Payload = payload
	return nil
}

func validateSignedPayloadLength(length int) error {
	if length < 1 || length > SignedPayloadMaxLength {
		return fmt.Errorf(
			"signed payload length %d outside 1-%d",
			length,
			SignedPayloadMaxLength,
		)
	}
	return nil
}

// SignerKey is one of the ways an account can authorize a transaction: a
// plain Ed25519 key, a pre-authorized transaction hash, the SHA-256 hash of
// a secret, or an Ed25519 key bound to a specific payload. Two signer keys
// are equal only when both the kind and the payload bytes match; identical
// bytes under different kinds are different signers.
type SignerKey struct {
	Type                 SignerKeyType
	Ed25519              *Uint256
	PreAuthTx            *Uint256
	HashX                *Uint256
	Ed25519SignedPayload *SignerKeyEd25519SignedPayload
}

// NewSignerKeyEd25519 builds a plain-key signer from raw public key bytes
func NewSignerKeyEd25519(key Uint256) SignerKey {
	return SignerKey{
		Type:    SignerKeyTypeEd25519,
		Ed25519: &key,
	}
}

// NewSignerKeyPreAuthTx builds a signer from a transaction hash that is
// authorized in advance
func NewSignerKeyPreAuthTx(hash Hash) SignerKey {
	return SignerKey{
		Type:      SignerKeyTypePreAuthTx,
		PreAuthTx: &hash,
	}
}

// NewSignerKeyHashX builds a signer from the SHA-256 hash of a secret
func NewSignerKeyHashX(hash Hash) SignerKey {
	return SignerKey{
		Type:  SignerKeyTypeHashX,
		HashX: &hash,
	}
}

// NewSignerKeySignedPayload builds a signed-payload signer. The payload must
// be 1-64 bytes.
func NewSignerKeySignedPayload(key Uint256, payload []byte) (SignerKey, error) {
	if err := validateSignedPayloadLength(len(payload)); err != nil {
		return SignerKey{}, err
	}
	tmp := make([]byte, len(payload))
	copy(tmp, payload)
	return SignerKey{
		Type: SignerKeyTypeEd25519SignedPayload,
		Ed25519SignedPayload: &SignerKeyEd25519SignedPayload{
			Ed25519: key,
			Payload: tmp,
		},
	}, nil
}

// ParseSignerKey parses any of the signer strkey forms: G, T, X, or P
func ParseSignerKey(address string) (SignerKey, error) {
	version, payload, err := strkey.DecodeAny(address)
	if err != nil {
		return SignerKey{}, err
	}
	switch version {
	case strkey.VersionByteAccountID:
		return NewSignerKeyEd25519(NewUint256(payload)), nil
	case strkey.VersionBytePreAuthTx:
		return NewSignerKeyPreAuthTx(NewUint256(payload)), nil
	case strkey.VersionByteHashX:
		return NewSignerKeyHashX(NewUint256(payload)), nil
	case strkey.VersionByteSignedPayload:
		inner := binary.BigEndian.Uint32(payload[32:36])
		return NewSignerKeySignedPayload(
			NewUint256(payload[:32]),
			payload[36:36+int(inner)],
		)
	default:
		return SignerKey{}, fmt.Errorf(
			"%w: %#02x is not a signer kind",
			strkey.ErrInvalidVersionByte,
			byte(version),
		)
	}
}

// Address returns the canonical strkey form for the signer's kind
func (k SignerKey) Address() (string, error) {
	switch k.Type {
	case SignerKeyTypeEd25519:
		if k.Ed25519 == nil {
			return "", fmt.Errorf("SignerKey: missing ed25519 arm")
		}
		return strkey.Encode(strkey.VersionByteAccountID, k.Ed25519[:])
	case SignerKeyTypePreAuthTx:
		if k.PreAuthTx == nil {
			return "", fmt.Errorf("SignerKey: missing preAuthTx arm")
		}
		return strkey.Encode(strkey.VersionBytePreAuthTx, k.PreAuthTx[:])
	case SignerKeyTypeHashX:
		if k.HashX == nil {
			return "", fmt.Errorf("SignerKey: missing hashX arm")
		}
		return strkey.Encode(strkey.VersionByteHashX, k.HashX[:])
	case SignerKeyTypeEd25519SignedPayload:
		sp := k.Ed25519SignedPayload
		if sp == nil {
			return "", fmt.Errorf("SignerKey: missing signedPayload arm")
		}
		if err := validateSignedPayloadLength(len(sp.Payload)); err != nil {
			return "", err
		}
		padded := (len(sp.Payload) + 3) &^ 3
		payload := make([]byte, 0, 32+4+padded)
		payload = append(payload, sp.Ed25519[:]...)
		payload = binary.BigEndian.AppendUint32(payload, uint32(len(sp.Payload))) // #nosec G115
		payload = append(payload, sp.Payload...)
		payload = append(payload, make([]byte, padded-len(sp.Payload))...)
		return strkey.Encode(strkey.VersionByteSignedPayload, payload)
	default:
		return "", unknownDiscriminant("SignerKey", int32(k.Type))
	}
}

// Equals reports whether two signer keys have the same kind and payload
func (k SignerKey) Equals(other SignerKey) bool {
	if k.Type != other.Type {
		return false
	}
	switch k.Type {
	case SignerKeyTypeEd25519:
		return eqUint256Ptr(k.Ed25519, other.Ed25519)
	case SignerKeyTypePreAuthTx:
		return eqUint256Ptr(k.PreAuthTx, other.PreAuthTx)
	case SignerKeyTypeHashX:
		return eqUint256Ptr(k.HashX, other.HashX)
	case SignerKeyTypeEd25519SignedPayload:
		a, b := k.Ed25519SignedPayload, other.Ed25519SignedPayload
		if a == nil || b == nil {
			return a == b
		}
		return a.Ed25519 == b.Ed25519 && bytes.Equal(a.Payload, b.Payload)
	default:
		return false
	}
}

func eqUint256Ptr(a, b *Uint256) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (k SignerKey) EncodeXDR(enc *Encoder) error {
	if err := enc.EncodeInt32(int32(k.Type)); err != nil {
		return err
	}
	switch k.Type {
	case SignerKeyTypeEd25519:
		if k.Ed25519 == nil {
			return fmt.Errorf("SignerKey: missing ed25519 arm")
		}
		return k.Ed25519.EncodeXDR(enc)
	case SignerKeyTypePreAuthTx:
		if k.PreAuthTx == nil {
			return fmt.Errorf("SignerKey: missing preAuthTx arm")
		}
		return k.PreAuthTx.EncodeXDR(enc)
	case SignerKeyTypeHashX:
		if k.HashX == nil {
			return fmt.Errorf("SignerKey: missing hashX arm")
		}
		return k.HashX.EncodeXDR(enc)
	case SignerKeyTypeEd25519SignedPayload:
		if k.Ed25519SignedPayload == nil {
			return fmt.Errorf("SignerKey: missing signedPayload arm")
		}
		return k.Ed25519SignedPayload.EncodeXDR(enc)
	default:
		return unknownDiscriminant("SignerKey", int32(k.Type))
	}
}

func (k *SignerKey) DecodeXDR(dec *Decoder) error {
	discriminant, err := dec.DecodeInt32()
	if err != nil {
		return err
	}
	switch SignerKeyType(discriminant) {
	case SignerKeyTypeEd25519:
		var tmp Uint256
		if err := tmp.DecodeXDR(dec); err != nil {
			return err
		}
		*k = NewSignerKeyEd25519(tmp)
		return nil
	case SignerKeyTypePreAuthTx:
		var tmp Uint256
		if err := tmp.DecodeXDR(dec); err != nil {
			return err
		}
		*k = NewSignerKeyPreAuthTx(tmp)
		return nil
	case SignerKeyTypeHashX:
		var tmp Uint256
		if err := tmp.DecodeXDR(dec); err != nil {
			return err
		}
		*k = NewSignerKeyHashX(tmp)
		return nil
	case SignerKeyTypeEd25519SignedPayload:
		var tmp SignerKeyEd25519SignedPayload
		if err := tmp.DecodeXDR(dec); err != nil {
			return err
		}
		*k = SignerKey{
			Type:                 SignerKeyTypeEd25519SignedPayload,
			Ed25519SignedPayload: &tmp,
		}
		return nil
	default:
		return unknownDiscriminant("SignerKey", discriminant)
	}
}
