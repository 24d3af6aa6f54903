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

// Package keypair implements Ed25519 account keys: derivation from a seed,
// deterministic signing, and signature verification. A KeyPair built from a
// seed can sign and verify; one built from a public key alone can only
// verify. Instances are immutable after construction and safe for
// concurrent use.
package keypair

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"fmt"

	"filippo.io/edwards25519"

	"github.com/lux2983/gostellar/strkey"
)

const (
	// SeedSize is the size of an Ed25519 private seed
	SeedSize = 32

	// PublicKeySize is the size of an Ed25519 public key
	PublicKeySize = 32

	// SignatureSize is the size of an Ed25519 signature
	SignatureSize = 64
)

var (
	// ErrCannotSign is returned when a verify-only KeyPair is asked to
	// sign or to reveal a secret seed it does not hold
	ErrCannotSign = errors.New("keypair holds no secret seed")

	// ErrInvalidSignatureLength is returned by Verify for signatures that
	// are not exactly 64 bytes. A well-formed signature that simply does
	// not match reports false, not an error.
	ErrInvalidSignatureLength = errors.New("signature is not 64 bytes")
)

// KeyPair holds a 32-byte Ed25519 public key and, when constructed from a
// seed, the corresponding private key. The seed bytes may persist in memory
// beyond the KeyPair's logical lifetime; Go offers no reliable zeroing of
// garbage-collected buffers.
type KeyPair struct {
	pub  ed25519.PublicKey
	priv ed25519.PrivateKey
	seed []byte
}

// FromRawSeed builds a signing-capable KeyPair from a 32-byte seed. The
// public key derivation is deterministic per Ed25519.
func FromRawSeed(seed []byte) (*KeyPair, error) {
	if len(seed) != SeedSize {
		return nil, fmt.Errorf(
			"seed must be %d bytes, got %d",
			SeedSize,
			len(seed),
		)
	}
	seedCopy := make([]byte, SeedSize)
	copy(seedCopy, seed)
	priv := ed25519.NewKeyFromSeed(seedCopy)
	return &KeyPair{
		pub:  priv.Public().(ed25519.PublicKey),
		priv: priv,
		seed: seedCopy,
	}, nil
}

// FromSecretSeed builds a signing-capable KeyPair from an S strkey
func FromSecretSeed(seed string) (*KeyPair, error) {
	raw, err := strkey.Decode(strkey.VersionByteSeed, seed)
	if err != nil {
		return nil, err
	}
	return FromRawSeed(raw)
}

// FromPublicKey builds a verify-only KeyPair from raw public key bytes. The
// bytes must be a canonical encoding of a curve point.
func FromPublicKey(pub []byte) (*KeyPair, error) {
	if len(pub) != PublicKeySize {
		return nil, fmt.Errorf(
			"public key must be %d bytes, got %d",
			PublicKeySize,
			len(pub),
		)
	}
	point, err := new(edwards25519.Point).SetBytes(pub)
	if err != nil {
		return nil, fmt.Errorf("invalid ed25519 public key: %w", err)
	}
	// SetBytes also accepts non-canonical encodings of valid points; only
	// the canonical form round-trips
	if !bytes.Equal(point.Bytes(), pub) {
		return nil, errors.New(
			"invalid ed25519 public key: non-canonical encoding",
		)
	}
	pubCopy := make([]byte, PublicKeySize)
	copy(pubCopy, pub)
	return &KeyPair{pub: pubCopy}, nil
}

// FromAccountID builds a verify-only KeyPair from a G strkey
func FromAccountID(accountId string) (*KeyPair, error) {
	raw, err := strkey.Decode(strkey.VersionByteAccountID, accountId)
	if err != nil {
		return nil, err
	}
	return FromPublicKey(raw)
}

// Random builds a signing-capable KeyPair from a fresh random seed
func Random() (*KeyPair, error) {
	seed := make([]byte, SeedSize)
	if _, err := rand.Read(seed); err != nil {
		return nil, err
	}
	return FromRawSeed(seed)
}

// CanSign reports whether the KeyPair holds a secret seed
func (k *KeyPair) CanSign() bool {
	return k.priv != nil
}

// Sign returns the deterministic 64-byte Ed25519 signature over data. The
// same key and data always produce the same signature. Returns
// ErrCannotSign for a verify-only KeyPair.
func (k *KeyPair) Sign(data []byte) ([]byte, error) {
	if !k.CanSign() {
		return nil, ErrCannotSign
	}
	return ed25519.Sign(k.priv, data), nil
}

// Verify reports whether signature is a valid signature over data by this
// key. A mismatched signature reports false; only a malformed signature
// length is an error.
func (k *KeyPair) Verify(data []byte, signature []byte) (bool, error) {
	if len(signature) != SignatureSize {
		return false, fmt.Errorf(
			"%w: got %d",
			ErrInvalidSignatureLength,
			len(signature),
		)
	}
	return ed25519.Verify(k.pub, data, signature), nil
}

// AccountID returns the strkey G form of the public key
func (k *KeyPair) AccountID() string {
	return strkey.MustEncode(strkey.VersionByteAccountID, k.pub)
}

// PublicKeyBytes returns a copy of the raw 32-byte public key
func (k *KeyPair) PublicKeyBytes() []byte {
	ret := make([]byte, PublicKeySize)
	copy(ret, k.pub)
	return ret
}

// SecretSeed returns the strkey S form of the seed, or ErrCannotSign for a
// verify-only KeyPair. Callers must not assume a seed is present.
func (k *KeyPair) SecretSeed() (string, error) {
	if !k.CanSign() {
		return "", ErrCannotSign
	}
	return strkey.MustEncode(strkey.VersionByteSeed, k.seed), nil
}

// RawSeed returns a copy of the raw 32-byte seed and whether one is held
func (k *KeyPair) RawSeed() ([]byte, bool) {
	if !k.CanSign() {
		return nil, false
	}
	ret := make([]byte, SeedSize)
	copy(ret, k.seed)
	return ret, true
}

// Hint returns the last 4 bytes of the public key, used to match decorated
// signatures to signers
func (k *KeyPair) Hint() [4]byte {
	var hint [4]byte
	copy(hint[:], k.pub[PublicKeySize-4:])
	return hint
}
