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

// Package derivation produces Ed25519 seed material from BIP-39 mnemonics
// following SEP-0005: the mnemonic sentence is stretched to a 64-byte seed
// with PBKDF2-HMAC-SHA512, then hardened SLIP-0010 derivation walks the
// Stellar path m/44'/148'/n' to a per-account 32-byte key. The resulting
// key feeds keypair.FromRawSeed.
//
// Mnemonic wordlist and checksum validation are the wallet's concern;
// seed derivation itself is wordlist-independent.
package derivation

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// StellarAccountPathFormat is the SEP-0005 account path, parameterized
	// by account index
	StellarAccountPathFormat = "m/44'/148'/%d'"

	// FirstHardenedIndex is the lowest hardened child index. SLIP-0010
	// Ed25519 derivation defines hardened children only.
	FirstHardenedIndex = uint32(0x80000000)

	// KeySize is the size of a derived key, usable as an Ed25519 seed
	KeySize = 32

	seedIterations = 2048
	seedSize       = 64
	masterKeySalt  = "ed25519 seed"
)

var (
	// ErrInvalidPath is returned for paths that are not of the form
	// m/i'/j'/... with every segment hardened
	ErrInvalidPath = errors.New("invalid derivation path")

	pathFormat = regexp.MustCompile(`^m(/\d+')+$`)
)

// Key is one node of a SLIP-0010 derivation chain: 32 bytes of key material
// and the chain code that seeds child derivation
type Key struct {
	Key       []byte
	ChainCode []byte
}

// NewSeed stretches a BIP-39 mnemonic sentence and passphrase into a
// 64-byte seed. Deterministic: the same sentence always yields the same
// seed.
func NewSeed(mnemonic string, passphrase string) []byte {
	return pbkdf2.Key(
		[]byte(mnemonic),
		[]byte("mnemonic"+passphrase),
		seedIterations,
		seedSize,
		sha512.New,
	)
}

// NewMasterKey derives the SLIP-0010 Ed25519 master key from a seed
func NewMasterKey(seed []byte) *Key {
	mac := hmac.New(sha512.New, []byte(masterKeySalt))
	mac.Write(seed)
	sum := mac.Sum(nil)
	return &Key{
		Key:       sum[:KeySize],
		ChainCode: sum[KeySize:],
	}
}

// Derive returns the hardened child at the given index. The hardened bit is
// implied; indexes below FirstHardenedIndex are offset into the hardened
// range.
func (k *Key) Derive(index uint32) *Key {
	if index < FirstHardenedIndex {
		index += FirstHardenedIndex
	}
	data := make([]byte, 0, 1+KeySize+4)
	data = append(data, 0)
	data = append(data, k.Key...)
	data = binary.BigEndian.AppendUint32(data, index)
	mac := hmac.New(sha512.New, k.ChainCode)
	mac.Write(data)
	sum := mac.Sum(nil)
	return &Key{
		Key:       sum[:KeySize],
		ChainCode: sum[KeySize:],
	}
}

// DeriveForPath walks a hardened derivation path such as "m/44'/148'/0'"
// from the given seed
func DeriveForPath(path string, seed []byte) (*Key, error) {
	if !pathFormat.MatchString(path) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}
	key := NewMasterKey(seed)
	for _, segment := range strings.Split(path, "/")[1:] {
		index, err := strconv.ParseUint(
			strings.TrimSuffix(segment, "'"),
			10,
			32,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: segment %q", ErrInvalidPath, segment)
		}
		key = key.Derive(uint32(index))
	}
	return key, nil
}

// StellarAccountKey derives the 32-byte Ed25519 seed for account n of a
// mnemonic, per SEP-0005
func StellarAccountKey(mnemonic string, passphrase string, account uint32) ([]byte, error) {
	key, err := DeriveForPath(
		fmt.Sprintf(StellarAccountPathFormat, account),
		NewSeed(mnemonic, passphrase),
	)
	if err != nil {
		return nil, err
	}
	return key.Key, nil
}
