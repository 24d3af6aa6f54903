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

// Package strkey implements the checksummed base32 text encoding for
// Stellar keys and identifiers. A strkey is the RFC 4648 base32 encoding
// (upper-case, unpadded) of a version byte, a payload, and a CRC16/XMODEM
// checksum over the version byte and payload. The version byte determines
// the leading letter of the encoded string, which external tooling depends
// on: G for account public keys, S for secret seeds, M for muxed accounts,
// T for pre-authorized transaction hashes, X for hashed secrets, P for
// signed payloads, and C for contract addresses.
package strkey

import (
	"encoding/base32"
	"encoding/binary"
	"errors"
	"fmt"
)

// VersionByte identifies the kind of key or identifier a strkey carries.
// The value occupies the top five bits of the first encoded character, which
// is how each kind gets its fixed leading letter.
type VersionByte byte

const (
	// VersionByteAccountID is an Ed25519 public key ("G...")
	VersionByteAccountID VersionByte = 6 << 3
	// VersionByteSeed is an Ed25519 secret seed ("S...")
	VersionByteSeed VersionByte = 18 << 3
	// VersionByteMuxedAccount is an Ed25519 public key plus a 64-bit
	// multiplexing ID ("M...")
	VersionByteMuxedAccount VersionByte = 12 << 3
	// VersionBytePreAuthTx is a pre-authorized transaction hash ("T...")
	VersionBytePreAuthTx VersionByte = 19 << 3
	// VersionByteHashX is a SHA-256 hash of a secret ("X...")
	VersionByteHashX VersionByte = 23 << 3
	// VersionByteSignedPayload is an Ed25519 public key plus a payload to
	// be signed ("P...")
	VersionByteSignedPayload VersionByte = 15 << 3
	// VersionByteContract is a contract identifier ("C...")
	VersionByteContract VersionByte = 2 << 3
)

const (
	// Raw payload length shared by the fixed-size key kinds
	keyLength = 32
	// Muxed accounts append a big-endian uint64 ID to the key
	muxedLength = keyLength + 8
	// Signed payloads append a length-prefixed payload of 1-64 bytes,
	// zero-padded to a multiple of 4
	signedPayloadMinLength = keyLength + 4 + 4
	signedPayloadMaxLength = keyLength + 4 + 64

	checksumLength = 2
)

var (
	// ErrInvalidBase32 is returned when the input is not canonical
	// unpadded base32
	ErrInvalidBase32 = errors.New("invalid base32")

	// ErrInvalidLength is returned when the decoded payload length does
	// not match the version byte's required length
	ErrInvalidLength = errors.New("invalid payload length for version byte")

	// ErrChecksumMismatch is returned when the trailing CRC16 does not
	// match the version byte and payload
	ErrChecksumMismatch = errors.New("checksum mismatch")

	// ErrInvalidVersionByte is returned when the decoded version byte is
	// not the expected kind, or not a known kind at all
	ErrInvalidVersionByte = errors.New("invalid version byte")
)

var encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// Encode returns the strkey form of the given payload under the given
// version byte. The payload length must match the version byte's fixed
// length, or the signed-payload framing rules for VersionByteSignedPayload.
func Encode(version VersionByte, payload []byte) (string, error) {
	if err := validatePayloadLength(version, len(payload)); err != nil {
		return "", err
	}
	raw := make([]byte, 0, 1+len(payload)+checksumLength)
	raw = append(raw, byte(version))
	raw = append(raw, payload...)
	raw = binary.LittleEndian.AppendUint16(raw, checksum(raw))
	return encoding.EncodeToString(raw), nil
}

// MustEncode is like Encode but panics on error. It is intended for inputs
// already validated by the caller, such as key material held in typed
// fixed-size values.
func MustEncode(version VersionByte, payload []byte) string {
	ret, err := Encode(version, payload)
	if err != nil {
		panic(fmt.Sprintf("unexpected strkey encode error: %s", err))
	}
	return ret
}

// Decode parses a strkey, requiring its version byte to match the expected
// kind, and returns the raw payload. Each failure mode is distinguishable:
// ErrInvalidBase32, ErrInvalidLength, ErrChecksumMismatch, or
// ErrInvalidVersionByte.
func Decode(expected VersionByte, s string) ([]byte, error) {
	version, payload, err := DecodeAny(s)
	if err != nil {
		return nil, err
	}
	if version != expected {
		return nil, fmt.Errorf(
			"%w: expected %#02x, got %#02x",
			ErrInvalidVersionByte,
			byte(expected),
			byte(version),
		)
	}
	return payload, nil
}

// DecodeAny parses a strkey without constraining the kind, returning the
// version byte alongside the payload. Use it when the key kind must be
// discovered from the input, such as telling a G account address from a C
// contract address.
func DecodeAny(s string) (VersionByte, []byte, error) {
	raw, err := encoding.DecodeString(s)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %s", ErrInvalidBase32, err)
	}
	// Reject non-canonical input: lower case, padding, or leftover bits
	// in the final character all re-encode differently
	if encoding.EncodeToString(raw) != s {
		return 0, nil, fmt.Errorf("%w: non-canonical encoding", ErrInvalidBase32)
	}
	if len(raw) < 1+checksumLength {
		return 0, nil, fmt.Errorf("%w: %d bytes", ErrInvalidLength, len(raw))
	}
	body := raw[:len(raw)-checksumLength]
	want := binary.LittleEndian.Uint16(raw[len(raw)-checksumLength:])
	if checksum(body) != want {
		return 0, nil, ErrChecksumMismatch
	}
	version := VersionByte(body[0])
	payload := body[1:]
	if err := validatePayloadLength(version, len(payload)); err != nil {
		return 0, nil, err
	}
	if version == VersionByteSignedPayload {
		if err := validateSignedPayload(payload); err != nil {
			return 0, nil, err
		}
	}
	return version, payload, nil
}

// validateSignedPayload checks the inner framing of a signed-payload key:
// a 32-byte Ed25519 key, a 4-byte big-endian inner length of 1-64, the
// inner payload, and zero padding to a 4-byte boundary
func validateSignedPayload(payload []byte) error {
	inner := binary.BigEndian.Uint32(payload[keyLength : keyLength+4])
	if inner < 1 || inner > 64 {
		return fmt.Errorf(
			"%w: inner payload length %d outside 1-64",
			ErrInvalidLength,
			inner,
		)
	}
	padded := (inner + 3) &^ 3
	if len(payload) != keyLength+4+int(padded) {
		return fmt.Errorf(
			"%w: inner payload length %d does not match %d total bytes",
			ErrInvalidLength,
			inner,
			len(payload),
		)
	}
	for _, b := range payload[keyLength+4+int(inner):] {
		if b != 0 {
			return fmt.Errorf(
				"%w: non-zero padding in signed payload",
				ErrInvalidLength,
			)
		}
	}
	return nil
}

// IsValid reports whether s is a well-formed strkey of the given kind
func IsValid(version VersionByte, s string) bool {
	_, err := Decode(version, s)
	return err == nil
}

func validatePayloadLength(version VersionByte, length int) error {
	switch version {
	case VersionByteAccountID, VersionByteSeed, VersionBytePreAuthTx,
		VersionByteHashX, VersionByteContract:
		if length != keyLength {
			return fmt.Errorf(
				"%w: expected %d bytes, got %d",
				ErrInvalidLength,
				keyLength,
				length,
			)
		}
	case VersionByteMuxedAccount:
		if length != muxedLength {
			return fmt.Errorf(
				"%w: expected %d bytes, got %d",
				ErrInvalidLength,
				muxedLength,
				length,
			)
		}
	case VersionByteSignedPayload:
		if length < signedPayloadMinLength ||
			length > signedPayloadMaxLength {
			return fmt.Errorf(
				"%w: expected %d-%d bytes, got %d",
				ErrInvalidLength,
				signedPayloadMinLength,
				signedPayloadMaxLength,
				length,
			)
		}
	default:
		return fmt.Errorf(
			"%w: unknown version byte %#02x",
			ErrInvalidVersionByte,
			byte(version),
		)
	}
	return nil
}

// checksum computes CRC16/XMODEM (polynomial 0x1021, zero initial value)
// over the given bytes. The protocol appends it least-significant byte
// first.
func checksum(data []byte) uint16 {
	var crc uint16
	for _, b := range data {
		crc ^= uint16(b) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = (crc << 1) ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}
