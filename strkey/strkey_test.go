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

package strkey

import (
	"encoding/binary"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lux2983/gostellar/internal/test"
)

// Well-known zero-key account address: 52 A characters of payload after the
// G, then the checksum suffix
const zeroAccountAddress = "GAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAWHF"

func TestEncodeZeroAccount(t *testing.T) {
	encoded, err := Encode(VersionByteAccountID, make([]byte, 32))
	require.NoError(t, err)
	assert.Equal(t, zeroAccountAddress, encoded)
}

func TestDecodeZeroAccount(t *testing.T) {
	payload, err := Decode(VersionByteAccountID, zeroAccountAddress)
	require.NoError(t, err)
	assert.Equal(t, make([]byte, 32), payload)
}

func TestKnownSeedVector(t *testing.T) {
	seed := test.DecodeHexString(
		"4d691bc19b44a1383b1a0a130aaca3e05c3c1a371dbe45930ef9b761f7a74691",
	)
	encoded, err := Encode(VersionByteSeed, seed)
	require.NoError(t, err)
	assert.Equal(
		t,
		"SBGWSG6BTNCKCOB3DIFBGCVMUPQFYPA2G4O34RMTB343OYPXU5DJDVMN",
		encoded,
	)
	decoded, err := Decode(VersionByteSeed, encoded)
	require.NoError(t, err)
	assert.Equal(t, seed, decoded)
}

func TestRoundTripAllVersions(t *testing.T) {
	key := test.DecodeHexString(
		"363eaa3867841fbad0f4ed88c779e4fe66e56a2470dc75c0db9a0f8a119c0103",
	)
	muxed := append(append([]byte{}, key...), 0, 0, 0, 0, 0, 0, 0, 42)
	signedPayload := append(append([]byte{}, key...), 0, 0, 0, 5, 1, 2, 3, 4, 5, 0, 0, 0)
	testDefs := []struct {
		version        VersionByte
		payload        []byte
		expectedPrefix string
	}{
		{version: VersionByteAccountID, payload: key, expectedPrefix: "G"},
		{version: VersionByteSeed, payload: key, expectedPrefix: "S"},
		{version: VersionByteMuxedAccount, payload: muxed, expectedPrefix: "M"},
		{version: VersionBytePreAuthTx, payload: key, expectedPrefix: "T"},
		{version: VersionByteHashX, payload: key, expectedPrefix: "X"},
		{version: VersionByteSignedPayload, payload: signedPayload, expectedPrefix: "P"},
		{version: VersionByteContract, payload: key, expectedPrefix: "C"},
	}
	for _, testDef := range testDefs {
		encoded, err := Encode(testDef.version, testDef.payload)
		require.NoError(t, err, "version %#02x", byte(testDef.version))
		assert.True(
			t,
			strings.HasPrefix(encoded, testDef.expectedPrefix),
			"version %#02x encoded as %s, expected prefix %s",
			byte(testDef.version),
			encoded,
			testDef.expectedPrefix,
		)

		decoded, err := Decode(testDef.version, encoded)
		require.NoError(t, err)
		assert.Equal(t, testDef.payload, decoded)

		version, payload, err := DecodeAny(encoded)
		require.NoError(t, err)
		assert.Equal(t, testDef.version, version)
		assert.Equal(t, testDef.payload, payload)
	}
}

func TestWrongVersionByte(t *testing.T) {
	_, err := Decode(VersionByteSeed, zeroAccountAddress)
	assert.ErrorIs(t, err, ErrInvalidVersionByte)
}

func TestChecksumRejection(t *testing.T) {
	// Flipping any single character of the checksum region must surface
	// a checksum error, never a silent wrong decode
	for i := len(zeroAccountAddress) - 4; i < len(zeroAccountAddress); i++ {
		corrupted := []byte(zeroAccountAddress)
		if corrupted[i] == 'A' {
			corrupted[i] = 'B'
		} else {
			corrupted[i] = 'A'
		}
		_, err := Decode(VersionByteAccountID, string(corrupted))
		assert.Error(t, err, "corrupted at %d", i)
		assert.NotErrorIs(t, err, ErrInvalidVersionByte)
	}
}

func TestPayloadCorruptionRejection(t *testing.T) {
	corrupted := []byte(zeroAccountAddress)
	corrupted[10] = 'B'
	_, err := Decode(VersionByteAccountID, string(corrupted))
	assert.ErrorIs(t, err, ErrChecksumMismatch)
}

func TestInvalidBase32(t *testing.T) {
	testDefs := []string{
		strings.ToLower(zeroAccountAddress),
		zeroAccountAddress + "=",
		"G!" + zeroAccountAddress[2:],
		"G1" + zeroAccountAddress[2:],
	}
	for _, testDef := range testDefs {
		_, _, err := DecodeAny(testDef)
		assert.ErrorIs(t, err, ErrInvalidBase32, "input %q", testDef)
	}
}

func TestInvalidPayloadLength(t *testing.T) {
	_, err := Encode(VersionByteAccountID, make([]byte, 31))
	assert.ErrorIs(t, err, ErrInvalidLength)
	_, err = Encode(VersionByteAccountID, make([]byte, 33))
	assert.ErrorIs(t, err, ErrInvalidLength)
	_, err = Encode(VersionByteMuxedAccount, make([]byte, 32))
	assert.ErrorIs(t, err, ErrInvalidLength)
}

func TestUnknownVersionByte(t *testing.T) {
	_, err := Encode(VersionByte(1), make([]byte, 32))
	assert.ErrorIs(t, err, ErrInvalidVersionByte)
}

func TestSignedPayloadFraming(t *testing.T) {
	key := make([]byte, 32)
	build := func(innerLen uint32, total int, pad byte) []byte {
		payload := make([]byte, total)
		copy(payload, key)
		binary.BigEndian.PutUint32(payload[32:36], innerLen)
		for i := 36 + int(innerLen); i < total; i++ {
			payload[i] = pad
		}
		return payload
	}
	// Valid: 5 inner bytes padded to 8
	encoded, err := Encode(VersionByteSignedPayload, build(5, 44, 0))
	require.NoError(t, err)
	_, _, err = DecodeAny(encoded)
	require.NoError(t, err)

	// Inner length of zero
	encoded, err = Encode(VersionByteSignedPayload, build(0, 40, 0))
	require.NoError(t, err)
	_, _, err = DecodeAny(encoded)
	assert.ErrorIs(t, err, ErrInvalidLength)

	// Inner length disagrees with total
	encoded, err = Encode(VersionByteSignedPayload, build(5, 48, 0))
	require.NoError(t, err)
	_, _, err = DecodeAny(encoded)
	assert.ErrorIs(t, err, ErrInvalidLength)

	// Non-zero padding
	encoded, err = Encode(VersionByteSignedPayload, build(5, 44, 0xFF))
	require.NoError(t, err)
	_, _, err = DecodeAny(encoded)
	assert.ErrorIs(t, err, ErrInvalidLength)
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid(VersionByteAccountID, zeroAccountAddress))
	assert.False(t, IsValid(VersionByteSeed, zeroAccountAddress))
	assert.False(t, IsValid(VersionByteAccountID, "not a strkey"))
}

func TestChecksumKnownValue(t *testing.T) {
	// CRC16/XMODEM check value for "123456789"
	assert.Equal(t, uint16(0x31C3), checksum([]byte("123456789")))
}
