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

package derivation_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lux2983/gostellar/derivation"
	"github.com/lux2983/gostellar/internal/test"
	"github.com/lux2983/gostellar/strkey"
)

// SEP-0005 test vector 1
const testMnemonic = "illness spike retreat truth genius clock brain pass fit cave bargain toe"

var testBip39Seed = test.DecodeHexString(
	"e4a5a632e70943ae7f07659df1332160937fad82587216a4c64315a0fb39497e" +
		"e4a01f76ddab4cba68147977f3a147b6ad584c41808e8238a07f6cc4b582f186",
)

func TestNewSeed(t *testing.T) {
	seed := derivation.NewSeed(testMnemonic, "")
	assert.Equal(t, testBip39Seed, seed)
}

func TestNewSeedPassphrase(t *testing.T) {
	// A passphrase changes the seed entirely
	seed := derivation.NewSeed(testMnemonic, "p4ssphr4se")
	assert.NotEqual(t, testBip39Seed, seed)
	assert.Len(t, seed, 64)
}

func TestStellarAccountKey(t *testing.T) {
	testDefs := []struct {
		account    uint32
		secretSeed string
	}{
		{
			account:    0,
			secretSeed: "SBGWSG6BTNCKCOB3DIFBGCVMUPQFYPA2G4O34RMTB343OYPXU5DJDVMN",
		},
		{
			account:    1,
			secretSeed: "SCEPFFWGAG5P2VX5DHIYK3XEMZYLTYWIPWYEKXFHSK25RVMIUNJ7CTIS",
		},
		{
			account:    2,
			secretSeed: "SDAILLEZCSA67DUEP3XUPZJ7NYG7KGVRM46XA7K5QWWUIGADUZCZWTJP",
		},
	}
	for _, testDef := range testDefs {
		t.Run(fmt.Sprintf("account %d", testDef.account), func(t *testing.T) {
			key, err := derivation.StellarAccountKey(testMnemonic, "", testDef.account)
			require.NoError(t, err)
			require.Len(t, key, derivation.KeySize)
			assert.Equal(
				t,
				testDef.secretSeed,
				strkey.MustEncode(strkey.VersionByteSeed, key),
			)
		})
	}
}

func TestStellarAccountKeyHex(t *testing.T) {
	key, err := derivation.StellarAccountKey(testMnemonic, "", 0)
	require.NoError(t, err)
	assert.Equal(
		t,
		test.DecodeHexString(
			"4d691bc19b44a1383b1a0a130aaca3e05c3c1a371dbe45930ef9b761f7a74691",
		),
		key,
	)
}

func TestDeriveForPath(t *testing.T) {
	key, err := derivation.DeriveForPath("m/44'/148'/0'", testBip39Seed)
	require.NoError(t, err)
	require.Len(t, key.Key, derivation.KeySize)
	require.Len(t, key.ChainCode, 32)

	// Deterministic
	key2, err := derivation.DeriveForPath("m/44'/148'/0'", testBip39Seed)
	require.NoError(t, err)
	assert.Equal(t, key.Key, key2.Key)
	assert.Equal(t, key.ChainCode, key2.ChainCode)

	// Sibling accounts diverge
	key3, err := derivation.DeriveForPath("m/44'/148'/1'", testBip39Seed)
	require.NoError(t, err)
	assert.NotEqual(t, key.Key, key3.Key)
}

func TestDeriveForPathInvalid(t *testing.T) {
	testDefs := []string{
		"",
		"m",
		"m/",
		"44'/148'/0'",
		"m/44/148'/0'",
		"m/44'/148'/0",
		"m/44'//0'",
		"m/44'/148'/0'/",
		"m/x'/148'/0'",
	}
	for _, testDef := range testDefs {
		t.Run(fmt.Sprintf("path %q", testDef), func(t *testing.T) {
			_, err := derivation.DeriveForPath(testDef, testBip39Seed)
			assert.ErrorIs(t, err, derivation.ErrInvalidPath)
		})
	}
}

func TestDeriveForPathIndexOverflow(t *testing.T) {
	// Segment does not fit in 32 bits
	_, err := derivation.DeriveForPath("m/4294967296'", testBip39Seed)
	assert.ErrorIs(t, err, derivation.ErrInvalidPath)
}

func TestDeriveHardensIndex(t *testing.T) {
	master := derivation.NewMasterKey(testBip39Seed)
	// Index 0 and the explicit hardened form are the same child
	assert.Equal(
		t,
		master.Derive(0).Key,
		master.Derive(derivation.FirstHardenedIndex).Key,
	)
}
