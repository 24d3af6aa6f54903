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

package xdr_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/lux2983/gostellar/internal/test"
	"github.com/lux2983/gostellar/xdr"
)

// The codec is a pure synchronous transform and must not spawn goroutines
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestEncodeUint64(t *testing.T) {
	enc := xdr.NewEncoder()
	require.NoError(t, enc.EncodeUint64(9876543210))
	assert.Equal(
		t,
		test.DecodeHexString("00 00 00 02 4C B0 16 EA"),
		enc.Bytes(),
	)
}

func TestDecodeUint64(t *testing.T) {
	dec := xdr.NewDecoder(test.DecodeHexString("00 00 00 02 4C B0 16 EA"))
	v, err := dec.DecodeUint64()
	require.NoError(t, err)
	assert.Equal(t, uint64(9876543210), v)
	assert.Equal(t, 0, dec.Remaining())
	assert.Equal(t, 8, dec.Consumed())
}

func TestIntegerRoundTrip(t *testing.T) {
	enc := xdr.NewEncoder()
	require.NoError(t, enc.EncodeUint32(0xDEADBEEF))
	require.NoError(t, enc.EncodeInt32(-1))
	require.NoError(t, enc.EncodeUint64(0xCAFEBABE12345678))
	require.NoError(t, enc.EncodeInt64(-9223372036854775808))
	dec := xdr.NewDecoder(enc.Bytes())
	u32, err := dec.DecodeUint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0xDEADBEEF), u32)
	i32, err := dec.DecodeInt32()
	require.NoError(t, err)
	assert.Equal(t, int32(-1), i32)
	u64, err := dec.DecodeUint64()
	require.NoError(t, err)
	assert.Equal(t, uint64(0xCAFEBABE12345678), u64)
	i64, err := dec.DecodeInt64()
	require.NoError(t, err)
	assert.Equal(t, int64(-9223372036854775808), i64)
	assert.Equal(t, 0, dec.Remaining())
}

func TestEncodeDeterminism(t *testing.T) {
	build := func() []byte {
		enc := xdr.NewEncoder()
		require.NoError(t, enc.EncodeUint32(42))
		require.NoError(t, enc.EncodeString("determinism"))
		require.NoError(t, enc.EncodeOpaque([]byte{1, 2, 3}))
		return enc.Bytes()
	}
	assert.Equal(t, build(), build())
}

func TestBool(t *testing.T) {
	testDefs := []struct {
		wireHex     string
		expected    bool
		expectError error
	}{
		{wireHex: "00000000", expected: false},
		{wireHex: "00000001", expected: true},
		{wireHex: "00000002", expectError: xdr.ErrInvalidBool},
		{wireHex: "ffffffff", expectError: xdr.ErrInvalidBool},
	}
	for _, testDef := range testDefs {
		dec := xdr.NewDecoder(test.DecodeHexString(testDef.wireHex))
		v, err := dec.DecodeBool()
		if testDef.expectError != nil {
			assert.ErrorIs(t, err, testDef.expectError)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, testDef.expected, v)
	}
}

func TestFixedOpaquePadding(t *testing.T) {
	testDefs := []struct {
		data        []byte
		expectedLen int
	}{
		{data: []byte{}, expectedLen: 0},
		{data: []byte{1}, expectedLen: 4},
		{data: []byte{1, 2}, expectedLen: 4},
		{data: []byte{1, 2, 3}, expectedLen: 4},
		{data: []byte{1, 2, 3, 4}, expectedLen: 4},
		{data: []byte{1, 2, 3, 4, 5}, expectedLen: 8},
	}
	for _, testDef := range testDefs {
		enc := xdr.NewEncoder()
		require.NoError(t, enc.EncodeFixedOpaque(testDef.data))
		assert.Equal(t, testDef.expectedLen, enc.Len())
		// Pad bytes must be zero
		assert.True(
			t,
			bytes.Equal(
				enc.Bytes()[len(testDef.data):],
				make([]byte, testDef.expectedLen-len(testDef.data)),
			),
		)
		// Decode must consume the pad so the cursor stays aligned
		dec := xdr.NewDecoder(enc.Bytes())
		decoded, err := dec.DecodeFixedOpaque(len(testDef.data))
		require.NoError(t, err)
		assert.Equal(t, testDef.data, decoded)
		assert.Equal(t, 0, dec.Remaining())
	}
}

func TestOpaquePadding(t *testing.T) {
	enc := xdr.NewEncoder()
	require.NoError(t, enc.EncodeOpaque([]byte{0xAA, 0xBB, 0xCC, 0xDD, 0xEE}))
	// 4-byte length prefix + payload padded to 8
	assert.Equal(
		t,
		test.DecodeHexString("00000005 AABBCCDD EE000000"),
		enc.Bytes(),
	)
	dec := xdr.NewDecoder(enc.Bytes())
	decoded, err := dec.DecodeOpaque()
	require.NoError(t, err)
	assert.Equal(t, []byte{0xAA, 0xBB, 0xCC, 0xDD, 0xEE}, decoded)
	assert.Equal(t, 0, dec.Remaining())
}

func TestOpaqueLengthExceedsData(t *testing.T) {
	// Length prefix claims 10000 bytes but only 4 remain
	dec := xdr.NewDecoder(test.DecodeHexString("00002710 01020304"))
	_, err := dec.DecodeOpaque()
	assert.ErrorIs(t, err, xdr.ErrLengthExceedsData)
}

func TestReadBytesPastEnd(t *testing.T) {
	dec := xdr.NewDecoder([]byte{1, 2, 3})
	_, err := dec.ReadBytes(4)
	assert.ErrorIs(t, err, xdr.ErrUnexpectedEOF)
	// Failed reads must not consume input
	assert.Equal(t, 3, dec.Remaining())
	data, err := dec.ReadBytes(3)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, data)
}

func TestString(t *testing.T) {
	enc := xdr.NewEncoder()
	require.NoError(t, enc.EncodeString("hello"))
	assert.Equal(
		t,
		test.DecodeHexString("00000005 68656c6c 6f000000"),
		enc.Bytes(),
	)
	dec := xdr.NewDecoder(enc.Bytes())
	s, err := dec.DecodeString()
	require.NoError(t, err)
	assert.Equal(t, "hello", s)
}

func TestStringInvalidUtf8(t *testing.T) {
	enc := xdr.NewEncoder()
	err := enc.EncodeString(string([]byte{0xff, 0xfe}))
	assert.ErrorIs(t, err, xdr.ErrInvalidUtf8)

	dec := xdr.NewDecoder(test.DecodeHexString("00000002 fffe0000"))
	_, err = dec.DecodeString()
	assert.ErrorIs(t, err, xdr.ErrInvalidUtf8)
}

func TestOptional(t *testing.T) {
	present := xdr.Uint32(7)
	enc := xdr.NewEncoder()
	require.NoError(t, xdr.EncodeOptional(enc, &present))
	require.NoError(t, xdr.EncodeOptional[xdr.Uint32](enc, nil))
	assert.Equal(
		t,
		test.DecodeHexString("00000001 00000007 00000000"),
		enc.Bytes(),
	)
	dec := xdr.NewDecoder(enc.Bytes())
	v1, err := xdr.DecodeOptional[xdr.Uint32](dec)
	require.NoError(t, err)
	require.NotNil(t, v1)
	assert.Equal(t, xdr.Uint32(7), *v1)
	v2, err := xdr.DecodeOptional[xdr.Uint32](dec)
	require.NoError(t, err)
	assert.Nil(t, v2)
}

func TestOptionalInvalidFlag(t *testing.T) {
	dec := xdr.NewDecoder(test.DecodeHexString("00000002 00000007"))
	_, err := xdr.DecodeOptional[xdr.Uint32](dec)
	assert.ErrorIs(t, err, xdr.ErrInvalidOptionalFlag)
}

func TestVector(t *testing.T) {
	items := []xdr.Uint32{10, 20, 30}
	enc := xdr.NewEncoder()
	require.NoError(t, xdr.EncodeVector(enc, items))
	assert.Equal(
		t,
		test.DecodeHexString("00000003 0000000a 00000014 0000001e"),
		enc.Bytes(),
	)
	dec := xdr.NewDecoder(enc.Bytes())
	decoded, err := xdr.DecodeVector[xdr.Uint32](dec)
	require.NoError(t, err)
	assert.Equal(t, items, decoded)
}

func TestVectorCountExceedsData(t *testing.T) {
	// Count claims 1000 elements with 4 bytes remaining
	dec := xdr.NewDecoder(test.DecodeHexString("000003e8 00000001"))
	_, err := xdr.DecodeVector[xdr.Uint32](dec)
	assert.ErrorIs(t, err, xdr.ErrLengthExceedsData)
}

func TestFixedArray(t *testing.T) {
	items := []xdr.Uint64{1, 2}
	enc := xdr.NewEncoder()
	require.NoError(t, xdr.EncodeFixedArray(enc, items))
	// No count prefix
	assert.Equal(t, 16, enc.Len())
	dec := xdr.NewDecoder(enc.Bytes())
	decoded, err := xdr.DecodeFixedArray[xdr.Uint64](dec, 2)
	require.NoError(t, err)
	assert.Equal(t, items, decoded)
}

func TestUnmarshalTrailingBytes(t *testing.T) {
	var v xdr.Uint32
	err := xdr.Unmarshal(test.DecodeHexString("00000001 00000002"), &v)
	assert.ErrorIs(t, err, xdr.ErrTrailingBytes)
}

func TestUint256RoundTrip(t *testing.T) {
	u := xdr.NewUint256(test.DecodeHexString(
		"0102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f20",
	))
	data, err := xdr.Marshal(&u)
	require.NoError(t, err)
	assert.Len(t, data, 32)
	var decoded xdr.Uint256
	require.NoError(t, xdr.Unmarshal(data, &decoded))
	assert.Equal(t, u, decoded)
}

func TestEncoderBytesSnapshot(t *testing.T) {
	enc := xdr.NewEncoder()
	require.NoError(t, enc.EncodeUint32(1))
	snap := enc.Bytes()
	require.NoError(t, enc.EncodeUint32(2))
	// Earlier snapshot is unaffected by later writes
	assert.Equal(t, test.DecodeHexString("00000001"), snap)
	assert.Equal(t, 8, enc.Len())
}
