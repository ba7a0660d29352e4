package section

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/dense7/endian"
	"github.com/arloliu/dense7/errs"
)

func TestEncodeDecodeNames(t *testing.T) {
	names := []string{
		"greeting.en",
		"greeting.ja",
		"ヘルプ.本文",
		"",
	}

	for _, engine := range []endian.EndianEngine{endian.GetLittleEndianEngine(), endian.GetBigEndianEngine()} {
		encoded, err := EncodeNames(names, engine)
		require.NoError(t, err)

		decoded, bytesRead, err := DecodeNames(encoded, engine)
		require.NoError(t, err)
		require.Equal(t, len(encoded), bytesRead)
		require.Equal(t, names, decoded)
	}
}

func TestEncodeNamesEmptyList(t *testing.T) {
	engine := endian.GetLittleEndianEngine()

	encoded, err := EncodeNames(nil, engine)
	require.NoError(t, err)
	require.Equal(t, []byte{0x00, 0x00}, encoded)

	decoded, bytesRead, err := DecodeNames(encoded, engine)
	require.NoError(t, err)
	require.Equal(t, 2, bytesRead)
	require.Empty(t, decoded)
}

func TestEncodeNamesLimits(t *testing.T) {
	engine := endian.GetLittleEndianEngine()

	_, err := EncodeNames(make([]string, 65536), engine)
	require.ErrorIs(t, err, errs.ErrInvalidNamesCount)

	_, err = EncodeNames([]string{strings.Repeat("a", 65536)}, engine)
	require.ErrorIs(t, err, errs.ErrInvalidName)
}

func TestDecodeNamesTruncated(t *testing.T) {
	engine := endian.GetLittleEndianEngine()

	tests := []struct {
		name string
		data []byte
	}{
		{"missing count", []byte{0x05}},
		{"missing length", []byte{0x01, 0x00}},
		{"short name", []byte{0x01, 0x00, 0x0A, 0x00, 'h', 'e', 'l', 'l', 'o'}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DecodeNames(tt.data, engine)
			require.ErrorIs(t, err, errs.ErrInvalidNamesPayload)
		})
	}
}

func TestDecodeNamesTrailingBytes(t *testing.T) {
	engine := endian.GetLittleEndianEngine()

	encoded, err := EncodeNames([]string{"a", "bc"}, engine)
	require.NoError(t, err)

	decoded, bytesRead, err := DecodeNames(append(encoded, 0xFF, 0xFF), engine)
	require.NoError(t, err)
	require.Equal(t, len(encoded), bytesRead)
	require.Equal(t, []string{"a", "bc"}, decoded)
}

func TestVerifyNameHashes(t *testing.T) {
	byLength := func(s string) uint64 { return uint64(len(s)) }

	require.NoError(t, VerifyNameHashes([]string{"one", "three"}, []uint64{3, 5}, byLength))

	err := VerifyNameHashes([]string{"one", "three"}, []uint64{3, 4}, byLength)
	require.ErrorIs(t, err, errs.ErrNameHashMismatch)
	require.Contains(t, err.Error(), "three")

	err = VerifyNameHashes([]string{"one"}, []uint64{3, 5}, byLength)
	require.ErrorIs(t, err, errs.ErrInvalidNamesCount)
}
