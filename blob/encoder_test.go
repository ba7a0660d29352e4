package blob

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/dense7/errs"
	"github.com/arloliu/dense7/format"
	"github.com/arloliu/dense7/internal/hash"
	"github.com/arloliu/dense7/section"
)

func TestStringEncoder_New(t *testing.T) {
	encoder, err := NewStringEncoder(nil)
	require.NoError(t, err)
	require.Equal(t, modeUndefined, encoder.identifierMode)
	require.Equal(t, format.TextDense7, encoder.Header().Flag.GetTextEncoding())
	require.Equal(t, format.CompressionZstd, encoder.Header().Flag.GetDataCompression())
}

func TestStringEncoder_NewWithOptions(t *testing.T) {
	encoder, err := NewStringEncoder(nil,
		WithCompression(format.CompressionS2),
		WithTextEncoding(format.TextRaw),
		WithBigEndian(),
		WithNames(true))
	require.NoError(t, err)

	require.Equal(t, format.CompressionS2, encoder.Header().Flag.GetDataCompression())
	require.Equal(t, format.TextRaw, encoder.Header().Flag.GetTextEncoding())
	require.True(t, encoder.Header().Flag.IsBigEndian())
	require.True(t, encoder.withNames)
}

func TestStringEncoder_InvalidOptions(t *testing.T) {
	_, err := NewStringEncoder(nil, WithCompression(format.CompressionType(0x9)))
	require.Error(t, err)

	_, err = NewStringEncoder(nil, WithTextEncoding(format.TextEncodingType(0)))
	require.Error(t, err)
}

func TestStringEncoder_ModeExclusivity(t *testing.T) {
	t.Run("name then ID", func(t *testing.T) {
		encoder, err := NewStringEncoder(nil)
		require.NoError(t, err)

		require.NoError(t, encoder.AddString("a", "x"))
		require.ErrorIs(t, encoder.AddStringID(1, "y"), errs.ErrMixedIdentifierMode)
	})

	t.Run("ID then name", func(t *testing.T) {
		encoder, err := NewStringEncoder(nil)
		require.NoError(t, err)

		require.NoError(t, encoder.AddStringID(1, "x"))
		require.ErrorIs(t, encoder.AddString("a", "y"), errs.ErrMixedIdentifierMode)
	})
}

func TestStringEncoder_AddErrors(t *testing.T) {
	encoder, err := NewStringEncoder(nil)
	require.NoError(t, err)

	require.ErrorIs(t, encoder.AddString("", "x"), errs.ErrInvalidName)
	require.NoError(t, encoder.AddString("a", "x"))
	require.ErrorIs(t, encoder.AddString("a", "y"), errs.ErrDuplicateName)
	require.ErrorIs(t, encoder.AddString("b", "bad \xff"), errs.ErrInvalidUTF8)

	// a failed add leaves no entry behind
	require.Equal(t, 1, encoder.EntryCount())
	require.NoError(t, encoder.AddString("b", "fine"))

	ids, err := NewStringEncoder(nil)
	require.NoError(t, err)
	require.ErrorIs(t, ids.AddStringID(0, "x"), errs.ErrInvalidID)
	require.NoError(t, ids.AddStringID(7, "x"))
	require.ErrorIs(t, ids.AddStringID(7, "y"), errs.ErrHashCollision)
}

func TestStringEncoder_RawInvalidUTF8(t *testing.T) {
	encoder, err := NewStringEncoder(nil, WithTextEncoding(format.TextRaw))
	require.NoError(t, err)

	err = encoder.AddStringID(1, "\xc3")
	require.ErrorIs(t, err, errs.ErrInvalidUTF8)
	require.ErrorIs(t, err, errs.ErrEncoding)
}

func TestStringEncoder_Finish(t *testing.T) {
	encoder, err := NewStringEncoder(nil, WithCompression(format.CompressionNone))
	require.NoError(t, err)

	_, err = encoder.Finish()
	require.ErrorIs(t, err, errs.ErrNoEntries)

	_, err = encoder.Finish()
	require.ErrorIs(t, err, errs.ErrEncoderFinished)
	require.ErrorIs(t, encoder.AddString("late", "x"), errs.ErrEncoderFinished)
}

func TestStringEncoder_Layout(t *testing.T) {
	encoder, err := NewStringEncoder(nil, WithCompression(format.CompressionNone))
	require.NoError(t, err)

	require.NoError(t, encoder.AddString("first", "ABCDEFGH"))
	require.NoError(t, encoder.AddString("second", "hi"))

	data, err := encoder.Finish()
	require.NoError(t, err)

	var header section.Header
	require.NoError(t, header.Parse(data[:section.HeaderSize]))
	require.Equal(t, uint32(2), header.Count)
	require.False(t, header.Flag.HasNames(), "names are only written on request or collision")
	require.Equal(t, uint32(section.HeaderSize), header.IndexOffset)
	require.Equal(t, uint32(section.HeaderSize+2*section.IndexEntrySize), header.DataOffset)
	require.Equal(t, uint32(9), header.DataSize)
	require.Len(t, data, int(header.DataOffset)+9)

	engine := header.GetEndianEngine()
	first, err := section.ParseIndexEntry(data[header.IndexOffset:], engine)
	require.NoError(t, err)
	require.Equal(t, section.IndexEntry{ID: hash.ID("first"), Offset: 0, Length: 7, SourceLength: 8}, first)

	second, err := section.ParseIndexEntry(data[int(header.IndexOffset)+section.IndexEntrySize:], engine)
	require.NoError(t, err)
	require.Equal(t, section.IndexEntry{ID: hash.ID("second"), Offset: 7, Length: 2, SourceLength: 2}, second)

	require.Equal(t, []byte{0xC1, 0x42, 0x43, 0xC4, 0x45, 0x46, 0x47, 'h', 'i'}, data[header.DataOffset:])
	require.Equal(t, hash.Checksum(data[header.DataOffset:]), header.Checksum)
}

func TestStringEncoder_NamesPayload(t *testing.T) {
	encoder, err := NewStringEncoder(nil, WithNames(true), WithCompression(format.CompressionNone))
	require.NoError(t, err)

	require.NoError(t, encoder.AddString("k1", "v1"))
	require.NoError(t, encoder.AddString("k2", "v2"))

	data, err := encoder.Finish()
	require.NoError(t, err)

	var header section.Header
	require.NoError(t, header.Parse(data[:section.HeaderSize]))
	require.True(t, header.Flag.HasNames())

	names, n, err := section.DecodeNames(data[section.HeaderSize:header.IndexOffset], header.GetEndianEngine())
	require.NoError(t, err)
	require.Equal(t, int(header.IndexOffset)-section.HeaderSize, n)
	require.Equal(t, []string{"k1", "k2"}, names)
}

func TestStringEncoder_IDModeIgnoresNames(t *testing.T) {
	encoder, err := NewStringEncoder(nil, WithNames(true))
	require.NoError(t, err)
	require.NoError(t, encoder.AddStringID(42, "answer"))

	data, err := encoder.Finish()
	require.NoError(t, err)

	var header section.Header
	require.NoError(t, header.Parse(data[:section.HeaderSize]))
	require.False(t, header.Flag.HasNames())
}

func TestStringEncoder_IndexGrowth(t *testing.T) {
	encoder, err := NewStringEncoder(nil)
	require.NoError(t, err)

	for i := range 1000 {
		require.NoError(t, encoder.AddStringID(uint64(i+1), "v"))
	}
	require.Equal(t, 1000, encoder.EntryCount())
}
