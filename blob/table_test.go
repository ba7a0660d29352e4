package blob

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/dense7/format"
)

func TestStringTable_Accessors(t *testing.T) {
	encoder, err := NewStringEncoder(nil)
	require.NoError(t, err)
	require.NoError(t, encoder.AddStringID(30, "thirty"))
	require.NoError(t, encoder.AddStringID(10, "ten"))
	require.NoError(t, encoder.AddStringID(20, ""))
	data, err := encoder.Finish()
	require.NoError(t, err)

	table := decodeBlob(t, data)

	require.Equal(t, 3, table.Len())
	require.Equal(t, []uint64{30, 10, 20}, table.IDs())
	require.True(t, table.Has(20))
	require.False(t, table.Has(40))

	got, ok := table.Get(20)
	require.True(t, ok)
	require.Empty(t, got)

	_, ok = table.Get(40)
	require.False(t, ok)

	got, ok = table.At(1)
	require.True(t, ok)
	require.Equal(t, "ten", got)

	_, ok = table.At(3)
	require.False(t, ok)
	_, ok = table.At(-1)
	require.False(t, ok)

	ids := table.IDs()
	ids[0] = 99
	require.Equal(t, uint64(30), table.IDs()[0], "IDs returns a copy")
}

func TestStringTable_All(t *testing.T) {
	encoder, err := NewStringEncoder(nil)
	require.NoError(t, err)
	for i, text := range []string{"a", "b", "c", "d"} {
		require.NoError(t, encoder.AddStringID(uint64(i+1), text))
	}
	data, err := encoder.Finish()
	require.NoError(t, err)

	table := decodeBlob(t, data)

	var ids []uint64
	var texts []string
	for id, text := range table.All() {
		ids = append(ids, id)
		texts = append(texts, text)
	}
	require.Equal(t, []uint64{1, 2, 3, 4}, ids)
	require.Equal(t, []string{"a", "b", "c", "d"}, texts)

	count := 0
	for range table.All() {
		count++
		if count == 2 {
			break
		}
	}
	require.Equal(t, 2, count)
}

func TestStringTable_Stats(t *testing.T) {
	encoder, err := NewStringEncoder(nil, WithCompression(format.CompressionNone))
	require.NoError(t, err)
	require.NoError(t, encoder.AddStringID(1, "ABCDEFGH"))
	require.NoError(t, encoder.AddStringID(2, "€"))
	data, err := encoder.Finish()
	require.NoError(t, err)

	stats := decodeBlob(t, data).Stats()
	require.Equal(t, 2, stats.Entries)
	require.Equal(t, 11, stats.SourceBytes)
	require.Equal(t, 10, stats.EncodedBytes)
	require.Equal(t, 10, stats.CompressedBytes)
	require.InDelta(t, 10.0/11.0, stats.Ratio(), 1e-9)

	require.Zero(t, TableStats{}.Ratio())
}
