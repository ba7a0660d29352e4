package blob

import (
	"iter"
	"slices"

	"github.com/arloliu/dense7/format"
	"github.com/arloliu/dense7/internal/hash"
	"github.com/arloliu/dense7/section"
)

// TableStats reports the sizes of a decoded string table.
type TableStats struct {
	Entries         int // number of strings
	SourceBytes     int // total UTF-8 size of all strings
	EncodedBytes    int // uncompressed size of the data section
	CompressedBytes int // stored size of the data section
}

// Ratio returns CompressedBytes / SourceBytes, or 0 for an empty table.
func (s TableStats) Ratio() float64 {
	if s.SourceBytes == 0 {
		return 0
	}

	return float64(s.CompressedBytes) / float64(s.SourceBytes)
}

// indexMaps holds entry ID and name mappings for a table.
type indexMaps struct {
	byID   map[uint64]int // ID → position, first entry wins on collision
	byName map[string]int // name → position (nil without names payload)
}

// StringTable is a decoded string table. It is immutable and safe for concurrent reads.
type StringTable struct {
	flag   section.Flag
	ids    []uint64
	names  []string
	values []string
	index  indexMaps
	stats  TableStats
}

func newStringTable(header *section.Header, entries []section.IndexEntry, ids []uint64,
	names []string, values []string, compressedBytes int,
) *StringTable {
	t := &StringTable{
		flag:   header.Flag,
		ids:    ids,
		names:  names,
		values: values,
		index: indexMaps{
			byID: make(map[uint64]int, len(ids)),
		},
		stats: TableStats{
			Entries:         len(entries),
			EncodedBytes:    int(header.DataSize),
			CompressedBytes: compressedBytes,
		},
	}

	for i, id := range ids {
		if _, exists := t.index.byID[id]; !exists {
			t.index.byID[id] = i
		}
		t.stats.SourceBytes += int(entries[i].SourceLength)
	}

	if names != nil {
		t.index.byName = make(map[string]int, len(names))
		for i, name := range names {
			t.index.byName[name] = i
		}
	}

	return t
}

// Len returns the number of strings in the table.
func (t *StringTable) Len() int {
	return len(t.values)
}

// Has checks if the table contains the given ID.
func (t *StringTable) Has(id uint64) bool {
	_, ok := t.index.byID[id]
	return ok
}

// HasName checks if the table contains the given name.
// Without a names payload the name is hashed and looked up by ID.
func (t *StringTable) HasName(name string) bool {
	_, ok := t.lookupName(name)
	return ok
}

// Get returns the string stored under id.
func (t *StringTable) Get(id uint64) (string, bool) {
	i, ok := t.index.byID[id]
	if !ok {
		return "", false
	}

	return t.values[i], true
}

// GetByName returns the string stored under name.
//
// Behavior:
//   - If the table has a names payload: performs an exact lookup (handles collisions correctly)
//   - Otherwise: hashes the name and looks up by ID (exact when no collisions occurred)
func (t *StringTable) GetByName(name string) (string, bool) {
	i, ok := t.lookupName(name)
	if !ok {
		return "", false
	}

	return t.values[i], true
}

// At returns the string at position i in insertion order.
func (t *StringTable) At(i int) (string, bool) {
	if i < 0 || i >= len(t.values) {
		return "", false
	}

	return t.values[i], true
}

// IDs returns all entry IDs in insertion order.
// The slice is newly allocated to prevent external modification.
func (t *StringTable) IDs() []uint64 {
	return slices.Clone(t.ids)
}

// Names returns all entry names in insertion order.
// Returns an empty slice if the table has no names payload.
func (t *StringTable) Names() []string {
	if t.names == nil {
		return []string{}
	}

	return slices.Clone(t.names)
}

// HasNames returns whether the table carries a names payload.
func (t *StringTable) HasNames() bool {
	return t.names != nil
}

// All returns an iterator over (ID, string) pairs in insertion order.
//
// Example:
//
//	for id, text := range table.All() {
//	    fmt.Printf("0x%016x: %s\n", id, text)
//	}
func (t *StringTable) All() iter.Seq2[uint64, string] {
	return func(yield func(uint64, string) bool) {
		for i, text := range t.values {
			if !yield(t.ids[i], text) {
				return
			}
		}
	}
}

// TextEncoding returns how strings were stored in the blob.
func (t *StringTable) TextEncoding() format.TextEncodingType {
	return t.flag.GetTextEncoding()
}

// Compression returns the compression of the blob's data section.
func (t *StringTable) Compression() format.CompressionType {
	return t.flag.GetDataCompression()
}

// IsBigEndian returns whether the blob was written big-endian.
func (t *StringTable) IsBigEndian() bool {
	return t.flag.IsBigEndian()
}

// Stats returns the table sizes.
func (t *StringTable) Stats() TableStats {
	return t.stats
}

func (t *StringTable) lookupName(name string) (int, bool) {
	if t.index.byName != nil {
		i, ok := t.index.byName[name]
		return i, ok
	}

	i, ok := t.index.byID[hash.ID(name)]

	return i, ok
}
