package section

import (
	"github.com/arloliu/dense7/endian"
	"github.com/arloliu/dense7/errs"
)

// IndexEntry describes one string of a string table blob.
// It is a fixed size of 24 bytes and locates the encoded string with an absolute
// offset, so any entry is reachable without reading the others.
//
//	Bytes  | Field        | Type
//	-------|--------------|-------
//	0-7    | ID           | uint64
//	8-11   | Offset       | uint32
//	12-15  | Length       | uint32
//	16-19  | SourceLength | uint32
//	20-23  | Reserved     | uint32
type IndexEntry struct {
	// ID is a caller-supplied identifier or the xxHash64 of the entry name.
	ID uint64

	// Offset is the byte offset of the encoded string in the uncompressed data section.
	Offset uint32

	// Length is the size in bytes of the encoded string.
	Length uint32

	// SourceLength is the size in bytes of the original UTF-8 string.
	SourceLength uint32

	// Reserved for future use, must be set to 0.
	Reserved uint32
}

// End returns the offset just past the encoded string.
func (e IndexEntry) End() uint64 {
	return uint64(e.Offset) + uint64(e.Length)
}

// Append appends the serialized entry to buf using the specified endian engine.
func (e *IndexEntry) Append(buf []byte, engine endian.EndianEngine) []byte {
	buf = engine.AppendUint64(buf, e.ID)
	buf = engine.AppendUint32(buf, e.Offset)
	buf = engine.AppendUint32(buf, e.Length)
	buf = engine.AppendUint32(buf, e.SourceLength)

	return engine.AppendUint32(buf, e.Reserved)
}

// WriteToSlice writes the entry into b, which must be at least 24 bytes long.
func (e *IndexEntry) WriteToSlice(b []byte, engine endian.EndianEngine) error {
	if len(b) < IndexEntrySize {
		return errs.ErrInvalidIndexEntrySize
	}

	engine.PutUint64(b[0:8], e.ID)
	engine.PutUint32(b[8:12], e.Offset)
	engine.PutUint32(b[12:16], e.Length)
	engine.PutUint32(b[16:20], e.SourceLength)
	engine.PutUint32(b[20:24], e.Reserved)

	return nil
}

// ParseIndexEntry parses an index entry from a byte slice.
func ParseIndexEntry(data []byte, engine endian.EndianEngine) (IndexEntry, error) {
	if len(data) < IndexEntrySize {
		return IndexEntry{}, errs.ErrInvalidIndexEntrySize
	}

	return IndexEntry{
		ID:           engine.Uint64(data[0:8]),
		Offset:       engine.Uint32(data[8:12]),
		Length:       engine.Uint32(data[12:16]),
		SourceLength: engine.Uint32(data[16:20]),
		Reserved:     engine.Uint32(data[20:24]),
	}, nil
}
