package section

import (
	"github.com/arloliu/dense7/endian"
	"github.com/arloliu/dense7/errs"
)

// Header is the fixed 32-byte header of a string table blob.
//
// Layout:
//
//	Bytes  | Field        | Type   | Description
//	-------|--------------|--------|----------------------------------------------
//	0-1    | Options      | uint16 | magic, endianness, names flag (little-endian)
//	2      | TextEncoding | uint8  | format.TextEncodingType
//	3      | Compression  | uint8  | format.CompressionType of the data section
//	4-7    | Count        | uint32 | number of entries
//	8-11   | IndexOffset  | uint32 | byte offset of the index section
//	12-15  | DataOffset   | uint32 | byte offset of the data section
//	16-19  | DataSize     | uint32 | uncompressed size of the data section
//	20-27  | Checksum     | uint64 | xxHash64 of the uncompressed data section
//	28-31  | Reserved     |        | must be zero
type Header struct {
	Flag        Flag
	Count       uint32
	IndexOffset uint32
	DataOffset  uint32
	DataSize    uint32
	Checksum    uint64
	Reserved    [4]byte
}

// NewHeader creates a Header for count entries with the default flag.
// The offsets assume no names payload; the encoder moves both when one is written
// between the header and the index.
func NewHeader(count int) (*Header, error) {
	if count < 0 || count > MaxEntryCount {
		return nil, errs.ErrInvalidEntryCount
	}

	return &Header{
		Flag:        NewFlag(),
		Count:       uint32(count), //nolint: gosec
		IndexOffset: IndexOffsetOffset,
		DataOffset:  uint32(IndexOffsetOffset + count*IndexEntrySize), //nolint: gosec
	}, nil
}

// Parse parses the header from a byte slice.
// It returns an error if the data is not exactly 32 bytes or if the flags are invalid.
func (h *Header) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	// Options are always little-endian; they carry the endianness of everything else.
	h.Flag.Options = uint16(data[0]) | (uint16(data[1]) << 8)
	h.Flag.TextEncoding = data[2]
	h.Flag.DataCompression = data[3]

	if err := h.Flag.Validate(); err != nil {
		return err
	}

	engine := h.GetEndianEngine()
	h.Count = engine.Uint32(data[4:8])
	h.IndexOffset = engine.Uint32(data[8:12])
	h.DataOffset = engine.Uint32(data[12:16])
	h.DataSize = engine.Uint32(data[16:20])
	h.Checksum = engine.Uint64(data[20:28])
	copy(h.Reserved[:], data[28:32])

	if h.Count > MaxEntryCount {
		return errs.ErrInvalidEntryCount
	}

	return nil
}

// Bytes serializes the header into a new 32-byte slice.
func (h *Header) Bytes() []byte {
	b := make([]byte, HeaderSize)

	b[0] = byte(h.Flag.Options)
	b[1] = byte(h.Flag.Options >> 8)
	b[2] = h.Flag.TextEncoding
	b[3] = h.Flag.DataCompression

	engine := h.GetEndianEngine()
	engine.PutUint32(b[4:8], h.Count)
	engine.PutUint32(b[8:12], h.IndexOffset)
	engine.PutUint32(b[12:16], h.DataOffset)
	engine.PutUint32(b[16:20], h.DataSize)
	engine.PutUint64(b[20:28], h.Checksum)
	copy(b[28:32], h.Reserved[:])

	return b
}

// GetEndianEngine returns the endian engine selected by the header flag.
func (h *Header) GetEndianEngine() endian.EndianEngine {
	if h.Flag.IsBigEndian() {
		return endian.GetBigEndianEngine()
	}

	return endian.GetLittleEndianEngine()
}

// IndexSize returns the size of the index section in bytes.
func (h *Header) IndexSize() int {
	return int(h.Count) * IndexEntrySize
}
