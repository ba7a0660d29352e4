package section

import (
	"math"
)

const (
	// Bit masks of the Options field
	NamesMask        = 0x0001 // Mask for names payload bit (bit 0)
	EndiannessMask   = 0x0002 // Mask for endianness bit (bit 1)
	ReservedBitsMask = 0x000C // Mask for reserved bits (bits 2-3)
	MagicNumberMask  = 0xFFF0 // Mask for magic number (bits 4-15)

	// MagicStringTableV1Opt is the version 1 magic number of the string table blob format.
	MagicStringTableV1Opt = 0xD700
)

// offset and section sizes in the blob
const (
	HeaderSize        = 32             // fixed header size in bytes
	IndexEntrySize    = 24             // fixed index entry size in bytes
	IndexOffsetOffset = HeaderSize     // index offset when no names payload is present
	MaxEntryCount     = math.MaxUint16 // bounded by the uint16 count of the names payload
	MaxOffset         = math.MaxUint32 // maximum offset value of an index entry
)
