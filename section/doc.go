// Package section defines the low-level binary structures of the dense7 string table blob.
//
// It handles the byte-level layout of the header, its packed flag, the index entries and
// the optional names payload. Most users should use the blob package instead.
//
// # Blob Structure
//
//	┌─────────────────────────────────────────────────────────┐
//	│ Header (32 bytes, fixed)                                │
//	│  - Flag (4 bytes): options, text encoding, compression  │
//	│  - Count, offsets, data size, checksum                  │
//	├─────────────────────────────────────────────────────────┤
//	│ Names Payload (variable, optional)                      │
//	│  - Present when names are enabled or IDs collide        │
//	│  - Length-prefixed strings, in index order              │
//	├─────────────────────────────────────────────────────────┤
//	│ Index (N × 24 bytes, fixed per entry)                   │
//	│  - ID, data offset, encoded and source lengths          │
//	├─────────────────────────────────────────────────────────┤
//	│ Data (variable)                                         │
//	│  - Concatenated encoded strings, compressed as a unit   │
//	└─────────────────────────────────────────────────────────┘
//
// # Flag Format
//
//	Byte 0-1 (Options, 16 bits, always little-endian):
//	  Bit 0: Names payload (0=not present, 1=present)
//	  Bit 1: Endianness (0=little-endian, 1=big-endian)
//	  Bits 2-3: Reserved (must be 0)
//	  Bits 4-15: Magic number (0xD700 for string table v1)
//
//	Byte 2: Text encoding (0x1=Dense7, 0x2=Raw UTF-8)
//	Byte 3: Data compression (0x1=None, 0x2=Zstd, 0x3=S2, 0x4=LZ4)
//
// All other multi-byte fields use the byte order selected by bit 1.
//
// # Names Payload Format
//
//	[Count: uint16] [Len1: uint16][Name1] [Len2: uint16][Name2] ...
//
// Names are stored in index order, so names[i] belongs to entry i and its xxHash64
// must equal the entry ID.
//
// # Thread Safety
//
// Header, Flag and IndexEntry are plain values; a value that is not mutated is safe
// for concurrent reads.
package section
