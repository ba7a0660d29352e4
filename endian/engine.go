// Package endian provides the byte order engines used by string table blobs.
//
// A blob records its byte order in the header flag, so readers pick the matching
// engine instead of assuming the host order:
//
//	engine := endian.GetLittleEndianEngine()
//	buf = engine.AppendUint32(buf, entry.Offset)
//
// # Thread Safety
//
// The returned EndianEngine values are immutable and safe for concurrent use.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary.
//
// It is satisfied by binary.LittleEndian and binary.BigEndian, so engines can
// both patch fixed-size fields in place and append new ones.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine, the default for blobs.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// GetNativeEngine returns the engine matching the host byte order.
func GetNativeEngine() EndianEngine {
	if IsNativeBigEndian() {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// IsNativeBigEndian reports whether the host stores the most significant byte first.
func IsNativeBigEndian() bool {
	var i uint16 = 0x0100
	b := (*[2]byte)(unsafe.Pointer(&i))

	return b[0] == 0x01
}

// IsBigEndian reports whether engine is the big-endian engine.
func IsBigEndian(engine EndianEngine) bool {
	return engine.Uint16([]byte{0x01, 0x00}) == 0x0100
}
