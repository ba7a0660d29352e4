package encoding

import (
	"golang.org/x/exp/constraints"
)

// GroupSymbols is the number of 7-bit symbols packed into one byte group.
const GroupSymbols = 8

// GroupBytes is the number of bytes a full group of symbols packs into.
const GroupBytes = GroupSymbols - 1

// Symbol values with a fixed meaning.
const (
	symOverlongLead = 0x00 // 2-symbol lead for controls without a reserved singleton
	symBS           = 0x1E // backspace singleton
	symBEL          = 0x1F // bell singleton
	symNUL          = 0x7F // NUL singleton
	symFourLead     = 0x18 // lead of a supplementary code point
	symThreeLead    = 0x10 // base of the 3-symbol leads 0x10..0x13
	symMask         = 0x7F
	controlShift    = 0x10 // offset applied to tab..CR
)

// symbol classes recognized by the decoder when not inside a code point.
type symbolClass uint8

const (
	classInvalid symbolClass = iota
	classLiteral             // emits the symbol value
	classShifted             // emits symbol - 0x10
	classNUL
	classBEL
	classBS
	classLead2
	classLead3
	classLead4
)

// classify maps a symbol that starts a code point to its class.
//
// The NUL singleton shares its value with the top of the printable range, so it is
// checked before the literal range.
func classify(sym byte) symbolClass {
	switch {
	case sym == symNUL:
		return classNUL
	case sym >= 0x20 && sym <= 0x7E:
		return classLiteral
	case sym >= 0x19 && sym <= 0x1D:
		return classShifted
	case sym == symBEL:
		return classBEL
	case sym == symBS:
		return classBS
	case sym <= 0x0F:
		return classLead2
	case sym >= symThreeLead && sym <= 0x13:
		return classLead3
	case sym == symFourLead:
		return classLead4
	default:
		return classInvalid
	}
}

// appendSymbols appends the symbols of a single code point to dst.
// r must be a valid Unicode scalar value.
func appendSymbols(dst []byte, r rune) []byte {
	switch {
	case r >= 0x20 && r <= 0x7E:
		return append(dst, byte(r))
	case r >= 0x09 && r <= 0x0D:
		return append(dst, byte(r)+controlShift)
	case r == 0x00:
		return append(dst, symNUL)
	case r == 0x07:
		return append(dst, symBEL)
	case r == 0x08:
		return append(dst, symBS)
	case r < 0x80:
		return append(dst, symOverlongLead, byte(r))
	case r < 0x800:
		return append(dst, byte(r>>7), byte(r)&symMask)
	case r < 0x10000:
		return append(dst, symThreeLead|byte(r>>14), byte(r>>7)&symMask, byte(r)&symMask)
	default:
		return append(dst, symFourLead, byte(r>>14)&symMask, byte(r>>7)&symMask, byte(r)&symMask)
	}
}

// packSymbols packs 7-bit symbols into dst and returns the extended slice.
//
// Every full group of eight symbols becomes seven bytes; bit (6-i) of the eighth
// symbol is stored in the high bit of byte i. A trailing partial group is copied
// unchanged.
func packSymbols(dst []byte, symbols []byte) []byte {
	full := len(symbols) / GroupSymbols * GroupSymbols

	for g := 0; g < full; g += GroupSymbols {
		group := symbols[g : g+GroupSymbols]
		stolen := group[GroupBytes]
		for i := 0; i < GroupBytes; i++ {
			dst = append(dst, group[i]|((stolen>>(6-i))&1)<<7)
		}
	}

	return append(dst, symbols[full:]...)
}

// PackedSize returns the number of bytes produced by packing n symbols.
func PackedSize[T constraints.Integer](n T) T {
	return n - n/GroupSymbols
}

// SymbolCount returns the number of symbols carried by n packed bytes.
//
// A trailing partial group of seven symbols is indistinguishable from a full group
// by length alone, so the result counts a full group for every seven bytes.
func SymbolCount[T constraints.Integer](n T) T {
	return n + n/GroupBytes
}

// MaxDecodedSize returns an upper bound of the UTF-8 bytes decoded from n packed bytes.
//
// No symbol class yields more UTF-8 bytes than symbols, so the bound is the symbol count.
func MaxDecodedSize[T constraints.Integer](n T) T {
	return SymbolCount(n)
}

// MaxEncodedSize returns an upper bound of the bytes encoded from n bytes of UTF-8 text.
func MaxEncodedSize[T constraints.Integer](n T) T {
	return PackedSize(maxSymbolsUTF8(n))
}

// maxSymbolsUTF8 bounds the symbols produced by n bytes of UTF-8.
// A single-byte control takes two symbols, every other form at most one per byte.
func maxSymbolsUTF8[T constraints.Integer](n T) T {
	return 2 * n
}

// maxSymbolsUTF16 bounds the symbols produced by n UTF-16 code units.
func maxSymbolsUTF16[T constraints.Integer](n T) T {
	return 3 * n
}
