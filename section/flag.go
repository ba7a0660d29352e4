package section

import (
	"github.com/arloliu/dense7/errs"
	"github.com/arloliu/dense7/format"
)

// Flag represents the packed flag field at the start of a string table header.
type Flag struct {
	// Options is a packed field for various options.
	// Bit 0 is the names flag, 1 means a names payload follows the index.
	// Bit 1 is the endianness flag, 0 means little-endian, 1 means big-endian.
	// Bits 2-3 are reserved and must be 0.
	// Bits 4-15 are the magic number 0xD700 identifying the string table format v1.
	Options uint16

	// TextEncoding indicates how entry strings are encoded.
	TextEncoding uint8

	// DataCompression indicates the compression used for the data section.
	DataCompression uint8
}

// NewFlag creates a Flag for a little-endian, Dense7 encoded, Zstd compressed table.
func NewFlag() Flag {
	return Flag{
		Options:         MagicStringTableV1Opt,
		TextEncoding:    uint8(format.TextDense7),
		DataCompression: uint8(format.CompressionZstd),
	}
}

// HasNames returns whether a names payload is present.
func (f Flag) HasNames() bool {
	return (f.Options & NamesMask) != 0
}

// SetHasNames enables or disables the names payload.
func (f *Flag) SetHasNames(enabled bool) {
	if enabled {
		f.Options |= NamesMask
	} else {
		f.Options &^= NamesMask
	}
}

// IsLittleEndian returns whether the blob is little-endian.
func (f Flag) IsLittleEndian() bool {
	return (f.Options & EndiannessMask) == 0
}

// IsBigEndian returns whether the blob is big-endian.
func (f Flag) IsBigEndian() bool {
	return (f.Options & EndiannessMask) != 0
}

// WithLittleEndian sets little-endian byte order.
func (f *Flag) WithLittleEndian() {
	f.Options &^= EndiannessMask
}

// WithBigEndian sets big-endian byte order.
func (f *Flag) WithBigEndian() {
	f.Options |= EndiannessMask
}

// GetMagicNumber returns the magic number from the Options field.
func (f Flag) GetMagicNumber() uint16 {
	return f.Options & MagicNumberMask
}

// SetTextEncoding sets the text encoding type.
func (f *Flag) SetTextEncoding(enc format.TextEncodingType) {
	f.TextEncoding = uint8(enc)
}

// GetTextEncoding returns the text encoding type.
func (f Flag) GetTextEncoding() format.TextEncodingType {
	return format.TextEncodingType(f.TextEncoding)
}

// SetDataCompression sets the data compression type.
func (f *Flag) SetDataCompression(compression format.CompressionType) {
	f.DataCompression = uint8(compression)
}

// GetDataCompression returns the data compression type.
func (f Flag) GetDataCompression() format.CompressionType {
	return format.CompressionType(f.DataCompression)
}

// Validate checks the magic number, reserved bits and type tags.
func (f Flag) Validate() error {
	if f.GetMagicNumber() != MagicStringTableV1Opt {
		return errs.ErrInvalidHeaderFlags
	}

	if (f.Options & ReservedBitsMask) != 0 {
		return errs.ErrInvalidHeaderFlags
	}

	if !f.GetTextEncoding().IsValid() || !f.GetDataCompression().IsValid() {
		return errs.ErrInvalidHeaderFlags
	}

	return nil
}
