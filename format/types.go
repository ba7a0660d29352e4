// Package format defines the type tags stored in string table blob headers.
package format

type (
	// TextEncodingType identifies how the strings of a table are encoded.
	TextEncodingType uint8

	// CompressionType identifies the codec applied to the data section.
	CompressionType uint8
)

const (
	TextDense7 TextEncodingType = 0x1 // TextDense7 stores strings in Dense7 form.
	TextRaw    TextEncodingType = 0x2 // TextRaw stores strings as UTF-8 bytes.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func (e TextEncodingType) String() string {
	switch e {
	case TextDense7:
		return "Dense7"
	case TextRaw:
		return "Raw"
	default:
		return "Unknown"
	}
}

// IsValid reports whether e is a known text encoding.
func (e TextEncodingType) IsValid() bool {
	return e == TextDense7 || e == TextRaw
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// IsValid reports whether c is a known compression type.
func (c CompressionType) IsValid() bool {
	return c >= CompressionNone && c <= CompressionLZ4
}
