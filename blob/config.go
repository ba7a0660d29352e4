package blob

import (
	"fmt"

	"github.com/arloliu/dense7/compress"
	"github.com/arloliu/dense7/endian"
	"github.com/arloliu/dense7/format"
	"github.com/arloliu/dense7/internal/options"
	"github.com/arloliu/dense7/section"
)

const (
	// initialIndexCapacity is the initial capacity for index entries slice.
	initialIndexCapacity = 16

	// indexGrowthThreshold is the size threshold where we switch from 2x to 1.25x growth.
	indexGrowthThreshold = 256

	// MaxEntryCount is the maximum number of strings in one table.
	MaxEntryCount = section.MaxEntryCount
)

// EncoderConfig handles string table encoder configuration and index state.
type EncoderConfig struct {
	header       *section.Header
	indexEntries []section.IndexEntry
	dataCodec    compress.Codec
	engine       endian.EndianEngine
	withNames    bool
}

// NewEncoderConfig creates an EncoderConfig with the default header:
// Dense7 text, Zstd compression, little-endian, names written only on collision.
func NewEncoderConfig() *EncoderConfig {
	// Start with 0 entries - the count grows as strings are added
	header, _ := section.NewHeader(0)

	return &EncoderConfig{
		header:       header,
		indexEntries: make([]section.IndexEntry, 0, initialIndexCapacity),
		engine:       header.GetEndianEngine(),
	}
}

// Header returns the header for this encoder configuration.
func (c *EncoderConfig) Header() *section.Header {
	return c.header
}

// EntryCount returns the number of strings added so far.
func (c *EncoderConfig) EntryCount() int {
	return len(c.indexEntries)
}

// setTextEncoding sets the text encoding type.
func (c *EncoderConfig) setTextEncoding(enc format.TextEncodingType) error {
	if !enc.IsValid() {
		return fmt.Errorf("invalid text encoding: %v", enc)
	}
	c.header.Flag.SetTextEncoding(enc)

	return nil
}

// setDataCompression sets the data compression type.
func (c *EncoderConfig) setDataCompression(comp format.CompressionType) error {
	switch comp {
	case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
		c.header.Flag.SetDataCompression(comp)
		return nil
	default:
		return fmt.Errorf("invalid data compression: %v", comp)
	}
}

// setEndianess sets the endianness option.
func (c *EncoderConfig) setEndianess(endiness endianness) {
	if endiness == bigEndianOpt {
		c.header.Flag.WithBigEndian()
	} else {
		c.header.Flag.WithLittleEndian()
	}

	c.engine = c.header.GetEndianEngine()
}

// setCodec initializes the data codec from the header configuration.
func (c *EncoderConfig) setCodec() error {
	codec, err := compress.GetCodec(c.header.Flag.GetDataCompression())
	if err != nil {
		return fmt.Errorf("failed to create data codec: %w", err)
	}
	c.dataCodec = codec

	return nil
}

// addEntryIndex appends an index entry.
// Uses amortized growth strategy to minimize allocations:
// - 2x growth up to 256 entries
// - 1.25x growth beyond 256
func (c *EncoderConfig) addEntryIndex(entry section.IndexEntry) {
	if len(c.indexEntries) == cap(c.indexEntries) {
		oldCap := cap(c.indexEntries)
		var newCap int
		if oldCap < indexGrowthThreshold {
			newCap = oldCap * 2
		} else {
			newCap = oldCap + oldCap/4
		}
		newCap = min(max(newCap, initialIndexCapacity), MaxEntryCount)

		newEntries := make([]section.IndexEntry, len(c.indexEntries), newCap)
		copy(newEntries, c.indexEntries)
		c.indexEntries = newEntries
	}

	c.indexEntries = append(c.indexEntries, entry)
}

// endianness represents the byte order configuration option.
type endianness uint8

const (
	littleEndianOpt endianness = iota
	bigEndianOpt
)

// EncoderOption is a functional option for configuring StringEncoder.
type EncoderOption = options.Option[*EncoderConfig]

// WithCompression configures compression for the data section.
// Available compression types: format.CompressionZstd, format.CompressionS2,
// format.CompressionLZ4, format.CompressionNone.
// Default is format.CompressionZstd.
func WithCompression(codec format.CompressionType) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		return c.setDataCompression(codec)
	})
}

// WithTextEncoding configures how each string is stored.
// format.TextDense7 packs text with the Dense7 codec; format.TextRaw keeps plain UTF-8.
// Default is format.TextDense7.
func WithTextEncoding(enc format.TextEncodingType) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		return c.setTextEncoding(enc)
	})
}

// WithLittleEndian sets the encoder to use little-endian byte order.
// It is the default option.
func WithLittleEndian() EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.setEndianess(littleEndianOpt)
	})
}

// WithBigEndian sets the encoder to use big-endian byte order.
func WithBigEndian() EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.setEndianess(bigEndianOpt)
	})
}

// WithNames stores entry names alongside the table when strings are added by name,
// so StringTable.Names and exact name lookups are available.
// Names are always stored when two names hash to the same ID.
// Default is false.
func WithNames(enabled bool) EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.withNames = enabled
	})
}
