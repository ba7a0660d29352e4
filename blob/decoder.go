package blob

import (
	"fmt"
	"unicode/utf8"

	"github.com/arloliu/dense7/compress"
	"github.com/arloliu/dense7/encoding"
	"github.com/arloliu/dense7/endian"
	"github.com/arloliu/dense7/errs"
	"github.com/arloliu/dense7/format"
	"github.com/arloliu/dense7/internal/hash"
	"github.com/arloliu/dense7/section"
)

// StringDecoder decodes a string table blob into a StringTable.
//
// The decoder handles:
//   - Header parsing with validation
//   - Names payload (when present) and name hash verification
//   - Index entries with offset validation
//   - Data section decompression and checksum verification
//   - Decoding every entry with a pooled Dense7 decoder
//
// Note: The StringDecoder is NOT thread-safe. Each decoder instance should be used by a single goroutine at a time.
type StringDecoder struct {
	data     []byte
	count    int
	engine   endian.EndianEngine
	header   *section.Header
	decoders *encoding.DecoderPool
}

// NewStringDecoder creates a new StringDecoder for the given blob.
//
// The header is validated immediately; the data section is not touched until Decode.
//
// Parameters:
//   - data: Encoded blob byte slice
//   - decoders: Pool of Dense7 decoders; nil creates a private pool
//
// Returns:
//   - *StringDecoder: New decoder instance
//   - error: Header parsing error or invalid data format
func NewStringDecoder(data []byte, decoders *encoding.DecoderPool) (*StringDecoder, error) {
	decoder := &StringDecoder{
		data:     data,
		decoders: decoders,
	}

	if err := decoder.parseHeader(); err != nil {
		return nil, err
	}

	if decoder.decoders == nil {
		var err error
		decoder.decoders, err = encoding.NewDecoderPool()
		if err != nil {
			return nil, err
		}
	}

	return decoder, nil
}

// Header returns a copy of the parsed blob header.
func (d *StringDecoder) Header() section.Header {
	return *d.header
}

// Decode decodes the blob into a StringTable.
//
// Returns:
//   - *StringTable: Decoded table with ID and name lookups
//   - error: Offset validation, decompression, checksum, names verification or
//     Dense7 decoding errors
func (d *StringDecoder) Decode() (*StringTable, error) {
	if err := d.validateOffsets(); err != nil {
		return nil, err
	}

	// Step 1: Parse names (if present)
	names, err := d.parseNames()
	if err != nil {
		return nil, err
	}

	// Step 2: Parse index entries
	entries, ids, err := d.parseIndexEntries()
	if err != nil {
		return nil, err
	}

	// Step 3: Verify names against IDs
	if names != nil {
		if err := section.VerifyNameHashes(names, ids, hash.ID); err != nil {
			return nil, fmt.Errorf("name verification failed: %w", err)
		}
	}

	// Step 4: Decompress and verify the data section
	payload, err := d.decompressData()
	if err != nil {
		return nil, err
	}

	// Step 5: Decode every entry
	values, err := d.decodeEntries(payload, entries)
	if err != nil {
		return nil, err
	}

	return newStringTable(d.header, entries, ids, names, values, len(d.data)-int(d.header.DataOffset)), nil
}

// parseHeader parses the header section of the encoded data.
func (d *StringDecoder) parseHeader() error {
	if len(d.data) < section.HeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	var header section.Header
	if err := header.Parse(d.data[:section.HeaderSize]); err != nil {
		return err
	}

	if header.Count == 0 {
		return errs.ErrNoEntries
	}

	d.engine = header.GetEndianEngine()
	d.count = int(header.Count)
	d.header = &header

	return nil
}

// validateOffsets checks that the sections follow each other without gaps.
func (d *StringDecoder) validateOffsets() error {
	indexOffset := int(d.header.IndexOffset)
	dataOffset := int(d.header.DataOffset)

	if !d.header.Flag.HasNames() && indexOffset != section.HeaderSize {
		return fmt.Errorf("%w: index offset %d without names payload", errs.ErrInvalidIndexOffsets, indexOffset)
	}

	if indexOffset < section.HeaderSize || dataOffset != indexOffset+d.header.IndexSize() {
		return fmt.Errorf("%w: index offset %d, data offset %d for %d entries",
			errs.ErrInvalidIndexOffsets, indexOffset, dataOffset, d.count)
	}

	if dataOffset > len(d.data) {
		return fmt.Errorf("%w: data offset %d exceeds blob length %d", errs.ErrInvalidIndexOffsets, dataOffset, len(d.data))
	}

	return nil
}

// parseNames decodes the names payload if present.
// Returns nil when the blob has no names payload.
func (d *StringDecoder) parseNames() ([]string, error) {
	if !d.header.Flag.HasNames() {
		return nil, nil
	}

	payload := d.data[section.HeaderSize:d.header.IndexOffset]
	names, bytesRead, err := section.DecodeNames(payload, d.engine)
	if err != nil {
		return nil, err
	}

	if bytesRead != len(payload) {
		return nil, fmt.Errorf("%w: %d trailing bytes", errs.ErrInvalidNamesPayload, len(payload)-bytesRead)
	}

	if len(names) != d.count {
		return nil, fmt.Errorf("%w: expected %d names, got %d", errs.ErrInvalidNamesCount, d.count, len(names))
	}

	return names, nil
}

// parseIndexEntries parses the index section.
// Returns the index entries and IDs in the same order.
func (d *StringDecoder) parseIndexEntries() ([]section.IndexEntry, []uint64, error) {
	entries := make([]section.IndexEntry, d.count)
	ids := make([]uint64, d.count)

	start := int(d.header.IndexOffset)
	for i := range entries {
		offset := start + i*section.IndexEntrySize
		entry, err := section.ParseIndexEntry(d.data[offset:offset+section.IndexEntrySize], d.engine)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to parse index entry %d: %w", i, err)
		}

		if entry.End() > uint64(d.header.DataSize) {
			return nil, nil, fmt.Errorf("%w: entry %d ends at %d, data size %d",
				errs.ErrInvalidIndexOffsets, i, entry.End(), d.header.DataSize)
		}

		entries[i] = entry
		ids[i] = entry.ID
	}

	return entries, ids, nil
}

// decompressData decompresses the data section and verifies its size and checksum.
func (d *StringDecoder) decompressData() ([]byte, error) {
	codec, err := compress.GetCodec(d.header.Flag.GetDataCompression())
	if err != nil {
		return nil, fmt.Errorf("failed to create decompression codec: %w", err)
	}

	payload, err := codec.Decompress(d.data[d.header.DataOffset:], int(d.header.DataSize))
	if err != nil {
		return nil, fmt.Errorf("failed to decompress data: %w", err)
	}

	if uint32(len(payload)) != d.header.DataSize { //nolint:gosec
		return nil, fmt.Errorf("%w: expected %d, got %d", errs.ErrDataSizeMismatch, d.header.DataSize, len(payload))
	}

	if sum := hash.Checksum(payload); sum != d.header.Checksum {
		return nil, fmt.Errorf("%w: expected 0x%016x, got 0x%016x", errs.ErrChecksumMismatch, d.header.Checksum, sum)
	}

	return payload, nil
}

// decodeEntries decodes the stored form of every entry.
func (d *StringDecoder) decodeEntries(payload []byte, entries []section.IndexEntry) ([]string, error) {
	values := make([]string, len(entries))

	if d.header.Flag.GetTextEncoding() == format.TextRaw {
		for i, entry := range entries {
			raw := payload[entry.Offset:entry.End()]
			if !utf8.Valid(raw) {
				return nil, fmt.Errorf("entry %d: %w", i, errs.ErrInvalidUTF8)
			}
			values[i] = string(raw)
		}

		return d.checkSourceLengths(values, entries)
	}

	dec := d.decoders.GetOrCreate()
	defer dec.Close()

	for i, entry := range entries {
		text, err := dec.Decode(payload[entry.Offset:entry.End()], int(entry.Length))
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		values[i] = text
	}

	return d.checkSourceLengths(values, entries)
}

func (d *StringDecoder) checkSourceLengths(values []string, entries []section.IndexEntry) ([]string, error) {
	for i, entry := range entries {
		if len(values[i]) != int(entry.SourceLength) {
			return nil, fmt.Errorf("%w: entry %d decoded to %d bytes, expected %d",
				errs.ErrDataSizeMismatch, i, len(values[i]), entry.SourceLength)
		}
	}

	return values, nil
}
