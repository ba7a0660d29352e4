package blob

import (
	"fmt"
	"unicode/utf8"

	"github.com/arloliu/dense7/encoding"
	"github.com/arloliu/dense7/errs"
	"github.com/arloliu/dense7/format"
	"github.com/arloliu/dense7/internal/collision"
	"github.com/arloliu/dense7/internal/hash"
	"github.com/arloliu/dense7/internal/options"
	"github.com/arloliu/dense7/internal/pool"
	"github.com/arloliu/dense7/section"
)

// identifierMode defines how entries are identified in the encoder.
// Once the first string is added, the mode is locked for the encoder lifecycle.
type identifierMode uint8

const (
	// modeUndefined indicates no strings have been added yet.
	modeUndefined identifierMode = iota

	// modeUserID indicates the caller provides IDs via AddStringID.
	// Duplicate IDs are errors and no names payload is written.
	modeUserID

	// modeNameManaged indicates names are hashed to IDs via AddString.
	// Collisions are detected and force the names payload.
	modeNameManaged
)

// StringEncoder builds a string table blob.
//
// Each string is encoded with an encoder borrowed from the pool and appended to a
// single data section, which is compressed as a unit in Finish.
//
// Note: The StringEncoder is NOT thread-safe. Each encoder instance should be used by a single goroutine at a time.
//
// Note: The StringEncoder is NOT reusable. After calling Finish, a new encoder must be created.
type StringEncoder struct {
	*EncoderConfig

	encoders       *encoding.EncoderPool
	tracker        *collision.Tracker
	identifierMode identifierMode
	data           *pool.ByteBuffer
	finished       bool
}

// NewStringEncoder creates a new StringEncoder.
//
// Parameters:
//   - encoders: Pool of Dense7 encoders; nil creates a private pool
//   - opts: Optional configuration (compression, text encoding, endianness, names)
//
// Returns:
//   - *StringEncoder: New encoder ready for AddString or AddStringID
//   - error: Configuration error if invalid options provided
func NewStringEncoder(encoders *encoding.EncoderPool, opts ...EncoderOption) (*StringEncoder, error) {
	config := NewEncoderConfig()
	if err := options.Apply(config, opts...); err != nil {
		return nil, err
	}

	if err := config.setCodec(); err != nil {
		return nil, err
	}

	if encoders == nil {
		var err error
		encoders, err = encoding.NewEncoderPool()
		if err != nil {
			return nil, err
		}
	}

	return &StringEncoder{
		EncoderConfig: config,
		encoders:      encoders,
		tracker:       collision.NewTracker(),
		data:          pool.GetTableBuffer(),
	}, nil
}

// AddString adds text under the given name.
//
// The name is hashed to the entry ID with xxHash64. Two different names with the same
// hash are not an error; the names payload is written so lookups by name stay exact.
//
// This method is exclusive with AddStringID.
//
// Returns:
//   - error: ErrEncoderFinished, ErrMixedIdentifierMode, ErrInvalidName, ErrDuplicateName,
//     ErrEntryCountExceeded, or an encoding error for invalid UTF-8 text
func (e *StringEncoder) AddString(name string, text string) error {
	if err := e.checkAdd(modeNameManaged); err != nil {
		return err
	}

	if name == "" {
		return errs.ErrInvalidName
	}

	encoded, release, err := e.encodeText(text)
	if err != nil {
		return err
	}
	defer release()

	id := hash.ID(name)
	if err := e.tracker.TrackName(name, id); err != nil {
		return fmt.Errorf("%w: %q", err, name)
	}

	return e.appendEntry(id, encoded, len(text))
}

// AddStringID adds text under a caller-supplied ID.
//
// This method is exclusive with AddString.
//
// Returns:
//   - error: ErrEncoderFinished, ErrMixedIdentifierMode, ErrInvalidID, ErrHashCollision
//     on a duplicate ID, ErrEntryCountExceeded, or an encoding error for invalid UTF-8 text
func (e *StringEncoder) AddStringID(id uint64, text string) error {
	if err := e.checkAdd(modeUserID); err != nil {
		return err
	}

	if id == 0 {
		return errs.ErrInvalidID
	}

	encoded, release, err := e.encodeText(text)
	if err != nil {
		return err
	}
	defer release()

	if err := e.tracker.TrackID(id); err != nil {
		return fmt.Errorf("%w: ID 0x%016x already used", err, id)
	}

	return e.appendEntry(id, encoded, len(text))
}

// Finish assembles the blob and returns it.
// After calling Finish, the encoder cannot be reused.
func (e *StringEncoder) Finish() ([]byte, error) {
	if e.finished {
		return nil, errs.ErrEncoderFinished
	}
	e.finished = true

	defer func() {
		pool.PutTableBuffer(e.data)
		e.data = nil
	}()

	if len(e.indexEntries) == 0 {
		return nil, errs.ErrNoEntries
	}

	header := e.cloneHeader()
	header.Count = uint32(len(e.indexEntries)) //nolint:gosec

	dataBytes := e.data.Bytes()
	header.DataSize = uint32(len(dataBytes)) //nolint:gosec
	header.Checksum = hash.Checksum(dataBytes)

	compressedData, err := e.dataCodec.Compress(dataBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to compress data: %w", err)
	}

	var namesPayload []byte
	if e.identifierMode == modeNameManaged && (e.withNames || e.tracker.HasCollision()) {
		namesPayload, err = section.EncodeNames(e.tracker.Names(), e.engine)
		if err != nil {
			return nil, fmt.Errorf("failed to encode names: %w", err)
		}
		header.Flag.SetHasNames(true)
	}

	// names come before the index
	indexSize := header.IndexSize()
	header.IndexOffset = uint32(section.HeaderSize + len(namesPayload)) //nolint:gosec
	header.DataOffset = header.IndexOffset + uint32(indexSize)          //nolint:gosec

	blob := make([]byte, int(header.DataOffset)+len(compressedData))
	offset := copy(blob, header.Bytes())
	offset += copy(blob[offset:], namesPayload)

	for i := range e.indexEntries {
		entryOffset := offset + i*section.IndexEntrySize
		if err := e.indexEntries[i].WriteToSlice(blob[entryOffset:], e.engine); err != nil {
			return nil, fmt.Errorf("failed to write index entry: %w", err)
		}
	}
	offset += indexSize

	copy(blob[offset:], compressedData)

	return blob, nil
}

// checkAdd validates encoder state and locks the identifier mode.
func (e *StringEncoder) checkAdd(mode identifierMode) error {
	if e.finished {
		return errs.ErrEncoderFinished
	}

	if e.identifierMode != modeUndefined && e.identifierMode != mode {
		return fmt.Errorf("%w: AddString and AddStringID cannot be mixed", errs.ErrMixedIdentifierMode)
	}
	e.identifierMode = mode

	if len(e.indexEntries) >= MaxEntryCount {
		return fmt.Errorf("%w: max %d", errs.ErrEntryCountExceeded, MaxEntryCount)
	}

	return nil
}

// encodeText returns the stored form of text. The returned bytes stay valid until
// release is called.
func (e *StringEncoder) encodeText(text string) ([]byte, func(), error) {
	if e.header.Flag.GetTextEncoding() == format.TextRaw {
		if !utf8.ValidString(text) {
			return nil, nil, fmt.Errorf("%w: raw text", errs.ErrInvalidUTF8)
		}

		return []byte(text), func() {}, nil
	}

	enc := e.encoders.GetOrCreate()
	res, err := enc.Encode(text)
	if err != nil {
		enc.Close()
		return nil, nil, err
	}

	return res.Bytes(), enc.Close, nil
}

func (e *StringEncoder) appendEntry(id uint64, encoded []byte, sourceLen int) error {
	offset := e.data.Len()
	if uint64(offset)+uint64(len(encoded)) > section.MaxOffset {
		return fmt.Errorf("%w: max %d bytes", errs.ErrDataSectionTooLarge, uint64(section.MaxOffset))
	}

	e.data.MustWrite(encoded)

	//nolint:gosec
	e.addEntryIndex(section.IndexEntry{
		ID:           id,
		Offset:       uint32(offset),
		Length:       uint32(len(encoded)),
		SourceLength: uint32(sourceLen),
	})

	return nil
}

// cloneHeader creates a shallow copy of the encoder's header for immutability.
func (e *StringEncoder) cloneHeader() *section.Header {
	cloned := *e.header
	return &cloned
}
