package section

import (
	"fmt"
	"math"

	"github.com/arloliu/dense7/endian"
	"github.com/arloliu/dense7/errs"
)

// EncodeNames encodes entry names into the length-prefixed names payload.
// Format: [Count: uint16] [Len1: uint16][Name1: UTF-8] [Len2: uint16][Name2: UTF-8] ...
//
// Parameters:
//   - names: The entry names, in index order
//   - engine: The endian engine used for the length fields
//
// Returns:
//   - []byte: The encoded names payload
//   - error: errs.ErrInvalidNamesCount or errs.ErrInvalidName if a limit is exceeded
func EncodeNames(names []string, engine endian.EndianEngine) ([]byte, error) {
	if len(names) > math.MaxUint16 {
		return nil, fmt.Errorf("%w: %d names exceed maximum %d", errs.ErrInvalidNamesCount, len(names), math.MaxUint16)
	}

	totalSize := 2
	for _, name := range names {
		if len(name) > math.MaxUint16 {
			return nil, fmt.Errorf("%w: name of %d bytes exceeds maximum %d", errs.ErrInvalidName, len(name), math.MaxUint16)
		}
		totalSize += 2 + len(name)
	}

	buf := make([]byte, 0, totalSize)
	buf = engine.AppendUint16(buf, uint16(len(names))) //nolint: gosec
	for _, name := range names {
		buf = engine.AppendUint16(buf, uint16(len(name))) //nolint: gosec
		buf = append(buf, name...)
	}

	return buf, nil
}

// DecodeNames decodes a names payload produced by EncodeNames.
//
// Returns the names and the number of bytes consumed.
func DecodeNames(data []byte, engine endian.EndianEngine) ([]string, int, error) {
	if len(data) < 2 {
		return nil, 0, fmt.Errorf("%w: cannot read names count (need 2 bytes, have %d)", errs.ErrInvalidNamesPayload, len(data))
	}

	count := int(engine.Uint16(data))
	offset := 2

	names := make([]string, count)
	for i := range names {
		if len(data) < offset+2 {
			return nil, 0, fmt.Errorf("%w: cannot read length of name %d at offset %d", errs.ErrInvalidNamesPayload, i, offset)
		}
		nameLen := int(engine.Uint16(data[offset:]))
		offset += 2

		if len(data) < offset+nameLen {
			return nil, 0, fmt.Errorf("%w: name %d needs %d bytes at offset %d, have %d",
				errs.ErrInvalidNamesPayload, i, nameLen, offset, len(data))
		}
		names[i] = string(data[offset : offset+nameLen])
		offset += nameLen
	}

	return names, offset, nil
}

// VerifyNameHashes checks that hashFunc(names[i]) equals ids[i] for every entry.
func VerifyNameHashes(names []string, ids []uint64, hashFunc func(string) uint64) error {
	if len(names) != len(ids) {
		return fmt.Errorf("%w: %d names for %d entries", errs.ErrInvalidNamesCount, len(names), len(ids))
	}

	for i, name := range names {
		if want := hashFunc(name); want != ids[i] {
			return fmt.Errorf("%w: name %q at index %d: expected 0x%016x, got 0x%016x",
				errs.ErrNameHashMismatch, name, i, want, ids[i])
		}
	}

	return nil
}
