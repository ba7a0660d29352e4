package compress

import (
	"errors"
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"
)

var lz4Compressors = sync.Pool{
	New: func() any { return new(lz4.Compressor) },
}

// LZ4Compressor compresses with raw LZ4 blocks from pierrec/lz4.
type LZ4Compressor struct{}

var _ Codec = LZ4Compressor{}

// Compress encodes data as one LZ4 block.
func (LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	lc, _ := lz4Compressors.Get().(*lz4.Compressor)
	defer lz4Compressors.Put(lc)

	out := make([]byte, lz4.CompressBlockBound(len(data)))
	n, err := lc.CompressBlock(data, out)
	if err != nil {
		return nil, fmt.Errorf("lz4 compression failed: %w", err)
	}

	return out[:n], nil
}

// Decompress decodes an LZ4 block.
//
// A raw block does not record its decoded length. A known size is allocated once.
// Otherwise the buffer starts at four times the input and doubles while the block
// does not fit. Sizes above 128MiB are rejected.
func (LZ4Compressor) Decompress(data []byte, size int) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	if size > maxOutputSize {
		return nil, fmt.Errorf("lz4 decompression failed: size %d exceeds %d", size, maxOutputSize)
	}
	if size >= 0 {
		return lz4Uncompress(data, size)
	}

	for guess := len(data) * 4; guess <= maxOutputSize; guess *= 2 {
		out, err := lz4Uncompress(data, guess)
		if !errors.Is(err, lz4.ErrInvalidSourceShortBuffer) {
			return out, err
		}
	}

	return nil, fmt.Errorf("lz4 decompression failed: %w", lz4.ErrInvalidSourceShortBuffer)
}

func lz4Uncompress(data []byte, size int) ([]byte, error) {
	out := make([]byte, size)

	n, err := lz4.UncompressBlock(data, out)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompression failed: %w", err)
	}

	return out[:n], nil
}
