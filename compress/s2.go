package compress

import (
	"fmt"

	"github.com/klauspost/compress/s2"
)

// S2Compressor compresses with S2, the faster Snappy extension from klauspost/compress.
// It suits tables that are decoded often and kept briefly, such as cache entries.
type S2Compressor struct{}

var _ Codec = S2Compressor{}

// Compress encodes data as one S2 block.
func (S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Encode(nil, data), nil
}

// Decompress decodes an S2 block.
//
// The block carries its own decoded length. A block whose length disagrees with a
// known size, or exceeds 128MiB, is rejected before decoding.
func (S2Compressor) Decompress(data []byte, size int) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	if size > maxOutputSize {
		return nil, fmt.Errorf("s2 decompression failed: size %d exceeds %d", size, maxOutputSize)
	}

	n, err := s2.DecodedLen(data)
	if err != nil {
		return nil, fmt.Errorf("s2 decompression failed: %w", err)
	}
	if n > maxOutputSize {
		return nil, fmt.Errorf("s2 decompression failed: block holds %d bytes, exceeds %d", n, maxOutputSize)
	}
	if size >= 0 && n != size {
		return nil, fmt.Errorf("s2 decompression failed: block holds %d bytes, expected %d", n, size)
	}

	out, err := s2.Decode(make([]byte, n), data)
	if err != nil {
		return nil, fmt.Errorf("s2 decompression failed: %w", err)
	}

	return out, nil
}
