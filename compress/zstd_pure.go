//go:build !(cgo && gozstd)

package compress

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// ZstdCompressor compresses with Zstandard.
//
// This build uses the pure Go implementation from klauspost/compress. Build with cgo
// and the gozstd tag to use the libzstd binding instead. Both write standard zstd
// frames and read each other's output.
type ZstdCompressor struct{}

var _ Codec = ZstdCompressor{}

// zstd encoders and decoders run allocation free once warmed up.
var (
	zstdEncoders = sync.Pool{
		New: func() any {
			// the blob header carries its own checksum
			enc, err := zstd.NewWriter(nil,
				zstd.WithEncoderLevel(zstd.SpeedDefault),
				zstd.WithEncoderCRC(false),
			)
			if err != nil {
				panic(fmt.Sprintf("compress: zstd encoder: %v", err))
			}

			return enc
		},
	}

	zstdDecoders = sync.Pool{
		New: func() any {
			dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
			if err != nil {
				panic(fmt.Sprintf("compress: zstd decoder: %v", err))
			}

			return dec
		},
	}
)

// Compress encodes data as one zstd frame.
func (ZstdCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	enc, _ := zstdEncoders.Get().(*zstd.Encoder)
	defer zstdEncoders.Put(enc)

	return enc.EncodeAll(data, nil), nil
}

// Decompress decodes a zstd frame.
func (ZstdCompressor) Decompress(data []byte, size int) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	dec, _ := zstdDecoders.Get().(*zstd.Decoder)
	defer zstdDecoders.Put(dec)

	out, err := dec.DecodeAll(data, outputBuffer(size))
	if err != nil {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}

	return out, nil
}
