// Package compress provides the codecs applied to the data section of a string
// table blob.
//
// Four codecs are built in, selected by format.CompressionType:
//
//	format.CompressionNone  NoOpCompressor   data stored as is
//	format.CompressionZstd  ZstdCompressor   best ratio, for archived tables
//	format.CompressionS2    S2Compressor     fastest, for hot cache entries
//	format.CompressionLZ4   LZ4Compressor    fast with a small footprint
//
// Compression runs after Dense7 encoding. The two stack: Dense7 saves one bit per
// ASCII character regardless of content, while the general-purpose codecs exploit
// repetition across entries.
//
// # Zstd Implementations
//
// By default ZstdCompressor uses the pure Go github.com/klauspost/compress/zstd with
// pooled encoders and decoders. Building with cgo enabled and the gozstd tag switches
// to github.com/valyala/gozstd:
//
//	go build -tags gozstd ./...
//
// Both write standard zstd frames, so blobs stay readable across builds.
//
// # Usage
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	compressed, err := codec.Compress(data)
//	...
//	original, err := codec.Decompress(compressed, len(data))
//
// # Thread Safety
//
// All built-in codecs are stateless values and safe for concurrent use.
package compress
