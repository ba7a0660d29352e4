package compress

import (
	"fmt"

	"github.com/arloliu/dense7/format"
)

const (
	// UnknownSize tells Decompress that the decompressed length is not known in advance.
	UnknownSize = -1

	// maxOutputSize bounds the output a codec allocates up front. The size passed to
	// Decompress comes from a blob header and is not trusted beyond it.
	maxOutputSize = 128 << 20
)

// Compressor compresses the data section of a string table blob.
type Compressor interface {
	// Compress returns the compressed form of data without modifying it.
	// The no-op codec returns data itself.
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor of the same type.
type Decompressor interface {
	// Decompress returns the original data.
	//
	// size is the expected decompressed length, as recorded in the blob header, and is
	// used to allocate the output once. Pass UnknownSize when it is not known. The
	// caller still checks the length of the result.
	Decompress(data []byte, size int) ([]byte, error)
}

// Codec combines both compression and decompression.
type Codec interface {
	Compressor
	Decompressor
}

// The built-in codecs are stateless, so one value of each serves every blob.
var codecs = map[format.CompressionType]Codec{
	format.CompressionNone: NoOpCompressor{},
	format.CompressionZstd: ZstdCompressor{},
	format.CompressionS2:   S2Compressor{},
	format.CompressionLZ4:  LZ4Compressor{},
}

// GetCodec returns the Codec for the specified compression type.
// All returned codecs are safe for concurrent use.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	codec, ok := codecs[compressionType]
	if !ok {
		return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
	}

	return codec, nil
}

// outputBuffer returns an empty slice with room for size bytes. It returns nil when
// size is unknown or too large to allocate up front.
func outputBuffer(size int) []byte {
	if size <= 0 || size > maxOutputSize {
		return nil
	}

	return make([]byte, 0, size)
}
