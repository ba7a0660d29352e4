package compress

// NoOpCompressor stores the data section as is, for blobs written with
// format.CompressionNone. Both directions return the input slice itself.
type NoOpCompressor struct{}

var _ Codec = NoOpCompressor{}

// Compress returns data.
func (NoOpCompressor) Compress(data []byte) ([]byte, error) { return data, nil }

// Decompress returns data. The size is left for the caller to check.
func (NoOpCompressor) Decompress(data []byte, _ int) ([]byte, error) { return data, nil }
