// Package blob stores many strings in one self-describing binary blob.
//
// A string table blob holds a header, an optional names payload, a fixed-size index
// and a data section. Each string is packed with the Dense7 codec (or kept as raw
// UTF-8), and the data section is compressed as a unit. See package section for the
// byte layout.
//
// # Core Types
//
//   - StringEncoder: Builds a blob from named or ID-keyed strings
//   - StringDecoder: Validates a blob and decodes it into a StringTable
//   - StringTable: Immutable lookup by ID, by name and by position
//
// # Encoding Workflow
//
//	encoders, _ := encoding.NewEncoderPool()
//	enc, err := blob.NewStringEncoder(encoders,
//	    blob.WithCompression(format.CompressionS2),
//	    blob.WithNames(true),
//	)
//
//	enc.AddString("greeting.en", "Hello, World!")
//	enc.AddString("greeting.ja", "こんにちは")
//
//	data, err := enc.Finish()
//
// # Decoding Workflow
//
//	decoders, _ := encoding.NewDecoderPool()
//	dec, err := blob.NewStringDecoder(data, decoders)
//	table, err := dec.Decode()
//
//	text, ok := table.GetByName("greeting.ja")
//	for id, text := range table.All() {
//	    // ...
//	}
//
// # Identifiers
//
// Strings are keyed either by name (AddString), hashed to a 64-bit ID with xxHash64,
// or by caller-supplied IDs (AddStringID). The two modes cannot be mixed in one blob.
// When two names hash to the same ID the names payload is written automatically, so
// GetByName stays exact.
//
// # Integrity
//
// The header records the xxHash64 checksum and size of the uncompressed data section.
// Decode verifies both, checks every index entry against the data section and checks
// that each decoded string has its recorded source length.
//
// # Thread Safety
//
// StringEncoder and StringDecoder are NOT thread-safe. A decoded StringTable is
// immutable and safe for concurrent reads. The encoder and decoder pools passed in may
// be shared by any number of goroutines.
package blob
