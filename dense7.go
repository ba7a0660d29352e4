// Package dense7 packs Unicode text into 7-bit symbols and stores eight symbols in
// every seven bytes.
//
// ASCII text shrinks by one eighth; other code points take two, three or four symbols.
// Encoding is lossless and decoding validates every symbol and code point.
//
// # Basic Usage
//
//	encoders, _ := dense7.NewEncoderPool()
//	decoders, _ := dense7.NewDecoderPool()
//
//	data, _ := dense7.EncodeString(encoders, "Hello, World!")
//	text, _ := dense7.DecodeString(decoders, data)
//
// For hot paths, borrow an instance and reuse its buffers across calls:
//
//	enc := encoders.GetOrCreate()
//	defer enc.Close()
//	res, err := enc.Encode(text) // res.Bytes() is valid until the next call
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the encoding package.
//   - encoding: Encoder, Decoder, streaming decode and pools
//   - blob: String table blobs holding many encoded strings
//   - textcache: Redis cache storing values in Dense7 form
//   - compress: Codecs for the blob data section
package dense7

import (
	"github.com/arloliu/dense7/encoding"
	"github.com/arloliu/dense7/internal/hash"
)

// NewEncoderPool creates a pool of reusable encoders.
//
// Available options:
//   - encoding.WithSmallInputThreshold(n)
//   - encoding.WithPoolCapacity(n)
func NewEncoderPool(opts ...encoding.Option) (*encoding.EncoderPool, error) {
	return encoding.NewEncoderPool(opts...)
}

// NewDecoderPool creates a pool of reusable decoders.
//
// Available options:
//   - encoding.WithDecodeBufferSize(n)
//   - encoding.WithPoolCapacity(n)
func NewDecoderPool(opts ...encoding.Option) (*encoding.DecoderPool, error) {
	return encoding.NewDecoderPool(opts...)
}

// EncodeString encodes text with an encoder borrowed from encoders.
// The returned slice is owned by the caller.
func EncodeString(encoders *encoding.EncoderPool, text string) ([]byte, error) {
	enc := encoders.GetOrCreate()
	defer enc.Close()

	res, err := enc.Encode(text)
	if err != nil {
		return nil, err
	}

	return append([]byte(nil), res.Bytes()...), nil
}

// EncodeUTF16 encodes UTF-16 code units with an encoder borrowed from encoders.
// The returned slice is owned by the caller.
func EncodeUTF16(encoders *encoding.EncoderPool, units []uint16) ([]byte, error) {
	enc := encoders.GetOrCreate()
	defer enc.Close()

	res, err := enc.EncodeUTF16(units)
	if err != nil {
		return nil, err
	}

	return append([]byte(nil), res.Bytes()...), nil
}

// DecodeString decodes all of data with a decoder borrowed from decoders.
func DecodeString(decoders *encoding.DecoderPool, data []byte) (string, error) {
	dec := decoders.GetOrCreate()
	defer dec.Close()

	return dec.Decode(data, len(data))
}

// EncodedSize returns the exact packed size of text without encoding it.
// Returns an error if text is not valid UTF-8.
func EncodedSize(encoders *encoding.EncoderPool, text string) (int, error) {
	enc := encoders.GetOrCreate()
	defer enc.Close()

	res, err := enc.Encode(text)
	if err != nil {
		return 0, err
	}

	return res.Len(), nil
}

// ID returns the 64-bit xxHash64 of name, the ID a string table assigns to a named entry.
//
// Use this function to look up named entries with StringTable.Get or to pre-compute
// IDs for blob.StringEncoder.AddStringID.
func ID(name string) uint64 {
	return hash.ID(name)
}
