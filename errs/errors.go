// Package errs defines the sentinel errors returned by the dense7 packages.
//
// Codec errors fall into two kinds, ErrEncoding and ErrDecoding. Every specific codec
// error wraps one of them, so callers can branch on the kind with errors.Is:
//
//	if errors.Is(err, errs.ErrDecoding) {
//	    // corrupt or truncated input
//	}
package errs

import (
	"errors"
	"fmt"
)

// Codec error kinds.
var (
	// ErrEncoding indicates the input text cannot be represented in Dense7.
	ErrEncoding = errors.New("dense7: encoding error")

	// ErrDecoding indicates the input bytes are not a valid Dense7 stream.
	ErrDecoding = errors.New("dense7: decoding error")
)

// Encoding errors.
var (
	// ErrLoneHighSurrogate indicates the text ends with a high surrogate.
	ErrLoneHighSurrogate = fmt.Errorf("%w: text terminated by lone high surrogate", ErrEncoding)

	// ErrUnpairedHighSurrogate indicates a high surrogate followed by something other than a low surrogate.
	ErrUnpairedHighSurrogate = fmt.Errorf("%w: high surrogate not followed by low surrogate", ErrEncoding)

	// ErrLoneLowSurrogate indicates a low surrogate without a preceding high surrogate.
	ErrLoneLowSurrogate = fmt.Errorf("%w: lone low surrogate", ErrEncoding)

	// ErrInvalidUTF8 indicates the string is not valid UTF-8.
	ErrInvalidUTF8 = fmt.Errorf("%w: invalid UTF-8 sequence", ErrEncoding)
)

// Decoding errors.
var (
	// ErrInvalidSymbol indicates a symbol that matches no Dense7 class.
	ErrInvalidSymbol = fmt.Errorf("%w: unrecognized symbol", ErrDecoding)

	// ErrInvalidCodePoint indicates a decoded code point that is a surrogate or above U+10FFFF.
	ErrInvalidCodePoint = fmt.Errorf("%w: invalid code point", ErrDecoding)

	// ErrTruncatedInput indicates the stream ended inside a multi-symbol code point.
	ErrTruncatedInput = fmt.Errorf("%w: input ends mid code point", ErrDecoding)

	// ErrExceedsPrepared indicates more bytes were fed than announced to PrepareDecode.
	ErrExceedsPrepared = fmt.Errorf("%w: input exceeds prepared byte count", ErrDecoding)
)

// Codec usage errors.
var (
	// ErrDecoderBusy indicates a decode was started while a streaming decode is in progress.
	ErrDecoderBusy = errors.New("dense7: decoder has a streaming decode in progress")

	// ErrDecoderNotPrepared indicates PartialDecode or FinishDecode was called without PrepareDecode.
	ErrDecoderNotPrepared = errors.New("dense7: PrepareDecode was not called")

	// ErrInvalidLength indicates a byte count that is negative or exceeds the given buffer.
	ErrInvalidLength = errors.New("dense7: invalid byte count")

	// ErrNilReader indicates DecodeReader was called with a nil io.Reader.
	ErrNilReader = errors.New("dense7: nil io.Reader")
)

// String table blob errors.
var (
	ErrInvalidHeaderSize     = errors.New("blob: invalid header size")
	ErrInvalidHeaderFlags    = errors.New("blob: invalid header flags")
	ErrInvalidIndexEntrySize = errors.New("blob: invalid index entry size")
	ErrInvalidIndexOffsets   = errors.New("blob: index entry points outside the data section")
	ErrChecksumMismatch      = errors.New("blob: data checksum mismatch")
	ErrDataSizeMismatch      = errors.New("blob: data size mismatch")
	ErrInvalidEntryCount     = errors.New("blob: invalid entry count")
	ErrEntryCountExceeded    = errors.New("blob: entry count exceeded")
	ErrNoEntries             = errors.New("blob: no entries added")
	ErrInvalidID             = errors.New("blob: invalid ID, must be non-zero")
	ErrInvalidName           = errors.New("blob: invalid name, must be non-empty")
	ErrDuplicateName         = errors.New("blob: name already added")
	ErrHashCollision         = errors.New("blob: ID already used")
	ErrMixedIdentifierMode   = errors.New("blob: cannot mix ID and name identifiers")
	ErrInvalidNamesPayload   = errors.New("blob: invalid names payload")
	ErrInvalidNamesCount     = errors.New("blob: names count does not match entry count")
	ErrNameHashMismatch      = errors.New("blob: name does not hash to its entry ID")
	ErrEncoderFinished       = errors.New("blob: encoder already finished")
	ErrDataSectionTooLarge   = errors.New("blob: data section too large")
)
