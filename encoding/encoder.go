package encoding

import (
	"fmt"
	"io"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/arloliu/dense7/errs"
	"github.com/arloliu/dense7/internal/pool"
)

// Result holds the bytes produced by one Encoder call.
//
// A Result aliases the encoder's reusable buffer. It is valid until the next call on
// the same Encoder, or until the Encoder is closed. Copy Bytes() to keep the data longer.
type Result struct {
	buf *pool.ByteBuffer
}

// Bytes returns exactly the encoded bytes.
func (r Result) Bytes() []byte {
	if r.buf == nil {
		return nil
	}

	return r.buf.Bytes()
}

// Buffer returns the whole physical buffer holding the encoded bytes.
// Its capacity may exceed Len; only the first Len bytes are meaningful.
func (r Result) Buffer() []byte {
	if r.buf == nil {
		return nil
	}

	return r.buf.B[:cap(r.buf.B)]
}

// Len returns the number of encoded bytes.
func (r Result) Len() int {
	if r.buf == nil {
		return 0
	}

	return r.buf.Len()
}

// Encoder converts text to Dense7 bytes.
//
// An Encoder is not safe for concurrent use. Obtain one per goroutine from an
// EncoderPool and return it with Close.
type Encoder struct {
	cfg     *Config
	owner   *EncoderPool
	symbols *pool.ByteBuffer
	out     *pool.ByteBuffer
	pooled  bool // idle in owner
}

// NewEncoder creates a standalone Encoder that does not belong to any pool.
func NewEncoder(opts ...Option) (*Encoder, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	return newEncoder(cfg, nil), nil
}

func newEncoder(cfg *Config, owner *EncoderPool) *Encoder {
	maxSymbols := maxSymbolsUTF16(cfg.smallInputThreshold)

	return &Encoder{
		cfg:     cfg,
		owner:   owner,
		symbols: pool.NewByteBuffer(maxSymbols),
		out:     pool.NewByteBuffer(PackedSize(maxSymbols)),
	}
}

// Encode encodes a UTF-8 string.
//
// Returns errs.ErrInvalidUTF8 if text is not valid UTF-8. UTF-8 encoded surrogates
// are invalid UTF-8 and rejected the same way.
//
// Parameters:
//   - text: the string to encode
//
// Returns:
//   - Result: the encoded bytes, valid until the next call on this Encoder
//   - error: an error wrapping errs.ErrEncoding
func (e *Encoder) Encode(text string) (Result, error) {
	symbols, out := e.buffers(len(text), maxSymbolsUTF8(len(text)))

	for i, r := range text {
		if r == utf8.RuneError {
			if _, size := utf8.DecodeRuneInString(text[i:]); size == 1 {
				e.Reset()
				return Result{}, fmt.Errorf("%w at byte offset %d", errs.ErrInvalidUTF8, i)
			}
		}
		symbols.B = appendSymbols(symbols.B, r)
	}

	out.B = packSymbols(out.B, symbols.B)
	symbols.Reset()

	return Result{buf: out}, nil
}

// EncodeUTF16 encodes a sequence of UTF-16 code units.
//
// Surrogate pairs are combined into one supplementary code point. Unpaired
// surrogates are rejected:
//   - errs.ErrLoneHighSurrogate if the last unit is a high surrogate
//   - errs.ErrUnpairedHighSurrogate if a high surrogate is not followed by a low surrogate
//   - errs.ErrLoneLowSurrogate if a low surrogate has no preceding high surrogate
func (e *Encoder) EncodeUTF16(units []uint16) (Result, error) {
	symbols, out := e.buffers(len(units), maxSymbolsUTF16(len(units)))

	for i := 0; i < len(units); i++ {
		u := units[i]

		var r rune
		switch {
		case isHighSurrogate(u):
			if i+1 == len(units) {
				e.Reset()
				return Result{}, fmt.Errorf("%w at unit %d", errs.ErrLoneHighSurrogate, i)
			}
			low := units[i+1]
			if !isLowSurrogate(low) {
				e.Reset()
				return Result{}, fmt.Errorf("%w at unit %d", errs.ErrUnpairedHighSurrogate, i)
			}
			r = utf16.DecodeRune(rune(u), rune(low))
			i++
		case isLowSurrogate(u):
			e.Reset()
			return Result{}, fmt.Errorf("%w at unit %d", errs.ErrLoneLowSurrogate, i)
		default:
			r = rune(u)
		}

		symbols.B = appendSymbols(symbols.B, r)
	}

	out.B = packSymbols(out.B, symbols.B)
	symbols.Reset()

	return Result{buf: out}, nil
}

// EncodeTo encodes text and writes the encoded bytes to w.
// It returns the number of bytes written.
func (e *Encoder) EncodeTo(w io.Writer, text string) (int, error) {
	res, err := e.Encode(text)
	if err != nil {
		return 0, err
	}

	return w.Write(res.Bytes())
}

// Reset clears the scratch buffers. Results returned earlier become empty.
func (e *Encoder) Reset() {
	e.symbols.Reset()
	e.out.Reset()
}

// Close resets the Encoder and returns it to the pool it came from, if any.
// The Encoder and any Result it returned must not be used after Close.
// Closing an Encoder again before the pool hands it out is a no-op.
func (e *Encoder) Close() {
	if e.pooled {
		return
	}

	e.Reset()
	if e.owner != nil {
		e.pooled = true
		e.owner.put(e)
	}
}

// buffers returns empty symbol and output buffers able to hold maxSymbols symbols.
// Inputs above the small input threshold get buffers scoped to the call, so one large
// input does not pin a large scratch area to a pooled Encoder.
func (e *Encoder) buffers(inputLen int, maxSymbols int) (*pool.ByteBuffer, *pool.ByteBuffer) {
	if inputLen > e.cfg.smallInputThreshold {
		return pool.NewByteBuffer(maxSymbols), pool.NewByteBuffer(PackedSize(maxSymbols))
	}

	e.Reset()
	e.symbols.Grow(maxSymbols)
	e.out.Grow(PackedSize(maxSymbols))

	return e.symbols, e.out
}

func isHighSurrogate(u uint16) bool {
	return u >= 0xD800 && u <= 0xDBFF
}

func isLowSurrogate(u uint16) bool {
	return u >= 0xDC00 && u <= 0xDFFF
}
