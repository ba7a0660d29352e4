package encoding

import (
	"errors"
	"fmt"
	"io"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/arloliu/dense7/errs"
	"github.com/arloliu/dense7/internal/pool"
)

// maxEmptyReads is the number of consecutive (0, nil) reads DecodeReader tolerates.
const maxEmptyReads = 100

// Decoder converts Dense7 bytes back to text.
//
// A Decoder is used either one-shot through Decode, or as a stream through
// PrepareDecode, PartialDecode and FinishDecode. The two modes must not be interleaved.
//
// A Decoder is not safe for concurrent use. Obtain one per goroutine from a
// DecoderPool and return it with Close.
type Decoder struct {
	cfg   *Config
	owner *DecoderPool

	buf *pool.ByteBuffer // reusable output buffer
	out *pool.ByteBuffer // output of the current decode, buf or a call-scoped buffer

	stage bitGroupStage
	acc   codePointAccumulator

	streaming bool
	sealed    bool // the final chunk was fed
	prepared  int
	consumed  int

	pooled bool // idle in owner
}

// NewDecoder creates a standalone Decoder that does not belong to any pool.
func NewDecoder(opts ...Option) (*Decoder, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	return newDecoder(cfg, nil), nil
}

func newDecoder(cfg *Config, owner *DecoderPool) *Decoder {
	return &Decoder{
		cfg:   cfg,
		owner: owner,
		buf:   pool.NewByteBuffer(cfg.decodeBufferSize),
	}
}

// Decode decodes the first n bytes of data.
//
// Parameters:
//   - data: Dense7 encoded bytes
//   - n: number of bytes of data to decode, at most len(data)
//
// Returns:
//   - string: the decoded text
//   - error: errs.ErrInvalidLength, errs.ErrDecoderBusy, or an error wrapping errs.ErrDecoding
func (d *Decoder) Decode(data []byte, n int) (string, error) {
	if n < 0 || n > len(data) {
		return "", fmt.Errorf("%w: %d of %d bytes", errs.ErrInvalidLength, n, len(data))
	}

	if err := d.PrepareDecode(n); err != nil {
		return "", err
	}

	if err := d.PartialDecode(data[:n], true); err != nil {
		return "", err
	}

	return d.FinishDecode()
}

// DecodeUTF16 decodes the first n bytes of data to UTF-16 code units.
// Supplementary code points are returned as surrogate pairs.
func (d *Decoder) DecodeUTF16(data []byte, n int) ([]uint16, error) {
	text, err := d.Decode(data, n)
	if err != nil {
		return nil, err
	}

	return utf16.Encode([]rune(text)), nil
}

// DecodeReader reads exactly n bytes from r and decodes them.
//
// Bytes are streamed through PrepareDecode, PartialDecode and FinishDecode in chunks,
// so only the decoded text is held in memory. Returns io.ErrUnexpectedEOF if r ends
// before n bytes were read, and io.ErrNoProgress if r keeps returning no data and no error.
func (d *Decoder) DecodeReader(r io.Reader, n int) (string, error) {
	if r == nil {
		return "", errs.ErrNilReader
	}

	if err := d.PrepareDecode(n); err != nil {
		return "", err
	}

	chunk := pool.GetChunkBuffer()
	defer pool.PutChunkBuffer(chunk)
	chunk.SetLength(chunk.Cap())

	lr := io.LimitReader(r, int64(n))
	read, empty := 0, 0
	for read < n {
		m, err := lr.Read(chunk.B)
		if m > 0 {
			read += m
			empty = 0
			if perr := d.PartialDecode(chunk.B[:m], read == n); perr != nil {
				return "", perr
			}
		} else if err == nil {
			empty++
			if empty >= maxEmptyReads {
				d.Reset()
				return "", fmt.Errorf("read %d of %d bytes: %w", read, n, io.ErrNoProgress)
			}
		}

		if err != nil {
			if errors.Is(err, io.EOF) && read == n {
				break
			}
			d.Reset()
			if errors.Is(err, io.EOF) {
				return "", fmt.Errorf("read %d of %d bytes: %w", read, n, io.ErrUnexpectedEOF)
			}

			return "", fmt.Errorf("read dense7 input: %w", err)
		}
	}

	return d.FinishDecode()
}

// PrepareDecode starts a streaming decode of up to n bytes.
//
// The reusable output buffer is used when it can hold the worst case output of n
// bytes; otherwise a buffer is allocated for this decode only.
//
// Returns errs.ErrDecoderBusy if a streaming decode is already in progress.
func (d *Decoder) PrepareDecode(n int) error {
	if d.streaming {
		return errs.ErrDecoderBusy
	}

	if n < 0 {
		return fmt.Errorf("%w: %d", errs.ErrInvalidLength, n)
	}

	need := MaxDecodedSize(n)
	if need <= d.buf.Cap() {
		d.buf.Reset()
		d.out = d.buf
	} else {
		d.out = pool.NewByteBuffer(need)
	}

	d.stage.reset()
	d.acc.reset()
	d.streaming = true
	d.sealed = false
	d.prepared = n
	d.consumed = 0

	return nil
}

// PartialDecode consumes every byte of chunk.
//
// final marks the last chunk of the stream. After it, FinishDecode must be called
// and further non-empty chunks are rejected.
//
// On error the Decoder is reset and the streaming decode is abandoned.
func (d *Decoder) PartialDecode(chunk []byte, final bool) error {
	if !d.streaming {
		return errs.ErrDecoderNotPrepared
	}

	if len(chunk) > 0 && (d.sealed || d.consumed+len(chunk) > d.prepared) {
		consumed, prepared := d.consumed, d.prepared
		d.Reset()

		return fmt.Errorf("%w: %d bytes after %d of %d", errs.ErrExceedsPrepared, len(chunk), consumed, prepared)
	}

	for _, b := range chunk {
		if d.stage.pendingZero {
			d.stage.pendingZero = false
			if err := d.feed(0); err != nil {
				d.Reset()
				return err
			}
		}

		if err := d.feed(b & symMask); err != nil {
			d.Reset()
			return err
		}

		stolen, complete := d.stage.push(b)
		if !complete {
			continue
		}

		if stolen == 0 {
			d.stage.pendingZero = true
			continue
		}

		if err := d.feed(stolen); err != nil {
			d.Reset()
			return err
		}
	}

	d.consumed += len(chunk)

	if final {
		d.sealed = true
		if err := d.settle(); err != nil {
			d.Reset()
			return err
		}
	}

	return nil
}

// FinishDecode ends a streaming decode and returns the decoded text.
//
// Returns errs.ErrTruncatedInput if the stream ended inside a multi-symbol code point.
// The Decoder is reset in every case.
func (d *Decoder) FinishDecode() (string, error) {
	if !d.streaming {
		return "", errs.ErrDecoderNotPrepared
	}

	if err := d.settle(); err != nil {
		d.Reset()
		return "", err
	}

	if d.acc.active() {
		remaining := d.acc.remaining
		d.Reset()

		return "", fmt.Errorf("%w: %d trailer symbols missing", errs.ErrTruncatedInput, remaining)
	}

	text := string(d.out.Bytes())
	d.Reset()

	return text, nil
}

// Reset abandons any decode in progress and clears all state.
func (d *Decoder) Reset() {
	d.stage.reset()
	d.acc.reset()
	d.buf.Reset()
	d.out = nil
	d.streaming = false
	d.sealed = false
	d.prepared = 0
	d.consumed = 0
}

// Close resets the Decoder and returns it to the pool it came from, if any.
// The Decoder must not be used after Close. Closing it again before the pool hands
// it out is a no-op.
func (d *Decoder) Close() {
	if d.pooled {
		return
	}

	d.Reset()
	if d.owner != nil {
		d.pooled = true
		d.owner.put(d)
	}
}

// settle resolves a zero stolen symbol left by the last group of the stream.
// Inside a code point it is the final trailer; otherwise it pads a seven symbol tail.
func (d *Decoder) settle() error {
	if !d.stage.pendingZero {
		return nil
	}

	d.stage.pendingZero = false
	if !d.acc.active() {
		return nil
	}

	return d.feed(0)
}

// feed runs one symbol through the code point state machine.
func (d *Decoder) feed(sym byte) error {
	if d.acc.active() {
		if cp, done := d.acc.add(sym); done {
			return d.emit(cp)
		}

		return nil
	}

	switch classify(sym) {
	case classLiteral:
		d.out.AppendByte(sym)
	case classShifted:
		d.out.AppendByte(sym - controlShift)
	case classNUL:
		d.out.AppendByte(0x00)
	case classBEL:
		d.out.AppendByte(0x07)
	case classBS:
		d.out.AppendByte(0x08)
	case classLead2:
		d.acc.start(uint32(sym)<<7, 1)
	case classLead3:
		d.acc.start(uint32(sym&0x03)<<14, 2)
	case classLead4:
		d.acc.start(0, 3)
	default:
		return fmt.Errorf("%w: 0x%02X", errs.ErrInvalidSymbol, sym)
	}

	return nil
}

// emit appends a completed multi-symbol code point as UTF-8.
func (d *Decoder) emit(cp uint32) error {
	if cp > utf8.MaxRune || (cp >= 0xD800 && cp <= 0xDFFF) {
		return fmt.Errorf("%w: U+%04X", errs.ErrInvalidCodePoint, cp)
	}

	d.out.B = utf8.AppendRune(d.out.B, rune(cp))

	return nil
}
