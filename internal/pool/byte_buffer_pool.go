package pool

import (
	"sync"
)

// Buffer size classes.
const (
	ChunkBufferDefaultSize  = 32 << 10 // read chunk of a streaming decode
	ChunkBufferMaxThreshold = 256 << 10
	TableBufferDefaultSize  = 64 << 10 // data section of a string table
	TableBufferMaxThreshold = 8 << 20

	growthStep                = 16 << 10
	largeBufferGrowthBoundary = 4 * growthStep
)

// ByteBuffer is a growable byte slice that keeps its capacity across Reset calls.
// Encoders and decoders own one per scratch area and append to B directly.
type ByteBuffer struct {
	B []byte
}

// NewByteBuffer creates an empty ByteBuffer with the given capacity.
func NewByteBuffer(capacity int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, capacity)}
}

// Bytes returns the buffered bytes.
func (bb *ByteBuffer) Bytes() []byte { return bb.B }

// Len returns the number of buffered bytes.
func (bb *ByteBuffer) Len() int { return len(bb.B) }

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int { return cap(bb.B) }

// Reset empties the buffer and keeps its memory.
func (bb *ByteBuffer) Reset() { bb.B = bb.B[:0] }

// MustWrite appends data, growing the buffer if necessary.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// AppendByte appends a single byte, growing the buffer if necessary.
func (bb *ByteBuffer) AppendByte(b byte) {
	bb.B = append(bb.B, b)
}

// SetLength sets the length of the buffer to n.
// Panics if n is negative or greater than the capacity.
func (bb *ByteBuffer) SetLength(n int) {
	if n < 0 || n > cap(bb.B) {
		panic("pool: SetLength out of range")
	}
	bb.B = bb.B[:n]
}

// Grow ensures the buffer can take n more bytes without reallocating.
//
// Buffers up to 64KiB grow in 16KiB steps; larger buffers grow by a quarter of their
// capacity. The growth is never smaller than n.
func (bb *ByteBuffer) Grow(n int) {
	if cap(bb.B)-len(bb.B) >= n {
		return
	}

	step := growthStep
	if cap(bb.B) > largeBufferGrowthBoundary {
		step = cap(bb.B) / 4
	}

	grown := make([]byte, len(bb.B), len(bb.B)+max(step, n))
	copy(grown, bb.B)
	bb.B = grown
}

// ByteBufferPool recycles ByteBuffers of one size class through a sync.Pool.
// Buffers that grew beyond maxThreshold are dropped on Put; zero disables the limit.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a pool whose new buffers have defaultSize capacity.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	p := &ByteBufferPool{maxThreshold: maxThreshold}
	p.pool.New = func() any {
		return NewByteBuffer(defaultSize)
	}

	return p
}

// Get returns an empty buffer.
func (p *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := p.pool.Get().(*ByteBuffer)
	return bb
}

// Put resets bb and returns it to the pool. A nil bb is ignored.
func (p *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil || (p.maxThreshold > 0 && cap(bb.B) > p.maxThreshold) {
		return
	}

	bb.Reset()
	p.pool.Put(bb)
}

var (
	chunkBuffers = NewByteBufferPool(ChunkBufferDefaultSize, ChunkBufferMaxThreshold)
	tableBuffers = NewByteBufferPool(TableBufferDefaultSize, TableBufferMaxThreshold)
)

// GetChunkBuffer returns an empty buffer of at least ChunkBufferDefaultSize capacity
// for reading a stream in chunks.
func GetChunkBuffer() *ByteBuffer { return chunkBuffers.Get() }

// PutChunkBuffer returns a buffer obtained from GetChunkBuffer.
func PutChunkBuffer(bb *ByteBuffer) { chunkBuffers.Put(bb) }

// GetTableBuffer returns an empty buffer for assembling a string table data section.
func GetTableBuffer() *ByteBuffer { return tableBuffers.Get() }

// PutTableBuffer returns a buffer obtained from GetTableBuffer.
func PutTableBuffer(bb *ByteBuffer) { tableBuffers.Put(bb) }
