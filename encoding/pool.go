package encoding

import (
	"github.com/arloliu/dense7/internal/pool"
)

// PoolStats reports instance counters of an EncoderPool or DecoderPool.
type PoolStats = pool.Stats

// EncoderPool vends reusable Encoders. It is safe for concurrent use.
//
// Pools are explicit values: create one at startup, share it between goroutines and
// call Drain at shutdown.
type EncoderPool struct {
	cfg  *Config
	pool *pool.Pool[*Encoder]
}

// NewEncoderPool creates an EncoderPool. Every Encoder it creates shares the pool's Config.
func NewEncoderPool(opts ...Option) (*EncoderPool, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	p := &EncoderPool{cfg: cfg}
	p.pool = pool.NewPool(cfg.poolCapacity, func() *Encoder {
		return newEncoder(cfg, p)
	})

	return p, nil
}

// GetOrCreate returns an idle Encoder or creates one.
// Return it with Encoder.Close when done.
func (p *EncoderPool) GetOrCreate() *Encoder {
	e := p.pool.GetOrCreate()
	e.pooled = false

	return e
}

// Drain drops all idle Encoders and returns how many were dropped.
func (p *EncoderPool) Drain() int {
	return p.pool.Drain()
}

// Stats returns a snapshot of the pool counters.
func (p *EncoderPool) Stats() PoolStats {
	return p.pool.Stats()
}

func (p *EncoderPool) put(e *Encoder) {
	p.pool.Put(e)
}

// DecoderPool vends reusable Decoders. It is safe for concurrent use.
type DecoderPool struct {
	cfg  *Config
	pool *pool.Pool[*Decoder]
}

// NewDecoderPool creates a DecoderPool. Every Decoder it creates shares the pool's Config.
func NewDecoderPool(opts ...Option) (*DecoderPool, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	p := &DecoderPool{cfg: cfg}
	p.pool = pool.NewPool(cfg.poolCapacity, func() *Decoder {
		return newDecoder(cfg, p)
	})

	return p, nil
}

// GetOrCreate returns an idle Decoder or creates one.
// Return it with Decoder.Close when done.
func (p *DecoderPool) GetOrCreate() *Decoder {
	d := p.pool.GetOrCreate()
	d.pooled = false

	return d
}

// Drain drops all idle Decoders and returns how many were dropped.
func (p *DecoderPool) Drain() int {
	return p.pool.Drain()
}

// Stats returns a snapshot of the pool counters.
func (p *DecoderPool) Stats() PoolStats {
	return p.pool.Stats()
}

func (p *DecoderPool) put(d *Decoder) {
	p.pool.Put(d)
}
