package encoding

import (
	"fmt"

	"github.com/arloliu/dense7/internal/options"
	"github.com/arloliu/dense7/internal/pool"
)

const (
	// DefaultSmallInputThreshold is the largest input, in bytes or UTF-16 units, encoded
	// with the encoder's reusable scratch buffers.
	DefaultSmallInputThreshold = 4096

	// DefaultDecodeBufferSize is the capacity of the decoder's reusable output buffer.
	DefaultDecodeBufferSize = 4 * 8192
)

// Config holds the scratch sizes of encoders and decoders, and the capacity of the
// pools that vend them.
type Config struct {
	smallInputThreshold int
	decodeBufferSize    int
	poolCapacity        int
}

// NewConfig creates a Config with default values and applies the given options.
func NewConfig(opts ...Option) (*Config, error) {
	cfg := &Config{
		smallInputThreshold: DefaultSmallInputThreshold,
		decodeBufferSize:    DefaultDecodeBufferSize,
		poolCapacity:        pool.DefaultInstanceCapacity,
	}

	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SmallInputThreshold returns the configured scratch reuse threshold.
func (c *Config) SmallInputThreshold() int {
	return c.smallInputThreshold
}

// DecodeBufferSize returns the configured decoder output buffer size.
func (c *Config) DecodeBufferSize() int {
	return c.decodeBufferSize
}

// PoolCapacity returns the configured number of idle pooled instances.
func (c *Config) PoolCapacity() int {
	return c.poolCapacity
}

// Option is a functional option for configuring encoders, decoders and their pools.
type Option = options.Option[*Config]

// WithSmallInputThreshold sets the largest input encoded with reusable scratch buffers.
// Larger inputs use buffers allocated for that call only.
// Default is DefaultSmallInputThreshold.
func WithSmallInputThreshold(n int) Option {
	return options.New(func(c *Config) error {
		if n <= 0 {
			return fmt.Errorf("invalid small input threshold: %d", n)
		}
		c.smallInputThreshold = n

		return nil
	})
}

// WithDecodeBufferSize sets the capacity, in bytes, of the decoder's reusable output buffer.
// Decodes needing more use a buffer allocated for that call only.
// Default is DefaultDecodeBufferSize.
func WithDecodeBufferSize(n int) Option {
	return options.New(func(c *Config) error {
		if n <= 0 {
			return fmt.Errorf("invalid decode buffer size: %d", n)
		}
		c.decodeBufferSize = n

		return nil
	})
}

// WithPoolCapacity sets the number of idle instances retained by a pool.
// Default is pool.DefaultInstanceCapacity.
func WithPoolCapacity(n int) Option {
	return options.New(func(c *Config) error {
		if n <= 0 {
			return fmt.Errorf("invalid pool capacity: %d", n)
		}
		c.poolCapacity = n

		return nil
	})
}
