package textcache

import (
	"fmt"
	"time"

	"github.com/arloliu/dense7/internal/options"
)

// Config holds the key namespace and expiration used by a Client.
type Config struct {
	keyPrefix  string
	expiration time.Duration
}

// Option is a functional option for configuring a Client.
type Option = options.Option[*Config]

// WithKeyPrefix prepends prefix to every Redis key, e.g. "app:text:".
// Default is no prefix.
func WithKeyPrefix(prefix string) Option {
	return options.NoError(func(c *Config) {
		c.keyPrefix = prefix
	})
}

// WithExpiration sets the TTL of written keys. Zero means no expiration.
// Default is 0.
func WithExpiration(expiration time.Duration) Option {
	return options.New(func(c *Config) error {
		if expiration < 0 {
			return fmt.Errorf("textcache: invalid expiration: %s", expiration)
		}
		c.expiration = expiration

		return nil
	})
}
