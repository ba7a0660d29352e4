// Package textcache stores text in Redis in Dense7 form.
//
// Values are packed with a pooled encoding.Encoder before they are written and
// unpacked with a pooled encoding.Decoder when read, so ASCII-heavy text takes one
// eighth less memory on the server.
package textcache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/arloliu/dense7/encoding"
	"github.com/arloliu/dense7/internal/options"
)

var (
	// ErrKeyNotFound indicates Get was called for a key that is not in Redis.
	ErrKeyNotFound = errors.New("textcache: key not found")

	// ErrLengthMismatch indicates PutMulti received a different number of keys and texts.
	ErrLengthMismatch = errors.New("textcache: key and text slices have different length")

	// ErrNilPool indicates NewClient was called without an encoder or decoder pool.
	ErrNilPool = errors.New("textcache: encoder and decoder pools are required")
)

// Client is a Redis-backed text cache.
// The client is safe for concurrent use.
type Client struct {
	rsClient *redis.Client
	encoders *encoding.EncoderPool
	decoders *encoding.DecoderPool
	cfg      Config
}

// NewClient creates a new Client over an existing Redis client and codec pools.
func NewClient(
	rsClient *redis.Client,
	encoders *encoding.EncoderPool,
	decoders *encoding.DecoderPool,
	opts ...Option,
) (*Client, error) {
	if encoders == nil || decoders == nil {
		return nil, ErrNilPool
	}

	c := &Client{
		rsClient: rsClient,
		encoders: encoders,
		decoders: decoders,
	}
	if err := options.Apply(&c.cfg, opts...); err != nil {
		return nil, err
	}

	return c, nil
}

// Expiration returns the TTL applied to written keys.
func (c *Client) Expiration() time.Duration {
	return c.cfg.expiration
}

// Put encodes text and writes it under key.
// If the key doesn't exist it's added, otherwise it's updated.
func (c *Client) Put(ctx context.Context, key string, text string) error {
	data, err := c.encode(text)
	if err != nil {
		return fmt.Errorf("textcache: failed to encode key '%s': %w", key, err)
	}

	if err := c.rsClient.Set(ctx, c.redisKey(key), data, c.cfg.expiration).Err(); err != nil {
		return fmt.Errorf("textcache: failed to write key '%s': %w", key, err)
	}

	return nil
}

// PutMulti is a batch version of Put. No key is written if any text fails to encode.
func (c *Client) PutMulti(ctx context.Context, keys []string, texts []string) error {
	if len(keys) != len(texts) {
		return ErrLengthMismatch
	}
	if len(keys) == 0 {
		return nil
	}

	kvPairs := make(map[string]any, len(keys))
	for i, key := range keys {
		data, err := c.encode(texts[i])
		if err != nil {
			return fmt.Errorf("textcache: failed to encode key '%s': %w", key, err)
		}
		kvPairs[c.redisKey(key)] = data
	}

	pipe := c.rsClient.TxPipeline()
	pipe.MSet(ctx, kvPairs)
	if c.cfg.expiration != 0 {
		for rsKey := range kvPairs {
			pipe.Expire(ctx, rsKey, c.cfg.expiration)
		}
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("textcache: failed to write keys: %w", err)
	}

	return nil
}

// Get reads and decodes the text stored under key.
// ErrKeyNotFound is returned if the key is not in the cache.
func (c *Client) Get(ctx context.Context, key string) (string, error) {
	data, err := c.rsClient.Get(ctx, c.redisKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrKeyNotFound
		}

		return "", fmt.Errorf("textcache: %w", err)
	}

	text, err := c.decode(data)
	if err != nil {
		return "", fmt.Errorf("textcache: failed to decode key '%s': %w", key, err)
	}

	return text, nil
}

// GetMulti reads and decodes the texts stored under keys.
// Keys not found in the cache are not included in the returned map.
func (c *Client) GetMulti(ctx context.Context, keys []string) (map[string]string, error) {
	if len(keys) == 0 {
		return map[string]string{}, nil
	}

	rsKeys := make([]string, len(keys))
	for i, key := range keys {
		rsKeys[i] = c.redisKey(key)
	}

	results, err := c.rsClient.MGet(ctx, rsKeys...).Result()
	if err != nil {
		return nil, fmt.Errorf("textcache: failed to retrieve keys: %w", err)
	}

	dec := c.decoders.GetOrCreate()
	defer dec.Close()

	texts := make(map[string]string, len(results))
	for i, res := range results {
		if res == nil {
			continue
		}

		data, ok := res.(string)
		if !ok {
			return nil, fmt.Errorf("textcache: unexpected type %T in MGET result", res)
		}

		text, err := dec.Decode([]byte(data), len(data))
		if err != nil {
			return nil, fmt.Errorf("textcache: failed to decode key '%s': %w", keys[i], err)
		}
		texts[keys[i]] = text
	}

	return texts, nil
}

// Delete deletes the provided keys from the cache.
func (c *Client) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	rsKeys := make([]string, len(keys))
	for i, key := range keys {
		rsKeys[i] = c.redisKey(key)
	}

	if err := c.rsClient.Del(ctx, rsKeys...).Err(); err != nil {
		return fmt.Errorf("textcache: failed to delete keys: %w", err)
	}

	return nil
}

// Exists checks whether the key exists in the cache.
func (c *Client) Exists(ctx context.Context, key string) (bool, error) {
	n, err := c.rsClient.Exists(ctx, c.redisKey(key)).Result()
	if err != nil {
		return false, fmt.Errorf("textcache: %w", err)
	}

	return n > 0, nil
}

func (c *Client) redisKey(key string) string {
	return c.cfg.keyPrefix + key
}

// encode returns a copy of the encoded text; the encoder's buffer is reused once it
// goes back to the pool.
func (c *Client) encode(text string) ([]byte, error) {
	enc := c.encoders.GetOrCreate()
	defer enc.Close()

	res, err := enc.Encode(text)
	if err != nil {
		return nil, err
	}

	return append([]byte(nil), res.Bytes()...), nil
}

func (c *Client) decode(data []byte) (string, error) {
	dec := c.decoders.GetOrCreate()
	defer dec.Close()

	return dec.Decode(data, len(data))
}
