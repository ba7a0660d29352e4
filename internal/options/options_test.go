package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type bufferConfig struct {
	size  int
	label string
	calls []string
}

func withSize(n int) Option[*bufferConfig] {
	return New(func(c *bufferConfig) error {
		if n <= 0 {
			return errors.New("size must be positive")
		}
		c.size = n
		c.calls = append(c.calls, "size")

		return nil
	})
}

func withLabel(label string) Option[*bufferConfig] {
	return NoError(func(c *bufferConfig) {
		c.label = label
		c.calls = append(c.calls, "label")
	})
}

func TestApply(t *testing.T) {
	cfg := &bufferConfig{}

	require.NoError(t, Apply(cfg, withSize(64), withLabel("scratch")))
	require.Equal(t, 64, cfg.size)
	require.Equal(t, "scratch", cfg.label)
	require.Equal(t, []string{"size", "label"}, cfg.calls)
}

func TestApply_NoOptions(t *testing.T) {
	cfg := &bufferConfig{size: 8}

	require.NoError(t, Apply(cfg))
	require.Equal(t, 8, cfg.size)
}

func TestApply_StopsAtFirstError(t *testing.T) {
	cfg := &bufferConfig{}

	err := Apply(cfg, withLabel("first"), withSize(0), withLabel("never"))
	require.Error(t, err)
	require.Equal(t, "first", cfg.label, "options before the error stay applied")
	require.Equal(t, []string{"label"}, cfg.calls)
}

func TestApply_LastOptionWins(t *testing.T) {
	cfg := &bufferConfig{}

	require.NoError(t, Apply(cfg, withSize(1), withSize(2)))
	require.Equal(t, 2, cfg.size)
}

func TestApply_SkipsNil(t *testing.T) {
	cfg := &bufferConfig{}

	require.NoError(t, Apply(cfg, nil, withLabel("ok")))
	require.Equal(t, "ok", cfg.label)
}

func TestOptionsWithValueTarget(t *testing.T) {
	counter := 0
	var opt Option[*int] = NoError(func(p *int) { *p += 2 })

	require.NoError(t, Apply(&counter, opt, opt))
	require.Equal(t, 4, counter)
}
