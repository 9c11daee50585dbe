package core

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	ErrSampleRate = errors.New("core: sample rate must be positive and finite")
	ErrBlockSize  = errors.New("core: block size must be positive")
	ErrChannels   = errors.New("core: channel count must be positive")
)

// StreamConfig describes the audio callback a processing chain runs in.
type StreamConfig struct {
	SampleRate float64
	BlockSize  int
	Channels   int
}

// StreamOption adjusts a StreamConfig before validation.
type StreamOption func(*StreamConfig)

func WithSampleRate(rate float64) StreamOption {
	return func(c *StreamConfig) { c.SampleRate = rate }
}

func WithBlockSize(frames int) StreamOption {
	return func(c *StreamConfig) { c.BlockSize = frames }
}

func WithChannels(n int) StreamOption {
	return func(c *StreamConfig) { c.Channels = n }
}

// NewStreamConfig starts from 48 kHz stereo with 256-frame blocks, applies
// opts in order and validates the result.
func NewStreamConfig(opts ...StreamOption) (StreamConfig, error) {
	c := StreamConfig{SampleRate: 48000, BlockSize: 256, Channels: 2}
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}
	return c, c.Validate()
}

// Validate returns a wrapped ErrSampleRate, ErrBlockSize or ErrChannels for
// settings no processor can run with.
func (c StreamConfig) Validate() error {
	switch {
	case !(c.SampleRate > 0) || c.SampleRate > 1e9:
		return fmt.Errorf("%w: %g", ErrSampleRate, c.SampleRate)
	case c.BlockSize <= 0:
		return fmt.Errorf("%w: %d", ErrBlockSize, c.BlockSize)
	case c.Channels <= 0:
		return fmt.Errorf("%w: %d", ErrChannels, c.Channels)
	}
	return nil
}

func (c StreamConfig) Nyquist() float64 { return c.SampleRate / 2 }

// BlockDuration is the wall-clock time one block of frames covers.
func (c StreamConfig) BlockDuration() time.Duration {
	if c.SampleRate <= 0 {
		return 0
	}
	return time.Duration(math.Round(float64(c.BlockSize) / c.SampleRate * float64(time.Second)))
}
