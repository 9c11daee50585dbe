package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// wavInput is a fully decoded PCM file with samples scaled to [-1, 1).
type wavInput struct {
	rate     int
	channels int
	bitDepth int
	data     []int
	scale    float32
}

func openWAV(path string) (*wavInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to read PCM data: %w", err)
	}

	return newWAVInput(buf)
}

func newWAVInput(buf *audio.IntBuffer) (*wavInput, error) {
	if buf == nil || buf.Format == nil || buf.Format.NumChannels <= 0 || buf.Format.SampleRate <= 0 {
		return nil, errors.New("missing or invalid PCM format")
	}

	depth := buf.SourceBitDepth
	if depth <= 0 || depth > 32 {
		return nil, fmt.Errorf("unsupported bit depth: %d", depth)
	}

	return &wavInput{
		rate:     buf.Format.SampleRate,
		channels: buf.Format.NumChannels,
		bitDepth: depth,
		data:     buf.Data,
		scale:    1 / float32(uint64(1)<<(depth-1)),
	}, nil
}

func (w *wavInput) frames() int {
	return len(w.data) / w.channels
}

// read deinterleaves up to len(left) frames starting at frame pos. Mono
// input is duplicated to both sides; channels past the second are ignored.
func (w *wavInput) read(pos int, left, right []float32) int {
	n := min(len(left), w.frames()-pos)
	if n <= 0 {
		return 0
	}

	src := w.data[pos*w.channels : (pos+n)*w.channels]
	for i := range n {
		frame := src[i*w.channels:]
		left[i] = float32(frame[0]) * w.scale

		if w.channels > 1 {
			right[i] = float32(frame[1]) * w.scale
		} else {
			right[i] = left[i]
		}
	}

	return n
}
