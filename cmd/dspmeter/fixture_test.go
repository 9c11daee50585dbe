package main

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/require"
)

// writeFixture encodes a 16-bit PCM file whose samples come from gen.
func writeFixture(t *testing.T, rate, channels, frames int, gen func(frame, ch int) float64) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fixture.wav")
	f, err := os.Create(path)
	require.NoError(t, err)

	data := make([]int, frames*channels)
	for i := range frames {
		for ch := range channels {
			data[i*channels+ch] = int(math.Round(gen(i, ch) * 32767))
		}
	}

	enc := wav.NewEncoder(f, rate, 16, channels, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: rate},
		Data:           data,
		SourceBitDepth: 16,
	}

	require.NoError(t, enc.Write(buf))
	require.NoError(t, enc.Close())
	require.NoError(t, f.Close())

	return path
}

func sineGen(freq, rate, amp float64) func(int, int) float64 {
	return func(i, _ int) float64 {
		return amp * math.Sin(2*math.Pi*freq*float64(i)/rate)
	}
}
