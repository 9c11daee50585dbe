package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-rtdsp/dsp/filter/iir"
	"github.com/cwbudde/algo-rtdsp/dsp/spectrum"
)

type filterSpec struct {
	typ    iir.Type
	freq   float64
	q      float64
	gainDB float64
}

type options struct {
	path    string
	block   int
	fftSize int
	warp    spectrum.Warp
	speed   spectrum.Speed
	filter  *filterSpec
	verbose bool
}

func parseArgs(args []string, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet("dspmeter", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		o      options
		warp   string
		speed  string
		filter string
	)

	fs.IntVar(&o.block, "block", 256, "processing block size in frames")
	fs.IntVar(&o.fftSize, "fft", 4096, "FFT analyzer window size (power of two)")
	fs.StringVar(&warp, "warp", "bark", "perceptual warp preset: bark, medium, high")
	fs.StringVar(&speed, "speed", "moderate", "perceptual speed preset: rapid, fast, moderate, slow, noise")
	fs.StringVar(&filter, "filter", "", "pre-filter as type:freq[:q[:gain]], e.g. highpass:80:0.707")
	fs.BoolVar(&o.verbose, "v", false, "verbose logging")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: dspmeter [flags] file.wav\n\n")
		fmt.Fprintf(stderr, "Prints correlation, spectrum and level statistics of a WAV file.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return options{}, errors.New("expected exactly one input file")
	}

	o.path = fs.Arg(0)

	if o.block <= 0 {
		return options{}, fmt.Errorf("block size must be > 0: %d", o.block)
	}

	if o.fftSize < 2 || o.fftSize&(o.fftSize-1) != 0 {
		return options{}, fmt.Errorf("fft size must be a power of two >= 2: %d", o.fftSize)
	}

	var err error
	if o.warp, err = spectrum.ParseWarp(warp); err != nil {
		return options{}, err
	}

	if o.speed, err = spectrum.ParseSpeed(speed); err != nil {
		return options{}, err
	}

	if filter != "" {
		spec, err := parseFilter(filter)
		if err != nil {
			return options{}, err
		}

		o.filter = &spec
	}

	return o, nil
}

// parseFilter reads type:freq[:q[:gain]]. Q defaults to 0.707 and gain to
// 0 dB.
func parseFilter(s string) (filterSpec, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 4 {
		return filterSpec{}, fmt.Errorf("filter %q: want type:freq[:q[:gain]]", s)
	}

	typ, err := iir.ParseType(parts[0])
	if err != nil {
		return filterSpec{}, err
	}

	spec := filterSpec{typ: typ, q: 0.707}
	fields := []*float64{&spec.freq, &spec.q, &spec.gainDB}

	for i, p := range parts[1:] {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return filterSpec{}, fmt.Errorf("filter %q: %w", s, err)
		}

		*fields[i] = v
	}

	if !(spec.freq > 0) {
		return filterSpec{}, fmt.Errorf("filter %q: frequency must be > 0", s)
	}

	return spec, nil
}
