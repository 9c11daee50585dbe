// Command dspmeter runs a WAV file through the real-time meters and prints a
// summary.
//
// Usage:
//
//	dspmeter [flags] file.wav
//
// The file is fed block by block through the stereo correlation meter, a
// Hann-windowed FFT analyzer and the perceptual analyzer, optionally after a
// biquad filter on every channel.
//
// Examples:
//
//	dspmeter mix.wav
//	dspmeter -fft 8192 -warp medium -speed slow mix.wav
//	dspmeter -filter highpass:80:0.707 -v vocal.wav
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}

	log := newLogger(stderr, opts.verbose)

	in, err := openWAV(opts.path)
	if err != nil {
		log.WithError(err).Error("cannot read input")
		return 1
	}

	log.WithFields(logrus.Fields{
		"file":     opts.path,
		"rate":     in.rate,
		"channels": in.channels,
		"frames":   in.frames(),
	}).Debug("input opened")

	rep, err := analyze(in, opts, log)
	if err != nil {
		log.WithError(err).Error("analysis failed")
		return 1
	}

	if err := writeReport(stdout, rep); err != nil {
		log.WithError(err).Error("cannot write report")
		return 1
	}

	return 0
}

func newLogger(w io.Writer, verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	if verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.InfoLevel)
	}

	return log
}
