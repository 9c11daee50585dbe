package main

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-rtdsp/dsp/core"
	"github.com/cwbudde/algo-rtdsp/dsp/filter/iir"
	"github.com/cwbudde/algo-rtdsp/dsp/spectrum"
	"github.com/cwbudde/algo-rtdsp/measure/correlation"
)

type report struct {
	path        string
	rate        int
	channels    int
	frames      int
	filter      string
	correlation float32
	min, max    float32
	rmsDB       float64
	peakFreq    float32
	peakDB      float32
	fftFrames   int
	percFreq    float32
	pmaxDB      float64
	percValid   bool
}

func (r report) samplePeakDB() float64 {
	return core.LinearToDB(float64(max(-r.min, r.max)))
}

// pipeline holds one instance of every meter plus the block buffers.
type pipeline struct {
	cfg     core.StreamConfig
	filters []*iir.Biquad
	corr    *correlation.Meter
	fft     *spectrum.FFT
	perc    *spectrum.Perceptual
	left    []float32
	right   []float32
	mix     []float32
	fftPos  int
	log     *logrus.Logger
}

func newPipeline(rate int, o options, log *logrus.Logger) (*pipeline, error) {
	cfg, err := core.NewStreamConfig(
		core.WithSampleRate(float64(rate)),
		core.WithBlockSize(o.block),
		core.WithChannels(2),
	)
	if err != nil {
		return nil, err
	}

	fft, err := spectrum.NewFFT(o.fftSize, cfg.SampleRate)
	if err != nil {
		return nil, fmt.Errorf("fft analyzer: %w", err)
	}

	perc, err := spectrum.NewPerceptual(cfg.SampleRate)
	if err != nil {
		return nil, fmt.Errorf("perceptual analyzer: %w", err)
	}

	perc.SetWarp(o.warp)
	perc.SetSpeedPreset(o.speed)

	p := &pipeline{
		cfg:   cfg,
		corr:  correlation.New(float32(cfg.SampleRate)),
		fft:   fft,
		perc:  perc,
		left:  make([]float32, cfg.BlockSize),
		right: make([]float32, cfg.BlockSize),
		mix:   make([]float32, cfg.BlockSize),
		log:   log,
	}

	if o.filter != nil {
		for range 2 {
			b := iir.NewBiquad(cfg.SampleRate)
			b.Compute(o.filter.typ, o.filter.freq, o.filter.q, o.filter.gainDB)
			p.filters = append(p.filters, b)
		}

		log.WithFields(logrus.Fields{
			"type": o.filter.typ,
			"freq": o.filter.freq,
			"q":    o.filter.q,
			"gain": o.filter.gainDB,
			"dc":   p.filters[0].DBAtFreq(0),
		}).Debug("pre-filter configured")
	}

	log.WithFields(logrus.Fields{
		"block": cfg.BlockSize,
		"span":  cfg.BlockDuration(),
		"fft":   o.fftSize,
		"warp":  o.warp,
		"wfact": perc.Wfact(),
		"speed": perc.Speed(),
	}).Debug("pipeline ready")

	return p, nil
}

func analyze(in *wavInput, o options, log *logrus.Logger) (report, error) {
	p, err := newPipeline(in.rate, o, log)
	if err != nil {
		return report{}, err
	}

	rep := report{
		path:     o.path,
		rate:     in.rate,
		channels: in.channels,
		frames:   in.frames(),
		peakDB:   float32(math.Inf(-1)),
	}

	if o.filter != nil {
		rep.filter = fmt.Sprintf("%s %.1f Hz Q %.3f %.1f dB", o.filter.typ, o.filter.freq, o.filter.q, o.filter.gainDB)
	}

	var energy float64

	for pos := 0; pos < rep.frames; {
		n := in.read(pos, p.left, p.right)
		pos += n

		energy += p.block(n, &rep)
	}

	rep.correlation = p.corr.Read()

	if rep.frames > 0 {
		rep.rmsDB = core.LinearPowerToDB(energy / float64(2*rep.frames))
	} else {
		rep.rmsDB = math.Inf(-1)
	}

	trace := p.perc.Power()
	best := 0

	for b, v := range trace.Data {
		if v > trace.Data[best] {
			best = b
		}
	}

	rep.percFreq = p.perc.FreqAtBin(best)
	rep.percValid = trace.Valid
	rep.pmaxDB = core.LinearPowerToDB(float64(p.perc.PMax()))

	log.WithFields(logrus.Fields{
		"fft_frames":  rep.fftFrames,
		"perc_frames": trace.Count,
	}).Debug("analysis done")

	return rep, nil
}

// block runs n frames already staged in left and right through the meters
// and returns their summed energy.
func (p *pipeline) block(n int, rep *report) float64 {
	left, right, mix := p.left[:n], p.right[:n], p.mix[:n]

	if len(p.filters) == 2 {
		p.filters[0].Run(left)
		p.filters[1].Run(right)
	}

	p.corr.Process(left, right)

	rep.min, rep.max = core.Peaks(left, rep.min, rep.max)
	rep.min, rep.max = core.Peaks(right, rep.min, rep.max)
	energy := float64(core.Energy(left)) + float64(core.Energy(right))

	for i := range mix {
		mix[i] = left[i] + right[i]
	}

	core.Scale(mix, 0.5)

	p.feedFFT(mix, rep)
	p.feedPerceptual(mix)

	return energy
}

func (p *pipeline) feedFFT(x []float32, rep *report) {
	size := p.fft.WindowSize()

	for len(x) > 0 {
		n := min(len(x), size-p.fftPos)
		if err := p.fft.SetDataHann(x[:n], p.fftPos); err != nil {
			p.log.WithError(err).Warn("fft window overrun")
			p.fftPos = 0

			return
		}

		x = x[n:]
		p.fftPos += n

		if p.fftPos < size {
			continue
		}

		p.fftPos = 0
		p.fft.Execute()
		rep.fftFrames++

		for b := 1; b < p.fft.Bins(); b++ {
			if db := p.fft.PowerAtBin(b, 1, false); db > rep.peakDB {
				rep.peakDB = db
				rep.peakFreq = p.fft.FreqAtBin(b)
			}
		}
	}
}

func (p *pipeline) feedPerceptual(x []float32) {
	buf := p.perc.InputData()

	for len(x) > 0 {
		n := copy(buf, x)
		p.perc.Process(n, spectrum.ModePeak)
		x = x[n:]
	}
}

func writeReport(w io.Writer, r report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "file\t%s\n", r.path)
	fmt.Fprintf(tw, "format\t%d Hz, %d ch, %d frames\n", r.rate, r.channels, r.frames)

	if r.filter != "" {
		fmt.Fprintf(tw, "pre-filter\t%s\n", r.filter)
	}

	fmt.Fprintf(tw, "correlation\t%+.3f\n", r.correlation)
	fmt.Fprintf(tw, "sample peak\t%.2f dBFS (meter %.3f)\n", r.samplePeakDB(), core.LogMeter(float32(r.samplePeakDB())))
	fmt.Fprintf(tw, "min / max\t%.4f / %.4f\n", r.min, r.max)
	fmt.Fprintf(tw, "rms\t%.2f dBFS\n", r.rmsDB)

	if r.fftFrames > 0 {
		fmt.Fprintf(tw, "spectral peak\t%.1f Hz at %.2f dB (%d frames)\n", r.peakFreq, r.peakDB, r.fftFrames)
	} else {
		fmt.Fprintf(tw, "spectral peak\tn/a (input shorter than one window)\n")
	}

	fmt.Fprintf(tw, "perceptual peak\t%.1f Hz, pmax %.2f dB (valid %v)\n", r.percFreq, r.pmaxDB, r.percValid)

	return tw.Flush()
}
