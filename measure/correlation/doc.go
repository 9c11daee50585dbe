// Package correlation implements a stereo phase-correlation meter.
//
// The meter low-passes both channels, then tracks E[LR], E[L^2] and E[R^2]
// with exponential moving averages. Read returns the normalized correlation
// E[LR]/sqrt(E[L^2]E[R^2]) in [-1, 1]: +1 for identical channels, -1 for
// phase-inverted channels and about 0 for unrelated material. Silence reads
// as 0.
package correlation
