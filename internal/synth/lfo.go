package synth

import "math"

// LFO is a low-frequency sine modulator used for vibrato and tremolo.
// Sample returns a multiplicative factor centered on 1.0, so a depth of
// 0.1 modulates the carrier by +-10%.
type LFO struct {
	depth  float64
	rateHz float64
	phase  float64 // [0, 1)
}

// NewLFO creates a modulator with the given depth and rate.
func NewLFO(depth, rateHz float64) *LFO {
	return &LFO{depth: depth, rateHz: rateHz}
}

// Sample advances the LFO by one sample and returns the current factor.
// Returns 1.0 when depth or rate is zero.
func (l *LFO) Sample(sampleRate float64) float64 {
	if l.depth == 0 || l.rateHz == 0 || sampleRate == 0 {
		return 1.0
	}
	v := 1.0 + l.depth*math.Sin(twoPi*l.phase)
	l.phase += l.rateHz / sampleRate
	for l.phase >= 1.0 {
		l.phase -= 1.0
	}
	return v
}

// Apply multiplies the signal in place by the LFO, advancing its phase
// one step per sample.
func (l *LFO) Apply(signal []float64, sampleRate int) {
	sr := float64(sampleRate)
	for i := range signal {
		signal[i] *= l.Sample(sr)
	}
}

// Reset zeros the LFO phase.
func (l *LFO) Reset() {
	l.phase = 0
}
