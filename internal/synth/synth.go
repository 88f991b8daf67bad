// Package synth provides the mono synthesis primitives the voices are
// built from: oscillators, an ADSR envelope, one-pole filters, and pitch
// conversion.
package synth

import (
	"math"
	"math/rand"
)

const twoPi = math.Pi * 2

// Waveform selects an oscillator shape.
type Waveform int

const (
	WaveSine Waveform = iota
	WaveSaw
	WaveSquare
	WaveTriangle
	WaveNoise
)

// Oscillator renders basic waveforms into sample buffers.
type Oscillator struct {
	sampleRate float64
	rng        *rand.Rand
}

// NewOscillator creates an oscillator at the given sample rate. rng feeds
// the noise waveform; pass nil to use a time-seeded source.
func NewOscillator(sampleRate int, rng *rand.Rand) *Oscillator {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &Oscillator{sampleRate: float64(sampleRate), rng: rng}
}

// Render generates duration seconds of the waveform at freq Hz scaled by
// amp. Noise ignores freq.
func (o *Oscillator) Render(w Waveform, freq, duration, amp float64) []float64 {
	n := int(o.sampleRate * duration)
	out := make([]float64, n)
	switch w {
	case WaveSine:
		for i := range out {
			t := float64(i) / o.sampleRate
			out[i] = amp * math.Sin(twoPi*freq*t)
		}
	case WaveSaw:
		for i := range out {
			t := float64(i) / o.sampleRate
			phase := math.Mod(t*freq, 1)
			out[i] = amp * (2*phase - 1)
		}
	case WaveSquare:
		for i := range out {
			t := float64(i) / o.sampleRate
			s := math.Sin(twoPi * freq * t)
			if s >= 0 {
				out[i] = amp
			} else {
				out[i] = -amp
			}
		}
	case WaveTriangle:
		for i := range out {
			t := float64(i) / o.sampleRate
			phase := math.Mod(t*freq, 1)
			out[i] = amp * (2*math.Abs(2*phase-1) - 1)
		}
	case WaveNoise:
		for i := range out {
			out[i] = amp * (o.rng.Float64()*2 - 1)
		}
	}
	return out
}

// NoteFreq converts a MIDI note number to its frequency in Hz.
func NoteFreq(note int) float64 {
	return 440.0 * math.Pow(2, float64(note-69)/12.0)
}

// ADSR generates an attack/decay/sustain/release envelope over duration
// seconds. When the stage durations do not fit inside the note, the
// envelope degrades to a symmetric ramp up and down over the whole note.
func ADSR(duration, attack, decay, sustain, release float64, sampleRate int) []float64 {
	n := int(float64(sampleRate) * duration)
	env := make([]float64, n)

	attackN := int(float64(sampleRate) * attack)
	decayN := int(float64(sampleRate) * decay)
	releaseN := int(float64(sampleRate) * release)
	sustainN := n - attackN - decayN - releaseN

	if sustainN < 0 {
		half := n / 2
		fillRamp(env[:half], 0, 1)
		fillRamp(env[half:], 1, 0)
		return env
	}

	i := 0
	fillRamp(env[i:i+attackN], 0, 1)
	i += attackN
	fillRamp(env[i:i+decayN], 1, sustain)
	i += decayN
	for j := 0; j < sustainN; j++ {
		env[i+j] = sustain
	}
	i += sustainN
	fillRamp(env[i:], sustain, 0)
	return env
}

func fillRamp(dst []float64, from, to float64) {
	n := len(dst)
	if n == 0 {
		return
	}
	if n == 1 {
		dst[0] = from
		return
	}
	step := (to - from) / float64(n-1)
	for i := range dst {
		dst[i] = from + step*float64(i)
	}
}

// Lowpass applies a one-pole lowpass filter with the given cutoff.
// Filter state starts fresh on every call.
func Lowpass(signal []float64, cutoff float64, sampleRate int) []float64 {
	if len(signal) == 0 {
		return nil
	}
	rc := 1.0 / (twoPi * cutoff)
	dt := 1.0 / float64(sampleRate)
	alpha := dt / (rc + dt)

	out := make([]float64, len(signal))
	out[0] = signal[0]
	for i := 1; i < len(signal); i++ {
		out[i] = out[i-1] + alpha*(signal[i]-out[i-1])
	}
	return out
}

// Highpass applies a one-pole highpass filter with the given cutoff.
// Filter state starts fresh on every call.
func Highpass(signal []float64, cutoff float64, sampleRate int) []float64 {
	if len(signal) == 0 {
		return nil
	}
	rc := 1.0 / (twoPi * cutoff)
	dt := 1.0 / float64(sampleRate)
	alpha := rc / (rc + dt)

	out := make([]float64, len(signal))
	out[0] = signal[0]
	for i := 1; i < len(signal); i++ {
		out[i] = alpha * (out[i-1] + signal[i] - signal[i-1])
	}
	return out
}
