package voice

import (
	"math/rand"

	"github.com/ahk/cuecomposer/internal/director"
	"github.com/ahk/cuecomposer/internal/synth"
)

// Lead is the melodic voice: a warm triangle+sine blend with slight
// vibrato, articulated by the scene character.
type Lead struct {
	sampleRate int
	osc        *synth.Oscillator
}

func NewLead(sampleRate int, rng *rand.Rand) *Lead {
	return &Lead{sampleRate: sampleRate, osc: synth.NewOscillator(sampleRate, rng)}
}

// Render synthesizes one lead note and its event pair on channel 0.
func (l *Lead) Render(note int, duration float64, p director.Params, offset int) ([]float64, []Event) {
	freq := synth.NoteFreq(note)

	tri := l.osc.Render(synth.WaveTriangle, freq, duration, 0.4)
	sine := l.osc.Render(synth.WaveSine, freq, duration, 0.3)

	signal := make([]float64, len(tri))
	for i := range signal {
		signal[i] = tri[i] + sine[i]
	}
	synth.NewLFO(0.003, 5).Apply(signal, l.sampleRate)

	var env []float64
	switch p.Character {
	case director.CharStaccato:
		env = synth.ADSR(duration, 0.005, 0.05, 0.3, 0.05, l.sampleRate)
	case director.CharFlowing:
		env = synth.ADSR(duration, 0.1, 0.2, 0.8, 0.2, l.sampleRate)
	default:
		env = synth.ADSR(duration, 0.02, 0.1, 0.6, 0.1, l.sampleRate)
	}
	signal = signal[:len(env)]
	for i := range signal {
		signal[i] *= env[i]
	}

	// Lowpass for warmth; brighter scenes open the filter.
	signal = synth.Lowpass(signal, 3000+2000*p.Intensity, l.sampleRate)

	for i := range signal {
		signal[i] *= p.Intensity * 0.5
	}

	durSamples := int(duration * float64(l.sampleRate))
	events := notePair(offset, durSamples, note, velocityFor(p.Intensity), ChannelLead)
	return signal, events
}
