package voice

import (
	"math/rand"

	"github.com/ahk/cuecomposer/internal/director"
	"github.com/ahk/cuecomposer/internal/synth"
)

// Bass is the sub-bass voice: a strong sine fundamental one octave below
// the written note with a quieter sawtooth layer for grit.
type Bass struct {
	sampleRate int
	osc        *synth.Oscillator
}

func NewBass(sampleRate int, rng *rand.Rand) *Bass {
	return &Bass{sampleRate: sampleRate, osc: synth.NewOscillator(sampleRate, rng)}
}

// Render synthesizes one bass note. The event pair carries the original
// note number, not the transposed one, on channel 2.
func (b *Bass) Render(note int, duration float64, p director.Params, offset int) ([]float64, []Event) {
	freq := synth.NoteFreq(note - 12)

	sub := b.osc.Render(synth.WaveSine, freq, duration, 0.6)
	grit := b.osc.Render(synth.WaveSaw, freq*2, duration, 0.15)

	signal := make([]float64, len(sub))
	for i := range signal {
		signal[i] = sub[i] + grit[i]
	}

	// Tight envelope for punch.
	env := synth.ADSR(duration, 0.005, 0.1, 0.4, 0.1, b.sampleRate)
	signal = signal[:len(env)]
	for i := range signal {
		signal[i] *= env[i]
	}

	signal = synth.Lowpass(signal, 200+100*p.Intensity, b.sampleRate)
	for i := range signal {
		signal[i] *= p.Intensity * 0.7
	}

	durSamples := int(duration * float64(b.sampleRate))
	events := notePair(offset, durSamples, note, velocityFor(p.Intensity), ChannelBass)
	return signal, events
}
