package voice

import (
	"math/rand"

	"github.com/ahk/cuecomposer/internal/director"
	"github.com/ahk/cuecomposer/internal/synth"
)

// Chord is the comping voice: spread-voiced jazz chords with an
// electric-piano character (sine plus half-amplitude second harmonic,
// gentle tremolo).
type Chord struct {
	sampleRate int
	osc        *synth.Oscillator
}

func NewChord(sampleRate int, rng *rand.Rand) *Chord {
	return &Chord{sampleRate: sampleRate, osc: synth.NewOscillator(sampleRate, rng)}
}

// Voicing returns the chord tones for root and chord type in spread
// voicing: root an octave down, upper extensions raised an octave.
func Voicing(root int, chord director.ChordType) []int {
	intervals := director.ChordIntervals(chord)
	notes := []int{root - 12}
	for i, interval := range intervals[1:] {
		shift := 0
		if i+1 > 2 {
			shift = 12
		}
		notes = append(notes, root+interval+shift)
	}
	return notes
}

// Render synthesizes one chord hit and its per-note event pairs on
// channel 1.
func (c *Chord) Render(root int, chord director.ChordType, duration float64, p director.Params, offset int) ([]float64, []Event) {
	notes := Voicing(root, chord)

	signal := make([]float64, int(float64(c.sampleRate)*duration))
	for _, note := range notes {
		freq := synth.NoteFreq(note)
		sine := c.osc.Render(synth.WaveSine, freq, duration, 0.15)
		harm := c.osc.Render(synth.WaveSine, freq*2, duration, 0.05)
		for i := 0; i < len(sine) && i < len(signal); i++ {
			signal[i] += sine[i] + harm[i]
		}
	}

	synth.NewLFO(0.1, 4).Apply(signal, c.sampleRate)

	env := synth.ADSR(duration, 0.01, 0.2, 0.5, 0.3, c.sampleRate)
	signal = signal[:len(env)]
	for i := range signal {
		signal[i] *= env[i] * p.Intensity * 0.4
	}

	durSamples := int(duration * float64(c.sampleRate))
	velocity := velocityFor(p.Intensity)
	var events []Event
	for _, note := range notes {
		events = append(events, notePair(offset, durSamples, note, velocity, ChannelChord)...)
	}
	return signal, events
}
