package voice

import (
	"math"
	"math/rand"

	"github.com/ahk/cuecomposer/internal/synth"
)

// General-MIDI drum note numbers used for the event stream.
const (
	NoteKick      = 36
	NoteSnare     = 38
	NoteHiHat     = 42
	NoteOpenHiHat = 46
	drumVelocity  = 100
	hiHatVelocity = 80
	kickDuration  = 0.15
	snareDuration = 0.15
	hiHatDuration = 0.05
)

// Drums generates the three percussion hits on channel 3.
type Drums struct {
	sampleRate int
	osc        *synth.Oscillator
}

func NewDrums(sampleRate int, rng *rand.Rand) *Drums {
	return &Drums{sampleRate: sampleRate, osc: synth.NewOscillator(sampleRate, rng)}
}

// Kick renders a punchy kick: an exponential pitch sweep from ~200 Hz
// down to 50 Hz with an exponential amplitude decay.
func (d *Drums) Kick(offset int) ([]float64, []Event) {
	sr := float64(d.sampleRate)
	n := int(sr * kickDuration)
	signal := make([]float64, n)

	phase := 0.0
	for i := range signal {
		t := float64(i) / sr
		freq := 150*math.Exp(-30*t) + 50
		phase += twoPi * freq / sr
		signal[i] = 0.8 * math.Sin(phase) * math.Exp(-8*t)
	}

	events := notePair(offset, n, NoteKick, drumVelocity, ChannelDrums)
	return signal, events
}

// Snare renders a 200 Hz decaying tone plus highpass-filtered noise.
func (d *Drums) Snare(offset int) ([]float64, []Event) {
	sr := float64(d.sampleRate)
	n := int(sr * snareDuration)

	noise := d.osc.Render(synth.WaveNoise, 0, snareDuration, 0.4)
	for i := range noise {
		t := float64(i) / sr
		noise[i] *= math.Exp(-15 * t)
	}
	noise = synth.Highpass(noise, 2000, d.sampleRate)

	signal := make([]float64, n)
	for i := range signal {
		t := float64(i) / sr
		tone := 0.3 * math.Sin(twoPi*200*t) * math.Exp(-20*t)
		signal[i] = tone + noise[i]
	}

	events := notePair(offset, n, NoteSnare, drumVelocity, ChannelDrums)
	return signal, events
}

// HiHat renders filtered noise; the open variant is three times longer
// with a six times slower decay.
func (d *Drums) HiHat(open bool, offset int) ([]float64, []Event) {
	dur := hiHatDuration
	decay := 30.0
	note := NoteHiHat
	if open {
		dur *= 3
		decay = 5
		note = NoteOpenHiHat
	}

	sr := float64(d.sampleRate)
	signal := d.osc.Render(synth.WaveNoise, 0, dur, 0.3)
	signal = synth.Highpass(signal, 7000, d.sampleRate)
	for i := range signal {
		t := float64(i) / sr
		signal[i] *= math.Exp(-decay * t)
	}

	events := notePair(offset, int(sr*dur), note, hiHatVelocity, ChannelDrums)
	return signal, events
}

const twoPi = math.Pi * 2
