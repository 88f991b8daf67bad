// Package pattern turns a parameter snapshot into one bar of mixed audio
// plus a time-sorted note event list, one call per bar.
package pattern

import (
	"math"
	"math/rand"
	"sort"

	"github.com/ahk/cuecomposer/internal/director"
	"github.com/ahk/cuecomposer/internal/voice"
)

// Generator orchestrates the four voices over a fixed four-beat bar.
// The only persistent musical state is the bar counter and the lead's
// melodic context note.
type Generator struct {
	sampleRate int
	beatDur    float64 // base beat duration in seconds, before tempo scaling
	rng        *rand.Rand

	lead  *voice.Lead
	chord *voice.Chord
	bass  *voice.Bass
	drums *voice.Drums

	barCount int
	lastNote int
}

// New creates a generator for the given sample rate and base tempo.
// rng drives all pattern randomness; pass nil for a time-seeded source.
func New(sampleRate int, bpm float64, rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &Generator{
		sampleRate: sampleRate,
		beatDur:    60.0 / bpm,
		rng:        rng,
		lead:       voice.NewLead(sampleRate, rng),
		chord:      voice.NewChord(sampleRate, rng),
		bass:       voice.NewBass(sampleRate, rng),
		drums:      voice.NewDrums(sampleRate, rng),
		lastNote:   60,
	}
}

// BarCount returns the number of bars generated so far.
func (g *Generator) BarCount() int { return g.barCount }

// LastNote returns the lead's melodic context note.
func (g *Generator) LastNote() int { return g.lastNote }

// SetLastNote seeds the lead's melodic context.
func (g *Generator) SetLastNote(note int) { g.lastNote = note }

// BarDuration returns the effective bar length in seconds under the
// given tempo multiplier.
func (g *Generator) BarDuration(tempoMult float64) float64 {
	return g.beatDur * 4 / tempoMult
}

// GenerateBar renders one bar for the given parameter snapshot. The
// returned events are sorted by sample position.
func (g *Generator) GenerateBar(p director.Params) ([]float64, []voice.Event) {
	duration := g.BarDuration(p.TempoMult)

	leadSig, leadEvents := g.generateLead(duration, p)
	chordSig, chordEvents := g.generateChords(duration, p)
	bassSig, bassEvents := g.generateBass(duration, p)
	drumSig, drumEvents := g.generateDrums(duration, p)

	events := make([]voice.Event, 0, len(leadEvents)+len(chordEvents)+len(bassEvents)+len(drumEvents))
	events = append(events, leadEvents...)
	events = append(events, chordEvents...)
	events = append(events, bassEvents...)
	events = append(events, drumEvents...)
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].SamplePos < events[j].SamplePos
	})

	maxLen := len(leadSig)
	for _, s := range [][]float64{chordSig, bassSig, drumSig} {
		if len(s) > maxLen {
			maxLen = len(s)
		}
	}
	mix := make([]float64, maxLen)
	for _, s := range [][]float64{leadSig, chordSig, bassSig, drumSig} {
		for i := range s {
			mix[i] += s[i]
		}
	}

	// Soft analog-style clipping keeps the mix inside [-0.9, 0.9].
	for i := range mix {
		mix[i] = math.Tanh(mix[i]*0.8) * 0.9
	}

	g.barCount++
	return mix, events
}

// ScaleNotes enumerates the scale tones across three octaves around the
// root.
func ScaleNotes(root int, scale director.Scale) []int {
	intervals := director.ScaleIntervals(scale)
	var notes []int
	for octave := -1; octave < 2; octave++ {
		for _, interval := range intervals {
			notes = append(notes, root+interval+octave*12)
		}
	}
	return notes
}

func (g *Generator) generateLead(duration float64, p director.Params) ([]float64, []voice.Event) {
	samples := int(float64(g.sampleRate) * duration)
	signal := make([]float64, samples)
	var events []voice.Event

	scaleNotes := ScaleNotes(p.RootNote, p.Scale)

	numNotes := int(math.Round(4 * p.Density * p.TempoMult))
	if numNotes < 1 {
		numNotes = 1
	}
	noteDur := duration / float64(numNotes)

	current := g.lastNote
	for i := 0; i < numNotes; i++ {
		var note int
		if g.rng.Float64() < 0.7 {
			// Step motion from the nearest scale tone.
			steps := []int{-1, 0, 1, 2}
			step := steps[g.rng.Intn(len(steps))]
			idx := nearestIndex(scaleNotes, current)
			idx += step
			if idx < 0 {
				idx = 0
			}
			if idx > len(scaleNotes)-1 {
				idx = len(scaleNotes) - 1
			}
			note = scaleNotes[idx]
		} else {
			note = scaleNotes[g.rng.Intn(len(scaleNotes))]
		}

		// Rest probability rises as density falls.
		if g.rng.Float64() > p.Density {
			continue
		}

		start := int(float64(i) * noteDur * float64(g.sampleRate))
		noteSig, noteEvents := g.lead.Render(note, noteDur*0.9, p, start)
		events = append(events, noteEvents...)
		mixAt(signal, noteSig, start)

		current = note
	}

	g.lastNote = current
	return signal, events
}

// compingGrid is the syncopated chord hit pattern, in beats.
var compingGrid = []float64{0, 0.5, 1.5, 2, 3, 3.5}

func (g *Generator) generateChords(duration float64, p director.Params) ([]float64, []voice.Event) {
	samples := int(float64(g.sampleRate) * duration)
	signal := make([]float64, samples)
	var events []voice.Event

	beatSamples := int(float64(g.sampleRate) * g.beatDur / p.TempoMult)

	for _, beatPos := range compingGrid {
		if g.rng.Float64() > p.Density {
			continue
		}
		start := int(beatPos * float64(beatSamples))
		if start >= samples {
			continue
		}
		chordDur := g.beatDur * (0.3 + 0.3*g.rng.Float64())
		chordSig, chordEvents := g.chord.Render(p.RootNote, p.Chord, chordDur, p, start)
		events = append(events, chordEvents...)
		mixAt(signal, chordSig, start)
	}
	return signal, events
}

type bassHit struct {
	beat     float64
	interval int // semitones above root
	dur      float64
}

// bassGrid alternates root and fifth on a syncopated four-hit pattern.
var bassGrid = []bassHit{
	{0, 0, 0.2},
	{1.5, 7, 0.15},
	{2.5, 0, 0.2},
	{3, 7, 0.1},
}

func (g *Generator) generateBass(duration float64, p director.Params) ([]float64, []voice.Event) {
	samples := int(float64(g.sampleRate) * duration)
	signal := make([]float64, samples)
	var events []voice.Event

	beatSamples := int(float64(g.sampleRate) * g.beatDur / p.TempoMult)

	for _, hit := range bassGrid {
		// Saturating: density above 0.7 makes every hit fire.
		if g.rng.Float64() > p.Density+0.3 {
			continue
		}
		start := int(hit.beat * float64(beatSamples))
		if start >= samples {
			continue
		}
		bassSig, bassEvents := g.bass.Render(p.RootNote+hit.interval, hit.dur, p, start)
		events = append(events, bassEvents...)
		mixAt(signal, bassSig, start)
	}
	return signal, events
}

var (
	kickGrid  = []float64{0, 2.75, 3.5}
	snareGrid = []float64{1, 3}
)

func (g *Generator) generateDrums(duration float64, p director.Params) ([]float64, []voice.Event) {
	samples := int(float64(g.sampleRate) * duration)
	signal := make([]float64, samples)
	var events []voice.Event

	beatSamples := int(float64(g.sampleRate) * g.beatDur / p.TempoMult)

	for _, beatPos := range kickGrid {
		start := int(beatPos * float64(beatSamples))
		if start >= samples {
			continue
		}
		kick, kickEvents := g.drums.Kick(start)
		events = append(events, kickEvents...)
		mixScaledAt(signal, kick, start, p.Intensity)
	}

	for _, beatPos := range snareGrid {
		start := int(beatPos * float64(beatSamples))
		if start >= samples {
			continue
		}
		snare, snareEvents := g.drums.Snare(start)
		events = append(events, snareEvents...)
		mixScaledAt(signal, snare, start, p.Intensity)
	}

	// Hats on every half beat, denser scenes saturating to constant 8ths.
	for i := 0; i < int(duration/(g.beatDur/2)); i++ {
		if g.rng.Float64() > p.Density+0.2 {
			continue
		}
		start := i * beatSamples / 2
		if start >= samples {
			continue
		}
		open := g.rng.Float64() < 0.1
		hat, hatEvents := g.drums.HiHat(open, start)
		events = append(events, hatEvents...)
		mixScaledAt(signal, hat, start, p.Intensity*0.7)
	}

	return signal, events
}

// nearestIndex returns the index of the scale tone closest to note.
func nearestIndex(notes []int, note int) int {
	best := 0
	bestDist := math.MaxInt
	for i, n := range notes {
		d := n - note
		if d < 0 {
			d = -d
		}
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

func mixAt(dst, src []float64, offset int) {
	for i := 0; i < len(src) && offset+i < len(dst); i++ {
		dst[offset+i] += src[i]
	}
}

func mixScaledAt(dst, src []float64, offset int, gain float64) {
	for i := 0; i < len(src) && offset+i < len(dst); i++ {
		dst[offset+i] += src[i] * gain
	}
}
