package voice

import (
	"math"
	"math/rand"
	"testing"

	"github.com/ahk/cuecomposer/internal/director"
)

const testRate = 44100

func testParams() director.Params {
	return director.Params{
		RootNote:  58,
		Chord:     director.ChordMaj7,
		Scale:     director.ScaleDorian,
		Density:   0.5,
		Intensity: 0.7,
		TempoMult: 1.0,
		Character: director.CharNeutral,
	}
}

func eventDurSamples(events []Event) int {
	return events[1].SamplePos - events[0].SamplePos
}

func TestLeadSignalMatchesEventDuration(t *testing.T) {
	lead := NewLead(testRate, rand.New(rand.NewSource(1)))
	sig, events := lead.Render(60, 0.25, testParams(), 100)

	if len(events) != 2 {
		t.Fatalf("got %d events, want onset/release pair", len(events))
	}
	if d := eventDurSamples(events) - len(sig); d < -1 || d > 1 {
		t.Errorf("signal %d samples vs event span %d", len(sig), eventDurSamples(events))
	}
	if !events[0].On || events[1].On {
		t.Error("expected onset then release")
	}
	if events[0].Channel != ChannelLead || events[1].Channel != ChannelLead {
		t.Error("lead events must be on channel 0")
	}
	if events[0].SamplePos != 100 {
		t.Errorf("onset at %d, want 100", events[0].SamplePos)
	}
	accent := 63 * 0.7
	if events[0].Velocity != 64+int(accent) {
		t.Errorf("velocity %d", events[0].Velocity)
	}
}

func TestLeadCharacterChangesEnvelope(t *testing.T) {
	lead := NewLead(testRate, rand.New(rand.NewSource(1)))

	p := testParams()
	p.Character = director.CharStaccato
	staccato, _ := lead.Render(60, 0.5, p, 0)
	p.Character = director.CharFlowing
	flowing, _ := lead.Render(60, 0.5, p, 0)

	// Staccato's low sustain leaves much less energy mid-note.
	mid := len(staccato) / 2
	window := testRate / 100
	if rms(staccato[mid:mid+window]) >= rms(flowing[mid:mid+window]) {
		t.Error("staccato should be quieter than flowing mid-note")
	}
}

func TestChordVoicingSpread(t *testing.T) {
	cases := []struct {
		chord director.ChordType
		root  int
		want  []int
	}{
		{director.ChordMaj7, 60, []int{48, 64, 67, 83}},
		{director.ChordMin9, 58, []int{46, 61, 65, 80, 84}},
		{director.ChordType("nonsense"), 60, []int{48, 64, 67, 82}}, // dom7 fallback
	}
	for _, tc := range cases {
		got := Voicing(tc.root, tc.chord)
		if len(got) != len(tc.want) {
			t.Fatalf("%s: voicing %v, want %v", tc.chord, got, tc.want)
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("%s: voicing %v, want %v", tc.chord, got, tc.want)
				break
			}
		}
	}
}

func TestChordEmitsPairPerNote(t *testing.T) {
	chord := NewChord(testRate, rand.New(rand.NewSource(1)))
	sig, events := chord.Render(58, director.ChordMin11, 0.3, testParams(), 0)

	notes := len(director.ChordIntervals(director.ChordMin11))
	if len(events) != notes*2 {
		t.Fatalf("got %d events, want %d", len(events), notes*2)
	}
	for _, ev := range events {
		if ev.Channel != ChannelChord {
			t.Fatalf("chord event on channel %d", ev.Channel)
		}
	}
	if want := int(0.3 * testRate); len(sig) != want {
		t.Errorf("signal length %d, want %d", len(sig), want)
	}
}

func TestBassEventsKeepOriginalNote(t *testing.T) {
	bass := NewBass(testRate, rand.New(rand.NewSource(1)))
	sig, events := bass.Render(58, 0.2, testParams(), 0)

	if events[0].Note != 58 {
		t.Errorf("bass event note %d, want untransposed 58", events[0].Note)
	}
	if events[0].Channel != ChannelBass {
		t.Errorf("bass on channel %d", events[0].Channel)
	}
	if d := eventDurSamples(events) - len(sig); d < -1 || d > 1 {
		t.Errorf("signal %d vs event span %d", len(sig), eventDurSamples(events))
	}
}

func TestDrumHits(t *testing.T) {
	drums := NewDrums(testRate, rand.New(rand.NewSource(1)))

	t.Run("kick", func(t *testing.T) {
		sig, events := drums.Kick(0)
		if events[0].Note != NoteKick || events[0].Channel != ChannelDrums {
			t.Errorf("kick event %+v", events[0])
		}
		if len(sig) != int(kickDuration*testRate) {
			t.Errorf("kick length %d", len(sig))
		}
		// Amplitude decays: early peak should exceed late peak.
		if peak(sig[:len(sig)/4]) <= peak(sig[3*len(sig)/4:]) {
			t.Error("kick amplitude should decay")
		}
	})

	t.Run("snare", func(t *testing.T) {
		sig, events := drums.Snare(0)
		if events[0].Note != NoteSnare {
			t.Errorf("snare note %d", events[0].Note)
		}
		if peak(sig) == 0 {
			t.Error("snare produced silence")
		}
	})

	t.Run("hihat open vs closed", func(t *testing.T) {
		closed, closedEvents := drums.HiHat(false, 0)
		open, openEvents := drums.HiHat(true, 0)
		if closedEvents[0].Note != NoteHiHat || openEvents[0].Note != NoteOpenHiHat {
			t.Error("hi-hat note numbers wrong")
		}
		if len(open) != 3*len(closed) {
			t.Errorf("open hat %d samples, want 3x closed %d", len(open), len(closed))
		}
	})
}

func TestEventsScaleOffset(t *testing.T) {
	drums := NewDrums(testRate, rand.New(rand.NewSource(1)))
	_, events := drums.Kick(5000)
	if events[0].SamplePos != 5000 {
		t.Errorf("onset at %d, want 5000", events[0].SamplePos)
	}
	if events[1].SamplePos <= events[0].SamplePos {
		t.Error("release must follow onset")
	}
}

func peak(sig []float64) float64 {
	var p float64
	for _, s := range sig {
		if a := math.Abs(s); a > p {
			p = a
		}
	}
	return p
}

func rms(sig []float64) float64 {
	var sum float64
	for _, s := range sig {
		sum += s * s
	}
	return math.Sqrt(sum / float64(len(sig)))
}
