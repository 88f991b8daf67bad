// Package voice implements the four instrument parts: lead, chord, bass,
// and drums. Each render call produces a mono sample buffer plus the
// matching onset/release event pairs for MIDI dispatch.
package voice

// Fixed channel assignment for the ensemble.
const (
	ChannelLead  = 0
	ChannelChord = 1
	ChannelBass  = 2
	ChannelDrums = 3
)

// Event marks a note beginning or ending at a sample position within the
// current bar.
type Event struct {
	SamplePos int
	Note      int
	Velocity  int
	Channel   int
	On        bool
}

// notePair returns the onset/release pair for one note.
func notePair(offset, durSamples, note, velocity, channel int) []Event {
	return []Event{
		{SamplePos: offset, Note: note, Velocity: velocity, Channel: channel, On: true},
		{SamplePos: offset + durSamples, Note: note, Velocity: velocity, Channel: channel, On: false},
	}
}

func velocityFor(intensity float64) int {
	return int(64 + 63*intensity)
}
