package audio

import (
	"github.com/ahk/cuecomposer/internal/voice"
)

// NoteSender receives note events as their chunk is delivered. A nil
// sender disables MIDI dispatch without touching the audio path.
type NoteSender interface {
	NoteOn(channel, note, velocity int)
	NoteOff(channel, note, velocity int)
}

// Chunker splits bar buffers into fixed-size chunks for the queue and
// dispatches each bar's pre-sorted events as the chunk covering their
// sample position is pushed.
type Chunker struct {
	chunkSize int
	queue     *Queue
	sender    NoteSender
}

func NewChunker(chunkSize int, queue *Queue, sender NoteSender) *Chunker {
	return &Chunker{chunkSize: chunkSize, queue: queue, sender: sender}
}

// PushBar copies the bar into chunk-sized float32 blocks (final chunk
// zero-padded) and enqueues them, emitting events in position order. The
// event cursor guarantees each event is dispatched exactly once even when
// chunks are dropped. Returns the number of dropped chunks.
func (c *Chunker) PushBar(samples []float64, events []voice.Event) int {
	dropped := 0
	cursor := 0

	for start := 0; start < len(samples); start += c.chunkSize {
		chunkEnd := start + c.chunkSize

		if c.sender != nil {
			for cursor < len(events) && events[cursor].SamplePos < chunkEnd {
				ev := events[cursor]
				if ev.On {
					c.sender.NoteOn(ev.Channel, ev.Note, ev.Velocity)
				} else {
					c.sender.NoteOff(ev.Channel, ev.Note, ev.Velocity)
				}
				cursor++
			}
		}

		chunk := make([]float32, c.chunkSize)
		end := chunkEnd
		if end > len(samples) {
			end = len(samples)
		}
		for i := start; i < end; i++ {
			chunk[i-start] = float32(samples[i])
		}
		if !c.queue.Push(chunk) {
			dropped++
		}
	}

	// Releases scheduled past the end of the bar buffer.
	if c.sender != nil {
		for ; cursor < len(events); cursor++ {
			ev := events[cursor]
			if ev.On {
				c.sender.NoteOn(ev.Channel, ev.Note, ev.Velocity)
			} else {
				c.sender.NoteOff(ev.Channel, ev.Note, ev.Velocity)
			}
		}
	}

	return dropped
}
