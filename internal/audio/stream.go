package audio

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"time"

	ebitaudio "github.com/hajimehoshi/ebiten/v2/audio"
)

// SampleSource fills an interleaved stereo float32 buffer on the audio
// thread's cadence. Implementations must never block.
type SampleSource interface {
	Process(dst []float32)
}

// QueueSource adapts the chunk queue to a SampleSource. The mono chunks
// are duplicated to both stereo channels; an empty queue yields silence.
type QueueSource struct {
	queue   *Queue
	pending []float32
}

func NewQueueSource(queue *Queue) *QueueSource {
	return &QueueSource{queue: queue}
}

func (s *QueueSource) Process(dst []float32) {
	frames := len(dst) / 2
	for i := 0; i < frames; i++ {
		if len(s.pending) == 0 {
			if chunk, ok := s.queue.Pop(); ok {
				s.pending = chunk
			}
		}
		var v float32
		if len(s.pending) > 0 {
			v = s.pending[0]
			s.pending = s.pending[1:]
		}
		dst[2*i] = v
		dst[2*i+1] = v
	}
}

// StreamReader exposes a SampleSource as the float32 little-endian stream
// the audio context consumes.
type StreamReader struct {
	mu     sync.Mutex
	source SampleSource
	buf    []float32
}

func NewStreamReader(source SampleSource) *StreamReader {
	return &StreamReader{source: source}
}

func (r *StreamReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	frames := len(p) / 8
	if frames == 0 {
		return 0, nil
	}
	need := frames * 2
	if cap(r.buf) < need {
		r.buf = make([]float32, need)
	}
	r.buf = r.buf[:need]
	r.source.Process(r.buf)
	for i := 0; i < need; i++ {
		u := math.Float32bits(r.buf[i])
		binary.LittleEndian.PutUint32(p[i*4:], u)
	}
	return frames * 8, nil
}

func (r *StreamReader) Close() error { return nil }

// Player owns the platform audio output for one run.
type Player struct {
	player *ebitaudio.Player
	reader *StreamReader
}

var (
	audioContextOnce sync.Once
	audioContext     *ebitaudio.Context
	audioSampleRate  int
)

func sharedAudioContext(sampleRate int) (*ebitaudio.Context, error) {
	audioContextOnce.Do(func() {
		audioSampleRate = sampleRate
		audioContext = ebitaudio.NewContext(sampleRate)
	})
	if audioSampleRate != sampleRate {
		return nil, fmt.Errorf("audio context already initialized at %d Hz (requested %d Hz)", audioSampleRate, sampleRate)
	}
	return audioContext, nil
}

// NewPlayer opens the audio device and begins pulling from source.
// Failure here is fatal to the run unless playback was disabled.
func NewPlayer(sampleRate int, source SampleSource) (*Player, error) {
	ctx, err := sharedAudioContext(sampleRate)
	if err != nil {
		return nil, err
	}
	reader := NewStreamReader(source)
	pl, err := ctx.NewPlayerF32(reader)
	if err != nil {
		return nil, fmt.Errorf("open audio output: %w", err)
	}
	return &Player{player: pl, reader: reader}, nil
}

func (p *Player) Play()  { p.player.Play() }
func (p *Player) Pause() { p.player.Pause() }

func (p *Player) IsPlaying() bool { return p.player.IsPlaying() }

// Position returns the current output position of the audio driver.
func (p *Player) Position() time.Duration { return p.player.Position() }

func (p *Player) Stop() error {
	p.player.Pause()
	p.player.Close()
	return p.reader.Close()
}
