// Package cuecomposer converts a stream of scene-description tags into a
// live four-voice performance: audio to the platform output device,
// optional MIDI to an external port, and a score log on stdout.
package cuecomposer

import (
	"bufio"
	"context"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/ahk/cuecomposer/internal/audio"
	"github.com/ahk/cuecomposer/internal/config"
	"github.com/ahk/cuecomposer/internal/director"
	"github.com/ahk/cuecomposer/internal/midiout"
	"github.com/ahk/cuecomposer/internal/pattern"
	"github.com/ahk/cuecomposer/internal/record"
	"github.com/ahk/cuecomposer/internal/score"
)

type EngineOption func(*engineConfig)

type engineConfig struct {
	input       io.Reader
	scoreWriter io.Writer
	logger      *log.Logger
	randSource  rand.Source
	midiPort    string
	noteSender  audio.NoteSender
}

func defaultEngineConfig() engineConfig {
	return engineConfig{
		input:       os.Stdin,
		scoreWriter: os.Stdout,
		logger:      log.New(os.Stderr, "", log.LstdFlags),
	}
}

// WithInput sets the tag stream source (default stdin).
func WithInput(r io.Reader) EngineOption {
	return func(cfg *engineConfig) { cfg.input = r }
}

// WithScoreWriter sets the score log destination (default stdout).
func WithScoreWriter(w io.Writer) EngineOption {
	return func(cfg *engineConfig) { cfg.scoreWriter = w }
}

// WithLogger sets the diagnostic logger (default stderr).
func WithLogger(l *log.Logger) EngineOption {
	return func(cfg *engineConfig) { cfg.logger = l }
}

// WithRandSource seeds pattern randomness, for reproducible runs.
func WithRandSource(src rand.Source) EngineOption {
	return func(cfg *engineConfig) { cfg.randSource = src }
}

// WithMIDIPort enables MIDI dispatch to the named output port. An
// unavailable port is logged and skipped, never fatal.
func WithMIDIPort(name string) EngineOption {
	return func(cfg *engineConfig) { cfg.midiPort = name }
}

// WithNoteSender installs a note sink directly, bypassing port discovery.
// Used by tests and embedders with their own MIDI stack.
func WithNoteSender(s audio.NoteSender) EngineOption {
	return func(cfg *engineConfig) { cfg.noteSender = s }
}

// Engine is the composer run loop: it assembles input frames, fires the
// pattern generator once per bar, and feeds the delivery pipeline.
type Engine struct {
	cfg    config.Config
	logger *log.Logger
	input  io.Reader

	state    *director.State
	parser   *director.Parser
	gen      *pattern.Generator
	queue    *audio.Queue
	chunker  *audio.Chunker
	player   *audio.Player
	midi     *midiout.Port
	recorder *record.Recorder
	scoreLog *score.Logger
}

// New builds an engine from the configuration. With playback enabled, an
// unavailable audio device is a fatal construction error.
func New(cfg config.Config, opts ...EngineOption) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ec := defaultEngineConfig()
	for _, opt := range opts {
		opt(&ec)
	}
	if ec.randSource == nil {
		ec.randSource = rand.NewSource(time.Now().UnixNano())
	}

	e := &Engine{
		cfg:      cfg,
		logger:   ec.logger,
		input:    ec.input,
		state:    director.NewState(),
		parser:   director.NewParser(),
		gen:      pattern.New(cfg.SampleRate, cfg.BPM, rand.New(ec.randSource)),
		queue:    audio.NewQueue(cfg.QueueDepth, audio.DefaultPushWait),
		scoreLog: score.NewLogger(ec.scoreWriter),
	}

	sender := ec.noteSender
	if sender == nil && ec.midiPort != "" {
		port, err := midiout.Open(ec.midiPort)
		if err != nil {
			e.logger.Printf("MIDI output disabled: %v", err)
		} else {
			e.logger.Printf("MIDI output connected to: %s", ec.midiPort)
			e.midi = port
			sender = port
		}
	}
	e.chunker = audio.NewChunker(cfg.ChunkSize, e.queue, sender)

	if cfg.Playback {
		player, err := audio.NewPlayer(cfg.SampleRate, audio.NewQueueSource(e.queue))
		if err != nil {
			return nil, err
		}
		e.player = player
	}
	if cfg.RecordPath != "" {
		e.recorder = record.New(cfg.SampleRate)
	}
	return e, nil
}

// Run drives the control loop until ctx is cancelled or the input stream
// ends, then releases the output devices and exports any recording.
func (e *Engine) Run(ctx context.Context) error {
	if e.player != nil {
		e.player.Play()
	}

	lines := make(chan string, 64)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(e.input)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	barDur := e.cfg.BarDuration().Seconds()
	lastBar := time.Now()
	poll := time.NewTicker(10 * time.Millisecond)
	defer poll.Stop()

loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case line, ok := <-lines:
			if !ok {
				break loop
			}
			if frame, complete := e.parser.ParseLine(line); complete {
				e.state.Apply(frame)
			}
		case <-poll.C:
		}

		p := e.state.Params()
		if time.Since(lastBar).Seconds() < barDur/p.TempoMult {
			continue
		}
		lastBar = time.Now()
		e.playBar(p)
	}

	return e.shutdown()
}

// playBar generates one bar from the parameter snapshot and hands it to
// the delivery pipeline.
func (e *Engine) playBar(p director.Params) {
	mix, events := e.gen.GenerateBar(p)
	if dropped := e.chunker.PushBar(mix, events); dropped > 0 {
		e.logger.Printf("queue full: dropped %d chunks", dropped)
	}
	if e.recorder != nil {
		e.recorder.Append(mix)
	}
	e.scoreLog.LogBar(e.gen.BarCount(), p)
}

// BarCount returns the number of bars performed so far.
func (e *Engine) BarCount() int { return e.gen.BarCount() }

// DroppedChunks reports how many chunks delivery has discarded.
func (e *Engine) DroppedChunks() int64 { return e.queue.Dropped() }

func (e *Engine) shutdown() error {
	var firstErr error

	if e.player != nil {
		if err := e.player.Stop(); err != nil && firstErr == nil {
			firstErr = err
		}
		e.player = nil
	}
	if e.midi != nil {
		if err := e.midi.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		e.midi = nil
	}
	if e.recorder != nil && e.recorder.Len() > 0 {
		e.logger.Printf("saving recording to %s", e.cfg.RecordPath)
		exportCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := e.recorder.Export(exportCtx, e.cfg.RecordPath); err != nil {
			e.logger.Printf("recording export failed: %v", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
