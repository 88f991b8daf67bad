// Command composer reads director cues on stdin and performs a live
// four-voice soundtrack, logging one score line per bar on stdout.
//
// Typical pipeline:
//
//	director | composer | tee score.txt
//	director | composer -record session.mp3 | tee score.txt
//
// Press Ctrl-C to exit.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ahk/cuecomposer"
	"github.com/ahk/cuecomposer/internal/config"
	"github.com/ahk/cuecomposer/internal/midiout"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to a YAML config file")
		recordPath = flag.String("record", "", "record the session to this file (.mp3 or .wav)")
		bpm        = flag.Float64("bpm", 0, "base tempo in BPM (default 174)")
		noAudio    = flag.Bool("no-audio", false, "disable audio playback (score output only)")
		midiPort   = flag.String("midi-port", midiout.DefaultPortName, "MIDI output port name (empty to disable)")
		listMIDI   = flag.Bool("list-midi", false, "list available MIDI output ports and exit")
	)
	flag.Parse()

	if *listMIDI {
		names, err := midiout.ListOutputs()
		if err != nil {
			log.Fatal(err)
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *bpm > 0 {
		cfg.BPM = *bpm
	}
	if *recordPath != "" {
		cfg.RecordPath = *recordPath
	}
	if *noAudio {
		cfg.Playback = false
	}

	logger := log.New(os.Stderr, "", log.LstdFlags)
	logger.Printf("composer: %v BPM, recording=%s, playback=%v",
		cfg.BPM, orDisabled(cfg.RecordPath), cfg.Playback)
	logger.Printf("waiting for director input on stdin")

	opts := []cuecomposer.EngineOption{cuecomposer.WithLogger(logger)}
	if *midiPort != "" {
		opts = append(opts, cuecomposer.WithMIDIPort(*midiPort))
	}

	engine, err := cuecomposer.New(cfg, opts...)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := engine.Run(ctx); err != nil {
		log.Fatal(err)
	}
	logger.Printf("composer terminated after %d bars", engine.BarCount())
}

func orDisabled(s string) string {
	if s == "" {
		return "disabled"
	}
	return s
}
