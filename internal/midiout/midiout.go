// Package midiout sends the ensemble's note events to an external MIDI
// port. A missing port is never fatal; the caller simply runs without
// MIDI dispatch.
package midiout

import (
	"fmt"
	"strings"
	"sync"

	"gitlab.com/gomidi/midi"
	"gitlab.com/gomidi/midi/midimessage/channel"
	"gitlab.com/gomidi/rtmididrv"
)

// DefaultPortName matches the loopback bus most DAW setups expose.
const DefaultPortName = "IAC Driver Bus 1"

// Port wraps an rtmidi output port and its driver so both close together.
type Port struct {
	drv  *rtmididrv.Driver
	out  midi.Out
	once sync.Once
}

// Open opens the named output port, preferring an exact name match and
// falling back to a substring match.
func Open(portName string) (*Port, error) {
	drv, err := rtmididrv.New()
	if err != nil {
		return nil, fmt.Errorf("rtmididrv.New: %w", err)
	}
	outs, err := drv.Outs()
	if err != nil {
		_ = drv.Close()
		return nil, fmt.Errorf("list MIDI outputs: %w", err)
	}
	var out midi.Out
	for _, p := range outs {
		if p.String() == portName {
			out = p
			break
		}
	}
	if out == nil {
		for _, p := range outs {
			if strings.Contains(p.String(), portName) {
				out = p
				break
			}
		}
	}
	if out == nil {
		_ = drv.Close()
		return nil, fmt.Errorf("MIDI output port not found: %s", portName)
	}
	if err := out.Open(); err != nil {
		_ = drv.Close()
		return nil, fmt.Errorf("open MIDI output: %w", err)
	}
	return &Port{drv: drv, out: out}, nil
}

// NoteOn sends a note-on message on the given channel (0-15).
func (p *Port) NoteOn(ch, note, velocity int) {
	msg := channel.Channel(uint8(ch)).NoteOn(uint8(note), uint8(velocity))
	_ = p.out.Send(msg.Raw())
}

// NoteOff sends a note-off message on the given channel (0-15).
func (p *Port) NoteOff(ch, note, velocity int) {
	msg := channel.Channel(uint8(ch)).NoteOffVelocity(uint8(note), uint8(velocity))
	_ = p.out.Send(msg.Raw())
}

// Close releases the port and its driver. Safe to call more than once.
func (p *Port) Close() error {
	var err error
	p.once.Do(func() {
		_ = p.out.Close()
		err = p.drv.Close()
	})
	return err
}

// ListOutputs returns the names of the available MIDI output ports.
func ListOutputs() ([]string, error) {
	drv, err := rtmididrv.New()
	if err != nil {
		return nil, err
	}
	defer drv.Close()
	outs, err := drv.Outs()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(outs))
	for _, o := range outs {
		names = append(names, o.String())
	}
	return names, nil
}
