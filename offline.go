package cuecomposer

import (
	"math/rand"

	"github.com/ahk/cuecomposer/internal/config"
	"github.com/ahk/cuecomposer/internal/director"
	"github.com/ahk/cuecomposer/internal/pattern"
)

// RenderBars renders n bars straight to float32 samples without opening
// an audio device, using the parameters derived from one scene frame.
// Pass a nil source for time-seeded randomness.
func RenderBars(cfg config.Config, frame director.Frame, n int, src rand.Source) []float32 {
	state := director.NewState()
	state.Apply(frame)
	p := state.Params()

	var rng *rand.Rand
	if src != nil {
		rng = rand.New(src)
	}
	gen := pattern.New(cfg.SampleRate, cfg.BPM, rng)

	var out []float32
	for i := 0; i < n; i++ {
		mix, _ := gen.GenerateBar(p)
		for _, s := range mix {
			out = append(out, float32(s))
		}
	}
	return out
}
