// Package score writes the human-readable performance log: one
// fixed-width line per bar on stdout, suitable for tee into a score file.
package score

import (
	"fmt"
	"io"
	"time"

	"github.com/ahk/cuecomposer/internal/director"
)

// Logger tracks elapsed performance time and formats bar lines.
type Logger struct {
	w     io.Writer
	start time.Time
	now   func() time.Time
}

func NewLogger(w io.Writer) *Logger {
	l := &Logger{w: w, now: time.Now}
	l.start = l.now()
	return l
}

// NewLoggerAt is NewLogger with an injectable clock, for tests.
func NewLoggerAt(w io.Writer, now func() time.Time) *Logger {
	return &Logger{w: w, start: now(), now: now}
}

// LogBar writes one score line for the bar just generated.
func (l *Logger) LogBar(barNum int, p director.Params) {
	elapsed := l.now().Sub(l.start).Seconds()
	fmt.Fprintf(l.w, "[%7.2fs] Bar %4d | root=%2d chord=%-6s scale=%-12s | density=%.2f intensity=%.2f tempo_mult=%.2f\n",
		elapsed, barNum, p.RootNote, p.Chord, p.Scale, p.Density, p.Intensity, p.TempoMult)
}
