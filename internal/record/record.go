// Package record accumulates the session's mixed audio and exports it on
// shutdown: normalized, quantized to 16-bit mono WAV, with an optional
// MP3 encode step through ffmpeg.
package record

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const peakTarget = 0.95

// Recorder buffers mixed bar audio for export. Append is called only
// from the generation loop, so no locking is needed.
type Recorder struct {
	sampleRate int
	samples    []float64
}

func New(sampleRate int) *Recorder {
	return &Recorder{sampleRate: sampleRate}
}

// Append copies a bar of mixed samples into the session buffer.
func (r *Recorder) Append(samples []float64) {
	r.samples = append(r.samples, samples...)
}

// Len returns the number of buffered samples.
func (r *Recorder) Len() int { return len(r.samples) }

// Normalized returns the session audio scaled so its peak sits at 0.95.
// Silence is returned unchanged.
func (r *Recorder) Normalized() []float64 {
	out := make([]float64, len(r.samples))
	peak := 0.0
	for _, s := range r.samples {
		if a := abs(s); a > peak {
			peak = a
		}
	}
	scale := 1.0
	if peak > 0 {
		scale = peakTarget / peak
	}
	for i, s := range r.samples {
		out[i] = s * scale
	}
	return out
}

// ExportWAV writes the normalized session as a 16-bit mono WAV file.
func (r *Recorder) ExportWAV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	norm := r.Normalized()
	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{NumChannels: 1, SampleRate: r.sampleRate},
		Data:   make([]int, len(norm)),
	}
	for i, s := range norm {
		buf.Data[i] = int(s * 32767)
	}

	enc := wav.NewEncoder(f, r.sampleRate, 16, 1, 1)
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("write wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("close wav encoder: %w", err)
	}
	return nil
}

// Export writes the session to path. An .mp3 path goes through a WAV
// intermediate and ffmpeg; if the encode fails the WAV is kept so the
// take is not lost. Any other extension is written as WAV directly.
func (r *Recorder) Export(ctx context.Context, path string) error {
	if len(r.samples) == 0 {
		return nil
	}
	if !strings.HasSuffix(path, ".mp3") {
		return r.ExportWAV(path)
	}

	wavPath := strings.TrimSuffix(path, ".mp3") + ".wav"
	if err := r.ExportWAV(wavPath); err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, "ffmpeg", "-y", "-i", wavPath,
		"-codec:a", "libmp3lame", "-q:a", "0", path)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg encode failed (wav kept at %s): %w: %s", wavPath, err, out)
	}
	return os.Remove(wavPath)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
