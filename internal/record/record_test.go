package record

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
)

func TestNormalizedPeak(t *testing.T) {
	r := New(44100)
	r.Append([]float64{0.1, -0.5, 0.25})

	norm := r.Normalized()
	var peak float64
	for _, s := range norm {
		if a := math.Abs(s); a > peak {
			peak = a
		}
	}
	if math.Abs(peak-0.95) > 1e-9 {
		t.Errorf("normalized peak %f, want 0.95", peak)
	}
}

func TestNormalizedSilence(t *testing.T) {
	r := New(44100)
	r.Append(make([]float64, 100))
	for i, s := range r.Normalized() {
		if s != 0 {
			t.Fatalf("sample %d: %f, want 0", i, s)
		}
	}
}

func TestExportWAV(t *testing.T) {
	r := New(44100)
	samples := make([]float64, 4410)
	for i := range samples {
		samples[i] = 0.5 * math.Sin(2*math.Pi*440*float64(i)/44100)
	}
	r.Append(samples)

	path := filepath.Join(t.TempDir(), "take.wav")
	if err := r.ExportWAV(path); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		t.Fatal(err)
	}
	if dec.SampleRate != 44100 {
		t.Errorf("sample rate %d", dec.SampleRate)
	}
	if dec.BitDepth != 16 {
		t.Errorf("bit depth %d", dec.BitDepth)
	}
	if dec.NumChans != 1 {
		t.Errorf("channels %d", dec.NumChans)
	}
	if len(buf.Data) != len(samples) {
		t.Fatalf("decoded %d samples, want %d", len(buf.Data), len(samples))
	}

	var peak int
	for _, s := range buf.Data {
		if s < 0 {
			s = -s
		}
		if s > peak {
			peak = s
		}
	}
	wantPeak := 0.95 * 32767.0
	want := int(wantPeak)
	if peak < want-2 || peak > want+2 {
		t.Errorf("decoded peak %d, want ~%d", peak, want)
	}
}

func TestExportEmptySessionIsNoop(t *testing.T) {
	r := New(44100)
	path := filepath.Join(t.TempDir(), "empty.wav")
	if err := r.Export(t.Context(), path); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("empty session should not create a file")
	}
}
