package synth

import (
	"math"
	"math/rand"
	"testing"
)

const testRate = 44100

func testOsc() *Oscillator {
	return NewOscillator(testRate, rand.New(rand.NewSource(1)))
}

func TestRenderLengthMatchesDuration(t *testing.T) {
	osc := testOsc()
	for _, w := range []Waveform{WaveSine, WaveSaw, WaveSquare, WaveTriangle, WaveNoise} {
		sig := osc.Render(w, 440, 0.25, 0.5)
		if got, want := len(sig), testRate/4; got != want {
			t.Errorf("waveform %d: got %d samples, want %d", w, got, want)
		}
	}
}

func TestRenderStaysWithinAmplitude(t *testing.T) {
	osc := testOsc()
	for _, w := range []Waveform{WaveSine, WaveSaw, WaveSquare, WaveTriangle, WaveNoise} {
		for _, s := range osc.Render(w, 440, 0.1, 0.5) {
			if math.Abs(s) > 0.5+1e-9 {
				t.Fatalf("waveform %d sample %f exceeds amplitude", w, s)
			}
		}
	}
}

func TestSquareIsSignOfSine(t *testing.T) {
	osc := testOsc()
	sig := osc.Render(WaveSquare, 100, 0.05, 0.3)
	for i, s := range sig {
		if s != 0.3 && s != -0.3 {
			t.Fatalf("sample %d: square value %f not +-amp", i, s)
		}
	}
}

func TestNoteFreq(t *testing.T) {
	cases := []struct {
		note int
		freq float64
	}{
		{69, 440},
		{57, 220},
		{81, 880},
		{60, 261.6255653},
	}
	for _, tc := range cases {
		if got := NoteFreq(tc.note); math.Abs(got-tc.freq) > 1e-4 {
			t.Errorf("NoteFreq(%d) = %f, want %f", tc.note, got, tc.freq)
		}
	}
}

func TestADSRShape(t *testing.T) {
	env := ADSR(1.0, 0.1, 0.1, 0.7, 0.1, testRate)
	if len(env) != testRate {
		t.Fatalf("envelope length %d, want %d", len(env), testRate)
	}
	if env[0] != 0 {
		t.Errorf("attack starts at %f, want 0", env[0])
	}
	// Peak at end of attack.
	peak := env[int(0.1*testRate)-1]
	if math.Abs(peak-1.0) > 1e-6 {
		t.Errorf("attack peak %f, want 1", peak)
	}
	// Mid-sustain value.
	mid := env[testRate/2]
	if math.Abs(mid-0.7) > 1e-6 {
		t.Errorf("sustain %f, want 0.7", mid)
	}
	if last := env[len(env)-1]; math.Abs(last) > 1e-6 {
		t.Errorf("release ends at %f, want 0", last)
	}
}

func TestADSRFallbackRampWhenStagesExceedDuration(t *testing.T) {
	// 50ms note with 300ms of requested stages.
	env := ADSR(0.05, 0.1, 0.1, 0.7, 0.1, testRate)
	n := len(env)
	if n != int(0.05*testRate) {
		t.Fatalf("length %d", n)
	}
	half := n / 2
	// Symmetric ramp: rises to ~1 at midpoint, back to 0 at the end.
	if math.Abs(env[half-1]-1.0) > 1e-6 {
		t.Errorf("ramp midpoint %f, want 1", env[half-1])
	}
	if env[half] != 1.0 {
		t.Errorf("ramp-down start %f, want 1", env[half])
	}
	if last := env[n-1]; math.Abs(last) > 1e-6 {
		t.Errorf("ramp end %f, want 0", last)
	}
	for i := 1; i < half; i++ {
		if env[i] < env[i-1] {
			t.Fatalf("ramp-up not monotonic at %d", i)
		}
	}
}

func TestLowpassAttenuatesHighFrequencies(t *testing.T) {
	osc := testOsc()
	high := osc.Render(WaveSine, 10000, 0.1, 1.0)
	low := osc.Render(WaveSine, 100, 0.1, 1.0)

	filteredHigh := Lowpass(high, 500, testRate)
	filteredLow := Lowpass(low, 500, testRate)

	if rms(filteredHigh) >= rms(high)*0.5 {
		t.Errorf("10kHz tone barely attenuated: %f vs %f", rms(filteredHigh), rms(high))
	}
	if rms(filteredLow) < rms(low)*0.8 {
		t.Errorf("100Hz tone over-attenuated: %f vs %f", rms(filteredLow), rms(low))
	}
}

func TestHighpassRemovesDC(t *testing.T) {
	dc := make([]float64, testRate/10)
	for i := range dc {
		dc[i] = 1.0
	}
	filtered := Highpass(dc, 1000, testRate)
	// DC should decay away quickly.
	tail := filtered[len(filtered)/2:]
	if rms(tail) > 0.01 {
		t.Errorf("DC not removed, tail rms %f", rms(tail))
	}
}

func TestFiltersStartFreshEachCall(t *testing.T) {
	osc := testOsc()
	sig := osc.Render(WaveSine, 440, 0.05, 0.5)
	a := Lowpass(sig, 1000, testRate)
	b := Lowpass(sig, 1000, testRate)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("filter output differs at %d: %f vs %f", i, a[i], b[i])
		}
	}
}

func TestLFOFactorRange(t *testing.T) {
	l := NewLFO(0.1, 5)
	for i := 0; i < testRate; i++ {
		v := l.Sample(testRate)
		if v < 0.9-1e-9 || v > 1.1+1e-9 {
			t.Fatalf("LFO factor %f outside [0.9, 1.1]", v)
		}
	}
}

func TestLFOZeroDepthIsUnity(t *testing.T) {
	l := NewLFO(0, 5)
	if v := l.Sample(testRate); v != 1.0 {
		t.Errorf("zero-depth LFO returned %f", v)
	}
}

func rms(sig []float64) float64 {
	var sum float64
	for _, s := range sig {
		sum += s * s
	}
	return math.Sqrt(sum / float64(len(sig)))
}
