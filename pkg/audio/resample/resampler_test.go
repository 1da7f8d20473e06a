// ABOUTME: Tests for the linear resampler
// ABOUTME: Verifies identity, ratio math and interpolation behaviour

package resample

import "testing"

func TestResampleIdentity(t *testing.T) {
	r := New(48000, 48000, 2)
	in := []int16{1, 2, 3, 4}
	out := r.Resample(in)
	if len(out) != len(in) {
		t.Fatalf("identity resample changed length: %d != %d", len(out), len(in))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("sample %d changed: %d != %d", i, out[i], in[i])
		}
	}
}

func TestResampleUpsampleRatio(t *testing.T) {
	r := New(24000, 48000, 1)
	in := make([]int16, 24000)
	out := r.Resample(in)
	if len(out) != 48000 {
		t.Errorf("upsample 24k->48k of 1s should yield 48000 frames, got %d", len(out))
	}
}

func TestResampleDownsampleRatio(t *testing.T) {
	r := New(96000, 48000, 2)
	in := make([]int16, 96000*2)
	out := r.Resample(in)
	if len(out) != 48000*2 {
		t.Errorf("downsample 96k->48k of 1s stereo should yield 96000 samples, got %d", len(out))
	}
}

func TestResampleInterpolates(t *testing.T) {
	// Doubling the rate of a ramp should place midpoints between samples.
	r := New(24000, 48000, 1)
	in := []int16{0, 100, 200, 300}
	out := r.Resample(in)
	if len(out) != 8 {
		t.Fatalf("expected 8 output frames, got %d", len(out))
	}
	if out[0] != 0 || out[1] != 50 || out[2] != 100 || out[3] != 150 {
		t.Errorf("interpolation wrong: got %v", out[:4])
	}
}

func TestResampleEmpty(t *testing.T) {
	r := New(44100, 48000, 2)
	if out := r.Resample(nil); len(out) != 0 {
		t.Errorf("resampling nil should yield nothing, got %d samples", len(out))
	}
}
