// ABOUTME: Tests for software volume handling in the output layer
// ABOUTME: Covers scaling, muting and clamping without opening a device

package output

import "testing"

func TestApplyVolume(t *testing.T) {
	samples := []int16{100, -100, 32767, -32768}

	full := applyVolume(samples, 100, false)
	for i := range samples {
		if full[i] != samples[i] {
			t.Errorf("full volume changed sample %d: %d != %d", i, full[i], samples[i])
		}
	}

	half := applyVolume(samples, 50, false)
	if half[0] != 50 || half[1] != -50 {
		t.Errorf("half volume wrong: got %d, %d", half[0], half[1])
	}

	muted := applyVolume(samples, 100, true)
	for i, s := range muted {
		if s != 0 {
			t.Errorf("muted sample %d is %d, want 0", i, s)
		}
	}
}

func TestVolumeBounds(t *testing.T) {
	o := NewOto()
	o.SetVolume(150)
	if o.GetVolume() != 100 {
		t.Errorf("volume should clamp to 100, got %d", o.GetVolume())
	}
	o.SetVolume(-5)
	if o.GetVolume() != 0 {
		t.Errorf("volume should clamp to 0, got %d", o.GetVolume())
	}

	o.SetMuted(true)
	if !o.IsMuted() {
		t.Error("mute flag not set")
	}
}

func TestWriteBeforeOpen(t *testing.T) {
	o := NewOto()
	if err := o.Write([]int16{1, 2}); err == nil {
		t.Error("write before open should fail")
	}
}
