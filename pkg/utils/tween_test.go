package utils

import (
	"math"
	"testing"
)

func TestEaseOutCubic(t *testing.T) {
	tests := []struct {
		t, want float64
	}{
		{0, 0},
		{0.5, 0.875},
		{1, 1},
	}
	for _, tt := range tests {
		if got := EaseOutCubic(tt.t); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("EaseOutCubic(%v): got %v, want %v", tt.t, got, tt.want)
		}
	}
}

func TestTween(t *testing.T) {
	tw := NewTween(0, 100, 1)
	if tw.Value() != 0 {
		t.Errorf("start value: got %v", tw.Value())
	}

	tw.Update(0.5)
	// EaseOutCubic(0.5) = 0.875
	if v := tw.Value(); v != 87.5 {
		t.Errorf("half way: got %v, want 87.5", v)
	}
	tw.Update(-1)
	if tw.Value() != 87.5 {
		t.Error("negative dt should be ignored")
	}

	tw.Update(1)
	if !tw.Done() || tw.Value() != 100 {
		t.Errorf("finished tween: done=%v value=%v", tw.Done(), tw.Value())
	}

	tw.Restart()
	if tw.Done() || tw.Value() != 0 {
		t.Error("restart should rewind")
	}
}

func TestTweenZeroDuration(t *testing.T) {
	if got := NewTween(3, 7, 0).Value(); got != 7 {
		t.Errorf("zero duration tween: got %v, want 7", got)
	}
}
