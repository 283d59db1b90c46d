package utils

import (
	"image/color"
	"testing"
)

func TestHexColor(t *testing.T) {
	fallback := color.RGBA{R: 1, G: 2, B: 3, A: 4}

	got := HexColor("#4a90e2", fallback)
	want := color.RGBA{R: 0x4a, G: 0x90, B: 0xe2, A: 0xff}
	if got != want {
		t.Errorf("HexColor: got %v, want %v", got, want)
	}

	if got := HexColor("blue", fallback); got != fallback {
		t.Errorf("invalid hex should return fallback, got %v", got)
	}
}

func TestBlendHex(t *testing.T) {
	black := color.RGBA{A: 0xff}
	white := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

	if got := BlendHex("#000000", "#ffffff", 0); got != black {
		t.Errorf("t=0: got %v", got)
	}
	if got := BlendHex("#000000", "#ffffff", 1); got != white {
		t.Errorf("t=1: got %v", got)
	}
	if got := BlendHex("#000000", "#ffffff", 5); got != white {
		t.Errorf("t should be clamped, got %v", got)
	}
	mid := BlendHex("#000000", "#ffffff", 0.5)
	if mid.R < 0x7f || mid.R > 0x80 {
		t.Errorf("midpoint: got %v", mid)
	}
	if got := BlendHex("bad", "#ffffff", 0.5); got != white {
		t.Errorf("invalid start should return end color, got %v", got)
	}
}

func TestBlendRGBA(t *testing.T) {
	red := color.RGBA{R: 0xff, A: 0xff}
	blue := color.RGBA{B: 0xff, A: 0xff}

	if got := BlendRGBA(red, blue, 0); got != red {
		t.Errorf("t=0: got %v", got)
	}
	if got := BlendRGBA(red, blue, 1); got != blue {
		t.Errorf("t=1: got %v", got)
	}
	if got := BlendRGBA(red, blue, -3); got != red {
		t.Errorf("t should be clamped, got %v", got)
	}
}

func TestWithAlpha(t *testing.T) {
	c := WithAlpha(color.RGBA{R: 200, G: 100, B: 50, A: 255}, 0.5)
	if c.R != 100 || c.G != 50 || c.B != 25 || c.A != 127 {
		t.Errorf("premultiplied color: got %v", c)
	}
	if got := WithAlpha(color.RGBA{R: 10, A: 255}, -1); got != (color.RGBA{}) {
		t.Errorf("negative alpha should be transparent, got %v", got)
	}
}
