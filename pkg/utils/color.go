package utils

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// HexColor 把 "#rrggbb" 转为 color.RGBA，解析失败返回 fallback
func HexColor(hex string, fallback color.RGBA) color.RGBA {
	c, err := colorful.Hex(hex)
	if err != nil {
		return fallback
	}
	return toRGBA(c, 0xff)
}

// BlendHex 在两个十六进制颜色之间按 t ∈ [0,1] 线性插值（RGB 空间）
// 任一颜色无法解析时返回另一端解析成功的颜色，两者都失败返回黑色
func BlendHex(from, to string, t float64) color.RGBA {
	a, errA := colorful.Hex(from)
	b, errB := colorful.Hex(to)
	switch {
	case errA != nil && errB != nil:
		return color.RGBA{A: 0xff}
	case errA != nil:
		return toRGBA(b, 0xff)
	case errB != nil:
		return toRGBA(a, 0xff)
	}
	return toRGBA(a.BlendRgb(b, Clamp01(t)).Clamped(), 0xff)
}

// BlendRGBA 在两个不透明颜色之间按 t ∈ [0,1] 插值
func BlendRGBA(from, to color.RGBA, t float64) color.RGBA {
	a, _ := colorful.MakeColor(from)
	b, _ := colorful.MakeColor(to)
	return toRGBA(a.BlendRgb(b, Clamp01(t)).Clamped(), 0xff)
}

// WithAlpha 按 alpha ∈ [0,1] 生成预乘颜色（ebiten 使用预乘 alpha）
func WithAlpha(c color.RGBA, alpha float64) color.RGBA {
	alpha = Clamp01(alpha)
	return color.RGBA{
		R: uint8(float64(c.R) * alpha),
		G: uint8(float64(c.G) * alpha),
		B: uint8(float64(c.B) * alpha),
		A: uint8(float64(c.A) * alpha),
	}
}

// RGBFloat 把 0..1 的分量转为不透明 color.RGBA
func RGBFloat(r, g, b float64) color.RGBA {
	return toRGBA(colorful.Color{R: r, G: g, B: b}.Clamped(), 0xff)
}

func toRGBA(c colorful.Color, a uint8) color.RGBA {
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: a}
}
