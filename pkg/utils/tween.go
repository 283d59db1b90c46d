package utils

import "math"

// Clamp01 限制到 [0, 1]
func Clamp01(t float64) float64 {
	return math.Max(0, math.Min(1, t))
}

// Lerp 线性插值
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// EaseOutCubic 三次方缓出：开始快，结束慢
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// Tween 在 Duration 秒内从 From 缓动到 To
// 对比图柱条展开时使用
type Tween struct {
	From, To float64
	Duration float64
	elapsed  float64
}

// NewTween 创建缓动
func NewTween(from, to, duration float64) *Tween {
	return &Tween{From: from, To: to, Duration: duration}
}

// Update 推进时间
func (tw *Tween) Update(dt float64) {
	if dt > 0 {
		tw.elapsed += dt
	}
}

// Restart 从头开始
func (tw *Tween) Restart() {
	tw.elapsed = 0
}

// Done 是否结束
func (tw *Tween) Done() bool {
	return tw.elapsed >= tw.Duration
}

// Value 当前值
func (tw *Tween) Value() float64 {
	if tw.Duration <= 0 {
		return tw.To
	}
	return Lerp(tw.From, tw.To, EaseOutCubic(Clamp01(tw.elapsed/tw.Duration)))
}
