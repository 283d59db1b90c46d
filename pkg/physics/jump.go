// Package physics 提供跳跃相关的闭式运动学公式
//
// 这些函数是纯函数，既被 TargetSystem 用来计算目标环高度，
// 也被 UI 层用来展示最大高度、滞空时间和体重。
package physics

import "math"

// MaxHeight 竖直上抛的最大高度 v²/(2g)
// 重力非正时返回 0（没有有意义的抛体轨迹）
func MaxHeight(launchVelocity, gravity float64) float64 {
	if !(gravity > 0) {
		return 0
	}
	return launchVelocity * launchVelocity / (2 * gravity)
}

// HangTime 竖直上抛的滞空时间 2v/g
// 重力非正时返回 0
func HangTime(launchVelocity, gravity float64) float64 {
	if !(gravity > 0) {
		return 0
	}
	return 2 * launchVelocity / gravity
}

// FlightDuration 跳跃动画的播放时长
// 取滞空时间与 minDuration 中较大者，重力过小时返回 1 秒
func FlightDuration(launchVelocity, gravity, minDuration float64) float64 {
	if gravity <= 0.0001 {
		return 1
	}
	return math.Max(minDuration, HangTime(launchVelocity, gravity))
}

// Weight 重量 = 质量 × 重力 (N)
func Weight(mass, gravity float64) float64 {
	return mass * gravity
}

// Thresholds 按比例计算目标环高度
//
// 参数:
//   - launchVelocity: 起跳速度
//   - gravity: 星球重力
//   - fractions: 各目标环占最大高度的比例（严格递增）
//
// 返回:
//   - []float64: 与 fractions 一一对应的高度
func Thresholds(launchVelocity, gravity float64, fractions []float64) []float64 {
	maxHeight := MaxHeight(launchVelocity, gravity)
	heights := make([]float64, len(fractions))
	for i, f := range fractions {
		heights[i] = maxHeight * f
	}
	return heights
}
