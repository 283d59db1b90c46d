// Package utils 提供前端共用的输入、颜色和动画工具
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// planetHotkeys 数字键 1..9 对应行星表的显示顺序
var planetHotkeys = []ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5,
	ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9,
}

// FrameInput 一帧轮询到的全部输入
type FrameInput struct {
	Jump        bool // 电平信号：空格、触摸或鼠标左键按住
	PlanetIndex int  // 数字键选中的行星下标，-1 表示没有
	NextPlanet  bool // → 键
	PrevPlanet  bool // ← 键
	ToggleChart bool // C 键
	ToggleMute  bool // M 键
	MassDelta   float64
}

// PollInput 读取当前帧的输入状态
// 每帧只调用一次，结果交给场景和模拟世界使用
func PollInput() FrameInput {
	in := FrameInput{
		Jump:        IsJumpPressed(),
		PlanetIndex: -1,
		NextPlanet:  inpututil.IsKeyJustPressed(ebiten.KeyArrowRight),
		PrevPlanet:  inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft),
		ToggleChart: inpututil.IsKeyJustPressed(ebiten.KeyC),
		ToggleMute:  inpututil.IsKeyJustPressed(ebiten.KeyM),
	}

	for i, key := range planetHotkeys {
		if inpututil.IsKeyJustPressed(key) {
			in.PlanetIndex = i
			break
		}
	}

	// 按住 Shift 时步长 10kg
	step := 1.0
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		step = 10
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd) {
		in.MassDelta += step
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract) {
		in.MassDelta -= step
	}
	return in
}

// IsJumpPressed 跳跃键当前是否按住（空格、触摸或鼠标左键）
func IsJumpPressed() bool {
	if ebiten.IsKeyPressed(ebiten.KeySpace) {
		return true
	}
	if len(ebiten.AppendTouchIDs(nil)) > 0 {
		return true
	}
	return ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}

// IsJustTouchedOrClicked 检查是否刚刚发生点击或触摸
// 返回是否点击以及点击位置
func IsJustTouchedOrClicked() (bool, int, int) {
	touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return true, x, y
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return true, x, y
	}

	return false, 0, 0
}
