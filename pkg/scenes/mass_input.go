package scenes

import (
	"fmt"

	"github.com/gonewx/gravity-jump/pkg/config"
	"github.com/gonewx/gravity-jump/pkg/game"
)

// massInput 体重输入框状态
// 与 ebiten 无关，按键由 GameScene 转发进来
type massInput struct {
	active bool
	buffer []rune
	err    string // 上一次提交失败的原因，显示在输入框下方
}

// Begin 打开输入框，以当前体重作为初始内容
func (m *massInput) Begin(current float64) {
	m.active = true
	m.buffer = []rune(fmt.Sprintf("%g", current))
	m.err = ""
}

// Active 输入框是否打开
func (m *massInput) Active() bool {
	return m.active
}

// Append 追加输入字符，超过最大长度的字符直接丢弃
func (m *massInput) Append(chars []rune) {
	for _, c := range chars {
		if len(m.buffer) >= config.MaxMassInputLength {
			return
		}
		m.buffer = append(m.buffer, c)
	}
}

// Backspace 删除最后一个字符
func (m *massInput) Backspace() {
	if len(m.buffer) > 0 {
		m.buffer = m.buffer[:len(m.buffer)-1]
	}
}

// Commit 解析输入内容
//
// 返回:
//   - float64: 限制并保留两位小数后的体重
//   - error: 输入非法时返回错误，输入框保持打开
func (m *massInput) Commit() (float64, error) {
	mass, err := game.ParseMassInput(string(m.buffer))
	if err != nil {
		m.err = err.Error()
		return 0, err
	}
	m.Cancel()
	return game.ClampMass(mass), nil
}

// Cancel 关闭输入框并丢弃内容
func (m *massInput) Cancel() {
	m.active = false
	m.buffer = m.buffer[:0]
	m.err = ""
}

// Text 当前输入内容
func (m *massInput) Text() string {
	return string(m.buffer)
}

// Error 上一次提交失败的原因
func (m *massInput) Error() string {
	return m.err
}
