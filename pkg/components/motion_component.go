package components

// JumpState 宇航员的跳跃状态
type JumpState int

const (
	// JumpStateGrounded 站在地面上，可以起跳
	JumpStateGrounded JumpState = iota
	// JumpStateAirborne 在空中，输入被忽略直到落地
	JumpStateAirborne
)

// String 返回状态名称（用于日志和快照）
func (s JumpState) String() string {
	switch s {
	case JumpStateGrounded:
		return "grounded"
	case JumpStateAirborne:
		return "airborne"
	default:
		return "unknown"
	}
}

// MotionComponent 竖直方向的运动状态
//
// 只有竖直一个自由度：Height 是离地高度（米，永远 >= 0），
// Velocity 向上为正（米/秒）。每帧由 JumpSystem 修改一次。
type MotionComponent struct {
	Height   float64
	Velocity float64
	State    JumpState
}

// Reset 回到静止站立状态
func (m *MotionComponent) Reset() {
	m.Height = 0
	m.Velocity = 0
	m.State = JumpStateGrounded
}
