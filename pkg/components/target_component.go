package components

// TargetComponent 高度目标环
// Height 随行星重力重新计算；Collected 在同一次行星选择内只会从 false 变为 true
type TargetComponent struct {
	Index     int     // 0..2，从低到高
	Fraction  float64 // 占最大跳跃高度的比例
	Height    float64 // 目标高度（米）
	Collected bool
}
