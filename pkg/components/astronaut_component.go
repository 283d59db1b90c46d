package components

// AstronautComponent 标记玩家控制的宇航员实体
// 世界中只有一个宇航员，JumpSystem 和 TargetSystem 通过它定位运动组件
type AstronautComponent struct {
	AirTime float64 // 本次跳跃已滞空时间（秒），落地时清零
}
