package components

import "github.com/go-gl/mathgl/mgl64"

// ParticleComponent 着陆时溅起的尘土粒子
//
// 坐标系以宇航员脚下为原点：X/Z 为水平面，Y 向上。
// Life 每帧递减，<= 0 时由 ParticleSystem 销毁，实体不复用。
type ParticleComponent struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Life     float64 // 剩余生命（秒）
	MaxLife  float64 // 初始生命（秒），用于计算透明度
}

// Alpha 返回剩余生命比例 [0, 1]
func (p *ParticleComponent) Alpha() float64 {
	if p.MaxLife <= 0 {
		return 0
	}
	a := p.Life / p.MaxLife
	if a < 0 {
		return 0
	}
	if a > 1 {
		return 1
	}
	return a
}
