package systems

import (
	"math"

	"github.com/gonewx/gravity-jump/pkg/components"
	"github.com/gonewx/gravity-jump/pkg/ecs"
	"github.com/gonewx/gravity-jump/pkg/event"
)

// JumpSystem 宇航员竖直运动的逐帧积分器
//
// 状态机只有两个状态：
//   - Grounded: 跳跃输入按下时以 launchVelocity 起跳，进入 Airborne，发出 JumpStarted
//   - Airborne: 显式欧拉积分 v -= g·dt, h = max(0, h + v·dt)；
//     h <= 0 且 v <= 0 时归零并回到 Grounded，发出一次 Landed
//
// 输入是电平信号：空中按住不会再次起跳，但落地那一帧之后仍按住会立即再跳。
type JumpSystem struct {
	em    *ecs.EntityManager
	queue *event.Queue

	gravity        float64
	launchVelocity float64
	planetKey      string

	jumpPressed bool
}

// NewJumpSystem 创建跳跃系统
//
// 参数:
//   - em: 实体管理器
//   - queue: 事件队列，JumpStarted / Landed 推入这里
//   - launchVelocity: 起跳速度 (m/s)
func NewJumpSystem(em *ecs.EntityManager, queue *event.Queue, launchVelocity float64) *JumpSystem {
	return &JumpSystem{
		em:             em,
		queue:          queue,
		launchVelocity: launchVelocity,
	}
}

// SetInput 记录本帧轮询到的跳跃输入
func (s *JumpSystem) SetInput(pressed bool) {
	s.jumpPressed = pressed
}

// SetPlanet 切换重力并把所有宇航员重置为静止站立
// 不发出 Landed 事件
func (s *JumpSystem) SetPlanet(key string, gravity float64) {
	s.planetKey = key
	s.gravity = gravity

	for _, id := range ecs.GetEntitiesWith2[*components.AstronautComponent, *components.MotionComponent](s.em) {
		motion, _ := ecs.GetComponent[*components.MotionComponent](s.em, id)
		astronaut, _ := ecs.GetComponent[*components.AstronautComponent](s.em, id)
		motion.Reset()
		astronaut.AirTime = 0
	}
}

// Gravity 当前重力加速度
func (s *JumpSystem) Gravity() float64 {
	return s.gravity
}

// LaunchVelocity 起跳速度
func (s *JumpSystem) LaunchVelocity() float64 {
	return s.launchVelocity
}

// Update 推进一帧
//
// 参数:
//   - deltaTime: 帧间隔（秒），负数或 NaN 按 0 处理
func (s *JumpSystem) Update(deltaTime float64) {
	dt := sanitizeDelta(deltaTime)

	for _, id := range ecs.GetEntitiesWith2[*components.AstronautComponent, *components.MotionComponent](s.em) {
		motion, _ := ecs.GetComponent[*components.MotionComponent](s.em, id)
		astronaut, _ := ecs.GetComponent[*components.AstronautComponent](s.em, id)

		if motion.State == components.JumpStateGrounded {
			if !s.jumpPressed {
				continue
			}
			motion.Velocity = s.launchVelocity
			motion.State = components.JumpStateAirborne
			astronaut.AirTime = 0
			s.queue.Push(event.Event{
				Type:    event.JumpStarted,
				Payload: event.JumpStartedPayload{Velocity: s.launchVelocity, Gravity: s.gravity},
			})
			// 起跳当帧也执行一次积分
		}

		motion.Velocity -= s.gravity * dt
		motion.Height = math.Max(0, motion.Height+motion.Velocity*dt)
		astronaut.AirTime += dt

		if motion.Height <= 0 && motion.Velocity <= 0 {
			airTime := astronaut.AirTime
			motion.Reset()
			astronaut.AirTime = 0
			s.queue.Push(event.Event{
				Type:    event.Landed,
				Payload: event.LandedPayload{PlanetKey: s.planetKey, AirTime: airTime},
			})
		}
	}
}

// sanitizeDelta 负数和 NaN 视为 0，不设上限
func sanitizeDelta(dt float64) float64 {
	if math.IsNaN(dt) || dt < 0 {
		return 0
	}
	return dt
}
