// Package world 把跳跃、粒子、目标三个系统组装成一个无渲染的模拟世界。
//
// World 由单个 goroutine 逐帧驱动（ebiten Update、终端循环或 websocket 会话），
// 内部不加锁。前端只通过 Snapshot 读取数值状态，通过 Subscribe 监听事件。
package world

import (
	"log"
	"math"
	"math/rand"

	"github.com/gonewx/gravity-jump/pkg/components"
	"github.com/gonewx/gravity-jump/pkg/config"
	"github.com/gonewx/gravity-jump/pkg/ecs"
	"github.com/gonewx/gravity-jump/pkg/event"
	"github.com/gonewx/gravity-jump/pkg/systems"
)

// Options 创建 World 的可选参数
type Options struct {
	PlanetKey      string     // 初始行星，空或未知时使用默认行星
	LaunchVelocity float64    // 起跳速度，<= 0 时使用 config.LaunchVelocity
	Rand           *rand.Rand // 粒子随机源，nil 时使用随机种子
}

// Stats 本次会话的计数器
type Stats struct {
	Jumps            int `json:"jumps" msgpack:"jumps"`
	Landings         int `json:"landings" msgpack:"landings"`
	TargetsCollected int `json:"targetsCollected" msgpack:"targetsCollected"`
	Frames           int `json:"frames" msgpack:"frames"`
}

// Snapshot 某一帧的完整数值状态（渲染边界）
type Snapshot struct {
	Time      float64                `json:"time" msgpack:"time"`
	Planet    string                 `json:"planet" msgpack:"planet"`
	Gravity   float64                `json:"gravity" msgpack:"gravity"`
	Height    float64                `json:"height" msgpack:"height"`
	Velocity  float64                `json:"velocity" msgpack:"velocity"`
	State     string                 `json:"state" msgpack:"state"`
	MaxHeight float64                `json:"maxHeight" msgpack:"maxHeight"`
	Particles []systems.ParticleView `json:"particles" msgpack:"particles"`
	Targets   []systems.TargetView   `json:"targets" msgpack:"targets"`
	Stats     Stats                  `json:"stats" msgpack:"stats"`
}

// World 模拟世界
type World struct {
	registry *config.PlanetRegistry
	planet   config.Planet

	em     *ecs.EntityManager
	queue  *event.Queue
	router *event.Router[*ecs.EntityManager]

	jumpSystem     *systems.JumpSystem
	particleSystem *systems.ParticleSystem
	targetSystem   *systems.TargetSystem

	astronaut ecs.EntityID
	time      float64
	stats     Stats
}

// New 创建模拟世界
//
// 参数:
//   - registry: 行星表，nil 时使用内置行星表
//   - opts: 可选参数
//
// 返回:
//   - *World: 宇航员静止站在初始行星表面
func New(registry *config.PlanetRegistry, opts Options) *World {
	if registry == nil {
		registry = config.DefaultPlanetRegistry()
	}
	launchVelocity := opts.LaunchVelocity
	if !(launchVelocity > 0) {
		launchVelocity = config.LaunchVelocity
	}

	em := ecs.NewEntityManager()
	queue := event.NewQueue()

	w := &World{
		registry: registry,
		em:       em,
		queue:    queue,
		router:   event.NewRouter[*ecs.EntityManager](queue),
	}

	w.astronaut = em.CreateEntity()
	em.AddComponent(w.astronaut, &components.AstronautComponent{})
	em.AddComponent(w.astronaut, &components.MotionComponent{})

	w.jumpSystem = systems.NewJumpSystem(em, queue, launchVelocity)
	w.particleSystem = systems.NewParticleSystem(em, opts.Rand)
	w.targetSystem = systems.NewTargetSystem(em, queue)

	// 注册顺序即分发顺序：先粒子，再统计，最后是前端订阅者
	w.router.Register(w.particleSystem)
	w.router.Register(w)

	w.applyPlanet(registry.Get(opts.PlanetKey))
	log.Printf("[World] created on %s (g=%.2f, v0=%.2f)", w.planet.Key, w.planet.Gravity, launchVelocity)
	return w
}

// Registry 返回行星表
func (w *World) Registry() *config.PlanetRegistry {
	return w.registry
}

// Planet 返回当前行星
func (w *World) Planet() config.Planet {
	return w.planet
}

// Stats 返回会话计数器
func (w *World) Stats() Stats {
	return w.stats
}

// Subscribe 注册事件监听，fn 在 Update/SetPlanet 内同步调用
func (w *World) Subscribe(fn func(e event.Event), types ...event.Type) {
	w.router.Register(event.HandlerFunc[*ecs.EntityManager]{
		Types: types,
		Fn: func(_ *ecs.EntityManager, e event.Event) {
			fn(e)
		},
	})
}

// AddHandler 注册额外的事件处理器（如音效系统），按注册顺序分发
func (w *World) AddHandler(h event.Handler[*ecs.EntityManager]) {
	w.router.Register(h)
}

// SetPlanet 切换行星
//
// 重力被替换，宇航员回到地面静止，粒子清空，目标重新计算并重置为未收集。
// 未知 key 回退到默认行星。
//
// 返回:
//   - string: 实际生效的行星 key
func (w *World) SetPlanet(key string) string {
	from := w.planet.Key
	w.applyPlanet(w.registry.Get(key))

	w.queue.Push(event.Event{
		Type:    event.PlanetChanged,
		Payload: event.PlanetChangedPayload{From: from, To: w.planet.Key},
	})
	w.router.DispatchAll(w.em)
	w.em.RemoveMarkedEntities()

	log.Printf("[World] planet changed: %s -> %s", from, w.planet.Key)
	return w.planet.Key
}

func (w *World) applyPlanet(p config.Planet) {
	w.planet = p
	w.jumpSystem.SetPlanet(p.Key, p.Gravity)
	w.targetSystem.Reset(w.jumpSystem.LaunchVelocity(), p.Gravity)
	w.particleSystem.SetColor(p.Color)
}

// Update 推进一帧
//
// 顺序：跳跃积分 -> 分发事件（落地生成粒子）-> 粒子 -> 目标 -> 分发事件 -> 清理实体
//
// 参数:
//   - deltaTime: 帧间隔（秒），负数或 NaN 按 0 处理
//   - jumpPressed: 本帧轮询到的跳跃输入
//
// 返回:
//   - []event.Event: 本帧产生的事件
func (w *World) Update(deltaTime float64, jumpPressed bool) []event.Event {
	if math.IsNaN(deltaTime) || deltaTime < 0 {
		deltaTime = 0
	}
	w.time += deltaTime
	w.stats.Frames++
	w.queue.SetTime(w.time)

	w.jumpSystem.SetInput(jumpPressed)
	w.jumpSystem.Update(deltaTime)
	events := w.router.DispatchAll(w.em)

	w.particleSystem.Update(deltaTime)
	w.targetSystem.Update(deltaTime)
	events = append(events, w.router.DispatchAll(w.em)...)

	w.em.RemoveMarkedEntities()
	return events
}

// EventTypes 实现 event.Handler，用于会话统计
func (w *World) EventTypes() []event.Type {
	return []event.Type{event.JumpStarted, event.Landed, event.TargetCollected}
}

// HandleEvent 实现 event.Handler
func (w *World) HandleEvent(_ *ecs.EntityManager, e event.Event) {
	switch e.Type {
	case event.JumpStarted:
		w.stats.Jumps++
	case event.Landed:
		w.stats.Landings++
	case event.TargetCollected:
		w.stats.TargetsCollected++
	}
}

// Snapshot 返回当前帧的数值状态
func (w *World) Snapshot() Snapshot {
	motion, _ := ecs.GetComponent[*components.MotionComponent](w.em, w.astronaut)
	return Snapshot{
		Time:      w.time,
		Planet:    w.planet.Key,
		Gravity:   w.planet.Gravity,
		Height:    motion.Height,
		Velocity:  motion.Velocity,
		State:     motion.State.String(),
		MaxHeight: w.targetSystem.MaxHeight(),
		Particles: w.particleSystem.Snapshot(),
		Targets:   w.targetSystem.Snapshot(),
		Stats:     w.stats,
	}
}

// ParticleCount 当前存活粒子数
func (w *World) ParticleCount() int {
	return w.particleSystem.LiveCount()
}
