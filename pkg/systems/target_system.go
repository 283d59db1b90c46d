package systems

import (
	"math"

	"github.com/gonewx/gravity-jump/pkg/components"
	"github.com/gonewx/gravity-jump/pkg/config"
	"github.com/gonewx/gravity-jump/pkg/ecs"
	"github.com/gonewx/gravity-jump/pkg/event"
	"github.com/gonewx/gravity-jump/pkg/physics"
)

// TargetView 目标环的只读快照
type TargetView struct {
	Index     int     `json:"index" msgpack:"index"`
	Height    float64 `json:"height" msgpack:"height"`
	Collected bool    `json:"collected" msgpack:"collected"`
}

// TargetSystem 管理三个高度目标
//
// 目标高度 = TargetFractions[i] × v²/(2g)。宇航员在空中进入某个目标的
// ±TargetTolerance 范围时，该目标第一次被标记为已收集并发出 TargetCollected，
// 之后保持已收集直到切换行星。
type TargetSystem struct {
	em        *ecs.EntityManager
	queue     *event.Queue
	maxHeight float64
}

// NewTargetSystem 创建目标系统并生成 TargetCount 个目标实体
func NewTargetSystem(em *ecs.EntityManager, queue *event.Queue) *TargetSystem {
	s := &TargetSystem{em: em, queue: queue}
	for i := 0; i < config.TargetCount; i++ {
		id := em.CreateEntity()
		em.AddComponent(id, &components.TargetComponent{
			Index:    i,
			Fraction: config.TargetFractions[i],
		})
	}
	return s
}

// Reset 按新的起跳速度和重力重新计算目标高度，并清除收集状态
func (s *TargetSystem) Reset(launchVelocity, gravity float64) {
	s.maxHeight = physics.MaxHeight(launchVelocity, gravity)
	for _, target := range s.targets() {
		target.Height = target.Fraction * s.maxHeight
		target.Collected = false
	}
}

// MaxHeight 当前行星下的理论最大跳跃高度
func (s *TargetSystem) MaxHeight() float64 {
	return s.maxHeight
}

// Update 检查宇航员高度是否触达未收集的目标
func (s *TargetSystem) Update(deltaTime float64) {
	for _, id := range ecs.GetEntitiesWith2[*components.AstronautComponent, *components.MotionComponent](s.em) {
		motion, _ := ecs.GetComponent[*components.MotionComponent](s.em, id)
		// 站在地面上不算触达（地面本身就在最低目标的容差范围内）
		if motion.State != components.JumpStateAirborne {
			continue
		}

		for _, target := range s.targets() {
			if target.Collected {
				continue
			}
			if math.Abs(motion.Height-target.Height) <= config.TargetTolerance {
				target.Collected = true
				s.queue.Push(event.Event{
					Type:    event.TargetCollected,
					Payload: event.TargetCollectedPayload{Index: target.Index, Height: target.Height},
				})
			}
		}
	}
}

// CollectedCount 已收集的目标数量
func (s *TargetSystem) CollectedCount() int {
	count := 0
	for _, target := range s.targets() {
		if target.Collected {
			count++
		}
	}
	return count
}

// Snapshot 按 Index 顺序返回目标状态
func (s *TargetSystem) Snapshot() []TargetView {
	targets := s.targets()
	views := make([]TargetView, len(targets))
	for i, target := range targets {
		views[i] = TargetView{Index: target.Index, Height: target.Height, Collected: target.Collected}
	}
	return views
}

// targets 返回按 Index 排序的目标组件（实体按创建顺序排列，即 Index 顺序）
func (s *TargetSystem) targets() []*components.TargetComponent {
	ids := ecs.GetEntitiesWith1[*components.TargetComponent](s.em)
	out := make([]*components.TargetComponent, 0, len(ids))
	for _, id := range ids {
		target, _ := ecs.GetComponent[*components.TargetComponent](s.em, id)
		out = append(out, target)
	}
	return out
}
