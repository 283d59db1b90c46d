// Package event 提供模拟核心的离散事件：类型定义、帧内队列和路由器。
//
// 系统在 Update 中 Push 事件，World 在同一帧内统一 DispatchAll，
// 监听者（粒子、音效、统计、前端）按注册顺序同步收到事件。
package event

// Type 事件类型
type Type int

const (
	// JumpStarted 宇航员离地
	// Trigger: JumpSystem（Grounded 且输入按下）| Payload: JumpStartedPayload
	JumpStarted Type = iota

	// Landed 宇航员落地，每次跳跃恰好一次
	// Trigger: JumpSystem | Consumer: ParticleSystem, AudioSystem | Payload: LandedPayload
	Landed

	// TargetCollected 某个高度目标首次被触达
	// Trigger: TargetSystem | Payload: TargetCollectedPayload
	TargetCollected

	// PlanetChanged 切换行星，所有运动状态已重置
	// Trigger: World.SetPlanet | Consumer: ParticleSystem, 前端订阅者 | Payload: PlanetChangedPayload
	PlanetChanged
)

var typeNames = map[Type]string{
	JumpStarted:     "jump_started",
	Landed:          "landed",
	TargetCollected: "target_collected",
	PlanetChanged:   "planet_changed",
}

// String 返回事件名称（也是 websocket 流里的事件名）
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}

// Event 一条事件记录
type Event struct {
	Type    Type
	Time    float64 // 模拟时间（秒）
	Payload any
}

// JumpStartedPayload 起跳参数
type JumpStartedPayload struct {
	Velocity float64 `json:"velocity" msgpack:"velocity"`
	Gravity  float64 `json:"gravity" msgpack:"gravity"`
}

// LandedPayload 落地参数
type LandedPayload struct {
	PlanetKey string  `json:"planet" msgpack:"planet"`
	AirTime   float64 `json:"airTime" msgpack:"airTime"` // 本次跳跃的滞空时间（秒）
}

// TargetCollectedPayload 被触达的目标
type TargetCollectedPayload struct {
	Index  int     `json:"index" msgpack:"index"`
	Height float64 `json:"height" msgpack:"height"`
}

// PlanetChangedPayload 行星切换前后的 key
type PlanetChangedPayload struct {
	From string `json:"from" msgpack:"from"`
	To   string `json:"to" msgpack:"to"`
}
