package game

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gonewx/gravity-jump/pkg/config"
	"github.com/gonewx/gravity-jump/pkg/physics"
)

// GameState 玩家选择与派生物理数值
//
// 保存当前行星、玩家质量和起跳速度，提供 HUD 需要的派生数值（重量、跳跃高度、滞空时间）。
// 运动状态本身由 world.World 维护，这里不持有。
type GameState struct {
	registry *config.PlanetRegistry

	PlanetKey      string  // 当前行星
	PlayerMass     float64 // 玩家质量 (kg)，始终在 [MinPlayerMass, MaxPlayerMass] 内
	LaunchVelocity float64 // 起跳速度 (m/s)
}

// WeightBars 重量对比条的宽度百分比（较重一方为 100）
type WeightBars struct {
	Earth  float64
	Planet float64
}

// NewGameState 创建默认状态：地球、70kg
func NewGameState(registry *config.PlanetRegistry) *GameState {
	if registry == nil {
		registry = config.DefaultPlanetRegistry()
	}
	return &GameState{
		registry:       registry,
		PlanetKey:      registry.Default().Key,
		PlayerMass:     config.DefaultPlayerMass,
		LaunchVelocity: config.LaunchVelocity,
	}
}

// Planet 返回当前行星
func (gs *GameState) Planet() config.Planet {
	return gs.registry.Get(gs.PlanetKey)
}

// SetPlanet 切换行星，未知 key 回退到默认行星
func (gs *GameState) SetPlanet(key string) {
	gs.PlanetKey = gs.registry.Resolve(key)
}

// SetPlayerMass 设置质量，先保留两位小数再限制到合法范围
func (gs *GameState) SetPlayerMass(mass float64) {
	gs.PlayerMass = ClampMass(mass)
}

// Weight 当前行星上的重量 (N)
func (gs *GameState) Weight() float64 {
	return physics.Weight(gs.PlayerMass, gs.Planet().Gravity)
}

// EarthWeight 参考行星（地球）上的重量 (N)
func (gs *GameState) EarthWeight() float64 {
	return physics.Weight(gs.PlayerMass, gs.registry.Reference().Gravity)
}

// WeightRatio 当前重量 / 地球重量
func (gs *GameState) WeightRatio() float64 {
	earth := gs.EarthWeight()
	if earth == 0 {
		return 0
	}
	return gs.Weight() / earth
}

// WeightDifference 当前重量 - 地球重量 (N)，负数表示更轻
func (gs *GameState) WeightDifference() float64 {
	return gs.Weight() - gs.EarthWeight()
}

// WeightComparison 重量对比条百分比
func (gs *GameState) WeightComparison() WeightBars {
	weight, earth := gs.Weight(), gs.EarthWeight()
	maxWeight := math.Max(weight, earth)
	if maxWeight == 0 {
		return WeightBars{}
	}
	return WeightBars{
		Earth:  earth / maxWeight * 100,
		Planet: weight / maxWeight * 100,
	}
}

// GravityRatio 当前重力 / 地球重力
func (gs *GameState) GravityRatio() float64 {
	return gs.registry.GravityRatio(gs.PlanetKey)
}

// JumpHeight 理论最大跳跃高度 (m)
func (gs *GameState) JumpHeight() float64 {
	return physics.MaxHeight(gs.LaunchVelocity, gs.Planet().Gravity)
}

// HangTime 理论滞空时间 (s)
func (gs *GameState) HangTime() float64 {
	return physics.HangTime(gs.LaunchVelocity, gs.Planet().Gravity)
}

// ParseMassInput 解析玩家输入的质量文本
//
// 拒绝空串、超过 MaxMassInputLength 个字符、非数字以及小于 MinPlayerMass 的值；
// 调用方在出错时保留原来的质量。上限不在这里检查，提交时由 ClampMass 处理。
//
// 参数:
//   - text: 输入框内容
//
// 返回:
//   - float64: 解析出的质量
//   - error: 输入无效时返回错误
func ParseMassInput(text string) (float64, error) {
	if len(text) > config.MaxMassInputLength {
		return 0, fmt.Errorf("mass input too long: %d > %d characters", len(text), config.MaxMassInputLength)
	}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0, fmt.Errorf("mass input is empty")
	}
	mass, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(mass) || math.IsInf(mass, 0) {
		return 0, fmt.Errorf("mass input %q is not a number", text)
	}
	if mass < config.MinPlayerMass {
		return 0, fmt.Errorf("mass %.2f below minimum %.0f kg", mass, config.MinPlayerMass)
	}
	return mass, nil
}

// ClampMass 保留两位小数并限制到 [MinPlayerMass, MaxPlayerMass]
// NaN 返回默认质量
func ClampMass(mass float64) float64 {
	if math.IsNaN(mass) {
		return config.DefaultPlayerMass
	}
	rounded := math.Round(mass*100) / 100
	return math.Min(math.Max(rounded, config.MinPlayerMass), config.MaxPlayerMass)
}
