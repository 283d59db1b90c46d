package config

// 物理核心调参常量
// 本文件定义跳跃、粒子和目标环使用的所有固定参数

// Jump Configuration (跳跃配置)
const (
	// LaunchVelocity 起跳瞬间赋予的竖直向上速度 (m/s)
	LaunchVelocity = 2.7

	// ComparisonLaunchVelocity 跳跃高度对比图使用的统一起跳速度 (m/s)
	ComparisonLaunchVelocity = 8.0

	// MinFlightDuration 跳跃动画的最短播放时长（秒）
	// 高重力星球的滞空时间很短，动画至少按此时长播放
	MinFlightDuration = 0.4
)

// Particle Configuration (着陆粒子配置)
const (
	// ParticleCapacity 同时存活的粒子上限
	ParticleCapacity = 50

	// ParticleBatchSize 每次着陆生成的粒子数量
	ParticleBatchSize = 10

	// ParticleLifetime 粒子寿命（秒）
	ParticleLifetime = 1.0

	// ParticleGravity 粒子竖直方向的减速度 (单位/秒²)
	// 与星球重力无关，保持各星球粒子效果一致
	ParticleGravity = 5.0

	// ParticleSpawnRadius 粒子生成圆环半径
	ParticleSpawnRadius = 0.3

	// ParticleSpawnHeight 粒子生成高度
	ParticleSpawnHeight = 0.1

	// ParticleMinRadialSpeed 径向速度最小值
	ParticleMinRadialSpeed = 1.0

	// ParticleRadialSpeedRange 径向速度随机范围（在最小值之上叠加 [0, range)）
	ParticleRadialSpeedRange = 1.5

	// ParticleMinVerticalSpeed 竖直速度最小值
	ParticleMinVerticalSpeed = 0.5

	// ParticleVerticalSpeedRange 竖直速度随机范围
	ParticleVerticalSpeedRange = 1.0

	// ParticleRenderFloorY 渲染时粒子 Y 坐标的下限，避免画到地面以下
	ParticleRenderFloorY = 0.05
)

// Target Configuration (目标环配置)
const (
	// TargetCount 每个星球的目标环数量
	TargetCount = 3

	// TargetTolerance 高度判定容差 (±m)
	TargetTolerance = 0.3
)

// TargetFractions 目标环高度占最大跳跃高度的比例（严格递增）
var TargetFractions = [TargetCount]float64{0.3, 0.6, 0.9}

// Player Configuration (宇航员配置)
const (
	// DefaultPlayerMass 默认体重 (kg)
	DefaultPlayerMass = 70.0

	// MinPlayerMass 体重下限 (kg)
	MinPlayerMass = 1.0

	// MaxPlayerMass 体重上限 (kg)
	MaxPlayerMass = 500.0

	// MaxMassInputLength 体重输入框允许的最大字符数
	MaxMassInputLength = 6

	// DefaultPlanetKey 默认星球
	DefaultPlanetKey = "earth"
)
