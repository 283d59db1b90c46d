package config

// 布局配置常量
// 本文件定义侧视渲染和 HUD 的屏幕布局参数

const (
	// GameWindowWidth 游戏逻辑屏幕宽度
	GameWindowWidth = 960

	// GameWindowHeight 游戏逻辑屏幕高度
	GameWindowHeight = 600

	// GroundLineY 地面线的屏幕Y坐标
	GroundLineY = 500.0

	// AstronautScreenX 宇航员的屏幕X坐标（水平居中偏左，给对比图留出空间）
	AstronautScreenX = 360.0

	// AstronautWidth 宇航员绘制宽度（像素）
	AstronautWidth = 28.0

	// AstronautHeight 宇航员绘制高度（像素）
	AstronautHeight = 48.0

	// SceneHeadroom 宇航员最高点以上保留的屏幕空间（像素）
	SceneHeadroom = 80.0

	// MaxPixelsPerMeter 每米对应像素数的上限
	// 地球的最大高度只有 0.37m，不设上限会把跳跃拉伸得过分夸张
	MaxPixelsPerMeter = 600.0

	// TargetRingWidth 目标环绘制宽度（像素）
	TargetRingWidth = 90.0

	// TargetRingThickness 目标环线宽（像素）
	TargetRingThickness = 6.0

	// ParticleDepthScale 粒子 Z 轴在侧视图中的透视压缩系数
	ParticleDepthScale = 0.35

	// ParticlePixelsPerMeter 粒子使用的固定比例尺
	// 粒子水平飞散可达 3 米左右，不能跟随跳跃高度的比例尺
	ParticlePixelsPerMeter = 120.0

	// ParticleSize 粒子绘制半径（像素）
	ParticleSize = 3.0

	// HUDMarginX HUD 左边距
	HUDMarginX = 16

	// HUDMarginY HUD 上边距
	HUDMarginY = 16

	// HUDLineHeight HUD 文本行高（ebitenutil.DebugPrint 字体）
	HUDLineHeight = 16

	// SkyBands 天空渐变的分段数
	SkyBands = 24

	// ChartAnimDuration 对比图柱条展开动画时长（秒）
	ChartAnimDuration = 0.6

	// ChartX 对比图左上角X坐标
	ChartX = 600.0

	// ChartY 对比图左上角Y坐标
	ChartY = 40.0

	// ChartBarMaxWidth 对比图柱条最大宽度
	ChartBarMaxWidth = 300.0

	// ChartBarHeight 对比图柱条高度
	ChartBarHeight = 18.0

	// ChartRowHeight 对比图行高
	ChartRowHeight = 40.0
)
