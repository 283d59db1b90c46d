package scenes

import (
	"hash/fnv"
	"image/color"
	"math"
	"math/rand"

	"github.com/gonewx/gravity-jump/pkg/config"
	"github.com/gonewx/gravity-jump/pkg/systems"
	"github.com/gonewx/gravity-jump/pkg/utils"
	"github.com/gonewx/gravity-jump/pkg/world"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	colorAstronautSuit   = color.RGBA{R: 240, G: 240, B: 245, A: 255}
	colorAstronautVisor  = color.RGBA{R: 40, G: 60, B: 90, A: 255}
	colorTargetPending   = color.RGBA{R: 250, G: 204, B: 21, A: 255}
	colorTargetCollected = color.RGBA{R: 34, G: 197, B: 94, A: 255}
	colorTargetFlash     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	colorFallbackSky     = color.RGBA{R: 20, G: 24, B: 40, A: 255}
	colorFallbackGround  = color.RGBA{R: 90, G: 90, B: 90, A: 255}
)

// star 背景星星（屏幕坐标）
type star struct {
	X, Y  float64
	Size  float64
	Alpha float64
}

// starsPerDensity 配置里的 starDensity 按此比例换算为屏幕上的星星数量
const starsPerDensity = 1.0 / 20

// pixelsPerMeter 计算跳跃使用的比例尺
// 让最大跳跃高度刚好占满地面以上、留白以下的空间，并限制上限
func pixelsPerMeter(maxHeight float64) float64 {
	if !(maxHeight > 0) {
		return config.MaxPixelsPerMeter
	}
	usable := config.GroundLineY - config.SceneHeadroom - config.AstronautHeight
	return math.Min(config.MaxPixelsPerMeter, usable/maxHeight)
}

// heightToScreenY 宇航员脚底高度 (m) -> 屏幕Y坐标
func heightToScreenY(height, ppm float64) float64 {
	return config.GroundLineY - height*ppm
}

// particleToScreen 粒子世界坐标 -> 屏幕坐标
// 斜二测投影：Z 轴压缩后叠加到屏幕Y上，粒子围绕宇航员脚下散开
func particleToScreen(p systems.ParticleView) (float64, float64) {
	x := config.AstronautScreenX + p.X*config.ParticlePixelsPerMeter
	y := config.GroundLineY - (p.Y+p.Z*config.ParticleDepthScale)*config.ParticlePixelsPerMeter
	return x, y
}

// generateStars 按行星生成固定的星空
// 种子来自行星 key，同一行星每次进入看到的星空相同
func generateStars(planet config.Planet) []star {
	h := fnv.New64a()
	h.Write([]byte(planet.Key))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	count := int(float64(planet.StarDensity) * starsPerDensity)
	stars := make([]star, count)
	for i := range stars {
		stars[i] = star{
			X:     rng.Float64() * config.GameWindowWidth,
			Y:     rng.Float64() * (config.GroundLineY - 10),
			Size:  0.5 + rng.Float64()*1.5,
			Alpha: 0.3 + rng.Float64()*0.7,
		}
	}
	return stars
}

// skyBrightness 天空底色的亮度，亮天空上星星更暗
func skyBrightness(planet config.Planet) float64 {
	c := utils.HexColor(planet.SkyGradient.Bottom, colorFallbackSky)
	return (0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)) / 255
}

func (s *GameScene) drawSky(screen *ebiten.Image, planet config.Planet) {
	bandHeight := config.GroundLineY / config.SkyBands
	for i := 0; i < config.SkyBands; i++ {
		t := float64(i) / float64(config.SkyBands-1)
		c := utils.BlendHex(planet.SkyGradient.Top, planet.SkyGradient.Bottom, t)
		vector.DrawFilledRect(screen, 0, float32(float64(i)*bandHeight),
			config.GameWindowWidth, float32(bandHeight+1), c, false)
	}
}

func (s *GameScene) drawStars(screen *ebiten.Image) {
	dim := 1 - skyBrightness(s.world.Planet())
	if dim <= 0.1 {
		return
	}
	for _, st := range s.stars {
		c := utils.WithAlpha(color.RGBA{R: 255, G: 255, B: 255, A: 255}, st.Alpha*dim)
		vector.DrawFilledCircle(screen, float32(st.X), float32(st.Y), float32(st.Size), c, true)
	}
}

// drawPlanetRing 在天空中绘制带环的行星剪影（仅配置了环的行星）
func (s *GameScene) drawPlanetRing(screen *ebiten.Image, planet config.Planet) {
	if planet.Ring == nil {
		return
	}
	const (
		cx, cy     = 820.0, 110.0
		bodyRadius = 36.0
		segments   = 64
	)
	body := utils.HexColor(planet.Color, colorFallbackGround)
	vector.DrawFilledCircle(screen, cx, cy, bodyRadius, body, true)

	opacity := planet.Ring.Opacity
	if opacity <= 0 {
		opacity = 1
	}
	ringColor := utils.WithAlpha(utils.HexColor(planet.Ring.Color, body), opacity)
	tilt := planet.Ring.Tilt
	width := (planet.Ring.OuterRadius - planet.Ring.InnerRadius) * bodyRadius * 0.3

	// 环半径以行星半径为单位，投影成倾斜的椭圆
	r := (planet.Ring.InnerRadius + planet.Ring.OuterRadius) / 2 * bodyRadius
	prevX, prevY := ellipsePoint(cx, cy, r, tilt, 0)
	for i := 1; i <= segments; i++ {
		x, y := ellipsePoint(cx, cy, r, tilt, 2*math.Pi*float64(i)/segments)
		vector.StrokeLine(screen, float32(prevX), float32(prevY), float32(x), float32(y),
			float32(math.Max(width, 1)), ringColor, true)
		prevX, prevY = x, y
	}
}

// ellipsePoint 半径 r 的圆绕X轴倾斜 tilt 弧度后在屏幕上的投影点
func ellipsePoint(cx, cy, r, tilt, angle float64) (float64, float64) {
	x := r * math.Cos(angle)
	y := r * math.Sin(angle) * 0.3
	return cx + x*math.Cos(tilt) - y*math.Sin(tilt), cy + x*math.Sin(tilt) + y*math.Cos(tilt)
}

func (s *GameScene) drawGround(screen *ebiten.Image, planet config.Planet) {
	ground := utils.HexColor(planet.GroundColor, colorFallbackGround)
	vector.DrawFilledRect(screen, 0, config.GroundLineY,
		config.GameWindowWidth, config.GameWindowHeight-config.GroundLineY, ground, false)

	// 地表纹理：按 surfaceRepeat 画竖向刻痕，带状星球改为横向条纹
	detail := utils.BlendHex(planet.GroundColor, planet.FogColor, 0.35)
	switch planet.SurfaceTexture {
	case "jupiter-bands", "saturn-bands":
		bands := 6
		h := (config.GameWindowHeight - config.GroundLineY) / float64(bands)
		for i := 0; i < bands; i += 2 {
			vector.DrawFilledRect(screen, 0, float32(config.GroundLineY+float64(i)*h),
				config.GameWindowWidth, float32(h), detail, false)
		}
	default:
		repeat := planet.SurfaceRepeat
		if repeat <= 0 {
			repeat = 16
		}
		step := float64(config.GameWindowWidth) / float64(repeat)
		for i := 0; i < repeat; i++ {
			x := float32(float64(i)*step + step/2)
			vector.StrokeLine(screen, x, config.GroundLineY+4, x-4, config.GroundLineY+12, 2, detail, true)
		}
	}
	vector.StrokeLine(screen, 0, config.GroundLineY, config.GameWindowWidth, config.GroundLineY, 2, detail, false)
}

// drawTargets 目标环画在宇航员身体中点到达目标高度时所在的位置
func (s *GameScene) drawTargets(screen *ebiten.Image, snap world.Snapshot, ppm float64) {
	for _, target := range snap.Targets {
		c := colorTargetPending
		if target.Collected {
			c = colorTargetCollected
		}
		if remaining, ok := s.targetFlash[target.Index]; ok {
			c = utils.BlendRGBA(c, colorTargetFlash, remaining/targetFlashDuration)
		}

		y := heightToScreenY(target.Height, ppm) - config.AstronautHeight/2
		x := config.AstronautScreenX - config.TargetRingWidth/2
		vector.StrokeRect(screen, float32(x), float32(y-config.TargetRingThickness/2),
			config.TargetRingWidth, config.TargetRingThickness, 2, c, true)
		if target.Collected {
			vector.DrawFilledRect(screen, float32(x), float32(y-config.TargetRingThickness/2),
				config.TargetRingWidth, config.TargetRingThickness, utils.WithAlpha(c, 0.5), true)
		}
	}
}

func (s *GameScene) drawParticles(screen *ebiten.Image, snap world.Snapshot) {
	for _, p := range snap.Particles {
		x, y := particleToScreen(p)
		// 快照中的颜色已经乘过 alpha
		c := utils.RGBFloat(p.R, p.G, p.B)
		c.A = uint8(utils.Clamp01(p.Alpha) * 255)
		vector.DrawFilledCircle(screen, float32(x), float32(y), config.ParticleSize, c, true)
	}
}

func (s *GameScene) drawAstronaut(screen *ebiten.Image, snap world.Snapshot, ppm float64) {
	feetY := heightToScreenY(snap.Height, ppm)
	x := config.AstronautScreenX - config.AstronautWidth/2
	y := feetY - config.AstronautHeight

	// 阴影随高度变小
	shadow := 1 / (1 + snap.Height*ppm/80)
	vector.DrawFilledRect(screen,
		float32(config.AstronautScreenX-config.AstronautWidth*shadow/2), config.GroundLineY-2,
		float32(config.AstronautWidth*shadow), 4, color.RGBA{A: 90}, true)

	vector.DrawFilledRect(screen, float32(x), float32(y), config.AstronautWidth, config.AstronautHeight, colorAstronautSuit, true)
	vector.DrawFilledRect(screen, float32(x+5), float32(y+6), config.AstronautWidth-10, 10, colorAstronautVisor, true)
}
