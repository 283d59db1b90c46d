package scenes

import (
	"fmt"
	"image/color"

	"github.com/gonewx/gravity-jump/pkg/config"
	"github.com/gonewx/gravity-jump/pkg/utils"
	"github.com/gonewx/gravity-jump/pkg/world"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const hudPanelWidth = 360

var (
	colorPanel       = color.RGBA{R: 0, G: 0, B: 0, A: 150}
	colorBarTrack    = color.RGBA{R: 60, G: 60, B: 60, A: 200}
	colorBarFallback = color.RGBA{R: 200, G: 200, B: 200, A: 255}
	colorEarthWeight = color.RGBA{R: 74, G: 144, B: 226, A: 255}
)

// hudLines 生成左上角 HUD 的文本行
func (s *GameScene) hudLines(snap world.Snapshot) []string {
	planet := s.world.Planet()
	lines := []string{
		fmt.Sprintf("%s  g = %.2f m/s^2  (%.2fx Earth)", planet.Name, planet.Gravity, s.state.GravityRatio()),
		fmt.Sprintf("Height   %6.3f m   Velocity %6.2f m/s   [%s]", snap.Height, snap.Velocity, snap.State),
		fmt.Sprintf("Max jump %6.3f m   Hang time %5.2f s", s.state.JumpHeight(), s.state.HangTime()),
		fmt.Sprintf("Mass %.2f kg   Weight %.1f N (Earth %.1f N)", s.state.PlayerMass, s.state.Weight(), s.state.EarthWeight()),
		fmt.Sprintf("Targets %d/%d   Jumps %d   Landings %d", collectedCount(snap), len(snap.Targets), snap.Stats.Jumps, snap.Stats.Landings),
		"",
	}
	if utils.IsMobile() {
		lines = append(lines, "Tap anywhere to jump", "Tap this panel to change planet")
	} else {
		lines = append(lines,
			"SPACE/click jump  1-5 or <- -> planet  C chart",
			"+/- mass (Shift x10)  W type mass  M mute  F11 fullscreen",
		)
	}
	if s.audio != nil && s.audio.IsMuted() {
		lines = append(lines, "(muted)")
	}
	return lines
}

func collectedCount(snap world.Snapshot) int {
	n := 0
	for _, t := range snap.Targets {
		if t.Collected {
			n++
		}
	}
	return n
}

// hudRect 返回 HUD 面板的屏幕区域 (x, y, w, h)
func hudRect(lineCount int) (float32, float32, float32, float32) {
	return config.HUDMarginX - 6, config.HUDMarginY - 4, hudPanelWidth, float32(lineCount*config.HUDLineHeight + 8)
}

// hudContains 判断屏幕坐标是否落在 HUD 面板内
func (s *GameScene) hudContains(x, y int) bool {
	lines := s.hudLines(s.world.Snapshot())
	rx, ry, rw, rh := hudRect(len(lines))
	fx, fy := float32(x), float32(y)
	return fx >= rx && fx < rx+rw && fy >= ry && fy < ry+rh
}

func (s *GameScene) drawHUD(screen *ebiten.Image, snap world.Snapshot) {
	lines := s.hudLines(snap)
	x, y, w, h := hudRect(len(lines))
	vector.DrawFilledRect(screen, x, y, w, h, colorPanel, false)
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, config.HUDMarginX, config.HUDMarginY+i*config.HUDLineHeight)
	}

	// 底部显示行星简介
	planet := s.world.Planet()
	ebitenutil.DebugPrintAt(screen, planet.Description, config.HUDMarginX, config.GameWindowHeight-2*config.HUDLineHeight)
}

// drawChart 绘制跳跃高度对比图和重量对比条
// 柱条长度随 chartTween 展开
func (s *GameScene) drawChart(screen *ebiten.Image) {
	progress := s.chartTween.Value()
	rows := len(s.comparison) + 3
	vector.DrawFilledRect(screen, config.ChartX-10, config.ChartY-10,
		config.ChartBarMaxWidth+60, float32(rows)*config.ChartRowHeight, colorPanel, false)

	title := fmt.Sprintf("Max jump height at v0 = %.0f m/s", config.ComparisonLaunchVelocity)
	ebitenutil.DebugPrintAt(screen, title, config.ChartX, config.ChartY)

	for i, entry := range s.comparison {
		y := config.ChartY + float64(i+1)*config.ChartRowHeight
		label := fmt.Sprintf("%-8s %6.2f m", entry.Name, entry.MaxHeight)
		if entry.Key == s.state.PlanetKey {
			label = "> " + label
		}
		ebitenutil.DebugPrintAt(screen, label, config.ChartX, int(y-config.HUDLineHeight))
		drawBar(screen, config.ChartX, y, entry.Fraction*progress, utils.HexColor(entry.Color, colorBarFallback))
	}

	bars := s.state.WeightComparison()
	y := config.ChartY + float64(len(s.comparison)+1)*config.ChartRowHeight
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Weight  Earth %.1f N", s.state.EarthWeight()), config.ChartX, int(y-config.HUDLineHeight))
	drawBar(screen, config.ChartX, y, bars.Earth/100*progress, colorEarthWeight)

	planet := s.world.Planet()
	y += config.ChartRowHeight
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("        %s %.1f N", planet.Name, s.state.Weight()), config.ChartX, int(y-config.HUDLineHeight))
	drawBar(screen, config.ChartX, y, bars.Planet/100*progress, utils.HexColor(planet.Color, colorBarFallback))
}

// drawBar 绘制一条对比柱，fraction ∈ [0,1]
func drawBar(screen *ebiten.Image, x, y, fraction float64, c color.RGBA) {
	vector.DrawFilledRect(screen, float32(x), float32(y), config.ChartBarMaxWidth, config.ChartBarHeight, colorBarTrack, false)
	if w := barWidth(fraction); w > 0 {
		vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), config.ChartBarHeight, c, false)
	}
}

// barWidth fraction -> 柱条像素宽度
func barWidth(fraction float64) float64 {
	return utils.Clamp01(fraction) * config.ChartBarMaxWidth
}

func (s *GameScene) drawMassInput(screen *ebiten.Image) {
	const w, h = 320.0, 72.0
	x := (config.GameWindowWidth - w) / 2
	y := (config.GameWindowHeight - h) / 2
	vector.DrawFilledRect(screen, float32(x), float32(y), w, h, colorPanel, false)
	vector.StrokeRect(screen, float32(x), float32(y), w, h, 1, colorBarFallback, false)

	ebitenutil.DebugPrintAt(screen, "Enter mass (kg), Enter to apply, Esc to cancel", int(x)+8, int(y)+8)
	ebitenutil.DebugPrintAt(screen, "> "+s.massInput.Text()+"_", int(x)+8, int(y)+28)
	if msg := s.massInput.Error(); msg != "" {
		ebitenutil.DebugPrintAt(screen, msg, int(x)+8, int(y)+48)
	}
}
