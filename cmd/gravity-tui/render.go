package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/gonewx/gravity-jump/pkg/config"
	"github.com/lucasb-eyer/go-colorful"
)

// hudRows 顶部 HUD 占用的行数
const hudRows = 4

// hexStyle 十六进制颜色 -> 前景色样式，解析失败时使用默认样式
func hexStyle(hex string) tcell.Style {
	c, err := colorful.Hex(hex)
	if err != nil {
		return tcell.StyleDefault
	}
	r, g, b := c.RGB255()
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
}

func (g *game) draw() {
	s := g.screen
	s.Clear()
	width, height := s.Size()
	if width < 20 || height < hudRows+4 {
		drawText(s, 0, 0, tcell.StyleDefault, "terminal too small")
		s.Show()
		return
	}

	snap := g.world.Snapshot()
	planet := g.world.Planet()
	groundRow := height - 2
	centerCol := width / 2
	scale := rowsPerMeter(snap.MaxHeight, groundRow-hudRows-2)

	// 地面
	groundStyle := hexStyle(planet.GroundColor)
	for x := 0; x < width; x++ {
		s.SetContent(x, groundRow, '▀', nil, groundStyle)
		s.SetContent(x, groundRow+1, '░', nil, groundStyle)
	}

	// 目标环
	for _, t := range snap.Targets {
		style := tcell.StyleDefault.Foreground(tcell.ColorYellow)
		if t.Collected {
			style = tcell.StyleDefault.Foreground(tcell.ColorGreen)
		}
		row := heightToRow(t.Height, scale, groundRow)
		for x := centerCol - 5; x <= centerCol+5; x++ {
			if x != centerCol {
				s.SetContent(x, row, '─', nil, style)
			}
		}
		drawText(s, centerCol+7, row, style, fmt.Sprintf("%.2f m", t.Height))
	}

	// 粒子
	dust := hexStyle(planet.Color)
	for _, p := range snap.Particles {
		col, row := particleCell(p, centerCol, groundRow)
		if col >= 0 && col < width && row > hudRows && row < groundRow {
			ch := '·'
			if p.Alpha > 0.5 {
				ch = '•'
			}
			s.SetContent(col, row, ch, nil, dust)
		}
	}

	// 宇航员：两行高
	feet := heightToRow(snap.Height, scale, groundRow)
	body := tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	s.SetContent(centerCol, feet, 'A', nil, body)
	if feet-1 > hudRows-1 {
		s.SetContent(centerCol, feet-1, 'o', nil, body)
	}

	g.drawHUD(width, snap.Height, snap.Velocity, snap.State, snap.Stats.Jumps, collected(snap.Targets))
	s.Show()
}

func (g *game) drawHUD(width int, height, velocity float64, state string, jumps, targets int) {
	planet := g.world.Planet()
	registry := g.world.Registry()
	title := hexStyle(planet.Color).Bold(true)

	drawText(g.screen, 1, 0, title, fmt.Sprintf("%s  g=%.2f m/s²  (%.2fx Earth)", planet.Name, planet.Gravity, registry.GravityRatio(planet.Key)))
	drawText(g.screen, 1, 1, tcell.StyleDefault, fmt.Sprintf("height %6.3f m  velocity %6.2f m/s  %-8s  jumps %d  targets %d/%d",
		height, velocity, state, jumps, targets, config.TargetCount))
	muted := ""
	if g.sound != nil && g.sound.Muted() {
		muted = "  [muted]"
	}
	drawText(g.screen, 1, 2, tcell.StyleDefault.Dim(true), "space jump  1-5/←→ planet  m mute  q quit"+muted)
	if g.lastEvent != "" {
		drawText(g.screen, width-len(g.lastEvent)-2, 0, tcell.StyleDefault.Dim(true), g.lastEvent)
	}
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}
