package main

import (
	"github.com/gdamore/tcell/v2"
	"github.com/gonewx/gravity-jump/pkg/config"
	"github.com/gonewx/gravity-jump/pkg/event"
	"github.com/gonewx/gravity-jump/pkg/systems"
	"github.com/gonewx/gravity-jump/pkg/world"
)

// game 终端前端状态
type game struct {
	screen tcell.Screen
	world  *world.World
	sound  *speakerPlayer // 可为 nil

	jumpFrames int // 终端没有按键抬起事件，空格按下后保持若干帧
	lastEvent  string
}

// jumpHoldFrames 一次空格按下视为按住的帧数
const jumpHoldFrames = 2

func newGame(screen tcell.Screen, w *world.World) *game {
	g := &game{screen: screen, world: w}
	w.Subscribe(func(e event.Event) {
		g.lastEvent = e.Type.String()
	}, event.JumpStarted, event.Landed, event.TargetCollected, event.PlanetChanged)
	return g
}

func (g *game) attachSound(p *speakerPlayer) {
	g.sound = p
	g.world.AddHandler(systems.NewAudioSystem(p))
}

// handleEvent 处理终端事件，返回 false 表示退出
func (g *game) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		g.screen.Sync()
	case *tcell.EventKey:
		return g.handleKey(ev.Key(), ev.Rune())
	}
	return true
}

func (g *game) handleKey(key tcell.Key, r rune) bool {
	registry := g.world.Registry()
	current := g.world.Planet().Key

	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRight:
		g.world.SetPlanet(registry.Next(current))
		return true
	case tcell.KeyLeft:
		g.world.SetPlanet(registry.Prev(current))
		return true
	}

	switch {
	case r == 'q':
		return false
	case r == ' ':
		g.jumpFrames = jumpHoldFrames
	case r == 'm' && g.sound != nil:
		g.sound.ToggleMuted()
	case r >= '1' && r <= '9':
		if keys := registry.Keys(); int(r-'1') < len(keys) {
			g.world.SetPlanet(keys[r-'1'])
		}
	}
	return true
}

func (g *game) update(dt float64) {
	jump := g.jumpFrames > 0
	if g.jumpFrames > 0 {
		g.jumpFrames--
	}
	g.world.Update(dt, jump)
}

// rowsPerMeter 终端行的比例尺，最高点刚好到 HUD 下方
func rowsPerMeter(maxHeight float64, skyRows int) float64 {
	if !(maxHeight > 0) || skyRows <= 0 {
		return 1
	}
	return float64(skyRows) / maxHeight
}

// heightToRow 高度 (m) -> 行号，groundRow 是地面所在行
func heightToRow(height, scale float64, groundRow int) int {
	return groundRow - 1 - int(height*scale+0.5)
}

// particleColumns 粒子水平方向每米的列数
const particleColumns = 8.0

// particleCell 粒子 -> 终端坐标，Z 轴压缩后叠加到行上
func particleCell(p systems.ParticleView, centerCol, groundRow int) (int, int) {
	col := centerCol + int(p.X*particleColumns)
	row := groundRow - 1 - int((p.Y+p.Z*config.ParticleDepthScale)*particleColumns/2)
	return col, row
}

func collected(targets []systems.TargetView) int {
	n := 0
	for _, t := range targets {
		if t.Collected {
			n++
		}
	}
	return n
}
