package scenes

import (
	"log"

	"github.com/gonewx/gravity-jump/pkg/config"
	"github.com/gonewx/gravity-jump/pkg/event"
	"github.com/gonewx/gravity-jump/pkg/game"
	"github.com/gonewx/gravity-jump/pkg/systems"
	"github.com/gonewx/gravity-jump/pkg/utils"
	"github.com/gonewx/gravity-jump/pkg/world"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// targetFlashDuration 收集目标后目标环高亮的时长（秒）
const targetFlashDuration = 0.35

// GameScene 侧视跳跃场景
//
// 场景只负责输入和绘制：物理由 world.World 推进，
// 派生数值（重量、跳跃高度）来自 game.GameState。
type GameScene struct {
	world    *world.World
	state    *game.GameState
	settings *game.SettingsManager // 可为 nil
	audio    *game.AudioManager    // 可为 nil

	comparison []config.ComparisonEntry
	showChart  bool
	chartTween *utils.Tween

	massInput   massInput
	stars       []star
	targetFlash map[int]float64 // 目标下标 -> 剩余高亮时间
	hudPressed  bool
}

// NewGameScene 创建跳跃场景
//
// 参数:
//   - w: 模拟世界，场景持有并逐帧驱动
//   - state: 玩家选择（体重、行星），行星会同步为 w 的当前行星
//   - sm: 设置管理器，用于保存最后选择的行星和体重（可为 nil）
//   - am: 音频管理器（可为 nil）
func NewGameScene(w *world.World, state *game.GameState, sm *game.SettingsManager, am *game.AudioManager) *GameScene {
	s := &GameScene{
		world:       w,
		state:       state,
		settings:    sm,
		audio:       am,
		comparison:  w.Registry().Comparison(config.ComparisonLaunchVelocity),
		chartTween:  utils.NewTween(0, 1, config.ChartAnimDuration),
		targetFlash: make(map[int]float64),
	}
	state.SetPlanet(w.Planet().Key)
	s.stars = generateStars(w.Planet())

	if am != nil {
		w.AddHandler(systems.NewAudioSystem(am))
	}
	w.Subscribe(s.onTargetCollected, event.TargetCollected)
	return s
}

// OnEnter 进入场景时开始播放背景音乐
func (s *GameScene) OnEnter() {
	if s.audio != nil {
		s.audio.Preload()
		s.audio.PlayMusic()
	}
}

// SaveOnExit 退出时保存最后选择的行星和体重
func (s *GameScene) SaveOnExit() bool {
	if s.settings == nil {
		return false
	}
	s.settings.SetLastPlanet(s.state.PlanetKey)
	s.settings.SetPlayerMass(s.state.PlayerMass)
	if err := s.settings.Save(); err != nil {
		log.Printf("[GameScene] Warning: failed to save settings: %v", err)
		return false
	}
	return true
}

// Update 处理输入并推进模拟
func (s *GameScene) Update(deltaTime float64) {
	jump := false
	if s.massInput.Active() {
		s.updateMassInput()
	} else {
		jump = s.handleInput(s.pollInput())
	}

	s.chartTween.Update(deltaTime)
	for i, remaining := range s.targetFlash {
		if remaining -= deltaTime; remaining <= 0 {
			delete(s.targetFlash, i)
		} else {
			s.targetFlash[i] = remaining
		}
	}

	s.world.Update(deltaTime, jump)
}

// pollInput 读取输入，点击 HUD 面板切换到下一个行星
// 这次按下在松开之前都不算跳跃
func (s *GameScene) pollInput() utils.FrameInput {
	in := utils.PollInput()
	if ok, x, y := utils.IsJustTouchedOrClicked(); ok && s.hudContains(x, y) {
		s.hudPressed = true
		in.NextPlanet = true
	}
	if s.hudPressed {
		if in.Jump {
			in.Jump = false
		} else {
			s.hudPressed = false
		}
	}
	return in
}

// handleInput 应用一帧输入，返回本帧的跳跃信号
func (s *GameScene) handleInput(in utils.FrameInput) bool {
	registry := s.world.Registry()
	switch {
	case in.PlanetIndex >= 0:
		if keys := registry.Keys(); in.PlanetIndex < len(keys) {
			s.selectPlanet(keys[in.PlanetIndex])
		}
	case in.NextPlanet:
		s.selectPlanet(registry.Next(s.state.PlanetKey))
	case in.PrevPlanet:
		s.selectPlanet(registry.Prev(s.state.PlanetKey))
	}

	if in.ToggleChart {
		s.showChart = !s.showChart
		if s.showChart {
			s.chartTween.Restart()
		}
	}
	if in.ToggleMute && s.audio != nil {
		log.Printf("[GameScene] muted: %v", s.audio.ToggleMuted())
	}
	if in.MassDelta != 0 {
		s.setMass(s.state.PlayerMass + in.MassDelta)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyW) {
		s.massInput.Begin(s.state.PlayerMass)
		return false
	}
	return in.Jump
}

// updateMassInput 体重输入框打开时接管键盘
func (s *GameScene) updateMassInput() {
	s.massInput.Append(ebiten.AppendInputChars(nil))
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		s.massInput.Backspace()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		s.massInput.Cancel()
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter) {
		mass, err := s.massInput.Commit()
		if err != nil {
			log.Printf("[GameScene] rejected mass input: %v", err)
			return
		}
		s.setMass(mass)
	}
}

// selectPlanet 切换行星，模拟世界和玩家状态同时更新
func (s *GameScene) selectPlanet(key string) {
	if key == s.state.PlanetKey {
		return
	}
	applied := s.world.SetPlanet(key)
	s.state.SetPlanet(applied)
	s.stars = generateStars(s.world.Planet())
	for i := range s.targetFlash {
		delete(s.targetFlash, i)
	}
	if s.settings != nil {
		s.settings.SetLastPlanet(applied)
	}
}

func (s *GameScene) setMass(mass float64) {
	s.state.SetPlayerMass(mass)
	if s.settings != nil {
		s.settings.SetPlayerMass(s.state.PlayerMass)
	}
}

func (s *GameScene) onTargetCollected(e event.Event) {
	if p, ok := e.Payload.(event.TargetCollectedPayload); ok {
		s.targetFlash[p.Index] = targetFlashDuration
	}
}

// Draw 绘制场景
func (s *GameScene) Draw(screen *ebiten.Image) {
	snap := s.world.Snapshot()
	planet := s.world.Planet()
	ppm := pixelsPerMeter(snap.MaxHeight)

	s.drawSky(screen, planet)
	s.drawStars(screen)
	s.drawPlanetRing(screen, planet)
	s.drawGround(screen, planet)
	s.drawTargets(screen, snap, ppm)
	s.drawParticles(screen, snap)
	s.drawAstronaut(screen, snap, ppm)

	s.drawHUD(screen, snap)
	if s.showChart {
		s.drawChart(screen)
	}
	if s.massInput.Active() {
		s.drawMassInput(screen)
	}
}
