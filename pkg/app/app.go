// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	synth "github.com/gonewx/gravity-jump/internal/audio"
	"github.com/gonewx/gravity-jump/pkg/config"
	"github.com/gonewx/gravity-jump/pkg/game"
	"github.com/gonewx/gravity-jump/pkg/scenes"
	"github.com/gonewx/gravity-jump/pkg/utils"
	"github.com/gonewx/gravity-jump/pkg/world"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
)

// AppName gdata 存储使用的应用名
const AppName = "gravity-jump"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Planet 初始行星，为空则使用上次会话保存的行星
	Planet string
	// Mass 初始体重 (kg)，<= 0 则使用上次会话保存的体重
	Mass float64
	// PlanetsFile 自定义行星表路径，为空使用内置行星表
	PlanetsFile string
	// NoAudio 不创建音频上下文（无声卡环境）
	NoAudio bool
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	settingsManager          *game.SettingsManager
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	registry := config.DefaultPlanetRegistry()
	if cfg.PlanetsFile != "" {
		loaded, err := config.LoadPlanetRegistry(cfg.PlanetsFile)
		if err != nil {
			return nil, fmt.Errorf("行星配置加载失败: %w", err)
		}
		registry = loaded
		log.Printf("[Config] 加载行星配置: %s (%d 个行星)", cfg.PlanetsFile, registry.Len())
	}

	// 存储不可用时降级为仅内存设置
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[App] Warning: storage dir unavailable: %v", err)
	} else if path := utils.GetStoragePath(); path != "" {
		log.Printf("[App] storage path: %s", path)
	}
	gdataManager, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		log.Printf("[App] Warning: gdata unavailable: %v (settings will not persist)", err)
		gdataManager = nil
	}
	settingsManager, err := game.NewSettingsManager(gdataManager)
	if err != nil {
		return nil, fmt.Errorf("设置管理器初始化失败: %w", err)
	}
	settings := settingsManager.GetSettings()

	gameState := game.NewGameState(registry)
	planet := cfg.Planet
	if planet == "" {
		planet = settings.LastPlanet
	}
	gameState.SetPlanet(planet)
	mass := cfg.Mass
	if mass <= 0 {
		mass = settings.PlayerMass
	}
	gameState.SetPlayerMass(mass)

	// 初始化音频上下文
	var audioContext *audio.Context
	if !cfg.NoAudio {
		audioContext = audio.NewContext(int(synth.SampleRate))
	}
	audioManager := game.NewAudioManager(audioContext, settingsManager)
	log.Printf("[App] AudioManager initialized (enabled=%v)", audioManager.Enabled())

	w := world.New(registry, world.Options{PlanetKey: gameState.PlanetKey})

	// 创建场景管理器
	sceneManager := game.NewSceneManager()
	sceneManager.SwitchTo(scenes.NewGameScene(w, gameState, settingsManager, audioManager))
	log.Printf("[App] Starting on %s, mass %.2f kg", gameState.PlanetKey, gameState.PlayerMass)

	if settings.Fullscreen {
		ebiten.SetFullscreen(true)
	}

	return &App{
		sceneManager:    sceneManager,
		settingsManager: settingsManager,
	}, nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		isFullscreen := ebiten.IsFullscreen()
		if isFullscreen {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
		a.settingsManager.SetFullscreen(!isFullscreen)
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 全屏时左右 letterbox 填黑，使用线性滤波缩放
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// Shutdown 保存当前场景状态，窗口关闭后调用
func (a *App) Shutdown() {
	if !a.sceneManager.SaveOnExit() {
		if err := a.settingsManager.Save(); err != nil {
			log.Printf("[App] Warning: failed to save settings: %v", err)
		}
	}
}
