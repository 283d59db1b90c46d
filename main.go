package main

import (
	"flag"
	"log"
	"os"

	"github.com/gonewx/gravity-jump/pkg/app"
	"github.com/gonewx/gravity-jump/pkg/config"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verbose     = flag.Bool("verbose", false, "显示详细调试信息")
	planet      = flag.String("planet", "", "初始行星 (earth, moon, mars, jupiter, saturn)")
	mass        = flag.Float64("mass", 0, "初始体重 (kg)，0 表示使用上次保存的体重")
	planetsFile = flag.String("planets", "", "自定义行星表 YAML 路径")
	noAudio     = flag.Bool("no-audio", false, "禁用音频")
)

func main() {
	flag.Parse()

	gameApp, err := app.NewApp(app.Config{
		Verbose:     *verbose,
		Planet:      *planet,
		Mass:        *mass,
		PlanetsFile: *planetsFile,
		NoAudio:     *noAudio,
	})
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("游戏初始化失败: %v", err)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("Gravity Jump")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	runErr := ebiten.RunGame(gameApp)
	gameApp.Shutdown()
	if runErr != nil {
		log.SetOutput(os.Stderr)
		log.Fatal(runErr)
	}
}
