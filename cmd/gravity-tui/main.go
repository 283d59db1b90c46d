// gravity-tui 终端版跳跃模拟
//
// 空格跳跃，1-5 或 ←→ 切换行星，m 静音，q/Esc 退出。
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gonewx/gravity-jump/pkg/config"
	"github.com/gonewx/gravity-jump/pkg/world"
)

var (
	planet  = flag.String("planet", config.DefaultPlanetKey, "初始行星")
	planets = flag.String("planets", "", "外部行星配置文件（默认使用内置表）")
	fps     = flag.Int("fps", 30, "每秒帧数")
	mute    = flag.Bool("mute", false, "禁用声音")
	verbose = flag.Bool("verbose", false, "把日志写到 gravity-tui.log")
)

func main() {
	flag.Parse()

	log.SetOutput(io.Discard)
	if *verbose {
		f, err := os.OpenFile("gravity-tui.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err == nil {
			defer f.Close()
			log.SetOutput(f)
		}
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "gravity-tui: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var registry *config.PlanetRegistry
	if *planets != "" {
		loaded, err := config.LoadPlanetRegistry(*planets)
		if err != nil {
			return err
		}
		registry = loaded
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to init screen: %w", err)
	}
	defer screen.Fini()

	g := newGame(screen, world.New(registry, world.Options{PlanetKey: *planet}))
	if !*mute {
		if player, err := newSpeakerPlayer(); err != nil {
			// 没有声卡时静默运行
			log.Printf("[TUI] audio unavailable: %v", err)
		} else {
			g.attachSound(player)
		}
	}

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	go screen.ChannelEvents(events, quit)

	interval := time.Second / time.Duration(max(*fps, 1))
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case ev := <-events:
			if !g.handleEvent(ev) {
				close(quit)
				return nil
			}
		case <-ticker.C:
			g.update(interval.Seconds())
			g.draw()
		}
	}
}
