// Package scenes 实现 ebiten 前端的场景（侧视跳跃场景、HUD 和对比图）
package scenes

import (
	"github.com/gonewx/gravity-jump/pkg/game"
)

// Scene 是 game.Scene 的别名，场景包内统一使用
type Scene = game.Scene
