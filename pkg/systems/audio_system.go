package systems

import (
	synth "github.com/gonewx/gravity-jump/internal/audio"
	"github.com/gonewx/gravity-jump/pkg/ecs"
	"github.com/gonewx/gravity-jump/pkg/event"
)

// SoundPlayer 播放一次性音效（game.AudioManager 实现）
type SoundPlayer interface {
	PlaySound(id synth.SoundID) bool
}

// AudioSystem 把模拟事件映射为音效
// 起跳 -> SoundJump，落地 -> SoundLand，触达目标 -> SoundTarget
type AudioSystem struct {
	player SoundPlayer
}

// NewAudioSystem 创建音效系统，player 为 nil 时不播放任何声音
func NewAudioSystem(player SoundPlayer) *AudioSystem {
	return &AudioSystem{player: player}
}

// EventTypes 实现 event.Handler
func (s *AudioSystem) EventTypes() []event.Type {
	return []event.Type{event.JumpStarted, event.Landed, event.TargetCollected}
}

// HandleEvent 实现 event.Handler
func (s *AudioSystem) HandleEvent(_ *ecs.EntityManager, e event.Event) {
	s.Play(e)
}

// Play 播放事件对应的音效
func (s *AudioSystem) Play(e event.Event) {
	if s.player == nil {
		return
	}
	switch e.Type {
	case event.JumpStarted:
		s.player.PlaySound(synth.SoundJump)
	case event.Landed:
		s.player.PlaySound(synth.SoundLand)
	case event.TargetCollected:
		s.player.PlaySound(synth.SoundTarget)
	}
}
