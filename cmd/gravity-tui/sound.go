package main

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	synth "github.com/gonewx/gravity-jump/internal/audio"
)

// speakerPlayer 通过 beep/speaker 直接播放合成音效
// 终端版没有 ebiten 音频上下文
type speakerPlayer struct {
	muted atomic.Bool
}

func newSpeakerPlayer() (*speakerPlayer, error) {
	rate := synth.SampleRate
	if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("failed to init speaker: %w", err)
	}
	return &speakerPlayer{}, nil
}

// PlaySound 实现 systems.SoundPlayer
func (p *speakerPlayer) PlaySound(id synth.SoundID) bool {
	if p.muted.Load() {
		return false
	}
	s := synth.Create(id, synth.SampleRate)
	if s == nil {
		return false
	}
	speaker.Play(beep.Take(synth.SampleRate.N(synth.MaxDuration(id)), s))
	return true
}

// ToggleMuted 切换静音
func (p *speakerPlayer) ToggleMuted() {
	p.muted.Store(!p.muted.Load())
}

// Muted 是否静音
func (p *speakerPlayer) Muted() bool {
	return p.muted.Load()
}
