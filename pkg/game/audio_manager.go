package game

import (
	"bytes"
	"log"

	synth "github.com/gonewx/gravity-jump/internal/audio"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// AudioManager 音频管理器
// 职责：
//   - 统一管理起跳、落地、目标音效和背景音乐的播放
//   - 实现音量和静音控制（从 SettingsManager 读取设置）
//   - 所有声音在首次使用时由 internal/audio 合成，之后复用播放器
//
// audioContext 为 nil 时进入静默模式：所有播放调用直接返回 false，
// 终端版和测试环境不需要音频设备。
type AudioManager struct {
	audioContext    *audio.Context
	settingsManager *SettingsManager // 可为 nil
	bank            *synth.Bank

	soundPlayers map[synth.SoundID]*audio.Player
	musicPlayer  *audio.Player
	musicWanted  bool // 调用过 PlayMusic 且未 StopMusic，取消静音时据此恢复
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - audioContext: ebiten 音频上下文（采样率应为 synth.SampleRate），可为 nil
//   - sm: SettingsManager 实例（用于读取音量设置，可为 nil）
func NewAudioManager(audioContext *audio.Context, sm *SettingsManager) *AudioManager {
	return &AudioManager{
		audioContext:    audioContext,
		settingsManager: sm,
		bank:            synth.NewBank(synth.SampleRate),
		soundPlayers:    make(map[synth.SoundID]*audio.Player),
	}
}

// Enabled 是否有可用的音频输出
func (am *AudioManager) Enabled() bool {
	return am.audioContext != nil
}

// PlaySound 播放音效（单次）
//
// 返回：
//   - bool: 是否成功播放
func (am *AudioManager) PlaySound(id synth.SoundID) bool {
	if !am.Enabled() || am.IsMuted() {
		return false
	}

	player := am.getSoundPlayer(id)
	if player == nil {
		return false
	}

	player.SetVolume(am.getSoundVolume())
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind sound %s: %v", id, err)
	}
	player.Play()
	return true
}

// PlayMusic 循环播放背景音乐
// 静音时只记录意图，取消静音后自动开始
func (am *AudioManager) PlayMusic() bool {
	am.musicWanted = true
	if !am.Enabled() || am.IsMuted() {
		return false
	}

	if am.musicPlayer == nil {
		pcm, err := am.bank.PCM(synth.MusicBackground)
		if err != nil {
			log.Printf("[AudioManager] Warning: Failed to synthesize music: %v", err)
			return false
		}
		loop := audio.NewInfiniteLoop(bytes.NewReader(pcm), int64(len(pcm)))
		player, err := am.audioContext.NewPlayer(loop)
		if err != nil {
			log.Printf("[AudioManager] Warning: Failed to create music player: %v", err)
			return false
		}
		am.musicPlayer = player
	}

	if am.musicPlayer.IsPlaying() {
		return true
	}
	am.musicPlayer.SetVolume(am.getMusicVolume())
	am.musicPlayer.Play()
	log.Printf("[AudioManager] Playing music (volume: %.2f)", am.getMusicVolume())
	return true
}

// StopMusic 停止背景音乐
func (am *AudioManager) StopMusic() {
	am.musicWanted = false
	am.pauseMusic()
}

func (am *AudioManager) pauseMusic() {
	if am.musicPlayer != nil {
		am.musicPlayer.Pause()
	}
}

// IsMuted 当前是否静音
func (am *AudioManager) IsMuted() bool {
	return am.settingsManager != nil && am.settingsManager.GetSettings().Muted
}

// SetMuted 设置静音，立即暂停或恢复背景音乐
func (am *AudioManager) SetMuted(muted bool) {
	if am.settingsManager != nil {
		am.settingsManager.SetMuted(muted)
	}
	if muted {
		am.pauseMusic()
		for _, player := range am.soundPlayers {
			player.Pause()
		}
		return
	}
	if am.musicWanted {
		am.PlayMusic()
	}
}

// ToggleMuted 切换静音并返回新状态
func (am *AudioManager) ToggleMuted() bool {
	muted := !am.IsMuted()
	am.SetMuted(muted)
	return muted
}

// SetMusicVolume 设置音乐音量，立即应用到背景音乐
func (am *AudioManager) SetMusicVolume(volume float64) {
	if am.settingsManager != nil {
		am.settingsManager.SetMusicVolume(volume)
	}
	if am.musicPlayer != nil {
		am.musicPlayer.SetVolume(am.getMusicVolume())
	}
}

// SetSoundVolume 设置音效音量，影响之后播放的音效
func (am *AudioManager) SetSoundVolume(volume float64) {
	if am.settingsManager != nil {
		am.settingsManager.SetSoundVolume(volume)
	}
}

// getSoundPlayer 获取或创建音效播放器
func (am *AudioManager) getSoundPlayer(id synth.SoundID) *audio.Player {
	if player, exists := am.soundPlayers[id]; exists {
		return player
	}

	pcm, err := am.bank.PCM(id)
	if err != nil {
		log.Printf("[AudioManager] Warning: Failed to synthesize sound %s: %v", id, err)
		return nil
	}
	player := am.audioContext.NewPlayerFromBytes(pcm)
	am.soundPlayers[id] = player
	return player
}

// getMusicVolume 获取音乐音量设置
func (am *AudioManager) getMusicVolume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().MusicVolume
	}
	return DefaultSettings().MusicVolume
}

// getSoundVolume 获取音效音量设置
func (am *AudioManager) getSoundVolume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().SoundVolume
	}
	return DefaultSettings().SoundVolume
}

// Preload 预先合成全部音效，避免首次播放时卡顿
func (am *AudioManager) Preload() {
	if !am.Enabled() {
		return
	}
	ids := []synth.SoundID{synth.SoundJump, synth.SoundLand, synth.SoundTarget}
	for _, id := range ids {
		am.getSoundPlayer(id)
	}
	log.Printf("[AudioManager] Preloaded %d sounds", len(ids))
}
