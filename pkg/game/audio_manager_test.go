package game

import (
	"testing"

	synth "github.com/gonewx/gravity-jump/internal/audio"
)

// 没有音频上下文时所有播放请求静默失败
func TestAudioManagerWithoutContext(t *testing.T) {
	sm, _ := NewSettingsManager(nil)
	am := NewAudioManager(nil, sm)

	if am.Enabled() {
		t.Error("manager without context should be disabled")
	}
	if am.PlaySound(synth.SoundJump) {
		t.Error("PlaySound should fail without an audio context")
	}
	if am.PlayMusic() {
		t.Error("PlayMusic should fail without an audio context")
	}
	am.Preload()
	am.StopMusic()
}

func TestAudioManagerMuteFollowsSettings(t *testing.T) {
	sm, _ := NewSettingsManager(nil)
	am := NewAudioManager(nil, sm)

	if am.IsMuted() {
		t.Fatal("should start unmuted")
	}
	if !am.ToggleMuted() || !sm.GetSettings().Muted {
		t.Error("toggle should mute and persist to settings")
	}
	if am.ToggleMuted() || sm.GetSettings().Muted {
		t.Error("second toggle should unmute")
	}
}

func TestAudioManagerVolumes(t *testing.T) {
	sm, _ := NewSettingsManager(nil)
	am := NewAudioManager(nil, sm)

	am.SetMusicVolume(2)
	am.SetSoundVolume(0.25)
	if am.getMusicVolume() != 1 {
		t.Errorf("music volume should be clamped, got %v", am.getMusicVolume())
	}
	if am.getSoundVolume() != 0.25 {
		t.Errorf("sound volume: got %v", am.getSoundVolume())
	}

	noSettings := NewAudioManager(nil, nil)
	if noSettings.getMusicVolume() != 0.3 {
		t.Errorf("default music volume: got %v, want 0.3", noSettings.getMusicVolume())
	}
	if noSettings.IsMuted() {
		t.Error("manager without settings is never muted")
	}
}
