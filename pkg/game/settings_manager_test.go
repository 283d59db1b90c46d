package game

import (
	"os"
	"testing"

	"github.com/quasilyte/gdata/v2"
)

// openTestGdata 在临时 HOME 下打开 gdata
func openTestGdata(t *testing.T, appName string) *gdata.Manager {
	t.Helper()
	tempDir := t.TempDir()
	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	t.Cleanup(func() { os.Setenv("HOME", originalHome) })

	gdataManager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		t.Skipf("gdata unavailable in this environment: %v", err)
	}
	return gdataManager
}

// TestDefaultSettings 测试默认值
func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	if settings.MusicVolume != 0.3 {
		t.Errorf("MusicVolume: got %v, want 0.3", settings.MusicVolume)
	}
	if settings.SoundVolume != 1.0 {
		t.Errorf("SoundVolume: got %v, want 1.0", settings.SoundVolume)
	}
	if settings.Muted {
		t.Error("Muted: got true, want false")
	}
	if settings.LastPlanet != "earth" {
		t.Errorf("LastPlanet: got %q, want earth", settings.LastPlanet)
	}
	if settings.PlayerMass != 70 {
		t.Errorf("PlayerMass: got %v, want 70", settings.PlayerMass)
	}
}

// TestNewSettingsManagerNilGdata 测试 gdataManager 为 nil 时的降级场景
func TestNewSettingsManagerNilGdata(t *testing.T) {
	sm, err := NewSettingsManager(nil)
	if err != nil {
		t.Fatalf("NewSettingsManager(nil) error: %v", err)
	}
	if sm.GetSettings() == nil {
		t.Fatal("GetSettings() returned nil in degraded mode")
	}

	sm.SetMusicVolume(0.9)
	if err := sm.Save(); err != nil {
		t.Errorf("Save() in degraded mode should return nil, got: %v", err)
	}
	if err := sm.Load(); err != nil {
		t.Errorf("Load() in degraded mode should return nil, got: %v", err)
	}
	if sm.GetSettings().MusicVolume != 0.3 {
		t.Errorf("Load() in degraded mode should restore defaults, got %v", sm.GetSettings().MusicVolume)
	}
}

// TestSettingsLoadSave 测试保存后重新加载
func TestSettingsLoadSave(t *testing.T) {
	gdataManager := openTestGdata(t, "test_gravity_settings")

	sm1, err := NewSettingsManager(gdataManager)
	if err != nil {
		t.Fatalf("NewSettingsManager() error: %v", err)
	}

	sm1.SetMusicVolume(0.5)
	sm1.SetSoundVolume(0.6)
	sm1.SetMuted(true)
	sm1.SetLastPlanet("moon")
	sm1.SetPlayerMass(82.5)
	sm1.SetFullscreen(true)

	if err := sm1.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	sm2, err := NewSettingsManager(gdataManager)
	if err != nil {
		t.Fatalf("NewSettingsManager() error on reload: %v", err)
	}
	settings := sm2.GetSettings()

	if settings.MusicVolume != 0.5 || settings.SoundVolume != 0.6 {
		t.Errorf("Loaded volumes: got %v/%v, want 0.5/0.6", settings.MusicVolume, settings.SoundVolume)
	}
	if !settings.Muted {
		t.Error("Loaded Muted: got false, want true")
	}
	if settings.LastPlanet != "moon" {
		t.Errorf("Loaded LastPlanet: got %q, want moon", settings.LastPlanet)
	}
	if settings.PlayerMass != 82.5 {
		t.Errorf("Loaded PlayerMass: got %v, want 82.5", settings.PlayerMass)
	}
	if !settings.Fullscreen {
		t.Error("Loaded Fullscreen: got false, want true")
	}
}

// TestSettingsLoadSanitizes 测试手工改坏的存档在加载时被修正
func TestSettingsLoadSanitizes(t *testing.T) {
	gdataManager := openTestGdata(t, "test_gravity_settings_sanitize")

	raw := []byte("musicVolume: 3\nsoundVolume: -1\nplayerMass: 9000\n")
	if err := gdataManager.SaveObjectProp(settingsObject, settingsProperty, raw); err != nil {
		t.Fatalf("SaveObjectProp() error: %v", err)
	}

	sm, _ := NewSettingsManager(gdataManager)
	settings := sm.GetSettings()

	if settings.MusicVolume != 1.0 || settings.SoundVolume != 0.0 {
		t.Errorf("volumes should be clamped, got %v/%v", settings.MusicVolume, settings.SoundVolume)
	}
	if settings.PlayerMass != 500 {
		t.Errorf("mass should be clamped to 500, got %v", settings.PlayerMass)
	}
	// 缺失字段保持默认值
	if settings.LastPlanet != "earth" {
		t.Errorf("missing LastPlanet should default to earth, got %q", settings.LastPlanet)
	}
}

// TestSettingsLoadCorrupted 测试无法解析的存档回退到默认设置
func TestSettingsLoadCorrupted(t *testing.T) {
	gdataManager := openTestGdata(t, "test_gravity_settings_corrupt")

	if err := gdataManager.SaveObjectProp(settingsObject, settingsProperty, []byte("musicVolume: [")); err != nil {
		t.Fatalf("SaveObjectProp() error: %v", err)
	}

	sm, _ := NewSettingsManager(gdataManager)
	if err := sm.Load(); err == nil {
		t.Error("Load() should report a corrupted settings file")
	}
	if sm.GetSettings().MusicVolume != 0.3 {
		t.Errorf("corrupted settings should fall back to defaults, got %v", sm.GetSettings().MusicVolume)
	}
}

// TestToggleMuted 测试静音切换
func TestToggleMuted(t *testing.T) {
	sm, _ := NewSettingsManager(nil)

	if !sm.ToggleMuted() {
		t.Error("first toggle should mute")
	}
	if sm.ToggleMuted() {
		t.Error("second toggle should unmute")
	}
}

// TestClampVolume 测试 clampVolume 辅助函数
func TestClampVolume(t *testing.T) {
	tests := []struct {
		input    float64
		expected float64
	}{
		{0.5, 0.5},
		{0.0, 0.0},
		{1.0, 1.0},
		{-1.0, 0.0},
		{2.0, 1.0},
		{0.999, 0.999},
	}

	for _, tt := range tests {
		if result := clampVolume(tt.input); result != tt.expected {
			t.Errorf("clampVolume(%v): got %v, want %v", tt.input, result, tt.expected)
		}
	}
}
