package audio

import (
	"time"

	"github.com/gopxl/beep"
)

// SampleRate 与 ebiten audio.Context 使用同一采样率
const SampleRate = beep.SampleRate(48000)

// SoundID identifies a synthesized clip
type SoundID string

const (
	// SoundJump 起跳（原版的 hit 音效）
	SoundJump SoundID = "jump"
	// SoundLand 落地（原版的 success 音效）
	SoundLand SoundID = "land"
	// SoundTarget 触达高度目标
	SoundTarget SoundID = "target"
	// MusicBackground 循环背景音乐
	MusicBackground SoundID = "background"
)

const (
	jumpDuration     = 180 * time.Millisecond
	landThudDuration = 120 * time.Millisecond
	landNoteDuration = 140 * time.Millisecond
	targetDuration   = 220 * time.Millisecond
	musicNote        = 250 * time.Millisecond
)

// musicPhrase 背景音乐的音符序列（Hz，0 表示休止）
// 四小节的 C 大调分解和弦，循环播放
var musicPhrase = []float64{
	261.63, 329.63, 392.00, 523.25, 392.00, 329.63, 261.63, 0,
	220.00, 261.63, 329.63, 440.00, 329.63, 261.63, 220.00, 0,
	174.61, 220.00, 261.63, 349.23, 261.63, 220.00, 174.61, 0,
	196.00, 246.94, 293.66, 392.00, 293.66, 246.94, 196.00, 0,
}

// CreateJumpSound generates a short upward sweep
func CreateJumpSound(rate beep.SampleRate) beep.Streamer {
	sweep := NewSweep(300, 900, jumpDuration, WaveSquare, rate)
	shaped := NewEnvelope(sweep, jumpDuration, 5*time.Millisecond, 120*time.Millisecond, rate)
	return newVolume(shaped, 0.35)
}

// CreateLandSound generates a soft thud followed by a bright two-note chime
func CreateLandSound(rate beep.SampleRate) beep.Streamer {
	thud := NewEnvelope(
		NewSweep(160, 60, landThudDuration, WaveSine, rate),
		landThudDuration, 2*time.Millisecond, 100*time.Millisecond, rate,
	)
	dust := NewEnvelope(
		NewOscillator(0, landThudDuration, WaveNoise, rate),
		landThudDuration, 2*time.Millisecond, 110*time.Millisecond, rate,
	)
	impact := beep.Mix(newVolume(thud, 0.8), newVolume(dust, 0.15))

	chime := beep.Seq(
		tone(659.25, landNoteDuration, WaveSine, rate),
		tone(987.77, landNoteDuration, WaveSine, rate),
	)
	return beep.Seq(impact, newVolume(chime, 0.5))
}

// CreateTargetSound generates a bell with an octave overtone
func CreateTargetSound(rate beep.SampleRate) beep.Streamer {
	fund := NewEnvelope(NewOscillator(880, targetDuration, WaveSine, rate),
		targetDuration, 3*time.Millisecond, 200*time.Millisecond, rate)
	over := NewEnvelope(NewOscillator(1760, targetDuration, WaveSine, rate),
		targetDuration, 3*time.Millisecond, 120*time.Millisecond, rate)
	return newVolume(beep.Mix(newVolume(fund, 0.7), newVolume(over, 0.3)), 0.6)
}

// CreateBackgroundMusic generates one pass of the music phrase.
// Looping happens at playback time.
func CreateBackgroundMusic(rate beep.SampleRate) beep.Streamer {
	notes := make([]beep.Streamer, 0, len(musicPhrase))
	for _, freq := range musicPhrase {
		if freq == 0 {
			notes = append(notes, beep.Silence(rate.N(musicNote)))
			continue
		}
		lead := tone(freq, musicNote, WaveTriangle, rate)
		bass := tone(freq/2, musicNote, WaveSine, rate)
		notes = append(notes, beep.Mix(newVolume(lead, 0.6), newVolume(bass, 0.4)))
	}
	return beep.Seq(notes...)
}

// Create returns a fresh streamer for id, or nil if id is unknown
func Create(id SoundID, rate beep.SampleRate) beep.Streamer {
	switch id {
	case SoundJump:
		return CreateJumpSound(rate)
	case SoundLand:
		return CreateLandSound(rate)
	case SoundTarget:
		return CreateTargetSound(rate)
	case MusicBackground:
		return CreateBackgroundMusic(rate)
	default:
		return nil
	}
}

// MaxDuration 单个片段的渲染上限，防止错误的流无限输出
func MaxDuration(id SoundID) time.Duration {
	if id == MusicBackground {
		return time.Duration(len(musicPhrase)) * musicNote
	}
	return time.Second
}
