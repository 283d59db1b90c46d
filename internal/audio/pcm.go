package audio

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
)

// bytesPerFrame 16-bit little-endian 双声道
const bytesPerFrame = 4

// RenderPCM drains s into 16-bit signed little-endian stereo PCM,
// the format audio.Context.NewPlayerFromBytes expects.
// At most maxDuration of audio is rendered.
func RenderPCM(s beep.Streamer, rate beep.SampleRate, maxDuration time.Duration) ([]byte, error) {
	limited := beep.Take(rate.N(maxDuration), s)

	out := make([]byte, 0, rate.N(maxDuration)*bytesPerFrame)
	buf := make([][2]float64, 512)
	var frame [bytesPerFrame]byte
	for {
		n, ok := limited.Stream(buf)
		for i := 0; i < n; i++ {
			binary.LittleEndian.PutUint16(frame[0:2], uint16(toInt16(buf[i][0])))
			binary.LittleEndian.PutUint16(frame[2:4], uint16(toInt16(buf[i][1])))
			out = append(out, frame[:]...)
		}
		if !ok {
			break
		}
	}
	if err := limited.Err(); err != nil {
		return nil, fmt.Errorf("failed to render audio: %w", err)
	}
	return out, nil
}

// toInt16 clips a [-1, 1] sample to int16
func toInt16(v float64) int16 {
	v = math.Max(-1, math.Min(1, v))
	return int16(math.Round(v * math.MaxInt16))
}

// Bank caches rendered PCM per sound
type Bank struct {
	rate  beep.SampleRate
	clips map[SoundID][]byte
}

// NewBank creates an empty bank
func NewBank(rate beep.SampleRate) *Bank {
	return &Bank{rate: rate, clips: make(map[SoundID][]byte)}
}

// PCM returns the rendered clip for id, synthesizing it on first use
func (b *Bank) PCM(id SoundID) ([]byte, error) {
	if pcm, ok := b.clips[id]; ok {
		return pcm, nil
	}
	s := Create(id, b.rate)
	if s == nil {
		return nil, fmt.Errorf("unknown sound %q", id)
	}
	pcm, err := RenderPCM(s, b.rate, MaxDuration(id))
	if err != nil {
		return nil, fmt.Errorf("sound %q: %w", id, err)
	}
	b.clips[id] = pcm
	return pcm, nil
}
