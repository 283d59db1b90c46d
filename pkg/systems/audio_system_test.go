package systems

import (
	"testing"

	synth "github.com/gonewx/gravity-jump/internal/audio"
	"github.com/gonewx/gravity-jump/pkg/event"
)

type fakeSoundPlayer struct {
	played []synth.SoundID
}

func (f *fakeSoundPlayer) PlaySound(id synth.SoundID) bool {
	f.played = append(f.played, id)
	return true
}

func TestAudioSystemMapsEvents(t *testing.T) {
	player := &fakeSoundPlayer{}
	s := NewAudioSystem(player)

	for _, typ := range []event.Type{event.JumpStarted, event.TargetCollected, event.Landed, event.PlanetChanged} {
		s.HandleEvent(nil, event.Event{Type: typ})
	}

	want := []synth.SoundID{synth.SoundJump, synth.SoundTarget, synth.SoundLand}
	if len(player.played) != len(want) {
		t.Fatalf("expected %d sounds, got %v", len(want), player.played)
	}
	for i := range want {
		if player.played[i] != want[i] {
			t.Errorf("sound[%d]: got %s, want %s", i, player.played[i], want[i])
		}
	}
}

func TestAudioSystemNilPlayer(t *testing.T) {
	s := NewAudioSystem(nil)
	s.Play(event.Event{Type: event.Landed})
}
