package world

import (
	"math"
	"math/rand"
	"testing"

	"github.com/gonewx/gravity-jump/pkg/config"
	"github.com/gonewx/gravity-jump/pkg/event"
)

const frame = 1.0 / 60.0

func newTestWorld(planet string) *World {
	return New(nil, Options{PlanetKey: planet, Rand: rand.New(rand.NewSource(1))})
}

// jumpOnce 起跳一次并运行到落地，返回期间产生的全部事件
func jumpOnce(t *testing.T, w *World) []event.Event {
	t.Helper()
	events := w.Update(frame, true)
	for i := 0; i < 2000; i++ {
		evs := w.Update(frame, false)
		events = append(events, evs...)
		for _, e := range evs {
			if e.Type == event.Landed {
				return events
			}
		}
	}
	t.Fatal("astronaut never landed")
	return nil
}

func TestNewWorldDefaults(t *testing.T) {
	w := newTestWorld("")
	snap := w.Snapshot()

	if snap.Planet != config.DefaultPlanetKey {
		t.Errorf("default planet: got %q", snap.Planet)
	}
	if snap.Height != 0 || snap.Velocity != 0 || snap.State != "grounded" {
		t.Errorf("astronaut should start at rest, got %+v", snap)
	}
	if len(snap.Targets) != config.TargetCount {
		t.Errorf("expected %d targets, got %d", config.TargetCount, len(snap.Targets))
	}
	if len(snap.Particles) != 0 {
		t.Error("no particles expected before the first landing")
	}

	if got := newTestWorld("pluto").Planet().Key; got != config.DefaultPlanetKey {
		t.Errorf("unknown planet should fall back, got %q", got)
	}
}

func TestWorldJumpCycle(t *testing.T) {
	w := newTestWorld("earth")
	events := jumpOnce(t, w)

	count := map[event.Type]int{}
	for _, e := range events {
		count[e.Type]++
	}
	if count[event.JumpStarted] != 1 || count[event.Landed] != 1 {
		t.Errorf("expected one start and one landing, got %v", count)
	}
	if count[event.TargetCollected] != config.TargetCount {
		t.Errorf("a full earth jump should collect every target, got %d", count[event.TargetCollected])
	}

	// 落地当帧生成一批粒子
	if got := w.ParticleCount(); got != config.ParticleBatchSize {
		t.Errorf("expected %d particles after landing, got %d", config.ParticleBatchSize, got)
	}

	stats := w.Stats()
	if stats.Jumps != 1 || stats.Landings != 1 || stats.TargetsCollected != config.TargetCount {
		t.Errorf("stats mismatch: %+v", stats)
	}

	// 粒子寿命 1 秒后全部消失
	for i := 0; i < 70; i++ {
		w.Update(frame, false)
	}
	if got := w.ParticleCount(); got != 0 {
		t.Errorf("particles should expire, %d left", got)
	}
}

func TestWorldRepeatedLandingsRespectCapacity(t *testing.T) {
	w := newTestWorld("jupiter")

	// 木星上跳跃很短，粒子来不及消失就再次落地
	for i := 0; i < 10; i++ {
		jumpOnce(t, w)
		if got := w.ParticleCount(); got > config.ParticleCapacity {
			t.Fatalf("jump %d: particle count %d exceeds capacity", i, got)
		}
	}
}

func TestWorldSetPlanetResets(t *testing.T) {
	w := newTestWorld("earth")
	jumpOnce(t, w)
	w.Update(frame, true)
	w.Update(frame, false)

	var changes []event.PlanetChangedPayload
	landings := 0
	w.Subscribe(func(e event.Event) {
		switch e.Type {
		case event.PlanetChanged:
			changes = append(changes, e.Payload.(event.PlanetChangedPayload))
		case event.Landed:
			landings++
		}
	}, event.PlanetChanged, event.Landed)

	if got := w.SetPlanet("moon"); got != "moon" {
		t.Errorf("SetPlanet returned %q", got)
	}

	snap := w.Snapshot()
	if snap.Height != 0 || snap.Velocity != 0 || snap.State != "grounded" {
		t.Errorf("planet change should reset motion, got h=%f v=%f %s", snap.Height, snap.Velocity, snap.State)
	}
	if len(snap.Particles) != 0 {
		t.Errorf("planet change should clear particles, %d left", len(snap.Particles))
	}
	for _, target := range snap.Targets {
		if target.Collected {
			t.Errorf("target %d should be reset", target.Index)
		}
	}
	if math.Abs(snap.MaxHeight-2.25) > 1e-3 {
		t.Errorf("moon max height: got %f, want 2.25", snap.MaxHeight)
	}
	if landings != 0 {
		t.Error("planet change must not emit a landing")
	}
	if len(changes) != 1 || changes[0].From != "earth" || changes[0].To != "moon" {
		t.Errorf("unexpected planet change events: %+v", changes)
	}
}

func TestWorldNegativeDeltaIgnored(t *testing.T) {
	w := newTestWorld("earth")
	w.Update(frame, true)
	before := w.Snapshot()

	w.Update(-1, false)
	w.Update(math.NaN(), false)

	after := w.Snapshot()
	if after.Height != before.Height || after.Time != before.Time {
		t.Errorf("invalid dt should not advance the world: before %+v after %+v", before, after)
	}
}

func TestWorldEventTimestamps(t *testing.T) {
	w := newTestWorld("earth")
	w.Update(frame, false)
	events := w.Update(frame, true)

	if len(events) == 0 || events[0].Type != event.JumpStarted {
		t.Fatalf("expected JumpStarted, got %v", events)
	}
	if math.Abs(events[0].Time-2*frame) > 1e-12 {
		t.Errorf("event time: got %f, want %f", events[0].Time, 2*frame)
	}
}
