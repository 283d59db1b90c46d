package systems

import (
	"log"
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/gravity-jump/pkg/components"
	"github.com/gonewx/gravity-jump/pkg/config"
	"github.com/gonewx/gravity-jump/pkg/ecs"
	"github.com/gonewx/gravity-jump/pkg/event"
	"github.com/lucasb-eyer/go-colorful"
)

// ParticleView is the render-facing copy of a live particle.
// Y is clamped to the render floor; the color is the planet trail color
// already multiplied by Alpha.
type ParticleView struct {
	X     float64 `json:"x" msgpack:"x"`
	Y     float64 `json:"y" msgpack:"y"`
	Z     float64 `json:"z" msgpack:"z"`
	Alpha float64 `json:"alpha" msgpack:"alpha"`
	R     float64 `json:"r" msgpack:"r"`
	G     float64 `json:"g" msgpack:"g"`
	B     float64 `json:"b" msgpack:"b"`
}

// ParticleSystem owns the landing dust particles.
//
// A landing spawns one batch of ParticleBatchSize particles arranged evenly
// around the astronaut's feet. Particles fly ballistically under a light
// gravity, fade out over their lifetime and are destroyed when Life reaches 0.
// The live count never exceeds ParticleCapacity: a batch is only accepted
// while fewer than ParticleCapacity-ParticleBatchSize particles are alive,
// otherwise the landing is dropped without spawning anything.
type ParticleSystem struct {
	em    *ecs.EntityManager
	rng   *rand.Rand
	color colorful.Color
}

// NewParticleSystem creates a particle system.
// rng drives the per-particle speed jitter; pass a seeded source in tests.
func NewParticleSystem(em *ecs.EntityManager, rng *rand.Rand) *ParticleSystem {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &ParticleSystem{
		em:    em,
		rng:   rng,
		color: colorful.Color{R: 1, G: 1, B: 1},
	}
}

// SetColor sets the trail color from a "#rrggbb" string.
// Invalid strings keep the previous color.
func (ps *ParticleSystem) SetColor(hex string) {
	c, err := colorful.Hex(hex)
	if err != nil {
		log.Printf("[ParticleSystem] invalid particle color %q: %v", hex, err)
		return
	}
	ps.color = c
}

// EventTypes implements event.Handler.
func (ps *ParticleSystem) EventTypes() []event.Type {
	return []event.Type{event.Landed, event.PlanetChanged}
}

// HandleEvent implements event.Handler.
func (ps *ParticleSystem) HandleEvent(_ *ecs.EntityManager, e event.Event) {
	switch e.Type {
	case event.Landed:
		ps.SpawnBatch()
	case event.PlanetChanged:
		ps.Clear()
	}
}

// LiveCount returns the number of particles not yet marked for destruction.
func (ps *ParticleSystem) LiveCount() int {
	return ecs.CountLive[*components.ParticleComponent](ps.em)
}

// SpawnBatch spawns one landing batch if capacity allows.
// Returns false when the batch was dropped.
func (ps *ParticleSystem) SpawnBatch() bool {
	if ps.LiveCount() >= config.ParticleCapacity-config.ParticleBatchSize {
		return false
	}

	for i := 0; i < config.ParticleBatchSize; i++ {
		angle := 2 * math.Pi * float64(i) / float64(config.ParticleBatchSize)
		cos, sin := math.Cos(angle), math.Sin(angle)
		radial := config.ParticleMinRadialSpeed + ps.rng.Float64()*config.ParticleRadialSpeedRange
		vertical := config.ParticleMinVerticalSpeed + ps.rng.Float64()*config.ParticleVerticalSpeedRange

		id := ps.em.CreateEntity()
		ps.em.AddComponent(id, &components.ParticleComponent{
			Position: mgl64.Vec3{cos * config.ParticleSpawnRadius, config.ParticleSpawnHeight, sin * config.ParticleSpawnRadius},
			Velocity: mgl64.Vec3{cos * radial, vertical, sin * radial},
			Life:     config.ParticleLifetime,
			MaxLife:  config.ParticleLifetime,
		})
	}
	return true
}

// Update ages every particle and integrates the survivors.
func (ps *ParticleSystem) Update(dt float64) {
	dt = sanitizeDelta(dt)

	for _, id := range ecs.GetEntitiesWith1[*components.ParticleComponent](ps.em) {
		if ps.em.IsMarkedForDestroy(id) {
			continue
		}
		p, _ := ecs.GetComponent[*components.ParticleComponent](ps.em, id)

		p.Life -= dt
		if p.Life <= 0 {
			ps.em.DestroyEntity(id)
			continue
		}

		p.Velocity[1] -= config.ParticleGravity * dt
		p.Position = p.Position.Add(p.Velocity.Mul(dt))
	}
}

// Clear destroys all particles.
func (ps *ParticleSystem) Clear() {
	for _, id := range ecs.GetEntitiesWith1[*components.ParticleComponent](ps.em) {
		ps.em.DestroyEntity(id)
	}
}

// Snapshot returns the live particles in entity order.
func (ps *ParticleSystem) Snapshot() []ParticleView {
	ids := ecs.GetEntitiesWith1[*components.ParticleComponent](ps.em)
	views := make([]ParticleView, 0, len(ids))
	for _, id := range ids {
		if ps.em.IsMarkedForDestroy(id) {
			continue
		}
		p, _ := ecs.GetComponent[*components.ParticleComponent](ps.em, id)
		alpha := p.Alpha()
		views = append(views, ParticleView{
			X:     p.Position.X(),
			Y:     math.Max(p.Position.Y(), config.ParticleRenderFloorY),
			Z:     p.Position.Z(),
			Alpha: alpha,
			R:     ps.color.R * alpha,
			G:     ps.color.G * alpha,
			B:     ps.color.B * alpha,
		})
	}
	return views
}
