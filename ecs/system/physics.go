package system

import (
	"github.com/glitchzeros/zonefall/config"
	"github.com/glitchzeros/zonefall/ecs"
	"github.com/glitchzeros/zonefall/ecs/component"
)

const PhysicsSystemName = "physics"

// PhysicsSystem integrates rigid bodies with semi-implicit Euler in the
// fixed-timestep pass: gravity into velocity first, then velocity into
// position, so the step is stable at any fixed rate.
type PhysicsSystem struct {
	ecs.BaseSystem
	gravity  float64
	friction float64
}

func NewPhysicsSystem(cfg config.Physics) *PhysicsSystem {
	return &PhysicsSystem{
		BaseSystem: ecs.NewBaseSystem(PhysicsSystemName, ecs.PriorityHigh, ecs.Query{
			All: []component.ID{
				component.TransformComponent.ID(),
				component.RigidBodyComponent.ID(),
			},
		}),
		gravity:  cfg.Gravity,
		friction: cfg.Friction,
	}
}

// SetTuning swaps the gravity and friction constants. The host calls
// this on config hot reload.
func (s *PhysicsSystem) SetTuning(cfg config.Physics) {
	s.gravity = cfg.Gravity
	s.friction = cfg.Friction
}

func (s *PhysicsSystem) FixedUpdate(dt float64) error {
	w := s.World()
	for _, e := range s.Entities() {
		rb, ok := ecs.Get(w, e, component.RigidBodyComponent)
		if !ok || rb.IsStatic {
			continue
		}
		tr, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok {
			continue
		}

		rb.Velocity.Y += s.gravity * rb.GravityScale * dt
		tr.Position = tr.Position.Add(rb.Velocity.Scale(dt))

		// Ground plane at y=0: clamp and kill downward velocity.
		if tr.Position.Y <= 0 {
			tr.Position.Y = 0
			if rb.Velocity.Y < 0 {
				rb.Velocity.Y = 0
			}
			rb.Grounded = true
		} else {
			rb.Grounded = false
		}

		// Horizontal friction is a flat multiplier per step, not scaled by
		// dt. Frame-rate dependent when the fixed step changes; kept as-is
		// to match the original damping feel.
		rb.Velocity.X *= s.friction
		rb.Velocity.Z *= s.friction
	}
	return nil
}
