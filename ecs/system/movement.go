package system

import (
	"github.com/glitchzeros/zonefall/ecs"
	"github.com/glitchzeros/zonefall/ecs/component"
)

const MovementSystemName = "movement"

// MovementSystem turns per-entity input intent into horizontal velocity.
// Players and bots go through the same path; only who writes the intent
// differs.
type MovementSystem struct {
	ecs.BaseSystem
}

func NewMovementSystem() *MovementSystem {
	return &MovementSystem{
		BaseSystem: ecs.NewBaseSystem(MovementSystemName, ecs.PriorityHigh, ecs.Query{
			All: []component.ID{
				component.InputIntentComponent.ID(),
				component.MovementComponent.ID(),
				component.RigidBodyComponent.ID(),
			},
		}),
	}
}

func (s *MovementSystem) Update(dt float64) error {
	w := s.World()
	for _, e := range s.Entities() {
		intent, ok := ecs.Get(w, e, component.InputIntentComponent)
		if !ok {
			continue
		}
		mv, ok := ecs.Get(w, e, component.MovementComponent)
		if !ok {
			continue
		}
		rb, ok := ecs.Get(w, e, component.RigidBodyComponent)
		if !ok || rb.IsStatic {
			continue
		}

		dir := intent.Move
		dir.Y = 0
		if l := dir.Length(); l > 1 {
			dir = dir.Scale(1 / l)
		}
		speed := mv.Speed
		if intent.Sprint && mv.SprintMultiplier > 0 {
			speed *= mv.SprintMultiplier
		}
		rb.Velocity.X = dir.X * speed
		rb.Velocity.Z = dir.Z * speed
	}
	return nil
}
