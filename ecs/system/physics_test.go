package system

import (
	"math"
	"testing"

	"github.com/glitchzeros/zonefall/common"
	"github.com/glitchzeros/zonefall/config"
	"github.com/glitchzeros/zonefall/ecs"
	"github.com/glitchzeros/zonefall/ecs/component"
)

func newBody(w *ecs.World, pos common.Vec3, rb component.RigidBody) ecs.Entity {
	e := w.CreateEntity("body")
	_ = ecs.Add(w, e, component.TransformComponent, component.Transform{
		Position: pos,
		Scale:    common.Vec3{X: 1, Y: 1, Z: 1},
	})
	_ = ecs.Add(w, e, component.RigidBodyComponent, rb)
	return e
}

func TestFallingBodySettlesOnGround(t *testing.T) {
	w := ecs.NewWorld()
	w.SetFixedTimeStep(1.0 / 60.0)
	w.AddSystem(NewPhysicsSystem(config.Physics{Gravity: -9.81, Friction: 0.98}))

	e := newBody(w, common.Vec3{Y: 10}, component.RigidBody{Mass: 80, GravityScale: 1})

	// Two simulated seconds is ample for a 10m drop.
	for i := 0; i < 120; i++ {
		w.Update(1.0 / 60.0)
	}

	tr, _ := ecs.Get(w, e, component.TransformComponent)
	rb, _ := ecs.Get(w, e, component.RigidBodyComponent)

	if tr.Position.Y != 0 {
		t.Fatalf("y = %v, want exactly 0 after settling", tr.Position.Y)
	}
	if rb.Velocity.Y != 0 {
		t.Fatalf("vy = %v, want 0 on the ground", rb.Velocity.Y)
	}
	if !rb.Grounded {
		t.Fatalf("body should be grounded")
	}
	if !tr.Position.IsFinite() {
		t.Fatalf("position went non-finite: %+v", tr.Position)
	}
}

func TestStaticBodiesDoNotMove(t *testing.T) {
	w := ecs.NewWorld()
	w.AddSystem(NewPhysicsSystem(config.Physics{Gravity: -9.81, Friction: 0.98}))

	e := newBody(w, common.Vec3{X: 3, Y: 2, Z: 4}, component.RigidBody{IsStatic: true})
	for i := 0; i < 60; i++ {
		w.Update(1.0 / 60.0)
	}

	tr, _ := ecs.Get(w, e, component.TransformComponent)
	if tr.Position.X != 3 || tr.Position.Y != 2 || tr.Position.Z != 4 {
		t.Fatalf("static body moved to %+v", tr.Position)
	}
}

func TestFrictionDampsHorizontalVelocity(t *testing.T) {
	w := ecs.NewWorld()
	w.AddSystem(NewPhysicsSystem(config.Physics{Gravity: -9.81, Friction: 0.9}))

	e := newBody(w, common.Vec3{}, component.RigidBody{Mass: 1, Velocity: common.Vec3{X: 10}})
	w.Update(0) // bind
	w.Update(1.0 / 60.0)

	rb, _ := ecs.Get(w, e, component.RigidBodyComponent)
	if math.Abs(rb.Velocity.X-9) > 1e-9 {
		t.Fatalf("vx after one step = %v, want 9", rb.Velocity.X)
	}
}

func TestGravityScaleZeroFliesFlat(t *testing.T) {
	w := ecs.NewWorld()
	w.AddSystem(NewPhysicsSystem(config.Physics{Gravity: -9.81, Friction: 1}))

	e := newBody(w, common.Vec3{Y: 1.5}, component.RigidBody{
		Velocity:     common.Vec3{Z: 40},
		GravityScale: 0,
	})
	for i := 0; i < 30; i++ {
		w.Update(1.0 / 60.0)
	}

	tr, _ := ecs.Get(w, e, component.TransformComponent)
	if tr.Position.Y != 1.5 {
		t.Fatalf("y = %v, round with zero gravity scale should not drop", tr.Position.Y)
	}
	if tr.Position.Z <= 0 {
		t.Fatalf("z = %v, round should travel forward", tr.Position.Z)
	}
}
