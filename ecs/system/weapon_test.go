package system

import (
	"testing"

	"github.com/glitchzeros/zonefall/common"
	"github.com/glitchzeros/zonefall/ecs"
	"github.com/glitchzeros/zonefall/ecs/component"
)

func newShooter(w *ecs.World, wp component.Weapon) ecs.Entity {
	e := w.CreateEntity("shooter")
	_ = ecs.Add(w, e, component.TransformComponent, component.Transform{
		Scale: common.Vec3{X: 1, Y: 1, Z: 1},
	})
	_ = ecs.Add(w, e, component.InputIntentComponent, component.InputIntent{})
	_ = ecs.Add(w, e, component.WeaponComponent, wp)
	return e
}

func countProjectiles(w *ecs.World) int {
	return len(w.Query(ecs.Query{All: []component.ID{component.ProjectileComponent.ID()}}))
}

func TestFireRateGate(t *testing.T) {
	w := ecs.NewWorld()
	sys := NewWeaponSystem()
	w.AddSystem(sys)

	// 2 rounds per second: one shot per 500ms of simulated time.
	e := newShooter(w, component.Weapon{
		Name: "rifle", FireRate: 2, Damage: 10, ProjectileSpeed: 40,
		MagazineSize: 30, Magazine: 30, Reserve: 90, ReloadTime: 1,
	})
	w.Update(0.6) // bind and open the gate

	if !sys.TryFire(e) {
		t.Fatalf("first shot should fire")
	}
	if sys.TryFire(e) {
		t.Fatalf("second shot in the same instant should be gated")
	}

	w.Update(0.4) // 400ms later: still inside the 500ms window
	if sys.TryFire(e) {
		t.Fatalf("shot at +400ms should be gated")
	}

	w.Update(0.2) // 600ms after the first shot
	if !sys.TryFire(e) {
		t.Fatalf("shot at +600ms should fire")
	}

	wp, _ := ecs.Get(w, e, component.WeaponComponent)
	if wp.Magazine != 28 {
		t.Fatalf("magazine = %d, want 28", wp.Magazine)
	}
	if got := countProjectiles(w); got != 2 {
		t.Fatalf("projectiles spawned = %d, want 2", got)
	}
}

func TestEmptyMagazineStartsReload(t *testing.T) {
	w := ecs.NewWorld()
	sys := NewWeaponSystem()
	w.AddSystem(sys)

	e := newShooter(w, component.Weapon{
		Name: "rifle", FireRate: 2, Damage: 10, ProjectileSpeed: 40,
		MagazineSize: 30, Magazine: 0, Reserve: 90, ReloadTime: 1.5,
	})
	w.Update(0.6)

	if sys.TryFire(e) {
		t.Fatalf("empty magazine should not fire")
	}
	wp, _ := ecs.Get(w, e, component.WeaponComponent)
	if !wp.Reloading {
		t.Fatalf("empty magazine should auto-start a reload")
	}
	if got := countProjectiles(w); got != 0 {
		t.Fatalf("no projectile should spawn, got %d", got)
	}
}

func TestReloadCompletesAfterReloadTime(t *testing.T) {
	w := ecs.NewWorld()
	sys := NewWeaponSystem()
	w.AddSystem(sys)

	e := newShooter(w, component.Weapon{
		Name: "rifle", FireRate: 2, Damage: 10, ProjectileSpeed: 40,
		MagazineSize: 30, Magazine: 5, Reserve: 90, ReloadTime: 1,
	})
	w.Update(0)

	wp, _ := ecs.Get(w, e, component.WeaponComponent)
	sys.StartReload(wp, w.NowMS())
	if !wp.Reloading {
		t.Fatalf("reload should start")
	}

	w.Update(0.5)
	if sys.UpdateReload(wp, w.NowMS()) {
		t.Fatalf("reload should not complete at half time")
	}

	w.Update(0.5)
	if !sys.UpdateReload(wp, w.NowMS()) {
		t.Fatalf("reload should complete after ReloadTime")
	}
	if wp.Magazine != 30 {
		t.Fatalf("magazine = %d, want 30", wp.Magazine)
	}
	if wp.Reserve != 65 {
		t.Fatalf("reserve = %d, want 65", wp.Reserve)
	}
}

func TestReloadTransferBoundedByReserve(t *testing.T) {
	w := ecs.NewWorld()
	sys := NewWeaponSystem()
	w.AddSystem(sys)

	e := newShooter(w, component.Weapon{
		Name: "rifle", FireRate: 2, Damage: 10, ProjectileSpeed: 40,
		MagazineSize: 30, Magazine: 0, Reserve: 10, ReloadTime: 1,
	})
	w.Update(0)

	wp, _ := ecs.Get(w, e, component.WeaponComponent)
	sys.StartReload(wp, w.NowMS())
	w.Update(1.1)
	if !sys.UpdateReload(wp, w.NowMS()) {
		t.Fatalf("reload should complete")
	}
	if wp.Magazine != 10 || wp.Reserve != 0 {
		t.Fatalf("magazine=%d reserve=%d, want 10 and 0", wp.Magazine, wp.Reserve)
	}
}

func TestReloadRequiresReserve(t *testing.T) {
	w := ecs.NewWorld()
	sys := NewWeaponSystem()
	w.AddSystem(sys)

	e := newShooter(w, component.Weapon{
		Name: "rifle", FireRate: 2, MagazineSize: 30, Magazine: 0, Reserve: 0, ReloadTime: 1,
	})
	w.Update(0)

	wp, _ := ecs.Get(w, e, component.WeaponComponent)
	sys.StartReload(wp, w.NowMS())
	if wp.Reloading {
		t.Fatalf("reload with no reserve should not start")
	}
}

func TestFireIntentDrivesWeaponThroughUpdate(t *testing.T) {
	w := ecs.NewWorld()
	sys := NewWeaponSystem()
	w.AddSystem(sys)

	e := newShooter(w, component.Weapon{
		Name: "rifle", FireRate: 2, Damage: 10, ProjectileSpeed: 40,
		MagazineSize: 30, Magazine: 30, Reserve: 90, ReloadTime: 1,
	})
	intent, _ := ecs.Get(w, e, component.InputIntentComponent)
	intent.Fire = true
	intent.Aim = common.Vec3{X: 1}

	w.Update(0.6)
	w.Update(0.01)

	if got := countProjectiles(w); got != 1 {
		t.Fatalf("held trigger should fire exactly once inside the gate, got %d", got)
	}
}
