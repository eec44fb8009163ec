package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/glitchzeros/zonefall/common"
	"github.com/glitchzeros/zonefall/ecs"
	"github.com/glitchzeros/zonefall/ecs/component"
	"github.com/glitchzeros/zonefall/ecs/system"
)

// pixelsPerMeter sets the top-down view scale.
const pixelsPerMeter = 4.0

// debugView renders the match top-down on the XZ plane: the zone ring,
// every entity as a circle, the camera centered on whatever the camera
// system targets. It doubles as the Scene and CameraRig collaborators the
// gameplay systems are wired with, so the core stays renderer-agnostic.
type debugView struct {
	target common.Vec3
	kinds  map[ecs.Entity]string
}

func newDebugView() *debugView {
	return &debugView{kinds: map[ecs.Entity]string{}}
}

// Scene implementation.

func (v *debugView) AddObject(e ecs.Entity, kind string) { v.kinds[e] = kind }
func (v *debugView) RemoveObject(e ecs.Entity)           { delete(v.kinds, e) }

// CameraRig implementation. Only the target matters for a top-down view.

func (v *debugView) SetPosition(pos common.Vec3)  {}
func (v *debugView) SetTarget(target common.Vec3) { v.target = target }

func (v *debugView) toScreen(p common.Vec3) (float32, float32) {
	x := baseWidth/2 + (p.X-v.target.X)*pixelsPerMeter
	// +Z is up on screen.
	y := baseHeight/2 - (p.Z-v.target.Z)*pixelsPerMeter
	return float32(x), float32(y)
}

// aimFromScreen converts a cursor position into a fire direction from the
// player on the ground plane.
func (v *debugView) aimFromScreen(w *ecs.World, player ecs.Entity, mx, my int) common.Vec3 {
	tr, ok := ecs.Get(w, player, component.TransformComponent)
	if !ok {
		return common.Vec3{}
	}
	px, py := v.toScreen(tr.Position)
	dir := common.Vec3{
		X: float64(float32(mx) - px),
		Z: -float64(float32(my) - py),
	}
	if dir.Length() == 0 {
		return common.Vec3{}
	}
	return dir.Normalize()
}

var (
	colorGround     = color.NRGBA{R: 0x16, G: 0x1a, B: 0x14, A: 0xff}
	colorZone       = color.NRGBA{R: 0x4d, G: 0x9d, B: 0xe0, A: 0xff}
	colorHuman      = color.NRGBA{R: 0x4c, G: 0xe0, B: 0x6a, A: 0xff}
	colorBot        = color.NRGBA{R: 0xe0, G: 0x52, B: 0x3e, A: 0xff}
	colorProjectile = color.NRGBA{R: 0xf2, G: 0xd9, B: 0x4e, A: 0xff}
	colorCrate      = color.NRGBA{R: 0x9a, G: 0x6f, B: 0x3b, A: 0xff}
	colorLoot       = color.NRGBA{R: 0x52, G: 0xd9, B: 0xd9, A: 0xff}
	colorDebris     = color.NRGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xff}
	colorDead       = color.NRGBA{R: 0x44, G: 0x44, B: 0x44, A: 0xff}
)

func (v *debugView) Draw(screen *ebiten.Image, w *ecs.World, br *system.BattleRoyaleSystem) {
	screen.Fill(colorGround)

	if br != nil {
		center, radius := br.Zone()
		cx, cy := v.toScreen(common.Vec3{X: center.X, Z: center.Y})
		vector.StrokeCircle(screen, cx, cy, float32(radius*pixelsPerMeter), 2, colorZone, true)
	}

	w.EachEntity(func(e ecs.Entity) {
		tr, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok {
			return
		}
		x, y := v.toScreen(tr.Position)
		c, r := v.classify(w, e)
		vector.DrawFilledCircle(screen, x, y, r, c, true)
	})
}

func (v *debugView) classify(w *ecs.World, e ecs.Entity) (color.NRGBA, float32) {
	switch {
	case ecs.Has(w, e, component.ProjectileComponent):
		return colorProjectile, 2
	case ecs.Has(w, e, component.PlayerTagComponent):
		c := colorBot
		if ecs.Has(w, e, component.HumanTagComponent) {
			c = colorHuman
		}
		if hp, ok := ecs.Get(w, e, component.HealthComponent); ok && hp.Dead {
			c = colorDead
		}
		return c, 4
	case ecs.Has(w, e, component.DestructibleComponent):
		return colorCrate, 4
	case ecs.Has(w, e, component.LootComponent):
		return colorLoot, 3
	default:
		if v.kinds[e] == "debris" {
			return colorDebris, 1.5
		}
		return colorDebris, 2
	}
}
