package system

import (
	"github.com/glitchzeros/zonefall/common"
	"github.com/glitchzeros/zonefall/ecs"
	"github.com/glitchzeros/zonefall/ecs/component"
)

const CameraSystemName = "camera"

// cameraLerp is the follow smoothing factor per second.
const cameraLerp = 5.0

// CameraSystem eases the injected camera rig toward the followed entity
// after all movement for the frame has settled, which is why it runs in
// the late pass.
type CameraSystem struct {
	ecs.BaseSystem

	rig CameraRig
	pos common.Vec3
	set bool
}

func NewCameraSystem(rig CameraRig) *CameraSystem {
	return &CameraSystem{
		BaseSystem: ecs.NewBaseSystem(CameraSystemName, ecs.PriorityLow, ecs.Query{
			All: []component.ID{
				component.CameraFollowComponent.ID(),
				component.TransformComponent.ID(),
			},
		}),
		rig: rig,
	}
}

func (s *CameraSystem) LateUpdate(dt float64) error {
	if s.rig == nil {
		return nil
	}
	w := s.World()
	for _, e := range s.Entities() {
		tr, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok {
			continue
		}
		follow, ok := ecs.Get(w, e, component.CameraFollowComponent)
		if !ok {
			continue
		}

		want := tr.Position.Add(follow.Offset)
		if !s.set {
			s.pos = want
			s.set = true
		} else {
			t := common.Clamp(cameraLerp*dt, 0, 1)
			s.pos = common.Vec3{
				X: common.Lerp(s.pos.X, want.X, t),
				Y: common.Lerp(s.pos.Y, want.Y, t),
				Z: common.Lerp(s.pos.Z, want.Z, t),
			}
		}
		s.rig.SetPosition(s.pos)
		s.rig.SetTarget(tr.Position)
		break // one camera, first follower wins
	}
	return nil
}
