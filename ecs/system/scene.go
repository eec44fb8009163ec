package system

import (
	"github.com/glitchzeros/zonefall/common"
	"github.com/glitchzeros/zonefall/ecs"
)

// Scene is the opaque render-scene handle systems use to add or remove
// visual objects. The core never inspects it; a nil Scene is a valid
// headless configuration.
type Scene interface {
	AddObject(e ecs.Entity, kind string)
	RemoveObject(e ecs.Entity)
}

// CameraRig is the camera position/target setter pair the render layer
// exposes to the late-update camera system.
type CameraRig interface {
	SetPosition(pos common.Vec3)
	SetTarget(target common.Vec3)
}

// AudioPlayer plays a clip at a world position. Playback is fire-and-
// forget; the core never waits on it.
type AudioPlayer interface {
	Play(clip string, pos common.Vec3)
}
