package component

import "github.com/glitchzeros/zonefall/common"

// CameraFollow pins the render camera behind this entity. Applied in the
// late-update pass so it sees the frame's final transform.
type CameraFollow struct {
	Offset common.Vec3 `json:"offset"`
}

var CameraFollowComponent = NewComponent[CameraFollow]("camera_follow")
