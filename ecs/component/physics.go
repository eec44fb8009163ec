package component

import "github.com/glitchzeros/zonefall/common"

// RigidBody is the state integrated by the physics system. Static bodies
// are skipped entirely.
type RigidBody struct {
	Velocity     common.Vec3 `json:"velocity"`
	Mass         float64     `json:"mass"`
	GravityScale float64     `json:"gravityScale"`
	IsStatic     bool        `json:"isStatic"`
	Grounded     bool        `json:"grounded"`
}

var RigidBodyComponent = NewComponent[RigidBody]("rigidbody")
