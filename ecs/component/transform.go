package component

import "github.com/glitchzeros/zonefall/common"

type Transform struct {
	Position common.Vec3 `json:"position"`
	Rotation common.Vec3 `json:"rotation"`
	Scale    common.Vec3 `json:"scale"`
}

var TransformComponent = NewComponent[Transform]("transform")
