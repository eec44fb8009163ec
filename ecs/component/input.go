package component

import "github.com/glitchzeros/zonefall/common"

// InputIntent is the per-entity movement and fire intent. The host input
// system writes it for the human player; the AI system writes it for bots.
// Everything downstream (movement, weapons) reads only intent, so players
// and bots share one code path.
type InputIntent struct {
	Move   common.Vec3 `json:"move"` // ground-plane direction, length <= 1
	Aim    common.Vec3 `json:"aim"`  // normalized fire direction
	Fire   bool        `json:"fire"`
	Sprint bool        `json:"sprint"`
	Reload bool        `json:"reload"`
}

var InputIntentComponent = NewComponent[InputIntent]("input_intent")
