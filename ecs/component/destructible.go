package component

// Destructible marks scenery that shatters into debris when its health
// runs out. Separate from Health: destructibles never regenerate and their
// removal spawns debris entities instead of a kill event.
type Destructible struct {
	Health      float64 `json:"health"`
	DebrisCount int     `json:"debrisCount"`
	DebrisScale float64 `json:"debrisScale"`
}

var DestructibleComponent = NewComponent[Destructible]("destructible")
