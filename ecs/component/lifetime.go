package component

// Lifetime destroys an entity after a fixed simulated duration. Used by
// debris and projectiles.
type Lifetime struct {
	Remaining float64 `json:"remaining"` // seconds
}

var LifetimeComponent = NewComponent[Lifetime]("lifetime")
