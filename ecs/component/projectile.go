package component

// EntityRef is a raw entity handle stored inside a component. Components
// never hold world references; cross-entity links are handles that the
// owner revalidates against the world before use.
type EntityRef uint64

type Projectile struct {
	Damage float64   `json:"damage"`
	Owner  EntityRef `json:"owner"`
}

var ProjectileComponent = NewComponent[Projectile]("projectile")
