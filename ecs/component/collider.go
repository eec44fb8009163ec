package component

// Collider is a bounding sphere. Collision resolution is a radius-sum
// threshold test.
type Collider struct {
	Radius    float64 `json:"radius"`
	IsTrigger bool    `json:"isTrigger"`
}

var ColliderComponent = NewComponent[Collider]("collider")
