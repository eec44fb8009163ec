package component

// Loot is a pickup lying in the world: ammo or a health pack.
type Loot struct {
	Kind   string `json:"kind"` // "ammo" | "health"
	Amount int    `json:"amount"`
}

var LootComponent = NewComponent[Loot]("loot")
