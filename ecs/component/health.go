package component

type Health struct {
	Current      float64   `json:"current"`
	Max          float64   `json:"max"`
	Regen        float64   `json:"regen"`
	LastDamageMS float64   `json:"lastDamageMs"`
	LastHitBy    EntityRef `json:"lastHitBy"`
	Dead         bool      `json:"dead"`
}

var HealthComponent = NewComponent[Health]("health")

// Damage applies damage and records the attacker for kill credit.
func (h *Health) Damage(amount float64, attacker EntityRef, nowMS float64) {
	if h.Dead || amount <= 0 {
		return
	}
	h.Current -= amount
	h.LastDamageMS = nowMS
	if attacker != 0 {
		h.LastHitBy = attacker
	}
	if h.Current < 0 {
		h.Current = 0
	}
}
