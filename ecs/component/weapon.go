package component

// Weapon is one equipped weapon. Fire gating and reload progress are
// tracked in world-clock milliseconds so simulated time drives them.
type Weapon struct {
	Name            string  `json:"name"`
	FireRate        float64 `json:"fireRate"` // rounds per second
	Damage          float64 `json:"damage"`
	ProjectileSpeed float64 `json:"projectileSpeed"`
	MagazineSize    int     `json:"magazineSize"`
	Magazine        int     `json:"magazine"`
	Reserve         int     `json:"reserve"`
	ReloadTime      float64 `json:"reloadTime"` // seconds

	LastFireMS    float64 `json:"lastFireMs"`
	Reloading     bool    `json:"reloading"`
	ReloadStartMS float64 `json:"reloadStartMs"`
}

var WeaponComponent = NewComponent[Weapon]("weapon")

// CanFire reports whether the fire-rate gate is open at the given world
// time. It does not look at ammo.
func (wp *Weapon) CanFire(nowMS float64) bool {
	if wp.Reloading || wp.FireRate <= 0 {
		return false
	}
	return nowMS-wp.LastFireMS >= 1000/wp.FireRate
}
