package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config is the game tuning file. Defaults are embedded; a user file
// overlays them field by field.
type Config struct {
	FixedTimeStep float64 `yaml:"fixedTimeStep"`
	MaxFrameDelta float64 `yaml:"maxFrameDelta"`

	Physics     Physics           `yaml:"physics"`
	Movement    Movement          `yaml:"movement"`
	Weapons     map[string]Weapon `yaml:"weapons"`
	AI          AI                `yaml:"ai"`
	Zone        Zone              `yaml:"zone"`
	Destruction Destruction       `yaml:"destruction"`
}

type Physics struct {
	Gravity  float64 `yaml:"gravity"`
	Friction float64 `yaml:"friction"`
}

type Movement struct {
	Speed            float64 `yaml:"speed"`
	SprintMultiplier float64 `yaml:"sprintMultiplier"`
}

type Weapon struct {
	FireRate           float64 `yaml:"fireRate"`
	Damage             float64 `yaml:"damage"`
	ProjectileSpeed    float64 `yaml:"projectileSpeed"`
	MagazineSize       int     `yaml:"magazineSize"`
	Reserve            int     `yaml:"reserve"`
	ReloadTime         float64 `yaml:"reloadTime"`
	ProjectileRadius   float64 `yaml:"projectileRadius"`
	ProjectileLifetime float64 `yaml:"projectileLifetime"`
}

type AI struct {
	DetectionRadius float64 `yaml:"detectionRadius"`
	CombatRange     float64 `yaml:"combatRange"`
	ReactionTime    float64 `yaml:"reactionTime"`
	RetreatHealth   float64 `yaml:"retreatHealth"`
	SearchTimeout   float64 `yaml:"searchTimeout"`
	LootTimeout     float64 `yaml:"lootTimeout"`
	AggressionMin   float64 `yaml:"aggressionMin"`
	AggressionMax   float64 `yaml:"aggressionMax"`
}

type Zone struct {
	CenterX       float64     `yaml:"centerX"`
	CenterZ       float64     `yaml:"centerZ"`
	InitialRadius float64     `yaml:"initialRadius"`
	TickInterval  float64     `yaml:"tickInterval"`
	Phases        []ZonePhase `yaml:"phases"`
}

type ZonePhase struct {
	Radius         float64 `yaml:"radius"`
	DamagePerTick  float64 `yaml:"damagePerTick"`
	ShrinkDuration float64 `yaml:"shrinkDuration"`
	HoldDuration   float64 `yaml:"holdDuration"`
}

type Destruction struct {
	DebrisCount    int     `yaml:"debrisCount"`
	DebrisLifetime float64 `yaml:"debrisLifetime"`
	DebrisSpeed    float64 `yaml:"debrisSpeed"`
}

// Default returns the embedded defaults.
func Default() *Config {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		// The embedded file ships with the binary; failing to parse it is
		// a build defect, not a runtime condition.
		panic("config: embedded defaults are invalid: " + err.Error())
	}
	return cfg
}

// Load parses the file at path over the embedded defaults. An empty path
// returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.FixedTimeStep <= 0 {
		return fmt.Errorf("fixedTimeStep must be positive, got %v", c.FixedTimeStep)
	}
	if len(c.Zone.Phases) == 0 {
		return fmt.Errorf("zone needs at least one phase")
	}
	for i, p := range c.Zone.Phases {
		if p.Radius < 0 || p.DamagePerTick < 0 {
			return fmt.Errorf("zone phase %d has negative values", i)
		}
	}
	return nil
}
