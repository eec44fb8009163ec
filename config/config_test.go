package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultsParse(t *testing.T) {
	cfg := Default()

	if cfg.FixedTimeStep <= 0 {
		t.Fatalf("fixedTimeStep = %v, want positive", cfg.FixedTimeStep)
	}
	if cfg.Physics.Gravity >= 0 {
		t.Fatalf("gravity = %v, want negative", cfg.Physics.Gravity)
	}
	if _, ok := cfg.Weapons["rifle"]; !ok {
		t.Fatalf("defaults should define a rifle")
	}
	if len(cfg.Zone.Phases) == 0 {
		t.Fatalf("defaults should define zone phases")
	}
	if cfg.AI.AggressionMin > cfg.AI.AggressionMax {
		t.Fatalf("aggression range inverted: %v > %v", cfg.AI.AggressionMin, cfg.AI.AggressionMax)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	overlay := []byte("physics:\n  gravity: -20\nmovement:\n  speed: 8\n")
	if err := os.WriteFile(path, overlay, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Physics.Gravity != -20 {
		t.Fatalf("gravity = %v, want override -20", cfg.Physics.Gravity)
	}
	if cfg.Movement.Speed != 8 {
		t.Fatalf("speed = %v, want override 8", cfg.Movement.Speed)
	}
	// Untouched fields keep their defaults.
	def := Default()
	if cfg.FixedTimeStep != def.FixedTimeStep {
		t.Fatalf("fixedTimeStep = %v, want default %v", cfg.FixedTimeStep, def.FixedTimeStep)
	}
	if len(cfg.Zone.Phases) != len(def.Zone.Phases) {
		t.Fatalf("zone phases = %d, want default %d", len(cfg.Zone.Phases), len(def.Zone.Phases))
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"non_positive_timestep", "fixedTimeStep: 0\n"},
		{"negative_phase_damage", "zone:\n  phases:\n    - radius: 100\n      damagePerTick: -1\n"},
		{"malformed_yaml", "physics: [\n"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "tuning.yaml")
			if err := os.WriteFile(path, []byte(c.content), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Fatalf("Load should reject %q", c.content)
			}
		})
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("Load should fail for a missing file")
	}
}

func TestEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	def := Default()
	if cfg.Physics.Gravity != def.Physics.Gravity {
		t.Fatalf("empty path should return defaults")
	}
}
