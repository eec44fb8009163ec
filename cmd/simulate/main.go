// Command simulate runs bot-only matches headless and prints the results,
// which is the quickest way to sanity-check tuning changes: no window, no
// real clock, just the simulation stepped at a fixed rate until someone
// wins.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"

	"github.com/glitchzeros/zonefall/common"
	"github.com/glitchzeros/zonefall/config"
	"github.com/glitchzeros/zonefall/ecs"
	"github.com/glitchzeros/zonefall/ecs/entity"
	"github.com/glitchzeros/zonefall/ecs/system"
)

func main() {
	configPath := flag.String("config", "", "tuning file overlaid on the built-in defaults")
	matches := flag.Int("matches", 10, "number of matches to run")
	bots := flag.Int("bots", 12, "participants per match")
	maxMinutes := flag.Float64("max-minutes", 15, "give up on a match after this much simulated time")
	seed := flag.Int64("seed", 0, "random seed (0 = nondeterministic)")
	flag.Parse()

	if *seed != 0 {
		rand.Seed(*seed)
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatal(err)
		}
		cfg = loaded
	}

	wins := map[string]int{}
	for i := 0; i < *matches; i++ {
		winner, elapsed := runMatch(cfg, *bots, *maxMinutes*60)
		fmt.Printf("match %2d: winner=%-8s time=%.1fs\n", i+1, winner, elapsed)
		wins[winner]++
	}

	fmt.Println("---")
	for name, n := range wins {
		fmt.Printf("%-8s %d\n", name, n)
	}
}

func runMatch(cfg *config.Config, bots int, maxSeconds float64) (winner string, elapsed float64) {
	w := ecs.NewWorld()
	w.SetFixedTimeStep(cfg.FixedTimeStep)

	br := system.NewBattleRoyaleSystem(cfg.Zone)
	w.AddSystem(system.NewAISystem(system.NewScriptRuntime()))
	w.AddSystem(system.NewMovementSystem())
	w.AddSystem(system.NewPhysicsSystem(cfg.Physics))
	w.AddSystem(system.NewCollisionSystem())
	w.AddSystem(system.NewWeaponSystem())
	w.AddSystem(system.NewHealthSystem())
	w.AddSystem(system.NewDestructionSystem(cfg, nil))
	w.AddSystem(system.NewLootSystem())
	w.AddSystem(system.NewLifetimeSystem())
	w.AddSystem(br)
	w.AddSystem(system.NewProgressionSystem())
	w.AddSystem(system.NewAudioSystem(nil))

	radius := cfg.Zone.InitialRadius * 0.8
	for i := 0; i < bots; i++ {
		entity.NewBot(w, cfg, fmt.Sprintf("bot_%02d", i+1), common.Vec3{
			X: cfg.Zone.CenterX + (rand.Float64()*2-1)*radius,
			Z: cfg.Zone.CenterZ + (rand.Float64()*2-1)*radius,
		})
	}
	for i := 0; i < 8; i++ {
		entity.NewLoot(w, "ammo", 30, common.Vec3{
			X: cfg.Zone.CenterX + (rand.Float64()*2-1)*radius,
			Z: cfg.Zone.CenterZ + (rand.Float64()*2-1)*radius,
		})
	}

	step := cfg.FixedTimeStep
	for w.Now() < maxSeconds {
		w.Update(step)
		w.Events().Drain()
		if br.Match() == system.MatchFinished {
			return w.EntityName(br.Winner()), w.Now()
		}
	}
	return "timeout", w.Now()
}
