package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/glitchzeros/zonefall/common"
	"github.com/glitchzeros/zonefall/config"
	"github.com/glitchzeros/zonefall/ecs"
	"github.com/glitchzeros/zonefall/ecs/component"
	"github.com/glitchzeros/zonefall/ecs/entity"
	"github.com/glitchzeros/zonefall/ecs/system"
	"github.com/glitchzeros/zonefall/save"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

const killFeedMax = 6

type GameOptions struct {
	ConfigPath string
	Watch      bool
	Debug      bool
	Bots       int
	SaveSlot   string
}

// Game is the ebiten host around the simulation: it owns the real clock,
// feeds device input into the world, and draws the top-down debug view.
// Simulated time only advances through World.Update, so pausing the host
// freezes every time-gated behavior in the core.
type Game struct {
	opts GameOptions

	cfg     *config.Config
	world   *ecs.World
	input   *system.InputState
	scripts *system.ScriptRuntime
	physics *system.PhysicsSystem
	br      *system.BattleRoyaleSystem
	player  ecs.Entity

	watcher *config.Watcher
	store   *save.Store

	view     *debugView
	pauseUI  *ebitenui.UI
	paused   bool
	debug    bool
	killFeed []string
	lastTick time.Time
}

func NewGame(opts GameOptions) (*Game, error) {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	g := &Game{
		opts:    opts,
		cfg:     cfg,
		input:   &system.InputState{},
		scripts: system.NewScriptRuntime(),
		debug:   opts.Debug,
	}
	g.view = newDebugView()
	g.world = g.buildWorld()
	g.pauseUI = NewPauseUI(g)

	store, err := save.Open("zonefall")
	if err != nil {
		log.Printf("save: storage unavailable: %v", err)
		store = save.NewStore(nil)
	}
	g.store = store

	if opts.Watch {
		if w, err := config.NewWatcher(watchDirs(opts.ConfigPath)...); err != nil {
			log.Printf("watch: %v", err)
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func watchDirs(configPath string) []string {
	dirs := []string{"scripts"}
	if configPath != "" {
		dirs = append(dirs, filepath.Dir(configPath))
	}
	return dirs
}

// buildWorld wires every system in and spawns the match: one human,
// opts.Bots opponents, crates and pickups scattered inside the zone.
func (g *Game) buildWorld() *ecs.World {
	w := g.newWorld()

	radius := g.cfg.Zone.InitialRadius * 0.8
	g.player = entity.NewPlayer(w, g.cfg, "player", randomPoint(g.cfg, radius))

	scriptPath := filepath.Join("scripts", "berserker.tengo")
	if _, err := os.Stat(scriptPath); err != nil {
		scriptPath = ""
	}
	for i := 0; i < g.opts.Bots; i++ {
		bot := entity.NewBot(w, g.cfg, fmt.Sprintf("bot_%02d", i+1), randomPoint(g.cfg, radius))
		// Every third bot runs the scripted machine instead of the built-in.
		if scriptPath != "" && i%3 == 0 {
			if ai, ok := ecs.Get(w, bot, component.AIComponent); ok {
				ai.ScriptPath = scriptPath
			}
		}
	}
	for i := 0; i < 16; i++ {
		entity.NewCrate(w, g.cfg, randomPoint(g.cfg, radius))
	}
	for i := 0; i < 8; i++ {
		entity.NewLoot(w, "ammo", 30, randomPoint(g.cfg, radius))
		entity.NewLoot(w, "health", 25, randomPoint(g.cfg, radius))
	}
	return w
}

// newWorld builds an empty world with the full system stack. buildWorld
// spawns a fresh match into it; loadGame restores a snapshot instead.
func (g *Game) newWorld() *ecs.World {
	w := ecs.NewWorld()
	w.SetFixedTimeStep(g.cfg.FixedTimeStep)

	g.physics = system.NewPhysicsSystem(g.cfg.Physics)
	g.br = system.NewBattleRoyaleSystem(g.cfg.Zone)

	w.AddSystem(system.NewInputSystem(g.input))
	w.AddSystem(system.NewAISystem(g.scripts))
	w.AddSystem(system.NewMovementSystem())
	w.AddSystem(g.physics)
	w.AddSystem(system.NewCollisionSystem())
	w.AddSystem(system.NewWeaponSystem())
	w.AddSystem(system.NewHealthSystem())
	w.AddSystem(system.NewDestructionSystem(g.cfg, g.view))
	w.AddSystem(system.NewLootSystem())
	w.AddSystem(system.NewLifetimeSystem())
	w.AddSystem(g.br)
	w.AddSystem(system.NewProgressionSystem())
	w.AddSystem(system.NewCameraSystem(g.view))
	w.AddSystem(system.NewAudioSystem(nil))
	return w
}

func randomPoint(cfg *config.Config, radius float64) common.Vec3 {
	return common.Vec3{
		X: cfg.Zone.CenterX + (rand.Float64()*2-1)*radius,
		Z: cfg.Zone.CenterZ + (rand.Float64()*2-1)*radius,
	}
}

func (g *Game) Update() error {
	now := time.Now()
	if g.lastTick.IsZero() {
		g.lastTick = now
	}
	dt := now.Sub(g.lastTick).Seconds()
	g.lastTick = now
	if dt > g.cfg.MaxFrameDelta {
		dt = g.cfg.MaxFrameDelta
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.debug = !g.debug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		g.saveGame()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF9) {
		g.loadGame()
	}

	g.drainWatcher()

	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	g.readInput()
	g.world.Update(dt)
	g.drainEvents()
	return nil
}

// readInput maps keyboard and mouse onto the ground plane: screen up is
// +Z, screen right is +X, matching the top-down view.
func (g *Game) readInput() {
	var move common.Vec3
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		move.Z++
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		move.Z--
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		move.X--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		move.X++
	}
	g.input.Move = move
	g.input.Sprint = ebiten.IsKeyPressed(ebiten.KeyShift)
	g.input.Reload = inpututil.IsKeyJustPressed(ebiten.KeyR)
	g.input.Fire = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)

	mx, my := ebiten.CursorPosition()
	g.input.Aim = g.view.aimFromScreen(g.world, g.player, mx, my)
}

// drainWatcher applies hot reloads queued by the fsnotify watcher.
func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(path)
		case err, ok := <-g.watcher.Errors:
			if ok {
				log.Printf("watch: %v", err)
			}
		default:
			return
		}
	}
}

func (g *Game) reload(path string) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tengo":
		g.scripts.Invalidate(path)
		log.Printf("reload: script %s", path)
	case ".yaml", ".yml":
		cfg, err := loadConfig(g.opts.ConfigPath)
		if err != nil {
			log.Printf("reload: config: %v", err)
			return
		}
		g.cfg = cfg
		g.world.SetFixedTimeStep(cfg.FixedTimeStep)
		g.physics.SetTuning(cfg.Physics)
		log.Printf("reload: config %s", path)
	}
}

func (g *Game) drainEvents() {
	for _, evt := range g.world.Events().Drain() {
		switch data := evt.Data.(type) {
		case ecs.KillEvent:
			line := fmt.Sprintf("%s eliminated (#%d)", g.world.EntityName(data.Victim), data.Placement)
			if data.Killer != 0 {
				line = fmt.Sprintf("%s > %s (#%d)", g.world.EntityName(data.Killer), g.world.EntityName(data.Victim), data.Placement)
			}
			g.pushFeed(line)
		case ecs.ZonePhaseEvent:
			g.pushFeed(fmt.Sprintf("zone closing to %.0fm", data.Radius))
		case ecs.MatchOverEvent:
			g.pushFeed(fmt.Sprintf("%s wins the match", g.world.EntityName(data.Winner)))
		}
	}
}

func (g *Game) pushFeed(line string) {
	g.killFeed = append(g.killFeed, line)
	if len(g.killFeed) > killFeedMax {
		g.killFeed = g.killFeed[len(g.killFeed)-killFeedMax:]
	}
}

func (g *Game) saveGame() {
	if err := g.store.Save(g.world, g.opts.SaveSlot); err != nil {
		log.Printf("save: %v", err)
		return
	}
	g.pushFeed("game saved")
}

// loadGame replaces the running match with the snapshot in the save slot.
// Zone and match progress restart; the snapshot only covers entity state.
func (g *Game) loadGame() {
	oldPhysics, oldBr, oldScripts := g.physics, g.br, g.scripts
	// Entity handles from the old world can collide with restored ones,
	// so the script runtime's per-entity state starts over.
	g.scripts = system.NewScriptRuntime()
	w := g.newWorld()
	if err := g.store.Load(w, g.opts.SaveSlot); err != nil {
		g.physics, g.br, g.scripts = oldPhysics, oldBr, oldScripts
		log.Printf("load: %v", err)
		return
	}
	g.world = w
	g.player = 0
	if humans := w.Query(ecs.Query{All: []component.ID{component.HumanTagComponent.ID()}}); len(humans) > 0 {
		g.player = humans[0]
	}
	g.pushFeed("game loaded")
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.view.Draw(screen, g.world, g.br)

	y := 16
	for _, line := range g.killFeed {
		ebitenutil.DebugPrintAt(screen, line, baseWidth-360, y)
		y += 16
	}

	if g.debug {
		stats := g.world.Stats()
		msg := fmt.Sprintf("FPS: %.1f  entities: %d  alive: %d  t=%.1fs  fixed steps: %d",
			ebiten.ActualFPS(), stats.Entities, g.br.PlayersAlive(), stats.Now, stats.FixedSteps)
		for _, rep := range stats.Reports {
			msg += fmt.Sprintf("\n%-12s %6.2fms avg  %6.2fms max", rep.Name, rep.Average.Seconds()*1000, rep.Max.Seconds()*1000)
		}
		ebitenutil.DebugPrint(screen, msg)
	}

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}
