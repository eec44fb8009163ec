package system

import (
	"fmt"
	"os"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/glitchzeros/zonefall/common"
	"github.com/glitchzeros/zonefall/ecs"
	"github.com/glitchzeros/zonefall/ecs/component"
)

// ScriptRuntime runs tengo-scripted bot lifecycles. A script defines
// onEnter/update/onExit functions and optionally an `initial_state`
// global; the dispatch snippet appended below routes each phase to them.
// State names are shared with the built-in machine, so a script can hand
// a bot back to it by clearing ScriptPath.
type ScriptRuntime struct {
	cache  map[ecs.Entity]*scriptInstance
	failed map[string]bool
}

type scriptInstance struct {
	scriptPath  string
	compiled    *tengo.Compiled
	stateData   *tengo.Map
	initial     component.AIState
	initialized bool
	pending     component.AIState
}

const lifecycleDispatchScript = `
if __phase == "enter" {
	onEnter(__engine, __state, __current_state)
} else if __phase == "update" {
	update(__engine, __state, __current_state)
} else if __phase == "exit" {
	onExit(__engine, __state, __current_state)
}
`

func NewScriptRuntime() *ScriptRuntime {
	return &ScriptRuntime{
		cache:  map[ecs.Entity]*scriptInstance{},
		failed: map[string]bool{},
	}
}

// Invalidate drops every cached compilation of the given script so the
// next Step recompiles it. The config watcher calls this on .tengo
// writes. An empty path drops everything.
func (r *ScriptRuntime) Invalidate(path string) {
	for e, inst := range r.cache {
		if path == "" || inst.scriptPath == path {
			delete(r.cache, e)
		}
	}
	if path == "" {
		r.failed = map[string]bool{}
	} else {
		delete(r.failed, path)
	}
}

// Forget drops the cached instance for one entity.
func (r *ScriptRuntime) Forget(e ecs.Entity) {
	delete(r.cache, e)
}

// Step runs one update of the scripted lifecycle for a bot. A non-nil
// error means the script could not load or run and the caller should
// fall back to the built-in machine.
func (r *ScriptRuntime) Step(w *ecs.World, e ecs.Entity, ai *component.AI, tr *component.Transform, intent *component.InputIntent) error {
	if strings.TrimSpace(ai.ScriptPath) == "" {
		return fmt.Errorf("no script path for entity %d", e)
	}

	inst, err := r.instance(e, ai.ScriptPath)
	if err != nil {
		if !r.failed[ai.ScriptPath] {
			r.failed[ai.ScriptPath] = true
			fmt.Printf("ai: entity=%d load script %q: %v\n", e, ai.ScriptPath, err)
		}
		return err
	}

	if ai.State == "" {
		ai.State = inst.initial
		ai.StateSinceMS = w.NowMS()
	}

	engine := r.buildEngine(w, e, ai, tr, intent, inst)

	if !inst.initialized {
		if err := inst.runPhase("enter", ai.State, engine); err != nil {
			return fmt.Errorf("onEnter: %w", err)
		}
		inst.initialized = true
	}

	if err := inst.runPhase("update", ai.State, engine); err != nil {
		return fmt.Errorf("update: %w", err)
	}

	if inst.pending == "" || inst.pending == ai.State {
		inst.pending = ""
		return nil
	}

	prev := ai.State
	if err := inst.runPhase("exit", prev, engine); err != nil {
		return fmt.Errorf("onExit: %w", err)
	}
	ai.State = inst.pending
	ai.StateSinceMS = w.NowMS()
	inst.pending = ""

	if err := inst.runPhase("enter", ai.State, engine); err != nil {
		return fmt.Errorf("onEnter: %w", err)
	}
	return nil
}

func (r *ScriptRuntime) instance(e ecs.Entity, path string) (*scriptInstance, error) {
	if inst, ok := r.cache[e]; ok && inst.scriptPath == path {
		return inst, nil
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	script := tengo.NewScript(append(src, []byte("\n"+lifecycleDispatchScript)...))
	_ = script.Add("__phase", "")
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	_ = script.Add("__current_state", "")
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, err
	}

	inst := &scriptInstance{
		scriptPath: path,
		compiled:   compiled,
		stateData:  &tengo.Map{Value: map[string]tengo.Object{}},
		initial:    component.AIStatePatrol,
	}

	// Run a no-op phase so script-level globals like initial_state resolve.
	noop := &tengo.ImmutableMap{Value: map[string]tengo.Object{}}
	if err := inst.runPhase("noop", inst.initial, noop); err != nil {
		return nil, err
	}
	if compiled.IsDefined("initial_state") {
		if s := strings.TrimSpace(compiled.Get("initial_state").String()); s != "" {
			inst.initial = component.AIState(strings.Trim(s, "\""))
		}
	}

	r.cache[e] = inst
	return inst, nil
}

func (inst *scriptInstance) runPhase(phase string, current component.AIState, engine *tengo.ImmutableMap) error {
	if engine == nil {
		engine = &tengo.ImmutableMap{Value: map[string]tengo.Object{}}
	}
	if err := inst.compiled.Set("__phase", phase); err != nil {
		return err
	}
	if err := inst.compiled.Set("__engine", engine); err != nil {
		return err
	}
	if err := inst.compiled.Set("__state", inst.stateData); err != nil {
		return err
	}
	if err := inst.compiled.Set("__current_state", string(current)); err != nil {
		return err
	}
	return inst.compiled.Run()
}

// buildEngine exposes the bot's senses and actuators to the script. All
// positions are ground-plane [x, z] pairs.
func (r *ScriptRuntime) buildEngine(w *ecs.World, e ecs.Entity, ai *component.AI, tr *component.Transform, intent *component.InputIntent, inst *scriptInstance) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["transition"] = &tengo.UserFunction{Name: "transition", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		name := strings.TrimSpace(objectAsString(args[0]))
		if name == "" {
			return tengo.FalseValue, nil
		}
		inst.pending = component.AIState(name)
		return tengo.TrueValue, nil
	}}

	values["get_position"] = &tengo.UserFunction{Name: "get_position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return planarPair(tr.Position), nil
	}}

	values["has_target"] = &tengo.UserFunction{Name: "has_target", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return boolObject(ai.Target != 0), nil
	}}

	values["get_target_position"] = &tengo.UserFunction{Name: "get_target_position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		otr, ok := ecs.Get(w, ecs.Entity(ai.Target), component.TransformComponent)
		if !ok {
			return planarPair(ai.LastSeen), nil
		}
		return planarPair(otr.Position), nil
	}}

	values["target_distance"] = &tengo.UserFunction{Name: "target_distance", Value: func(args ...tengo.Object) (tengo.Object, error) {
		otr, ok := ecs.Get(w, ecs.Entity(ai.Target), component.TransformComponent)
		if !ok {
			return &tengo.Float{Value: -1}, nil
		}
		return &tengo.Float{Value: common.PlanarDistance(tr.Position, otr.Position)}, nil
	}}

	values["get_health"] = &tengo.UserFunction{Name: "get_health", Value: func(args ...tengo.Object) (tengo.Object, error) {
		hp, ok := ecs.Get(w, e, component.HealthComponent)
		if !ok {
			return &tengo.Float{Value: 0}, nil
		}
		return &tengo.Float{Value: hp.Current}, nil
	}}

	values["get_aggression"] = &tengo.UserFunction{Name: "get_aggression", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: ai.Aggression}, nil
	}}

	values["state_elapsed"] = &tengo.UserFunction{Name: "state_elapsed", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: (w.NowMS() - ai.StateSinceMS) / 1000}, nil
	}}

	values["move_toward"] = &tengo.UserFunction{Name: "move_toward", Value: func(args ...tengo.Object) (tengo.Object, error) {
		x, z, ok := pairArgs(args)
		if !ok {
			return tengo.FalseValue, nil
		}
		intent.Move = common.PlanarDirection(tr.Position, common.Vec3{X: x, Z: z})
		return tengo.TrueValue, nil
	}}

	values["move_away"] = &tengo.UserFunction{Name: "move_away", Value: func(args ...tengo.Object) (tengo.Object, error) {
		x, z, ok := pairArgs(args)
		if !ok {
			return tengo.FalseValue, nil
		}
		intent.Move = common.PlanarDirection(common.Vec3{X: x, Z: z}, tr.Position)
		return tengo.TrueValue, nil
	}}

	values["stop"] = &tengo.UserFunction{Name: "stop", Value: func(args ...tengo.Object) (tengo.Object, error) {
		intent.Move = common.Vec3{}
		return tengo.TrueValue, nil
	}}

	values["sprint"] = &tengo.UserFunction{Name: "sprint", Value: func(args ...tengo.Object) (tengo.Object, error) {
		intent.Sprint = true
		return tengo.TrueValue, nil
	}}

	values["aim_at"] = &tengo.UserFunction{Name: "aim_at", Value: func(args ...tengo.Object) (tengo.Object, error) {
		x, z, ok := pairArgs(args)
		if !ok {
			return tengo.FalseValue, nil
		}
		intent.Aim = common.PlanarDirection(tr.Position, common.Vec3{X: x, Z: z})
		return tengo.TrueValue, nil
	}}

	values["fire"] = &tengo.UserFunction{Name: "fire", Value: func(args ...tengo.Object) (tengo.Object, error) {
		intent.Fire = true
		return tengo.TrueValue, nil
	}}

	values["reload"] = &tengo.UserFunction{Name: "reload", Value: func(args ...tengo.Object) (tengo.Object, error) {
		intent.Reload = true
		return tengo.TrueValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func planarPair(v common.Vec3) *tengo.Array {
	return &tengo.Array{Value: []tengo.Object{
		&tengo.Float{Value: v.X},
		&tengo.Float{Value: v.Z},
	}}
}

func pairArgs(args []tengo.Object) (x, z float64, ok bool) {
	if len(args) == 1 {
		arr, isArr := args[0].(*tengo.Array)
		if !isArr || len(arr.Value) < 2 {
			return 0, 0, false
		}
		args = arr.Value
	}
	if len(args) < 2 {
		return 0, 0, false
	}
	x, okX := objectAsFloat(args[0])
	z, okZ := objectAsFloat(args[1])
	return x, z, okX && okZ
}

func objectAsFloat(obj tengo.Object) (float64, bool) {
	switch v := obj.(type) {
	case *tengo.Float:
		return v.Value, true
	case *tengo.Int:
		return float64(v.Value), true
	default:
		return 0, false
	}
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}

func boolObject(b bool) tengo.Object {
	if b {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}
