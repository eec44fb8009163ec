package system

import (
	"github.com/glitchzeros/zonefall/common"
	"github.com/glitchzeros/zonefall/ecs"
	"github.com/glitchzeros/zonefall/ecs/component"
)

const InputSystemName = "input"

// InputState is the per-frame input snapshot. The host/platform layer owns
// one instance, writes it from device events before each World.Update, and
// the input system copies it into the human player's intent. No globals;
// single writer per frame.
type InputState struct {
	Move   common.Vec3
	Aim    common.Vec3
	Fire   bool
	Sprint bool
	Reload bool
}

type InputSystem struct {
	ecs.BaseSystem
	state *InputState
}

func NewInputSystem(state *InputState) *InputSystem {
	return &InputSystem{
		BaseSystem: ecs.NewBaseSystem(InputSystemName, ecs.PriorityCritical, ecs.Query{
			All: []component.ID{
				component.InputIntentComponent.ID(),
				component.HumanTagComponent.ID(),
			},
		}),
		state: state,
	}
}

func (s *InputSystem) Update(dt float64) error {
	if s.state == nil {
		return nil
	}
	w := s.World()
	for _, e := range s.Entities() {
		intent, ok := ecs.Get(w, e, component.InputIntentComponent)
		if !ok {
			continue
		}
		intent.Move = s.state.Move
		intent.Aim = s.state.Aim
		intent.Fire = s.state.Fire
		intent.Sprint = s.state.Sprint
		intent.Reload = s.state.Reload
	}
	return nil
}
