package system

import (
	"github.com/glitchzeros/zonefall/ecs"
	"github.com/glitchzeros/zonefall/ecs/component"
)

const AudioSystemName = "audio"

// AudioSystem drains emitter queues into the host's player at the end of
// the frame. With a nil player (headless runs, tests) queues are still
// cleared so they never grow unbounded.
type AudioSystem struct {
	ecs.BaseSystem

	player AudioPlayer
}

func NewAudioSystem(player AudioPlayer) *AudioSystem {
	return &AudioSystem{
		BaseSystem: ecs.NewBaseSystem(AudioSystemName, ecs.PriorityLow, ecs.Query{
			All: []component.ID{component.AudioEmitterComponent.ID()},
		}),
		player: player,
	}
}

func (s *AudioSystem) LateUpdate(dt float64) error {
	w := s.World()
	for _, e := range s.Entities() {
		em, ok := ecs.Get(w, e, component.AudioEmitterComponent)
		if !ok || len(em.Queue) == 0 {
			continue
		}
		if s.player != nil {
			for _, req := range em.Queue {
				s.player.Play(req.Clip, req.Position)
			}
		}
		em.Queue = em.Queue[:0]
	}
	return nil
}
