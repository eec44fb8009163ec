package component

import "github.com/glitchzeros/zonefall/common"

// AudioRequest is one queued playback request.
type AudioRequest struct {
	Clip     string      `json:"clip"`
	Position common.Vec3 `json:"position"`
}

// AudioEmitter queues clip requests. Gameplay systems push; the audio
// system drains the queue into the host's player once per frame. Nothing
// in the core ever blocks on playback.
type AudioEmitter struct {
	Queue []AudioRequest `json:"queue"`
}

var AudioEmitterComponent = NewComponent[AudioEmitter]("audio_emitter")

func (a *AudioEmitter) Enqueue(clip string, pos common.Vec3) {
	a.Queue = append(a.Queue, AudioRequest{Clip: clip, Position: pos})
}
