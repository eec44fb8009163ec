// Package save persists world snapshots through gdata, which maps to the
// platform's app-data directory on desktop and localStorage on wasm.
package save

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/quasilyte/gdata/v2"

	"github.com/glitchzeros/zonefall/ecs"
	"github.com/glitchzeros/zonefall/ecs/component"
)

const savesObject = "saves"

// Snapshot is one serialized world: every active entity with its
// components keyed by registered component name. Component payloads stay
// raw JSON so a snapshot written by a newer build with extra component
// kinds still loads (unknown kinds are skipped with a warning by Restore).
type Snapshot struct {
	SavedAt  time.Time        `json:"savedAt"`
	Now      float64          `json:"now"`
	Entities []EntitySnapshot `json:"entities"`
}

type EntitySnapshot struct {
	Name       string                     `json:"name"`
	Components map[string]json.RawMessage `json:"components"`
}

// Store reads and writes snapshots. A nil manager (storage unavailable)
// degrades to in-memory only: Save and Load report ErrNoStorage instead
// of panicking, so headless tests and sandboxed hosts keep working.
type Store struct {
	manager *gdata.Manager
}

var ErrNoStorage = fmt.Errorf("save: persistent storage unavailable")

// Open creates a store backed by the platform data directory for the
// given app name.
func Open(appName string) (*Store, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, err
	}
	return &Store{manager: m}, nil
}

// NewStore wraps an existing manager; nil is allowed for degraded mode.
func NewStore(m *gdata.Manager) *Store {
	return &Store{manager: m}
}

// Capture serializes every active entity in the world.
func Capture(w *ecs.World) (*Snapshot, error) {
	snap := &Snapshot{SavedAt: time.Now(), Now: w.Now()}

	var capErr error
	w.EachEntity(func(e ecs.Entity) {
		if capErr != nil {
			return
		}
		info, ok := w.EntityInfo(e)
		if !ok {
			return
		}
		es := EntitySnapshot{
			Name:       info.Name,
			Components: map[string]json.RawMessage{},
		}
		w.EachComponent(e, func(id component.ID, v any) {
			if capErr != nil {
				return
			}
			data, err := json.Marshal(v)
			if err != nil {
				capErr = fmt.Errorf("save: marshal %s on %q: %w", component.Name(id), info.Name, err)
				return
			}
			es.Components[component.Name(id)] = data
		})
		snap.Entities = append(snap.Entities, es)
	})
	if capErr != nil {
		return nil, capErr
	}
	return snap, nil
}

// Restore instantiates a snapshot's entities into the world. Component
// kinds the running build does not register are skipped. The new entities
// join system membership on the world's next Update, like any other
// spawn.
func Restore(w *ecs.World, snap *Snapshot) error {
	for _, es := range snap.Entities {
		e := w.CreateEntity(es.Name)
		for name, raw := range es.Components {
			id, ok := component.KindID(name)
			if !ok {
				continue
			}
			v, err := component.Decode(id, raw)
			if err != nil {
				return fmt.Errorf("save: decode %s on %q: %w", name, es.Name, err)
			}
			if err := w.Attach(e, id, v); err != nil {
				return fmt.Errorf("save: attach %s on %q: %w", name, es.Name, err)
			}
		}
	}
	return nil
}

// Save captures the world and writes it to the named slot.
func (s *Store) Save(w *ecs.World, slot string) error {
	if s.manager == nil {
		return ErrNoStorage
	}
	snap, err := Capture(w)
	if err != nil {
		return err
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return s.manager.SaveObjectProp(savesObject, slot, data)
}

// Load reads the named slot and restores it into the world.
func (s *Store) Load(w *ecs.World, slot string) error {
	if s.manager == nil {
		return ErrNoStorage
	}
	if !s.manager.ObjectPropExists(savesObject, slot) {
		return fmt.Errorf("save: slot %q does not exist", slot)
	}
	data, err := s.manager.LoadObjectProp(savesObject, slot)
	if err != nil {
		return err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("save: slot %q corrupt: %w", slot, err)
	}
	return Restore(w, &snap)
}

// Exists reports whether the named slot holds a snapshot.
func (s *Store) Exists(slot string) bool {
	return s.manager != nil && s.manager.ObjectPropExists(savesObject, slot)
}
