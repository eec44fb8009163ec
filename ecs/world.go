package ecs

import (
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/glitchzeros/zonefall/ecs/component"
)

const defaultFixedTimeStep = 1.0 / 60.0

// World owns the entity registry, the component stores, and the system
// list. All structural mutation goes through it: systems never touch the
// registry or stores directly.
type World struct {
	reg     registry
	stores  map[component.ID]*sparseSet
	systems []System
	nextSeq int

	pendingAdd     []Entity
	pendingNew     map[Entity]struct{}
	pendingDestroy []Entity

	events EventQueue

	fixedTimeStep float64
	accumulator   float64
	now           float64
	frames        uint64
	fixedSteps    uint64
}

// NewWorld creates an empty world with the default 1/60s fixed timestep.
func NewWorld() *World {
	return &World{
		stores:        make(map[component.ID]*sparseSet),
		pendingNew:    make(map[Entity]struct{}),
		fixedTimeStep: defaultFixedTimeStep,
	}
}

// SetFixedTimeStep overrides the fixed simulation step size in seconds.
func (w *World) SetFixedTimeStep(step float64) {
	if step > 0 {
		w.fixedTimeStep = step
	}
}

func (w *World) FixedTimeStep() float64 { return w.fixedTimeStep }

// Now is the accumulated simulated time in seconds. Time-gated gameplay
// (fire rates, AI reaction, zone ticks) reads this clock, never the wall
// clock, so a paused host freezes simulated time.
func (w *World) Now() float64 { return w.now }

// NowMS is Now in milliseconds.
func (w *World) NowMS() float64 { return w.now * 1000 }

// CreateEntity allocates an entity. It is not visible to system membership
// until the next Update resolves pending structural changes; ad-hoc queries
// see it immediately.
func (w *World) CreateEntity(name string) Entity {
	e := w.reg.create(name, w.now)
	w.pendingAdd = append(w.pendingAdd, e)
	w.pendingNew[e] = struct{}{}
	return e
}

// DestroyEntity marks the entity inactive. Structural removal — from every
// system's membership, the registry, and the stores — happens at the start
// of the next Update. Returns false for unknown or stale handles; repeated
// calls before the purge are idempotent and return true.
func (w *World) DestroyEntity(e Entity) bool {
	ok, newly := w.reg.destroy(e)
	if newly {
		w.pendingDestroy = append(w.pendingDestroy, e)
	}
	return ok
}

// EntityExists reports whether the handle still resolves to a live slot.
func (w *World) EntityExists(e Entity) bool { return w.reg.exists(e) }

// EntityActive reports whether the entity is live and not marked for
// destruction.
func (w *World) EntityActive(e Entity) bool { return w.reg.isActive(e) }

// EntityInfo is the registry's bookkeeping for one entity.
type EntityInfo struct {
	Name       string
	Active     bool
	CreatedAt  float64
	ModifiedAt float64
}

func (w *World) EntityInfo(e Entity) (EntityInfo, bool) {
	slot := w.reg.slot(e)
	if slot == nil {
		return EntityInfo{}, false
	}
	return EntityInfo{
		Name:       slot.name,
		Active:     slot.active,
		CreatedAt:  slot.createdAt,
		ModifiedAt: slot.modifiedAt,
	}, true
}

func (w *World) EntityName(e Entity) string {
	slot := w.reg.slot(e)
	if slot == nil {
		return ""
	}
	return slot.name
}

// Attach stores a component on an active entity, overwriting any existing
// component of the same kind, and synchronously recomputes system
// membership for that entity.
func (w *World) Attach(e Entity, id component.ID, v any) error {
	if id == 0 {
		return component.ErrInvalidKind
	}
	if v == nil {
		return component.ErrNilComponent
	}
	if !w.reg.isActive(e) {
		return component.ErrEntityNotAlive
	}
	store := w.stores[id]
	if store == nil {
		store = &sparseSet{}
		w.stores[id] = store
	}
	store.set(e.id(), v)
	w.reg.touch(e, w.now)
	w.refreshMembership(e)
	return nil
}

// Detach removes a component. Returns false if the entity is unknown or
// the component is absent; callers treat that as a silent no-op.
func (w *World) Detach(e Entity, id component.ID) bool {
	if !w.reg.exists(e) {
		return false
	}
	store := w.stores[id]
	if store == nil || !store.remove(e.id()) {
		return false
	}
	w.reg.touch(e, w.now)
	w.refreshMembership(e)
	return true
}

// Component returns the stored component value, typically a *T, for a live
// entity. Stale handles always miss, even if the slot has been recycled.
func (w *World) Component(e Entity, id component.ID) (any, bool) {
	if !w.reg.exists(e) {
		return nil, false
	}
	store := w.stores[id]
	if store == nil {
		return nil, false
	}
	v := store.get(e.id())
	if v == nil {
		return nil, false
	}
	return v, true
}

func (w *World) HasComponent(e Entity, id component.ID) bool {
	_, ok := w.Component(e, id)
	return ok
}

// ComponentKinds returns the set of kinds the entity currently carries.
func (w *World) ComponentKinds(e Entity) KindSet {
	kinds := make(KindSet)
	if !w.reg.exists(e) {
		return kinds
	}
	for id, store := range w.stores {
		if store.has(e.id()) {
			kinds[id] = struct{}{}
		}
	}
	return kinds
}

// EachComponent visits every component attached to the entity.
func (w *World) EachComponent(e Entity, fn func(id component.ID, v any)) {
	if !w.reg.exists(e) {
		return
	}
	for id, store := range w.stores {
		if v := store.get(e.id()); v != nil {
			fn(id, v)
		}
	}
}

// EachEntity visits every active entity.
func (w *World) EachEntity(fn func(e Entity)) {
	w.reg.each(func(e Entity, slot *entitySlot) {
		if slot.active {
			fn(e)
		}
	})
}

// EntityCount is the number of live entities, including ones pending
// destruction this frame.
func (w *World) EntityCount() int { return w.reg.count }

// Query scans all active entities directly, ignoring system membership
// caches. Meant for one-off lookups like AI perception.
func (w *World) Query(q Query) []Entity {
	var out []Entity
	w.reg.each(func(e Entity, slot *entitySlot) {
		if !slot.active {
			return
		}
		if q.Matches(w.ComponentKinds(e)) {
			out = append(out, e)
		}
	})
	return out
}

// AddSystem registers a system, injects the world reference, re-sorts the
// execution order, and binds all already-resolved entities that match the
// system's query.
func (w *World) AddSystem(s System) {
	if s == nil {
		return
	}
	b := s.Base()
	b.world = w
	b.seq = w.nextSeq
	w.nextSeq++
	w.systems = append(w.systems, s)
	w.sortSystems()

	w.reg.each(func(e Entity, slot *entitySlot) {
		if !slot.active {
			return
		}
		if _, pending := w.pendingNew[e]; pending {
			return
		}
		if b.MatchesQuery(w.ComponentKinds(e)) && b.addEntity(e) {
			w.fireAdded(s, e)
		}
	})
}

// RemoveSystem detaches the named system, firing its shutdown hook.
func (w *World) RemoveSystem(name string) bool {
	for i, s := range w.systems {
		if s.Base().name != name {
			continue
		}
		if h, ok := s.(ShutdownHandler); ok {
			h.Shutdown()
		}
		w.systems = append(w.systems[:i], w.systems[i+1:]...)
		w.sortSystems()
		return true
	}
	return false
}

// SystemByName returns the named system, or nil. Used for the few explicit
// cross-system lookups (collision forwarding damage to destruction).
func (w *World) SystemByName(name string) System {
	for _, s := range w.systems {
		if s.Base().name == name {
			return s
		}
	}
	return nil
}

// Systems returns the systems in execution order.
func (w *World) Systems() []System {
	out := make([]System, len(w.systems))
	copy(out, w.systems)
	return out
}

func (w *World) sortSystems() {
	sort.SliceStable(w.systems, func(i, j int) bool {
		bi, bj := w.systems[i].Base(), w.systems[j].Base()
		if bi.priority != bj.priority {
			return bi.priority < bj.priority
		}
		return bi.seq < bj.seq
	})
}

// Update advances the simulation by dt seconds: resolve pending structural
// changes, run the update pass in priority order, run fixed-timestep
// catch-up passes, then the late pass. The host clamps dt before calling;
// the world trusts it.
func (w *World) Update(dt float64) {
	w.now += dt
	w.frames++

	w.resolvePending()

	for _, s := range w.systems {
		w.runSystem(s, func() error { return s.Update(dt) })
	}

	w.accumulator += dt
	for w.accumulator >= w.fixedTimeStep {
		for _, s := range w.systems {
			w.runSystem(s, func() error { return s.FixedUpdate(w.fixedTimeStep) })
		}
		w.accumulator -= w.fixedTimeStep
		w.fixedSteps++
	}

	for _, s := range w.systems {
		w.runSystem(s, func() error { return s.LateUpdate(dt) })
	}
}

// resolvePending applies entity creations and destructions queued since the
// last pass. Removals and additions operate on disjoint sets: an entity
// created and destroyed within the same frame is purged here and never
// reaches any system.
func (w *World) resolvePending() {
	for _, e := range w.pendingDestroy {
		for _, s := range w.systems {
			if s.Base().removeEntity(e) {
				w.fireRemoved(s, e)
			}
		}
		for _, store := range w.stores {
			store.remove(e.id())
		}
		w.reg.purge(e)
	}
	w.pendingDestroy = w.pendingDestroy[:0]

	for _, e := range w.pendingAdd {
		delete(w.pendingNew, e)
		if !w.reg.isActive(e) {
			continue
		}
		kinds := w.ComponentKinds(e)
		for _, s := range w.systems {
			if s.Base().MatchesQuery(kinds) && s.Base().addEntity(e) {
				w.fireAdded(s, e)
			}
		}
	}
	w.pendingAdd = w.pendingAdd[:0]
}

// refreshMembership recomputes every system's membership for one entity
// after a component change. Entities still pending their first resolve are
// skipped; they bind at the next Update.
func (w *World) refreshMembership(e Entity) {
	if _, pending := w.pendingNew[e]; pending {
		return
	}
	if !w.reg.isActive(e) {
		return
	}
	kinds := w.ComponentKinds(e)
	for _, s := range w.systems {
		b := s.Base()
		match := b.MatchesQuery(kinds)
		switch {
		case match && !b.HasEntity(e):
			if b.addEntity(e) {
				w.fireAdded(s, e)
			}
		case !match && b.HasEntity(e):
			if b.removeEntity(e) {
				w.fireRemoved(s, e)
			}
		}
	}
}

func (w *World) fireAdded(s System, e Entity) {
	if h, ok := s.(EntityAddedHandler); ok {
		h.OnEntityAdded(e)
	}
}

func (w *World) fireRemoved(s System, e Entity) {
	if h, ok := s.(EntityRemovedHandler); ok {
		h.OnEntityRemoved(e)
	}
}

// runSystem is the isolation boundary: a disabled or empty system is
// skipped, timing is recorded, and an error or panic is logged with the
// system's name without halting the frame.
func (w *World) runSystem(s System, pass func() error) {
	b := s.Base()
	if b.disabled || len(b.order) == 0 {
		return
	}
	start := time.Now()
	err := callSystem(pass)
	b.stats.record(time.Since(start))
	if err != nil {
		log.Printf("ecs: system %q: %v", b.name, err)
	}
}

func callSystem(pass func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("recovered panic: %v", r)
		}
	}()
	return pass()
}

// Stats is the world-level diagnostics snapshot for debug overlays.
type Stats struct {
	Entities        int
	Systems         int
	Frames          uint64
	FixedSteps      uint64
	Now             float64
	PendingAdds     int
	PendingRemovals int
	Reports         []PerformanceReport
}

func (w *World) Stats() Stats {
	st := Stats{
		Entities:        w.reg.count,
		Systems:         len(w.systems),
		Frames:          w.frames,
		FixedSteps:      w.fixedSteps,
		Now:             w.now,
		PendingAdds:     len(w.pendingAdd),
		PendingRemovals: len(w.pendingDestroy),
	}
	for _, s := range w.systems {
		st.Reports = append(st.Reports, s.Base().PerformanceReport())
	}
	return st
}
