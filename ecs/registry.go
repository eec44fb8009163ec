package ecs

type entitySlot struct {
	name       string
	gen        generation
	live       bool
	active     bool
	createdAt  float64
	modifiedAt float64
}

// registry owns entity slots. Slot ids start at 1; 0 is reserved so the
// zero Entity is never valid.
type registry struct {
	slots []entitySlot
	free  []entityID
	count int
}

// create allocates a slot, reusing a freed one when available. The freed
// slot keeps its bumped generation so stale handles stay invalid.
func (r *registry) create(name string, now float64) Entity {
	var id entityID
	if n := len(r.free); n > 0 {
		id = r.free[n-1]
		r.free = r.free[:n-1]
	} else {
		r.slots = append(r.slots, entitySlot{})
		id = entityID(len(r.slots))
	}
	slot := &r.slots[id-1]
	slot.name = name
	slot.live = true
	slot.active = true
	slot.createdAt = now
	slot.modifiedAt = now
	r.count++
	return makeEntity(id, slot.gen)
}

// destroy marks the entity inactive. It stays in the registry until purged
// so lookups made later in the same frame still resolve. ok is false for
// unknown or stale handles; destroying an already-inactive entity that has
// not been purged yet is idempotent, so newly is true only on the first
// call and the caller queues the purge exactly once.
func (r *registry) destroy(e Entity) (ok, newly bool) {
	slot := r.slot(e)
	if slot == nil {
		return false, false
	}
	newly = slot.active
	slot.active = false
	return true, newly
}

// purge frees the slot and bumps the generation. Called by the world once
// pending removals are resolved.
func (r *registry) purge(e Entity) {
	slot := r.slot(e)
	if slot == nil {
		return
	}
	slot.live = false
	slot.active = false
	slot.name = ""
	slot.gen++
	r.free = append(r.free, e.id())
	r.count--
}

// slot returns the backing slot for a handle, or nil if the handle is
// unknown or stale.
func (r *registry) slot(e Entity) *entitySlot {
	id := e.id()
	if id == 0 || int(id) > len(r.slots) {
		return nil
	}
	slot := &r.slots[id-1]
	if !slot.live || slot.gen != e.generation() {
		return nil
	}
	return slot
}

func (r *registry) exists(e Entity) bool {
	return r.slot(e) != nil
}

func (r *registry) isActive(e Entity) bool {
	slot := r.slot(e)
	return slot != nil && slot.active
}

func (r *registry) touch(e Entity, now float64) {
	if slot := r.slot(e); slot != nil {
		slot.modifiedAt = now
	}
}

// each visits every live slot in id order.
func (r *registry) each(fn func(e Entity, slot *entitySlot)) {
	for i := range r.slots {
		slot := &r.slots[i]
		if !slot.live {
			continue
		}
		fn(makeEntity(entityID(i+1), slot.gen), slot)
	}
}
