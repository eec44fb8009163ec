package ecs

import "time"

// Priority fixes a system's position in the per-frame execution order.
// Lower values run first; ties are broken by registration order.
type Priority int

const (
	PriorityCritical Priority = iota
	PriorityHigh
	PriorityNormal
	PriorityLow
)

func (p Priority) String() string {
	switch p {
	case PriorityCritical:
		return "critical"
	case PriorityHigh:
		return "high"
	case PriorityNormal:
		return "normal"
	case PriorityLow:
		return "low"
	}
	return "unknown"
}

// System is one logic unit scheduled by the World. Concrete systems embed
// BaseSystem for membership, priority, and timing bookkeeping and override
// the tick methods they need; BaseSystem's defaults are no-ops.
//
// A returned error (or a panic, which the scheduler recovers) is logged
// with the system's name and suppressed: one system's failure never halts
// the frame for the others.
type System interface {
	Base() *BaseSystem
	Update(dt float64) error
	FixedUpdate(dt float64) error
	LateUpdate(dt float64) error
}

// EntityAddedHandler is implemented by systems that cache per-entity state.
type EntityAddedHandler interface {
	OnEntityAdded(e Entity)
}

// EntityRemovedHandler is the removal counterpart of EntityAddedHandler.
type EntityRemovedHandler interface {
	OnEntityRemoved(e Entity)
}

// ShutdownHandler runs when a system is removed from the world.
type ShutdownHandler interface {
	Shutdown()
}

// PerfStats tracks wall-clock timings of a system's passes.
type PerfStats struct {
	Last    time.Duration
	Max     time.Duration
	Min     time.Duration
	total   time.Duration
	Samples int64
}

func (p *PerfStats) record(d time.Duration) {
	p.Last = d
	p.total += d
	p.Samples++
	if d > p.Max {
		p.Max = d
	}
	if p.Min == 0 || d < p.Min {
		p.Min = d
	}
}

// Average returns the mean pass duration over all samples.
func (p *PerfStats) Average() time.Duration {
	if p.Samples == 0 {
		return 0
	}
	return p.total / time.Duration(p.Samples)
}

// PerformanceReport is the diagnostics snapshot exposed for debug overlays.
type PerformanceReport struct {
	Name        string
	Priority    Priority
	Enabled     bool
	EntityCount int
	Last        time.Duration
	Average     time.Duration
	Max         time.Duration
	Min         time.Duration
	Samples     int64
}

// BaseSystem carries the common state of every system: identity, priority,
// query, cached membership, and timing stats. The world is injected when
// the system is added, so systems never reach for it through an untyped
// back-pointer.
type BaseSystem struct {
	name     string
	priority Priority
	query    Query
	world    *World
	seq      int
	disabled bool

	members map[Entity]int
	order   []Entity
	stats   PerfStats
}

// NewBaseSystem builds the embeddable base for a concrete system.
func NewBaseSystem(name string, priority Priority, query Query) BaseSystem {
	return BaseSystem{
		name:     name,
		priority: priority,
		query:    query,
		members:  make(map[Entity]int),
	}
}

func (b *BaseSystem) Base() *BaseSystem { return b }

func (b *BaseSystem) Name() string { return b.name }

func (b *BaseSystem) Priority() Priority { return b.priority }

func (b *BaseSystem) Query() Query { return b.query }

// World returns the owning world. Nil until the system has been added.
func (b *BaseSystem) World() *World { return b.world }

func (b *BaseSystem) Enabled() bool { return !b.disabled }

func (b *BaseSystem) SetEnabled(enabled bool) { b.disabled = !enabled }

// Update, FixedUpdate, and LateUpdate are the default no-op ticks.
func (b *BaseSystem) Update(dt float64) error { return nil }

func (b *BaseSystem) FixedUpdate(dt float64) error { return nil }

func (b *BaseSystem) LateUpdate(dt float64) error { return nil }

// MatchesQuery applies the system's query to a component kind set.
func (b *BaseSystem) MatchesQuery(kinds KindSet) bool {
	return b.query.Matches(kinds)
}

// HasEntity reports cached membership, which reflects component state as of
// the last processed structural change, not necessarily mid-frame state.
func (b *BaseSystem) HasEntity(e Entity) bool {
	_, ok := b.members[e]
	return ok
}

// Entities returns a copy of the membership. Order is deterministic frame
// to frame but not insertion order: removal swaps the last member into the
// freed position. A copy, so systems can destroy or re-query entities
// while iterating.
func (b *BaseSystem) Entities() []Entity {
	out := make([]Entity, len(b.order))
	copy(out, b.order)
	return out
}

func (b *BaseSystem) EntityCount() int { return len(b.order) }

// addEntity and removeEntity are idempotent; the world calls them and fires
// the optional handler hooks afterwards.
func (b *BaseSystem) addEntity(e Entity) bool {
	if _, ok := b.members[e]; ok {
		return false
	}
	b.members[e] = len(b.order)
	b.order = append(b.order, e)
	return true
}

func (b *BaseSystem) removeEntity(e Entity) bool {
	idx, ok := b.members[e]
	if !ok {
		return false
	}
	delete(b.members, e)
	last := len(b.order) - 1
	if idx != last {
		moved := b.order[last]
		b.order[idx] = moved
		b.members[moved] = idx
	}
	b.order = b.order[:last]
	return true
}

// PerformanceReport returns the diagnostics snapshot for this system.
func (b *BaseSystem) PerformanceReport() PerformanceReport {
	return PerformanceReport{
		Name:        b.name,
		Priority:    b.priority,
		Enabled:     !b.disabled,
		EntityCount: len(b.order),
		Last:        b.stats.Last,
		Average:     b.stats.Average(),
		Max:         b.stats.Max,
		Min:         b.stats.Min,
		Samples:     b.stats.Samples,
	}
}
