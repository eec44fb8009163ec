package ecs

import (
	"testing"

	"github.com/glitchzeros/zonefall/ecs/component"
)

type testMarkerA struct{ N int }
type testMarkerB struct{ N int }
type testMarkerC struct{ N int }

var (
	testCompA = component.NewComponent[testMarkerA]("test_marker_a")
	testCompB = component.NewComponent[testMarkerB]("test_marker_b")
	testCompC = component.NewComponent[testMarkerC]("test_marker_c")
)

// probeSystem records which entities it holds and how often its passes ran.
type probeSystem struct {
	BaseSystem
	updates      int
	fixedUpdates int
	lateUpdates  int
	added        []Entity
	removed      []Entity
	failWith     error
	panicWith    any
}

func newProbeSystem(name string, priority Priority, q Query) *probeSystem {
	return &probeSystem{BaseSystem: NewBaseSystem(name, priority, q)}
}

func (s *probeSystem) Update(dt float64) error {
	s.updates++
	if s.panicWith != nil {
		panic(s.panicWith)
	}
	return s.failWith
}

func (s *probeSystem) FixedUpdate(dt float64) error {
	s.fixedUpdates++
	return nil
}

func (s *probeSystem) LateUpdate(dt float64) error {
	s.lateUpdates++
	return nil
}

func (s *probeSystem) OnEntityAdded(e Entity)   { s.added = append(s.added, e) }
func (s *probeSystem) OnEntityRemoved(e Entity) { s.removed = append(s.removed, e) }

func queryA() Query {
	return Query{All: []component.ID{testCompA.ID()}}
}

func TestEntityLifecycle(t *testing.T) {
	w := NewWorld()

	e := w.CreateEntity("thing")
	if !w.EntityExists(e) {
		t.Fatalf("created entity should exist")
	}
	if !w.EntityActive(e) {
		t.Fatalf("created entity should be active")
	}

	if !w.DestroyEntity(e) {
		t.Fatalf("destroying a live entity should return true")
	}
	if w.EntityActive(e) {
		t.Fatalf("destroyed entity should be inactive immediately")
	}
	if !w.EntityExists(e) {
		t.Fatalf("destroyed entity should still exist until the next update")
	}
	if !w.DestroyEntity(e) {
		t.Fatalf("repeated destroy before the purge should stay true")
	}

	w.Update(0)

	if w.EntityExists(e) {
		t.Fatalf("entity should be purged after update")
	}
	if w.DestroyEntity(e) {
		t.Fatalf("destroying a stale handle should return false")
	}
}

func TestStaleHandleAfterSlotReuse(t *testing.T) {
	w := NewWorld()

	old := w.CreateEntity("first")
	if err := w.Attach(old, testCompA.ID(), &testMarkerA{N: 1}); err != nil {
		t.Fatalf("attach: %v", err)
	}
	w.DestroyEntity(old)
	w.Update(0)

	reused := w.CreateEntity("second")
	if err := w.Attach(reused, testCompA.ID(), &testMarkerA{N: 2}); err != nil {
		t.Fatalf("attach: %v", err)
	}

	if w.EntityExists(old) {
		t.Fatalf("old handle should not resolve after slot reuse")
	}
	if _, ok := Get(w, old, testCompA); ok {
		t.Fatalf("old handle should not read the new occupant's component")
	}
	if v, ok := Get(w, reused, testCompA); !ok || v.N != 2 {
		t.Fatalf("new handle should read its own component, got %+v ok=%v", v, ok)
	}
}

func TestMembershipFollowsComponents(t *testing.T) {
	w := NewWorld()
	sys := newProbeSystem("probe", PriorityNormal, queryA())
	w.AddSystem(sys)

	e := w.CreateEntity("thing")
	if err := w.Attach(e, testCompA.ID(), &testMarkerA{}); err != nil {
		t.Fatalf("attach: %v", err)
	}

	// Entities created mid-frame bind at the next update, not immediately.
	if sys.HasEntity(e) {
		t.Fatalf("pending entity should not be a member yet")
	}
	w.Update(0)
	if !sys.HasEntity(e) {
		t.Fatalf("entity should join membership after update")
	}
	if len(sys.added) != 1 || sys.added[0] != e {
		t.Fatalf("added hook should fire once for %v, got %v", e, sys.added)
	}

	// Detach recomputes membership synchronously for resolved entities.
	if !w.Detach(e, testCompA.ID()) {
		t.Fatalf("detach should report removal")
	}
	if sys.HasEntity(e) {
		t.Fatalf("entity should leave membership on detach")
	}
	if err := w.Attach(e, testCompA.ID(), &testMarkerA{}); err != nil {
		t.Fatalf("attach: %v", err)
	}
	if !sys.HasEntity(e) {
		t.Fatalf("entity should rejoin membership on attach")
	}
}

func TestMembershipMatchesQueryForAllSystems(t *testing.T) {
	w := NewWorld()
	systems := []*probeSystem{
		newProbeSystem("all_a", PriorityNormal, Query{All: []component.ID{testCompA.ID()}}),
		newProbeSystem("any_ab", PriorityNormal, Query{Any: []component.ID{testCompA.ID(), testCompB.ID()}}),
		newProbeSystem("a_not_c", PriorityNormal, Query{
			All:  []component.ID{testCompA.ID()},
			None: []component.ID{testCompC.ID()},
		}),
	}
	for _, s := range systems {
		w.AddSystem(s)
	}

	entities := make([]Entity, 0, 8)
	for i := 0; i < 8; i++ {
		e := w.CreateEntity("e")
		if i%2 == 0 {
			_ = w.Attach(e, testCompA.ID(), &testMarkerA{})
		}
		if i%3 == 0 {
			_ = w.Attach(e, testCompB.ID(), &testMarkerB{})
		}
		if i%4 == 0 {
			_ = w.Attach(e, testCompC.ID(), &testMarkerC{})
		}
		entities = append(entities, e)
	}
	w.Update(0)
	_ = w.Detach(entities[2], testCompA.ID())
	_ = w.Attach(entities[1], testCompB.ID(), &testMarkerB{})

	// Membership must equal the query predicate for every entity and
	// every system, no matter how we got here.
	for _, s := range systems {
		for _, e := range entities {
			want := s.MatchesQuery(w.ComponentKinds(e))
			if got := s.HasEntity(e); got != want {
				t.Fatalf("system %s entity %v: membership=%v, query says %v", s.Name(), e, got, want)
			}
		}
	}
}

func TestDestroyRemovesFromSystemsBeforePurge(t *testing.T) {
	w := NewWorld()
	sys := newProbeSystem("probe", PriorityNormal, queryA())
	w.AddSystem(sys)

	e := w.CreateEntity("thing")
	_ = w.Attach(e, testCompA.ID(), &testMarkerA{})
	w.Update(0)

	w.DestroyEntity(e)
	w.Update(0)

	if sys.HasEntity(e) {
		t.Fatalf("destroyed entity should be out of membership")
	}
	if len(sys.removed) != 1 || sys.removed[0] != e {
		t.Fatalf("removed hook should fire once for %v, got %v", e, sys.removed)
	}
	if _, ok := Get(w, e, testCompA); ok {
		t.Fatalf("component should be gone after purge")
	}
}

func TestCreateAndDestroySameFrameNeverReachesSystems(t *testing.T) {
	w := NewWorld()
	sys := newProbeSystem("probe", PriorityNormal, queryA())
	w.AddSystem(sys)

	e := w.CreateEntity("ephemeral")
	_ = w.Attach(e, testCompA.ID(), &testMarkerA{})
	w.DestroyEntity(e)
	w.Update(0)

	if len(sys.added) != 0 {
		t.Fatalf("same-frame create+destroy should never bind, got %v", sys.added)
	}
	if w.EntityExists(e) {
		t.Fatalf("same-frame create+destroy should purge the entity")
	}
}

func TestAdHocQuerySeesPendingEntities(t *testing.T) {
	w := NewWorld()
	e := w.CreateEntity("fresh")
	_ = w.Attach(e, testCompA.ID(), &testMarkerA{})

	got := w.Query(queryA())
	if len(got) != 1 || got[0] != e {
		t.Fatalf("ad-hoc query should see pending entity, got %v", got)
	}
}

func TestFixedTimestepAccumulator(t *testing.T) {
	cases := []struct {
		name       string
		step       float64
		frames     []float64
		wantFixed  uint64
		wantFrames uint64
	}{
		{"exact_steps", 0.1, []float64{0.1, 0.1}, 2, 2},
		{"fraction_carries", 0.1, []float64{0.05, 0.05, 0.05}, 1, 3},
		{"large_frame_catches_up", 0.1, []float64{0.35}, 3, 1},
		{"zero_dt_no_steps", 0.1, []float64{0}, 0, 1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			w.SetFixedTimeStep(c.step)
			sys := newProbeSystem("probe", PriorityNormal, queryA())
			w.AddSystem(sys)
			e := w.CreateEntity("thing")
			_ = w.Attach(e, testCompA.ID(), &testMarkerA{})
			w.Update(0) // bind

			before := w.Stats().FixedSteps
			for _, dt := range c.frames {
				w.Update(dt)
			}
			st := w.Stats()
			if st.FixedSteps-before != c.wantFixed {
				t.Fatalf("fixed steps = %d, want %d", st.FixedSteps-before, c.wantFixed)
			}
			if sys.fixedUpdates != int(c.wantFixed) {
				t.Fatalf("system fixed updates = %d, want %d", sys.fixedUpdates, c.wantFixed)
			}
		})
	}
}

func TestSimulatedClockAdvancesWithUpdate(t *testing.T) {
	w := NewWorld()
	w.Update(0.25)
	w.Update(0.25)
	if w.Now() != 0.5 {
		t.Fatalf("Now = %v, want 0.5", w.Now())
	}
	if w.NowMS() != 500 {
		t.Fatalf("NowMS = %v, want 500", w.NowMS())
	}
}

func TestSystemPriorityOrder(t *testing.T) {
	w := NewWorld()
	var order []string
	mk := func(name string, p Priority) System {
		s := &orderedSystem{BaseSystem: NewBaseSystem(name, p, queryA()), log: &order}
		return s
	}
	// Added out of order on purpose.
	w.AddSystem(mk("low", PriorityLow))
	w.AddSystem(mk("critical", PriorityCritical))
	w.AddSystem(mk("normal_1", PriorityNormal))
	w.AddSystem(mk("high", PriorityHigh))
	w.AddSystem(mk("normal_2", PriorityNormal))

	e := w.CreateEntity("thing")
	_ = w.Attach(e, testCompA.ID(), &testMarkerA{})
	w.Update(0)
	order = order[:0]
	w.Update(0)

	want := []string{"critical", "high", "normal_1", "normal_2", "low"}
	if len(order) != len(want) {
		t.Fatalf("ran %d systems, want %d: %v", len(order), len(want), order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("execution order %v, want %v", order, want)
		}
	}
}

type orderedSystem struct {
	BaseSystem
	log *[]string
}

func (s *orderedSystem) Update(dt float64) error {
	*s.log = append(*s.log, s.Name())
	return nil
}

func TestSystemErrorsAndPanicsDoNotHaltFrame(t *testing.T) {
	w := NewWorld()
	bad := newProbeSystem("bad", PriorityHigh, queryA())
	bad.panicWith = "boom"
	good := newProbeSystem("good", PriorityNormal, queryA())
	w.AddSystem(bad)
	w.AddSystem(good)

	e := w.CreateEntity("thing")
	_ = w.Attach(e, testCompA.ID(), &testMarkerA{})
	w.Update(0)
	w.Update(0)

	if bad.updates == 0 {
		t.Fatalf("panicking system should still have run")
	}
	if good.updates != bad.updates {
		t.Fatalf("later system should run despite the panic: good=%d bad=%d", good.updates, bad.updates)
	}
}

func TestDisabledAndEmptySystemsAreSkipped(t *testing.T) {
	w := NewWorld()
	running := newProbeSystem("running", PriorityNormal, queryA())
	disabled := newProbeSystem("disabled", PriorityNormal, queryA())
	disabled.SetEnabled(false)
	empty := newProbeSystem("empty", PriorityNormal, Query{All: []component.ID{testCompB.ID()}})
	w.AddSystem(running)
	w.AddSystem(disabled)
	w.AddSystem(empty)

	e := w.CreateEntity("thing")
	_ = w.Attach(e, testCompA.ID(), &testMarkerA{})
	w.Update(0)
	w.Update(0)

	if disabled.updates != 0 {
		t.Fatalf("disabled system should not run")
	}
	if empty.updates != 0 {
		t.Fatalf("system with no members should not run")
	}
	if running.updates == 0 {
		t.Fatalf("enabled matching system should run")
	}
}

func TestRemoveSystemFiresShutdown(t *testing.T) {
	w := NewWorld()
	s := &shutdownSystem{BaseSystem: NewBaseSystem("s", PriorityNormal, queryA())}
	w.AddSystem(s)

	if !w.RemoveSystem("s") {
		t.Fatalf("RemoveSystem should find the system")
	}
	if !s.shutdown {
		t.Fatalf("shutdown hook should fire")
	}
	if w.SystemByName("s") != nil {
		t.Fatalf("system should be gone")
	}
	if w.RemoveSystem("s") {
		t.Fatalf("second removal should return false")
	}
}

type shutdownSystem struct {
	BaseSystem
	shutdown bool
}

func (s *shutdownSystem) Shutdown() { s.shutdown = true }

func TestAttachToInactiveEntityFails(t *testing.T) {
	w := NewWorld()
	e := w.CreateEntity("thing")
	w.DestroyEntity(e)
	if err := w.Attach(e, testCompA.ID(), &testMarkerA{}); err == nil {
		t.Fatalf("attach to a destroyed entity should fail")
	}
}

func TestAttachOverwritesExisting(t *testing.T) {
	w := NewWorld()
	e := w.CreateEntity("thing")
	_ = w.Attach(e, testCompA.ID(), &testMarkerA{N: 1})
	_ = w.Attach(e, testCompA.ID(), &testMarkerA{N: 2})
	v, ok := Get(w, e, testCompA)
	if !ok || v.N != 2 {
		t.Fatalf("attach should overwrite, got %+v ok=%v", v, ok)
	}
}
