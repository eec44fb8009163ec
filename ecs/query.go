package ecs

import "github.com/glitchzeros/zonefall/ecs/component"

// KindSet is the set of component kinds an entity currently carries.
type KindSet map[component.ID]struct{}

func (s KindSet) Has(id component.ID) bool {
	_, ok := s[id]
	return ok
}

// Query filters entities by component kinds. All clauses combine with AND:
// the entity must carry every kind in All, at least one kind in Any (an
// empty Any is vacuously true), and no kind in None.
type Query struct {
	All  []component.ID
	Any  []component.ID
	None []component.ID
}

// Matches reports whether an entity with the given kind set satisfies the
// query. Pure; no world access.
func (q Query) Matches(kinds KindSet) bool {
	for _, id := range q.All {
		if !kinds.Has(id) {
			return false
		}
	}
	if len(q.Any) > 0 {
		found := false
		for _, id := range q.Any {
			if kinds.Has(id) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	for _, id := range q.None {
		if kinds.Has(id) {
			return false
		}
	}
	return true
}
