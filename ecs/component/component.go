package component

import (
	"encoding/json"
	"errors"
	"sync"
)

var (
	ErrEntityNotAlive = errors.New("ecs: entity not alive")
	ErrNilComponent   = errors.New("ecs: component is nil")
	ErrInvalidKind    = errors.New("ecs: invalid component kind")
)

// ID is the small integer key a component kind is stored under. IDs are
// assigned at registration time, so lookups are typed instead of
// string-keyed; the registered name only matters for persistence and
// config files.
type ID uint32

// Kind is the typed id of a registered component type.
type Kind[T any] struct {
	id ID
}

func (k Kind[T]) ID() ID {
	return k.id
}

func (k Kind[T]) Valid() bool {
	return k.id != 0
}

// Handle pairs a component type with its registered kind. Package-level
// handle vars (TransformComponent, HealthComponent, ...) are the way
// systems refer to component types.
type Handle[T any] struct {
	kind Kind[T]
}

func (h Handle[T]) Kind() Kind[T] {
	return h.kind
}

func (h Handle[T]) ID() ID {
	return h.kind.id
}

type kindInfo struct {
	name   string
	decode func([]byte) (any, error)
}

var (
	regMu  sync.RWMutex
	nextID ID
	kinds  = map[ID]kindInfo{}
	byName = map[string]ID{}
)

// NewComponent registers a component type under a stable name and returns
// its handle. Registration happens in package var initializers; duplicate
// names are a programming error.
func NewComponent[T any](name string) Handle[T] {
	regMu.Lock()
	defer regMu.Unlock()
	if _, ok := byName[name]; ok {
		panic("component: duplicate kind name " + name)
	}
	nextID++
	id := nextID
	kinds[id] = kindInfo{
		name: name,
		decode: func(data []byte) (any, error) {
			v := new(T)
			if err := json.Unmarshal(data, v); err != nil {
				return nil, err
			}
			return v, nil
		},
	}
	byName[name] = id
	return Handle[T]{kind: Kind[T]{id: id}}
}

// Name returns the registered name for a kind id, or "" if unknown.
func Name(id ID) string {
	regMu.RLock()
	defer regMu.RUnlock()
	return kinds[id].name
}

// KindID resolves a registered name back to its id.
func KindID(name string) (ID, bool) {
	regMu.RLock()
	defer regMu.RUnlock()
	id, ok := byName[name]
	return id, ok
}

// Decode unmarshals a persisted component payload into a fresh *T for the
// kind it was registered under.
func Decode(id ID, data []byte) (any, error) {
	regMu.RLock()
	info, ok := kinds[id]
	regMu.RUnlock()
	if !ok {
		return nil, ErrInvalidKind
	}
	return info.decode(data)
}
