package ecs

// World hands out entity ids, knows every store that keys data by them, and
// defers destruction until the cleanup phase drains the queue.
type World struct {
	ids     *Allocator
	stores  []Removable
	pending []EntityID
	queued  map[EntityID]struct{}
}

func NewWorld() *World {
	return &World{
		ids:     NewAllocator(),
		stores:  make([]Removable, 0, 4),
		pending: make([]EntityID, 0, 32),
		queued:  make(map[EntityID]struct{}, 32),
	}
}

// Attach registers a store; destroyed ids are removed from it on Flush.
func (w *World) Attach(s Removable) {
	w.stores = append(w.stores, s)
}

func (w *World) CreateEntity() EntityID {
	return w.ids.Create()
}

func (w *World) Alive(id EntityID) bool {
	return w.ids.Alive(id)
}

func (w *World) Live() int { return w.ids.Live() }

// MarkForDestruction queues a live id once. Dead or already queued ids are ignored.
func (w *World) MarkForDestruction(id EntityID) {
	if !w.ids.Alive(id) {
		return
	}
	if _, dup := w.queued[id]; dup {
		return
	}
	w.queued[id] = struct{}{}
	w.pending = append(w.pending, id)
}

func (w *World) Pending() int { return len(w.pending) }

// Flush destroys every queued id, drops it from all attached stores, and
// returns how many were destroyed.
func (w *World) Flush() int {
	n := len(w.pending)
	for _, id := range w.pending {
		for _, s := range w.stores {
			s.Remove(id)
		}
		w.ids.Destroy(id)
	}
	w.pending = w.pending[:0]
	clear(w.queued)
	return n
}
