package ecs

import "testing"

func TestAllocatorNeverHandsOutZero(t *testing.T) {
	a := NewAllocator()
	id := a.Create()
	if id.IsZero() {
		t.Fatalf("first id must not be zero")
	}
	if !a.Alive(id) {
		t.Fatalf("fresh id should be alive")
	}
	if a.Alive(0) {
		t.Fatalf("zero id must never be alive")
	}
}

func TestAllocatorReusesSlotWithNewGeneration(t *testing.T) {
	a := NewAllocator()
	id := a.Create()
	a.Destroy(id)
	if a.Alive(id) {
		t.Fatalf("destroyed id still alive")
	}
	again := a.Create()
	if again.Index() != id.Index() {
		t.Fatalf("expected slot reuse, got index %d want %d", again.Index(), id.Index())
	}
	if again.Generation() == id.Generation() {
		t.Fatalf("expected generation bump")
	}
	a.Destroy(id) // stale
	if !a.Alive(again) || a.Live() != 1 {
		t.Fatalf("stale destroy must not affect the new id")
	}
}

func TestWorldFlushClearsStores(t *testing.T) {
	w := NewWorld()
	names := NewStore[string]()
	w.Attach(names)

	id := w.CreateEntity()
	n := "cube"
	names.Set(id, &n)

	w.MarkForDestruction(id)
	w.MarkForDestruction(id)
	if !w.Alive(id) || w.Pending() != 1 {
		t.Fatalf("destruction must be deferred until flush")
	}
	if n := w.Flush(); n != 1 {
		t.Fatalf("flushed %d ids, want 1", n)
	}
	if w.Alive(id) || names.Has(id) || w.Pending() != 0 {
		t.Fatalf("flush should destroy the id and clear its components")
	}
}

func TestWorldIgnoresDeadIDs(t *testing.T) {
	w := NewWorld()
	id := w.CreateEntity()
	w.MarkForDestruction(id)
	w.Flush()
	w.MarkForDestruction(id)
	if w.Pending() != 0 {
		t.Fatalf("dead id queued")
	}
}
