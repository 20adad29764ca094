package ecs

// EntityID encodes a 32-bit slot index in the lower bits and a 32-bit generation
// in the upper bits. Generation increments on destroy to invalidate stale refs.
// Index 0 / generation 0 is never handed out so the zero value means "no entity".
type EntityID uint64

func NewEntityID(index uint32, generation uint32) EntityID {
	return EntityID(uint64(generation)<<32 | uint64(index))
}

func (id EntityID) Index() uint32      { return uint32(id) }
func (id EntityID) Generation() uint32 { return uint32(id >> 32) }
func (id EntityID) IsZero() bool       { return id == 0 }

// Allocator hands out generational ids with a free list. Pooled shapes keep
// their id for the whole session; ids are only destroyed at teardown.
type Allocator struct {
	generations []uint32
	freeList    []uint32
	nextIndex   uint32
	live        int
}

func NewAllocator() *Allocator {
	return &Allocator{
		generations: make([]uint32, 1, 128),
		freeList:    make([]uint32, 0, 32),
		nextIndex:   1, // slot 0 reserved
	}
}

func (a *Allocator) Create() EntityID {
	a.live++
	if len(a.freeList) > 0 {
		idx := a.freeList[len(a.freeList)-1]
		a.freeList = a.freeList[:len(a.freeList)-1]
		return NewEntityID(idx, a.generations[idx])
	}
	idx := a.nextIndex
	a.nextIndex++
	if int(idx) >= len(a.generations) {
		a.generations = append(a.generations, 0)
	}
	return NewEntityID(idx, a.generations[idx])
}

func (a *Allocator) Alive(id EntityID) bool {
	idx := id.Index()
	if idx == 0 || idx >= a.nextIndex {
		return false
	}
	return a.generations[idx] == id.Generation()
}

// Destroy invalidates id. Stale or unknown ids are ignored.
func (a *Allocator) Destroy(id EntityID) {
	if !a.Alive(id) {
		return
	}
	idx := id.Index()
	a.generations[idx]++
	a.freeList = append(a.freeList, idx)
	a.live--
}

// Live returns the number of ids created and not yet destroyed.
func (a *Allocator) Live() int { return a.live }
