package ecs

import "strconv"

// Entity packs a slot id in the low 32 bits and the slot's generation in the
// high 32 bits. The zero Entity is never handed out.
type Entity uint64

type entityID uint32
type generation uint32

const entityIDBits = 32

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<entityIDBits | uint64(id))
}

func (e Entity) id() entityID {
	return entityID(uint32(e))
}

func (e Entity) generation() generation {
	return generation(uint32(uint64(e) >> entityIDBits))
}

func (e Entity) String() string {
	return strconv.FormatUint(uint64(e.id()), 10) + "v" + strconv.FormatUint(uint64(e.generation()), 10)
}

func (e Entity) Valid() bool {
	return e.id() > 0
}

// entityAllocator recycles slot ids, bumping the generation on reuse so stale
// handles stop resolving.
type entityAllocator struct {
	gens  []generation
	alive []bool
	free  []entityID
}

func (a *entityAllocator) create() Entity {
	if n := len(a.free); n > 0 {
		id := a.free[n-1]
		a.free = a.free[:n-1]
		a.alive[id-1] = true
		return makeEntity(id, a.gens[id-1])
	}
	a.gens = append(a.gens, 0)
	a.alive = append(a.alive, true)
	return makeEntity(entityID(len(a.gens)), 0)
}

func (a *entityAllocator) destroy(e Entity) bool {
	if !a.isAlive(e) {
		return false
	}
	idx := e.id() - 1
	a.alive[idx] = false
	a.gens[idx]++
	a.free = append(a.free, e.id())
	return true
}

func (a *entityAllocator) isAlive(e Entity) bool {
	id := e.id()
	if id == 0 || int(id) > len(a.gens) {
		return false
	}
	return a.alive[id-1] && a.gens[id-1] == e.generation()
}
