// Package ast is Vellum's single AST representation: an
// index-addressable tree stored in append-only, doubling-growth
// arenas. Nodes never hold pointers to each other — every cross-node
// reference is a NodeId or PayloadId, both dense uint32 indices that
// stay valid across arena growth.
package ast

// NodeID indexes the Node arena. Invalid is reserved for "no node" —
// used, for example, as an IfBranch's condition to mark the trailing
// unconditional else.
type NodeID uint32

// InvalidNodeID is never returned by a real allocation.
const InvalidNodeID NodeID = ^NodeID(0)

// IsValid reports whether id was produced by an allocation.
func (id NodeID) IsValid() bool { return id != InvalidNodeID }

// PayloadID indexes the payload arena for type T. Payload arenas for
// distinct T are independent; a PayloadID[A] is not comparable to a
// PayloadID[B] even though both are plain uint32 underneath — the
// generic parameter is what keeps them from being accidentally mixed
// up at a call site.
type PayloadID[T any] uint32

// InvalidPayloadID is never returned by a real allocation.
func InvalidPayloadID[T any]() PayloadID[T] { return ^PayloadID[T](0) }

// IsValid reports whether id was produced by an allocation.
func (id PayloadID[T]) IsValid() bool { return id != InvalidPayloadID[T]() }

// NodeRange addresses a contiguous run of NodeIds — repeated node
// children such as a block's statements or a call's arguments. The run
// itself lives in a side table, not inline in a payload, since payload
// structs must stay fixed-size for arena storage.
type NodeRange struct {
	Begin NodeID
	Size  uint32
}

// PayloadRange addresses a contiguous run of non-node sub-records of
// type T — parameters, struct fields, if-branches, match arms, enum
// variants, capture lists.
type PayloadRange[T any] struct {
	Begin PayloadID[T]
	Size  uint32
}

// arena is an append-only, doubling-growth, generically-typed store.
// Every allocation returns a dense, monotonically increasing index;
// growth never invalidates a previously returned index because
// indices — not pointers — are what callers hold onto.
type arena[T any] struct {
	items []T
}

func newArena[T any]() *arena[T] {
	return &arena[T]{items: make([]T, 0, 16)}
}

func (a *arena[T]) alloc(v T) uint32 {
	id := uint32(len(a.items))
	a.items = append(a.items, v)
	return id
}

func (a *arena[T]) allocRange(vs []T) (begin uint32, size uint32) {
	begin = uint32(len(a.items))
	a.items = append(a.items, vs...)
	return begin, uint32(len(vs))
}

func (a *arena[T]) get(id uint32) T { return a.items[id] }

func (a *arena[T]) slice(begin uint32, size uint32) []T {
	return a.items[begin : begin+size]
}

func (a *arena[T]) len() int { return len(a.items) }
