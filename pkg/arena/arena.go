// Package arena implements the bulk allocator that backs one syntax tree.
// Memory is handed out from size-classed chunks and never freed
// individually; Release drops every chunk at once, which matches the
// lifetime of an AST whose nodes never outlive the whole tree.
package arena

import "math/bits"

const (
	// ChunkSize is the capacity of every size-classed chunk.
	ChunkSize = 8 * 1024

	// MinClassSize and MaxClassSize bound the size classes. Requests above
	// MaxClassSize get a dedicated chunk on the oversized list, sized
	// exactly to the request.
	MinClassSize = 8
	MaxClassSize = 1024

	numClasses = 8
	// Oversized allocations live on a ninth list.
	numLists      = numClasses + 1
	oversizedList = numClasses
)

// chunk is a block of raw memory with a bump cursor. A chunk is retired
// once a request no longer fits; it keeps its contents until Release.
type chunk struct {
	buf  []byte
	used int
}

// Arena owns nine chunk lists: one per size class plus the oversized
// list. Not safe for concurrent use; each tree owns exactly one Arena.
type Arena struct {
	lists    [numLists][]*chunk
	released bool
}

// New returns an empty Arena with no chunks allocated yet.
func New() *Arena {
	return &Arena{}
}

// classIndex maps a request size to the smallest class that fits it.
// Callers guarantee 1 <= n <= MaxClassSize.
func classIndex(n int) int {
	idx := bits.Len(uint(n-1)) - 3
	if idx < 0 {
		return 0
	}

	return idx
}

// classSize returns the rounded allocation size for a class index.
func classSize(idx int) int {
	return MinClassSize << idx
}

// Alloc returns n bytes of zeroed memory valid until Release. The request
// is rounded up to its size class and bump-allocated from that class's
// current chunk; requests above MaxClassSize get a dedicated chunk.
// Alloc panics if the arena has been released. Returns nil for n <= 0.
func (a *Arena) Alloc(n int) []byte {
	if a.released {
		panic("arena: use of released arena")
	}

	if n <= 0 {
		return nil
	}

	if n > MaxClassSize {
		return a.allocOversized(n)
	}

	return a.allocClassed(n)
}

func (a *Arena) allocClassed(n int) []byte {
	idx := classIndex(n)
	size := classSize(idx)
	list := a.lists[idx]

	var cur *chunk
	if len(list) > 0 {
		cur = list[len(list)-1]
	}

	if cur == nil || cur.used+size > ChunkSize {
		cur = &chunk{buf: make([]byte, ChunkSize)}
		a.lists[idx] = append(a.lists[idx], cur)
	}

	start := cur.used
	cur.used += size

	// Full slice expression so callers appending to the result cannot
	// bleed into the next allocation.
	return cur.buf[start : start+n : start+size]
}

func (a *Arena) allocOversized(n int) []byte {
	cur := &chunk{buf: make([]byte, n), used: n}
	a.lists[oversizedList] = append(a.lists[oversizedList], cur)

	return cur.buf
}

// Release drops every chunk list in one pass. All memory previously
// returned by Alloc becomes invalid; any further Alloc panics.
func (a *Arena) Release() {
	for i := range a.lists {
		a.lists[i] = nil
	}

	a.released = true
}

// Released reports whether Release has been called.
func (a *Arena) Released() bool {
	return a.released
}
