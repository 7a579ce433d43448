package ast

import (
	"errors"

	"github.com/yin-nadie/zebu/pkg/arena"
	"github.com/yin-nadie/zebu/pkg/intern"
)

// nodeSlabLen is how many nodes each slab holds. Slabs are only appended
// to while below capacity, so node addresses stay stable.
const nodeSlabLen = 64

// ErrNegativeExtra is returned by NewTree when the configured per-node
// extension size is negative.
var ErrNegativeExtra = errors.New("ast: negative per-node extra size")

// Tree owns the arena chunks and the string interner for one syntax tree.
// It produces nodes and destroys all of them in one call; there is no way
// to free an individual node. Not safe for concurrent use.
type Tree struct {
	arena     *arena.Arena
	strings   *intern.Table
	slabs     [][]Node
	extraSize int
	destroyed bool
}

// NewTree returns an empty tree. extraSize reserves that many bytes of
// arena-backed extension storage on every node (see [Node.Extra]), so
// embedding code can hang its own trailing fields off each node; pass 0
// for plain nodes. A negative extraSize returns [ErrNegativeExtra].
func NewTree(extraSize int) (*Tree, error) {
	if extraSize < 0 {
		return nil, ErrNegativeExtra
	}

	a := arena.New()

	return &Tree{
		arena:     a,
		strings:   intern.NewTable(a),
		extraSize: extraSize,
	}, nil
}

// Destroy releases every arena chunk in one pass. All nodes and interned
// strings produced by the tree become invalid simultaneously; any further
// node construction panics.
func (t *Tree) Destroy() {
	t.arena.Release()
	t.slabs = nil
	t.strings = nil
	t.destroyed = true
}

// Destroyed reports whether Destroy has been called.
func (t *Tree) Destroyed() bool {
	return t.destroyed
}

// ExtraSize returns the per-node extension size the tree was created with.
func (t *Tree) ExtraSize() int {
	return t.extraSize
}

// Interned returns the number of distinct strings interned so far.
func (t *Tree) Interned() int {
	if t.strings == nil {
		return 0
	}

	return t.strings.Len()
}

// WalkStrings visits every interned string in lexicographic order,
// stopping early if fn returns false. No-op on a destroyed tree.
func (t *Tree) WalkStrings(fn func(string) bool) {
	if t.strings == nil {
		return
	}

	t.strings.Walk(fn)
}

// Stats returns a snapshot of the tree's arena usage.
func (t *Tree) Stats() arena.Stats {
	return t.arena.Stats()
}

// mustAlive guards every operation that touches tree-owned storage.
func (t *Tree) mustAlive() {
	if t.destroyed {
		panic("ast: use of destroyed tree")
	}
}

// newNode allocates one node from the current slab, plus its extension
// slot from the arena.
func (t *Tree) newNode(token string) *Node {
	t.mustAlive()

	if len(t.slabs) == 0 || len(t.slabs[len(t.slabs)-1]) == nodeSlabLen {
		t.slabs = append(t.slabs, make([]Node, 0, nodeSlabLen))
	}

	slab := &t.slabs[len(t.slabs)-1]
	*slab = append(*slab, Node{Token: token})
	n := &(*slab)[len(*slab)-1]

	if t.extraSize > 0 {
		n.Extra = t.arena.Alloc(t.extraSize)
	}

	return n
}

// NewNull constructs a node with no payload.
func (t *Tree) NewNull(token string) *Node {
	n := t.newNode(token)
	t.SetNull(n)

	return n
}

// NewInt constructs a signed integer node.
func (t *Tree) NewInt(token string, val int64) *Node {
	n := t.newNode(token)
	t.SetInt(n, val)

	return n
}

// NewUInt constructs an unsigned integer node.
func (t *Tree) NewUInt(token string, val uint64) *Node {
	n := t.newNode(token)
	t.SetUInt(n, val)

	return n
}

// NewDouble constructs a floating point node.
func (t *Tree) NewDouble(token string, val float64) *Node {
	n := t.newNode(token)
	t.SetDouble(n, val)

	return n
}

// NewString constructs a string node. The value is interned: equal
// content is stored once per tree and shared by every node carrying it.
func (t *Tree) NewString(token, val string) *Node {
	n := t.newNode(token)
	t.SetString(n, val)

	return n
}

// NewPointer constructs an opaque pointer node. The payload is not owned
// by the tree; its lifetime is the caller's responsibility.
func (t *Tree) NewPointer(token string, val any) *Node {
	n := t.newNode(token)
	t.SetPointer(n, val)

	return n
}

// SetNull retags n as a Null node, clearing any previous payload.
func (t *Tree) SetNull(n *Node) {
	t.mustAlive()

	n.Kind = KindNull
	n.num, n.flt, n.str, n.ptr = 0, 0, "", nil
}

// SetInt retags n as an Int node holding val.
func (t *Tree) SetInt(n *Node, val int64) {
	t.SetNull(n)
	n.Kind = KindInt
	n.num = uint64(val)
}

// SetUInt retags n as a UInt node holding val.
func (t *Tree) SetUInt(n *Node, val uint64) {
	t.SetNull(n)
	n.Kind = KindUInt
	n.num = val
}

// SetDouble retags n as a Double node holding val.
func (t *Tree) SetDouble(n *Node, val float64) {
	t.SetNull(n)
	n.Kind = KindDouble
	n.flt = val
}

// SetString retags n as a String node holding the interned copy of val.
func (t *Tree) SetString(n *Node, val string) {
	t.SetNull(n)
	n.Kind = KindString
	n.str = t.strings.Intern(val)
}

// SetPointer retags n as a Pointer node holding val.
func (t *Tree) SetPointer(n *Node, val any) {
	t.SetNull(n)
	n.Kind = KindPointer
	n.ptr = val
}
