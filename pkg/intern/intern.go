// Package intern deduplicates string payloads for one syntax tree.
//
// The table is an AA tree: a simplified red-black tree that tracks an
// integer level per node instead of a color and restores balance with the
// skew and split rotations. There is no lookup or delete routine by
// design; lookup is provided by Intern itself, and entries die only with
// the arena that owns their bytes.
package intern

import (
	"unsafe"

	"github.com/yin-nadie/zebu/pkg/arena"
)

// entrySlabLen is how many tree entries each slab holds. Slabs are only
// appended to while below capacity, so entry addresses stay stable.
const entrySlabLen = 128

// entry is one node of the AA tree. data is the canonical string; its
// bytes live in arena storage.
type entry struct {
	left, right *entry
	level       int
	data        string
}

// Table is an AA tree keyed by lexicographic byte comparison of the
// interned content. Not safe for concurrent use.
type Table struct {
	arena *arena.Arena
	slabs [][]entry
	root  *entry
	count int
}

// NewTable returns an empty table drawing string storage from a.
func NewTable(a *arena.Arena) *Table {
	return &Table{arena: a}
}

// Intern returns the canonical copy of s. The first time a given content
// is seen it is copied into arena storage and inserted; every later call
// with equal content returns a string aliasing that same storage.
func (t *Table) Intern(s string) string {
	var canon string

	t.root = t.insert(t.root, s, &canon)

	return canon
}

// Len returns the number of distinct strings interned so far.
func (t *Table) Len() int {
	return t.count
}

// Walk visits every interned string in lexicographic order. It stops
// early if fn returns false.
func (t *Table) Walk(fn func(string) bool) {
	walk(t.root, fn)
}

func walk(e *entry, fn func(string) bool) bool {
	if e == nil {
		return true
	}

	if !walk(e.left, fn) {
		return false
	}

	if !fn(e.data) {
		return false
	}

	return walk(e.right, fn)
}

func (t *Table) insert(e *entry, s string, canon *string) *entry {
	if e == nil {
		fresh := t.newEntry(s)
		*canon = fresh.data

		return fresh
	}

	switch {
	case s < e.data:
		e.left = t.insert(e.left, s, canon)
	case s > e.data:
		e.right = t.insert(e.right, s, canon)
	default:
		*canon = e.data

		return e
	}

	return split(skew(e))
}

// skew rotates a left-horizontal link (left child sharing the node's
// level) to the top.
func skew(e *entry) *entry {
	if e.left == nil || e.left.level != e.level {
		return e
	}

	l := e.left
	e.left = l.right
	l.right = e

	return l
}

// split rotates two consecutive right-horizontal links: if the right-right
// grandchild shares the node's level, the right child comes up and gains a
// level.
func split(e *entry) *entry {
	if e.right == nil || e.right.right == nil {
		return e
	}

	if e.right.right.level != e.level {
		return e
	}

	r := e.right
	e.right = r.left
	r.left = e
	r.level++

	return r
}

// newEntry copies s into arena storage and allocates a level-1 leaf.
func (t *Table) newEntry(s string) *entry {
	data := s
	if len(s) > 0 {
		buf := t.arena.Alloc(len(s))
		copy(buf, s)
		data = unsafe.String(&buf[0], len(buf))
	}

	if len(t.slabs) == 0 || len(t.slabs[len(t.slabs)-1]) == entrySlabLen {
		t.slabs = append(t.slabs, make([]entry, 0, entrySlabLen))
	}

	slab := &t.slabs[len(t.slabs)-1]
	*slab = append(*slab, entry{level: 1, data: data})
	t.count++

	return &(*slab)[len(*slab)-1]
}
