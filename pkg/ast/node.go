// Package ast provides the node and tree substrate for abstract syntax
// trees: a tree is a factory that allocates nodes out of a bulk arena and
// destroys all of them, and every interned string, in one call.
package ast

// Node is a tagged value with ordered children.
//
// Token is an identifying label supplied by the caller; the node does not
// copy it and the caller is responsible for its lifetime. Children is
// append-only via [Node.AppendChild] and must only ever contain nodes
// allocated by the same tree; cross-tree linkage is a caller error that is
// not defended against. Extra is the per-node extension slot configured at
// [NewTree] time, backed by the tree's arena.
type Node struct {
	Token    string
	Kind     Kind
	Children []*Node
	Extra    []byte

	num uint64
	flt float64
	str string
	ptr any
}

// Int returns the payload of a [KindInt] node.
func (n *Node) Int() int64 {
	return int64(n.num)
}

// UInt returns the payload of a [KindUInt] node.
func (n *Node) UInt() uint64 {
	return n.num
}

// Double returns the payload of a [KindDouble] node.
func (n *Node) Double() float64 {
	return n.flt
}

// Str returns the payload of a [KindString] node. The returned string is
// the canonical interned copy, valid until the owning tree is destroyed.
func (n *Node) Str() string {
	return n.str
}

// Ptr returns the payload of a [KindPointer] node. The value is opaque to
// the tree and caller-owned.
func (n *Node) Ptr() any {
	return n.ptr
}

// AppendChild appends child at the end of n's children sequence. No cycle
// detection is performed; the caller must not create cycles or attach a
// node owned by a different tree.
func (n *Node) AppendChild(child *Node) {
	n.Children = append(n.Children, child)
}

// Find returns all nodes in the subtree rooted at n (including n) for
// which predicate returns true. Traversal is pre-order. Returns nil if n
// is nil.
func (n *Node) Find(predicate func(*Node) bool) []*Node {
	if n == nil {
		return nil
	}

	var result []*Node

	stack := []*Node{n}

	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if predicate(curr) {
			result = append(result, curr)
		}

		for idx := len(curr.Children) - 1; idx >= 0; idx-- {
			stack = append(stack, curr.Children[idx])
		}
	}

	return result
}

// VisitPreOrder visits the subtree rooted at n in pre-order (node first,
// then children left to right).
func (n *Node) VisitPreOrder(fn func(*Node)) {
	if n == nil {
		return
	}

	stack := []*Node{n}

	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		fn(curr)

		for idx := len(curr.Children) - 1; idx >= 0; idx-- {
			stack = append(stack, curr.Children[idx])
		}
	}
}
