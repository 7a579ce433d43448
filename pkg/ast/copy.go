package ast

// Copy duplicates n's token, kind and payload into a fresh node with no
// children. String payloads are re-interned, which is idempotent and
// yields the same canonical storage as the original. Copy panics on a
// corrupted kind; every kind produced by this package is covered.
func (t *Tree) Copy(n *Node) *Node {
	switch n.Kind {
	case KindNull:
		return t.NewNull(n.Token)
	case KindInt:
		return t.NewInt(n.Token, n.Int())
	case KindUInt:
		return t.NewUInt(n.Token, n.UInt())
	case KindDouble:
		return t.NewDouble(n.Token, n.Double())
	case KindString:
		return t.NewString(n.Token, n.Str())
	case KindPointer:
		return t.NewPointer(n.Token, n.Ptr())
	}

	panic("ast: copy of node with invalid kind")
}

// CopyRecursive duplicates n and its entire subtree, preserving child
// order at every depth. The result shares no node storage with the
// original; string payloads remain logically shared through interning.
func (t *Tree) CopyRecursive(n *Node) *Node {
	ret := t.Copy(n)

	for _, child := range n.Children {
		ret.AppendChild(t.CopyRecursive(child))
	}

	return ret
}
