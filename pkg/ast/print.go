package ast

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// doubleFmtPrec matches the C-printf "%f" fixed-point rendering.
const doubleFmtPrec = 6

// Fprint renders n and its subtree to w in bracketed form:
//
//	[token payload child child ...]
//
// The payload is rendered per kind (decimal integers, fixed-point float,
// quoted string, opaque address) and omitted for Null nodes.
func Fprint(w io.Writer, n *Node) error {
	var buf strings.Builder

	printNode(&buf, n)

	_, err := io.WriteString(w, buf.String())
	if err != nil {
		return fmt.Errorf("print tree: %w", err)
	}

	return nil
}

// String returns the bracketed form of n and its subtree.
func (n *Node) String() string {
	var buf strings.Builder

	printNode(&buf, n)

	return buf.String()
}

func printNode(buf *strings.Builder, n *Node) {
	buf.WriteByte('[')
	buf.WriteString(n.Token)

	printPayload(buf, n)

	for _, child := range n.Children {
		buf.WriteByte(' ')
		printNode(buf, child)
	}

	buf.WriteByte(']')
}

func printPayload(buf *strings.Builder, n *Node) {
	switch n.Kind {
	case KindNull:
	case KindInt:
		buf.WriteByte(' ')
		buf.WriteString(strconv.FormatInt(n.Int(), 10))
	case KindUInt:
		buf.WriteByte(' ')
		buf.WriteString(strconv.FormatUint(n.UInt(), 10))
	case KindDouble:
		buf.WriteByte(' ')
		buf.WriteString(strconv.FormatFloat(n.Double(), 'f', doubleFmtPrec, 64))
	case KindString:
		buf.WriteByte(' ')
		buf.WriteString(strconv.Quote(n.Str()))
	case KindPointer:
		fmt.Fprintf(buf, " %p", n.Ptr())
	}
}
