package ast

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintPerKind(t *testing.T) {
	t.Parallel()

	tree := newTestTree(t)

	tests := []struct {
		name string
		node *Node
		want string
	}{
		{"null_omits_payload", tree.NewNull("NIL"), "[NIL]"},
		{"int", tree.NewInt("NUM", -42), "[NUM -42]"},
		{"uint", tree.NewUInt("NUM", 42), "[NUM 42]"},
		{"double_fixed_point", tree.NewDouble("NUM", 2.5), "[NUM 2.500000]"},
		{"string_quoted", tree.NewString("ID", "foo"), `[ID "foo"]`},
		{"string_escaped", tree.NewString("ID", "a\"b"), `[ID "a\"b"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.node.String())
		})
	}
}

func TestPrintPointerRendersAddress(t *testing.T) {
	t.Parallel()

	tree := newTestTree(t)
	target := &struct{}{}

	got := tree.NewPointer("PTR", target).String()
	assert.Equal(t, fmt.Sprintf("[PTR %p]", target), got)
}

func TestPrintScenario(t *testing.T) {
	t.Parallel()

	tree := newTestTree(t)

	a := tree.NewInt("NUM", 42)
	b := tree.NewString("ID", "foo")
	a.AppendChild(b)

	var buf strings.Builder

	require.NoError(t, Fprint(&buf, a))
	assert.Equal(t, `[NUM 42 [ID "foo"]]`, buf.String())

	// Interning "foo" again yields a payload aliasing b's storage.
	again := tree.NewString("ID", "foo")
	assert.Same(t, unsafe.StringData(b.Str()), unsafe.StringData(again.Str()))
}

func TestPrintNestedChildren(t *testing.T) {
	t.Parallel()

	tree := newTestTree(t)

	root := tree.NewNull("R")
	c1 := tree.NewInt("A", 1)
	c2 := tree.NewInt("B", 2)
	c1.AppendChild(tree.NewString("S", "x"))
	root.AppendChild(c1)
	root.AppendChild(c2)

	assert.Equal(t, `[R [A 1 [S "x"]] [B 2]]`, root.String())
}

type failWriter struct{}

var errSink = errors.New("sink closed")

func (failWriter) Write([]byte) (int, error) {
	return 0, errSink
}

func TestFprintPropagatesWriteError(t *testing.T) {
	t.Parallel()

	tree := newTestTree(t)

	err := Fprint(failWriter{}, tree.NewNull("X"))
	assert.ErrorIs(t, err, errSink)
}
