package sexpr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yin-nadie/zebu/pkg/ast"
)

func parseOne(t *testing.T, input string) *ast.Node {
	t.Helper()

	tree, err := ast.NewTree(0)
	require.NoError(t, err)

	root, err := Parse(tree, []byte(input))
	require.NoError(t, err)

	return root
}

func TestParsePayloads(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		kind  ast.Kind
		check func(t *testing.T, n *ast.Node)
	}{
		{
			name:  "null",
			input: "[nil]",
			kind:  ast.KindNull,
		},
		{
			name:  "int",
			input: "[num -42]",
			kind:  ast.KindInt,
			check: func(t *testing.T, n *ast.Node) {
				t.Helper()
				assert.Equal(t, int64(-42), n.Int())
			},
		},
		{
			name:  "uint_suffix",
			input: "[num 42u]",
			kind:  ast.KindUInt,
			check: func(t *testing.T, n *ast.Node) {
				t.Helper()
				assert.Equal(t, uint64(42), n.UInt())
			},
		},
		{
			name:  "double",
			input: "[num 2.500000]",
			kind:  ast.KindDouble,
			check: func(t *testing.T, n *ast.Node) {
				t.Helper()
				assert.InDelta(t, 2.5, n.Double(), 0)
			},
		},
		{
			name:  "string",
			input: `[id "foo"]`,
			kind:  ast.KindString,
			check: func(t *testing.T, n *ast.Node) {
				t.Helper()
				assert.Equal(t, "foo", n.Str())
			},
		},
		{
			name:  "string_with_escape",
			input: `[id "a\"b"]`,
			kind:  ast.KindString,
			check: func(t *testing.T, n *ast.Node) {
				t.Helper()
				assert.Equal(t, `a"b`, n.Str())
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			n := parseOne(t, tt.input)
			assert.Equal(t, tt.kind, n.Kind)

			if tt.check != nil {
				tt.check(t, n)
			}
		})
	}
}

func TestParseChildren(t *testing.T) {
	t.Parallel()

	root := parseOne(t, `[R [A 1 [S "x"]] [B 2]]`)

	require.Len(t, root.Children, 2)
	assert.Equal(t, "A", root.Children[0].Token)
	assert.Equal(t, "B", root.Children[1].Token)
	require.Len(t, root.Children[0].Children, 1)
	assert.Equal(t, "S", root.Children[0].Children[0].Token)
}

func TestParseRoundTrip(t *testing.T) {
	t.Parallel()

	// Unsigned payloads print without a marker, so they re-read as Int;
	// everything else round-trips exactly.
	const text = `[R [A -1 [S "x y"]] [B 2.250000] [nil]]`

	root := parseOne(t, text)
	assert.Equal(t, text, root.String())

	again := parseOne(t, root.String())
	assert.Equal(t, root.String(), again.String())
}

func TestParseWhitespaceTolerant(t *testing.T) {
	t.Parallel()

	root := parseOne(t, "\n  [R\n\t[A 1]\n]\n")
	require.Len(t, root.Children, 1)
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{"empty", "", "expected '['"},
		{"no_bracket", "R 1]", "expected '['"},
		{"missing_token", "[]", "expected token"},
		{"unterminated", `[id "foo`, "unterminated string"},
		{"unclosed_node", "[a 1", "expected ']'"},
		{"trailing", "[a] [b]", "trailing input after tree"},
		{"pointer", "[p 0xc000010000]", "pointer payloads cannot be read back"},
		{"bad_int", "[a 12x4]", `malformed integer "12x4"`},
		{"bad_uint", "[a 1-2u]", `malformed unsigned integer "1-2u"`},
		{"bad_float", "[a 1.2.3]", `malformed float "1.2.3"`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tree, err := ast.NewTree(0)
			require.NoError(t, err)

			_, err = Parse(tree, []byte(tt.input))
			require.Error(t, err)

			var perr *Error

			require.ErrorAs(t, err, &perr)
			assert.Contains(t, perr.Msg, tt.wantMsg)
		})
	}
}

func TestParseErrorPosition(t *testing.T) {
	t.Parallel()

	tree, err := ast.NewTree(0)
	require.NoError(t, err)

	_, err = Parse(tree, []byte("[a 1]\n[b]"))

	var perr *Error

	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 2, perr.Line)
	assert.Equal(t, 1, perr.Col)
}
