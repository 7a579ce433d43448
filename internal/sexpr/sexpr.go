// Package sexpr reads the bracketed tree notation emitted by the ast
// printer back into a tree: [token], [token 42], [token 42u],
// [token 4.2], [token "text"], with children nested after the payload.
// Pointer payloads render as addresses and cannot be read back.
package sexpr

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yin-nadie/zebu/pkg/ast"
)

// Error is a parse failure at a 1-based source position.
type Error struct {
	Msg  string
	Line int
	Col  int
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Msg)
}

// Parse reads one tree from input, allocating every node from tree.
// Returns *Error with line/column information on malformed input.
func Parse(tree *ast.Tree, input []byte) (*ast.Node, error) {
	s := &scanner{src: input, line: 1, col: 1}

	s.skipSpace()

	root, err := s.parseNode(tree)
	if err != nil {
		return nil, err
	}

	s.skipSpace()

	if !s.eof() {
		return nil, s.errf("trailing input after tree")
	}

	return root, nil
}

type scanner struct {
	src  []byte
	off  int
	line int
	col  int
}

func (s *scanner) eof() bool {
	return s.off >= len(s.src)
}

func (s *scanner) peek() byte {
	if s.eof() {
		return 0
	}

	return s.src[s.off]
}

func (s *scanner) next() byte {
	c := s.src[s.off]
	s.off++

	if c == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}

	return c
}

func (s *scanner) skipSpace() {
	for !s.eof() {
		switch s.peek() {
		case ' ', '\t', '\r', '\n':
			s.next()
		default:
			return
		}
	}
}

func (s *scanner) errf(format string, args ...any) *Error {
	return &Error{
		Msg:  fmt.Sprintf(format, args...),
		Line: s.line,
		Col:  s.col,
	}
}

func (s *scanner) parseNode(tree *ast.Tree) (*ast.Node, error) {
	if s.peek() != '[' {
		return nil, s.errf("expected '['")
	}

	s.next()

	token, err := s.scanToken()
	if err != nil {
		return nil, err
	}

	s.skipSpace()

	node, err := s.parsePayload(tree, token)
	if err != nil {
		return nil, err
	}

	s.skipSpace()

	for s.peek() == '[' {
		child, err := s.parseNode(tree)
		if err != nil {
			return nil, err
		}

		node.AppendChild(child)
		s.skipSpace()
	}

	if s.peek() != ']' {
		return nil, s.errf("expected ']'")
	}

	s.next()

	return node, nil
}

// scanToken reads the node label: everything up to a space, bracket or
// quote. Labels are never empty.
func (s *scanner) scanToken() (string, error) {
	start := s.off

	for !s.eof() && !isDelimiter(s.peek()) {
		s.next()
	}

	if s.off == start {
		return "", s.errf("expected token")
	}

	return string(s.src[start:s.off]), nil
}

func isDelimiter(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '[', ']', '"':
		return true
	}

	return false
}

func (s *scanner) parsePayload(tree *ast.Tree, token string) (*ast.Node, error) {
	switch c := s.peek(); {
	case c == '"':
		return s.parseStringPayload(tree, token)
	case c == '-' || c >= '0' && c <= '9':
		return s.parseNumberPayload(tree, token)
	case c == '[' || c == ']' || c == 0:
		return tree.NewNull(token), nil
	default:
		return nil, s.errf("unexpected character %q", c)
	}
}

func (s *scanner) parseStringPayload(tree *ast.Tree, token string) (*ast.Node, error) {
	start := s.off
	s.next()

	for {
		if s.eof() {
			return nil, s.errf("unterminated string")
		}

		c := s.next()
		if c == '\\' && !s.eof() {
			s.next()

			continue
		}

		if c == '"' {
			break
		}
	}

	val, err := strconv.Unquote(string(s.src[start:s.off]))
	if err != nil {
		return nil, s.errf("malformed string literal")
	}

	return tree.NewString(token, val), nil
}

func (s *scanner) parseNumberPayload(tree *ast.Tree, token string) (*ast.Node, error) {
	start := s.off

	for !s.eof() && !isDelimiter(s.peek()) {
		s.next()
	}

	lit := string(s.src[start:s.off])

	if strings.HasPrefix(lit, "0x") {
		return nil, s.errf("pointer payloads cannot be read back")
	}

	switch {
	case strings.HasSuffix(lit, "u"):
		val, err := strconv.ParseUint(strings.TrimSuffix(lit, "u"), 10, 64)
		if err != nil {
			return nil, s.errf("malformed unsigned integer %q", lit)
		}

		return tree.NewUInt(token, val), nil
	case strings.ContainsAny(lit, ".eE"):
		val, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			return nil, s.errf("malformed float %q", lit)
		}

		return tree.NewDouble(token, val), nil
	default:
		val, err := strconv.ParseInt(lit, 10, 64)
		if err != nil {
			return nil, s.errf("malformed integer %q", lit)
		}

		return tree.NewInt(token, val), nil
	}
}
