package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenKindString(t *testing.T) {
	assert.Equal(t, "identifier", IDENT.String())
	assert.Equal(t, "->", ARROW.String())
	assert.Equal(t, "TokenKind(-1)", TokenKind(-1).String())

	for word, kind := range Keywords {
		assert.Equal(t, word, kind.String())
	}
}

func TestTypeKinds(t *testing.T) {
	for _, kind := range TypeKinds {
		assert.True(t, kind.IsType(), kind.String())
	}

	assert.False(t, IDENT.IsType())
	assert.False(t, FN.IsType())
	assert.True(t, LTEQ.IsComparison())
	assert.False(t, ASSIGN.IsComparison())
}

func TestTokenString(t *testing.T) {
	cases := []struct {
		tok    Token
		expect string
	}{
		{Token{Kind: IDENT, Lit: "double", Location: Position{Line: 0, Column: 4}}, "[ 0:4:id:double ]"},
		{Token{Kind: INT, Lit: "2", Location: Position{Line: 1, Column: 12}}, "[ 1:12:num:2 ]"},
		{Token{Kind: LBRACE, Location: Position{Line: 0, Column: 16}}, "[ 0:16:{ ]"},
		{Token{Kind: EOF, Location: Position{Line: 3}}, "[ 3:0:EOF ]"},
	}

	for _, c := range cases {
		assert.Equal(t, c.expect, c.tok.String())
	}
}

func TestPositionString(t *testing.T) {
	assert.Equal(t, "<unknown>:2:7", Position{Line: 2, Column: 7}.String())
	assert.Equal(t, "main.fn:0:0", Position{Filename: "main.fn"}.String())
}
