package lexer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pontaoski/fnc/errors"
	"github.com/pontaoski/fnc/internal/test"
	"github.com/pontaoski/fnc/types"
)

func tok(kind types.TokenKind, lit string, line, col int) types.Token {
	return types.Token{
		Kind:     kind,
		Lit:      lit,
		Location: types.Position{Line: line, Column: col},
	}
}

func lex(t *testing.T, src string) ([]types.Token, errors.List) {
	t.Helper()

	toks, errs, err := NewLexer(strings.NewReader(src), "").Tokenise()
	require.NoError(t, err)
	require.NotEmpty(t, toks)
	require.Equal(t, types.EOF, toks[len(toks)-1].Kind)

	return toks[:len(toks)-1], errs
}

func TestLexer(t *testing.T) {
	cases := []struct {
		data   string
		expect []types.Token
	}{
		{
			"i32 double(i32 v){\n\treturn v * 2;\n}",
			[]types.Token{
				tok(types.I32, "", 0, 0),
				tok(types.IDENT, "double", 0, 4),
				tok(types.LPAREN, "", 0, 10),
				tok(types.I32, "", 0, 11),
				tok(types.IDENT, "v", 0, 15),
				tok(types.RPAREN, "", 0, 16),
				tok(types.LBRACE, "", 0, 18),
				tok(types.RETURN, "", 1, 1),
				tok(types.IDENT, "v", 1, 8),
				tok(types.STAR, "", 1, 10),
				tok(types.INT, "2", 1, 12),
				tok(types.SEMICOLON, "", 1, 13),
				tok(types.RBRACE, "", 2, 0),
			},
		},
		{
			"fn main() -> void {}",
			[]types.Token{
				tok(types.FN, "", 0, 0),
				tok(types.IDENT, "main", 0, 3),
				tok(types.LPAREN, "", 0, 7),
				tok(types.RPAREN, "", 0, 8),
				tok(types.ARROW, "", 0, 10),
				tok(types.VOID, "", 0, 13),
				tok(types.LBRACE, "", 0, 18),
				tok(types.RBRACE, "", 0, 19),
			},
		},
		{
			"a==b<=c>=d->e<f>g=h",
			[]types.Token{
				tok(types.IDENT, "a", 0, 0),
				tok(types.EQ, "", 0, 1),
				tok(types.IDENT, "b", 0, 3),
				tok(types.LTEQ, "", 0, 4),
				tok(types.IDENT, "c", 0, 6),
				tok(types.GTEQ, "", 0, 7),
				tok(types.IDENT, "d", 0, 9),
				tok(types.ARROW, "", 0, 10),
				tok(types.IDENT, "e", 0, 12),
				tok(types.LT, "", 0, 13),
				tok(types.IDENT, "f", 0, 14),
				tok(types.GT, "", 0, 15),
				tok(types.IDENT, "g", 0, 16),
				tok(types.ASSIGN, "", 0, 17),
				tok(types.IDENT, "h", 0, 18),
			},
		},
		{
			"+-*/%[](){};:,",
			[]types.Token{
				tok(types.PLUS, "", 0, 0),
				tok(types.MINUS, "", 0, 1),
				tok(types.STAR, "", 0, 2),
				tok(types.SLASH, "", 0, 3),
				tok(types.PERCENT, "", 0, 4),
				tok(types.LBRACKET, "", 0, 5),
				tok(types.RBRACKET, "", 0, 6),
				tok(types.LPAREN, "", 0, 7),
				tok(types.RPAREN, "", 0, 8),
				tok(types.LBRACE, "", 0, 9),
				tok(types.RBRACE, "", 0, 10),
				tok(types.SEMICOLON, "", 0, 11),
				tok(types.COLON, "", 0, 12),
				tok(types.COMMA, "", 0, 13),
			},
		},
		{
			"if else while for return let fn i8 i16 i64 u16 u32 u64",
			[]types.Token{
				tok(types.IF, "", 0, 0),
				tok(types.ELSE, "", 0, 3),
				tok(types.WHILE, "", 0, 8),
				tok(types.FOR, "", 0, 14),
				tok(types.RETURN, "", 0, 18),
				tok(types.LET, "", 0, 25),
				tok(types.FN, "", 0, 29),
				tok(types.I8, "", 0, 32),
				tok(types.I16, "", 0, 35),
				tok(types.I64, "", 0, 39),
				tok(types.U16, "", 0, 43),
				tok(types.U32, "", 0, 47),
				tok(types.U64, "", 0, 51),
			},
		},
		{
			"If i128 _x x_1 ifx únicódeShouldBeVàlid",
			[]types.Token{
				tok(types.IDENT, "If", 0, 0),
				tok(types.IDENT, "i128", 0, 3),
				tok(types.IDENT, "_x", 0, 8),
				tok(types.IDENT, "x_1", 0, 11),
				tok(types.IDENT, "ifx", 0, 15),
				tok(types.IDENT, "únicódeShouldBeVàlid", 0, 19),
			},
		},
		{
			"123456789012345678901234567890 007 12ab",
			[]types.Token{
				tok(types.INT, "123456789012345678901234567890", 0, 0),
				tok(types.INT, "007", 0, 31),
				tok(types.INT, "12", 0, 35),
				tok(types.IDENT, "ab", 0, 37),
			},
		},
		{
			"x = 1; // x = 2;\n// only a comment\ny / 2",
			[]types.Token{
				tok(types.IDENT, "x", 0, 0),
				tok(types.ASSIGN, "", 0, 2),
				tok(types.INT, "1", 0, 4),
				tok(types.SEMICOLON, "", 0, 5),
				tok(types.IDENT, "y", 2, 0),
				tok(types.SLASH, "", 2, 2),
				tok(types.INT, "2", 2, 4),
			},
		},
		{
			"",
			[]types.Token{},
		},
	}

	for _, c := range cases {
		toks, errs := lex(t, c.data)

		assert.Empty(t, errs, c.data)
		assert.Equal(t, c.expect, toks, c.data)
	}
}

func TestLexerEOFPosition(t *testing.T) {
	toks, _, err := NewLexer(strings.NewReader("fn\n\nmain\n"), "main.fn").Tokenise()
	require.NoError(t, err)

	require.Len(t, toks, 3)
	assert.Equal(t, types.Token{
		Kind:     types.EOF,
		Location: types.Position{Line: 3, Column: 0, Filename: "main.fn"},
	}, toks[2])
	assert.Equal(t, types.Position{Line: 2, Column: 0, Filename: "main.fn"}, toks[1].Location)
}

func TestLexerInvalidCharacters(t *testing.T) {
	toks, errs := lex(t, "let a = 1 @ 2;\n  b $= #")

	assert.Equal(t, errors.List{
		errors.InvalidCharacter{Char: '@', Location: types.Position{Line: 0, Column: 10}},
		errors.InvalidCharacter{Char: '$', Location: types.Position{Line: 1, Column: 4}},
		errors.InvalidCharacter{Char: '#', Location: types.Position{Line: 1, Column: 7}},
	}, errs)

	assert.Equal(t, []types.Token{
		tok(types.LET, "", 0, 0),
		tok(types.IDENT, "a", 0, 4),
		tok(types.ASSIGN, "", 0, 6),
		tok(types.INT, "1", 0, 8),
		tok(types.INT, "2", 0, 12),
		tok(types.SEMICOLON, "", 0, 13),
		tok(types.IDENT, "b", 1, 2),
		tok(types.ASSIGN, "", 1, 5),
	}, toks)
}

func TestLexerStopAtFirstError(t *testing.T) {
	l := NewLexer(strings.NewReader("a @ b\nc"), "")
	l.StopAtFirstError = true

	toks, errs, err := l.Tokenise()
	require.NoError(t, err)

	assert.Len(t, errs, 1)
	assert.Equal(t, []types.Token{
		tok(types.IDENT, "a", 0, 0),
		tok(types.EOF, "", 1, 0),
	}, toks)
}

func TestLexerTokeniseTwice(t *testing.T) {
	l := NewLexer(strings.NewReader("fn f"), "")

	first, _, err := l.Tokenise()
	require.NoError(t, err)
	second, _, err := l.Tokenise()
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, second, 3)
}

func TestLexerLongLine(t *testing.T) {
	src := strings.Repeat("x ", 100000)
	toks, errs := lex(t, src)

	assert.Empty(t, errs)
	assert.Len(t, toks, 100000)
	assert.Equal(t, 199998, toks[len(toks)-1].Location.Column)
}

// Use a package-level variable to avoid compiler optimisation
var benchResult []types.Token

func benchmarkLexer(size int, b *testing.B) {
	for n := 0; n < b.N; n++ {
		b.StopTimer()
		data := test.GetRandomTokens(size)
		l := NewLexer(strings.NewReader(data), "bench")

		b.StartTimer()

		toks, errs, err := l.Tokenise()
		if err != nil {
			b.Fatal(err)
		}
		if len(errs) != 0 {
			b.Fatal(errs)
		}
		benchResult = toks
	}
}

func BenchmarkLexer100(b *testing.B) {
	benchmarkLexer(100, b)
}

func BenchmarkLexer1000(b *testing.B) {
	benchmarkLexer(1000, b)
}

func BenchmarkLexer10000(b *testing.B) {
	benchmarkLexer(10000, b)
}

func BenchmarkLexer100000(b *testing.B) {
	benchmarkLexer(100000, b)
}
