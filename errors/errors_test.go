package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pontaoski/fnc/types"
)

func TestMessages(t *testing.T) {
	loc := types.Position{Line: 2, Column: 4, Filename: "a.fn"}

	assert.Equal(t, `a.fn:2:4: invalid character '@'`, InvalidCharacter{Char: '@', Location: loc}.Error())
	assert.Equal(t, "a.fn:2:4: got }, expected one of [;]", ExpectedOneOfKindGotKind{
		Expected: []types.TokenKind{types.SEMICOLON},
		Got:      types.RBRACE,
		Location: loc,
	}.Error())
	assert.Equal(t, "a.fn:2:4: got identifier, expected one of [fn EOF] (did you mean fn?)", ExpectedOneOfKindGotKind{
		Expected: []types.TokenKind{types.FN, types.EOF},
		Got:      types.IDENT,
		Location: loc,
		Hint:     "did you mean fn?",
	}.Error())
	assert.Equal(t, "a.fn:2:4: comparison operator <= is not supported in expressions", UnsupportedOperator{Op: types.LTEQ, Location: loc}.Error())
	assert.Equal(t, "a.fn:2:4: nesting deeper than 256 levels", NestingTooDeep{Limit: 256, Location: loc}.Error())
}

func TestList(t *testing.T) {
	var l List
	assert.NoError(t, l.Err())
	assert.Equal(t, 0, l.Len())

	l.Add(InvalidCharacter{Char: '$'})
	assert.Error(t, l.Err())
	assert.Equal(t, `<unknown>:0:0: invalid character '$'`, l.Error())

	l.Add(NestingTooDeep{Limit: 1})
	assert.Equal(t, 2, l.Len())
	assert.Equal(t, `<unknown>:0:0: invalid character '$' (and 1 more errors)`, l.Error())
	assert.Equal(t, "<unknown>:0:0: invalid character '$'\n<unknown>:0:0: nesting deeper than 1 levels", l.Dump())
}

func TestSuggest(t *testing.T) {
	names := []string{"i8", "i16", "i32", "i64", "u8", "u16", "u32", "u64", "void"}

	cases := []struct {
		word   string
		expect string
	}{
		{"vod", "void"},
		{"viod", "void"},
		{"i322", "i32"},
		{"u644", "u64"},
		{"void", ""},
		{"x", ""},
		{"string", ""},
	}

	for _, c := range cases {
		assert.Equal(t, c.expect, Suggest(c.word, names), c.word)
	}

	assert.Equal(t, "return", Suggest("retrun", []string{"let", "return", "if", "while"}))
	assert.Equal(t, "fn", Suggest("fun", []string{"fn"}))
}
