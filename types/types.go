package types

import (
	"fmt"
)

type Position struct {
	Line     int
	Column   int
	Filename string
}

type TokenKind int

const (
	EOF TokenKind = iota

	IDENT
	INT

	PLUS
	MINUS
	STAR
	SLASH
	PERCENT

	ASSIGN
	EQ
	LT
	LTEQ
	GT
	GTEQ

	LPAREN
	RPAREN
	LBRACKET
	RBRACKET
	LBRACE
	RBRACE
	SEMICOLON
	COLON
	COMMA
	ARROW

	IF
	ELSE
	WHILE
	FOR
	RETURN
	LET
	FN

	I8
	I16
	I32
	I64
	U8
	U16
	U32
	U64
	VOID
)

var kindNames = map[TokenKind]string{
	EOF:       "EOF",
	IDENT:     "identifier",
	INT:       "number",
	PLUS:      "+",
	MINUS:     "-",
	STAR:      "*",
	SLASH:     "/",
	PERCENT:   "%",
	ASSIGN:    "=",
	EQ:        "==",
	LT:        "<",
	LTEQ:      "<=",
	GT:        ">",
	GTEQ:      ">=",
	LPAREN:    "(",
	RPAREN:    ")",
	LBRACKET:  "[",
	RBRACKET:  "]",
	LBRACE:    "{",
	RBRACE:    "}",
	SEMICOLON: ";",
	COLON:     ":",
	COMMA:     ",",
	ARROW:     "->",
	IF:        "if",
	ELSE:      "else",
	WHILE:     "while",
	FOR:       "for",
	RETURN:    "return",
	LET:       "let",
	FN:        "fn",
	I8:        "i8",
	I16:       "i16",
	I32:       "i32",
	I64:       "i64",
	U8:        "u8",
	U16:       "u16",
	U32:       "u32",
	U64:       "u64",
	VOID:      "void",
}

func (t TokenKind) String() string {
	if name, ok := kindNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenKind(%d)", int(t))
}

// Keywords maps reserved words, type names included, to their kinds.
var Keywords = map[string]TokenKind{
	"if":     IF,
	"else":   ELSE,
	"while":  WHILE,
	"for":    FOR,
	"return": RETURN,
	"let":    LET,
	"fn":     FN,
	"i8":     I8,
	"i16":    I16,
	"i32":    I32,
	"i64":    I64,
	"u8":     U8,
	"u16":    U16,
	"u32":    U32,
	"u64":    U64,
	"void":   VOID,
}

// TypeKinds lists the kinds accepted in a type position, in declaration order.
var TypeKinds = []TokenKind{I8, I16, I32, I64, U8, U16, U32, U64, VOID}

func (t TokenKind) IsType() bool {
	return t >= I8 && t <= VOID
}

// IsComparison reports the relational kinds. They are lexed but no
// production consumes them.
func (t TokenKind) IsComparison() bool {
	switch t {
	case EQ, LT, LTEQ, GT, GTEQ:
		return true
	}
	return false
}

func (p Position) String() string {
	if p.Filename == "" {
		p.Filename = "<unknown>"
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

// Token is a lexical unit. Lit holds the source text of IDENT and INT
// tokens and is empty for every other kind.
type Token struct {
	Kind     TokenKind
	Lit      string
	Location Position
}

func (t Token) String() string {
	switch t.Kind {
	case IDENT:
		return fmt.Sprintf("[ %d:%d:id:%s ]", t.Location.Line, t.Location.Column, t.Lit)
	case INT:
		return fmt.Sprintf("[ %d:%d:num:%s ]", t.Location.Line, t.Location.Column, t.Lit)
	}
	return fmt.Sprintf("[ %d:%d:%s ]", t.Location.Line, t.Location.Column, t.Kind)
}
