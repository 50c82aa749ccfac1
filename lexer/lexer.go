package lexer

import (
	"bufio"
	"io"
	"unicode"

	"github.com/coreos/pkg/capnslog"
	"github.com/ztrue/tracerr"

	"github.com/pontaoski/fnc/errors"
	"github.com/pontaoski/fnc/types"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/fnc", "lexer")

const maxLineSize = 1024 * 1024

var operators = map[rune]types.TokenKind{
	'+': types.PLUS,
	'-': types.MINUS,
	'*': types.STAR,
	'/': types.SLASH,
	'%': types.PERCENT,
	'=': types.ASSIGN,
	'<': types.LT,
	'>': types.GT,
	'(': types.LPAREN,
	')': types.RPAREN,
	'[': types.LBRACKET,
	']': types.RBRACKET,
	'{': types.LBRACE,
	'}': types.RBRACE,
	';': types.SEMICOLON,
	':': types.COLON,
	',': types.COMMA,
}

var pairs = map[[2]rune]types.TokenKind{
	{'-', '>'}: types.ARROW,
	{'=', '='}: types.EQ,
	{'<', '='}: types.LTEQ,
	{'>', '='}: types.GTEQ,
}

type Lexer struct {
	pos     types.Position
	scanner *bufio.Scanner
	line    []rune
	tokens  []types.Token
	errs    errors.List
	done    bool

	// StopAtFirstError ends the scan at the first invalid character
	// instead of reporting it and moving on.
	StopAtFirstError bool
}

func NewLexer(reader io.Reader, filename string) *Lexer {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	return &Lexer{
		pos:     types.Position{Filename: filename},
		scanner: scanner,
	}
}

// Tokenise scans the whole input. The token slice always ends with exactly
// one EOF token. The error is only set when reading the input failed.
func (l *Lexer) Tokenise() ([]types.Token, errors.List, error) {
	if l.done {
		return l.tokens, l.errs, nil
	}

	lines := 0
	for l.scanner.Scan() {
		l.pos.Line = lines
		l.pos.Column = 0
		l.line = []rune(l.scanner.Text())
		lines++

		if !l.lexLine() {
			break
		}
	}
	if err := l.scanner.Err(); err != nil {
		return nil, nil, tracerr.Wrap(err)
	}

	l.pos.Line = lines
	l.pos.Column = 0
	l.tokens = append(l.tokens, l.kinded(types.EOF, ""))
	l.done = true

	plog.Debugf("%s: %d lines, %d tokens, %d errors", l.pos.Filename, lines, len(l.tokens), len(l.errs))
	return l.tokens, l.errs, nil
}

func (l *Lexer) kinded(t types.TokenKind, lit string) types.Token {
	return types.Token{
		Kind:     t,
		Lit:      lit,
		Location: l.pos,
	}
}

func (l *Lexer) emit(t types.TokenKind, lit string) {
	l.tokens = append(l.tokens, l.kinded(t, lit))
}

// peek returns the rune n places past the current one, or 0 past the end
// of the line.
func (l *Lexer) peek(n int) rune {
	if i := l.pos.Column + n; i < len(l.line) {
		return l.line[i]
	}
	return 0
}

func firstChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func otherChar(r rune) bool {
	return firstChar(r) || unicode.IsDigit(r)
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

// lexLine reports false when scanning has to stop.
func (l *Lexer) lexLine() bool {
	for l.pos.Column < len(l.line) {
		r := l.line[l.pos.Column]

		switch {
		case unicode.IsSpace(r):
			l.pos.Column++
		case r == '/' && l.peek(1) == '/':
			return true
		case firstChar(r):
			l.lexIdent()
		case isDigit(r):
			l.lexNumber()
		default:
			if kind, ok := pairs[[2]rune{r, l.peek(1)}]; ok {
				l.emit(kind, "")
				l.pos.Column += 2
				continue
			}
			if kind, ok := operators[r]; ok {
				l.emit(kind, "")
				l.pos.Column++
				continue
			}

			l.errs.Add(errors.InvalidCharacter{
				Char:     r,
				Location: l.pos,
			})
			if l.StopAtFirstError {
				return false
			}
			l.pos.Column++
		}
	}

	return true
}

func (l *Lexer) lexIdent() {
	end := l.pos.Column + 1
	for end < len(l.line) && otherChar(l.line[end]) {
		end++
	}

	lit := string(l.line[l.pos.Column:end])
	if kind, ok := types.Keywords[lit]; ok {
		l.emit(kind, "")
	} else {
		l.emit(types.IDENT, lit)
	}

	l.pos.Column = end
}

func (l *Lexer) lexNumber() {
	end := l.pos.Column + 1
	for end < len(l.line) && isDigit(l.line[end]) {
		end++
	}

	l.emit(types.INT, string(l.line[l.pos.Column:end]))
	l.pos.Column = end
}
