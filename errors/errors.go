package errors

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/pontaoski/fnc/types"
)

type InvalidCharacter struct {
	Char     rune
	Location types.Position
}

func (e InvalidCharacter) Error() string {
	return fmt.Sprintf("%s: invalid character %q", e.Location, e.Char)
}

type ExpectedOneOfKindGotKind struct {
	Expected []types.TokenKind
	Got      types.TokenKind
	Location types.Position
	Hint     string
}

func (e ExpectedOneOfKindGotKind) Error() string {
	msg := fmt.Sprintf("%s: got %s, expected one of %s", e.Location, e.Got, e.Expected)
	if e.Hint != "" {
		msg += " (" + e.Hint + ")"
	}
	return msg
}

type UnsupportedOperator struct {
	Op       types.TokenKind
	Location types.Position
}

func (e UnsupportedOperator) Error() string {
	return fmt.Sprintf("%s: comparison operator %s is not supported in expressions", e.Location, e.Op)
}

type NestingTooDeep struct {
	Limit    int
	Location types.Position
}

func (e NestingTooDeep) Error() string {
	return fmt.Sprintf("%s: nesting deeper than %d levels", e.Location, e.Limit)
}

// List is an ordered collection of diagnostics. An empty list means the
// input was accepted.
type List []error

func (l *List) Add(err error) {
	*l = append(*l, err)
}

func (l List) Len() int {
	return len(l)
}

func (l List) Strings() []string {
	ret := make([]string, 0, len(l))
	for _, err := range l {
		ret = append(ret, err.Error())
	}
	return ret
}

// Err returns nil for an empty list and the list itself otherwise.
func (l List) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

func (l List) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", l[0], len(l)-1)
}

func (l List) Dump() string {
	return strings.Join(l.Strings(), "\n")
}

// Suggest returns the candidate closest to word, or "" when none is within
// an edit distance of 2. Words are never matched by replacing all of
// their characters.
func Suggest(word string, candidates []string) string {
	best := ""
	bestDist := 3
	for _, c := range candidates {
		if c == word {
			continue
		}
		d := levenshtein.ComputeDistance(word, c)
		if d < bestDist && d < len([]rune(word)) {
			best = c
			bestDist = d
		}
	}
	return best
}
