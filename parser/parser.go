package parser

import (
	"io"

	"github.com/coreos/pkg/capnslog"

	"github.com/pontaoski/fnc/ast"
	"github.com/pontaoski/fnc/errors"
	"github.com/pontaoski/fnc/lexer"
	"github.com/pontaoski/fnc/types"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/fnc", "parser")

const DefaultMaxDepth = 256

var (
	statementStart = []types.TokenKind{types.LET, types.RETURN, types.IF, types.WHILE, types.IDENT, types.INT, types.LPAREN}
	factorStart    = []types.TokenKind{types.INT, types.IDENT, types.LPAREN}
	topLevel       = []types.TokenKind{types.FN, types.EOF}

	statementKeywords = []string{"let", "return", "if", "while"}
	typeNames         []string
)

func init() {
	for _, kind := range types.TypeKinds {
		typeNames = append(typeNames, kind.String())
	}
}

// unusable reports kinds that no production consumes. They are skipped
// whenever they show up where something else was expected.
func unusable(kind types.TokenKind) bool {
	switch kind {
	case types.LBRACKET, types.RBRACKET, types.FOR:
		return true
	}
	return kind.IsComparison()
}

type Parser struct {
	tokens []types.Token
	idx    int
	errs   errors.List
	depth  int

	// where the last diagnostic was reported, and whether fail recorded one
	lastLoc  types.Position
	hintable bool

	// MaxDepth bounds the nesting of if and while statements, calls and
	// parenthesised expressions.
	MaxDepth int
}

// NewParser appends an EOF token when tokens does not already end with one.
func NewParser(tokens []types.Token) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != types.EOF {
		var loc types.Position
		if len(tokens) > 0 {
			loc = tokens[len(tokens)-1].Location
		}
		tokens = append(tokens[:len(tokens):len(tokens)], types.Token{Kind: types.EOF, Location: loc})
	}

	return &Parser{
		tokens:   tokens,
		MaxDepth: DefaultMaxDepth,
	}
}

type Options struct {
	MaxDepth         int
	StopAtFirstError bool
}

// ParseSource tokenises and parses r. Lexical diagnostics come before
// syntax diagnostics. The error is only set when r could not be read.
func ParseSource(r io.Reader, filename string, opts Options) (*ast.Program, errors.List, error) {
	l := lexer.NewLexer(r, filename)
	l.StopAtFirstError = opts.StopAtFirstError

	toks, lexErrs, err := l.Tokenise()
	if err != nil {
		return nil, nil, err
	}

	p := NewParser(toks)
	if opts.MaxDepth > 0 {
		p.MaxDepth = opts.MaxDepth
	}

	prog, parseErrs := p.Parse()
	return prog, append(lexErrs, parseErrs...), nil
}

// Parse always returns a complete program. Regions that could not be parsed
// hold placeholders, and every problem found is in the returned list.
func (p *Parser) Parse() (*ast.Program, errors.List) {
	p.idx = 0
	p.errs = nil
	p.depth = 0
	p.lastLoc = types.Position{}
	p.hintable = false
	if p.MaxDepth <= 0 {
		p.MaxDepth = DefaultMaxDepth
	}

	prog := &ast.Program{}
	for !p.peekIs(types.EOF) {
		if p.peekIs(types.FN) {
			prog.Declarations = append(prog.Declarations, p.parseFunction())
			continue
		}

		p.recoverTopLevel()
	}

	plog.Debugf("%s: %d declarations, %d errors", p.peek().Location.Filename, len(prog.Declarations), len(p.errs))
	return prog, p.errs
}

func (p *Parser) peek() types.Token {
	return p.peekN(0)
}

func (p *Parser) peekN(n int) types.Token {
	i := p.idx + n
	if i >= len(p.tokens) {
		i = len(p.tokens) - 1
	}
	return p.tokens[i]
}

func (p *Parser) peekIs(k ...types.TokenKind) bool {
	tok := p.peek()
	for _, kind := range k {
		if tok.Kind == kind {
			return true
		}
	}
	return false
}

// lex consumes the current token. EOF is never consumed.
func (p *Parser) lex() types.Token {
	tok := p.peek()
	if tok.Kind != types.EOF {
		p.idx++
	}
	return tok
}

func (p *Parser) lexExpecting(k ...types.TokenKind) (types.Token, bool) {
	tok := p.peek()
	for _, kind := range k {
		if tok.Kind == kind {
			p.lex()
			return tok, true
		}
	}

	p.fail(tok, k...)
	if p.peekIs(k...) {
		return p.lex(), true
	}
	return tok, false
}

func (p *Parser) report(loc types.Position, err error) {
	p.errs.Add(err)
	p.lastLoc = loc
}

// fail records that tok, the current token, is not one of the expected
// kinds. The token is dropped when the one after it is expected, or when
// nothing could ever consume it. Otherwise it stays, as if the expected one
// was missing. A token that already has a diagnostic gets no second one.
func (p *Parser) fail(tok types.Token, expected ...types.TokenKind) {
	p.hintable = len(p.errs) == 0 || tok.Location != p.lastLoc
	if p.hintable {
		p.report(tok.Location, errors.ExpectedOneOfKindGotKind{
			Expected: expected,
			Got:      tok.Kind,
			Location: tok.Location,
		})
	}

	if unusable(tok.Kind) || kindIn(p.peekN(1).Kind, expected) {
		p.lex()
	}
}

func kindIn(kind types.TokenKind, kinds []types.TokenKind) bool {
	for _, k := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}

// hint attaches a suggestion to the error fail just recorded.
func (p *Parser) hint(suggestion string) {
	if suggestion == "" || !p.hintable {
		return
	}

	last := len(p.errs) - 1
	if e, ok := p.errs[last].(errors.ExpectedOneOfKindGotKind); ok {
		e.Hint = "did you mean " + suggestion + "?"
		p.errs[last] = e
	}
}

func (p *Parser) skipUntil(k ...types.TokenKind) {
	for !p.peekIs(types.EOF) && !p.peekIs(k...) {
		p.lex()
	}
}

// skipBalanced consumes a group opened by the current token, nested groups
// of the same kind included.
func (p *Parser) skipBalanced(open, close types.TokenKind) {
	level := 0
	for !p.peekIs(types.EOF) {
		switch p.lex().Kind {
		case open:
			level++
		case close:
			level--
		}
		if level <= 0 {
			return
		}
	}
}

func (p *Parser) enter(tok types.Token) bool {
	if p.depth >= p.MaxDepth {
		p.report(tok.Location, errors.NestingTooDeep{
			Limit:    p.MaxDepth,
			Location: tok.Location,
		})
		return false
	}

	p.depth++
	return true
}

func (p *Parser) leave() {
	p.depth--
}

func (p *Parser) recoverTopLevel() {
	tok := p.peek()
	p.fail(tok, topLevel...)
	if tok.Kind == types.IDENT {
		p.hint(errors.Suggest(tok.Lit, []string{"fn"}))
	}

	p.skipUntil(types.FN)
}

// function := "fn" id "(" params? ")" "->" type "{" body "}"
func (p *Parser) parseFunction() *ast.FunctionDeclaration {
	p.lexExpecting(types.FN)

	fn := &ast.FunctionDeclaration{
		Name: p.parseIdent(),
	}

	p.lexExpecting(types.LPAREN)
	fn.Parameters = p.parseParameters()
	p.closeParen()

	p.lexExpecting(types.ARROW)
	fn.ReturnType = p.parseType()
	fn.Body = p.parseBlock()

	plog.Debugf("parsed %s", fn)
	return fn
}

func (p *Parser) parseIdent() string {
	tok, ok := p.lexExpecting(types.IDENT)
	if !ok {
		return ""
	}
	return tok.Lit
}

// params := param ("," param)*
// param  := id ":" type
func (p *Parser) parseParameters() []ast.ParameterDeclaration {
	if !p.peekIs(types.IDENT) {
		return nil
	}

	var params []ast.ParameterDeclaration
	for {
		name := p.parseIdent()
		p.lexExpecting(types.COLON)

		params = append(params, ast.ParameterDeclaration{
			Name:     name,
			Datatype: p.parseType(),
		})

		if !p.peekIs(types.COMMA) {
			return params
		}
		p.lex()

		if !p.peekIs(types.IDENT) {
			p.fail(p.peek(), types.IDENT)
			if !p.peekIs(types.IDENT) {
				return params
			}
		}
	}
}

// closeParen expects ")" and, when it is missing, skips what is left of the
// parenthesised group on the current statement.
func (p *Parser) closeParen() {
	if _, ok := p.lexExpecting(types.RPAREN); ok {
		return
	}

	p.skipUntil(types.RPAREN, types.ARROW, types.SEMICOLON, types.LBRACE, types.RBRACE, types.FN)
	if p.peekIs(types.RPAREN) {
		p.lex()
	}
}

func (p *Parser) parseType() ast.Type {
	if tok := p.peek(); !tok.Kind.IsType() {
		start := p.idx
		p.fail(tok, types.TypeKinds...)

		if tok.Kind == types.IDENT {
			// A misspelled type name, drop it.
			p.hint(errors.Suggest(tok.Lit, typeNames))
			if p.idx == start {
				p.lex()
			}
		}

		if !p.peek().Kind.IsType() {
			return ast.InvalidType
		}
	}

	return ast.SimpleTypeOf(p.lex().Kind)
}

// body := statement*
func (p *Parser) parseBlock() ast.Block {
	p.lexExpecting(types.LBRACE)

	var body ast.Block
	for !p.peekIs(types.RBRACE, types.EOF, types.FN) {
		start := p.idx

		if stmt := p.parseStatement(); stmt != nil {
			body = append(body, stmt)
		}

		if p.idx == start {
			p.lex()
		}
	}

	p.lexExpecting(types.RBRACE)
	return body
}

// statement := block_stmt | non_block_stmt ";"
func (p *Parser) parseStatement() ast.Statement {
	switch tok := p.peek(); tok.Kind {
	case types.IF, types.WHILE:
		// Nested statements recurse whether or not their braces are there.
		if !p.enter(tok) {
			p.skipStatement()
			return nil
		}
		defer p.leave()

		if tok.Kind == types.IF {
			return p.parseIf()
		}
		return p.parseWhile()
	case types.LET, types.RETURN, types.IDENT, types.INT, types.LPAREN:
		stmt := p.parseNonBlockStatement()

		n := len(p.errs)
		p.lexExpecting(types.SEMICOLON)
		if len(p.errs) > n {
			if es, ok := stmt.(*ast.ExpressionStatement); ok {
				if ref, ok := es.Expression.(*ast.VariableReferenceExpression); ok {
					p.hint(errors.Suggest(ref.Name, statementKeywords))
				}
			}
		}

		return stmt
	}

	p.recoverStatement()
	return nil
}

// recoverStatement reports a token that cannot start a statement and skips
// ahead to something that can.
func (p *Parser) recoverStatement() {
	p.fail(p.peek(), statementStart...)

	for {
		switch {
		case p.peekIs(types.EOF, types.RBRACE, types.FN):
			return
		case p.peekIs(statementStart...):
			return
		case p.peekIs(types.SEMICOLON):
			p.lex()
			return
		case p.peekIs(types.LBRACE):
			p.skipBalanced(types.LBRACE, types.RBRACE)
		default:
			p.lex()
		}
	}
}

// skipStatement drops a statement nested too deeply, else branches
// included.
func (p *Parser) skipStatement() {
	for {
		switch {
		case p.peekIs(types.EOF, types.RBRACE, types.FN):
			return
		case p.peekIs(types.SEMICOLON):
			p.lex()
			return
		case p.peekIs(types.LBRACE):
			p.skipBalanced(types.LBRACE, types.RBRACE)
			if !p.peekIs(types.ELSE) {
				return
			}
		default:
			p.lex()
		}
	}
}

// non_block_stmt := decl_stmt | assign_stmt | return_stmt | expr
func (p *Parser) parseNonBlockStatement() ast.Statement {
	switch p.peek().Kind {
	case types.LET:
		return p.parseDeclaration()
	case types.RETURN:
		return p.parseReturn()
	case types.IDENT:
		if p.peekN(1).Kind == types.ASSIGN {
			return p.parseAssignment()
		}
	}

	return &ast.ExpressionStatement{
		Expression: p.parseExpression(),
	}
}

// decl_stmt := "let" id ":" type "=" expr
func (p *Parser) parseDeclaration() ast.Statement {
	p.lexExpecting(types.LET)

	stmt := &ast.DeclarationStatement{
		Variable: p.parseIdent(),
	}

	p.lexExpecting(types.COLON)
	stmt.Datatype = p.parseType()
	p.lexExpecting(types.ASSIGN)
	stmt.Value = p.parseExpression()

	return stmt
}

// assign_stmt := id "=" expr
func (p *Parser) parseAssignment() ast.Statement {
	name := p.parseIdent()
	p.lexExpecting(types.ASSIGN)

	return &ast.VariableAssignmentStatement{
		Variable: name,
		Value:    p.parseExpression(),
	}
}

// return_stmt := "return" expr?
func (p *Parser) parseReturn() ast.Statement {
	p.lexExpecting(types.RETURN)

	if !p.peekIs(factorStart...) {
		return &ast.ReturnStatement{}
	}

	return &ast.ReturnStatement{
		Value: p.parseExpression(),
	}
}

// if_stmt := "if" expr "{" body "}" ("else" (if_stmt | "{" body "}"))?
//
// The chain is built in a loop so long else-if ladders do not recurse.
func (p *Parser) parseIf() ast.Statement {
	p.lexExpecting(types.IF)

	head := &ast.IfStatement{
		Condition: p.parseExpression(),
		Body:      p.parseBlock(),
	}

	cur := head
	for p.peekIs(types.ELSE) {
		p.lex()

		if !p.peekIs(types.IF, types.LBRACE) {
			p.fail(p.peek(), types.IF, types.LBRACE)
		}

		switch {
		case p.peekIs(types.IF):
			p.lex()
			next := &ast.IfStatement{
				Condition: p.parseExpression(),
				Body:      p.parseBlock(),
			}
			cur.Tail = next
			cur = next
		case p.peekIs(types.LBRACE):
			cur.Tail = ast.NewElse(p.parseBlock())
			return head
		default:
			// Drop the else, whatever follows is parsed as statements.
			return head
		}
	}

	return head
}

// while_stmt := "while" expr "{" body "}"
func (p *Parser) parseWhile() ast.Statement {
	p.lexExpecting(types.WHILE)

	return &ast.WhileStatement{
		Condition: p.parseExpression(),
		Body:      p.parseBlock(),
	}
}

// parseExpression parses expr. Comparisons are reported and dropped, the
// left operand is kept.
func (p *Parser) parseExpression() ast.Expression {
	left := p.parseAdditive()

	for p.peek().Kind.IsComparison() {
		tok := p.lex()
		p.report(tok.Location, errors.UnsupportedOperator{
			Op:       tok.Kind,
			Location: tok.Location,
		})
		p.parseAdditive()
	}

	return left
}

// expr := term (("+"|"-") term)*
func (p *Parser) parseAdditive() ast.Expression {
	left := p.parseTerm()

	for p.peekIs(types.PLUS, types.MINUS) {
		op, _ := ast.OperatorOf(p.lex().Kind)
		right := p.parseTerm()

		left = &ast.BinOpExpression{
			Left:  left,
			Op:    op,
			Right: right,
		}
	}

	return left
}

// term := factor (("*"|"/"|"%") factor)*
func (p *Parser) parseTerm() ast.Expression {
	left := p.parseFactor()

	for p.peekIs(types.STAR, types.SLASH, types.PERCENT) {
		op, _ := ast.OperatorOf(p.lex().Kind)
		right := p.parseFactor()

		left = &ast.BinOpExpression{
			Left:  left,
			Op:    op,
			Right: right,
		}
	}

	return left
}

// factor := number | funcall | id | "(" expr ")"
func (p *Parser) parseFactor() ast.Expression {
	switch tok := p.peek(); tok.Kind {
	case types.INT:
		p.lex()
		return &ast.LiteralExpression{Value: tok.Lit}
	case types.IDENT:
		if p.peekN(1).Kind == types.LPAREN {
			return p.parseCall()
		}

		p.lex()
		return &ast.VariableReferenceExpression{Name: tok.Lit}
	case types.LPAREN:
		if !p.enter(tok) {
			p.skipBalanced(types.LPAREN, types.RPAREN)
			return &ast.BadExpression{Location: tok.Location}
		}
		defer p.leave()

		p.lex()
		expr := p.parseExpression()
		p.closeParen()

		return expr
	default:
		start := p.idx
		p.fail(tok, factorStart...)
		if p.idx != start && p.peekIs(factorStart...) {
			return p.parseFactor()
		}
		return &ast.BadExpression{Location: tok.Location}
	}
}

// funcall := id "(" (expr ("," expr)*)? ")"
func (p *Parser) parseCall() ast.Expression {
	name := p.lex()

	open := p.peek()
	if !p.enter(open) {
		p.skipBalanced(types.LPAREN, types.RPAREN)
		return &ast.BadExpression{Location: name.Location}
	}
	defer p.leave()

	p.lexExpecting(types.LPAREN)

	call := &ast.FunctionCallExpression{
		Name: name.Lit,
	}

	if p.peekIs(factorStart...) {
		for {
			call.Arguments = append(call.Arguments, p.parseExpression())

			if !p.peekIs(types.COMMA) {
				break
			}
			p.lex()
		}
	}

	p.closeParen()
	return call
}
