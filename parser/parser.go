package parser

import (
	"fmt"
	"io"

	"github.com/elkrammer/pascal-validator/token"
)

// Source is a pull based supplier of tokens. It must return EOF tokens once
// the input is exhausted.
type Source interface {
	NextToken() token.Token
}

type Option func(*Parser)

// WithTrace makes the parser write a DEBUG line per production to w.
func WithTrace(w io.Writer) Option {
	return func(p *Parser) {
		p.trace = w
	}
}

// Parser is a single pass recursive descent analyser. Scope and type checks
// run while the grammar is recognised, and the first violation stops it.
type Parser struct {
	l      Source
	errors []string

	curToken token.Token

	symbols *SymbolTable
	types   TypeStack

	trace io.Writer
}

func New(l Source, opts ...Option) *Parser {
	p := &Parser{
		l:       l,
		errors:  []string{},
		symbols: NewSymbolTable(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.nextToken()
	return p
}

func (p *Parser) Errors() []string {
	return p.errors
}

func (p *Parser) Symbols() *SymbolTable {
	return p.symbols
}

func (p *Parser) Types() *TypeStack {
	return &p.types
}

func (p *Parser) debugf(format string, args ...interface{}) {
	if p.trace != nil {
		fmt.Fprintf(p.trace, "DEBUG: "+format+"\n", args...)
	}
}

func (p *Parser) nextToken() {
	p.curToken = p.l.NextToken()
}

func (p *Parser) curTokenIs(t token.TokenType) bool {
	return p.curToken.Type == t
}

// expect consumes the current token if it is of type t.
func (p *Parser) expect(t token.TokenType) error {
	if !p.curTokenIs(t) {
		if token.CategoryOf(t) == token.Keyword {
			return p.expectedKeyword(t)
		}
		return p.expectedDelimiter(t)
	}
	p.nextToken()
	return nil
}

// ParseProgram analyses the whole token stream. It returns nil when the
// program is accepted, otherwise the first *Error found.
func (p *Parser) ParseProgram() error {
	p.debugf("Starting to parse program")

	if err := p.parseProgram(); err != nil {
		p.errors = append(p.errors, err.Error())
		p.debugf("Rejected: %s", err)
		return err
	}

	p.debugf("Finished parsing program, open scopes: %d", p.symbols.Depth())
	return nil
}

// program := 'program' id ';' varDecls subprogs compound '.'
func (p *Parser) parseProgram() error {
	if !p.curTokenIs(token.PROGRAM) {
		return p.expectedKeyword(token.PROGRAM)
	}
	p.symbols.EnterScope()
	p.nextToken()

	if !p.curTokenIs(token.IDENT) {
		return p.expected("identifier")
	}
	if err := p.symbols.Declare(p.curToken.Literal, Program, p.curToken.Line); err != nil {
		return err
	}
	p.nextToken()

	if err := p.expect(token.SEMICOLON); err != nil {
		return err
	}
	if err := p.parseVarDeclarations(); err != nil {
		return err
	}
	if err := p.parseSubprogramDeclarations(); err != nil {
		return err
	}
	if err := p.parseCompound(true); err != nil {
		return err
	}

	if !p.curTokenIs(token.PERIOD) {
		return p.expectedDelimiter(token.PERIOD)
	}
	return nil
}

// varDecls := 'var' declList | ε
func (p *Parser) parseVarDeclarations() error {
	if !p.curTokenIs(token.VAR) {
		return nil
	}
	p.debugf("parseVarDeclarations - line %d", p.curToken.Line)
	p.nextToken()

	// the first entry after 'var' is required, the rest may be empty
	mayBeEmpty := false
	for {
		if !p.curTokenIs(token.IDENT) {
			if mayBeEmpty {
				return nil
			}
			return p.expected("identifier")
		}
		if err := p.parseTypedIdentifiers(); err != nil {
			return err
		}
		if err := p.expect(token.SEMICOLON); err != nil {
			return err
		}
		mayBeEmpty = true
	}
}

// idList ':' type
func (p *Parser) parseTypedIdentifiers() error {
	var pending pendingIdents

	if err := p.parseIdentifierList(&pending); err != nil {
		return err
	}
	if err := p.expect(token.COLON); err != nil {
		return err
	}
	t, err := p.parseType()
	if err != nil {
		return err
	}

	p.debugf("Binding %v as %s", pending.names, t)
	return pending.bind(p.symbols, t)
}

// idList := id (',' id)*
func (p *Parser) parseIdentifierList(pending *pendingIdents) error {
	for {
		if !p.curTokenIs(token.IDENT) {
			return p.expected("identifier")
		}
		if err := pending.add(p.symbols, p.curToken.Literal, p.curToken.Line); err != nil {
			return err
		}
		p.nextToken()

		if !p.curTokenIs(token.COMMA) {
			return nil
		}
		p.nextToken()
	}
}

// type := 'integer' | 'real' | 'boolean'
func (p *Parser) parseType() (Type, error) {
	t, ok := typeKeywords[p.curToken.Type]
	if !ok {
		return Undefined, p.expected(typeKeywordList)
	}
	p.nextToken()
	return t, nil
}

// subprogs := (subprog ';')*
func (p *Parser) parseSubprogramDeclarations() error {
	for p.curTokenIs(token.PROCEDURE) {
		if err := p.parseSubprogram(); err != nil {
			return err
		}
		if err := p.expect(token.SEMICOLON); err != nil {
			return err
		}
	}
	return nil
}

// subprog := 'procedure' id params? ';' varDecls subprogs compound
func (p *Parser) parseSubprogram() error {
	p.debugf("parseSubprogram Start - line %d", p.curToken.Line)
	p.nextToken()

	if !p.curTokenIs(token.IDENT) {
		return p.expected("identifier")
	}
	// the name belongs to the enclosing frame so siblings and the body can call it
	if err := p.symbols.Declare(p.curToken.Literal, Procedure, p.curToken.Line); err != nil {
		return err
	}
	p.symbols.EnterScope()
	p.nextToken()

	if p.curTokenIs(token.LPAREN) {
		if err := p.parseParameters(); err != nil {
			return err
		}
	}
	if err := p.expect(token.SEMICOLON); err != nil {
		return err
	}
	if err := p.parseVarDeclarations(); err != nil {
		return err
	}
	if err := p.parseSubprogramDeclarations(); err != nil {
		return err
	}
	return p.parseCompound(true)
}

// params := '(' idList ':' type (';' idList ':' type)* ')'
func (p *Parser) parseParameters() error {
	p.nextToken()

	for {
		if err := p.parseTypedIdentifiers(); err != nil {
			return err
		}
		if !p.curTokenIs(token.SEMICOLON) {
			break
		}
		p.nextToken()
	}
	return p.expect(token.RPAREN)
}

// compound := 'begin' cmdList 'end'
//
// closesFrame is set for the body of a program or procedure.
func (p *Parser) parseCompound(closesFrame bool) error {
	if err := p.expect(token.BEGIN); err != nil {
		return err
	}

	if err := p.parseCommand(true); err != nil {
		return err
	}
	for p.curTokenIs(token.SEMICOLON) {
		p.nextToken()
		if err := p.parseCommand(true); err != nil {
			return err
		}
	}

	if !p.curTokenIs(token.END) {
		return p.expectedKeyword(token.END)
	}
	if closesFrame {
		if err := p.symbols.ExitScope(p.curToken.Line); err != nil {
			return err
		}
		p.debugf("Closed scope at line %d, open scopes: %d", p.curToken.Line, p.symbols.Depth())
	}
	p.nextToken()
	return nil
}

// cmd := id (':=' expr | callArgs?) | compound
//      | 'if' expr 'then' cmd ('else' cmd)?
//      | 'while' expr 'do' cmd
//      | ε
func (p *Parser) parseCommand(mayBeEmpty bool) error {
	p.debugf("parseCommand - Current token: %s, line %d", p.curToken.Type, p.curToken.Line)

	switch p.curToken.Type {
	case token.IDENT:
		return p.parseAssignmentOrCall()
	case token.BEGIN:
		return p.parseCompound(false)
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	}

	if mayBeEmpty {
		return nil
	}
	return p.expected("command")
}

func (p *Parser) parseAssignmentOrCall() error {
	name, line := p.curToken.Literal, p.curToken.Line

	target := p.symbols.Lookup(name)
	if target == Undefined {
		return notDeclared(name, line)
	}
	p.nextToken()

	if !p.curTokenIs(token.ASSIGN) {
		return p.parseCallArguments()
	}
	p.nextToken()

	value, err := p.evalExpression()
	if err != nil {
		return err
	}
	if !target.accepts(value) {
		return mismatch(target, value, line)
	}
	return nil
}

func (p *Parser) parseIf() error {
	p.nextToken()

	if err := p.parseCondition(); err != nil {
		return err
	}
	if err := p.expect(token.THEN); err != nil {
		return err
	}
	if err := p.parseCommand(false); err != nil {
		return err
	}

	if p.curTokenIs(token.ELSE) {
		p.nextToken()
		return p.parseCommand(false)
	}
	return nil
}

func (p *Parser) parseWhile() error {
	p.nextToken()

	if err := p.parseCondition(); err != nil {
		return err
	}
	if err := p.expect(token.DO); err != nil {
		return err
	}
	return p.parseCommand(false)
}

func (p *Parser) parseCondition() error {
	line := p.curToken.Line

	t, err := p.evalExpression()
	if err != nil {
		return err
	}
	if t != Boolean {
		return mismatch(Boolean, t, line)
	}
	return nil
}

// callArgs := '(' expr (',' expr)* ')'
//
// Arguments are type checked on their own; there is no signature to match.
func (p *Parser) parseCallArguments() error {
	if !p.curTokenIs(token.LPAREN) {
		return nil
	}
	p.nextToken()

	for {
		if _, err := p.evalExpression(); err != nil {
			return err
		}
		if !p.curTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}
	return p.expect(token.RPAREN)
}

// evalExpression parses a full expression and pops its resulting type.
func (p *Parser) evalExpression() (Type, error) {
	if err := p.parseExpression(); err != nil {
		return Undefined, err
	}
	return p.types.Pop(p.curToken.Line)
}

// expr := simpleExpr (relOp simpleExpr)?
func (p *Parser) parseExpression() error {
	if err := p.parseSimpleExpression(); err != nil {
		return err
	}
	if p.curToken.Category != token.RelOperator {
		return nil
	}

	op := p.curToken
	p.nextToken()
	if err := p.parseSimpleExpression(); err != nil {
		return err
	}
	return p.applyOperator(op)
}

// simpleExpr := ('+' | '-')? term (addOp term)*
func (p *Parser) parseSimpleExpression() error {
	// a leading sign leaves the term's type as is
	if p.curTokenIs(token.PLUS) || p.curTokenIs(token.MINUS) {
		p.nextToken()
	}
	if err := p.parseTerm(); err != nil {
		return err
	}

	for p.curToken.Category == token.AddOperator {
		op := p.curToken
		p.nextToken()
		if err := p.parseTerm(); err != nil {
			return err
		}
		if err := p.applyOperator(op); err != nil {
			return err
		}
	}
	return nil
}

// term := factor (mulOp factor)*
func (p *Parser) parseTerm() error {
	if err := p.parseFactor(); err != nil {
		return err
	}

	for p.curToken.Category == token.MulOperator {
		op := p.curToken
		p.nextToken()
		if err := p.parseFactor(); err != nil {
			return err
		}
		if err := p.applyOperator(op); err != nil {
			return err
		}
	}
	return nil
}

// factor := id callArgs? | '(' expr ')' | intLit | realLit
//         | 'true' | 'false' | 'not' factor
func (p *Parser) parseFactor() error {
	switch p.curToken.Type {
	case token.IDENT:
		name, line := p.curToken.Literal, p.curToken.Line
		t := p.symbols.Lookup(name)
		if t == Undefined {
			return notDeclared(name, line)
		}
		p.nextToken()
		if err := p.parseCallArguments(); err != nil {
			return err
		}
		p.types.Push(t)
		return nil
	case token.LPAREN:
		p.nextToken()
		if err := p.parseExpression(); err != nil {
			return err
		}
		return p.expect(token.RPAREN)
	case token.INT:
		p.types.Push(Integer)
	case token.REAL_LIT:
		p.types.Push(Real)
	case token.TRUE, token.FALSE:
		p.types.Push(Boolean)
	case token.NOT:
		// the operand's type passes through unchecked
		p.nextToken()
		return p.parseFactor()
	default:
		return p.expected("factor")
	}

	p.nextToken()
	return nil
}

// applyOperator pops the right then the left operand type and pushes the
// type of op applied to them.
func (p *Parser) applyOperator(op token.Token) error {
	right, err := p.types.Pop(op.Line)
	if err != nil {
		return err
	}
	left, err := p.types.Pop(op.Line)
	if err != nil {
		return err
	}

	result, ok := binaryResult(op.Type, left, right)
	if !ok {
		return operatorMismatch(op, left, right)
	}
	p.debugf("applyOperator %s: %s, %s -> %s", op.Literal, left, right, result)
	p.types.Push(result)
	return nil
}
