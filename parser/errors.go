package parser

import (
	"fmt"

	"github.com/elkrammer/pascal-validator/token"
)

type ErrorKind int

const (
	ErrSyntax ErrorKind = iota
	ErrAlreadyDeclared
	ErrReservedName
	ErrNotDeclared
	ErrTypeMismatch
	ErrInternal
)

// Code returns a stable identifier for the kind, used in machine readable reports.
func (k ErrorKind) Code() string {
	switch k {
	case ErrSyntax:
		return "SYNTAX"
	case ErrAlreadyDeclared:
		return "ALREADY_DECLARED"
	case ErrReservedName:
		return "RESERVED_NAME"
	case ErrNotDeclared:
		return "NOT_DECLARED"
	case ErrTypeMismatch:
		return "TYPE_MISMATCH"
	default:
		return "INTERNAL"
	}
}

func (k ErrorKind) String() string {
	return k.Code()
}

// Error is the first violation found while analysing a program.
type Error struct {
	Kind ErrorKind
	Line int
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s => line %d", e.Msg, e.Line)
}

func newError(kind ErrorKind, line int, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Line: line, Msg: fmt.Sprintf(format, args...)}
}

// expectation describes what a production wanted in the found '...' message.
func (p *Parser) expected(what string) *Error {
	return newError(ErrSyntax, p.curToken.Line, "Expected %s found '%s'", what, p.curToken.Spelling())
}

func (p *Parser) expectedKeyword(t token.TokenType) *Error {
	return p.expected(fmt.Sprintf("keyword '%s'", t))
}

func (p *Parser) expectedDelimiter(t token.TokenType) *Error {
	return p.expected(fmt.Sprintf("delimiter '%s'", t))
}

func notDeclared(name string, line int) *Error {
	return newError(ErrNotDeclared, line, "Identifier '%s' not declared", name)
}

func mismatch(expected, found Type, line int) *Error {
	return newError(ErrTypeMismatch, line, "Mismatched types expected %s found %s", expected, found)
}

func operatorMismatch(op token.Token, left, right Type) *Error {
	return newError(ErrTypeMismatch, op.Line, "Mismatched types for operator '%s' found %s and %s", op.Literal, left, right)
}
