package token

import "fmt"

type TokenType string

// Category groups token types for dispatch in the parser.
type Category int

const (
	Keyword Category = iota
	Identifier
	IntLiteral
	RealLiteral
	Delimiter
	Command
	RelOperator
	AddOperator
	MulOperator
	Illegal
	Eof
)

var categoryNames = [...]string{
	Keyword:     "Keyword",
	Identifier:  "Identifier",
	IntLiteral:  "IntLiteral",
	RealLiteral: "RealLiteral",
	Delimiter:   "Delimiter",
	Command:     "Command",
	RelOperator: "RelOperator",
	AddOperator: "AddOperator",
	MulOperator: "MulOperator",
	Illegal:     "Illegal",
	Eof:         "Eof",
}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

type Token struct {
	Type     TokenType
	Literal  string
	Category Category
	Line     int

	// Int and Real hold the decoded value of INT and REAL_LIT tokens.
	Int  int32
	Real float64
}

func (t Token) String() string {
	return fmt.Sprintf("%d %s %q", t.Line, t.Type, t.Literal)
}

// Spelling is the canonical surface text of the token used in diagnostics.
func (t Token) Spelling() string {
	if t.Type == EOF {
		return "EOF"
	}
	return t.Literal
}

// predefined token types
const (
	// Things
	EOF     = "EOF"
	ILLEGAL = "ILLEGAL"

	// literals
	IDENT    = "IDENT"
	INT      = "INT"
	REAL_LIT = "REAL_LIT"

	// keywords
	PROGRAM   = "program"
	VAR       = "var"
	INTEGER   = "integer"
	REAL      = "real"
	BOOLEAN   = "boolean"
	PROCEDURE = "procedure"
	BEGIN     = "begin"
	END       = "end"
	IF        = "if"
	THEN      = "then"
	ELSE      = "else"
	WHILE     = "while"
	DO        = "do"
	NOT       = "not"
	TRUE      = "true"
	FALSE     = "false"

	// delimiters
	SEMICOLON = ";"
	PERIOD    = "."
	COLON     = ":"
	COMMA     = ","
	LPAREN    = "("
	RPAREN    = ")"

	// commands
	ASSIGN = ":="

	// relational operators
	EQ     = "="
	NOT_EQ = "<>"
	GT     = ">"
	LT     = "<"
	GT_EQ  = ">="
	LT_EQ  = "<="

	// additive operators
	PLUS  = "+"
	MINUS = "-"
	OR    = "or"

	// multiplicative operators
	ASTERISK = "*"
	SLASH    = "/"
	AND      = "and"
)

var keywords = map[string]TokenType{
	"program":   PROGRAM,
	"var":       VAR,
	"integer":   INTEGER,
	"real":      REAL,
	"boolean":   BOOLEAN,
	"procedure": PROCEDURE,
	"begin":     BEGIN,
	"end":       END,
	"if":        IF,
	"then":      THEN,
	"else":      ELSE,
	"while":     WHILE,
	"do":        DO,
	"not":       NOT,
	"true":      TRUE,
	"false":     FALSE,
	"and":       AND,
	"or":        OR,
}

func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// CategoryOf returns the lexical category a token type belongs to.
func CategoryOf(t TokenType) Category {
	switch t {
	case PROGRAM, VAR, INTEGER, REAL, BOOLEAN, PROCEDURE, BEGIN, END,
		IF, THEN, ELSE, WHILE, DO, NOT, TRUE, FALSE:
		return Keyword
	case IDENT:
		return Identifier
	case INT:
		return IntLiteral
	case REAL_LIT:
		return RealLiteral
	case SEMICOLON, PERIOD, COLON, COMMA, LPAREN, RPAREN:
		return Delimiter
	case ASSIGN:
		return Command
	case EQ, NOT_EQ, GT, LT, GT_EQ, LT_EQ:
		return RelOperator
	case PLUS, MINUS, OR:
		return AddOperator
	case ASTERISK, SLASH, AND:
		return MulOperator
	case EOF:
		return Eof
	default:
		return Illegal
	}
}

// New builds a token of type t, filling in its category.
func New(t TokenType, literal string, line int) Token {
	return Token{Type: t, Literal: literal, Category: CategoryOf(t), Line: line}
}
