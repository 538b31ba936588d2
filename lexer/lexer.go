package lexer

import (
	"strconv"

	"github.com/elkrammer/pascal-validator/token"
)

type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           byte // current char under examination
	line         int
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1}
	l.readChar()
	return l
}

// read one forward character
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
	}
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition += 1
}

func (l *Lexer) newToken(tokenType token.TokenType, literal string) token.Token {
	return token.New(tokenType, literal, l.line)
}

// NextToken returns the next classified symbol. Once the input is exhausted
// every call returns an EOF token.
func (l *Lexer) NextToken() token.Token {
	var tok token.Token

	if !l.skipWhitespaceAndComments() {
		return l.newToken(token.ILLEGAL, "{")
	}

	switch l.ch {
	case ':':
		if l.peekChar() == '=' {
			l.readChar()
			tok = l.newToken(token.ASSIGN, ":=")
		} else {
			tok = l.newToken(token.COLON, ":")
		}
	case '<':
		switch l.peekChar() {
		case '>':
			l.readChar()
			tok = l.newToken(token.NOT_EQ, "<>")
		case '=':
			l.readChar()
			tok = l.newToken(token.LT_EQ, "<=")
		default:
			tok = l.newToken(token.LT, "<")
		}
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			tok = l.newToken(token.GT_EQ, ">=")
		} else {
			tok = l.newToken(token.GT, ">")
		}
	case '=':
		tok = l.newToken(token.EQ, "=")
	case ';':
		tok = l.newToken(token.SEMICOLON, ";")
	case '.':
		tok = l.newToken(token.PERIOD, ".")
	case ',':
		tok = l.newToken(token.COMMA, ",")
	case '(':
		tok = l.newToken(token.LPAREN, "(")
	case ')':
		tok = l.newToken(token.RPAREN, ")")
	case '+':
		tok = l.newToken(token.PLUS, "+")
	case '-':
		tok = l.newToken(token.MINUS, "-")
	case '*':
		tok = l.newToken(token.ASTERISK, "*")
	case '/':
		tok = l.newToken(token.SLASH, "/")
	case 0:
		return l.newToken(token.EOF, "")
	default:
		if isDigit(l.ch) {
			return l.readNumber()
		}

		if isLetter(l.ch) {
			line := l.line
			literal := l.readIdentifier()
			return token.New(token.LookupIdent(literal), literal, line)
		}

		// Everything else is an illegal token
		tok = l.newToken(token.ILLEGAL, string(l.ch))
	}

	l.readChar()
	return tok
}

// Tokens drains the lexer up to and including the EOF token.
func (l *Lexer) Tokens() []token.Token {
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks
		}
	}
}

func (l *Lexer) readIdentifier() string {
	position := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[position:l.position]
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

// skips whitespace, { } block comments and // line comments. Returns false
// when a block comment is left unterminated.
func (l *Lexer) skipWhitespaceAndComments() bool {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r':
			l.readChar()
		case l.ch == '/' && l.peekChar() == '/':
			for l.ch != 0 && l.ch != '\n' {
				l.readChar()
			}
		case l.ch == '{':
			for l.ch != '}' {
				if l.ch == 0 {
					return false
				}
				l.readChar()
			}
			l.readChar() // move past the }
		default:
			return true
		}
	}
}

// reads an integer or real literal. Integers must fit in 32 bits.
func (l *Lexer) readNumber() token.Token {
	line := l.line
	position := l.position
	isReal := false

	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		isReal = true
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	if (l.ch == 'e' || l.ch == 'E') && l.exponentFollows() {
		isReal = true
		l.readChar()
		if l.ch == '+' || l.ch == '-' {
			l.readChar()
		}
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	literal := l.input[position:l.position]
	if isReal {
		v, err := strconv.ParseFloat(literal, 64)
		if err != nil {
			return token.New(token.ILLEGAL, literal, line)
		}
		tok := token.New(token.REAL_LIT, literal, line)
		tok.Real = v
		return tok
	}

	v, err := strconv.ParseInt(literal, 10, 32)
	if err != nil {
		return token.New(token.ILLEGAL, literal, line)
	}
	tok := token.New(token.INT, literal, line)
	tok.Int = int32(v)
	return tok
}

// exponentFollows reports whether the 'e' under the cursor starts an exponent
// such as e10, e+3 or E-2.
func (l *Lexer) exponentFollows() bool {
	next := l.peekChar()
	if isDigit(next) {
		return true
	}
	if (next == '+' || next == '-') && l.readPosition+1 < len(l.input) {
		return isDigit(l.input[l.readPosition+1])
	}
	return false
}

func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	} else {
		return l.input[l.readPosition]
	}
}
