package parser

import "github.com/elkrammer/pascal-validator/token"

var (
	// type keywords accepted after the ':' of a declaration
	typeKeywords = map[token.TokenType]Type{
		token.INTEGER: Integer,
		token.REAL:    Real,
		token.BOOLEAN: Boolean,
	}
	typeKeywordList = "type 'integer', 'real' or 'boolean'"
)
