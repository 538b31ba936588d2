package parser

import "github.com/elkrammer/pascal-validator/token"

// Type is the static category tag attached to declared names and to the
// operands on the type stack.
type Type int

const (
	Undefined Type = iota
	Integer
	Real
	Boolean
	Procedure
	Program
)

func (t Type) String() string {
	switch t {
	case Integer:
		return "Integer"
	case Real:
		return "Real"
	case Boolean:
		return "Boolean"
	case Procedure:
		return "Procedure"
	case Program:
		return "Program"
	default:
		return "Undefined"
	}
}

func (t Type) isNumeric() bool {
	return t == Integer || t == Real
}

// accepts reports whether a value of type v may be assigned to a target of
// type t. Integer widens into Real, never the reverse.
func (t Type) accepts(v Type) bool {
	switch t {
	case Integer:
		return v == Integer
	case Real:
		return v == Real || v == Integer
	case Boolean:
		return v == Boolean
	default:
		return false
	}
}

// binaryResult applies the operator typing rules. ok is false when the
// operands are outside the operator's domain.
func binaryResult(op token.TokenType, left, right Type) (result Type, ok bool) {
	switch op {
	case token.PLUS, token.MINUS, token.ASTERISK, token.SLASH:
		if !left.isNumeric() || !right.isNumeric() {
			return Undefined, false
		}
		if left == Integer && right == Integer {
			return Integer, true
		}
		return Real, true
	case token.OR, token.AND:
		if left != Boolean || right != Boolean {
			return Undefined, false
		}
		return Boolean, true
	case token.EQ, token.NOT_EQ:
		if left != right {
			return Undefined, false
		}
		return Boolean, true
	case token.GT, token.LT, token.GT_EQ, token.LT_EQ:
		if !left.isNumeric() || !right.isNumeric() {
			return Undefined, false
		}
		return Boolean, true
	default:
		return Undefined, false
	}
}
