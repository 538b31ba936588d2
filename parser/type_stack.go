package parser

// TypeStack collects the types synthesized by operands while an expression
// is parsed. Operator productions pop their operands and push the result.
type TypeStack struct {
	items []Type
}

func (ts *TypeStack) Push(t Type) {
	ts.items = append(ts.items, t)
}

func (ts *TypeStack) Pop(line int) (Type, error) {
	if len(ts.items) == 0 {
		return Undefined, newError(ErrInternal, line, "Type stack underflow")
	}
	t := ts.items[len(ts.items)-1]
	ts.items = ts.items[:len(ts.items)-1]
	return t, nil
}

func (ts *TypeStack) Len() int {
	return len(ts.items)
}
