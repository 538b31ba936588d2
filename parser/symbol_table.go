package parser

type frame map[string]Type

// SymbolTable is a stack of frames. The bottom frame is the global frame
// opened by the program header; each procedure opens one more.
type SymbolTable struct {
	scopes []frame
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{}
}

func (st *SymbolTable) EnterScope() {
	st.scopes = append(st.scopes, make(frame))
}

// ExitScope closes the innermost frame.
func (st *SymbolTable) ExitScope(line int) error {
	if len(st.scopes) == 0 {
		return newError(ErrInternal, line, "Scope stack underflow")
	}
	st.scopes = st.scopes[:len(st.scopes)-1]
	return nil
}

// Depth is the number of open frames.
func (st *SymbolTable) Depth() int {
	return len(st.scopes)
}

// Lookup walks the frames from innermost to outermost and returns the type of
// the first match, or Undefined.
func (st *SymbolTable) Lookup(name string) Type {
	for i := len(st.scopes) - 1; i >= 0; i-- {
		if t, ok := st.scopes[i][name]; ok {
			return t
		}
	}
	return Undefined
}

// CheckDeclarable validates name against the current frame, the identifiers
// still waiting for their type, and the program/procedure names of every frame.
func (st *SymbolTable) CheckDeclarable(name string, pending []string, line int) error {
	if len(st.scopes) == 0 {
		return newError(ErrInternal, line, "No open scope to declare '%s' in", name)
	}
	for _, f := range st.scopes {
		if t, ok := f[name]; ok && (t == Program || t == Procedure) {
			return newError(ErrReservedName, line, "Identifier '%s' is reserved", name)
		}
	}
	if _, ok := st.scopes[len(st.scopes)-1][name]; ok {
		return newError(ErrAlreadyDeclared, line, "Identifier '%s' already declared", name)
	}
	for _, p := range pending {
		if p == name {
			return newError(ErrAlreadyDeclared, line, "Identifier '%s' already declared", name)
		}
	}
	return nil
}

// Declare binds name to t in the current frame.
func (st *SymbolTable) Declare(name string, t Type, line int) error {
	if err := st.CheckDeclarable(name, nil, line); err != nil {
		return err
	}
	st.scopes[len(st.scopes)-1][name] = t
	return nil
}

// pendingIdents holds identifiers scanned ahead of their type keyword.
type pendingIdents struct {
	names []string
	lines []int
}

func (pi *pendingIdents) add(st *SymbolTable, name string, line int) error {
	if err := st.CheckDeclarable(name, pi.names, line); err != nil {
		return err
	}
	pi.names = append(pi.names, name)
	pi.lines = append(pi.lines, line)
	return nil
}

// bind moves every pending identifier into the current frame as type t,
// emptying the buffer.
func (pi *pendingIdents) bind(st *SymbolTable, t Type) error {
	for i := len(pi.names) - 1; i >= 0; i-- {
		if err := st.Declare(pi.names[i], t, pi.lines[i]); err != nil {
			return err
		}
	}
	pi.names = pi.names[:0]
	pi.lines = pi.lines[:0]
	return nil
}
