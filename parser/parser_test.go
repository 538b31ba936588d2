package parser

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/elkrammer/pascal-validator/lexer"
)

func parse(input string) (*Parser, error) {
	p := New(lexer.New(input))
	return p, p.ParseProgram()
}

func checkAccepted(t *testing.T, input string) *Parser {
	t.Helper()
	p, err := parse(input)
	if err != nil {
		t.Fatalf("program rejected: %v\n%s", err, input)
	}
	if len(p.Errors()) != 0 {
		t.Fatalf("parser has %d errors: %v", len(p.Errors()), p.Errors())
	}
	return p
}

func checkRejected(t *testing.T, input string, kind ErrorKind, msg string) {
	t.Helper()
	_, err := parse(input)
	if err == nil {
		t.Fatalf("program accepted, expected %q\n%s", msg, input)
	}

	var perr *Error
	if !errors.As(err, &perr) {
		t.Fatalf("error is not *Error. got=%T", err)
	}
	if perr.Kind != kind {
		t.Errorf("error kind wrong, expected=%s, got=%s (%q)", kind, perr.Kind, err)
	}
	if err.Error() != msg {
		t.Errorf("error message wrong\nexpected=%q\n     got=%q", msg, err.Error())
	}
}

func TestAcceptedPrograms(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"assignment", `program p; var x: integer; begin x := 10 end.`},
		{"empty body", `program p; begin end.`},
		{"empty commands", `program p; begin ; ; end.`},
		{"widening through addition", `program p; var r: real; x: integer; begin r := x + 1 end.`},
		{"mixed arithmetic is real", `program p; var r: real; x: integer; begin r := x * 2.5 - r / x end.`},
		{"relational", `program p; var b: boolean; x: integer; r: real; begin b := x < 2.5; b := x >= r; b := b = true; b := x <> 3 end.`},
		{"logical", `program p; var b: boolean; x: integer; r: real; begin b := (x > 1) and (r <= 2) or false end.`},
		{"signed terms", `program p; var x: integer; begin x := -x + 3; x := +4 end.`},
		{"nested compound keeps scope", `program p; var x: integer; begin begin x := 1 end; x := 2 end.`},
		{"if else", `program p; var x: integer; b: boolean; begin if b then x := 1 else x := 2 end.`},
		{"while", `program p; var x: integer; begin while x < 10 do x := x + 1 end.`},
		{"dangling else", `program p; var x: integer; b: boolean; begin if b then if not b then x := 1 else x := 2 end.`},
		{"comments", "program p; { the answer }\nvar x: integer; // counter\nbegin x := 42 end."},
		{"trailing input after period", `program p; begin end. anything here`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkAccepted(t, tt.input)
		})
	}
}

func TestProcedures(t *testing.T) {
	input := `program demo;
var x, y: integer;
    r: real;
    done: boolean;

procedure step(n: integer; scale: real);
var tmp: real;
begin
  tmp := n * scale;
  r := tmp;
  if n > 0 then step(n - 1, scale)
end;

procedure reset;
begin
  x := 0; y := 0; done := false
end;

begin
  reset;
  while not done do
  begin
    step(x, 0.5);
    x := x + 1;
    done := x >= 10
  end
end.`

	p := checkAccepted(t, input)
	if depth := p.Symbols().Depth(); depth != 0 {
		t.Errorf("open scopes after accepted program, expected=0, got=%d", depth)
	}
	if n := p.Types().Len(); n != 0 {
		t.Errorf("type stack not empty after accepted program, got=%d", n)
	}
}

func TestScopeShadowing(t *testing.T) {
	program := func(inner, outer string) string {
		return `program p;
var x: integer;
procedure q;
var x: boolean;
begin
  x := ` + inner + `
end;
begin
  x := ` + outer + `
end.`
	}

	checkAccepted(t, program("true", "1"))
	checkRejected(t, program("1", "1"), ErrTypeMismatch,
		"Mismatched types expected Boolean found Integer => line 6")
	checkRejected(t, program("true", "true"), ErrTypeMismatch,
		"Mismatched types expected Integer found Boolean => line 9")
}

func TestInnerDeclarationsDoNotLeak(t *testing.T) {
	input := `program p;
procedure q;
var z: integer;
begin
  z := 1
end;
begin
  z := 2
end.`

	checkRejected(t, input, ErrNotDeclared, "Identifier 'z' not declared => line 8")
}

func TestNestedProceduresSeeOuterNames(t *testing.T) {
	input := `program p;
var x: integer;
procedure outer(a: integer);
  var y: real;
  procedure inner;
  begin
    y := x + a;
    inner;
    outer(1)
  end;
begin
  inner
end;
begin
  outer(x)
end.`

	checkAccepted(t, input)
}

func TestRedeclaration(t *testing.T) {
	tests := []struct {
		name  string
		input string
		msg   string
	}{
		{"same identifier list", `program p; var x, x: integer; begin end.`,
			"Identifier 'x' already declared => line 1"},
		{"same var block", "program p;\nvar x: integer;\n    x: real;\nbegin end.",
			"Identifier 'x' already declared => line 3"},
		{"parameter and local", `program p; procedure q(a: integer); var a: real; begin end; begin end.`,
			"Identifier 'a' already declared => line 1"},
		{"two parameter groups", `program p; procedure q(a: integer; a: real); begin end; begin end.`,
			"Identifier 'a' already declared => line 1"},
		{"variable then procedure", `program p; var q: integer; procedure q; begin end; begin end.`,
			"Identifier 'q' already declared => line 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkRejected(t, tt.input, ErrAlreadyDeclared, tt.msg)
		})
	}

	// a nested frame may reuse the name
	checkAccepted(t, `program p; var x: integer; procedure q; var x: integer; begin x := 1 end; begin x := 2 end.`)
}

func TestReservedNames(t *testing.T) {
	tests := []struct {
		name  string
		input string
		msg   string
	}{
		{"program name as variable", `program p; var p: integer; begin end.`,
			"Identifier 'p' is reserved => line 1"},
		{"program name in procedure", `program p; procedure q; var p: boolean; begin end; begin end.`,
			"Identifier 'p' is reserved => line 1"},
		{"procedure name as parameter", `program p; procedure q(q: integer); begin end; begin end.`,
			"Identifier 'q' is reserved => line 1"},
		{"enclosing procedure two levels up", "program p;\nprocedure a;\n  procedure b;\n  var a: integer;\n  begin end;\nbegin end;\nbegin end.",
			"Identifier 'a' is reserved => line 4"},
		{"procedure named like program", `program p; procedure p; begin end; begin end.`,
			"Identifier 'p' is reserved => line 1"},
		{"sibling procedure name", `program p; procedure a; begin end; procedure b; var a: real; begin end; begin end.`,
			"Identifier 'a' is reserved => line 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkRejected(t, tt.input, ErrReservedName, tt.msg)
		})
	}
}

func TestAssignmentTypes(t *testing.T) {
	tests := []struct {
		decl  string
		value string
		msg   string
	}{
		{"x: integer", "1", ""},
		{"x: integer", "1.5", "Mismatched types expected Integer found Real => line 1"},
		{"x: integer", "true", "Mismatched types expected Integer found Boolean => line 1"},
		{"x: real", "1", ""},
		{"x: real", "1.5", ""},
		{"x: real", "false", "Mismatched types expected Real found Boolean => line 1"},
		{"x: boolean", "true", ""},
		{"x: boolean", "1", "Mismatched types expected Boolean found Integer => line 1"},
		{"x: boolean", "0.0", "Mismatched types expected Boolean found Real => line 1"},
	}

	for i, tt := range tests {
		input := "program p; var " + tt.decl + "; begin x := " + tt.value + " end."
		_, err := parse(input)
		if tt.msg == "" {
			if err != nil {
				t.Errorf("tests[%d] - expected accept, got %v", i, err)
			}
			continue
		}
		if err == nil || err.Error() != tt.msg {
			t.Errorf("tests[%d] - expected %q, got %v", i, tt.msg, err)
		}
	}
}

func TestAssignToProcedure(t *testing.T) {
	checkRejected(t, `program p; procedure q; begin end; begin q := 1 end.`, ErrTypeMismatch,
		"Mismatched types expected Procedure found Integer => line 1")
}

func TestOperatorDomains(t *testing.T) {
	tests := []struct {
		expr string
		msg  string
	}{
		{"x + b", "Mismatched types for operator '+' found Integer and Boolean => line 1"},
		{"b - x", "Mismatched types for operator '-' found Boolean and Integer => line 1"},
		{"r * b", "Mismatched types for operator '*' found Real and Boolean => line 1"},
		{"b / b", "Mismatched types for operator '/' found Boolean and Boolean => line 1"},
		{"x and b", "Mismatched types for operator 'and' found Integer and Boolean => line 1"},
		{"b or r", "Mismatched types for operator 'or' found Boolean and Real => line 1"},
		{"x = b", "Mismatched types for operator '=' found Integer and Boolean => line 1"},
		{"x <> r", "Mismatched types for operator '<>' found Integer and Real => line 1"},
		{"b < b", "Mismatched types for operator '<' found Boolean and Boolean => line 1"},
		{"x >= b", "Mismatched types for operator '>=' found Integer and Boolean => line 1"},
		{"q + 1", "Mismatched types for operator '+' found Procedure and Integer => line 1"},
	}

	for i, tt := range tests {
		input := "program p; var x: integer; r: real; b: boolean; procedure q; begin end; begin b := " + tt.expr + " end."
		_, err := parse(input)
		if err == nil {
			t.Errorf("tests[%d] - %q accepted", i, tt.expr)
			continue
		}
		var perr *Error
		if !errors.As(err, &perr) || perr.Kind != ErrTypeMismatch {
			t.Errorf("tests[%d] - expected TYPE_MISMATCH, got %v", i, err)
		}
		if err.Error() != tt.msg {
			t.Errorf("tests[%d] - message wrong\nexpected=%q\n     got=%q", i, tt.msg, err.Error())
		}
	}
}

func TestOperatorReportsItsOwnLine(t *testing.T) {
	input := "program p;\nvar x: integer; b: boolean;\nbegin\n  x := 1\n    +\n    b\nend."
	checkRejected(t, input, ErrTypeMismatch, "Mismatched types for operator '+' found Integer and Boolean => line 5")
}

func TestConditions(t *testing.T) {
	checkRejected(t, "program p;\nvar x: integer;\nbegin\n  if x then x := 1\nend.", ErrTypeMismatch,
		"Mismatched types expected Boolean found Integer => line 4")
	checkRejected(t, "program p;\nvar r: real;\nbegin\n  while r + 1 do r := 0\nend.", ErrTypeMismatch,
		"Mismatched types expected Boolean found Real => line 4")
	checkAccepted(t, `program p; var x: integer; begin if x > 0 then x := 0; while (x < 5) do x := x + 1 end.`)
}

// not leaves its operand's type alone, so `not` of a number is still a number.
func TestNotPassesTypeThrough(t *testing.T) {
	checkAccepted(t, `program p; var b: boolean; x: integer; begin b := not b; x := not 5; x := not not x end.`)
	checkRejected(t, `program p; var b: boolean; begin b := not 1 end.`, ErrTypeMismatch,
		"Mismatched types expected Boolean found Integer => line 1")
}

func TestCallArguments(t *testing.T) {
	// arguments are type checked on their own, not against the parameters
	checkAccepted(t, `program p; var b: boolean; procedure q(n: integer); begin end; begin q(b, 1 + 2.0, true) end.`)
	checkRejected(t, `program p; procedure q(n: integer); begin end; begin q(1 + true) end.`, ErrTypeMismatch,
		"Mismatched types for operator '+' found Integer and Boolean => line 1")
	checkRejected(t, `program p; procedure q(n: integer); begin end; begin q(y) end.`, ErrNotDeclared,
		"Identifier 'y' not declared => line 1")
	checkRejected(t, `program p; procedure q(n: integer); begin end; begin q(1; 2) end.`, ErrSyntax,
		"Expected delimiter ')' found ';' => line 1")
}

func TestNotDeclared(t *testing.T) {
	input := `program p;
var x: integer;
begin
  x := 1;
  x := y
end.`
	checkRejected(t, input, ErrNotDeclared, "Identifier 'y' not declared => line 5")

	checkRejected(t, "program p;\nbegin\n  w := 1\nend.", ErrNotDeclared, "Identifier 'w' not declared => line 3")
	checkRejected(t, "program p;\nbegin\n  call(1)\nend.", ErrNotDeclared, "Identifier 'call' not declared => line 3")
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		msg   string
	}{
		{"missing program", `begin end.`, "Expected keyword 'program' found 'begin' => line 1"},
		{"missing program name", `program ; begin end.`, "Expected identifier found ';' => line 1"},
		{"missing semicolon after header", `program p var x: integer; begin x := 10; x := 10 end.`,
			"Expected delimiter ';' found 'var' => line 1"},
		{"empty var block", `program p; var begin end.`, "Expected identifier found 'begin' => line 1"},
		{"missing colon", `program p; var x integer; begin end.`, "Expected delimiter ':' found 'integer' => line 1"},
		{"unknown type", `program p; var x: string; begin end.`,
			"Expected type 'integer', 'real' or 'boolean' found 'string' => line 1"},
		{"missing declaration semicolon", `program p; var x: integer begin end.`,
			"Expected delimiter ';' found 'begin' => line 1"},
		{"missing begin", `program p; x := 1 end.`, "Expected keyword 'begin' found 'x' => line 1"},
		{"missing end", `program p; var x: integer; begin x := 1 .`, "Expected keyword 'end' found '.' => line 1"},
		{"missing period", "program p;\nbegin\nend", "Expected delimiter '.' found 'EOF' => line 3"},
		{"missing then", `program p; var b: boolean; begin if b b := true end.`, "Expected keyword 'then' found 'b' => line 1"},
		{"missing do", `program p; var b: boolean; begin while b b := false end.`, "Expected keyword 'do' found 'b' => line 1"},
		{"empty then branch", `program p; var b: boolean; begin if b then else b := true end.`,
			"Expected command found 'else' => line 1"},
		{"bad factor", `program p; var x: integer; begin x := ) end.`, "Expected factor found ')' => line 1"},
		{"unclosed parenthesis", `program p; var x: integer; begin x := (1 + 2 end.`, "Expected delimiter ')' found 'end' => line 1"},
		{"missing procedure name", `program p; procedure ; begin end; begin end.`, "Expected identifier found ';' => line 1"},
		{"missing procedure semicolon", `program p; procedure q begin end; begin end.`, "Expected delimiter ';' found 'begin' => line 1"},
		{"missing semicolon after procedure", `program p; procedure q; begin end begin end.`, "Expected delimiter ';' found 'begin' => line 1"},
		{"illegal character", `program p; var x: integer; begin x := 1 # 2 end.`, "Expected keyword 'end' found '#' => line 1"},
		{"empty input", ``, "Expected keyword 'program' found 'EOF' => line 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkRejected(t, tt.input, ErrSyntax, tt.msg)
		})
	}
}

func TestStopsAtFirstError(t *testing.T) {
	p, err := parse("program p;\nbegin\n  a := 1;\n  b := 2\nend.")
	if err == nil {
		t.Fatal("program accepted")
	}
	if len(p.Errors()) != 1 {
		t.Fatalf("expected exactly 1 error, got %d: %v", len(p.Errors()), p.Errors())
	}
	if !strings.Contains(p.Errors()[0], "'a'") {
		t.Errorf("first error should be about 'a', got %q", p.Errors()[0])
	}
}

func TestReparseIsIdempotent(t *testing.T) {
	input := `program p; var x: integer; procedure q; var x: boolean; begin x := true end; begin x := 10 end.`

	for i := 0; i < 2; i++ {
		p := checkAccepted(t, input)
		if p.Symbols().Depth() != 0 {
			t.Errorf("run %d - scopes left open: %d", i, p.Symbols().Depth())
		}
	}
}

func TestTrace(t *testing.T) {
	var buf bytes.Buffer
	p := New(lexer.New(`program p; var x: integer; begin x := 1 + 2 end.`), WithTrace(&buf))
	if err := p.ParseProgram(); err != nil {
		t.Fatalf("program rejected: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"DEBUG: Starting to parse program",
		"DEBUG: Binding [x] as Integer",
		"DEBUG: applyOperator +: Integer, Integer -> Integer",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("trace does not contain %q:\n%s", want, out)
		}
	}
}
