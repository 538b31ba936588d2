// Package checker runs one program through the lexer and parser and turns
// the outcome into a Result.
package checker

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/elkrammer/pascal-validator/lexer"
	"github.com/elkrammer/pascal-validator/parser"
)

type Result struct {
	Name       string
	Accepted   bool
	Diagnostic *parser.Error
}

func (r Result) Verdict() string {
	if r.Accepted {
		return "Accepted"
	}
	return "Rejected"
}

type Options struct {
	// Trace receives the parser's debug output when set.
	Trace io.Writer
}

// CheckSource analyses src with a fresh parser. name is only used for reporting.
func CheckSource(name, src string, opts Options) Result {
	var popts []parser.Option
	if opts.Trace != nil {
		popts = append(popts, parser.WithTrace(opts.Trace))
	}

	p := parser.New(lexer.New(src), popts...)
	err := p.ParseProgram()
	if err == nil {
		return Result{Name: name, Accepted: true}
	}

	var perr *parser.Error
	if !errors.As(err, &perr) {
		perr = &parser.Error{Kind: parser.ErrInternal, Msg: err.Error()}
	}
	return Result{Name: name, Diagnostic: perr}
}

func CheckFile(path string, opts Options) (Result, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Result{Name: path}, fmt.Errorf("reading %s: %w", path, err)
	}
	return CheckSource(path, string(content), opts), nil
}
