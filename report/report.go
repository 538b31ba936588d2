// Package report renders checker results for people (styled text) and for
// tools (YAML).
package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/elkrammer/pascal-validator/checker"
	"github.com/elkrammer/pascal-validator/config"
)

var (
	ColorSuccess = lipgloss.Color("#10B981") // Emerald
	ColorError   = lipgloss.Color("#EF4444") // Red
	ColorMuted   = lipgloss.Color("#6B7280") // Gray

	acceptedStyle   = lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true)
	rejectedStyle   = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	diagnosticStyle = lipgloss.NewStyle().Foreground(ColorMuted).PaddingLeft(2)
)

type Options struct {
	Format      string
	Color       bool
	PrintErrors bool
}

func OptionsFrom(cfg config.Config) Options {
	return Options{Format: cfg.Format, Color: cfg.Color, PrintErrors: cfg.PrintErrors}
}

type yamlDiagnostic struct {
	Kind    string `yaml:"kind"`
	Line    int    `yaml:"line"`
	Message string `yaml:"message"`
}

type yamlResult struct {
	File       string          `yaml:"file"`
	Verdict    string          `yaml:"verdict"`
	Diagnostic *yamlDiagnostic `yaml:"diagnostic,omitempty"`
}

func Write(w io.Writer, res checker.Result, opts Options) error {
	if opts.Format == config.FormatYAML {
		return writeYAML(w, res)
	}
	return writeText(w, res, opts)
}

func writeText(w io.Writer, res checker.Result, opts Options) error {
	verdict := res.Verdict()
	diag := ""
	if res.Diagnostic != nil {
		diag = res.Diagnostic.Error()
	}

	if opts.Color {
		if res.Accepted {
			verdict = acceptedStyle.Render(verdict)
		} else {
			verdict = rejectedStyle.Render(verdict)
		}
		diag = diagnosticStyle.Render(diag)
	} else {
		diag = "  " + diag
	}

	if _, err := fmt.Fprintf(w, "%s: %s\n", res.Name, verdict); err != nil {
		return err
	}
	if res.Diagnostic != nil && opts.PrintErrors {
		if _, err := fmt.Fprintln(w, diag); err != nil {
			return err
		}
	}
	return nil
}

func writeYAML(w io.Writer, res checker.Result) error {
	out := yamlResult{File: res.Name, Verdict: res.Verdict()}
	if d := res.Diagnostic; d != nil {
		out.Diagnostic = &yamlDiagnostic{Kind: d.Kind.Code(), Line: d.Line, Message: d.Msg}
	}

	// every result is its own document so several files form one stream
	if _, err := io.WriteString(w, "---\n"); err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(out)
}

// Summary prints the totals of a multi file run.
func Summary(w io.Writer, results []checker.Result) error {
	rejected := 0
	for _, r := range results {
		if !r.Accepted {
			rejected++
		}
	}
	_, err := fmt.Fprintf(w, "%d checked, %d rejected\n", len(results), rejected)
	return err
}
