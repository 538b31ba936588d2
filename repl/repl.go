package repl

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/elkrammer/pascal-validator/checker"
	"github.com/elkrammer/pascal-validator/config"
	"github.com/elkrammer/pascal-validator/lexer"
	"github.com/elkrammer/pascal-validator/report"
)

const CONTINUATION = ".. "

// Start runs an interactive session until "exit", Ctrl-C or end of input.
// Program text is collected until it ends with a period and then checked.
func Start(out io.Writer, cfg config.Config) error {
	l := liner.NewLiner()
	defer l.Close()

	l.SetCtrlCAborts(true)

	if f, err := os.Open(cfg.HistoryFile); err == nil {
		l.ReadHistory(f)
		f.Close()
	}
	defer saveHistory(l, cfg.HistoryFile)

	s := newSession(out, cfg)
	for {
		prompt := cfg.Prompt
		if s.pending() {
			prompt = CONTINUATION
		}

		line, err := l.Prompt(prompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				fmt.Fprintln(out, "Aborted")
				return nil
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		l.AppendHistory(line)
		if !s.feed(line) {
			return nil
		}
	}
}

func saveHistory(l *liner.State, path string) {
	if f, err := os.Create(path); err == nil {
		l.WriteHistory(f)
		f.Close()
	}
}

type session struct {
	out  io.Writer
	cfg  config.Config
	buf  strings.Builder
	runs int
}

func newSession(out io.Writer, cfg config.Config) *session {
	return &session{out: out, cfg: cfg}
}

func (s *session) pending() bool {
	return s.buf.Len() > 0
}

// feed handles one input line and reports whether the session goes on.
func (s *session) feed(line string) bool {
	trimmed := strings.TrimSpace(line)

	switch {
	case trimmed == "exit":
		return false
	case trimmed == ":reset":
		s.buf.Reset()
		return true
	case strings.HasPrefix(trimmed, ":tokens"):
		s.printTokens(strings.TrimSpace(strings.TrimPrefix(trimmed, ":tokens")))
		return true
	}

	s.buf.WriteString(line)
	s.buf.WriteByte('\n')

	if strings.HasSuffix(strings.TrimSpace(s.buf.String()), ".") {
		s.check()
	}
	return true
}

func (s *session) check() {
	s.runs++
	src := s.buf.String()
	s.buf.Reset()

	var opts checker.Options
	if s.cfg.DebugMode {
		opts.Trace = s.out
	}
	res := checker.CheckSource(fmt.Sprintf("input:%d", s.runs), src, opts)
	if err := report.Write(s.out, res, report.OptionsFrom(s.cfg)); err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
	}
}

func (s *session) printTokens(input string) {
	for _, tok := range lexer.New(input).Tokens() {
		fmt.Fprintf(s.out, "%v\n", tok)
	}
}
