package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spendtrack/spendtrack/internal/app"
)

// Shell is a line-oriented front end: one command per line.
type Shell struct {
	app    *app.App
	in     io.Reader
	out    io.Writer
	prompt string
}

// NewShell creates a Shell reading commands from in and writing results to
// out. An empty prompt suppresses prompting, for piped input.
func NewShell(a *app.App, in io.Reader, out io.Writer, prompt string) *Shell {
	return &Shell{app: a, in: in, out: out, prompt: prompt}
}

// Run processes commands until close or end of input.
func (s *Shell) Run() error {
	sc := bufio.NewScanner(s.in)
	s.showPrompt()
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			s.showPrompt()
			continue
		}

		fields := strings.Fields(line)
		res := s.app.Dispatch(fields[0], fields[1:]...)
		if res.Quit {
			return nil
		}
		if err := s.write(res); err != nil {
			return err
		}
		s.showPrompt()
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading commands: %w", err)
	}
	return nil
}

func (s *Shell) write(res app.Result) error {
	var err error
	switch {
	case res.Kind == app.KindInfo:
		_, err = fmt.Fprintln(s.out, res.Message)
	default:
		_, err = fmt.Fprintf(s.out, "%s: %s\n", res.Kind, res.Message)
	}
	if err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

func (s *Shell) showPrompt() {
	if s.prompt != "" {
		fmt.Fprint(s.out, s.prompt)
	}
}
