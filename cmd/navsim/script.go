package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/location"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/platform/memory"
)

type step struct {
	line int
	op   string
	arg  string
}

// ops maps each script verb to whether it takes an argument.
var ops = map[string]bool{
	"push":     true,
	"replace":  true,
	"type":     true,
	"pop":      false,
	"back":     false,
	"forward":  false,
	"listen":   false,
	"unlisten": false,
	"dispose":  false,
}

func parseScript(r io.Reader) ([]step, error) {
	var steps []step
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		op, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)
		takesArg, ok := ops[op]
		switch {
		case !ok:
			return nil, fmt.Errorf("line %d: unknown command %q", n, op)
		case takesArg && arg == "":
			return nil, fmt.Errorf("line %d: %s needs an argument", n, op)
		case !takesArg && arg != "":
			return nil, fmt.Errorf("line %d: %s takes no argument", n, op)
		}
		steps = append(steps, step{line: n, op: op, arg: arg})
	}
	return steps, scanner.Err()
}

// simulator applies script steps to a tab and prints the adapter's changes.
type simulator struct {
	win      *memory.Window
	loc      location.Location
	out      io.Writer
	listener *location.FuncListener
}

func newSimulator(win *memory.Window, loc location.Location, out io.Writer) *simulator {
	s := &simulator{win: win, loc: loc, out: out}
	s.listener = location.NewListener(func(c location.Change) {
		fmt.Fprintf(s.out, "%s %s\n", c.Type, c.Path)
	})
	return s
}

func (s *simulator) run(steps []step) error {
	logger := waypoint.GetLogger()
	for _, st := range steps {
		logger.Debug("step", "line", st.line, "op", st.op, "arg", st.arg)
		if err := s.apply(st); err != nil {
			return fmt.Errorf("line %d: %s: %w", st.line, st.op, err)
		}
		if err := s.win.Flush(); err != nil {
			return fmt.Errorf("line %d: %w", st.line, err)
		}
	}
	fmt.Fprintf(s.out, "current %s length %d\n", s.loc.Current(), s.loc.Length())
	return nil
}

func (s *simulator) apply(st step) error {
	switch st.op {
	case "push":
		return s.loc.Push(st.arg)
	case "replace":
		return s.loc.Replace(st.arg)
	case "pop":
		return s.loc.Pop()
	case "type":
		return s.win.SetHash(st.arg)
	case "back":
		return s.win.Back()
	case "forward":
		s.win.Forward()
	case "listen":
		s.loc.AddListener(s.listener)
	case "unlisten":
		s.loc.RemoveListener(s.listener)
	case "dispose":
		s.loc.Dispose()
	}
	return nil
}
