package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/peterh/liner"

	"github.com/hashql-lang/core/internal/diagnostic"
	"github.com/hashql-lang/core/internal/env"
	"github.com/hashql-lang/core/internal/fixture"
	"github.com/hashql-lang/core/internal/ids"
	"github.com/hashql-lang/core/internal/lattice"
	"github.com/hashql-lang/core/internal/projection"
)

// session holds the environment and the universe of names bound so
// far across a REPL run.
type session struct {
	env   *env.Environment
	bound map[string]ids.TypeId
	le    *lattice.LatticeEnvironment
}

func newSession() *session {
	e := env.New()
	return &session{env: e, bound: make(map[string]ids.TypeId), le: lattice.NewLatticeEnvironment(e)}
}

func (s *session) load(path string) error {
	u, err := fixture.LoadUniverse(path)
	if err != nil {
		return err
	}
	bound, err := fixture.Build(s.env, u, s.bound)
	if err != nil {
		return err
	}
	for name, t := range bound {
		s.bound[name] = t
	}
	return nil
}

func (s *session) resolve(name string) (ids.TypeId, bool) {
	t, ok := s.bound[name]
	return t, ok
}

// runREPL drives an interactive session over liner; history is kept
// under the process's temp directory.
func runREPL(preload string) {
	s := newSession()
	if preload != "" {
		if err := s.load(preload); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
		}
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetMultiLineMode(false)

	historyFile := filepath.Join(os.TempDir(), ".hashqlcore_history")
	if f, err := os.Open(historyFile); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}

	line.SetCompleter(func(input string) (c []string) {
		commands := []string{"join", "meet", "subtype", "equiv", "simplify", "project", "index", ":load", ":list", ":help", ":quit"}
		for _, cmd := range commands {
			if strings.HasPrefix(cmd, input) {
				c = append(c, cmd)
			}
		}
		return
	})

	fmt.Printf("%s\n", bold("hashqlcore"))
	fmt.Println("Type :help for help, :quit to exit")

	for {
		input, err := line.Prompt("hashql> ")
		if err == io.EOF {
			fmt.Println(green("\nGoodbye!"))
			break
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
			continue
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		if strings.HasPrefix(input, ":") {
			if !s.handleCommand(input) {
				break
			}
			continue
		}
		s.handleQuery(input)
	}

	if f, err := os.Create(historyFile); err == nil {
		_, _ = line.WriteHistory(f)
		f.Close()
	}
}

// handleCommand dispatches a `:`-prefixed REPL command. Returns false
// to end the session.
func (s *session) handleCommand(input string) bool {
	fields := strings.Fields(input)
	switch fields[0] {
	case ":quit", ":exit":
		fmt.Println(green("Goodbye!"))
		return false

	case ":help":
		fmt.Println("  join A B | meet A B | subtype A B | equiv A B")
		fmt.Println("  simplify A | project A.field | index A B")
		fmt.Println("  :load <file.yaml> | :list | :help | :quit")

	case ":load":
		if len(fields) < 2 {
			fmt.Fprintf(os.Stderr, "%s: :load requires a file path\n", red("Error"))
			return true
		}
		if err := s.load(fields[1]); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
			return true
		}
		fmt.Println(green("loaded"))

	case ":list":
		names := make([]string, 0, len(s.bound))
		for name := range s.bound {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("  %s = %s\n", cyan(name), display(s.env, s.bound[name]))
		}

	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", red("Error"), fields[0])
	}
	return true
}

// handleQuery parses and evaluates one lattice query line.
func (s *session) handleQuery(input string) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return
	}

	switch fields[0] {
	case "join", "meet":
		if len(fields) != 3 {
			fmt.Fprintf(os.Stderr, "%s: usage: %s A B\n", red("Error"), fields[0])
			return
		}
		a, ok := s.resolve(fields[1])
		if !ok {
			fmt.Fprintf(os.Stderr, "%s: unbound name %q\n", red("Error"), fields[1])
			return
		}
		b, ok := s.resolve(fields[2])
		if !ok {
			fmt.Fprintf(os.Stderr, "%s: unbound name %q\n", red("Error"), fields[2])
			return
		}
		var result ids.TypeId
		if fields[0] == "join" {
			result = lattice.Join(s.le, a, b)
		} else {
			result = lattice.Meet(s.le, a, b)
		}
		fmt.Println(display(s.env, result))

	case "subtype", "equiv":
		if len(fields) != 3 {
			fmt.Fprintf(os.Stderr, "%s: usage: %s A B\n", red("Error"), fields[0])
			return
		}
		a, ok := s.resolve(fields[1])
		if !ok {
			fmt.Fprintf(os.Stderr, "%s: unbound name %q\n", red("Error"), fields[1])
			return
		}
		b, ok := s.resolve(fields[2])
		if !ok {
			fmt.Fprintf(os.Stderr, "%s: unbound name %q\n", red("Error"), fields[2])
			return
		}
		ae := lattice.NewAnalysisEnvironment(s.env)
		var result bool
		if fields[0] == "subtype" {
			result = lattice.IsSubtypeOf(ae, a, b)
		} else {
			result = lattice.IsEquivalent(ae, a, b)
		}
		if result {
			fmt.Println(green("true"))
		} else {
			fmt.Println(yellow("false"))
		}

	case "simplify":
		if len(fields) != 2 {
			fmt.Fprintf(os.Stderr, "%s: usage: simplify A\n", red("Error"))
			return
		}
		a, ok := s.resolve(fields[1])
		if !ok {
			fmt.Fprintf(os.Stderr, "%s: unbound name %q\n", red("Error"), fields[1])
			return
		}
		se := lattice.NewSimplifyEnvironment(s.env)
		fmt.Println(display(s.env, lattice.Simplify(se, a)))

	case "project":
		if len(fields) != 2 || !strings.Contains(fields[1], ".") {
			fmt.Fprintf(os.Stderr, "%s: usage: project A.field\n", red("Error"))
			return
		}
		parts := strings.SplitN(fields[1], ".", 2)
		a, ok := s.resolve(parts[0])
		if !ok {
			fmt.Fprintf(os.Stderr, "%s: unbound name %q\n", red("Error"), parts[0])
			return
		}
		p := projection.Project(s.le, a, parts[1], diagnostic.Span{})
		if !p.IsResolved() {
			fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), p.Err)
			return
		}
		fmt.Println(display(s.env, p.Resolved))

	case "index":
		if len(fields) != 3 {
			fmt.Fprintf(os.Stderr, "%s: usage: index A B\n", red("Error"))
			return
		}
		a, ok := s.resolve(fields[1])
		if !ok {
			fmt.Fprintf(os.Stderr, "%s: unbound name %q\n", red("Error"), fields[1])
			return
		}
		b, ok := s.resolve(fields[2])
		if !ok {
			fmt.Fprintf(os.Stderr, "%s: unbound name %q\n", red("Error"), fields[2])
			return
		}
		p := projection.Subscript(s.le, a, b, diagnostic.Span{})
		if !p.IsResolved() {
			fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), p.Err)
			return
		}
		fmt.Println(display(s.env, p.Resolved))

	default:
		fmt.Fprintf(os.Stderr, "%s: unknown query %q (:help for usage)\n", red("Error"), fields[0])
	}
}
