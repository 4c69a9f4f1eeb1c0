package main

import (
	"fmt"

	"github.com/hashql-lang/core/internal/env"
	"github.com/hashql-lang/core/internal/fixture"
)

// runCheck loads and builds a universe file, reporting build errors
// and a summary of bound names. It exercises the same Load/Build path
// the REPL's :load command uses, as a scriptable CI-friendly entry
// point alongside the interactive REPL.
func runCheck(path string) error {
	u, err := fixture.LoadUniverse(path)
	if err != nil {
		return err
	}
	e := env.New()
	bound, err := fixture.Build(e, u, nil)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %d types bound\n", bold(u.Name), len(bound))
	for name, t := range bound {
		fmt.Printf("  %s = %s\n", cyan(name), display(e, t))
	}
	return nil
}
