package fixture

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hashql-lang/core/internal/env"
	"github.com/hashql-lang/core/internal/lattice"
)

const sampleUniverse = `
universe: numerics
types:
  - name: num
    kind: number
  - name: int
    kind: integer
  - name: pair
    kind: tuple
    elements: [int, num]
  - name: either
    kind: union
    elements: [int, num]
`

func writeUniverse(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "numerics.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func TestLoadUniverseAndBuild(t *testing.T) {
	path := writeUniverse(t, sampleUniverse)

	u, err := LoadUniverse(path)
	if err != nil {
		t.Fatalf("LoadUniverse: %v", err)
	}
	if u.Name != "numerics" {
		t.Fatalf("Name = %q, want %q", u.Name, "numerics")
	}

	e := env.New()
	bound, err := Build(e, u, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	for _, name := range []string{"num", "int", "pair", "either"} {
		if _, ok := bound[name]; !ok {
			t.Errorf("Build result missing %q", name)
		}
	}

	// "either" simplifies to "num" because Integer <: Number, so the
	// union collapses under absorption.
	simplified := lattice.Simplify(lattice.NewSimplifyEnvironment(e), bound["either"])
	if diff := cmp.Diff(bound["num"], simplified); diff != "" {
		t.Errorf("simplify(either) mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildRejectsForwardReference(t *testing.T) {
	path := writeUniverse(t, `
universe: broken
types:
  - name: bad
    kind: tuple
    elements: [notyetdefined]
`)
	u, err := LoadUniverse(path)
	if err != nil {
		t.Fatalf("LoadUniverse: %v", err)
	}
	e := env.New()
	if _, err := Build(e, u, nil); err == nil {
		t.Fatalf("Build: expected error for forward reference, got nil")
	}
}

func TestDiscoverFindsYamlFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.yaml", "b.yml", "c.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("universe: x\n"), 0o644); err != nil {
			t.Fatalf("setup: %v", err)
		}
	}
	found, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("Discover found %d files, want 2: %v", len(found), found)
	}
}
