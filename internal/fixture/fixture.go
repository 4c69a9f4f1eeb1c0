// Package fixture loads named type universes from YAML and
// auto-discovers a directory of them, so a REPL or test can load a
// small universe of named types by name instead of constructing one
// with internal/builder by hand.
package fixture

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hashql-lang/core/internal/builder"
	"github.com/hashql-lang/core/internal/env"
	"github.com/hashql-lang/core/internal/ids"
)

// TypeSpec is one named entry in a universe file. Kind selects the
// constructor; Elements, Fields and Returns supply its operands (a
// closure uses both Elements and Returns).
type TypeSpec struct {
	Name string `yaml:"name"`
	// Kind is one of: never, unknown, number, integer, string,
	// boolean, null, tuple, struct, closure, union, intersection.
	Kind string `yaml:"kind"`
	// Elements names prior entries for tuple/union/intersection, or
	// closure parameters.
	Elements []string `yaml:"elements"`
	// Fields maps struct field name to a prior entry's name.
	Fields map[string]string `yaml:"fields"`
	// Returns names a prior entry for a closure's return type.
	Returns string `yaml:"returns"`
}

// Universe is a named, ordered collection of TypeSpecs loaded from one
// YAML document — "ordered" because later entries may reference
// earlier ones by Name, not the other way around.
type Universe struct {
	Name  string     `yaml:"universe"`
	Types []TypeSpec `yaml:"types"`
}

// LoadUniverse reads and parses one universe file.
func LoadUniverse(path string) (*Universe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fixture: failed to read %s: %w", path, err)
	}
	var u Universe
	if err := yaml.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("fixture: failed to parse %s: %w", path, err)
	}
	if u.Name == "" {
		u.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return &u, nil
}

// Discover finds every *.yml/*.yaml universe file directly under dir,
// mirroring discoverBenchmarks' flat, non-recursive directory scan.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("fixture: failed to read %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		n := e.Name()
		if strings.HasSuffix(n, ".yaml") || strings.HasSuffix(n, ".yml") {
			names = append(names, filepath.Join(dir, n))
		}
	}
	sort.Strings(names)
	return names, nil
}

// Build interns every TypeSpec in u against e, in order, returning a
// name->TypeId map. A TypeSpec may only reference names defined
// earlier in the same Universe (or in env.Environment's prior builds
// via seed, if supplied).
func Build(e *env.Environment, u *Universe, seed map[string]ids.TypeId) (map[string]ids.TypeId, error) {
	b := builder.New(e)
	bound := make(map[string]ids.TypeId, len(u.Types)+len(seed))
	for k, v := range seed {
		bound[k] = v
	}

	resolve := func(name string) (ids.TypeId, error) {
		t, ok := bound[name]
		if !ok {
			return 0, fmt.Errorf("fixture: %q references undefined type %q", u.Name, name)
		}
		return t, nil
	}

	for _, spec := range u.Types {
		if spec.Name == "" {
			return nil, fmt.Errorf("fixture: %q has a type entry with no name", u.Name)
		}
		var t ids.TypeId
		switch strings.ToLower(spec.Kind) {
		case "never":
			t = b.Never()
		case "unknown":
			t = b.Unknown()
		case "number":
			t = b.Number()
		case "integer":
			t = b.Integer()
		case "string":
			t = b.String()
		case "boolean":
			t = b.Boolean()
		case "null":
			t = b.Null()

		case "tuple":
			elems, err := resolveAll(resolve, spec.Elements)
			if err != nil {
				return nil, err
			}
			t = b.Tuple(elems...)

		case "union":
			elems, err := resolveAll(resolve, spec.Elements)
			if err != nil {
				return nil, err
			}
			t = b.Union(elems...)

		case "intersection":
			elems, err := resolveAll(resolve, spec.Elements)
			if err != nil {
				return nil, err
			}
			t = b.Intersection(elems...)

		case "closure":
			params, err := resolveAll(resolve, spec.Elements)
			if err != nil {
				return nil, err
			}
			ret, err := resolve(spec.Returns)
			if err != nil {
				return nil, err
			}
			t = b.Closure(params, ret)

		case "struct":
			fields, err := resolveFields(resolve, spec.Fields)
			if err != nil {
				return nil, err
			}
			t = b.Struct(fields...)

		default:
			return nil, fmt.Errorf("fixture: %q: unknown kind %q", spec.Name, spec.Kind)
		}
		bound[spec.Name] = t
	}
	return bound, nil
}

func resolveAll(resolve func(string) (ids.TypeId, error), names []string) ([]ids.TypeId, error) {
	out := make([]ids.TypeId, len(names))
	for i, n := range names {
		t, err := resolve(n)
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}

// resolveFields resolves a struct's field map in a stable (sorted by
// field name) order, so Build's observable interning order doesn't
// depend on Go's randomized map iteration.
func resolveFields(resolve func(string) (ids.TypeId, error), fields map[string]string) ([]builder.Field, error) {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]builder.Field, len(names))
	for i, name := range names {
		t, err := resolve(fields[name])
		if err != nil {
			return nil, err
		}
		out[i] = builder.F(name, t)
	}
	return out, nil
}

// ParseTupleIndex reports whether s is a non-negative integer tuple
// index, and returns it. The CLI's `project` command does not call it;
// it passes the field text to projection.Project as-is.
func ParseTupleIndex(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
