// Package surface provides the glue a module/namespace resolution
// layer needs to reach the core: name-to-TypeId lookup through
// lexical scopes, and the lowering of the surface's special forms
// into the already-lowered structural calls the core exposes (spec
// §4.9). The core itself never parses `fn`, `let`, `type`, and so on;
// surface is where those tokens stop and interning/lattice calls
// begin.
package surface

import (
	"os"
	"runtime"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/hashql-lang/core/internal/ids"
)

// Scope resolves a dotted name to a TypeId through a stack of lexical
// scopes: its own bindings first, then its parent's, and so on up to
// the builtin root scope — the same project→search-path→stdlib
// fallback chain AILANG's module resolver walks for files, here
// walked for names instead.
type Scope struct {
	name     string
	bindings map[string]ids.TypeId
	parent   *Scope

	// caseSensitive records whether names in this scope chain should
	// be compared verbatim or case-folded, probed once at the root via
	// probeCaseSensitive rather than trusted from GOOS, mirroring
	// the original resolver's own probe in preference to a platform
	// table (see NewRootScope).
	caseSensitive bool
}

// NewRootScope constructs the outermost scope: the one holding
// builtins, with no parent. caseSensitive is probed once here and
// inherited by every child scope created under it.
func NewRootScope(name string) *Scope {
	return &Scope{
		name:          name,
		bindings:      make(map[string]ids.TypeId),
		caseSensitive: probeCaseSensitive(),
	}
}

// NewChildScope opens a nested scope (a module importing its parent,
// or a local block inside a module) under parent.
func (s *Scope) NewChildScope(name string) *Scope {
	return &Scope{
		name:          name,
		bindings:      make(map[string]ids.TypeId),
		parent:        s,
		caseSensitive: s.caseSensitive,
	}
}

// Define binds name to t in this scope, overwriting any prior binding
// of the same (normalized) name in this scope only.
func (s *Scope) Define(name string, t ids.TypeId) {
	s.bindings[s.key(name)] = t
}

// Lookup resolves name against this scope, then each parent in turn,
// innermost first — standard lexical shadowing.
func (s *Scope) Lookup(name string) (ids.TypeId, bool) {
	key := s.key(name)
	for scope := s; scope != nil; scope = scope.parent {
		if t, ok := scope.bindings[key]; ok {
			return t, true
		}
	}
	return ids.TypeId(0), false
}

// ResolutionOrder returns the chain of scope names Lookup would
// search, innermost first — diagnostic/debugging aid mirroring the
// old resolver's GetResolutionOrder.
func (s *Scope) ResolutionOrder() []string {
	order := make([]string, 0, 4)
	for scope := s; scope != nil; scope = scope.parent {
		order = append(order, scope.name)
	}
	return order
}

// key normalizes name to NFC form, and lower-cases it only if this
// scope chain was probed case-insensitive.
func (s *Scope) key(name string) string {
	normalized := name
	if !norm.NFC.IsNormalString(name) {
		normalized = norm.NFC.String(name)
	}
	if !s.caseSensitive {
		normalized = strings.ToLower(normalized)
	}
	return normalized
}

// probeCaseSensitive checks the real filesystem for case-folding
// rather than trusting runtime.GOOS, the way the original resolver's
// case-sensitivity check was ported from the Rust source's own probe:
// it writes one empty file in a scratch temp directory and checks
// whether the same name in upper case resolves to it.
func probeCaseSensitive() bool {
	dir, err := os.MkdirTemp("", "hashqlcore-case-probe-*")
	if err != nil {
		return runtime.GOOS != "windows" && runtime.GOOS != "darwin"
	}
	defer os.RemoveAll(dir)

	lower := dir + "/probe"
	upper := dir + "/PROBE"
	if err := os.WriteFile(lower, []byte{}, 0o600); err != nil {
		return runtime.GOOS != "windows" && runtime.GOOS != "darwin"
	}
	_, err = os.Stat(upper)
	return os.IsNotExist(err)
}
