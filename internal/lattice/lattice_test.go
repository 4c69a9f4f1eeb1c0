package lattice

import (
	"fmt"
	"strings"
	"testing"

	"github.com/hashql-lang/core/internal/builder"
	"github.com/hashql-lang/core/internal/env"
	"github.com/hashql-lang/core/internal/ids"
	"github.com/hashql-lang/core/internal/kind"
)

func newEnv(t *testing.T) (*env.Environment, builder.B) {
	t.Helper()
	e := env.New()
	return e, builder.New(e)
}

// display is a minimal recursive renderer used only to make test
// failure messages legible; it does not participate in any
// assertion.
func display(e *env.Environment, t ids.TypeId) string {
	return displaySeen(e, t, map[ids.TypeId]bool{})
}

func displaySeen(e *env.Environment, t ids.TypeId, seen map[ids.TypeId]bool) string {
	if seen[t] {
		return fmt.Sprintf("<rec %d>", uint32(t))
	}
	seen[t] = true
	defer delete(seen, t)

	switch k := e.Lookup(t).(type) {
	case kind.Never:
		return "Never"
	case kind.Unknown:
		return "Unknown"
	case kind.Primitive:
		return k.Kind.String()
	case kind.Tuple:
		elems := k.Elements.Value()
		parts := make([]string, len(elems))
		for i, el := range elems {
			parts[i] = displaySeen(e, el, seen)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case kind.Closure:
		params := k.Params.Value()
		parts := make([]string, len(params))
		for i, p := range params {
			parts[i] = displaySeen(e, p, seen)
		}
		return fmt.Sprintf("fn(%s) -> %s", strings.Join(parts, ", "), displaySeen(e, k.Return, seen))
	case kind.Union:
		variants := k.Variants.Value()
		parts := make([]string, len(variants))
		for i, v := range variants {
			parts[i] = displaySeen(e, v, seen)
		}
		return strings.Join(parts, " | ")
	default:
		return fmt.Sprintf("<%T>", k)
	}
}
