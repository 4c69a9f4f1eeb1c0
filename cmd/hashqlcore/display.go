package main

import (
	"fmt"
	"strings"

	"github.com/hashql-lang/core/internal/env"
	"github.com/hashql-lang/core/internal/ids"
	"github.com/hashql-lang/core/internal/kind"
)

// display renders a TypeId as a HashQL-ish surface expression. This is
// display/formatting logic the core itself deliberately has no part
// of — it lives here, in the CLI, purely to make REPL output
// readable.
func display(e *env.Environment, t ids.TypeId) string {
	return displaySet(e, t, map[ids.TypeId]bool{})
}

func displaySet(e *env.Environment, t ids.TypeId, seen map[ids.TypeId]bool) string {
	if seen[t] {
		return fmt.Sprintf("<rec %s>", t)
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
	case kind.Infer:
		return k.Hole.String()
	case kind.Param:
		return k.Argument.String()

	case kind.Tuple:
		elems := k.Elements.Value()
		parts := make([]string, len(elems))
		for i, el := range elems {
			parts[i] = displaySet(e, el, seen)
		}
		return "(" + strings.Join(parts, ", ") + ")"

	case kind.Struct:
		fields := k.Fields.Value()
		parts := make([]string, len(fields))
		for i, f := range fields {
			parts[i] = fmt.Sprintf("%s: %s", e.Heap.SymbolName(f.Name), displaySet(e, f.Value, seen))
		}
		return "{" + strings.Join(parts, ", ") + "}"

	case kind.Closure:
		params := k.Params.Value()
		parts := make([]string, len(params))
		for i, p := range params {
			parts[i] = displaySet(e, p, seen)
		}
		return fmt.Sprintf("fn(%s) -> %s", strings.Join(parts, ", "), displaySet(e, k.Return, seen))

	case kind.Union:
		return joinDisplay(e, k.Variants.Value(), " | ", seen)

	case kind.Intersection:
		return joinDisplay(e, k.Variants.Value(), " & ", seen)

	case kind.Generic:
		args := k.Arguments.Value()
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = e.Heap.SymbolName(a.Name)
		}
		return fmt.Sprintf("<%s>%s", strings.Join(parts, ", "), displaySet(e, k.Base, seen))

	case kind.Apply:
		subs := k.Substitutions.Value()
		parts := make([]string, len(subs))
		for i, s := range subs {
			parts[i] = fmt.Sprintf("%s=%s", s.Argument, displaySet(e, s.Value, seen))
		}
		return fmt.Sprintf("%s[%s]", displaySet(e, k.Base, seen), strings.Join(parts, ", "))

	default:
		return fmt.Sprintf("<%T>", k)
	}
}

func joinDisplay(e *env.Environment, members []ids.TypeId, sep string, seen map[ids.TypeId]bool) string {
	parts := make([]string, len(members))
	for i, m := range members {
		parts[i] = displaySet(e, m, seen)
	}
	return strings.Join(parts, sep)
}
