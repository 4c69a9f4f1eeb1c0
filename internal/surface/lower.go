package surface

import (
	"github.com/hashql-lang/core/internal/builder"
	"github.com/hashql-lang/core/internal/diagnostic"
	"github.com/hashql-lang/core/internal/ids"
	"github.com/hashql-lang/core/internal/lattice"
	"github.com/hashql-lang/core/internal/projection"
)

// Form identifies one of the surface tokens spec §4.9 names. The core
// never sees these tags itself — LowerSpecialForm is the single place
// they get translated into builder/lattice/projection calls.
type Form uint8

const (
	// FormFn lowers a parameter list and return type into a Closure.
	FormFn Form = iota
	// FormLet binds a name to an already-lowered type in scope.
	FormLet
	// FormType aliases a name to an already-lowered type in scope.
	FormType
	// FormNewtype is like FormType but mints a distinguishable nominal
	// wrapper (a single-field Struct tagged by the new name) rather
	// than a bare alias, so two newtypes over the same underlying type
	// don't unify structurally.
	FormNewtype
	// FormUse imports a name from another scope into this one.
	FormUse
	// FormInput declares an externally-supplied name's type in scope
	// without requiring a value lowering (pipeline inputs).
	FormInput
	// FormAs reinterprets a value at a given already-lowered type
	// (identity at the type level; the core trusts the cast).
	FormAs
	// FormAccess lowers a.b into projection.Project.
	FormAccess
	// FormIndex lowers a[b] into projection.Subscript.
	FormIndex
	// FormIf lowers the branches of a conditional into their joined
	// result type.
	FormIf
)

// Lowered is the result of lowering one special form: either a
// concrete TypeId, or a diagnostic explaining why lowering failed.
type Lowered struct {
	Result ids.TypeId
	Err    *diagnostic.Diagnostic
}

func lowered(t ids.TypeId) Lowered { return Lowered{Result: t} }

func loweredError(d diagnostic.Diagnostic) Lowered { return Lowered{Err: &d} }

// LowerSpecialForm lowers one surface form. scope resolves any names
// the form's arguments reference; le provides the lattice operations
// `if` and newtype-adjacent forms need.
func LowerSpecialForm(le *lattice.LatticeEnvironment, scope *Scope, form Form, args ...any) Lowered {
	e := le.Environment
	switch form {
	case FormFn:
		params, ret, err := asFnArgs(args)
		if err != nil {
			return loweredError(*err)
		}
		return lowered(builder.New(e).Closure(params, ret))

	case FormLet, FormType, FormInput, FormUse:
		name, t, err := asBindArgs(args)
		if err != nil {
			return loweredError(*err)
		}
		scope.Define(name, t)
		return lowered(t)

	case FormNewtype:
		name, t, err := asBindArgs(args)
		if err != nil {
			return loweredError(*err)
		}
		wrapped := builder.New(e).Struct(builder.F(name, t))
		scope.Define(name, wrapped)
		return lowered(wrapped)

	case FormAs:
		_, t, err := asBindArgs(args)
		if err != nil {
			return loweredError(*err)
		}
		return lowered(t)

	case FormAccess:
		t, field, span, err := asFieldArgs(args)
		if err != nil {
			return loweredError(*err)
		}
		p := projection.Project(le, t, field, span)
		if !p.IsResolved() {
			return loweredError(*p.Err)
		}
		return lowered(p.Resolved)

	case FormIndex:
		t, index, span, err := asIndexArgs(args)
		if err != nil {
			return loweredError(*err)
		}
		p := projection.Subscript(le, t, index, span)
		if !p.IsResolved() {
			return loweredError(*p.Err)
		}
		return lowered(p.Resolved)

	case FormIf:
		branches, err := asBranchArgs(args)
		if err != nil {
			return loweredError(*err)
		}
		result := branches[0]
		for _, b := range branches[1:] {
			result = lattice.Join(le, result, b)
		}
		return lowered(result)

	default:
		return loweredError(diagnostic.New(diagnostic.UnsupportedProjection, diagnostic.Span{},
			"unknown special form"))
	}
}

func argError(format string, a ...any) *diagnostic.Diagnostic {
	d := diagnostic.New(diagnostic.UnsupportedProjection, diagnostic.Span{}, format, a...)
	return &d
}

func asFnArgs(args []any) ([]ids.TypeId, ids.TypeId, *diagnostic.Diagnostic) {
	if len(args) != 2 {
		return nil, 0, argError("fn expects (params []TypeId, ret TypeId), got %d args", len(args))
	}
	params, ok := args[0].([]ids.TypeId)
	if !ok {
		return nil, 0, argError("fn: first argument must be []ids.TypeId")
	}
	ret, ok := args[1].(ids.TypeId)
	if !ok {
		return nil, 0, argError("fn: second argument must be ids.TypeId")
	}
	return params, ret, nil
}

func asBindArgs(args []any) (string, ids.TypeId, *diagnostic.Diagnostic) {
	if len(args) != 2 {
		return "", 0, argError("expects (name string, type TypeId), got %d args", len(args))
	}
	name, ok := args[0].(string)
	if !ok {
		return "", 0, argError("first argument must be a name string")
	}
	t, ok := args[1].(ids.TypeId)
	if !ok {
		return "", 0, argError("second argument must be ids.TypeId")
	}
	return name, t, nil
}

func asFieldArgs(args []any) (ids.TypeId, string, diagnostic.Span, *diagnostic.Diagnostic) {
	if len(args) < 2 {
		return 0, "", diagnostic.Span{}, argError("access expects (type TypeId, field string, [span])")
	}
	t, ok := args[0].(ids.TypeId)
	if !ok {
		return 0, "", diagnostic.Span{}, argError("access: first argument must be ids.TypeId")
	}
	field, ok := args[1].(string)
	if !ok {
		return 0, "", diagnostic.Span{}, argError("access: second argument must be a field name string")
	}
	span := spanArg(args, 2)
	return t, field, span, nil
}

func asIndexArgs(args []any) (ids.TypeId, ids.TypeId, diagnostic.Span, *diagnostic.Diagnostic) {
	if len(args) < 2 {
		return 0, 0, diagnostic.Span{}, argError("index expects (type TypeId, indexType TypeId, [span])")
	}
	t, ok := args[0].(ids.TypeId)
	if !ok {
		return 0, 0, diagnostic.Span{}, argError("index: first argument must be ids.TypeId")
	}
	index, ok := args[1].(ids.TypeId)
	if !ok {
		return 0, 0, diagnostic.Span{}, argError("index: second argument must be ids.TypeId")
	}
	span := spanArg(args, 2)
	return t, index, span, nil
}

func asBranchArgs(args []any) ([]ids.TypeId, *diagnostic.Diagnostic) {
	if len(args) == 0 {
		return nil, argError("if expects at least one branch")
	}
	branches := make([]ids.TypeId, len(args))
	for i, a := range args {
		t, ok := a.(ids.TypeId)
		if !ok {
			return nil, argError("if: branch %d must be ids.TypeId", i)
		}
		branches[i] = t
	}
	return branches, nil
}

func spanArg(args []any, i int) diagnostic.Span {
	if i >= len(args) {
		return diagnostic.Span{}
	}
	if span, ok := args[i].(diagnostic.Span); ok {
		return span
	}
	return diagnostic.Span{}
}
