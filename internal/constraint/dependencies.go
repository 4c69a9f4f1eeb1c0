package constraint

import (
	"github.com/hashql-lang/core/internal/ids"
	"github.com/hashql-lang/core/internal/kind"
	"github.com/hashql-lang/core/internal/visit"
)

// CollectDependencies walks t and emits a Dependency from variable
// toward every hole or generic parameter reachable inside it,
// regardless of polarity — the direction recorded here is always
// variable→(what it depends on); a solver that needs polarity on top
// of this derives it separately from the LowerBound/UpperBound/
// Equals/Ordering facts CollectConstraints already recorded.
func CollectDependencies(ie *InferenceEnvironment, t ids.TypeId, variable Variable) {
	collectDependencies(ie, t, variable, visit.NewSet())
}

func collectDependencies(ie *InferenceEnvironment, t ids.TypeId, variable Variable, visits *visit.Set) {
	key := visit.Single("collect-dependencies", uint32(t))
	if visits.Enter(key) {
		return
	}
	defer visits.Exit(key)

	switch k := ie.Lookup(t).(type) {
	case kind.Never, kind.Unknown, kind.Primitive:
		return

	case kind.Infer:
		ie.push(Dependency{Source: variable, Target: FromHole(k.Hole)})

	case kind.Param:
		ie.push(Dependency{Source: variable, Target: FromArgument(k.Argument)})

	case kind.Tuple:
		for _, el := range k.Elements.Value() {
			collectDependencies(ie, el, variable, visits)
		}

	case kind.Struct:
		for _, f := range k.Fields.Value() {
			collectDependencies(ie, f.Value, variable, visits)
		}

	case kind.Closure:
		for _, p := range k.Params.Value() {
			collectDependencies(ie, p, variable, visits)
		}
		collectDependencies(ie, k.Return, variable, visits)

	case kind.Union:
		for _, m := range k.Variants.Value() {
			collectDependencies(ie, m, variable, visits)
		}

	case kind.Intersection:
		for _, m := range k.Variants.Value() {
			collectDependencies(ie, m, variable, visits)
		}

	case kind.Generic:
		collectDependencies(ie, k.Base, variable, visits)

	case kind.Apply:
		for _, s := range k.Substitutions.Value() {
			collectDependencies(ie, s.Value, variable, visits)
		}
		collectDependencies(ie, k.Base, variable, visits)
	}
}
