package lattice

import "github.com/hashql-lang/core/internal/kind"

// mergeSubstitutions implements the join-time substitution merge rule
// from spec §4.4.a for two Apply carriers sharing the same Base:
// identical (argument, value) pairs dedupe; pairs sharing an argument
// but differing in value are both retained (the disagreement becomes
// the caller's problem, surfaced once the Apply is eventually forced
// open); arguments present in only one side are carried through
// unchanged. The result is sorted by argument but deliberately not
// deduplicated by DedupSubstitutions, since same-argument pairs with
// differing values must survive as two entries.
func mergeSubstitutions(a, b []kind.GenericSubstitution) []kind.GenericSubstitution {
	out := make([]kind.GenericSubstitution, 0, len(a)+len(b))
	out = append(out, a...)
	for _, sb := range b {
		dup := false
		for _, sa := range a {
			if sa == sb {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, sb)
		}
	}
	return kind.SortSubstitutions(out)
}
