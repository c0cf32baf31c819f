package search

// Combination is one fully-resolved (search_term, location, job_type)
// tuple. Nil means the filter was absent from the query; the site set and
// scalar filters are shared across all combinations and live on the Query.
type Combination struct {
	SearchTerm *string
	Location   *string
	JobType    *string
}

// ExpandCombinations builds the cartesian product of the parsed filter
// lists. An absent list collapses to a single nil element, so a query with
// no filters still produces exactly one combination. Iteration order is
// search_term outer, location middle, job_type innermost, each in
// declaration order — response item order depends on it.
func ExpandCombinations(searchTerms, locations, jobTypes []string) []Combination {
	terms := collapseAbsent(searchTerms)
	locs := collapseAbsent(locations)
	types := collapseAbsent(jobTypes)

	combos := make([]Combination, 0, len(terms)*len(locs)*len(types))
	for _, term := range terms {
		for _, loc := range locs {
			for _, jt := range types {
				combos = append(combos, Combination{
					SearchTerm: term,
					Location:   loc,
					JobType:    jt,
				})
			}
		}
	}

	return combos
}

func collapseAbsent(values []string) []*string {
	if len(values) == 0 {
		return []*string{nil}
	}

	out := make([]*string, len(values))
	for i := range values {
		out[i] = &values[i]
	}
	return out
}
