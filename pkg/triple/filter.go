package triple

// FilterExcluding removes every triple whose subject is declared, via
// predicate, to be of the excluded type. All triples of such a subject are
// removed, not only the type declaration. When nothing matches the input
// slice is returned as is.
func FilterExcluding(triples []Triple, predicate Predicate, excluded EntityType) []Triple {
	excludedIDs := make(map[string]struct{})
	for _, t := range triples {
		if t.Kind() == predicate && ParseEntityType(t.ObjectID) == excluded {
			excludedIDs[t.SubjectID] = struct{}{}
		}
	}

	if len(excludedIDs) == 0 {
		return triples
	}

	kept := make([]Triple, 0, len(triples))
	for _, t := range triples {
		if _, ok := excludedIDs[t.SubjectID]; ok {
			continue
		}
		kept = append(kept, t)
	}
	return kept
}

// WithoutPeerGroups drops all StatVarPeerGroup subjects.
func WithoutPeerGroups(triples []Triple) []Triple {
	return FilterExcluding(triples, PredicateTypeOf, EntityTypeStatVarPeerGroup)
}

// WithoutStatVars drops all StatisticalVariable subjects.
func WithoutStatVars(triples []Triple) []Triple {
	return FilterExcluding(triples, PredicateTypeOf, EntityTypeStatisticalVariable)
}
