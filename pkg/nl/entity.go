package nl

import (
	"slices"

	"github.com/OFFIS-RIT/statnl/internal/util"
	"github.com/OFFIS-RIT/statnl/pkg/triple"
)

// entity collects the attributes of one subject in the order they appear.
type entity struct {
	dcid  string
	types []triple.EntityType

	names              []string
	descriptions       []string
	searchDescriptions []string

	measuredProperty    string
	populationType      string
	statType            string
	constraintPredicate []string
	// First object per predicate without namespace, used to resolve
	// constraint values.
	values map[string]string

	members []string
}

func (e *entity) is(types ...triple.EntityType) bool {
	for _, t := range e.types {
		if slices.Contains(types, t) {
			return true
		}
	}
	return false
}

func (e *entity) add(t triple.Triple) {
	predicate := triple.StripNamespace(t.Predicate)
	if _, seen := e.values[predicate]; !seen {
		e.values[predicate] = t.Object()
	}

	switch t.Kind() {
	case triple.PredicateTypeOf:
		e.types = appendUnique(e.types, triple.ParseEntityType(t.ObjectID))
	case triple.PredicateName:
		e.names = appendText(e.names, t.ObjectValue)
	case triple.PredicateDescription:
		e.descriptions = appendText(e.descriptions, t.ObjectValue)
	case triple.PredicateSearchDescription:
		e.searchDescriptions = appendText(e.searchDescriptions, t.ObjectValue)
	case triple.PredicateMeasuredProperty:
		if e.measuredProperty == "" {
			e.measuredProperty = t.Object()
		}
	case triple.PredicatePopulationType:
		if e.populationType == "" {
			e.populationType = t.Object()
		}
	case triple.PredicateStatType:
		if e.statType == "" {
			e.statType = t.Object()
		}
	case triple.PredicateConstraintProperties:
		e.constraintPredicate = appendUnique(e.constraintPredicate, triple.StripNamespace(t.Object()))
	case triple.PredicateRelevantVariable, triple.PredicateMember:
		if member := t.Object(); member != "" {
			e.members = appendUnique(e.members, member)
		}
	}
}

// groupEntities groups triples by subject, keeping the order in which
// subjects first appear.
func groupEntities(triples []triple.Triple) []*entity {
	byID := make(map[string]*entity)
	var ordered []*entity
	for _, t := range triples {
		e, ok := byID[t.SubjectID]
		if !ok {
			e = &entity{dcid: t.SubjectID, values: make(map[string]string)}
			byID[t.SubjectID] = e
			ordered = append(ordered, e)
		}
		e.add(t)
	}
	return ordered
}

func appendUnique[T comparable](values []T, v T) []T {
	if slices.Contains(values, v) {
		return values
	}
	return append(values, v)
}

func appendText(values []string, v string) []string {
	v = util.SanitizeText(v)
	if v == "" {
		return values
	}
	return appendUnique(values, v)
}
