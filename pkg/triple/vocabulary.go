package triple

import "strings"

// Predicate is the closed set of predicates the pipeline understands.
// Everything else parses to PredicateUnknown and is treated as inert data.
type Predicate int

const (
	PredicateUnknown Predicate = iota
	PredicateTypeOf
	PredicateName
	PredicateDescription
	PredicateSearchDescription
	PredicateMemberOf
	PredicateMember
	PredicateRelevantVariable
	PredicateSpecializationOf
	PredicateMeasuredProperty
	PredicatePopulationType
	PredicateStatType
	PredicateConstraintProperties
	PredicateIncludedIn
	PredicateURL
	PredicateSource
	PredicateDomain
)

var predicateNames = map[Predicate]string{
	PredicateTypeOf:               "typeOf",
	PredicateName:                 "name",
	PredicateDescription:          "description",
	PredicateSearchDescription:    "searchDescription",
	PredicateMemberOf:             "memberOf",
	PredicateMember:               "member",
	PredicateRelevantVariable:     "relevantVariable",
	PredicateSpecializationOf:     "specializationOf",
	PredicateMeasuredProperty:     "measuredProperty",
	PredicatePopulationType:       "populationType",
	PredicateStatType:             "statType",
	PredicateConstraintProperties: "constraintProperties",
	PredicateIncludedIn:           "includedIn",
	PredicateURL:                  "url",
	PredicateSource:               "source",
	PredicateDomain:               "domain",
}

var predicatesByName = invert(predicateNames)

// ParsePredicate maps a raw predicate string to its enumerated value.
func ParsePredicate(s string) Predicate {
	if p, ok := predicatesByName[StripNamespace(s)]; ok {
		return p
	}
	return PredicateUnknown
}

func (p Predicate) String() string {
	if name, ok := predicateNames[p]; ok {
		return name
	}
	return "unknown"
}

// EntityType is the closed set of node types referenced by typeOf triples.
type EntityType int

const (
	EntityTypeUnknown EntityType = iota
	EntityTypeStatisticalVariable
	EntityTypeStatVarPeerGroup
	EntityTypeTopic
	EntityTypeStatVarGroup
	EntityTypeProvenance
	EntityTypeSource
	EntityTypeProperty
	EntityTypeClass
)

var entityTypeNames = map[EntityType]string{
	EntityTypeStatisticalVariable: "StatisticalVariable",
	EntityTypeStatVarPeerGroup:    "StatVarPeerGroup",
	EntityTypeTopic:               "Topic",
	EntityTypeStatVarGroup:        "StatVarGroup",
	EntityTypeProvenance:          "Provenance",
	EntityTypeSource:              "Source",
	EntityTypeProperty:            "Property",
	EntityTypeClass:               "Class",
}

var entityTypesByName = invert(entityTypeNames)

// ParseEntityType maps a type id such as "dcs:StatisticalVariable" to its
// enumerated value.
func ParseEntityType(s string) EntityType {
	if t, ok := entityTypesByName[StripNamespace(s)]; ok {
		return t
	}
	return EntityTypeUnknown
}

func (t EntityType) String() string {
	if name, ok := entityTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// StripNamespace removes a leading namespace prefix, e.g. "dcs:Person" -> "Person".
// Ids containing a slash before the first colon and URLs are left untouched.
func StripNamespace(s string) string {
	i := strings.IndexByte(s, ':')
	if i < 0 || strings.ContainsRune(s[:i], '/') || strings.HasPrefix(s[i+1:], "//") {
		return s
	}
	return s[i+1:]
}

func invert[K comparable, V comparable](m map[K]V) map[V]K {
	out := make(map[V]K, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}
