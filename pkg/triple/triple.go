// Package triple defines the statement model shared by every stage of the
// sentence and topic cache pipeline.
package triple

import "fmt"

// Triple is a single subject-predicate-object statement. Triples are passed
// by value and never modified after construction.
//
// Depending on the predicate either ObjectID (a reference to another node)
// or ObjectValue (a literal) is meaningful; the other one is empty.
type Triple struct {
	SubjectID   string `json:"subject_id"`
	Predicate   string `json:"predicate"`
	ObjectID    string `json:"object_id,omitempty"`
	ObjectValue string `json:"object_value,omitempty"`
}

// NewRef creates a triple whose object is a node reference.
func NewRef(subjectID string, predicate Predicate, objectID string) Triple {
	return Triple{SubjectID: subjectID, Predicate: predicate.String(), ObjectID: objectID}
}

// NewValue creates a triple whose object is a literal value.
func NewValue(subjectID string, predicate Predicate, value string) Triple {
	return Triple{SubjectID: subjectID, Predicate: predicate.String(), ObjectValue: value}
}

// Kind returns the recognized predicate of the triple, or PredicateUnknown.
func (t Triple) Kind() Predicate {
	return ParsePredicate(t.Predicate)
}

// Object returns ObjectID if set, otherwise ObjectValue.
func (t Triple) Object() string {
	if t.ObjectID != "" {
		return t.ObjectID
	}
	return t.ObjectValue
}

// TypeOf reports the entity type declared by a typeOf triple. ok is false for
// any other predicate.
func (t Triple) TypeOf() (EntityType, bool) {
	if t.Kind() != PredicateTypeOf {
		return EntityTypeUnknown, false
	}
	return ParseEntityType(t.ObjectID), true
}

func (t Triple) String() string {
	if t.ObjectID != "" {
		return fmt.Sprintf("%s %s %s", t.SubjectID, t.Predicate, t.ObjectID)
	}
	return fmt.Sprintf("%s %s %q", t.SubjectID, t.Predicate, t.ObjectValue)
}
