package nquads

import (
	"reflect"
	"testing"

	"github.com/OFFIS-RIT/statnl/pkg/triple"
)

func TestParseTriples(t *testing.T) {
	input := `<dcid:Count_Person> <http://schema.org/typeOf> <dcs:StatisticalVariable> <http://example.org/g2> .
<dcid:Count_Person> <http://schema.org/name> "Total population" .
<https://datacommons.org/browser/dc/topic/Health> <dcs:typeOf> <dcs:Topic> .
<https://datacommons.org/browser/dc/topic/Health> <dcs:relevantVariable> <dcid:Count_Person> .
_:b0 <dcs:name> "Anonymous"@en .
`

	got, err := ParseTriples([]byte(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []triple.Triple{
		{SubjectID: "Count_Person", Predicate: "name", ObjectValue: "Total population"},
		{SubjectID: "dc/topic/Health", Predicate: "typeOf", ObjectID: "Topic"},
		{SubjectID: "dc/topic/Health", Predicate: "relevantVariable", ObjectID: "Count_Person"},
		{SubjectID: "_:b0", Predicate: "name", ObjectValue: "Anonymous"},
		{SubjectID: "Count_Person", Predicate: "typeOf", ObjectID: "StatisticalVariable"},
	}
	if !reflect.DeepEqual(got, expected) {
		t.Fatalf("expected %v, got %v", expected, got)
	}
}

func TestParseTriplesInvalid(t *testing.T) {
	if _, err := ParseTriples([]byte("this is not n-quads\n")); err == nil {
		t.Fatalf("expected error for invalid input")
	}
}
