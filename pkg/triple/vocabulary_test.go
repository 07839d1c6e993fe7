package triple

import "testing"

func TestParsePredicate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Predicate
	}{
		{name: "typeOf", in: "typeOf", want: PredicateTypeOf},
		{name: "namespaced", in: "dcs:name", want: PredicateName},
		{name: "relevant variable", in: "relevantVariable", want: PredicateRelevantVariable},
		{name: "unknown", in: "gender", want: PredicateUnknown},
		{name: "empty", in: "", want: PredicateUnknown},
		{name: "case sensitive", in: "TypeOf", want: PredicateUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParsePredicate(tt.in); got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestParseEntityType(t *testing.T) {
	tests := []struct {
		in   string
		want EntityType
	}{
		{in: "StatisticalVariable", want: EntityTypeStatisticalVariable},
		{in: "dcs:StatVarPeerGroup", want: EntityTypeStatVarPeerGroup},
		{in: "dcid:Topic", want: EntityTypeTopic},
		{in: "schema:Thing", want: EntityTypeUnknown},
		{in: "", want: EntityTypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseEntityType(tt.in); got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestStripNamespace(t *testing.T) {
	tests := map[string]string{
		"dcs:Person":              "Person",
		"Person":                  "Person",
		"dc/topic/Health":         "dc/topic/Health",
		"dc/svpg/a:b":             "dc/svpg/a:b",
		"https://example.org/foo": "https://example.org/foo",
	}

	for in, want := range tests {
		if got := StripNamespace(in); got != want {
			t.Fatalf("StripNamespace(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestPredicateStringRoundTrip(t *testing.T) {
	for p := PredicateTypeOf; p <= PredicateDomain; p++ {
		if got := ParsePredicate(p.String()); got != p {
			t.Fatalf("expected %v to round trip, got %v", p, got)
		}
	}
	if PredicateUnknown.String() != "unknown" {
		t.Fatalf("expected unknown, got %s", PredicateUnknown.String())
	}
}

func TestTripleTypeOf(t *testing.T) {
	typed := NewRef("Count_Person", PredicateTypeOf, "StatisticalVariable")
	got, ok := typed.TypeOf()
	if !ok || got != EntityTypeStatisticalVariable {
		t.Fatalf("expected StatisticalVariable, got %v (ok=%v)", got, ok)
	}

	named := NewValue("Count_Person", PredicateName, "Person count")
	if _, ok := named.TypeOf(); ok {
		t.Fatal("expected name triple not to declare a type")
	}
	if named.Object() != "Person count" {
		t.Fatalf("expected literal object, got %q", named.Object())
	}
}
