package nl

import (
	"slices"
	"testing"

	"github.com/OFFIS-RIT/statnl/pkg/triple"
)

func TestHumanize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "dcs:medianAge", expected: "median age"},
		{input: "Count_Person", expected: "count person"},
		{input: "unemploymentRate", expected: "unemployment rate"},
		{input: "GDPPerCapita", expected: "GDP per capita"},
		{input: "dcid:Female", expected: "female"},
		{input: "age", expected: "age"},
		{input: "", expected: ""},
	}

	for _, tt := range tests {
		if got := humanize(tt.input); got != tt.expected {
			t.Fatalf("humanize(%q): expected %q, got %q", tt.input, tt.expected, got)
		}
	}
}

func TestEntitySentences(t *testing.T) {
	tests := []struct {
		name     string
		triples  []triple.Triple
		expected []string
	}{
		{
			name: "search descriptions win and are deduplicated",
			triples: []triple.Triple{
				triple.NewValue("sv", triple.PredicateName, "Name"),
				triple.NewValue("sv", triple.PredicateSearchDescription, "first"),
				triple.NewValue("sv", triple.PredicateSearchDescription, "second"),
				triple.NewValue("sv", triple.PredicateSearchDescription, "first"),
			},
			expected: []string{"first", "second"},
		},
		{
			name: "name with equal description",
			triples: []triple.Triple{
				triple.NewValue("sv", triple.PredicateName, "Population"),
				triple.NewValue("sv", triple.PredicateDescription, "Population"),
			},
			expected: []string{"Population"},
		},
		{
			name: "name ending in punctuation",
			triples: []triple.Triple{
				triple.NewValue("sv", triple.PredicateName, "How old?"),
				triple.NewValue("sv", triple.PredicateDescription, "Median age"),
			},
			expected: []string{"How old? Median age"},
		},
		{
			name: "concept with defaults omitted",
			triples: []triple.Triple{
				triple.NewRef("sv", triple.PredicateMeasuredProperty, "dcs:count"),
				triple.NewRef("sv", triple.PredicateStatType, "dcs:measuredValue"),
				triple.NewRef("sv", triple.PredicatePopulationType, "dcs:Thing"),
			},
			expected: []string{"Count"},
		},
		{
			name: "concept with namespaced constraint predicate",
			triples: []triple.Triple{
				triple.NewRef("sv", triple.PredicateMeasuredProperty, "dcs:count"),
				triple.NewRef("sv", triple.PredicatePopulationType, "dcs:Person"),
				triple.NewRef("sv", triple.PredicateConstraintProperties, "dcs:gender"),
				{SubjectID: "sv", Predicate: "dcs:gender", ObjectID: "dcs:Female"},
			},
			expected: []string{"Count of person with female"},
		},
		{
			name: "concept with several constraints",
			triples: []triple.Triple{
				triple.NewRef("sv", triple.PredicateMeasuredProperty, "count"),
				triple.NewRef("sv", triple.PredicatePopulationType, "Person"),
				triple.NewRef("sv", triple.PredicateConstraintProperties, "gender"),
				triple.NewRef("sv", triple.PredicateConstraintProperties, "dcs:educationalAttainment"),
				{SubjectID: "sv", Predicate: "gender", ObjectID: "Male"},
				{SubjectID: "sv", Predicate: "educationalAttainment", ObjectID: "BachelorsDegree"},
			},
			expected: []string{"Count of person with male, bachelors degree"},
		},
		{
			name: "whitespace is collapsed",
			triples: []triple.Triple{
				triple.NewValue("sv", triple.PredicateDescription, "  Share\tof\x00 people \n"),
			},
			expected: []string{"Share of people"},
		},
		{
			name: "nothing usable",
			triples: []triple.Triple{
				triple.NewValue("sv", triple.PredicateName, "   "),
				triple.NewRef("sv", triple.PredicatePopulationType, "Person"),
			},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entities := groupEntities(tt.triples)
			if len(entities) != 1 {
				t.Fatalf("expected 1 entity, got %d", len(entities))
			}
			got := entitySentences(entities[0])
			if !slices.Equal(got, tt.expected) {
				t.Fatalf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestBuildSentencesSkipsUntypedAndOtherTypes(t *testing.T) {
	triples := []triple.Triple{
		triple.NewValue("untyped", triple.PredicateName, "No type"),
		triple.NewRef("prov", triple.PredicateTypeOf, "Provenance"),
		triple.NewValue("prov", triple.PredicateName, "Census"),
		triple.NewRef("t", triple.PredicateTypeOf, "dcs:Topic"),
		triple.NewValue("t", triple.PredicateName, "Topic"),
	}

	rows, skipped := BuildSentences(triples)
	if len(skipped) != 0 {
		t.Fatalf("expected no skips, got %v", skipped)
	}
	if len(rows) != 1 || rows[0].DCID != "t" {
		t.Fatalf("expected only the topic row, got %v", rows)
	}
}

func TestRelativize(t *testing.T) {
	tests := []struct {
		root     string
		target   string
		expected string
		wantErr  bool
	}{
		{root: "/tmp/out", target: "/tmp/out/sentences.csv", expected: "sentences.csv"},
		{root: "/tmp/out/", target: "/tmp/out/embeddings", expected: "embeddings"},
		{root: "/tmp/out", target: "/tmp/out", expected: "."},
		{root: "s3://bucket/nl", target: "s3://bucket/nl/embeddings/custom_catalog.yaml", expected: "embeddings/custom_catalog.yaml"},
		{root: "/tmp/out", target: "/tmp/outside/sentences.csv", wantErr: true},
		{root: "/tmp/out", target: "/etc/passwd", wantErr: true},
	}

	for _, tt := range tests {
		got, err := Relativize(tt.root, tt.target)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("expected error for %s in %s, got %s", tt.target, tt.root, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != tt.expected {
			t.Fatalf("expected %s, got %s", tt.expected, got)
		}
	}
}

func TestEncodeTopicCacheEmpty(t *testing.T) {
	content, err := EncodeTopicCache(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(content) != "{}\n" {
		t.Fatalf("expected empty object, got %q", content)
	}
}
