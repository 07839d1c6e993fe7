package nquads

import (
	"fmt"
	"slices"
	"strings"

	"github.com/piprate/json-gold/ld"

	"github.com/OFFIS-RIT/statnl/pkg/triple"
)

const defaultGraph = "@default"

// Namespaces lists the IRI prefixes removed from node ids.
var Namespaces = []string{
	"https://datacommons.org/browser/",
	"http://datacommons.org/browser/",
	"https://schema.org/",
	"http://schema.org/",
}

// NQuadsTripleParser parses N-Quads documents. Graph names are dropped;
// triples of the default graph come first, followed by the named graphs
// in lexical order.
type NQuadsTripleParser struct{}

func NewNQuadsTripleParser() *NQuadsTripleParser {
	return &NQuadsTripleParser{}
}

func (p *NQuadsTripleParser) ParseTriples(content []byte) ([]triple.Triple, error) {
	return ParseTriples(content)
}

func ParseTriples(content []byte) ([]triple.Triple, error) {
	dataset, err := ld.ParseNQuads(string(content))
	if err != nil {
		return nil, fmt.Errorf("invalid n-quads: %w", err)
	}

	graphs := make([]string, 0, len(dataset.Graphs))
	for name := range dataset.Graphs {
		if name != defaultGraph {
			graphs = append(graphs, name)
		}
	}
	slices.Sort(graphs)
	graphs = slices.Insert(graphs, 0, defaultGraph)

	var triples []triple.Triple
	for _, graph := range graphs {
		for _, quad := range dataset.Graphs[graph] {
			t := triple.Triple{
				SubjectID: nodeID(quad.Subject),
				Predicate: nodeID(quad.Predicate),
			}
			if ld.IsLiteral(quad.Object) {
				t.ObjectValue = quad.Object.GetValue()
			} else {
				t.ObjectID = nodeID(quad.Object)
			}
			triples = append(triples, t)
		}
	}

	return triples, nil
}

// nodeID returns the id of an IRI or blank node with known namespaces
// removed. Blank nodes keep their "_:" label.
func nodeID(node ld.Node) string {
	if node == nil {
		return ""
	}
	value := node.GetValue()
	if ld.IsBlankNode(node) {
		return value
	}
	for _, ns := range Namespaces {
		if id, ok := strings.CutPrefix(value, ns); ok {
			return id
		}
	}
	return triple.StripNamespace(value)
}
