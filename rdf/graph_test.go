package rdf

import (
	"testing"

	"github.com/cayleygraph/quad"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddIsFluent(t *testing.T) {
	g := NewGraph()
	got := g.
		Add(quad.IRI("ex:John"), quad.IRI("rdf:type"), quad.IRI("ex:Person")).
		Add(quad.IRI("ex:John"), quad.IRI("ex:name"), quad.String("John Doe"))

	assert.Same(t, g, got)
	assert.Equal(t, 2, g.Len())
}

func TestAllPreservesInsertionOrder(t *testing.T) {
	g := NewGraph()
	triples := []Triple{
		{quad.IRI("ex:a"), quad.IRI("ex:p"), quad.String("1")},
		{quad.IRI("ex:b"), quad.IRI("ex:p"), quad.String("2")},
		{quad.IRI("ex:c"), quad.IRI("ex:p"), quad.String("3")},
	}
	for _, tr := range triples {
		g.AddTriple(tr)
	}
	assert.Equal(t, triples, g.All())
}

func TestTriplesPatternMatching(t *testing.T) {
	g := NewGraph().
		Add(quad.IRI("ex:John"), quad.IRI("rdf:type"), quad.IRI("ex:Person")).
		Add(quad.IRI("ex:Jane"), quad.IRI("rdf:type"), quad.IRI("ex:Person")).
		Add(quad.IRI("ex:John"), quad.IRI("ex:knows"), quad.IRI("ex:Jane"))

	tests := []struct {
		name    string
		pattern Pattern
		want    int
	}{
		{"AllWildcards", Pattern{}, 3},
		{"BySubject", Pattern{Subject: quad.IRI("ex:John")}, 2},
		{"ByPredicate", Pattern{Predicate: quad.IRI("rdf:type")}, 2},
		{"ByObject", Pattern{Object: quad.IRI("ex:Jane")}, 1},
		{"FullTriple", Pattern{quad.IRI("ex:John"), quad.IRI("ex:knows"), quad.IRI("ex:Jane")}, 1},
		{"NoMatch", Pattern{Subject: quad.IRI("ex:Nobody")}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, g.Triples(tt.pattern), tt.want)
		})
	}
}

func TestRemove(t *testing.T) {
	tr := Triple{quad.IRI("ex:a"), quad.IRI("ex:p"), quad.String("v")}
	g := NewGraph().AddTriple(tr).AddTriple(tr).
		Add(quad.IRI("ex:b"), quad.IRI("ex:p"), quad.String("v"))

	g.Remove(tr)
	require.Equal(t, 1, g.Len())
	assert.Equal(t, quad.IRI("ex:b"), g.All()[0].Subject)
}

func TestNewBlankNodeUnique(t *testing.T) {
	g := NewGraph()
	seen := map[quad.BNode]bool{}
	for i := 0; i < 100; i++ {
		b := g.NewBlankNode()
		require.False(t, seen[b], "duplicate blank node id")
		seen[b] = true
	}
}

func TestLiteralTermsRoundTripThroughGraph(t *testing.T) {
	g := NewGraph().
		Add(quad.IRI("ex:s"), quad.IRI("ex:p"), quad.LangString{Value: "hello", Lang: "en"}).
		Add(quad.IRI("ex:s"), quad.IRI("ex:p"), quad.TypedString{Value: "5", Type: "http://www.w3.org/2001/XMLSchema#integer"})

	got := g.Triples(Pattern{Object: quad.LangString{Value: "hello", Lang: "en"}})
	require.Len(t, got, 1)
	assert.Equal(t, quad.IRI("ex:s"), got[0].Subject)
}
