// Package rdf provides the graph handle that rdftab serializes. Terms are
// values from github.com/cayleygraph/quad; the graph is a plain in-memory
// triple container with insertion-order iteration and wildcard pattern
// matching. Query semantics beyond triple patterns belong to the caller.
package rdf

import (
	"github.com/cayleygraph/quad"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Triple is one subject-predicate-object statement.
type Triple struct {
	Subject   quad.Value
	Predicate quad.Value
	Object    quad.Value
}

// Pattern selects triples. A nil field matches any term in that position.
type Pattern struct {
	Subject   quad.Value
	Predicate quad.Value
	Object    quad.Value
}

// Matches reports whether t satisfies the pattern.
func (p Pattern) Matches(t Triple) bool {
	if p.Subject != nil && p.Subject != t.Subject {
		return false
	}
	if p.Predicate != nil && p.Predicate != t.Predicate {
		return false
	}
	if p.Object != nil && p.Object != t.Object {
		return false
	}
	return true
}

// Graph is an owned in-memory triple container. It is not safe for
// concurrent use; callers own synchronization if they share a handle.
type Graph struct {
	triples []Triple
	log     zerolog.Logger
}

// NewGraph creates an empty graph with a no-op logger.
func NewGraph() *Graph {
	return NewGraphWithLogger(zerolog.Nop())
}

// NewGraphWithLogger creates an empty graph that logs mutations at debug level.
func NewGraphWithLogger(log zerolog.Logger) *Graph {
	return &Graph{log: log}
}

// Add appends one triple and returns the handle for chaining. Duplicates are
// kept; deduplication is the caller's policy, not the graph's.
func (g *Graph) Add(s, p, o quad.Value) *Graph {
	return g.AddTriple(Triple{Subject: s, Predicate: p, Object: o})
}

// AddTriple appends one triple and returns the handle for chaining.
func (g *Graph) AddTriple(t Triple) *Graph {
	g.triples = append(g.triples, t)
	g.log.Debug().Str("subject", quad.StringOf(t.Subject)).Str("predicate", quad.StringOf(t.Predicate)).Msg("triple added")
	return g
}

// Remove deletes every triple equal to t and returns the handle.
func (g *Graph) Remove(t Triple) *Graph {
	kept := g.triples[:0]
	for _, have := range g.triples {
		if have != t {
			kept = append(kept, have)
		}
	}
	removed := len(g.triples) - len(kept)
	g.triples = kept
	if removed > 0 {
		g.log.Debug().Int("removed", removed).Msg("triples removed")
	}
	return g
}

// Triples returns the triples matching the pattern, in insertion order.
func (g *Graph) Triples(p Pattern) []Triple {
	var out []Triple
	for _, t := range g.triples {
		if p.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// All returns a snapshot of every triple in insertion order. This is the
// stable iteration the serialization layer consumes.
func (g *Graph) All() []Triple {
	out := make([]Triple, len(g.triples))
	copy(out, g.triples)
	return out
}

// Len returns the number of triples.
func (g *Graph) Len() int {
	return len(g.triples)
}

// NewBlankNode mints a blank node identifier unique within this process.
// The identifier carries no meaning outside the graph's lifetime.
func (g *Graph) NewBlankNode() quad.BNode {
	return quad.BNode(uuid.NewString())
}
