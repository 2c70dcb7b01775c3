package rdf

import (
	"io"
	"strings"
)

// Graph is an ordered set of triples. Duplicates are dropped on Add.
// A Graph is not safe for concurrent mutation.
type Graph struct {
	triples []Triple
	index   map[string]struct{}
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{index: map[string]struct{}{}}
}

// Add appends t unless the graph already holds it. It reports whether t was added.
func (g *Graph) Add(t Triple) bool {
	key := t.String()
	if _, ok := g.index[key]; ok {
		return false
	}
	g.index[key] = struct{}{}
	g.triples = append(g.triples, t)
	return true
}

// Len returns the number of triples.
func (g *Graph) Len() int { return len(g.triples) }

// Triples returns a copy of the triples in insertion order.
func (g *Graph) Triples() []Triple {
	out := make([]Triple, len(g.triples))
	copy(out, g.triples)
	return out
}

// Match returns the triples matching the pattern. A nil term or empty predicate is a wildcard.
func (g *Graph) Match(s Term, p IRI, o Term) []Triple {
	var out []Triple
	for _, t := range g.triples {
		if s != nil && t.S != s {
			continue
		}
		if p.Value != "" && t.P != p {
			continue
		}
		if o != nil && t.O != o {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Encode writes the graph in format. Triples are grouped by subject in order of first appearance.
func (g *Graph) Encode(w io.Writer, format Format, opts ...EncodeOption) error {
	enc, err := NewEncoder(w, format, opts...)
	if err != nil {
		return err
	}
	for _, t := range g.grouped() {
		if err := enc.Write(t); err != nil {
			return err
		}
	}
	return enc.Close()
}

// String returns the graph as N-Triples in Encode order. Triples no encoder
// can represent are left out.
func (g *Graph) String() string {
	var b strings.Builder
	for _, t := range g.grouped() {
		if checkTriple(t) != nil {
			continue
		}
		b.WriteString(t.String())
		b.WriteByte('\n')
	}
	return b.String()
}

func (g *Graph) grouped() []Triple {
	var order []Term
	buckets := map[Term][]Triple{}
	for _, t := range g.triples {
		if _, ok := buckets[t.S]; !ok {
			order = append(order, t.S)
		}
		buckets[t.S] = append(buckets[t.S], t)
	}
	out := make([]Triple, 0, len(g.triples))
	for _, s := range order {
		out = append(out, buckets[s]...)
	}
	return out
}
