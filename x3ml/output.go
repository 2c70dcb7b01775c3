package x3ml

import (
	"io"

	"github.com/geoknoesis/x3mlmapper/rdf"
)

// Output is the graph produced by one engine run.
type Output struct {
	graph    *rdf.Graph
	prefixes map[string]string
}

// Graph returns the generated triples.
func (o *Output) Graph() *rdf.Graph {
	return o.graph
}

// WriteAs encodes the graph in format using the definition's namespaces.
func (o *Output) WriteAs(w io.Writer, format rdf.Format) error {
	return o.graph.Encode(w, format, rdf.WithPrefixes(o.prefixes))
}

// String returns the graph as N-Triples.
func (o *Output) String() string {
	return o.graph.String()
}
