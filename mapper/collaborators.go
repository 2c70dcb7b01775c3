package mapper

import (
	"context"
	"io"

	"github.com/antchfx/xmlquery"

	"github.com/geoknoesis/x3mlmapper/rdf"
)

// Factory validates mapping definitions and builds engines from them.
type Factory interface {
	// Validate returns the structural problems found in definition.
	// An empty result means the definition is valid.
	Validate(definition io.Reader) []string
	// Load builds an engine. thesaurus may be nil.
	Load(ctx context.Context, definition io.Reader, thesaurus *Thesaurus) (Engine, error)
}

// Thesaurus is an auxiliary SKOS dataset handed to Factory.Load.
type Thesaurus struct {
	Content io.Reader
	Format  rdf.Format
}

// Engine runs a loaded mapping definition against a source document.
// An Engine is built per request and is not shared between requests.
type Engine interface {
	Execute(ctx context.Context, doc *xmlquery.Node, generator Generator) (Output, error)
}

// Output is the product of an engine run.
type Output interface {
	// WriteAs serializes the output in format.
	WriteAs(w io.Writer, format rdf.Format) error
	// String returns the output as N-Triples.
	String() string
}

// Generator produces instance identifiers and labels.
type Generator interface {
	// Generate evaluates the named generator with resolved argument values.
	// namespaces maps the definition's prefixes to namespace IRIs.
	Generate(name string, args map[string]string, namespaces map[string]string) (rdf.Term, error)
}

// PolicyFactory loads generator policies.
type PolicyFactory interface {
	LoadPolicy(policy io.Reader, uuids UUIDSource) (Generator, error)
}

// UUIDSource hands out identifiers for generated instances.
type UUIDSource interface {
	Next() string
}
