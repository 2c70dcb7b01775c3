package rdf

import (
	"io"
	"sort"
)

// Encoder streams RDF triples to an output.
type Encoder interface {
	Write(Triple) error
	Flush() error
	Close() error
}

// EncodeOptions configures encoders.
type EncodeOptions struct {
	// Prefixes maps prefix labels to namespace IRIs. The empty label is the default namespace.
	Prefixes map[string]string
	// BaseIRI is written as @base (Turtle), xml:base (RDF/XML) or used as the JSON-LD base.
	BaseIRI string
	// Indent is used for continuation lines; defaults to four spaces for Turtle and two for RDF/XML.
	Indent string
}

// EncodeOption configures encoder behavior using functional options.
type EncodeOption func(*EncodeOptions)

// WithPrefixes sets the namespace prefixes the encoder may use.
func WithPrefixes(prefixes map[string]string) EncodeOption {
	return func(opts *EncodeOptions) {
		opts.Prefixes = copyPrefixMap(prefixes)
	}
}

// WithBaseIRI sets the base IRI.
func WithBaseIRI(base string) EncodeOption {
	return func(opts *EncodeOptions) {
		opts.BaseIRI = base
	}
}

// WithIndent sets the indentation used for continuation lines.
func WithIndent(indent string) EncodeOption {
	return func(opts *EncodeOptions) {
		opts.Indent = indent
	}
}

// NewEncoder creates an encoder for the specified format.
func NewEncoder(w io.Writer, format Format, opts ...EncodeOption) (Encoder, error) {
	options := EncodeOptions{}
	for _, opt := range opts {
		opt(&options)
	}
	switch format {
	case FormatTurtle:
		return newTurtleEncoder(w, options), nil
	case FormatNTriples:
		return newNTriplesEncoder(w), nil
	case FormatRDFXML:
		return newRDFXMLEncoder(w, options), nil
	case FormatJSONLD:
		return newJSONLDEncoder(w, options), nil
	default:
		return nil, ErrUnsupportedFormat
	}
}

func copyPrefixMap(prefixes map[string]string) map[string]string {
	out := make(map[string]string, len(prefixes))
	for key, value := range prefixes {
		out[key] = value
	}
	return out
}

func sortedPrefixKeys(prefixes map[string]string) []string {
	keys := make([]string, 0, len(prefixes))
	for key := range prefixes {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func checkTriple(t Triple) error {
	if t.S == nil || t.P.Value == "" || t.O == nil {
		return ErrInvalidStatement
	}
	if t.S.Kind() == TermLiteral {
		return ErrInvalidStatement
	}
	return nil
}
