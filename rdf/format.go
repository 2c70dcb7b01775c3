package rdf

import "strings"

// Format identifies RDF serialization formats.
type Format string

const (
	FormatTurtle   Format = "turtle"
	FormatNTriples Format = "ntriples"
	FormatRDFXML   Format = "rdfxml"
	FormatJSONLD   Format = "jsonld"
)

// ParseFormat normalizes a format string.
func ParseFormat(value string) (Format, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "turtle", "ttl", "text/turtle":
		return FormatTurtle, true
	case "ntriples", "n-triples", "nt", "application/n-triples":
		return FormatNTriples, true
	case "rdfxml", "rdf/xml", "rdf", "xml", "application/rdf+xml":
		return FormatRDFXML, true
	case "jsonld", "json-ld", "json", "application/ld+json":
		return FormatJSONLD, true
	default:
		return "", false
	}
}

// MediaType returns the IANA media type of the format.
func (f Format) MediaType() string {
	switch f {
	case FormatTurtle:
		return "text/turtle"
	case FormatNTriples:
		return "application/n-triples"
	case FormatRDFXML:
		return "application/rdf+xml"
	case FormatJSONLD:
		return "application/ld+json"
	default:
		return "application/octet-stream"
	}
}
