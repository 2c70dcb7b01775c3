// Package rdf provides the compact RDF model used by the mapper together with
// streaming encoders and decoders for the formats the service speaks.
//
// It focuses on small, predictable I/O:
//   - Encode: NewEncoder() returns a push-style encoder for Turtle, N-Triples,
//     RDF/XML and JSON-LD.
//   - Decode: NewDecoder() returns a pull-style decoder for Turtle, N-Triples
//     and RDF/XML. Decoders are used to load thesauri.
//   - Graph collects triples in insertion order without duplicates and
//     encodes them with subjects grouped together.
//
// Example (encoding a graph):
//
//	g := rdf.NewGraph()
//	g.Add(rdf.Triple{S: rdf.IRI{Value: "http://example.org/s"}, P: rdf.RDFType, O: rdf.IRI{Value: "http://example.org/T"}})
//	if err := g.Encode(os.Stdout, rdf.FormatTurtle, rdf.WithPrefixes(map[string]string{"ex": "http://example.org/"})); err != nil {
//	    // handle error
//	}
//
// Example (decoding triples):
//
//	dec, err := rdf.NewDecoder(strings.NewReader(input), rdf.FormatNTriples)
//	if err != nil {
//	    // handle error
//	}
//	defer dec.Close()
//
//	for {
//	    triple, err := dec.Next()
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        // handle error
//	    }
//	    // process triple.S, triple.P, triple.O
//	}
//
// For unsupported formats, NewEncoder and NewDecoder return ErrUnsupportedFormat.
package rdf
