package rdf

import (
	"context"
	"fmt"
	"io"
)

// Decoder streams RDF triples from an input.
type Decoder interface {
	Next() (Triple, error)
	Close() error
}

// TripleHandler processes triples in push mode.
type TripleHandler func(Triple) error

// NewDecoder creates a decoder for the specified format.
func NewDecoder(r io.Reader, format Format) (Decoder, error) {
	switch format {
	case FormatTurtle:
		return newTurtleDecoder(r), nil
	case FormatNTriples:
		return newNTriplesDecoder(r), nil
	case FormatRDFXML:
		return newRDFXMLDecoder(r), nil
	default:
		return nil, ErrUnsupportedFormat
	}
}

// Parse decodes r and streams every triple to handler.
// If ctx is nil, context.Background() is used.
func Parse(ctx context.Context, r io.Reader, format Format, handler TripleHandler) error {
	if ctx == nil {
		ctx = context.Background()
	}
	dec, err := NewDecoder(r, format)
	if err != nil {
		return err
	}
	defer dec.Close()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		triple, err := dec.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := handler(triple); err != nil {
			return err
		}
	}
}

// blankNodeGenerator hands out document-scoped blank node IDs.
type blankNodeGenerator struct {
	counter int
}

func (g *blankNodeGenerator) next() BlankNode {
	g.counter++
	return BlankNode{ID: fmt.Sprintf("b%d", g.counter)}
}
