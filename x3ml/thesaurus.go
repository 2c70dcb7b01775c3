package x3ml

import (
	"context"
	"io"

	"github.com/geoknoesis/x3mlmapper/rdf"
)

const skosNS = "http://www.w3.org/2004/02/skos/core#"

var (
	skosBroader  = rdf.IRI{Value: skosNS + "broader"}
	skosNarrower = rdf.IRI{Value: skosNS + "narrower"}
)

// Thesaurus answers hierarchy questions over SKOS concepts.
// A nil *Thesaurus knows no hierarchy: a concept is only narrower than itself.
type Thesaurus struct {
	broader map[string][]string
}

// LoadThesaurus decodes r in format and indexes its skos:broader and skos:narrower links.
func LoadThesaurus(ctx context.Context, r io.Reader, format rdf.Format) (*Thesaurus, error) {
	th := &Thesaurus{broader: map[string][]string{}}
	err := rdf.Parse(ctx, r, format, func(t rdf.Triple) error {
		s, sok := t.S.(rdf.IRI)
		o, ook := t.O.(rdf.IRI)
		if !sok || !ook {
			return nil
		}
		switch t.P {
		case skosBroader:
			th.broader[s.Value] = append(th.broader[s.Value], o.Value)
		case skosNarrower:
			th.broader[o.Value] = append(th.broader[o.Value], s.Value)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return th, nil
}

// IsNarrower reports whether concept equals ancestor or reaches it through skos:broader links.
func (th *Thesaurus) IsNarrower(concept, ancestor string) bool {
	if concept == ancestor {
		return true
	}
	if th == nil {
		return false
	}
	seen := map[string]bool{concept: true}
	queue := []string{concept}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, parent := range th.broader[current] {
			if parent == ancestor {
				return true
			}
			if !seen[parent] {
				seen[parent] = true
				queue = append(queue, parent)
			}
		}
	}
	return false
}
