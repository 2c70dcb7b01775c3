package rdf

import (
	"bytes"
	"testing"
)

func TestGraphAddDeduplicates(t *testing.T) {
	g := NewGraph()
	if !g.Add(sampleTriple()) {
		t.Fatal("expected first add to succeed")
	}
	if g.Add(sampleTriple()) {
		t.Fatal("expected duplicate to be dropped")
	}
	if g.Len() != 1 {
		t.Fatalf("expected 1 triple, got %d", g.Len())
	}
}

func TestGraphTriplesReturnsCopy(t *testing.T) {
	g := NewGraph()
	g.Add(sampleTriple())
	triples := g.Triples()
	triples[0] = Triple{}
	if g.Triples()[0].IsZero() {
		t.Fatal("graph mutated through Triples result")
	}
}

func TestGraphEncodeGroupsBySubject(t *testing.T) {
	s := IRI{Value: "http://example.org/s"}
	o := IRI{Value: "http://example.org/o"}
	p := IRI{Value: "http://example.org/p"}
	g := NewGraph()
	g.Add(Triple{S: s, P: p, O: Literal{Lexical: "1"}})
	g.Add(Triple{S: o, P: p, O: Literal{Lexical: "2"}})
	g.Add(Triple{S: s, P: p, O: Literal{Lexical: "3"}})

	var buf bytes.Buffer
	if err := g.Encode(&buf, FormatNTriples); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "<http://example.org/s> <http://example.org/p> \"1\" .\n" +
		"<http://example.org/s> <http://example.org/p> \"3\" .\n" +
		"<http://example.org/o> <http://example.org/p> \"2\" .\n"
	if buf.String() != want {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
	if got := len(g.Match(s, IRI{}, nil)); got != 2 {
		t.Fatalf("expected 2 matches for subject, got %d", got)
	}
}

func TestGraphStringMatchesNTriplesEncoding(t *testing.T) {
	g := NewGraph()
	a := IRI{Value: "http://example.org/a"}
	b := IRI{Value: "http://example.org/b"}
	g.Add(Triple{S: a, P: RDFSLabel, O: Literal{Lexical: "A"}})
	g.Add(Triple{S: b, P: RDFSLabel, O: Literal{Lexical: "B"}})
	g.Add(Triple{S: a, P: RDFType, O: b})

	var buf bytes.Buffer
	if err := g.Encode(&buf, FormatNTriples); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.String() != buf.String() {
		t.Fatalf("String and Encode differ:\n%s\n%s", g.String(), buf.String())
	}
}

func TestGraphStringSkipsUnencodableTriples(t *testing.T) {
	g := NewGraph()
	g.Add(Triple{S: Literal{Lexical: "bad"}, P: RDFSLabel, O: Literal{Lexical: "x"}})
	g.Add(sampleTriple())

	var buf bytes.Buffer
	if err := g.Encode(&buf, FormatNTriples); err == nil {
		t.Fatal("expected encoder to reject a literal subject")
	}
	want := sampleTriple().String() + "\n"
	if got := g.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
