package rdf

import (
	"bytes"
	"strings"
	"testing"
)

func TestRDFXMLDecodeNodes(t *testing.T) {
	input := `<?xml version="1.0"?>
<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#" xmlns:ex="http://example.org/">
  <ex:Person rdf:about="http://example.org/alice" ex:name="Alice" xml:lang="en">
    <ex:knows>
      <rdf:Description rdf:about="http://example.org/bob"/>
    </ex:knows>
    <ex:age rdf:datatype="http://www.w3.org/2001/XMLSchema#integer">30</ex:age>
    <ex:home rdf:resource="http://example.org/paris"/>
    <ex:address rdf:parseType="Resource">
      <ex:city>Paris</ex:city>
    </ex:address>
  </ex:Person>
</rdf:RDF>`
	g := decodeAll(t, input, FormatRDFXML)
	alice := IRI{Value: "http://example.org/alice"}
	checks := []Triple{
		{S: alice, P: RDFType, O: IRI{Value: "http://example.org/Person"}},
		{S: alice, P: IRI{Value: "http://example.org/name"}, O: Literal{Lexical: "Alice", Lang: "en"}},
		{S: alice, P: IRI{Value: "http://example.org/knows"}, O: IRI{Value: "http://example.org/bob"}},
		{S: alice, P: IRI{Value: "http://example.org/age"}, O: Literal{Lexical: "30", Datatype: IRI{Value: XSDNS + "integer"}}},
		{S: alice, P: IRI{Value: "http://example.org/home"}, O: IRI{Value: "http://example.org/paris"}},
	}
	for _, want := range checks {
		if len(g.Match(want.S, want.P, want.O)) != 1 {
			t.Fatalf("missing %s", want)
		}
	}
	cities := g.Match(nil, IRI{Value: "http://example.org/city"}, nil)
	if len(cities) != 1 {
		t.Fatalf("expected nested city triple, got %d", len(cities))
	}
	if _, ok := cities[0].S.(BlankNode); !ok {
		t.Fatalf("expected blank node subject for parseType Resource")
	}
}

func TestRDFXMLDecodeLatin1(t *testing.T) {
	input := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>\n" +
		"<rdf:RDF xmlns:rdf=\"http://www.w3.org/1999/02/22-rdf-syntax-ns#\" xmlns:ex=\"http://example.org/\">" +
		"<rdf:Description rdf:about=\"http://example.org/s\"><ex:p>caf\xe9</ex:p></rdf:Description></rdf:RDF>"
	g := decodeAll(t, input, FormatRDFXML)
	if len(g.Match(nil, IRI{Value: "http://example.org/p"}, Literal{Lexical: "café"})) != 1 {
		t.Fatalf("expected decoded latin-1 literal, got %v", g.Triples())
	}
}

func TestRDFXMLEncodeRoundTrip(t *testing.T) {
	g := NewGraph()
	s := IRI{Value: "http://example.org/s"}
	g.Add(Triple{S: s, P: RDFType, O: IRI{Value: "http://example.org/T"}})
	g.Add(Triple{S: s, P: IRI{Value: "http://example.org/p"}, O: Literal{Lexical: "a < b & c"}})
	g.Add(Triple{S: s, P: IRI{Value: "http://other.org/q"}, O: BlankNode{ID: "n1"}})
	g.Add(Triple{S: BlankNode{ID: "n1"}, P: RDFSLabel, O: Literal{Lexical: "n", Lang: "fr"}})

	var buf bytes.Buffer
	if err := g.Encode(&buf, FormatRDFXML, WithPrefixes(map[string]string{"ex": "http://example.org/"})); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `xmlns:ex="http://example.org/"`) {
		t.Fatalf("expected declared prefix on root:\n%s", out)
	}
	if !strings.Contains(out, `xmlns:ns0="http://other.org/"`) {
		t.Fatalf("expected generated prefix:\n%s", out)
	}
	back := decodeAll(t, out, FormatRDFXML)
	if back.Len() != g.Len() {
		t.Fatalf("expected %d triples, got %d:\n%s", g.Len(), back.Len(), out)
	}
	for _, triple := range g.Triples() {
		if len(back.Match(triple.S, triple.P, triple.O)) != 1 {
			t.Fatalf("missing %s after round trip:\n%s", triple, out)
		}
	}
}

func TestRDFXMLEncodeEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := NewGraph().Encode(&buf, FormatRDFXML); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<rdf:RDF xmlns:rdf=\"" + RDFNS + "\">\n</rdf:RDF>\n"
	if buf.String() != want {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
}
