package rdf

import "testing"

func TestLiteralString(t *testing.T) {
	cases := []struct {
		lit  Literal
		want string
	}{
		{Literal{Lexical: "v"}, `"v"`},
		{Literal{Lexical: "v", Lang: "en"}, `"v"@en`},
		{Literal{Lexical: "1", Datatype: IRI{Value: XSDNS + "integer"}}, `"1"^^<http://www.w3.org/2001/XMLSchema#integer>`},
		{Literal{Lexical: "a\"b\\c\nd"}, `"a\"b\\c\nd"`},
	}
	for _, c := range cases {
		if got := c.lit.String(); got != c.want {
			t.Fatalf("literal %#v: got %s, want %s", c.lit, got, c.want)
		}
	}
}

func TestTripleString(t *testing.T) {
	triple := Triple{S: BlankNode{ID: "b1"}, P: RDFType, O: IRI{Value: "http://example.org/T"}}
	want := "_:b1 <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://example.org/T> ."
	if got := triple.String(); got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
	if triple.IsZero() {
		t.Fatal("expected non-zero triple")
	}
	if !(Triple{}).IsZero() {
		t.Fatal("expected zero triple")
	}
}

func TestTermKinds(t *testing.T) {
	if (IRI{}).Kind() != TermIRI || (BlankNode{}).Kind() != TermBlankNode || (Literal{}).Kind() != TermLiteral {
		t.Fatal("unexpected term kind")
	}
}
