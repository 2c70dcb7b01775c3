package rdf

import (
	"errors"
	"io"
	"testing"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("write failed")
}

func sampleTriple() Triple {
	return Triple{S: IRI{Value: "http://example.org/s"}, P: IRI{Value: "http://example.org/p"}, O: Literal{Lexical: "v"}}
}

func TestNewEncoderUnsupportedFormat(t *testing.T) {
	if _, err := NewEncoder(io.Discard, Format("bogus")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	if _, err := NewDecoder(nil, FormatJSONLD); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat for JSON-LD decoding, got %v", err)
	}
}

func TestEncoderWriteAfterClose(t *testing.T) {
	for _, format := range []Format{FormatTurtle, FormatNTriples, FormatRDFXML, FormatJSONLD} {
		enc, err := NewEncoder(io.Discard, format)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := enc.Close(); err != nil {
			t.Fatalf("%s: unexpected close error: %v", format, err)
		}
		if err := enc.Write(sampleTriple()); !errors.Is(err, ErrWriterClosed) {
			t.Fatalf("%s: expected ErrWriterClosed, got %v", format, err)
		}
	}
}

func TestEncoderPropagatesWriterError(t *testing.T) {
	for _, format := range []Format{FormatTurtle, FormatNTriples, FormatRDFXML, FormatJSONLD} {
		enc, err := NewEncoder(failingWriter{}, format)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_ = enc.Write(sampleTriple())
		if err := enc.Close(); err == nil {
			t.Fatalf("%s: expected writer error on close", format)
		}
	}
}

func TestEncoderRejectsIncompleteTriple(t *testing.T) {
	for _, format := range []Format{FormatTurtle, FormatNTriples, FormatRDFXML, FormatJSONLD} {
		enc, err := NewEncoder(io.Discard, format)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := enc.Write(Triple{S: IRI{Value: "http://example.org/s"}}); !errors.Is(err, ErrInvalidStatement) {
			t.Fatalf("%s: expected ErrInvalidStatement, got %v", format, err)
		}
	}
}

func TestWithPrefixesCopiesMap(t *testing.T) {
	prefixes := map[string]string{"ex": "http://example.org/"}
	opts := EncodeOptions{}
	WithPrefixes(prefixes)(&opts)
	prefixes["ex"] = "http://changed.org/"
	if opts.Prefixes["ex"] != "http://example.org/" {
		t.Fatalf("expected prefixes to be copied")
	}
}

func TestAbbreviateQNamePrefersLongestNamespace(t *testing.T) {
	prefixes := map[string]string{
		"ex":  "http://example.org/",
		"exa": "http://example.org/a/",
	}
	got, ok := abbreviateQName("http://example.org/a/b", prefixes)
	if !ok || got != "exa:b" {
		t.Fatalf("got %q, %v", got, ok)
	}
	if _, ok := abbreviateQName("http://example.org/a/b.", prefixes); ok {
		t.Fatal("expected trailing dot local name to be rejected")
	}
}
