package rdf

import (
	"bytes"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
)

func TestJSONLDEncodeCompactsWithPrefixes(t *testing.T) {
	g := NewGraph()
	g.Add(sampleTriple())
	var buf bytes.Buffer
	if err := g.Encode(&buf, FormatJSONLD, WithPrefixes(map[string]string{"ex": "http://example.org/"})); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, buf.String())
	}
	if _, ok := doc["@context"]; !ok {
		t.Fatalf("expected @context in output:\n%s", buf.String())
	}
	if doc["ex:p"] != "v" {
		t.Fatalf("expected compacted property, got:\n%s", buf.String())
	}
}

func TestJSONLDEncodeExpandedWithoutPrefixes(t *testing.T) {
	g := NewGraph()
	g.Add(sampleTriple())
	var buf bytes.Buffer
	if err := g.Encode(&buf, FormatJSONLD); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), `"http://example.org/p"`) {
		t.Fatalf("expected full predicate IRI:\n%s", buf.String())
	}
}
