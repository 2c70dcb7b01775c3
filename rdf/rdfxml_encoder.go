package rdf

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// rdfxmlEncoder writes one rdf:Description per run of triples sharing a subject.
type rdfxmlEncoder struct {
	writer   *bufio.Writer
	started  bool
	closed   bool
	err      error
	opts     EncodeOptions
	nsToPref map[string]string
	autoSeq  int
	subject  Term
}

func newRDFXMLEncoder(w io.Writer, opts EncodeOptions) Encoder {
	if opts.Indent == "" {
		opts.Indent = "  "
	}
	nsToPref := map[string]string{}
	for prefix, ns := range opts.Prefixes {
		if prefix == "rdf" {
			continue
		}
		nsToPref[ns] = prefix
	}
	nsToPref[RDFNS] = "rdf"
	return &rdfxmlEncoder{
		writer:   bufio.NewWriter(w),
		opts:     opts,
		nsToPref: nsToPref,
	}
}

func (e *rdfxmlEncoder) Write(t Triple) error {
	if e.err != nil {
		return e.err
	}
	if e.closed {
		return ErrWriterClosed
	}
	if err := checkTriple(t); err != nil {
		return fmt.Errorf("rdfxml: %w", err)
	}
	if !e.started {
		if err := e.writeHeader(); err != nil {
			return err
		}
	}
	predicate, predicateNS, err := e.predicateQName(t.P.Value)
	if err != nil {
		return err
	}
	if e.subject == nil || e.subject != t.S {
		if e.subject != nil {
			if err := e.write(e.opts.Indent + "</rdf:Description>\n"); err != nil {
				return err
			}
		}
		attrs, err := rdfxmlSubjectAttrs(t.S)
		if err != nil {
			return err
		}
		if err := e.write(e.opts.Indent + "<rdf:Description " + attrs + ">\n"); err != nil {
			return err
		}
		e.subject = t.S
	}
	indent := e.opts.Indent + e.opts.Indent
	var line string
	switch obj := t.O.(type) {
	case IRI:
		line = fmt.Sprintf(`%s<%s%s rdf:resource="%s"/>`+"\n", indent, predicate, predicateNS, escapeXML(obj.Value))
	case BlankNode:
		line = fmt.Sprintf(`%s<%s%s rdf:nodeID="%s"/>`+"\n", indent, predicate, predicateNS, escapeXML(obj.ID))
	case Literal:
		literalAttrs := ""
		if obj.Lang != "" {
			literalAttrs = ` xml:lang="` + escapeXML(obj.Lang) + `"`
		} else if obj.Datatype.Value != "" {
			literalAttrs = ` rdf:datatype="` + escapeXML(obj.Datatype.Value) + `"`
		}
		line = fmt.Sprintf(`%s<%s%s%s>%s</%s>`+"\n", indent, predicate, predicateNS, literalAttrs, escapeXML(obj.Lexical), predicate)
	default:
		return fmt.Errorf("rdfxml: %w: unsupported object type", ErrInvalidStatement)
	}
	return e.write(line)
}

func (e *rdfxmlEncoder) Flush() error {
	if e.err != nil {
		return e.err
	}
	return e.writer.Flush()
}

// Close terminates the document. An encoder that saw no triples still writes an empty rdf:RDF element.
func (e *rdfxmlEncoder) Close() error {
	if e.closed {
		return e.err
	}
	e.closed = true
	if e.err != nil {
		return e.err
	}
	if !e.started {
		if err := e.writeHeader(); err != nil {
			return err
		}
	}
	if e.subject != nil {
		if err := e.write(e.opts.Indent + "</rdf:Description>\n"); err != nil {
			return err
		}
	}
	if err := e.write("</rdf:RDF>\n"); err != nil {
		return err
	}
	return e.writer.Flush()
}

func (e *rdfxmlEncoder) write(s string) error {
	if _, err := e.writer.WriteString(s); err != nil {
		e.err = err
		return err
	}
	return nil
}

func (e *rdfxmlEncoder) writeHeader() error {
	e.started = true
	if err := e.write(`<?xml version="1.0" encoding="UTF-8"?>` + "\n"); err != nil {
		return err
	}
	root := `<rdf:RDF xmlns:rdf="` + RDFNS + `"`
	if e.opts.BaseIRI != "" {
		root += ` xml:base="` + escapeXML(e.opts.BaseIRI) + `"`
	}
	for _, prefix := range sortedPrefixKeys(e.opts.Prefixes) {
		if prefix == "rdf" {
			continue
		}
		ns := e.opts.Prefixes[prefix]
		if prefix == "" {
			root += ` xmlns="` + escapeXML(ns) + `"`
			continue
		}
		root += ` xmlns:` + prefix + `="` + escapeXML(ns) + `"`
	}
	return e.write(root + ">\n")
}

// predicateQName returns the element name for a predicate and, when the namespace
// was not declared on the root, an inline xmlns attribute for it.
func (e *rdfxmlEncoder) predicateQName(iri string) (string, string, error) {
	ns, local, ok := splitIRIForQName(iri)
	if !ok {
		return "", "", fmt.Errorf("rdfxml: unable to abbreviate predicate IRI %q", iri)
	}
	if prefix, ok := e.nsToPref[ns]; ok {
		if prefix == "" {
			return local, "", nil
		}
		if _, declared := e.opts.Prefixes[prefix]; declared || prefix == "rdf" {
			return prefix + ":" + local, "", nil
		}
		return prefix + ":" + local, ` xmlns:` + prefix + `="` + escapeXML(ns) + `"`, nil
	}
	prefix := fmt.Sprintf("ns%d", e.autoSeq)
	e.autoSeq++
	e.nsToPref[ns] = prefix
	return prefix + ":" + local, ` xmlns:` + prefix + `="` + escapeXML(ns) + `"`, nil
}

func rdfxmlSubjectAttrs(term Term) (string, error) {
	switch value := term.(type) {
	case IRI:
		return `rdf:about="` + escapeXML(value.Value) + `"`, nil
	case BlankNode:
		return `rdf:nodeID="` + escapeXML(value.ID) + `"`, nil
	default:
		return "", fmt.Errorf("rdfxml: %w: unsupported subject type", ErrInvalidStatement)
	}
}

var xmlEscaper = strings.NewReplacer(
	`&`, "&amp;",
	`<`, "&lt;",
	`>`, "&gt;",
	`"`, "&quot;",
	`'`, "&apos;",
)

func escapeXML(value string) string {
	return xmlEscaper.Replace(value)
}
