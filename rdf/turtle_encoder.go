package rdf

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
)

var turtleNumeric = map[string]*regexp.Regexp{
	XSDNS + "integer": regexp.MustCompile(`^[+-]?[0-9]+$`),
	XSDNS + "decimal": regexp.MustCompile(`^[+-]?[0-9]*\.[0-9]+$`),
}

// turtleEncoder writes Turtle, grouping consecutive triples that share a subject.
type turtleEncoder struct {
	writer  *bufio.Writer
	err     error
	started bool
	closed  bool
	opts    EncodeOptions
	subject Term
}

func newTurtleEncoder(w io.Writer, opts EncodeOptions) Encoder {
	if opts.Indent == "" {
		opts.Indent = "    "
	}
	return &turtleEncoder{writer: bufio.NewWriter(w), opts: opts}
}

func (e *turtleEncoder) Write(t Triple) error {
	if e.err != nil {
		return e.err
	}
	if e.closed {
		return ErrWriterClosed
	}
	if err := checkTriple(t); err != nil {
		return fmt.Errorf("turtle: %w", err)
	}
	if !e.started {
		if err := e.writeHeader(); err != nil {
			return err
		}
	}
	predicate := e.renderPredicate(t.P)
	object := e.renderTerm(t.O)
	var chunk string
	if e.subject != nil && e.subject == t.S {
		chunk = " ;\n" + e.opts.Indent + predicate + " " + object
	} else {
		if e.subject != nil {
			chunk = " .\n"
		}
		chunk += e.renderTerm(t.S) + " " + predicate + " " + object
		e.subject = t.S
	}
	return e.write(chunk)
}

func (e *turtleEncoder) Flush() error {
	if e.err != nil {
		return e.err
	}
	return e.writer.Flush()
}

func (e *turtleEncoder) Close() error {
	if e.closed {
		return e.err
	}
	e.closed = true
	if e.err != nil {
		return e.err
	}
	if e.subject != nil {
		if err := e.write(" .\n"); err != nil {
			return err
		}
	}
	return e.Flush()
}

func (e *turtleEncoder) write(s string) error {
	if _, err := e.writer.WriteString(s); err != nil {
		e.err = err
		return err
	}
	return nil
}

func (e *turtleEncoder) writeHeader() error {
	e.started = true
	if e.opts.BaseIRI != "" {
		if err := e.write("@base <" + e.opts.BaseIRI + "> .\n"); err != nil {
			return err
		}
	}
	for _, prefix := range sortedPrefixKeys(e.opts.Prefixes) {
		if err := e.write("@prefix " + prefix + ": <" + e.opts.Prefixes[prefix] + "> .\n"); err != nil {
			return err
		}
	}
	if e.opts.BaseIRI != "" || len(e.opts.Prefixes) > 0 {
		return e.write("\n")
	}
	return nil
}

func (e *turtleEncoder) renderPredicate(p IRI) string {
	if p == RDFType {
		return "a"
	}
	return e.renderIRI(p)
}

func (e *turtleEncoder) renderIRI(iri IRI) string {
	if qname, ok := abbreviateQName(iri.Value, e.opts.Prefixes); ok {
		return qname
	}
	return renderIRI(iri)
}

func (e *turtleEncoder) renderTerm(term Term) string {
	switch value := term.(type) {
	case IRI:
		return e.renderIRI(value)
	case BlankNode:
		return value.String()
	case Literal:
		if value.Lang != "" {
			return quoteLiteral(value.Lexical) + "@" + value.Lang
		}
		if value.Datatype.Value == "" || value.Datatype.Value == XSDNS+"string" {
			return quoteLiteral(value.Lexical)
		}
		if re, ok := turtleNumeric[value.Datatype.Value]; ok && re.MatchString(value.Lexical) {
			return value.Lexical
		}
		if value.Datatype.Value == XSDNS+"boolean" && (value.Lexical == "true" || value.Lexical == "false") {
			return value.Lexical
		}
		return quoteLiteral(value.Lexical) + "^^" + e.renderIRI(value.Datatype)
	default:
		return ""
	}
}
