package rdf

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/ianaindex"
)

const xmlNS = "http://www.w3.org/XML/1998/namespace"

type rdfxmlDecoder struct {
	dec    *xml.Decoder
	queue  []Triple
	bnodes blankNodeGenerator
	err    error
	done   bool
}

func newRDFXMLDecoder(r io.Reader) Decoder {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = CharsetReader
	return &rdfxmlDecoder{dec: dec}
}

// CharsetReader decodes non UTF-8 documents using the IANA registry. It is
// meant for xml.Decoder.CharsetReader. ASCII input is passed through as is.
func CharsetReader(label string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "ascii", "us-ascii":
		return input, nil
	}
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported charset %q", label)
	}
	return enc.NewDecoder().Reader(input), nil
}

func (d *rdfxmlDecoder) Next() (Triple, error) {
	for {
		if len(d.queue) > 0 {
			next := d.queue[0]
			d.queue = d.queue[1:]
			return next, nil
		}
		if d.err != nil {
			return Triple{}, d.err
		}
		if d.done {
			return Triple{}, io.EOF
		}
		tok, err := d.dec.Token()
		if err == io.EOF {
			d.done = true
			continue
		}
		if err != nil {
			d.fail(err)
			continue
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if start.Name.Space == RDFNS && start.Name.Local == "RDF" {
			continue
		}
		if _, err := d.parseNode(start, attrValue(start.Attr, xmlNS, "lang")); err != nil {
			d.fail(err)
		}
	}
}

func (d *rdfxmlDecoder) Close() error {
	return nil
}

func (d *rdfxmlDecoder) fail(err error) {
	line, column := d.dec.InputPos()
	d.err = wrapParseError(FormatRDFXML, "", line, column, err)
}

func (d *rdfxmlDecoder) emit(s Term, p IRI, o Term) {
	d.queue = append(d.queue, Triple{S: s, P: p, O: o})
}

// parseNode consumes a node element and returns its subject.
func (d *rdfxmlDecoder) parseNode(start xml.StartElement, lang string) (Term, error) {
	if l := attrValue(start.Attr, xmlNS, "lang"); l != "" {
		lang = l
	}
	subject := d.subjectFromNode(start)
	if start.Name.Space != RDFNS || start.Name.Local != "Description" {
		d.emit(subject, RDFType, IRI{Value: start.Name.Space + start.Name.Local})
	}
	for _, attr := range start.Attr {
		if isSyntaxAttr(attr.Name) {
			continue
		}
		if attr.Name.Space == RDFNS && attr.Name.Local == "type" {
			d.emit(subject, RDFType, IRI{Value: attr.Value})
			continue
		}
		d.emit(subject, IRI{Value: attr.Name.Space + attr.Name.Local}, Literal{Lexical: attr.Value, Lang: lang})
	}
	return subject, d.parsePropertyElements(subject, lang)
}

func (d *rdfxmlDecoder) parsePropertyElements(subject Term, lang string) error {
	for {
		tok, err := d.dec.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if err := d.parseProperty(subject, t, lang); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}

func (d *rdfxmlDecoder) parseProperty(subject Term, start xml.StartElement, lang string) error {
	if l := attrValue(start.Attr, xmlNS, "lang"); l != "" {
		lang = l
	}
	pred := IRI{Value: start.Name.Space + start.Name.Local}
	if iri := attrValue(start.Attr, RDFNS, "resource"); iri != "" {
		d.emit(subject, pred, IRI{Value: iri})
		return d.dec.Skip()
	}
	if nodeID := attrValue(start.Attr, RDFNS, "nodeID"); nodeID != "" {
		d.emit(subject, pred, BlankNode{ID: nodeID})
		return d.dec.Skip()
	}
	if attrValue(start.Attr, RDFNS, "parseType") == "Resource" {
		object := d.bnodes.next()
		d.emit(subject, pred, object)
		return d.parsePropertyElements(object, lang)
	}
	datatype := attrValue(start.Attr, RDFNS, "datatype")
	var content strings.Builder
	var object Term
	for {
		tok, err := d.dec.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.CharData:
			content.Write(t)
		case xml.StartElement:
			if object != nil {
				return fmt.Errorf("rdfxml: property %s has more than one node element", pred.Value)
			}
			node, err := d.parseNode(t, lang)
			if err != nil {
				return err
			}
			object = node
		case xml.EndElement:
			if object == nil {
				literal := Literal{Lexical: content.String()}
				if datatype != "" {
					literal.Datatype = IRI{Value: datatype}
				} else {
					literal.Lang = lang
				}
				object = literal
			}
			d.emit(subject, pred, object)
			return nil
		}
	}
}

func (d *rdfxmlDecoder) subjectFromNode(el xml.StartElement) Term {
	if about := attrValue(el.Attr, RDFNS, "about"); about != "" {
		return IRI{Value: about}
	}
	if id := attrValue(el.Attr, RDFNS, "ID"); id != "" {
		return IRI{Value: "#" + id}
	}
	if nodeID := attrValue(el.Attr, RDFNS, "nodeID"); nodeID != "" {
		return BlankNode{ID: nodeID}
	}
	return d.bnodes.next()
}

func isSyntaxAttr(name xml.Name) bool {
	if name.Space == "xmlns" || (name.Space == "" && name.Local == "xmlns") || name.Space == xmlNS {
		return true
	}
	if name.Space != RDFNS {
		return false
	}
	switch name.Local {
	case "about", "ID", "nodeID", "resource", "datatype", "parseType":
		return true
	}
	return false
}

func attrValue(attrs []xml.Attr, space, local string) string {
	for _, attr := range attrs {
		if attr.Name.Space == space && attr.Name.Local == local {
			return attr.Value
		}
	}
	return ""
}
