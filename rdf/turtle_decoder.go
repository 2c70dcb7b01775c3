package rdf

import (
	"fmt"
	"io"
	"net/url"
	"strings"
	"unicode/utf8"
)

// DefaultMaxTurtleBytes bounds the size of a Turtle document read into memory.
const DefaultMaxTurtleBytes = 32 << 20

type turtleDecoder struct {
	reader io.Reader
	queue  []Triple
	loaded bool
	err    error
}

func newTurtleDecoder(r io.Reader) Decoder {
	return &turtleDecoder{reader: r}
}

func (d *turtleDecoder) Next() (Triple, error) {
	if !d.loaded {
		d.loaded = true
		d.load()
	}
	if len(d.queue) > 0 {
		next := d.queue[0]
		d.queue = d.queue[1:]
		return next, nil
	}
	if d.err != nil {
		return Triple{}, d.err
	}
	return Triple{}, io.EOF
}

func (d *turtleDecoder) Close() error {
	return nil
}

// load parses the whole document. Triples parsed before an error are still delivered.
func (d *turtleDecoder) load() {
	data, err := io.ReadAll(io.LimitReader(d.reader, DefaultMaxTurtleBytes+1))
	if err != nil {
		d.err = err
		return
	}
	if len(data) > DefaultMaxTurtleBytes {
		d.err = &ParseError{Format: FormatTurtle, Err: fmt.Errorf("document exceeds %d bytes", DefaultMaxTurtleBytes)}
		return
	}
	p := &turtleParser{input: string(data), prefixes: map[string]string{}}
	for {
		p.skipWS()
		if p.eof() {
			break
		}
		if err := p.parseStatement(); err != nil {
			line, column := p.position()
			d.err = wrapParseError(FormatTurtle, p.statementExcerpt(), line, column, err)
			break
		}
	}
	d.queue = p.triples
}

type turtleParser struct {
	input    string
	pos      int
	stmt     int
	prefixes map[string]string
	baseIRI  string
	bnodes   blankNodeGenerator
	labels   map[string]BlankNode
	triples  []Triple
}

func (p *turtleParser) eof() bool { return p.pos >= len(p.input) }

func (p *turtleParser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.input[p.pos]
}

func (p *turtleParser) hasPrefix(s string) bool {
	return strings.HasPrefix(p.input[p.pos:], s)
}

func (p *turtleParser) hasPrefixFold(s string) bool {
	return len(p.input)-p.pos >= len(s) && strings.EqualFold(p.input[p.pos:p.pos+len(s)], s)
}

func (p *turtleParser) skipWS() {
	for !p.eof() {
		switch ch := p.input[p.pos]; ch {
		case ' ', '\t', '\r', '\n':
			p.pos++
		case '#':
			for !p.eof() && p.input[p.pos] != '\n' {
				p.pos++
			}
		default:
			return
		}
	}
}

func (p *turtleParser) expect(ch byte) error {
	p.skipWS()
	if p.peek() != ch {
		return p.errorf("expected '%c'", ch)
	}
	p.pos++
	return nil
}

func (p *turtleParser) position() (int, int) {
	consumed := p.input[:min(p.pos, len(p.input))]
	line := strings.Count(consumed, "\n") + 1
	column := len(consumed) - strings.LastIndexByte(consumed, '\n')
	return line, column
}

func (p *turtleParser) statementExcerpt() string {
	end := strings.IndexByte(p.input[p.stmt:], '\n')
	if end < 0 {
		return strings.TrimSpace(p.input[p.stmt:])
	}
	return strings.TrimSpace(p.input[p.stmt : p.stmt+end])
}

func (p *turtleParser) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("turtle: "+format, args...)
}

func (p *turtleParser) emit(s Term, pred IRI, o Term) {
	p.triples = append(p.triples, Triple{S: s, P: pred, O: o})
}

func (p *turtleParser) parseStatement() error {
	p.stmt = p.pos
	switch {
	case p.hasPrefix("@prefix"):
		p.pos += len("@prefix")
		return p.parsePrefix(true)
	case p.hasPrefix("@base"):
		p.pos += len("@base")
		return p.parseBase(true)
	case p.hasPrefixFold("PREFIX") && p.isKeywordEnd(len("PREFIX")):
		p.pos += len("PREFIX")
		return p.parsePrefix(false)
	case p.hasPrefixFold("BASE") && p.isKeywordEnd(len("BASE")):
		p.pos += len("BASE")
		return p.parseBase(false)
	}
	propertyList := p.peek() == '['
	subject, err := p.parseSubject()
	if err != nil {
		return err
	}
	p.skipWS()
	if propertyList && p.peek() == '.' {
		// a bare blank node property list is a complete statement
		p.pos++
		return nil
	}
	if err := p.parsePredicateObjectList(subject, '.'); err != nil {
		return err
	}
	return p.expect('.')
}

func (p *turtleParser) isKeywordEnd(n int) bool {
	if p.pos+n >= len(p.input) {
		return true
	}
	ch := p.input[p.pos+n]
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func (p *turtleParser) parsePrefix(atForm bool) error {
	p.skipWS()
	start := p.pos
	for !p.eof() && p.input[p.pos] != ':' {
		p.pos++
	}
	if p.eof() {
		return p.errorf("expected ':' in prefix declaration")
	}
	prefix := strings.TrimSpace(p.input[start:p.pos])
	p.pos++
	p.skipWS()
	iri, err := p.parseIRIRef()
	if err != nil {
		return err
	}
	p.prefixes[prefix] = iri.Value
	if atForm {
		return p.expect('.')
	}
	return nil
}

func (p *turtleParser) parseBase(atForm bool) error {
	p.skipWS()
	iri, err := p.parseIRIRef()
	if err != nil {
		return err
	}
	p.baseIRI = iri.Value
	if atForm {
		return p.expect('.')
	}
	return nil
}

func (p *turtleParser) parseSubject() (Term, error) {
	p.skipWS()
	switch {
	case p.peek() == '[':
		return p.parseBlankNodePropertyList()
	case p.peek() == '(':
		return p.parseCollection()
	case p.hasPrefix("_:"):
		return p.parseBlankNodeLabel()
	default:
		return p.parseIRI()
	}
}

func (p *turtleParser) parsePredicateObjectList(subject Term, terminator byte) error {
	for {
		p.skipWS()
		predicate, err := p.parseVerb()
		if err != nil {
			return err
		}
		for {
			object, err := p.parseObject()
			if err != nil {
				return err
			}
			p.emit(subject, predicate, object)
			p.skipWS()
			if p.peek() != ',' {
				break
			}
			p.pos++
		}
		p.skipWS()
		if p.peek() != ';' {
			return nil
		}
		for p.peek() == ';' {
			p.pos++
			p.skipWS()
		}
		if p.peek() == terminator {
			return nil
		}
	}
}

func (p *turtleParser) parseVerb() (IRI, error) {
	if p.peek() == 'a' && p.pos+1 < len(p.input) && isTurtleWS(p.input[p.pos+1]) {
		p.pos++
		return RDFType, nil
	}
	return p.parseIRI()
}

func (p *turtleParser) parseObject() (Term, error) {
	p.skipWS()
	ch := p.peek()
	switch {
	case ch == '[':
		return p.parseBlankNodePropertyList()
	case ch == '(':
		return p.parseCollection()
	case p.hasPrefix("_:"):
		return p.parseBlankNodeLabel()
	case ch == '"' || ch == '\'':
		return p.parseLiteral()
	case ch == '+' || ch == '-' || ch == '.' || (ch >= '0' && ch <= '9'):
		return p.parseNumber()
	case p.hasPrefix("true") && p.isLiteralEnd(4):
		p.pos += 4
		return Literal{Lexical: "true", Datatype: IRI{Value: XSDNS + "boolean"}}, nil
	case p.hasPrefix("false") && p.isLiteralEnd(5):
		p.pos += 5
		return Literal{Lexical: "false", Datatype: IRI{Value: XSDNS + "boolean"}}, nil
	default:
		return p.parseIRI()
	}
}

func (p *turtleParser) isLiteralEnd(n int) bool {
	if p.pos+n >= len(p.input) {
		return true
	}
	ch := p.input[p.pos+n]
	return isTurtleWS(ch) || strings.IndexByte(".,;])#", ch) >= 0
}

func (p *turtleParser) parseBlankNodePropertyList() (Term, error) {
	p.pos++
	node := p.bnodes.next()
	p.skipWS()
	if p.peek() == ']' {
		p.pos++
		return node, nil
	}
	if err := p.parsePredicateObjectList(node, ']'); err != nil {
		return nil, err
	}
	return node, p.expect(']')
}

func (p *turtleParser) parseCollection() (Term, error) {
	p.pos++
	var items []Term
	for {
		p.skipWS()
		if p.eof() {
			return nil, p.errorf("unterminated collection")
		}
		if p.peek() == ')' {
			p.pos++
			break
		}
		item, err := p.parseObject()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if len(items) == 0 {
		return IRI{Value: RDFNS + "nil"}, nil
	}
	head := p.bnodes.next()
	current := head
	for i, item := range items {
		p.emit(current, IRI{Value: RDFNS + "first"}, item)
		if i == len(items)-1 {
			p.emit(current, IRI{Value: RDFNS + "rest"}, IRI{Value: RDFNS + "nil"})
			break
		}
		next := p.bnodes.next()
		p.emit(current, IRI{Value: RDFNS + "rest"}, next)
		current = next
	}
	return head, nil
}

func (p *turtleParser) parseBlankNodeLabel() (Term, error) {
	p.pos += 2
	start := p.pos
	for !p.eof() && isPNChar(p.input[p.pos]) {
		p.pos++
	}
	for p.pos > start && p.input[p.pos-1] == '.' {
		p.pos--
	}
	if start == p.pos {
		return nil, p.errorf("blank node label missing")
	}
	label := p.input[start:p.pos]
	if p.labels == nil {
		p.labels = map[string]BlankNode{}
	}
	if node, ok := p.labels[label]; ok {
		return node, nil
	}
	node := BlankNode{ID: label}
	p.labels[label] = node
	return node, nil
}

func (p *turtleParser) parseIRI() (IRI, error) {
	p.skipWS()
	if p.peek() == '<' {
		return p.parseIRIRef()
	}
	return p.parsePrefixedName()
}

func (p *turtleParser) parseIRIRef() (IRI, error) {
	if p.peek() != '<' {
		return IRI{}, p.errorf("expected IRI")
	}
	end := strings.IndexByte(p.input[p.pos:], '>')
	if end < 0 {
		return IRI{}, p.errorf("unterminated IRI")
	}
	raw := p.input[p.pos+1 : p.pos+end]
	p.pos += end + 1
	value, err := unescapeString(raw)
	if err != nil {
		return IRI{}, p.errorf("%v", err)
	}
	return IRI{Value: p.resolve(value)}, nil
}

func (p *turtleParser) resolve(ref string) string {
	if p.baseIRI == "" {
		return ref
	}
	base, err := url.Parse(p.baseIRI)
	if err != nil {
		return ref
	}
	rel, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return base.ResolveReference(rel).String()
}

func (p *turtleParser) parsePrefixedName() (IRI, error) {
	start := p.pos
	for !p.eof() && p.input[p.pos] != ':' && isPNChar(p.input[p.pos]) {
		p.pos++
	}
	if p.peek() != ':' {
		p.pos = start
		return IRI{}, p.errorf("expected IRI or prefixed name")
	}
	prefix := p.input[start:p.pos]
	p.pos++
	ns, ok := p.prefixes[prefix]
	if !ok {
		return IRI{}, p.errorf("undefined prefix %q", prefix)
	}
	var local strings.Builder
	for !p.eof() {
		ch := p.input[p.pos]
		if ch == '\\' && p.pos+1 < len(p.input) {
			local.WriteByte(p.input[p.pos+1])
			p.pos += 2
			continue
		}
		if !isPNChar(ch) && ch != ':' {
			break
		}
		local.WriteByte(ch)
		p.pos++
	}
	name := local.String()
	// trailing dots belong to the statement
	for strings.HasSuffix(name, ".") {
		name = name[:len(name)-1]
		p.pos--
	}
	return IRI{Value: ns + name}, nil
}

func (p *turtleParser) parseLiteral() (Term, error) {
	quote := p.input[p.pos]
	long := strings.Repeat(string(quote), 3)
	var raw string
	if p.hasPrefix(long) {
		p.pos += 3
		end := p.findLongEnd(long)
		if end < 0 {
			return nil, p.errorf("unterminated long string")
		}
		raw = p.input[p.pos:end]
		p.pos = end + 3
	} else {
		p.pos++
		start := p.pos
		for !p.eof() && p.input[p.pos] != quote {
			if p.input[p.pos] == '\\' {
				p.pos++
			} else if p.input[p.pos] == '\n' {
				return nil, p.errorf("newline in short string")
			}
			p.pos++
		}
		if p.eof() {
			return nil, p.errorf("unterminated string")
		}
		raw = p.input[start:p.pos]
		p.pos++
	}
	lexical, err := unescapeString(raw)
	if err != nil {
		return nil, p.errorf("%v", err)
	}
	if p.peek() == '@' {
		p.pos++
		start := p.pos
		for !p.eof() && (isAlnum(p.input[p.pos]) || p.input[p.pos] == '-') {
			p.pos++
		}
		if start == p.pos {
			return nil, p.errorf("empty language tag")
		}
		return Literal{Lexical: lexical, Lang: p.input[start:p.pos]}, nil
	}
	if p.hasPrefix("^^") {
		p.pos += 2
		datatype, err := p.parseIRI()
		if err != nil {
			return nil, err
		}
		return Literal{Lexical: lexical, Datatype: datatype}, nil
	}
	return Literal{Lexical: lexical}, nil
}

func (p *turtleParser) findLongEnd(long string) int {
	for i := p.pos; i+3 <= len(p.input); i++ {
		if p.input[i] == '\\' {
			i++
			continue
		}
		if strings.HasPrefix(p.input[i:], long) {
			// a quote directly before the closing delimiter is content
			for i+3 < len(p.input) && p.input[i+3] == long[0] {
				i++
			}
			return i
		}
	}
	return -1
}

func (p *turtleParser) parseNumber() (Term, error) {
	start := p.pos
	if p.peek() == '+' || p.peek() == '-' {
		p.pos++
	}
	digits := func() int {
		n := 0
		for !p.eof() && p.input[p.pos] >= '0' && p.input[p.pos] <= '9' {
			p.pos++
			n++
		}
		return n
	}
	datatype := "integer"
	intDigits := digits()
	if p.peek() == '.' && p.pos+1 < len(p.input) && p.input[p.pos+1] >= '0' && p.input[p.pos+1] <= '9' {
		p.pos++
		digits()
		datatype = "decimal"
	} else if intDigits == 0 {
		return nil, p.errorf("invalid number")
	}
	if p.peek() == 'e' || p.peek() == 'E' {
		p.pos++
		if p.peek() == '+' || p.peek() == '-' {
			p.pos++
		}
		if digits() == 0 {
			return nil, p.errorf("invalid exponent")
		}
		datatype = "double"
	}
	return Literal{Lexical: p.input[start:p.pos], Datatype: IRI{Value: XSDNS + datatype}}, nil
}

func isTurtleWS(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n'
}

func isAlnum(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9')
}

// isPNChar accepts ASCII name characters plus any non-ASCII byte, which covers
// the PN_CHARS ranges of UTF-8 encoded input.
func isPNChar(ch byte) bool {
	if ch >= utf8.RuneSelf {
		return true
	}
	return isAlnum(ch) || ch == '_' || ch == '-' || ch == '.'
}
