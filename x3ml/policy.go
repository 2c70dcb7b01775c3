package x3ml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"net/url"
	"regexp"
	"strings"

	"github.com/geoknoesis/x3mlmapper/mapper"
	"github.com/geoknoesis/x3mlmapper/rdf"
)

// Built-in generator names.
const (
	GeneratorUUID      = "UUID"
	GeneratorLiteral   = "Literal"
	GeneratorConstant  = "Constant"
	GeneratorURIorUUID = "URIorUUID"
)

const (
	argText     = "text"
	argLanguage = "language"
)

var placeholder = regexp.MustCompile(`\{([^{}]+)\}`)

type policyDocument struct {
	XMLName    xml.Name           `xml:"generator_policy"`
	Generators []patternGenerator `xml:"generator" validate:"dive"`
}

// patternGenerator builds a value by substituting {arg} placeholders in Pattern.
type patternGenerator struct {
	Name    string `xml:"name,attr" validate:"required"`
	Prefix  string `xml:"prefix,attr"`
	Type    string `xml:"type,attr" validate:"omitempty,oneof=uri literal"`
	Pattern string `xml:"pattern" validate:"required"`
}

// Policy resolves generator calls to terms.
type Policy struct {
	generators map[string]patternGenerator
	uuids      mapper.UUIDSource
}

// LoadPolicy reads a generator policy document. Empty content yields a policy
// with the built-in generators only. A nil uuids uses random identifiers.
func LoadPolicy(r io.Reader, uuids mapper.UUIDSource) (*Policy, error) {
	if uuids == nil {
		uuids = mapper.NewUUIDSource(0)
	}
	policy := &Policy{generators: map[string]patternGenerator{}, uuids: uuids}
	if r == nil {
		return policy, nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("x3ml: reading policy: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return policy, nil
	}
	var doc policyDocument
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = rdf.CharsetReader
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("x3ml: invalid generator policy: %w", err)
	}
	if problems := structProblems(&doc); len(problems) > 0 {
		return nil, fmt.Errorf("x3ml: invalid generator policy: %s", strings.Join(problems, "; "))
	}
	for _, g := range doc.Generators {
		g.Name = strings.TrimSpace(g.Name)
		g.Prefix = strings.TrimSpace(g.Prefix)
		g.Pattern = strings.TrimSpace(g.Pattern)
		if _, dup := policy.generators[g.Name]; dup {
			return nil, fmt.Errorf("x3ml: generator %q declared twice", g.Name)
		}
		policy.generators[g.Name] = g
	}
	return policy, nil
}

// Generate evaluates a generator. Policy generators take precedence over built-ins.
func (p *Policy) Generate(name string, args map[string]string, namespaces map[string]string) (rdf.Term, error) {
	if g, ok := p.generators[name]; ok {
		return g.generate(args, namespaces)
	}
	switch name {
	case GeneratorUUID:
		return rdf.IRI{Value: p.uuids.Next()}, nil
	case GeneratorLiteral:
		text, ok := args[argText]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingArgument, argText)
		}
		return rdf.Literal{Lexical: text, Lang: args[argLanguage]}, nil
	case GeneratorConstant:
		text, ok := args[argText]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingArgument, argText)
		}
		if iri, err := expandName(text, namespaces); err == nil {
			return iri, nil
		}
		return rdf.IRI{Value: text}, nil
	case GeneratorURIorUUID:
		if text := args[argText]; isAbsoluteURI(text) {
			return rdf.IRI{Value: text}, nil
		}
		return rdf.IRI{Value: p.uuids.Next()}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownGenerator, name)
}

func (g patternGenerator) generate(args map[string]string, namespaces map[string]string) (rdf.Term, error) {
	literal := g.Type == "literal"
	var missing string
	value := placeholder.ReplaceAllStringFunc(g.Pattern, func(m string) string {
		key := m[1 : len(m)-1]
		arg, ok := args[key]
		if !ok {
			missing = key
			return ""
		}
		if literal {
			return arg
		}
		return url.PathEscape(arg)
	})
	if missing != "" {
		return nil, fmt.Errorf("%w: %s", ErrMissingArgument, missing)
	}
	if literal {
		return rdf.Literal{Lexical: value, Lang: args[argLanguage]}, nil
	}
	if g.Prefix == "" {
		return rdf.IRI{Value: value}, nil
	}
	ns, ok := namespaces[g.Prefix]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUndeclaredPrefix, g.Prefix)
	}
	return rdf.IRI{Value: ns + value}, nil
}

func isAbsoluteURI(text string) bool {
	if text == "" || strings.ContainsAny(text, " \t\r\n") {
		return false
	}
	u, err := url.Parse(text)
	return err == nil && u.Scheme != ""
}

// PolicyFactory adapts LoadPolicy to mapper.PolicyFactory.
type PolicyFactory struct{}

// NewPolicyFactory returns the reference policy factory.
func NewPolicyFactory() PolicyFactory {
	return PolicyFactory{}
}

func (PolicyFactory) LoadPolicy(r io.Reader, uuids mapper.UUIDSource) (mapper.Generator, error) {
	policy, err := LoadPolicy(r, uuids)
	if err != nil {
		return nil, err
	}
	return policy, nil
}
