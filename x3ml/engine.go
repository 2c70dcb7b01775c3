package x3ml

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/geoknoesis/x3mlmapper/mapper"
	"github.com/geoknoesis/x3mlmapper/rdf"
)

// Engine executes a compiled definition.
type Engine struct {
	prefixes  map[string]string
	mappings  []compiledMapping
	thesaurus *Thesaurus
}

// Load decodes and compiles a definition. th may be nil.
func Load(ctx context.Context, definition io.Reader, th *mapper.Thesaurus) (*Engine, error) {
	def, err := DecodeDefinition(definition)
	if err != nil {
		return nil, err
	}
	c := newCompiler(def)
	mappings := c.compile(def)
	if len(c.problems) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDefinition, strings.Join(c.problems, "; "))
	}
	engine := &Engine{prefixes: c.prefixes, mappings: mappings}
	if th != nil && th.Content != nil {
		engine.thesaurus, err = LoadThesaurus(ctx, th.Content, th.Format)
		if err != nil {
			return nil, fmt.Errorf("x3ml: loading thesaurus: %w", err)
		}
	}
	return engine, nil
}

// Execute runs every mapping against doc and collects the generated triples.
func (e *Engine) Execute(ctx context.Context, doc *xmlquery.Node, generator mapper.Generator) (mapper.Output, error) {
	if doc == nil {
		return nil, &Error{Mapping: 0, Link: -1, Err: errors.New("no source document")}
	}
	if generator == nil {
		return nil, &Error{Mapping: 0, Link: -1, Err: errors.New("no generator policy")}
	}
	r := &run{
		ctx:       ctx,
		generator: generator,
		prefixes:  e.prefixes,
		thesaurus: e.thesaurus,
		graph:     rdf.NewGraph(),
	}
	for i, m := range e.mappings {
		if err := r.mapping(i, m, doc); err != nil {
			return nil, err
		}
	}
	return &Output{graph: r.graph, prefixes: e.prefixes}, nil
}

type run struct {
	ctx       context.Context
	generator mapper.Generator
	prefixes  map[string]string
	thesaurus *Thesaurus
	graph     *rdf.Graph
}

func (r *run) mapping(index int, m compiledMapping, doc *xmlquery.Node) error {
	for _, node := range xmlquery.QuerySelectorAll(doc, m.domain) {
		if err := r.ctx.Err(); err != nil {
			return err
		}
		if !m.target.cond.holds(node, r.thesaurus) {
			continue
		}
		vars := map[string]rdf.Term{}
		subject, err := r.entity(m.target.entity, node, vars)
		if err != nil {
			return &Error{Mapping: index, Link: -1, Node: m.domainPath, Err: err}
		}
		if subject.Kind() == rdf.TermLiteral {
			return &Error{Mapping: index, Link: -1, Node: m.domainPath, Err: errors.New("domain instance is a literal")}
		}
		for j, link := range m.links {
			if err := r.link(link, node, subject, vars); err != nil {
				return &Error{Mapping: index, Link: j, Node: link.relationPath, Err: err}
			}
		}
	}
	return nil
}

func (r *run) link(l compiledLink, domain *xmlquery.Node, subject rdf.Term, vars map[string]rdf.Term) error {
	for _, relation := range xmlquery.QuerySelectorAll(domain, l.relation) {
		if !l.cond.holds(relation, r.thesaurus) {
			continue
		}
		for _, node := range xmlquery.QuerySelectorAll(relation, l.rangeNode) {
			if !l.target.cond.holds(node, r.thesaurus) {
				continue
			}
			object, err := r.entity(l.target.entity, node, vars)
			if err != nil {
				return err
			}
			current := subject
			last := len(l.relationships) - 1
			for k, predicate := range l.relationships {
				if k == last {
					r.graph.Add(rdf.Triple{S: current, P: predicate, O: object})
					break
				}
				intermediate, err := r.entity(l.intermediates[k], relation, vars)
				if err != nil {
					return err
				}
				if intermediate.Kind() == rdf.TermLiteral {
					return errors.New("intermediate instance is a literal")
				}
				r.graph.Add(rdf.Triple{S: current, P: predicate, O: intermediate})
				current = intermediate
			}
		}
	}
	return nil
}

// entity generates the instance for node and emits its types and labels.
// Entities sharing a variable reuse the first instance generated for it.
func (r *run) entity(e compiledEntity, node *xmlquery.Node, vars map[string]rdf.Term) (rdf.Term, error) {
	if e.variable != "" {
		if term, ok := vars[e.variable]; ok {
			return term, nil
		}
	}
	term, err := r.generate(e.instance, node)
	if err != nil {
		return nil, err
	}
	if e.variable != "" {
		vars[e.variable] = term
	}
	if term.Kind() == rdf.TermLiteral {
		return term, nil
	}
	for _, t := range e.types {
		r.graph.Add(rdf.Triple{S: term, P: rdf.RDFType, O: t})
	}
	for i := range e.labels {
		label, err := r.generate(&e.labels[i], node)
		if err != nil {
			return nil, err
		}
		r.graph.Add(rdf.Triple{S: term, P: rdf.RDFSLabel, O: asLiteral(label)})
	}
	return term, nil
}

func (r *run) generate(call *compiledCall, node *xmlquery.Node) (rdf.Term, error) {
	if call == nil {
		return r.generator.Generate(GeneratorUUID, nil, r.prefixes)
	}
	args := make(map[string]string, len(call.args))
	for _, arg := range call.args {
		if arg.expr == nil {
			args[arg.name] = arg.constant
			continue
		}
		args[arg.name] = evalString(arg.expr, node)
	}
	term, err := r.generator.Generate(call.name, args, r.prefixes)
	if err != nil {
		return nil, fmt.Errorf("generator %s: %w", call.name, err)
	}
	return term, nil
}

func asLiteral(term rdf.Term) rdf.Literal {
	switch v := term.(type) {
	case rdf.Literal:
		return v
	case rdf.IRI:
		return rdf.Literal{Lexical: v.Value}
	default:
		return rdf.Literal{Lexical: term.String()}
	}
}

// Factory adapts Validate and Load to mapper.Factory.
type Factory struct{}

// NewFactory returns the reference engine factory.
func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Validate(definition io.Reader) []string {
	return Validate(definition)
}

func (f *Factory) Load(ctx context.Context, definition io.Reader, th *mapper.Thesaurus) (mapper.Engine, error) {
	engine, err := Load(ctx, definition, th)
	if err != nil {
		return nil, err
	}
	return engine, nil
}
