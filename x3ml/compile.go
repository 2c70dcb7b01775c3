package x3ml

import (
	"fmt"

	"github.com/antchfx/xpath"

	"github.com/geoknoesis/x3mlmapper/rdf"
)

const (
	argXPath    = "xpath"
	argConstant = "constant"
)

type compiledMapping struct {
	domainPath string
	domain     *xpath.Expr
	target     compiledTarget
	links      []compiledLink
}

type compiledTarget struct {
	entity compiledEntity
	cond   *compiledCondition
}

type compiledEntity struct {
	variable string
	types    []rdf.IRI
	instance *compiledCall
	labels   []compiledCall
}

type compiledCall struct {
	name string
	args []compiledArg
}

type compiledArg struct {
	name     string
	constant string
	expr     *xpath.Expr
}

type compiledLink struct {
	relationPath  string
	relation      *xpath.Expr
	cond          *compiledCondition
	relationships []rdf.IRI
	intermediates []compiledEntity
	rangePath     string
	rangeNode     *xpath.Expr
	target        compiledTarget
}

// compiler turns a Definition into executable form, recording every problem it meets.
type compiler struct {
	prefixes map[string]string
	problems []string
}

func newCompiler(def *Definition) *compiler {
	return &compiler{prefixes: def.PrefixMap()}
}

func (c *compiler) problem(where, format string, args ...interface{}) {
	c.problems = append(c.problems, where+": "+fmt.Sprintf(format, args...))
}

func (c *compiler) xpath(where, expr string) *xpath.Expr {
	if expr == "" {
		c.problem(where, "empty XPath expression")
		return nil
	}
	compiled, err := xpath.CompileWithNS(expr, c.prefixes)
	if err != nil {
		c.problem(where, "invalid XPath %q: %v", expr, err)
		return nil
	}
	return compiled
}

func (c *compiler) name(where, name string) rdf.IRI {
	iri, err := expandName(name, c.prefixes)
	if err != nil {
		c.problem(where, "%v", err)
	}
	return iri
}

func (c *compiler) compile(def *Definition) []compiledMapping {
	mappings := make([]compiledMapping, 0, len(def.Mappings))
	for i, m := range def.Mappings {
		where := fmt.Sprintf("mapping[%d]", i)
		cm := compiledMapping{
			domainPath: m.Domain.SourceNode,
			domain:     c.xpath(where+".domain.source_node", m.Domain.SourceNode),
			target:     c.target(where+".domain", m.Domain.Target),
		}
		for j, link := range m.Links {
			cm.links = append(cm.links, c.link(fmt.Sprintf("%s.link[%d]", where, j), link))
		}
		mappings = append(mappings, cm)
	}
	return mappings
}

func (c *compiler) link(where string, link Link) compiledLink {
	tr := link.Path.TargetRelation
	cl := compiledLink{
		relationPath: link.Path.SourceRelation.Relation,
		relation:     c.xpath(where+".path.source_relation", link.Path.SourceRelation.Relation),
		cond:         c.condition(where+".path.target_relation.if", tr.If),
		rangePath:    link.Range.SourceNode,
		rangeNode:    c.xpath(where+".range.source_node", link.Range.SourceNode),
		target:       c.target(where+".range", link.Range.Target),
	}
	if len(tr.Relationships) == 0 {
		c.problem(where+".path.target_relation", "no relationship")
	}
	for k, rel := range tr.Relationships {
		cl.relationships = append(cl.relationships, c.name(fmt.Sprintf("%s.path.target_relation.relationship[%d]", where, k), rel))
	}
	if len(tr.Relationships) > 0 && len(tr.Entities) != len(tr.Relationships)-1 {
		c.problem(where+".path.target_relation", "%d relationships need %d intermediate entities, found %d",
			len(tr.Relationships), len(tr.Relationships)-1, len(tr.Entities))
	}
	for k, entity := range tr.Entities {
		cl.intermediates = append(cl.intermediates, c.entity(fmt.Sprintf("%s.path.target_relation.entity[%d]", where, k), entity))
	}
	return cl
}

func (c *compiler) target(where string, t Target) compiledTarget {
	return compiledTarget{
		entity: c.entity(where+".target_node.entity", t.Entity),
		cond:   c.condition(where+".target_node.if", t.If),
	}
}

func (c *compiler) entity(where string, e Entity) compiledEntity {
	ce := compiledEntity{variable: e.Variable}
	if len(e.Types) == 0 {
		c.problem(where, "no type")
	}
	for i, t := range e.Types {
		ce.types = append(ce.types, c.name(fmt.Sprintf("%s.type[%d]", where, i), t))
	}
	if e.InstanceGenerator != nil {
		call := c.call(where+".instance_generator", *e.InstanceGenerator)
		ce.instance = &call
	}
	for i, label := range e.LabelGenerators {
		ce.labels = append(ce.labels, c.call(fmt.Sprintf("%s.label_generator[%d]", where, i), label))
	}
	return ce
}

func (c *compiler) call(where string, g GeneratorCall) compiledCall {
	if g.Name == "" {
		c.problem(where, "generator name missing")
	}
	call := compiledCall{name: g.Name}
	for i, arg := range g.Args {
		argWhere := fmt.Sprintf("%s.arg[%d]", where, i)
		ca := compiledArg{name: arg.Name}
		switch arg.Type {
		case "", argXPath:
			ca.expr = c.xpath(argWhere, arg.Value)
		case argConstant:
			ca.constant = arg.Value
		default:
			c.problem(argWhere, "unknown argument type %q", arg.Type)
		}
		call.args = append(call.args, ca)
	}
	return call
}
