package x3ml

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/geoknoesis/x3mlmapper/rdf"
)

// Definition is a decoded X3ML mapping definition.
type Definition struct {
	XMLName    xml.Name    `xml:"x3ml"`
	Namespaces []Namespace `xml:"namespaces>namespace" validate:"dive"`
	Mappings   []Mapping   `xml:"mappings>mapping" validate:"required,min=1,dive"`
}

// Namespace binds a prefix to a namespace IRI.
type Namespace struct {
	Prefix string `xml:"prefix,attr" validate:"required"`
	URI    string `xml:"uri,attr" validate:"required"`
}

// Mapping is a domain with its links.
type Mapping struct {
	Domain Domain `xml:"domain"`
	Links  []Link `xml:"link" validate:"dive"`
}

// Domain selects the subjects of a mapping.
type Domain struct {
	SourceNode string `xml:"source_node" validate:"required"`
	Target     Target `xml:"target_node"`
}

// Target describes the entity generated for a source node.
type Target struct {
	Entity Entity     `xml:"entity"`
	If     *Condition `xml:"if"`
}

// Link connects a domain instance to range instances through a path.
type Link struct {
	Path  Path  `xml:"path"`
	Range Range `xml:"range"`
}

// Path pairs a source relation with the target relationships it produces.
type Path struct {
	SourceRelation SourceRelation `xml:"source_relation"`
	TargetRelation TargetRelation `xml:"target_relation"`
}

// SourceRelation selects relation nodes relative to the domain node.
type SourceRelation struct {
	Relation string `xml:"relation" validate:"required"`
}

// TargetRelation is a chain of relationships. Entities holds the
// intermediate nodes, one fewer than the relationships.
type TargetRelation struct {
	If            *Condition `xml:"if"`
	Relationships []string   `xml:"relationship" validate:"required,min=1,dive,required"`
	Entities      []Entity   `xml:"entity" validate:"dive"`
}

// Range selects the objects of a link relative to the relation node.
type Range struct {
	SourceNode string `xml:"source_node" validate:"required"`
	Target     Target `xml:"target_node"`
}

// Entity is a typed node in the output graph.
type Entity struct {
	Variable          string          `xml:"variable,attr"`
	Types             []string        `xml:"type" validate:"required,min=1,dive,required"`
	InstanceGenerator *GeneratorCall  `xml:"instance_generator"`
	LabelGenerators   []GeneratorCall `xml:"label_generator" validate:"dive"`
}

// GeneratorCall names a policy generator and its arguments.
type GeneratorCall struct {
	Name string `xml:"name,attr" validate:"required"`
	Args []Arg  `xml:"arg" validate:"dive"`
}

// Arg is a generator argument. Type is "xpath" (the default) or "constant".
type Arg struct {
	Name  string `xml:"name,attr" validate:"required"`
	Type  string `xml:"type,attr" validate:"omitempty,oneof=xpath constant"`
	Value string `xml:",chardata"`
}

// Condition is an X3ML if block. Exactly one member is expected to be set.
type Condition struct {
	Exists   *Predicate  `xml:"exists"`
	Equals   *Predicate  `xml:"equals"`
	Narrower *Predicate  `xml:"narrower"`
	Not      *Condition  `xml:"not>if"`
	And      []Condition `xml:"and>if" validate:"dive"`
	Or       []Condition `xml:"or>if" validate:"dive"`
}

// Predicate is an XPath test with an optional comparison value.
type Predicate struct {
	Value string `xml:"value,attr"`
	Path  string `xml:",chardata"`
}

var defaultNamespaces = map[string]string{
	"rdf":  rdf.RDFNS,
	"rdfs": rdf.RDFSNS,
	"xsd":  rdf.XSDNS,
	"skos": skosNS,
}

// DecodeDefinition reads an X3ML document.
func DecodeDefinition(r io.Reader) (*Definition, error) {
	var def Definition
	dec := xml.NewDecoder(r)
	dec.CharsetReader = rdf.CharsetReader
	if err := dec.Decode(&def); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDefinition, err)
	}
	for i := range def.Namespaces {
		def.Namespaces[i].Prefix = strings.TrimSpace(def.Namespaces[i].Prefix)
		def.Namespaces[i].URI = strings.TrimSpace(def.Namespaces[i].URI)
	}
	for i := range def.Mappings {
		def.Mappings[i].trim()
	}
	return &def, nil
}

// PrefixMap returns the declared namespaces plus the rdf, rdfs, xsd and skos defaults.
func (d *Definition) PrefixMap() map[string]string {
	out := make(map[string]string, len(d.Namespaces)+len(defaultNamespaces))
	for prefix, uri := range defaultNamespaces {
		out[prefix] = uri
	}
	for _, ns := range d.Namespaces {
		out[ns.Prefix] = ns.URI
	}
	return out
}

func (m *Mapping) trim() {
	m.Domain.SourceNode = strings.TrimSpace(m.Domain.SourceNode)
	m.Domain.Target.trim()
	for i := range m.Links {
		link := &m.Links[i]
		link.Path.SourceRelation.Relation = strings.TrimSpace(link.Path.SourceRelation.Relation)
		for j := range link.Path.TargetRelation.Relationships {
			link.Path.TargetRelation.Relationships[j] = strings.TrimSpace(link.Path.TargetRelation.Relationships[j])
		}
		for j := range link.Path.TargetRelation.Entities {
			link.Path.TargetRelation.Entities[j].trim()
		}
		link.Path.TargetRelation.If.trim()
		link.Range.SourceNode = strings.TrimSpace(link.Range.SourceNode)
		link.Range.Target.trim()
	}
}

func (t *Target) trim() {
	t.Entity.trim()
	t.If.trim()
}

func (e *Entity) trim() {
	e.Variable = strings.TrimSpace(e.Variable)
	for i := range e.Types {
		e.Types[i] = strings.TrimSpace(e.Types[i])
	}
	if e.InstanceGenerator != nil {
		e.InstanceGenerator.trim()
	}
	for i := range e.LabelGenerators {
		e.LabelGenerators[i].trim()
	}
}

func (g *GeneratorCall) trim() {
	g.Name = strings.TrimSpace(g.Name)
	for i := range g.Args {
		g.Args[i].Name = strings.TrimSpace(g.Args[i].Name)
		g.Args[i].Type = strings.TrimSpace(g.Args[i].Type)
		if g.Args[i].Type != argConstant {
			g.Args[i].Value = strings.TrimSpace(g.Args[i].Value)
		}
	}
}

func (c *Condition) trim() {
	if c == nil {
		return
	}
	for _, p := range []*Predicate{c.Exists, c.Equals, c.Narrower} {
		if p != nil {
			p.Path = strings.TrimSpace(p.Path)
		}
	}
	c.Not.trim()
	for i := range c.And {
		c.And[i].trim()
	}
	for i := range c.Or {
		c.Or[i].trim()
	}
}

// expandName resolves a prefixed name or absolute IRI against prefixes.
func expandName(name string, prefixes map[string]string) (rdf.IRI, error) {
	if strings.Contains(name, "://") || strings.HasPrefix(name, "urn:") {
		return rdf.IRI{Value: name}, nil
	}
	prefix, local, ok := strings.Cut(name, ":")
	if !ok {
		return rdf.IRI{}, fmt.Errorf("%w: %q has no prefix", ErrUndeclaredPrefix, name)
	}
	ns, ok := prefixes[prefix]
	if !ok {
		return rdf.IRI{}, fmt.Errorf("%w: %q", ErrUndeclaredPrefix, prefix)
	}
	return rdf.IRI{Value: ns + local}, nil
}
