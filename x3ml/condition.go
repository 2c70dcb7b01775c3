package x3ml

import (
	"strconv"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

type conditionKind int

const (
	condExists conditionKind = iota
	condEquals
	condNarrower
	condNot
	condAnd
	condOr
)

type compiledCondition struct {
	kind     conditionKind
	expr     *xpath.Expr
	value    string
	children []*compiledCondition
}

func (c *compiler) condition(where string, cond *Condition) *compiledCondition {
	if cond == nil {
		return nil
	}
	var out []*compiledCondition
	if cond.Exists != nil {
		out = append(out, &compiledCondition{kind: condExists, expr: c.xpath(where+".exists", cond.Exists.Path)})
	}
	if cond.Equals != nil {
		out = append(out, &compiledCondition{kind: condEquals, expr: c.xpath(where+".equals", cond.Equals.Path), value: cond.Equals.Value})
	}
	if cond.Narrower != nil {
		value := cond.Narrower.Value
		if iri, err := expandName(value, c.prefixes); err == nil {
			value = iri.Value
		}
		out = append(out, &compiledCondition{kind: condNarrower, expr: c.xpath(where+".narrower", cond.Narrower.Path), value: value})
	}
	if cond.Not != nil {
		out = append(out, &compiledCondition{kind: condNot, children: []*compiledCondition{c.condition(where+".not", cond.Not)}})
	}
	if len(cond.And) > 0 {
		and := &compiledCondition{kind: condAnd}
		for i := range cond.And {
			and.children = append(and.children, c.condition(where+".and["+strconv.Itoa(i)+"]", &cond.And[i]))
		}
		out = append(out, and)
	}
	if len(cond.Or) > 0 {
		or := &compiledCondition{kind: condOr}
		for i := range cond.Or {
			or.children = append(or.children, c.condition(where+".or["+strconv.Itoa(i)+"]", &cond.Or[i]))
		}
		out = append(out, or)
	}
	switch len(out) {
	case 0:
		c.problem(where, "empty condition")
		return nil
	case 1:
		return out[0]
	default:
		return &compiledCondition{kind: condAnd, children: out}
	}
}

// holds evaluates the condition with node as the context node. A nil condition holds.
func (c *compiledCondition) holds(node *xmlquery.Node, th *Thesaurus) bool {
	if c == nil {
		return true
	}
	switch c.kind {
	case condExists:
		return exists(c.expr, node)
	case condEquals:
		return evalString(c.expr, node) == c.value
	case condNarrower:
		return th.IsNarrower(evalString(c.expr, node), c.value)
	case condNot:
		return !c.children[0].holds(node, th)
	case condAnd:
		for _, child := range c.children {
			if !child.holds(node, th) {
				return false
			}
		}
		return true
	case condOr:
		for _, child := range c.children {
			if child.holds(node, th) {
				return true
			}
		}
		return false
	}
	return false
}

func exists(expr *xpath.Expr, node *xmlquery.Node) bool {
	switch v := expr.Evaluate(xmlquery.CreateXPathNavigator(node)).(type) {
	case *xpath.NodeIterator:
		return v.MoveNext()
	case bool:
		return v
	case string:
		return v != ""
	case float64:
		return v != 0
	}
	return false
}

// evalString returns the string value of expr, or of its first selected node.
func evalString(expr *xpath.Expr, node *xmlquery.Node) string {
	switch v := expr.Evaluate(xmlquery.CreateXPathNavigator(node)).(type) {
	case *xpath.NodeIterator:
		if v.MoveNext() {
			return v.Current().Value()
		}
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	}
	return ""
}
