package mapper

import (
	"context"
	"errors"
	"io"

	"github.com/antchfx/xmlquery"
)

// DocumentParser parses source documents into namespace-aware trees.
type DocumentParser struct {
	resolver *Resolver
}

// NewDocumentParser creates a parser that fetches URLs through resolver.
func NewDocumentParser(resolver *Resolver) *DocumentParser {
	return &DocumentParser{resolver: resolver}
}

// DocumentFromString parses literal content and returns its document element.
func (p *DocumentParser) DocumentFromString(content string) (*xmlquery.Node, error) {
	res := StringResource(content)
	defer res.Close()
	root, err := documentElement(res)
	if err != nil {
		return nil, &ParseError{Identifier: content, Err: err}
	}
	return root, nil
}

// DocumentFromURL fetches and parses rawURL and returns its document element.
func (p *DocumentParser) DocumentFromURL(ctx context.Context, rawURL string) (*xmlquery.Node, error) {
	res, err := p.resolver.URLResource(ctx, rawURL)
	if err != nil {
		return nil, &ParseError{Identifier: rawURL, Err: err}
	}
	defer res.Close()
	root, err := documentElement(res)
	if err != nil {
		return nil, &ParseError{Identifier: rawURL, Err: err}
	}
	return root, nil
}

func documentElement(r io.Reader) (*xmlquery.Node, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, err
	}
	var root *xmlquery.Node
	for n := doc.FirstChild; n != nil; n = n.NextSibling {
		if n.Type != xmlquery.ElementNode {
			continue
		}
		if root != nil {
			return nil, errors.New("more than one document element")
		}
		root = n
	}
	if root == nil {
		return nil, errors.New("no document element")
	}
	return root, nil
}
