// Package tmx reads TMX translation memories into translation units and
// exposes the language-scoped views the term pipeline consumes.
package tmx

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/custodio78/termsuite-core/internal/domain"
)

// Namespace is the TMX 1.4 element namespace.
const Namespace = "http://www.lisa.org/tmx14"

const xmlNamespace = "http://www.w3.org/XML/1998/namespace"

// inlineCodes are TMX inline markup elements whose content is native code,
// not translatable text.
var inlineCodes = map[string]bool{
	"bpt": true,
	"ept": true,
	"it":  true,
	"ph":  true,
	"ut":  true,
}

// strategy is one way of locating tu/tuv/seg elements.
type strategy struct {
	name  string
	match func(n *xmlquery.Node, local string) bool
}

// strategies are tried in order; the first that yields a segment wins.
var strategies = []strategy{
	{
		name: "namespaced",
		match: func(n *xmlquery.Node, local string) bool {
			return n.Data == local && n.NamespaceURI == Namespace
		},
	},
	{
		name: "plain",
		match: func(n *xmlquery.Node, local string) bool {
			return n.Data == local && n.NamespaceURI == ""
		},
	},
}

// ParseFile parses the TMX document at path.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &domain.ParseError{Path: path, Err: err}
	}
	defer f.Close()

	doc, err := Parse(f)
	if err != nil {
		var pe *domain.ParseError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return nil, err
	}
	return doc, nil
}

// Parse reads a TMX document. Malformed markup yields a *domain.ParseError
// and no partial document. A well-formed document in which no strategy
// finds a segment yields an empty Document.
func Parse(r io.Reader) (*Document, error) {
	root, err := xmlquery.Parse(r)
	if err != nil {
		return nil, &domain.ParseError{Err: err}
	}
	if root == nil || firstElement(root) == nil {
		return nil, &domain.ParseError{Err: errors.New("no root element")}
	}

	for _, s := range strategies {
		units, segments := collectUnits(root, s)
		if segments > 0 {
			return &Document{Units: units, Strategy: s.name}, nil
		}
	}
	return &Document{}, nil
}

func collectUnits(root *xmlquery.Node, s strategy) ([]Unit, int) {
	var (
		units    []Unit
		segments int
	)
	for _, tu := range descendants(root, s, "tu") {
		var u Unit
		for _, tuv := range descendants(tu, s, "tuv") {
			// A variant without seg keeps its position with empty text.
			var text string
			if seg := firstDescendant(tuv, s, "seg"); seg != nil {
				text = strings.TrimSpace(segmentText(seg))
			}
			if text != "" {
				segments++
			}
			u.Variants = append(u.Variants, Segment{
				Language: variantLanguage(tuv),
				Text:     text,
			})
		}
		if len(u.Variants) > 0 {
			units = append(units, u)
		}
	}
	return units, segments
}

// variantLanguage reads xml:lang, falling back to a bare lang attribute.
func variantLanguage(n *xmlquery.Node) string {
	var bare string
	for _, a := range n.Attr {
		if a.Name.Local != "lang" {
			continue
		}
		switch {
		case a.Name.Space == "xml" || a.Name.Space == xmlNamespace || a.NamespaceURI == xmlNamespace:
			return strings.TrimSpace(a.Value)
		case a.Name.Space == "" && bare == "":
			bare = strings.TrimSpace(a.Value)
		}
	}
	return bare
}

// segmentText concatenates the character data of a seg element, skipping
// inline code elements.
func segmentText(n *xmlquery.Node) string {
	var b strings.Builder
	var walk func(*xmlquery.Node)
	walk = func(n *xmlquery.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case xmlquery.TextNode, xmlquery.CharDataNode:
				b.WriteString(c.Data)
			case xmlquery.ElementNode:
				if inlineCodes[c.Data] {
					continue
				}
				walk(c)
			}
		}
	}
	walk(n)
	return b.String()
}

func descendants(n *xmlquery.Node, s strategy, local string) []*xmlquery.Node {
	var out []*xmlquery.Node
	var walk func(*xmlquery.Node)
	walk = func(n *xmlquery.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != xmlquery.ElementNode {
				continue
			}
			if s.match(c, local) {
				out = append(out, c)
				continue
			}
			walk(c)
		}
	}
	walk(n)
	return out
}

func firstDescendant(n *xmlquery.Node, s strategy, local string) *xmlquery.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != xmlquery.ElementNode {
			continue
		}
		if s.match(c, local) {
			return c
		}
		if found := firstDescendant(c, s, local); found != nil {
			return found
		}
	}
	return nil
}

func firstElement(root *xmlquery.Node) *xmlquery.Node {
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			return c
		}
	}
	return nil
}

