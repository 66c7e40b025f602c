// Package svg parses the subset of SVG needed for toolpath conversion: the
// document tree, path data, transform lists, lengths, and the viewBox.
package svg

import (
	"fmt"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/xml"
)

// Attr is a single attribute on an element.
type Attr struct {
	Key   string
	Value string
}

// Node is an element in the document tree. Text content is discarded; only
// elements and their attributes are retained.
type Node struct {
	Name     string
	Attrs    []Attr
	Children []*Node
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(key string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// ID returns the element's id attribute, or "".
func (n *Node) ID() string {
	id, _ := n.Attr("id")
	return id
}

// Document is a parsed SVG document.
type Document struct {
	Root *Node
}

// Parse reads an SVG document. The root element must be svg. Namespace
// prefixes on element names are dropped.
func Parse(r io.Reader) (*Document, error) {
	l := xml.NewLexer(parse.NewInput(r))
	var root *Node
	var stack []*Node
	var pending *Node

	attach := func(n *Node) error {
		if len(stack) > 0 {
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, n)
			return nil
		}
		if root != nil {
			return fmt.Errorf("svg: multiple root elements")
		}
		root = n
		return nil
	}

	for {
		tt, _ := l.Next()
		switch tt {
		case xml.ErrorToken:
			if l.Err() != io.EOF {
				return nil, fmt.Errorf("svg: %w", l.Err())
			}
			if len(stack) > 0 {
				return nil, fmt.Errorf("svg: unclosed element <%s>", stack[len(stack)-1].Name)
			}
			if root == nil {
				return nil, fmt.Errorf("svg: no root element")
			}
			if root.Name != "svg" {
				return nil, fmt.Errorf("svg: root element is <%s>, expected <svg>", root.Name)
			}
			return &Document{Root: root}, nil
		case xml.StartTagToken:
			pending = &Node{Name: localName(string(l.Text()))}
		case xml.AttributeToken:
			if pending != nil {
				pending.Attrs = append(pending.Attrs, Attr{
					Key:   string(l.Text()),
					Value: unquote(string(l.AttrVal())),
				})
			}
		case xml.StartTagCloseToken:
			if err := attach(pending); err != nil {
				return nil, err
			}
			stack = append(stack, pending)
			pending = nil
		case xml.StartTagCloseVoidToken:
			if err := attach(pending); err != nil {
				return nil, err
			}
			pending = nil
		case xml.EndTagToken:
			if len(stack) == 0 {
				return nil, fmt.Errorf("svg: unexpected closing tag </%s>", localName(string(l.Text())))
			}
			stack = stack[:len(stack)-1]
		}
	}
}

// localName strips any namespace prefix from an element name.
func localName(name string) string {
	if i := strings.LastIndexByte(name, ':'); i >= 0 {
		return name[i+1:]
	}
	return name
}

// unquote strips the surrounding quotes the lexer leaves on attribute values.
func unquote(v string) string {
	if len(v) >= 2 && (v[0] == '"' || v[0] == '\'') && v[len(v)-1] == v[0] {
		return v[1 : len(v)-1]
	}
	return v
}
