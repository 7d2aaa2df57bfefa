// Package markup defines the layout tree that templates produce and the
// vector renderer consumes.
//
// A tree is made of Nodes. A node's children are a tagged union: another
// *Node, a Text run, a Group (an ordered sequence of children spliced in
// place) or nil for "nothing here". Templates build trees freely with
// optional parts left nil; Normalize turns the result into a canonical tree
// whose children are only *Node and non-empty Text values.
package markup

import (
	"maps"
	"strings"
)

// Style holds CSS-like properties. Values are numbers (pixels or unitless)
// or strings.
type Style map[string]any

// Attrs holds element attributes such as an image source.
type Attrs map[string]any

// Child is one entry in a node's children.
// Implementations are *Node, Text and Group.
type Child interface {
	isChild()
}

// Node is an element in the layout tree.
type Node struct {
	Kind     string
	Attrs    Attrs
	Style    Style
	Children []Child
}

// Text is a run of literal text.
type Text string

// Group is an ordered sequence of children spliced into its parent.
type Group []Child

func (*Node) isChild() {}
func (Text) isChild()  {}
func (Group) isChild() {}

// Element kinds understood by the vector renderer.
const (
	KindDiv  = "div"
	KindSpan = "span"
	KindImg  = "img"
)

// El creates a node of the given kind.
func El(kind string, style Style, children ...Child) *Node {
	return &Node{Kind: kind, Style: style, Children: children}
}

// Div creates a block container.
func Div(style Style, children ...Child) *Node {
	return El(KindDiv, style, children...)
}

// Span creates an inline container.
func Span(style Style, children ...Child) *Node {
	return El(KindSpan, style, children...)
}

// Img creates an image element. Width and height are taken from style.
func Img(src string, style Style) *Node {
	n := El(KindImg, style)
	n.Attrs = Attrs{"src": src}
	if w, ok := style["width"]; ok {
		n.Attrs["width"] = w
	}
	if h, ok := style["height"]; ok {
		n.Attrs["height"] = h
	}
	return n
}

// If returns c when cond holds and nil otherwise.
func If(cond bool, c Child) Child {
	if !cond {
		return nil
	}
	return c
}

// Choose returns a when cond holds and b otherwise.
func Choose(cond bool, a, b Child) Child {
	if cond {
		return a
	}
	return b
}

// Normalize returns a deep copy of root in which groups are flattened,
// absent children are dropped and adjacent text runs are merged. Empty text
// is dropped. A nil root normalizes to nil.
func Normalize(root *Node) *Node {
	if root == nil {
		return nil
	}
	out := &Node{
		Kind:  root.Kind,
		Attrs: maps.Clone(root.Attrs),
		Style: maps.Clone(root.Style),
	}

	var flat []Child
	appendFlat(&flat, root.Children)

	var text strings.Builder
	flushText := func() {
		if text.Len() > 0 {
			out.Children = append(out.Children, Text(text.String()))
			text.Reset()
		}
	}
	for _, c := range flat {
		switch v := c.(type) {
		case Text:
			text.WriteString(string(v))
		case *Node:
			flushText()
			out.Children = append(out.Children, Normalize(v))
		}
	}
	flushText()
	return out
}

func appendFlat(dst *[]Child, children []Child) {
	for _, c := range children {
		switch v := c.(type) {
		case nil:
		case *Node:
			if v != nil {
				*dst = append(*dst, v)
			}
		case Text:
			if v != "" {
				*dst = append(*dst, v)
			}
		case Group:
			appendFlat(dst, v)
		}
	}
}

// Walk visits n and its descendant nodes depth first, looking through
// groups. Returning false from fn skips the node's children.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	var flat []Child
	appendFlat(&flat, n.Children)
	for _, c := range flat {
		if v, ok := c.(*Node); ok {
			Walk(v, fn)
		}
	}
}

// TextContent concatenates every text run under n in document order.
func TextContent(n *Node) string {
	var b strings.Builder
	var visit func(children []Child)
	visit = func(children []Child) {
		for _, c := range children {
			switch v := c.(type) {
			case Text:
				b.WriteString(string(v))
			case *Node:
				if v != nil {
					visit(v.Children)
				}
			case Group:
				visit(v)
			}
		}
	}
	if n != nil {
		visit(n.Children)
	}
	return b.String()
}
