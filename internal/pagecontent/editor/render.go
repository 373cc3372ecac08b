package editor

import (
	"fmt"
	"io"
	"strings"

	"github.com/aisa-it/shopadmin/internal/pagecontent/editor/doctree"
	"github.com/aisa-it/shopadmin/internal/pagecontent/editor/schema"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Render отрисовывает проверенное дерево в HTML-фрагмент. Вызов на дереве,
// не прошедшем проверку схемы, является ошибкой программиста и приводит к панике.
func Render(reg *schema.Registry, root *doctree.Node) string {
	var b strings.Builder
	if err := RenderTo(&b, reg, root); err != nil {
		// strings.Builder не возвращает ошибок записи
		panic(err)
	}
	return b.String()
}

// RenderTo пишет HTML-фрагмент в w.
func RenderTo(w io.Writer, reg *schema.Registry, root *doctree.Node) error {
	for _, child := range root.Content {
		if err := html.Render(w, renderNode(reg, child)); err != nil {
			return err
		}
	}
	return nil
}

// renderNode строит DOM узла: элемент по правилам типа, внутри - отрисованные дети по порядку.
func renderNode(reg *schema.Registry, n *doctree.Node) *html.Node {
	if n.IsText() {
		return renderText(reg, n)
	}

	def := reg.Definition(n.Type)
	if def == nil || def.ToDOM == nil {
		panic(fmt.Sprintf("editor: node type %q can not be rendered", n.Type))
	}
	el := newElement(def.ToDOM(n))
	for _, child := range n.Content {
		el.AppendChild(renderNode(reg, child))
	}
	return el
}

// renderText заворачивает текст в элементы форматирования. Первое форматирование
// в каноничном порядке оказывается внешним.
func renderText(reg *schema.Registry, n *doctree.Node) *html.Node {
	node := &html.Node{Type: html.TextNode, Data: n.Text}
	for i := len(n.Marks) - 1; i >= 0; i-- {
		m := n.Marks[i]
		def := reg.Mark(m.Type)
		if def == nil {
			panic(fmt.Sprintf("editor: mark %q can not be rendered", m.Type))
		}
		el := newElement(def.ToDOM(m))
		el.AppendChild(node)
		node = el
	}
	return node
}

func newElement(spec schema.DOMSpec) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     spec.Tag,
		DataAtom: atom.Lookup([]byte(spec.Tag)),
		Attr:     spec.Attrs,
	}
}
