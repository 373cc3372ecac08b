// Пакет предоставляет инструменты для парсинга HTML контента страниц в дерево документа и обратной отрисовки.
// Сопоставление элементов типам узлов выполняется по тегу и атрибуту data-type, имена классов не учитываются.
//
// Основные возможности:
//   - Парсинг HTML-фрагмента из io.Reader в дерево doctree.
//   - Отрисовка дерева в HTML снизу вверх по правилам типов узлов.
//   - Загрузка с проверкой дерева по схеме.
package editor

import (
	"io"
	"strings"

	"github.com/aisa-it/shopadmin/internal/pagecontent/editor/doctree"
	"github.com/aisa-it/shopadmin/internal/pagecontent/editor/schema"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Parse строит дерево документа из HTML-фрагмента. Дерево не проверяется по схеме.
func Parse(reg *schema.Registry, r io.Reader) (*doctree.Node, error) {
	nodes, err := html.ParseFragment(r, &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	})
	if err != nil {
		return nil, err
	}

	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	for _, n := range nodes {
		body.AppendChild(n)
	}

	p := parser{reg: reg}
	content := p.parseBlocks(body)
	if len(content) == 0 {
		content = []*doctree.Node{doctree.New(doctree.TypeParagraph, nil)}
	}
	return doctree.New(doctree.TypeDoc, nil, content...), nil
}

// ParseString - Parse для строки.
func ParseString(reg *schema.Registry, s string) (*doctree.Node, error) {
	return Parse(reg, strings.NewReader(s))
}

// Load парсит HTML и проверяет результат по схеме.
func Load(reg *schema.Registry, r io.Reader) (*doctree.Node, error) {
	doc, err := Parse(reg, r)
	if err != nil {
		return nil, err
	}
	if err := reg.Validate(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

type parser struct {
	reg *schema.Registry
}

// match ищет тип узла для элемента. Правила с data-type проверяются первыми.
func (p *parser) match(el *html.Node) (*schema.NodeTypeDefinition, *schema.ParseRule) {
	dataType, hasDataType := lookupAttr("data-type", el.Attr)
	var fallback *schema.NodeTypeDefinition
	var fallbackRule *schema.ParseRule
	for _, def := range p.reg.Types() {
		for i := range def.ParseDOM {
			rule := &def.ParseDOM[i]
			if rule.Tag != el.Data {
				continue
			}
			if rule.DataType != "" {
				if hasDataType && dataType == rule.DataType {
					return def, rule
				}
				continue
			}
			if fallback == nil {
				fallback, fallbackRule = def, rule
			}
		}
	}
	return fallback, fallbackRule
}

func (p *parser) matchMark(el *html.Node) (doctree.Mark, bool) {
	for _, def := range p.reg.Marks() {
		for _, tag := range def.Tags {
			if tag == el.Data {
				return def.GetAttrs(el)
			}
		}
	}
	return doctree.Mark{}, false
}

// parseBlocks разбирает детей элемента как блочное содержимое. Строчное содержимое
// вне текстовых блоков заворачивается в параграф, пробельный текст между блоками отбрасывается.
func (p *parser) parseBlocks(el *html.Node) []*doctree.Node {
	var out, pending []*doctree.Node
	flush := func() {
		if len(pending) > 0 {
			out = append(out, p.splitTextblock(doctree.TypeParagraph, nil, pending)...)
			pending = nil
		}
	}

	for c := el.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			if strings.TrimSpace(c.Data) == "" {
				continue
			}
			pending = appendInline(pending, doctree.NewText(c.Data))
		case html.ElementNode:
			def, rule := p.match(c)
			switch {
			case def == nil && isInlineElement(c):
				inner, _ := p.matchMark(c)
				var marks []doctree.Mark
				if inner.Type != "" {
					marks = []doctree.Mark{inner}
				}
				for _, n := range p.parseInline(c, marks) {
					pending = appendInline(pending, n)
				}
			case def == nil:
				// неизвестная обертка: берем ее содержимое
				flush()
				out = append(out, p.parseBlocks(c)...)
			case def.Inline:
				pending = appendInline(pending, p.parseLeaf(c, def, rule))
			default:
				flush()
				out = append(out, p.parseBlock(c, def, rule)...)
			}
		}
	}
	flush()
	return out
}

// parseBlock разбирает элемент, сопоставленный блочному типу. Текстовый блок может
// распасться на несколько узлов, если внутри него встретились блочные узлы (картинки).
func (p *parser) parseBlock(el *html.Node, def *schema.NodeTypeDefinition, rule *schema.ParseRule) []*doctree.Node {
	var attrs doctree.Attrs
	if rule.GetAttrs != nil {
		attrs = rule.GetAttrs(el)
	}

	switch {
	case def.Name == doctree.TypeCodeBlock:
		node := doctree.New(def.Name, attrs)
		if text := collectText(el); text != "" {
			node.Content = []*doctree.Node{doctree.NewText(text)}
		}
		return []*doctree.Node{node}
	case def.ContentExpr().IsLeaf():
		return []*doctree.Node{doctree.New(def.Name, attrs)}
	case def.Content == "inline*":
		return p.splitTextblock(def.Name, attrs, p.parseInline(el, nil))
	}
	return []*doctree.Node{doctree.New(def.Name, attrs, p.parseBlocks(el)...)}
}

func (p *parser) parseLeaf(el *html.Node, def *schema.NodeTypeDefinition, rule *schema.ParseRule) *doctree.Node {
	var attrs doctree.Attrs
	if rule.GetAttrs != nil {
		attrs = rule.GetAttrs(el)
	}
	return doctree.New(def.Name, attrs)
}

// parseInline разбирает строчное содержимое, накапливая форматирование.
// Блочные узлы, встреченные внутри, возвращаются в том же списке.
func (p *parser) parseInline(el *html.Node, marks []doctree.Mark) []*doctree.Node {
	var out []*doctree.Node
	for c := el.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			if c.Data != "" {
				out = appendInline(out, doctree.NewText(c.Data, marks...))
			}
		case html.ElementNode:
			if def, rule := p.match(c); def != nil {
				if def.Inline {
					out = appendInline(out, p.parseLeaf(c, def, rule))
				} else {
					out = append(out, p.parseBlock(c, def, rule)...)
				}
				continue
			}
			inner := marks
			if m, ok := p.matchMark(c); ok {
				inner = doctree.AddMark(marks, m)
			}
			for _, n := range p.parseInline(c, inner) {
				out = appendInline(out, n)
			}
		}
	}
	return out
}

// splitTextblock собирает текстовый блок из строчных узлов, вынося блочные узлы наружу.
func (p *parser) splitTextblock(t doctree.NodeType, attrs doctree.Attrs, items []*doctree.Node) []*doctree.Node {
	var out, inline []*doctree.Node
	for _, item := range items {
		if p.isInline(item) {
			inline = appendInline(inline, item)
			continue
		}
		if len(inline) > 0 {
			out = append(out, newTextblock(t, attrs, inline))
			inline = nil
		}
		out = append(out, item)
	}
	if len(inline) > 0 || len(out) == 0 {
		out = append(out, newTextblock(t, attrs, inline))
	}
	return out
}

func (p *parser) isInline(n *doctree.Node) bool {
	def := p.reg.Definition(n.Type)
	return def != nil && def.Inline
}

func newTextblock(t doctree.NodeType, attrs doctree.Attrs, content []*doctree.Node) *doctree.Node {
	return doctree.New(t, doctree.CloneAttrs(attrs), content...)
}

// appendInline добавляет узел, склеивая соседние тексты с одинаковым форматированием.
func appendInline(list []*doctree.Node, n *doctree.Node) []*doctree.Node {
	if n.IsText() && len(list) > 0 {
		last := list[len(list)-1]
		if last.IsText() && doctree.MarksEqual(last.Marks, n.Marks) {
			last.Text += n.Text
			return list
		}
	}
	return append(list, n)
}

func collectText(root *html.Node) string {
	var b strings.Builder
	iterNodes(root, func(child *html.Node) bool {
		if child.Type == html.TextNode {
			b.WriteString(child.Data)
		}
		return false
	})
	return b.String()
}

var inlineElements = map[string]bool{
	"span": true, "a": true, "strong": true, "b": true, "em": true, "i": true,
	"u": true, "s": true, "strike": true, "del": true, "code": true, "mark": true,
	"sub": true, "sup": true, "small": true, "font": true,
}

func isInlineElement(el *html.Node) bool {
	return inlineElements[el.Data]
}

func iterNodes(node *html.Node, f func(child *html.Node) bool) {
	if f(node) {
		return
	}
	for p := node.FirstChild; p != nil; p = p.NextSibling {
		iterNodes(p, f)
	}
}

func lookupAttr(key string, attrs []html.Attribute) (string, bool) {
	for _, attr := range attrs {
		if attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}
