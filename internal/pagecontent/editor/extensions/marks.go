package extensions

import (
	"github.com/aisa-it/shopadmin/internal/pagecontent/editor/doctree"
	"github.com/aisa-it/shopadmin/internal/pagecontent/editor/schema"
	"golang.org/x/net/html"
)

// Marks возвращает поддерживаемое форматирование текста.
func Marks() []schema.MarkDefinition {
	return []schema.MarkDefinition{
		{
			Name: doctree.MarkLink,
			Tags: []string{"a"},
			GetAttrs: func(el *html.Node) (doctree.Mark, bool) {
				href := getAttrValue("href", el.Attr)
				if href == "" {
					return doctree.Mark{}, false
				}
				return doctree.Mark{Type: doctree.MarkLink, Href: href}, true
			},
			ToDOM: func(m doctree.Mark) schema.DOMSpec {
				return schema.DOMSpec{Tag: "a", Attrs: []html.Attribute{
					{Key: "href", Val: m.Href},
					{Key: "target", Val: "_blank"},
					{Key: "rel", Val: "noopener noreferrer nofollow"},
				}}
			},
		},
		simpleMark(doctree.MarkBold, "strong", "b"),
		simpleMark(doctree.MarkItalic, "em", "i"),
		simpleMark(doctree.MarkUnderline, "u"),
		simpleMark(doctree.MarkStrike, "s", "strike", "del"),
		simpleMark(doctree.MarkCode, "code"),
	}
}

// simpleMark - форматирование без атрибутов, первый тег используется при отрисовке.
func simpleMark(t doctree.MarkType, tags ...string) schema.MarkDefinition {
	return schema.MarkDefinition{
		Name: t,
		Tags: tags,
		GetAttrs: func(*html.Node) (doctree.Mark, bool) {
			return doctree.Mark{Type: t}, true
		},
		ToDOM: func(doctree.Mark) schema.DOMSpec {
			return schema.DOMSpec{Tag: tags[0]}
		},
	}
}
