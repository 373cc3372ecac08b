// Пакет extensions описывает типы узлов редактора контента страниц и правила
// преобразования их атрибутов в DOM и обратно.
//
// Основные возможности:
//   - Колонки: columnsBlock (2 или 3 колонки) и column.
//   - Картинка с обтеканием (float, floatWidth).
//   - Базовые блоки: параграф, заголовок, цитата, списки, блок кода.
//   - Форматирование текста: жирный, курсив, подчеркнутый, зачеркнутый, код, ссылка.
package extensions

import (
	"strconv"
	"strings"

	"github.com/aisa-it/shopadmin/internal/pagecontent/editor/doctree"
	"github.com/aisa-it/shopadmin/internal/pagecontent/editor/schema"
	"golang.org/x/net/html"
)

const (
	GroupBlock  = "block"
	GroupInline = "inline"
	GroupColumn = "column"
)

// NewSchema возвращает реестр со всеми типами узлов редактора.
// Параграф регистрируется первым: он используется как блок по умолчанию.
func NewSchema() *schema.Registry {
	r := schema.NewRegistry()
	r.MustRegister(
		schema.NodeTypeDefinition{
			Name:    doctree.TypeDoc,
			Content: "block+",
		},
		Paragraph(),
		Heading(),
		Blockquote(),
		BulletList(),
		OrderedList(),
		ListItem(),
		CodeBlock(),
		Image(),
		ColumnsBlock(),
		Column(),
		schema.NodeTypeDefinition{
			Name:   doctree.TypeText,
			Group:  GroupInline,
			Inline: true,
		},
		HardBreak(),
	)
	for _, m := range Marks() {
		if err := r.RegisterMark(m); err != nil {
			panic(err)
		}
	}
	return r
}

func Paragraph() schema.NodeTypeDefinition {
	return schema.NodeTypeDefinition{
		Name:     doctree.TypeParagraph,
		Group:    GroupBlock,
		Content:  "inline*",
		ParseDOM: []schema.ParseRule{{Tag: "p"}},
		ToDOM:    simpleDOM("p"),
	}
}

func Heading() schema.NodeTypeDefinition {
	def := schema.NodeTypeDefinition{
		Name:       doctree.TypeHeading,
		Group:      GroupBlock,
		Content:    "inline*",
		Attributes: []schema.AttributeSpec{{Name: "level", Default: 1}},
		ToDOM: func(n *doctree.Node) schema.DOMSpec {
			return schema.DOMSpec{Tag: "h" + strconv.Itoa(n.Attrs.(*doctree.HeadingAttrs).Level)}
		},
		Check: func(n *doctree.Node) string {
			a, ok := n.Attrs.(*doctree.HeadingAttrs)
			if !ok {
				return "heading requires HeadingAttrs"
			}
			if a.Level < 1 || a.Level > 6 {
				return "heading level must be in [1, 6]"
			}
			return ""
		},
	}
	for level := 1; level <= 6; level++ {
		def.ParseDOM = append(def.ParseDOM, schema.ParseRule{
			Tag: "h" + strconv.Itoa(level),
			GetAttrs: func(*html.Node) doctree.Attrs {
				return &doctree.HeadingAttrs{Level: level}
			},
		})
	}
	return def
}

func Blockquote() schema.NodeTypeDefinition {
	return schema.NodeTypeDefinition{
		Name:     doctree.TypeBlockquote,
		Group:    GroupBlock,
		Content:  "block+",
		ParseDOM: []schema.ParseRule{{Tag: "blockquote"}},
		ToDOM:    simpleDOM("blockquote"),
	}
}

func BulletList() schema.NodeTypeDefinition {
	return schema.NodeTypeDefinition{
		Name:     doctree.TypeBulletList,
		Group:    GroupBlock,
		Content:  "listItem+",
		ParseDOM: []schema.ParseRule{{Tag: "ul"}},
		ToDOM:    simpleDOM("ul"),
	}
}

func OrderedList() schema.NodeTypeDefinition {
	return schema.NodeTypeDefinition{
		Name:       doctree.TypeOrderedList,
		Group:      GroupBlock,
		Content:    "listItem+",
		Attributes: []schema.AttributeSpec{{Name: "start", Default: 1}},
		ParseDOM: []schema.ParseRule{{
			Tag: "ol",
			GetAttrs: func(el *html.Node) doctree.Attrs {
				start, err := strconv.Atoi(getAttrValue("start", el.Attr))
				if err != nil {
					start = 1
				}
				return &doctree.OrderedListAttrs{Start: start}
			},
		}},
		ToDOM: func(n *doctree.Node) schema.DOMSpec {
			spec := schema.DOMSpec{Tag: "ol"}
			if start := n.Attrs.(*doctree.OrderedListAttrs).Start; start != 1 {
				spec.Attrs = append(spec.Attrs, html.Attribute{Key: "start", Val: strconv.Itoa(start)})
			}
			return spec
		},
		Check: attrsOf[*doctree.OrderedListAttrs],
	}
}

func ListItem() schema.NodeTypeDefinition {
	return schema.NodeTypeDefinition{
		Name:     doctree.TypeListItem,
		Content:  "paragraph block*",
		ParseDOM: []schema.ParseRule{{Tag: "li"}},
		ToDOM:    simpleDOM("li"),
	}
}

func CodeBlock() schema.NodeTypeDefinition {
	return schema.NodeTypeDefinition{
		Name:       doctree.TypeCodeBlock,
		Group:      GroupBlock,
		Content:    "text*",
		Attributes: []schema.AttributeSpec{{Name: "language", Default: ""}},
		ParseDOM: []schema.ParseRule{{
			Tag: "pre",
			GetAttrs: func(el *html.Node) doctree.Attrs {
				lang := getAttrValue("data-language", el.Attr)
				if lang == "" {
					if code := firstChildElement(el, "code"); code != nil {
						for class := range strings.FieldsSeq(getAttrValue("class", code.Attr)) {
							if l, ok := strings.CutPrefix(class, "language-"); ok {
								lang = l
								break
							}
						}
					}
				}
				return &doctree.CodeBlockAttrs{Language: lang}
			},
		}},
		ToDOM: func(n *doctree.Node) schema.DOMSpec {
			spec := schema.DOMSpec{Tag: "pre"}
			if lang := n.Attrs.(*doctree.CodeBlockAttrs).Language; lang != "" {
				spec.Attrs = append(spec.Attrs, html.Attribute{Key: "data-language", Val: lang})
			}
			return spec
		},
		Check: func(n *doctree.Node) string {
			if reason := attrsOf[*doctree.CodeBlockAttrs](n); reason != "" {
				return reason
			}
			for _, c := range n.Content {
				if len(c.Marks) > 0 {
					return "code block text must not have marks"
				}
			}
			return ""
		},
	}
}

func HardBreak() schema.NodeTypeDefinition {
	return schema.NodeTypeDefinition{
		Name:     doctree.TypeHardBreak,
		Group:    GroupInline,
		Inline:   true,
		Atom:     true,
		ParseDOM: []schema.ParseRule{{Tag: "br"}},
		ToDOM:    simpleDOM("br"),
	}
}

func simpleDOM(tag string) func(*doctree.Node) schema.DOMSpec {
	return func(*doctree.Node) schema.DOMSpec {
		return schema.DOMSpec{Tag: tag}
	}
}

// attrsOf проверяет, что у узла вариант атрибутов нужного типа.
func attrsOf[T doctree.Attrs](n *doctree.Node) string {
	if _, ok := n.Attrs.(T); !ok {
		return "unexpected attributes type for " + string(n.Type)
	}
	return ""
}
