package tiptap

import (
	"encoding/json"
	"io"
	"log/slog"

	"github.com/aisa-it/shopadmin/internal/pagecontent/editor/doctree"
)

// ParseJSON парсит JSON контент TipTap редактора в дерево документа.
// Неизвестные типы нод пропускаются, дерево по схеме не проверяется.
func ParseJSON(r io.Reader) (*doctree.Node, error) {
	var tipTapDoc TipTapDocument
	if err := json.NewDecoder(r).Decode(&tipTapDoc); err != nil {
		return nil, err
	}
	return FromTipTap(tipTapDoc), nil
}

// FromTipTap преобразует разобранный TipTap документ в дерево.
func FromTipTap(tipTapDoc TipTapDocument) *doctree.Node {
	doc := doctree.New(doctree.TypeDoc, nil, parseContent(tipTapDoc.Content)...)
	if len(doc.Content) == 0 {
		doc.Content = []*doctree.Node{doctree.New(doctree.TypeParagraph, nil)}
	}
	return doc
}

func parseContent(nodes []TipTapNode) []*doctree.Node {
	var out []*doctree.Node
	for _, node := range nodes {
		if n := parseNode(node); n != nil {
			out = append(out, n)
		}
	}
	return out
}

// parseNode парсит отдельную ноду TipTap.
func parseNode(node TipTapNode) *doctree.Node {
	t := doctree.NodeType(node.Type)
	switch t {
	case doctree.TypeText:
		if node.Text == "" {
			return nil
		}
		return doctree.NewText(node.Text, parseMarks(node.Marks)...)
	case doctree.TypeParagraph, doctree.TypeBlockquote, doctree.TypeBulletList,
		doctree.TypeListItem, doctree.TypeColumn, doctree.TypeHardBreak:
		return doctree.New(t, nil, parseContent(node.Content)...)
	case doctree.TypeHeading:
		return doctree.New(t, &doctree.HeadingAttrs{Level: getAttrInt(node.Attrs, "level", 1)}, parseContent(node.Content)...)
	case doctree.TypeOrderedList:
		return doctree.New(t, &doctree.OrderedListAttrs{Start: getAttrInt(node.Attrs, "start", 1)}, parseContent(node.Content)...)
	case doctree.TypeCodeBlock:
		return doctree.New(t, &doctree.CodeBlockAttrs{Language: getAttrString(node.Attrs, "language")}, parseContent(node.Content)...)
	case doctree.TypeColumnsBlock:
		return doctree.New(t, &doctree.ColumnsAttrs{Cols: getAttrInt(node.Attrs, "cols", doctree.DefaultCols)}, parseContent(node.Content)...)
	case doctree.TypeImage:
		return doctree.New(t, parseImage(node.Attrs))
	default:
		slog.Warn("Unknown node type", "type", node.Type)
		return nil
	}
}

func parseImage(attrs map[string]any) *doctree.ImageAttrs {
	img := &doctree.ImageAttrs{
		Src:        getAttrString(attrs, "src"),
		Alt:        getAttrString(attrs, "alt"),
		Title:      getAttrString(attrs, "title"),
		FloatWidth: doctree.DefaultFloatWidth,
	}
	switch f := doctree.Float(getAttrString(attrs, "float")); f {
	case doctree.FloatLeft, doctree.FloatRight:
		img.Float = doctree.FloatPtr(f)
	}
	// ширина хранится только у обтекаемой картинки и только в виде, который читает HTML парсер
	if width := getAttrString(attrs, "floatWidth"); img.Float != nil && doctree.ValidFloatWidth(width) {
		img.FloatWidth = width
	}
	return img
}
