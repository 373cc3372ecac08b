package tiptap

import (
	"encoding/json"

	"github.com/aisa-it/shopadmin/internal/pagecontent/editor/doctree"
)

// Serialize сериализует дерево документа в TipTap JSON.
func Serialize(doc *doctree.Node) ([]byte, error) {
	return json.Marshal(ToTipTap(doc))
}

// ToTipTap преобразует дерево в структуры TipTap.
func ToTipTap(doc *doctree.Node) TipTapDocument {
	tipTapDoc := TipTapDocument{
		Type:    string(doctree.TypeDoc),
		Content: make([]TipTapNode, 0, len(doc.Content)),
	}
	for _, child := range doc.Content {
		tipTapDoc.Content = append(tipTapDoc.Content, serializeNode(child))
	}
	return tipTapDoc
}

func serializeNode(n *doctree.Node) TipTapNode {
	node := TipTapNode{Type: string(n.Type)}
	if n.IsText() {
		node.Text = n.Text
		node.Marks = serializeMarks(n.Marks)
		return node
	}

	node.Attrs = serializeAttrs(n.Attrs)
	if len(n.Content) > 0 {
		node.Content = make([]TipTapNode, 0, len(n.Content))
		for _, child := range n.Content {
			node.Content = append(node.Content, serializeNode(child))
		}
	}
	return node
}

// serializeAttrs возвращает атрибуты в именах TipTap расширений.
func serializeAttrs(attrs doctree.Attrs) map[string]any {
	switch a := attrs.(type) {
	case *doctree.ColumnsAttrs:
		return map[string]any{"cols": a.Cols}
	case *doctree.HeadingAttrs:
		return map[string]any{"level": a.Level}
	case *doctree.OrderedListAttrs:
		return map[string]any{"start": a.Start}
	case *doctree.CodeBlockAttrs:
		res := map[string]any{"language": nil}
		if a.Language != "" {
			res["language"] = a.Language
		}
		return res
	case *doctree.ImageAttrs:
		res := map[string]any{"float": nil, "floatWidth": a.FloatWidth}
		putNonEmpty(res, "src", a.Src)
		putNonEmpty(res, "alt", a.Alt)
		putNonEmpty(res, "title", a.Title)
		if a.Float != nil {
			res["float"] = string(*a.Float)
		}
		return res
	}
	return nil
}
