package transform

import "github.com/aisa-it/shopadmin/internal/pagecontent/editor/doctree"

// Selection - выделение в документе. Anchor == Head - курсор.
type Selection struct {
	Anchor int `json:"anchor"`
	Head   int `json:"head"`
}

func Cursor(pos int) Selection {
	return Selection{Anchor: pos, Head: pos}
}

func (s Selection) From() int {
	return min(s.Anchor, s.Head)
}

func (s Selection) To() int {
	return max(s.Anchor, s.Head)
}

func (s Selection) Empty() bool {
	return s.Anchor == s.Head
}

func (s Selection) mapPos(f func(int) int) Selection {
	return Selection{Anchor: f(s.Anchor), Head: f(s.Head)}
}

// clamp ограничивает выделение размерами документа.
func (s Selection) clamp(doc *doctree.Node) Selection {
	size := doc.ContentSize()
	return s.mapPos(func(p int) int {
		return max(0, min(p, size))
	})
}

// EditorState - неизменяемый снимок: документ и выделение.
type EditorState struct {
	Doc       *doctree.Node
	Selection Selection
}
