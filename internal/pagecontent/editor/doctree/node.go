// Пакет doctree описывает дерево документа редактора контента страниц.
//
// Основные возможности:
//   - Закрытый набор типов узлов (NodeType) и атрибутов (Attrs) для каждого варианта.
//   - Текстовые узлы с форматированием (marks).
//   - Глубокое копирование и структурное сравнение деревьев.
//   - Позиционная модель документа: размеры узлов, разрешение позиций, обход потомков.
package doctree

import (
	"slices"
	"strings"
	"unicode/utf8"
)

type NodeType string

const (
	TypeDoc          NodeType = "doc"
	TypeParagraph    NodeType = "paragraph"
	TypeHeading      NodeType = "heading"
	TypeBlockquote   NodeType = "blockquote"
	TypeBulletList   NodeType = "bulletList"
	TypeOrderedList  NodeType = "orderedList"
	TypeListItem     NodeType = "listItem"
	TypeCodeBlock    NodeType = "codeBlock"
	TypeImage        NodeType = "image"
	TypeColumn       NodeType = "column"
	TypeColumnsBlock NodeType = "columnsBlock"
	TypeText         NodeType = "text"
	TypeHardBreak    NodeType = "hardBreak"
)

// Node - узел документа. Узел единолично владеет своими детьми.
type Node struct {
	Type    NodeType
	Attrs   Attrs
	Content []*Node

	// Только для текстовых узлов
	Text  string
	Marks []Mark
}

func New(t NodeType, attrs Attrs, content ...*Node) *Node {
	return &Node{Type: t, Attrs: attrs, Content: content}
}

func NewText(text string, marks ...Mark) *Node {
	return &Node{Type: TypeText, Text: text, Marks: marks}
}

func (n *Node) IsText() bool {
	return n.Type == TypeText
}

// IsLeaf - узел без содержимого в позиционной модели (картинка, перенос строки).
func (n *Node) IsLeaf() bool {
	return n.Type == TypeImage || n.Type == TypeHardBreak
}

// IsTextblock - узел, содержимое которого строчное.
func (n *Node) IsTextblock() bool {
	return n.Type == TypeParagraph || n.Type == TypeHeading || n.Type == TypeCodeBlock
}

func (n *Node) ChildCount() int {
	return len(n.Content)
}

func (n *Node) Child(i int) *Node {
	return n.Content[i]
}

// NodeSize возвращает размер узла в позиционной модели.
func (n *Node) NodeSize() int {
	switch {
	case n.IsText():
		return utf8.RuneCountInString(n.Text)
	case n.IsLeaf():
		return 1
	}
	return 2 + n.ContentSize()
}

// ContentSize - суммарный размер детей.
func (n *Node) ContentSize() int {
	size := 0
	for _, c := range n.Content {
		size += c.NodeSize()
	}
	return size
}

func (n *Node) TextContent() string {
	if n.IsText() {
		return n.Text
	}
	var b strings.Builder
	for _, c := range n.Content {
		b.WriteString(c.TextContent())
	}
	return b.String()
}

// Clone выполняет глубокое копирование поддерева.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := &Node{
		Type:  n.Type,
		Text:  n.Text,
		Marks: slices.Clone(n.Marks),
	}
	if n.Attrs != nil {
		c.Attrs = n.Attrs.clone()
	}
	if n.Content != nil {
		c.Content = make([]*Node, len(n.Content))
		for i, child := range n.Content {
			c.Content[i] = child.Clone()
		}
	}
	return c
}

// Equal сравнивает типы, атрибуты, форматирование, текст и детей по порядку.
func (n *Node) Equal(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}
	if n.Type != o.Type || n.Text != o.Text {
		return false
	}
	if !attrsEqual(n.Attrs, o.Attrs) || !MarksEqual(n.Marks, o.Marks) {
		return false
	}
	if len(n.Content) != len(o.Content) {
		return false
	}
	for i := range n.Content {
		if !n.Content[i].Equal(o.Content[i]) {
			return false
		}
	}
	return true
}

// Descendants обходит потомков в порядке документа. pos - абсолютная позиция
// начала узла относительно начала содержимого n. Если fn возвращает false,
// дети узла пропускаются.
func (n *Node) Descendants(fn func(node *Node, pos int, parent *Node, index int) bool) {
	n.descendants(0, fn)
}

func (n *Node) descendants(offset int, fn func(node *Node, pos int, parent *Node, index int) bool) {
	pos := offset
	for i, child := range n.Content {
		if fn(child, pos, n, i) && !child.IsText() && !child.IsLeaf() {
			child.descendants(pos+1, fn)
		}
		pos += child.NodeSize()
	}
}

// String - компактное отладочное представление вида columnsBlock(column(paragraph("A"))).
func (n *Node) String() string {
	if n.IsText() {
		return `"` + n.Text + `"`
	}
	if len(n.Content) == 0 {
		return string(n.Type)
	}
	parts := make([]string, len(n.Content))
	for i, c := range n.Content {
		parts[i] = c.String()
	}
	return string(n.Type) + "(" + strings.Join(parts, ", ") + ")"
}
