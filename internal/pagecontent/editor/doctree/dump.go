package doctree

import (
	"fmt"
	"strconv"
	"strings"

	tp "github.com/xlab/treeprint"
)

// Dump печатает дерево с атрибутами и позициями узлов, по строке на узел.
func Dump(root *Node) string {
	p := tp.New()
	dumpNode(p, root, -1)
	return p.String()
}

func dumpNode(p tp.Tree, n *Node, pos int) {
	if n.IsText() || n.IsLeaf() || len(n.Content) == 0 {
		p.AddNode(nodeLabel(n, pos))
		return
	}
	branch := p.AddBranch(nodeLabel(n, pos))
	childPos := pos + 1
	for _, c := range n.Content {
		dumpNode(branch, c, childPos)
		childPos += c.NodeSize()
	}
}

func nodeLabel(n *Node, pos int) string {
	var b strings.Builder
	if pos >= 0 {
		b.WriteString(strconv.Itoa(pos))
		b.WriteString(": ")
	}

	if n.IsText() {
		b.WriteString(strconv.Quote(n.Text))
		for _, m := range n.Marks {
			b.WriteString(" +")
			b.WriteString(string(m.Type))
			if m.Href != "" {
				b.WriteString("=" + m.Href)
			}
		}
		return b.String()
	}

	b.WriteString(string(n.Type))
	switch a := n.Attrs.(type) {
	case *ColumnsAttrs:
		fmt.Fprintf(&b, " cols=%d", a.Cols)
	case *ImageAttrs:
		fmt.Fprintf(&b, " src=%q", a.Src)
		if a.Float != nil {
			fmt.Fprintf(&b, " float=%s width=%s", *a.Float, a.FloatWidth)
		}
	case *HeadingAttrs:
		fmt.Fprintf(&b, " level=%d", a.Level)
	case *OrderedListAttrs:
		fmt.Fprintf(&b, " start=%d", a.Start)
	case *CodeBlockAttrs:
		if a.Language != "" {
			fmt.Fprintf(&b, " language=%s", a.Language)
		}
	}
	return b.String()
}
