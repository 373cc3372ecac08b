package doctree

import (
	"errors"
	"fmt"
)

var ErrPositionOutOfRange = errors.New("position out of range")

type pathEntry struct {
	node     *Node
	index    int
	childPos int // абсолютная позиция ребенка с индексом index
}

// ResolvedPos - позиция, разрешенная относительно дерева: цепочка предков от
// корня (глубина 0) до непосредственного родителя позиции.
type ResolvedPos struct {
	Pos          int
	Depth        int
	ParentOffset int

	path []pathEntry
}

// Resolve разрешает абсолютную позицию pos в документе root.
func Resolve(root *Node, pos int) (*ResolvedPos, error) {
	if pos < 0 || pos > root.ContentSize() {
		return nil, fmt.Errorf("%w: %d not in [0, %d]", ErrPositionOutOfRange, pos, root.ContentSize())
	}

	var path []pathEntry
	start := 0
	parentOffset := pos
	node := root
	for {
		index, offset := node.findIndex(parentOffset)
		rem := parentOffset - offset
		path = append(path, pathEntry{node: node, index: index, childPos: start + offset})
		if rem == 0 {
			break
		}
		child := node.Content[index]
		if child.IsText() || child.IsLeaf() {
			break
		}
		node = child
		parentOffset = rem - 1
		start += offset + 1
	}

	return &ResolvedPos{
		Pos:          pos,
		Depth:        len(path) - 1,
		ParentOffset: parentOffset,
		path:         path,
	}, nil
}

// findIndex возвращает индекс ребенка, содержащего смещение pos, и смещение его начала.
func (n *Node) findIndex(pos int) (int, int) {
	cur := 0
	for i, child := range n.Content {
		end := cur + child.NodeSize()
		if end > pos {
			return i, cur
		}
		cur = end
	}
	return len(n.Content), cur
}

func (r *ResolvedPos) resolveDepth(d int) int {
	if d < 0 {
		return r.Depth + d
	}
	return d
}

// Node возвращает предка на глубине d. Отрицательная глубина отсчитывается от родителя.
func (r *ResolvedPos) Node(d int) *Node {
	return r.path[r.resolveDepth(d)].node
}

func (r *ResolvedPos) Parent() *Node {
	return r.path[r.Depth].node
}

func (r *ResolvedPos) Index(d int) int {
	return r.path[r.resolveDepth(d)].index
}

// Start - позиция начала содержимого предка на глубине d.
func (r *ResolvedPos) Start(d int) int {
	d = r.resolveDepth(d)
	if d == 0 {
		return 0
	}
	return r.path[d-1].childPos + 1
}

// End - позиция конца содержимого предка на глубине d.
func (r *ResolvedPos) End(d int) int {
	d = r.resolveDepth(d)
	return r.Start(d) + r.Node(d).ContentSize()
}

// Before - позиция перед предком на глубине d (d >= 1).
func (r *ResolvedPos) Before(d int) int {
	d = r.resolveDepth(d)
	if d == 0 {
		panic("doctree: there is no position before the root node")
	}
	return r.path[d-1].childPos
}

// After - позиция сразу после предка на глубине d (d >= 1).
func (r *ResolvedPos) After(d int) int {
	d = r.resolveDepth(d)
	if d == 0 {
		panic("doctree: there is no position after the root node")
	}
	return r.path[d-1].childPos + r.Node(d).NodeSize()
}

// TextOffset - смещение внутри текстового узла, если позиция указывает внутрь текста.
func (r *ResolvedPos) TextOffset() int {
	return r.Pos - r.path[r.Depth].childPos
}

// NodeAfter - ребенок родителя сразу после позиции или nil.
func (r *ResolvedPos) NodeAfter() *Node {
	parent := r.Parent()
	index := r.Index(r.Depth)
	if index >= len(parent.Content) {
		return nil
	}
	return parent.Content[index]
}
