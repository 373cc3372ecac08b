// Пакет transform - транзакционная модель редактирования дерева документа.
//
// Транзакция работает над собственной копией документа и применяется к сессии
// редактора целиком или не применяется вовсе. Перед применением результат
// проверяется по схеме.
//
// Основные возможности:
//   - Удаление и вставка диапазонов в пределах одного родителя, с разбиением текста.
//   - Вставка блока в позицию курсора по правилам размещения (замена пустого
//     текстового блока, вставка до/после, разбиение блока).
//   - Сессия редактора с выделением, историей отмены и повтора.
package transform

import (
	"errors"
	"fmt"

	"github.com/aisa-it/shopadmin/internal/pagecontent/editor/doctree"
)

var (
	ErrInvalidRange     = errors.New("range must start and end in the same parent")
	ErrStaleTransaction = errors.New("transaction was created for another document state")
)

type Transaction struct {
	base    *doctree.Node
	doc     *doctree.Node
	sel     Selection
	changed bool
}

func newTransaction(state EditorState) *Transaction {
	return &Transaction{
		base: state.Doc,
		doc:  state.Doc.Clone(),
		sel:  state.Selection,
	}
}

// Doc - текущий документ транзакции.
func (tr *Transaction) Doc() *doctree.Node {
	return tr.doc
}

func (tr *Transaction) Selection() Selection {
	return tr.sel
}

func (tr *Transaction) DocChanged() bool {
	return tr.changed
}

func (tr *Transaction) Resolve(pos int) (*doctree.ResolvedPos, error) {
	return doctree.Resolve(tr.doc, pos)
}

// SetSelection устанавливает выделение, позиции должны лежать внутри документа.
func (tr *Transaction) SetSelection(sel Selection) error {
	size := tr.doc.ContentSize()
	if sel.Anchor < 0 || sel.Anchor > size || sel.Head < 0 || sel.Head > size {
		return fmt.Errorf("%w: selection %d..%d", doctree.ErrPositionOutOfRange, sel.Anchor, sel.Head)
	}
	tr.sel = sel
	return nil
}

// Delete удаляет диапазон [from, to). Обе границы должны лежать в одном родителе.
func (tr *Transaction) Delete(from, to int) error {
	if from > to {
		from, to = to, from
	}
	if from == to {
		return nil
	}
	rFrom, err := tr.Resolve(from)
	if err != nil {
		return err
	}
	rTo, err := tr.Resolve(to)
	if err != nil {
		return err
	}
	if rFrom.Depth != rTo.Depth || rFrom.Parent() != rTo.Parent() {
		return fmt.Errorf("%w: %d..%d", ErrInvalidRange, from, to)
	}

	parent := rFrom.Parent()
	start := rFrom.Start(rFrom.Depth)
	i, err := splitAt(parent, from-start)
	if err != nil {
		return err
	}
	j, err := splitAt(parent, to-start)
	if err != nil {
		return err
	}
	parent.Content = append(parent.Content[:i:i], parent.Content[j:]...)
	joinText(parent)

	size := to - from
	tr.sel = tr.sel.mapPos(func(pos int) int {
		switch {
		case pos >= to:
			return pos - size
		case pos > from:
			return from
		}
		return pos
	})
	tr.changed = true
	return nil
}

// Insert вставляет узлы в позицию pos одной операцией, порядок узлов сохраняется.
// Последовательные вставки по одной и той же позиции добавляют узлы перед ранее
// вставленными.
func (tr *Transaction) Insert(pos int, nodes ...*doctree.Node) error {
	if len(nodes) == 0 {
		return nil
	}
	rp, err := tr.Resolve(pos)
	if err != nil {
		return err
	}
	parent := rp.Parent()
	i, err := splitAt(parent, rp.ParentOffset)
	if err != nil {
		return err
	}

	inserted := make([]*doctree.Node, 0, len(parent.Content)+len(nodes))
	inserted = append(inserted, parent.Content[:i]...)
	inserted = append(inserted, nodes...)
	inserted = append(inserted, parent.Content[i:]...)
	parent.Content = inserted
	joinText(parent)

	size := 0
	for _, n := range nodes {
		size += n.NodeSize()
	}
	tr.sel = tr.sel.mapPos(func(p int) int {
		if p > pos {
			return p + size
		}
		return p
	})
	tr.changed = true
	return nil
}

// InsertBlock вставляет блочный узел в позицию курсора и возвращает позицию перед ним.
// Внутри текстового блока: пустой блок заменяется, на краях узел встает до или после,
// в середине блок разбивается на две части.
func (tr *Transaction) InsertBlock(pos int, node *doctree.Node) (int, error) {
	rp, err := tr.Resolve(pos)
	if err != nil {
		return 0, err
	}
	d := rp.Depth
	parent := rp.Parent()
	if d == 0 || !parent.IsTextblock() {
		return pos, tr.Insert(pos, node)
	}

	before, after := rp.Before(d), rp.After(d)
	switch {
	case parent.ContentSize() == 0:
		if err := tr.Delete(before, after); err != nil {
			return 0, err
		}
		return before, tr.Insert(before, node)
	case rp.ParentOffset == 0:
		return before, tr.Insert(before, node)
	case rp.ParentOffset == parent.ContentSize():
		return after, tr.Insert(after, node)
	}

	i, err := splitAt(parent, rp.ParentOffset)
	if err != nil {
		return 0, err
	}
	right := doctree.New(parent.Type, doctree.CloneAttrs(parent.Attrs), parent.Content[i:]...)
	parent.Content = parent.Content[:i:i]
	at := before + parent.NodeSize()
	sel := tr.sel
	if err := tr.Insert(at, node, right); err != nil {
		return 0, err
	}
	// позиции за разрезом сдвигаются на вставленный узел и границы двух половин блока
	shift := 2 + node.NodeSize()
	tr.sel = sel.mapPos(func(p int) int {
		if p >= pos {
			return p + shift
		}
		return p
	})
	return at, nil
}

// splitAt возвращает индекс ребенка, начинающегося со смещения offset,
// разбивая текстовый узел, если смещение попадает внутрь него.
func splitAt(parent *doctree.Node, offset int) (int, error) {
	cur := 0
	for i, child := range parent.Content {
		if cur == offset {
			return i, nil
		}
		size := child.NodeSize()
		if offset < cur+size {
			if !child.IsText() {
				return 0, fmt.Errorf("%w: offset %d inside %s", ErrInvalidRange, offset, child.Type)
			}
			runes := []rune(child.Text)
			cut := offset - cur
			left := doctree.NewText(string(runes[:cut]), child.Marks...)
			right := doctree.NewText(string(runes[cut:]), child.Marks...)
			content := make([]*doctree.Node, 0, len(parent.Content)+1)
			content = append(content, parent.Content[:i]...)
			content = append(content, left, right)
			content = append(content, parent.Content[i+1:]...)
			parent.Content = content
			return i + 1, nil
		}
		cur += size
	}
	if cur != offset {
		return 0, fmt.Errorf("%w: offset %d beyond content size %d", doctree.ErrPositionOutOfRange, offset, cur)
	}
	return len(parent.Content), nil
}

// joinText склеивает соседние текстовые узлы с одинаковым форматированием.
func joinText(parent *doctree.Node) {
	content := parent.Content[:0:0]
	for _, child := range parent.Content {
		if n := len(content); n > 0 && child.IsText() && content[n-1].IsText() && doctree.MarksEqual(content[n-1].Marks, child.Marks) {
			content[n-1] = doctree.NewText(content[n-1].Text+child.Text, child.Marks...)
			continue
		}
		content = append(content, child)
	}
	parent.Content = content
}
