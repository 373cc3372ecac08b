// Пакет commands - структурные команды редактора контента страниц.
//
// Команда получает доступ к документу только через примитивы хоста (Host):
// текущее выделение, разрешение позиции и вставку/удаление узлов. Команда
// возвращает true, если изменения нужно применить. Ошибки хоста превращаются
// в false, и транзакция отбрасывается целиком.
//
// Основные возможности:
//   - insertColumns(n): вставка блока из 2 или 3 колонок в позицию выделения.
//   - unsetColumns(): разворачивание ближайшего блока колонок в плоскую
//     последовательность блоков с сохранением порядка.
package commands

import (
	"log/slog"

	"github.com/aisa-it/shopadmin/internal/pagecontent/editor/doctree"
	"github.com/aisa-it/shopadmin/internal/pagecontent/editor/schema"
	"github.com/aisa-it/shopadmin/internal/pagecontent/editor/transform"
)

// Host - транзакционные примитивы, которые команды используют для изменения дерева.
type Host interface {
	Doc() *doctree.Node
	Selection() transform.Selection
	SetSelection(sel transform.Selection) error
	Resolve(pos int) (*doctree.ResolvedPos, error)
	Delete(from, to int) error
	Insert(pos int, nodes ...*doctree.Node) error
	InsertBlock(pos int, node *doctree.Node) (int, error)
}

var _ Host = (*transform.Transaction)(nil)

type Command func(h Host) bool

// Run выполняет команду в отдельной транзакции сессии редактора.
func Run(ed *transform.Editor, cmd Command) (bool, error) {
	return ed.Exec(func(tr *transform.Transaction) bool {
		return cmd(tr)
	})
}

// InsertColumns вставляет блок из cols колонок, в каждой по пустому параграфу.
// Курсор переносится в первую колонку.
func InsertColumns(reg *schema.Registry, cols int) Command {
	return func(h Host) bool {
		if cols != 2 && cols != 3 {
			slog.Debug("insertColumns: unsupported columns count", "cols", cols)
			return false
		}

		columns := make([]*doctree.Node, 0, cols)
		for range cols {
			col, err := reg.CreateAndFill(doctree.TypeColumn, nil)
			if err != nil {
				slog.Error("Create column", "err", err)
				return false
			}
			columns = append(columns, col)
		}
		block, err := reg.CreateAndFill(doctree.TypeColumnsBlock, &doctree.ColumnsAttrs{Cols: cols}, columns...)
		if err != nil {
			slog.Error("Create columns block", "err", err)
			return false
		}

		sel := h.Selection()
		if !sel.Empty() {
			if err := h.Delete(sel.From(), sel.To()); err != nil {
				slog.Debug("insertColumns: selection can't be replaced", "err", err)
				return false
			}
		}
		at, err := h.InsertBlock(sel.From(), block)
		if err != nil {
			slog.Debug("insertColumns: block can't be placed", "pos", sel.From(), "err", err)
			return false
		}
		// блок колонок допустим не в любом родителе (между колонками, первым в listItem)
		if err := reg.Validate(h.Doc()); err != nil {
			slog.Debug("insertColumns: placement rejected by schema", "pos", sel.From(), "err", err)
			return false
		}

		// блок -> колонка -> параграф
		if err := h.SetSelection(transform.Cursor(at + 3)); err != nil {
			return false
		}
		return true
	}
}

// UnsetColumns заменяет ближайший объемлющий блок колонок его содержимым.
// Содержимое колонок идет подряд: слева направо, сверху вниз внутри колонки.
func UnsetColumns() Command {
	return func(h Host) bool {
		rp, err := h.Resolve(h.Selection().From())
		if err != nil {
			return false
		}

		depth := -1
		for d := rp.Depth; d > 0; d-- {
			if rp.Node(d).Type == doctree.TypeColumnsBlock {
				depth = d
				break
			}
		}
		if depth < 0 {
			return false
		}

		block := rp.Node(depth)
		var content []*doctree.Node
		block.Descendants(func(node *doctree.Node, _ int, parent *doctree.Node, _ int) bool {
			if parent.Type == doctree.TypeColumn {
				content = append(content, node)
				return false
			}
			return true
		})

		start, end := rp.Before(depth), rp.After(depth)
		if err := h.Delete(start, end); err != nil {
			slog.Debug("unsetColumns: delete block", "err", err)
			return false
		}
		if err := h.Insert(start, content...); err != nil {
			slog.Debug("unsetColumns: insert content", "err", err)
			return false
		}

		cursor := start
		if len(content) > 0 && !content[0].IsLeaf() {
			cursor++
		}
		if err := h.SetSelection(transform.Cursor(cursor)); err != nil {
			return false
		}
		return true
	}
}
