package transform

import (
	"log/slog"
	"sync"

	"github.com/aisa-it/shopadmin/internal/pagecontent/editor/doctree"
	"github.com/aisa-it/shopadmin/internal/pagecontent/editor/schema"
)

const DefaultHistoryLimit = 100

// Editor - сессия редактирования одного документа. Одновременно применяется
// не более одной транзакции.
type Editor struct {
	mu    sync.Mutex
	reg   *schema.Registry
	state EditorState
	hist  historyState
	limit int
}

type Option func(*Editor)

// WithHistoryLimit ограничивает глубину истории отмены. 0 отключает историю.
func WithHistoryLimit(limit int) Option {
	return func(e *Editor) {
		e.limit = limit
	}
}

// NewEditor создает сессию над проверенным документом.
func NewEditor(reg *schema.Registry, doc *doctree.Node, sel Selection, opts ...Option) (*Editor, error) {
	if err := reg.Validate(doc); err != nil {
		return nil, err
	}
	e := &Editor{
		reg:   reg,
		state: EditorState{Doc: doc, Selection: sel.clamp(doc)},
		limit: DefaultHistoryLimit,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

func (e *Editor) Schema() *schema.Registry {
	return e.reg
}

// State возвращает текущий снимок. Документ снимка не изменяется транзакциями.
func (e *Editor) State() EditorState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// SetSelection меняет выделение без изменения документа и без записи в историю.
func (e *Editor) SetSelection(sel Selection) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	tr := newTransaction(e.state)
	if err := tr.SetSelection(sel); err != nil {
		return err
	}
	e.state.Selection = tr.sel
	return nil
}

// NewTransaction начинает транзакцию над текущим состоянием.
func (e *Editor) NewTransaction() *Transaction {
	e.mu.Lock()
	defer e.mu.Unlock()
	return newTransaction(e.state)
}

// Dispatch применяет транзакцию. При нарушении схемы возвращается *schema.SchemaViolation,
// состояние и история не меняются.
func (e *Editor) Dispatch(tr *Transaction) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dispatch(tr)
}

func (e *Editor) dispatch(tr *Transaction) error {
	if tr.base != e.state.Doc {
		return ErrStaleTransaction
	}
	if !tr.changed {
		e.state.Selection = tr.sel
		return nil
	}
	if err := e.reg.Validate(tr.doc); err != nil {
		slog.Debug("Transaction rejected", "err", err)
		return err
	}
	e.recordUndo(e.state)
	e.state = EditorState{Doc: tr.doc, Selection: tr.sel.clamp(tr.doc)}
	return nil
}

// Exec выполняет функцию над новой транзакцией и применяет ее, если функция вернула true.
// Вся последовательность выполняется под блокировкой сессии.
func (e *Editor) Exec(fn func(tr *Transaction) bool) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	tr := newTransaction(e.state)
	if !fn(tr) {
		return false, nil
	}
	if err := e.dispatch(tr); err != nil {
		return false, err
	}
	return true, nil
}
