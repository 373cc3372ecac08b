package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func insertParagraph(t *testing.T, ed *Editor, text string) {
	t.Helper()
	ok, err := ed.Exec(func(tr *Transaction) bool {
		return tr.Insert(0, p(text)) == nil
	})
	require.NoError(t, err)
	require.True(t, ok)
}

func TestUndoRedo(t *testing.T) {
	ed := newEditor(t, doc(p("x")), Cursor(1))
	insertParagraph(t, ed, "A")
	insertParagraph(t, ed, "B")
	assertDoc(t, doc(p("B"), p("A"), p("x")), ed.State().Doc)

	require.True(t, ed.Undo())
	assertDoc(t, doc(p("A"), p("x")), ed.State().Doc)
	require.True(t, ed.Undo())
	assertDoc(t, doc(p("x")), ed.State().Doc)
	assert.Equal(t, Cursor(1), ed.State().Selection)
	assert.False(t, ed.Undo())

	require.True(t, ed.Redo())
	assertDoc(t, doc(p("A"), p("x")), ed.State().Doc)

	// новое изменение очищает стек повтора
	insertParagraph(t, ed, "C")
	assert.False(t, ed.CanRedo())
	assertDoc(t, doc(p("C"), p("A"), p("x")), ed.State().Doc)
}

func TestHistoryLimit(t *testing.T) {
	ed := newEditor(t, doc(p("x")), Cursor(0), WithHistoryLimit(2))
	insertParagraph(t, ed, "A")
	insertParagraph(t, ed, "B")
	insertParagraph(t, ed, "C")

	assert.True(t, ed.Undo())
	assert.True(t, ed.Undo())
	assert.False(t, ed.Undo())
	assertDoc(t, doc(p("A"), p("x")), ed.State().Doc)
}

func TestHistoryDisabled(t *testing.T) {
	ed := newEditor(t, doc(p("x")), Cursor(0), WithHistoryLimit(0))
	insertParagraph(t, ed, "A")
	assert.False(t, ed.CanUndo())
}

func TestExecFalseKeepsState(t *testing.T) {
	ed := newEditor(t, doc(p("x")), Cursor(0))
	before := ed.State().Doc

	ok, err := ed.Exec(func(tr *Transaction) bool {
		require.NoError(t, tr.Insert(0, p("A")))
		return false
	})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Same(t, before, ed.State().Doc)
	assert.False(t, ed.CanUndo())
}

func TestSelectionOnlyTransaction(t *testing.T) {
	ed := newEditor(t, doc(p("abc")), Cursor(0))
	ok, err := ed.Exec(func(tr *Transaction) bool {
		return tr.SetSelection(Cursor(2)) == nil
	})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, Cursor(2), ed.State().Selection)
	assert.False(t, ed.CanUndo(), "selection changes are not recorded")
}
