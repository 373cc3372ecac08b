package transform

import (
	"errors"
	"testing"

	"github.com/aisa-it/shopadmin/internal/pagecontent/editor/doctree"
	"github.com/aisa-it/shopadmin/internal/pagecontent/editor/extensions"
	"github.com/aisa-it/shopadmin/internal/pagecontent/editor/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var reg = extensions.NewSchema()

func p(text string) *doctree.Node {
	if text == "" {
		return doctree.New(doctree.TypeParagraph, nil)
	}
	return doctree.New(doctree.TypeParagraph, nil, doctree.NewText(text))
}

func doc(children ...*doctree.Node) *doctree.Node {
	return doctree.New(doctree.TypeDoc, nil, children...)
}

func columns(cols ...*doctree.Node) *doctree.Node {
	return doctree.New(doctree.TypeColumnsBlock, &doctree.ColumnsAttrs{Cols: len(cols)}, cols...)
}

func column(children ...*doctree.Node) *doctree.Node {
	return doctree.New(doctree.TypeColumn, nil, children...)
}

func newEditor(t *testing.T, d *doctree.Node, sel Selection, opts ...Option) *Editor {
	t.Helper()
	ed, err := NewEditor(reg, d, sel, opts...)
	require.NoError(t, err)
	return ed
}

func assertDoc(t *testing.T, want, got *doctree.Node) {
	t.Helper()
	if !want.Equal(got) {
		t.Fatalf("documents differ\nwant: %s\n got: %s", want, got)
	}
}

func TestDeleteText(t *testing.T) {
	ed := newEditor(t, doc(p("hello")), Cursor(5))
	tr := ed.NewTransaction()

	require.NoError(t, tr.Delete(2, 4))
	assertDoc(t, doc(p("hlo")), tr.Doc())
	assert.Equal(t, Cursor(3), tr.Selection())
	assert.True(t, tr.DocChanged())

	// исходный документ сессии не изменился
	assertDoc(t, doc(p("hello")), ed.State().Doc)
}

func TestDeleteJoinsText(t *testing.T) {
	bold := doctree.Mark{Type: doctree.MarkBold}
	d := doc(doctree.New(doctree.TypeParagraph, nil,
		doctree.NewText("ab"),
		doctree.NewText("X", bold),
		doctree.NewText("cd"),
	))
	ed := newEditor(t, d, Cursor(0))
	tr := ed.NewTransaction()

	require.NoError(t, tr.Delete(3, 4))
	assertDoc(t, doc(p("abcd")), tr.Doc())
}

func TestDeleteAcrossParents(t *testing.T) {
	ed := newEditor(t, doc(p("ab"), p("cd")), Cursor(0))
	tr := ed.NewTransaction()

	err := tr.Delete(2, 6)
	assert.True(t, errors.Is(err, ErrInvalidRange))
	assert.False(t, tr.DocChanged())
}

func TestDeleteOutOfRange(t *testing.T) {
	ed := newEditor(t, doc(p("ab")), Cursor(0))
	err := ed.NewTransaction().Delete(0, 10)
	assert.True(t, errors.Is(err, doctree.ErrPositionOutOfRange))
}

func TestInsertRepeatedPrepends(t *testing.T) {
	ed := newEditor(t, doc(p("x")), Cursor(0))
	tr := ed.NewTransaction()

	require.NoError(t, tr.Insert(0, p("A")))
	require.NoError(t, tr.Insert(0, p("B")))
	assertDoc(t, doc(p("B"), p("A"), p("x")), tr.Doc())
}

func TestInsertBatchedKeepsOrder(t *testing.T) {
	ed := newEditor(t, doc(p("x")), Cursor(2))
	tr := ed.NewTransaction()

	require.NoError(t, tr.Insert(0, p("A"), p("B")))
	assertDoc(t, doc(p("A"), p("B"), p("x")), tr.Doc())
	assert.Equal(t, Cursor(8), tr.Selection(), "selection after the insertion point moves by inserted size")
}

func TestInsertText(t *testing.T) {
	ed := newEditor(t, doc(p("ad")), Cursor(0))
	tr := ed.NewTransaction()

	require.NoError(t, tr.Insert(2, doctree.NewText("bc")))
	assertDoc(t, doc(p("abcd")), tr.Doc())
}

func TestInsertBlockPlacement(t *testing.T) {
	block := func() *doctree.Node {
		return columns(column(p("")), column(p("")))
	}

	cases := []struct {
		name   string
		doc    *doctree.Node
		pos    int
		want   *doctree.Node
		wantAt int
	}{
		{"empty paragraph is replaced", doc(p("")), 1, doc(block()), 0},
		{"doc level", doc(p("")), 0, doc(block(), p("")), 0},
		{"start of paragraph", doc(p("ab")), 1, doc(block(), p("ab")), 0},
		{"end of paragraph", doc(p("ab")), 3, doc(p("ab"), block()), 4},
		{"middle of paragraph", doc(p("abcd")), 3, doc(p("ab"), block(), p("cd")), 4},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ed := newEditor(t, c.doc, Cursor(c.pos))
			tr := ed.NewTransaction()

			at, err := tr.InsertBlock(c.pos, block())
			require.NoError(t, err)
			assert.Equal(t, c.wantAt, at)
			assertDoc(t, c.want, tr.Doc())
			require.NoError(t, reg.Validate(tr.Doc()))
		})
	}
}

func TestInsertBlockSplitMapsSelection(t *testing.T) {
	ed := newEditor(t, doc(p("abcd")), Selection{Anchor: 2, Head: 4})
	tr := ed.NewTransaction()

	node := columns(column(p("")), column(p("")))
	_, err := tr.InsertBlock(3, node)
	require.NoError(t, err)

	assert.Equal(t, Selection{Anchor: 2, Head: 4 + 2 + node.NodeSize()}, tr.Selection())
	rp, err := tr.Resolve(tr.Selection().Head)
	require.NoError(t, err)
	assert.Equal(t, "cd", rp.Parent().TextContent())
}

func TestSetSelectionOutOfRange(t *testing.T) {
	ed := newEditor(t, doc(p("ab")), Cursor(0))
	tr := ed.NewTransaction()
	assert.Error(t, tr.SetSelection(Cursor(5)))
	assert.NoError(t, tr.SetSelection(Selection{Anchor: 3, Head: 1}))
	assert.Equal(t, 1, tr.Selection().From())
	assert.Equal(t, 3, tr.Selection().To())
}

func TestDispatchRejectsSchemaViolation(t *testing.T) {
	original := doc(columns(column(p("A")), column(p("B"))))
	ed := newEditor(t, original, Cursor(3))
	before := ed.State()

	tr := ed.NewTransaction()
	// удаление второй колонки оставляет блок с одной колонкой
	require.NoError(t, tr.Delete(6, 11))
	err := ed.Dispatch(tr)

	var v *schema.SchemaViolation
	require.True(t, errors.As(err, &v))
	assert.Equal(t, doctree.TypeColumnsBlock, v.Type)
	assert.Same(t, before.Doc, ed.State().Doc)
	assert.Equal(t, before.Selection, ed.State().Selection)
	assert.False(t, ed.CanUndo())
}

func TestDispatchStaleTransaction(t *testing.T) {
	ed := newEditor(t, doc(p("ab")), Cursor(0))
	first := ed.NewTransaction()
	second := ed.NewTransaction()

	require.NoError(t, first.Insert(0, p("x")))
	require.NoError(t, ed.Dispatch(first))

	require.NoError(t, second.Insert(0, p("y")))
	assert.ErrorIs(t, ed.Dispatch(second), ErrStaleTransaction)
	assertDoc(t, doc(p("x"), p("ab")), ed.State().Doc)
}

func TestNewEditorValidates(t *testing.T) {
	_, err := NewEditor(reg, doc(), Cursor(0))
	assert.ErrorIs(t, err, schema.ErrSchemaViolation)
}
