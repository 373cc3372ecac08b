package schema

import (
	"errors"
	"testing"

	"github.com/aisa-it/shopadmin/internal/pagecontent/editor/doctree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testAttrs = doctree.ColumnsAttrs

// testRegistry - минимальная схема: doc > block+, параграфы, контейнеры с колонками.
func testRegistry(t *testing.T) *Registry {
	t.Helper()
	r := NewRegistry()
	require.NoError(t, r.Register(NodeTypeDefinition{Name: doctree.TypeDoc, Content: "block+"}))
	require.NoError(t, r.Register(NodeTypeDefinition{Name: doctree.TypeParagraph, Group: "block", Content: "inline*"}))
	require.NoError(t, r.Register(NodeTypeDefinition{
		Name:       doctree.TypeColumnsBlock,
		Group:      "block",
		Content:    "column{2,3}",
		Attributes: []AttributeSpec{{Name: "cols", Default: 2}},
	}))
	require.NoError(t, r.Register(NodeTypeDefinition{Name: doctree.TypeColumn, Group: "column", Content: "block+"}))
	require.NoError(t, r.Register(NodeTypeDefinition{Name: doctree.TypeText, Group: "inline", Inline: true}))
	require.NoError(t, r.RegisterMark(MarkDefinition{Name: doctree.MarkBold, Tags: []string{"strong"}}))
	return r
}

func TestParseContentExpr(t *testing.T) {
	for _, src := range []string{"block+", "inline*", "column{2,3}", "paragraph block*", "column{2}", "column{1,}", "heading? block", ""} {
		e, err := ParseContentExpr(src)
		require.NoError(t, err, src)
		assert.Equal(t, src, e.String())
		assert.Equal(t, src == "", e.IsLeaf(), src)
	}

	for _, bad := range []string{"block++", "{2,3}", "column{3,2}", "1block"} {
		_, err := ParseContentExpr(bad)
		assert.Error(t, err, bad)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	r := testRegistry(t)
	err := r.Register(NodeTypeDefinition{Name: doctree.TypeParagraph, Group: "block", Content: "inline*"})
	assert.Error(t, err)
}

func TestValidateColumnsCount(t *testing.T) {
	r := testRegistry(t)
	col := func() *doctree.Node {
		return doctree.New(doctree.TypeColumn, nil, doctree.New(doctree.TypeParagraph, nil))
	}

	valid := doctree.New(doctree.TypeDoc, nil,
		doctree.New(doctree.TypeColumnsBlock, &testAttrs{Cols: 2}, col(), col()))
	assert.NoError(t, r.Validate(valid))

	one := doctree.New(doctree.TypeDoc, nil,
		doctree.New(doctree.TypeColumnsBlock, &testAttrs{Cols: 2}, col()))
	err := r.Validate(one)
	require.Error(t, err)
	var v *SchemaViolation
	require.True(t, errors.As(err, &v))
	assert.Equal(t, doctree.TypeColumnsBlock, v.Type)
	assert.Equal(t, "/0", v.PathString())
	assert.True(t, errors.Is(err, ErrSchemaViolation))

	four := doctree.New(doctree.TypeDoc, nil,
		doctree.New(doctree.TypeColumnsBlock, &testAttrs{Cols: 2}, col(), col(), col(), col()))
	assert.Error(t, r.Validate(four))
}

func TestValidateReportsPath(t *testing.T) {
	r := testRegistry(t)
	doc := doctree.New(doctree.TypeDoc, nil,
		doctree.New(doctree.TypeParagraph, nil, doctree.NewText("ok")),
		doctree.New(doctree.TypeColumnsBlock, &testAttrs{Cols: 2},
			doctree.New(doctree.TypeColumn, nil, doctree.New(doctree.TypeParagraph, nil)),
			doctree.New(doctree.TypeColumn, nil),
		),
	)

	err := r.Validate(doc)
	var v *SchemaViolation
	require.True(t, errors.As(err, &v))
	assert.Equal(t, doctree.TypeColumn, v.Type)
	assert.Equal(t, []int{1, 1}, v.Path)
}

func TestValidateNodeRules(t *testing.T) {
	r := testRegistry(t)
	wrap := func(children ...*doctree.Node) *doctree.Node {
		return doctree.New(doctree.TypeDoc, nil, doctree.New(doctree.TypeParagraph, nil, children...))
	}

	assert.NoError(t, r.Validate(wrap(doctree.NewText("a", doctree.Mark{Type: doctree.MarkBold}))))
	assert.Error(t, r.Validate(wrap(doctree.NewText(""))), "empty text")
	assert.Error(t, r.Validate(wrap(doctree.NewText("a", doctree.Mark{Type: doctree.MarkCode}))), "unregistered mark")
	assert.Error(t, r.Validate(wrap(doctree.New(doctree.TypeImage, nil))), "unknown type")
	assert.Error(t, r.Validate(doctree.New(doctree.TypeParagraph, nil)), "root must be doc")
	assert.Error(t, r.Validate(doctree.New(doctree.TypeDoc, nil)), "doc requires a block")
	assert.Error(t, r.Validate(doctree.New(doctree.TypeDoc, nil,
		doctree.New(doctree.TypeColumnsBlock, nil,
			doctree.New(doctree.TypeColumn, nil, doctree.New(doctree.TypeParagraph, nil)),
			doctree.New(doctree.TypeColumn, nil, doctree.New(doctree.TypeParagraph, nil)),
		))), "attributes are required")
}

func TestCreateAndFill(t *testing.T) {
	r := testRegistry(t)

	col, err := r.CreateAndFill(doctree.TypeColumn, nil)
	require.NoError(t, err)
	require.Len(t, col.Content, 1)
	assert.Equal(t, doctree.TypeParagraph, col.Content[0].Type)
	assert.Zero(t, col.Content[0].ContentSize())

	block, err := r.CreateAndFill(doctree.TypeColumnsBlock, &testAttrs{Cols: 3})
	require.NoError(t, err)
	assert.Len(t, block.Content, 2, "missing columns are filled up to the minimum")

	_, err = r.CreateAndFill(doctree.TypeColumnsBlock, nil)
	assert.Error(t, err)

	_, err = r.CreateAndFill(doctree.TypeColumn, nil, doctree.NewText("x"))
	assert.Error(t, err)
}

func TestInGroup(t *testing.T) {
	r := testRegistry(t)
	assert.True(t, r.InGroup(doctree.TypeParagraph, "block"))
	assert.False(t, r.InGroup(doctree.TypeColumn, "block"))
	assert.Nil(t, r.Definition(doctree.TypeImage))
}
