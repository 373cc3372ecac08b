package editor

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/aisa-it/shopadmin/internal/pagecontent/editor/doctree"
	"github.com/aisa-it/shopadmin/internal/pagecontent/editor/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// treeGen строит случайные деревья, проходящие проверку схемы.
type treeGen struct {
	rnd *rand.Rand
}

const genLetters = "abcdefghijklmnopqrstuvwxyzабвгдеж <>&\"'"

func (g treeGen) word() string {
	n := 1 + g.rnd.Intn(8)
	var b strings.Builder
	for range n {
		r := []rune(genLetters)
		b.WriteRune(r[g.rnd.Intn(len(r))])
	}
	// пробельный текст отбрасывается парсером только между блоками, не внутри них
	return b.String()
}

func (g treeGen) marks() []doctree.Mark {
	var marks []doctree.Mark
	for _, t := range []doctree.MarkType{doctree.MarkBold, doctree.MarkItalic, doctree.MarkUnderline, doctree.MarkStrike, doctree.MarkCode} {
		if g.rnd.Intn(4) == 0 {
			marks = doctree.AddMark(marks, doctree.Mark{Type: t})
		}
	}
	if g.rnd.Intn(6) == 0 {
		marks = doctree.AddMark(marks, doctree.Mark{Type: doctree.MarkLink, Href: "/p/" + string(rune('a'+g.rnd.Intn(26)))})
	}
	return marks
}

func (g treeGen) inline() []*doctree.Node {
	var out []*doctree.Node
	for range g.rnd.Intn(5) {
		if g.rnd.Intn(6) == 0 {
			out = append(out, doctree.New(doctree.TypeHardBreak, nil))
			continue
		}
		n := doctree.NewText(g.word(), g.marks()...)
		if last := len(out) - 1; last >= 0 && out[last].IsText() && doctree.MarksEqual(out[last].Marks, n.Marks) {
			out[last].Text += n.Text
			continue
		}
		out = append(out, n)
	}
	return out
}

var floatWidths = []string{"40%", "25%", "300px", "12.5em", "50vh", "300pt", "2rem", "60ch", "80vw"}

func (g treeGen) image() *doctree.Node {
	a := &doctree.ImageAttrs{Src: "/img/" + g.word(), FloatWidth: doctree.DefaultFloatWidth}
	if g.rnd.Intn(2) == 0 {
		a.Alt = g.word()
	}
	switch g.rnd.Intn(3) {
	case 1:
		a.Float = doctree.FloatPtr(doctree.FloatLeft)
		a.FloatWidth = floatWidths[g.rnd.Intn(len(floatWidths))]
	case 2:
		a.Float = doctree.FloatPtr(doctree.FloatRight)
		a.FloatWidth = floatWidths[g.rnd.Intn(len(floatWidths))]
	}
	return doctree.New(doctree.TypeImage, a)
}

func (g treeGen) listItem(depth int) *doctree.Node {
	children := []*doctree.Node{doctree.New(doctree.TypeParagraph, nil, g.inline()...)}
	if depth > 0 && g.rnd.Intn(3) == 0 {
		children = append(children, g.block(depth-1))
	}
	return doctree.New(doctree.TypeListItem, nil, children...)
}

func (g treeGen) blocks(depth int) []*doctree.Node {
	n := 1 + g.rnd.Intn(3)
	out := make([]*doctree.Node, 0, n)
	for range n {
		out = append(out, g.block(depth))
	}
	return out
}

func (g treeGen) block(depth int) *doctree.Node {
	kind := g.rnd.Intn(9)
	if depth <= 0 {
		kind = g.rnd.Intn(4)
	}
	switch kind {
	case 0:
		return doctree.New(doctree.TypeParagraph, nil, g.inline()...)
	case 1:
		return doctree.New(doctree.TypeHeading, &doctree.HeadingAttrs{Level: 1 + g.rnd.Intn(6)}, g.inline()...)
	case 2:
		return g.image()
	case 3:
		lang := []string{"", "go", "sql"}[g.rnd.Intn(3)]
		node := doctree.New(doctree.TypeCodeBlock, &doctree.CodeBlockAttrs{Language: lang})
		if g.rnd.Intn(3) > 0 {
			node.Content = []*doctree.Node{doctree.NewText("x" + g.word())}
		}
		return node
	case 4:
		return doctree.New(doctree.TypeBlockquote, nil, g.blocks(depth-1)...)
	case 5:
		items := make([]*doctree.Node, 1+g.rnd.Intn(3))
		for i := range items {
			items[i] = g.listItem(depth - 1)
		}
		return doctree.New(doctree.TypeBulletList, nil, items...)
	case 6:
		items := make([]*doctree.Node, 1+g.rnd.Intn(2))
		for i := range items {
			items[i] = g.listItem(depth - 1)
		}
		return doctree.New(doctree.TypeOrderedList, &doctree.OrderedListAttrs{Start: 1 + g.rnd.Intn(5)}, items...)
	default:
		cols := 2 + g.rnd.Intn(2)
		columns := make([]*doctree.Node, cols)
		for i := range columns {
			columns[i] = doctree.New(doctree.TypeColumn, nil, g.blocks(depth-1)...)
		}
		return doctree.New(doctree.TypeColumnsBlock, &doctree.ColumnsAttrs{Cols: cols}, columns...)
	}
}

func (g treeGen) doc() *doctree.Node {
	return doctree.New(doctree.TypeDoc, nil, g.blocks(3)...)
}

func TestRoundTripRandomTrees(t *testing.T) {
	g := treeGen{rnd: rand.New(rand.NewSource(20240611))}

	for i := range 500 {
		doc := g.doc()
		require.NoError(t, reg.Validate(doc), "generated tree #%d is invalid: %s", i, doc)

		out := Render(reg, doc)
		parsed, err := Load(reg, strings.NewReader(out))
		require.NoError(t, err, "tree #%d: %s", i, out)

		if !doc.Equal(parsed) {
			t.Fatalf("round trip #%d differs\nhtml: %s\nwant:\n%s\n got:\n%s", i, out, doctree.Dump(doc), doctree.Dump(parsed))
		}
		require.Equal(t, out, Render(reg, parsed), "tree #%d: render is not stable", i)
	}
}

func TestRoundTripRejectsUnreadableImageAttrs(t *testing.T) {
	for _, width := range []string{"calc(50% - 1rem)", "auto", ""} {
		doc := doctree.New(doctree.TypeDoc, nil, doctree.New(doctree.TypeImage,
			&doctree.ImageAttrs{Src: "/a.png", Float: doctree.FloatPtr(doctree.FloatLeft), FloatWidth: width}))
		assert.ErrorIs(t, reg.Validate(doc), schema.ErrSchemaViolation, width)
	}

	for _, width := range []string{"50vh", "300pt"} {
		doc := doctree.New(doctree.TypeDoc, nil, doctree.New(doctree.TypeImage,
			&doctree.ImageAttrs{Src: "/a.png", Float: doctree.FloatPtr(doctree.FloatRight), FloatWidth: width}))
		require.NoError(t, reg.Validate(doc))

		parsed, err := Load(reg, strings.NewReader(Render(reg, doc)))
		require.NoError(t, err)
		assert.True(t, doc.Equal(parsed), "width %s: %s", width, doctree.Dump(parsed))
	}
}

func TestRoundTripFixture(t *testing.T) {
	src := `<h1>Доставка</h1>` +
		`<div data-type="columnsBlock" data-cols="3" class="columns-block columns-block-cols-3">` +
		`<div data-type="column" class="column"><p>A</p><img src="/a.png" data-float="left" data-float-width="30%" class="content-image content-image-float-left" style="max-width: 30%"/></div>` +
		`<div data-type="column" class="column"><ul><li><p>B</p></li></ul></div>` +
		`<div data-type="column" class="column"><blockquote><p><em>C</em></p></blockquote></div>` +
		`</div>` +
		`<pre data-language="go">fmt.Println(1)</pre>`

	doc, err := Load(reg, strings.NewReader(src))
	require.NoError(t, err)
	require.Equal(t, src, Render(reg, doc))
}
