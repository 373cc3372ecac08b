package tiptap

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/aisa-it/shopadmin/internal/pagecontent/editor/doctree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const columnsJSON = `{
  "type": "doc",
  "content": [
    {"type": "heading", "attrs": {"level": 2}, "content": [{"type": "text", "text": "Доставка"}]},
    {"type": "columnsBlock", "attrs": {"cols": 2}, "content": [
      {"type": "column", "content": [
        {"type": "paragraph", "content": [
          {"type": "text", "text": "A", "marks": [{"type": "italic"}, {"type": "bold"}]},
          {"type": "hardBreak"},
          {"type": "text", "text": "link", "marks": [{"type": "link", "attrs": {"href": "/x"}}]}
        ]}
      ]},
      {"type": "column", "content": [
        {"type": "image", "attrs": {"src": "/a.png", "float": "right", "floatWidth": "30%"}},
        {"type": "image", "attrs": {"src": "/b.png", "float": null}}
      ]}
    ]},
    {"type": "table", "content": []},
    {"type": "codeBlock", "attrs": {"language": null}, "content": [{"type": "text", "text": "x := 1"}]}
  ]
}`

func TestParseJSON(t *testing.T) {
	doc, err := ParseJSON(strings.NewReader(columnsJSON))
	require.NoError(t, err)

	// неизвестная нода table пропускается
	require.Len(t, doc.Content, 3)

	heading := doc.Content[0]
	assert.Equal(t, doctree.TypeHeading, heading.Type)
	assert.Equal(t, 2, heading.Attrs.(*doctree.HeadingAttrs).Level)

	block := doc.Content[1]
	assert.Equal(t, 2, block.Attrs.(*doctree.ColumnsAttrs).Cols)
	require.Len(t, block.Content, 2)

	para := block.Content[0].Content[0]
	require.Len(t, para.Content, 3)
	assert.Equal(t, []doctree.Mark{{Type: doctree.MarkBold}, {Type: doctree.MarkItalic}}, para.Content[0].Marks)
	assert.Equal(t, doctree.TypeHardBreak, para.Content[1].Type)
	assert.Equal(t, []doctree.Mark{{Type: doctree.MarkLink, Href: "/x"}}, para.Content[2].Marks)

	floated := block.Content[1].Content[0].Attrs.(*doctree.ImageAttrs)
	require.NotNil(t, floated.Float)
	assert.Equal(t, doctree.FloatRight, *floated.Float)
	assert.Equal(t, "30%", floated.FloatWidth)

	plain := block.Content[1].Content[1].Attrs.(*doctree.ImageAttrs)
	assert.Nil(t, plain.Float)
	assert.Equal(t, doctree.DefaultFloatWidth, plain.FloatWidth)

	code := doc.Content[2]
	assert.Equal(t, "", code.Attrs.(*doctree.CodeBlockAttrs).Language)
	assert.Equal(t, "x := 1", code.TextContent())
}

func TestSerializeRoundTrip(t *testing.T) {
	doc, err := ParseJSON(strings.NewReader(columnsJSON))
	require.NoError(t, err)

	data, err := Serialize(doc)
	require.NoError(t, err)

	again, err := ParseJSON(strings.NewReader(string(data)))
	require.NoError(t, err)
	if !doc.Equal(again) {
		t.Fatalf("round trip differs\nwant: %s\n got: %s", doc, again)
	}
}

func TestSerializeAttrs(t *testing.T) {
	doc := doctree.New(doctree.TypeDoc, nil,
		doctree.New(doctree.TypeImage, &doctree.ImageAttrs{Src: "/a.png", FloatWidth: "40%"}),
	)
	data, err := Serialize(doc)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"doc","content":[{"type":"image","attrs":{"src":"/a.png","float":null,"floatWidth":"40%"}}]}`, string(data))
}

func TestParseEmptyDocument(t *testing.T) {
	doc, err := ParseJSON(strings.NewReader(`{"type":"doc"}`))
	require.NoError(t, err)
	require.Len(t, doc.Content, 1)
	assert.Equal(t, doctree.TypeParagraph, doc.Content[0].Type)
}

func TestDocumentScanValue(t *testing.T) {
	src := NewDocument(doctree.New(doctree.TypeDoc, nil,
		doctree.New(doctree.TypeParagraph, nil, doctree.NewText("hi"))))

	v, err := src.Value()
	require.NoError(t, err)

	var dst Document
	require.NoError(t, dst.Scan(v))
	assert.True(t, src.Root.Equal(dst.Root))

	require.NoError(t, dst.Scan(string(v.([]byte))))
	assert.True(t, src.Root.Equal(dst.Root))

	require.NoError(t, dst.Scan(nil))
	assert.Nil(t, dst.Root)
	assert.Error(t, dst.Scan(42))
}

func TestDocumentJSONField(t *testing.T) {
	type page struct {
		Document Document `json:"document"`
	}
	var p page
	require.NoError(t, json.Unmarshal([]byte(`{"document":`+columnsJSON+`}`), &p))
	require.NotNil(t, p.Document.Root)

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"columnsBlock"`)
}

func TestParseImageWidthNormalized(t *testing.T) {
	doc, err := ParseJSON(strings.NewReader(`{"type":"doc","content":[
		{"type":"image","attrs":{"src":"/a.png","float":"left","floatWidth":"calc(50% - 1rem)"}},
		{"type":"image","attrs":{"src":"/b.png","floatWidth":"30%"}},
		{"type":"image","attrs":{"src":"/c.png","float":"right","floatWidth":"300pt"}}
	]}`))
	require.NoError(t, err)

	widths := make([]string, 0, len(doc.Content))
	for _, n := range doc.Content {
		widths = append(widths, n.Attrs.(*doctree.ImageAttrs).FloatWidth)
	}
	assert.Equal(t, []string{doctree.DefaultFloatWidth, doctree.DefaultFloatWidth, "300pt"}, widths)
}
