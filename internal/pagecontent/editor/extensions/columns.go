package extensions

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/aisa-it/shopadmin/internal/pagecontent/editor/doctree"
	"github.com/aisa-it/shopadmin/internal/pagecontent/editor/schema"
	"golang.org/x/net/html"
)

const (
	ColumnsBlockClass = "columns-block"
	ColumnClass       = "column"
)

// ColumnsBlock - блок из 2 или 3 колонок.
func ColumnsBlock() schema.NodeTypeDefinition {
	return schema.NodeTypeDefinition{
		Name:       doctree.TypeColumnsBlock,
		Group:      GroupBlock,
		Content:    "column{2,3}",
		Isolating:  true,
		Selectable: true,
		Attributes: []schema.AttributeSpec{{Name: "cols", Default: doctree.DefaultCols}},
		ParseDOM: []schema.ParseRule{{
			Tag:      "div",
			DataType: string(doctree.TypeColumnsBlock),
			GetAttrs: parseColumnsAttrs,
		}},
		ToDOM: renderColumnsBlock,
		Check: func(n *doctree.Node) string {
			a, ok := n.Attrs.(*doctree.ColumnsAttrs)
			if !ok {
				return "columnsBlock requires ColumnsAttrs"
			}
			if a.Cols != 2 && a.Cols != 3 {
				return fmt.Sprintf("cols must be 2 or 3, got %d", a.Cols)
			}
			if len(n.Content) != a.Cols {
				return fmt.Sprintf("cols=%d but block has %d columns", a.Cols, len(n.Content))
			}
			return ""
		},
	}
}

// Column - одна колонка. Содержимое колонки не сливается с соседними блоками при редактировании.
func Column() schema.NodeTypeDefinition {
	return schema.NodeTypeDefinition{
		Name:      doctree.TypeColumn,
		Group:     GroupColumn,
		Content:   "block+",
		Isolating: true,
		ParseDOM: []schema.ParseRule{{
			Tag:      "div",
			DataType: string(doctree.TypeColumn),
		}},
		ToDOM: func(*doctree.Node) schema.DOMSpec {
			return schema.DOMSpec{
				Tag: "div",
				Attrs: []html.Attribute{
					{Key: "data-type", Val: string(doctree.TypeColumn)},
					{Key: "class", Val: ColumnClass},
				},
			}
		},
	}
}

// parseColumnsAttrs читает data-cols. Отсутствующее или нечисловое значение заменяется на 2.
func parseColumnsAttrs(el *html.Node) doctree.Attrs {
	raw := strings.TrimSpace(getAttrValue("data-cols", el.Attr))
	cols, err := strconv.Atoi(raw)
	if err != nil {
		if raw != "" {
			slog.Debug("Malformed data-cols, fallback to default", "value", raw, "default", doctree.DefaultCols)
		}
		cols = doctree.DefaultCols
	}
	return &doctree.ColumnsAttrs{Cols: cols}
}

func renderColumnsBlock(n *doctree.Node) schema.DOMSpec {
	cols := strconv.Itoa(n.Attrs.(*doctree.ColumnsAttrs).Cols)
	return schema.DOMSpec{
		Tag: "div",
		Attrs: []html.Attribute{
			{Key: "data-type", Val: string(doctree.TypeColumnsBlock)},
			{Key: "data-cols", Val: cols},
			{Key: "class", Val: ColumnsBlockClass + " " + ColumnsBlockClass + "-cols-" + cols},
		},
	}
}
