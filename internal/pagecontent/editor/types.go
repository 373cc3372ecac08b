package editor

import (
	"github.com/aisa-it/shopadmin/internal/pagecontent/editor/doctree"
	"github.com/aisa-it/shopadmin/internal/pagecontent/editor/extensions"
	"github.com/aisa-it/shopadmin/internal/pagecontent/editor/schema"
)

// Реэкспорт типов дерева документа
type (
	Node            = doctree.Node
	NodeType        = doctree.NodeType
	Attrs           = doctree.Attrs
	ColumnsAttrs    = doctree.ColumnsAttrs
	ImageAttrs      = doctree.ImageAttrs
	Float           = doctree.Float
	Mark            = doctree.Mark
	Registry        = schema.Registry
	SchemaViolation = schema.SchemaViolation
)

// Реэкспорт функций
var (
	NewSchema = extensions.NewSchema
)

var ErrSchemaViolation = schema.ErrSchemaViolation
