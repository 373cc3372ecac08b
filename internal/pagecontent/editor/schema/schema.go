// Пакет schema - реестр типов узлов документа и проверка дерева на соответствие схеме.
//
// Основные возможности:
//   - Регистрация типов узлов с группой, выражением содержимого и флагами (isolating, selectable, atom).
//   - Регистрация типов форматирования текста.
//   - Проверка дерева: первый узел-нарушитель и путь до него.
//   - Создание узлов с заполнением обязательного содержимого значениями по умолчанию.
package schema

import (
	"fmt"
	"slices"

	"github.com/aisa-it/shopadmin/internal/pagecontent/editor/doctree"
	"golang.org/x/net/html"
)

// AttributeSpec описывает атрибут узла и его значение по умолчанию.
type AttributeSpec struct {
	Name    string
	Default any
}

// ParseRule сопоставляет DOM-элемент типу узла: по тегу и, если задан DataType,
// по атрибуту data-type. Имена классов не учитываются.
type ParseRule struct {
	Tag      string
	DataType string
	GetAttrs func(el *html.Node) doctree.Attrs
}

// DOMSpec - результат отрисовки одного узла: элемент, в который вкладываются дети.
type DOMSpec struct {
	Tag   string
	Attrs []html.Attribute
}

type NodeTypeDefinition struct {
	Name    doctree.NodeType
	Group   string
	Content string

	Inline     bool
	Atom       bool
	Isolating  bool
	Selectable bool

	Attributes []AttributeSpec
	ParseDOM   []ParseRule
	ToDOM      func(n *doctree.Node) DOMSpec

	// Check - дополнительные ограничения на атрибуты и детей, возвращает причину нарушения
	Check func(n *doctree.Node) string

	expr *ContentExpr
}

func (d *NodeTypeDefinition) ContentExpr() *ContentExpr {
	return d.expr
}

type MarkDefinition struct {
	Name     doctree.MarkType
	Tags     []string
	GetAttrs func(el *html.Node) (doctree.Mark, bool)
	ToDOM    func(m doctree.Mark) DOMSpec
}

type Registry struct {
	types []*NodeTypeDefinition
	marks []*MarkDefinition
	byTyp map[doctree.NodeType]*NodeTypeDefinition
}

func NewRegistry() *Registry {
	return &Registry{byTyp: make(map[doctree.NodeType]*NodeTypeDefinition)}
}

// Register добавляет тип узла. Порядок регистрации важен: первый подходящий
// тип группы используется как тип по умолчанию при заполнении содержимого.
func (r *Registry) Register(def NodeTypeDefinition) error {
	if def.Name == "" {
		return fmt.Errorf("node type name is required")
	}
	if _, exist := r.byTyp[def.Name]; exist {
		return fmt.Errorf("node type %q already registered", def.Name)
	}
	expr, err := ParseContentExpr(def.Content)
	if err != nil {
		return fmt.Errorf("node type %q: %w", def.Name, err)
	}
	def.expr = expr
	r.types = append(r.types, &def)
	r.byTyp[def.Name] = &def
	return nil
}

// MustRegister - Register, паникующий при ошибке. Для статически описанных схем.
func (r *Registry) MustRegister(defs ...NodeTypeDefinition) {
	for _, def := range defs {
		if err := r.Register(def); err != nil {
			panic(err)
		}
	}
}

func (r *Registry) RegisterMark(def MarkDefinition) error {
	if r.Mark(def.Name) != nil {
		return fmt.Errorf("mark %q already registered", def.Name)
	}
	r.marks = append(r.marks, &def)
	return nil
}

func (r *Registry) Definition(t doctree.NodeType) *NodeTypeDefinition {
	return r.byTyp[t]
}

// Types возвращает определения в порядке регистрации.
func (r *Registry) Types() []*NodeTypeDefinition {
	return slices.Clone(r.types)
}

func (r *Registry) Mark(t doctree.MarkType) *MarkDefinition {
	for _, m := range r.marks {
		if m.Name == t {
			return m
		}
	}
	return nil
}

func (r *Registry) Marks() []*MarkDefinition {
	return slices.Clone(r.marks)
}

// InGroup - тип t входит в группу group.
func (r *Registry) InGroup(t doctree.NodeType, group string) bool {
	def := r.byTyp[t]
	return def != nil && def.Group == group
}

// matches - тип t подходит под имя из выражения содержимого (имя типа или группы).
func (r *Registry) matches(t doctree.NodeType, name string) bool {
	return string(t) == name || r.InGroup(t, name)
}

func (r *Registry) defaultType(name string) *NodeTypeDefinition {
	if def, ok := r.byTyp[doctree.NodeType(name)]; ok {
		return def
	}
	for _, def := range r.types {
		if def.Group == name && !def.Atom && def.Name != doctree.TypeText && len(def.Attributes) == 0 {
			return def
		}
	}
	return nil
}

// CreateAndFill создает узел и дополняет обязательное содержимое узлами по умолчанию
// (пустая колонка получает пустой параграф). Результат проверяется на соответствие схеме.
func (r *Registry) CreateAndFill(t doctree.NodeType, attrs doctree.Attrs, content ...*doctree.Node) (*doctree.Node, error) {
	def := r.byTyp[t]
	if def == nil {
		return nil, fmt.Errorf("unknown node type %q", t)
	}
	if attrs == nil && len(def.Attributes) > 0 {
		return nil, fmt.Errorf("node type %q requires attributes", t)
	}
	filled, err := def.expr.fill(r, content)
	if err != nil {
		return nil, &SchemaViolation{Type: t, Reason: err.Error()}
	}
	node := doctree.New(t, attrs, filled...)
	if err := r.validateNode(node, nil); err != nil {
		return nil, err
	}
	return node, nil
}
