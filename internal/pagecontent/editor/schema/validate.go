package schema

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/aisa-it/shopadmin/internal/pagecontent/editor/doctree"
)

var ErrSchemaViolation = errors.New("schema violation")

// SchemaViolation - дерево не соответствует схеме. Path - индексы детей от корня
// до узла-нарушителя.
type SchemaViolation struct {
	Path   []int
	Type   doctree.NodeType
	Reason string
}

func (e *SchemaViolation) Error() string {
	return fmt.Sprintf("schema violation at %s (%s): %s", e.PathString(), e.Type, e.Reason)
}

func (e *SchemaViolation) Is(target error) bool {
	return target == ErrSchemaViolation
}

func (e *SchemaViolation) PathString() string {
	if len(e.Path) == 0 {
		return "/"
	}
	var b strings.Builder
	for _, i := range e.Path {
		b.WriteByte('/')
		b.WriteString(strconv.Itoa(i))
	}
	return b.String()
}

// Validate проверяет дерево целиком и возвращает первое нарушение в прямом порядке обхода.
func (r *Registry) Validate(root *doctree.Node) error {
	if root == nil {
		return &SchemaViolation{Reason: "document is nil"}
	}
	if root.Type != doctree.TypeDoc {
		return &SchemaViolation{Type: root.Type, Reason: "root must be doc"}
	}
	return r.validateTree(root, nil)
}

func (r *Registry) validateTree(n *doctree.Node, path []int) error {
	if err := r.validateNode(n, path); err != nil {
		return err
	}
	for i, child := range n.Content {
		if err := r.validateTree(child, append(path[:len(path):len(path)], i)); err != nil {
			return err
		}
	}
	return nil
}

// validateNode проверяет один узел: известный тип, атрибуты, форматирование и содержимое.
func (r *Registry) validateNode(n *doctree.Node, path []int) error {
	violation := func(reason string, args ...any) error {
		return &SchemaViolation{Path: path, Type: n.Type, Reason: fmt.Sprintf(reason, args...)}
	}

	if n == nil {
		return &SchemaViolation{Path: path, Reason: "nil node"}
	}
	def := r.byTyp[n.Type]
	if def == nil {
		return violation("unknown node type")
	}

	if len(def.Attributes) == 0 && n.Attrs != nil {
		return violation("node type has no attributes")
	}
	if len(def.Attributes) > 0 && n.Attrs == nil {
		return violation("attributes are required")
	}

	if n.IsText() {
		if n.Text == "" {
			return violation("empty text node")
		}
		for _, m := range n.Marks {
			if r.Mark(m.Type) == nil {
				return violation("unknown mark %q", m.Type)
			}
		}
	} else {
		if n.Text != "" || len(n.Marks) > 0 {
			return violation("only text nodes carry text and marks")
		}
	}

	if reason := def.expr.match(r, n.Content); reason != "" {
		return violation("%s does not match %q", reason, def.expr)
	}

	if def.Check != nil {
		if reason := def.Check(n); reason != "" {
			return violation("%s", reason)
		}
	}
	return nil
}
