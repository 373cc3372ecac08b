package schema

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/aisa-it/shopadmin/internal/pagecontent/editor/doctree"
)

// Unbounded - верхняя граница для квантификаторов * и +.
const Unbounded = -1

var termRegexp = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9_-]*)(\?|\*|\+|\{(\d+)(,(\d*))?\})?$`)

type contentTerm struct {
	name     string
	min, max int
}

// ContentExpr - разобранное выражение содержимого, например "paragraph block*" или "column{2,3}".
// Пустое выражение означает узел без содержимого.
type ContentExpr struct {
	source string
	terms  []contentTerm
}

// ParseContentExpr разбирает выражение из последовательности термов через пробел.
// Терм - имя типа или группы с необязательным квантификатором ?, *, + или {n,m}.
func ParseContentExpr(src string) (*ContentExpr, error) {
	expr := &ContentExpr{source: src}
	for _, raw := range strings.Fields(src) {
		m := termRegexp.FindStringSubmatch(raw)
		if m == nil {
			return nil, fmt.Errorf("invalid content term %q in %q", raw, src)
		}
		term := contentTerm{name: m[1], min: 1, max: 1}
		switch {
		case m[2] == "?":
			term.min, term.max = 0, 1
		case m[2] == "*":
			term.min, term.max = 0, Unbounded
		case m[2] == "+":
			term.min, term.max = 1, Unbounded
		case m[3] != "":
			term.min, _ = strconv.Atoi(m[3])
			term.max = term.min
			if m[4] != "" {
				term.max = Unbounded
				if m[5] != "" {
					term.max, _ = strconv.Atoi(m[5])
				}
			}
			if term.max != Unbounded && term.max < term.min {
				return nil, fmt.Errorf("invalid bounds in content term %q", raw)
			}
		}
		expr.terms = append(expr.terms, term)
	}
	return expr, nil
}

func (e *ContentExpr) String() string {
	return e.source
}

// IsLeaf - выражение не допускает детей.
func (e *ContentExpr) IsLeaf() bool {
	return len(e.terms) == 0
}

// match проверяет последовательность детей. Термы сопоставляются жадно слева направо,
// для используемых в схеме выражений этого достаточно. Возвращает причину несоответствия.
func (e *ContentExpr) match(r *Registry, children []*doctree.Node) string {
	if e.IsLeaf() {
		if len(children) > 0 {
			return "node must not have content"
		}
		return ""
	}

	i := 0
	for _, term := range e.terms {
		count := 0
		for i < len(children) && (term.max == Unbounded || count < term.max) && r.matches(children[i].Type, term.name) {
			i++
			count++
		}
		if count < term.min {
			if i < len(children) {
				return fmt.Sprintf("expected %s, got %s at index %d", term, children[i].Type, i)
			}
			return fmt.Sprintf("expected %s, got %d", term, count)
		}
	}
	if i < len(children) {
		return fmt.Sprintf("unexpected %s at index %d", children[i].Type, i)
	}
	return ""
}

// fill дополняет детей узлами по умолчанию там, где терму не хватает узлов.
func (e *ContentExpr) fill(r *Registry, children []*doctree.Node) ([]*doctree.Node, error) {
	res := make([]*doctree.Node, 0, len(children))
	i := 0
	for _, term := range e.terms {
		count := 0
		for i < len(children) && (term.max == Unbounded || count < term.max) && r.matches(children[i].Type, term.name) {
			res = append(res, children[i])
			i++
			count++
		}
		for ; count < term.min; count++ {
			def := r.defaultType(term.name)
			if def == nil {
				return nil, fmt.Errorf("no default node type for %q", term.name)
			}
			node, err := r.CreateAndFill(def.Name, nil)
			if err != nil {
				return nil, err
			}
			res = append(res, node)
		}
	}
	if i < len(children) {
		return nil, fmt.Errorf("unexpected %s at index %d", children[i].Type, i)
	}
	return res, nil
}

func (t contentTerm) String() string {
	switch {
	case t.min == 1 && t.max == 1:
		return t.name
	case t.min == 0 && t.max == 1:
		return t.name + "?"
	case t.min == 0 && t.max == Unbounded:
		return t.name + "*"
	case t.min == 1 && t.max == Unbounded:
		return t.name + "+"
	case t.max == Unbounded:
		return fmt.Sprintf("%s{%d,}", t.name, t.min)
	case t.min == t.max:
		return fmt.Sprintf("%s{%d}", t.name, t.min)
	}
	return fmt.Sprintf("%s{%d,%d}", t.name, t.min, t.max)
}
