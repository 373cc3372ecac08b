package doctree

import (
	"regexp"
	"slices"
)

// Attrs - закрытый набор вариантов атрибутов. Каждый тип узла с атрибутами
// имеет свою структуру, узлы без атрибутов хранят nil.
type Attrs interface {
	clone() Attrs
	equal(Attrs) bool
}

type Float string

const (
	FloatLeft  Float = "left"
	FloatRight Float = "right"
)

const DefaultFloatWidth = "40%"

// FloatWidthPattern - допустимая ширина обтекаемой картинки: число и единица CSS.
const FloatWidthPattern = `^\d+(\.\d+)?(%|px|pt|em|rem|ch|vw|vh)$`

var floatWidthRegexp = regexp.MustCompile(FloatWidthPattern)

// ValidFloatWidth сообщает, сохранится ли ширина через data-float-width.
func ValidFloatWidth(width string) bool {
	return floatWidthRegexp.MatchString(width)
}

const DefaultCols = 2

// ColumnsAttrs - атрибуты columnsBlock.
type ColumnsAttrs struct {
	Cols int
}

// ImageAttrs - атрибуты картинки с поддержкой обтекания. Float == nil - без обтекания.
type ImageAttrs struct {
	Src        string
	Alt        string
	Title      string
	Float      *Float
	FloatWidth string
}

type HeadingAttrs struct {
	Level int
}

type OrderedListAttrs struct {
	Start int
}

type CodeBlockAttrs struct {
	Language string
}

func (a *ColumnsAttrs) clone() Attrs {
	c := *a
	return &c
}

func (a *ColumnsAttrs) equal(o Attrs) bool {
	b, ok := o.(*ColumnsAttrs)
	return ok && *a == *b
}

func (a *ImageAttrs) clone() Attrs {
	c := *a
	if a.Float != nil {
		f := *a.Float
		c.Float = &f
	}
	return &c
}

func (a *ImageAttrs) equal(o Attrs) bool {
	b, ok := o.(*ImageAttrs)
	if !ok {
		return false
	}
	if (a.Float == nil) != (b.Float == nil) || (a.Float != nil && *a.Float != *b.Float) {
		return false
	}
	return a.Src == b.Src && a.Alt == b.Alt && a.Title == b.Title && a.FloatWidth == b.FloatWidth
}

// IsFloating - картинка обтекается текстом слева или справа.
func (a *ImageAttrs) IsFloating() bool {
	return a.Float != nil && (*a.Float == FloatLeft || *a.Float == FloatRight)
}

func (a *HeadingAttrs) clone() Attrs {
	c := *a
	return &c
}

func (a *HeadingAttrs) equal(o Attrs) bool {
	b, ok := o.(*HeadingAttrs)
	return ok && *a == *b
}

func (a *OrderedListAttrs) clone() Attrs {
	c := *a
	return &c
}

func (a *OrderedListAttrs) equal(o Attrs) bool {
	b, ok := o.(*OrderedListAttrs)
	return ok && *a == *b
}

func (a *CodeBlockAttrs) clone() Attrs {
	c := *a
	return &c
}

func (a *CodeBlockAttrs) equal(o Attrs) bool {
	b, ok := o.(*CodeBlockAttrs)
	return ok && *a == *b
}

func attrsEqual(a, b Attrs) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.equal(b)
}

// ValidFloat - nil, left или right.
func ValidFloat(f *Float) bool {
	return f == nil || *f == FloatLeft || *f == FloatRight
}

// FloatPtr - помощник для заполнения ImageAttrs.Float.
func FloatPtr(f Float) *Float {
	return &f
}

type MarkType string

const (
	MarkBold      MarkType = "bold"
	MarkItalic    MarkType = "italic"
	MarkUnderline MarkType = "underline"
	MarkStrike    MarkType = "strike"
	MarkCode      MarkType = "code"
	MarkLink      MarkType = "link"
)

// markOrder задает каноничный порядок форматирования, в нем же marks выводятся в HTML.
var markOrder = []MarkType{MarkLink, MarkBold, MarkItalic, MarkUnderline, MarkStrike, MarkCode}

type Mark struct {
	Type MarkType
	Href string // только для link
}

func MarksEqual(a, b []Mark) bool {
	return slices.Equal(a, b)
}

func markRank(t MarkType) int {
	return slices.Index(markOrder, t)
}

// AddMark добавляет форматирование, сохраняя каноничный порядок. Повторная
// ссылка заменяет предыдущую.
func AddMark(marks []Mark, m Mark) []Mark {
	res := make([]Mark, 0, len(marks)+1)
	added := false
	for _, cur := range marks {
		if cur.Type == m.Type {
			continue
		}
		if !added && markRank(m.Type) < markRank(cur.Type) {
			res = append(res, m)
			added = true
		}
		res = append(res, cur)
	}
	if !added {
		res = append(res, m)
	}
	return res
}

// CloneAttrs копирует вариант атрибутов, nil остается nil.
func CloneAttrs(a Attrs) Attrs {
	if a == nil {
		return nil
	}
	return a.clone()
}
