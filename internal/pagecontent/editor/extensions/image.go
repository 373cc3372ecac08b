package extensions

import (
	"log/slog"
	"strings"

	"github.com/aisa-it/shopadmin/internal/pagecontent/editor/doctree"
	"github.com/aisa-it/shopadmin/internal/pagecontent/editor/schema"
	"golang.org/x/net/html"
)

const (
	ImageClass      = "content-image"
	ImageFloatClass = "content-image-float"
)

// Image - картинка с поддержкой обтекания текстом.
func Image() schema.NodeTypeDefinition {
	return schema.NodeTypeDefinition{
		Name:       doctree.TypeImage,
		Group:      GroupBlock,
		Atom:       true,
		Selectable: true,
		Attributes: []schema.AttributeSpec{
			{Name: "src", Default: ""},
			{Name: "alt", Default: ""},
			{Name: "title", Default: ""},
			{Name: "float", Default: nil},
			{Name: "floatWidth", Default: doctree.DefaultFloatWidth},
		},
		ParseDOM: []schema.ParseRule{{Tag: "img", GetAttrs: parseImageAttrs}},
		ToDOM:    renderImage,
		Check:    checkImage,
	}
}

func parseImageAttrs(el *html.Node) doctree.Attrs {
	attrs := &doctree.ImageAttrs{
		Src:        getAttrValue("src", el.Attr),
		Alt:        getAttrValue("alt", el.Attr),
		Title:      getAttrValue("title", el.Attr),
		Float:      parseFloat(el),
		FloatWidth: doctree.DefaultFloatWidth,
	}

	// без обтекания ширина не выводится, поэтому и не читается
	if !attrs.IsFloating() {
		return attrs
	}
	if width := strings.TrimSpace(getAttrValue("data-float-width", el.Attr)); width != "" {
		if doctree.ValidFloatWidth(width) {
			attrs.FloatWidth = width
		} else {
			slog.Debug("Malformed data-float-width, fallback to default", "value", width, "default", doctree.DefaultFloatWidth)
		}
	}
	return attrs
}

// checkImage допускает только атрибуты, которые переживают рендер и повторный разбор.
func checkImage(n *doctree.Node) string {
	if reason := attrsOf[*doctree.ImageAttrs](n); reason != "" {
		return reason
	}
	a := n.Attrs.(*doctree.ImageAttrs)
	if !doctree.ValidFloat(a.Float) {
		return "image float must be left, right or unset"
	}
	if a.Float == nil {
		if a.FloatWidth != doctree.DefaultFloatWidth {
			return "image without float must keep default width " + doctree.DefaultFloatWidth
		}
		return ""
	}
	if !doctree.ValidFloatWidth(a.FloatWidth) {
		return "image float width " + a.FloatWidth + " is not a CSS length"
	}
	return ""
}

// parseFloat берет data-float, а при его отсутствии - CSS-свойство float из style.
func parseFloat(el *html.Node) *doctree.Float {
	raw, ok := lookupAttr("data-float", el.Attr)
	if !ok {
		raw = parseStyleAttr(getAttrValue("style", el.Attr))["float"]
	}
	switch doctree.Float(raw) {
	case doctree.FloatLeft, doctree.FloatRight:
		return doctree.FloatPtr(doctree.Float(raw))
	}
	return nil
}

func renderImage(n *doctree.Node) schema.DOMSpec {
	a := n.Attrs.(*doctree.ImageAttrs)
	spec := schema.DOMSpec{Tag: "img"}
	if a.Src != "" {
		spec.Attrs = append(spec.Attrs, html.Attribute{Key: "src", Val: a.Src})
	}
	if a.Alt != "" {
		spec.Attrs = append(spec.Attrs, html.Attribute{Key: "alt", Val: a.Alt})
	}
	if a.Title != "" {
		spec.Attrs = append(spec.Attrs, html.Attribute{Key: "title", Val: a.Title})
	}

	if !a.IsFloating() {
		spec.Attrs = append(spec.Attrs, html.Attribute{Key: "class", Val: ImageClass})
		return spec
	}

	width := a.FloatWidth
	spec.Attrs = append(spec.Attrs,
		html.Attribute{Key: "data-float", Val: string(*a.Float)},
		html.Attribute{Key: "data-float-width", Val: width},
		html.Attribute{Key: "class", Val: ImageClass + " " + ImageFloatClass + "-" + string(*a.Float)},
		html.Attribute{Key: "style", Val: "max-width: " + width},
	)
	return spec
}
