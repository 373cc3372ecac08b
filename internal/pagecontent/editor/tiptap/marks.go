package tiptap

import (
	"log/slog"

	"github.com/aisa-it/shopadmin/internal/pagecontent/editor/doctree"
)

// parseMarks применяет форматирование (marks) в каноничном порядке.
func parseMarks(marks []TipTapMark) []doctree.Mark {
	var out []doctree.Mark
	for _, mark := range marks {
		switch t := doctree.MarkType(mark.Type); t {
		case doctree.MarkBold, doctree.MarkItalic, doctree.MarkUnderline, doctree.MarkStrike, doctree.MarkCode:
			out = doctree.AddMark(out, doctree.Mark{Type: t})
		case doctree.MarkLink:
			if href := getAttrString(mark.Attrs, "href"); href != "" {
				out = doctree.AddMark(out, doctree.Mark{Type: t, Href: href})
			}
		default:
			slog.Debug("Unknown mark type", "type", mark.Type)
		}
	}
	return out
}

func serializeMarks(marks []doctree.Mark) []TipTapMark {
	if len(marks) == 0 {
		return nil
	}
	out := make([]TipTapMark, 0, len(marks))
	for _, m := range marks {
		mark := TipTapMark{Type: string(m.Type)}
		if m.Type == doctree.MarkLink {
			mark.Attrs = map[string]any{"href": m.Href, "target": "_blank"}
		}
		out = append(out, mark)
	}
	return out
}
