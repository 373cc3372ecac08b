// Определяет политику безопасности для HTML контента страниц. Политика применяется
// к загружаемому HTML до парсинга и оставляет только разметку, которую понимает редактор.
//
// Основные возможности:
//   - UGC политика bluemonday, расширенная атрибутами колонок и картинок с обтеканием.
//   - Ограничение допустимых значений data-атрибутов и стилей регулярными выражениями.
//   - Удаление всех тегов для заголовков и других текстовых полей.
package policy

import (
	"regexp"

	"github.com/aisa-it/shopadmin/internal/pagecontent/editor/doctree"
	"github.com/microcosm-cc/bluemonday"
)

var StripTagsPolicy *bluemonday.Policy = bluemonday.StrictPolicy()
var UgcPolicy *bluemonday.Policy = bluemonday.UGCPolicy()

func init() {
	widthRegexp := regexp.MustCompile(doctree.FloatWidthPattern)
	floatRegexp := regexp.MustCompile(`^(left|right|none)$`)
	columnsClassRegexp := regexp.MustCompile(`^(columns-block( columns-block-cols-[23])?|column)$`)
	imageClassRegexp := regexp.MustCompile(`^content-image( content-image-float-(left|right))?$`)
	languageRegexp := regexp.MustCompile(`^[a-zA-Z0-9_+-]+$`)

	UgcPolicy.AllowAttrs("data-type").Matching(regexp.MustCompile(`^(column|columnsBlock)$`)).OnElements("div")
	UgcPolicy.AllowAttrs("data-cols").Matching(regexp.MustCompile(`^\s*\d+\s*$`)).OnElements("div")
	UgcPolicy.AllowAttrs("class").Matching(columnsClassRegexp).OnElements("div")

	UgcPolicy.AllowAttrs("data-float").Matching(floatRegexp).OnElements("img")
	UgcPolicy.AllowAttrs("data-float-width").Matching(widthRegexp).OnElements("img")
	UgcPolicy.AllowAttrs("class").Matching(imageClassRegexp).OnElements("img")
	UgcPolicy.AllowStyles("float").Matching(floatRegexp).OnElements("img")
	UgcPolicy.AllowStyles("max-width").Matching(widthRegexp).OnElements("img")

	UgcPolicy.AllowAttrs("data-language").Matching(languageRegexp).OnElements("pre")
	UgcPolicy.AllowAttrs("class").Matching(regexp.MustCompile(`^language-[a-zA-Z0-9_+-]+$`)).OnElements("code")
	UgcPolicy.AllowAttrs("start").Matching(regexp.MustCompile(`^\d+$`)).OnElements("ol")
}

// Sanitize очищает HTML от разметки, не поддерживаемой редактором.
func Sanitize(htmlContent string) string {
	if htmlContent == "" {
		return ""
	}
	return UgcPolicy.Sanitize(htmlContent)
}

// StripTags оставляет только текст.
func StripTags(s string) string {
	return StripTagsPolicy.Sanitize(s)
}
