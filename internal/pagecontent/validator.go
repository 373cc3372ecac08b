// Валидация запросов API контента страниц на базе go-playground/validator.
//
// Основные возможности:
//   - Проверка структур запросов по тегам validate.
//   - Валидатор slug страницы.
package pagecontent

import (
	"regexp"
	"unicode/utf8"

	"github.com/go-playground/validator"
)

var slugRegexp = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

type RequestValidator struct {
	validator *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	v := validator.New()
	if err := v.RegisterValidation("slug", slugValidator); err != nil {
		return nil
	}
	return &RequestValidator{v}
}

func (rv *RequestValidator) Validate(i interface{}) error {
	if err := rv.validator.Struct(i); err != nil {
		_, ok := err.(validator.ValidationErrors)
		if !ok {
			return nil
		}
		return err
	}
	return nil
}

// ValidateSlug проверяет slug страницы из пути запроса.
func (rv *RequestValidator) ValidateSlug(slug string) bool {
	return rv.validator.Var(slug, "slug") == nil
}

func slugValidator(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	lenStr := utf8.RuneCountInString(value)
	if !slugRegexp.MatchString(value) {
		return false
	}
	return lenStr >= 1 && lenStr <= 100
}
