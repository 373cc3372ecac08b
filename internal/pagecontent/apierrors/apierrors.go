// Пакет содержит определения ошибок API сервиса контента страниц. Каждая ошибка имеет код,
// статус HTTP и описание на двух языках для отображения пользователю.
//
// Основные возможности:
//   - Ошибки запросов, страниц, документа и команд редактора.
//   - Коды ошибок, соответствующие кодам HTTP статусов.
//   - Форматирование сообщений об ошибках с аргументами.
package apierrors

import (
	"fmt"
	"net/http"
	"strings"
)

type DefinedError struct {
	Code       int    `json:"code"`
	StatusCode int    `json:"-"`
	Err        string `json:"error"`
	RuErr      string `json:"ru_error,omitempty"`
}

func (e DefinedError) Error() string {
	return e.Err
}

var (
	// 1*** - request errors
	ErrGeneric           = DefinedError{Code: 1000, StatusCode: http.StatusInternalServerError, Err: "internal error", RuErr: "Внутренняя ошибка сервера"}
	ErrInvalidRequest    = DefinedError{Code: 1001, StatusCode: http.StatusBadRequest, Err: "invalid request: %s", RuErr: "Некорректный запрос: %s"}
	ErrRequestValidation = DefinedError{Code: 1002, StatusCode: http.StatusBadRequest, Err: "request validation failed: %s", RuErr: "Ошибка проверки запроса: %s"}
	ErrEntityTooLarge    = DefinedError{Code: 1003, StatusCode: http.StatusRequestEntityTooLarge, Err: "request body is too large", RuErr: "Слишком большой объем запроса"}

	// 2*** - page errors
	ErrPageNotFound    = DefinedError{Code: 2001, StatusCode: http.StatusNotFound, Err: "page not found", RuErr: "Страница не найдена"}
	ErrPageSlugInvalid = DefinedError{Code: 2002, StatusCode: http.StatusBadRequest, Err: "invalid page slug", RuErr: "Идентификатор страницы содержит недопустимые символы"}
	ErrVersionConflict = DefinedError{Code: 2003, StatusCode: http.StatusConflict, Err: "page was changed by another request", RuErr: "Страница была изменена другим пользователем, обновите ее"}

	// 3*** - document errors
	ErrSchemaViolation = DefinedError{Code: 3001, StatusCode: http.StatusUnprocessableEntity, Err: "document does not match schema: %s", RuErr: "Документ не соответствует схеме: %s"}

	// 4*** - command errors
	ErrUnknownCommand   = DefinedError{Code: 4001, StatusCode: http.StatusBadRequest, Err: "unknown command %s", RuErr: "Неизвестная команда %s"}
	ErrInvalidSelection = DefinedError{Code: 4003, StatusCode: http.StatusBadRequest, Err: "selection is out of document", RuErr: "Выделение выходит за пределы документа"}
	ErrNothingToUndo    = DefinedError{Code: 4004, StatusCode: http.StatusConflict, Err: "nothing to undo", RuErr: "Нет изменений для отмены"}
	ErrNothingToRedo    = DefinedError{Code: 4005, StatusCode: http.StatusConflict, Err: "nothing to redo", RuErr: "Нет отмененных изменений для повтора"}
)

func (e DefinedError) WithFormattedMessage(args ...any) DefinedError {
	if len(args) > 0 {
		e.Err = fmt.Sprintf(e.Err, args...)
		e.RuErr = fmt.Sprintf(e.RuErr, args...)
	} else {
		e.Err = strings.ReplaceAll(e.Err, ": %s", "")
		e.RuErr = strings.ReplaceAll(e.RuErr, ": %s", "")
		e.Err = strings.ReplaceAll(e.Err, "%s", "")
		e.RuErr = strings.ReplaceAll(e.RuErr, "%s", "")
	}
	return e
}
