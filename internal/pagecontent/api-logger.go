// Утилиты возврата ошибок API сервиса контента страниц.
//
// Основные возможности:
//   - Ответы с ошибками apierrors в едином JSON формате.
//   - Логирование неизвестных ошибок с контекстом запроса и местом вызова.
//   - Обработчик ошибок echo для необработанных ошибок и ошибок маршрутизации.
package pagecontent

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"runtime"

	"github.com/aisa-it/shopadmin/internal/pagecontent/apierrors"
	errStack "github.com/aisa-it/shopadmin/internal/pagecontent/stack-error"
	"github.com/labstack/echo/v4"
)

// EError возвращает ошибку API. Неизвестные ошибки логируются и отдаются как 500.
func EError(c echo.Context, err error) error {
	var defined apierrors.DefinedError
	if errors.As(err, &defined) {
		return EErrorDefined(c, defined)
	}

	if err == nil {
		slog.Error("Unknown API error",
			"method", c.Request().Method,
			"url", c.Request().URL,
			getCallerFile(),
		)
	} else {
		errStack.LogError(c, errStack.TrackErrorStack(err))
	}
	return EErrorDefined(c, apierrors.ErrGeneric)
}

// EErrorDefined возвращает JSON-ответ с кодом статуса ошибки. Неизвестный код заменяется на 400.
func EErrorDefined(c echo.Context, err apierrors.DefinedError) error {
	if http.StatusText(err.StatusCode) == "" {
		err.StatusCode = http.StatusBadRequest
	}
	return c.JSON(err.StatusCode, err)
}

func httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		switch he.Code {
		case http.StatusNotFound, http.StatusMethodNotAllowed:
			c.NoContent(he.Code)
			return
		case http.StatusRequestEntityTooLarge:
			EErrorDefined(c, apierrors.ErrEntityTooLarge)
			return
		}
		er := apierrors.ErrGeneric
		er.StatusCode = he.Code
		er.Err = fmt.Sprint(he.Message)
		EErrorDefined(c, er)
		return
	}

	slog.Error("Unhandled error in endpoint", "url", c.Request().URL, "err", err)
	EError(c, err)
}

// getCallerFile возвращает файл и строку, из которых вызвана функция логирования.
func getCallerFile() slog.Attr {
	_, path, no, ok := runtime.Caller(2)
	if !ok {
		return slog.Attr{}
	}
	_, file := filepath.Split(path)
	return slog.String("caller", fmt.Sprintf("%s:%d", file, no))
}
