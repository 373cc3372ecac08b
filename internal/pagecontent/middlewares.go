package pagecontent

import (
	"log/slog"
	"net/http"

	"github.com/aisa-it/shopadmin/internal/pagecontent/apierrors"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// RequestLogger пишет в slog строку на каждый запрос. Ответы 5xx пишутся уровнем Error.
func RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelDebug
			if v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			slog.LogAttrs(c.Request().Context(), level, "HTTP request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("remote_ip", v.RemoteIP),
			)
			return nil
		},
	})
}

type PageContext struct {
	echo.Context
	Slug string
}

// PageMiddleware проверяет slug страницы из пути и передает его в контекст обработчика.
func (s *Services) PageMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		slug := c.Param("slug")
		rv, ok := c.Echo().Validator.(*RequestValidator)
		if !ok || !rv.ValidateSlug(slug) {
			return EErrorDefined(c, apierrors.ErrPageSlugInvalid)
		}
		return next(PageContext{c, slug})
	}
}
