// Ошибка с контекстом и цепочкой мест возникновения для логов обработчиков.
package stack_error

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"

	"github.com/labstack/echo/v4"
)

// Frame - место, через которое прошла ошибка.
type Frame struct {
	File string
	Line int
}

func (f Frame) String() string {
	return fmt.Sprintf("%s:%d", f.File, f.Line)
}

type TrackerError struct {
	Context  map[string]any
	ErrStack []Frame
	cause    error
}

// TrackErrorStack добавляет место вызова в стек. Уже отслеживаемая ошибка дополняется.
func TrackErrorStack(err error) *TrackerError {
	var te *TrackerError
	if !errors.As(err, &te) {
		te = &TrackerError{
			Context: make(map[string]any),
			cause:   err,
		}
	}
	te.ErrStack = append(te.ErrStack, callerFrame(2))
	return te
}

// AddContext добавляет значение в контекст ошибки. Первое записанное значение ключа не перезаписывается.
func (te *TrackerError) AddContext(k string, v any) *TrackerError {
	if _, ok := te.Context[k]; !ok {
		te.Context[k] = v
	}
	return te
}

// LogError пишет ошибку в лог вместе с контекстом и трассой.
func LogError(c echo.Context, err error) {
	var trackerError *TrackerError
	var attrs []any

	if errors.As(err, &trackerError) {
		attrs = trackerError.attrs()
	}

	if c != nil {
		attrs = append(attrs,
			slog.String("method", c.Request().Method),
			slog.String("url", c.Request().URL.String()))
	}

	slog.With(attrs...).Error("stack error", "err", err)
}

func (te *TrackerError) Error() string {
	if te.cause != nil {
		return te.cause.Error()
	}
	return "TrackerError"
}

func (te *TrackerError) Unwrap() error {
	return te.cause
}

func (te *TrackerError) attrs() []any {
	res := make([]any, 0, len(te.Context)+1)
	for k, v := range te.Context {
		res = append(res, slog.Any(k, v))
	}
	if len(te.ErrStack) > 0 {
		trace := make([]string, len(te.ErrStack))
		for i, f := range te.ErrStack {
			trace[i] = f.String()
		}
		res = append(res, slog.Any("trace", trace))
	}
	return res
}

func callerFrame(skip int) Frame {
	_, path, line, ok := runtime.Caller(skip)
	if !ok {
		return Frame{File: "unknown"}
	}
	return Frame{File: filepath.Base(path), Line: line}
}
