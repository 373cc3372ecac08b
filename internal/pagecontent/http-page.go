// Обработчики API страниц контента: список, загрузка HTML, выдача документа и HTML,
// команды редактора колонок, отмена и повтор.
//
// Основные возможности:
//   - Загрузка HTML страницы с очисткой и проверкой схемы.
//   - Выдача документа в TipTap JSON и отрендеренного HTML с минификацией.
//   - Выполнение команд insertColumns/unsetColumns над выделением.
//   - История изменений сессии редактора и журнал действий страницы.
package pagecontent

import (
	"net/http"

	"github.com/aisa-it/shopadmin/internal/pagecontent/apierrors"
	"github.com/aisa-it/shopadmin/internal/pagecontent/business"
	"github.com/aisa-it/shopadmin/internal/pagecontent/dao"
	"github.com/labstack/echo/v4"
)

func (s *Services) AddPageServices(g *echo.Group) {
	g.GET("pages/", s.getPageList)

	pageGroup := g.Group("pages/:slug", s.PageMiddleware)

	pageGroup.GET("/", s.getPage)
	pageGroup.PUT("/", s.loadPage)
	pageGroup.DELETE("/", s.deletePage)
	pageGroup.GET("/html/", s.getPageHTML)
	pageGroup.GET("/activities/", s.getPageActivityList)

	pageGroup.POST("/commands/", s.execPageCommand)
	pageGroup.GET("/history/", s.getPageHistory)
	pageGroup.POST("/undo/", s.undoPageCommand)
	pageGroup.POST("/redo/", s.redoPageCommand)
}

// getPageList godoc
// @id getPageList
// @Summary pages: список страниц
// @Tags Pages
// @Produce json
// @Success 200 {array} dao.PageLight "страницы"
// @Failure 500 {object} apierrors.DefinedError "Ошибка сервера"
// @Router /api/pages/ [get]
func (s *Services) getPageList(c echo.Context) error {
	pages, err := s.business.List(c.Request().Context())
	if err != nil {
		return EError(c, err)
	}

	res := make([]*dao.PageLight, 0, len(pages))
	for i := range pages {
		res = append(res, pages[i].ToLightDTO())
	}
	return c.JSON(http.StatusOK, res)
}

// getPage godoc
// @id getPage
// @Summary pages: страница с документом в TipTap JSON
// @Tags Pages
// @Produce json
// @Param slug path string true "Slug страницы"
// @Success 200 {object} PageResponse "страница"
// @Failure 404 {object} apierrors.DefinedError "Страница не найдена"
// @Router /api/pages/{slug}/ [get]
func (s *Services) getPage(c echo.Context) error {
	slug := c.(PageContext).Slug

	page, err := s.business.Get(c.Request().Context(), slug)
	if err != nil {
		return EError(c, err)
	}
	return c.JSON(http.StatusOK, pageResponse(page))
}

// loadPage godoc
// @id loadPage
// @Summary pages: загрузка HTML страницы
// @Description HTML очищается, разбирается в документ и сохраняется новой версией страницы. История редактора сбрасывается.
// @Tags Pages
// @Accept json
// @Produce json
// @Param slug path string true "Slug страницы"
// @Param data body LoadPageRequest true "заголовок и HTML"
// @Success 200 {object} PageResponse "страница"
// @Failure 400 {object} apierrors.DefinedError "Некорректный запрос"
// @Failure 413 {object} apierrors.DefinedError "Слишком большой запрос"
// @Failure 422 {object} apierrors.DefinedError "Документ не соответствует схеме"
// @Router /api/pages/{slug}/ [put]
func (s *Services) loadPage(c echo.Context) error {
	slug := c.(PageContext).Slug

	var req LoadPageRequest
	if err := c.Bind(&req); err != nil {
		return EErrorDefined(c, apierrors.ErrInvalidRequest.WithFormattedMessage(err.Error()))
	}
	if err := c.Validate(&req); err != nil {
		return EErrorDefined(c, apierrors.ErrRequestValidation.WithFormattedMessage(err.Error()))
	}

	page, err := s.business.LoadHTML(c.Request().Context(), slug, req.Title, req.HTML)
	if err != nil {
		return EError(c, err)
	}
	return c.JSON(http.StatusOK, pageResponse(page))
}

// deletePage godoc
// @id deletePage
// @Summary pages: удаление страницы
// @Tags Pages
// @Param slug path string true "Slug страницы"
// @Success 200
// @Failure 404 {object} apierrors.DefinedError "Страница не найдена"
// @Router /api/pages/{slug}/ [delete]
func (s *Services) deletePage(c echo.Context) error {
	slug := c.(PageContext).Slug

	if err := s.business.Delete(c.Request().Context(), slug); err != nil {
		return EError(c, err)
	}
	return c.NoContent(http.StatusOK)
}

// getPageHTML godoc
// @id getPageHTML
// @Summary pages: HTML страницы
// @Tags Pages
// @Produce html
// @Param slug path string true "Slug страницы"
// @Param minify query bool false "минифицировать HTML"
// @Success 200 {string} string "HTML"
// @Failure 404 {object} apierrors.DefinedError "Страница не найдена"
// @Router /api/pages/{slug}/html/ [get]
func (s *Services) getPageHTML(c echo.Context) error {
	slug := c.(PageContext).Slug

	minified := s.cfg.MinifyHTML
	if err := echo.QueryParamsBinder(c).
		Bool("minify", &minified).
		BindError(); err != nil {
		return EErrorDefined(c, apierrors.ErrInvalidRequest.WithFormattedMessage(err.Error()))
	}

	out, err := s.business.RenderHTML(c.Request().Context(), slug, minified)
	if err != nil {
		return EError(c, err)
	}
	return c.HTML(http.StatusOK, out)
}

// getPageActivityList godoc
// @id getPageActivityList
// @Summary pages: журнал действий страницы
// @Tags Pages
// @Produce json
// @Param slug path string true "Slug страницы"
// @Param limit query int false "количество записей, по умолчанию 50, максимум 500"
// @Success 200 {array} dao.PageActivity "действия"
// @Failure 404 {object} apierrors.DefinedError "Страница не найдена"
// @Router /api/pages/{slug}/activities/ [get]
func (s *Services) getPageActivityList(c echo.Context) error {
	slug := c.(PageContext).Slug

	limit := defaultActivityLimit
	if err := echo.QueryParamsBinder(c).
		Int("limit", &limit).
		BindError(); err != nil {
		return EErrorDefined(c, apierrors.ErrInvalidRequest.WithFormattedMessage(err.Error()))
	}

	activities, err := s.business.Activities(c.Request().Context(), slug, activityLimit(limit))
	if err != nil {
		return EError(c, err)
	}
	return c.JSON(http.StatusOK, activities)
}

const (
	defaultActivityLimit = 50
	maxActivityLimit     = 500
)

// activityLimit: неположительное значение - по умолчанию, большое - обрезается до максимума.
func activityLimit(limit int) int {
	switch {
	case limit <= 0:
		return defaultActivityLimit
	case limit > maxActivityLimit:
		return maxActivityLimit
	}
	return limit
}

// execPageCommand godoc
// @id execPageCommand
// @Summary pages: команда редактора
// @Description Выполняет insertColumns или unsetColumns над выделением anchor..head. Неприменимая команда возвращает applied=false без изменения страницы.
// @Tags Pages
// @Accept json
// @Produce json
// @Param slug path string true "Slug страницы"
// @Param data body business.CommandRequest true "команда"
// @Success 200 {object} CommandResponse "результат"
// @Failure 400 {object} apierrors.DefinedError "Неизвестная команда или некорректное выделение"
// @Failure 409 {object} apierrors.DefinedError "Версия страницы изменилась"
// @Router /api/pages/{slug}/commands/ [post]
func (s *Services) execPageCommand(c echo.Context) error {
	slug := c.(PageContext).Slug

	var req business.CommandRequest
	if err := c.Bind(&req); err != nil {
		return EErrorDefined(c, apierrors.ErrInvalidRequest.WithFormattedMessage(err.Error()))
	}
	if err := c.Validate(&req); err != nil {
		return EErrorDefined(c, apierrors.ErrRequestValidation.WithFormattedMessage(err.Error()))
	}

	res, err := s.business.ExecCommand(c.Request().Context(), slug, req)
	if err != nil {
		return EError(c, err)
	}
	return c.JSON(http.StatusOK, commandResponse(res))
}

// getPageHistory godoc
// @id getPageHistory
// @Summary pages: состояние истории редактора
// @Tags Pages
// @Produce json
// @Param slug path string true "Slug страницы"
// @Success 200 {object} business.SessionInfo "история"
// @Router /api/pages/{slug}/history/ [get]
func (s *Services) getPageHistory(c echo.Context) error {
	slug := c.(PageContext).Slug

	info, err := s.business.Session(c.Request().Context(), slug)
	if err != nil {
		return EError(c, err)
	}
	return c.JSON(http.StatusOK, info)
}

// undoPageCommand godoc
// @id undoPageCommand
// @Summary pages: отмена последней команды
// @Tags Pages
// @Produce json
// @Param slug path string true "Slug страницы"
// @Success 200 {object} CommandResponse "результат"
// @Failure 409 {object} apierrors.DefinedError "Нет изменений для отмены"
// @Router /api/pages/{slug}/undo/ [post]
func (s *Services) undoPageCommand(c echo.Context) error {
	slug := c.(PageContext).Slug

	res, err := s.business.Undo(c.Request().Context(), slug)
	if err != nil {
		return EError(c, err)
	}
	return c.JSON(http.StatusOK, commandResponse(res))
}

func (s *Services) redoPageCommand(c echo.Context) error {
	slug := c.(PageContext).Slug

	res, err := s.business.Redo(c.Request().Context(), slug)
	if err != nil {
		return EError(c, err)
	}
	return c.JSON(http.StatusOK, commandResponse(res))
}
