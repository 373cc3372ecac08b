// Пакет pagecontent предоставляет HTTP API сервиса контента страниц магазина: загрузку HTML,
// выдачу документа в TipTap JSON и HTML, команды редактора колонок с отменой изменений.
//
// Основные возможности:
//   - REST API страниц на echo с единым форматом ошибок.
//   - Логирование запросов через slog, ограничение тела запроса, сжатие ответов.
//   - Метрики Prometheus на отдельном порту.
//   - Фоновое закрытие неактивных сессий редактора по расписанию.
package pagecontent

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/aisa-it/shopadmin/internal/pagecontent/business"
	"github.com/aisa-it/shopadmin/internal/pagecontent/config"
	"github.com/aisa-it/shopadmin/internal/pagecontent/cronmanager"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type Services struct {
	db       *gorm.DB
	cfg      *config.Config
	business *business.Business
	cron     *cronmanager.CronManager
	version  string
}

func NewServices(db *gorm.DB, cfg *config.Config, version string) *Services {
	bl := business.NewBL(db, cfg)
	return &Services{
		db:       db,
		cfg:      cfg,
		business: bl,
		version:  version,
		cron: cronmanager.NewCronManager(cronmanager.JobRegistry{
			"evict_editor_sessions": cronmanager.Job{
				Func:     func() { bl.EvictIdleSessions() },
				Schedule: "@every 1m",
			},
		}),
	}
}

// ServerHeader middleware adds a `Server` header to the response.
func ServerHeader(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set(echo.HeaderServer, "PageContent")
		return next(c)
	}
}

// NewEcho собирает HTTP сервер API. Метрики запросов регистрируются в reg.
func (s *Services) NewEcho(reg prometheus.Registerer) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = httpErrorHandler
	e.Validator = NewRequestValidator()

	e.Pre(middleware.AddTrailingSlash())
	e.Use(middleware.Recover())
	e.Use(RequestLogger())
	e.Use(ServerHeader)
	e.Use(middleware.BodyLimit(s.cfg.BodyLimit))
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level:     5,
		MinLength: 2048,
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "pagecontent",
		Registerer: reg,
	}))

	apiGroup := e.Group("/api/")
	s.AddPageServices(apiGroup)

	apiGroup.GET("version/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"version": s.version,
		})
	})

	apiGroup.GET("_health/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status": "ok",
			"jobs":   s.cron.Jobs(),
		})
	})

	return e
}

// Server запускает API, сервер метрик и фоновые задачи. Возвращается после остановки по сигналу.
func Server(db *gorm.DB, cfg *config.Config, version string) error {
	s := NewServices(db, cfg, version)

	if err := s.business.Metrics().Register(prometheus.DefaultRegisterer); err != nil {
		return err
	}

	if err := s.cron.LoadJobs(); err != nil {
		return err
	}
	s.cron.Start()

	e := s.NewEcho(prometheus.DefaultRegisterer)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Prometheus metrics
	metrics := echo.New()
	metrics.HideBanner = true
	metrics.HidePort = true
	metrics.GET("/metrics", echoprometheus.NewHandler())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return serve(metrics, cfg.MetricsAddr)
	})
	g.Go(func() error {
		return serve(e, cfg.HTTPAddr)
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down gracefully")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		s.cron.Stop()
		if err := metrics.Shutdown(shutdownCtx); err != nil {
			slog.Warn("Metrics server shutdown", "err", err)
		}
		return e.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func serve(e *echo.Echo, addr string) error {
	if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
