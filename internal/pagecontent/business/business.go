// Бизнес-логика сервиса контента страниц: загрузка HTML, выполнение команд редактора,
// отмена изменений и выдача отрендеренного HTML.
//
// Основные возможности:
//   - Очистка и разбор HTML в дерево документа с проверкой схемы.
//   - Сессии редактора по slug с историей изменений для отмены.
//   - Сохранение результата команд с проверкой версии страницы.
//   - Минификация HTML при выдаче.
//   - Метрики Prometheus по командам и нарушениям схемы.
package business

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aisa-it/shopadmin/internal/pagecontent/apierrors"
	"github.com/aisa-it/shopadmin/internal/pagecontent/config"
	"github.com/aisa-it/shopadmin/internal/pagecontent/dao"
	"github.com/aisa-it/shopadmin/internal/pagecontent/editor"
	"github.com/aisa-it/shopadmin/internal/pagecontent/editor/schema"
	"github.com/aisa-it/shopadmin/internal/pagecontent/editor/tiptap"
	policy "github.com/aisa-it/shopadmin/internal/pagecontent/redactor-policy"
	errStack "github.com/aisa-it/shopadmin/internal/pagecontent/stack-error"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/html"
	"gorm.io/gorm"
)

type Business struct {
	db  *gorm.DB
	reg *schema.Registry

	historyLimit int
	sessionIdle  time.Duration

	minifier *minify.M
	sessions *sessionStore
	metrics  *Metrics
}

func NewBL(db *gorm.DB, cfg *config.Config) *Business {
	minifier := minify.New()
	minifier.AddFunc("text/html", html.Minify)

	b := &Business{
		db:           db,
		reg:          editor.NewSchema(),
		historyLimit: cfg.HistoryLimit,
		sessionIdle:  time.Duration(cfg.SessionIdle) * time.Minute,
		minifier:     minifier,
		sessions:     newSessionStore(),
	}
	b.metrics = newMetrics(b.sessions)
	return b
}

func (b *Business) Schema() *schema.Registry {
	return b.reg
}

func (b *Business) Metrics() *Metrics {
	return b.metrics
}

// LoadHTML очищает HTML, разбирает его в документ и сохраняет новой версией страницы.
// История команд страницы при этом сбрасывается.
func (b *Business) LoadHTML(ctx context.Context, slug, title, src string) (*dao.PageContent, error) {
	root, err := editor.Load(b.reg, strings.NewReader(policy.Sanitize(src)))
	if err != nil {
		return nil, b.documentError(err)
	}

	sess := b.sessions.acquire(slug)
	defer sess.release()

	page := &dao.PageContent{
		Slug:     slug,
		Title:    policy.StripTags(title),
		Document: tiptap.NewDocument(root),
		HTML:     editor.Render(b.reg, root),
	}
	if err := b.save(ctx, page, 0, dao.VerbLoaded, nil); err != nil {
		return nil, err
	}
	sess.reset()

	slog.Info("Page content loaded", "slug", slug, "version", page.Version, "size", root.ContentSize())
	return page, nil
}

func (b *Business) Get(ctx context.Context, slug string) (*dao.PageContent, error) {
	return dao.GetPageBySlug(b.db.WithContext(ctx), slug)
}

func (b *Business) List(ctx context.Context) ([]dao.PageContent, error) {
	return dao.ListPages(b.db.WithContext(ctx))
}

func (b *Business) Delete(ctx context.Context, slug string) error {
	sess := b.sessions.acquire(slug)
	defer sess.release()

	if err := dao.DeletePage(b.db.WithContext(ctx), slug); err != nil {
		return err
	}
	sess.reset()
	return nil
}

// RenderHTML возвращает сохраненный HTML страницы, при minified - минифицированный.
func (b *Business) RenderHTML(ctx context.Context, slug string, minified bool) (string, error) {
	page, err := b.Get(ctx, slug)
	if err != nil {
		return "", err
	}
	if !minified {
		return page.HTML, nil
	}

	out, err := b.minifier.String("text/html", page.HTML)
	if err != nil {
		slog.Warn("Minify page html", "slug", slug, "err", err)
		return page.HTML, nil
	}
	return out, nil
}

// Activities возвращает журнал действий страницы.
func (b *Business) Activities(ctx context.Context, slug string, limit int) ([]dao.PageActivity, error) {
	page, err := b.Get(ctx, slug)
	if err != nil {
		return nil, err
	}
	return dao.ListActivities(b.db.WithContext(ctx), page.ID, limit)
}

// EvictIdleSessions закрывает сессии редактора, не использовавшиеся дольше SESSION_IDLE_MINUTES.
func (b *Business) EvictIdleSessions() int {
	n := b.sessions.evictIdle(time.Now().Add(-b.sessionIdle))
	if n > 0 {
		slog.Debug("Idle editor sessions evicted", "count", n)
	}
	return n
}

// save сохраняет страницу и запись журнала в одной транзакции.
func (b *Business) save(ctx context.Context, page *dao.PageContent, expectedVersion int, verb string, field *string) error {
	err := b.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := dao.SavePage(tx, page, expectedVersion); err != nil {
			return err
		}
		return dao.AddActivity(tx, page, verb, field)
	})
	if err == nil {
		return nil
	}
	var defined apierrors.DefinedError
	if errors.As(err, &defined) {
		return err
	}
	return errStack.TrackErrorStack(err).
		AddContext("slug", page.Slug).
		AddContext("verb", verb)
}

// documentError переводит ошибку проверки схемы в ошибку API.
func (b *Business) documentError(err error) error {
	var violation *schema.SchemaViolation
	if errors.As(err, &violation) {
		b.metrics.SchemaViolations.Inc()
		return apierrors.ErrSchemaViolation.WithFormattedMessage(violation.Error())
	}
	return err
}
