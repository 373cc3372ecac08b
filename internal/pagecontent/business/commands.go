package business

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aisa-it/shopadmin/internal/pagecontent/apierrors"
	"github.com/aisa-it/shopadmin/internal/pagecontent/dao"
	"github.com/aisa-it/shopadmin/internal/pagecontent/editor"
	"github.com/aisa-it/shopadmin/internal/pagecontent/editor/commands"
	"github.com/aisa-it/shopadmin/internal/pagecontent/editor/doctree"
	"github.com/aisa-it/shopadmin/internal/pagecontent/editor/tiptap"
	"github.com/aisa-it/shopadmin/internal/pagecontent/editor/transform"
	"github.com/gofrs/uuid"
)

// Имена команд редактора
const (
	CommandInsertColumns = "insertColumns"
	CommandUnsetColumns  = "unsetColumns"
)

type CommandRequest struct {
	Command string `json:"command" validate:"required"`
	Cols    int    `json:"cols"`
	Anchor  int    `json:"anchor" validate:"min=0"`
	Head    int    `json:"head" validate:"min=0"`
	// 0 - без проверки версии
	Version int `json:"version" validate:"min=0"`
}

type CommandResult struct {
	Applied   bool                `json:"applied"`
	Selection transform.Selection `json:"selection"`
	Page      *dao.PageContent    `json:"page"`
}

func (b *Business) resolveCommand(req CommandRequest) (commands.Command, error) {
	switch req.Command {
	case CommandInsertColumns:
		return commands.InsertColumns(b.reg, req.Cols), nil
	case CommandUnsetColumns:
		return commands.UnsetColumns(), nil
	}
	return nil, apierrors.ErrUnknownCommand.WithFormattedMessage(req.Command)
}

// ExecCommand выполняет команду редактора над страницей с выделением из запроса.
// Неприменимая команда не меняет страницу и возвращает Applied=false.
func (b *Business) ExecCommand(ctx context.Context, slug string, req CommandRequest) (*CommandResult, error) {
	cmd, err := b.resolveCommand(req)
	if err != nil {
		b.metrics.Commands.WithLabelValues("unknown", resultError).Inc()
		return nil, err
	}

	sess := b.sessions.acquire(slug)
	defer sess.release()

	page, err := dao.GetPageBySlug(b.db.WithContext(ctx), slug)
	if err != nil {
		return nil, err
	}
	if req.Version > 0 && req.Version != page.Version {
		return nil, apierrors.ErrVersionConflict
	}

	ed, err := sess.editorFor(page, b.reg, b.historyLimit)
	if err != nil {
		return nil, b.documentError(err)
	}
	if err := ed.SetSelection(transform.Selection{Anchor: req.Anchor, Head: req.Head}); err != nil {
		return nil, apierrors.ErrInvalidSelection
	}

	applied, err := commands.Run(ed, cmd)
	if err != nil {
		b.metrics.Commands.WithLabelValues(req.Command, resultError).Inc()
		if errors.Is(err, transform.ErrStaleTransaction) {
			sess.reset()
			return nil, apierrors.ErrVersionConflict
		}
		return nil, b.documentError(err)
	}

	state := ed.State()
	if !applied {
		b.metrics.Commands.WithLabelValues(req.Command, resultNoop).Inc()
		return &CommandResult{Applied: false, Selection: state.Selection, Page: page}, nil
	}

	page.Document = tiptap.NewDocument(state.Doc)
	page.HTML = editor.Render(b.reg, state.Doc)
	name := req.Command
	if err := b.save(ctx, page, sess.version, dao.VerbCommand, &name); err != nil {
		// состояние редактора разошлось с базой
		sess.reset()
		b.metrics.Commands.WithLabelValues(req.Command, resultError).Inc()
		return nil, err
	}
	sess.version = page.Version
	b.metrics.Commands.WithLabelValues(req.Command, resultApplied).Inc()

	slog.Debug("Editor command applied", "slug", slug, "command", req.Command, "version", page.Version)
	if slog.Default().Enabled(ctx, slog.LevelDebug) {
		slog.Debug("Editor document", "slug", slug, "tree", doctree.Dump(state.Doc))
	}
	return &CommandResult{Applied: true, Selection: state.Selection, Page: page}, nil
}

// Undo отменяет последнюю команду, выполненную в текущей сессии страницы.
func (b *Business) Undo(ctx context.Context, slug string) (*CommandResult, error) {
	return b.historyStep(ctx, slug, dao.VerbUndo)
}

// Redo повторяет отмененную команду.
func (b *Business) Redo(ctx context.Context, slug string) (*CommandResult, error) {
	return b.historyStep(ctx, slug, dao.VerbRedo)
}

func (b *Business) historyStep(ctx context.Context, slug string, verb string) (*CommandResult, error) {
	sess := b.sessions.acquire(slug)
	defer sess.release()

	page, err := dao.GetPageBySlug(b.db.WithContext(ctx), slug)
	if err != nil {
		return nil, err
	}

	notFound := apierrors.ErrNothingToUndo
	if verb == dao.VerbRedo {
		notFound = apierrors.ErrNothingToRedo
	}
	if sess.ed == nil || sess.version != page.Version {
		return nil, notFound
	}
	if verb == dao.VerbRedo && !sess.ed.Redo() || verb == dao.VerbUndo && !sess.ed.Undo() {
		return nil, notFound
	}

	state := sess.ed.State()
	page.Document = tiptap.NewDocument(state.Doc)
	page.HTML = editor.Render(b.reg, state.Doc)
	if err := b.save(ctx, page, sess.version, verb, nil); err != nil {
		sess.reset()
		return nil, err
	}
	sess.version = page.Version

	return &CommandResult{Applied: true, Selection: state.Selection, Page: page}, nil
}

// SessionInfo описывает открытую сессию редактора страницы.
type SessionInfo struct {
	PageID  uuid.UUID `json:"page_id"`
	Version int       `json:"version"`
	CanUndo bool      `json:"can_undo"`
	CanRedo bool      `json:"can_redo"`
}

// Session возвращает состояние истории страницы. Страница без сессии не имеет истории.
func (b *Business) Session(ctx context.Context, slug string) (*SessionInfo, error) {
	sess := b.sessions.acquire(slug)
	defer sess.release()

	page, err := dao.GetPageBySlug(b.db.WithContext(ctx), slug)
	if err != nil {
		return nil, err
	}
	info := &SessionInfo{PageID: page.ID, Version: page.Version}
	if sess.ed != nil && sess.version == page.Version {
		info.CanUndo = sess.ed.CanUndo()
		info.CanRedo = sess.ed.CanRedo()
	}
	return info, nil
}
