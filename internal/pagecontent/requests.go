package pagecontent

import (
	"time"

	"github.com/aisa-it/shopadmin/internal/pagecontent/business"
	"github.com/aisa-it/shopadmin/internal/pagecontent/dao"
	"github.com/aisa-it/shopadmin/internal/pagecontent/editor/tiptap"
	"github.com/aisa-it/shopadmin/internal/pagecontent/editor/transform"
	"github.com/gofrs/uuid"
)

type LoadPageRequest struct {
	Title string `json:"title" validate:"max=150"`
	HTML  string `json:"html"`
}

// PageResponse - страница с документом в TipTap JSON
type PageResponse struct {
	ID        uuid.UUID       `json:"id"`
	Slug      string          `json:"slug"`
	Title     string          `json:"title"`
	Version   int             `json:"version"`
	Document  tiptap.Document `json:"document"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func pageResponse(page *dao.PageContent) PageResponse {
	return PageResponse{
		ID:        page.ID,
		Slug:      page.Slug,
		Title:     page.Title,
		Version:   page.Version,
		Document:  page.Document,
		CreatedAt: page.CreatedAt,
		UpdatedAt: page.UpdatedAt,
	}
}

type CommandResponse struct {
	Applied   bool                `json:"applied"`
	Selection transform.Selection `json:"selection"`
	Page      PageResponse        `json:"page"`
}

func commandResponse(res *business.CommandResult) CommandResponse {
	return CommandResponse{
		Applied:   res.Applied,
		Selection: res.Selection,
		Page:      pageResponse(res.Page),
	}
}
