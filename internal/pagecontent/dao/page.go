// Пакет dao содержит модели и методы хранения страниц контента в базе данных.
//
// Основные возможности:
//   - Модель страницы с деревом документа в JSONB и отрендеренным HTML.
//   - Получение, список и удаление страниц по slug.
//   - Сохранение с оптимистической проверкой версии.
//   - Журнал действий над страницей (загрузка, команды, отмена).
package dao

import (
	"errors"
	"time"

	"github.com/aisa-it/shopadmin/internal/pagecontent/apierrors"
	"github.com/aisa-it/shopadmin/internal/pagecontent/editor/tiptap"
	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// Models перечисляет все модели для миграции
var Models = []any{&PageContent{}, &PageActivity{}}

func GenUUID() uuid.UUID {
	u2, _ := uuid.NewV4()
	return u2
}

// Migrate создает или обновляет таблицы сервиса.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models...)
}

type PageContent struct {
	ID uuid.UUID `gorm:"column:id;primaryKey;type:uuid" json:"id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Slug     string          `json:"slug" gorm:"uniqueIndex;not null"`
	Title    string          `json:"title"`
	Document tiptap.Document `json:"document"`
	HTML     string          `json:"-" gorm:"column:html"`
	Version  int             `json:"version" gorm:"not null"`
}

func (PageContent) TableName() string { return "page_contents" }

func (p *PageContent) BeforeCreate(tx *gorm.DB) error {
	if p.ID.IsNil() {
		p.ID = GenUUID()
	}
	return nil
}

// PageLight - краткое описание страницы для списков
type PageLight struct {
	ID        uuid.UUID `json:"id"`
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Version   int       `json:"version"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *PageContent) ToLightDTO() *PageLight {
	if p == nil {
		return nil
	}
	return &PageLight{
		ID:        p.ID,
		Slug:      p.Slug,
		Title:     p.Title,
		Version:   p.Version,
		UpdatedAt: p.UpdatedAt,
	}
}

// GetPageBySlug возвращает страницу по slug. Отсутствующая страница - apierrors.ErrPageNotFound.
func GetPageBySlug(db *gorm.DB, slug string) (*PageContent, error) {
	var page PageContent
	if err := db.Where("slug = ?", slug).First(&page).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.ErrPageNotFound
		}
		return nil, err
	}
	return &page, nil
}

// ListPages возвращает страницы без содержимого, отсортированные по slug.
func ListPages(db *gorm.DB) ([]PageContent, error) {
	var pages []PageContent
	if err := db.Select("id", "slug", "title", "version", "created_at", "updated_at").
		Order("slug").
		Find(&pages).Error; err != nil {
		return nil, err
	}
	return pages, nil
}

// SavePage создает страницу или обновляет существующую с тем же slug.
//
// expectedVersion > 0 включает оптимистическую проверку: если версия в базе отличается,
// возвращается apierrors.ErrVersionConflict. После успешного сохранения page содержит
// ID, новую версию и даты из базы.
func SavePage(db *gorm.DB, page *PageContent, expectedVersion int) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var current PageContent
		err := tx.Select("id", "version", "created_at").Where("slug = ?", page.Slug).First(&current).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if expectedVersion > 0 {
				return apierrors.ErrVersionConflict
			}
			page.Version = 1
			return tx.Create(page).Error
		}
		if err != nil {
			return err
		}

		if expectedVersion > 0 && expectedVersion != current.Version {
			return apierrors.ErrVersionConflict
		}

		now := time.Now()
		res := tx.Model(&PageContent{}).
			Where("id = ?", current.ID).
			Where("version = ?", current.Version).
			Updates(map[string]any{
				"title":      page.Title,
				"document":   page.Document,
				"html":       page.HTML,
				"version":    current.Version + 1,
				"updated_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apierrors.ErrVersionConflict
		}

		page.ID = current.ID
		page.Version = current.Version + 1
		page.CreatedAt = current.CreatedAt
		page.UpdatedAt = now
		return nil
	})
}

// DeletePage удаляет страницу и ее журнал.
func DeletePage(db *gorm.DB, slug string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		page, err := GetPageBySlug(tx, slug)
		if err != nil {
			return err
		}
		if err := tx.Where("page_id = ?", page.ID).Delete(&PageActivity{}).Error; err != nil {
			return err
		}
		return tx.Delete(page).Error
	})
}
