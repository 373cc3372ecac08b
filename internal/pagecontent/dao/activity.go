package dao

import (
	"time"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// Глаголы журнала действий
const (
	VerbLoaded  = "loaded"
	VerbCommand = "command"
	VerbUndo    = "undo"
	VerbRedo    = "redo"
)

type PageActivity struct {
	ID        uuid.UUID `json:"id" gorm:"column:id;primaryKey;type:uuid"`
	CreatedAt time.Time `json:"created_at" gorm:"index:page_activities_page_index,sort:desc,priority:2"`

	PageID uuid.UUID `json:"page" gorm:"type:uuid;index:page_activities_page_index,priority:1"`
	Verb   string    `json:"verb"`
	// имя команды для VerbCommand
	Field *string `json:"field,omitempty"`
	// версия страницы после действия
	Version int `json:"version"`
}

func (PageActivity) TableName() string { return "page_activities" }

func (a *PageActivity) BeforeCreate(tx *gorm.DB) error {
	if a.ID.IsNil() {
		a.ID = GenUUID()
	}
	return nil
}

// AddActivity записывает действие над сохраненной страницей.
func AddActivity(db *gorm.DB, page *PageContent, verb string, field *string) error {
	return db.Create(&PageActivity{
		PageID:  page.ID,
		Verb:    verb,
		Field:   field,
		Version: page.Version,
	}).Error
}

// ListActivities возвращает последние limit действий страницы, новые первыми.
func ListActivities(db *gorm.DB, pageID uuid.UUID, limit int) ([]PageActivity, error) {
	var activities []PageActivity
	if err := db.Where("page_id = ?", pageID).
		Order("created_at desc").
		Order("version desc").
		Limit(limit).
		Find(&activities).Error; err != nil {
		return nil, err
	}
	return activities, nil
}
