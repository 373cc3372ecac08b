package dao

import (
	"testing"

	"github.com/aisa-it/shopadmin/internal/pagecontent/apierrors"
	"github.com/aisa-it/shopadmin/internal/pagecontent/editor/doctree"
	"github.com/aisa-it/shopadmin/internal/pagecontent/editor/tiptap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB создает тестовую БД SQLite в памяти
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// одна база в памяти на соединение
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, Migrate(db))
	return db
}

func testDocument(text string) tiptap.Document {
	return tiptap.NewDocument(doctree.New(doctree.TypeDoc, nil,
		doctree.New(doctree.TypeParagraph, nil, doctree.NewText(text)),
	))
}

func TestSavePageCreatesAndUpdates(t *testing.T) {
	db := setupTestDB(t)

	page := &PageContent{Slug: "delivery", Title: "Доставка", Document: testDocument("a"), HTML: "<p>a</p>"}
	require.NoError(t, SavePage(db, page, 0))
	assert.False(t, page.ID.IsNil())
	assert.Equal(t, 1, page.Version)

	update := &PageContent{Slug: "delivery", Title: "Доставка и оплата", Document: testDocument("b"), HTML: "<p>b</p>"}
	require.NoError(t, SavePage(db, update, 1))
	assert.Equal(t, page.ID, update.ID)
	assert.Equal(t, 2, update.Version)

	stored, err := GetPageBySlug(db, "delivery")
	require.NoError(t, err)
	assert.Equal(t, "Доставка и оплата", stored.Title)
	assert.Equal(t, "<p>b</p>", stored.HTML)
	assert.Equal(t, 2, stored.Version)
	require.NotNil(t, stored.Document.Root)
	assert.True(t, testDocument("b").Root.Equal(stored.Document.Root))
}

func TestSavePageVersionConflict(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, SavePage(db, &PageContent{Slug: "about", Document: testDocument("a")}, 0))
	require.NoError(t, SavePage(db, &PageContent{Slug: "about", Document: testDocument("b")}, 1))

	err := SavePage(db, &PageContent{Slug: "about", Document: testDocument("c")}, 1)
	assert.ErrorIs(t, err, apierrors.ErrVersionConflict)

	stored, err := GetPageBySlug(db, "about")
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Version)
	assert.Equal(t, "b", stored.Document.Root.TextContent())

	// ожидаемая версия для несуществующей страницы
	err = SavePage(db, &PageContent{Slug: "missing", Document: testDocument("x")}, 3)
	assert.ErrorIs(t, err, apierrors.ErrVersionConflict)
}

func TestGetPageNotFound(t *testing.T) {
	db := setupTestDB(t)
	_, err := GetPageBySlug(db, "nope")
	assert.ErrorIs(t, err, apierrors.ErrPageNotFound)
}

func TestListPagesSortedBySlug(t *testing.T) {
	db := setupTestDB(t)
	for _, slug := range []string{"contacts", "about", "delivery"} {
		require.NoError(t, SavePage(db, &PageContent{Slug: slug, Title: slug, Document: testDocument(slug)}, 0))
	}

	pages, err := ListPages(db)
	require.NoError(t, err)
	require.Len(t, pages, 3)

	var slugs []string
	for _, p := range pages {
		slugs = append(slugs, p.ToLightDTO().Slug)
		assert.Nil(t, p.Document.Root, "list does not load documents")
	}
	assert.Equal(t, []string{"about", "contacts", "delivery"}, slugs)
}

func TestDeletePageRemovesActivities(t *testing.T) {
	db := setupTestDB(t)

	page := &PageContent{Slug: "faq", Document: testDocument("q")}
	require.NoError(t, SavePage(db, page, 0))
	cmd := "insertColumns"
	require.NoError(t, AddActivity(db, page, VerbLoaded, nil))
	require.NoError(t, AddActivity(db, page, VerbCommand, &cmd))

	activities, err := ListActivities(db, page.ID, 10)
	require.NoError(t, err)
	require.Len(t, activities, 2)

	require.NoError(t, DeletePage(db, "faq"))
	_, err = GetPageBySlug(db, "faq")
	assert.ErrorIs(t, err, apierrors.ErrPageNotFound)

	var count int64
	require.NoError(t, db.Model(&PageActivity{}).Where("page_id = ?", page.ID).Count(&count).Error)
	assert.Zero(t, count)

	assert.ErrorIs(t, DeletePage(db, "faq"), apierrors.ErrPageNotFound)
}
