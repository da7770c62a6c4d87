package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"cms-app/internal/composition"
	"cms-app/internal/domain/pages"
	"cms-app/internal/domain/templates"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(pgdriver.New(pgdriver.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return New(db), mock
}

func TestActivePageBlocks(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT .* FROM "page_blocks" WHERE .*page_id = .*is_active = .*section = .*ORDER BY section ASC, sort_order ASC`).
		WithArgs(1, true, "main").
		WillReturnRows(sqlmock.NewRows([]string{"sort_order", "block_id"}).
			AddRow(1, 10).
			AddRow(5, 11))

	got, err := s.ActivePageBlocks(context.Background(), 1, "main")
	require.NoError(t, err)
	assert.Equal(t, []composition.BlockAssignment{{Order: 1, BlockID: 10}, {Order: 5, BlockID: 11}}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestActivePageBlocks_NoSectionFilter(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT .* FROM "page_blocks" WHERE page_id = \$1 AND is_active = \$2 ORDER BY`).
		WithArgs(1, true).
		WillReturnRows(sqlmock.NewRows([]string{"sort_order", "block_id"}))

	got, err := s.ActivePageBlocks(context.Background(), 1, "")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInactivePageBlockIDs(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT "block_id" FROM "page_blocks" WHERE page_id = \$1 AND is_active = \$2`).
		WithArgs(3, false).
		WillReturnRows(sqlmock.NewRows([]string{"block_id"}).AddRow(7).AddRow(8))

	got, err := s.InactivePageBlockIDs(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, []uint{7, 8}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTemplateDefaultBlocks_Exclude(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT .* FROM "page_template_blocks" WHERE .*template_id = .*block_id NOT IN`).
		WillReturnRows(sqlmock.NewRows([]string{"sort_order", "block_id"}).AddRow(2, 12))

	got, err := s.TemplateDefaultBlocks(context.Background(), 4, "main", []uint{10, 11})
	require.NoError(t, err)
	assert.Equal(t, []composition.BlockAssignment{{Order: 2, BlockID: 12}}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPage_NotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT \* FROM "pages"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := s.Page(context.Background(), 9)
	assert.ErrorIs(t, err, composition.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRelationExists(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "page_related" WHERE page_id = \$1 AND related_page_id = \$2`).
		WithArgs(2, 1).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	ok, err := s.RelationExists(context.Background(), 2, 1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertRelation_UniqueViolation(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "page_related"`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "idx_page_related_pair"})
	mock.ExpectRollback()

	err := s.InsertRelation(context.Background(), &pages.PageRelated{PageID: 2, RelatedPageID: 1, IsActive: true})
	assert.ErrorIs(t, err, composition.ErrConstraintViolation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteRelationsTo(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`DELETE FROM "page_related" WHERE related_page_id = \$1`).
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 2))

	require.NoError(t, s.DeleteRelationsTo(context.Background(), 5))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeletePage_ForeignKeyIsDangling(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`DELETE FROM "pages"`).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "fk_page_related_related_page"})

	err := s.DeletePage(context.Background(), 5)
	assert.ErrorIs(t, err, composition.ErrDanglingReference)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeletePage_Missing(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`DELETE FROM "pages"`).WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.DeletePage(context.Background(), 5)
	assert.ErrorIs(t, err, composition.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransaction_RollsBackOnError(t *testing.T) {
	s, mock := newMockStore(t)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "page_related"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	err := s.Transaction(context.Background(), func(tx composition.Store) error {
		if err := tx.DeleteRelationsTo(context.Background(), 1); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil, "x"))
	assert.ErrorIs(t, translate(gorm.ErrRecordNotFound, "x"), composition.ErrNotFound)
	assert.ErrorIs(t, translate(&pgconn.PgError{Code: "23505"}, "x"), composition.ErrConstraintViolation)
	assert.ErrorIs(t, translate(&pgconn.PgError{Code: "23503"}, "x"), composition.ErrDanglingReference)

	other := errors.New("conn reset")
	err := translate(other, "x")
	assert.ErrorIs(t, err, other)
	assert.False(t, errors.Is(err, composition.ErrNotFound))
}

func TestSavePage_MissingTemplateIsNotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`INSERT INTO "pages"`).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "fk_pages_base_template"})

	p := &pages.Page{Name: "x", Title: "X", DateStart: time.Now(), BaseTemplateID: 999}
	err := s.SavePage(context.Background(), p)
	assert.ErrorIs(t, err, composition.ErrNotFound)
	assert.NotErrorIs(t, err, composition.ErrDanglingReference)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPageServiceSave_UnknownTemplate(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "page_templates" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	svc := composition.NewPageService(s, nil)
	p := &pages.Page{Name: "x", Title: "X", DateStart: time.Now(), BaseTemplateID: 999}
	err := svc.Save(context.Background(), p)
	assert.ErrorIs(t, err, composition.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPageCategories(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT .* FROM "categories" JOIN page_categories ON page_categories.category_id = categories.id WHERE page_categories.page_id = \$1 ORDER BY categories.name ASC`).
		WithArgs(4).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "image"}).
			AddRow(2, "Art", "", nil).
			AddRow(1, "News", "", "news.png"))

	cats, err := s.PageCategories(context.Background(), 4)
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "Art", cats[0].Name)
	assert.Nil(t, cats[0].Image)
	require.NotNil(t, cats[1].Image)
	assert.Equal(t, "news.png", *cats[1].Image)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetPageCategories_UnknownCategory(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT \* FROM "categories" WHERE id IN \(\$1,\$2\)`).
		WithArgs(5, 6).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(5, "News"))

	err := s.SetPageCategories(context.Background(), 1, []uint{5, 6, 5})
	assert.ErrorIs(t, err, composition.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSavePageTemplateBlock_UpdateMissingRow(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`UPDATE "page_template_blocks" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	tb := &templates.PageTemplateBlock{ID: 8, TemplateID: 1, BlockID: 2, Section: "main", Order: 1, IsActive: true}
	err := s.SavePageTemplateBlock(context.Background(), tb)
	assert.ErrorIs(t, err, composition.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSavePageTemplateBlock_MissingBlockIsNotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`INSERT INTO "page_template_blocks"`).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "fk_page_template_blocks_block"})

	tb := &templates.PageTemplateBlock{TemplateID: 1, BlockID: 404, Section: "main", IsActive: true}
	assert.ErrorIs(t, s.SavePageTemplateBlock(context.Background(), tb), composition.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTranslateWrite(t *testing.T) {
	assert.NoError(t, translateWrite(nil, "x"))
	assert.ErrorIs(t, translateWrite(&pgconn.PgError{Code: "23503"}, "x"), composition.ErrNotFound)
	assert.ErrorIs(t, translateWrite(&pgconn.PgError{Code: "23505"}, "x"), composition.ErrConstraintViolation)
	assert.ErrorIs(t, translateWrite(gorm.ErrRecordNotFound, "x"), composition.ErrNotFound)
}
