package shortener

import (
	"context"
	"testing"
	"time"

	"foodgram-backend/entities"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func shortLinkRows(link *entities.ShortLink) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "token", "original_url", "created_at"}).
		AddRow(link.ID.String(), link.Token, link.OriginalURL, link.CreatedAt)
}

func TestGetLinkByToken(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewShortenerRepository(db)

	stored := &entities.ShortLink{
		ID:          uuid.New(),
		Token:       "abc123",
		OriginalURL: "https://example.com/recipes/abc",
		CreatedAt:   time.Now(),
	}

	mock.ExpectQuery(`SELECT \* FROM "short_links" WHERE token = \$1`).
		WithArgs("abc123", 1).
		WillReturnRows(shortLinkRows(stored))

	link, err := repo.GetLinkByToken(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, stored.Token, link.Token)
	assert.Equal(t, stored.OriginalURL, link.OriginalURL)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetLinkByTokenNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewShortenerRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "short_links" WHERE token = \$1`).
		WithArgs("missing", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "token", "original_url", "created_at"}))

	_, err := repo.GetLinkByToken(context.Background(), "missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Duplicate URLs can exist in storage; lookup settles on the oldest row.
func TestGetLinkByOriginalURLOrdersByAge(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewShortenerRepository(db)

	oldest := &entities.ShortLink{
		ID:          uuid.New(),
		Token:       "first1",
		OriginalURL: "https://example.com/recipes/abc",
		CreatedAt:   time.Now().Add(-time.Hour),
	}

	mock.ExpectQuery(`SELECT \* FROM "short_links" WHERE original_url = \$1 ORDER BY created_at asc`).
		WithArgs(oldest.OriginalURL, 1).
		WillReturnRows(shortLinkRows(oldest))

	link, err := repo.GetLinkByOriginalURL(context.Background(), oldest.OriginalURL)
	require.NoError(t, err)
	assert.Equal(t, "first1", link.Token)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateLinkRejectsTakenToken(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewShortenerRepository(db)

	stored := &entities.ShortLink{
		ID:          uuid.New(),
		Token:       "abc123",
		OriginalURL: "https://example.com/recipes/abc",
		CreatedAt:   time.Now(),
	}

	mock.ExpectQuery(`SELECT \* FROM "short_links" WHERE token = \$1`).
		WithArgs("abc123", 1).
		WillReturnRows(shortLinkRows(stored))

	err := repo.CreateLink(context.Background(), &entities.ShortLink{
		ID:          uuid.New(),
		Token:       "abc123",
		OriginalURL: "https://example.com/recipes/other",
		CreatedAt:   time.Now(),
	})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}
