package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogCPT/internal/apperrors"
	"blogCPT/internal/models"
)

func newCategoryRepoMock(t *testing.T) (*CategoryRepositoryImpl, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	return NewCategoryRepository(sqlxDB), mock
}

func TestCategoryRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Успешное создание категории", func(t *testing.T) {
		repo, mock := newCategoryRepoMock(t)

		category := &models.Category{Name: "Go", Slug: "go"}

		mock.ExpectExec("INSERT INTO categories").
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := repo.Create(ctx, category)

		require.NoError(t, err)
		assert.NotEmpty(t, category.CategoryID)
	})

	t.Run("Дублирование имени даёт конфликт", func(t *testing.T) {
		repo, mock := newCategoryRepoMock(t)

		category := &models.Category{Name: "Go", Slug: "go"}

		mock.ExpectExec("INSERT INTO categories").
			WillReturnError(&pq.Error{Code: "23505", Constraint: "categories_name_key"})

		err := repo.Create(ctx, category)

		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))

		var appErr *apperrors.Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "name", appErr.Details["field"])
	})
}

func TestCategoryRepository_ListAll(t *testing.T) {
	ctx := context.Background()
	repo, mock := newCategoryRepoMock(t)

	rows := sqlmock.NewRows([]string{"category_id", "name", "slug", "created_at"}).
		AddRow(uuid.New().String(), "Databases", "databases", time.Now()).
		AddRow(uuid.New().String(), "Go", "go", time.Now())

	mock.ExpectQuery(`SELECT \* FROM categories ORDER BY name ASC`).
		WillReturnRows(rows)

	categories, err := repo.ListAll(ctx)

	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Databases", categories[0].Name)
}

func TestCategoryRepository_GetBySlug(t *testing.T) {
	ctx := context.Background()
	repo, mock := newCategoryRepoMock(t)

	mock.ExpectQuery(`SELECT \* FROM categories WHERE slug`).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"category_id"}))

	category, err := repo.GetBySlug(ctx, "ghost")

	assert.Nil(t, category)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}
