package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"blogCPT/internal/apperrors"
	"blogCPT/internal/models"
)

type CategoryRepositoryImpl struct {
	db *sqlx.DB
}

func NewCategoryRepository(db *sqlx.DB) *CategoryRepositoryImpl {
	return &CategoryRepositoryImpl{db: db}
}

func (r *CategoryRepositoryImpl) Create(ctx context.Context, category *models.Category) error {
	if category.CategoryID == "" {
		category.CategoryID = uuid.New().String()
	}
	category.CreatedAt = time.Now()

	query := `
		INSERT INTO categories (category_id, name, slug, created_at)
		VALUES (:category_id, :name, :slug, :created_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, category)
	if err != nil {
		if field, ok := uniqueViolationField(err); ok {
			return apperrors.Conflict(field, "категория с таким "+field+" уже существует")
		}
		return fmt.Errorf("ошибка при создании категории: %w", err)
	}

	return nil
}

func (r *CategoryRepositoryImpl) GetByID(ctx context.Context, categoryID string) (*models.Category, error) {
	var category models.Category

	query := `SELECT * FROM categories WHERE category_id = $1`

	err := r.db.GetContext(ctx, &category, query, categoryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("категория не найдена")
		}
		return nil, fmt.Errorf("ошибка при получении категории: %w", err)
	}

	return &category, nil
}

func (r *CategoryRepositoryImpl) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category

	query := `SELECT * FROM categories WHERE slug = $1`

	err := r.db.GetContext(ctx, &category, query, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("категория не найдена")
		}
		return nil, fmt.Errorf("ошибка при получении категории по slug: %w", err)
	}

	return &category, nil
}

// ListAll возвращает все категории по алфавиту, без пагинации.
func (r *CategoryRepositoryImpl) ListAll(ctx context.Context) ([]models.Category, error) {
	query := `SELECT * FROM categories ORDER BY name ASC`

	categories := []models.Category{}
	err := r.db.SelectContext(ctx, &categories, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении списка категорий: %w", err)
	}

	return categories, nil
}
