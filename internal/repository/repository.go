package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"blogCPT/internal/models"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmailOrUsername(ctx context.Context, email, username string) (*models.User, error)
	VerifyPassword(ctx context.Context, email, password string) (*models.User, error)
}

type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, categoryID string) (*models.Category, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	ListAll(ctx context.Context) ([]models.Category, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, postID string) (*models.Post, error)
	GetBySlug(ctx context.Context, slug string) (*models.Post, error)
	ListPublished(ctx context.Context, categoryID string, limit, offset int) ([]models.Post, int, error)
	Search(ctx context.Context, query string, limit, offset int) ([]models.Post, int, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, postID string) error
	IncrementViewCount(ctx context.Context, postID string) error
	AddComment(ctx context.Context, comment *models.Comment) error
	GetComments(ctx context.Context, postID string) ([]models.Comment, error)
	CountByFeaturedImage(ctx context.Context, filename string) (int, error)
}

type Repository struct {
	User     UserRepository
	Category CategoryRepository
	Post     PostRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:     NewUserRepository(db),
		Category: NewCategoryRepository(db),
		Post:     NewPostRepository(db),
	}
}
