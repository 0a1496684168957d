package service

import (
	"context"

	"blogCPT/internal/models"
	"blogCPT/internal/repository"
)

type CategoryService interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, name string) (*models.Category, error)
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.categoryRepo.ListAll(ctx)
}

func (s *categoryService) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	category := &models.Category{
		Name: name,
		Slug: Slugify(name),
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}
