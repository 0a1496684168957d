package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"blogCPT/internal/apperrors"
	"blogCPT/internal/config"
	"blogCPT/internal/models"
	"blogCPT/internal/repository"
	"blogCPT/internal/storage"
)

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

var allowedImageMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

type UploadService interface {
	Upload(ctx context.Context, originalName, contentType string, file io.Reader, size int64) (*models.UploadedImage, error)
	Delete(ctx context.Context, filename string) error
	List(ctx context.Context) ([]models.UploadedImage, error)
}

type uploadService struct {
	storage  storage.Storage
	postRepo repository.PostRepository
	cfg      *config.Config
}

func NewUploadService(store storage.Storage, postRepo repository.PostRepository, cfg *config.Config) UploadService {
	return &uploadService{
		storage:  store,
		postRepo: postRepo,
		cfg:      cfg,
	}
}

// Upload проверяет размер и тип файла до обращения к хранилищу.
func (s *uploadService) Upload(ctx context.Context, originalName, contentType string, file io.Reader, size int64) (*models.UploadedImage, error) {
	if size > s.cfg.MaxUploadSize {
		return nil, apperrors.Validation(
			fmt.Sprintf("файл слишком большой, максимум %d МБ", s.cfg.MaxUploadSize/(1024*1024)), nil)
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedImageExtensions[ext] || !allowedImageMimeTypes[contentType] {
		return nil, apperrors.Validation("допускаются только изображения (JPEG, JPG, PNG, GIF, WebP)", nil)
	}

	filename := fmt.Sprintf("post-%d-%s%s", time.Now().UnixMilli(), uuid.NewString()[:8], ext)

	if err := s.storage.UploadImage(ctx, filename, contentType, file, size); err != nil {
		return nil, err
	}

	return &models.UploadedImage{
		Filename:  filename,
		Path:      "/uploads/" + filename,
		Size:      size,
		MimeType:  contentType,
		CreatedAt: time.Now(),
	}, nil
}

// Delete отклоняет удаление файла, на который ссылается featured_image поста.
func (s *uploadService) Delete(ctx context.Context, filename string) error {
	exists, err := s.storage.ImageExists(ctx, filename)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.NotFound("файл не найден")
	}

	used, err := s.postRepo.CountByFeaturedImage(ctx, filename)
	if err != nil {
		return err
	}
	if used > 0 {
		return apperrors.Validation("нельзя удалить изображение: оно используется постом", nil)
	}

	return s.storage.DeleteImage(ctx, filename)
}

func (s *uploadService) List(ctx context.Context) ([]models.UploadedImage, error) {
	objects, err := s.storage.ListImages(ctx)
	if err != nil {
		return nil, err
	}

	images := []models.UploadedImage{}
	for _, object := range objects {
		used, err := s.postRepo.CountByFeaturedImage(ctx, object.Name)
		if err != nil {
			return nil, err
		}

		images = append(images, models.UploadedImage{
			Filename:  object.Name,
			Path:      "/uploads/" + object.Name,
			Size:      object.Size,
			CreatedAt: object.CreatedAt,
			IsUsed:    used > 0,
		})
	}

	return images, nil
}
