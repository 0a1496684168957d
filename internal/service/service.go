package service

import (
	"blogCPT/internal/config"
	"blogCPT/internal/notify"
	"blogCPT/internal/repository"
	"blogCPT/internal/storage"
)

type Service struct {
	Auth     AuthService
	Post     PostService
	Category CategoryService
	Upload   UploadService
}

func NewService(rep *repository.Repository, cfg *config.Config, store storage.Storage, mailer notify.Mailer) *Service {
	return &Service{
		Auth:     NewAuthService(rep.User, cfg, mailer),
		Post:     NewPostService(rep.Post, rep.Category),
		Category: NewCategoryService(rep.Category),
		Upload:   NewUploadService(store, rep.Post, cfg),
	}
}
