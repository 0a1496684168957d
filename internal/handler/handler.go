package handlers

import (
	"github.com/go-playground/validator/v10"

	"blogCPT/internal/config"
	"blogCPT/internal/database"
	"blogCPT/internal/repository"
	"blogCPT/internal/service"
)

type Handlers struct {
	AuthService     service.AuthService
	PostService     service.PostService
	CategoryService service.CategoryService
	UploadService   service.UploadService
	UserRepo        repository.UserRepository
	DB              *database.DB
	Cfg             *config.Config
	Validate        *validator.Validate
}

func NewHandlers(repo *repository.Repository, services *service.Service, db *database.DB, cfg *config.Config) *Handlers {
	return &Handlers{
		AuthService:     services.Auth,
		PostService:     services.Post,
		CategoryService: services.Category,
		UploadService:   services.Upload,
		UserRepo:        repo.User,
		DB:              db,
		Cfg:             cfg,
		Validate:        validator.New(),
	}
}
