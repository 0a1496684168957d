package app

import (
	"log"

	"blogCPT/internal/config"
	"blogCPT/internal/database"
	"blogCPT/internal/notify"
	"blogCPT/internal/repository"
	"blogCPT/internal/service"
	"blogCPT/internal/storage"
)

func App(cfg *config.Config) (*database.DB, *repository.Repository, *service.Service) {
	// connection DB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}

	// connection MinIO
	minioClient, err := storage.NewMinIOClient(cfg)
	if err != nil {
		log.Fatalf("Не удалось инициализировать MinIO: %v", err)
	}

	mailer, err := notify.NewMailer(cfg)
	if err != nil {
		log.Fatalf("Не удалось инициализировать почтовый клиент: %v", err)
	}

	// enabling dependencies
	repo := repository.NewRepository(db.DB)

	services := service.NewService(repo, cfg, minioClient, mailer)

	return db, repo, services
}
