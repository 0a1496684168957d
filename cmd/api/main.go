package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"blogCPT/cmd/app"
	"blogCPT/internal/config"
	handlers "blogCPT/internal/handler"
	"blogCPT/internal/middleware"
	"blogCPT/internal/models"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()

	if cfg.JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY не установлен в .env файле")
	}

	db, repo, services := app.App(cfg)
	defer db.CloseDB()

	handler := handlers.NewHandlers(repo, services, db, cfg)

	authRequired := middleware.Auth(cfg, repo.User)
	adminOnly := middleware.RequireRole(models.RoleAdmin)

	// setting up routes
	r := mux.NewRouter()

	r.HandleFunc("/health", handler.Health).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/auth/register", handler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", handler.Login).Methods(http.MethodPost)
	api.Handle("/auth/me", authRequired(http.HandlerFunc(handler.GetMe))).Methods(http.MethodGet)

	api.HandleFunc("/posts", handler.GetPosts).Methods(http.MethodGet)
	api.HandleFunc("/posts/search", handler.SearchPosts).Methods(http.MethodGet)
	api.HandleFunc("/posts/{idOrSlug}", handler.GetPost).Methods(http.MethodGet)
	api.Handle("/posts", authRequired(adminOnly(http.HandlerFunc(handler.CreatePost)))).Methods(http.MethodPost)
	api.Handle("/posts/{id}", authRequired(adminOnly(http.HandlerFunc(handler.UpdatePost)))).Methods(http.MethodPut)
	api.Handle("/posts/{id}", authRequired(adminOnly(http.HandlerFunc(handler.DeletePost)))).Methods(http.MethodDelete)
	api.Handle("/posts/{id}/comments", authRequired(http.HandlerFunc(handler.AddComment))).Methods(http.MethodPost)

	api.HandleFunc("/categories", handler.GetCategories).Methods(http.MethodGet)
	api.Handle("/categories", authRequired(adminOnly(http.HandlerFunc(handler.CreateCategory)))).Methods(http.MethodPost)

	api.Handle("/upload", authRequired(adminOnly(http.HandlerFunc(handler.UploadImage)))).Methods(http.MethodPost)
	api.Handle("/upload", authRequired(adminOnly(http.HandlerFunc(handler.ListImages)))).Methods(http.MethodGet)
	api.Handle("/upload/{filename}", authRequired(adminOnly(http.HandlerFunc(handler.DeleteImage)))).Methods(http.MethodDelete)

	handlerChain := middleware.Chain(
		r,
		middleware.LoggingMiddleware,
		middleware.CORSMiddleware,
	)

	// Starting the server
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	log.Printf("Сервер запущен на %s", addr)
	log.Printf("База данных: %s", cfg.DB.DbNAME)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
