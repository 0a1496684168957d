package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"blogCPT/internal/apperrors"
	"blogCPT/internal/config"
	"blogCPT/internal/models"
	"blogCPT/internal/notify"
	"blogCPT/internal/repository"
)

type RegisterRequest struct {
	Username string
	Email    string
	Password string
}

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
}

type authService struct {
	userRepo repository.UserRepository
	cfg      *config.Config
	mailer   notify.Mailer
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config, mailer notify.Mailer) AuthService {
	return &authService{
		userRepo: userRepo,
		cfg:      cfg,
		mailer:   mailer,
	}
}

func (s *authService) Register(ctx context.Context, req RegisterRequest) (*models.User, string, error) {
	// единая проверка занятости email и username
	existingUser, err := s.userRepo.GetUserByEmailOrUsername(ctx, req.Email, req.Username)
	if err != nil && !apperrors.IsKind(err, apperrors.KindNotFound) {
		return nil, "", fmt.Errorf("ошибка при проверке существующего пользователя: %w", err)
	}

	if existingUser != nil {
		field := "username"
		if existingUser.Email == req.Email {
			field = "email"
		}
		return nil, "", apperrors.Conflict(field, "пользователь с таким "+field+" уже существует")
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Role:     models.RoleReader,
	}

	err = s.userRepo.CreateUser(ctx, user, req.Password)
	if err != nil {
		return nil, "", err
	}

	token, err := s.generateAccessToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("ошибка генерации access token: %w", err)
	}

	// письмо отправляется вне критического пути регистрации, сбой только логируется
	go func(email, username string) {
		mailCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if err := s.mailer.SendWelcome(mailCtx, email, username); err != nil {
			log.Printf("не удалось отправить приветственное письмо на %s: %v", email, err)
		}
	}(user.Email, user.Username)

	return user, token, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.userRepo.VerifyPassword(ctx, email, password)
	if err != nil {
		return nil, "", err
	}

	token, err := s.generateAccessToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("ошибка генерации access token: %w", err)
	}

	return user, token, nil
}

// токен несёт только идентификатор, роль и остальные поля берутся из БД на каждый запрос
func (s *authService) generateAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"id":  user.UserID,
		"exp": time.Now().Add(s.cfg.AccessTokenDuration).Unix(),
		"iat": time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.cfg.JWTSecretKey))
	if err != nil {
		return "", fmt.Errorf("ошибка подписи токена: %w", err)
	}

	return tokenString, nil
}
