package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"blogCPT/internal/apperrors"
	"blogCPT/internal/config"
	"blogCPT/internal/models"
)

func testAuthConfig() *config.Config {
	return &config.Config{
		JWTSecretKey:        "test-secret",
		AccessTokenDuration: time.Hour,
	}
}

func TestAuthService_Register(t *testing.T) {
	t.Run("успешная регистрация возвращает токен и шлёт письмо", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		mailer := newRecordingMailer(nil)
		svc := NewAuthService(userRepo, testAuthConfig(), mailer)

		userRepo.On("GetUserByEmailOrUsername", mock.Anything, "ivan@example.com", "ivan").
			Return(nil, apperrors.NotFound("пользователь не найден"))
		userRepo.On("CreateUser", mock.Anything, mock.AnythingOfType("*models.User"), "secret123").
			Run(func(args mock.Arguments) {
				args.Get(1).(*models.User).UserID = "u-1"
			}).Return(nil)

		user, token, err := svc.Register(context.Background(), RegisterRequest{
			Username: "ivan",
			Email:    "ivan@example.com",
			Password: "secret123",
		})

		require.NoError(t, err)
		assert.Equal(t, models.RoleReader, user.Role)

		parsed, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) {
			return []byte("test-secret"), nil
		})
		require.NoError(t, err)
		claims := parsed.Claims.(jwt.MapClaims)
		assert.Equal(t, "u-1", claims["id"])

		select {
		case email := <-mailer.sent:
			assert.Equal(t, "ivan@example.com", email)
		case <-time.After(2 * time.Second):
			t.Fatal("приветственное письмо не отправлено")
		}
	})

	t.Run("занятый email даёт конфликт по полю email", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewAuthService(userRepo, testAuthConfig(), newRecordingMailer(nil))

		userRepo.On("GetUserByEmailOrUsername", mock.Anything, "ivan@example.com", "newname").
			Return(&models.User{Email: "ivan@example.com", Username: "ivan"}, nil)

		_, _, err := svc.Register(context.Background(), RegisterRequest{
			Username: "newname",
			Email:    "ivan@example.com",
			Password: "secret123",
		})

		var appErr *apperrors.Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.KindConflict, appErr.Kind)
		assert.Equal(t, "email", appErr.Details["field"])
		userRepo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("занятый username даёт конфликт по полю username", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewAuthService(userRepo, testAuthConfig(), newRecordingMailer(nil))

		userRepo.On("GetUserByEmailOrUsername", mock.Anything, "new@example.com", "ivan").
			Return(&models.User{Email: "ivan@example.com", Username: "ivan"}, nil)

		_, _, err := svc.Register(context.Background(), RegisterRequest{
			Username: "ivan",
			Email:    "new@example.com",
			Password: "secret123",
		})

		var appErr *apperrors.Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "username", appErr.Details["field"])
	})

	t.Run("сбой отправки письма не ломает регистрацию", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		mailer := newRecordingMailer(assert.AnError)
		svc := NewAuthService(userRepo, testAuthConfig(), mailer)

		userRepo.On("GetUserByEmailOrUsername", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, apperrors.NotFound("пользователь не найден"))
		userRepo.On("CreateUser", mock.Anything, mock.AnythingOfType("*models.User"), mock.Anything).Return(nil)

		_, token, err := svc.Register(context.Background(), RegisterRequest{
			Username: "petr",
			Email:    "petr@example.com",
			Password: "secret123",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, token)
		<-mailer.sent
	})
}

func TestAuthService_Login(t *testing.T) {
	t.Run("верные учётные данные возвращают пользователя и токен", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewAuthService(userRepo, testAuthConfig(), newRecordingMailer(nil))

		userRepo.On("VerifyPassword", mock.Anything, "ivan@example.com", "secret123").
			Return(&models.User{UserID: "u-1", Email: "ivan@example.com"}, nil)

		user, token, err := svc.Login(context.Background(), "ivan@example.com", "secret123")

		require.NoError(t, err)
		assert.Equal(t, "u-1", user.UserID)
		assert.NotEmpty(t, token)
	})

	t.Run("ошибка проверки пароля передаётся как есть", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewAuthService(userRepo, testAuthConfig(), newRecordingMailer(nil))

		userRepo.On("VerifyPassword", mock.Anything, "ivan@example.com", "wrong").
			Return(nil, apperrors.Authentication("неверный email или пароль"))

		_, _, err := svc.Login(context.Background(), "ivan@example.com", "wrong")

		assert.True(t, apperrors.IsKind(err, apperrors.KindAuthentication))
	})
}
