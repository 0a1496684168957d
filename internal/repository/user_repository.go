package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"blogCPT/internal/apperrors"
	"blogCPT/internal/models"
)

// bcrypt-хеш, против которого сверяется пароль при отсутствии пользователя,
// чтобы оба исхода логина занимали одинаковое время
const dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User, password string) error {
	// create password hash
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("ошибка при хешировании пароля: %w", err)
	}

	user.UserID = uuid.New().String()
	user.PasswordHash = string(hashedPassword)
	user.CreatedAt = time.Now()

	query := `
		INSERT INTO users (user_id, username, email, password_hash, role, created_at)
		VALUES (:user_id, :username, :email, :password_hash, :role, :created_at)
	`

	_, err = r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		if field, ok := uniqueViolationField(err); ok {
			return apperrors.Conflict(field, "пользователь с таким "+field+" уже существует")
		}
		return fmt.Errorf("ошибка при создании пользователя: %w", err)
	}

	return nil
}

func (r *userRepository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	var user models.User

	query := `SELECT * FROM users WHERE user_id = $1`

	err := r.db.GetContext(ctx, &user, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("пользователь не найден")
		}
		return nil, fmt.Errorf("ошибка при получении пользователя: %w", err)
	}

	return &user, nil
}

// GetUserByEmailOrUsername делает единый запрос для проверки занятости при регистрации.
func (r *userRepository) GetUserByEmailOrUsername(ctx context.Context, email, username string) (*models.User, error) {
	var user models.User

	query := `SELECT * FROM users WHERE email = $1 OR username = $2`

	err := r.db.GetContext(ctx, &user, query, email, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("пользователь не найден")
		}
		return nil, fmt.Errorf("ошибка при получении пользователя: %w", err)
	}

	return &user, nil
}

// VerifyPassword возвращает одну и ту же ошибку для "нет пользователя" и
// "неверный пароль", не давая перебирать email.
func (r *userRepository) VerifyPassword(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User

	query := `SELECT * FROM users WHERE email = $1`

	err := r.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			bcrypt.CompareHashAndPassword([]byte(dummyPasswordHash), []byte(password))
			return nil, apperrors.Authentication("неверный email или пароль")
		}
		return nil, fmt.Errorf("ошибка при получении пользователя по email: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		return nil, apperrors.Authentication("неверный email или пароль")
	}

	return &user, nil
}

// uniqueViolationField определяет поле, нарушившее уникальный индекс.
func uniqueViolationField(err error) (string, bool) {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != "23505" {
		return "", false
	}

	switch {
	case strings.Contains(pqErr.Constraint, "email"):
		return "email", true
	case strings.Contains(pqErr.Constraint, "username"):
		return "username", true
	case strings.Contains(pqErr.Constraint, "slug"):
		return "slug", true
	case strings.Contains(pqErr.Constraint, "name"):
		return "name", true
	}
	return "unknown", true
}
