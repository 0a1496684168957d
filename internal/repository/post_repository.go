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

	"blogCPT/internal/apperrors"
	"blogCPT/internal/models"
)

// postColumns выбирает пост вместе с разрешёнными ссылками на автора и категорию
const postColumns = `
	p.post_id, p.title, p.content, p.excerpt, p.featured_image, p.slug,
	p.author_id, p.category_id, p.tags, p.is_published, p.view_count,
	p.created_at, p.updated_at,
	u.username AS author_username,
	c.name AS category_name,
	c.slug AS category_slug
`

const postJoins = `
	FROM posts p
	JOIN users u ON u.user_id = p.author_id
	JOIN categories c ON c.category_id = p.category_id
`

type PostRepositoryImpl struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) *PostRepositoryImpl {
	return &PostRepositoryImpl{db: db}
}

func (r *PostRepositoryImpl) Create(ctx context.Context, post *models.Post) error {
	if post.PostID == "" {
		post.PostID = uuid.New().String()
	}

	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}
	post.UpdatedAt = post.CreatedAt

	if post.Tags == nil {
		post.Tags = pq.StringArray{}
	}

	query := `
		INSERT INTO posts
		(post_id, title, content, excerpt, featured_image, slug, author_id,
		 category_id, tags, is_published, view_count, created_at, updated_at)
		VALUES
		(:post_id, :title, :content, :excerpt, :featured_image, :slug, :author_id,
		 :category_id, :tags, :is_published, :view_count, :created_at, :updated_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		if field, ok := uniqueViolationField(err); ok {
			return apperrors.Conflict(field, "пост с таким "+field+" уже существует")
		}
		return fmt.Errorf("ошибка при создании поста: %w", err)
	}

	return nil
}

func (r *PostRepositoryImpl) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	query := `SELECT ` + postColumns + postJoins + ` WHERE p.post_id = $1`

	var post models.Post
	err := r.db.GetContext(ctx, &post, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("пост не найден")
		}
		return nil, fmt.Errorf("ошибка при получении поста: %w", err)
	}

	return &post, nil
}

func (r *PostRepositoryImpl) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	query := `SELECT ` + postColumns + postJoins + ` WHERE p.slug = $1`

	var post models.Post
	err := r.db.GetContext(ctx, &post, query, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("пост не найден")
		}
		return nil, fmt.Errorf("ошибка при получении поста по slug: %w", err)
	}

	return &post, nil
}

// ListPublished возвращает страницу опубликованных постов (новые первыми) и общее число.
// Пустой categoryID означает выборку без фильтра по категории.
func (r *PostRepositoryImpl) ListPublished(ctx context.Context, categoryID string, limit, offset int) ([]models.Post, int, error) {
	where := ` WHERE p.is_published = TRUE`
	args := []interface{}{}

	if categoryID != "" {
		where += ` AND p.category_id = $1`
		args = append(args, categoryID)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM posts p` + where
	err := r.db.GetContext(ctx, &total, countQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка при подсчёте постов: %w", err)
	}

	listQuery := fmt.Sprintf(
		`SELECT `+postColumns+postJoins+where+` ORDER BY p.created_at DESC LIMIT $%d OFFSET $%d`,
		len(args)+1, len(args)+2,
	)
	args = append(args, limit, offset)

	posts := []models.Post{}
	err = r.db.SelectContext(ctx, &posts, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка при получении списка постов: %w", err)
	}

	return posts, total, nil
}

// escapeLikePattern экранирует спецсимволы LIKE в пользовательском запросе,
// иначе "%" или "_" в строке поиска меняют смысл шаблона
func escapeLikePattern(query string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(query)
}

// Search ищет подстроку без учёта регистра в заголовке, тексте, выдержке и тегах
// опубликованных постов.
func (r *PostRepositoryImpl) Search(ctx context.Context, query string, limit, offset int) ([]models.Post, int, error) {
	pattern := "%" + escapeLikePattern(query) + "%"

	where := ` WHERE p.is_published = TRUE AND (
		p.title ILIKE $1
		OR p.content ILIKE $1
		OR COALESCE(p.excerpt, '') ILIKE $1
		OR EXISTS (SELECT 1 FROM unnest(p.tags) AS t(tag) WHERE t.tag ILIKE $1)
	)`

	var total int
	countQuery := `SELECT COUNT(*) FROM posts p` + where
	err := r.db.GetContext(ctx, &total, countQuery, pattern)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка при поиске постов: %w", err)
	}

	listQuery := `SELECT ` + postColumns + postJoins + where + ` ORDER BY p.created_at DESC LIMIT $2 OFFSET $3`

	posts := []models.Post{}
	err = r.db.SelectContext(ctx, &posts, listQuery, pattern, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка при поиске постов: %w", err)
	}

	return posts, total, nil
}

func (r *PostRepositoryImpl) Update(ctx context.Context, post *models.Post) error {
	post.UpdatedAt = time.Now()

	query := `
		UPDATE posts SET
			title = :title,
			content = :content,
			excerpt = :excerpt,
			featured_image = :featured_image,
			slug = :slug,
			category_id = :category_id,
			tags = :tags,
			is_published = :is_published,
			updated_at = :updated_at
		WHERE post_id = :post_id
	`

	result, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		if field, ok := uniqueViolationField(err); ok {
			return apperrors.Conflict(field, "пост с таким "+field+" уже существует")
		}
		return fmt.Errorf("ошибка при обновлении поста: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.NotFound("пост не найден")
	}

	return nil
}

func (r *PostRepositoryImpl) Delete(ctx context.Context, postID string) error {
	// комментарии удаляются каскадом по внешнему ключу
	query := `DELETE FROM posts WHERE post_id = $1`

	result, err := r.db.ExecContext(ctx, query, postID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении поста: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.NotFound("пост не найден")
	}

	return nil
}

// IncrementViewCount выполняет инкремент на стороне БД, параллельные просмотры
// не теряют обновлений.
func (r *PostRepositoryImpl) IncrementViewCount(ctx context.Context, postID string) error {
	query := `UPDATE posts SET view_count = view_count + 1 WHERE post_id = $1`

	result, err := r.db.ExecContext(ctx, query, postID)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении счётчика просмотров: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.NotFound("пост не найден")
	}

	return nil
}

// AddComment добавляет комментарий одной вставкой; порядок задаёт comment_seq.
func (r *PostRepositoryImpl) AddComment(ctx context.Context, comment *models.Comment) error {
	if comment.CommentID == "" {
		comment.CommentID = uuid.New().String()
	}
	comment.CreatedAt = time.Now()

	query := `
		INSERT INTO comments (comment_id, post_id, user_id, content, created_at)
		VALUES (:comment_id, :post_id, :user_id, :content, :created_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, comment)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return apperrors.NotFound("пост не найден")
		}
		return fmt.Errorf("ошибка при добавлении комментария: %w", err)
	}

	return nil
}

func (r *PostRepositoryImpl) GetComments(ctx context.Context, postID string) ([]models.Comment, error) {
	query := `
		SELECT cm.comment_seq, cm.comment_id, cm.post_id, cm.user_id, cm.content,
		       cm.created_at, u.username AS author_username
		FROM comments cm
		JOIN users u ON u.user_id = cm.user_id
		WHERE cm.post_id = $1
		ORDER BY cm.comment_seq
	`

	comments := []models.Comment{}
	err := r.db.SelectContext(ctx, &comments, query, postID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении комментариев: %w", err)
	}

	return comments, nil
}

// CountByFeaturedImage считает посты, ссылающиеся на файл изображения.
func (r *PostRepositoryImpl) CountByFeaturedImage(ctx context.Context, filename string) (int, error) {
	query := `SELECT COUNT(*) FROM posts WHERE featured_image = $1`

	var count int
	err := r.db.GetContext(ctx, &count, query, filename)
	if err != nil {
		return 0, fmt.Errorf("ошибка при проверке использования изображения: %w", err)
	}

	return count, nil
}
