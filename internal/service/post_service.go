package service

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"blogCPT/internal/apperrors"
	"blogCPT/internal/models"
	"blogCPT/internal/repository"
)

const maxCommentLength = 1000

type CreatePostRequest struct {
	AuthorID      string
	Title         string
	Content       string
	Excerpt       *string
	FeaturedImage *string
	CategoryID    string
	Tags          []string
	IsPublished   bool
}

// указатель nil означает "поле не менять"
type UpdatePostRequest struct {
	PostID        string
	Title         *string
	Content       *string
	Excerpt       *string
	FeaturedImage *string
	CategoryID    *string
	Tags          *[]string
	IsPublished   *bool
}

type PostService interface {
	ListPublished(ctx context.Context, page, limit int, categorySlug string) ([]models.Post, int, error)
	Search(ctx context.Context, query string, page, limit int) ([]models.Post, int, error)
	GetPost(ctx context.Context, idOrSlug string) (*models.Post, []models.Comment, error)
	CreatePost(ctx context.Context, req CreatePostRequest) (*models.Post, error)
	UpdatePost(ctx context.Context, req UpdatePostRequest) (*models.Post, error)
	DeletePost(ctx context.Context, postID string) error
	AddComment(ctx context.Context, postID, userID, content string) ([]models.Comment, error)
}

type postService struct {
	postRepo     repository.PostRepository
	categoryRepo repository.CategoryRepository
}

func NewPostService(postRepo repository.PostRepository, categoryRepo repository.CategoryRepository) PostService {
	return &postService{
		postRepo:     postRepo,
		categoryRepo: categoryRepo,
	}
}

func (p *postService) ListPublished(ctx context.Context, page, limit int, categorySlug string) ([]models.Post, int, error) {
	categoryID := ""

	if categorySlug != "" {
		category, err := p.categoryRepo.GetBySlug(ctx, categorySlug)
		if err != nil && !apperrors.IsKind(err, apperrors.KindNotFound) {
			return nil, 0, err
		}
		// неизвестный slug категории не ошибка, фильтр просто не применяется
		if category != nil {
			categoryID = category.CategoryID
		}
	}

	offset := (page - 1) * limit
	return p.postRepo.ListPublished(ctx, categoryID, limit, offset)
}

func (p *postService) Search(ctx context.Context, query string, page, limit int) ([]models.Post, int, error) {
	offset := (page - 1) * limit
	return p.postRepo.Search(ctx, query, limit, offset)
}

// GetPost принимает идентификатор или slug: сначала пробуем разобрать как UUID,
// при несовпадении формата ищем по slug. Каждый успешный вызов увеличивает
// счётчик просмотров ровно на единицу.
func (p *postService) GetPost(ctx context.Context, idOrSlug string) (*models.Post, []models.Comment, error) {
	var post *models.Post
	var err error

	if _, parseErr := uuid.Parse(idOrSlug); parseErr == nil {
		post, err = p.postRepo.GetByID(ctx, idOrSlug)
	} else {
		post, err = p.postRepo.GetBySlug(ctx, idOrSlug)
	}
	if err != nil {
		return nil, nil, err
	}

	if err := p.postRepo.IncrementViewCount(ctx, post.PostID); err != nil {
		return nil, nil, err
	}
	post.ViewCount++

	comments, err := p.postRepo.GetComments(ctx, post.PostID)
	if err != nil {
		return nil, nil, err
	}

	return post, comments, nil
}

func (p *postService) CreatePost(ctx context.Context, req CreatePostRequest) (*models.Post, error) {
	category, err := p.categoryRepo.GetByID(ctx, req.CategoryID)
	if err != nil {
		if apperrors.IsKind(err, apperrors.KindNotFound) {
			return nil, apperrors.Validation("категория не найдена", map[string]string{"category": "категория не найдена"})
		}
		return nil, err
	}

	now := time.Now()

	post := &models.Post{
		Title:         req.Title,
		Content:       req.Content,
		Excerpt:       req.Excerpt,
		FeaturedImage: req.FeaturedImage,
		Slug:          MakeSlug(req.Title, now),
		AuthorID:      req.AuthorID,
		CategoryID:    category.CategoryID,
		Tags:          pq.StringArray(req.Tags),
		IsPublished:   req.IsPublished,
		CreatedAt:     now,
	}

	if err := p.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return p.postRepo.GetByID(ctx, post.PostID)
}

func (p *postService) UpdatePost(ctx context.Context, req UpdatePostRequest) (*models.Post, error) {
	if _, err := uuid.Parse(req.PostID); err != nil {
		return nil, apperrors.NotFound("пост не найден")
	}

	post, err := p.postRepo.GetByID(ctx, req.PostID)
	if err != nil {
		return nil, err
	}

	// slug пересчитывается только если заголовок действительно изменился
	if req.Title != nil && *req.Title != post.Title {
		post.Title = *req.Title
		post.Slug = MakeSlug(post.Title, time.Now())
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.Excerpt != nil {
		post.Excerpt = req.Excerpt
	}
	if req.FeaturedImage != nil {
		post.FeaturedImage = req.FeaturedImage
	}
	if req.CategoryID != nil {
		category, err := p.categoryRepo.GetByID(ctx, *req.CategoryID)
		if err != nil {
			if apperrors.IsKind(err, apperrors.KindNotFound) {
				return nil, apperrors.Validation("категория не найдена", map[string]string{"category": "категория не найдена"})
			}
			return nil, err
		}
		post.CategoryID = category.CategoryID
	}
	if req.Tags != nil {
		post.Tags = pq.StringArray(*req.Tags)
	}
	if req.IsPublished != nil {
		post.IsPublished = *req.IsPublished
	}

	if err := p.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	return p.postRepo.GetByID(ctx, post.PostID)
}

func (p *postService) DeletePost(ctx context.Context, postID string) error {
	if _, err := uuid.Parse(postID); err != nil {
		return apperrors.NotFound("пост не найден")
	}

	return p.postRepo.Delete(ctx, postID)
}

// AddComment добавляет комментарий и возвращает весь упорядоченный список,
// чтобы клиент мог перерисовать состояние целиком.
func (p *postService) AddComment(ctx context.Context, postID, userID, content string) ([]models.Comment, error) {
	if _, err := uuid.Parse(postID); err != nil {
		return nil, apperrors.NotFound("пост не найден")
	}

	if content == "" {
		return nil, apperrors.Validation("комментарий не может быть пустым", map[string]string{"content": "обязательное поле"})
	}
	if utf8.RuneCountInString(content) > maxCommentLength {
		return nil, apperrors.Validation("комментарий слишком длинный", map[string]string{"content": "не более 1000 символов"})
	}

	comment := &models.Comment{
		PostID:  postID,
		UserID:  userID,
		Content: content,
	}

	if err := p.postRepo.AddComment(ctx, comment); err != nil {
		return nil, err
	}

	return p.postRepo.GetComments(ctx, postID)
}
