package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/gorilla/mux"

	"blogCPT/internal/models"
	"blogCPT/internal/service"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
	maxTitleLength   = 100
	maxExcerptLength = 200
)

type AuthorResponse struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

type CategoryRefResponse struct {
	CategoryID string `json:"categoryId"`
	Name       string `json:"name"`
	Slug       string `json:"slug"`
}

type CommentResponse struct {
	CommentID string         `json:"commentId"`
	Content   string         `json:"content"`
	User      AuthorResponse `json:"user"`
	CreatedAt time.Time      `json:"createdAt"`
}

type PostResponse struct {
	PostID        string              `json:"postId"`
	Title         string              `json:"title"`
	Content       string              `json:"content"`
	Excerpt       *string             `json:"excerpt"`
	FeaturedImage *string             `json:"featuredImage"`
	Slug          string              `json:"slug"`
	Author        AuthorResponse      `json:"author"`
	Category      CategoryRefResponse `json:"category"`
	Tags          []string            `json:"tags"`
	IsPublished   bool                `json:"isPublished"`
	ViewCount     int                 `json:"viewCount"`
	Comments      []CommentResponse   `json:"comments,omitempty"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}

func newPostResponse(post *models.Post) PostResponse {
	return PostResponse{
		PostID:        post.PostID,
		Title:         post.Title,
		Content:       post.Content,
		Excerpt:       post.Excerpt,
		FeaturedImage: post.FeaturedImage,
		Slug:          post.Slug,
		Author: AuthorResponse{
			UserID:   post.AuthorID,
			Username: post.AuthorUsername,
		},
		Category: CategoryRefResponse{
			CategoryID: post.CategoryID,
			Name:       post.CategoryName,
			Slug:       post.CategorySlug,
		},
		Tags:        post.Tags,
		IsPublished: post.IsPublished,
		ViewCount:   post.ViewCount,
		CreatedAt:   post.CreatedAt,
		UpdatedAt:   post.UpdatedAt,
	}
}

func newCommentResponses(comments []models.Comment) []CommentResponse {
	responses := []CommentResponse{}
	for _, comment := range comments {
		responses = append(responses, CommentResponse{
			CommentID: comment.CommentID,
			Content:   comment.Content,
			User: AuthorResponse{
				UserID:   comment.UserID,
				Username: comment.AuthorUsername,
			},
			CreatedAt: comment.CreatedAt,
		})
	}
	return responses
}

// parsePagination читает page и limit из query-параметров с дефолтами 1 и 10.
func parsePagination(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > maxPageLimit {
		limit = defaultPageLimit
	}

	return page, limit
}

func (h *Handlers) GetPosts(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)
	categorySlug := r.URL.Query().Get("category")

	posts, total, err := h.PostService.ListPublished(r.Context(), page, limit, categorySlug)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	// forming the response
	responses := []PostResponse{}
	for i := range posts {
		responses = append(responses, newPostResponse(&posts[i]))
	}

	WriteSuccessPage(w, responses, Pagination{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: (total + limit - 1) / limit,
	}, http.StatusOK)
}

func (h *Handlers) SearchPosts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		WriteErrorDetails(w, "Ошибка валидации", map[string]string{"q": "обязательный параметр"}, http.StatusBadRequest)
		return
	}

	page, limit := parsePagination(r)

	posts, total, err := h.PostService.Search(r.Context(), query, page, limit)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	responses := []PostResponse{}
	for i := range posts {
		responses = append(responses, newPostResponse(&posts[i]))
	}

	WriteSuccessPage(w, responses, Pagination{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: (total + limit - 1) / limit,
	}, http.StatusOK)
}

func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	idOrSlug := mux.Vars(r)["idOrSlug"]

	post, comments, err := h.PostService.GetPost(r.Context(), idOrSlug)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	response := newPostResponse(post)
	response.Comments = newCommentResponses(comments)

	WriteSuccess(w, response, http.StatusOK)
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title         string   `json:"title" validate:"required,max=100"`
		Content       string   `json:"content" validate:"required"`
		Excerpt       *string  `json:"excerpt"`
		FeaturedImage *string  `json:"featuredImage"`
		Category      string   `json:"category" validate:"required"`
		Tags          []string `json:"tags"`
		IsPublished   bool     `json:"isPublished"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	details := map[string]string{}
	if req.Title == "" {
		details["title"] = "обязательное поле"
	} else if utf8.RuneCountInString(req.Title) > maxTitleLength {
		details["title"] = "не более 100 символов"
	}
	if req.Content == "" {
		details["content"] = "обязательное поле"
	}
	if req.Category == "" {
		details["category"] = "обязательное поле"
	}
	if req.Excerpt != nil && utf8.RuneCountInString(*req.Excerpt) > maxExcerptLength {
		details["excerpt"] = "не более 200 символов"
	}

	if len(details) > 0 {
		WriteErrorDetails(w, "Ошибка валидации", details, http.StatusBadRequest)
		return
	}

	// автор берётся из личности вызывающего, не из тела запроса
	authorID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	serviceReq := service.CreatePostRequest{
		AuthorID:      authorID,
		Title:         req.Title,
		Content:       req.Content,
		Excerpt:       req.Excerpt,
		FeaturedImage: req.FeaturedImage,
		CategoryID:    req.Category,
		Tags:          req.Tags,
		IsPublished:   req.IsPublished,
	}

	post, err := h.PostService.CreatePost(r.Context(), serviceReq)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, newPostResponse(post), http.StatusCreated)
}

func (h *Handlers) UpdatePost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]

	// nil-указатель означает, что поле в запросе не передавалось
	var req struct {
		Title         *string   `json:"title"`
		Content       *string   `json:"content"`
		Excerpt       *string   `json:"excerpt"`
		FeaturedImage *string   `json:"featuredImage"`
		Category      *string   `json:"category"`
		Tags          *[]string `json:"tags"`
		IsPublished   *bool     `json:"isPublished"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	details := map[string]string{}
	if req.Title != nil {
		if *req.Title == "" {
			details["title"] = "не может быть пустым"
		} else if utf8.RuneCountInString(*req.Title) > maxTitleLength {
			details["title"] = "не более 100 символов"
		}
	}
	if req.Content != nil && *req.Content == "" {
		details["content"] = "не может быть пустым"
	}
	if req.Excerpt != nil && utf8.RuneCountInString(*req.Excerpt) > maxExcerptLength {
		details["excerpt"] = "не более 200 символов"
	}

	if len(details) > 0 {
		WriteErrorDetails(w, "Ошибка валидации", details, http.StatusBadRequest)
		return
	}

	serviceReq := service.UpdatePostRequest{
		PostID:        postID,
		Title:         req.Title,
		Content:       req.Content,
		Excerpt:       req.Excerpt,
		FeaturedImage: req.FeaturedImage,
		CategoryID:    req.Category,
		Tags:          req.Tags,
		IsPublished:   req.IsPublished,
	}

	post, err := h.PostService.UpdatePost(r.Context(), serviceReq)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, newPostResponse(post), http.StatusOK)
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]

	if err := h.PostService.DeletePost(r.Context(), postID); err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, struct{}{}, http.StatusOK)
}

// AddComment возвращает весь список комментариев поста, а не только новый.
func (h *Handlers) AddComment(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]

	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	var req struct {
		Content string `json:"content" validate:"required,max=1000"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	comments, err := h.PostService.AddComment(r.Context(), postID, userID, req.Content)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, newCommentResponses(comments), http.StatusCreated)
}
