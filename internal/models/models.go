package models

import (
	"time"

	"github.com/lib/pq"
)

const (
	RoleReader = "reader"
	RoleAdmin  = "admin"
)

type User struct {
	UserID       string    `json:"userId" db:"user_id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         string    `json:"role" db:"role"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

type Category struct {
	CategoryID string    `json:"categoryId" db:"category_id"`
	Name       string    `json:"name" db:"name"`
	Slug       string    `json:"slug" db:"slug"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

type Post struct {
	PostID        string         `json:"postId" db:"post_id"`
	Title         string         `json:"title" db:"title"`
	Content       string         `json:"content" db:"content"`
	Excerpt       *string        `json:"excerpt" db:"excerpt"`
	FeaturedImage *string        `json:"featuredImage" db:"featured_image"`
	Slug          string         `json:"slug" db:"slug"`
	AuthorID      string         `json:"-" db:"author_id"`
	CategoryID    string         `json:"-" db:"category_id"`
	Tags          pq.StringArray `json:"tags" db:"tags"`
	IsPublished   bool           `json:"isPublished" db:"is_published"`
	ViewCount     int            `json:"viewCount" db:"view_count"`
	CreatedAt     time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time      `json:"updatedAt" db:"updated_at"`

	// joined columns, not part of the posts table
	AuthorUsername string `json:"-" db:"author_username"`
	CategoryName   string `json:"-" db:"category_name"`
	CategorySlug   string `json:"-" db:"category_slug"`
}

type Comment struct {
	CommentSeq int64     `json:"-" db:"comment_seq"`
	CommentID  string    `json:"commentId" db:"comment_id"`
	PostID     string    `json:"postId" db:"post_id"`
	UserID     string    `json:"-" db:"user_id"`
	Content    string    `json:"content" db:"content"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`

	AuthorUsername string `json:"-" db:"author_username"`
}

type UploadedImage struct {
	Filename  string    `json:"filename"`
	Path      string    `json:"path"`
	Size      int64     `json:"size"`
	MimeType  string    `json:"mimetype,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	IsUsed    bool      `json:"isUsed"`
}
