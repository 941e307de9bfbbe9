package dto

import "time"

// BlogDTO exposes the feed card view of a blog.
// RawContent is omitted; list consumers only need the teaser fields.
type BlogDTO struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	MetaDescription string    `json:"meta_description"`
	Category        string    `json:"category"`
	AuthorID        string    `json:"author_id"`
	AuthorName      string    `json:"author_name"`
	CreatedAt       time.Time `json:"created_at"`
	LikeCount       int       `json:"like_count"`
	CommentCount    int       `json:"comment_count"`
	ShareCount      int64     `json:"share_count"`
	IsLiked         *bool     `json:"is_liked,omitempty"`
	IsSaved         *bool     `json:"is_saved,omitempty"`
}

// BlogDetailDTO is the full reading view. FormattedContent is the sanitized
// HTML produced by the content formatter; RawContent stays server-side.
type BlogDetailDTO struct {
	ID               string       `json:"id"`
	Title            string       `json:"title"`
	MetaDescription  string       `json:"meta_description"`
	Category         string       `json:"category"`
	AuthorID         string       `json:"author_id"`
	AuthorName       string       `json:"author_name"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
	FormattedContent string       `json:"formatted_content"`
	Keywords         []string     `json:"keywords"`
	Likes            []LikeDTO    `json:"likes"`
	Comments         []CommentDTO `json:"comments"`
	ShareCount       int64        `json:"share_count"`
	IsLiked          *bool        `json:"is_liked,omitempty"`
	IsSaved          *bool        `json:"is_saved,omitempty"`
}

type LikeDTO struct {
	UserID      string    `json:"user_id"`
	DisplayName string    `json:"display_name"`
	LikedAt     time.Time `json:"liked_at"`
}

type CommentDTO struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	DisplayName string    `json:"display_name"`
	Text        string    `json:"text"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateBlogRequest 는 블로그 발행 요청 바디이다.
type CreateBlogRequest struct {
	Title           string   `json:"title" binding:"required"`
	MetaDescription string   `json:"meta_description"`
	Category        string   `json:"category"`
	RawContent      string   `json:"raw_content" binding:"required"`
	Keywords        []string `json:"keywords"`
	KeywordURLs     []string `json:"keyword_urls"`
}

// UpdateBlogRequest 는 블로그 수정 요청 바디이다. 비어 있는 필드는 보존된다.
type UpdateBlogRequest struct {
	Title           *string   `json:"title"`
	MetaDescription *string   `json:"meta_description"`
	Category        *string   `json:"category"`
	RawContent      *string   `json:"raw_content"`
	Keywords        *[]string `json:"keywords"`
	KeywordURLs     *[]string `json:"keyword_urls"`
}

// CommentRequest 는 댓글 작성 요청 바디이다.
type CommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// EngagementDTO 는 참여 상태 변경 후의 최신 집계이다.
type EngagementDTO struct {
	LikeCount    int          `json:"like_count"`
	CommentCount int          `json:"comment_count"`
	ShareCount   int64        `json:"share_count"`
	IsLiked      *bool        `json:"is_liked,omitempty"`
	Likes        []LikeDTO    `json:"likes"`
	Comments     []CommentDTO `json:"comments"`
}
