package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Like is a single like record. Membership is keyed by UserID; a user
// can hold at most one entry per blog.
type Like struct {
	UserID      string    `bson:"user_id" json:"user_id"`
	DisplayName string    `bson:"display_name" json:"display_name"`
	LikedAt     time.Time `bson:"liked_at" json:"liked_at"`
}

// Comment is an append-only comment record.
type Comment struct {
	ID          string    `bson:"id" json:"id"`
	UserID      string    `bson:"user_id" json:"user_id"`
	DisplayName string    `bson:"display_name" json:"display_name"`
	Text        string    `bson:"text" json:"text"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

// Engagement is the canonical engagement state of a blog.
// Shares are a plain counter; the saved relation lives on the user document.
// Rev is an optimistic-concurrency token: every engagement write must match
// the current value and bump it by one.
type Engagement struct {
	Likes      []Like    `bson:"likes" json:"likes"`
	Comments   []Comment `bson:"comments" json:"comments"`
	ShareCount int64     `bson:"share_count" json:"share_count"`
	Rev        int64     `bson:"rev" json:"-"`
}

// LikedBy reports whether userID currently holds a like entry.
func (e Engagement) LikedBy(userID string) bool {
	for _, l := range e.Likes {
		if l.UserID == userID {
			return true
		}
	}
	return false
}

// Blog represents a published blog post document
// Collection: blogs
type Blog struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at"`
	Title           string             `bson:"title" json:"title"`
	MetaDescription string             `bson:"meta_description" json:"meta_description"`
	Category        string             `bson:"category" json:"category"`
	RawContent      string             `bson:"raw_content" json:"raw_content"`
	AuthorID        string             `bson:"author_id" json:"author_id"`
	AuthorName      string             `bson:"author_name" json:"author_name"`

	// Keywords and KeywordURLs are positionally paired; a keyword with no
	// URL at the same index links to "#".
	Keywords    []string `bson:"keywords" json:"keywords"`
	KeywordURLs []string `bson:"keyword_urls" json:"keyword_urls"`

	Engagement Engagement `bson:"engagement" json:"engagement"`
}
