package dto

import "time"

// UserProfileDTO 는 로그인한 사용자의 프로필 응답이다.
type UserProfileDTO struct {
	ID               string    `json:"id"`
	Provider         string    `json:"provider"`
	Email            string    `json:"email"`
	DisplayName      string    `json:"display_name"`
	PhotoURL         string    `json:"photo_url"`
	SubscriptionPlan string    `json:"subscription_plan"`
	SavedBlogIDs     []string  `json:"saved_blog_ids"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
