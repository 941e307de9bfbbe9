package models

import "time"

// Subscription plan tiers. Basic is the free default.
const (
	PlanBasic   = "basic"
	PlanMedium  = "medium"
	PlanPremium = "premium"
)

// ValidPlan reports whether p is a known subscription plan.
func ValidPlan(p string) bool {
	switch p {
	case PlanBasic, PlanMedium, PlanPremium:
		return true
	}
	return false
}

// User represents an account document.
// Collection: users
//
// SavedBlogIDs is exclusively owned by the user: it is mutated only by that
// user's own save/unsave actions, never by writes to blog documents.
type User struct {
	ID               string    `bson:"_id" json:"id"`
	Provider         string    `bson:"provider" json:"provider"`
	ProviderSub      string    `bson:"provider_sub" json:"provider_sub"`
	DisplayName      string    `bson:"display_name" json:"display_name"`
	Email            string    `bson:"email" json:"email"`
	PhotoURL         string    `bson:"photo_url" json:"photo_url"`
	SubscriptionPlan string    `bson:"subscription_plan" json:"subscription_plan"`
	SavedBlogIDs     []string  `bson:"saved_blog_ids" json:"saved_blog_ids"`
	CreatedAt        time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time `bson:"updated_at" json:"updated_at"`
}
