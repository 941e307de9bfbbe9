package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"blog-fusion/models"
)

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection("users")}
}

// UpsertByProvider finds or creates the user identified by (provider, sub).
// Profile fields from the identity provider are refreshed on every login;
// plan and saved list are preserved.
func (r *UserRepository) UpsertByProvider(ctx context.Context, provider, sub, displayName, email, photoURL string) (*models.User, error) {
	now := time.Now()
	filter := bson.M{"provider": provider, "provider_sub": sub}
	update := bson.M{
		"$setOnInsert": bson.M{
			"_id":               uuid.NewString(),
			"created_at":        now,
			"subscription_plan": models.PlanBasic,
			"saved_blog_ids":    []string{},
		},
		"$set": bson.M{
			"display_name": displayName,
			"email":        email,
			"photo_url":    photoURL,
			"updated_at":   now,
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var u models.User
	if err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&u); err != nil {
		return nil, mapError(err)
	}
	return &u, nil
}

// FindByID returns a user by id.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, mapError(err)
	}
	return &u, nil
}

// SetSavedBlogIDs replaces the user's saved list.
func (r *UserRepository) SetSavedBlogIDs(ctx context.Context, id string, savedIDs []string) error {
	if savedIDs == nil {
		savedIDs = []string{}
	}
	res, err := r.col.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{"saved_blog_ids": savedIDs, "updated_at": time.Now()},
	})
	if err != nil {
		return mapError(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetSubscriptionPlan updates the user's plan tier.
func (r *UserRepository) SetSubscriptionPlan(ctx context.Context, id, plan string) error {
	res, err := r.col.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{"subscription_plan": plan, "updated_at": time.Now()},
	})
	if err != nil {
		return mapError(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
