package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"blog-fusion/models"
)

type BlogRepository struct {
	col *mongo.Collection
}

func NewBlogRepository(db *mongo.Database) *BlogRepository {
	return &BlogRepository{col: db.Collection("blogs")}
}

// Insert stores a new blog and returns its generated id.
func (r *BlogRepository) Insert(ctx context.Context, b *models.Blog) (primitive.ObjectID, error) {
	now := time.Now()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
	if b.Keywords == nil {
		b.Keywords = []string{}
	}
	if b.KeywordURLs == nil {
		b.KeywordURLs = []string{}
	}
	if b.Engagement.Likes == nil {
		b.Engagement.Likes = []models.Like{}
	}
	if b.Engagement.Comments == nil {
		b.Engagement.Comments = []models.Comment{}
	}

	res, err := r.col.InsertOne(ctx, b)
	if err != nil {
		return primitive.NilObjectID, mapError(err)
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	b.ID = id
	return id, nil
}

// FindByID returns a blog by its hex id.
func (r *BlogRepository) FindByID(ctx context.Context, id string) (*models.Blog, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var b models.Blog
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&b); err != nil {
		return nil, mapError(err)
	}
	return &b, nil
}

// ListFilter narrows List results. Zero values mean no filtering.
type ListFilter struct {
	Category string
	AuthorID string
}

// List returns blogs newest-first with limit/offset paging.
func (r *BlogRepository) List(ctx context.Context, f ListFilter, limit, offset int64) ([]models.Blog, int64, error) {
	filter := bson.M{}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.AuthorID != "" {
		filter["author_id"] = f.AuthorID
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, mapError(err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(offset).
		SetLimit(limit)
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, mapError(err)
	}
	defer cur.Close(ctx)

	blogs := make([]models.Blog, 0)
	if err := cur.All(ctx, &blogs); err != nil {
		return nil, 0, mapError(err)
	}
	return blogs, total, nil
}

// FindByIDs returns the blogs whose hex ids appear in ids, newest-first.
// Unknown ids are silently skipped.
func (r *BlogRepository) FindByIDs(ctx context.Context, ids []string) ([]models.Blog, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	if len(oids) == 0 {
		return []models.Blog{}, nil
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": oids}}, opts)
	if err != nil {
		return nil, mapError(err)
	}
	defer cur.Close(ctx)

	blogs := make([]models.Blog, 0, len(oids))
	if err := cur.All(ctx, &blogs); err != nil {
		return nil, mapError(err)
	}
	return blogs, nil
}

// UpdateEngagement replaces the engagement state only when the stored
// revision still matches e's. The written document carries rev+1.
// A lost race surfaces as ErrConflict so the caller can re-read and retry.
func (r *BlogRepository) UpdateEngagement(ctx context.Context, id string, e models.Engagement) (models.Engagement, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return e, ErrNotFound
	}

	next := e
	next.Rev = e.Rev + 1

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": oid, "engagement.rev": e.Rev},
		bson.M{"$set": bson.M{"engagement": next, "updated_at": time.Now()}},
	)
	if err != nil {
		return e, mapError(err)
	}
	if res.MatchedCount == 0 {
		// Distinguish a missing blog from a stale revision.
		if n, err := r.col.CountDocuments(ctx, bson.M{"_id": oid}); err == nil && n == 0 {
			return e, ErrNotFound
		}
		return e, ErrConflict
	}
	return next, nil
}

// SetFields merges the given top-level fields into the blog document.
// Engagement must not be written through here; it is guarded by the
// revision check in UpdateEngagement.
func (r *BlogRepository) SetFields(ctx context.Context, id string, fields bson.M) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	delete(fields, "engagement")
	fields["updated_at"] = time.Now()

	res, err := r.col.UpdateByID(ctx, oid, bson.M{"$set": fields})
	if err != nil {
		return mapError(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a blog document.
func (r *BlogRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return mapError(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// CountByAuthorSince counts blogs by authorID created at or after since.
// Used for the monthly publish quota on the basic plan.
func (r *BlogRepository) CountByAuthorSince(ctx context.Context, authorID string, since time.Time) (int64, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{
		"author_id":  authorID,
		"created_at": bson.M{"$gte": since},
	})
	if err != nil {
		return 0, mapError(err)
	}
	return n, nil
}
