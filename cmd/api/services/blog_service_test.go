package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"blog-fusion/cmd/api/dto"
	"blog-fusion/config"
	"blog-fusion/models"
	"blog-fusion/repositories"
)

type stubBlogStore struct {
	blogs map[string]*models.Blog

	countByAuthor int64
	conflictsLeft int
	insertErr     error
}

func newStubBlogStore() *stubBlogStore {
	return &stubBlogStore{blogs: map[string]*models.Blog{}}
}

func (s *stubBlogStore) put(b *models.Blog) string {
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	id := b.ID.Hex()
	s.blogs[id] = b
	return id
}

func (s *stubBlogStore) Insert(ctx context.Context, b *models.Blog) (primitive.ObjectID, error) {
	if s.insertErr != nil {
		return primitive.NilObjectID, s.insertErr
	}
	s.put(b)
	return b.ID, nil
}

func (s *stubBlogStore) FindByID(ctx context.Context, id string) (*models.Blog, error) {
	b, ok := s.blogs[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (s *stubBlogStore) List(ctx context.Context, f repositories.ListFilter, limit, offset int64) ([]models.Blog, int64, error) {
	var out []models.Blog
	for _, b := range s.blogs {
		out = append(out, *b)
	}
	return out, int64(len(out)), nil
}

func (s *stubBlogStore) FindByIDs(ctx context.Context, ids []string) ([]models.Blog, error) {
	out := make([]models.Blog, 0, len(ids))
	for _, id := range ids {
		if b, ok := s.blogs[id]; ok {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (s *stubBlogStore) UpdateEngagement(ctx context.Context, id string, e models.Engagement) (models.Engagement, error) {
	b, ok := s.blogs[id]
	if !ok {
		return e, repositories.ErrNotFound
	}
	if s.conflictsLeft > 0 {
		s.conflictsLeft--
		// a concurrent writer won; bump the stored revision
		b.Engagement.Rev++
		return e, repositories.ErrConflict
	}
	if b.Engagement.Rev != e.Rev {
		return e, repositories.ErrConflict
	}
	e.Rev++
	b.Engagement = e
	return e, nil
}

func (s *stubBlogStore) SetFields(ctx context.Context, id string, fields bson.M) error {
	b, ok := s.blogs[id]
	if !ok {
		return repositories.ErrNotFound
	}
	if v, ok := fields["title"]; ok {
		b.Title = v.(string)
	}
	if v, ok := fields["raw_content"]; ok {
		b.RawContent = v.(string)
	}
	return nil
}

func (s *stubBlogStore) Delete(ctx context.Context, id string) error {
	if _, ok := s.blogs[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.blogs, id)
	return nil
}

func (s *stubBlogStore) CountByAuthorSince(ctx context.Context, authorID string, since time.Time) (int64, error) {
	return s.countByAuthor, nil
}

type stubUserStore struct {
	users map[string]*models.User
}

func newStubUserStore(users ...*models.User) *stubUserStore {
	s := &stubUserStore{users: map[string]*models.User{}}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *stubUserStore) UpsertByProvider(ctx context.Context, provider, sub, displayName, email, photoURL string) (*models.User, error) {
	u := &models.User{ID: sub, Provider: provider, DisplayName: displayName, Email: email, SubscriptionPlan: models.PlanBasic}
	s.users[u.ID] = u
	return u, nil
}

func (s *stubUserStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *stubUserStore) SetSavedBlogIDs(ctx context.Context, id string, savedIDs []string) error {
	u, ok := s.users[id]
	if !ok {
		return repositories.ErrNotFound
	}
	u.SavedBlogIDs = savedIDs
	return nil
}

func (s *stubUserStore) SetSubscriptionPlan(ctx context.Context, id, plan string) error {
	u, ok := s.users[id]
	if !ok {
		return repositories.ErrNotFound
	}
	u.SubscriptionPlan = plan
	return nil
}

type recordingNotifier struct {
	updates []repositories.EngagementUpdate
}

func (n *recordingNotifier) Publish(u repositories.EngagementUpdate) {
	n.updates = append(n.updates, u)
}

func newTestBlogService(blogs *stubBlogStore, users *stubUserStore) (*BlogService, *recordingNotifier) {
	notifier := &recordingNotifier{}
	svc := NewBlogService(blogs, users, notifier, nil, config.PublishQuotaConfig{BasicPostsPerMonth: 3})
	return svc, notifier
}

func TestCreateBlogEnforcesBasicQuota(t *testing.T) {
	blogs := newStubBlogStore()
	blogs.countByAuthor = 3
	users := newStubUserStore(&models.User{ID: "u1", SubscriptionPlan: models.PlanBasic})
	svc, _ := newTestBlogService(blogs, users)

	_, err := svc.Create(context.Background(), "u1", "Alice", dto.CreateBlogRequest{
		Title: "t", RawContent: "c",
	})
	assert.ErrorIs(t, err, ErrQuotaExceeded)
}

func TestCreateBlogPaidPlanHasNoQuota(t *testing.T) {
	blogs := newStubBlogStore()
	blogs.countByAuthor = 100
	users := newStubUserStore(&models.User{ID: "u1", SubscriptionPlan: models.PlanPremium})
	svc, _ := newTestBlogService(blogs, users)

	blog, err := svc.Create(context.Background(), "u1", "Alice", dto.CreateBlogRequest{
		Title: "t", RawContent: "c",
	})
	require.NoError(t, err)
	assert.False(t, blog.ID.IsZero())
	assert.Equal(t, "Alice", blog.AuthorName)
}

func TestCreateBlogBasicUnderQuota(t *testing.T) {
	blogs := newStubBlogStore()
	blogs.countByAuthor = 2
	users := newStubUserStore(&models.User{ID: "u1", SubscriptionPlan: models.PlanBasic})
	svc, _ := newTestBlogService(blogs, users)

	_, err := svc.Create(context.Background(), "u1", "Alice", dto.CreateBlogRequest{
		Title: "t", RawContent: "c",
	})
	assert.NoError(t, err)
}

func TestToggleLikeUpdatesStateAndNotifies(t *testing.T) {
	blogs := newStubBlogStore()
	id := blogs.put(&models.Blog{Title: "t", AuthorID: "author"})
	users := newStubUserStore(&models.User{ID: "u1"})
	svc, notifier := newTestBlogService(blogs, users)

	e, err := svc.ToggleLike(context.Background(), id, "u1", "Alice")
	require.NoError(t, err)
	assert.True(t, e.LikedBy("u1"))
	require.Len(t, notifier.updates, 1)
	assert.Equal(t, id, notifier.updates[0].BlogID)

	// toggle off
	e, err = svc.ToggleLike(context.Background(), id, "u1", "Alice")
	require.NoError(t, err)
	assert.False(t, e.LikedBy("u1"))
}

func TestToggleLikeRetriesOnConflict(t *testing.T) {
	blogs := newStubBlogStore()
	id := blogs.put(&models.Blog{Title: "t"})
	blogs.conflictsLeft = 2
	users := newStubUserStore()
	svc, _ := newTestBlogService(blogs, users)

	e, err := svc.ToggleLike(context.Background(), id, "u1", "Alice")
	require.NoError(t, err)
	assert.True(t, e.LikedBy("u1"))
}

func TestToggleLikeGivesUpAfterRetryBudget(t *testing.T) {
	blogs := newStubBlogStore()
	id := blogs.put(&models.Blog{Title: "t"})
	blogs.conflictsLeft = engagementWriteAttempts
	users := newStubUserStore()
	svc, _ := newTestBlogService(blogs, users)

	_, err := svc.ToggleLike(context.Background(), id, "u1", "Alice")
	assert.ErrorIs(t, err, ErrStoreConflict)
}

func TestAddCommentRejectsBlankText(t *testing.T) {
	blogs := newStubBlogStore()
	id := blogs.put(&models.Blog{Title: "t"})
	users := newStubUserStore()
	svc, notifier := newTestBlogService(blogs, users)

	_, err := svc.AddComment(context.Background(), id, "u1", "Alice", "   ")
	assert.Error(t, err)
	assert.Empty(t, notifier.updates)
}

func TestAddCommentAppends(t *testing.T) {
	blogs := newStubBlogStore()
	id := blogs.put(&models.Blog{Title: "t"})
	users := newStubUserStore()
	svc, _ := newTestBlogService(blogs, users)

	e, err := svc.AddComment(context.Background(), id, "u1", "Alice", "great post")
	require.NoError(t, err)
	require.Len(t, e.Comments, 1)
	assert.Equal(t, "great post", e.Comments[0].Text)
	assert.NotEmpty(t, e.Comments[0].ID)
}

func TestShareIncrements(t *testing.T) {
	blogs := newStubBlogStore()
	id := blogs.put(&models.Blog{Title: "t"})
	users := newStubUserStore()
	svc, _ := newTestBlogService(blogs, users)

	e, err := svc.Share(context.Background(), id, "", "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), e.ShareCount)
}

func TestUpdateRequiresOwnership(t *testing.T) {
	blogs := newStubBlogStore()
	id := blogs.put(&models.Blog{Title: "t", AuthorID: "owner"})
	users := newStubUserStore()
	svc, _ := newTestBlogService(blogs, users)

	newTitle := "hacked"
	_, err := svc.Update(context.Background(), id, "intruder", dto.UpdateBlogRequest{Title: &newTitle})
	assert.ErrorIs(t, err, ErrNotOwner)

	got, err := blogs.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "t", got.Title)
}

func TestUpdatePreservesUnsetFields(t *testing.T) {
	blogs := newStubBlogStore()
	id := blogs.put(&models.Blog{Title: "t", RawContent: "body", AuthorID: "owner"})
	users := newStubUserStore()
	svc, _ := newTestBlogService(blogs, users)

	newTitle := "t2"
	updated, err := svc.Update(context.Background(), id, "owner", dto.UpdateBlogRequest{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, "t2", updated.Title)
	assert.Equal(t, "body", updated.RawContent)
}

func TestDeleteRequiresOwnership(t *testing.T) {
	blogs := newStubBlogStore()
	id := blogs.put(&models.Blog{Title: "t", AuthorID: "owner"})
	users := newStubUserStore()
	svc, _ := newTestBlogService(blogs, users)

	assert.ErrorIs(t, svc.Delete(context.Background(), id, "intruder"), ErrNotOwner)
	assert.NoError(t, svc.Delete(context.Background(), id, "owner"))
	assert.ErrorIs(t, svc.Delete(context.Background(), id, "owner"), ErrBlogNotFound)
}

func TestGetUnknownBlog(t *testing.T) {
	blogs := newStubBlogStore()
	users := newStubUserStore()
	svc, _ := newTestBlogService(blogs, users)

	_, _, err := svc.Get(context.Background(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrBlogNotFound)
}

func TestGetReturnsFormattedContent(t *testing.T) {
	blogs := newStubBlogStore()
	id := blogs.put(&models.Blog{
		Title:       "t",
		RawContent:  "## Intro\n\nVisit OpenAI for more.",
		Keywords:    []string{"OpenAI"},
		KeywordURLs: []string{"https://openai.com"},
	})
	users := newStubUserStore()
	svc, _ := newTestBlogService(blogs, users)

	_, formatted, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Contains(t, formatted, "<h2")
	assert.Contains(t, formatted, `href="https://openai.com"`)
}
