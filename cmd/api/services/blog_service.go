package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"blog-fusion/cmd/api/dto"
	"blog-fusion/cmd/api/event/dispatcher"
	"blog-fusion/internal/logger"
	"blog-fusion/config"
	"blog-fusion/engagement"
	"blog-fusion/events"
	"blog-fusion/formatter"
	"blog-fusion/models"
	"blog-fusion/repositories"
)

// BlogStore 는 BlogService 가 필요로 하는 블로그 저장소 동작이다.
type BlogStore interface {
	Insert(ctx context.Context, b *models.Blog) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id string) (*models.Blog, error)
	List(ctx context.Context, f repositories.ListFilter, limit, offset int64) ([]models.Blog, int64, error)
	UpdateEngagement(ctx context.Context, id string, e models.Engagement) (models.Engagement, error)
	SetFields(ctx context.Context, id string, fields bson.M) error
	Delete(ctx context.Context, id string) error
	CountByAuthorSince(ctx context.Context, authorID string, since time.Time) (int64, error)
}

// EngagementNotifier 는 참여 상태 변경을 실시간 구독자에게 전달한다.
type EngagementNotifier interface {
	Publish(u repositories.EngagementUpdate)
}

// 참여 쓰기의 동시 충돌 시 재시도 횟수.
const engagementWriteAttempts = 3

type BlogService struct {
	blogs      BlogStore
	users      UserStore
	watcher    EngagementNotifier
	dispatcher *dispatcher.EventDispatcher
	quota      config.PublishQuotaConfig
}

// NewBlogService 를 생성한다. watcher 와 dispatcher 는 nil 이어도 동작한다.
func NewBlogService(blogs BlogStore, users UserStore, watcher EngagementNotifier, d *dispatcher.EventDispatcher, quota config.PublishQuotaConfig) *BlogService {
	return &BlogService{
		blogs:      blogs,
		users:      users,
		watcher:    watcher,
		dispatcher: d,
		quota:      quota,
	}
}

// Create 는 새 블로그를 발행한다. basic 플랜은 월별 발행 한도가 적용된다.
func (s *BlogService) Create(ctx context.Context, authorID, authorName string, req dto.CreateBlogRequest) (*models.Blog, error) {
	if err := s.checkPublishQuota(ctx, authorID); err != nil {
		return nil, err
	}

	blog := &models.Blog{
		Title:           req.Title,
		MetaDescription: req.MetaDescription,
		Category:        req.Category,
		RawContent:      req.RawContent,
		AuthorID:        authorID,
		AuthorName:      authorName,
		Keywords:        req.Keywords,
		KeywordURLs:     req.KeywordURLs,
	}
	if _, err := s.blogs.Insert(ctx, blog); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		if err := s.dispatcher.PublishBlogPublished(ctx, blog); err != nil {
			// 이벤트 발행 실패는 발행 자체를 실패시키지 않는다.
			logger.ErrorWithFields("failed to publish blog.published event", logger.Fields{
				"blog_id": blog.ID.Hex(),
				"error":   err.Error(),
			})
		}
	}
	return blog, nil
}

// checkPublishQuota 는 basic 플랜 사용자의 달력 기준 당월 발행 수를 검사한다.
func (s *BlogService) checkPublishQuota(ctx context.Context, authorID string) error {
	user, err := s.users.FindByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if user.SubscriptionPlan != models.PlanBasic && user.SubscriptionPlan != "" {
		return nil
	}

	limit := s.quota.BasicPostsPerMonth
	if limit <= 0 {
		limit = 3
	}

	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	count, err := s.blogs.CountByAuthorSince(ctx, authorID, monthStart)
	if err != nil {
		return err
	}
	if count >= int64(limit) {
		return ErrQuotaExceeded
	}
	return nil
}

// Get 은 블로그 한 건과 포매팅된 본문 HTML 을 반환한다.
func (s *BlogService) Get(ctx context.Context, id string) (*models.Blog, string, error) {
	blog, err := s.blogs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, "", ErrBlogNotFound
		}
		return nil, "", err
	}

	formatted, err := formatter.Format(blog.RawContent, blog.Keywords, blog.KeywordURLs)
	if err != nil {
		return nil, "", err
	}
	return blog, formatted, nil
}

// List 는 피드를 최신순으로 페이징 조회한다.
func (s *BlogService) List(ctx context.Context, f repositories.ListFilter, page, pageSize int) ([]models.Blog, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	offset := int64(page-1) * int64(pageSize)
	return s.blogs.List(ctx, f, int64(pageSize), offset)
}

// Update 는 작성자 본인의 블로그만 수정한다. nil 필드는 보존된다.
func (s *BlogService) Update(ctx context.Context, id, userID string, req dto.UpdateBlogRequest) (*models.Blog, error) {
	blog, err := s.blogs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrBlogNotFound
		}
		return nil, err
	}
	if blog.AuthorID != userID {
		return nil, ErrNotOwner
	}

	fields := bson.M{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.MetaDescription != nil {
		fields["meta_description"] = *req.MetaDescription
	}
	if req.Category != nil {
		fields["category"] = *req.Category
	}
	if req.RawContent != nil {
		fields["raw_content"] = *req.RawContent
	}
	if req.Keywords != nil {
		fields["keywords"] = *req.Keywords
	}
	if req.KeywordURLs != nil {
		fields["keyword_urls"] = *req.KeywordURLs
	}
	if len(fields) > 0 {
		if err := s.blogs.SetFields(ctx, id, fields); err != nil {
			return nil, err
		}
	}
	return s.blogs.FindByID(ctx, id)
}

// Delete 는 작성자 본인의 블로그만 삭제한다.
func (s *BlogService) Delete(ctx context.Context, id, userID string) error {
	blog, err := s.blogs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrBlogNotFound
		}
		return err
	}
	if blog.AuthorID != userID {
		return ErrNotOwner
	}
	return s.blogs.Delete(ctx, id)
}

// ToggleLike 는 좋아요를 토글하고 최신 참여 상태를 반환한다.
func (s *BlogService) ToggleLike(ctx context.Context, blogID, userID, displayName string) (models.Engagement, error) {
	e, blog, err := s.applyEngagement(ctx, blogID, func(cur models.Engagement) (models.Engagement, error) {
		return engagement.ApplyLike(cur, userID, displayName, time.Now()), nil
	})
	if err != nil {
		return models.Engagement{}, err
	}
	s.notifyEngagement(ctx, blog, events.EngagementLike, userID, displayName, e)
	return e, nil
}

// AddComment 는 댓글을 추가하고 최신 참여 상태를 반환한다.
func (s *BlogService) AddComment(ctx context.Context, blogID, userID, displayName, text string) (models.Engagement, error) {
	comment := models.Comment{
		ID:          uuid.NewString(),
		UserID:      userID,
		DisplayName: displayName,
		Text:        text,
		CreatedAt:   time.Now(),
	}
	e, blog, err := s.applyEngagement(ctx, blogID, func(cur models.Engagement) (models.Engagement, error) {
		return engagement.ApplyComment(cur, comment)
	})
	if err != nil {
		return models.Engagement{}, err
	}
	s.notifyEngagement(ctx, blog, events.EngagementComment, userID, displayName, e)
	return e, nil
}

// Share 는 공유 카운터를 증가시킨다. 익명 사용자도 허용된다.
func (s *BlogService) Share(ctx context.Context, blogID, actorID, actorName string) (models.Engagement, error) {
	e, blog, err := s.applyEngagement(ctx, blogID, func(cur models.Engagement) (models.Engagement, error) {
		return engagement.ApplyShare(cur), nil
	})
	if err != nil {
		return models.Engagement{}, err
	}
	s.notifyEngagement(ctx, blog, events.EngagementShare, actorID, actorName, e)
	return e, nil
}

// applyEngagement 는 현재 상태를 읽고 순수 변환을 적용한 뒤 리비전 일치
// 조건으로 저장한다. 동시 쓰기에 밀린 경우 최신 상태를 다시 읽어
// 변환을 재적용하며, 재시도 한도를 넘으면 ErrStoreConflict 를 반환한다.
func (s *BlogService) applyEngagement(ctx context.Context, blogID string, apply func(models.Engagement) (models.Engagement, error)) (models.Engagement, *models.Blog, error) {
	var lastErr error
	for attempt := 0; attempt < engagementWriteAttempts; attempt++ {
		blog, err := s.blogs.FindByID(ctx, blogID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return models.Engagement{}, nil, ErrBlogNotFound
			}
			return models.Engagement{}, nil, err
		}

		next, err := apply(blog.Engagement)
		if err != nil {
			return models.Engagement{}, nil, err
		}

		stored, err := s.blogs.UpdateEngagement(ctx, blogID, next)
		if err == nil {
			return stored, blog, nil
		}
		if !errors.Is(err, repositories.ErrConflict) {
			if errors.Is(err, repositories.ErrNotFound) {
				return models.Engagement{}, nil, ErrBlogNotFound
			}
			return models.Engagement{}, nil, err
		}
		lastErr = err
	}
	logger.WarnWithFields("engagement write lost all retries", logger.Fields{
		"blog_id": blogID,
		"error":   lastErr.Error(),
	})
	return models.Engagement{}, nil, ErrStoreConflict
}

func (s *BlogService) notifyEngagement(ctx context.Context, blog *models.Blog, kind events.EngagementKind, actorID, actorName string, e models.Engagement) {
	if s.watcher != nil {
		s.watcher.Publish(repositories.EngagementUpdate{BlogID: blog.ID.Hex(), Engagement: e})
	}
	if s.dispatcher != nil {
		if err := s.dispatcher.PublishEngagementUpdated(ctx, blog, kind, actorID, actorName, e); err != nil {
			logger.ErrorWithFields("failed to publish engagement event", logger.Fields{
				"blog_id": blog.ID.Hex(),
				"kind":    string(kind),
				"error":   err.Error(),
			})
		}
	}
}
