package dispatcher

import (
	"context"
	"fmt"
	"time"

	"blog-fusion/eventbus"
	"blog-fusion/events"
	"blog-fusion/models"

	"github.com/google/uuid"
)

// EventDispatcher API용 이벤트 발행 서비스
type EventDispatcher struct {
	bus eventbus.EventBus
}

// NewEventDispatcher 새로운 이벤트 디스패처 생성
func NewEventDispatcher(bus eventbus.EventBus) *EventDispatcher {
	return &EventDispatcher{
		bus: bus,
	}
}

// PublishBlogPublished 블로그 발행 완료 이벤트 발행
func (s *EventDispatcher) PublishBlogPublished(ctx context.Context, blog *models.Blog) error {
	e := events.BlogPublishedEvent{
		BaseEvent: events.BaseEvent{
			ID:        uuid.New().String(),
			Type:      events.BlogPublished,
			Timestamp: time.Now(),
			Source:    "api",
			Version:   "1.0",
		},
		BlogID:     blog.ID.Hex(),
		AuthorID:   blog.AuthorID,
		AuthorName: blog.AuthorName,
		Title:      blog.Title,
		Category:   blog.Category,
	}
	evt, err := eventbus.NewJSONEvent("", e, 0)
	if err != nil {
		return fmt.Errorf("failed to build event: %w", err)
	}
	return s.bus.Publish(ctx, eventbus.TopicBlogEvents.Base(), evt)
}

// PublishEngagementUpdated 참여 상태 변경 이벤트 발행
func (s *EventDispatcher) PublishEngagementUpdated(ctx context.Context, blog *models.Blog, kind events.EngagementKind, actorID, actorName string, e models.Engagement) error {
	payload := events.BlogEngagementUpdatedEvent{
		BaseEvent: events.BaseEvent{
			ID:        uuid.New().String(),
			Type:      events.BlogEngagementUpdated,
			Timestamp: time.Now(),
			Source:    "api",
			Version:   "1.0",
		},
		BlogID:       blog.ID.Hex(),
		AuthorID:     blog.AuthorID,
		ActorID:      actorID,
		ActorName:    actorName,
		Kind:         kind,
		LikeCount:    len(e.Likes),
		CommentCount: len(e.Comments),
		ShareCount:   e.ShareCount,
	}
	evt, err := eventbus.NewJSONEvent("", payload, 0)
	if err != nil {
		return fmt.Errorf("failed to build event: %w", err)
	}
	return s.bus.Publish(ctx, eventbus.TopicBlogEvents.Base(), evt)
}

// PublishSubscriptionChanged 구독 플랜 변경 이벤트 발행
func (s *EventDispatcher) PublishSubscriptionChanged(ctx context.Context, userID, plan string) error {
	e := events.SubscriptionChangedEvent{
		BaseEvent: events.BaseEvent{
			ID:        uuid.New().String(),
			Type:      events.SubscriptionChanged,
			Timestamp: time.Now(),
			Source:    "api",
			Version:   "1.0",
		},
		UserID: userID,
		Plan:   plan,
	}
	evt, err := eventbus.NewJSONEvent("", e, 0)
	if err != nil {
		return fmt.Errorf("failed to build event: %w", err)
	}
	return s.bus.Publish(ctx, eventbus.TopicBlogEvents.Base(), evt)
}
