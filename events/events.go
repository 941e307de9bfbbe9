package events

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType 이벤트 타입 정의
type EventType string

const (
	BlogPublished         EventType = "blog.published"
	BlogEngagementUpdated EventType = "blog.engagement_updated"
	SubscriptionChanged   EventType = "subscription.changed"
)

// BaseEvent 모든 이벤트의 기본 구조
type BaseEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
	Version   string    `json:"version"`
}

// BlogPublishedEvent 블로그 발행 완료 이벤트
type BlogPublishedEvent struct {
	BaseEvent
	BlogID     string `json:"blog_id"`
	AuthorID   string `json:"author_id"`
	AuthorName string `json:"author_name"`
	Title      string `json:"title"`
	Category   string `json:"category"`
}

// EngagementKind 참여 이벤트 종류 (like, comment, share)
type EngagementKind string

const (
	EngagementLike    EngagementKind = "like"
	EngagementComment EngagementKind = "comment"
	EngagementShare   EngagementKind = "share"
)

// BlogEngagementUpdatedEvent 블로그 참여 상태 변경 이벤트
type BlogEngagementUpdatedEvent struct {
	BaseEvent
	BlogID       string         `json:"blog_id"`
	AuthorID     string         `json:"author_id"`
	ActorID      string         `json:"actor_id"`
	ActorName    string         `json:"actor_name"`
	Kind         EngagementKind `json:"kind"`
	LikeCount    int            `json:"like_count"`
	CommentCount int            `json:"comment_count"`
	ShareCount   int64          `json:"share_count"`
}

// SubscriptionChangedEvent 구독 플랜 변경 이벤트
type SubscriptionChangedEvent struct {
	BaseEvent
	UserID string `json:"user_id"`
	Plan   string `json:"plan"`
}

// SerializeEvent 이벤트를 JSON으로 직렬화하고 타입 정보 반환
func SerializeEvent(event interface{}) ([]byte, EventType, error) {
	var eventType EventType

	switch e := event.(type) {
	case BlogPublishedEvent:
		eventType = e.Type
	case BlogEngagementUpdatedEvent:
		eventType = e.Type
	case SubscriptionChangedEvent:
		eventType = e.Type
	default:
		return nil, "", fmt.Errorf("unknown event type: %T", event)
	}

	data, err := json.Marshal(event)
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal event: %w", err)
	}

	return data, eventType, nil
}

// DeserializeEvent 이벤트 타입에 따라 적절한 구조체로 역직렬화
func DeserializeEvent(eventType EventType, data []byte) (interface{}, error) {
	var event interface{}

	switch eventType {
	case BlogPublished:
		event = &BlogPublishedEvent{}
	case BlogEngagementUpdated:
		event = &BlogEngagementUpdatedEvent{}
	case SubscriptionChanged:
		event = &SubscriptionChangedEvent{}
	default:
		return nil, fmt.Errorf("unknown event type: %s", eventType)
	}

	if err := json.Unmarshal(data, event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}

	return event, nil
}
