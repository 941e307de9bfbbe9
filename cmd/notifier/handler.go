package main

import (
	"context"
	"fmt"

	"blog-fusion/internal/logger"
	"blog-fusion/cmd/notifier/emailclient"
	"blog-fusion/events"
)

// notificationHandler 는 블로그 이벤트를 이메일 알림으로 변환한다.
// 발송 실패는 에러로 반환되어 이벤트버스의 재시도 플로우를 탄다.
type notificationHandler struct {
	emails *emailclient.Client
}

func newNotificationHandler(emails *emailclient.Client) *notificationHandler {
	return &notificationHandler{emails: emails}
}

func (h *notificationHandler) HandleBlogPublished(ctx context.Context, ev *events.BlogPublishedEvent) error {
	logger.InfoWithFields("blog published, sending confirmation email", logger.Fields{
		"blog_id":   ev.BlogID,
		"author_id": ev.AuthorID,
	})
	return h.emails.Send(ctx, emailclient.SendRequest{
		ToUserID: ev.AuthorID,
		Subject:  fmt.Sprintf("'%s' 발행 완료", ev.Title),
		Body:     fmt.Sprintf("%s 님의 블로그가 발행되었습니다.", ev.AuthorName),
	})
}

func (h *notificationHandler) HandleEngagementUpdated(ctx context.Context, ev *events.BlogEngagementUpdatedEvent) error {
	// 본인 활동은 알리지 않는다.
	if ev.ActorID == ev.AuthorID || ev.AuthorID == "" {
		return nil
	}

	var subject string
	switch ev.Kind {
	case events.EngagementLike:
		subject = fmt.Sprintf("%s 님이 회원님의 블로그를 좋아합니다", ev.ActorName)
	case events.EngagementComment:
		subject = fmt.Sprintf("%s 님이 회원님의 블로그에 댓글을 남겼습니다", ev.ActorName)
	case events.EngagementShare:
		subject = "회원님의 블로그가 공유되었습니다"
	default:
		return nil
	}

	return h.emails.Send(ctx, emailclient.SendRequest{
		ToUserID: ev.AuthorID,
		Subject:  subject,
		Body: fmt.Sprintf("좋아요 %d개, 댓글 %d개, 공유 %d회",
			ev.LikeCount, ev.CommentCount, ev.ShareCount),
	})
}

func (h *notificationHandler) HandleSubscriptionChanged(ctx context.Context, ev *events.SubscriptionChangedEvent) error {
	return h.emails.Send(ctx, emailclient.SendRequest{
		ToUserID: ev.UserID,
		Subject:  "구독 플랜이 변경되었습니다",
		Body:     fmt.Sprintf("현재 플랜: %s", ev.Plan),
	})
}
