package services

import (
	"context"
	"errors"

	"blog-fusion/billing"
	"blog-fusion/cmd/api/event/dispatcher"
	"blog-fusion/internal/logger"
	"blog-fusion/models"
	"blog-fusion/repositories"
)

// CheckoutClient 는 결제 세션 생성기이다.
type CheckoutClient interface {
	CreateSession(userID, email, plan string) (billing.Session, error)
}

// PlanStore 는 플랜 변경에 필요한 저장소 동작이다.
type PlanStore interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	SetSubscriptionPlan(ctx context.Context, id, plan string) error
}

// BillingService 는 구독 결제 세션 생성과 플랜 반영을 담당한다.
type BillingService struct {
	checkout   CheckoutClient
	users      PlanStore
	dispatcher *dispatcher.EventDispatcher
}

func NewBillingService(checkout CheckoutClient, users PlanStore, d *dispatcher.EventDispatcher) *BillingService {
	return &BillingService{checkout: checkout, users: users, dispatcher: d}
}

// CreateCheckout 은 유료 플랜 결제 세션을 생성한다.
// 알 수 없는 플랜과 무료(basic) 플랜은 billing 패키지의 센티널 에러로 전달된다.
func (s *BillingService) CreateCheckout(ctx context.Context, userID, plan string) (billing.Session, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return billing.Session{}, ErrUserNotFound
		}
		return billing.Session{}, err
	}
	return s.checkout.CreateSession(userID, user.Email, plan)
}

// ApplyPlan 은 결제 완료 후 사용자의 플랜을 변경하고 이벤트를 발행한다.
func (s *BillingService) ApplyPlan(ctx context.Context, userID, plan string) error {
	if !models.ValidPlan(plan) {
		return billing.ErrUnknownPlan
	}
	if err := s.users.SetSubscriptionPlan(ctx, userID, plan); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if s.dispatcher != nil {
		if err := s.dispatcher.PublishSubscriptionChanged(ctx, userID, plan); err != nil {
			logger.ErrorWithFields("failed to publish subscription.changed event", logger.Fields{
				"user_id": userID,
				"plan":    plan,
				"error":   err.Error(),
			})
		}
	}
	return nil
}
