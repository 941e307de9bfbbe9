package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"blog-fusion/internal/logger"
	"blog-fusion/cmd/notifier/emailclient"
	"blog-fusion/config"
	"blog-fusion/eventbus"
	"blog-fusion/events"
)

func main() {
	config.InitApp()
	logger.InitFromEnv("LOG_LEVEL")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// EventBus 초기화 및 토픽 보장
	brokers := eventbus.GetBrokers()
	for _, t := range eventbus.AllTopics {
		if err := eventbus.EnsureTopics(brokers, t, 3); err != nil {
			logger.Log.Errorf("failed to ensure eventbus topics for %s: %v", t.Base(), err)
		}
	}

	bus, err := eventbus.NewKafkaEventBus(brokers)
	if err != nil {
		logger.Log.Errorf("failed to create event bus: %v", err)
		os.Exit(1)
	}
	defer bus.Close()

	emails := emailclient.New()
	handler := newNotificationHandler(emails)

	groupID := eventbus.GetGroupID() + "-notifier"

	// 메인 구독 러너
	subscribeRunner := func() error {
		return bus.Subscribe(ctx, groupID, eventbus.TopicBlogEvents, func(ctx context.Context, ev eventbus.Event) error {
			// 이벤트 타입만 먼저 파싱 (BaseEvent.Type는 top-level에 있음)
			var peek struct {
				Type string `json:"type"`
			}
			if err := json.Unmarshal(ev.Payload, &peek); err != nil {
				return err
			}
			switch events.EventType(peek.Type) {
			case events.BlogPublished:
				v, err := eventbus.DecodeJSON[events.BlogPublishedEvent](ev)
				if err != nil {
					return err
				}
				return handler.HandleBlogPublished(ctx, &v)
			case events.BlogEngagementUpdated:
				v, err := eventbus.DecodeJSON[events.BlogEngagementUpdatedEvent](ev)
				if err != nil {
					return err
				}
				return handler.HandleEngagementUpdated(ctx, &v)
			case events.SubscriptionChanged:
				v, err := eventbus.DecodeJSON[events.SubscriptionChangedEvent](ev)
				if err != nil {
					return err
				}
				return handler.HandleSubscriptionChanged(ctx, &v)
			default:
				// 알 수 없는 타입 또는 다른 서비스용 이벤트는 무시 (커밋)
				return nil
			}
		})
	}

	logger.Log.Info("starting notifier service with eventbus...")

	// Graceful shutdown 설정
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	var wg sync.WaitGroup

	// 메인 구독 시작
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := subscribeRunner(); err != nil && err != context.Canceled {
			logger.Log.Errorf("eventbus subscribe error: %v", err)
		}
	}()

	// 재주입기 시작 (지연 토픽 -> 기본 토픽)
	for _, t := range eventbus.AllTopics {
		topic := t
		wg.Add(1)
		go func() {
			defer wg.Done()
			topicGroupID := groupID + "-retry-" + strings.ReplaceAll(topic.Base(), ".", "-")
			if err := bus.StartRetryReinjector(ctx, topicGroupID, topic); err != nil && err != context.Canceled {
				logger.Log.Errorf("eventbus retry reinjector error for %s: %v", topic.Base(), err)
			}
		}()
	}

	// 종료 신호 대기
	<-sigChan
	logger.Log.Info("received shutdown signal, shutting down notifier service...")

	cancel()
	wg.Wait()

	logger.Log.Info("notifier service stopped")
}
