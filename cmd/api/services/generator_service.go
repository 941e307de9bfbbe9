package services

import (
	"context"
	"fmt"

	"blog-fusion/cmd/api/dto"
	"blog-fusion/internal/logger"
	"blog-fusion/generator"
)

// BlogDrafter 는 블로그 초안 생성기이다.
type BlogDrafter interface {
	GenerateBlog(ctx context.Context, p generator.BlogPrompt) (string, *generator.LLMRequestLog, error)
}

// GeneratorService 는 LLM 기반 블로그 초안 생성을 담당한다.
type GeneratorService struct {
	drafter BlogDrafter
	quota   LLMQuota
}

func NewGeneratorService(drafter BlogDrafter, quota LLMQuota) *GeneratorService {
	return &GeneratorService{drafter: drafter, quota: quota}
}

// Generate 는 주제/세부사항/키워드/참고자료로 블로그 초안을 생성한다.
// LLM 일일 한도가 소진된 경우 ErrLLMUnavailable 을 반환한다.
func (s *GeneratorService) Generate(ctx context.Context, req dto.GenerateBlogRequest) (dto.GenerateBlogResponse, error) {
	ok, err := s.quota.WaitAndReserve(ctx)
	if err != nil {
		return dto.GenerateBlogResponse{}, err
	}
	if !ok {
		return dto.GenerateBlogResponse{}, ErrLLMUnavailable
	}

	content, llmLog, err := s.drafter.GenerateBlog(ctx, generator.BlogPrompt{
		Topic:      req.Topic,
		Details:    fmt.Sprintf("%s in %s", req.Audience, req.Country),
		Keywords:   req.Keywords,
		References: req.URLs,
	})
	if err != nil {
		return dto.GenerateBlogResponse{}, err
	}

	if llmLog != nil {
		logger.InfoWithFields("blog draft generated", logger.Fields{
			"model":      llmLog.ModelName,
			"latency_ms": llmLog.LatencyMs,
			"tokens":     llmLog.TokenUsage.TotalTokens,
		})
	}
	return dto.GenerateBlogResponse{Blog: content}, nil
}
