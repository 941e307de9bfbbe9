package services

import (
	"context"
	"time"

	"blog-fusion/analyzer"
	"blog-fusion/cmd/api/dto"
	"blog-fusion/internal/logger"
	"blog-fusion/config"
	"blog-fusion/generator"
	"blog-fusion/sources"
)

// Humanizer 는 기계 문체의 텍스트를 재작성한다. keywords 는 재작성 중에도
// 그대로 유지해야 하는 표현이다.
type Humanizer interface {
	Humanize(ctx context.Context, text string, keywords []string) (string, *generator.LLMRequestLog, error)
}

// LLMQuota 는 LLM 호출 직전의 한도 예약이다.
type LLMQuota interface {
	WaitAndReserve(ctx context.Context) (bool, error)
}

// SourceGatherer 는 참고자료 URL 을 원문 텍스트로 확장한다.
type SourceGatherer interface {
	Gather(ctx context.Context, referenceURLs []string) []sources.Source
}

// 휴머나이즈 반복 횟수. 두 번이면 점수 개선이 수렴한다.
const humanizeRounds = 2

// AnalyzerService 는 AI 탐지 점수 산정, 휴머나이즈 반복, 표절 출처 검사를
// 한 번의 분석 플로우로 묶는다.
type AnalyzerService struct {
	humanizer Humanizer
	quota     LLMQuota
	gatherer  SourceGatherer
	cfg       config.AnalyzerConfig

	// sleep 은 테스트에서 대체할 수 있다.
	sleep func(ctx context.Context, d time.Duration)
}

func NewAnalyzerService(h Humanizer, q LLMQuota, g SourceGatherer, cfg config.AnalyzerConfig) *AnalyzerService {
	return &AnalyzerService{
		humanizer: h,
		quota:     q,
		gatherer:  g,
		cfg:       cfg,
		sleep:     sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) {
	select {
	case <-time.After(d):
	case <-ctx.Done():
	}
}

func (s *AnalyzerService) timeout() time.Duration {
	if s.cfg.TimeoutSeconds > 0 {
		return time.Duration(s.cfg.TimeoutSeconds) * time.Second
	}
	return 60 * time.Second
}

func (s *AnalyzerService) minDuration() time.Duration {
	if s.cfg.MinDurationSeconds > 0 {
		return time.Duration(s.cfg.MinDurationSeconds) * time.Second
	}
	return 6 * time.Second
}

func (s *AnalyzerService) similarityThreshold() float64 {
	if s.cfg.SimilarityThreshold > 0 {
		return s.cfg.SimilarityThreshold
	}
	return 0.35
}

// Analyze 는 입력 텍스트의 AI 탐지 점수를 매기고, 휴머나이즈를 반복한 뒤,
// 참고자료 원문과의 유사도를 검사한다. 전체 작업은 설정된 타임아웃 안에서
// 수행되며, 응답은 설정된 최소 소요 시간 이전에는 반환되지 않는다.
func (s *AnalyzerService) Analyze(ctx context.Context, req dto.AnalyzeRequest) (dto.AnalyzeResponse, error) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, s.timeout())
	defer cancel()

	initial := analyzer.DetectScore(req.Content)
	humanized := req.Content
	final := initial
	rounds := 0

	for i := 0; i < humanizeRounds; i++ {
		if ctx.Err() != nil {
			break
		}
		ok, err := s.quota.WaitAndReserve(ctx)
		if err != nil {
			return dto.AnalyzeResponse{}, err
		}
		if !ok {
			// 일일 한도 소진: 남은 라운드를 건너뛰고 현재 텍스트로 진행한다.
			logger.WarnWithFields("humanize skipped, llm quota exhausted", logger.Fields{
				"round": i + 1,
			})
			break
		}

		rewritten, _, err := s.humanizer.Humanize(ctx, humanized, req.Keywords)
		if err != nil {
			logger.ErrorWithFields("humanize round failed", logger.Fields{
				"round": i + 1,
				"error": err.Error(),
			})
			break
		}
		humanized = rewritten
		final = analyzer.DetectScore(humanized)
		rounds = i + 1
	}

	hits, checked := s.checkSources(ctx, humanized, req.References)

	// 최소 소요 시간 보장: 분석이 빨리 끝나도 응답을 지연시킨다.
	if remaining := s.minDuration() - time.Since(start); remaining > 0 {
		s.sleep(ctx, remaining)
	}

	return dto.AnalyzeResponse{
		Status:               "success",
		HumanizedContent:     humanized,
		AIDetectionOriginal:  initial,
		AIDetectionHumanized: final,
		Rounds:               rounds,
		SourcesChecked:       checked,
		PlagiarismHits:       hits,
		ElapsedMs:            time.Since(start).Milliseconds(),
	}, nil
}

func (s *AnalyzerService) checkSources(ctx context.Context, text string, referenceURLs []string) ([]dto.PlagiarismHitDTO, int) {
	if len(referenceURLs) == 0 || s.gatherer == nil {
		return []dto.PlagiarismHitDTO{}, 0
	}

	gathered := s.gatherer.Gather(ctx, referenceURLs)
	threshold := s.similarityThreshold()

	hits := make([]dto.PlagiarismHitDTO, 0)
	for _, src := range gathered {
		sim := analyzer.Similarity(text, src.Text)
		if sim >= threshold {
			hits = append(hits, dto.PlagiarismHitDTO{
				URL:        src.URL,
				Title:      src.Title,
				Similarity: sim,
			})
		}
	}
	return hits, len(gathered)
}
