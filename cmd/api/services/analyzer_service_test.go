package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-fusion/cmd/api/dto"
	"blog-fusion/config"
	"blog-fusion/generator"
	"blog-fusion/sources"
)

type stubHumanizer struct {
	calls    int
	keywords []string
	err      error
}

func (h *stubHumanizer) Humanize(ctx context.Context, text string, keywords []string) (string, *generator.LLMRequestLog, error) {
	h.calls++
	h.keywords = keywords
	if h.err != nil {
		return "", nil, h.err
	}
	return text + " rewritten", nil, nil
}

type stubQuota struct {
	allowed int
	err     error
}

func (q *stubQuota) WaitAndReserve(ctx context.Context) (bool, error) {
	if q.err != nil {
		return false, q.err
	}
	if q.allowed <= 0 {
		return false, nil
	}
	q.allowed--
	return true, nil
}

type stubSources struct {
	out []sources.Source
}

func (s *stubSources) Gather(ctx context.Context, referenceURLs []string) []sources.Source {
	return s.out
}

func newTestAnalyzerService(h *stubHumanizer, q *stubQuota, g *stubSources) (*AnalyzerService, *time.Duration) {
	svc := NewAnalyzerService(h, q, g, config.AnalyzerConfig{
		TimeoutSeconds:      5,
		MinDurationSeconds:  6,
		SimilarityThreshold: 0.35,
	})
	var slept time.Duration
	svc.sleep = func(ctx context.Context, d time.Duration) { slept += d }
	return svc, &slept
}

const analyzeSample = "The quick brown fox jumps over the lazy dog near the river. " +
	"Every morning the same fox returns to the same spot by the water. " +
	"Nobody in the village knows why it keeps coming back there."

func TestAnalyzeRunsTwoHumanizeRounds(t *testing.T) {
	h := &stubHumanizer{}
	q := &stubQuota{allowed: 10}
	svc, _ := newTestAnalyzerService(h, q, &stubSources{})

	resp, err := svc.Analyze(context.Background(), dto.AnalyzeRequest{
		Content:  analyzeSample,
		Keywords: []string{"fox", "river"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, h.calls)
	assert.Equal(t, []string{"fox", "river"}, h.keywords)
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, 2, resp.Rounds)
	assert.True(t, strings.HasSuffix(resp.HumanizedContent, "rewritten rewritten"))
	assert.GreaterOrEqual(t, resp.AIDetectionOriginal, 10)
	assert.LessOrEqual(t, resp.AIDetectionHumanized, 100)
}

func TestAnalyzeSkipsRoundsWhenQuotaExhausted(t *testing.T) {
	h := &stubHumanizer{}
	q := &stubQuota{allowed: 0}
	svc, _ := newTestAnalyzerService(h, q, &stubSources{})

	resp, err := svc.Analyze(context.Background(), dto.AnalyzeRequest{Content: analyzeSample})
	require.NoError(t, err)
	assert.Equal(t, 0, h.calls)
	assert.Equal(t, 0, resp.Rounds)
	assert.Equal(t, analyzeSample, resp.HumanizedContent)
	assert.Equal(t, resp.AIDetectionOriginal, resp.AIDetectionHumanized)
}

func TestAnalyzeStopsAfterHumanizeFailure(t *testing.T) {
	h := &stubHumanizer{err: errors.New("upstream down")}
	q := &stubQuota{allowed: 10}
	svc, _ := newTestAnalyzerService(h, q, &stubSources{})

	resp, err := svc.Analyze(context.Background(), dto.AnalyzeRequest{Content: analyzeSample})
	require.NoError(t, err)
	assert.Equal(t, 1, h.calls)
	assert.Equal(t, 0, resp.Rounds)
	assert.Equal(t, analyzeSample, resp.HumanizedContent)
}

func TestAnalyzeQuotaErrorPropagates(t *testing.T) {
	q := &stubQuota{err: errors.New("quota backend down")}
	svc, _ := newTestAnalyzerService(&stubHumanizer{}, q, &stubSources{})

	_, err := svc.Analyze(context.Background(), dto.AnalyzeRequest{Content: analyzeSample})
	assert.Error(t, err)
}

func TestAnalyzeEnforcesMinimumDuration(t *testing.T) {
	svc, slept := newTestAnalyzerService(&stubHumanizer{}, &stubQuota{allowed: 10}, &stubSources{})

	_, err := svc.Analyze(context.Background(), dto.AnalyzeRequest{Content: analyzeSample})
	require.NoError(t, err)
	// the stubbed pipeline finishes almost instantly, so nearly the whole
	// floor should be padded out
	assert.Greater(t, *slept, 5*time.Second)
}

func TestAnalyzeFlagsSimilarSources(t *testing.T) {
	g := &stubSources{out: []sources.Source{
		{URL: "https://a.example", Title: "match", Text: analyzeSample},
		{URL: "https://b.example", Title: "unrelated", Text: "completely different subject matter about databases and indexing strategies"},
	}}
	svc, _ := newTestAnalyzerService(&stubHumanizer{}, &stubQuota{allowed: 0}, g)

	resp, err := svc.Analyze(context.Background(), dto.AnalyzeRequest{
		Content:    analyzeSample,
		References: []string{"https://a.example", "https://b.example"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.SourcesChecked)
	require.Len(t, resp.PlagiarismHits, 1)
	assert.Equal(t, "https://a.example", resp.PlagiarismHits[0].URL)
}

func TestAnalyzeNoReferencesSkipsSourceCheck(t *testing.T) {
	svc, _ := newTestAnalyzerService(&stubHumanizer{}, &stubQuota{allowed: 0}, &stubSources{})

	resp, err := svc.Analyze(context.Background(), dto.AnalyzeRequest{Content: analyzeSample})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.SourcesChecked)
	assert.Empty(t, resp.PlagiarismHits)
}
