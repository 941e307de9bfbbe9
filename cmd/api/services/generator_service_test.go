package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-fusion/cmd/api/dto"
	"blog-fusion/generator"
)

type stubDrafter struct {
	prompt generator.BlogPrompt
	out    string
	err    error
}

func (d *stubDrafter) GenerateBlog(ctx context.Context, p generator.BlogPrompt) (string, *generator.LLMRequestLog, error) {
	d.prompt = p
	if d.err != nil {
		return "", nil, d.err
	}
	return d.out, nil, nil
}

func TestGenerateMapsRequestIntoPrompt(t *testing.T) {
	drafter := &stubDrafter{out: "# Draft\n\nBody."}
	svc := NewGeneratorService(drafter, &stubQuota{allowed: 1})

	resp, err := svc.Generate(context.Background(), dto.GenerateBlogRequest{
		Topic:    "Go concurrency",
		Country:  "Korea",
		Audience: "backend developers",
		Keywords: []string{"goroutine"},
		URLs:     []string{"https://go.dev/blog/pipelines"},
	})
	require.NoError(t, err)
	assert.Equal(t, "# Draft\n\nBody.", resp.Blog)
	assert.Equal(t, "Go concurrency", drafter.prompt.Topic)
	assert.Equal(t, "backend developers in Korea", drafter.prompt.Details)
	assert.Equal(t, []string{"goroutine"}, drafter.prompt.Keywords)
	assert.Equal(t, []string{"https://go.dev/blog/pipelines"}, drafter.prompt.References)
}

func TestGenerateQuotaExhausted(t *testing.T) {
	svc := NewGeneratorService(&stubDrafter{}, &stubQuota{allowed: 0})

	_, err := svc.Generate(context.Background(), dto.GenerateBlogRequest{Topic: "t"})
	assert.ErrorIs(t, err, ErrLLMUnavailable)
}

func TestGenerateDrafterErrorPropagates(t *testing.T) {
	svc := NewGeneratorService(&stubDrafter{err: errors.New("upstream down")}, &stubQuota{allowed: 1})

	_, err := svc.Generate(context.Background(), dto.GenerateBlogRequest{Topic: "t"})
	assert.Error(t, err)
}
