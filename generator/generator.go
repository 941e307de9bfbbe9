package generator

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"google.golang.org/genai"

	"blog-fusion/config"
)

// LLMRequestLog 는 LLM 호출 한 건의 관측 정보를 담는다.
type LLMRequestLog struct {
	Prompt       string     `json:"prompt"`
	Response     string     `json:"response"`
	LatencyMs    int64      `json:"latency_ms"`
	TokenUsage   TokenUsage `json:"token_usage"`
	ModelName    string     `json:"model_name"`
	ModelVersion string     `json:"model_version"`
	GeneratedAt  time.Time  `json:"generated_at"`
}

type TokenUsage struct {
	InputTokens  int64 `json:"input_tokens"`
	OutputTokens int64 `json:"output_tokens"`
	TotalTokens  int64 `json:"total_tokens"`
}

const HUMANIZE_INSTRUCTION = `
You are an editor who rewrites machine-sounding prose into natural human writing.
Rewrite the provided blog text so that it keeps the same meaning, structure and
approximate length, but reads as if written by a person:
- Vary sentence length and paragraph length.
- Replace needlessly formal or academic vocabulary with plain words.
- Drop filler transitions ("furthermore", "moreover", "in conclusion") unless natural.
- Keep all markdown markers (#, ##, ###, -, **) exactly where they are.
- Respond with ONLY the rewritten text, no commentary and no code fences.
`

// Generator 는 Gemini 를 사용해 블로그 초안을 생성하고 문체를 다듬는다.
type Generator struct {
	client *genai.Client
	model  string
}

// NewGenerator 는 GEMINI_API_KEY 환경변수로 클라이언트를 초기화한다.
func NewGenerator(ctx context.Context, cfg config.AppConfig) (*Generator, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, err
	}

	model := cfg.GeminiModel
	if model == "" {
		model = "gemini-2.0-flash"
	}
	return &Generator{client: client, model: model}, nil
}

// BlogPrompt 는 블로그 초안 생성에 필요한 입력이다.
type BlogPrompt struct {
	Topic      string
	Details    string
	Keywords   []string
	References []string
}

// buildPrompt 는 생성 요청 프롬프트를 조립한다.
func buildPrompt(p BlogPrompt) string {
	return fmt.Sprintf(
		"Write a blog in proper blog format on %s. The %s must cover %s. It should also must include the following %s. To support blog use the information from %s.",
		p.Topic, p.Topic, p.Details,
		strings.Join(p.Keywords, ", "),
		strings.Join(p.References, ", "),
	)
}

// GenerateBlog 는 주어진 주제/세부사항/키워드/참고자료로 블로그 초안을 생성한다.
func (g *Generator) GenerateBlog(ctx context.Context, p BlogPrompt) (string, *LLMRequestLog, error) {
	prompt := buildPrompt(p)
	return g.generate(ctx, prompt, nil)
}

// Humanize 는 기계 문체의 텍스트를 자연스러운 문장으로 재작성한다.
// keywords 가 주어지면 재작성 중에도 해당 표현을 그대로 유지하도록 지시한다.
func (g *Generator) Humanize(ctx context.Context, text string, keywords []string) (string, *LLMRequestLog, error) {
	instructionText := HUMANIZE_INSTRUCTION
	if len(keywords) > 0 {
		instructionText += fmt.Sprintf("- Keep these keywords exactly as written: %s.\n", strings.Join(keywords, ", "))
	}
	instruction := &genai.Content{Parts: []*genai.Part{{Text: instructionText}}}
	return g.generate(ctx, text, instruction)
}

func (g *Generator) generate(ctx context.Context, prompt string, instruction *genai.Content) (string, *LLMRequestLog, error) {
	startTime := time.Now()

	cfg := &genai.GenerateContentConfig{}
	if instruction != nil {
		cfg.SystemInstruction = instruction
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", nil, err
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", nil, fmt.Errorf("model returned an empty response")
	}

	llmLog := &LLMRequestLog{
		Prompt:       prompt,
		Response:     text,
		LatencyMs:    time.Since(startTime).Milliseconds(),
		TokenUsage:   TokenUsage{},
		ModelName:    g.model,
		ModelVersion: result.ModelVersion,
		GeneratedAt:  time.Now(),
	}
	if result.UsageMetadata != nil {
		llmLog.TokenUsage = TokenUsage{
			InputTokens:  int64(result.UsageMetadata.PromptTokenCount),
			OutputTokens: int64(result.UsageMetadata.CandidatesTokenCount),
			TotalTokens:  int64(result.UsageMetadata.TotalTokenCount),
		}
	}

	return text, llmLog, nil
}
