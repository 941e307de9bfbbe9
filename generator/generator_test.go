package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPrompt(t *testing.T) {
	p := BlogPrompt{
		Topic:      "Go concurrency",
		Details:    "goroutines and channels",
		Keywords:   []string{"goroutine", "channel"},
		References: []string{"https://go.dev/blog/pipelines"},
	}

	got := buildPrompt(p)
	assert.Contains(t, got, "Write a blog in proper blog format on Go concurrency.")
	assert.Contains(t, got, "must cover goroutines and channels")
	assert.Contains(t, got, "goroutine, channel")
	assert.Contains(t, got, "https://go.dev/blog/pipelines")
}
