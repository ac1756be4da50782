// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"context"
	"errors"
	"fmt"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/pdiddy/paper-notes/pkg/types"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "claude-3-5-sonnet-20240620"

const defaultMaxTokens = 1024

const systemPrompt = "You are an expert at analyzing scientific literature. Focus on extracting the most important information accurately."

// Analyzer produces the free-text four-section analysis for one paper.
// Tests supply a mock; production uses ClaudeAnalyzer.
type Analyzer interface {
	Analyze(ctx context.Context, rec types.PaperRecord) (string, error)
}

// anthropicMessager is the slice of the Anthropic SDK the analyzer uses,
// split out so tests can substitute a fake.
type anthropicMessager interface {
	New(ctx context.Context, params anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

// ClaudeAnalyzer calls the Claude Messages API.
type ClaudeAnalyzer struct {
	messages  anthropicMessager
	model     string
	maxTokens int
}

// NewClaudeAnalyzer builds an analyzer from config. A missing API key is an
// error: the analyze stage cannot run without credentials.
func NewClaudeAnalyzer(cfg types.AnalyzeConfig) (*ClaudeAnalyzer, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("Anthropic API key not configured")
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	client := anthropic.NewClient(option.WithAPIKey(cfg.APIKey))
	return &ClaudeAnalyzer{
		messages:  &client.Messages,
		model:     model,
		maxTokens: maxTokens,
	}, nil
}

// Model returns the configured model identifier.
func (a *ClaudeAnalyzer) Model() string { return a.model }

// Analyze sends one paper's content to the Claude API and returns the raw
// labeled response text.
func (a *ClaudeAnalyzer) Analyze(ctx context.Context, rec types.PaperRecord) (string, error) {
	prompt, err := renderPrompt(rec)
	if err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}

	resp, err := a.messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: int64(a.maxTokens),
		System:    []anthropic.TextBlockParam{{Text: systemPrompt}},
		Messages:  []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock(prompt))},
	})
	if err != nil {
		return "", fmt.Errorf("calling Claude API: %w", err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", errors.New("Claude API returned empty content")
	}
	return sb.String(), nil
}
