package ollama

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/opentutor/knowledge-service/internal/core/domain"
	"github.com/opentutor/knowledge-service/internal/infrastructure/resilience"
)

type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

func New(baseURL, model string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}
}

// Summarizer produces short per-page synopses for index builds.
type Summarizer struct {
	client    *Client
	executor  *resilience.Executor
	maxTokens int
}

func NewSummarizer(client *Client, executor *resilience.Executor, maxTokens int) *Summarizer {
	if maxTokens <= 0 {
		maxTokens = 150
	}
	return &Summarizer{client: client, executor: executor, maxTokens: maxTokens}
}

func (s *Summarizer) Summarize(ctx context.Context, text string) (string, error) {
	var out string
	err := s.executor.Execute(ctx, "ollama.summarize", func(ctx context.Context) error {
		resp, genErr := s.client.generateText(ctx, buildSummaryPrompt(text), s.maxTokens)
		if genErr != nil {
			return genErr
		}
		out = resp
		return nil
	}, classifyOllamaError)
	if err != nil {
		return "", wrapTemporaryIfNeeded("summarize page", err)
	}
	return out, nil
}

// QuestionGenerator turns retrieved document context into practice questions.
type QuestionGenerator struct {
	client   *Client
	executor *resilience.Executor
}

func NewQuestionGenerator(client *Client, executor *resilience.Executor) *QuestionGenerator {
	return &QuestionGenerator{client: client, executor: executor}
}

func (g *QuestionGenerator) GenerateQuestions(ctx context.Context, docContext string, types []domain.QuestionType) (string, error) {
	var out string
	err := g.executor.Execute(ctx, "ollama.generate_questions", func(ctx context.Context) error {
		resp, genErr := g.client.generateText(ctx, buildQuestionPrompt(docContext, types), 0)
		if genErr != nil {
			return genErr
		}
		out = resp
		return nil
	}, classifyOllamaError)
	if err != nil {
		return "", wrapTemporaryIfNeeded("generate questions", err)
	}
	return out, nil
}

func (c *Client) generateText(ctx context.Context, prompt string, maxTokens int) (string, error) {
	reqBody := map[string]any{
		"model":  c.model,
		"prompt": prompt,
		"stream": false,
	}
	if maxTokens > 0 {
		reqBody["options"] = map[string]any{"num_predict": maxTokens}
	}

	var response struct {
		Response string `json:"response"`
	}
	if err := c.postJSON(ctx, "/api/generate", reqBody, &response, "generate"); err != nil {
		return "", err
	}
	return strings.TrimSpace(response.Response), nil
}
