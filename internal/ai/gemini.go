package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"edureach-backend/internal/models"
)

// ErrQuotaExceeded marks quota/rate-limit failures from the model API so
// the caller can switch providers; every other failure is generic.
var ErrQuotaExceeded = errors.New("ai quota exceeded")

const defaultModel = "gemini-1.5-flash"

// Completer is a thin text-completion service over the Gemini API with a
// concurrency token bucket.
type Completer struct {
	client    *genai.Client
	modelName string
	rateChan  chan struct{}
}

func NewCompleter(apiKey string, concurrentReqs int) (*Completer, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	if concurrentReqs < 1 {
		concurrentReqs = 1
	}
	rateChan := make(chan struct{}, concurrentReqs)
	for i := 0; i < concurrentReqs; i++ {
		rateChan <- struct{}{}
	}

	return &Completer{
		client:    client,
		modelName: defaultModel,
		rateChan:  rateChan,
	}, nil
}

func (c *Completer) Close() {
	c.client.Close()
}

func (c *Completer) acquireRate(ctx context.Context) error {
	select {
	case <-c.rateChan:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(5 * time.Minute):
		return fmt.Errorf("timeout waiting for Gemini rate slot")
	}
}

func (c *Completer) releaseRate() {
	c.rateChan <- struct{}{}
}

// Complete sends a single prompt and returns the generated text.
func (c *Completer) Complete(ctx context.Context, prompt string, maxOutputTokens int32, temperature float32) (string, error) {
	if err := c.acquireRate(ctx); err != nil {
		return "", err
	}
	defer c.releaseRate()

	model := c.client.GenerativeModel(c.modelName)
	model.SetTemperature(temperature)
	model.SetTopP(0.95)
	if maxOutputTokens > 0 {
		model.SetMaxOutputTokens(maxOutputTokens)
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", classifyError(err)
	}

	text := strings.TrimSpace(extractText(resp))
	if text == "" {
		return "", fmt.Errorf("Gemini returned empty text")
	}
	return text, nil
}

// AnswerWithContext answers a question about a video using the selected
// transcript chunks as grounding context.
func (c *Completer) AnswerWithContext(ctx context.Context, question string, contextChunks []string, history []models.ChatMessage) (string, error) {
	return c.Complete(ctx, buildChatPrompt(question, contextChunks, history), 1024, 0.3)
}

func classifyError(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		if gerr.Code == 429 || (gerr.Code == 403 && strings.Contains(strings.ToLower(gerr.Message), "quota")) {
			return fmt.Errorf("%w: %v", ErrQuotaExceeded, err)
		}
	}
	if strings.Contains(strings.ToLower(err.Error()), "resource_exhausted") {
		return fmt.Errorf("%w: %v", ErrQuotaExceeded, err)
	}
	return fmt.Errorf("Gemini API error: %w", err)
}

func extractText(resp *genai.GenerateContentResponse) string {
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					text.WriteString(string(t))
				}
			}
		}
	}
	return text.String()
}

func buildChatPrompt(question string, contextChunks []string, history []models.ChatMessage) string {
	var b strings.Builder

	b.WriteString("You are a helpful learning assistant. Answer the student's question using the video transcript excerpts below.\n")
	b.WriteString("Provide a clear, educational response that references specific parts of the video when relevant. If the excerpts do not cover the question, say so.\n\n")

	b.WriteString("---TRANSCRIPT EXCERPTS---\n")
	for _, chunk := range contextChunks {
		b.WriteString(chunk)
		b.WriteString("\n...\n")
	}
	b.WriteString("---END EXCERPTS---\n\n")

	if len(history) > 0 {
		b.WriteString("Conversation so far:\n")
		for _, msg := range history {
			b.WriteString(fmt.Sprintf("%s: %s\n", msg.Role, msg.Content))
		}
		b.WriteString("\n")
	}

	b.WriteString("Question: ")
	b.WriteString(question)
	b.WriteString("\n")

	return b.String()
}
