package completion

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Factory creates a model for a single request, using the caller's key and model.
type Factory func(apiKey, modelID string) (llms.Model, error)

type Options struct {
	// BaseURL of an OpenAI compatible API. Empty uses the OpenAI default.
	BaseURL string
	// Timeout applied to each completion request. Zero means no timeout.
	Timeout time.Duration
	// TestAPIKey, when set, makes requests using this key use an Echo model
	// instead of calling the completion service.
	TestAPIKey string
}

func NewOpenAIFactory(opts Options) Factory {
	// The HTTP client carries no credentials, so it's safe to share.
	httpClient := &http.Client{Timeout: opts.Timeout}
	return func(apiKey, modelID string) (llms.Model, error) {
		if opts.TestAPIKey != "" && apiKey == opts.TestAPIKey {
			return NewEcho("SUMMARY:", "EASY:"), nil
		}
		if apiKey == "" {
			return nil, errors.New("completion: API key is required")
		}
		if modelID == "" {
			return nil, errors.New("completion: model ID is required")
		}
		oo := []openai.Option{
			openai.WithToken(apiKey),
			openai.WithModel(modelID),
			openai.WithHTTPClient(httpClient),
		}
		if opts.BaseURL != "" {
			oo = append(oo, openai.WithBaseURL(opts.BaseURL))
		}
		llm, err := openai.New(oo...)
		if err != nil {
			return nil, fmt.Errorf("completion: failed to create client: %w", err)
		}
		return llm, nil
	}
}

var ErrEmptyCompletion = errors.New("completion: model returned no text")

// UpstreamError is returned when the completion service fails or returns
// nothing usable.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string {
	return "completion: upstream request failed: " + e.Err.Error()
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Complete sends a single prompt to the model and returns the trimmed text.
func Complete(ctx context.Context, llm llms.Model, prompt string) (string, error) {
	text, err := llms.GenerateFromSinglePrompt(ctx, llm, prompt)
	if err != nil {
		return "", &UpstreamError{Err: err}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", &UpstreamError{Err: ErrEmptyCompletion}
	}
	return text, nil
}
