package status

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/a-h/easyjapanese/completion"
	"github.com/a-h/easyjapanese/models"
	"github.com/a-h/easyjapanese/prompt"
)

type timeoutError struct{}

func (timeoutError) Error() string { return "i/o timeout" }
func (timeoutError) Timeout() bool { return true }

func TestFromError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "nil is OK",
			err:      nil,
			expected: http.StatusOK,
		},
		{
			name:     "validation errors are bad requests",
			err:      models.ValidationError{Fields: []string{"article"}},
			expected: http.StatusBadRequest,
		},
		{
			name:     "missing template values are bad requests",
			err:      fmt.Errorf("pipeline: summarize: %w", prompt.ErrMissingValue),
			expected: http.StatusBadRequest,
		},
		{
			name:     "upstream failures are bad gateway",
			err:      fmt.Errorf("pipeline: summarize: %w", &completion.UpstreamError{Err: errors.New("401")}),
			expected: http.StatusBadGateway,
		},
		{
			name:     "upstream timeouts are gateway timeouts",
			err:      &completion.UpstreamError{Err: timeoutError{}},
			expected: http.StatusGatewayTimeout,
		},
		{
			name:     "cancelled requests are reported as closed",
			err:      &completion.UpstreamError{Err: context.Canceled},
			expected: ClientClosedRequest,
		},
		{
			name:     "anything else is an internal error",
			err:      errors.New("boom"),
			expected: http.StatusInternalServerError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, msg := FromError(tt.err)
			if actual != tt.expected {
				t.Errorf("expected status %d, got %d", tt.expected, actual)
			}
			if tt.err != nil && msg == "" {
				t.Error("expected a message")
			}
		})
	}
}

func TestFromErrorOmitsProviderDetail(t *testing.T) {
	err := fmt.Errorf("pipeline: summarize: %w", &completion.UpstreamError{
		Err: errors.New("API returned unexpected status code: 401: Incorrect API key provided: sk-abc***xyz."),
	})
	code, msg := FromError(err)
	if code != http.StatusBadGateway {
		t.Errorf("expected status %d, got %d", http.StatusBadGateway, code)
	}
	if strings.Contains(msg, "sk-abc") || strings.Contains(msg, "Incorrect API key") {
		t.Errorf("expected provider detail to be left out of the message, got %q", msg)
	}
}
