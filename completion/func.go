package completion

import (
	"context"
	"strings"
	"sync"

	"github.com/tmc/langchaingo/llms"
)

// Func adapts a function to the llms.Model interface. The prompt is the
// concatenated text of all message parts.
type Func func(ctx context.Context, prompt string) (string, error)

func (f Func) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	var sb strings.Builder
	for _, m := range messages {
		for _, p := range m.Parts {
			if tc, ok := p.(llms.TextContent); ok {
				sb.WriteString(tc.Text)
			}
		}
	}
	text, err := f(ctx, sb.String())
	if err != nil {
		return nil, err
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: text}},
	}, nil
}

func (f Func) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

// NewEcho returns a model that replies with the prompt it was given. The
// nth call is prefixed with prefixes[n % len(prefixes)].
func NewEcho(prefixes ...string) *Echo {
	return &Echo{prefixes: prefixes}
}

type Echo struct {
	m        sync.Mutex
	prefixes []string
	calls    int
}

func (e *Echo) next() (prefix string) {
	e.m.Lock()
	defer e.m.Unlock()
	if len(e.prefixes) > 0 {
		prefix = e.prefixes[e.calls%len(e.prefixes)]
	}
	e.calls++
	return prefix
}

func (e *Echo) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	return Func(func(ctx context.Context, prompt string) (string, error) {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		return e.next() + prompt, nil
	}).GenerateContent(ctx, messages, options...)
}

func (e *Echo) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, e, prompt, options...)
}
