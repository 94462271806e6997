package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/a-h/easyjapanese/completion"
	"github.com/a-h/easyjapanese/prompt"
	"github.com/tmc/langchaingo/llms"
)

const (
	StageSummarize = "summarize"
	StageSimplify  = "simplify"
)

func New(log *slog.Logger) Pipeline {
	return NewWithTemplates(log, prompt.SummaryTemplate, prompt.EasyTemplate)
}

// NewWithTemplates creates a pipeline with custom prompts. The summary
// template must use the article placeholder, and the easy template the
// summary placeholder.
func NewWithTemplates(log *slog.Logger, summary, easy prompt.Template) Pipeline {
	return Pipeline{
		log:     log,
		summary: summary,
		easy:    easy,
	}
}

type Pipeline struct {
	log     *slog.Logger
	summary prompt.Template
	easy    prompt.Template
}

type Result struct {
	Summary string
	Easy    string
}

// Run summarizes the article, then rewrites the summary into easy Japanese.
// Both calls use llm. If either stage fails, no result is returned.
func (p Pipeline) Run(ctx context.Context, llm llms.Model, article string) (r Result, err error) {
	summary, err := p.stage(ctx, llm, StageSummarize, p.summary, article)
	if err != nil {
		return r, err
	}
	easy, err := p.stage(ctx, llm, StageSimplify, p.easy, summary)
	if err != nil {
		return r, err
	}
	return Result{Summary: summary, Easy: easy}, nil
}

func (p Pipeline) stage(ctx context.Context, llm llms.Model, name string, t prompt.Template, input string) (output string, err error) {
	text, err := t.Render(map[string]any{t.Variable(): input})
	if err != nil {
		return "", fmt.Errorf("pipeline: %s: %w", name, err)
	}
	start := time.Now()
	output, err = completion.Complete(ctx, llm, text)
	if err != nil {
		return "", fmt.Errorf("pipeline: %s: %w", name, err)
	}
	p.log.Debug("stage complete",
		slog.String("stage", name),
		slog.Duration("duration", time.Since(start)),
		slog.Int("inputRunes", len([]rune(input))),
		slog.Int("outputRunes", len([]rune(output))))
	return output, nil
}
