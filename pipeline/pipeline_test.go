package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/a-h/easyjapanese/completion"
	"github.com/a-h/easyjapanese/prompt"
	"github.com/google/go-cmp/cmp"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type recorder struct {
	prompts []string
	replies []string
	errs    []error
}

func (r *recorder) model() completion.Func {
	return func(ctx context.Context, p string) (string, error) {
		i := len(r.prompts)
		r.prompts = append(r.prompts, p)
		if i < len(r.errs) && r.errs[i] != nil {
			return "", r.errs[i]
		}
		return r.replies[i], nil
	}
}

func TestRun(t *testing.T) {
	rec := &recorder{
		replies: []string{"東京で地震があり、けが人はいませんでした。", "とうきょうで じしんが ありました。"},
	}
	p := New(discard)

	actual, err := p.Run(context.Background(), rec.model(), "記事本文")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := Result{
		Summary: "東京で地震があり、けが人はいませんでした。",
		Easy:    "とうきょうで じしんが ありました。",
	}
	if diff := cmp.Diff(expected, actual); diff != "" {
		t.Error(diff)
	}

	if len(rec.prompts) != 2 {
		t.Fatalf("expected 2 completion calls, got %d", len(rec.prompts))
	}
	t.Run("the summary prompt contains the article", func(t *testing.T) {
		expected, _ := prompt.SummaryTemplate.Render(map[string]any{prompt.ArticleVar: "記事本文"})
		if rec.prompts[0] != expected {
			t.Errorf("unexpected summary prompt: %s", cmp.Diff(expected, rec.prompts[0]))
		}
	})
	t.Run("the simplify prompt contains the exact summary", func(t *testing.T) {
		if !strings.Contains(rec.prompts[1], rec.replies[0]) {
			t.Errorf("expected simplify prompt to contain %q, got %q", rec.replies[0], rec.prompts[1])
		}
		if strings.Contains(rec.prompts[1], "記事本文") {
			t.Errorf("simplify prompt should not contain the article: %q", rec.prompts[1])
		}
	})
}

func TestRunEcho(t *testing.T) {
	p := New(discard)
	actual, err := p.Run(context.Background(), completion.NewEcho("SUMMARY:", "EASY:"), "猫が好きです。")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(actual.Summary, "SUMMARY:") || !strings.Contains(actual.Summary, "猫が好きです。") {
		t.Errorf("unexpected summary: %q", actual.Summary)
	}
	if !strings.HasPrefix(actual.Easy, "EASY:") || !strings.Contains(actual.Easy, actual.Summary) {
		t.Errorf("expected easy text to chain from the summary, got %q", actual.Easy)
	}
}

func TestRunSummaryFailureSkipsSimplify(t *testing.T) {
	upstream := errors.New("503 service unavailable")
	rec := &recorder{
		replies: []string{"", "unused"},
		errs:    []error{upstream},
	}
	p := New(discard)

	actual, err := p.Run(context.Background(), rec.model(), "記事本文")
	if !errors.Is(err, upstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
	var ue *completion.UpstreamError
	if !errors.As(err, &ue) {
		t.Errorf("expected UpstreamError, got %T", err)
	}
	if !strings.Contains(err.Error(), StageSummarize) {
		t.Errorf("expected error to name the stage, got %q", err.Error())
	}
	if len(rec.prompts) != 1 {
		t.Errorf("expected simplify not to be called, got %d calls", len(rec.prompts))
	}
	if diff := cmp.Diff(Result{}, actual); diff != "" {
		t.Errorf("expected no partial result: %s", diff)
	}
}

func TestRunSimplifyFailure(t *testing.T) {
	rec := &recorder{
		replies: []string{"要約", ""},
		errs:    []error{nil, errors.New("429 rate limited")},
	}
	actual, err := New(discard).Run(context.Background(), rec.model(), "記事本文")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), StageSimplify) {
		t.Errorf("expected error to name the stage, got %q", err.Error())
	}
	if diff := cmp.Diff(Result{}, actual); diff != "" {
		t.Errorf("expected no partial result: %s", diff)
	}
}

func TestRunMissingArticle(t *testing.T) {
	rec := &recorder{}
	_, err := New(discard).Run(context.Background(), rec.model(), "")
	if !errors.Is(err, prompt.ErrMissingValue) {
		t.Fatalf("expected ErrMissingValue, got %v", err)
	}
	if len(rec.prompts) != 0 {
		t.Errorf("expected no completion calls, got %d", len(rec.prompts))
	}
}

func TestNewWithTemplates(t *testing.T) {
	summary := prompt.MustNew("S[{article}]", prompt.ArticleVar)
	easy := prompt.MustNew("E[{summary}]", prompt.SummaryVar)
	p := NewWithTemplates(discard, summary, easy)
	actual, err := p.Run(context.Background(), completion.NewEcho(), "a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := Result{Summary: "S[a]", Easy: "E[S[a]]"}
	if diff := cmp.Diff(expected, actual); diff != "" {
		t.Error(diff)
	}
}
