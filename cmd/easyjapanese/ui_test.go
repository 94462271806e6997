package main

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/a-h/easyjapanese/models"
	tea "github.com/charmbracelet/bubbletea"
)

func TestWrapText(t *testing.T) {
	input := "あいうえおかきくけこさしすせそ"
	actual := wrapText(input, 10)
	lines := strings.Split(actual, "\n")
	if len(lines) < 2 {
		t.Fatalf("expected Japanese text to be hard wrapped, got %q", actual)
	}
	for _, line := range lines {
		if n := utf8.RuneCountInString(line); n > 5 {
			t.Errorf("line %q has %d double width runes, expected at most 5", line, n)
		}
	}
	if strings.Join(lines, "") != input {
		t.Errorf("wrapping lost text: %q", actual)
	}
	if wrapText(input, 0) != input {
		t.Error("expected zero width to leave text unchanged")
	}
}

func TestModelUpdate(t *testing.T) {
	var received string
	simplify := func(ctx context.Context, article string) (models.EasyJapanesePostResponse, error) {
		received = article
		return models.EasyJapanesePostResponse{Summary: "要約です。", Easy: "ねこが すきです。"}, nil
	}
	m := newModel(context.Background(), simplify)
	m.textarea.SetValue("猫が好きです。")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m = updated.(model)
	if !m.loading {
		t.Error("expected model to be loading after submit")
	}
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if m.textarea.Value() != "猫が好きです。" {
		t.Errorf("expected the article to stay in the textarea while loading, got %q", m.textarea.Value())
	}

	// A second submit while loading is ignored.
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS}); cmd != nil {
		t.Error("expected no command while loading")
	}

	msg := cmd()
	if received != "猫が好きです。" {
		t.Errorf("unexpected article %q", received)
	}
	updated, _ = m.Update(msg)
	m = updated.(model)
	if m.loading {
		t.Error("expected loading to finish")
	}
	if m.textarea.Value() != "" {
		t.Error("expected textarea to be reset after the result arrives")
	}
	view := m.viewport.View()
	for _, s := range []string{"要約です。", "ねこが すきです。"} {
		if !strings.Contains(view, s) {
			t.Errorf("expected %q in view:\n%s", s, view)
		}
	}
}

func TestModelUpdateError(t *testing.T) {
	simplify := func(ctx context.Context, article string) (models.EasyJapanesePostResponse, error) {
		return models.EasyJapanesePostResponse{}, errors.New("upstream failed")
	}
	m := newModel(context.Background(), simplify)
	m.textarea.SetValue("記事")
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m = updated.(model)
	if cmd == nil {
		t.Fatal("expected a command")
	}
	updated, _ = m.Update(cmd())
	m = updated.(model)
	if m.loading {
		t.Error("expected loading to finish")
	}
	if m.textarea.Value() != "記事" {
		t.Errorf("expected the article to be kept for a retry, got %q", m.textarea.Value())
	}
	if m.err == nil || !strings.Contains(m.viewport.View(), "upstream failed") {
		t.Errorf("expected error to be shown, got %v", m.err)
	}
}
