package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/a-h/easyjapanese/client"
	"github.com/a-h/easyjapanese/models"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
)

type UICommand struct {
	ServerURL    string `help:"The URL of the easy Japanese server." env:"EASY_JAPANESE_SERVER_URL" default:"http://localhost:9020"`
	OpenAIAPIKey string `help:"The OpenAI API key." env:"OPENAI_API_KEY"`
	ModelID      string `help:"The model to use." env:"MODEL_ID" default:"gpt-4o-mini"`
}

func (c UICommand) Run(ctx context.Context) (err error) {
	ejc := client.New(c.ServerURL)
	simplify := func(ctx context.Context, article string) (models.EasyJapanesePostResponse, error) {
		req := models.EasyJapanesePostRequest{
			OpenAIAPIKey: c.OpenAIAPIKey,
			ModelID:      c.ModelID,
			Article:      article,
		}
		if err := req.Validate(); err != nil {
			return models.EasyJapanesePostResponse{}, err
		}
		return ejc.EasyJapanesePost(ctx, req)
	}
	p := tea.NewProgram(newModel(ctx, simplify))
	if _, err = p.Run(); err != nil {
		return err
	}
	return nil
}

// Dracula color scheme.
var (
	Foreground = lipgloss.Color("#f8f8f2")
	Comment    = lipgloss.Color("#6272a4")
	Cyan       = lipgloss.Color("#8be9fd")
	Pink       = lipgloss.Color("#ff79c6")
	Purple     = lipgloss.Color("#bd93f9")
	Red        = lipgloss.Color("#ff5555")
)

var (
	titleStyle   = lipgloss.NewStyle().Foreground(Purple).Bold(true)
	articleStyle = lipgloss.NewStyle().Foreground(Foreground)
	summaryStyle = lipgloss.NewStyle().Foreground(Pink)
	easyStyle    = lipgloss.NewStyle().Foreground(Cyan)
	helpStyle    = lipgloss.NewStyle().Foreground(Comment)
	errorStyle   = lipgloss.NewStyle().Foreground(Red)
)

const help = "ctrl+s: やさしく する • esc: おわる"

type resultMsg struct {
	article string
	resp    models.EasyJapanesePostResponse
}

type simplifyFunc func(ctx context.Context, article string) (models.EasyJapanesePostResponse, error)

type model struct {
	viewport viewport.Model
	textarea textarea.Model
	err      error
	ctx      context.Context
	loading  bool
	simplify simplifyFunc
}

func newModel(ctx context.Context, simplify simplifyFunc) model {
	ta := textarea.New()
	ta.Placeholder = "記事を はりつけて ください..."
	ta.Focus()

	ta.Prompt = "┃ "
	ta.CharLimit = 0

	ta.SetHeight(5)

	// Remove cursor line styling
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()

	ta.ShowLineNumbers = false

	vp := viewport.New(80, 20)
	vp.SetContent(helpStyle.Render(help))

	return model{
		ctx:      ctx,
		textarea: ta,
		viewport: vp,
		simplify: simplify,
	}
}

func (m model) Init() tea.Cmd {
	return textarea.Blink
}

func (m model) simplifyCmd(article string) tea.Cmd {
	return func() tea.Msg {
		resp, err := m.simplify(m.ctx, article)
		if err != nil {
			return err
		}
		return resultMsg{article: article, resp: resp}
	}
}

// wrapText wraps on spaces where it can, and hard wraps Japanese text,
// which has none.
func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	return wrap.String(wordwrap.String(s, width), width)
}

func formatSection(title, body string, style lipgloss.Style, width int) string {
	return titleStyle.Render(title) + "\n" + style.Render(wrapText(strings.TrimSpace(body), width)) + "\n"
}

func formatResult(msg resultMsg, width int) string {
	var sb strings.Builder
	sb.WriteString(formatSection("記事", msg.article, articleStyle, width))
	sb.WriteString("\n")
	sb.WriteString(formatSection("要約", msg.resp.Summary, summaryStyle, width))
	sb.WriteString("\n")
	sb.WriteString(formatSection("やさしい にほんご", msg.resp.Easy, easyStyle, width))
	return sb.String()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case error:
		m.err = msg
		m.loading = false
		m.viewport.SetContent(errorStyle.Render(wrapText(msg.Error(), m.viewport.Width)) + "\n\n" + helpStyle.Render(help))
		return m, nil
	case resultMsg:
		m.err = nil
		m.loading = false
		// The article stays in the textarea until it has been simplified.
		m.textarea.Reset()
		m.viewport.SetContent(formatResult(msg, m.viewport.Width))
		m.viewport.GotoTop()
		return m, nil
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - m.textarea.Height() - 3
		m.textarea.SetWidth(msg.Width)
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c":
			return m, tea.Quit
		case "ctrl+s":
			v := strings.TrimSpace(m.textarea.Value())
			if v == "" || m.loading {
				return m, nil
			}
			m.loading = true
			m.viewport.SetContent(helpStyle.Render("かんがえて います..."))
			return m, m.simplifyCmd(v)
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		default:
			// Send all other keypresses to the textarea.
			var cmd tea.Cmd
			m.textarea, cmd = m.textarea.Update(msg)
			return m, cmd
		}

	case cursor.BlinkMsg:
		// Textarea should also process cursor blinks.
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		return m, cmd

	default:
		return m, nil
	}
}

func (m model) View() string {
	return fmt.Sprintf("%s\n\n%s",
		m.viewport.View(),
		m.textarea.View(),
	) + "\n\n"
}
