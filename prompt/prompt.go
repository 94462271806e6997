package prompt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/prompts"
)

const (
	ArticleVar = "article"
	SummaryVar = "summary"
)

// Summary asks for a newspaper style summary of at most five sentences.
const Summary = `あなたは新聞記者です。以下で与えられる記事の原稿を元に、その内容を短く5文以内で要約しなさい。
記事内容：{article}
要約内容：以下は、記事の短い要約である：
`

// Easy asks for the summary to be rewritten so that a first grader could
// read it, using as little kanji as possible.
const Easy = `あなたは、難しい日本語の文章を、日本語が少ししか分からない方でも分かるようにする仕事をしています。以下で与えられる文章を、小学一年生でも分かるように書き換えなさい。特に、漢字をあまり使わないようにすることに注意すること。
文章：{summary}
簡易化内容：以下は、上の文章を簡単な日本語に書き換えたものである：
`

var (
	SummaryTemplate = MustNew(Summary, ArticleVar)
	EasyTemplate    = MustNew(Easy, SummaryVar)
)

// ErrMissingValue is returned by Render when the template's placeholder has
// no value, or the value is blank.
var ErrMissingValue = errors.New("prompt: missing value")

// Template is a prompt with exactly one named placeholder.
type Template struct {
	variable string
	pt       prompts.PromptTemplate
}

func New(text, variable string) (t Template, err error) {
	if variable == "" {
		return t, errors.New("prompt: variable name is required")
	}
	t = Template{
		variable: variable,
		pt: prompts.PromptTemplate{
			Template:       text,
			InputVariables: []string{variable},
			TemplateFormat: prompts.TemplateFormatFString,
		},
	}
	// Escaped braces such as {{article}} render as literal text, so count
	// substitutions in the output rather than placeholders in the source.
	sentinel := "\x00" + variable + "\x00"
	out, err := t.pt.Format(map[string]any{variable: sentinel})
	if err != nil {
		return Template{}, fmt.Errorf("prompt: invalid template: %w", err)
	}
	if n := strings.Count(out, sentinel); n != 1 {
		return Template{}, fmt.Errorf("prompt: template must reference {%s} exactly once, found %d", variable, n)
	}
	return t, nil
}

func MustNew(text, variable string) Template {
	t, err := New(text, variable)
	if err != nil {
		panic(err)
	}
	return t
}

// Variable returns the name of the placeholder.
func (t Template) Variable() string {
	return t.variable
}

func (t Template) Render(values map[string]any) (string, error) {
	v, ok := values[t.variable]
	if !ok {
		return "", fmt.Errorf("%w: %q not provided", ErrMissingValue, t.variable)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %q must be a string, got %T", ErrMissingValue, t.variable, v)
	}
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("%w: %q is empty", ErrMissingValue, t.variable)
	}
	out, err := t.pt.Format(map[string]any{t.variable: s})
	if err != nil {
		return "", fmt.Errorf("prompt: failed to render %q: %w", t.variable, err)
	}
	return out, nil
}
