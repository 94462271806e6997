package templates

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"net/url"
)

//go:embed *.html
var fs embed.FS

var pages = template.Must(template.ParseFS(fs, "*.html"))

type InputPage struct {
	ID           string
	DefaultModel string
	ModelID      string
	Article      string
	Error        string
}

func (p InputPage) Action() string {
	return Action(p.ID)
}

type ResultPage struct {
	ID      string
	ModelID string
	Article string
	Summary string
	Easy    string
}

func (p ResultPage) Action() string {
	return Action(p.ID)
}

// Action is the form target for the page with the given ID.
func Action(id string) string {
	return "/easy_japanese/" + url.PathEscape(id)
}

func RenderInput(w http.ResponseWriter, code int, p InputPage) error {
	return render(w, code, "input.html", p)
}

func RenderResult(w http.ResponseWriter, code int, p ResultPage) error {
	return render(w, code, "result.html", p)
}

// render executes into a buffer so that a template error doesn't leave a
// half written page behind a 200 status.
func render(w http.ResponseWriter, code int, name string, data any) error {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	_, err := buf.WriteTo(w)
	return err
}
