package get

import (
	"log/slog"
	"net/http"

	"github.com/a-h/easyjapanese/templates"
)

func New(log *slog.Logger, defaultModel string) Handler {
	return Handler{
		log:          log,
		defaultModel: defaultModel,
	}
}

type Handler struct {
	log          *slog.Logger
	defaultModel string
}

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// The ID is only used to build the form action, it's never looked up.
	err := templates.RenderInput(w, http.StatusOK, templates.InputPage{
		ID:           r.PathValue("id"),
		DefaultModel: h.defaultModel,
	})
	if err != nil {
		h.log.Error("failed to render input page", slog.Any("error", err))
	}
}
