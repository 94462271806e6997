package post

import (
	"log/slog"
	"net/http"

	"github.com/a-h/easyjapanese/completion"
	"github.com/a-h/easyjapanese/handlers/status"
	"github.com/a-h/easyjapanese/models"
	"github.com/a-h/easyjapanese/pipeline"
	"github.com/a-h/easyjapanese/templates"
)

const maxBodyBytes = 1 << 20

func New(log *slog.Logger, newModel completion.Factory, p pipeline.Pipeline, defaultModel string) Handler {
	return Handler{
		log:          log,
		newModel:     newModel,
		pipeline:     p,
		defaultModel: defaultModel,
	}
}

type Handler struct {
	log          *slog.Logger
	newModel     completion.Factory
	pipeline     pipeline.Pipeline
	defaultModel string
}

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		h.log.Error("failed to parse form", slog.Any("error", err))
		h.renderError(w, http.StatusBadRequest, templates.InputPage{ID: id}, "failed to parse form")
		return
	}

	req := models.EasyJapanesePostRequest{
		OpenAIAPIKey: r.PostForm.Get("OPENAI_API_KEY"),
		ModelID:      r.PostForm.Get("MODEL_ID"),
		Article:      r.PostForm.Get("article"),
	}
	// The key is never written back into the page.
	page := templates.InputPage{
		ID:      id,
		ModelID: req.ModelID,
		Article: req.Article,
	}
	if req.ModelID == "" {
		req.ModelID = h.defaultModel
	}
	if err := req.Validate(); err != nil {
		h.log.Warn("invalid form", slog.Any("error", err))
		h.renderError(w, http.StatusBadRequest, page, err.Error())
		return
	}

	llm, err := h.newModel(req.OpenAIAPIKey, req.ModelID)
	if err != nil {
		h.log.Error("failed to create model", slog.String("model", req.ModelID), slog.Any("error", err))
		h.renderError(w, http.StatusBadRequest, page, "failed to create model")
		return
	}

	result, err := h.pipeline.Run(r.Context(), llm, req.Article)
	if err != nil {
		code, msg := status.FromError(err)
		h.log.Error("failed to run pipeline", slog.String("model", req.ModelID), slog.Int("status", code), slog.Any("error", err))
		h.renderError(w, code, page, msg)
		return
	}

	err = templates.RenderResult(w, http.StatusOK, templates.ResultPage{
		ID:      id,
		ModelID: req.ModelID,
		Article: req.Article,
		Summary: result.Summary,
		Easy:    result.Easy,
	})
	if err != nil {
		h.log.Error("failed to render result page", slog.Any("error", err))
	}
}

func (h Handler) renderError(w http.ResponseWriter, code int, page templates.InputPage, msg string) {
	page.DefaultModel = h.defaultModel
	page.Error = msg
	if err := templates.RenderInput(w, code, page); err != nil {
		h.log.Error("failed to render input page", slog.Any("error", err))
	}
}
