package post

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/a-h/easyjapanese/completion"
	"github.com/a-h/easyjapanese/handlers/status"
	"github.com/a-h/easyjapanese/models"
	"github.com/a-h/easyjapanese/pipeline"
	"github.com/a-h/respond"
)

const maxBodyBytes = 1 << 20

func New(log *slog.Logger, newModel completion.Factory, p pipeline.Pipeline) Handler {
	return Handler{
		log:      log,
		newModel: newModel,
		pipeline: p,
	}
}

type Handler struct {
	log      *slog.Logger
	newModel completion.Factory
	pipeline pipeline.Pipeline
}

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req models.EasyJapanesePostRequest
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req)
	if err != nil {
		h.log.Error("failed to decode body", slog.Any("error", err))
		respond.WithError(w, "failed to decode body", http.StatusBadRequest)
		return
	}
	if err = req.Validate(); err != nil {
		h.log.Warn("invalid request", slog.Any("error", err))
		respond.WithError(w, err.Error(), http.StatusBadRequest)
		return
	}

	llm, err := h.newModel(req.OpenAIAPIKey, req.ModelID)
	if err != nil {
		h.log.Error("failed to create model", slog.String("model", req.ModelID), slog.Any("error", err))
		respond.WithError(w, "failed to create model", http.StatusBadRequest)
		return
	}

	result, err := h.pipeline.Run(r.Context(), llm, req.Article)
	if err != nil {
		code, msg := status.FromError(err)
		h.log.Error("failed to run pipeline", slog.String("model", req.ModelID), slog.Int("status", code), slog.Any("error", err))
		respond.WithError(w, msg, code)
		return
	}

	respond.WithJSON(w, models.EasyJapanesePostResponse{
		Summary: result.Summary,
		Easy:    result.Easy,
	}, http.StatusOK)
}
