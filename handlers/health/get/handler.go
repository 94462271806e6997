package get

import (
	"net/http"

	"github.com/a-h/easyjapanese"
	"github.com/a-h/easyjapanese/models"
	"github.com/a-h/respond"
)

type Handler struct{}

func (Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	respond.WithJSON(w, models.HealthGetResponse{
		Status:  "ok",
		Version: easyjapanese.Version,
	}, http.StatusOK)
}
