package rest

import (
	"net/http"
	"real-estate-system/internal/contextkeys"
	"real-estate-system/internal/core/domain"
	"real-estate-system/internal/core/port"
	"real-estate-system/internal/core/port/usecases_port"
)

type DevelopersHandler struct {
	listDevelopersUC usecases_port.ListDevelopersUseCase
}

func NewDevelopersHandler(listDevelopersUC usecases_port.ListDevelopersUseCase) *DevelopersHandler {
	return &DevelopersHandler{listDevelopersUC: listDevelopersUC}
}

// ListDevelopers обрабатывает GET /api/v1/developers
func (h *DevelopersHandler) ListDevelopers(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ListDevelopers"})

	developers, err := h.listDevelopersUC.Execute(r.Context())
	if err != nil {
		logger.Error("Use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to retrieve developers")
		return
	}
	if developers == nil {
		developers = []domain.Developer{}
	}

	RespondWithJSON(w, http.StatusOK, developers)
}

// Healthz обрабатывает GET /api/v1/healthz
func Healthz(w http.ResponseWriter, _ *http.Request) {
	RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
