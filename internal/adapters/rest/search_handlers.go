package rest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"real-estate-system/internal/contextkeys"
	"real-estate-system/internal/contracts"
	"real-estate-system/internal/core/domain"
	"real-estate-system/internal/core/port"
	"real-estate-system/internal/core/port/usecases_port"
	"strconv"
)

const maxBodyBytes = 1 << 20

// BodyValidator проверяет сырое тело запроса против именованной схемы.
type BodyValidator interface {
	Validate(name string, body []byte) error
}

type SearchHandler struct {
	resolveUC   usecases_port.ResolveSearchParamsUseCase
	searchUC    usecases_port.SearchListingsUseCase
	applySortUC usecases_port.ApplySortUseCase
	validator   BodyValidator
}

func NewSearchHandler(resolveUC usecases_port.ResolveSearchParamsUseCase,
	searchUC usecases_port.SearchListingsUseCase,
	applySortUC usecases_port.ApplySortUseCase,
	validator BodyValidator) *SearchHandler {
	return &SearchHandler{
		resolveUC:   resolveUC,
		searchUC:    searchUC,
		applySortUC: applySortUC,
		validator:   validator,
	}
}

// ResolveFromQuery обрабатывает GET /api/v1/search/resolve?path=...&type_id=...
func (h *SearchHandler) ResolveFromQuery(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ResolveFromQuery"})

	query := r.URL.Query()
	typeID, err := strconv.Atoi(query.Get("type_id"))
	if err != nil {
		logger.Warn("Invalid type_id", port.Fields{"type_id": query.Get("type_id")})
		WriteJSONError(w, http.StatusBadRequest, "type_id must be a positive integer")
		return
	}

	h.resolve(w, r, logger, domain.ResolveRequest{Pathname: query.Get("path"), TypeID: typeID})
}

// Resolve обрабатывает POST /api/v1/search/resolve
func (h *SearchHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "Resolve"})

	var body ResolveRequestBody
	if !h.decodeBody(w, r, logger, contracts.ResolveRequest, &body) {
		return
	}

	h.resolve(w, r, logger, body.toDomain())
}

func (h *SearchHandler) resolve(w http.ResponseWriter, r *http.Request, logger port.LoggerPort, req domain.ResolveRequest) {
	params, err := h.resolveUC.Execute(r.Context(), req)
	if err != nil {
		h.writeUseCaseError(w, logger, err, "Failed to resolve search params")
		return
	}
	RespondWithJSON(w, http.StatusOK, params)
}

// Search обрабатывает POST /api/v1/search
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "Search"})

	var body SearchRequestBody
	if !h.decodeBody(w, r, logger, contracts.SearchRequest, &body) {
		return
	}

	result, err := h.searchUC.Execute(r.Context(), domain.SearchRequest{
		ResolveRequest: body.toDomain(),
		Page:           body.Page,
		PerPage:        body.PerPage,
	})
	if err != nil {
		h.writeUseCaseError(w, logger, err, "Failed to retrieve listings")
		return
	}

	RespondWithJSON(w, http.StatusOK, toPaginatedResponse(result))
}

// ApplySort обрабатывает POST /api/v1/search/sort
func (h *SearchHandler) ApplySort(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ApplySort"})

	var body SortRequestBody
	if !h.decodeBody(w, r, logger, contracts.SortRequest, &body) {
		return
	}

	result, err := h.applySortUC.Execute(r.Context(), domain.ApplySortRequest{
		Filters:   body.Filters,
		TypeID:    body.TypeID,
		Fixed:     body.Fixed,
		Sort:      body.Sort,
		PageAware: body.PageAware,
		PerPage:   body.PerPage,
	})
	if err != nil {
		h.writeUseCaseError(w, logger, err, "Failed to apply sort")
		return
	}

	RespondWithJSON(w, http.StatusOK, SortResponse{
		Filters:  result.Filters,
		Page:     result.Page,
		Listings: toPaginatedResponse(result.Result),
	})
}

// decodeBody читает тело, проверяет его схемой и декодирует в dst.
// При ошибке ответ уже записан и возвращается false.
func (h *SearchHandler) decodeBody(w http.ResponseWriter, r *http.Request, logger port.LoggerPort, schema string, dst interface{}) bool {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		logger.Warn("Failed to read request body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Failed to read request body")
		return false
	}

	if h.validator != nil {
		if err := h.validator.Validate(schema, raw); err != nil {
			logger.Warn("Request body rejected by schema", port.Fields{"schema": schema, "error": err.Error()})
			WriteJSONError(w, http.StatusBadRequest, err.Error())
			return false
		}
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		logger.Warn("Invalid request body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return false
	}
	return true
}

func (h *SearchHandler) writeUseCaseError(w http.ResponseWriter, logger port.LoggerPort, err error, message string) {
	if isClientError(err) {
		logger.Warn("Request rejected", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	logger.Error("Use case failed", err, nil)
	WriteJSONError(w, http.StatusInternalServerError, message)
}
