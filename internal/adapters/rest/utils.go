package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"real-estate-system/internal/contracts"
	"real-estate-system/internal/core/domain"
)

// WriteJSONError отправляет JSON-ответ с полем "error" и заданным статусом
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)

	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}

// RespondWithJSON отправляет JSON-ответ
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Failed to marshal JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// isClientError - ошибки валидации входа, на которые отвечаем 400.
func isClientError(err error) bool {
	return errors.Is(err, contracts.ErrSchemaViolation) ||
		errors.Is(err, domain.ErrInvalidTypeID) ||
		errors.Is(err, domain.ErrUnknownSort) ||
		errors.Is(err, domain.ErrInvalidPagination) ||
		errors.Is(err, domain.ErrInvertedRange) ||
		errors.Is(err, domain.ErrNegativeValue)
}
