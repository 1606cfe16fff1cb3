package utils

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ta9iBarkat/ecommerce-platform/models"
)

// RespondJSON writes a JSON body with the given status.
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// RespondError writes the uniform failure envelope.
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, map[string]interface{}{
		"success": false,
		"message": message,
	})
}

// RespondDomainError maps a domain error onto its HTTP status. Unknown
// errors are logged and reported as a generic 500 so internals never leak.
func RespondDomainError(w http.ResponseWriter, logger *slog.Logger, err error) {
	status := ErrorStatus(err)
	if status == http.StatusInternalServerError {
		logger.Error("request failed", "error", err)
		RespondError(w, status, "internal server error")
		return
	}
	RespondError(w, status, err.Error())
}

// ErrorStatus translates the models error taxonomy into HTTP codes.
func ErrorStatus(err error) int {
	switch {
	case errors.Is(err, models.ErrEmptyCart),
		errors.Is(err, models.ErrMissingStatus),
		errors.Is(err, models.ErrInvalidStatus),
		errors.Is(err, models.ErrAlreadyDelivered),
		errors.Is(err, models.ErrEmailTaken):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrOrderNotFound),
		errors.Is(err, models.ErrProductNotFound),
		errors.Is(err, models.ErrProductUnavailable),
		errors.Is(err, models.ErrCartNotFound),
		errors.Is(err, models.ErrItemNotInCart),
		errors.Is(err, models.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrInsufficientStock),
		errors.Is(err, models.ErrCartCheckedOut),
		errors.Is(err, models.ErrStatusConflict),
		errors.Is(err, models.ErrInvalidTransition):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
