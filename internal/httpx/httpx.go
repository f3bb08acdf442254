// Package httpx holds the shared JSON response helpers used by every handler.
package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/chesterOps/ecommerce-backend/internal/apperr"
	"github.com/sirupsen/logrus"
)

// JSON writes body as a JSON response with the given status.
func JSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// Error maps an application error to its HTTP status and writes it as JSON.
// Unclassified errors are logged and reported as a generic 500.
func Error(w http.ResponseWriter, logger *logrus.Logger, err error) {
	status := statusFor(apperr.KindOf(err))
	msg := err.Error()
	if status == http.StatusInternalServerError {
		if logger != nil {
			logger.WithError(err).Error("request failed")
		}
		msg = "internal server error"
	}
	JSON(w, status, map[string]string{"error": msg})
}

func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation, apperr.KindInvalidSignature:
		return http.StatusBadRequest
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized
	case apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindGateway:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
