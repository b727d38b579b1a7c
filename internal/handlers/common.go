// Package handlers provides common functionality for HTTP handlers.
package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/mcgigglepop/react-native-macro-tracker/pkg/api"
	appErrors "github.com/mcgigglepop/react-native-macro-tracker/pkg/errors"
)

// handleServiceError converts service errors to appropriate HTTP responses.
func handleServiceError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if appErrors.IsValidation(err) {
		logger.Debug("validation error", zap.Error(err))
		api.Error(w, http.StatusBadRequest, err.Error())
	} else if appErrors.IsNotFound(err) {
		logger.Debug("not found error", zap.Error(err))
		api.Error(w, http.StatusNotFound, err.Error())
	} else if appErrors.IsForbidden(err) {
		logger.Warn("forbidden error", zap.Error(err))
		api.Error(w, http.StatusForbidden, err.Error())
	} else if appErrors.IsUnavailable(err) {
		logger.Warn("dependency unavailable", zap.Error(err))
		api.Error(w, http.StatusServiceUnavailable, "Service temporarily unavailable")
	} else {
		logger.Error("internal error", zap.Error(err))
		api.Error(w, http.StatusInternalServerError, "An internal error occurred")
	}
}
