package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/user-directory/engine/internal/api/middleware"
	"github.com/user-directory/engine/internal/api/types"
	"github.com/user-directory/engine/internal/api/validators"
	"github.com/user-directory/engine/pkg/logger"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *validators.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, types.APIResponse{
			Success: false,
			Error:   &types.APIError{Code: "invalid", Message: "invalid query parameters", Fields: verr.Fields},
		})
		return
	}

	status := types.StatusFor(err)
	if status >= http.StatusInternalServerError {
		logger.L().Error("request failed",
			zap.String("id", middleware.GetRequestID(r.Context())),
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.Error(err),
		)
	}
	writeJSON(w, status, types.APIResponse{Success: false, Error: types.FromAppError(err)})
}
