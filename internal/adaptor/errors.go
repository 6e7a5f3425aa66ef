package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"theatre-booking/internal/usecase"
	"theatre-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// decodeAndValidate writes a 400 and returns false when the body is not valid
// JSON or fails struct validation.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", map[string]string{"body": err.Error()})
		return false
	}

	if validationErrors := utils.ValidateStruct(dst); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return false
	}

	return true
}

// pathID writes a 404 and returns false for ids that cannot exist.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := utils.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseNotFound(w, "Not found")
		return 0, false
	}
	return id, true
}

// writeServiceError maps usecase errors onto the response envelope.
func writeServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var (
		validationErr *usecase.ValidationError
		notFoundErr   *usecase.NotFoundError
		conflictErr   *usecase.ConflictError
	)

	switch {
	case errors.As(err, &validationErr):
		log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, "Validation failed", validationErr.Fields)

	case errors.As(err, &conflictErr):
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseBadRequest(w, "Validation failed", conflictErr.Fields)

	case errors.As(err, &notFoundErr):
		if fields := notFoundErr.FieldErrors(); fields != nil {
			log.Warn(operation+" failed - unknown reference", zap.Error(err))
			utils.ResponseBadRequest(w, "Validation failed", fields)
			return
		}
		utils.ResponseNotFound(w, notFoundErr.Error())

	case errors.Is(err, usecase.ErrInvalidCredentials):
		utils.ResponseUnauthorized(w, "Invalid email or password")

	case errors.Is(err, usecase.ErrUnauthenticated):
		utils.ResponseUnauthorized(w, "Invalid or expired session")

	case errors.Is(err, usecase.ErrAccountDisabled):
		utils.ResponseForbidden(w, "User account is disabled")

	default:
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
