package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"kptshop/internal/domain"
	"kptshop/internal/httputil"
)

// handleError converts domain errors to HTTP responses. Anything it does not
// recognise is logged and reported as a bare 500.
func handleError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var (
		validationErr *domain.ValidationError
		conflictErr   *domain.ConflictError
		upstreamErr   *domain.UpstreamError
	)

	switch {
	case errors.As(err, &validationErr):
		httputil.RespondErrorBody(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error:  validationErr.Error(),
			Fields: validationErr.Fields,
		})
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &conflictErr):
		httputil.RespondError(w, http.StatusConflict, conflictErr.Error())
	case errors.As(err, &upstreamErr):
		logger.Warn("media host failure",
			"error", err,
			"path", r.URL.Path,
			"request_id", httputil.RequestID(r.Context()),
		)
		httputil.RespondErrorBody(w, http.StatusBadGateway, httputil.ErrorResponse{
			Error:   "media host request failed",
			Details: upstreamErr.Err.Error(),
		})
	default:
		logger.Error("request failed",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", httputil.RequestID(r.Context()),
		)
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// badRequestBody reports a body that could not be decoded
func badRequestBody(w http.ResponseWriter, err error) {
	httputil.RespondErrorBody(w, http.StatusBadRequest, httputil.ErrorResponse{
		Error:   "invalid request body",
		Details: err.Error(),
	})
}

// methodNotAllowed answers verbs a registered path does not support
func methodNotAllowed(allowed []string) http.HandlerFunc {
	allow := strings.Join(allowed, ", ")
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Allow", allow)
		httputil.RespondErrorBody(w, http.StatusMethodNotAllowed, httputil.ErrorResponse{
			Error:   "method not allowed",
			Details: r.Method + " is not supported, use " + allow,
		})
	}
}

// optionalQuery returns nil for an absent or blank query parameter
func optionalQuery(r *http.Request, key string) *string {
	v := httputil.QueryParam(r, key)
	if v == "" {
		return nil
	}
	return &v
}
