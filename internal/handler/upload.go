package handler

import (
	"log/slog"
	"net/http"

	"kptshop/internal/domain/services"
	"kptshop/internal/httputil"
)

// UploadResponse is the body of a successful plain upload
type UploadResponse struct {
	URL string `json:"url"`
}

// UploadHandler sends a file to the media host without recording it; the
// inventory form stores the returned URL on the item
type UploadHandler struct {
	service        services.UploadService
	maxUploadBytes int64
	logger         *slog.Logger
}

func NewUploadHandler(service services.UploadService, maxUploadBytes int64, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{service: service, maxUploadBytes: maxUploadBytes, logger: logger}
}

// POST /api/upload
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	file, header, cleanup, err := parseUpload(w, r, h.maxUploadBytes)
	defer cleanup()
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	var url string
	if file == nil {
		url, err = h.service.Upload(r.Context(), "", nil)
	} else {
		url, err = h.service.Upload(r.Context(), header.Filename, file)
	}
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, UploadResponse{URL: url})
}
