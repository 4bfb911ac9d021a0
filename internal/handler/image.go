package handler

import (
	"io"
	"log/slog"
	"net/http"
	"strings"

	"kptshop/internal/domain/repositories"
	"kptshop/internal/domain/services"
	"kptshop/internal/httputil"
)

// ImageHandler serves hosted images filed under folders
type ImageHandler struct {
	service        services.ImageService
	maxUploadBytes int64
	logger         *slog.Logger
}

func NewImageHandler(service services.ImageService, maxUploadBytes int64, logger *slog.Logger) *ImageHandler {
	return &ImageHandler{service: service, maxUploadBytes: maxUploadBytes, logger: logger}
}

// UploadImage takes a multipart form with file, folder (optional folder id)
// and tags (comma separated)
// POST /api/images
func (h *ImageHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	file, header, cleanup, err := parseUpload(w, r, h.maxUploadBytes)
	defer cleanup()
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	req := &services.UploadImageRequest{
		FolderID: optionalForm(r, "folder"),
		Tags:     httputil.SplitList(r.FormValue("tags")),
	}
	if file != nil {
		req.Content = io.Reader(file)
		req.Filename = header.Filename
	}

	image, err := h.service.UploadImage(r.Context(), req)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, image)
}

// GET /api/images?folder={id}&tag={tag}
func (h *ImageHandler) ListImages(w http.ResponseWriter, r *http.Request) {
	filter := repositories.ImageFilter{
		FolderID: httputil.QueryParam(r, "folder"),
		Tag:      httputil.QueryParam(r, "tag"),
	}

	images, err := h.service.ListImages(r.Context(), filter)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, images)
}

// GET /api/images/{id}
func (h *ImageHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	image, err := h.service.GetImage(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, image)
}

// PUT /api/images/{id}
func (h *ImageHandler) UpdateImage(w http.ResponseWriter, r *http.Request) {
	var req services.UpdateImageRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		badRequestBody(w, err)
		return
	}

	image, err := h.service.UpdateImage(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, image)
}

// DELETE /api/images/{id}
func (h *ImageHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteImage(r.Context(), r.PathValue("id")); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondMessage(w, http.StatusOK, "Image deleted successfully")
}

func optionalForm(r *http.Request, key string) *string {
	v := strings.TrimSpace(r.FormValue(key))
	if v == "" {
		return nil
	}
	return &v
}
