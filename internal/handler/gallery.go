package handler

import (
	"log/slog"
	"net/http"

	"kptshop/internal/domain/repositories"
	"kptshop/internal/domain/services"
	"kptshop/internal/httputil"
)

// GalleryHandler serves gallery images. The client uploads the binary to the
// media host itself and posts the resulting metadata here.
type GalleryHandler struct {
	service services.GalleryService
	logger  *slog.Logger
}

func NewGalleryHandler(service services.GalleryService, logger *slog.Logger) *GalleryHandler {
	return &GalleryHandler{service: service, logger: logger}
}

// POST /api/gallery
func (h *GalleryHandler) CreateGalleryImage(w http.ResponseWriter, r *http.Request) {
	var req services.CreateGalleryImageRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		badRequestBody(w, err)
		return
	}

	image, err := h.service.CreateGalleryImage(r.Context(), &req)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, image)
}

// GET /api/gallery?folder={label}
func (h *GalleryHandler) ListGalleryImages(w http.ResponseWriter, r *http.Request) {
	filter := repositories.GalleryFilter{Folder: httputil.QueryParam(r, "folder")}

	images, err := h.service.ListGalleryImages(r.Context(), filter)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, images)
}

// GET /api/gallery/{id}
func (h *GalleryHandler) GetGalleryImage(w http.ResponseWriter, r *http.Request) {
	image, err := h.service.GetGalleryImage(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, image)
}

// PUT /api/gallery/{id}
func (h *GalleryHandler) UpdateGalleryImage(w http.ResponseWriter, r *http.Request) {
	var req services.UpdateGalleryImageRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		badRequestBody(w, err)
		return
	}

	image, err := h.service.UpdateGalleryImage(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, image)
}

// DELETE /api/gallery/{id}
func (h *GalleryHandler) DeleteGalleryImage(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteGalleryImage(r.Context(), r.PathValue("id")); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondMessage(w, http.StatusOK, "Gallery image deleted successfully")
}
