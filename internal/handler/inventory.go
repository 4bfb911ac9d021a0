package handler

import (
	"log/slog"
	"net/http"

	"kptshop/internal/domain/repositories"
	"kptshop/internal/domain/services"
	"kptshop/internal/httputil"
)

type InventoryHandler struct {
	service services.InventoryService
	logger  *slog.Logger
}

func NewInventoryHandler(service services.InventoryService, logger *slog.Logger) *InventoryHandler {
	return &InventoryHandler{service: service, logger: logger}
}

// POST /api/inventory
func (h *InventoryHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req services.CreateItemRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		badRequestBody(w, err)
		return
	}

	item, err := h.service.CreateItem(r.Context(), &req)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, item)
}

// GET /api/inventory?category={name}
func (h *InventoryHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	filter := repositories.InventoryFilter{Category: httputil.QueryParam(r, "category")}

	items, err := h.service.ListItems(r.Context(), filter)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, items)
}

// GET /api/inventory/{id}
func (h *InventoryHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.service.GetItem(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, item)
}

// PUT /api/inventory/{id}
func (h *InventoryHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req services.UpdateItemRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		badRequestBody(w, err)
		return
	}

	item, err := h.service.UpdateItem(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, item)
}

// UpdateCategories moves one item to another category
// POST /api/inventory/update-categories
func (h *InventoryHandler) UpdateCategories(w http.ResponseWriter, r *http.Request) {
	var req services.UpdateItemCategoryRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		badRequestBody(w, err)
		return
	}

	item, err := h.service.UpdateItemCategory(r.Context(), &req)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, item)
}

// DELETE /api/inventory/{id}
func (h *InventoryHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteItem(r.Context(), r.PathValue("id")); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondMessage(w, http.StatusOK, "Item deleted successfully")
}
