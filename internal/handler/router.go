package handler

import (
	"net/http"
	"sort"
)

// Handlers groups every HTTP handler the router mounts
type Handlers struct {
	Folders    *FolderHandler
	Categories *CategoryHandler
	Gallery    *GalleryHandler
	Images     *ImageHandler
	Inventory  *InventoryHandler
	Upload     *UploadHandler
	Health     *HealthHandler
}

// NewRouter registers every route. uploadLimit wraps the routes that push
// files to the media host; nil leaves them unwrapped.
func NewRouter(h *Handlers, uploadLimit func(http.Handler) http.Handler) *http.ServeMux {
	if uploadLimit == nil {
		uploadLimit = func(next http.Handler) http.Handler { return next }
	}

	mux := http.NewServeMux()

	route(mux, "/health", methods{
		http.MethodGet: h.Health.HealthCheck,
	})

	// Folder routes
	route(mux, "/api/folders", methods{
		http.MethodGet:  h.Folders.ListFolders,
		http.MethodPost: h.Folders.CreateFolder,
	})
	route(mux, "/api/folders/{id}", methods{
		http.MethodGet:    h.Folders.GetFolder,
		http.MethodDelete: h.Folders.DeleteFolder,
	})

	// Category routes
	route(mux, "/api/categories", methods{
		http.MethodGet:  h.Categories.ListCategories,
		http.MethodPost: h.Categories.CreateCategory,
	})
	route(mux, "/api/categories/{id}", methods{
		http.MethodGet:    h.Categories.GetCategory,
		http.MethodPut:    h.Categories.UpdateCategory,
		http.MethodDelete: h.Categories.DeleteCategory,
	})

	// Gallery routes
	route(mux, "/api/gallery", methods{
		http.MethodGet:  h.Gallery.ListGalleryImages,
		http.MethodPost: h.Gallery.CreateGalleryImage,
	})
	route(mux, "/api/gallery/{id}", methods{
		http.MethodGet:    h.Gallery.GetGalleryImage,
		http.MethodPut:    h.Gallery.UpdateGalleryImage,
		http.MethodDelete: h.Gallery.DeleteGalleryImage,
	})

	// Image routes
	route(mux, "/api/images", methods{
		http.MethodGet:  h.Images.ListImages,
		http.MethodPost: uploadLimit(http.HandlerFunc(h.Images.UploadImage)).ServeHTTP,
	})
	route(mux, "/api/images/{id}", methods{
		http.MethodGet:    h.Images.GetImage,
		http.MethodPut:    h.Images.UpdateImage,
		http.MethodDelete: h.Images.DeleteImage,
	})

	// Inventory routes
	route(mux, "/api/inventory", methods{
		http.MethodGet:  h.Inventory.ListItems,
		http.MethodPost: h.Inventory.CreateItem,
	})
	route(mux, "/api/inventory/{id}", methods{
		http.MethodGet:    h.Inventory.GetItem,
		http.MethodPut:    h.Inventory.UpdateItem,
		http.MethodDelete: h.Inventory.DeleteItem,
	})
	// A method-less pattern here would conflict with GET /api/inventory/{id},
	// so every other method is registered on its own
	mux.HandleFunc("POST /api/inventory/update-categories", h.Inventory.UpdateCategories)
	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodPatch, http.MethodDelete} {
		mux.HandleFunc(method+" /api/inventory/update-categories", methodNotAllowed([]string{http.MethodPost}))
	}

	route(mux, "/api/upload", methods{
		http.MethodPost: uploadLimit(http.HandlerFunc(h.Upload.Upload)).ServeHTTP,
	})

	return mux
}

type methods map[string]http.HandlerFunc

// route registers one pattern per method plus a method-less fallback that
// answers everything else with a JSON 405
func route(mux *http.ServeMux, path string, handlers methods) {
	allowed := make([]string, 0, len(handlers))
	for method, fn := range handlers {
		mux.HandleFunc(method+" "+path, fn)
		allowed = append(allowed, method)
	}
	sort.Strings(allowed)
	mux.HandleFunc(path, methodNotAllowed(allowed))
}
