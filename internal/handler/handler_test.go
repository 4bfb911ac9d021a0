package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"kptshop/internal/domain"
	"kptshop/internal/domain/models"
	"kptshop/internal/domain/repositories"
	"kptshop/internal/domain/services"
	"kptshop/internal/httputil"
	"kptshop/internal/repository/memory"
	"kptshop/internal/service"
)

type stubMedia struct {
	uploadErr error
}

func (m *stubMedia) Upload(ctx context.Context, content io.Reader, opts services.UploadOptions) (*services.HostedAsset, error) {
	if m.uploadErr != nil {
		return nil, m.uploadErr
	}
	n, _ := io.Copy(io.Discard, content)
	return &services.HostedAsset{
		URL:      "https://res.cloudinary.com/demo/image/upload/v1/" + opts.Folder + "/" + opts.Filename,
		PublicID: opts.Folder + "/" + opts.Filename,
		Width:    10,
		Height:   10,
		Format:   "png",
		Bytes:    n,
	}, nil
}

func (m *stubMedia) Destroy(ctx context.Context, publicID string) error { return nil }

type testServer struct {
	handler http.Handler
	repos   repositories.Repositories
	media   *stubMedia
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repos := memory.New()
	media := &stubMedia{}
	const maxUpload = 1 << 20

	h := &Handlers{
		Folders:    NewFolderHandler(service.NewFolderService(repos.Folders, repos.Images, logger), logger),
		Categories: NewCategoryHandler(service.NewCategoryService(repos.Categories, logger), logger),
		Gallery:    NewGalleryHandler(service.NewGalleryService(repos.Gallery, media, logger), logger),
		Images:     NewImageHandler(service.NewImageService(repos.Images, repos.Folders, media, "kptshop", logger), maxUpload, logger),
		Inventory:  NewInventoryHandler(service.NewInventoryService(repos.Inventory, media, logger), logger),
		Upload:     NewUploadHandler(service.NewUploadService(media, "kptshop", logger), maxUpload, logger),
		Health:     NewHealthHandler(func(ctx context.Context) error { return repos.Ping(ctx) }, logger),
	}

	return &testServer{handler: NewRouter(h, nil), repos: repos, media: media}
}

func (s *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) upload(t *testing.T, path, filename, content string, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if filename != "" {
		part, err := mw.CreateFormFile("file", filename)
		if err != nil {
			t.Fatal(err)
		}
		part.Write([]byte(content))
	}
	for k, v := range fields {
		mw.WriteField(k, v)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d; body = %s", rec.Code, want, rec.Body.String())
	}
}

type folderBody struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Parent *string `json:"parent"`
	Path   string  `json:"path"`
}

func TestFolderRoutes(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/folders", `{"name":"Summer"}`)
	expectStatus(t, rec, http.StatusCreated)
	summer := decode[folderBody](t, rec)
	if summer.Path != "Summer" || summer.Parent != nil {
		t.Errorf("summer = %+v", summer)
	}

	rec = s.do(t, http.MethodPost, "/api/folders", `{"name":"2024","parent":"`+summer.ID+`"}`)
	expectStatus(t, rec, http.StatusCreated)
	if got := decode[folderBody](t, rec); got.Path != "Summer/2024" {
		t.Errorf("child path = %q, want Summer/2024", got.Path)
	}

	rec = s.do(t, http.MethodGet, "/api/folders?parent="+summer.ID, "")
	expectStatus(t, rec, http.StatusOK)
	if children := decode[[]folderBody](t, rec); len(children) != 1 || children[0].Name != "2024" {
		t.Errorf("children = %+v", children)
	}

	rec = s.do(t, http.MethodGet, "/api/folders", "")
	expectStatus(t, rec, http.StatusOK)
	if roots := decode[[]folderBody](t, rec); len(roots) != 1 {
		t.Errorf("roots = %+v", roots)
	}

	rec = s.do(t, http.MethodDelete, "/api/folders/"+summer.ID, "")
	expectStatus(t, rec, http.StatusConflict)

	rec = s.do(t, http.MethodPost, "/api/folders", `{"name":"a/b"}`)
	expectStatus(t, rec, http.StatusBadRequest)
	if body := decode[httputil.ErrorResponse](t, rec); body.Fields["name"] == "" {
		t.Errorf("expected name field error, got %+v", body)
	}
}

func TestInventoryRoutes(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/inventory", `{"name":"Widget","price":9.99,"quantity":3}`)
	expectStatus(t, rec, http.StatusCreated)
	item := decode[map[string]any](t, rec)
	id, _ := item["id"].(string)
	if id == "" || item["name"] != "Widget" || item["createdAt"] == nil {
		t.Errorf("item = %v", item)
	}

	rec = s.do(t, http.MethodPost, "/api/inventory", `{"name":"NoPrice","quantity":1}`)
	expectStatus(t, rec, http.StatusBadRequest)
	if body := decode[httputil.ErrorResponse](t, rec); body.Fields["price"] == "" {
		t.Errorf("expected price field error, got %+v", body)
	}

	rec = s.do(t, http.MethodPost, "/api/inventory/update-categories", `{"itemId":"`+id+`","category":"tools"}`)
	expectStatus(t, rec, http.StatusOK)
	if got := decode[map[string]any](t, rec); got["category"] != "tools" {
		t.Errorf("category = %v", got["category"])
	}

	rec = s.do(t, http.MethodPost, "/api/inventory/update-categories", `{"category":"tools"}`)
	expectStatus(t, rec, http.StatusBadRequest)

	rec = s.do(t, http.MethodGet, "/api/inventory?category=tools", "")
	expectStatus(t, rec, http.StatusOK)
	if list := decode[[]map[string]any](t, rec); len(list) != 1 {
		t.Errorf("filtered list = %v", list)
	}

	rec = s.do(t, http.MethodPut, "/api/inventory/"+id, `{"quantity":5}`)
	expectStatus(t, rec, http.StatusOK)
	if got := decode[map[string]any](t, rec); got["quantity"] != float64(5) || got["name"] != "Widget" {
		t.Errorf("updated = %v", got)
	}

	rec = s.do(t, http.MethodDelete, "/api/inventory/"+id, "")
	expectStatus(t, rec, http.StatusOK)
	if body := decode[httputil.MessageResponse](t, rec); body.Message == "" {
		t.Error("delete should return a message")
	}

	rec = s.do(t, http.MethodDelete, "/api/inventory/"+id, "")
	expectStatus(t, rec, http.StatusNotFound)
}

func TestCategoryRoutes(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/categories", `{"name":"Hats"}`)
	expectStatus(t, rec, http.StatusCreated)

	rec = s.do(t, http.MethodPost, "/api/categories", `{"name":"Hats"}`)
	expectStatus(t, rec, http.StatusConflict)

	rec = s.do(t, http.MethodPost, "/api/categories", `{"name":`)
	expectStatus(t, rec, http.StatusBadRequest)
	if body := decode[httputil.ErrorResponse](t, rec); body.Error != "invalid request body" {
		t.Errorf("body = %+v", body)
	}

	rec = s.do(t, http.MethodGet, "/api/categories/not-an-id", "")
	expectStatus(t, rec, http.StatusNotFound)
}

func TestGalleryRoutes(t *testing.T) {
	s := newTestServer(t)

	body := `{"name":"Sunset","detail":"Pier","imageUrl":"https://x/y.jpg","publicId":"g/y","width":10,"height":10,"format":"jpg","bytes":100}`
	rec := s.do(t, http.MethodPost, "/api/gallery", body)
	expectStatus(t, rec, http.StatusCreated)
	if got := decode[map[string]any](t, rec); got["folder"] != "default" {
		t.Errorf("folder = %v", got["folder"])
	}

	rec = s.do(t, http.MethodPost, "/api/gallery", `{"name":"Sunset"}`)
	expectStatus(t, rec, http.StatusBadRequest)
	fields := decode[httputil.ErrorResponse](t, rec).Fields
	for _, f := range []string{"detail", "imageUrl", "publicId", "width", "height", "format", "bytes"} {
		if fields[f] == "" {
			t.Errorf("missing field error for %s: %v", f, fields)
		}
	}
}

func TestImageUploadRoutes(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/folders", `{"name":"Summer"}`)
	expectStatus(t, rec, http.StatusCreated)
	folder := decode[folderBody](t, rec)

	rec = s.upload(t, "/api/images", "beach.png", "png bytes", map[string]string{
		"folder": folder.ID,
		"tags":   "sea, sun,,",
	})
	expectStatus(t, rec, http.StatusCreated)
	image := decode[map[string]any](t, rec)
	if image["folder"] != folder.ID {
		t.Errorf("folder = %v", image["folder"])
	}
	if tags, _ := image["tags"].([]any); len(tags) != 2 {
		t.Errorf("tags = %v", image["tags"])
	}
	if url, _ := image["url"].(string); !strings.Contains(url, "kptshop/Summer/beach.png") {
		t.Errorf("url = %v", image["url"])
	}

	// Reads carry the folder's name and path alongside its id
	rec = s.do(t, http.MethodGet, "/api/images?folder="+folder.ID, "")
	expectStatus(t, rec, http.StatusOK)
	listed := decode[[]models.Image](t, rec)
	if len(listed) != 1 || listed[0].FolderInfo == nil {
		t.Fatalf("list = %+v", listed)
	}
	if info := listed[0].FolderInfo; info.ID != folder.ID || info.Name != "Summer" || info.Path != "Summer" {
		t.Errorf("list folderInfo = %+v", info)
	}

	id, _ := image["id"].(string)
	rec = s.do(t, http.MethodGet, "/api/images/"+id, "")
	expectStatus(t, rec, http.StatusOK)
	if got := decode[models.Image](t, rec); got.FolderInfo == nil || got.FolderInfo.Path != "Summer" {
		t.Errorf("get folderInfo = %+v", got.FolderInfo)
	}

	rec = s.upload(t, "/api/images", "", "", map[string]string{"tags": "x"})
	expectStatus(t, rec, http.StatusBadRequest)
	if body := decode[httputil.ErrorResponse](t, rec); body.Fields["file"] == "" {
		t.Errorf("expected file field error, got %+v", body)
	}

	rec = s.upload(t, "/api/images", "big.png", strings.Repeat("x", 2<<20), nil)
	expectStatus(t, rec, http.StatusBadRequest)

	rec = s.upload(t, "/api/upload", "widget.png", "png", nil)
	expectStatus(t, rec, http.StatusOK)
	if got := decode[UploadResponse](t, rec); !strings.HasSuffix(got.URL, "kptshop/widget.png") {
		t.Errorf("url = %q", got.URL)
	}

	s.media.uploadErr = &domain.UpstreamError{Service: "cloudinary", Op: "upload", Err: errors.New("circuit breaker is open")}
	rec = s.upload(t, "/api/upload", "widget.png", "png", nil)
	expectStatus(t, rec, http.StatusBadGateway)
	if body := decode[httputil.ErrorResponse](t, rec); body.Details != "circuit breaker is open" {
		t.Errorf("body = %+v", body)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		method string
		path   string
		allow  string
	}{
		{method: http.MethodPatch, path: "/api/folders", allow: "GET, POST"},
		{method: http.MethodPut, path: "/api/folders/abc", allow: "DELETE, GET"},
		{method: http.MethodPatch, path: "/api/inventory/abc", allow: "DELETE, GET, PUT"},
		{method: http.MethodGet, path: "/api/upload", allow: "POST"},
		{method: http.MethodGet, path: "/api/inventory/update-categories", allow: "POST"},
		{method: http.MethodPut, path: "/api/inventory/update-categories", allow: "POST"},
		{method: http.MethodDelete, path: "/api/inventory/update-categories", allow: "POST"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := s.do(t, tt.method, tt.path, "")
			expectStatus(t, rec, http.StatusMethodNotAllowed)

			if got := rec.Header().Get("Allow"); got != tt.allow {
				t.Errorf("Allow = %q, want %q", got, tt.allow)
			}
			if body := decode[httputil.ErrorResponse](t, rec); body.Error != "method not allowed" {
				t.Errorf("body = %+v", body)
			}
		})
	}
}

func TestHealthCheck(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	h := NewHealthHandler(func(ctx context.Context) error { return nil }, logger)
	rec := httptest.NewRecorder()
	h.HealthCheck(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	expectStatus(t, rec, http.StatusOK)
	if got := decode[HealthResponse](t, rec); got.Status != "ok" || got.Time.IsZero() {
		t.Errorf("health = %+v", got)
	}

	h = NewHealthHandler(func(ctx context.Context) error { return errors.New("no reachable servers") }, logger)
	rec = httptest.NewRecorder()
	h.HealthCheck(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	expectStatus(t, rec, http.StatusServiceUnavailable)
}

func TestHandleError_InternalDoesNotLeak(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/inventory", nil)
	handleError(rec, req, logger, errors.New("connection pool exhausted on 10.0.0.5"))

	expectStatus(t, rec, http.StatusInternalServerError)
	if strings.Contains(rec.Body.String(), "10.0.0.5") {
		t.Errorf("internal detail leaked: %s", rec.Body.String())
	}
	if !strings.Contains(logs.String(), "10.0.0.5") {
		t.Error("internal error should be logged")
	}
}
