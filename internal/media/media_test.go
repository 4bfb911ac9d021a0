package media

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"kptshop/internal/domain"
	"kptshop/internal/domain/services"

	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	gobreaker "github.com/sony/gobreaker/v2"
)

type fakeUploadAPI struct {
	uploadResult  *uploader.UploadResult
	uploadErr     error
	destroyResult *uploader.DestroyResult
	destroyErr    error
	// destroyByType overrides destroyResult per resource type
	destroyByType map[string]*uploader.DestroyResult

	uploads   []uploader.UploadParams
	destroyed []uploader.DestroyParams
}

func (f *fakeUploadAPI) Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error) {
	f.uploads = append(f.uploads, params)
	return f.uploadResult, f.uploadErr
}

func (f *fakeUploadAPI) Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error) {
	f.destroyed = append(f.destroyed, params)
	if f.destroyByType != nil {
		if result, ok := f.destroyByType[params.ResourceType]; ok {
			return result, f.destroyErr
		}
		return &uploader.DestroyResult{Result: "not found"}, f.destroyErr
	}
	return f.destroyResult, f.destroyErr
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCloudinaryUpload(t *testing.T) {
	fake := &fakeUploadAPI{uploadResult: &uploader.UploadResult{
		SecureURL: "https://res.cloudinary.com/demo/image/upload/v1/kptshop/summer/a.jpg",
		PublicID:  "kptshop/summer/a",
		Width:     800,
		Height:    600,
		Format:    "jpg",
		Bytes:     1234,
	}}
	host := newCloudinary(fake, DefaultBreakerSettings, testLogger())

	asset, err := host.Upload(context.Background(), strings.NewReader("img"), services.UploadOptions{
		Folder:   "kptshop/summer",
		Filename: "a.jpg",
	})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if asset.PublicID != "kptshop/summer/a" || asset.Bytes != 1234 || asset.Width != 800 {
		t.Errorf("unexpected asset: %+v", asset)
	}
	if len(fake.uploads) != 1 {
		t.Fatalf("upload params = %+v", fake.uploads)
	}
	params := fake.uploads[0]
	if params.Folder != "kptshop/summer" || params.FilenameOverride != "a.jpg" {
		t.Errorf("upload params = %+v", params)
	}
	if params.UseFilename == nil || !*params.UseFilename || params.UniqueFilename == nil || !*params.UniqueFilename {
		t.Errorf("filename should seed a unique public id: %+v", params)
	}
}

func TestCloudinaryUpload_NoFilename(t *testing.T) {
	fake := &fakeUploadAPI{uploadResult: &uploader.UploadResult{PublicID: "kptshop/x1y2"}}
	host := newCloudinary(fake, DefaultBreakerSettings, testLogger())

	if _, err := host.Upload(context.Background(), strings.NewReader("img"), services.UploadOptions{Folder: "kptshop"}); err != nil {
		t.Fatal(err)
	}
	if p := fake.uploads[0]; p.UseFilename != nil || p.FilenameOverride != "" {
		t.Errorf("upload params = %+v", p)
	}
}

func TestCloudinaryUpload_APIErrorIsUpstream(t *testing.T) {
	fake := &fakeUploadAPI{uploadResult: &uploader.UploadResult{
		Error: api.ErrorResp{Message: "Invalid image file"},
	}}
	host := newCloudinary(fake, DefaultBreakerSettings, testLogger())

	_, err := host.Upload(context.Background(), strings.NewReader("junk"), services.UploadOptions{})
	if !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
	if !strings.Contains(err.Error(), "Invalid image file") {
		t.Errorf("error should carry the API message: %v", err)
	}
}

func TestCloudinaryBreaker_OpensOnTransportFailures(t *testing.T) {
	fake := &fakeUploadAPI{uploadErr: errors.New("connection refused")}
	host := newCloudinary(fake, BreakerSettings{FailureThreshold: 2, OpenTimeout: time.Minute}, testLogger())

	for i := 0; i < 2; i++ {
		if _, err := host.Upload(context.Background(), strings.NewReader("x"), services.UploadOptions{}); err == nil {
			t.Fatal("expected failure")
		}
	}

	_, err := host.Upload(context.Background(), strings.NewReader("x"), services.UploadOptions{})
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Fatalf("expected open breaker, got %v", err)
	}
	if !errors.Is(err, domain.ErrUpstream) {
		t.Errorf("short-circuited call should still be an upstream error: %v", err)
	}
	if len(fake.uploads) != 2 {
		t.Errorf("breaker should stop calls reaching the API, got %d calls", len(fake.uploads))
	}
}

func TestCloudinaryBreaker_RejectionsDoNotTrip(t *testing.T) {
	fake := &fakeUploadAPI{uploadResult: &uploader.UploadResult{
		Error: api.ErrorResp{Message: "Invalid image file"},
	}}
	host := newCloudinary(fake, BreakerSettings{FailureThreshold: 1, OpenTimeout: time.Minute}, testLogger())

	for i := 0; i < 3; i++ {
		_, err := host.Upload(context.Background(), strings.NewReader("x"), services.UploadOptions{})
		if errors.Is(err, gobreaker.ErrOpenState) {
			t.Fatalf("call %d: breaker opened on a rejection", i)
		}
	}
	if host.State() != gobreaker.StateClosed.String() {
		t.Errorf("State() = %s, want closed", host.State())
	}
}

func TestCloudinaryBreaker_CallerCancellationDoesNotTrip(t *testing.T) {
	for _, cause := range []error{context.Canceled, context.DeadlineExceeded} {
		t.Run(cause.Error(), func(t *testing.T) {
			fake := &fakeUploadAPI{uploadErr: cause}
			host := newCloudinary(fake, BreakerSettings{FailureThreshold: 2, OpenTimeout: time.Minute}, testLogger())

			for i := 0; i < 5; i++ {
				_, err := host.Upload(context.Background(), strings.NewReader("x"), services.UploadOptions{})
				if !errors.Is(err, cause) {
					t.Fatalf("call %d: expected %v, got %v", i, cause, err)
				}
			}
			if host.State() != gobreaker.StateClosed.String() {
				t.Errorf("State() = %s, want closed", host.State())
			}
			if len(fake.uploads) != 5 {
				t.Errorf("every call should reach the API, got %d", len(fake.uploads))
			}
		})
	}
}

func TestCloudinaryDestroy_FallsThroughResourceTypes(t *testing.T) {
	fake := &fakeUploadAPI{destroyByType: map[string]*uploader.DestroyResult{
		"video": {Result: "ok"},
	}}
	host := newCloudinary(fake, DefaultBreakerSettings, testLogger())

	if err := host.Destroy(context.Background(), "kptshop/clip"); err != nil {
		t.Fatalf("Destroy: %v", err)
	}
	if len(fake.destroyed) != 2 {
		t.Fatalf("destroy calls = %+v", fake.destroyed)
	}
	if fake.destroyed[0].ResourceType != "image" || fake.destroyed[1].ResourceType != "video" {
		t.Errorf("resource types tried = %q, %q", fake.destroyed[0].ResourceType, fake.destroyed[1].ResourceType)
	}
}

func TestCloudinaryDestroy(t *testing.T) {
	tests := []struct {
		name      string
		result    *uploader.DestroyResult
		err       error
		wantErr   bool
		wantCalls int
	}{
		{name: "ok", result: &uploader.DestroyResult{Result: "ok"}, wantCalls: 1},
		{name: "already gone", result: &uploader.DestroyResult{Result: "not found"}, wantCalls: 3},
		{name: "unexpected result", result: &uploader.DestroyResult{Result: "error"}, wantErr: true},
		{name: "api error", result: &uploader.DestroyResult{Error: api.ErrorResp{Message: "bad id"}}, wantErr: true},
		{name: "transport error", err: errors.New("timeout"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeUploadAPI{destroyResult: tt.result, destroyErr: tt.err}
			host := newCloudinary(fake, DefaultBreakerSettings, testLogger())

			err := host.Destroy(context.Background(), "kptshop/a")
			if tt.wantErr {
				if !errors.Is(err, domain.ErrUpstream) {
					t.Errorf("expected upstream error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Destroy: %v", err)
			}
			if len(fake.destroyed) != tt.wantCalls {
				t.Fatalf("destroy calls = %d, want %d", len(fake.destroyed), tt.wantCalls)
			}
			for _, params := range fake.destroyed {
				if params.PublicID != "kptshop/a" || params.ResourceType == "" {
					t.Errorf("destroy params = %+v", params)
				}
			}
		})
	}
}

func TestPublicIDFromURL(t *testing.T) {
	tests := []struct {
		url    string
		want   string
		wantOK bool
	}{
		{
			url:    "https://res.cloudinary.com/demo/image/upload/v1712345678/kptshop/widget.jpg",
			want:   "kptshop/widget",
			wantOK: true,
		},
		{
			url:    "https://res.cloudinary.com/demo/image/upload/c_fill,w_300/v1712345678/kptshop/summer/2024/a.png",
			want:   "kptshop/summer/2024/a",
			wantOK: true,
		},
		{
			url:    "http://res.cloudinary.com/demo/image/upload/sample.jpg",
			want:   "sample",
			wantOK: true,
		},
		{
			url:    "https://res.cloudinary.com/demo/raw/upload/v1/docs/price-list.pdf",
			want:   "docs/price-list.pdf",
			wantOK: true,
		},
		{url: "https://example.com/image/upload/v1/a.jpg"},
		{url: "https://res.cloudinary.com/demo/image/upload/v1712345678"},
		{url: "https://res.cloudinary.com/demo/image/fetch/a.jpg"},
		{url: "not a url"},
		{url: ""},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			got, ok := PublicIDFromURL(tt.url)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("PublicIDFromURL(%q) = (%q, %v), want (%q, %v)", tt.url, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestPlaceholderUpload(t *testing.T) {
	host := NewPlaceholder(testLogger())

	asset, err := host.Upload(context.Background(), strings.NewReader("12345"), services.UploadOptions{
		Folder:   "kptshop/summer",
		Filename: "beach day.png",
	})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if asset.Bytes != 5 {
		t.Errorf("Bytes = %d, want 5", asset.Bytes)
	}
	if asset.Format != "png" {
		t.Errorf("Format = %q, want png", asset.Format)
	}
	if !strings.HasPrefix(asset.PublicID, "kptshop/summer/dev-") {
		t.Errorf("PublicID = %q", asset.PublicID)
	}
	if !strings.Contains(asset.URL, "beach+day") {
		t.Errorf("URL = %q", asset.URL)
	}
	if err := host.Destroy(context.Background(), asset.PublicID); err != nil {
		t.Errorf("Destroy: %v", err)
	}
}
