package domain

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestTypedErrorsMatchSentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		status   int
	}{
		{
			name:     "validation",
			err:      NewFieldError("name", "cannot be blank"),
			sentinel: ErrValidation,
			status:   http.StatusBadRequest,
		},
		{
			name:     "conflict",
			err:      &ConflictError{Message: "category exists", ResourceType: "category"},
			sentinel: ErrConflict,
			status:   http.StatusConflict,
		},
		{
			name:     "upstream",
			err:      &UpstreamError{Service: "cloudinary", Op: "upload", Err: errors.New("timeout")},
			sentinel: ErrUpstream,
			status:   http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("create thing: %w", tt.err)

			if !errors.Is(wrapped, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false", wrapped, tt.sentinel)
			}

			var httpErr HTTPError
			if !errors.As(wrapped, &httpErr) {
				t.Fatalf("errors.As HTTPError failed for %v", wrapped)
			}
			if httpErr.StatusCode() != tt.status {
				t.Errorf("StatusCode() = %d, want %d", httpErr.StatusCode(), tt.status)
			}
		})
	}
}

func TestNewFieldError(t *testing.T) {
	err := NewFieldError("itemId", "cannot be blank")

	if err.Error() != "itemId: cannot be blank" {
		t.Errorf("Error() = %q", err.Error())
	}
	if err.Fields["itemId"] != "cannot be blank" {
		t.Errorf("Fields = %v", err.Fields)
	}
}

func TestUpstreamErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := &UpstreamError{Service: "cloudinary", Op: "destroy", Err: cause}

	if !errors.Is(err, cause) {
		t.Error("UpstreamError should unwrap to its cause")
	}
	if err.Error() != "cloudinary destroy: connection refused" {
		t.Errorf("Error() = %q", err.Error())
	}
}
