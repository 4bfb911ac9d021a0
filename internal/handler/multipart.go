package handler

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"kptshop/internal/domain"
)

// multipartMemory is how much of a multipart body is buffered in memory;
// the rest spills to temp files
const multipartMemory = 8 << 20

// parseUpload reads a multipart body of at most maxBytes and returns its
// "file" part. A missing file part is not an error here: file is nil and the
// service decides. Callers must call cleanup.
func parseUpload(w http.ResponseWriter, r *http.Request, maxBytes int64) (file multipart.File, header *multipart.FileHeader, cleanup func(), err error) {
	cleanup = func() {}
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, nil, cleanup, domain.NewFieldError("file", fmt.Sprintf("exceeds the %d MB limit", maxBytes>>20))
		}
		return nil, nil, cleanup, &domain.ValidationError{Message: "invalid multipart body: " + err.Error()}
	}
	cleanup = func() { _ = r.MultipartForm.RemoveAll() }

	file, header, err = r.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil, cleanup, nil
		}
		return nil, nil, cleanup, &domain.ValidationError{Message: "invalid file part: " + err.Error()}
	}

	inner := cleanup
	cleanup = func() {
		file.Close()
		inner()
	}
	return file, header, cleanup, nil
}
