package api

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"os"
	"path/filepath"
)

// Accepted content types per upload kind.
var (
	menuImageTypes = []string{"image/jpeg", "image/jpg", "image/png", "image/webp"}
	logoTypes      = []string{"image/png", "image/jpeg", "image/jpg"}
)

// Upload is a file attachment for a multipart submission.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// validate checks the upload's content type and size before any request is
// dispatched.
func (u *Upload) validate(allowed []string, maxBytes int64) error {
	ok := false
	for _, t := range allowed {
		if u.ContentType == t {
			ok = true
			break
		}
	}
	if !ok {
		return &ValidationError{Reason: fmt.Sprintf("unsupported image type %q", u.ContentType)}
	}
	if maxBytes > 0 && int64(len(u.Data)) > maxBytes {
		return &ValidationError{Reason: fmt.Sprintf("image exceeds the %d byte limit", maxBytes)}
	}
	return nil
}

// LoadUpload reads a file from disk into an Upload, deriving the content
// type from the file extension.
func LoadUpload(path string) (*Upload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}
	return &Upload{
		Filename:    filepath.Base(path),
		ContentType: mime.TypeByExtension(filepath.Ext(path)),
		Data:        data,
	}, nil
}

// multipartForm builds a multipart body from plain fields plus an optional
// file part. Returns the body and the content type carrying the boundary;
// the coordinator must pass that content type through untouched so the
// transport boundary stays intact.
func multipartForm(fields map[string]string, fileField string, file *Upload) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for key, value := range fields {
		if err := w.WriteField(key, value); err != nil {
			return nil, "", fmt.Errorf("api: writing form field %s: %w", key, err)
		}
	}

	if file != nil {
		part, err := w.CreateFormFile(fileField, file.Filename)
		if err != nil {
			return nil, "", fmt.Errorf("api: creating form file: %w", err)
		}
		if _, err := part.Write(file.Data); err != nil {
			return nil, "", fmt.Errorf("api: writing form file: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("api: closing multipart writer: %w", err)
	}

	return &buf, w.FormDataContentType(), nil
}
