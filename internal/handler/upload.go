package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/kdduha/genai-relay/internal/models"
)

var errMissingFile = errors.New("missing file")

// readUpload parses a multipart body held fully in memory and returns the
// file in field plus the optional prompt. A body that is not multipart at
// all counts as a missing file.
func (h *GenerateHandler) readUpload(w http.ResponseWriter, r *http.Request, field string) (*models.UploadedFile, string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		if errors.Is(err, http.ErrNotMultipart) || errors.Is(err, http.ErrMissingBoundary) {
			return nil, "", errMissingFile
		}
		return nil, "", err
	}
	defer r.MultipartForm.RemoveAll()

	prompt := r.FormValue("prompt")

	f, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, prompt, errMissingFile
	}
	if err != nil {
		return nil, prompt, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, prompt, fmt.Errorf("read %s: %w", field, err)
	}

	return &models.UploadedFile{
		Filename: header.Filename,
		MIMEHint: header.Header.Get("Content-Type"),
		Data:     data,
	}, prompt, nil
}
