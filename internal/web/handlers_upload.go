package web

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/JonMunkholm/candidates/internal/core"
	"github.com/JonMunkholm/candidates/internal/sheet"
)

// formOverhead is the room left for the name and surname fields and
// multipart framing on top of the file size limit.
const formOverhead = 1 << 20

// parseUpload reads the multipart form fields name, surname and file.
// The body is capped so oversized files fail before being buffered.
func (s *Server) parseUpload(w http.ResponseWriter, r *http.Request) (core.UploadRequest, error) {
	maxSize := s.cfg.Upload.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+formOverhead)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return core.UploadRequest{}, fmt.Errorf("%w: request exceeds %d bytes", core.ErrFileTooLarge, tooBig.Limit)
		}
		return core.UploadRequest{}, fmt.Errorf("%w: %v", core.ErrNoFile, err)
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}

	req := core.UploadRequest{
		Name:    r.FormValue("name"),
		Surname: r.FormValue("surname"),
	}

	file, header, err := r.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		return req, nil
	}
	if err != nil {
		return req, fmt.Errorf("%w: %v", core.ErrNoFile, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return req, fmt.Errorf("read upload: %w", err)
	}

	req.FileName = header.Filename
	req.ContentType = header.Header.Get("Content-Type")
	if req.ContentType == "" || req.ContentType == "application/octet-stream" {
		req.ContentType = sheet.MediaTypeFromFileName(header.Filename)
	}
	req.Data = data
	return req, nil
}
