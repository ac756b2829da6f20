package web

import (
	"net/http"

	"github.com/JonMunkholm/candidates/internal/core"
)

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status  string                   `json:"status"`
	Uploads core.UploadLimiterStatus `json:"uploads"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, HealthResponse{
		Status:  "ok",
		Uploads: s.service.UploadLimiterStatus(),
	})
}

// handleCreateCandidate stores the candidate recovered from the uploaded file.
func (s *Server) handleCreateCandidate(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseUpload(w, r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	cand, err := s.service.CreateFromUpload(WithRequestMetadata(r.Context(), r), req)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, cand)
}

// handlePreviewCandidate reports what an upload would store without storing it.
func (s *Server) handlePreviewCandidate(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseUpload(w, r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	res, err := s.service.Preview(WithRequestMetadata(r.Context(), r), req)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (s *Server) handleListCandidates(w http.ResponseWriter, r *http.Request) {
	cands, err := s.service.List(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, cands)
}
