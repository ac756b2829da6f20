package core

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/candidates/internal/logging"
	"github.com/JonMunkholm/candidates/internal/sheet"
)

// DefaultUploadTimeout bounds a single upload including persistence.
const DefaultUploadTimeout = 2 * time.Minute

// DefaultMaxFileSize is the upload size limit when none is configured (10MB).
const DefaultMaxFileSize int64 = 10 * 1024 * 1024

// ServiceOptions configures a Service. Zero values select defaults.
type ServiceOptions struct {
	MaxConcurrentUploads int
	MaxWaitTime          time.Duration
	MaxFileSize          int64
	UploadTimeout        time.Duration
	Policy               SelectionPolicy
}

// Service turns uploads into stored candidates.
type Service struct {
	repo    Repository
	opts    ServiceOptions
	limiter *UploadLimiter
}

// NewService creates a Service backed by repo.
func NewService(repo Repository, opts ServiceOptions) *Service {
	if opts.MaxFileSize <= 0 {
		opts.MaxFileSize = DefaultMaxFileSize
	}
	if opts.UploadTimeout <= 0 {
		opts.UploadTimeout = DefaultUploadTimeout
	}
	return &Service{
		repo:    repo,
		opts:    opts,
		limiter: NewUploadLimiter(opts.MaxConcurrentUploads, opts.MaxWaitTime),
	}
}

// Policy returns the row selection policy in use.
func (s *Service) Policy() SelectionPolicy {
	return s.opts.Policy
}

// Analysis describes how a record was recovered from a grid.
type Analysis struct {
	RowIndex int             `json:"rowIndex"` // -1 when selection failed
	Fallback bool            `json:"fallback"` // no row qualified; last row was used
	Indices  FieldIndices    `json:"indices"`
	Record   ValidatedRecord `json:"record"`
}

// Analyze selects a row of grid and extracts the validated record from it.
// On failure the returned Analysis still carries the selected row index when
// selection itself succeeded.
func Analyze(grid sheet.Grid, policy SelectionPolicy) (Analysis, error) {
	a := Analysis{RowIndex: -1}

	idx, err := SelectRowIndex(grid, policy)
	if err != nil {
		return a, err
	}
	a.RowIndex = idx
	a.Fallback = len(grid) > 1 && !IsPlausibleRow(grid[idx])

	rec, indices, err := extractAndValidate(grid[idx])
	a.Indices = indices
	if err != nil {
		return a, err
	}
	a.Record = rec
	return a, nil
}

// PreviewResult is the outcome of a dry-run upload.
type PreviewResult struct {
	FileName string   `json:"fileName,omitempty"`
	Format   string   `json:"format"`
	Rows     int      `json:"rows"`
	Row      []string `json:"row"`
	Analysis
}

// CreateFromUpload decodes the uploaded file, recovers the candidate record and
// stores it with the uploader's name and surname.
func (s *Service) CreateFromUpload(ctx context.Context, req UploadRequest) (*Candidate, error) {
	req = req.Normalize()
	if err := validateRequest(req, true, s.opts.MaxFileSize); err != nil {
		return nil, err
	}

	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.limiter.Release()

	ctx, cancel := context.WithTimeout(ctx, s.opts.UploadTimeout)
	defer cancel()

	uploadID := uuid.New().String()
	log := logging.WithFields(ctx, append([]any{
		"upload_id", uploadID,
		"file", req.FileName,
		"size", len(req.Data),
	}, clientFields(ctx)...)...)

	res, err := s.process(req)
	if err != nil {
		log.Warn("upload rejected", "error", err, "code", MapError(err).Code)
		return nil, err
	}
	log.Debug("record extracted",
		"format", res.Format,
		"row", res.RowIndex,
		"fallback", res.Fallback,
		"seniority", res.Record.Seniority,
	)

	if err := checkStorageLimits(res.Record); err != nil {
		log.Warn("upload rejected", "error", err, "code", MapError(err).Code)
		return nil, err
	}

	cand, err := s.repo.Create(ctx, NewCandidate{
		UploadID:   uploadID,
		Name:       req.Name,
		Surname:    req.Surname,
		Record:     res.Record,
		SourceFile: req.FileName,
	})
	if err != nil {
		log.Error("store candidate failed", "error", err)
		return nil, fmt.Errorf("store candidate: %w", err)
	}

	log.Info("candidate created", "candidate_id", cand.ID)
	return cand, nil
}

func checkStorageLimits(rec ValidatedRecord) error {
	if rec.YearsOfExperience > MaxStoredYears {
		return &StorageLimitError{
			Field: FieldYearsOfExperience,
			Value: rec.YearsOfExperience,
			Limit: MaxStoredYears,
		}
	}
	return nil
}

// Preview runs the upload pipeline without storing anything. Name and surname
// are not required. Previews never wait for a slot: when every slot is taken
// they fail with ErrTooManyUploads at once.
func (s *Service) Preview(ctx context.Context, req UploadRequest) (*PreviewResult, error) {
	req = req.Normalize()
	if err := validateRequest(req, false, s.opts.MaxFileSize); err != nil {
		return nil, err
	}

	if !s.limiter.TryAcquire() {
		return nil, ErrTooManyUploads
	}
	defer s.limiter.Release()

	res, err := s.process(req)
	if err != nil {
		logging.WithFields(ctx, "file", req.FileName).Debug("preview rejected", "error", err)
		return res, err
	}
	return res, nil
}

// process resolves the format, decodes and analyzes. The result is non-nil
// whenever decoding succeeded, so previews can show the grid position of a
// failure.
func (s *Service) process(req UploadRequest) (res *PreviewResult, err error) {
	format, err := sheet.ResolveFormat(req.ContentType, req.Data)
	if err != nil {
		return nil, err
	}

	grid, err := decodeSafely(format, req.Data)
	if err != nil {
		return nil, err
	}

	res = &PreviewResult{
		FileName: req.FileName,
		Format:   format.String(),
		Rows:     len(grid),
	}
	res.Analysis, err = Analyze(grid, s.opts.Policy)
	if res.RowIndex >= 0 {
		res.Row = grid[res.RowIndex].Strings()
	}
	return res, err
}

// decodeSafely converts a decoder panic on malformed input into ErrUnreadable.
func decodeSafely(format sheet.Format, data []byte) (grid sheet.Grid, err error) {
	defer func() {
		if r := recover(); r != nil {
			grid = nil
			err = fmt.Errorf("%w: decoder panic: %v", sheet.ErrUnreadable, r)
		}
	}()
	return sheet.Decode(format, data)
}

// List returns stored candidates, newest first.
func (s *Service) List(ctx context.Context) ([]Candidate, error) {
	cands, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	return cands, nil
}

// UploadLimiterStatus returns the current upload concurrency state.
func (s *Service) UploadLimiterStatus() UploadLimiterStatus {
	return s.limiter.Status()
}

// WaitForUploads blocks until in-flight uploads finish or ctx ends.
func (s *Service) WaitForUploads(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}
