// Package httpapi exposes the clustering engine over HTTP: run creation from
// JSON or uploaded files, result retrieval, the k-distance diagnostic and
// the per-cluster ZIP download.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/clustex/internal/domain"
	"github.com/kailas-cloud/clustex/internal/domain/clustering"
	"github.com/kailas-cloud/clustex/internal/domain/document"
	domrun "github.com/kailas-cloud/clustex/internal/domain/run"
	runuc "github.com/kailas-cloud/clustex/internal/usecase/run"
)

// Pinger checks storage connectivity for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RunService is the consumer interface over the run use case.
type RunService interface {
	Create(ctx context.Context, docs []document.Document, p clustering.Params, k int) (domrun.Run, error)
	Get(ctx context.Context, id string) (domrun.Run, error)
	Delete(ctx context.Context, id string) error
	Archive(ctx context.Context, id string) ([]byte, error)
}

var _ RunService = (*runuc.Service)(nil)

// Server holds the HTTP handlers.
type Server struct {
	runs         RunService
	pinger       Pinger
	logger       *zap.Logger
	maxDocuments int
	maxUploadMB  int
}

// NewServer creates an HTTP API server.
func NewServer(runs RunService, pinger Pinger, logger *zap.Logger) *Server {
	return &Server{
		runs:         runs,
		pinger:       pinger,
		logger:       logger,
		maxDocuments: 5000,
		maxUploadMB:  64,
	}
}

// WithLimits overrides the per-run document cap and the upload size cap.
func (s *Server) WithLimits(maxDocuments, maxUploadMB int) *Server {
	if maxDocuments > 0 {
		s.maxDocuments = maxDocuments
	}
	if maxUploadMB > 0 {
		s.maxUploadMB = maxUploadMB
	}
	return s
}

// RegisterRoutes mounts all routes on the router.
func (s *Server) RegisterRoutes(r chi.Router) {
	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/v1/runs", func(r chi.Router) {
		r.Post("/", s.handleCreateRun)
		r.Post("/upload", s.handleUploadRun)
		r.Get("/{runID}", s.handleGetRun)
		r.Delete("/{runID}", s.handleDeleteRun)
		r.Get("/{runID}/distances", s.handleGetDistances)
		r.Get("/{runID}/archive", s.handleGetArchive)
	})
}

// handleCreateRun handles POST /v1/runs.
func (s *Server) handleCreateRun(w http.ResponseWriter, r *http.Request) {
	var req createRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}

	if len(req.Documents) > s.maxDocuments {
		writeError(w, http.StatusBadRequest, codeInvalidConfig,
			fmt.Sprintf("corpus too large: %d documents, limit is %d", len(req.Documents), s.maxDocuments))
		return
	}

	docs := make([]document.Document, len(req.Documents))
	for i, d := range req.Documents {
		docs[i] = document.New(d.ID, d.Text)
	}

	run, err := s.runs.Create(r.Context(), docs, req.Params.toDomain(), req.K)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, runToResponse(run))
}

// handleUploadRun handles POST /v1/runs/upload: each file part becomes one
// document (filename = id). Parts that are not valid UTF-8 fail the whole
// batch with every offender listed, before any clustering work starts.
func (s *Server) handleUploadRun(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(int64(s.maxUploadMB) << 20); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid multipart form: "+err.Error())
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	files := r.MultipartForm.File["files"]
	if len(files) > s.maxDocuments {
		writeError(w, http.StatusBadRequest, codeInvalidConfig,
			fmt.Sprintf("corpus too large: %d files, limit is %d", len(files), s.maxDocuments))
		return
	}

	docs := make([]document.Document, 0, len(files))
	var issues []issuePayload
	for _, fh := range files {
		text, err := readFilePart(fh)
		if err != nil {
			issues = append(issues, issuePayload{DocumentID: fh.Filename, Reason: err.Error()})
			continue
		}
		docs = append(docs, document.New(fh.Filename, text))
	}
	if len(issues) > 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Code:    codeValidationFailed,
			Message: "some files could not be decoded",
			Issues:  issues,
		})
		return
	}

	var params clustering.Params
	var k int
	if err := firstError(
		formFloatInto(r, "eps", &params.Eps),
		formIntInto(r, "ngram_min", &params.NgramMin),
		formIntInto(r, "ngram_max", &params.NgramMax),
		formIntInto(r, "min_points", &params.MinPoints),
		formIntInto(r, "k", &k),
	); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}

	run, err := s.runs.Create(r.Context(), docs, params, k)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, runToResponse(run))
}

// handleGetRun handles GET /v1/runs/{runID}.
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.runs.Get(r.Context(), chi.URLParam(r, "runID"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, runToResponse(run))
}

// handleDeleteRun handles DELETE /v1/runs/{runID}.
func (s *Server) handleDeleteRun(w http.ResponseWriter, r *http.Request) {
	if err := s.runs.Delete(r.Context(), chi.URLParam(r, "runID")); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleGetDistances handles GET /v1/runs/{runID}/distances.
func (s *Server) handleGetDistances(w http.ResponseWriter, r *http.Request) {
	run, err := s.runs.Get(r.Context(), chi.URLParam(r, "runID"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	if run.K == 0 {
		writeError(w, http.StatusNotFound, codeRunNotFound,
			"run has no distance diagnostic (k was not set)")
		return
	}
	writeJSON(w, http.StatusOK, distancesToResponse(run))
}

// handleGetArchive handles GET /v1/runs/{runID}/archive.
func (s *Server) handleGetArchive(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "runID")
	data, err := s.runs.Archive(r.Context(), runID)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", "clustered_"+runID+".zip"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := s.pinger.Ping(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "degraded", "database": err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleDomainError maps engine errors to HTTP responses.
func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		issues := make([]issuePayload, len(verr.Issues))
		for i, iss := range verr.Issues {
			issues[i] = issuePayload{DocumentID: iss.DocumentID, Reason: iss.Reason}
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Code:    codeValidationFailed,
			Message: "input validation failed",
			Issues:  issues,
		})
		return
	}
	switch {
	case errors.Is(err, domain.ErrConfiguration):
		writeError(w, http.StatusBadRequest, codeInvalidConfig, err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
	case errors.Is(err, domain.ErrRunNotFound):
		writeError(w, http.StatusNotFound, codeRunNotFound, "run not found")
	default:
		s.logger.Error("internal error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}

func readFilePart(fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open: %w", err)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("read: %w", err)
	}
	if !utf8.Valid(data) {
		return "", errors.New("not valid UTF-8 text")
	}
	return string(data), nil
}

// formIntInto parses an optional integer form field; absence leaves dst zero.
func formIntInto(r *http.Request, field string, dst *int) error {
	raw := r.FormValue(field)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("form field %q must be an integer, got %q", field, raw)
	}
	*dst = v
	return nil
}

// formFloatInto parses an optional numeric form field; absence leaves dst zero.
func formFloatInto(r *http.Request, field string, dst *float64) error {
	raw := r.FormValue(field)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("form field %q must be a number, got %q", field, raw)
	}
	*dst = v
	return nil
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}
