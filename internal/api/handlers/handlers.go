package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/SaiyamJain468/Paylockr/internal/api/middleware"
	"github.com/SaiyamJain468/Paylockr/internal/extract"
	"github.com/SaiyamJain468/Paylockr/internal/gcs"
	"github.com/SaiyamJain468/Paylockr/internal/jobs"
	"github.com/SaiyamJain468/Paylockr/internal/pipeline"
)

// NormalizeHandler serves the synchronous normalization endpoints.
type NormalizeHandler struct {
	service *pipeline.Service
	log     zerolog.Logger
}

// NewNormalizeHandler creates a new normalize handler.
func NewNormalizeHandler(service *pipeline.Service, log zerolog.Logger) *NormalizeHandler {
	return &NormalizeHandler{service: service, log: log}
}

// NormalizeText handles POST /api/normalize/text
func (h *NormalizeHandler) NormalizeText(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		middleware.WriteError(w, http.StatusBadRequest, "text is required")
		return
	}

	result := h.service.NormalizeText(r.Context(), req.Text)

	h.log.Info().
		Int("transactions", len(result.Transactions)).
		Float64("confidence", result.Confidence).
		Msg("Text normalized")

	middleware.WriteJSON(w, http.StatusOK, result)
}

// NormalizeRows handles POST /api/normalize/rows
func (h *NormalizeHandler) NormalizeRows(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Rows [][]string `json:"rows"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Rows) == 0 {
		middleware.WriteError(w, http.StatusBadRequest, "rows is required")
		return
	}

	result := h.service.NormalizeRows(r.Context(), req.Rows)

	h.log.Info().
		Int("rows", len(req.Rows)).
		Int("transactions", len(result.Transactions)).
		Float64("confidence", result.Confidence).
		Msg("Rows normalized")

	middleware.WriteJSON(w, http.StatusOK, result)
}

// DocumentsHandler serves document upload and asynchronous normalization.
type DocumentsHandler struct {
	store     gcs.Store
	publisher jobs.Publisher
	bucket    string
	log       zerolog.Logger
}

// NewDocumentsHandler creates a new documents handler.
func NewDocumentsHandler(store gcs.Store, publisher jobs.Publisher, bucket string, log zerolog.Logger) *DocumentsHandler {
	return &DocumentsHandler{
		store:     store,
		publisher: publisher,
		bucket:    bucket,
		log:       log,
	}
}

// Upload handles POST /api/documents/upload
func (h *DocumentsHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filename := r.URL.Query().Get("filename")
	if filename == "" {
		filename = "document.pdf"
	}
	filename = filepath.Base(filename)

	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/pdf"
	}

	documentID := uuid.New().String()
	objectName := fmt.Sprintf("uploads/%s/%s", time.Now().Format("2006/01/02"), documentID+"-"+filename)

	body := http.MaxBytesReader(w, r.Body, extract.MaxFileSizeBytes)
	uri, err := h.store.Put(ctx, h.bucket, objectName, body, contentType)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to store document")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to upload file")
		return
	}

	h.log.Info().
		Str("document_id", documentID).
		Str("source_uri", uri).
		Msg("Document uploaded")

	middleware.WriteJSON(w, http.StatusOK, map[string]string{
		"document_id": documentID,
		"source_uri":  uri,
		"status":      "uploaded",
	})
}

// EnqueueNormalize handles POST /api/documents/normalize
func (h *DocumentsHandler) EnqueueNormalize(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DocumentID string `json:"document_id"`
		SourceURI  string `json:"source_uri"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.DocumentID == "" || req.SourceURI == "" {
		middleware.WriteError(w, http.StatusBadRequest, "document_id and source_uri are required")
		return
	}

	job := &jobs.NormalizeJob{
		DocumentID: req.DocumentID,
		SourceURI:  req.SourceURI,
	}

	if err := h.publisher.Publish(r.Context(), job); err != nil {
		h.log.Error().Err(err).Msg("Failed to enqueue normalization job")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to enqueue normalization job")
		return
	}

	h.log.Info().
		Str("job_id", job.JobID).
		Str("document_id", req.DocumentID).
		Msg("Normalization job enqueued")

	middleware.WriteJSON(w, http.StatusAccepted, map[string]string{
		"job_id":      job.JobID,
		"document_id": req.DocumentID,
		"status":      string(job.Status),
	})
}

// JobsHandler serves job status endpoints.
type JobsHandler struct {
	store jobs.Store
	log   zerolog.Logger
}

// NewJobsHandler creates a new jobs handler.
func NewJobsHandler(store jobs.Store, log zerolog.Logger) *JobsHandler {
	return &JobsHandler{store: store, log: log}
}

// GetJob handles GET /api/jobs/{id}
func (h *JobsHandler) GetJob(w http.ResponseWriter, r *http.Request, jobID string) {
	job, err := h.store.Get(r.Context(), jobID)
	if err != nil {
		h.log.Error().Err(err).Str("job_id", jobID).Msg("Failed to get job")
		middleware.WriteError(w, http.StatusNotFound, "Job not found")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, job)
}

// ListJobs handles GET /api/jobs
func (h *JobsHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := jobs.Filter{
		DocumentID: query.Get("document_id"),
		Status:     jobs.Status(query.Get("status")),
	}

	if limitStr := query.Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			filter.Limit = limit
		}
	}
	if offsetStr := query.Get("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil {
			filter.Offset = offset
		}
	}

	jobsList, err := h.store.List(r.Context(), filter)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list jobs")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list jobs")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"jobs":  jobsList,
		"count": len(jobsList),
	})
}

// Health handles GET /healthz
func Health(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
